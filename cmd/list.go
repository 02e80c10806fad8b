package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
	"golang.org/x/term"

	"thoreinstein.com/hop/pkg/discovery"
)

var listFormat string
var listRecent bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered repositories",
	Long: `List every git repository under the discovery root.

A fresh scan runs on every call. Repositories are listed by path, or by
most recent modification with --recent.

Examples:
  hop list
  hop list --recent
  hop list --format json
  hop list --root ~/work --depth 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "o", "text", "Output format: text, json or yaml")
	listCmd.Flags().BoolVar(&listRecent, "recent", false, "Order by most recently modified")
}

// listEntry is the structured form of one repository.
type listEntry struct {
	Name     string    `json:"name" yaml:"name"`
	Path     string    `json:"path" yaml:"path"`
	Relative string    `json:"relative" yaml:"relative"`
	Modified time.Time `json:"modified" yaml:"modified"`
}

func runListCommand(cmd *cobra.Command) error {
	switch listFormat {
	case "text", "json", "yaml":
	default:
		return errors.Newf("invalid format %q: must be one of: text, json, yaml", listFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine := discovery.NewEngine(cfg, newLogger(cfg))
	result, err := engine.Scanner.Scan(engine.Request(), discovery.ModeFastLeafOnly)
	if err != nil {
		return err
	}

	root, _ := discovery.NormalizeRoot(cfg.Discovery.Root)
	entries := make([]listEntry, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		rel, err := filepath.Rel(root, c.Path)
		if err != nil {
			rel = c.Path
		}
		entries = append(entries, listEntry{
			Name:     c.Name,
			Path:     c.Path,
			Relative: filepath.ToSlash(rel),
			Modified: c.ModTime,
		})
	}

	if listRecent {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Modified.After(entries[j].Modified)
		})
	}

	out := cmd.OutOrStdout()
	switch listFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(entries)
	default:
		return writeListText(out, entries, isTerminal(out))
	}
}

func writeListText(w io.Writer, entries []listEntry, color bool) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No repositories found.")
		return err
	}

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Relative))
	}

	nameStyle := lipgloss.NewStyle().Bold(true)
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	for _, e := range entries {
		rel := fmt.Sprintf("%-*s", width, e.Relative)
		path := e.Path
		if color {
			rel = nameStyle.Render(rel)
			path = pathStyle.Render(path)
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", rel, path); err != nil {
			return err
		}
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
