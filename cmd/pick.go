package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"thoreinstein.com/hop/pkg/complete"
	"thoreinstein.com/hop/pkg/ui"
)

// pickCmd represents the pick command
var pickCmd = &cobra.Command{
	Use:   "pick [query]",
	Short: "Choose a repository interactively",
	Long: `Open a full-screen picker over the discovered repositories and print the
chosen path.

The list is recomputed on every keystroke. Enter prints the highlighted
repository, ctrl+y copies its path, esc cancels.

Examples:
  cd "$(hop pick)"
  hop pick api`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPickCommand(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPickCommand(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stderr.Fd())) {
		return errors.New("hop pick needs an interactive terminal")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var initial string
	if len(args) > 0 {
		initial = args[0]
	}

	_, provider := newProvider(cfg, newLogger(cfg))
	suggest := func(query string) []complete.Suggestion {
		return provider.Suggest(cfg.Discovery.Root, cfg.Discovery.Depth, query)
	}

	selected, err := ui.Pick(suggest, initial)
	if err != nil {
		if errors.Is(err, ui.ErrNoProjects) {
			return errors.Newf("no repositories found under %s; check discovery.root or run 'hop list'", cfg.Discovery.Root)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), selected.Tooltip)
	return nil
}
