package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/hop/pkg/discovery"
	"thoreinstein.com/hop/pkg/git"
)

var whereMode string
var whereBranch bool

// whereCmd represents the where command
var whereCmd = &cobra.Command{
	Use:   "where [path]",
	Short: "Report the repository a directory belongs to",
	Long: `Report whether a directory (default: the current one) is inside a git
repository and print the repository root.

Modes:
  fast           the directory itself must contain a .git directory
  ancestor       the nearest directory upwards containing .git (default)
  authoritative  ask git for the working tree root; also recognizes
                 linked worktrees and submodules

Exits with status 3 when the directory is not inside a repository, so it
can be used in prompts and scripts.

Examples:
  hop where
  hop where --branch
  hop where --mode authoritative ~/src/api/internal`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWhereCommand(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	whereCmd.Flags().StringVarP(&whereMode, "mode", "m", "", "Classification mode: fast, ancestor or authoritative (default from where.mode)")
	whereCmd.Flags().BoolVarP(&whereBranch, "branch", "b", false, "Print the checked-out branch instead of the root")
}

func runWhereCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	modeName := cfg.Where.Mode
	if whereMode != "" {
		modeName = whereMode
	}
	mode, err := discovery.ParseMode(modeName)
	if err != nil {
		return err
	}

	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", path)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return errors.Newf("%s is not a directory", abs)
	}

	logger := newLogger(cfg)
	engine := discovery.NewEngine(cfg, logger)

	root, ok := engine.Classifier.Root(abs, mode)
	if !ok {
		logger.Debug("not a repository", "path", abs, "mode", mode.String())
		return ErrNotInRepository
	}

	if whereBranch {
		head, err := git.ReadHead(root)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), head.String())
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), root)
	return nil
}
