package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/hop/pkg/shell"
)

var initFunction string
var initInstall bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [bash|zsh|fish]",
	Short: "Print the shell integration script",
	Long: `Print the script that defines the navigation function and its completion.

The function (default 'rcd', see shell.function) runs 'hop resolve' and
changes to the printed directory. Its completion lists repositories under
the discovery root, most recently modified first.

The shell defaults to the basename of $SHELL.

Examples:
  eval "$(hop init zsh)"          # in ~/.zshrc
  eval "$(hop init bash)"         # in ~/.bashrc
  hop init fish | source          # in ~/.config/fish/config.fish
  hop init --install              # append the line above to your rc file`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: shell.Supported,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInitCommand(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initFunction, "function", "", "Name of the navigation function (default from shell.function)")
	initCmd.Flags().BoolVar(&initInstall, "install", false, "Add the init line to the shell's rc file instead of printing the script")
}

func runInitCommand(cmd *cobra.Command, args []string) error {
	shellType := shell.DetectShell()
	if len(args) > 0 {
		shellType = args[0]
	}
	if !shell.IsSupported(shellType) {
		return errors.Newf("unsupported shell %q: pass one of bash, zsh or fish", shellType)
	}

	if initInstall {
		rcPath := shell.RCPath(shellType)
		installed, err := shell.InstallHook(shellType, rcPath, "hop")
		if err != nil {
			return err
		}
		if installed {
			fmt.Fprintf(cmd.OutOrStdout(), "Added hop to %s. Restart your shell to use it.\n", rcPath)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "hop is already set up in %s\n", rcPath)
		}
		return nil
	}

	fn := initFunction
	if fn == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fn = cfg.Shell.Function
	}

	script, err := shell.Snippet(shellType, shell.Options{Function: fn, Binary: "hop"})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), script)
	return nil
}
