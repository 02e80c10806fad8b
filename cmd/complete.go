package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"thoreinstein.com/hop/pkg/shell"
)

var completeShell string

// completeCmd prints suggestions in the format the 'hop init' snippets read.
var completeCmd = &cobra.Command{
	Use:    "complete [token]",
	Short:  "Print completion suggestions for a partial token",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompleteCommand(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)

	completeCmd.Flags().StringVar(&completeShell, "shell", "", "Output format: bash, zsh or fish")
}

func runCompleteCommand(cmd *cobra.Command, args []string) error {
	// Completion output goes straight into the shell; errors stay silent.
	cfg, err := loadConfig(cmd)
	if err != nil {
		newLogger(nil).Debug("completion skipped", "error", err)
		return nil
	}

	var token string
	if len(args) > 0 {
		token = args[0]
	}

	_, provider := newProvider(cfg, newLogger(cfg))
	suggestions := provider.Suggest(cfg.Discovery.Root, cfg.Discovery.Depth, token)

	for _, line := range shell.FormatCompletions(completeShell, suggestions) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
