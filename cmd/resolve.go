package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"thoreinstein.com/hop/pkg/navigate"
)

var resolveCopy bool

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [token]",
	Short: "Print the directory a token refers to",
	Long: `Resolve a token to an absolute directory and print it.

The token is looked up in this order:
- empty: the discovery root
- ~ or ~/path: under your home directory
- absolute path: used as given
- a path that exists under the discovery root
- anything else: relative to the current directory

Nothing is checked beyond that. The shell function from 'hop init' changes
to the printed directory and reports the error if it does not exist.

Tab completion for this command ('hop completion <shell>') only offers
repositories whose path starts with what you typed. The function from
'hop init' matches anywhere in the path and keeps the most recently
modified repositories first.

Examples:
  hop resolve
  hop resolve work/api
  hop resolve ../sibling`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeRepositories,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolveCommand(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolVar(&resolveCopy, "copy", false, "Also copy the resolved path to the clipboard")
}

func runResolveCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var token string
	if len(args) > 0 {
		token = args[0]
	}

	path := navigate.Resolve(navigate.Request{
		Root:  cfg.Discovery.Root,
		Token: token,
	})

	newLogger(cfg).Debug("resolved token", "token", token, "path", path)

	if resolveCopy {
		if err := clipboard.WriteAll(path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not copy to clipboard: %v\n", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// completeRepositories offers discovered repositories as cobra completions.
// Completion never fails loudly; a broken config or root yields nothing.
// Cobra's scripts escape and prefix-filter the values themselves, so they
// get the unquoted path.
func completeRepositories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Flags reach completion after the initializers ran; reload with them.
	initConfig()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	_, provider := newProvider(cfg, newLogger(cfg))
	suggestions := provider.Suggest(cfg.Discovery.Root, cfg.Discovery.Depth, toComplete)

	completions := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		completions = append(completions, fmt.Sprintf("%s\t%s", s.Path, s.Tooltip))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveKeepOrder
}
