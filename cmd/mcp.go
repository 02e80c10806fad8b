package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"thoreinstein.com/hop/pkg/mcpserver"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve repository discovery as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout.

Tools:
  list_repositories  repositories under the root, most recent first
  resolve_location   resolve a token the way 'hop resolve' does
  classify_path      check a directory with a chosen classification mode
  current_branch     branch of the repository enclosing a path

Logs go to stderr so they never corrupt the protocol stream.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		engine, provider := newProvider(cfg, newLogger(cfg))
		s := mcpserver.New(engine, provider, GetVersion())

		if err := server.ServeStdio(s); err != nil {
			return errors.Wrap(err, "mcp server failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
