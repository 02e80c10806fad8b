// Package mcpserver exposes repository discovery as Model Context Protocol
// tools so agents can find and resolve repositories the same way the shell
// does.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"thoreinstein.com/hop/pkg/complete"
	"thoreinstein.com/hop/pkg/discovery"
	"thoreinstein.com/hop/pkg/git"
	"thoreinstein.com/hop/pkg/navigate"
)

// New builds an MCP server with every hop tool registered.
func New(engine *discovery.Engine, provider *complete.Provider, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"hop",
		version,
		server.WithToolCapabilities(true),
	)
	RegisterTools(s, engine, provider)
	return s
}

// RegisterTools adds the discovery tools to s.
func RegisterTools(s *server.MCPServer, engine *discovery.Engine, provider *complete.Provider) {
	s.AddTool(listTool(), listHandler(engine, provider))
	s.AddTool(resolveTool(), resolveHandler(engine))
	s.AddTool(classifyTool(), classifyHandler(engine))
	s.AddTool(branchTool(), branchHandler())
}

// --- list_repositories ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_repositories",
		mcp.WithDescription("List git repositories under the configured root, most recently modified first."),
		mcp.WithString("query",
			mcp.Description("Substring the repository path must contain. Omit to list all."),
		),
		mcp.WithNumber("depth",
			mcp.Description("Directory levels to search below the root's children. Defaults to the configured depth."),
		),
	)
}

func listHandler(engine *discovery.Engine, provider *complete.Provider) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		depth := req.GetInt("depth", engine.Config.Discovery.Depth)
		if depth < 0 {
			return toolError(errors.New("depth must not be negative"))
		}

		root := engine.Config.Discovery.Root
		if _, err := discovery.NormalizeRoot(root); err != nil {
			return toolError(err)
		}

		suggestions := provider.Suggest(root, depth, query)
		if len(suggestions) == 0 {
			return mcp.NewToolResultText("No repositories found."), nil
		}

		var sb strings.Builder
		for _, s := range suggestions {
			fmt.Fprintf(&sb, "%s  %s\n", s.Label, s.Tooltip)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- resolve_location ---

func resolveTool() mcp.Tool {
	return mcp.NewTool("resolve_location",
		mcp.WithDescription("Resolve a short token (repository path relative to the root, ~ path, or absolute path) to an absolute directory."),
		mcp.WithString("token",
			mcp.Description("Token as a user would type it after the navigation command"),
		),
	)
}

func resolveHandler(engine *discovery.Engine) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := navigate.Resolve(navigate.Request{
			Root:  engine.Config.Discovery.Root,
			Token: req.GetString("token", ""),
		})
		return mcp.NewToolResultText(path), nil
	}
}

// --- classify_path ---

func classifyTool() mcp.Tool {
	return mcp.NewTool("classify_path",
		mcp.WithDescription("Report whether a directory is a git repository."),
		mcp.WithString("path",
			mcp.Description("Directory to classify"),
			mcp.Required(),
		),
		mcp.WithString("mode",
			mcp.Description("fast (own .git directory only), ancestor (walk parents) or authoritative (ask git)"),
			mcp.Enum("fast", "ancestor", "authoritative"),
		),
	)
}

func classifyHandler(engine *discovery.Engine) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(errors.New("path is required"))
		}

		mode, err := discovery.ParseMode(req.GetString("mode", "fast"))
		if err != nil {
			return toolError(err)
		}

		root, ok := engine.Classifier.Root(path, mode)
		if !ok {
			return mcp.NewToolResultText(fmt.Sprintf("%s is not a repository (mode %s)", path, mode)), nil
		}

		text := fmt.Sprintf("%s is a repository (mode %s)", path, mode)
		if mode != discovery.ModeFastLeafOnly {
			text += "\nroot: " + root
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- current_branch ---

func branchTool() mcp.Tool {
	return mcp.NewTool("current_branch",
		mcp.WithDescription("Show the checked-out branch of the repository enclosing a path."),
		mcp.WithString("path",
			mcp.Description("Any path inside the repository"),
			mcp.Required(),
		),
	)
}

func branchHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		root, ok := discovery.EnclosingRoot(path)
		if !ok {
			return toolError(errors.Newf("%s is not inside a repository", path))
		}

		head, err := git.ReadHead(root)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s  %s", head, root)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
