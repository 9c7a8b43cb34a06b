package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

Tools: calculate_bazi, current_pillars, chart_history, and interpret_chart
when an LLM provider is configured. Resource: sizhu://charts.

By default the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead, e.g. for the MCP Inspector.

Prompt templates are watched while the server runs; edits take effect
without a restart.

Examples:
  # Stdio mode (default, for Claude Desktop)
  sizhu mcp serve

  # HTTP mode
  sizhu mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "sizhu": {
        "command": "/path/to/sizhu",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Chart:     chartService,
		Interpret: interpretService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if promptWatcher != nil {
		g.Go(func() error {
			return promptWatcher.Run(ctx)
		})
	}

	g.Go(func() error {
		// The watcher only stops on cancellation, so end the group when the server returns.
		defer cancel()
		if mcpPort > 0 {
			addr := fmt.Sprintf(":%d", mcpPort)
			fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}
		return server.Run(ctx)
	})

	return g.Wait()
}
