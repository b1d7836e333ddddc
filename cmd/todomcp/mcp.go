package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/todomcp/internal/cli"
	"github.com/aretw0/todomcp/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the assistant as an MCP Server exposing the todoist_assistant tool,
the typed create_task and list_tasks tools and the todomcp://schema resource.

Supported Transports:
- sse (default): Uses Server-Sent Events over HTTP on /sse and /message.
- stdio: Uses Standard Input/Output. Ideal for local process integration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		transport, _ := cmd.Flags().GetString("transport")
		if !cmd.Flags().Changed("transport") {
			transport = app.Config.Server.Transport
		}
		port, _ := cmd.Flags().GetInt("port")
		if !cmd.Flags().Changed("port") {
			port = app.Config.Server.MCPPort
		}

		srv := mcp.NewServer(app.Assistant, mcp.WithLogger(app.Logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			app.Logger.Info("Starting MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			app.Logger.Info("Starting MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("MCP server failed: %w", err)
			}
			app.Logger.Info("MCP Server stopped gracefully", "signal", ctx.Signal())
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "sse", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8000, "Port to listen on (only for SSE)")
}
