package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/todomcp"
	"github.com/aretw0/todomcp/internal/cli"
	"github.com/aretw0/todomcp/internal/presentation/tui"
	"github.com/aretw0/todomcp/pkg/adapters/mcp"
	"github.com/aretw0/todomcp/pkg/chat"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with a running todomcp MCP server",
	Long: `Connects to an MCP server and forwards each line you type to its
todoist_assistant tool. Use --url for an SSE server or --command to launch
one over stdio. Type 'schema' to print the server's action schema, and
'exit' or 'quit', or press Ctrl+D, to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		command, _ := cmd.Flags().GetString("command")
		level, _ := cmd.Flags().GetString("log-level")

		logger, err := cli.NewLogger(level)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		var client *mcp.Client
		if command != "" {
			client, err = mcp.NewStdioClient(ctx, command, "mcp", "--transport", "stdio")
		} else {
			client, err = mcp.NewSSEClient(ctx, url)
		}
		if err != nil {
			return err
		}
		defer client.Close()

		interactive := tui.IsTerminal(os.Stdin) && tui.IsTerminal(os.Stdout)
		out := cmd.OutOrStdout()

		var reader chat.LineReader
		opts := []chat.Option{chat.WithLogger(logger)}
		if interactive {
			tui.PrintBanner(out, todomcp.Version)

			reader, err = chat.NewTerminalReader(historyFile())
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			if render, err := tui.NewRenderer(); err == nil {
				opts = append(opts, chat.WithRenderer(render))
			}
		} else {
			reader = chat.NewPlainReader(cmd.InOrStdin(), nil)
		}
		defer reader.Close()

		err = chat.NewSession(client, reader, out, opts...).Run(ctx)
		return cli.HandleExecutionError(err)
	},
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "todomcp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("url", "http://localhost:8000/sse", "SSE endpoint of the MCP server")
	chatCmd.Flags().String("command", "", "Launch this todomcp binary over stdio instead of connecting to --url")
}
