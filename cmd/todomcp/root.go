package main

import (
	"fmt"
	"os"

	"github.com/aretw0/todomcp/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "todomcp",
	Short: "todomcp manages Todoist tasks in natural language",
	Long: `todomcp classifies free-text requests with a language model and turns them
into Todoist actions. It runs as an MCP server, an HTTP API, an interactive
chat client or a one-shot command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error or off")
}

// newApp loads config using the persistent flags and wires the assistant.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")

	cfg, err := cli.LoadConfig(path, level)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cfg)
}
