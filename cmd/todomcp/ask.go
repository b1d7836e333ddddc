package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/todomcp/internal/cli"
	"github.com/aretw0/todomcp/pkg/dispatch"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt...>",
	Short: "Run a single request in-process",
	Example: `  todomcp ask "Add milk to my shopping list for tomorrow"
  todomcp ask show me my tasks for today`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		result := app.Assistant.Handle(ctx, strings.Join(args, " "))
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
		switch {
		case dispatch.IsUnknownAction(result):
			return fmt.Errorf("request not understood")
		case result.IsError():
			return fmt.Errorf("request failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
