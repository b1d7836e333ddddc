package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/resolver"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the action schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema := domain.DefaultSchema()

		if prompt, _ := cmd.Flags().GetBool("prompt"); prompt {
			fmt.Fprintln(cmd.OutOrStdout(), resolver.BuildSystemPrompt(schema))
			return nil
		}

		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().Bool("prompt", false, "Print the classification prompt derived from the schema instead")
}
