package main

import (
	"fmt"

	"github.com/aretw0/todomcp"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of todomcp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "todomcp version %s\n", todomcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
