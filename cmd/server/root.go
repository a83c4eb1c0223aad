package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs serve when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:           "daybook",
	Short:         "daybook API server: accounts, profiles, calendar events and documents",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(promoteCmd)
}
