// Package main provides the entry point for the datascan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for datascan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datascan",
		Short: "Analyze numeric and categorical datasets",
		Long: `datascan analyzes a numeric dataset and a categorical dataset, each stored
as one value per line in a plain-text file. It computes descriptive
statistics, classifies the dataset average against a performance threshold,
and reports the distinct categories.

Completed runs are recorded in a local history database so they can be
listed and compared later.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
