// Package cli provides the command-line interface for OILens.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"oilens/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "oilens",
		Short: "Extract option open interest series from trading logs",
		Long: `OILens pulls ATM option open interest readings and strike selections
out of intraday trading logs and assembles them into a time-ordered
series.

It extracts:
  - CE/PE open interest pairs, with the signed CE-PE difference
  - ATM strike selections taken from instrument codes

Point it at one or more log files and render the series as text or
JSON, export it to CSV, XLSX, or Parquet, or run it as an HTTP service
that processes uploads.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewExtractCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewProbeCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
