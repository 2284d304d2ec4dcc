package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"oilens/pkg/config"
	"oilens/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an OILens configuration file without running extraction.

Checks:
  - YAML syntax
  - Timestamp layout validity
  - Logging, server, and export settings
  - Webhook URLs, triggers, and token references
  - Log source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	// Load and validate config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Log sources:      %d pattern(s)\n", len(cfg.LogSources))
	fmt.Printf("  Timestamp layout: %s\n", cfg.TimestampLayout)
	fmt.Printf("  Export:           %s (compression: %s)\n", cfg.Export.Format, cfg.Export.Compression)
	fmt.Printf("  Server address:   %s\n", cfg.Server.Addr)
	fmt.Printf("  Webhooks:         %d\n", len(cfg.Webhooks))

	if len(cfg.Webhooks) > 0 {
		fmt.Printf("\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			name := wh.Name
			if name == "" {
				name = wh.URL
			}
			fmt.Printf("  %d. %s (%s, trigger: %s)\n", i+1, name, wh.URL, wh.Trigger)
		}
	}

	// Check if log sources exist (warnings only)
	files, err := parser.ExpandGlobs(cfg.LogSources)
	if err != nil {
		fmt.Printf("\nWarning: Error expanding log source patterns: %v\n", err)
	} else if len(files) == 0 && len(cfg.LogSources) > 0 {
		fmt.Printf("\nWarning: No files match log source patterns\n")
	} else if len(files) > 0 {
		fmt.Printf("\nLog files matched: %d\n", len(files))
		for _, f := range files {
			fmt.Printf("  - %s\n", f)
		}
	}

	return nil
}
