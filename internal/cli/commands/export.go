package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"oilens/pkg/config"
	"oilens/pkg/export"
	"oilens/pkg/output"
	"oilens/pkg/series"
)

// ExportOptions holds command-line options for the export command.
type ExportOptions struct {
	Format string
	Out    string
	Config string
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <log-file>",
		Short: "Export the extracted series to a file",
		Long: `Extract the open interest series from a trading log and write it to a
tabular file.

Formats:
  csv      comma-separated values
  xlsx     Excel workbook
  parquet  Apache Parquet (compression configurable via the config file)

Without --out the file is written in the current directory, named after
the log file with the format as its extension.

Exit codes:
  0 - Rows exported
  1 - No valid data found (a header-only file is still written)
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Export format (csv|xlsx|parquet), defaults to the config setting")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output file path")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Path to configuration file")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, opts *ExportOptions) error {
	logPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	name := opts.Format
	if name == "" {
		name = cfg.Export.Format
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(logPath) // #nosec G304 - path comes from a user argument
	if err != nil {
		return fmt.Errorf("reading %s: %w", logPath, err)
	}

	builder := series.NewBuilder(series.WithLayout(cfg.TimestampLayout))
	result := builder.Build(string(data))

	outPath := opts.Out
	if outPath == "" {
		outPath = exportFileName(logPath, format)
	}

	exportOpts := export.Options{
		Format:      format,
		Compression: cfg.Export.Compression,
	}
	if err := export.WriteFile(result, exportOpts, outPath); err != nil {
		return fmt.Errorf("exporting to %s: %w", outPath, err)
	}

	if result.Empty() {
		fmt.Println(output.NoDataNotice)
		fmt.Printf("Wrote empty table to %s\n", outPath)
		ExitCode = 1
		return nil
	}

	fmt.Printf("Wrote %d rows to %s\n", len(result.Rows), outPath)
	return nil
}

// exportFileName derives the default output path from the log file name.
func exportFileName(logPath string, format export.Format) string {
	base := filepath.Base(logPath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + string(format)
}
