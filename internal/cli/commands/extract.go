package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"oilens/pkg/config"
	"oilens/pkg/output"
	"oilens/pkg/parser"
	"oilens/pkg/series"
	"oilens/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// maxConcurrentFiles bounds how many log files are read at once.
const maxConcurrentFiles = 4

// ExtractOptions holds command-line options for the extract command.
type ExtractOptions struct {
	Output  string
	Config  string
	Verbose bool
	Quiet   bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [log-file...]",
		Short: "Extract open interest series from trading logs",
		Long: `Extract ATM open interest readings and strike selections from trading
log files into a time-ordered series.

Extracts:
  - CE/PE open interest pairs with the signed CE-PE difference
  - ATM strike selections taken from instrument codes

Log files may be given as arguments (globs allowed) or configured as
log_sources in the configuration file.

Exit codes:
  0 - Rows extracted
  1 - No valid data found
  2 - Configuration or runtime error`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show scan counters and run metadata")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no rows")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_data", "When to fire webhook (on_data|always|never)")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *ExtractOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := config.Load(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.LogSources
	}
	if len(patterns) == 0 {
		return fmt.Errorf("no log files given (pass paths as arguments or set log_sources in the config)")
	}

	// Expand log source globs
	files, err := parser.ExpandGlobs(patterns)
	if err != nil {
		return fmt.Errorf("expanding log sources: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no log files matched patterns: %v", patterns)
	}

	builder := series.NewBuilder(series.WithLayout(cfg.TimestampLayout))

	// Process files concurrently, keeping reports in argument order.
	reports := make([]*output.Report, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()

			data, err := os.ReadFile(file) // #nosec G304 - paths come from user arguments
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}

			result := builder.Build(string(data))
			reports[i] = output.NewReport(result, file, time.Since(start))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Create formatter
	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	// Output reports
	for _, report := range reports {
		if err := formatter.Format(ctx, report, os.Stdout); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}
	}

	// Send webhooks (errors logged but don't fail extraction)
	for _, report := range reports {
		sendWebhooks(ctx, cfg, opts, report)
	}

	// Set exit code based on results
	hasData := false
	for _, report := range reports {
		if report.HasData() {
			hasData = true
			break
		}
	}
	if !hasData {
		ExitCode = 1
	}

	return nil
}

func createFormatter(opts *ExtractOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail the extraction.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *ExtractOptions, report *output.Report) {
	// Collect webhooks from config and CLI
	webhooks := collectWebhooks(cfg, opts)

	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		// Check trigger condition
		if !webhook.ShouldFire(wh.Trigger, report) {
			continue
		}

		// Send webhook
		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		// Log result
		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(os.Stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(os.Stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ExtractOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)

	// Add config file webhooks
	webhooks = append(webhooks, cfg.Webhooks...)

	// Add CLI webhook if specified
	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnData
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}
