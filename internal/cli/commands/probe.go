package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"oilens/pkg/probe"
)

// ProbeOptions holds command-line options for the probe command.
type ProbeOptions struct {
	Output     string
	SampleSize int
	Layout     string
}

// NewProbeCommand creates the probe command.
func NewProbeCommand() *cobra.Command {
	opts := &ProbeOptions{}

	cmd := &cobra.Command{
		Use:   "probe <log-file>",
		Short: "Probe a log file for extractable data",
		Long: `Sample lines from a trading log and report what a full extraction
would find.

Shows how many sampled lines parse against the timestamp layout, how
many carry open interest or strike markers, and the time range covered
by the sample. Useful for checking a log before running extract on it.

Example:
  oilens probe banknifty.log
  oilens probe --sample 500 large.log
  oilens probe -o json banknifty.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().StringVar(&opts.Layout, "layout", "", "Timestamp layout to probe with (defaults to the standard layout)")

	return cmd
}

func runProbe(cmd *cobra.Command, args []string, opts *ProbeOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Check file exists
	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	probeOpts := []probe.Option{probe.WithSampleSize(opts.SampleSize)}
	if opts.Layout != "" {
		probeOpts = append(probeOpts, probe.WithLayout(opts.Layout))
	}
	p := probe.New(probeOpts...)

	result, err := p.ProbeFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}

	switch opts.Output {
	case "json":
		return outputProbeJSON(result, logFile)
	default:
		return outputProbeText(result, logFile)
	}
}

const probeTimeLayout = "2006-01-02 15:04:05.000"

func outputProbeText(result *probe.Result, logFile string) error {
	fmt.Println("=== Log Format Probe ===")
	fmt.Println()
	fmt.Printf("File: %s\n", logFile)
	fmt.Printf("Timestamp layout: %s\n", result.Layout)
	fmt.Printf("Lines sampled: %d\n", result.SampledLines)
	fmt.Printf("Lines parsed: %d (%.1f%%)\n", result.ParsedLines, result.ParseConfidence()*100)
	fmt.Println()

	if !result.HasData() {
		fmt.Println("No extractable data found in the sample.")
		fmt.Println()
		fmt.Println("Tip: The file may use a different timestamp layout.")
		fmt.Println("Check the first few lines manually or retry with --layout.")
		return nil
	}

	fmt.Printf("Open interest lines: %d\n", result.OIMatches)
	if result.SampleOILine != "" {
		fmt.Printf("  sample: %s\n", result.SampleOILine)
	}
	fmt.Printf("Strike lines: %d\n", result.StrikeMatches)
	if result.SampleStrikeLine != "" {
		fmt.Printf("  sample: %s\n", result.SampleStrikeLine)
	}
	fmt.Println()

	if !result.FirstTimestamp.IsZero() {
		fmt.Printf("Sample time range: %s to %s\n",
			result.FirstTimestamp.Format(probeTimeLayout),
			result.LastTimestamp.Format(probeTimeLayout))
	}

	return nil
}

// probeJSON is the JSON shape of a probe result.
type probeJSON struct {
	File             string  `json:"file"`
	Layout           string  `json:"layout"`
	SampledLines     int     `json:"sampled_lines"`
	ParsedLines      int     `json:"parsed_lines"`
	ParseConfidence  float64 `json:"parse_confidence"`
	OIMatches        int     `json:"oi_matches"`
	StrikeMatches    int     `json:"strike_matches"`
	SampleOILine     string  `json:"sample_oi_line,omitempty"`
	SampleStrikeLine string  `json:"sample_strike_line,omitempty"`
	FirstTimestamp   string  `json:"first_timestamp,omitempty"`
	LastTimestamp    string  `json:"last_timestamp,omitempty"`
}

func outputProbeJSON(result *probe.Result, logFile string) error {
	out := probeJSON{
		File:             logFile,
		Layout:           result.Layout,
		SampledLines:     result.SampledLines,
		ParsedLines:      result.ParsedLines,
		ParseConfidence:  result.ParseConfidence(),
		OIMatches:        result.OIMatches,
		StrikeMatches:    result.StrikeMatches,
		SampleOILine:     result.SampleOILine,
		SampleStrikeLine: result.SampleStrikeLine,
	}
	if !result.FirstTimestamp.IsZero() {
		out.FirstTimestamp = result.FirstTimestamp.Format(probeTimeLayout)
		out.LastTimestamp = result.LastTimestamp.Format(probeTimeLayout)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
