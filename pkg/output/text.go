package output

import (
	"context"
	"fmt"
	"io"

	"oilens/pkg/series"
)

// rowTimeLayout is the display form for row timestamps. The period is
// a display choice; the log's own separator is the comma.
const rowTimeLayout = "2006-01-02 15:04:05.000"

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	if !report.HasData() {
		fmt.Fprintf(w, "OILens: no valid data (%s)\n", report.Metadata.Source)
		return nil
	}

	fmt.Fprintf(w, "OILens: %d rows (%d open interest, %d strike) from %s\n",
		len(report.Rows),
		report.Summary.OIRows,
		report.Summary.StrikeRows,
		report.Metadata.Source)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== OILens Extraction Report ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Source: %s\n", report.Metadata.Source)
	fmt.Fprintln(w)

	if !report.HasData() {
		fmt.Fprintln(w, NoDataNotice)
	} else {
		for _, row := range report.Rows {
			f.formatRow(row, w)
		}
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d rows (%d open interest, %d strike)\n",
		len(report.Rows),
		report.Summary.OIRows,
		report.Summary.StrikeRows)

	if report.Summary.AvgCEOI != nil {
		fmt.Fprintf(w, "Averages: CE OI %.1f, PE OI %.1f, OI diff %+.1f\n",
			*report.Summary.AvgCEOI,
			*report.Summary.AvgPEOI,
			*report.Summary.AvgOIDifference)
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Lines scanned: %d (parsed: %d)\n",
			report.Summary.LinesScanned,
			report.Summary.LinesParsed)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
		fmt.Fprintf(w, "Run: %s\n", report.Metadata.RunID)
	}

	return nil
}

func (f *TextFormatter) formatRow(row series.TableRow, w io.Writer) {
	ts := row.Timestamp.Format(rowTimeLayout)

	if row.CEOI != nil {
		fmt.Fprintf(w, "  %s  OI      CE=%d PE=%d diff=%+d\n",
			ts, *row.CEOI, *row.PEOI, *row.OIDifference)
		return
	}

	if row.Strike != nil {
		fmt.Fprintf(w, "  %s  STRIKE  %s\n", ts, *row.Strike)
	}
}
