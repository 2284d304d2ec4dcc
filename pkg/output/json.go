package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter renders extraction reports as one indented JSON
// document carrying the summary, the sparse series rows, and the run
// metadata. Cells a row kind doesn't carry are omitted, not null.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

// formatQuiet emits the Summary object alone. An extraction that
// produced no rows encodes as zero counters; NoDataNotice belongs to
// the text format.
func (f *JSONFormatter) formatQuiet(report *Report, w io.Writer) error {
	return encodeIndented(w, report.Summary)
}

func (f *JSONFormatter) formatFull(report *Report, w io.Writer) error {
	return encodeIndented(w, report)
}

func encodeIndented(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
