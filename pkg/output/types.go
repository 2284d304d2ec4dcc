// Package output provides report construction and rendering for
// extraction results.
package output

import (
	"time"

	"github.com/google/uuid"

	"oilens/pkg/series"
)

// NoDataNotice is the operator-facing message for an extraction that
// produced no rows.
const NoDataNotice = "No valid data found in the log file."

// Report is the complete extraction output for one log source.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Rows is the sparse tabular view of the series, in series order.
	Rows []series.TableRow `json:"rows"`

	// Metadata provides context about the extraction run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics. The averages cover the
// open-interest rows only and are absent when there are none.
type Summary struct {
	LinesScanned int `json:"lines_scanned"`
	LinesParsed  int `json:"lines_parsed"`
	OIRows       int `json:"oi_rows"`
	StrikeRows   int `json:"strike_rows"`

	AvgCEOI         *float64 `json:"avg_ce_oi,omitempty"`
	AvgPEOI         *float64 `json:"avg_pe_oi,omitempty"`
	AvgOIDifference *float64 `json:"avg_oi_difference,omitempty"`
}

// Metadata provides context about the extraction run.
type Metadata struct {
	// RunID uniquely identifies this extraction run.
	RunID string `json:"run_id"`

	// Source names the log that was extracted: a file path or an
	// upload label.
	Source string `json:"source"`

	// ProcessedAt is when the extraction was performed.
	ProcessedAt time.Time `json:"processed_at"`

	// Duration is how long the extraction took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from an extraction series.
func NewReport(s *series.Series, source string, elapsed time.Duration) *Report {
	report := &Report{
		Rows: s.Table(),
		Summary: Summary{
			LinesScanned: s.Stats.LinesScanned,
			LinesParsed:  s.Stats.LinesParsed,
			OIRows:       s.Stats.OIRows,
			StrikeRows:   s.Stats.StrikeRows,
		},
		Metadata: Metadata{
			RunID:       uuid.NewString(),
			Source:      source,
			ProcessedAt: time.Now().UTC(),
			Duration:    elapsed,
		},
	}

	if avg, ok := s.Means(); ok {
		report.Summary.AvgCEOI = &avg.CEOI
		report.Summary.AvgPEOI = &avg.PEOI
		report.Summary.AvgOIDifference = &avg.OIDifference
	}

	return report
}

// HasData returns true if the extraction produced any rows.
func (r *Report) HasData() bool {
	return len(r.Rows) > 0
}
