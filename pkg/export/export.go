// Package export writes extraction series as table files for charting
// and spreadsheet work.
//
// All formats share the same sparse five-column layout: timestamp,
// ce_oi, pe_oi, oi_difference, strike. Cells a row doesn't carry stay
// empty (CSV, XLSX) or null (parquet).
package export

import (
	"fmt"
	"io"
	"os"

	"oilens/pkg/series"
)

// Format identifies an export file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatXLSX, FormatParquet:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown export format %q (use csv, xlsx, or parquet)", s)
	}
}

// Options controls an export.
type Options struct {
	Format Format

	// Compression applies to parquet output: snappy, gzip, or none.
	Compression string
}

// columns is the table header, shared by every format.
var columns = []string{"timestamp", "ce_oi", "pe_oi", "oi_difference", "strike"}

// cellTimeLayout renders row timestamps in CSV and XLSX cells.
const cellTimeLayout = "2006-01-02 15:04:05.000"

// Write renders the series to w. An empty series produces a valid
// header-only table.
func Write(s *series.Series, opts Options, w io.Writer) error {
	switch opts.Format {
	case FormatCSV:
		return writeCSV(s, w)
	case FormatXLSX:
		return writeXLSX(s, w)
	case FormatParquet:
		return writeParquet(s, opts.Compression, w)
	default:
		return fmt.Errorf("unknown export format %q", opts.Format)
	}
}

// WriteFile renders the series to a new file at path.
func WriteFile(s *series.Series, opts Options, path string) error {
	f, err := os.Create(path) // #nosec G304 -- user-provided export path is expected
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	if err := Write(s, opts, f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
