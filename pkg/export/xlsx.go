package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"oilens/pkg/series"
)

const (
	sheetSeries  = "TimeSeries"
	sheetSummary = "Summary"
)

func writeXLSX(s *series.Series, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSeries); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	cells := make([][]interface{}, 0, len(s.Rows)+1)

	header := make([]interface{}, len(columns))
	for i, name := range columns {
		header[i] = name
	}
	cells = append(cells, header)

	for _, row := range s.Table() {
		r := make([]interface{}, len(columns))
		r[0] = row.Timestamp.Format(cellTimeLayout)
		if row.CEOI != nil {
			r[1], r[2], r[3] = *row.CEOI, *row.PEOI, *row.OIDifference
		}
		if row.Strike != nil {
			r[4] = *row.Strike
		}
		cells = append(cells, r)
	}

	if err := setCells(f, sheetSeries, cells); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("adding summary sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Lines scanned", s.Stats.LinesScanned},
		{"Lines parsed", s.Stats.LinesParsed},
		{"OI rows", s.Stats.OIRows},
		{"Strike rows", s.Stats.StrikeRows},
	}
	if avg, ok := s.Means(); ok {
		summary = append(summary,
			[]interface{}{"Avg CE OI", avg.CEOI},
			[]interface{}{"Avg PE OI", avg.PEOI},
			[]interface{}{"Avg OI difference", avg.OIDifference},
		)
	}

	if err := setCells(f, sheetSummary, summary); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// setCells fills a sheet from the top-left corner, skipping nil cells.
func setCells(f *excelize.File, sheet string, cells [][]interface{}) error {
	for i, rowCells := range cells {
		for j, v := range rowCells {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("locating cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("setting cell %s: %w", cell, err)
			}
		}
	}
	return nil
}
