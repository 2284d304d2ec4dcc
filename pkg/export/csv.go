package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"oilens/pkg/series"
)

func writeCSV(s *series.Series, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range s.Table() {
		record := make([]string, len(columns))
		record[0] = row.Timestamp.Format(cellTimeLayout)

		if row.CEOI != nil {
			record[1] = strconv.FormatInt(*row.CEOI, 10)
			record[2] = strconv.FormatInt(*row.PEOI, 10)
			record[3] = strconv.FormatInt(*row.OIDifference, 10)
		}
		if row.Strike != nil {
			record[4] = *row.Strike
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
