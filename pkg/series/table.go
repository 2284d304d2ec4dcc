package series

import "time"

// TableRow is the sparse tabular view of one row. Fields that the row
// kind doesn't carry stay nil and are omitted from JSON; downstream
// consumers must not read absent cells as zero.
type TableRow struct {
	Timestamp    time.Time `json:"timestamp"`
	CEOI         *int64    `json:"ce_oi,omitempty"`
	PEOI         *int64    `json:"pe_oi,omitempty"`
	OIDifference *int64    `json:"oi_difference,omitempty"`
	Strike       *string   `json:"strike,omitempty"`
}

// Table projects the series onto its sparse tabular form, preserving
// series order.
func (s *Series) Table() []TableRow {
	rows := make([]TableRow, 0, len(s.Rows))

	for _, row := range s.Rows {
		switch r := row.(type) {
		case OIRecord:
			ce, pe, diff := r.CEOI, r.PEOI, r.OIDifference
			rows = append(rows, TableRow{
				Timestamp:    r.Timestamp,
				CEOI:         &ce,
				PEOI:         &pe,
				OIDifference: &diff,
			})
		case StrikeRecord:
			strike := r.Strike
			rows = append(rows, TableRow{
				Timestamp: r.Timestamp,
				Strike:    &strike,
			})
		}
	}

	return rows
}
