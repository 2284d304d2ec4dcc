// Package series assembles extracted open-interest and strike
// observations into an ordered time series.
//
// The series preserves input order. Two rows may share a timestamp and
// timestamps may go backwards; the log is the authority on ordering,
// not the clock values it contains.
package series

import (
	"strings"
	"time"

	"oilens/pkg/extract"
	"oilens/pkg/parser"
)

// Row is one observation in a Series. Only OIRecord and StrikeRecord
// implement it.
type Row interface {
	// Time returns the observation timestamp.
	Time() time.Time

	row()
}

// OIRecord is an open-interest observation.
type OIRecord struct {
	Timestamp    time.Time
	CEOI         int64
	PEOI         int64
	OIDifference int64
}

// Time returns the observation timestamp.
func (r OIRecord) Time() time.Time { return r.Timestamp }

func (OIRecord) row() {}

// StrikeRecord is an ATM strike observation. The strike is kept in its
// textual form.
type StrikeRecord struct {
	Timestamp time.Time
	Strike    string
}

// Time returns the observation timestamp.
func (r StrikeRecord) Time() time.Time { return r.Timestamp }

func (StrikeRecord) row() {}

// Stats counts what the builder saw while scanning a log blob.
type Stats struct {
	// LinesScanned is the total number of lines in the input.
	LinesScanned int

	// LinesParsed is how many lines had a valid timestamp prefix.
	LinesParsed int

	// OIRows and StrikeRows count the rows by kind.
	OIRows     int
	StrikeRows int
}

// Series is the extraction output for one log blob.
type Series struct {
	Rows  []Row
	Stats Stats
}

// Empty reports whether no line yielded a row. An empty series is a
// normal outcome for a log that carries no tracked markers.
func (s *Series) Empty() bool {
	return len(s.Rows) == 0
}

// OIRecords returns the open-interest rows in series order.
func (s *Series) OIRecords() []OIRecord {
	var records []OIRecord
	for _, row := range s.Rows {
		if r, ok := row.(OIRecord); ok {
			records = append(records, r)
		}
	}
	return records
}

// StrikeRecords returns the strike rows in series order.
func (s *Series) StrikeRecords() []StrikeRecord {
	var records []StrikeRecord
	for _, row := range s.Rows {
		if r, ok := row.(StrikeRecord); ok {
			records = append(records, r)
		}
	}
	return records
}

// Averages holds the arithmetic means over the open-interest rows.
type Averages struct {
	CEOI         float64
	PEOI         float64
	OIDifference float64
}

// Means computes the averages over the open-interest rows. The second
// return value is false when the series has no such rows.
func (s *Series) Means() (Averages, bool) {
	records := s.OIRecords()
	if len(records) == 0 {
		return Averages{}, false
	}

	var ce, pe, diff int64
	for _, r := range records {
		ce += r.CEOI
		pe += r.PEOI
		diff += r.OIDifference
	}

	n := float64(len(records))
	return Averages{
		CEOI:         float64(ce) / n,
		PEOI:         float64(pe) / n,
		OIDifference: float64(diff) / n,
	}, true
}

// Builder runs the line parser and both extractors over a log blob.
type Builder struct {
	parser *parser.LineParser
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLayout overrides the timestamp layout used for line parsing.
func WithLayout(layout string) BuilderOption {
	return func(b *Builder) {
		b.parser = parser.NewWithLayout(layout)
	}
}

// NewBuilder creates a Builder with the default trading-log layout.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{parser: parser.New()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build scans a log blob line by line and returns the resulting series.
// Lines that don't parse are skipped. A line carrying both markers
// yields two rows with the same timestamp, open interest first.
func (b *Builder) Build(text string) *Series {
	s := &Series{}

	for _, line := range strings.Split(text, "\n") {
		s.Stats.LinesScanned++

		entry, ok := b.parser.Parse(line)
		if !ok {
			continue
		}
		s.Stats.LinesParsed++

		if pair, ok := extract.OI(entry.Message); ok {
			s.Rows = append(s.Rows, OIRecord{
				Timestamp:    entry.Timestamp,
				CEOI:         pair.CE,
				PEOI:         pair.PE,
				OIDifference: pair.Diff(),
			})
			s.Stats.OIRows++
		}

		if strike, ok := extract.Strike(entry.Message); ok {
			s.Rows = append(s.Rows, StrikeRecord{
				Timestamp: entry.Timestamp,
				Strike:    strike,
			})
			s.Stats.StrikeRows++
		}
	}

	return s
}

// Build scans a log blob with a default-configured Builder.
func Build(text string) *Series {
	return NewBuilder().Build(text)
}
