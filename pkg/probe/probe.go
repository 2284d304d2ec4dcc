// Package probe samples trading logs to preview what extraction will
// see, without building a full series.
package probe

import (
	"bufio"
	"context"
	"os"
	"strings"
	"time"

	"oilens/pkg/extract"
	"oilens/pkg/parser"
)

// Result holds the outcome of probing a log sample.
type Result struct {
	// Layout is the timestamp layout the probe parsed with.
	Layout string

	// SampledLines is the number of content lines examined.
	SampledLines int

	// ParsedLines is how many of them had a valid timestamp prefix.
	ParsedLines int

	// OIMatches and StrikeMatches count lines whose messages carried
	// extractable data.
	OIMatches     int
	StrikeMatches int

	// SampleOILine and SampleStrikeLine are the first matching lines,
	// kept for operator inspection.
	SampleOILine     string
	SampleStrikeLine string

	// FirstTimestamp and LastTimestamp bound the parsed sample in
	// input order, not clock order.
	FirstTimestamp time.Time
	LastTimestamp  time.Time
}

// ParseConfidence is the fraction of sampled lines that parsed.
func (r *Result) ParseConfidence() float64 {
	if r.SampledLines == 0 {
		return 0
	}
	return float64(r.ParsedLines) / float64(r.SampledLines)
}

// HasData returns true if any sampled line carried extractable data.
func (r *Result) HasData() bool {
	return r.OIMatches > 0 || r.StrikeMatches > 0
}

// Prober samples log lines and reports parse and marker statistics.
type Prober struct {
	parser     *parser.LineParser
	sampleSize int
}

// Option configures the Prober.
type Option func(*Prober)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(p *Prober) {
		if n > 0 {
			p.sampleSize = n
		}
	}
}

// WithLayout overrides the timestamp layout used for parsing.
func WithLayout(layout string) Option {
	return func(p *Prober) {
		p.parser = parser.NewWithLayout(layout)
	}
}

// New creates a Prober with the default trading-log layout.
func New(opts ...Option) *Prober {
	p := &Prober{
		parser:     parser.New(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProbeFile samples the head of a log file.
func (p *Prober) ProbeFile(ctx context.Context, path string) (*Result, error) {
	lines, err := p.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return p.ProbeLines(lines), nil
}

// ProbeLines examines a slice of log lines.
func (p *Prober) ProbeLines(lines []string) *Result {
	result := &Result{Layout: p.parser.Layout()}

	for _, line := range lines {
		result.SampledLines++

		entry, ok := p.parser.Parse(line)
		if !ok {
			continue
		}
		result.ParsedLines++

		if result.ParsedLines == 1 {
			result.FirstTimestamp = entry.Timestamp
		}
		result.LastTimestamp = entry.Timestamp

		if _, ok := extract.OI(entry.Message); ok {
			if result.OIMatches == 0 {
				result.SampleOILine = line
			}
			result.OIMatches++
		}

		if _, ok := extract.Strike(entry.Message); ok {
			if result.StrikeMatches == 0 {
				result.SampleStrikeLine = line
			}
			result.StrikeMatches++
		}
	}

	return result
}

// sampleFile reads up to sampleSize content lines from the head of a
// file. Blank lines don't count against the sample.
func (p *Prober) sampleFile(_ context.Context, path string) ([]string, error) {
	file, err := os.Open(path) // #nosec G304 - path is provided by user via CLI
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() && len(lines) < p.sampleSize {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
