// Package parser splits raw trading-log lines into a timestamp and a
// message body.
package parser

import (
	"regexp"
	"strings"
	"time"
)

const (
	// Delimiter separates the timestamp prefix from the message body.
	// Only the first occurrence counts; later ones belong to the message.
	Delimiter = ": "

	// DefaultLayout matches the Python logging asctime format the
	// trading engine writes: "2024-01-15 09:30:00,123".
	DefaultLayout = "2006-01-02 15:04:05,000"
)

// defaultPrefixPattern pins the default layout to comma-separated
// milliseconds. time.Parse alone would also accept a period separator.
var defaultPrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3}$`)

// Entry is one successfully parsed log line.
type Entry struct {
	// Timestamp is the parsed prefix.
	Timestamp time.Time

	// Message is everything after the first delimiter. May be empty.
	Message string
}

// LineParser parses individual log lines using a fixed timestamp layout.
type LineParser struct {
	layout string
}

// New creates a LineParser for the default trading-log layout.
func New() *LineParser {
	return NewWithLayout(DefaultLayout)
}

// NewWithLayout creates a LineParser for a custom Go time layout.
func NewWithLayout(layout string) *LineParser {
	return &LineParser{layout: layout}
}

// Layout returns the Go time layout this parser expects.
func (p *LineParser) Layout() string {
	return p.layout
}

// Parse splits a line at the first delimiter and parses the prefix as a
// timestamp. The second return value is false when the line doesn't
// conform.
func (p *LineParser) Parse(line string) (Entry, bool) {
	prefix, message, found := strings.Cut(line, Delimiter)
	if !found {
		return Entry{}, false
	}

	if p.layout == DefaultLayout && !defaultPrefixPattern.MatchString(prefix) {
		return Entry{}, false
	}

	ts, err := time.Parse(p.layout, prefix)
	if err != nil {
		return Entry{}, false
	}

	return Entry{Timestamp: ts, Message: message}, true
}
