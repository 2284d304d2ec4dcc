// Package extract pulls open-interest pairs and ATM strike tokens out
// of parsed trading-log messages.
//
// Both extractors work on the message body only (no timestamp prefix)
// and report absence through their second return value. A message that
// carries neither marker simply yields nothing; that is the common case
// in a real trading log.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// OIMarker gates open-interest extraction. The engine logs CE and
	// PE open interest on a single line introduced by this literal.
	OIMarker = "ATM CE OI:"

	// StrikeMarker gates strike extraction.
	StrikeMarker = "ATM strikes:"
)

var (
	// oiPattern captures the digits of one open-interest figure. The
	// digits must immediately follow "OI:" with no intervening space.
	oiPattern = regexp.MustCompile(`OI:(\d+)`)

	// strikePattern matches a BANKNIFTY option instrument code and
	// captures the strike: the digit run between the expiry token
	// (weekly N/F plus week digits, or a month abbreviation) and the
	// CE/PE suffix.
	strikePattern = regexp.MustCompile(`BANKNIFTY\d+(?:[NF]|JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)(\d+)(?:CE|PE)`)
)

// OIPair is one CE/PE open-interest observation.
type OIPair struct {
	CE int64
	PE int64
}

// Diff returns the signed difference CE minus PE.
func (p OIPair) Diff() int64 {
	return p.CE - p.PE
}

// OI extracts a CE/PE open-interest pair from a log message. The first
// OI figure on the line is CE, the second PE. Messages without the
// marker, with fewer than two figures, or with figures too large for
// int64 yield no pair.
func OI(message string) (OIPair, bool) {
	if !strings.Contains(message, OIMarker) {
		return OIPair{}, false
	}

	// Figures beyond the second are ignored.
	matches := oiPattern.FindAllStringSubmatch(message, 2)
	if len(matches) < 2 {
		return OIPair{}, false
	}

	ce, err := strconv.ParseInt(matches[0][1], 10, 64)
	if err != nil {
		return OIPair{}, false
	}

	pe, err := strconv.ParseInt(matches[1][1], 10, 64)
	if err != nil {
		return OIPair{}, false
	}

	return OIPair{CE: ce, PE: pe}, true
}

// Strike extracts the strike from the first BANKNIFTY instrument code
// on a log message. The strike keeps its textual form; it is a label,
// not a quantity. Messages without the marker or without a matching
// code yield nothing.
func Strike(message string) (string, bool) {
	if !strings.Contains(message, StrikeMarker) {
		return "", false
	}

	m := strikePattern.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}

	return m[1], true
}
