package parser

import (
	"testing"
	"time"
)

func TestParse_ValidLine(t *testing.T) {
	p := New()

	entry, ok := p.Parse("2024-01-15 09:30:00,123: ATM CE OI:1500000 PE OI:1200000")
	if !ok {
		t.Fatal("Parse() ok = false, want true")
	}

	want := time.Date(2024, 1, 15, 9, 30, 0, 123000000, time.UTC)
	if !entry.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", entry.Timestamp, want)
	}

	if entry.Message != "ATM CE OI:1500000 PE OI:1200000" {
		t.Errorf("Message = %q", entry.Message)
	}
}

func TestParse_DelimiterInMessage(t *testing.T) {
	p := New()

	entry, ok := p.Parse("2024-01-15 09:30:00,123: order: filled: qty 25")
	if !ok {
		t.Fatal("Parse() ok = false, want true")
	}

	// Only the first delimiter splits; the rest stays in the message.
	if entry.Message != "order: filled: qty 25" {
		t.Errorf("Message = %q, want %q", entry.Message, "order: filled: qty 25")
	}
}

func TestParse_MalformedLines(t *testing.T) {
	p := New()

	tests := []struct {
		name string
		line string
	}{
		{"empty line", ""},
		{"no delimiter", "just some text without structure"},
		{"timestamp without delimiter", "2024-01-15 09:30:00,123"},
		{"colon without space", "2024-01-15 09:30:00,123:ATM CE OI:1500000"},
		{"garbage prefix", "not a timestamp: ATM CE OI:1500000 PE OI:1200000"},
		{"period milliseconds", "2024-01-15 09:30:00.123: ATM CE OI:1500000 PE OI:1200000"},
		{"two digit milliseconds", "2024-01-15 09:30:00,12: some message"},
		{"missing milliseconds", "2024-01-15 09:30:00: some message"},
		{"date only", "2024-01-15: some message"},
		{"month out of range", "2024-13-15 09:30:00,123: some message"},
		{"hour out of range", "2024-01-15 25:30:00,123: some message"},
		{"leading space", " 2024-01-15 09:30:00,123: some message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := p.Parse(tt.line); ok {
				t.Errorf("Parse(%q) ok = true, want false", tt.line)
			}
		})
	}
}

func TestParse_EmptyMessage(t *testing.T) {
	p := New()

	entry, ok := p.Parse("2024-01-15 09:30:00,123: ")
	if !ok {
		t.Fatal("Parse() ok = false, want true")
	}
	if entry.Message != "" {
		t.Errorf("Message = %q, want empty", entry.Message)
	}
}

func TestParse_MillisecondPrecision(t *testing.T) {
	p := New()

	entry, ok := p.Parse("2024-01-15 09:30:00,001: tick")
	if !ok {
		t.Fatal("Parse() ok = false, want true")
	}

	if got := entry.Timestamp.Nanosecond(); got != 1000000 {
		t.Errorf("Nanosecond() = %d, want 1000000", got)
	}
}

func TestParse_CustomLayout(t *testing.T) {
	p := NewWithLayout("2006-01-02T15:04:05")

	entry, ok := p.Parse("2024-01-15T09:30:00: ATM strikes: BANKNIFTY24JAN45000CE")
	if !ok {
		t.Fatal("Parse() ok = false, want true")
	}

	want := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if !entry.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", entry.Timestamp, want)
	}
}

func TestLayout(t *testing.T) {
	if got := New().Layout(); got != DefaultLayout {
		t.Errorf("Layout() = %q, want %q", got, DefaultLayout)
	}
}
