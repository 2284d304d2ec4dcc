package probe

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProbeLines(t *testing.T) {
	lines := []string{
		"2024-01-15 09:30:00,123: ATM CE OI:1500000 PE OI:1200000",
		"2024-01-15 09:30:05,200: heartbeat",
		"corrupted line",
		"2024-01-15 09:31:00,456: ATM strikes: BANKNIFTY24JAN45000CE",
	}

	result := New().ProbeLines(lines)

	if result.SampledLines != 4 {
		t.Errorf("SampledLines = %d, want 4", result.SampledLines)
	}
	if result.ParsedLines != 3 {
		t.Errorf("ParsedLines = %d, want 3", result.ParsedLines)
	}
	if result.OIMatches != 1 || result.StrikeMatches != 1 {
		t.Errorf("matches = %d OI, %d strike, want 1 each", result.OIMatches, result.StrikeMatches)
	}
	if !strings.Contains(result.SampleOILine, "ATM CE OI:1500000") {
		t.Errorf("SampleOILine = %q", result.SampleOILine)
	}
	if got := result.ParseConfidence(); got != 0.75 {
		t.Errorf("ParseConfidence() = %v, want 0.75", got)
	}
	if !result.HasData() {
		t.Error("HasData() = false, want true")
	}
	if !result.LastTimestamp.After(result.FirstTimestamp) {
		t.Errorf("timestamps: first %v, last %v", result.FirstTimestamp, result.LastTimestamp)
	}
}

func TestProbeLines_Empty(t *testing.T) {
	result := New().ProbeLines(nil)

	if result.ParseConfidence() != 0 {
		t.Errorf("ParseConfidence() = %v, want 0", result.ParseConfidence())
	}
	if result.HasData() {
		t.Error("HasData() = true, want false")
	}
}

func TestProbeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.log")
	content := strings.Join([]string{
		"2024-01-15 09:30:00,123: ATM CE OI:100 PE OI:200",
		"",
		"2024-01-15 09:31:00,456: ATM strikes: BANKNIFTY24JAN45000PE",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	result, err := New().ProbeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProbeFile() error = %v", err)
	}

	// The blank line doesn't count against the sample.
	if result.SampledLines != 2 {
		t.Errorf("SampledLines = %d, want 2", result.SampledLines)
	}
	if result.ParsedLines != 2 {
		t.Errorf("ParsedLines = %d, want 2", result.ParsedLines)
	}
}

func TestProbeFile_NotFound(t *testing.T) {
	if _, err := New().ProbeFile(context.Background(), "/nonexistent.log"); err == nil {
		t.Error("ProbeFile() error = nil, want error")
	}
}

func TestProbe_SampleSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("2024-01-15 09:30:00,123: heartbeat\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	result, err := New(WithSampleSize(10)).ProbeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProbeFile() error = %v", err)
	}

	if result.SampledLines != 10 {
		t.Errorf("SampledLines = %d, want 10", result.SampledLines)
	}
}

func TestProbe_CustomLayout(t *testing.T) {
	lines := []string{"2024-01-15T09:30:00: ATM CE OI:5 PE OI:3"}

	result := New(WithLayout("2006-01-02T15:04:05")).ProbeLines(lines)

	if result.ParsedLines != 1 {
		t.Errorf("ParsedLines = %d, want 1", result.ParsedLines)
	}
	if result.Layout != "2006-01-02T15:04:05" {
		t.Errorf("Layout = %q", result.Layout)
	}
}
