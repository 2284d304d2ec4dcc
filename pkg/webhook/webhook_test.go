package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"oilens/pkg/config"
	"oilens/pkg/output"
	"oilens/pkg/series"
)

func reportWithData(t *testing.T) *output.Report {
	t.Helper()
	s := series.Build("2024-01-15 09:30:00,123: ATM CE OI:1500000 PE OI:1200000")
	return output.NewReport(s, "test.log", time.Millisecond)
}

func reportEmpty(t *testing.T) *output.Report {
	t.Helper()
	return output.NewReport(series.Build("garbage"), "test.log", time.Millisecond)
}

func TestSend_Success(t *testing.T) {
	var gotContentType, gotUserAgent string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), reportWithData(t), SendOptions{URL: server.URL})

	if !resp.Success() {
		t.Fatalf("Success() = false: %v", resp.Error)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotUserAgent != "oilens-webhook" {
		t.Errorf("User-Agent = %q", gotUserAgent)
	}

	var payload struct {
		Summary  map[string]interface{}   `json:"summary"`
		Rows     []map[string]interface{} `json:"rows"`
		Metadata map[string]interface{}   `json:"metadata"`
	}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if len(payload.Rows) != 1 {
		t.Errorf("payload rows = %d, want 1", len(payload.Rows))
	}
}

func TestSend_BearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), reportWithData(t), SendOptions{
		URL:   server.URL,
		Token: "secret-token",
	})

	if !resp.Success() {
		t.Fatalf("Success() = false: %v", resp.Error)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestSend_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), reportWithData(t), SendOptions{URL: server.URL})

	if resp.Success() {
		t.Fatal("Success() = true, want false")
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", resp.StatusCode)
	}
	if resp.Error == nil || !strings.Contains(resp.Error.Error(), "status 500") {
		t.Errorf("Error = %v", resp.Error)
	}
}

func TestSend_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp := client.Send(context.Background(), reportWithData(t), SendOptions{
		URL:     server.URL,
		Timeout: 20 * time.Millisecond,
	})

	if resp.Success() {
		t.Fatal("Success() = true, want false")
	}
	if resp.Error == nil {
		t.Fatal("Error = nil, want timeout error")
	}
}

func TestSend_InvalidURL(t *testing.T) {
	client := NewClient()
	resp := client.Send(context.Background(), reportWithData(t), SendOptions{URL: "://not-a-url"})

	if resp.Success() {
		t.Fatal("Success() = true, want false")
	}
}

func TestShouldFire(t *testing.T) {
	withData := reportWithData(t)
	empty := reportEmpty(t)

	tests := []struct {
		name    string
		trigger config.WebhookTrigger
		report  *output.Report
		want    bool
	}{
		{"on_data with rows", config.WebhookTriggerOnData, withData, true},
		{"on_data without rows", config.WebhookTriggerOnData, empty, false},
		{"always with rows", config.WebhookTriggerAlways, withData, true},
		{"always without rows", config.WebhookTriggerAlways, empty, true},
		{"never with rows", config.WebhookTriggerNever, withData, false},
		{"never without rows", config.WebhookTriggerNever, empty, false},
		{"empty trigger with rows", "", withData, true},
		{"empty trigger without rows", "", empty, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldFire(tt.trigger, tt.report); got != tt.want {
				t.Errorf("ShouldFire(%q) = %v, want %v", tt.trigger, got, tt.want)
			}
		})
	}
}

func TestResponse_Success(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want bool
	}{
		{"200", Response{StatusCode: 200}, true},
		{"204", Response{StatusCode: 204}, true},
		{"404", Response{StatusCode: 404}, false},
		{"error set", Response{StatusCode: 200, Error: io.EOF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Success(); got != tt.want {
				t.Errorf("Success() = %v, want %v", got, tt.want)
			}
		})
	}
}
