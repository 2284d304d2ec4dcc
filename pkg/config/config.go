package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Load builds a validated configuration. The path may be empty, in
// which case only defaults and environment overrides apply.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in per-webhook
// defaults.
func Validate(cfg *Config) error {
	if err := validateLayout(cfg.TimestampLayout); err != nil {
		return fmt.Errorf("timestamp_layout: %w", err)
	}

	if err := validateLogging(&cfg.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := validateExport(&cfg.Export); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateLayout(layout string) error {
	if layout == "" {
		return errors.New("layout is required")
	}

	// A layout is usable when a formatted time parses back under it.
	ref := time.Date(2024, 1, 15, 9, 30, 0, 123000000, time.UTC)
	if _, err := time.Parse(layout, ref.Format(layout)); err != nil {
		return fmt.Errorf("layout does not round-trip: %w", err)
	}

	return nil
}

func validateLogging(lc *LoggingConfig) error {
	switch lc.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q (must be debug, info, warn, or error)", lc.Level)
	}

	switch lc.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q (must be text or json)", lc.Format)
	}

	if lc.Output == "" {
		return errors.New("output is required")
	}

	if lc.MaxAgeDays < 0 {
		return errors.New("max_age_days must be >= 0")
	}

	return nil
}

func validateServer(sc *ServerConfig) error {
	if sc.Addr == "" {
		return errors.New("addr is required")
	}

	if sc.MaxUploadBytes <= 0 {
		return errors.New("max_upload_bytes must be > 0")
	}

	return nil
}

func validateExport(ec *ExportConfig) error {
	switch ec.Format {
	case "csv", "xlsx", "parquet":
	default:
		return fmt.Errorf("invalid format %q (must be csv, xlsx, or parquet)", ec.Format)
	}

	switch ec.Compression {
	case "snappy", "gzip", "none":
	default:
		return fmt.Errorf("invalid compression %q (must be snappy, gzip, or none)", ec.Compression)
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnData, WebhookTriggerAlways, WebhookTriggerNever:
			// Valid
		default:
			return fmt.Errorf("invalid trigger %q (must be on_data, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnData
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		varName := s[1:]
		return os.Getenv(varName)
	}

	return s
}
