// Package config provides configuration loading and validation for
// OILens.
package config

import "time"

// Config is the root configuration structure. Values come from
// defaults, then an optional YAML file, then OILENS_* environment
// variables, in that order.
type Config struct {
	// LogSources lists log file paths or glob patterns to extract from
	// when a command is not given explicit files.
	LogSources []string `yaml:"log_sources,omitempty" envconfig:"LOG_SOURCES"`

	// TimestampLayout is the Go time layout for the log line prefix.
	// See https://pkg.go.dev/time#pkg-constants for format.
	TimestampLayout string `yaml:"timestamp_layout,omitempty" envconfig:"TIMESTAMP_LAYOUT"`

	Logging LoggingConfig `yaml:"logging,omitempty" envconfig:"LOGGING"`
	Server  ServerConfig  `yaml:"server,omitempty" envconfig:"SERVER"`
	Export  ExportConfig  `yaml:"export,omitempty" envconfig:"EXPORT"`

	// Webhooks are delivery targets for extraction reports.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty" ignored:"true"`
}

// LoggingConfig controls the diagnostic logger, not the trading logs
// being extracted.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" envconfig:"LEVEL"`
	Format string `yaml:"format,omitempty" envconfig:"FORMAT"`

	// Output is "stdout", "stderr", or a file path. File output
	// rotates by age.
	Output     string `yaml:"output,omitempty" envconfig:"OUTPUT"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty" envconfig:"MAX_AGE_DAYS"`
}

// ServerConfig controls the HTTP inspection endpoint.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty" envconfig:"ADDR"`

	// MaxUploadBytes caps the size of an uploaded log file.
	MaxUploadBytes int64 `yaml:"max_upload_bytes,omitempty" envconfig:"MAX_UPLOAD_BYTES"`
}

// ExportConfig controls the default table export behavior.
type ExportConfig struct {
	// Format is csv, xlsx, or parquet.
	Format string `yaml:"format,omitempty" envconfig:"FORMAT"`

	// Compression applies to parquet output: snappy, gzip, or none.
	Compression string `yaml:"compression,omitempty" envconfig:"COMPRESSION"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnData fires only when the extraction produced
	// rows (default).
	WebhookTriggerOnData WebhookTrigger = "on_data"
	// WebhookTriggerAlways fires after every extraction.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for delivering extraction
// reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication. Values of
	// the form ${VAR} or $VAR are read from the environment.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_data" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
