package config

import (
	"time"

	"oilens/pkg/parser"
)

// Default values for configuration.
const (
	DefaultWebhookTimeout    = 10 * time.Second
	DefaultServerAddr        = ":8501"
	DefaultMaxUploadBytes    = 32 << 20
	DefaultExportFormat      = "csv"
	DefaultExportCompression = "snappy"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// OILENS_TIMESTAMP_LAYOUT or OILENS_LOGGING_LEVEL.
const EnvPrefix = "OILENS"

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogSources:      []string{},
		TimestampLayout: parser.DefaultLayout,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Export: ExportConfig{
			Format:      DefaultExportFormat,
			Compression: DefaultExportCompression,
		},
	}
}
