// Package logger provides the shared structured logger. Diagnostics go
// to stderr by default so extraction output on stdout stays clean.
package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"oilens/pkg/config"
)

// Fields is an alias for logrus.Fields.
type Fields = logrus.Fields

// Log wraps logrus.Logger.
type Log struct {
	*logrus.Logger
}

var globalLogger *Log

func init() {
	globalLogger = New()
}

// New creates a logger with the default settings (info, text, stderr).
func New() *Log {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return &Log{Logger: l}
}

// GetLogger returns the process-wide logger.
func GetLogger() *Log {
	return globalLogger
}

// WithComponent tags entries with the subsystem that emits them.
func (l *Log) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

// Configure applies the logging section of the configuration.
func (l *Log) Configure(lc config.LoggingConfig) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(lc.Level))
	if err != nil {
		return fmt.Errorf("invalid log level %q", lc.Level)
	}
	l.SetLevel(lvl)

	switch lc.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	case "text":
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		return fmt.Errorf("invalid log format %q", lc.Format)
	}

	switch lc.Output {
	case "stdout":
		l.SetOutput(os.Stdout)
	case "stderr", "":
		l.SetOutput(os.Stderr)
	default:
		// A file path. Rotate by age when configured.
		if lc.MaxAgeDays > 0 {
			l.SetOutput(&lumberjack.Logger{
				Filename: lc.Output,
				MaxAge:   lc.MaxAgeDays,
				MaxSize:  100,
				Compress: true,
			})
		} else {
			file, err := os.OpenFile(lc.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644) // #nosec G304 -- operator-provided log path
			if err != nil {
				return fmt.Errorf("opening log file %q: %w", lc.Output, err)
			}
			l.SetOutput(file)
		}
	}

	return nil
}
