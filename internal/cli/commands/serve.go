package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"oilens/internal/server"
	"oilens/pkg/config"
	"oilens/pkg/logger"
)

// ServeOptions holds command-line options for the serve command.
type ServeOptions struct {
	Addr   string
	Config string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the extraction HTTP server",
		Long: `Run an HTTP server that extracts open interest series from uploaded
trading logs.

Endpoints:
  GET  /healthz      liveness check
  POST /api/inspect  upload a log, get the extraction report as JSON
  POST /api/export   upload a log, download the series (format query param)

The server shuts down gracefully on SIGINT and SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (defaults to the config setting)")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Path to configuration file")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}

	log := logger.GetLogger()
	if err := log.Configure(cfg.Logging); err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, log)
	return srv.ListenAndServe(ctx)
}
