// Package server exposes the extraction pipeline over HTTP for
// dashboard frontends.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"oilens/pkg/config"
	"oilens/pkg/export"
	"oilens/pkg/logger"
	"oilens/pkg/output"
	"oilens/pkg/series"
)

const shutdownTimeout = 10 * time.Second

// Server handles extraction requests for uploaded log files.
type Server struct {
	cfg     *config.Config
	builder *series.Builder
	log     *logger.Log
}

// New creates a Server using the configured timestamp layout.
func New(cfg *config.Config, log *logger.Log) *Server {
	return &Server{
		cfg:     cfg,
		builder: series.NewBuilder(series.WithLayout(cfg.TimestampLayout)),
		log:     log,
	}
}

// Routes returns the HTTP routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Post("/inspect", s.handleInspect)
		r.Post("/export", s.handleExport)
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.WithComponent("server").WithField("addr", s.cfg.Server.Addr).Info("listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// handleInspect extracts an uploaded log file and returns the full
// report. An upload with no extractable rows is still a valid result.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	data, name, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result := s.builder.Build(string(data))
	report := output.NewReport(result, "upload:"+name, time.Since(start))

	s.log.WithComponent("server").WithFields(logger.Fields{
		"source": report.Metadata.Source,
		"rows":   len(report.Rows),
		"run_id": report.Metadata.RunID,
	}).Info("inspected upload")

	render.JSON(w, r, report)
}

// handleExport extracts an uploaded log file and streams the series
// back as a table file. The format query parameter defaults to the
// configured export format.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, name, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = s.cfg.Export.Format
	}
	format, err := export.ParseFormat(formatParam)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result := s.builder.Build(string(data))

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", exportName(name, format)))

	opts := export.Options{Format: format, Compression: s.cfg.Export.Compression}
	if err := export.Write(result, opts, w); err != nil {
		// Headers are gone; all we can do is log.
		s.log.WithComponent("server").WithError(err).Error("export failed mid-stream")
	}
}

// readUpload pulls the log file out of a multipart request. On failure
// it writes the error response and returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.renderError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", maxErr.Limit))
			return nil, "", false
		}
		s.renderError(w, r, http.StatusBadRequest,
			`multipart form with a "file" field is required`)
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.renderError(w, r, http.StatusInternalServerError, "reading upload failed")
		return nil, "", false
	}

	return data, header.Filename, true
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}

func contentType(format export.Format) string {
	switch format {
	case export.FormatCSV:
		return "text/csv"
	case export.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// exportName derives the download filename from the uploaded one.
func exportName(uploaded string, format export.Format) string {
	base := path.Base(uploaded)
	if base == "." || base == "/" || base == "" {
		base = "series"
	}
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + string(format)
}
