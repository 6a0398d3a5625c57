package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/methane-report-service/internal/domain"
	"github.com/couchcryptid/methane-report-service/internal/render"
	"github.com/couchcryptid/methane-report-service/internal/report"
)

const maxBodyBytes = 1 << 20

// ReportBuilder builds documents on request.
type ReportBuilder interface {
	Build(ctx context.Context, req report.Request) (domain.Document, error)
	ParseOverrides(source string, data []byte) domain.Overrides
	Layouts() []string
}

// Server exposes health, readiness, metrics and report endpoints.
type Server struct {
	httpServer *http.Server
	builder    ReportBuilder
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /report and /layouts routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, builder ReportBuilder, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		builder: builder,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("POST /report", s.handleReportWithOverrides)
	mux.HandleFunc("GET /layouts", s.handleLayouts)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.build(w, r, report.Request{Layout: r.URL.Query().Get("layout")})
}

// handleReportWithOverrides builds from the request body. A malformed body
// renders with defaults.
func (s *Server) handleReportWithOverrides(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read body: " + err.Error()})
		return
	}
	s.build(w, r, report.Request{
		Layout:    r.URL.Query().Get("layout"),
		Overrides: s.builder.ParseOverrides("http", body),
	})
}

func (s *Server) build(w http.ResponseWriter, r *http.Request, req report.Request) {
	doc, err := s.builder.Build(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrUnknownLayout) {
			status = http.StatusNotFound
		} else {
			s.logger.Error("report build failed", "layout", req.Layout, "error", err)
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("X-Document-ID", doc.ID)
	w.Header().Set("Last-Modified", doc.GeneratedAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.HTML); err != nil {
		s.logger.Warn("write report", "error", err)
	}
}

func (s *Server) handleLayouts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"layouts": s.builder.Layouts()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
