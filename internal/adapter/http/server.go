// Package adapthttp is the driving HTTP adapter: a JSON API under /api,
// Prometheus metrics at /metrics and the static web UI at /.
package adapthttp

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"temptrack/internal/app"
	"temptrack/internal/domain"
)

// Services groups the application services the API exposes.
type Services struct {
	Readings *app.ReadingService
	Cycles   *app.CycleService
	Notes    *app.NoteService
	Charts   *app.ChartsService
	Analysis *app.AnalysisService
	Export   *app.ExportService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc     Services
	webDir  string
	today   func() domain.Date
	metrics *metrics
}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string) *Server {
	return &Server{svc: svc, webDir: webDir, today: domain.Today, metrics: newMetrics()}
}

// WithToday replaces the clock used for "today" (for tests).
func (s *Server) WithToday(fn func() domain.Date) *Server {
	s.today = fn
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	route := func(pattern string, h http.HandlerFunc) {
		api.Handle(pattern, s.metrics.instrument(pattern, h))
	}

	route("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	route("/readings", s.handleReadings)
	route("/readings/delete", s.handleReadingsDelete)

	route("/cycles", s.handleCycles)
	route("/cycles/start", s.handleCycleStart)
	route("/cycles/delete", s.handleCycleDelete)
	route("/cycle/current", s.handleCycleCurrent)
	route("/cycle/phase", s.handleCyclePhase)
	route("/cycle/stats", s.handleCycleStats)
	route("/cycle/prediction", s.handleCyclePrediction)

	route("/notes", s.handleNotes)
	route("/notes/delete", s.handleNotesDelete)

	route("/charts/daily", s.handleChartsDaily)
	route("/analysis", s.handleAnalysis)
	route("/export.csv", s.handleExportCSV)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	root.Handle("/", spaFromDisk(s.webDir))

	return withNoCache(s.loggingMiddleware(root))
}
