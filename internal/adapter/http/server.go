package http

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/unemployment-dashboard/internal/adapter/chart"
	"github.com/couchcryptid/unemployment-dashboard/internal/dashboard"
	"github.com/couchcryptid/unemployment-dashboard/internal/domain"
	"github.com/couchcryptid/unemployment-dashboard/internal/observability"
)

// Chart names accepted by /api/charts/{chart}.
const (
	ChartEmployed         = "employed"
	ChartUnemploymentRate = "unemployment-rate"
	ChartSunburst         = "sunburst"
	ChartTimeSeries       = "timeseries"
)

// MessageHeader carries the placeholder text when a chart has nothing to draw.
const MessageHeader = "X-Dashboard-Message"

// DashboardService is the recompute surface the HTTP layer needs.
type DashboardService interface {
	sharedobs.ReadinessChecker
	Options() dashboard.WidgetOptions
	Recompute(ctx context.Context, p dashboard.Params) (domain.Dashboard, error)
}

// Server exposes the dashboard API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        DashboardService
	renderer   *chart.Renderer
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the dashboard API and the /healthz, /readyz,
// and /metrics routes.
func NewServer(addr string, svc DashboardService, renderer *chart.Renderer, logger *slog.Logger, metrics *observability.Metrics) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:      svc,
		renderer: renderer,
		logger:   logger,
		metrics:  metrics,
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(svc))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/charts/{chart}", s.handleChart)
	})

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

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.DebugContext(r.Context(), "request completed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.svc.Options())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := s.recompute(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, d)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "chart")
	switch name {
	case ChartEmployed, ChartUnemploymentRate, ChartSunburst, ChartTimeSeries:
	default:
		writeError(w, r, http.StatusNotFound, "unknown chart "+name)
		return
	}

	format, err := chart.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	d, ok := s.recompute(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	switch name {
	case ChartSunburst:
		render.JSON(w, r, d.Sunburst)
		return
	case ChartEmployed:
		err = s.renderer.RenderHistogram(&buf, d.Employed.Title, d.Employed.Histogram, format)
	case ChartUnemploymentRate:
		err = s.renderer.RenderHistogram(&buf, d.UnemploymentRate.Title, d.UnemploymentRate.Histogram, format)
	case ChartTimeSeries:
		if !d.TimeSeries.Available {
			s.metrics.ChartRenders.WithLabelValues(name, "empty").Inc()
			w.Header().Set(MessageHeader, d.TimeSeries.Message)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		err = s.renderer.RenderTimeSeries(&buf, d.TimeSeries.Title, *d.TimeSeries.Chart, format)
	}

	switch {
	case errors.Is(err, chart.ErrNoData):
		s.metrics.ChartRenders.WithLabelValues(name, "empty").Inc()
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		s.metrics.ChartRenders.WithLabelValues(name, "error").Inc()
		s.logger.Error("chart render failed", "chart", name, "error", err)
		writeError(w, r, http.StatusInternalServerError, "chart render failed")
	default:
		s.metrics.ChartRenders.WithLabelValues(name, "success").Inc()
		w.Header().Set("Content-Type", format.ContentType())
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
	}
}

// recompute parses the widget state from the query and runs the dashboard.
// It writes the error response itself and reports false on failure.
func (s *Server) recompute(w http.ResponseWriter, r *http.Request) (domain.Dashboard, bool) {
	p, err := parseParams(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.Dashboard{}, false
	}

	d, err := s.svc.Recompute(r.Context(), p)
	switch {
	case err == nil:
		return d, true
	case errors.Is(err, dashboard.ErrInvalidParams):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("dashboard recompute abandoned", "error", err)
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("dashboard recompute failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "dashboard recompute failed")
	}
	return domain.Dashboard{}, false
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}
