// Package server exposes the scheduler over HTTP: health probes, the
// milestone catalog, presets, schedule computation and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
	"github.com/felixgeelhaar/fundplan/internal/health"
	"github.com/felixgeelhaar/fundplan/internal/log"
	"github.com/felixgeelhaar/fundplan/internal/metrics"
	"github.com/felixgeelhaar/fundplan/internal/preset"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

// Default timeouts applied when Config leaves them unset.
const (
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
)

// maxBodyBytes bounds schedule request bodies.
const maxBodyBytes = 1 << 20

// Config holds server configuration
type Config struct {
	Address         string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// PresetSource resolves named presets.
type PresetSource interface {
	Load(name string) (*preset.Preset, error)
	List() ([]*preset.Preset, error)
}

// Dependencies are the collaborators the handlers call. Probes and
// Computer are required; the rest may be nil.
type Dependencies struct {
	Probes   *health.ProbeManager
	Computer schedule.Computer
	Presets  PresetSource
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *log.Logger
}

// Server is the fundplan HTTP server with graceful shutdown
type Server struct {
	httpServer      *http.Server
	router          chi.Router
	probeManager    *health.ProbeManager
	computer        schedule.Computer
	presets         PresetSource
	metrics         *metrics.Metrics
	gatherer        prometheus.Gatherer
	logger          *log.Logger
	shutdownTimeout time.Duration
}

// NewServer creates a server and builds its routes.
func NewServer(cfg Config, deps Dependencies) *Server {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}

	s := &Server{
		probeManager:    deps.Probes,
		computer:        deps.Computer,
		presets:         deps.Presets,
		metrics:         deps.Metrics,
		gatherer:        deps.Gatherer,
		logger:          logger.With("component", "server"),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	s.router = s.routes(cfg.RequestTimeout)

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func (s *Server) routes(requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", s.handleLiveness)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/startup", s.handleStartup)

	if s.gatherer != nil {
		r.Handle("/metrics", metrics.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/catalog", s.handleCatalog)
		r.Get("/presets", s.handleListPresets)
		r.Get("/presets/{name}", s.handleGetPreset)
		r.Post("/schedule", s.handleSchedule)
	})

	return r
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until Shutdown.
// It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fperrors.Wrap(fperrors.ErrCodeServerStart, "failed to listen on "+s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.probeManager.MarkInitialized()
	s.logger.Info("server listening", "address", ln.Addr().String())

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fperrors.Wrap(fperrors.ErrCodeServerStart, "server failed", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server. Readiness starts failing
// first so load balancers stop routing new requests here.
func (s *Server) Shutdown(ctx context.Context) error {
	s.probeManager.MarkShutdown()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	s.httpServer.SetKeepAlivesEnabled(false)

	s.logger.Info("server shutting down", "timeout", s.shutdownTimeout.String())
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// observe logs each request and records it against its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		elapsed := time.Since(start)

		if s.metrics != nil {
			s.metrics.ObserveRequest(route, r.Method, status, elapsed)
		}
		s.logger.DebugContext(r.Context(), "request served",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
