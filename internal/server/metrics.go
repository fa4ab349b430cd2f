package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/teemow/weekplanner/internal/instrumentation"
)

const (
	DefaultMetricsAddr = ":9090"

	DefaultMetricsReadTimeout  = 10 * time.Second
	DefaultMetricsWriteTimeout = 10 * time.Second
	DefaultMetricsIdleTimeout  = 60 * time.Second

	// DefaultShutdownTimeout bounds the graceful shutdown of every listener.
	DefaultShutdownTimeout = 30 * time.Second
)

// MetricsServerConfig configures the metrics listener.
type MetricsServerConfig struct {
	Addr    string
	Enabled bool

	// InstrumentationProvider must use the prometheus exporter.
	InstrumentationProvider *instrumentation.Provider

	// Health, if set, adds the /healthz, /readyz and /healthz/detailed
	// endpoints to the metrics port.
	Health *HealthChecker
}

// MetricsServer serves Prometheus metrics on a dedicated port, away from
// the MCP endpoint.
type MetricsServer struct {
	addr    string
	handler http.Handler
	health  *HealthChecker

	mu  sync.Mutex
	srv *http.Server
}

// NewMetricsServer validates config and returns a server that has not been
// started yet.
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	p := config.InstrumentationProvider
	switch {
	case p == nil:
		return nil, errors.New("instrumentation provider is required for metrics server")
	case !p.Enabled():
		return nil, errors.New("instrumentation provider is not enabled")
	case p.PrometheusHandler() == nil:
		return nil, errors.New("metrics exporter is not prometheus")
	}

	addr := config.Addr
	if addr == "" {
		addr = DefaultMetricsAddr
	}
	return &MetricsServer{
		addr:    addr,
		handler: p.PrometheusHandler(),
		health:  config.Health,
	}, nil
}

// Handler returns /metrics plus the health endpoints.
func (s *MetricsServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.handler)

	if s.health != nil {
		s.health.RegisterHealthEndpoints(mux)
		return mux
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Start listens on the configured address and blocks until Shutdown.
func (s *MetricsServer) Start() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultMetricsReadTimeout,
		WriteTimeout:      DefaultMetricsWriteTimeout,
		IdleTimeout:       DefaultMetricsIdleTimeout,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	slog.Info("starting metrics server", "addr", s.addr)
	return srv.ListenAndServe()
}

// Shutdown stops a started server. It is a no-op before Start.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	slog.Info("shutting down metrics server")
	return srv.Shutdown(ctx)
}

// Addr returns the listen address.
func (s *MetricsServer) Addr() string {
	return s.addr
}
