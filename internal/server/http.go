package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// DefaultMCPEndpoint is the path of the streamable HTTP endpoint.
const DefaultMCPEndpoint = "/mcp"

// HTTPServer serves an MCP server over streamable HTTP together with the
// health endpoints.
type HTTPServer struct {
	mcpServer *mcpserver.MCPServer
	health    *HealthChecker

	mu  sync.Mutex
	srv *http.Server
}

// NewHTTPServer wraps mcpServer. health may be nil.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, health *HealthChecker) (*HTTPServer, error) {
	if mcpServer == nil {
		return nil, fmt.Errorf("mcp server is required")
	}
	return &HTTPServer{mcpServer: mcpServer, health: health}, nil
}

// Handler returns the mux with the MCP endpoint and health endpoints registered.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath(DefaultMCPEndpoint),
	)
	mux.Handle(DefaultMCPEndpoint, streamable)

	if s.health != nil {
		s.health.RegisterHealthEndpoints(mux)
	}
	return mux
}

// Start listens on addr and blocks until the server stops.
func (s *HTTPServer) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	slog.Info("starting streamable HTTP server", "addr", addr, "endpoint", DefaultMCPEndpoint)
	return srv.ListenAndServe()
}

// Shutdown stops a started server. It is a no-op before Start.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
