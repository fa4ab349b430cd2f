package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/weekplanner/internal/config"
	"github.com/teemow/weekplanner/internal/instrumentation"
	"github.com/teemow/weekplanner/internal/resources"
	"github.com/teemow/weekplanner/internal/scheduling"
	"github.com/teemow/weekplanner/internal/server"
	"github.com/teemow/weekplanner/internal/tools/planner_tools"
)

type serveOptions struct {
	transport      string
	httpAddr       string
	readOnly       bool
	metricsEnabled bool
	metricsAddr    string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide planner tools
for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport on /mcp

Schedules listed in the config file and given with --load are loaded at
startup. With save_on_change set in the config, every change made through
the tools is written back to schedule_dir.

Observability (streamable-http only):
  The metrics server serves /metrics, /healthz, /readyz and /healthz/detailed
  on --metrics-addr. Exporters are configured with INSTRUMENTATION_ENABLED,
  METRICS_EXPORTER, TRACING_EXPORTER and OTEL_EXPORTER_OTLP_ENDPOINT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			applyServeFlags(cmd, cfg, opts)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cfg, root.schedulePaths(cfg), opts.readOnly)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", config.DefaultTransport, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", config.DefaultHTTPAddr, "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&opts.readOnly, "read-only", false, "Only register tools that do not change schedules")
	cmd.Flags().BoolVar(&opts.metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", config.DefaultMetricsAddr, "Metrics server address")

	return cmd
}

// applyServeFlags lets explicitly set flags win over the config file.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config, opts *serveOptions) {
	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Server.Transport = opts.transport
	}
	if flags.Changed("http-addr") {
		cfg.Server.HTTPAddr = opts.httpAddr
	}
	if flags.Changed("metrics-enabled") {
		cfg.Server.MetricsEnabled = opts.metricsEnabled
	}
	if flags.Changed("metrics-addr") {
		cfg.Server.MetricsAddr = opts.metricsAddr
	}
	cfg.Normalize()
}

func runServe(cfg *config.Config, schedules []string, readOnly bool) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	transport := cfg.Server.Transport

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn("error during instrumentation shutdown", "error", err)
		}
	}()

	p, err := loadPlanner(schedules, logger)
	if err != nil {
		return err
	}

	kind, err := scheduling.ParseKind(cfg.Strategy)
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithPlanner(p),
		server.WithDefaultStrategy(kind),
		server.WithLogger(logger),
		server.WithExportDir(cfg.ScheduleDir),
	}
	if provider.Enabled() {
		opts = append(opts, server.WithInstrumentation(
			provider.Metrics(),
			instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging),
		))
	}
	if cfg.SaveOnChange {
		opts = append(opts, server.WithSchedulePersistence(cfg.SchedulePath))
	}

	serverContext, err := server.NewServerContext(shutdownCtx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	for range p.UserIDs() {
		provider.Metrics().IncrementUsers(shutdownCtx)
	}

	health := server.NewHealthChecker(serverContext)

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && cfg.Server.MetricsEnabled && provider.Enabled() && provider.PrometheusHandler() != nil {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    cfg.Server.MetricsAddr,
			Enabled:                 true,
			InstrumentationProvider: provider,
			Health:                  health,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Warn("error during metrics server shutdown", "error", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			logger.Warn("error during server context shutdown", "error", err)
		}
	}()

	mcpSrv := newMCPServer()

	if transport != "stdio" {
		if readOnly {
			logger.Info("starting server in read-only mode")
		}
		logger.Info("planner loaded", "users", len(p.UserIDs()), "default_strategy", string(kind))
	}

	// Register all tools and resources
	if err := registerAllTools(mcpSrv, serverContext, readOnly); err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, health, cfg.Server.HTTPAddr, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

func newMCPServer() *mcpserver.MCPServer {
	return mcpserver.NewMCPServer("weekplanner", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Planner",
			register: func() error {
				return planner_tools.RegisterPlannerTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Planner Resources",
			register: func() error {
				return resources.RegisterPlannerResources(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, health *server.HealthChecker, addr string, logger *slog.Logger) error {
	httpServer, err := server.NewHTTPServer(mcpSrv, health)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping HTTP server")
		health.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	return nil
}
