package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/teemow/weekplanner/internal/calendarfile"
	"github.com/teemow/weekplanner/internal/instrumentation"
	"github.com/teemow/weekplanner/internal/logging"
	"github.com/teemow/weekplanner/internal/planner"
	"github.com/teemow/weekplanner/internal/scheduling"
)

// ServerContext holds the planner and the services the MCP tools share.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	planner   *planner.Planner
	scheduler *scheduling.Scheduler
	strategy  scheduling.Kind

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	logger      *slog.Logger

	// schedulePath maps a user id to the file the user's schedule is saved
	// to after a change. Nil disables saving.
	schedulePath func(userID string) string

	// exportDir confines files written by export tools. Empty allows any path.
	exportDir string

	mu       sync.RWMutex
	shutdown bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithPlanner sets the planner served by the context.
func WithPlanner(p *planner.Planner) Option {
	return func(sc *ServerContext) { sc.planner = p }
}

// WithDefaultStrategy sets the search used when a tool call names none.
func WithDefaultStrategy(kind scheduling.Kind) Option {
	return func(sc *ServerContext) { sc.strategy = kind }
}

// WithInstrumentation sets the metrics recorder and audit logger.
func WithInstrumentation(m *instrumentation.Metrics, audit *instrumentation.AuditLogger) Option {
	return func(sc *ServerContext) {
		sc.metrics = m
		sc.auditLogger = audit
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(sc *ServerContext) {
		if l != nil {
			sc.logger = l
		}
	}
}

// WithSchedulePersistence saves a user's schedule to pathFor(userID) after
// every change made through the tools.
func WithSchedulePersistence(pathFor func(userID string) string) Option {
	return func(sc *ServerContext) { sc.schedulePath = pathFor }
}

// WithExportDir confines export files to dir.
func WithExportDir(dir string) Option {
	return func(sc *ServerContext) { sc.exportDir = dir }
}

// ErrPathNotAllowed is returned for export paths outside the export dir.
var ErrPathNotAllowed = errors.New("path is outside the export directory")

// ExportPath resolves p for writing. Relative paths are taken from the
// export dir, and paths escaping it are rejected.
func (sc *ServerContext) ExportPath(p string) (string, error) {
	if sc.exportDir == "" {
		return p, nil
	}
	dir, err := filepath.Abs(sc.exportDir)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	p = filepath.Clean(p)

	rel, err := filepath.Rel(dir, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathNotAllowed, p)
	}
	return p, nil
}

// NewServerContext creates a new server context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		strategy: scheduling.KindWorkHours,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(sc)
	}
	if sc.planner == nil {
		sc.planner = planner.New()
	}
	sc.planner.SetLogger(sc.logger)

	sc.scheduler = scheduling.NewScheduler(sc.planner,
		scheduling.WithMetrics(sc.metrics),
		scheduling.WithLogger(logging.NewSlogAdapter(sc.logger)),
	)
	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Planner returns the calendar repository.
func (sc *ServerContext) Planner() *planner.Planner {
	return sc.planner
}

// Scheduler returns the slot search service.
func (sc *ServerContext) Scheduler() *scheduling.Scheduler {
	return sc.scheduler
}

// DefaultStrategy returns the search used when a request names none.
func (sc *ServerContext) DefaultStrategy() scheduling.Kind {
	return sc.strategy
}

// Metrics returns the metrics recorder, or nil if not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil if not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.auditLogger
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Persist saves the schedules of the given users when persistence is
// enabled. Users that no longer exist are skipped.
func (sc *ServerContext) Persist(userIDs ...string) error {
	if sc.schedulePath == nil {
		return nil
	}
	for _, id := range userIDs {
		u, err := sc.planner.User(id)
		if err != nil {
			continue
		}
		path := sc.schedulePath(id)
		if err := calendarfile.Save(path, calendarfile.FromUser(u)); err != nil {
			return fmt.Errorf("save schedule for %s: %w", id, err)
		}
		sc.logger.Debug("schedule saved", logging.User(id), slog.String("path", path))
	}
	return nil
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
