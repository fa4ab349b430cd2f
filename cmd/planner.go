package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/teemow/weekplanner/internal/calendarfile"
	"github.com/teemow/weekplanner/internal/config"
	"github.com/teemow/weekplanner/internal/logging"
	"github.com/teemow/weekplanner/internal/planner"
)

// loadConfig reads --config, or falls back to defaults plus environment.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if o.configPath == "" {
		cfg = config.Default()
		cfg.ApplyEnv()
	} else {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if o.debug {
		cfg.Logging.Debug = true
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(os.Stderr, cfg.Logging.Debug, cfg.Logging.Format)
}

// schedulePaths lists the config's schedules followed by --load.
func (o *rootOptions) schedulePaths(cfg *config.Config) []string {
	paths := make([]string, 0, len(cfg.Schedules)+len(o.load))
	paths = append(paths, cfg.Schedules...)
	return append(paths, o.load...)
}

// loadPlanner builds a planner with one user per schedule file.
func loadPlanner(paths []string, logger *slog.Logger) (*planner.Planner, error) {
	p := planner.New()
	p.SetLogger(logger)

	for _, path := range paths {
		doc, err := calendarfile.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load schedule: %w", err)
		}
		err = doc.Import(p)
		if errors.Is(err, planner.ErrEmptySchedule) {
			// saved by the server after add_user
			err = p.AddUser(doc.UserID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", path, err)
		}
		logger.Debug("schedule loaded",
			logging.User(doc.UserID),
			slog.String("path", path),
			slog.Int("events", len(doc.Events)))
	}
	return p, nil
}

// saveUsers writes the given users' schedules to the config's schedule dir.
func saveUsers(cfg *config.Config, p *planner.Planner, ids []string) ([]string, error) {
	written := make([]string, 0, len(ids))
	for _, id := range ids {
		u, err := p.User(id)
		if err != nil {
			return written, err
		}
		path := cfg.SchedulePath(id)
		if err := calendarfile.Save(path, calendarfile.FromUser(u)); err != nil {
			return written, fmt.Errorf("failed to save schedule of %s: %w", id, err)
		}
		written = append(written, path)
	}
	return written, nil
}
