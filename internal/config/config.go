// Package config loads the weekplanner configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teemow/weekplanner/internal/scheduling"
)

// Environment variables that override file values.
const (
	EnvStrategy     = "WEEKPLANNER_STRATEGY"
	EnvSchedules    = "WEEKPLANNER_SCHEDULES"
	EnvTransport    = "WEEKPLANNER_TRANSPORT"
	EnvHTTPAddr     = "WEEKPLANNER_HTTP_ADDR"
	EnvMetricsAddr  = "WEEKPLANNER_METRICS_ADDR"
	EnvLogFormat    = "WEEKPLANNER_LOG_FORMAT"
	EnvDebug        = "WEEKPLANNER_DEBUG"
	EnvSaveOnChange = "WEEKPLANNER_SAVE_ON_CHANGE"
)

// Defaults.
const (
	DefaultTransport   = "stdio"
	DefaultHTTPAddr    = ":8080"
	DefaultMetricsAddr = ":9090"
	DefaultLogFormat   = "text"
)

// Config is the on-disk configuration.
type Config struct {
	// Strategy is the slot search used when a request does not name one.
	Strategy string `yaml:"strategy"`

	// Schedules are loaded into the planner at startup, one user per file.
	Schedules []string `yaml:"schedules"`

	// SaveOnChange writes a user's schedule back to ScheduleDir after every
	// change made through the server.
	SaveOnChange bool   `yaml:"save_on_change"`
	ScheduleDir  string `yaml:"schedule_dir"`

	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Transport      string `yaml:"transport"`
	HTTPAddr       string `yaml:"http_addr"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	MetricsAddr    string `yaml:"metrics_addr"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Debug  bool   `yaml:"debug"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Strategy:    string(scheduling.KindWorkHours),
		Schedules:   []string{},
		ScheduleDir: "schedules",
		Server: ServerConfig{
			Transport:      DefaultTransport,
			HTTPAddr:       DefaultHTTPAddr,
			MetricsEnabled: true,
			MetricsAddr:    DefaultMetricsAddr,
		},
		Logging: LoggingConfig{Format: DefaultLogFormat},
	}
}

// Normalize fills zero values with defaults and canonicalises names.
func (c *Config) Normalize() {
	if kind, err := scheduling.ParseKind(c.Strategy); err == nil {
		c.Strategy = string(kind)
	} else {
		c.Strategy = string(scheduling.KindWorkHours)
	}
	if c.Schedules == nil {
		c.Schedules = []string{}
	}
	if c.ScheduleDir == "" {
		c.ScheduleDir = "schedules"
	}

	c.Server.Transport = strings.ToLower(strings.TrimSpace(c.Server.Transport))
	if c.Server.Transport == "" {
		c.Server.Transport = DefaultTransport
	}
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Server.MetricsAddr == "" {
		c.Server.MetricsAddr = DefaultMetricsAddr
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json":
		c.Logging.Format = "json"
	default:
		c.Logging.Format = DefaultLogFormat
	}
}

// Validate reports settings that cannot be normalised away.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("unsupported transport %q (use stdio or streamable-http)", c.Server.Transport)
	}
	if c.SaveOnChange && strings.TrimSpace(c.ScheduleDir) == "" {
		return errors.New("schedule_dir is required when save_on_change is set")
	}
	return nil
}

// ApplyEnv overrides values from WEEKPLANNER_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvStrategy); v != "" {
		c.Strategy = v
	}
	if v := os.Getenv(EnvSchedules); v != "" {
		c.Schedules = splitList(v)
	}
	if v := os.Getenv(EnvTransport); v != "" {
		c.Server.Transport = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		c.Server.HTTPAddr = v
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		c.Server.MetricsAddr = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if b, ok := envBool(EnvDebug); ok {
		c.Logging.Debug = b
	}
	if b, ok := envBool(EnvSaveOnChange); ok {
		c.SaveOnChange = b
	}
	c.Normalize()
}

// Load reads the YAML file at path. A missing file is created with the
// default configuration. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		cfg.ApplyEnv()
		return cfg, nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes cfg to path atomically with mode 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".weekplanner-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is shorthand for Save(path, c).
func (c *Config) Save(path string) error {
	return Save(path, c)
}

// SchedulePath returns where a user's schedule is written when SaveOnChange
// is set. The id is path-escaped, so distinct ids never share a file.
func (c *Config) SchedulePath(userID string) string {
	name := url.PathEscape(strings.TrimSpace(userID))
	name = strings.ReplaceAll(name, ":", "%3A")
	return filepath.Join(c.ScheduleDir, name+".xml")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
