package instrumentation

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config configures metrics, tracing and the audit log. DefaultConfig reads
// it from the environment.
type Config struct {
	ServiceName       string
	ServiceVersion    string
	ServiceInstanceID string

	// Enabled is false when INSTRUMENTATION_ENABLED=false; metrics and
	// tracing then use noop providers.
	Enabled bool

	// prometheus, otlp or stdout
	MetricsExporter string
	// otlp, stdout or none
	TracingExporter string

	// OTLPEndpoint is host:port without a scheme.
	OTLPEndpoint string
	OTLPInsecure bool

	TraceSamplingRate  float64
	PrometheusEndpoint string

	// DetailedLabels adds the event host as a label on search metrics.
	// Keep disabled unless the user population is small.
	DetailedLabels bool

	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig controls the per-tool audit records.
type AuditLoggingConfig struct {
	Enabled bool

	// IncludeUserIDs logs planner user ids in clear text instead of hashes.
	IncludeUserIDs bool
}

// DefaultConfig returns the configuration from the environment.
func DefaultConfig() Config {
	return Config{
		ServiceName:        envOr("OTEL_SERVICE_NAME", "weekplanner", parseString),
		ServiceVersion:     "unknown",
		ServiceInstanceID:  envOr("OTEL_SERVICE_INSTANCE_ID", os.Getenv("HOSTNAME"), parseString),
		Enabled:            envOr("INSTRUMENTATION_ENABLED", true, strconv.ParseBool),
		MetricsExporter:    envOr("METRICS_EXPORTER", ExporterPrometheus, parseString),
		TracingExporter:    envOr("TRACING_EXPORTER", ExporterNone, parseString),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:       envOr("OTEL_EXPORTER_OTLP_INSECURE", false, strconv.ParseBool),
		TraceSamplingRate:  envOr("OTEL_TRACES_SAMPLER_ARG", 0.1, parseFloat),
		PrometheusEndpoint: envOr("PROMETHEUS_ENDPOINT", "/metrics", parseString),
		DetailedLabels:     envOr("METRICS_DETAILED_LABELS", false, strconv.ParseBool),
		AuditLogging: AuditLoggingConfig{
			Enabled:        envOr("AUDIT_LOGGING_ENABLED", true, strconv.ParseBool),
			IncludeUserIDs: envOr("AUDIT_LOGGING_INCLUDE_USER_IDS", false, strconv.ParseBool),
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.OTLPEndpoint == "" && (c.TracingExporter == ExporterOTLP || c.MetricsExporter == ExporterOTLP) {
		return fmt.Errorf("OTLP endpoint is required when using an OTLP exporter")
	}

	return nil
}

// envOr parses the variable key, falling back to def when it is unset or
// does not parse.
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := parse(v)
	if err != nil {
		return def
	}
	return parsed
}

func parseString(v string) (string, error) { return v, nil }

func parseFloat(v string) (float64, error) { return strconv.ParseFloat(v, 64) }

// Metric label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusNoSlot  = "no_slot"

	OperationAddUser     = "add_user"
	OperationAddEvent    = "add_event"
	OperationRemoveEvent = "remove_event"
	OperationModifyEvent = "modify_event"
	OperationImport      = "import"
	OperationExport      = "export"

	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"

	// Push interval of the otlp and stdout metric readers.
	DefaultMetricInterval = 10 * time.Second
)
