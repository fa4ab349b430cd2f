package instrumentation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	for _, key := range []string{
		"OTEL_SERVICE_NAME", "INSTRUMENTATION_ENABLED", "METRICS_EXPORTER",
		"TRACING_EXPORTER", "OTEL_TRACES_SAMPLER_ARG", "AUDIT_LOGGING_INCLUDE_USER_IDS",
	} {
		t.Setenv(key, "")
	}

	cfg := DefaultConfig()

	assert.Equal(t, "weekplanner", cfg.ServiceName)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, ExporterPrometheus, cfg.MetricsExporter)
	assert.Equal(t, ExporterNone, cfg.TracingExporter)
	assert.Equal(t, 0.1, cfg.TraceSamplingRate)
	assert.Equal(t, "/metrics", cfg.PrometheusEndpoint)
	assert.True(t, cfg.AuditLogging.Enabled)
	assert.False(t, cfg.AuditLogging.IncludeUserIDs)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_FromEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "planner-staging")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("TRACING_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")
	t.Setenv("METRICS_DETAILED_LABELS", "true")
	t.Setenv("AUDIT_LOGGING_INCLUDE_USER_IDS", "yes-please")

	cfg := DefaultConfig()

	assert.Equal(t, "planner-staging", cfg.ServiceName)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "stdout", cfg.MetricsExporter)
	assert.Equal(t, "stdout", cfg.TracingExporter)
	assert.Equal(t, 0.5, cfg.TraceSamplingRate)
	assert.True(t, cfg.DetailedLabels)
	// unparsable bools fall back to the default
	assert.False(t, cfg.AuditLogging.IncludeUserIDs)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "prometheus only",
			cfg:  Config{MetricsExporter: ExporterPrometheus, TracingExporter: ExporterNone},
		},
		{
			name: "otlp with endpoint",
			cfg:  Config{MetricsExporter: ExporterOTLP, TracingExporter: ExporterOTLP, OTLPEndpoint: "otel:4318"},
		},
		{
			name: "empty exporters",
			cfg:  Config{},
		},
		{
			name:    "negative sampling rate",
			cfg:     Config{TraceSamplingRate: -0.1},
			wantErr: "sampling rate",
		},
		{
			name:    "bad metrics exporter",
			cfg:     Config{MetricsExporter: "statsd"},
			wantErr: "metrics exporter",
		},
		{
			name:    "bad tracing exporter",
			cfg:     Config{TracingExporter: "jaeger"},
			wantErr: "tracing exporter",
		},
		{
			name:    "otlp metrics without endpoint",
			cfg:     Config{MetricsExporter: ExporterOTLP},
			wantErr: "OTLP endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("WP_TEST_STRING", "value")
	t.Setenv("WP_TEST_BOOL", "true")
	t.Setenv("WP_TEST_FLOAT", "0.75")
	t.Setenv("WP_TEST_JUNK", "junk")

	assert.Equal(t, "value", envOr("WP_TEST_STRING", "fallback", parseString))
	assert.Equal(t, "fallback", envOr("WP_TEST_MISSING", "fallback", parseString))

	assert.True(t, envOr("WP_TEST_BOOL", false, strconv.ParseBool))
	assert.True(t, envOr("WP_TEST_JUNK", true, strconv.ParseBool))
	assert.False(t, envOr("WP_TEST_MISSING", false, strconv.ParseBool))

	assert.Equal(t, 0.75, envOr("WP_TEST_FLOAT", 0.5, parseFloat))
	assert.Equal(t, 0.5, envOr("WP_TEST_JUNK", 0.5, parseFloat))
	assert.Equal(t, 0.5, envOr("WP_TEST_MISSING", 0.5, parseFloat))
}
