package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	for _, detailed := range []bool{false, true} {
		p := newTestProvider(t, Config{
			Enabled:         true,
			MetricsExporter: ExporterPrometheus,
			TracingExporter: ExporterNone,
			DetailedLabels:  detailed,
		})
		m := p.Metrics()
		ctx := context.Background()

		assert.NotPanics(t, func() {
			m.RecordSlotSearch(ctx, "anytime", StatusSuccess, 60, 3, time.Millisecond)
			m.RecordSlotSearch(ctx, "workhours", StatusNoSlot, 10080, 1, time.Millisecond)
			m.RecordSlotSearchWithHost(ctx, "anytime", StatusSuccess, "alice", 30, 2, time.Millisecond)
			m.RecordBusyIntervals(ctx, 12)
			m.RecordPlannerOperation(ctx, OperationAddEvent, StatusSuccess)
			m.RecordPlannerOperation(ctx, OperationModifyEvent, StatusError)
			m.IncrementUsers(ctx)
			m.RecordToolInvocation(ctx, "planner_find_slot", StatusSuccess, 2*time.Millisecond)
		})
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	ctx := context.Background()

	for name, m := range map[string]*Metrics{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				m.RecordSlotSearch(ctx, "anytime", StatusSuccess, 60, 3, time.Millisecond)
				m.RecordSlotSearchWithHost(ctx, "anytime", StatusSuccess, "alice", 30, 2, time.Millisecond)
				m.RecordBusyIntervals(ctx, 1)
				m.RecordPlannerOperation(ctx, OperationAddUser, StatusSuccess)
				m.IncrementUsers(ctx)
				m.RecordToolInvocation(ctx, "planner_add_event", StatusError, time.Millisecond)
			})
		})
	}
}
