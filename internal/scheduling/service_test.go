package scheduling

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/weekplanner/internal/instrumentation"
	"github.com/teemow/weekplanner/internal/logging"
	"github.com/teemow/weekplanner/internal/planner"
	"github.com/teemow/weekplanner/internal/week"
)

func newTestScheduler(t *testing.T, p *planner.Planner, buf *bytes.Buffer) *Scheduler {
	t.Helper()
	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{Enabled: false})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewScheduler(p,
		WithMetrics(provider.Metrics()),
		WithLogger(logging.NewSlogAdapter(logger)),
	)
}

func TestScheduler_Find(t *testing.T) {
	p := newPlanner(t, nil, "alice", "bob")
	var buf bytes.Buffer
	s := newTestScheduler(t, p, &buf)

	ev, err := s.Find(context.Background(), KindWorkHours, request(30, "alice", "bob"))
	require.NoError(t, err)
	assert.True(t, week.MustClock(week.Monday, "0900").Equal(ev.Start()))
	assert.Contains(t, buf.String(), "slot found")

	// Find never writes.
	u, err := p.User("alice")
	require.NoError(t, err)
	assert.Empty(t, u.Events)

	_, err = s.Find(context.Background(), Kind("weekends"), request(30, "alice"))
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestScheduler_Schedule(t *testing.T) {
	p := newPlanner(t, map[string][]busy{
		"carol": {{"gym", week.Sunday, "0000", week.Sunday, "0100"}},
	}, "alice", "bob", "carol")
	var buf bytes.Buffer
	s := newTestScheduler(t, p, &buf)

	ev, added, err := s.Schedule(context.Background(), KindAnytime, request(30, "alice", "bob", "carol", "ghost"))
	require.NoError(t, err)
	// carol's gym session pushes everyone to monday
	assert.True(t, week.MustClock(week.Monday, "0000").Equal(ev.Start()))
	assert.Equal(t, []string{"alice", "bob", "carol"}, added)

	for _, id := range added {
		u, err := p.User(id)
		require.NoError(t, err)
		names := make([]string, 0, len(u.Events))
		for _, e := range u.Events {
			names = append(names, e.Name())
		}
		assert.Contains(t, names, "Sync", "user %s", id)
	}
	assert.Contains(t, buf.String(), "event scheduled")
}

func TestScheduler_ScheduleErrors(t *testing.T) {
	t.Run("no slot", func(t *testing.T) {
		p := newPlanner(t, map[string][]busy{"alice": everyDay()}, "alice")
		var buf bytes.Buffer
		s := newTestScheduler(t, p, &buf)

		_, _, err := s.Schedule(context.Background(), KindAnytime, request(30, "alice"))
		assert.ErrorIs(t, err, ErrNoSlotFound)
		assert.Contains(t, buf.String(), "no slot found")
	})

	t.Run("unregistered host", func(t *testing.T) {
		p := newPlanner(t, nil, "alice")
		var buf bytes.Buffer
		s := newTestScheduler(t, p, &buf)

		_, added, err := s.Schedule(context.Background(), KindAnytime, request(30, "zed", "alice"))
		assert.ErrorIs(t, err, planner.ErrUserNotFound)
		assert.Nil(t, added)

		u, err := p.User("alice")
		require.NoError(t, err)
		assert.Empty(t, u.Events)
	})

	t.Run("invalid request", func(t *testing.T) {
		p := newPlanner(t, nil, "alice")
		var buf bytes.Buffer
		s := newTestScheduler(t, p, &buf)

		_, _, err := s.Schedule(context.Background(), KindWorkHours, request(0, "alice"))
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, buf.String(), "slot search failed")
	})
}
