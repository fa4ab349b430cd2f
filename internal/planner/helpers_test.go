package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teemow/weekplanner/internal/week"
)

func clock(t *testing.T, day week.Day, hhmm string) week.Clock {
	t.Helper()
	c, err := week.NewClock(day, hhmm)
	require.NoError(t, err)
	return c
}

func mustEvent(t *testing.T, name string, startDay week.Day, start string, endDay week.Day, end string, invitees ...string) Event {
	t.Helper()
	ev, err := NewEvent(name, "Room 1", false, clock(t, startDay, start), clock(t, endDay, end), invitees)
	require.NoError(t, err)
	return ev
}
