package scheduling

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teemow/weekplanner/internal/planner"
	"github.com/teemow/weekplanner/internal/week"
)

type busy struct {
	name     string
	startDay week.Day
	start    string
	endDay   week.Day
	end      string
}

// newPlanner registers users and gives each one the listed busy events,
// hosted by that user.
func newPlanner(t *testing.T, schedules map[string][]busy, users ...string) *planner.Planner {
	t.Helper()
	p := planner.New()
	for _, id := range users {
		require.NoError(t, p.AddUser(id))
	}
	for _, id := range users {
		for _, b := range schedules[id] {
			ev, err := planner.NewEvent(b.name, "Office", false,
				week.MustClock(b.startDay, b.start), week.MustClock(b.endDay, b.end), []string{id})
			require.NoError(t, err)
			_, err = p.AddEvent(id, ev)
			require.NoError(t, err)
		}
	}
	return p
}

func everyDay() []busy {
	var out []busy
	for _, d := range week.Days() {
		out = append(out, busy{name: "busy " + d.String(), startDay: d, start: "0000", endDay: d, end: "2359"})
	}
	return out
}

func request(minutes int64, invitees ...string) Request {
	return Request{
		Name:     "Sync",
		Location: "Zoom",
		Online:   true,
		Duration: minutes,
		Invitees: invitees,
	}
}
