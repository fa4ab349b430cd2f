package scheduling

import (
	"fmt"

	"github.com/teemow/weekplanner/internal/interval"
	"github.com/teemow/weekplanner/internal/planner"
	"github.com/teemow/weekplanner/internal/week"
)

// The work week searched by WorkHours, in week-minutes.
var (
	WorkWeekStart = week.MustClock(week.Monday, "0900").WeekMinute()
	WorkWeekEnd   = week.MustClock(week.Friday, "1700").WeekMinute()
)

// WorkHours looks for a slot between Monday 09:00 and Friday 17:00 using a
// busy interval tree built from every invitee's events.
type WorkHours struct {
	repo     Repository
	treeOpts []interval.TreeOption
}

// NewWorkHours returns a work hours strategy reading from repo.
func NewWorkHours(repo Repository, opts ...interval.TreeOption) *WorkHours {
	return &WorkHours{repo: repo, treeOpts: opts}
}

// Kind returns KindWorkHours.
func (w *WorkHours) Kind() Kind { return KindWorkHours }

// FindEvent builds the busy tree and queries it once. A slot that still
// conflicts for the host is not returned.
func (w *WorkHours) FindEvent(req Request) (planner.Event, error) {
	if err := req.Validate(); err != nil {
		return planner.Event{}, err
	}

	known := userIndex(w.repo.Users())
	tree := interval.Build(busyIntervals(known, req.Invitees), w.treeOpts...)

	slot, ok := tree.FindEarliestFree(req.Duration, WorkWeekStart, WorkWeekEnd)
	if !ok {
		return planner.Event{}, ErrNoSlotFound
	}

	ev, err := planner.NewEvent(req.Name, req.Location, req.Online,
		week.FromWeekMinute(slot.Start), week.FromWeekMinute(slot.End), req.Invitees)
	if err != nil {
		return planner.Event{}, err
	}

	host := req.Host()
	if _, ok := known[host]; ok {
		conflict, err := w.repo.HasConflict(host, ev)
		if err != nil {
			return planner.Event{}, fmt.Errorf("check %s: %w", host, err)
		}
		if conflict {
			return planner.Event{}, fmt.Errorf("%w: %s is busy %s to %s", ErrNoSlotFound, host, ev.Start(), ev.End())
		}
	}
	return ev, nil
}

func busyIntervals(known map[string]planner.User, invitees []string) []interval.Interval {
	var busy []interval.Interval
	for _, id := range invitees {
		u, ok := known[id]
		if !ok {
			continue
		}
		busy = append(busy, interval.FromSpans(u.Events)...)
	}
	return busy
}
