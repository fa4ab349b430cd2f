package scheduling

import (
	"errors"
	"fmt"

	"github.com/teemow/weekplanner/internal/planner"
	"github.com/teemow/weekplanner/internal/week"
)

// Anytime places the event at midnight on the earliest day of the week where
// no invitee has a conflict.
type Anytime struct {
	repo Repository
}

// NewAnytime returns an anytime strategy reading from repo.
func NewAnytime(repo Repository) *Anytime {
	return &Anytime{repo: repo}
}

// Kind returns KindAnytime.
func (a *Anytime) Kind() Kind { return KindAnytime }

// FindEvent tries Sunday 00:00 first and then 00:00 of each following day,
// giving up after ceil(MinutesPerWeek/duration) candidates. Invitees unknown
// to the repository are ignored.
func (a *Anytime) FindEvent(req Request) (planner.Event, error) {
	if err := req.Validate(); err != nil {
		return planner.Event{}, err
	}

	known := userIndex(a.repo.Users())
	limit := (week.MinutesPerWeek + req.Duration - 1) / req.Duration

	start := week.FromWeekMinute(0)
	for i := int64(0); i < limit; i++ {
		end := start.Add(req.Duration)
		ev, err := planner.NewEvent(req.Name, req.Location, req.Online, start, end, req.Invitees)
		if err != nil {
			if errors.Is(err, planner.ErrInvalidEventInvariant) && start.Equal(end) {
				// A whole week has no representable end.
				return planner.Event{}, fmt.Errorf("%w: %d minutes", ErrNoSlotFound, req.Duration)
			}
			return planner.Event{}, err
		}

		conflict, err := a.conflicts(known, ev)
		if err != nil {
			return planner.Event{}, err
		}
		if !conflict {
			return ev, nil
		}
		start = start.NextDayStart()
	}

	return planner.Event{}, ErrNoSlotFound
}

func (a *Anytime) conflicts(known map[string]planner.User, ev planner.Event) (bool, error) {
	for _, id := range ev.Invitees() {
		if _, ok := known[id]; !ok {
			continue
		}
		conflict, err := a.repo.HasConflict(id, ev)
		if err != nil {
			return false, fmt.Errorf("check %s: %w", id, err)
		}
		if conflict {
			return true, nil
		}
	}
	return false, nil
}
