package planner

import (
	"fmt"
	"slices"

	"github.com/teemow/weekplanner/internal/week"
)

// Schedule is one user's events ordered by start day and start time.
type Schedule struct {
	owner  string
	events []Event
}

// NewSchedule returns an empty schedule owned by userID.
func NewSchedule(userID string) (*Schedule, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return &Schedule{owner: userID}, nil
}

// Owner returns the id of the user the schedule belongs to.
func (s *Schedule) Owner() string {
	return s.owner
}

// Events returns a copy of the events in order.
func (s *Schedule) Events() []Event {
	return slices.Clone(s.events)
}

// Len returns the number of events.
func (s *Schedule) Len() int {
	return len(s.events)
}

// Find returns the event with the given name.
func (s *Schedule) Find(name string) (Event, bool) {
	for _, e := range s.events {
		if e.name == name {
			return e, true
		}
	}
	return Event{}, false
}

// HasNameConflict reports whether an event called name is already scheduled.
func (s *Schedule) HasNameConflict(name string) bool {
	_, ok := s.Find(name)
	return ok
}

// HasTimeConflict reports whether ev collides with any scheduled event.
func (s *Schedule) HasTimeConflict(ev Event) bool {
	for _, e := range s.events {
		if Conflicts(ev, e) {
			return true
		}
	}
	return false
}

// HasConflict reports a name or time conflict.
func (s *Schedule) HasConflict(ev Event) bool {
	return s.HasNameConflict(ev.name) || s.HasTimeConflict(ev)
}

// Add inserts ev. When the owner hosts ev any conflict is an error; otherwise
// a conflicting event is skipped and Add reports false.
func (s *Schedule) Add(ev Event) (bool, error) {
	isHost := ev.Host() == s.owner

	if s.HasTimeConflict(ev) {
		if isHost {
			return false, fmt.Errorf("%w: %s", ErrHostTimeConflict, ev.name)
		}
		return false, nil
	}
	if s.HasNameConflict(ev.name) {
		if isHost {
			return false, fmt.Errorf("%w: %s", ErrHostNameConflict, ev.name)
		}
		return false, nil
	}

	i, _ := slices.BinarySearchFunc(s.events, ev, func(a, b Event) int {
		// Ties go after existing events.
		if b.start.Before(a.start) {
			return 1
		}
		return -1
	})
	s.events = slices.Insert(s.events, i, ev)
	return true, nil
}

// Remove deletes every event called name and reports whether any existed.
func (s *Schedule) Remove(name string) bool {
	n := len(s.events)
	s.events = slices.DeleteFunc(s.events, func(e Event) bool {
		return e.name == name
	})
	return len(s.events) != n
}

// groupByDay groups events by their start day, keeping their order.
func groupByDay(events []Event) [week.DaysPerWeek][]Event {
	var out [week.DaysPerWeek][]Event
	for _, e := range events {
		d := e.start.WeekOrdinal()
		out[d] = append(out[d], e)
	}
	return out
}
