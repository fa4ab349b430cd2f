package planner

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/teemow/weekplanner/internal/week"
)

// Event is an immutable weekly event. The first invitee is the host.
type Event struct {
	name     string
	location string
	online   bool
	start    week.Clock
	end      week.Clock
	invitees []string
}

// NewEvent validates and builds an event.
func NewEvent(name, location string, online bool, start, end week.Clock, invitees []string) (Event, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)

	if name == "" {
		return Event{}, fmt.Errorf("%w: name must not be empty", ErrInvalidEventInvariant)
	}
	if location == "" {
		return Event{}, fmt.Errorf("%w: location must not be empty", ErrInvalidEventInvariant)
	}
	if start.Equal(end) {
		return Event{}, fmt.Errorf("%w: start and end cannot be equal on the same day", ErrInvalidEventInvariant)
	}
	if len(invitees) == 0 {
		return Event{}, fmt.Errorf("%w: at least one invitee is required", ErrInvalidEventInvariant)
	}
	for _, id := range invitees {
		if strings.TrimSpace(id) == "" {
			return Event{}, fmt.Errorf("%w: invitee ids must not be empty", ErrInvalidEventInvariant)
		}
	}

	return Event{
		name:     name,
		location: location,
		online:   online,
		start:    start,
		end:      end,
		invitees: slices.Clone(invitees),
	}, nil
}

// Name returns the event name, unique within a schedule.
func (e Event) Name() string { return e.name }

// Location returns where the event takes place.
func (e Event) Location() string { return e.location }

// Online reports whether the event is held online.
func (e Event) Online() bool { return e.online }

// Start returns the week clock the event starts at.
func (e Event) Start() week.Clock { return e.start }

// End returns the week clock the event ends at. It is before Start for
// events that wrap into the next week.
func (e Event) End() week.Clock { return e.end }

// Host returns the first invitee.
func (e Event) Host() string {
	if len(e.invitees) == 0 {
		return ""
	}
	return e.invitees[0]
}

// Invitees returns a copy of the invitee list, host first.
func (e Event) Invitees() []string {
	return slices.Clone(e.invitees)
}

// IsInvited reports whether userID is on the invitee list.
func (e Event) IsInvited(userID string) bool {
	return slices.Contains(e.invitees, userID)
}

// Duration returns the length of the event in minutes. Same-day events whose
// end precedes their start last until that time one week later.
func (e Event) Duration() int64 {
	d := e.end.WeekMinute() - e.start.WeekMinute()
	if d <= 0 {
		d += week.MinutesPerWeek
	}
	return d
}

// Equal reports whether two events carry the same values.
func (e Event) Equal(o Event) bool {
	return e.name == o.name &&
		e.location == o.location &&
		e.online == o.online &&
		e.start.Equal(o.start) &&
		e.end.Equal(o.end) &&
		slices.Equal(e.invitees, o.invitees)
}

const indent = "        "

// String renders the event as an indented block.
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(indent + "name: " + e.name + "\n")
	b.WriteString(indent + "time: " + e.start.String() + " -> " + e.end.String() + "\n")
	b.WriteString(indent + "location: " + e.location + "\n")
	b.WriteString(indent + "online: " + strconv.FormatBool(e.online) + "\n")
	b.WriteString(indent + "invitees: " + strings.Join(e.invitees, "\n"+indent))
	return b.String()
}
