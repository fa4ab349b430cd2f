package scheduling

import (
	"fmt"
	"strings"

	"github.com/teemow/weekplanner/internal/planner"
)

// Repository is the read side of the calendar that strategies search.
type Repository interface {
	Users() []planner.User
	HasConflict(userID string, ev planner.Event) (bool, error)
}

// Strategy finds the earliest event slot for a request.
type Strategy interface {
	Kind() Kind
	FindEvent(req Request) (planner.Event, error)
}

// Kind selects a strategy.
type Kind string

const (
	KindAnytime   Kind = "anytime"
	KindWorkHours Kind = "workhours"
)

// Kinds returns the supported strategy kinds.
func Kinds() []Kind {
	return []Kind{KindAnytime, KindWorkHours}
}

// ParseKind parses a strategy name. "work-hours" and "work_hours" are accepted
// for workhours.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "anytime", "any":
		return KindAnytime, nil
	case "workhours", "work-hours", "work_hours":
		return KindWorkHours, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// New returns the strategy for kind reading from repo.
func New(kind Kind, repo Repository) (Strategy, error) {
	switch kind {
	case KindAnytime:
		return NewAnytime(repo), nil
	case KindWorkHours:
		return NewWorkHours(repo), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, kind)
	}
}

// FindAnytimeSlot runs the anytime search against repo.
func FindAnytimeSlot(repo Repository, req Request) (planner.Event, error) {
	return NewAnytime(repo).FindEvent(req)
}

// FindWorkHoursSlot runs the work hours search against repo.
func FindWorkHoursSlot(repo Repository, req Request) (planner.Event, error) {
	return NewWorkHours(repo).FindEvent(req)
}

func userIndex(users []planner.User) map[string]planner.User {
	idx := make(map[string]planner.User, len(users))
	for _, u := range users {
		idx[u.ID] = u
	}
	return idx
}
