package planner

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/teemow/weekplanner/internal/logging"
	"github.com/teemow/weekplanner/internal/week"
)

// User is a read-only snapshot of a user and their schedule.
type User struct {
	ID     string
	Events []Event
}

// Planner is the multi-user calendar repository. It is safe for concurrent use.
type Planner struct {
	mu        sync.RWMutex
	order     []string
	schedules map[string]*Schedule
	logger    *slog.Logger
}

// New returns an empty planner.
func New() *Planner {
	return &Planner{
		schedules: make(map[string]*Schedule),
		logger:    slog.Default(),
	}
}

// SetLogger replaces the logger used for skipped invitees and rollbacks.
func (p *Planner) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	p.mu.Lock()
	p.logger = logger
	p.mu.Unlock()
}

// AddUser registers a user with an empty schedule.
func (p *Planner) AddUser(id string) error {
	id = strings.TrimSpace(id)
	s, err := NewSchedule(id)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.schedules[id]; ok {
		return fmt.Errorf("%w: %s", ErrUserExists, id)
	}
	p.schedules[id] = s
	p.order = append(p.order, id)
	return nil
}

// ImportUser registers a new user together with their events. Each event is
// added to the new user's schedule only.
func (p *Planner) ImportUser(id string, events []Event) error {
	id = strings.TrimSpace(id)
	if len(events) == 0 {
		return fmt.Errorf("%s: %w", id, ErrEmptySchedule)
	}
	s, err := NewSchedule(id)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if _, err := s.Add(ev); err != nil {
			return fmt.Errorf("import %s: %w", id, err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.schedules[id]; ok {
		return fmt.Errorf("%w: %s", ErrUserExists, id)
	}
	p.schedules[id] = s
	p.order = append(p.order, id)
	return nil
}

// HasUser reports whether id is registered.
func (p *Planner) HasUser(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.schedules[id]
	return ok
}

// User returns a snapshot of one user.
func (p *Planner) User(id string) (User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.schedules[id]
	if !ok {
		return User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return User{ID: id, Events: s.Events()}, nil
}

// Users returns snapshots of every user in registration order.
func (p *Planner) Users() []User {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]User, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, User{ID: id, Events: p.schedules[id].Events()})
	}
	return out
}

// UserIDs returns every user id in registration order.
func (p *Planner) UserIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.order)
}

// HasConflict reports whether ev clashes by name or time with the user's schedule.
func (p *Planner) HasConflict(userID string, ev Event) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.schedules[userID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return s.HasConflict(ev), nil
}

// HasConflictForAny reports whether ev clashes for any of the given users.
func (p *Planner) HasConflictForAny(userIDs []string, ev Event) (bool, error) {
	for _, id := range userIDs {
		conflict, err := p.HasConflict(id, ev)
		if err != nil {
			return false, err
		}
		if conflict {
			return true, nil
		}
	}
	return false, nil
}

// AddEvent adds ev to the host's schedule and then to every registered
// invitee whose schedule has room for it. It returns the ids of the users
// that received the event, host first.
func (p *Planner) AddEvent(hostID string, ev Event) ([]string, error) {
	if ev.Host() != hostID {
		return nil, fmt.Errorf("%w: got %q, event host is %q", ErrHostMismatch, hostID, ev.Host())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	host, ok := p.schedules[hostID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, hostID)
	}
	if _, err := host.Add(ev); err != nil {
		return nil, err
	}

	return append([]string{hostID}, p.addToInvitees(ev, hostID)...), nil
}

func (p *Planner) addToInvitees(ev Event, hostID string) []string {
	var added []string
	for _, id := range ev.invitees[1:] {
		if id == hostID {
			continue
		}
		s, ok := p.schedules[id]
		if !ok {
			p.logger.Debug("skipping unknown invitee",
				logging.Operation("planner.add_event"),
				logging.User(id))
			continue
		}
		ok, err := s.Add(ev)
		if err != nil {
			// Not reachable for non-hosts.
			continue
		}
		if !ok {
			p.logger.Debug("invitee has a conflict, event not added",
				logging.Operation("planner.add_event"),
				logging.User(id),
				logging.EventName(ev.name))
			continue
		}
		added = append(added, id)
	}
	return added
}

// RemoveEvent removes the named event. When userID hosts the event it is
// removed from every invitee; otherwise only from userID's schedule.
func (p *Planner) RemoveEvent(userID, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.schedules[userID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	ev, ok := s.Find(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrEventNotFound, name)
	}

	if ev.Host() != userID {
		s.Remove(name)
		return nil
	}
	for _, id := range ev.invitees {
		if other, ok := p.schedules[id]; ok {
			other.Remove(name)
		}
	}
	return nil
}

// ModifyEvent replaces the event called oldName with ev. The host is taken
// from ev. If the host cannot take ev, the old event is put back and the
// error returned.
func (p *Planner) ModifyEvent(oldName string, ev Event) error {
	hostID := ev.Host()

	p.mu.Lock()
	defer p.mu.Unlock()

	host, ok := p.schedules[hostID]
	if !ok {
		return fmt.Errorf("%w: host %s", ErrUserNotFound, hostID)
	}
	old, hadOld := host.Find(oldName)
	host.Remove(oldName)

	if _, err := host.Add(ev); err != nil {
		if hadOld {
			if _, restoreErr := host.Add(old); restoreErr != nil {
				err = errors.Join(err, restoreErr)
			}
		}
		p.logger.Debug("modify rejected by host schedule",
			logging.Operation("planner.modify_event"),
			logging.User(hostID),
			logging.Err(err))
		return err
	}

	for _, id := range p.order {
		if id == hostID {
			continue
		}
		s := p.schedules[id]
		had := s.Remove(oldName)
		if had || ev.IsInvited(id) {
			_, _ = s.Add(ev)
		}
	}
	return nil
}

// OccurringAt returns the user's events that are in progress at c.
func (p *Planner) OccurringAt(userID string, c week.Clock) ([]Event, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.schedules[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	var out []Event
	for _, e := range s.events {
		if OccursAt(e, c) {
			out = append(out, e)
		}
	}
	return out, nil
}

// OccursAt reports whether c falls within the event, boundaries included.
func OccursAt(e Event, c week.Clock) bool {
	t := c.TotalMinutesInDay()
	start, end := e.start.TotalMinutesInDay(), e.end.TotalMinutesInDay()
	startDay, endDay, day := e.start.Day(), e.end.Day(), c.Day()

	switch {
	case startDay == day && endDay == day:
		if end < start {
			return t >= start || t <= end
		}
		return start <= t && t <= end
	case startDay == day:
		return t >= start
	case endDay == day:
		return t <= end
	}

	s, en := startDay.Ordinal(), endDay.Ordinal()
	target := day.Ordinal()
	if en < s || (en == s && end < start) {
		en += week.DaysPerWeek
	}
	if target < s {
		target += week.DaysPerWeek
	}
	return s < target && target < en
}
