package scheduling

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teemow/weekplanner/internal/week"
)

// MaxDuration is the longest event that can be requested, in minutes.
const MaxDuration = week.MinutesPerWeek

// Request describes the event to find a slot for. The first invitee is the host.
type Request struct {
	Name     string
	Location string
	Online   bool
	Duration int64
	Invitees []string
}

// Host returns the first invitee.
func (r Request) Host() string {
	if len(r.Invitees) == 0 {
		return ""
	}
	return r.Invitees[0]
}

// Validate checks the request before it reaches a strategy.
func (r Request) Validate() error {
	if len(r.Invitees) == 0 {
		return fmt.Errorf("%w: invitees must not be empty", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("%w: name and location must not be empty", ErrInvalidRequest)
	}
	if r.Duration <= 0 || r.Duration > MaxDuration {
		return fmt.Errorf("%w: duration must be greater than 0 and not exceed %d minutes", ErrInvalidRequest, MaxDuration)
	}
	return nil
}

// ParseDuration parses a duration given as whole minutes.
func ParseDuration(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: duration must not be empty", ErrInvalidRequest)
	}
	d, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: duration must be a valid integer in minutes", ErrInvalidRequest)
	}
	if d <= 0 || d > MaxDuration {
		return 0, fmt.Errorf("%w: duration must be greater than 0 and not exceed %d minutes", ErrInvalidRequest, MaxDuration)
	}
	return d, nil
}

// ParseRequest builds and validates a request from text input.
func ParseRequest(name, duration, location string, online bool, invitees []string) (Request, error) {
	d, err := ParseDuration(duration)
	if err != nil {
		return Request{}, err
	}
	r := Request{
		Name:     name,
		Location: location,
		Online:   online,
		Duration: d,
		Invitees: invitees,
	}
	return r, r.Validate()
}
