package planner

import "errors"

var (
	// ErrInvalidEventInvariant is returned when an event cannot exist as described.
	ErrInvalidEventInvariant = errors.New("invalid event")

	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidUserID    = errors.New("user id must not be empty")
	ErrEventNotFound    = errors.New("event not found")
	ErrHostMismatch     = errors.New("first invitee must be the host")
	ErrHostTimeConflict = errors.New("host has a time conflict")
	ErrHostNameConflict = errors.New("host already has an event with this name")

	// ErrEmptySchedule is returned when importing a user without any events.
	ErrEmptySchedule = errors.New("schedule must contain at least one event")
)
