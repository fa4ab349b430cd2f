package week

import "errors"

var (
	// ErrInvalidTime is returned for time text that is not a 4-digit 24-hour HHMM value.
	ErrInvalidTime = errors.New("invalid time")

	// ErrInvalidDay is returned for an unknown day of the week.
	ErrInvalidDay = errors.New("invalid day")

	// ErrNullArgument is returned when a required day or time value is missing.
	ErrNullArgument = errors.New("missing required argument")
)
