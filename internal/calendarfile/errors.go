package calendarfile

import "errors"

var (
	// ErrUnknownFormat is returned for file extensions or format names that
	// have no codec.
	ErrUnknownFormat = errors.New("unknown schedule file format")

	// ErrMalformed is returned when a document decodes but does not describe
	// a valid schedule.
	ErrMalformed = errors.New("malformed schedule file")
)
