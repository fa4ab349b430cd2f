package scheduling

import "errors"

var (
	// ErrNoSlotFound is the normal negative result of a search.
	ErrNoSlotFound = errors.New("unable to find time that works for every invitee")

	// ErrInvalidRequest is returned for requests rejected by Validate.
	ErrInvalidRequest = errors.New("invalid scheduling request")

	// ErrUnknownStrategy is returned for unsupported strategy kinds.
	ErrUnknownStrategy = errors.New("unknown scheduling strategy")
)
