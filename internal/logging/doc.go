// Package logging holds the slog setup and the attribute helpers used across
// weekplanner.
//
// NewLogger builds a text or JSON handler on the given writer. Attribute
// helpers keep key names consistent:
//
//	logger := logging.WithStrategy(slog.Default(), "workhours")
//	logger.Info("slot found",
//	    logging.EventName(ev.Name()),
//	    logging.Minutes(30))
//
// Audit records use UserHash so planner user ids can be correlated without
// being written in clear text.
//
// Packages that should not depend on slog directly take the Logger interface,
// implemented by SlogAdapter.
package logging
