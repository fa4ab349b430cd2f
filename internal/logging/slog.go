package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyTool      = "tool"
	KeyStrategy  = "strategy"
	KeyUser      = "user"
	KeyUserHash  = "user_hash"
	KeyEvent     = "event"
	KeyInvitees  = "invitees"
	KeyMinutes   = "minutes"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
)

// Status values for consistent logging.
// Note: These are intentionally duplicated from instrumentation package
// to avoid circular dependencies (instrumentation imports logging).
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusNoSlot  = "no_slot"
)

// NewLogger returns a text or JSON slog.Logger writing to w.
func NewLogger(w io.Writer, debug bool, format string) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// WithStrategy returns a logger with the search strategy attribute set.
func WithStrategy(logger *slog.Logger, strategy string) *slog.Logger {
	return logger.With(slog.String(KeyStrategy, strategy))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Strategy returns a slog attribute for the search strategy.
func Strategy(strategy string) slog.Attr {
	return slog.String(KeyStrategy, strategy)
}

// User returns a slog attribute for a planner user id.
func User(id string) slog.Attr {
	return slog.String(KeyUser, id)
}

// EventName returns a slog attribute for an event name.
func EventName(name string) slog.Attr {
	return slog.String(KeyEvent, name)
}

// Invitees returns a slog attribute with the number of invitees.
func Invitees(n int) slog.Attr {
	return slog.Int(KeyInvitees, n)
}

// Minutes returns a slog attribute for an event length in minutes.
func Minutes(m int64) slog.Attr {
	return slog.Int64(KeyMinutes, m)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
//
// Usage:
//
//	logger.Info("operation", logging.Err(err))  // Safe even if err is nil
func Err(err error) slog.Attr {
	if err == nil {
		// Return an empty Group that slog will omit from output
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeUserID returns a hashed representation of a user id, for audit
// records that leave the process.
func AnonymizeUserID(id string) string {
	if id == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(id))
	return "user:" + hex.EncodeToString(hash[:8])
}

// UserHash returns a slog attribute with the anonymized user id.
func UserHash(id string) slog.Attr {
	return slog.String(KeyUserHash, AnonymizeUserID(id))
}
