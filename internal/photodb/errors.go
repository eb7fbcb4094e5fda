package photodb

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the conditions callers need to distinguish. Match with
// errors.Is; the wrapped detail carries the offending operation.
var (
	// ErrNotLocated means no candidate database path exists on this machine.
	// Recoverable by user action, never fatal to the process.
	ErrNotLocated = errors.New("photos library not located")

	// ErrSchemaMismatch means an expected table is entirely absent. Absence of
	// an optional column is not a mismatch; that triggers the reduced query.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrJoinUndetected means no qualifying album/asset join table was found.
	// Only fatal for operations that traverse memberships.
	ErrJoinUndetected = errors.New("album join structure undetected")

	// ErrLocked means the store is held exclusively by the owning application.
	ErrLocked = errors.New("database locked")

	// ErrNotFound means a requested identifier, filename, or album name has
	// no match.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous means more than one candidate matched an operation that
	// implies a unique result.
	ErrAmbiguous = errors.New("ambiguous match")
)

// classify maps a raw sqlite execution failure onto the error taxonomy while
// preserving the underlying detail.
func classify(operation string, err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "sqlite_busy"):
		return fmt.Errorf("%w: %s: %w", ErrLocked, operation, err)
	case strings.Contains(msg, "no such table"):
		return fmt.Errorf("%w: %s: %w", ErrSchemaMismatch, operation, err)
	case strings.Contains(msg, "unable to open"), strings.Contains(msg, "readonly"):
		return fmt.Errorf("%w: %s: %w", ErrNotLocated, operation, err)
	}
	return fmt.Errorf("%s: %w", operation, err)
}
