package domain

import "fmt"

// ErrNotFound is returned when a lookup by identifier misses.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidTransitionError reports a lifecycle event that is inapplicable to an
// entity's current state. It is an expected, recoverable condition surfaced to
// the caller for user-facing messaging.
type InvalidTransitionError struct {
	Entity EntityType
	ID     string
	From   string
	Event  string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s %s: event %q not valid from state %q", e.Entity, e.ID, e.Event, e.From)
}

// ValidationError reports a malformed entity on create or save, such as a
// negative amount or a missing required field.
type ValidationError struct {
	Entity EntityType
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Entity, e.Field, e.Reason)
}
