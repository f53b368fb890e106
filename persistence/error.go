package persistence

import (
	"fmt"
)

// ConflictError is an error indicating one or more operations within a batch
// caused an optimistic concurrency conflict.
type ConflictError struct {
	// Cause is the operation that caused the conflict.
	Cause Operation
}

func (e ConflictError) Error() string {
	return fmt.Sprintf(
		"optimistic concurrency conflict in %T operation (%s)",
		e.Cause,
		e.Cause.entityKey(),
	)
}

// NotFoundError is returned when a record loaded by its ID does not exist.
type NotFoundError struct {
	// Kind is the kind of record, such as "execution" or "job".
	Kind string

	// ID is the ID of the record.
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf(
		"%s with ID '%s' does not exist",
		e.Kind,
		e.ID,
	)
}
