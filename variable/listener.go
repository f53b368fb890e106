package variable

import "context"

// EventType is the type of change made to a variable.
type EventType int

const (
	// Created indicates that a variable was declared for the first time within
	// a scope.
	Created EventType = iota

	// Updated indicates that an existing variable was assigned a new value.
	Updated

	// Deleted indicates that a variable was removed from a scope.
	Deleted
)

func (t EventType) String() string {
	switch t {
	case Created:
		return "create"
	case Updated:
		return "update"
	default:
		return "delete"
	}
}

// Event describes a change to a variable.
type Event struct {
	Type EventType

	// ExecutionID is the ID of the execution that owns the variable.
	ExecutionID string

	// Name is the variable name.
	Name string

	// Previous is the value before the change. It is null for Created events.
	Previous Value

	// Value is the value after the change. It is null for Deleted events.
	Value Value
}

// Listener is a function that is notified of variable changes.
//
// Listeners are invoked synchronously after the change has been applied to the
// owning scope. A non-nil error aborts the command that made the change.
type Listener func(context.Context, Event) error

// Listeners is an ordered set of listeners.
type Listeners []Listener

// Notify invokes each listener in order, stopping at the first error.
func (l Listeners) Notify(ctx context.Context, ev Event) error {
	for _, fn := range l {
		if err := fn(ctx, ev); err != nil {
			return err
		}
	}

	return nil
}
