package pvm

import (
	"errors"
	"fmt"
)

// Fatal is implemented by errors that can not be resolved by retrying the
// operation that caused them.
type Fatal interface {
	error
	fatal()
}

// IsFatal returns true if err, or any error it wraps, is Fatal.
func IsFatal(err error) bool {
	var f Fatal
	return errors.As(err, &f)
}

// ProcessError indicates that the process definition does not allow the
// execution to continue, such as when no outgoing transition of an exclusive
// gateway can be selected.
type ProcessError struct {
	ExecutionID string
	ActivityID  string
	Cause       error
}

func (e ProcessError) Error() string {
	return fmt.Sprintf(
		"process error at activity '%s' of execution '%s': %s",
		e.ActivityID,
		e.ExecutionID,
		e.Cause,
	)
}

func (e ProcessError) Unwrap() error { return e.Cause }
func (ProcessError) fatal()          {}

// IllegalStateError indicates that an operation is not valid for the current
// state of an execution.
type IllegalStateError struct {
	ExecutionID string
	ActivityID  string
	Message     string
}

func (e IllegalStateError) Error() string {
	if e.ActivityID == "" {
		return fmt.Sprintf("execution '%s' %s", e.ExecutionID, e.Message)
	}

	return fmt.Sprintf(
		"execution '%s' at activity '%s' %s",
		e.ExecutionID,
		e.ActivityID,
		e.Message,
	)
}

func (IllegalStateError) fatal() {}

// NotFoundError indicates that an entity referred to by a command does not
// exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.ID)
}

func (NotFoundError) fatal() {}

// ActivityError is a failure raised while executing an activity, such as an
// error returned by a listener or condition. It may succeed if retried.
type ActivityError struct {
	ExecutionID string
	ActivityID  string
	Cause       error
}

func (e ActivityError) Error() string {
	return fmt.Sprintf(
		"failure at activity '%s' of execution '%s': %s",
		e.ActivityID,
		e.ExecutionID,
		e.Cause,
	)
}

func (e ActivityError) Unwrap() error { return e.Cause }
