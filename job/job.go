// Package job describes the asynchronous work created by the process virtual
// machine and the lifecycle of a job as it is serviced by the job executor.
package job

import (
	"time"

	"github.com/operaton/operaton-sub059/variable"
)

// Job types.
const (
	// Timer is the type of jobs that fire a timer.
	Timer = "timer"

	// AsyncContinuation is the type of jobs that continue an execution at an
	// asynchronous boundary.
	AsyncContinuation = "async-continuation"

	// Retry is the type of jobs that redeliver a signal that was deferred
	// because of an optimistic concurrency conflict.
	Retry = "retry"
)

// ResumeKind describes where a continuation resumes an execution.
type ResumeKind string

const (
	// BeforeActivity resumes by entering the activity.
	BeforeActivity ResumeKind = "before"

	// AfterActivity resumes by leaving the activity.
	AfterActivity ResumeKind = "after"

	// OnTransition resumes by continuing along a transition, entering the
	// activity (or intermediate scope) at which it stopped.
	OnTransition ResumeKind = "transition"

	// TimerFired resumes by firing a timer.
	TimerFired ResumeKind = "timer"

	// SignalDelivery resumes by delivering a signal.
	SignalDelivery ResumeKind = "signal"
)

// Continuation is the serializable description of how to resume an execution.
type Continuation struct {
	Kind        ResumeKind
	ExecutionID string

	// ActivityID is the activity at which the execution resumes. For timers
	// it is the timer activity itself, which may be a boundary activity of
	// the execution's current activity.
	ActivityID string

	// TransitionID is the transition being taken. It is only set for
	// OnTransition continuations.
	TransitionID string

	// Transitions are the IDs of the transitions to take when resuming after
	// an activity. If it is empty the activity is left normally.
	Transitions []string

	// Signal and Variables are delivered by SignalDelivery continuations.
	Signal    string
	Variables variable.Map
}

// Spec is a request to create a job.
type Spec struct {
	Type              string
	DueDate           time.Time
	ProcessInstanceID string
	DefinitionID      string
	Exclusive         bool
	Priority          int64
	Continuation      Continuation
}
