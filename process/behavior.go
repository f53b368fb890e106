package process

import (
	"context"
	"time"

	"github.com/operaton/operaton-sub059/variable"
)

// Behavior is the runtime behavior of an activity.
type Behavior interface {
	// Kind returns the kind of behavior.
	Kind() Kind

	// Execute is called when an execution arrives at the activity.
	Execute(ctx context.Context, x ActivityExecution) error
}

// SignallableBehavior is a Behavior that can receive external signals while an
// execution waits at its activity.
type SignallableBehavior interface {
	Behavior

	// Signal is called when an external signal is delivered to an execution
	// waiting at the activity.
	Signal(ctx context.Context, x ActivityExecution, signal string) error
}

// CompletableBehavior is a Behavior of a scope activity that is notified when
// the scope's last execution ends.
type CompletableBehavior interface {
	Behavior

	// Complete is called on the execution that entered the scope activity
	// once the scope has ended.
	Complete(ctx context.Context, x ActivityExecution) error
}

// TimerBehavior is a Behavior that is driven by a timer.
type TimerBehavior interface {
	Behavior

	// DueDate returns the time at which the timer fires, given the time at
	// which the timer is armed.
	DueDate(now time.Time, s Scope) (time.Time, error)
}

// Scope is the view of an execution that listeners and conditions are given.
type Scope interface {
	// ExecutionID returns the ID of the execution.
	ExecutionID() string

	// ProcessInstanceID returns the ID of the execution's process instance.
	ProcessInstanceID() string

	// ActivityID returns the ID of the execution's current activity.
	ActivityID() string

	// Variable returns the value of a variable visible to the execution.
	Variable(name string) (variable.Value, bool)

	// Variables returns all variables visible to the execution.
	Variables() variable.Map

	// SetVariable sets a variable on the nearest scope that declares it, or on
	// the execution's own scope if none does.
	SetVariable(ctx context.Context, name string, v variable.Value) error

	// SetVariableLocal sets a variable on the execution's own scope.
	SetVariableLocal(ctx context.Context, name string, v variable.Value) error
}

// ActivityExecution is the interface through which behaviors drive an
// execution.
type ActivityExecution interface {
	Scope

	// Definition returns the process definition being executed.
	Definition() *Definition

	// Activity returns the execution's current activity.
	Activity() *Activity

	// Now returns the current time.
	Now() time.Time

	// Leave takes every outgoing transition whose condition holds.
	Leave(ctx context.Context) error

	// Take takes a single transition.
	Take(ctx context.Context, t *Transition) error

	// TakeAll takes each of the given transitions concurrently.
	TakeAll(ctx context.Context, ts []*Transition) error

	// Join marks the execution as waiting at the current activity. If every
	// incoming path has arrived, it returns the execution that continues
	// beyond the join and ok is true.
	Join(ctx context.Context) (next ActivityExecution, ok bool, err error)

	// End ends this path of execution.
	End(ctx context.Context) error

	// Terminate ends every path of execution in the current scope.
	Terminate(ctx context.Context) error

	// EnterScope enters the current scope activity at its initial activity.
	EnterScope(ctx context.Context) error

	// ScheduleTimer suspends the execution until the given time.
	ScheduleTimer(ctx context.Context, due time.Time) error
}

// Listener is a function that is notified of execution events.
//
// event is one of "start", "end" or "take".
type Listener func(ctx context.Context, event string, s Scope) error

// Listeners is an ordered set of listeners.
type Listeners []Listener

// Notify invokes each listener in order, stopping at the first error.
func (l Listeners) Notify(ctx context.Context, event string, s Scope) error {
	for _, fn := range l {
		if err := fn(ctx, event, s); err != nil {
			return err
		}
	}

	return nil
}

// Listener event names.
const (
	EventStart = "start"
	EventEnd   = "end"
	EventTake  = "take"
)

// Condition is a predicate evaluated against the variables of an execution.
type Condition func(s Scope) (bool, error)
