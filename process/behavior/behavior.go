// Package behavior provides the standard activity behaviors.
package behavior

import (
	"context"
	"fmt"

	"github.com/operaton/operaton-sub059/process"
)

// None is a pass-through activity. It leaves immediately via every outgoing
// transition whose condition holds. It is used for start events, script-less
// tasks and the like.
type None struct{}

// Kind returns process.PassThrough.
func (None) Kind() process.Kind { return process.PassThrough }

// Execute leaves the activity.
func (None) Execute(ctx context.Context, x process.ActivityExecution) error {
	return x.Leave(ctx)
}

// Wait is a wait state. The execution stops until it is signaled.
type Wait struct{}

// Kind returns process.WaitState.
func (Wait) Kind() process.Kind { return process.WaitState }

// Execute does nothing, leaving the execution waiting.
func (Wait) Execute(context.Context, process.ActivityExecution) error {
	return nil
}

// Signal leaves the activity.
func (Wait) Signal(ctx context.Context, x process.ActivityExecution, _ string) error {
	return x.Leave(ctx)
}

// Fork takes every outgoing transition concurrently, ignoring conditions.
type Fork struct{}

// Kind returns process.Fork.
func (Fork) Kind() process.Kind { return process.Fork }

// Execute takes all outgoing transitions.
func (Fork) Execute(ctx context.Context, x process.ActivityExecution) error {
	return x.TakeAll(ctx, x.Activity().Outgoing)
}

// Join waits for every incoming path, then leaves.
type Join struct{}

// Kind returns process.Join.
func (Join) Kind() process.Kind { return process.Join }

// Execute joins the arriving execution.
func (Join) Execute(ctx context.Context, x process.ActivityExecution) error {
	next, ok, err := x.Join(ctx)
	if err != nil || !ok {
		return err
	}

	return next.Leave(ctx)
}

// ParallelGateway joins every incoming path, then takes every outgoing
// transition.
type ParallelGateway struct{}

// Kind returns process.ParallelGateway.
func (ParallelGateway) Kind() process.Kind { return process.ParallelGateway }

// Execute joins, then forks.
func (ParallelGateway) Execute(ctx context.Context, x process.ActivityExecution) error {
	next, ok, err := x.Join(ctx)
	if err != nil || !ok {
		return err
	}

	return next.TakeAll(ctx, next.Activity().Outgoing)
}

// ExclusiveGateway takes the first outgoing transition whose condition holds,
// in declaration order. The default transition is taken if no condition holds.
type ExclusiveGateway struct{}

// Kind returns process.ExclusiveGateway.
func (ExclusiveGateway) Kind() process.Kind { return process.ExclusiveGateway }

// Execute selects and takes a transition.
func (ExclusiveGateway) Execute(ctx context.Context, x process.ActivityExecution) error {
	a := x.Activity()

	for _, t := range a.Outgoing {
		if t.ID == a.Default {
			continue
		}

		ok, err := Holds(t.Condition, x)
		if err != nil {
			return fmt.Errorf("condition of transition '%s': %w", t.ID, err)
		}

		if ok {
			return x.Take(ctx, t)
		}
	}

	if a.Default != "" {
		t, _ := x.Definition().Transition(a.Default)
		return x.Take(ctx, t)
	}

	return NoOutgoingTransitionError{ActivityID: a.ID}
}

// NoOutgoingTransitionError is returned by ExclusiveGateway when no transition
// can be taken.
type NoOutgoingTransitionError struct {
	ActivityID string
}

func (e NoOutgoingTransitionError) Error() string {
	return fmt.Sprintf(
		"no outgoing transition of '%s' could be selected, no condition holds and there is no default",
		e.ActivityID,
	)
}

// End ends the path of execution that reaches it.
type End struct{}

// Kind returns process.End.
func (End) Kind() process.Kind { return process.End }

// Execute ends the execution.
func (End) Execute(ctx context.Context, x process.ActivityExecution) error {
	return x.End(ctx)
}

// TerminateEnd ends every path of execution in its scope.
type TerminateEnd struct{}

// Kind returns process.TerminateEnd.
func (TerminateEnd) Kind() process.Kind { return process.TerminateEnd }

// Execute terminates the scope.
func (TerminateEnd) Execute(ctx context.Context, x process.ActivityExecution) error {
	return x.Terminate(ctx)
}

// SubProcess is an embedded scope.
type SubProcess struct{}

// Kind returns process.SubProcess.
func (SubProcess) Kind() process.Kind { return process.SubProcess }

// Execute enters the scope at its initial activity.
func (SubProcess) Execute(ctx context.Context, x process.ActivityExecution) error {
	return x.EnterScope(ctx)
}

// Complete leaves the sub-process once its scope has ended.
func (SubProcess) Complete(ctx context.Context, x process.ActivityExecution) error {
	return x.Leave(ctx)
}
