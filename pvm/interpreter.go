package pvm

import (
	"context"
	"errors"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/operaton/operaton-sub059/execution"
	"github.com/operaton/operaton-sub059/job"
	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/process/behavior"
)

// interpreter advances one execution tree.
//
// Work is performed by operations that are queued and run in order until the
// queue is empty, so the depth of the call stack does not grow with the length
// of the path taken through the process.
type interpreter struct {
	pc    *Context
	def   *process.Definition
	tree  *execution.Tree
	queue []operation
}

// operation is a unit of work applied to a single execution.
type operation struct {
	name        string
	executionID string
	fn          func(ctx context.Context, x *execution.Execution) error
}

func newInterpreter(pc *Context, tree *execution.Tree) *interpreter {
	tree.Listeners = pc.Definition.VariableListeners

	return &interpreter{
		pc:   pc,
		def:  pc.Definition,
		tree: tree,
	}
}

// push queues an operation on x.
func (in *interpreter) push(
	name string,
	x *execution.Execution,
	fn func(ctx context.Context, x *execution.Execution) error,
) {
	in.queue = append(in.queue, operation{name, x.ID, fn})
}

// run performs queued operations until there are none left.
//
// Operations on executions that have been removed from the tree by an earlier
// operation are discarded.
func (in *interpreter) run(ctx context.Context) error {
	for len(in.queue) > 0 {
		op := in.queue[0]
		in.queue = in.queue[1:]

		x, ok := in.tree.Get(op.executionID)
		if !ok || x.IsEnded {
			logging.Debug(
				in.pc.Logger,
				"[%s] discarding '%s' operation on removed execution",
				op.executionID,
				op.name,
			)
			continue
		}

		logging.Debug(
			in.pc.Logger,
			"[%s] %s at '%s'",
			x.ID,
			op.name,
			x.ActivityID,
		)

		if err := op.fn(ctx, x); err != nil {
			return in.wrap(err, x.ID, x.ActivityID)
		}
	}

	return nil
}

// wrap annotates err with the execution and activity at which it occurred.
func (in *interpreter) wrap(err error, executionID, activityID string) error {
	if IsFatal(err) {
		return err
	}

	var ae ActivityError
	if errors.As(err, &ae) {
		return err
	}

	var nt behavior.NoOutgoingTransitionError
	if errors.As(err, &nt) {
		return ProcessError{executionID, activityID, err}
	}

	return ActivityError{executionID, activityID, err}
}

// activity returns the current activity of x.
func (in *interpreter) activity(x *execution.Execution) (*process.Activity, error) {
	if a, ok := in.def.Activity(x.ActivityID); ok {
		return a, nil
	}

	return nil, IllegalStateError{
		ExecutionID: x.ID,
		ActivityID:  x.ActivityID,
		Message:     "is not at an activity of process definition '" + in.def.ID + "'",
	}
}

// execution returns the view of x used by behaviors and listeners.
func (in *interpreter) execution(x *execution.Execution) *activityExecution {
	return &activityExecution{in, x}
}

// scopeExecution returns the execution that represents the innermost scope
// that x belongs to.
func (in *interpreter) scopeExecution(x *execution.Execution) *execution.Execution {
	for !x.IsScope {
		x, _ = in.tree.Parent(x)
	}
	return x
}

// remove removes x and its descendants from the tree and cancels their jobs.
func (in *interpreter) remove(ctx context.Context, x *execution.Execution) error {
	return in.cancelAll(ctx, in.tree.Remove(x.ID))
}

// removeChildren removes the descendants of x and cancels their jobs.
func (in *interpreter) removeChildren(ctx context.Context, x *execution.Execution) error {
	return in.cancelAll(ctx, in.tree.RemoveChildren(x))
}

func (in *interpreter) cancelAll(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := in.pc.Jobs.CancelJobs(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// cancelBoundaries cancels the timers of the activities attached to a.
func (in *interpreter) cancelBoundaries(
	ctx context.Context,
	x *execution.Execution,
	a *process.Activity,
) error {
	if len(a.Attached) == 0 {
		return nil
	}
	return in.pc.Jobs.CancelJobs(ctx, x.ID, a.Attached...)
}

// armBoundaries schedules the timers of the activities attached to a.
func (in *interpreter) armBoundaries(
	ctx context.Context,
	x *execution.Execution,
	a *process.Activity,
) error {
	for _, id := range a.Attached {
		b := in.def.MustActivity(id)

		tb, ok := b.Behavior.(process.TimerBehavior)
		if !ok {
			continue
		}

		due, err := tb.DueDate(in.pc.now(), in.execution(x))
		if err != nil {
			return err
		}

		if err := in.schedule(
			ctx,
			x,
			b,
			job.Timer,
			due,
			job.Continuation{
				Kind:       job.TimerFired,
				ActivityID: b.ID,
			},
		); err != nil {
			return err
		}
	}

	return nil
}

// schedule creates a job that continues x.
func (in *interpreter) schedule(
	ctx context.Context,
	x *execution.Execution,
	a *process.Activity,
	t string,
	due time.Time,
	c job.Continuation,
) error {
	c.ExecutionID = x.ID

	logging.Debug(
		in.pc.Logger,
		"[%s] scheduling %s job (%s) for '%s'",
		x.ID,
		t,
		c.Kind,
		a.ID,
	)

	return in.pc.Jobs.ScheduleJob(ctx, job.Spec{
		Type:              t,
		DueDate:           due,
		ProcessInstanceID: in.tree.ProcessInstanceID(),
		DefinitionID:      in.def.ID,
		Exclusive:         a.Exclusive,
		Priority:          a.Priority,
		Continuation:      c,
	})
}
