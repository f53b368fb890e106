package pvm

import (
	"context"

	"github.com/operaton/operaton-sub059/execution"
	"github.com/operaton/operaton-sub059/job"
	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/variable"
)

// Start starts a new process instance.
//
// tree must contain only the root execution. vars are set on the root before
// the initial activity is entered. Execution continues until every path has
// reached a wait state, an asynchronous boundary or an end.
func Start(
	ctx context.Context,
	pc *Context,
	tree *execution.Tree,
	vars variable.Map,
) error {
	root := tree.Root()

	if root.ActivityID != "" || root.IsEnded || tree.Len() != 1 {
		return IllegalStateError{
			ExecutionID: root.ID,
			Message:     "has already been started",
		}
	}

	in := newInterpreter(pc, tree)

	if err := tree.SetVariables(ctx, root.ID, vars); err != nil {
		return err
	}

	if err := pc.Definition.OnStart.Notify(ctx, process.EventStart, in.execution(root)); err != nil {
		return in.wrap(err, root.ID, "")
	}

	initial := pc.Definition.MustActivity(pc.Definition.Initial)

	in.push("enter", root, func(ctx context.Context, x *execution.Execution) error {
		return in.enter(ctx, x, initial, nil, false)
	})

	return in.run(ctx)
}

// Signal delivers an external signal to an execution that is waiting at a
// signallable activity.
//
// vars are set on the execution before the signal is delivered.
func Signal(
	ctx context.Context,
	pc *Context,
	tree *execution.Tree,
	executionID string,
	signal string,
	vars variable.Map,
) error {
	in := newInterpreter(pc, tree)

	x, err := in.waiting(executionID)
	if err != nil {
		return err
	}

	a, err := in.activity(x)
	if err != nil {
		return err
	}

	sb, ok := a.Behavior.(process.SignallableBehavior)
	if !ok {
		return IllegalStateError{
			ExecutionID: x.ID,
			ActivityID:  a.ID,
			Message:     "can not be signaled, its activity is not a wait state",
		}
	}

	if err := in.signal(ctx, x, sb, signal, vars); err != nil {
		return err
	}

	return in.run(ctx)
}

// Resume continues an execution from the point at which a job suspended it.
func Resume(
	ctx context.Context,
	pc *Context,
	tree *execution.Tree,
	p ResumePoint,
) error {
	in := newInterpreter(pc, tree)

	x, ok := tree.Get(p.ExecutionID)
	if !ok || x.IsEnded || tree.Root().IsEnded {
		return IllegalStateError{
			ExecutionID: p.ExecutionID,
			ActivityID:  p.ActivityID,
			Message:     "does not exist or has ended",
		}
	}

	if err := in.resume(ctx, x, p); err != nil {
		return err
	}

	return in.run(ctx)
}

// resume queues the work that continues x from p.
func (in *interpreter) resume(ctx context.Context, x *execution.Execution, p ResumePoint) error {
	a, ok := in.def.Activity(p.ActivityID)
	if !ok {
		return NotFoundError{Kind: "activity", ID: p.ActivityID}
	}

	switch p.Kind {
	case job.BeforeActivity:
		if err := in.expect(x, a); err != nil {
			return err
		}

		in.push("enter", x, func(ctx context.Context, x *execution.Execution) error {
			return in.enter(ctx, x, a, nil, true)
		})

	case job.OnTransition:
		if err := in.expect(x, a); err != nil {
			return err
		}

		t, ok := in.def.Transition(p.TransitionID)
		if !ok {
			return NotFoundError{Kind: "transition", ID: p.TransitionID}
		}

		in.push("take", x, func(ctx context.Context, x *execution.Execution) error {
			if t.Destination == a.ID {
				return in.enter(ctx, x, a, t, true)
			}
			return in.descend(ctx, x, t, a.ID)
		})

	case job.AfterActivity:
		if err := in.expect(x, a); err != nil {
			return err
		}

		ts, err := in.transitions(a, p.Transitions)
		if err != nil {
			return err
		}

		x.IsActive = true

		in.push("leave", x, func(ctx context.Context, x *execution.Execution) error {
			if len(ts) == 0 {
				return in.leave(ctx, x, true)
			}
			return in.takeAll(ctx, x, ts, true)
		})

	case job.TimerFired:
		in.push("fire-timer", x, func(ctx context.Context, x *execution.Execution) error {
			return in.fireTimer(ctx, x, a)
		})

	case job.SignalDelivery:
		sb, ok := a.Behavior.(process.SignallableBehavior)
		if !ok || x.ActivityID != a.ID {
			return IllegalStateError{
				ExecutionID: x.ID,
				ActivityID:  x.ActivityID,
				Message:     "can not be signaled at '" + a.ID + "'",
			}
		}

		return in.signal(ctx, x, sb, p.Signal, p.Variables)

	default:
		return IllegalStateError{
			ExecutionID: x.ID,
			ActivityID:  x.ActivityID,
			Message:     "can not be resumed by a continuation of kind '" + string(p.Kind) + "'",
		}
	}

	return nil
}

// signal sets vars on x, then queues delivery of the signal to its behavior.
func (in *interpreter) signal(
	ctx context.Context,
	x *execution.Execution,
	sb process.SignallableBehavior,
	signal string,
	vars variable.Map,
) error {
	if err := in.tree.SetVariables(ctx, x.ID, vars); err != nil {
		return err
	}

	x.IsActive = true

	in.push("signal", x, func(ctx context.Context, x *execution.Execution) error {
		return sb.Signal(ctx, in.execution(x), signal)
	})

	return nil
}

// waiting returns the execution with the given ID if it is able to receive a
// signal.
func (in *interpreter) waiting(id string) (*execution.Execution, error) {
	x, ok := in.tree.Get(id)
	if !ok || x.IsEnded || in.tree.Root().IsEnded {
		return nil, IllegalStateError{
			ExecutionID: id,
			Message:     "does not exist or has ended",
		}
	}

	if x.ActivityID == "" {
		return nil, IllegalStateError{
			ExecutionID: id,
			Message:     "is not at an activity",
		}
	}

	if !x.IsActive || len(x.Children) != 0 {
		return nil, IllegalStateError{
			ExecutionID: id,
			ActivityID:  x.ActivityID,
			Message:     "is not waiting at a wait state",
		}
	}

	return x, nil
}

// expect returns an error if x is not at activity a.
func (in *interpreter) expect(x *execution.Execution, a *process.Activity) error {
	if x.ActivityID == a.ID {
		return nil
	}

	return IllegalStateError{
		ExecutionID: x.ID,
		ActivityID:  x.ActivityID,
		Message:     "is not at activity '" + a.ID + "'",
	}
}

// transitions resolves transition IDs to outgoing transitions of a.
func (in *interpreter) transitions(a *process.Activity, ids []string) ([]*process.Transition, error) {
	var ts []*process.Transition

	for _, id := range ids {
		t, ok := in.def.Transition(id)
		if !ok || t.Source != a.ID {
			return nil, NotFoundError{Kind: "outgoing transition", ID: id}
		}
		ts = append(ts, t)
	}

	return ts, nil
}
