package pvm

import (
	"context"
	"time"

	"github.com/operaton/operaton-sub059/execution"
	"github.com/operaton/operaton-sub059/job"
	"github.com/operaton/operaton-sub059/process"
)

// enter moves x into activity a and executes its behavior.
//
// via is the transition through which a is reached, if any. If resumed is
// true the activity's asynchronous boundary has already been crossed.
func (in *interpreter) enter(
	ctx context.Context,
	x *execution.Execution,
	a *process.Activity,
	via *process.Transition,
	resumed bool,
) error {
	x.ActivityID = a.ID

	if a.AsyncBefore && !resumed {
		x.IsActive = false

		c := job.Continuation{
			Kind:       job.BeforeActivity,
			ActivityID: a.ID,
		}

		if via != nil {
			c.Kind = job.OnTransition
			c.TransitionID = via.ID
		}

		return in.schedule(ctx, x, a, job.AsyncContinuation, time.Time{}, c)
	}

	x.IsActive = true

	if err := a.OnStart.Notify(ctx, process.EventStart, in.execution(x)); err != nil {
		return err
	}

	if err := in.armBoundaries(ctx, x, a); err != nil {
		return err
	}

	return a.Behavior.Execute(ctx, in.execution(x))
}

// leave takes the outgoing transitions of the current activity whose
// conditions hold. The default transition is taken only if no other
// transition is selected.
func (in *interpreter) leave(ctx context.Context, x *execution.Execution, resumed bool) error {
	a, err := in.activity(x)
	if err != nil {
		return err
	}

	if a.AsyncAfter && !resumed {
		return in.scheduleAfter(ctx, x, a, nil)
	}

	var (
		s   = in.execution(x)
		def *process.Transition
		ts  []*process.Transition
	)

	for _, t := range a.Outgoing {
		if t.ID == a.Default {
			def = t
			continue
		}

		if t.Condition != nil {
			ok, err := t.Condition(s)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}

		ts = append(ts, t)
	}

	if len(ts) == 0 && def != nil {
		ts = append(ts, def)
	}

	return in.takeAll(ctx, x, ts, true)
}

// scheduleAfter suspends x at a until a job takes the given transitions, or
// leaves the activity normally if ids is empty.
func (in *interpreter) scheduleAfter(
	ctx context.Context,
	x *execution.Execution,
	a *process.Activity,
	ids []string,
) error {
	x.IsActive = false

	return in.schedule(
		ctx,
		x,
		a,
		job.AsyncContinuation,
		time.Time{},
		job.Continuation{
			Kind:        job.AfterActivity,
			ActivityID:  a.ID,
			Transitions: ids,
		},
	)
}

// takeAll takes each of the given transitions on its own concurrent
// execution.
func (in *interpreter) takeAll(
	ctx context.Context,
	x *execution.Execution,
	ts []*process.Transition,
	resumed bool,
) error {
	a, err := in.activity(x)
	if err != nil {
		return err
	}

	if a.AsyncAfter && !resumed {
		return in.scheduleAfter(ctx, x, a, transitionIDs(ts))
	}

	switch len(ts) {
	case 0:
		return in.end(ctx, x)
	case 1:
		return in.take(ctx, x, ts[0], false, true)
	}

	if err := a.OnEnd.Notify(ctx, process.EventEnd, in.execution(x)); err != nil {
		return err
	}

	if err := in.cancelBoundaries(ctx, x, a); err != nil {
		return err
	}

	var branches []*execution.Execution

	if x.IsConcurrent {
		// x continues as the first branch and its siblings take the rest.
		p, _ := in.tree.Parent(x)
		branches = append(branches, x)

		for range ts[1:] {
			branches = append(branches, in.newBranch(p, a))
		}
	} else {
		// x becomes the coordinator of one concurrent child per transition.
		for range ts {
			branches = append(branches, in.newBranch(x, a))
		}

		x.ActivityID = ""
		x.IsActive = false
	}

	for i, b := range branches {
		t := ts[i]
		in.push("take", b, func(ctx context.Context, b *execution.Execution) error {
			return in.take(ctx, b, t, true, true)
		})
	}

	return nil
}

// newBranch adds a concurrent child to p at activity a.
func (in *interpreter) newBranch(p *execution.Execution, a *process.Activity) *execution.Execution {
	c := in.tree.NewChild(p, in.pc.newID())
	c.IsConcurrent = true
	c.ActivityID = a.ID
	return c
}

// take moves x along a transition.
//
// If skipLeave is true the end listeners of the source activity have already
// been notified.
func (in *interpreter) take(
	ctx context.Context,
	x *execution.Execution,
	t *process.Transition,
	skipLeave, resumed bool,
) error {
	src, err := in.activity(x)
	if err != nil {
		return err
	}

	if src.AsyncAfter && !resumed {
		return in.scheduleAfter(ctx, x, src, []string{t.ID})
	}

	x, err = in.fold(ctx, x)
	if err != nil {
		return err
	}

	if !skipLeave {
		if err := src.OnEnd.Notify(ctx, process.EventEnd, in.execution(x)); err != nil {
			return err
		}

		if err := in.cancelBoundaries(ctx, x, src); err != nil {
			return err
		}
	}

	srcChain := in.def.ScopeChain(src.ID)
	dstChain := in.def.ScopeChain(t.Destination)
	lca := commonScope(srcChain, dstChain)

	for _, s := range srcChain {
		if s == lca {
			break
		}

		x, err = in.exitScope(ctx, x, s)
		if err != nil {
			return err
		}
	}

	if err := t.OnTake.Notify(ctx, process.EventTake, in.execution(x)); err != nil {
		return err
	}

	return in.descend(ctx, x, t, "")
}

// fold replaces x with its parent if x is the last remaining concurrent
// child of its parent.
func (in *interpreter) fold(ctx context.Context, x *execution.Execution) (*execution.Execution, error) {
	if !x.IsConcurrent {
		return x, nil
	}

	p, _ := in.tree.Parent(x)
	if len(p.Children) != 1 {
		return x, nil
	}

	p.ActivityID = x.ActivityID
	p.IsActive = x.IsActive

	return p, in.remove(ctx, x)
}

// exitScope ends the scope s that x is within, returning the execution that
// entered the scope activity.
func (in *interpreter) exitScope(
	ctx context.Context,
	x *execution.Execution,
	s string,
) (*execution.Execution, error) {
	c := in.scopeExecution(x)

	p, ok := in.tree.Parent(c)
	if !ok || p.ActivityID != s {
		return nil, IllegalStateError{
			ExecutionID: x.ID,
			ActivityID:  x.ActivityID,
			Message:     "is not within an execution of scope '" + s + "'",
		}
	}

	if err := in.remove(ctx, c); err != nil {
		return nil, err
	}

	p.IsActive = true

	a := in.def.MustActivity(s)
	if err := a.OnEnd.Notify(ctx, process.EventEnd, in.execution(p)); err != nil {
		return nil, err
	}

	return p, in.cancelBoundaries(ctx, p, a)
}

// descend enters the scopes between the source and destination of t, then
// queues entry into the destination.
//
// If resumeAt is non-empty x has already entered the scopes that enclose
// resumeAt and its asynchronous boundary has been crossed.
func (in *interpreter) descend(
	ctx context.Context,
	x *execution.Execution,
	t *process.Transition,
	resumeAt string,
) error {
	dstChain := in.def.ScopeChain(t.Destination)
	lca := commonScope(in.def.ScopeChain(t.Source), dstChain)

	var scopes []string
	for _, s := range dstChain {
		if s == lca {
			break
		}
		scopes = append([]string{s}, scopes...)
	}

	skipping := resumeAt != ""

	for _, s := range scopes {
		resumed := false
		if skipping {
			if s != resumeAt {
				continue
			}
			skipping = false
			resumed = true
		}

		a := in.def.MustActivity(s)
		x.ActivityID = s

		if a.AsyncBefore && !resumed {
			x.IsActive = false

			return in.schedule(
				ctx,
				x,
				a,
				job.AsyncContinuation,
				time.Time{},
				job.Continuation{
					Kind:         job.OnTransition,
					ActivityID:   s,
					TransitionID: t.ID,
				},
			)
		}

		x.IsActive = true

		if err := a.OnStart.Notify(ctx, process.EventStart, in.execution(x)); err != nil {
			return err
		}

		if err := in.armBoundaries(ctx, x, a); err != nil {
			return err
		}

		x = in.newScope(x)
	}

	dst := in.def.MustActivity(t.Destination)
	resumed := resumeAt == dst.ID

	in.push("enter", x, func(ctx context.Context, x *execution.Execution) error {
		return in.enter(ctx, x, dst, t, resumed)
	})

	return nil
}

// newScope suspends x at its scope activity and returns a new child scope
// execution.
func (in *interpreter) newScope(x *execution.Execution) *execution.Execution {
	x.IsActive = false

	c := in.tree.NewChild(x, in.pc.newID())
	c.IsScope = true

	return c
}

// enterScope enters the current scope activity of x at its initial activity.
func (in *interpreter) enterScope(ctx context.Context, x *execution.Execution) error {
	a, err := in.activity(x)
	if err != nil {
		return err
	}

	if !a.IsScope || a.Initial == "" {
		return IllegalStateError{
			ExecutionID: x.ID,
			ActivityID:  a.ID,
			Message:     "can not enter an activity that does not contain other activities",
		}
	}

	c := in.newScope(x)
	initial := in.def.MustActivity(a.Initial)

	in.push("enter", c, func(ctx context.Context, c *execution.Execution) error {
		return in.enter(ctx, c, initial, nil, false)
	})

	return nil
}

// end ends the path of execution represented by x.
func (in *interpreter) end(ctx context.Context, x *execution.Execution) error {
	a, err := in.activity(x)
	if err != nil {
		return err
	}

	if err := a.OnEnd.Notify(ctx, process.EventEnd, in.execution(x)); err != nil {
		return err
	}

	if err := in.cancelBoundaries(ctx, x, a); err != nil {
		return err
	}

	if !x.IsConcurrent {
		return in.endScope(ctx, x)
	}

	p, _ := in.tree.Parent(x)
	if err := in.remove(ctx, x); err != nil {
		return err
	}

	if len(p.Children) == 0 {
		return in.endScope(ctx, p)
	}

	return nil
}

// endScope ends the scope represented by the scope execution c.
//
// If c is the root the process instance ends. Otherwise control is returned
// to the execution that entered the scope activity.
func (in *interpreter) endScope(ctx context.Context, c *execution.Execution) error {
	if c.IsRoot() {
		if err := in.removeChildren(ctx, c); err != nil {
			return err
		}

		c.IsActive = false
		c.IsEnded = true

		if err := in.pc.Jobs.CancelJobs(ctx, c.ID); err != nil {
			return err
		}

		return in.def.OnEnd.Notify(ctx, process.EventEnd, in.execution(c))
	}

	p, _ := in.tree.Parent(c)
	if err := in.remove(ctx, c); err != nil {
		return err
	}

	p.IsActive = true

	in.push("complete", p, func(ctx context.Context, p *execution.Execution) error {
		a, err := in.activity(p)
		if err != nil {
			return err
		}

		if cb, ok := a.Behavior.(process.CompletableBehavior); ok {
			return cb.Complete(ctx, in.execution(p))
		}

		return in.leave(ctx, p, false)
	})

	return nil
}

// terminate ends every execution within the scope of x.
func (in *interpreter) terminate(ctx context.Context, x *execution.Execution) error {
	a, err := in.activity(x)
	if err != nil {
		return err
	}

	if err := a.OnEnd.Notify(ctx, process.EventEnd, in.execution(x)); err != nil {
		return err
	}

	c := in.scopeExecution(x)
	if err := in.removeChildren(ctx, c); err != nil {
		return err
	}

	c.ActivityID = a.ID

	return in.endScope(ctx, c)
}

// join marks x as having arrived at its current activity. If every incoming
// path has arrived it returns the execution that continues.
func (in *interpreter) join(ctx context.Context, x *execution.Execution) (*execution.Execution, bool, error) {
	a, err := in.activity(x)
	if err != nil {
		return nil, false, err
	}

	x.IsActive = false

	joined := []*execution.Execution{x}

	if x.IsConcurrent {
		p, _ := in.tree.Parent(x)
		joined = nil

		for _, c := range in.tree.Children(p) {
			if !c.IsConcurrent || c.IsActive || c.ActivityID != a.ID {
				continue
			}

			arrived, err := in.arrived(ctx, x, c, a)
			if err != nil {
				return nil, false, err
			}

			if arrived {
				joined = append(joined, c)
			}
		}
	}

	if len(joined) < len(a.Incoming) {
		return nil, false, nil
	}

	if !x.IsConcurrent {
		x.IsActive = true
		return x, true, nil
	}

	for _, c := range joined {
		if c != x {
			if err := in.remove(ctx, c); err != nil {
				return nil, false, err
			}
		}
	}

	x.IsActive = true

	next, err := in.fold(ctx, x)
	return next, err == nil, err
}

// arrived returns true if c, an inactive execution at activity a, has been
// joined there by the execution x.
//
// An execution that is still waiting for the asynchronous continuation before
// a has not yet arrived.
func (in *interpreter) arrived(
	ctx context.Context,
	x, c *execution.Execution,
	a *process.Activity,
) (bool, error) {
	if c == x || !a.AsyncBefore {
		return true, nil
	}

	waiting, err := in.pc.Jobs.HasJobs(ctx, c.ID, a.ID)
	return !waiting, err
}

// scheduleTimer suspends x until a timer job fires at its current activity.
func (in *interpreter) scheduleTimer(ctx context.Context, x *execution.Execution, due time.Time) error {
	a, err := in.activity(x)
	if err != nil {
		return err
	}

	x.IsActive = false

	return in.schedule(
		ctx,
		x,
		a,
		job.Timer,
		due,
		job.Continuation{
			Kind:       job.TimerFired,
			ActivityID: a.ID,
		},
	)
}

// fireTimer continues x after the timer of activity a fires.
//
// a is either the current activity of x, or a boundary activity attached to
// it, in which case the current activity is interrupted.
func (in *interpreter) fireTimer(ctx context.Context, x *execution.Execution, a *process.Activity) error {
	if a.ID == x.ActivityID {
		x.IsActive = true
		return in.leave(ctx, x, false)
	}

	host, err := in.activity(x)
	if err != nil {
		return err
	}

	if a.AttachedTo != host.ID {
		return IllegalStateError{
			ExecutionID: x.ID,
			ActivityID:  x.ActivityID,
			Message:     "is not waiting for timer '" + a.ID + "'",
		}
	}

	if err := in.removeChildren(ctx, x); err != nil {
		return err
	}

	if err := in.cancelBoundaries(ctx, x, host); err != nil {
		return err
	}

	if err := host.OnEnd.Notify(ctx, process.EventEnd, in.execution(x)); err != nil {
		return err
	}

	x.ActivityID = a.ID
	x.IsActive = true

	if err := a.OnStart.Notify(ctx, process.EventStart, in.execution(x)); err != nil {
		return err
	}

	return a.Behavior.Execute(ctx, in.execution(x))
}

// commonScope returns the innermost scope that appears in both scope chains.
func commonScope(a, b []string) string {
	for _, s := range a {
		for _, t := range b {
			if s == t {
				return s
			}
		}
	}
	return ""
}

func transitionIDs(ts []*process.Transition) []string {
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}
