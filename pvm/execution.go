package pvm

import (
	"context"
	"time"

	"github.com/operaton/operaton-sub059/execution"
	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/variable"
)

// activityExecution is the process.ActivityExecution given to behaviors,
// listeners and conditions.
//
// Methods that move the execution queue work on the interpreter rather than
// performing it immediately.
type activityExecution struct {
	in *interpreter
	x  *execution.Execution
}

var _ process.ActivityExecution = (*activityExecution)(nil)

func (ae *activityExecution) ExecutionID() string {
	return ae.x.ID
}

func (ae *activityExecution) ProcessInstanceID() string {
	return ae.in.tree.ProcessInstanceID()
}

func (ae *activityExecution) ActivityID() string {
	return ae.x.ActivityID
}

func (ae *activityExecution) Variable(name string) (variable.Value, bool) {
	return ae.in.tree.Variable(ae.x.ID, name)
}

func (ae *activityExecution) Variables() variable.Map {
	return ae.in.tree.Variables(ae.x.ID)
}

func (ae *activityExecution) SetVariable(ctx context.Context, name string, v variable.Value) error {
	return ae.in.tree.SetVariable(ctx, ae.x.ID, name, v)
}

func (ae *activityExecution) SetVariableLocal(ctx context.Context, name string, v variable.Value) error {
	return ae.in.tree.SetVariableLocal(ctx, ae.x.ID, name, v)
}

func (ae *activityExecution) Definition() *process.Definition {
	return ae.in.def
}

func (ae *activityExecution) Activity() *process.Activity {
	a, _ := ae.in.def.Activity(ae.x.ActivityID)
	return a
}

func (ae *activityExecution) Now() time.Time {
	return ae.in.pc.now()
}

func (ae *activityExecution) Leave(ctx context.Context) error {
	ae.in.push("leave", ae.x, func(ctx context.Context, x *execution.Execution) error {
		return ae.in.leave(ctx, x, false)
	})
	return nil
}

func (ae *activityExecution) Take(ctx context.Context, t *process.Transition) error {
	if t.Source != ae.x.ActivityID {
		return IllegalStateError{
			ExecutionID: ae.x.ID,
			ActivityID:  ae.x.ActivityID,
			Message:     "can not take transition '" + t.ID + "' from another activity",
		}
	}

	ae.in.push("take", ae.x, func(ctx context.Context, x *execution.Execution) error {
		return ae.in.take(ctx, x, t, false, false)
	})
	return nil
}

func (ae *activityExecution) TakeAll(ctx context.Context, ts []*process.Transition) error {
	for _, t := range ts {
		if t.Source != ae.x.ActivityID {
			return IllegalStateError{
				ExecutionID: ae.x.ID,
				ActivityID:  ae.x.ActivityID,
				Message:     "can not take transition '" + t.ID + "' from another activity",
			}
		}
	}

	ae.in.push("take-all", ae.x, func(ctx context.Context, x *execution.Execution) error {
		return ae.in.takeAll(ctx, x, ts, false)
	})
	return nil
}

func (ae *activityExecution) Join(ctx context.Context) (process.ActivityExecution, bool, error) {
	next, ok, err := ae.in.join(ctx, ae.x)
	if !ok || err != nil {
		return nil, false, err
	}
	return ae.in.execution(next), true, nil
}

func (ae *activityExecution) End(ctx context.Context) error {
	ae.in.push("end", ae.x, ae.in.end)
	return nil
}

func (ae *activityExecution) Terminate(ctx context.Context) error {
	ae.in.push("terminate", ae.x, ae.in.terminate)
	return nil
}

func (ae *activityExecution) EnterScope(ctx context.Context) error {
	ae.in.push("enter-scope", ae.x, ae.in.enterScope)
	return nil
}

func (ae *activityExecution) ScheduleTimer(ctx context.Context, due time.Time) error {
	return ae.in.scheduleTimer(ctx, ae.x, due)
}
