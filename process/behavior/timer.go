package behavior

import (
	"context"
	"fmt"
	"time"

	"github.com/operaton/operaton-sub059/process"
)

// Timer describes when a timer fires.
//
// Exactly one of the fields is used, in the order: Date, DurationVariable,
// Duration.
type Timer struct {
	// Date is a fixed point in time.
	Date time.Time

	// DurationVariable is the name of a variable holding the duration as a
	// string accepted by time.ParseDuration or as an integer number of
	// milliseconds.
	DurationVariable string

	// Duration is a fixed delay from the time the timer is armed.
	Duration time.Duration
}

// DueDate returns the time at which the timer fires.
func (t Timer) DueDate(now time.Time, s process.Scope) (time.Time, error) {
	if !t.Date.IsZero() {
		return t.Date, nil
	}

	if t.DurationVariable != "" {
		v, ok := s.Variable(t.DurationVariable)
		if !ok {
			return time.Time{}, fmt.Errorf("timer duration variable '%s' is not set", t.DurationVariable)
		}

		if i, ok := v.AsInteger(); ok {
			return now.Add(time.Duration(i) * time.Millisecond), nil
		}

		if str, ok := v.AsString(); ok {
			d, err := time.ParseDuration(str)
			if err != nil {
				return time.Time{}, fmt.Errorf("timer duration variable '%s': %w", t.DurationVariable, err)
			}
			return now.Add(d), nil
		}

		return time.Time{}, fmt.Errorf("timer duration variable '%s' has unsupported type %s", t.DurationVariable, v.Type())
	}

	return now.Add(t.Duration), nil
}

// TimerCatch waits until its timer fires, then leaves.
type TimerCatch struct {
	Timer
}

// Kind returns process.TimerCatch.
func (TimerCatch) Kind() process.Kind { return process.TimerCatch }

// Execute arms the timer.
func (b TimerCatch) Execute(ctx context.Context, x process.ActivityExecution) error {
	due, err := b.DueDate(x.Now(), x)
	if err != nil {
		return err
	}

	return x.ScheduleTimer(ctx, due)
}

// BoundaryTimer interrupts the activity it is attached to when its timer
// fires, then leaves via its own outgoing transitions.
type BoundaryTimer struct {
	Timer
}

// Kind returns process.BoundaryTimer.
func (BoundaryTimer) Kind() process.Kind { return process.BoundaryTimer }

// Execute leaves the boundary activity.
func (BoundaryTimer) Execute(ctx context.Context, x process.ActivityExecution) error {
	return x.Leave(ctx)
}
