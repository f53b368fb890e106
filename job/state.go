package job

import (
	"fmt"
	"time"

	"github.com/operaton/operaton-sub059/persistence"
	"github.com/qmuntal/stateless"
)

// State is a state in the lifecycle of a job.
type State string

// Job states.
const (
	Created     State = "created"
	Acquirable  State = "acquirable"
	Locked      State = "locked"
	Executed    State = "executed"
	FailedRetry State = "failed-retry"
	Incident    State = "incident"
	Suspended   State = "suspended"
)

// Trigger is an event that moves a job between states.
type Trigger string

// Job triggers.
const (
	Persist      Trigger = "persist"
	Acquire      Trigger = "acquire"
	Complete     Trigger = "complete"
	Fail         Trigger = "fail"
	Exhaust      Trigger = "exhaust"
	Reschedule   Trigger = "reschedule"
	ExpireLock   Trigger = "expire-lock"
	ResetRetries Trigger = "reset-retries"
	Suspend      Trigger = "suspend"
	Activate     Trigger = "activate"
)

// Lifecycle tracks the state of a single job.
type Lifecycle struct {
	sm *stateless.StateMachine
}

// NewLifecycle returns a lifecycle that starts in state s.
func NewLifecycle(s State) *Lifecycle {
	sm := stateless.NewStateMachine(s)

	sm.Configure(Created).
		Permit(Persist, Acquirable)

	sm.Configure(Acquirable).
		Permit(Acquire, Locked).
		Permit(Suspend, Suspended)

	sm.Configure(Locked).
		Permit(Complete, Executed).
		Permit(Fail, FailedRetry).
		Permit(Exhaust, Incident).
		Permit(ExpireLock, Acquirable)

	sm.Configure(FailedRetry).
		Permit(Reschedule, Acquirable).
		Permit(ResetRetries, Acquirable).
		Permit(Suspend, Suspended)

	sm.Configure(Incident).
		Permit(ResetRetries, Acquirable).
		Permit(Suspend, Suspended)

	sm.Configure(Suspended).
		Permit(Activate, Acquirable)

	return &Lifecycle{sm}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	return l.sm.MustState().(State)
}

// Fire moves the job to the next state.
//
// It returns an error if t is not permitted in the current state.
func (l *Lifecycle) Fire(t Trigger) error {
	if ok, _ := l.sm.CanFire(t); !ok {
		return InvalidTransitionError{l.State(), t}
	}

	return l.sm.Fire(t)
}

// InvalidTransitionError is returned when a trigger is not permitted in a
// job's current state.
type InvalidTransitionError struct {
	State   State
	Trigger Trigger
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("a job in the '%s' state can not %s", e.State, e.Trigger)
}

// StateOf returns the state of a persisted job at the given time.
func StateOf(j persistence.Job, now time.Time) State {
	switch {
	case j.Suspended:
		return Suspended
	case j.IsLocked(now):
		return Locked
	case j.Retries <= 0:
		return Incident
	case j.ExceptionMessage != "" && !j.IsDue(now):
		return FailedRetry
	default:
		return Acquirable
	}
}

// Check returns an error if t is not permitted for j at the given time.
func Check(j persistence.Job, now time.Time, t Trigger) error {
	return NewLifecycle(StateOf(j, now)).Fire(t)
}
