package process

import "fmt"

// Kind identifies the behavior of an activity.
type Kind int

const (
	// PassThrough activities leave immediately via their outgoing transitions.
	PassThrough Kind = iota

	// WaitState activities stop until they are signaled.
	WaitState

	// Fork activities take every outgoing transition concurrently.
	Fork

	// Join activities wait until every incoming path has arrived.
	Join

	// ParallelGateway activities join all incoming paths, then fork.
	ParallelGateway

	// ExclusiveGateway activities take exactly one outgoing transition.
	ExclusiveGateway

	// End activities end the path of execution that reaches them.
	End

	// TerminateEnd activities end every path of execution in their scope.
	TerminateEnd

	// TimerCatch activities wait until a timer fires.
	TimerCatch

	// BoundaryTimer activities are attached to another activity and interrupt
	// it when their timer fires.
	BoundaryTimer

	// SubProcess activities are scopes containing their own activities.
	SubProcess
)

var kindNames = [...]string{
	PassThrough:      "pass-through",
	WaitState:        "wait-state",
	Fork:             "fork",
	Join:             "join",
	ParallelGateway:  "parallel-gateway",
	ExclusiveGateway: "exclusive-gateway",
	End:              "end",
	TerminateEnd:     "terminate-end",
	TimerCatch:       "timer-catch",
	BoundaryTimer:    "boundary-timer",
	SubProcess:       "sub-process",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("kind(%d)", int(k))
}
