package process

import "github.com/operaton/operaton-sub059/variable"

// Definition is an immutable, validated process graph.
//
// Definitions are built using a Builder. They are safe for concurrent use.
type Definition struct {
	ID      string
	Name    string
	Version int

	// Initial is the ID of the activity at which new instances start.
	Initial string

	// OnStart and OnEnd are notified when an instance starts and ends.
	OnStart Listeners
	OnEnd   Listeners

	// VariableListeners are notified of every variable change in an instance.
	VariableListeners variable.Listeners

	activities  map[string]*Activity
	transitions map[string]*Transition
	order       []string
}

// Activity returns the activity with the given ID.
func (d *Definition) Activity(id string) (*Activity, bool) {
	a, ok := d.activities[id]
	return a, ok
}

// MustActivity returns the activity with the given ID, or panics if it does not
// exist.
func (d *Definition) MustActivity(id string) *Activity {
	if a, ok := d.activities[id]; ok {
		return a
	}

	panic("unknown activity '" + id + "'")
}

// Transition returns the transition with the given ID.
func (d *Definition) Transition(id string) (*Transition, bool) {
	t, ok := d.transitions[id]
	return t, ok
}

// Activities returns all activities in declaration order.
func (d *Definition) Activities() []*Activity {
	r := make([]*Activity, len(d.order))
	for i, id := range d.order {
		r[i] = d.activities[id]
	}
	return r
}

// ScopeChain returns the IDs of the scopes that contain the activity with the
// given ID, innermost first. The definition itself is represented by "".
func (d *Definition) ScopeChain(id string) []string {
	var chain []string

	for {
		a := d.activities[id]
		chain = append(chain, a.FlowScope)

		if a.FlowScope == "" {
			return chain
		}

		id = a.FlowScope
	}
}

// Activity is a node in the process graph.
type Activity struct {
	ID   string
	Name string

	// FlowScope is the ID of the scope activity that contains this activity,
	// or "" if it belongs directly to the definition.
	FlowScope string

	// Initial is the ID of the first activity within this scope. It is empty
	// unless IsScope is true.
	Initial string

	// Children is the ordered list of activities contained in this scope.
	Children []string

	// AttachedTo is the ID of the activity this boundary activity is attached
	// to. Attached is the inverse relation.
	AttachedTo string
	Attached   []string

	Incoming []*Transition
	Outgoing []*Transition

	// Default is the ID of the outgoing transition taken when no other
	// condition holds.
	Default string

	Behavior Behavior

	// AsyncBefore causes the activity to be entered by a job.
	AsyncBefore bool

	// AsyncAfter causes the activity to be left by a job.
	AsyncAfter bool

	// Exclusive indicates that jobs for this activity must not run
	// concurrently with other exclusive jobs of the same process instance.
	Exclusive bool

	// IsScope is true if the activity contains other activities.
	IsScope bool

	// Priority is the priority of jobs created for this activity.
	Priority int64

	OnStart Listeners
	OnEnd   Listeners
}

// Kind returns the kind of the activity's behavior.
func (a *Activity) Kind() Kind {
	return a.Behavior.Kind()
}

// Transition is a directed edge between two activities.
type Transition struct {
	ID          string
	Source      string
	Destination string

	// Condition, if non-nil, must hold for the transition to be taken by a
	// default "leave".
	Condition Condition

	// Waypoints is diagram metadata, it has no effect on execution.
	Waypoints []Point

	OnTake Listeners
}

// Point is a diagram coordinate.
type Point struct {
	X, Y float64
}
