package process

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Builder constructs a Definition.
//
// Builder methods record problems rather than failing immediately; Build()
// returns every problem found.
type Builder struct {
	def         *Definition
	activities  []*ActivityBuilder
	transitions []*TransitionBuilder
	initial     map[string]string
	err         error
}

// NewBuilder returns a builder for a definition with the given ID.
func NewBuilder(id, name string) *Builder {
	return &Builder{
		def: &Definition{
			ID:   id,
			Name: name,
		},
		initial: map[string]string{},
	}
}

// OnStart adds a listener that is notified when an instance starts.
func (b *Builder) OnStart(l Listener) *Builder {
	b.def.OnStart = append(b.def.OnStart, l)
	return b
}

// OnEnd adds a listener that is notified when an instance ends.
func (b *Builder) OnEnd(l Listener) *Builder {
	b.def.OnEnd = append(b.def.OnEnd, l)
	return b
}

// Activity adds an activity to the definition.
func (b *Builder) Activity(id string, bh Behavior) *ActivityBuilder {
	ab := &ActivityBuilder{
		b: b,
		a: &Activity{
			ID:        id,
			Name:      id,
			Behavior:  bh,
			Exclusive: true,
		},
	}

	b.activities = append(b.activities, ab)

	return ab
}

// Transition adds a transition from the activity with ID src to the activity
// with ID dst.
func (b *Builder) Transition(id, src, dst string) *TransitionBuilder {
	tb := &TransitionBuilder{
		t: &Transition{
			ID:          id,
			Source:      src,
			Destination: dst,
		},
	}

	b.transitions = append(b.transitions, tb)

	return tb
}

func (b *Builder) fail(format string, args ...interface{}) {
	b.err = multierr.Append(b.err, fmt.Errorf(format, args...))
}

// Build validates the definition and returns it.
func (b *Builder) Build() (*Definition, error) {
	d := b.def
	d.activities = map[string]*Activity{}
	d.transitions = map[string]*Transition{}
	d.order = nil
	b.err = nil

	if d.ID == "" {
		b.fail("process definition ID must not be empty")
	}

	if len(b.activities) == 0 {
		b.fail("process definition '%s' does not contain any activities", d.ID)
	}

	for _, ab := range b.activities {
		a := ab.a

		if a.ID == "" {
			b.fail("activity ID must not be empty")
			continue
		}

		if _, ok := d.activities[a.ID]; ok {
			b.fail("activity ID '%s' is used more than once", a.ID)
			continue
		}

		if a.Behavior == nil {
			b.fail("activity '%s' does not have a behavior", a.ID)
		}

		a.Children = nil
		a.Attached = nil
		a.Incoming = nil
		a.Outgoing = nil
		a.IsScope = false
		a.Initial = ""

		d.activities[a.ID] = a
		d.order = append(d.order, a.ID)
	}

	b.resolveScopes()
	b.resolveTransitions()
	b.resolveInitial()

	if b.err != nil {
		return nil, b.err
	}

	return d, nil
}

func (b *Builder) resolveScopes() {
	d := b.def

	for _, id := range d.order {
		a := d.activities[id]

		if a.AttachedTo != "" {
			host, ok := d.activities[a.AttachedTo]
			if !ok {
				b.fail("activity '%s' is attached to unknown activity '%s'", a.ID, a.AttachedTo)
				continue
			}

			a.FlowScope = host.FlowScope
			host.Attached = append(host.Attached, a.ID)
		} else if a.Behavior != nil && a.Kind() == BoundaryTimer {
			b.fail("boundary activity '%s' is not attached to an activity", a.ID)
		}
	}

	for _, id := range d.order {
		a := d.activities[id]

		if a.FlowScope == "" {
			continue
		}

		parent, ok := d.activities[a.FlowScope]
		if !ok {
			b.fail("activity '%s' refers to unknown scope '%s'", a.ID, a.FlowScope)
			a.FlowScope = ""
			continue
		}

		parent.IsScope = true
		if a.AttachedTo == "" {
			parent.Children = append(parent.Children, a.ID)
		}
	}

	for _, id := range d.order {
		seen := map[string]bool{id: true}

		for s := d.activities[id].FlowScope; s != ""; s = d.activities[s].FlowScope {
			if seen[s] {
				b.fail("activity '%s' is contained in a cycle of scopes", id)
				d.activities[id].FlowScope = ""
				break
			}
			seen[s] = true
		}
	}
}

func (b *Builder) resolveTransitions() {
	d := b.def

	for _, tb := range b.transitions {
		t := tb.t

		if t.ID == "" {
			b.fail("transition ID must not be empty")
			continue
		}

		if _, ok := d.transitions[t.ID]; ok {
			b.fail("transition ID '%s' is used more than once", t.ID)
			continue
		}

		src, ok := d.activities[t.Source]
		if !ok {
			b.fail("transition '%s' refers to unknown source activity '%s'", t.ID, t.Source)
			continue
		}

		dst, ok := d.activities[t.Destination]
		if !ok {
			b.fail("transition '%s' refers to unknown destination activity '%s'", t.ID, t.Destination)
			continue
		}

		if !b.onCommonChain(src, dst) {
			b.fail(
				"transition '%s' connects activities in unrelated scopes ('%s' and '%s')",
				t.ID,
				src.FlowScope,
				dst.FlowScope,
			)
			continue
		}

		d.transitions[t.ID] = t
		src.Outgoing = append(src.Outgoing, t)
		dst.Incoming = append(dst.Incoming, t)

		if tb.isDefault {
			if src.Default != "" && src.Default != t.ID {
				b.fail("activity '%s' has more than one default transition", src.ID)
			}
			src.Default = t.ID
		}
	}
}

// onCommonChain returns true if the flow scope of one activity contains (or is)
// the flow scope of the other.
func (b *Builder) onCommonChain(x, y *Activity) bool {
	return b.contains(x.FlowScope, y) || b.contains(y.FlowScope, x)
}

// contains returns true if scope s is an ancestor-or-self of a's flow scope.
func (b *Builder) contains(s string, a *Activity) bool {
	for id := a.FlowScope; ; id = b.def.activities[id].FlowScope {
		if id == s {
			return true
		}
		if id == "" {
			return false
		}
	}
}

func (b *Builder) resolveInitial() {
	d := b.def

	scopes := []string{""}
	for _, id := range d.order {
		if d.activities[id].IsScope {
			scopes = append(scopes, id)
		}
	}

	for _, s := range scopes {
		var candidates, marked []string

		for _, id := range d.order {
			a := d.activities[id]
			if a.FlowScope != s || a.AttachedTo != "" {
				continue
			}

			if b.initial[id] != "" {
				marked = append(marked, id)
			}

			if len(a.Incoming) == 0 {
				candidates = append(candidates, id)
			}
		}

		if len(marked) == 0 {
			marked = candidates
		}

		if len(marked) != 1 {
			name := "process definition '" + d.ID + "'"
			if s != "" {
				name = "scope '" + s + "'"
			}

			if len(marked) == 0 {
				if s == "" && len(d.order) == 0 {
					continue
				}
				b.fail("%s does not have an initial activity", name)
			} else {
				b.fail("%s has more than one initial activity", name)
			}
			continue
		}

		if s == "" {
			d.Initial = marked[0]
		} else {
			d.activities[s].Initial = marked[0]
		}
	}
}

// ActivityBuilder configures an activity.
type ActivityBuilder struct {
	b *Builder
	a *Activity
}

// Named sets the activity's display name.
func (ab *ActivityBuilder) Named(n string) *ActivityBuilder {
	ab.a.Name = n
	return ab
}

// In places the activity inside the scope activity with the given ID.
func (ab *ActivityBuilder) In(scope string) *ActivityBuilder {
	ab.a.FlowScope = scope
	return ab
}

// Initial marks the activity as the initial activity of its scope.
func (ab *ActivityBuilder) Initial() *ActivityBuilder {
	ab.b.initial[ab.a.ID] = ab.a.ID
	return ab
}

// AttachedTo attaches a boundary activity to the activity with the given ID.
func (ab *ActivityBuilder) AttachedTo(id string) *ActivityBuilder {
	ab.a.AttachedTo = id
	return ab
}

// AsyncBefore causes the activity to be entered asynchronously.
func (ab *ActivityBuilder) AsyncBefore() *ActivityBuilder {
	ab.a.AsyncBefore = true
	return ab
}

// AsyncAfter causes the activity to be left asynchronously.
func (ab *ActivityBuilder) AsyncAfter() *ActivityBuilder {
	ab.a.AsyncAfter = true
	return ab
}

// NotExclusive allows the activity's jobs to run concurrently with other jobs
// of the same process instance.
func (ab *ActivityBuilder) NotExclusive() *ActivityBuilder {
	ab.a.Exclusive = false
	return ab
}

// Priority sets the priority of the activity's jobs.
func (ab *ActivityBuilder) Priority(p int64) *ActivityBuilder {
	ab.a.Priority = p
	return ab
}

// OnStart adds a listener notified when an execution enters the activity.
func (ab *ActivityBuilder) OnStart(l Listener) *ActivityBuilder {
	ab.a.OnStart = append(ab.a.OnStart, l)
	return ab
}

// OnEnd adds a listener notified when an execution leaves the activity.
func (ab *ActivityBuilder) OnEnd(l Listener) *ActivityBuilder {
	ab.a.OnEnd = append(ab.a.OnEnd, l)
	return ab
}

// TransitionBuilder configures a transition.
type TransitionBuilder struct {
	t         *Transition
	isDefault bool
}

// When sets the transition's condition.
func (tb *TransitionBuilder) When(c Condition) *TransitionBuilder {
	tb.t.Condition = c
	return tb
}

// Default marks the transition as the default transition of its source.
func (tb *TransitionBuilder) Default() *TransitionBuilder {
	tb.isDefault = true
	return tb
}

// Waypoints sets the transition's diagram waypoints.
func (tb *TransitionBuilder) Waypoints(p ...Point) *TransitionBuilder {
	tb.t.Waypoints = p
	return tb
}

// OnTake adds a listener notified when the transition is taken.
func (tb *TransitionBuilder) OnTake(l Listener) *TransitionBuilder {
	tb.t.OnTake = append(tb.t.OnTake, l)
	return tb
}

// MustBuild is like Build, but panics on error.
func (b *Builder) MustBuild() *Definition {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

// ErrUnknownDefinition is returned when a definition is not deployed.
var ErrUnknownDefinition = errors.New("process definition is not deployed")
