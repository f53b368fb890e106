package execution

import (
	"context"
	"fmt"
	"sort"

	"github.com/operaton/operaton-sub059/variable"
)

// Tree is the set of executions that make up one process instance.
//
// Executions refer to each other by ID. A tree is not safe for concurrent use.
type Tree struct {
	// DefinitionID is the ID of the process definition being executed.
	DefinitionID string

	// Listeners are notified of every variable change.
	Listeners variable.Listeners

	rootID     string
	executions map[string]*Execution
	order      []string
}

// NewTree returns a tree containing only a root execution with the given ID.
//
// The root execution ID is also the process instance ID.
func NewTree(rootID, definitionID string) *Tree {
	t := &Tree{
		DefinitionID: definitionID,
		rootID:       rootID,
		executions:   map[string]*Execution{},
	}

	t.insert(&Execution{
		ID:       rootID,
		IsScope:  true,
		IsActive: true,
	})

	return t
}

// Rebuild returns a tree containing the given executions.
//
// The Children fields of xs are recomputed from the parent IDs, in the order
// the executions are given.
func Rebuild(definitionID string, xs []*Execution) (*Tree, error) {
	t := &Tree{
		DefinitionID: definitionID,
		executions:   map[string]*Execution{},
	}

	for _, x := range xs {
		if _, ok := t.executions[x.ID]; ok {
			return nil, fmt.Errorf("execution '%s' appears more than once", x.ID)
		}

		x.Children = nil

		if x.ParentID == "" {
			if t.rootID != "" {
				return nil, fmt.Errorf("executions '%s' and '%s' are both roots", t.rootID, x.ID)
			}
			t.rootID = x.ID
		}

		t.insert(x)
	}

	if t.rootID == "" {
		return nil, fmt.Errorf("tree does not contain a root execution")
	}

	for _, id := range t.order {
		x := t.executions[id]
		if x.ParentID == "" {
			continue
		}

		p, ok := t.executions[x.ParentID]
		if !ok {
			return nil, fmt.Errorf("execution '%s' refers to unknown parent '%s'", x.ID, x.ParentID)
		}

		p.Children = append(p.Children, x.ID)
	}

	if len(t.Descendants(t.rootID))+1 != len(t.order) {
		return nil, fmt.Errorf("tree contains executions that are not reachable from the root")
	}

	return t, nil
}

func (t *Tree) insert(x *Execution) {
	t.executions[x.ID] = x
	t.order = append(t.order, x.ID)
}

// ProcessInstanceID returns the ID of the process instance, which is the ID of
// the root execution.
func (t *Tree) ProcessInstanceID() string {
	return t.rootID
}

// Root returns the root execution.
func (t *Tree) Root() *Execution {
	return t.executions[t.rootID]
}

// Get returns the execution with the given ID.
func (t *Tree) Get(id string) (*Execution, bool) {
	x, ok := t.executions[id]
	return x, ok
}

// Parent returns the parent of x. ok is false if x is the root.
func (t *Tree) Parent(x *Execution) (*Execution, bool) {
	p, ok := t.executions[x.ParentID]
	return p, ok
}

// Children returns the children of x, in order.
func (t *Tree) Children(x *Execution) []*Execution {
	r := make([]*Execution, len(x.Children))
	for i, id := range x.Children {
		r[i] = t.executions[id]
	}
	return r
}

// Executions returns every execution in the tree in the order they were
// added.
func (t *Tree) Executions() []*Execution {
	r := make([]*Execution, len(t.order))
	for i, id := range t.order {
		r[i] = t.executions[id]
	}
	return r
}

// Len returns the number of executions in the tree.
func (t *Tree) Len() int {
	return len(t.order)
}

// NewChild adds a new child execution to parent.
func (t *Tree) NewChild(parent *Execution, id string) *Execution {
	if _, ok := t.executions[id]; ok {
		panic(fmt.Sprintf("execution '%s' already exists", id))
	}

	x := &Execution{
		ID:         id,
		ParentID:   parent.ID,
		ActivityID: parent.ActivityID,
		IsActive:   true,
	}

	parent.Children = append(parent.Children, id)
	t.insert(x)

	return x
}

// Descendants returns the IDs of all descendants of the execution with the
// given ID, depth-first.
func (t *Tree) Descendants(id string) []string {
	var r []string

	var walk func(string)
	walk = func(id string) {
		for _, c := range t.executions[id].Children {
			r = append(r, c)
			walk(c)
		}
	}
	walk(id)

	return r
}

// Remove removes the execution with the given ID and all of its descendants.
//
// It returns the IDs of the removed executions. The root can not be removed.
func (t *Tree) Remove(id string) []string {
	x, ok := t.executions[id]
	if !ok {
		return nil
	}

	if x.IsRoot() {
		panic("can not remove the root execution")
	}

	removed := append([]string{id}, t.Descendants(id)...)

	p := t.executions[x.ParentID]
	for i, c := range p.Children {
		if c == id {
			p.Children = append(p.Children[:i:i], p.Children[i+1:]...)
			break
		}
	}

	gone := map[string]bool{}
	for _, r := range removed {
		gone[r] = true
		delete(t.executions, r)
	}

	order := t.order[:0]
	for _, o := range t.order {
		if !gone[o] {
			order = append(order, o)
		}
	}
	t.order = order

	return removed
}

// RemoveChildren removes every descendant of x, returning their IDs.
func (t *Tree) RemoveChildren(x *Execution) []string {
	var removed []string
	for _, c := range append([]string(nil), x.Children...) {
		removed = append(removed, t.Remove(c)...)
	}
	return removed
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		DefinitionID: t.DefinitionID,
		Listeners:    t.Listeners,
		rootID:       t.rootID,
		executions:   make(map[string]*Execution, len(t.executions)),
		order:        append([]string(nil), t.order...),
	}

	for id, x := range t.executions {
		c.executions[id] = x.clone()
	}

	return c
}

// Active returns the IDs of all active executions, sorted.
func (t *Tree) Active() []string {
	var ids []string
	for _, x := range t.executions {
		if x.IsActive {
			ids = append(ids, x.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// Owner returns the execution that owns the variable scope of x.
func (t *Tree) Owner(x *Execution) *Execution {
	for !x.OwnsVariables() {
		x = t.executions[x.ParentID]
	}
	return x
}

// Variable returns the value of the named variable as seen from the execution
// with the given ID, searching enclosing scopes up to the root.
func (t *Tree) Variable(id, name string) (variable.Value, bool) {
	for x, ok := t.executions[id]; ok; x, ok = t.executions[x.ParentID] {
		if v, ok := x.Variables[name]; ok {
			return v, true
		}
	}

	return variable.Value{}, false
}

// VariableLocal returns the value of the named variable only if it is declared
// in the variable scope of the execution with the given ID.
func (t *Tree) VariableLocal(id, name string) (variable.Value, bool) {
	x, ok := t.executions[id]
	if !ok {
		return variable.Value{}, false
	}

	v, ok := t.Owner(x).Variables[name]
	return v, ok
}

// Variables returns all variables visible from the execution with the given
// ID. Inner scopes shadow outer ones.
func (t *Tree) Variables(id string) variable.Map {
	m := variable.Map{}

	for x, ok := t.executions[id]; ok; x, ok = t.executions[x.ParentID] {
		for k, v := range x.Variables {
			if _, ok := m[k]; !ok {
				m[k] = v
			}
		}
	}

	return m
}

// SetVariable assigns a value to the named variable.
//
// The value is written to the nearest variable scope, starting with the
// execution's own, that already declares the variable. If none does, it is
// declared in the execution's own scope.
func (t *Tree) SetVariable(ctx context.Context, id, name string, v variable.Value) error {
	x, err := t.mustGet(id)
	if err != nil {
		return err
	}

	for s, ok := x, true; ok; s, ok = t.executions[s.ParentID] {
		if _, declared := s.Variables[name]; declared {
			return t.set(ctx, s, name, v)
		}
	}

	return t.set(ctx, t.Owner(x), name, v)
}

// SetVariableLocal declares or assigns the named variable in the variable
// scope of the execution with the given ID.
func (t *Tree) SetVariableLocal(ctx context.Context, id, name string, v variable.Value) error {
	x, err := t.mustGet(id)
	if err != nil {
		return err
	}

	return t.set(ctx, t.Owner(x), name, v)
}

// SetVariables calls SetVariable for each entry in m, in name order.
func (t *Tree) SetVariables(ctx context.Context, id string, m variable.Map) error {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if err := t.SetVariable(ctx, id, n, m[n]); err != nil {
			return err
		}
	}

	return nil
}

// RemoveVariable removes the named variable from the nearest scope that
// declares it. It returns false if no scope declares it.
func (t *Tree) RemoveVariable(ctx context.Context, id, name string) (bool, error) {
	x, err := t.mustGet(id)
	if err != nil {
		return false, err
	}

	for s, ok := x, true; ok; s, ok = t.executions[s.ParentID] {
		prev, declared := s.Variables[name]
		if !declared {
			continue
		}

		delete(s.Variables, name)

		return true, t.Listeners.Notify(ctx, variable.Event{
			Type:        variable.Deleted,
			ExecutionID: s.ID,
			Name:        name,
			Previous:    prev,
		})
	}

	return false, nil
}

func (t *Tree) set(ctx context.Context, s *Execution, name string, v variable.Value) error {
	prev, exists := s.Variables[name]

	if s.Variables == nil {
		s.Variables = variable.Map{}
	}
	s.Variables[name] = v

	ev := variable.Event{
		Type:        variable.Created,
		ExecutionID: s.ID,
		Name:        name,
		Value:       v,
	}

	if exists {
		ev.Type = variable.Updated
		ev.Previous = prev
	}

	return t.Listeners.Notify(ctx, ev)
}

func (t *Tree) mustGet(id string) (*Execution, error) {
	x, ok := t.executions[id]
	if !ok {
		return nil, fmt.Errorf("execution '%s' does not exist", id)
	}
	return x, nil
}
