// Package processyaml builds process definitions from YAML documents.
package processyaml

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/process/behavior"
	"github.com/operaton/operaton-sub059/variable"
	"gopkg.in/yaml.v3"
)

// document is the YAML representation of a process definition.
type document struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	OnStart     []string     `yaml:"on_start"`
	OnEnd       []string     `yaml:"on_end"`
	Activities  []activity   `yaml:"activities"`
	Transitions []transition `yaml:"transitions"`
}

type activity struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	In          string   `yaml:"in"`
	Initial     bool     `yaml:"initial"`
	AttachedTo  string   `yaml:"attached_to"`
	AsyncBefore bool     `yaml:"async_before"`
	AsyncAfter  bool     `yaml:"async_after"`
	Exclusive   *bool    `yaml:"exclusive"`
	Priority    int64    `yaml:"priority"`
	Timer       *timer   `yaml:"timer"`
	OnStart     []string `yaml:"on_start"`
	OnEnd       []string `yaml:"on_end"`
}

type timer struct {
	Date             time.Time `yaml:"date"`
	Duration         string    `yaml:"duration"`
	DurationVariable string    `yaml:"duration_variable"`
}

type transition struct {
	ID        string       `yaml:"id"`
	From      string       `yaml:"from"`
	To        string       `yaml:"to"`
	Default   bool         `yaml:"default"`
	When      *condition   `yaml:"when"`
	Waypoints [][2]float64 `yaml:"waypoints"`
	OnTake    []string     `yaml:"on_take"`
}

// condition is a transition condition. Exactly one of its fields is set.
type condition struct {
	IsTrue   string      `yaml:"is_true"`
	Variable string      `yaml:"variable"`
	Op       string      `yaml:"op"`
	Value    any         `yaml:"value"`
	Not      *condition  `yaml:"not"`
	All      []condition `yaml:"all"`
	Any      []condition `yaml:"any"`
	Named    string      `yaml:"named"`
}

// Option configures how definitions are built.
type Option func(*options)

// WithListener returns an option that makes a listener available to
// documents under the given name.
func WithListener(name string, l process.Listener) Option {
	return func(opts *options) {
		opts.listeners[name] = l
	}
}

// WithCondition returns an option that makes a condition available to
// documents under the given name.
func WithCondition(name string, c process.Condition) Option {
	return func(opts *options) {
		opts.conditions[name] = c
	}
}

type options struct {
	listeners  map[string]process.Listener
	conditions map[string]process.Condition
}

func resolveOptions(opts []Option) *options {
	o := &options{
		listeners:  map[string]process.Listener{},
		conditions: map[string]process.Condition{},
	}

	for _, fn := range opts {
		fn(o)
	}

	return o
}

// Parse builds a definition from a YAML document.
func Parse(data []byte, opts ...Option) (*process.Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("process definition is empty")
	}

	var doc document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode process definition: %w", err)
	}

	return build(doc, resolveOptions(opts))
}

// Read builds a definition from a YAML document read from r.
func Read(r io.Reader, opts ...Option) (*process.Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read process definition: %w", err)
	}

	return Parse(data, opts...)
}

// ParseFile builds a definition from the YAML file at the given path.
func ParseFile(path string, opts ...Option) (*process.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	d, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// ParseDir builds a definition from each .yaml or .yml file in a directory,
// in file name order.
func ParseDir(dir string, opts ...Option) ([]*process.Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)

	var defs []*process.Definition
	for _, n := range names {
		d, err := ParseFile(filepath.Join(dir, n), opts...)
		if err != nil {
			return nil, err
		}

		defs = append(defs, d)
	}

	return defs, nil
}

func build(doc document, opts *options) (*process.Definition, error) {
	b := process.NewBuilder(doc.ID, doc.Name)

	for _, n := range doc.OnStart {
		l, err := opts.listener(n)
		if err != nil {
			return nil, err
		}
		b.OnStart(l)
	}

	for _, n := range doc.OnEnd {
		l, err := opts.listener(n)
		if err != nil {
			return nil, err
		}
		b.OnEnd(l)
	}

	for _, a := range doc.Activities {
		if err := buildActivity(b, a, opts); err != nil {
			return nil, fmt.Errorf("activity '%s': %w", a.ID, err)
		}
	}

	for _, t := range doc.Transitions {
		if err := buildTransition(b, t, opts); err != nil {
			return nil, fmt.Errorf("transition '%s': %w", t.ID, err)
		}
	}

	return b.Build()
}

func buildActivity(b *process.Builder, a activity, opts *options) error {
	bh, err := newBehavior(a)
	if err != nil {
		return err
	}

	ab := b.Activity(a.ID, bh)

	if a.Name != "" {
		ab.Named(a.Name)
	}
	if a.In != "" {
		ab.In(a.In)
	}
	if a.Initial {
		ab.Initial()
	}
	if a.AttachedTo != "" {
		ab.AttachedTo(a.AttachedTo)
	}
	if a.AsyncBefore {
		ab.AsyncBefore()
	}
	if a.AsyncAfter {
		ab.AsyncAfter()
	}
	if a.Exclusive != nil && !*a.Exclusive {
		ab.NotExclusive()
	}
	if a.Priority != 0 {
		ab.Priority(a.Priority)
	}

	for _, n := range a.OnStart {
		l, err := opts.listener(n)
		if err != nil {
			return err
		}
		ab.OnStart(l)
	}

	for _, n := range a.OnEnd {
		l, err := opts.listener(n)
		if err != nil {
			return err
		}
		ab.OnEnd(l)
	}

	return nil
}

func newBehavior(a activity) (process.Behavior, error) {
	switch a.Type {
	case "", "none":
		return behavior.None{}, nil
	case "wait":
		return behavior.Wait{}, nil
	case "fork":
		return behavior.Fork{}, nil
	case "join":
		return behavior.Join{}, nil
	case "parallel-gateway":
		return behavior.ParallelGateway{}, nil
	case "exclusive-gateway":
		return behavior.ExclusiveGateway{}, nil
	case "end":
		return behavior.End{}, nil
	case "terminate-end":
		return behavior.TerminateEnd{}, nil
	case "subprocess":
		return behavior.SubProcess{}, nil
	case "timer":
		t, err := newTimer(a.Timer)
		return behavior.TimerCatch{Timer: t}, err
	case "boundary-timer":
		t, err := newTimer(a.Timer)
		return behavior.BoundaryTimer{Timer: t}, err
	default:
		return nil, fmt.Errorf("unrecognized activity type '%s'", a.Type)
	}
}

func newTimer(t *timer) (behavior.Timer, error) {
	if t == nil {
		return behavior.Timer{}, fmt.Errorf("timer activities require a timer")
	}

	r := behavior.Timer{
		Date:             t.Date,
		DurationVariable: t.DurationVariable,
	}

	if t.Duration != "" {
		d, err := time.ParseDuration(t.Duration)
		if err != nil {
			return behavior.Timer{}, fmt.Errorf("timer duration: %w", err)
		}
		r.Duration = d
	}

	return r, nil
}

func buildTransition(b *process.Builder, t transition, opts *options) error {
	tb := b.Transition(t.ID, t.From, t.To)

	if t.Default {
		tb.Default()
	}

	if t.When != nil {
		c, err := newCondition(*t.When, opts)
		if err != nil {
			return err
		}
		tb.When(c)
	}

	if len(t.Waypoints) != 0 {
		points := make([]process.Point, len(t.Waypoints))
		for i, p := range t.Waypoints {
			points[i] = process.Point{X: p[0], Y: p[1]}
		}
		tb.Waypoints(points...)
	}

	for _, n := range t.OnTake {
		l, err := opts.listener(n)
		if err != nil {
			return err
		}
		tb.OnTake(l)
	}

	return nil
}

func newCondition(c condition, opts *options) (process.Condition, error) {
	switch {
	case c.Named != "":
		fn, ok := opts.conditions[c.Named]
		if !ok {
			return nil, fmt.Errorf("unrecognized condition '%s'", c.Named)
		}
		return fn, nil

	case c.IsTrue != "":
		return behavior.IsTrue(c.IsTrue), nil

	case c.Variable != "":
		op := behavior.Operator(c.Op)
		switch op {
		case behavior.Eq, behavior.Ne, behavior.Lt, behavior.Le, behavior.Gt, behavior.Ge:
		case "":
			op = behavior.Eq
		default:
			return nil, fmt.Errorf("unrecognized operator '%s'", c.Op)
		}
		return behavior.Compare(c.Variable, op, variable.Of(c.Value)), nil

	case c.Not != nil:
		inner, err := newCondition(*c.Not, opts)
		if err != nil {
			return nil, err
		}
		return behavior.Not(inner), nil

	case len(c.All) != 0:
		cs, err := newConditions(c.All, opts)
		if err != nil {
			return nil, err
		}
		return behavior.And(cs...), nil

	case len(c.Any) != 0:
		cs, err := newConditions(c.Any, opts)
		if err != nil {
			return nil, err
		}
		return behavior.Or(cs...), nil

	default:
		return nil, fmt.Errorf("condition is empty")
	}
}

func newConditions(in []condition, opts *options) ([]process.Condition, error) {
	out := make([]process.Condition, len(in))

	for i, c := range in {
		fn, err := newCondition(c, opts)
		if err != nil {
			return nil, err
		}
		out[i] = fn
	}

	return out, nil
}

func (o *options) listener(n string) (process.Listener, error) {
	l, ok := o.listeners[n]
	if !ok {
		return nil, fmt.Errorf("unrecognized listener '%s'", n)
	}
	return l, nil
}
