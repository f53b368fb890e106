package command

import (
	"context"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/dogmatiq/marshalkit"
	"github.com/operaton/operaton-sub059/execution"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/pvm"
)

// Context is the unit of work of a single command.
//
// It caches every record loaded while the command runs, keyed by ID, along
// with a snapshot of its state as loaded. When the command completes the
// changes are written in a single batch, each guarded by the revision that was
// loaded.
//
// A Context is not safe for concurrent use.
type Context struct {
	exec *Executor
	now  time.Time

	instances map[string]*instance
	jobs      map[string]*entry[persistence.Job]
	incidents map[string]*entry[persistence.Incident]
	order     []string
}

// entry is a cached record along with its state as loaded.
//
// original is nil if the record was created by this command. current is nil
// if the record has been removed.
type entry[T any] struct {
	original *T
	current  *T
}

func newContext(e *Executor) *Context {
	return &Context{
		exec:      e,
		now:       e.now(),
		instances: map[string]*instance{},
		jobs:      map[string]*entry[persistence.Job]{},
		incidents: map[string]*entry[persistence.Incident]{},
	}
}

// Now returns the time at which the command started.
func (c *Context) Now() time.Time {
	return c.now
}

// Logger returns the logger used by the command.
func (c *Context) Logger() logging.Logger {
	return c.exec.Logger
}

// Marshaler returns the marshaler used to serialize object variables.
func (c *Context) Marshaler() marshalkit.ValueMarshaler {
	return c.exec.Marshaler
}

// DataStore returns the underlying data store, for reads that bypass the
// cache.
func (c *Context) DataStore() persistence.DataStore {
	return c.exec.DataStore
}

// NewID returns a new unique identifier.
func (c *Context) NewID() string {
	return c.exec.newID()
}

// Definition returns the deployed definition with the given ID.
func (c *Context) Definition(id string) (*process.Definition, error) {
	if d, ok := c.exec.Definitions.Get(id); ok {
		return d, nil
	}

	return nil, pvm.NotFoundError{Kind: "process definition", ID: id}
}

// Interpreter returns the context in which the interpreter advances tree.
func (c *Context) Interpreter(tree *execution.Tree) (*pvm.Context, error) {
	d, err := c.Definition(tree.DefinitionID)
	if err != nil {
		return nil, err
	}

	return &pvm.Context{
		Definition: d,
		Jobs:       &scheduler{c, tree},
		Now:        c.Now,
		NewID:      c.NewID,
		Logger:     c.exec.Logger,
	}, nil
}

// flush returns the batch of operations that persists every change made
// during the command.
func (c *Context) flush(ctx context.Context) (persistence.Batch, error) {
	var batch persistence.Batch

	for _, id := range c.order {
		ops, err := c.instances[id].flush(c.exec.Marshaler)
		if err != nil {
			return nil, err
		}
		batch = append(batch, ops...)
	}

	for _, id := range sortedKeys(c.jobs) {
		e := c.jobs[id]

		switch {
		case e.original == nil && e.current != nil:
			batch = append(batch, persistence.SaveJob{Job: *e.current})
		case e.original != nil && e.current == nil:
			batch = append(batch, persistence.RemoveJob{Job: *e.original})
		case e.original != nil && !jobsEqual(*e.original, *e.current):
			j := *e.current
			j.Revision = e.original.Revision
			batch = append(batch, persistence.SaveJob{Job: j})
		}
	}

	for _, id := range sortedKeys(c.incidents) {
		e := c.incidents[id]

		switch {
		case e.original == nil && e.current != nil:
			batch = append(batch, persistence.SaveIncident{Incident: *e.current})
		case e.original != nil && e.current == nil:
			batch = append(batch, persistence.RemoveIncident{Incident: *e.original})
		case e.original != nil && *e.original != *e.current:
			i := *e.current
			i.Revision = e.original.Revision
			batch = append(batch, persistence.SaveIncident{Incident: i})
		}
	}

	return batch, nil
}
