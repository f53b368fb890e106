package command

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dogmatiq/marshalkit"
	"github.com/operaton/operaton-sub059/execution"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/variable"
)

// instance is a cached process instance.
type instance struct {
	tree *execution.Tree

	// executions and variables are the records as loaded. They are empty for
	// instances started by this command.
	executions map[string]persistence.Execution
	variables  map[variableKey]persistence.Variable

	// touched forces the root execution to be saved even if it has not
	// changed.
	touched bool

	jobsLoaded bool
}

type variableKey struct {
	executionID string
	name        string
}

// NewInstance returns the tree of a new process instance of the given
// definition.
func (c *Context) NewInstance(definitionID string) (*execution.Tree, error) {
	if _, err := c.Definition(definitionID); err != nil {
		return nil, err
	}

	tree := execution.NewTree(c.NewID(), definitionID)

	c.instances[tree.ProcessInstanceID()] = &instance{
		tree:       tree,
		jobsLoaded: true,
	}
	c.order = append(c.order, tree.ProcessInstanceID())

	return tree, nil
}

// Instance returns the tree of the process instance with the given ID.
func (c *Context) Instance(ctx context.Context, id string) (*execution.Tree, error) {
	in, err := c.instance(ctx, id)
	if err != nil {
		return nil, err
	}
	return in.tree, nil
}

// InstanceOf returns the tree that contains the execution with the given ID.
func (c *Context) InstanceOf(ctx context.Context, executionID string) (*execution.Tree, error) {
	for _, in := range c.instances {
		if _, ok := in.tree.Get(executionID); ok {
			return in.tree, nil
		}
	}

	x, ok, err := c.exec.DataStore.LoadExecution(ctx, executionID)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, persistence.NotFoundError{Kind: "execution", ID: executionID}
	}

	return c.Instance(ctx, x.ProcessInstanceID)
}

// Touch forces the root execution of a process instance to be saved when the
// command completes, even if the instance is unchanged.
//
// This makes the command conflict with any other command that modifies the
// instance concurrently.
func (c *Context) Touch(ctx context.Context, id string) error {
	in, err := c.instance(ctx, id)
	if err != nil {
		return err
	}

	in.touched = true
	return nil
}

func (c *Context) instance(ctx context.Context, id string) (*instance, error) {
	if in, ok := c.instances[id]; ok {
		return in, nil
	}

	in, err := load(ctx, c.exec.DataStore, c.exec.Marshaler, id)
	if err != nil {
		return nil, err
	}

	c.instances[id] = in
	c.order = append(c.order, id)

	return in, nil
}

// load reads a process instance from the data store.
func load(
	ctx context.Context,
	ds persistence.DataStore,
	m marshalkit.ValueMarshaler,
	id string,
) (*instance, error) {
	recs, err := ds.LoadExecutionsByProcessInstance(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(recs) == 0 {
		return nil, persistence.NotFoundError{Kind: "process instance", ID: id}
	}

	in := &instance{
		executions: make(map[string]persistence.Execution, len(recs)),
		variables:  map[variableKey]persistence.Variable{},
	}

	var (
		definitionID string
		xs           []*execution.Execution
		byID         = map[string]*execution.Execution{}
	)

	for _, r := range recs {
		in.executions[r.ID] = r

		if r.ParentID == "" {
			definitionID = r.DefinitionID
		}

		x := &execution.Execution{
			ID:           r.ID,
			ParentID:     r.ParentID,
			ActivityID:   r.ActivityID,
			IsConcurrent: r.IsConcurrent,
			IsScope:      r.IsScope,
			IsActive:     r.IsActive,
			IsEnded:      r.IsEnded,
		}

		xs = append(xs, x)
		byID[x.ID] = x
	}

	vars, err := ds.LoadVariablesByProcessInstance(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, r := range vars {
		x, ok := byID[r.ExecutionID]
		if !ok {
			return nil, fmt.Errorf(
				"variable '%s' belongs to unknown execution '%s'",
				r.Name,
				r.ExecutionID,
			)
		}

		v, err := variable.Deserialize(m, variable.Serialized{
			Type:      r.Type,
			MediaType: r.MediaType,
			Data:      r.Data,
		})
		if err != nil {
			return nil, fmt.Errorf("unable to load variable '%s': %w", r.Name, err)
		}

		if x.Variables == nil {
			x.Variables = variable.Map{}
		}
		x.Variables[r.Name] = v

		in.variables[variableKey{r.ExecutionID, r.Name}] = r
	}

	in.tree, err = execution.Rebuild(definitionID, xs)
	if err != nil {
		return nil, fmt.Errorf("process instance '%s' is corrupt: %w", id, err)
	}

	return in, nil
}

// flush returns the operations that persist the changes made to the instance.
func (in *instance) flush(m marshalkit.ValueMarshaler) ([]persistence.Operation, error) {
	var (
		ops   []persistence.Operation
		dirty = in.touched
		root  = in.tree.Root()
	)

	for _, x := range in.tree.Executions() {
		if x == root {
			continue
		}

		orig, ok := in.executions[x.ID]
		r := in.record(x)
		r.Revision = orig.Revision

		if !ok || r != orig {
			ops = append(ops, persistence.SaveExecution{Execution: r})
			dirty = true
		}
	}

	for _, id := range sortedKeys(in.executions) {
		if _, ok := in.tree.Get(id); !ok {
			ops = append(ops, persistence.RemoveExecution{Execution: in.executions[id]})
			dirty = true
		}
	}

	current := map[variableKey]struct{}{}

	for _, x := range in.tree.Executions() {
		for _, name := range sortedKeys(x.Variables) {
			k := variableKey{x.ID, name}
			current[k] = struct{}{}

			s, err := variable.Serialize(m, x.Variables[name])
			if err != nil {
				return nil, fmt.Errorf("unable to save variable '%s': %w", name, err)
			}

			orig, ok := in.variables[k]
			if ok &&
				orig.Type == s.Type &&
				orig.MediaType == s.MediaType &&
				bytes.Equal(orig.Data, s.Data) {
				continue
			}

			ops = append(ops, persistence.SaveVariable{
				Variable: persistence.Variable{
					ExecutionID:       x.ID,
					ProcessInstanceID: in.tree.ProcessInstanceID(),
					Name:              name,
					Type:              s.Type,
					MediaType:         s.MediaType,
					Data:              s.Data,
					Revision:          orig.Revision,
				},
			})
			dirty = true
		}
	}

	for _, k := range sortedVariableKeys(in.variables) {
		if _, ok := current[k]; !ok {
			ops = append(ops, persistence.RemoveVariable{Variable: in.variables[k]})
			dirty = true
		}
	}

	orig, ok := in.executions[root.ID]
	r := in.record(root)
	r.Revision = orig.Revision

	if dirty || !ok || r != orig {
		// The root is saved first so that a concurrent modification of the
		// instance is always reported as a conflict on the root.
		ops = append([]persistence.Operation{persistence.SaveExecution{Execution: r}}, ops...)
	}

	return ops, nil
}

// record returns the persisted representation of x, without a revision.
func (in *instance) record(x *execution.Execution) persistence.Execution {
	return persistence.Execution{
		ID:                x.ID,
		ProcessInstanceID: in.tree.ProcessInstanceID(),
		ParentID:          x.ParentID,
		DefinitionID:      in.tree.DefinitionID,
		ActivityID:        x.ActivityID,
		IsConcurrent:      x.IsConcurrent,
		IsScope:           x.IsScope,
		IsActive:          x.IsActive,
		IsEnded:           x.IsEnded,
	}
}
