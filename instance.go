package operaton

import (
	"context"
	"sort"

	"github.com/dogmatiq/dodeca/logging"

	"github.com/operaton/operaton-sub059/command"
	"github.com/operaton/operaton-sub059/execution"
	"github.com/operaton/operaton-sub059/job"
	"github.com/operaton/operaton-sub059/pvm"
	"github.com/operaton/operaton-sub059/variable"
)

// StartProcessInstance starts a new instance of the deployed process
// definition with the given ID.
//
// vars are set on the instance before its initial activity is entered. It
// returns the ID of the new process instance, which is also the ID of its root
// execution. The instance runs until every execution reaches a wait state or
// an asynchronous boundary, or until it ends.
func (e *Engine) StartProcessInstance(
	ctx context.Context,
	definitionID string,
	vars variable.Map,
) (string, error) {
	commands, err := e.commands(ctx)
	if err != nil {
		return "", err
	}

	var id string

	err = commands.Execute(
		ctx,
		func(ctx context.Context, c *command.Context) error {
			tree, err := c.NewInstance(definitionID)
			if err != nil {
				return err
			}

			pc, err := c.Interpreter(tree)
			if err != nil {
				return err
			}

			id = tree.ProcessInstanceID()
			return pvm.Start(ctx, pc, tree, vars)
		},
	)
	if err != nil {
		return "", err
	}

	return id, nil
}

// SignalOption configures the behavior of Engine.Signal().
type SignalOption func(*signalOptions)

// WithSignalName returns a signal option that sets the name of the signal
// delivered to the activity.
func WithSignalName(n string) SignalOption {
	return func(opts *signalOptions) {
		opts.Name = n
	}
}

// WithDeferOnConflict returns a signal option that defers the signal to a job
// if it conflicts with a concurrent modification of the process instance,
// instead of returning the optimistic locking failure.
//
// The job delivers the signal as soon as it is executed, to the same activity.
func WithDeferOnConflict() SignalOption {
	return func(opts *signalOptions) {
		opts.DeferOnConflict = true
	}
}

type signalOptions struct {
	Name            string
	DeferOnConflict bool
}

// Signal resumes the execution with the given ID, which must be waiting at a
// wait state.
//
// vars are set on the execution before the signal is delivered.
func (e *Engine) Signal(
	ctx context.Context,
	executionID string,
	vars variable.Map,
	options ...SignalOption,
) error {
	var opts signalOptions
	for _, o := range options {
		o(&opts)
	}

	commands, err := e.commands(ctx)
	if err != nil {
		return err
	}

	err = commands.Execute(
		ctx,
		func(ctx context.Context, c *command.Context) error {
			tree, err := c.InstanceOf(ctx, executionID)
			if err != nil {
				return err
			}

			pc, err := c.Interpreter(tree)
			if err != nil {
				return err
			}

			return pvm.Signal(ctx, pc, tree, executionID, opts.Name, vars)
		},
	)

	if opts.DeferOnConflict && command.IsOptimisticLockingFailure(err) {
		logging.Log(
			e.opts.Logger,
			"deferring signal to execution %s: %s",
			executionID,
			err,
		)

		return e.deferSignal(ctx, commands, executionID, opts.Name, vars)
	}

	return err
}

// deferSignal creates a job that delivers a signal.
func (e *Engine) deferSignal(
	ctx context.Context,
	commands *command.Executor,
	executionID, signal string,
	vars variable.Map,
) error {
	return commands.ExecuteWithRetry(
		ctx,
		func(ctx context.Context, c *command.Context) error {
			tree, err := c.InstanceOf(ctx, executionID)
			if err != nil {
				return err
			}

			x, ok := tree.Get(executionID)
			if !ok || x.IsEnded {
				return pvm.IllegalStateError{
					ExecutionID: executionID,
					Message:     "does not exist or has ended",
				}
			}

			j, err := c.NewJob(job.Spec{
				Type:              job.Retry,
				ProcessInstanceID: tree.ProcessInstanceID(),
				DefinitionID:      tree.DefinitionID,
				Exclusive:         true,
				Continuation: job.Continuation{
					Kind:        job.SignalDelivery,
					ExecutionID: executionID,
					ActivityID:  x.ActivityID,
					Signal:      signal,
					Variables:   vars,
				},
			})
			if err != nil {
				return err
			}

			c.AddJob(j)

			return nil
		},
	)
}

// ProcessInstance is a snapshot of the state of a process instance.
type ProcessInstance struct {
	ID           string
	DefinitionID string
	IsEnded      bool

	// Executions are the instance's executions, ordered by ID.
	Executions []execution.Execution
}

// ActivityIDs returns the IDs of the activities at which the instance is
// currently positioned, sorted and without duplicates.
func (pi ProcessInstance) ActivityIDs() []string {
	seen := map[string]struct{}{}
	var ids []string

	for _, x := range pi.Executions {
		if x.IsEnded || x.ActivityID == "" || len(x.Children) != 0 {
			continue
		}

		if _, ok := seen[x.ActivityID]; !ok {
			seen[x.ActivityID] = struct{}{}
			ids = append(ids, x.ActivityID)
		}
	}

	sort.Strings(ids)

	return ids
}

// ProcessInstance returns the state of the process instance with the given
// ID.
func (e *Engine) ProcessInstance(ctx context.Context, id string) (ProcessInstance, error) {
	var pi ProcessInstance

	err := e.read(
		ctx,
		func(ctx context.Context, c *command.Context) error {
			tree, err := c.Instance(ctx, id)
			if err != nil {
				return err
			}

			root := tree.Root()

			pi = ProcessInstance{
				ID:           tree.ProcessInstanceID(),
				DefinitionID: tree.DefinitionID,
				IsEnded:      root.IsEnded,
			}

			for _, x := range tree.Executions() {
				pi.Executions = append(pi.Executions, *x)
			}

			sort.Slice(pi.Executions, func(i, j int) bool {
				return pi.Executions[i].ID < pi.Executions[j].ID
			})

			return nil
		},
	)

	return pi, err
}

// Variables returns the variables visible from the execution with the given
// ID, including those of its enclosing scopes.
func (e *Engine) Variables(ctx context.Context, executionID string) (variable.Map, error) {
	var vars variable.Map

	err := e.read(
		ctx,
		func(ctx context.Context, c *command.Context) error {
			tree, err := c.InstanceOf(ctx, executionID)
			if err != nil {
				return err
			}

			vars = tree.Variables(executionID)
			return nil
		},
	)

	return vars, err
}

// read runs a command that does not modify any state.
func (e *Engine) read(ctx context.Context, fn command.Func) error {
	commands, err := e.commands(ctx)
	if err != nil {
		return err
	}

	return commands.Execute(ctx, fn)
}
