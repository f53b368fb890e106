// Package operaton is a business process engine. It executes process
// definitions, persists the state of their instances and services the jobs
// that continue them asynchronously.
package operaton

import (
	"context"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/operaton/operaton-sub059/command"
	"github.com/operaton/operaton-sub059/internal/x/loggingx"
	"github.com/operaton/operaton-sub059/jobexecutor"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/process"
	"golang.org/x/sync/errgroup"
)

// Engine executes process definitions.
type Engine struct {
	opts        *engineOptions
	definitions process.Registry
	dataStores  *persistence.DataStoreSet
	metrics     *jobexecutor.Metrics
}

// New returns a new engine.
func New(options ...EngineOption) *Engine {
	opts := resolveEngineOptions(options...)

	e := &Engine{
		opts: opts,
		dataStores: &persistence.DataStoreSet{
			Provider: opts.PersistenceProvider,
		},
	}

	if opts.Metrics != nil {
		e.metrics = jobexecutor.NewMetrics(opts.Metrics)
	}

	return e
}

// Deploy makes process definitions available to the engine.
//
// Deploying a definition with the same ID as one that is already deployed
// replaces it. Existing instances continue with the replacement.
func (e *Engine) Deploy(defs ...*process.Definition) {
	e.definitions.Deploy(defs...)

	for _, d := range defs {
		logging.Debug(
			e.opts.Logger,
			"deployed process definition '%s' version %d",
			d.ID,
			d.Version,
		)
	}
}

// Run executes due jobs until ctx is canceled or an error occurs.
//
// The engine's data stores are closed when Run() returns.
func (e *Engine) Run(ctx context.Context) error {
	defer e.dataStores.Close()

	if e.opts.JobExecutorDisabled {
		<-ctx.Done()
		return ctx.Err()
	}

	commands, err := e.commands(ctx)
	if err != nil {
		return err
	}

	pool := &jobexecutor.Pool{
		Handler:     e.handler(commands),
		CoreWorkers: e.opts.CoreWorkers,
		MaxWorkers:  e.opts.MaxWorkers,
		QueueSize:   *e.opts.QueueSize,
		Metrics:     e.metrics,
		Logger:      loggingx.WithPrefix(e.opts.Logger, "[job pool] "),
	}

	acquirer := &jobexecutor.Acquirer{
		Commands:              commands,
		Pool:                  pool,
		NodeID:                e.opts.NodeID,
		PollInterval:          e.opts.PollInterval,
		MaxJobsPerAcquisition: e.opts.MaxJobsPerAcquisition,
		LockDuration:          e.opts.LockDuration,
		BackoffStrategy:       DefaultAcquisitionBackoff,
		Observer:              e.observer(),
		Metrics:               e.metrics,
		Logger:                loggingx.WithPrefix(e.opts.Logger, "[job acquisition %s] ", e.opts.NodeID),
	}

	parent := ctx
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return pool.Run(ctx)
	})

	g.Go(func() error {
		return acquirer.Run(ctx)
	})

	err = g.Wait()

	if parent.Err() != nil {
		return parent.Err()
	}

	return err
}

// Close closes the engine's data stores.
//
// It is only necessary to call Close() if Run() is never called.
func (e *Engine) Close() error {
	return e.dataStores.Close()
}

// commands returns the executor used to run commands.
func (e *Engine) commands(ctx context.Context) (*command.Executor, error) {
	ds, err := e.dataStores.Get(ctx, e.opts.ClusterKey)
	if err != nil {
		return nil, err
	}

	return &command.Executor{
		DataStore:       ds,
		Definitions:     &e.definitions,
		Marshaler:       e.opts.Marshaler,
		Logger:          loggingx.WithPrefix(e.opts.Logger, "[command] "),
		Now:             e.opts.Now,
		JobRetries:      e.opts.MaxRetries,
		ConflictRetries: *e.opts.ConflictRetries,
	}, nil
}

// handler returns the handler used to execute jobs.
func (e *Engine) handler(commands *command.Executor) *jobexecutor.Handler {
	return &jobexecutor.Handler{
		Commands:    commands,
		RetryPolicy: e.opts.RetryPolicy,
		MaxRetries:  e.opts.MaxRetries,
		Observer:    e.observer(),
		Metrics:     e.metrics,
		Logger:      loggingx.WithPrefix(e.opts.Logger, "[job] "),
	}
}

func (e *Engine) observer() jobexecutor.Observer {
	if len(e.opts.Observers) == 0 {
		return nil
	}
	return jobexecutor.Observers(e.opts.Observers)
}
