package operaton

import (
	"context"
	"fmt"

	"github.com/operaton/operaton-sub059/command"
	"github.com/operaton/operaton-sub059/job"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/pvm"
)

// ExecuteJob executes the job with the given ID immediately, regardless of
// its due date.
//
// It returns the job's error if it fails. The failure is recorded against the
// job as if the job executor had executed it.
func (e *Engine) ExecuteJob(ctx context.Context, jobID string) error {
	commands, err := e.commands(ctx)
	if err != nil {
		return err
	}

	if _, ok, err := commands.DataStore.LoadJob(ctx, jobID); err != nil {
		return err
	} else if !ok {
		return pvm.NotFoundError{Kind: "job", ID: jobID}
	}

	return e.handler(commands).Execute(ctx, jobID, "")
}

// SetJobRetries sets the number of remaining retries of a job.
//
// It is used to retry a job that has exhausted its retries. Any incidents
// raised by the job are resolved.
func (e *Engine) SetJobRetries(ctx context.Context, jobID string, n int) error {
	if n <= 0 {
		return fmt.Errorf("job retries must be positive, got %d", n)
	}

	return e.updateJob(
		ctx,
		jobID,
		func(ctx context.Context, c *command.Context, j *persistence.Job) error {
			switch job.StateOf(*j, c.Now()) {
			case job.Locked, job.FailedRetry, job.Incident:
				if err := job.Check(*j, c.Now(), job.ResetRetries); err != nil {
					return err
				}
			}

			j.Retries = n

			incidents, err := c.Incidents(ctx, jobID)
			if err != nil {
				return err
			}

			for _, i := range incidents {
				c.RemoveIncident(i.ID)
			}

			return nil
		},
	)
}

// SuspendJob prevents a job from being acquired until it is activated.
func (e *Engine) SuspendJob(ctx context.Context, jobID string) error {
	return e.updateJob(
		ctx,
		jobID,
		func(ctx context.Context, c *command.Context, j *persistence.Job) error {
			if err := job.Check(*j, c.Now(), job.Suspend); err != nil {
				return err
			}

			j.Suspended = true
			return nil
		},
	)
}

// ActivateJob makes a suspended job acquirable again.
func (e *Engine) ActivateJob(ctx context.Context, jobID string) error {
	return e.updateJob(
		ctx,
		jobID,
		func(ctx context.Context, c *command.Context, j *persistence.Job) error {
			if err := job.Check(*j, c.Now(), job.Activate); err != nil {
				return err
			}

			j.Suspended = false
			return nil
		},
	)
}

// updateJob runs fn against the job with the given ID, retrying on conflict.
func (e *Engine) updateJob(
	ctx context.Context,
	jobID string,
	fn func(context.Context, *command.Context, *persistence.Job) error,
) error {
	commands, err := e.commands(ctx)
	if err != nil {
		return err
	}

	return commands.ExecuteWithRetry(
		ctx,
		func(ctx context.Context, c *command.Context) error {
			j, err := c.Job(ctx, jobID)
			if err != nil {
				return err
			}

			return fn(ctx, c, j)
		},
	)
}

// Jobs returns the jobs of a process instance, ordered by creation time.
func (e *Engine) Jobs(ctx context.Context, processInstanceID string) ([]persistence.Job, error) {
	commands, err := e.commands(ctx)
	if err != nil {
		return nil, err
	}

	return commands.DataStore.LoadJobsByProcessInstance(ctx, processInstanceID)
}

// Incidents returns the incidents of a process instance, ordered by creation
// time.
func (e *Engine) Incidents(ctx context.Context, processInstanceID string) ([]persistence.Incident, error) {
	commands, err := e.commands(ctx)
	if err != nil {
		return nil, err
	}

	return commands.DataStore.LoadIncidentsByProcessInstance(ctx, processInstanceID)
}
