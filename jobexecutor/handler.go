package jobexecutor

import (
	"context"
	"errors"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/operaton/operaton-sub059/command"
	"github.com/operaton/operaton-sub059/job"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/pvm"
	"github.com/operaton/operaton-sub059/retry"
)

// errLockLost indicates that a job is no longer locked by the node that is
// executing it, typically because the lock expired and another node acquired
// the job.
var errLockLost = errors.New("the job is no longer locked by this node")

// Handler executes jobs.
type Handler struct {
	// Commands runs the commands that execute jobs.
	Commands *command.Executor

	// RetryPolicy determines when a failed job is next due. If it is nil,
	// retry.DefaultPolicy is used.
	RetryPolicy retry.Policy

	// MaxRetries is the number of attempts that new jobs are given. It is used
	// to determine how many attempts a job has already failed. If it is
	// non-positive, command.DefaultJobRetries is used.
	MaxRetries int

	// Observer is notified about executed and failed jobs. It may be nil.
	Observer Observer

	// Metrics records job executions. It may be nil.
	Metrics *Metrics

	// Logger is the target for log messages about jobs.
	// If it is nil, logging.DefaultLogger is used.
	Logger logging.Logger
}

// Handle executes the jobs in u, in order.
func (h *Handler) Handle(ctx context.Context, u *Unit) {
	for _, j := range u.Jobs {
		if ctx.Err() != nil {
			return
		}

		// Failures have already been recorded against the job.
		_ = h.Execute(ctx, j.ID, u.Owner)
	}
}

// Execute executes the job with the given ID.
//
// owner is the node that is expected to hold the lock on the job. If it is
// empty the job is executed regardless of its lock.
//
// The job is executed in a new command, which is retried if it conflicts with
// another command. If it still fails, the failure is recorded against the job
// and the error is returned. It is not an error if the job no longer exists.
func (h *Handler) Execute(ctx context.Context, id, owner string) error {
	var (
		executed persistence.Job
		start    = time.Now()
	)

	err := h.Commands.ExecuteWithRetry(
		ctx,
		func(ctx context.Context, c *command.Context) error {
			j, err := c.Job(ctx, id)
			if err != nil {
				return err
			}

			if owner != "" && j.LockOwner != owner {
				return errLockLost
			}

			executed = *j

			cont, err := job.DecodePayload(c.Marshaler(), j.Payload)
			if err != nil {
				return err
			}

			tree, err := c.Instance(ctx, j.ProcessInstanceID)
			if err != nil {
				return err
			}

			pc, err := c.Interpreter(tree)
			if err != nil {
				return err
			}

			if err := c.RemoveJob(ctx, id); err != nil {
				return err
			}

			return pvm.Resume(ctx, pc, tree, cont)
		},
	)

	var notFound persistence.NotFoundError

	switch {
	case err == nil:
		logging.Debug(h.Logger, "executed %s job %s", executed.Type, id)
		h.Metrics.jobExecuted(executed.Type, time.Since(start))
		notify(h.Logger, h.Observer, func(o Observer) {
			o.JobExecuted(ctx, executed)
		})
		return nil

	case errors.As(err, &notFound) && notFound.Kind == "job":
		logging.Debug(h.Logger, "job %s no longer exists", id)
		return nil

	case errors.Is(err, errLockLost):
		logging.Debug(h.Logger, "job %s was not executed: %s", id, err)
		return nil

	case ctx.Err() != nil:
		return ctx.Err()
	}

	h.Metrics.jobFailed(executed.Type, time.Since(start))

	if ferr := h.fail(ctx, id, owner, err); ferr != nil {
		logging.Log(
			h.Logger,
			"unable to record the failure of job %s: %s (the job failed with: %s)",
			id,
			ferr,
			err,
		)
	}

	return err
}

// fail records a failed attempt at executing the job with the given ID.
func (h *Handler) fail(ctx context.Context, id, owner string, cause error) error {
	var (
		failed   persistence.Job
		incident *persistence.Incident
	)

	err := h.Commands.ExecuteWithRetry(
		ctx,
		func(ctx context.Context, c *command.Context) error {
			incident = nil

			j, err := c.Job(ctx, id)
			if err != nil {
				return err
			}

			if owner != "" && j.LockOwner != owner {
				return errLockLost
			}

			failures := h.maxRetries() - j.Retries
			if failures < 0 {
				failures = 0
			}

			if pvm.IsFatal(cause) {
				j.Retries = 0
			} else if j.Retries > 0 {
				j.Retries--
			}

			j.ExceptionMessage = cause.Error()
			j.LockOwner = ""
			j.LockExpiresAt = time.Time{}

			if j.Retries > 0 {
				j.DueDate = h.retryPolicy().NextRetry(c.Now(), failures, cause)
			} else {
				existing, err := c.Incidents(ctx, id)
				if err != nil {
					return err
				}

				if len(existing) == 0 {
					i := persistence.Incident{
						ID:                c.NewID(),
						JobID:             j.ID,
						ProcessInstanceID: j.ProcessInstanceID,
						ExecutionID:       j.ExecutionID,
						ActivityID:        j.ActivityID,
						Message:           j.ExceptionMessage,
						CreatedAt:         c.Now(),
					}
					c.AddIncident(i)
					incident = &i
				}
			}

			failed = *j

			return nil
		},
	)

	var notFound persistence.NotFoundError
	if errors.As(err, &notFound) || errors.Is(err, errLockLost) {
		return nil
	}

	if err != nil {
		return err
	}

	if failed.Retries > 0 {
		logging.Log(
			h.Logger,
			"job %s failed, %d attempt(s) remaining, next attempt at %s: %s",
			id,
			failed.Retries,
			failed.DueDate.Format(time.RFC3339),
			cause,
		)
	} else {
		logging.Log(
			h.Logger,
			"job %s failed with no attempts remaining: %s",
			id,
			cause,
		)
	}

	notify(h.Logger, h.Observer, func(o Observer) {
		o.JobFailed(ctx, failed, cause)
	})

	if incident != nil {
		h.Metrics.incidentCreated()
		notify(h.Logger, h.Observer, func(o Observer) {
			o.IncidentCreated(ctx, *incident)
		})
	}

	return nil
}

func (h *Handler) retryPolicy() retry.Policy {
	if h.RetryPolicy != nil {
		return h.RetryPolicy
	}
	return retry.DefaultPolicy
}

func (h *Handler) maxRetries() int {
	if h.MaxRetries > 0 {
		return h.MaxRetries
	}
	return command.DefaultJobRetries
}
