package jobexecutor

import (
	"context"
	"errors"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/dogmatiq/linger"
	"github.com/dogmatiq/linger/backoff"
	"github.com/operaton/operaton-sub059/command"
	"github.com/operaton/operaton-sub059/job"
	"github.com/operaton/operaton-sub059/persistence"
)

// DefaultPollInterval is the default time the acquirer waits before querying
// for due jobs again when the previous query did not fill the pool.
const DefaultPollInterval = 5 * time.Second

// DefaultMaxJobsPerAcquisition is the default maximum number of jobs that are
// acquired in a single acquisition cycle.
const DefaultMaxJobsPerAcquisition = 3

// DefaultLockDuration is the default duration for which an acquired job is
// locked.
const DefaultLockDuration = 5 * time.Minute

// errSkipped indicates that a unit could not be locked because its jobs
// changed since they were queried, or because another exclusive job of the
// same process instance is locked.
var errSkipped = errors.New("the unit is no longer acquirable")

// Acquirer periodically locks due jobs and submits them to a worker pool.
type Acquirer struct {
	// Commands runs the commands that lock jobs.
	Commands *command.Executor

	// Pool executes the acquired jobs.
	Pool *Pool

	// NodeID identifies this node as the owner of the locks it acquires.
	NodeID string

	// PollInterval is the time to wait between acquisition cycles that do not
	// fill the pool. If it is non-positive, DefaultPollInterval is used.
	PollInterval time.Duration

	// MaxJobsPerAcquisition is the maximum number of jobs to acquire in one
	// cycle. If it is non-positive, DefaultMaxJobsPerAcquisition is used.
	MaxJobsPerAcquisition int

	// LockDuration is the duration for which acquired jobs are locked. If it
	// is non-positive, DefaultLockDuration is used.
	LockDuration time.Duration

	// BackoffStrategy is the strategy used to delay the next cycle after a
	// cycle fails. If it is nil, backoff.DefaultStrategy is used.
	BackoffStrategy backoff.Strategy

	// Observer is notified about acquired jobs. It may be nil.
	Observer Observer

	// Metrics records acquisitions. It may be nil.
	Metrics *Metrics

	// Logger is the target for log messages from the acquirer.
	// If it is nil, logging.DefaultLogger is used.
	Logger logging.Logger
}

// Run acquires jobs until ctx is canceled.
func (a *Acquirer) Run(ctx context.Context) error {
	counter := backoff.Counter{
		Strategy: a.BackoffStrategy,
	}

	for {
		n, full, err := a.Acquire(ctx)

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			logging.Log(a.Logger, "unable to acquire jobs: %s", err)

			if err := counter.Sleep(ctx, err); err != nil {
				return err
			}

			continue
		}

		counter.Reset()

		if n > 0 && full {
			continue
		}

		if err := linger.Sleep(ctx, a.pollInterval()); err != nil {
			return err
		}
	}
}

// Acquire performs a single acquisition cycle.
//
// It returns the number of jobs that were submitted to the pool. full is true
// if the query returned as many jobs as were requested, meaning more jobs are
// likely to be due.
func (a *Acquirer) Acquire(ctx context.Context) (n int, full bool, err error) {
	limit := a.maxJobs()
	if c := a.Pool.Capacity(); c < limit {
		limit = c
	}

	if limit <= 0 {
		return 0, false, nil
	}

	jobs, err := a.Commands.DataStore.LoadAcquirableJobs(ctx, a.now(), limit)
	if err != nil {
		return 0, false, err
	}

	for _, u := range group(jobs) {
		if err := a.lock(ctx, u); err != nil {
			if ctx.Err() != nil {
				return n, false, ctx.Err()
			}

			if errors.Is(err, errSkipped) || command.IsOptimisticLockingFailure(err) {
				a.Metrics.acquisitionConflict()
				logging.Debug(a.Logger, "skipped jobs %v: %s", u.JobIDs(), err)
			} else {
				logging.Log(a.Logger, "unable to lock jobs %v: %s", u.JobIDs(), err)
			}

			continue
		}

		for _, j := range u.Jobs {
			a.Metrics.jobAcquired()
			notify(a.Logger, a.Observer, func(o Observer) {
				o.JobAcquired(ctx, j)
			})
		}

		if !a.Pool.Submit(u) {
			a.Metrics.unitRejected()
			logging.Debug(a.Logger, "worker pool rejected jobs %v, releasing locks", u.JobIDs())

			if err := a.release(ctx, u); err != nil {
				logging.Log(a.Logger, "unable to release jobs %v: %s", u.JobIDs(), err)
			}

			continue
		}

		n += len(u.Jobs)
	}

	return n, len(jobs) == limit, nil
}

// lock acquires the locks on the jobs in u.
//
// The lock is a write guarded by the revision at which each job was queried,
// so only one node can lock a job. Locking an exclusive unit also writes the
// root execution of its process instance, so at most one exclusive unit of an
// instance can be locked at a time.
func (a *Acquirer) lock(ctx context.Context, u *Unit) error {
	var locked []persistence.Job

	err := a.Commands.Execute(
		ctx,
		func(ctx context.Context, c *command.Context) error {
			now := c.Now()

			if u.Exclusive {
				jobs, err := c.Jobs(ctx, u.ProcessInstanceID)
				if err != nil {
					return err
				}

				for _, j := range jobs {
					if j.Exclusive && j.IsLocked(now) && !u.contains(j.ID) {
						return errSkipped
					}
				}

				if err := c.Touch(ctx, u.ProcessInstanceID); err != nil {
					return err
				}
			}

			locked = nil

			for _, queried := range u.Jobs {
				j, err := c.Job(ctx, queried.ID)
				if err != nil {
					return err
				}

				if j.Revision != queried.Revision || !j.IsDue(now) {
					return errSkipped
				}

				if err := job.Check(*j, now, job.Acquire); err != nil {
					return errSkipped
				}

				j.LockOwner = a.NodeID
				j.LockExpiresAt = now.Add(a.lockDuration())

				locked = append(locked, *j)
			}

			return nil
		},
	)
	if err != nil {
		return err
	}

	for i := range locked {
		locked[i].Revision++
	}

	u.Owner = a.NodeID
	u.Jobs = locked

	return nil
}

// release removes the locks on the jobs in u.
func (a *Acquirer) release(ctx context.Context, u *Unit) error {
	return a.Commands.ExecuteWithRetry(
		ctx,
		func(ctx context.Context, c *command.Context) error {
			for _, id := range u.JobIDs() {
				j, err := c.Job(ctx, id)
				if err != nil {
					var notFound persistence.NotFoundError
					if errors.As(err, &notFound) {
						continue
					}
					return err
				}

				if j.LockOwner == u.Owner {
					j.LockOwner = ""
					j.LockExpiresAt = time.Time{}
				}
			}

			return nil
		},
	)
}

func (a *Acquirer) now() time.Time {
	if a.Commands.Now != nil {
		return a.Commands.Now()
	}
	return time.Now()
}

func (a *Acquirer) pollInterval() time.Duration {
	if a.PollInterval > 0 {
		return a.PollInterval
	}
	return DefaultPollInterval
}

func (a *Acquirer) maxJobs() int {
	if a.MaxJobsPerAcquisition > 0 {
		return a.MaxJobsPerAcquisition
	}
	return DefaultMaxJobsPerAcquisition
}

func (a *Acquirer) lockDuration() time.Duration {
	if a.LockDuration > 0 {
		return a.LockDuration
	}
	return DefaultLockDuration
}
