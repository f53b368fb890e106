package persistence

import (
	"context"
	"time"
)

// Job is a persisted unit of asynchronous work.
type Job struct {
	ID string

	// Type is the job type, such as "timer" or "async-continuation".
	Type string

	// DueDate is the earliest time at which the job may be executed. A zero
	// value means the job is due immediately.
	DueDate time.Time

	ExecutionID       string
	ProcessInstanceID string
	DefinitionID      string
	ActivityID        string

	// Payload is the serialized continuation that the job resumes.
	Payload []byte

	// Retries is the number of attempts remaining. A job with no retries
	// remaining is never acquired.
	Retries int

	// LockOwner is the ID of the node that has acquired the job, or empty if
	// the job is not locked.
	LockOwner string

	// LockExpiresAt is the time at which the lock is no longer honored.
	LockExpiresAt time.Time

	Exclusive bool
	Priority  int64
	Suspended bool

	// ExceptionMessage is the message of the error that caused the most recent
	// failed attempt.
	ExceptionMessage string

	CreatedAt time.Time

	// Revision is the job's current version, used to enforce optimistic
	// concurrency control.
	Revision uint64
}

// IsDue returns true if the job is due at the given time.
func (j Job) IsDue(now time.Time) bool {
	return j.DueDate.IsZero() || !j.DueDate.After(now)
}

// IsLocked returns true if the job holds a lock that has not expired at the
// given time.
func (j Job) IsLocked(now time.Time) bool {
	return j.LockOwner != "" && j.LockExpiresAt.After(now)
}

// IsAcquirable returns true if the job can be acquired at the given time.
func (j Job) IsAcquirable(now time.Time) bool {
	return j.IsDue(now) &&
		!j.Suspended &&
		j.Retries > 0 &&
		!j.IsLocked(now)
}

// LessForAcquisition returns true if j should be acquired before k.
//
// Jobs are ordered by priority (highest first), due date (earliest first),
// creation time and finally ID.
func (j Job) LessForAcquisition(k Job) bool {
	if j.Priority != k.Priority {
		return j.Priority > k.Priority
	}

	if !j.DueDate.Equal(k.DueDate) {
		return j.DueDate.Before(k.DueDate)
	}

	if !j.CreatedAt.Equal(k.CreatedAt) {
		return j.CreatedAt.Before(k.CreatedAt)
	}

	return j.ID < k.ID
}

// JobRepository is an interface for reading persisted jobs.
type JobRepository interface {
	// LoadJob loads the job with the given ID.
	//
	// ok is false if the job does not exist.
	LoadJob(ctx context.Context, id string) (j Job, ok bool, err error)

	// LoadJobs loads every job, ordered by creation time.
	LoadJobs(ctx context.Context) ([]Job, error)

	// LoadJobsByProcessInstance loads the jobs of a process instance, ordered
	// by creation time.
	LoadJobsByProcessInstance(ctx context.Context, id string) ([]Job, error)

	// LoadAcquirableJobs loads up to n jobs that are acquirable at the given
	// time, in acquisition order.
	LoadAcquirableJobs(ctx context.Context, now time.Time, n int) ([]Job, error)
}

// SaveJob is an Operation that creates or updates a job.
type SaveJob struct {
	// Job is the job to persist.
	//
	// Job.Revision must be the revision of the job as currently persisted,
	// otherwise an optimistic concurrency conflict occurs and the entire batch
	// of operations is rejected.
	Job Job
}

// AcceptVisitor calls v.VisitSaveJob().
func (op SaveJob) AcceptVisitor(ctx context.Context, v OperationVisitor) error {
	return v.VisitSaveJob(ctx, op)
}

func (op SaveJob) entityKey() entityKey {
	return entityKey{"job", op.Job.ID}
}

// RemoveJob is an Operation that removes a job.
type RemoveJob struct {
	// Job is the job to remove.
	//
	// Job.Revision must be the revision of the job as currently persisted,
	// otherwise an optimistic concurrency conflict occurs and the entire batch
	// of operations is rejected.
	Job Job
}

// AcceptVisitor calls v.VisitRemoveJob().
func (op RemoveJob) AcceptVisitor(ctx context.Context, v OperationVisitor) error {
	return v.VisitRemoveJob(ctx, op)
}

func (op RemoveJob) entityKey() entityKey {
	return entityKey{"job", op.Job.ID}
}
