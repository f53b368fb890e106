package sqlpersistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/operaton/operaton-sub059/persistence"
)

// JobDriver is the subset of the Driver interface that is concerned with jobs.
type JobDriver interface {
	// InsertJob inserts a job.
	//
	// It returns false if the row already exists.
	InsertJob(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		j persistence.Job,
	) (bool, error)

	// UpdateJob updates a job.
	//
	// It returns false if the row does not exist or j.Revision is not current.
	UpdateJob(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		j persistence.Job,
	) (bool, error)

	// DeleteJob deletes a job.
	//
	// It returns false if the row does not exist or j.Revision is not current.
	DeleteJob(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		j persistence.Job,
	) (bool, error)

	// SelectJob selects a job by its ID.
	SelectJob(
		ctx context.Context,
		db *sql.DB,
		k, id string,
	) (persistence.Job, bool, error)

	// SelectJobs selects every job.
	SelectJobs(
		ctx context.Context,
		db *sql.DB,
		k string,
	) ([]persistence.Job, error)

	// SelectJobsByProcessInstance selects the jobs of a process instance.
	SelectJobsByProcessInstance(
		ctx context.Context,
		db *sql.DB,
		k, id string,
	) ([]persistence.Job, error)

	// SelectAcquirableJobs selects up to n jobs that are acquirable at the
	// given time, in acquisition order.
	SelectAcquirableJobs(
		ctx context.Context,
		db *sql.DB,
		k string,
		now time.Time,
		n int,
	) ([]persistence.Job, error)
}

// LoadJob loads the job with the given ID.
func (ds *dataStore) LoadJob(
	ctx context.Context,
	id string,
) (persistence.Job, bool, error) {
	return ds.driver.SelectJob(ctx, ds.db, ds.key, id)
}

// LoadJobs loads every job.
func (ds *dataStore) LoadJobs(ctx context.Context) ([]persistence.Job, error) {
	jobs, err := ds.driver.SelectJobs(ctx, ds.db, ds.key)
	persistence.SortJobs(jobs)
	return jobs, err
}

// LoadJobsByProcessInstance loads the jobs of a process instance.
func (ds *dataStore) LoadJobsByProcessInstance(
	ctx context.Context,
	id string,
) ([]persistence.Job, error) {
	jobs, err := ds.driver.SelectJobsByProcessInstance(ctx, ds.db, ds.key, id)
	persistence.SortJobs(jobs)
	return jobs, err
}

// LoadAcquirableJobs loads up to n jobs that are acquirable at the given time.
func (ds *dataStore) LoadAcquirableJobs(
	ctx context.Context,
	now time.Time,
	n int,
) ([]persistence.Job, error) {
	jobs, err := ds.driver.SelectAcquirableJobs(ctx, ds.db, ds.key, now, n)
	persistence.SortJobsForAcquisition(jobs)
	return jobs, err
}

// VisitSaveJob applies the changes in a "SaveJob" operation to the database.
func (c *committer) VisitSaveJob(
	ctx context.Context,
	op persistence.SaveJob,
) error {
	fn := c.driver.InsertJob
	if op.Job.Revision > 0 {
		fn = c.driver.UpdateJob
	}

	ok, err := fn(ctx, c.tx, c.key, op.Job)
	return guard(ok, err, op)
}

// VisitRemoveJob applies the changes in a "RemoveJob" operation to the
// database.
func (c *committer) VisitRemoveJob(
	ctx context.Context,
	op persistence.RemoveJob,
) error {
	ok, err := c.driver.DeleteJob(ctx, c.tx, c.key, op.Job)
	return guard(ok, err, op)
}
