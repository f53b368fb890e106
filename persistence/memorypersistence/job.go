package memorypersistence

import (
	"context"
	"time"

	"github.com/operaton/operaton-sub059/persistence"
)

// LoadJob loads the job with the given ID.
func (ds *dataStore) LoadJob(
	_ context.Context,
	id string,
) (persistence.Job, bool, error) {
	txn := ds.db.Txn(false)

	if raw := first(txn, jobTable, id); raw != nil {
		return cloneJob(raw), true, nil
	}

	return persistence.Job{}, false, nil
}

// LoadJobs loads every job.
func (ds *dataStore) LoadJobs(_ context.Context) ([]persistence.Job, error) {
	txn := ds.db.Txn(false)

	var jobs []persistence.Job
	for _, raw := range scan(txn, jobTable) {
		jobs = append(jobs, cloneJob(raw))
	}

	persistence.SortJobs(jobs)

	return jobs, nil
}

// LoadJobsByProcessInstance loads the jobs of a process instance.
func (ds *dataStore) LoadJobsByProcessInstance(
	_ context.Context,
	id string,
) ([]persistence.Job, error) {
	txn := ds.db.Txn(false)

	var jobs []persistence.Job
	for _, raw := range all(txn, jobTable, instanceIndex, id) {
		jobs = append(jobs, cloneJob(raw))
	}

	persistence.SortJobs(jobs)

	return jobs, nil
}

// LoadAcquirableJobs loads up to n jobs that are acquirable at the given time.
func (ds *dataStore) LoadAcquirableJobs(
	_ context.Context,
	now time.Time,
	n int,
) ([]persistence.Job, error) {
	txn := ds.db.Txn(false)

	var jobs []persistence.Job
	for _, raw := range scan(txn, jobTable) {
		if raw.(*persistence.Job).IsAcquirable(now) {
			jobs = append(jobs, cloneJob(raw))
		}
	}

	persistence.SortJobsForAcquisition(jobs)

	if len(jobs) > n {
		jobs = jobs[:n]
	}

	return jobs, nil
}

// VisitSaveJob applies the changes in a "SaveJob" operation to the database.
func (c *committer) VisitSaveJob(
	_ context.Context,
	op persistence.SaveJob,
) error {
	var rev uint64
	if raw := first(c.txn, jobTable, op.Job.ID); raw != nil {
		rev = raw.(*persistence.Job).Revision
	}

	if op.Job.Revision != rev {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	j := op.Job
	j.Revision++
	j.Payload = cloneBytes(j.Payload)
	insert(c.txn, jobTable, &j)

	return nil
}

// VisitRemoveJob applies the changes in a "RemoveJob" operation to the
// database.
func (c *committer) VisitRemoveJob(
	_ context.Context,
	op persistence.RemoveJob,
) error {
	raw := first(c.txn, jobTable, op.Job.ID)

	if raw == nil || raw.(*persistence.Job).Revision != op.Job.Revision {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	remove(c.txn, jobTable, raw)

	return nil
}

func cloneJob(raw interface{}) persistence.Job {
	j := *raw.(*persistence.Job)
	j.Payload = cloneBytes(j.Payload)
	return j
}
