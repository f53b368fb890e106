package boltpersistence

import (
	"context"
	"time"

	"github.com/operaton/operaton-sub059/internal/x/bboltx"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/boltpersistence/internal/pb"
	"go.etcd.io/bbolt"
)

var (
	// jobBucketKey is the key for the bucket containing jobs.
	//
	// The keys are job IDs. The values are pb.Job values
	// marshaled using Protocol Buffers.
	jobBucketKey = []byte("job")
)

// LoadJob loads the job with the given ID.
func (ds *dataStore) LoadJob(
	ctx context.Context,
	id string,
) (j persistence.Job, ok bool, err error) {
	err = ds.view(func(root *bbolt.Bucket) {
		rec := &pb.Job{}
		if ok = get(root, rec, jobBucketKey, []byte(id)); ok {
			j = unmarshalJob(rec)
		}
	})

	return j, ok, err
}

// LoadJobs loads every job.
func (ds *dataStore) LoadJobs(ctx context.Context) ([]persistence.Job, error) {
	jobs, err := ds.loadJobs(func(persistence.Job) bool { return true })
	persistence.SortJobs(jobs)
	return jobs, err
}

// LoadJobsByProcessInstance loads the jobs of a process instance.
func (ds *dataStore) LoadJobsByProcessInstance(
	ctx context.Context,
	id string,
) ([]persistence.Job, error) {
	jobs, err := ds.loadJobs(func(j persistence.Job) bool {
		return j.ProcessInstanceID == id
	})
	persistence.SortJobs(jobs)
	return jobs, err
}

// LoadAcquirableJobs loads up to n jobs that are acquirable at the given time.
func (ds *dataStore) LoadAcquirableJobs(
	ctx context.Context,
	now time.Time,
	n int,
) ([]persistence.Job, error) {
	jobs, err := ds.loadJobs(func(j persistence.Job) bool {
		return j.IsAcquirable(now)
	})

	persistence.SortJobsForAcquisition(jobs)

	if len(jobs) > n {
		jobs = jobs[:n]
	}

	return jobs, err
}

func (ds *dataStore) loadJobs(pred func(persistence.Job) bool) (jobs []persistence.Job, err error) {
	err = ds.view(func(root *bbolt.Bucket) {
		rec := &pb.Job{}
		each(root, rec, func() {
			j := unmarshalJob(rec)

			if pred(j) {
				jobs = append(jobs, j)
			}
		}, jobBucketKey)
	})

	return jobs, err
}

// VisitSaveJob applies the changes in a "SaveJob" operation to the database.
func (c *committer) VisitSaveJob(
	ctx context.Context,
	op persistence.SaveJob,
) error {
	existing := &pb.Job{}
	get(c.root, existing, jobBucketKey, []byte(op.Job.ID))

	if op.Job.Revision != existing.GetRevision() {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	j := op.Job
	j.Revision++
	put(c.root, marshalJob(j), jobBucketKey, []byte(j.ID))

	return nil
}

// VisitRemoveJob applies the changes in a "RemoveJob" operation to the
// database.
func (c *committer) VisitRemoveJob(
	ctx context.Context,
	op persistence.RemoveJob,
) error {
	existing := &pb.Job{}
	ok := get(c.root, existing, jobBucketKey, []byte(op.Job.ID))

	if !ok || op.Job.Revision != existing.GetRevision() {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	bboltx.DeletePath(c.root, jobBucketKey, []byte(op.Job.ID))

	return nil
}
