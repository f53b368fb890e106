package boltpersistence

import (
	"context"

	"github.com/operaton/operaton-sub059/internal/x/bboltx"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/boltpersistence/internal/pb"
	"go.etcd.io/bbolt"
)

var (
	// executionBucketKey is the key for the bucket containing executions.
	//
	// The keys are execution IDs. The values are pb.Execution values
	// marshaled using Protocol Buffers.
	executionBucketKey = []byte("execution")
)

// LoadExecution loads the execution with the given ID.
func (ds *dataStore) LoadExecution(
	ctx context.Context,
	id string,
) (x persistence.Execution, ok bool, err error) {
	err = ds.view(func(root *bbolt.Bucket) {
		rec := &pb.Execution{}
		if ok = get(root, rec, executionBucketKey, []byte(id)); ok {
			x = unmarshalExecution(rec)
		}
	})

	return x, ok, err
}

// LoadExecutionsByProcessInstance loads all executions of a process instance.
func (ds *dataStore) LoadExecutionsByProcessInstance(
	ctx context.Context,
	id string,
) (xs []persistence.Execution, err error) {
	err = ds.view(func(root *bbolt.Bucket) {
		rec := &pb.Execution{}
		each(root, rec, func() {
			x := unmarshalExecution(rec)

			if x.ProcessInstanceID == id {
				xs = append(xs, x)
			}
		}, executionBucketKey)
	})

	persistence.SortExecutions(xs)

	return xs, err
}

// VisitSaveExecution applies the changes in a "SaveExecution" operation to the
// database.
func (c *committer) VisitSaveExecution(
	ctx context.Context,
	op persistence.SaveExecution,
) error {
	existing := &pb.Execution{}
	get(c.root, existing, executionBucketKey, []byte(op.Execution.ID))

	if op.Execution.Revision != existing.GetRevision() {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	x := op.Execution
	x.Revision++
	put(c.root, marshalExecution(x), executionBucketKey, []byte(x.ID))

	return nil
}

// VisitRemoveExecution applies the changes in a "RemoveExecution" operation to
// the database.
func (c *committer) VisitRemoveExecution(
	ctx context.Context,
	op persistence.RemoveExecution,
) error {
	existing := &pb.Execution{}
	ok := get(c.root, existing, executionBucketKey, []byte(op.Execution.ID))

	if !ok || op.Execution.Revision != existing.GetRevision() {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	bboltx.DeletePath(c.root, executionBucketKey, []byte(op.Execution.ID))

	return nil
}
