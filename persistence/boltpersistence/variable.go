package boltpersistence

import (
	"context"

	"github.com/operaton/operaton-sub059/internal/x/bboltx"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/boltpersistence/internal/pb"
	"go.etcd.io/bbolt"
)

var (
	// variableBucketKey is the key for the bucket containing variables.
	//
	// The keys are the owning execution ID and the variable name separated by
	// a NUL byte. The values are pb.Variable values
	// marshaled using Protocol Buffers.
	variableBucketKey = []byte("variable")
)

func variableKey(v persistence.Variable) []byte {
	return []byte(v.ExecutionID + "\x00" + v.Name)
}

// LoadVariablesByProcessInstance loads all variables of a process instance.
func (ds *dataStore) LoadVariablesByProcessInstance(
	ctx context.Context,
	id string,
) (vs []persistence.Variable, err error) {
	err = ds.view(func(root *bbolt.Bucket) {
		rec := &pb.Variable{}
		each(root, rec, func() {
			v := unmarshalVariable(rec)

			if v.ProcessInstanceID == id {
				vs = append(vs, v)
			}
		}, variableBucketKey)
	})

	persistence.SortVariables(vs)

	return vs, err
}

// VisitSaveVariable applies the changes in a "SaveVariable" operation to the
// database.
func (c *committer) VisitSaveVariable(
	ctx context.Context,
	op persistence.SaveVariable,
) error {
	k := variableKey(op.Variable)

	existing := &pb.Variable{}
	get(c.root, existing, variableBucketKey, k)

	if op.Variable.Revision != existing.GetRevision() {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	v := op.Variable
	v.Revision++
	put(c.root, marshalVariable(v), variableBucketKey, k)

	return nil
}

// VisitRemoveVariable applies the changes in a "RemoveVariable" operation to
// the database.
func (c *committer) VisitRemoveVariable(
	ctx context.Context,
	op persistence.RemoveVariable,
) error {
	k := variableKey(op.Variable)

	existing := &pb.Variable{}
	ok := get(c.root, existing, variableBucketKey, k)

	if !ok || op.Variable.Revision != existing.GetRevision() {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	bboltx.DeletePath(c.root, variableBucketKey, k)

	return nil
}
