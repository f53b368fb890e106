package memorypersistence

import (
	"context"

	"github.com/operaton/operaton-sub059/persistence"
)

// LoadVariablesByProcessInstance loads all variables of a process instance.
func (ds *dataStore) LoadVariablesByProcessInstance(
	_ context.Context,
	id string,
) ([]persistence.Variable, error) {
	txn := ds.db.Txn(false)

	var vs []persistence.Variable
	for _, raw := range all(txn, variableTable, instanceIndex, id) {
		v := *raw.(*persistence.Variable)
		v.Data = cloneBytes(v.Data)
		vs = append(vs, v)
	}

	persistence.SortVariables(vs)

	return vs, nil
}

// VisitSaveVariable applies the changes in a "SaveVariable" operation to the
// database.
func (c *committer) VisitSaveVariable(
	_ context.Context,
	op persistence.SaveVariable,
) error {
	var rev uint64
	if raw := first(c.txn, variableTable, op.Variable.ExecutionID, op.Variable.Name); raw != nil {
		rev = raw.(*persistence.Variable).Revision
	}

	if op.Variable.Revision != rev {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	v := op.Variable
	v.Revision++
	v.Data = cloneBytes(v.Data)
	insert(c.txn, variableTable, &v)

	return nil
}

// VisitRemoveVariable applies the changes in a "RemoveVariable" operation to
// the database.
func (c *committer) VisitRemoveVariable(
	_ context.Context,
	op persistence.RemoveVariable,
) error {
	raw := first(c.txn, variableTable, op.Variable.ExecutionID, op.Variable.Name)

	if raw == nil || raw.(*persistence.Variable).Revision != op.Variable.Revision {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	remove(c.txn, variableTable, raw)

	return nil
}

func cloneBytes(data []byte) []byte {
	if data == nil {
		return nil
	}
	return append([]byte{}, data...)
}
