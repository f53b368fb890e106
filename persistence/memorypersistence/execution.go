package memorypersistence

import (
	"context"

	"github.com/operaton/operaton-sub059/persistence"
)

// LoadExecution loads the execution with the given ID.
func (ds *dataStore) LoadExecution(
	_ context.Context,
	id string,
) (persistence.Execution, bool, error) {
	txn := ds.db.Txn(false)

	if raw := first(txn, executionTable, id); raw != nil {
		return *raw.(*persistence.Execution), true, nil
	}

	return persistence.Execution{}, false, nil
}

// LoadExecutionsByProcessInstance loads all executions of a process instance.
func (ds *dataStore) LoadExecutionsByProcessInstance(
	_ context.Context,
	id string,
) ([]persistence.Execution, error) {
	txn := ds.db.Txn(false)

	var xs []persistence.Execution
	for _, raw := range all(txn, executionTable, instanceIndex, id) {
		xs = append(xs, *raw.(*persistence.Execution))
	}

	persistence.SortExecutions(xs)

	return xs, nil
}

// VisitSaveExecution applies the changes in a "SaveExecution" operation to the
// database.
func (c *committer) VisitSaveExecution(
	_ context.Context,
	op persistence.SaveExecution,
) error {
	var rev uint64
	if raw := first(c.txn, executionTable, op.Execution.ID); raw != nil {
		rev = raw.(*persistence.Execution).Revision
	}

	if op.Execution.Revision != rev {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	x := op.Execution
	x.Revision++
	insert(c.txn, executionTable, &x)

	return nil
}

// VisitRemoveExecution applies the changes in a "RemoveExecution" operation to
// the database.
func (c *committer) VisitRemoveExecution(
	_ context.Context,
	op persistence.RemoveExecution,
) error {
	raw := first(c.txn, executionTable, op.Execution.ID)

	if raw == nil || raw.(*persistence.Execution).Revision != op.Execution.Revision {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	remove(c.txn, executionTable, raw)

	return nil
}
