package sqlpersistence

import (
	"context"
	"database/sql"

	"github.com/operaton/operaton-sub059/persistence"
)

// ExecutionDriver is the subset of the Driver interface that is concerned with
// executions.
type ExecutionDriver interface {
	// InsertExecution inserts an execution.
	//
	// It returns false if the row already exists.
	InsertExecution(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		x persistence.Execution,
	) (bool, error)

	// UpdateExecution updates an execution.
	//
	// It returns false if the row does not exist or x.Revision is not current.
	UpdateExecution(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		x persistence.Execution,
	) (bool, error)

	// DeleteExecution deletes an execution.
	//
	// It returns false if the row does not exist or x.Revision is not current.
	DeleteExecution(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		x persistence.Execution,
	) (bool, error)

	// SelectExecution selects an execution by its ID.
	SelectExecution(
		ctx context.Context,
		db *sql.DB,
		k, id string,
	) (persistence.Execution, bool, error)

	// SelectExecutionsByProcessInstance selects the executions of a process
	// instance.
	SelectExecutionsByProcessInstance(
		ctx context.Context,
		db *sql.DB,
		k, id string,
	) ([]persistence.Execution, error)
}

// LoadExecution loads the execution with the given ID.
func (ds *dataStore) LoadExecution(
	ctx context.Context,
	id string,
) (persistence.Execution, bool, error) {
	return ds.driver.SelectExecution(ctx, ds.db, ds.key, id)
}

// LoadExecutionsByProcessInstance loads the executions of a process instance.
func (ds *dataStore) LoadExecutionsByProcessInstance(
	ctx context.Context,
	id string,
) ([]persistence.Execution, error) {
	xs, err := ds.driver.SelectExecutionsByProcessInstance(ctx, ds.db, ds.key, id)
	persistence.SortExecutions(xs)
	return xs, err
}

// VisitSaveExecution applies the changes in a "SaveExecution" operation to
// the database.
func (c *committer) VisitSaveExecution(
	ctx context.Context,
	op persistence.SaveExecution,
) error {
	fn := c.driver.InsertExecution
	if op.Execution.Revision > 0 {
		fn = c.driver.UpdateExecution
	}

	ok, err := fn(ctx, c.tx, c.key, op.Execution)
	return guard(ok, err, op)
}

// VisitRemoveExecution applies the changes in a "RemoveExecution" operation
// to the database.
func (c *committer) VisitRemoveExecution(
	ctx context.Context,
	op persistence.RemoveExecution,
) error {
	ok, err := c.driver.DeleteExecution(ctx, c.tx, c.key, op.Execution)
	return guard(ok, err, op)
}
