package sqlpersistence

import (
	"context"
	"database/sql"

	"github.com/operaton/operaton-sub059/persistence"
)

// VariableDriver is the subset of the Driver interface that is concerned with
// variables.
type VariableDriver interface {
	// InsertVariable inserts a variable.
	//
	// It returns false if the row already exists.
	InsertVariable(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		v persistence.Variable,
	) (bool, error)

	// UpdateVariable updates a variable.
	//
	// It returns false if the row does not exist or v.Revision is not current.
	UpdateVariable(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		v persistence.Variable,
	) (bool, error)

	// DeleteVariable deletes a variable.
	//
	// It returns false if the row does not exist or v.Revision is not current.
	DeleteVariable(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		v persistence.Variable,
	) (bool, error)

	// SelectVariablesByProcessInstance selects the variables of a process
	// instance.
	SelectVariablesByProcessInstance(
		ctx context.Context,
		db *sql.DB,
		k, id string,
	) ([]persistence.Variable, error)
}

// LoadVariablesByProcessInstance loads the variables of a process instance.
func (ds *dataStore) LoadVariablesByProcessInstance(
	ctx context.Context,
	id string,
) ([]persistence.Variable, error) {
	vs, err := ds.driver.SelectVariablesByProcessInstance(ctx, ds.db, ds.key, id)
	persistence.SortVariables(vs)
	return vs, err
}

// VisitSaveVariable applies the changes in a "SaveVariable" operation to the
// database.
func (c *committer) VisitSaveVariable(
	ctx context.Context,
	op persistence.SaveVariable,
) error {
	fn := c.driver.InsertVariable
	if op.Variable.Revision > 0 {
		fn = c.driver.UpdateVariable
	}

	ok, err := fn(ctx, c.tx, c.key, op.Variable)
	return guard(ok, err, op)
}

// VisitRemoveVariable applies the changes in a "RemoveVariable" operation to
// the database.
func (c *committer) VisitRemoveVariable(
	ctx context.Context,
	op persistence.RemoveVariable,
) error {
	ok, err := c.driver.DeleteVariable(ctx, c.tx, c.key, op.Variable)
	return guard(ok, err, op)
}
