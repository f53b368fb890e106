package sqlite

import (
	"context"
	"database/sql"

	"github.com/operaton/operaton-sub059/internal/x/sqlx"
	"github.com/operaton/operaton-sub059/persistence"
)

// InsertExecution inserts an execution.
//
// It returns false if the row already exists.
func (driver) InsertExecution(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	x persistence.Execution,
) (_ bool, err error) {
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`INSERT INTO execution (
			store_key,
			id,
			process_instance_id,
			parent_id,
			definition_id,
			activity_id,
			is_concurrent,
			is_scope,
			is_active,
			is_ended
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		) ON CONFLICT (store_key, id) DO NOTHING`,
		k,
		x.ID,
		x.ProcessInstanceID,
		x.ParentID,
		x.DefinitionID,
		x.ActivityID,
		x.IsConcurrent,
		x.IsScope,
		x.IsActive,
		x.IsEnded,
	), nil
}

// UpdateExecution updates an execution.
//
// It returns false if the row does not exist or x.Revision is not current.
func (driver) UpdateExecution(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	x persistence.Execution,
) (_ bool, err error) {
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`UPDATE execution SET
			revision = revision + 1,
			process_instance_id = ?,
			parent_id = ?,
			definition_id = ?,
			activity_id = ?,
			is_concurrent = ?,
			is_scope = ?,
			is_active = ?,
			is_ended = ?
		WHERE store_key = ?
		AND id = ?
		AND revision = ?`,
		x.ProcessInstanceID,
		x.ParentID,
		x.DefinitionID,
		x.ActivityID,
		x.IsConcurrent,
		x.IsScope,
		x.IsActive,
		x.IsEnded,
		k,
		x.ID,
		x.Revision,
	), nil
}

// DeleteExecution deletes an execution.
//
// It returns false if the row does not exist or x.Revision is not current.
func (driver) DeleteExecution(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	x persistence.Execution,
) (_ bool, err error) {
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`DELETE FROM execution
		WHERE store_key = ?
		AND id = ?
		AND revision = ?`,
		k,
		x.ID,
		x.Revision,
	), nil
}

// SelectExecution selects an execution by its ID.
func (driver) SelectExecution(
	ctx context.Context,
	db *sql.DB,
	k, id string,
) (x persistence.Execution, ok bool, err error) {
	defer sqlx.Recover(&err)

	row := db.QueryRowContext(
		ctx,
		`SELECT `+executionColumns+`
		FROM execution
		WHERE store_key = ?
		AND id = ?`,
		k,
		id,
	)

	ok = sqlx.TryScan(row, executionFields(&x)...)
	return x, ok, nil
}

// SelectExecutionsByProcessInstance selects the executions of a process
// instance.
func (driver) SelectExecutionsByProcessInstance(
	ctx context.Context,
	db *sql.DB,
	k, id string,
) (xs []persistence.Execution, err error) {
	defer sqlx.Recover(&err)

	sqlx.Each(
		ctx,
		db,
		func(s sqlx.Scanner) {
			var x persistence.Execution
			sqlx.Must(s.Scan(executionFields(&x)...))
			xs = append(xs, x)
		},
		`SELECT `+executionColumns+`
		FROM execution
		WHERE store_key = ?
		AND process_instance_id = ?
		ORDER BY id`,
		k,
		id,
	)

	return xs, nil
}

const executionColumns = `
	id,
	process_instance_id,
	parent_id,
	definition_id,
	activity_id,
	is_concurrent,
	is_scope,
	is_active,
	is_ended,
	revision`

// executionFields returns the scan destinations for executionColumns.
func executionFields(x *persistence.Execution) []interface{} {
	return []interface{}{
		&x.ID,
		&x.ProcessInstanceID,
		&x.ParentID,
		&x.DefinitionID,
		&x.ActivityID,
		&x.IsConcurrent,
		&x.IsScope,
		&x.IsActive,
		&x.IsEnded,
		&x.Revision,
	}
}

// createExecutionSchema creates the schema elements for executions.
func createExecutionSchema(ctx context.Context, db sqlx.DB) {
	sqlx.Exec(
		ctx,
		db,
		`CREATE TABLE IF NOT EXISTS execution (
			store_key           TEXT NOT NULL,
			id                  TEXT NOT NULL,
			process_instance_id TEXT NOT NULL,
			parent_id           TEXT NOT NULL,
			definition_id       TEXT NOT NULL,
			activity_id         TEXT NOT NULL,
			is_concurrent       INTEGER NOT NULL,
			is_scope            INTEGER NOT NULL,
			is_active           INTEGER NOT NULL,
			is_ended            INTEGER NOT NULL,
			revision            INTEGER NOT NULL DEFAULT 1,

			PRIMARY KEY (store_key, id)
		)`,
	)

	sqlx.Exec(
		ctx,
		db,
		`CREATE INDEX IF NOT EXISTS idx_execution_instance ON execution (
			store_key,
			process_instance_id
		)`,
	)
}

// dropExecutionSchema drops the schema elements for executions.
func dropExecutionSchema(ctx context.Context, db sqlx.DB) {
	sqlx.Exec(ctx, db, `DROP TABLE IF EXISTS execution`)
}
