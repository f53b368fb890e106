package postgres

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
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`INSERT INTO operaton.execution (
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
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
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
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`UPDATE operaton.execution SET
			revision = revision + 1,
			process_instance_id = $1,
			parent_id = $2,
			definition_id = $3,
			activity_id = $4,
			is_concurrent = $5,
			is_scope = $6,
			is_active = $7,
			is_ended = $8
		WHERE store_key = $9
		AND id = $10
		AND revision = $11`,
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
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`DELETE FROM operaton.execution
		WHERE store_key = $1
		AND id = $2
		AND revision = $3`,
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
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	row := db.QueryRowContext(
		ctx,
		`SELECT `+executionColumns+`
		FROM operaton.execution
		WHERE store_key = $1
		AND id = $2`,
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
	defer convertContextErrors(ctx, &err)
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
		FROM operaton.execution
		WHERE store_key = $1
		AND process_instance_id = $2
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
		`CREATE TABLE IF NOT EXISTS operaton.execution (
			store_key           TEXT NOT NULL,
			id                  TEXT NOT NULL,
			process_instance_id TEXT NOT NULL,
			parent_id           TEXT NOT NULL,
			definition_id       TEXT NOT NULL,
			activity_id         TEXT NOT NULL,
			is_concurrent       BOOLEAN NOT NULL,
			is_scope            BOOLEAN NOT NULL,
			is_active           BOOLEAN NOT NULL,
			is_ended            BOOLEAN NOT NULL,
			revision            BIGINT NOT NULL DEFAULT 1,

			PRIMARY KEY (store_key, id)
		)`,
	)

	sqlx.Exec(
		ctx,
		db,
		`CREATE INDEX IF NOT EXISTS idx_execution_instance ON operaton.execution (
			store_key,
			process_instance_id
		)`,
	)
}
