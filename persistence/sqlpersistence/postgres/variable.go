package postgres

import (
	"context"
	"database/sql"

	"github.com/operaton/operaton-sub059/internal/x/sqlx"
	"github.com/operaton/operaton-sub059/persistence"
)

// InsertVariable inserts a variable.
//
// It returns false if the row already exists.
func (driver) InsertVariable(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	v persistence.Variable,
) (_ bool, err error) {
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`INSERT INTO operaton.variable (
			store_key,
			execution_id,
			name,
			process_instance_id,
			type,
			media_type,
			data
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) ON CONFLICT (store_key, execution_id, name) DO NOTHING`,
		k,
		v.ExecutionID,
		v.Name,
		v.ProcessInstanceID,
		v.Type,
		v.MediaType,
		v.Data,
	), nil
}

// UpdateVariable updates a variable.
//
// It returns false if the row does not exist or v.Revision is not current.
func (driver) UpdateVariable(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	v persistence.Variable,
) (_ bool, err error) {
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`UPDATE operaton.variable SET
			revision = revision + 1,
			process_instance_id = $1,
			type = $2,
			media_type = $3,
			data = $4
		WHERE store_key = $5
		AND execution_id = $6
		AND name = $7
		AND revision = $8`,
		v.ProcessInstanceID,
		v.Type,
		v.MediaType,
		v.Data,
		k,
		v.ExecutionID,
		v.Name,
		v.Revision,
	), nil
}

// DeleteVariable deletes a variable.
//
// It returns false if the row does not exist or v.Revision is not current.
func (driver) DeleteVariable(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	v persistence.Variable,
) (_ bool, err error) {
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`DELETE FROM operaton.variable
		WHERE store_key = $1
		AND execution_id = $2
		AND name = $3
		AND revision = $4`,
		k,
		v.ExecutionID,
		v.Name,
		v.Revision,
	), nil
}

// SelectVariablesByProcessInstance selects the variables of a process
// instance.
func (driver) SelectVariablesByProcessInstance(
	ctx context.Context,
	db *sql.DB,
	k, id string,
) (vs []persistence.Variable, err error) {
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	sqlx.Each(
		ctx,
		db,
		func(s sqlx.Scanner) {
			var v persistence.Variable
			sqlx.Must(s.Scan(
				&v.ExecutionID,
				&v.Name,
				&v.ProcessInstanceID,
				&v.Type,
				&v.MediaType,
				&v.Data,
				&v.Revision,
			))
			vs = append(vs, v)
		},
		`SELECT
			execution_id,
			name,
			process_instance_id,
			type,
			media_type,
			data,
			revision
		FROM operaton.variable
		WHERE store_key = $1
		AND process_instance_id = $2
		ORDER BY execution_id, name`,
		k,
		id,
	)

	return vs, nil
}

// createVariableSchema creates the schema elements for variables.
func createVariableSchema(ctx context.Context, db sqlx.DB) {
	sqlx.Exec(
		ctx,
		db,
		`CREATE TABLE IF NOT EXISTS operaton.variable (
			store_key           TEXT NOT NULL,
			execution_id        TEXT NOT NULL,
			name                TEXT NOT NULL,
			process_instance_id TEXT NOT NULL,
			type                TEXT NOT NULL,
			media_type          TEXT NOT NULL,
			data                BYTEA,
			revision            BIGINT NOT NULL DEFAULT 1,

			PRIMARY KEY (store_key, execution_id, name)
		)`,
	)

	sqlx.Exec(
		ctx,
		db,
		`CREATE INDEX IF NOT EXISTS idx_variable_instance ON operaton.variable (
			store_key,
			process_instance_id
		)`,
	)
}
