package postgres

import (
	"context"
	"database/sql"

	"github.com/operaton/operaton-sub059/internal/x/sqlx"
)

// Driver is an implementation of sqlpersistence.Driver for PostgreSQL.
var Driver = driver{}

type driver struct{}

// IsCompatibleWith returns nil if this driver can be used with db.
func (driver) IsCompatibleWith(ctx context.Context, db *sql.DB) (err error) {
	defer convertContextErrors(ctx, &err)

	// Verify that we're using PostgreSQL and that $1-style placeholders are
	// supported.
	var pid int64
	return db.QueryRowContext(
		ctx,
		`SELECT pg_backend_pid() WHERE 1 = $1`,
		1,
	).Scan(&pid)
}

// Begin starts a transaction.
func (driver) Begin(ctx context.Context, db *sql.DB) (_ *sql.Tx, err error) {
	defer convertContextErrors(ctx, &err)
	return db.BeginTx(ctx, nil)
}

// CreateSchema creates any SQL schema elements required by the driver.
func (driver) CreateSchema(ctx context.Context, db *sql.DB) (err error) {
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	tx := sqlx.Begin(ctx, db)
	defer tx.Rollback() // nolint:errcheck

	sqlx.Exec(ctx, tx, `CREATE SCHEMA IF NOT EXISTS operaton`)

	createExecutionSchema(ctx, tx)
	createVariableSchema(ctx, tx)
	createJobSchema(ctx, tx)
	createIncidentSchema(ctx, tx)

	sqlx.Commit(tx)
	return nil
}

// DropSchema removes any SQL schema elements created by CreateSchema().
func (driver) DropSchema(ctx context.Context, db *sql.DB) (err error) {
	defer convertContextErrors(ctx, &err)

	_, err = db.ExecContext(ctx, `DROP SCHEMA IF EXISTS operaton CASCADE`)
	return err
}
