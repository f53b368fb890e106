package sqlite

import (
	"context"
	"database/sql"

	"github.com/operaton/operaton-sub059/internal/x/sqlx"
)

// Driver is an implementation of sqlpersistence.Driver for SQLite.
var Driver = driver{}

type driver struct{}

// IsCompatibleWith returns nil if this driver can be used with db.
func (driver) IsCompatibleWith(ctx context.Context, db *sql.DB) error {
	var version string
	return db.QueryRowContext(
		ctx,
		`SELECT sqlite_version() WHERE 1 = ?`,
		1,
	).Scan(&version)
}

// Begin starts a transaction.
func (driver) Begin(ctx context.Context, db *sql.DB) (*sql.Tx, error) {
	return db.BeginTx(ctx, nil)
}

// CreateSchema creates the schema elements required by the SQLite driver.
func (driver) CreateSchema(ctx context.Context, db *sql.DB) (err error) {
	defer sqlx.Recover(&err)

	tx := sqlx.Begin(ctx, db)
	defer tx.Rollback() // nolint:errcheck

	createExecutionSchema(ctx, tx)
	createVariableSchema(ctx, tx)
	createJobSchema(ctx, tx)
	createIncidentSchema(ctx, tx)

	sqlx.Commit(tx)
	return nil
}

// DropSchema drops the schema elements required by the SQLite driver.
func (driver) DropSchema(ctx context.Context, db *sql.DB) (err error) {
	defer sqlx.Recover(&err)

	dropExecutionSchema(ctx, db)
	dropVariableSchema(ctx, db)
	dropJobSchema(ctx, db)
	dropIncidentSchema(ctx, db)

	return nil
}
