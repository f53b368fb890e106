package sqlx

import (
	"context"
	"database/sql"
)

// Begin starts the transaction used to create a driver's schema.
//
// It panics with the error if the transaction can not be started. Callers
// recover it using Recover().
func Begin(ctx context.Context, db *sql.DB) *sql.Tx {
	tx, err := db.BeginTx(ctx, nil)
	Must(err)
	return tx
}

// Commit commits tx, panicking if it fails.
func Commit(tx *sql.Tx) {
	Must(tx.Commit())
}
