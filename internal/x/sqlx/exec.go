package sqlx

import (
	"context"
	"database/sql"
)

// Exec executes a statement on the given DB.
func Exec(
	ctx context.Context,
	db DB,
	query string,
	args ...interface{},
) sql.Result {
	res, err := db.ExecContext(ctx, query, args...)
	Must(err)
	return res
}

// TryExecRow executes a statement on the given DB and reports whether exactly
// one row was affected.
func TryExecRow(
	ctx context.Context,
	db DB,
	query string,
	args ...interface{},
) bool {
	res := Exec(ctx, db, query, args...)

	n, err := res.RowsAffected()
	Must(err)

	return n == 1
}
