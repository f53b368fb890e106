package sqlx

import (
	"context"
	"database/sql"
)

// Query executes a query on the given DB.
func Query(
	ctx context.Context,
	db DB,
	query string,
	args ...interface{},
) *sql.Rows {
	rows, err := db.QueryContext(ctx, query, args...)
	Must(err)
	return rows
}

// Each executes a query on the given DB and calls fn for each row.
func Each(
	ctx context.Context,
	db DB,
	fn func(Scanner),
	query string,
	args ...interface{},
) {
	rows := Query(ctx, db, query, args...)
	defer rows.Close()

	for rows.Next() {
		fn(rows)
	}

	Must(rows.Err())
}

// TryScan scans a single row into the given values.
//
// It returns false if there is no such row.
func TryScan(row *sql.Row, values ...interface{}) bool {
	err := row.Scan(values...)
	if err == sql.ErrNoRows {
		return false
	}

	Must(err)
	return true
}
