package sqlpersistence

import (
	"context"
	"database/sql"
)

// CreateSchema creates the tables that hold executions, variables, jobs and
// incidents, using the driver that is compatible with db.
//
// It is safe to call when the tables already exist.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	d, err := selectDriver(ctx, db)
	if err != nil {
		return err
	}

	return d.CreateSchema(ctx, db)
}

// DropSchema drops the tables created by CreateSchema(), discarding every
// process instance stored in db.
//
// It is safe to call when the tables do not exist.
func DropSchema(ctx context.Context, db *sql.DB) error {
	d, err := selectDriver(ctx, db)
	if err != nil {
		return err
	}

	return d.DropSchema(ctx, db)
}
