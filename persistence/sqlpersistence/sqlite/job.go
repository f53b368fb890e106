package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/operaton/operaton-sub059/internal/x/sqlx"
	"github.com/operaton/operaton-sub059/persistence"
)

// InsertJob inserts a job.
//
// It returns false if the row already exists.
func (driver) InsertJob(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	j persistence.Job,
) (_ bool, err error) {
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`INSERT INTO job (
			store_key,
			id,
			type,
			due_date,
			execution_id,
			process_instance_id,
			definition_id,
			activity_id,
			payload,
			retries,
			lock_owner,
			lock_expires_at,
			exclusive,
			priority,
			suspended,
			exception_message,
			created_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		) ON CONFLICT (store_key, id) DO NOTHING`,
		k,
		j.ID,
		j.Type,
		sqlx.MarshalTime(j.DueDate),
		j.ExecutionID,
		j.ProcessInstanceID,
		j.DefinitionID,
		j.ActivityID,
		j.Payload,
		j.Retries,
		j.LockOwner,
		sqlx.MarshalTime(j.LockExpiresAt),
		j.Exclusive,
		j.Priority,
		j.Suspended,
		j.ExceptionMessage,
		sqlx.MarshalTime(j.CreatedAt),
	), nil
}

// UpdateJob updates a job.
//
// It returns false if the row does not exist or j.Revision is not current.
func (driver) UpdateJob(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	j persistence.Job,
) (_ bool, err error) {
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`UPDATE job SET
			revision = revision + 1,
			type = ?,
			due_date = ?,
			execution_id = ?,
			process_instance_id = ?,
			definition_id = ?,
			activity_id = ?,
			payload = ?,
			retries = ?,
			lock_owner = ?,
			lock_expires_at = ?,
			exclusive = ?,
			priority = ?,
			suspended = ?,
			exception_message = ?,
			created_at = ?
		WHERE store_key = ?
		AND id = ?
		AND revision = ?`,
		j.Type,
		sqlx.MarshalTime(j.DueDate),
		j.ExecutionID,
		j.ProcessInstanceID,
		j.DefinitionID,
		j.ActivityID,
		j.Payload,
		j.Retries,
		j.LockOwner,
		sqlx.MarshalTime(j.LockExpiresAt),
		j.Exclusive,
		j.Priority,
		j.Suspended,
		j.ExceptionMessage,
		sqlx.MarshalTime(j.CreatedAt),
		k,
		j.ID,
		j.Revision,
	), nil
}

// DeleteJob deletes a job.
//
// It returns false if the row does not exist or j.Revision is not current.
func (driver) DeleteJob(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	j persistence.Job,
) (_ bool, err error) {
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`DELETE FROM job
		WHERE store_key = ?
		AND id = ?
		AND revision = ?`,
		k,
		j.ID,
		j.Revision,
	), nil
}

// SelectJob selects a job by its ID.
func (driver) SelectJob(
	ctx context.Context,
	db *sql.DB,
	k, id string,
) (j persistence.Job, ok bool, err error) {
	defer sqlx.Recover(&err)

	row := db.QueryRowContext(
		ctx,
		`SELECT `+jobColumns+`
		FROM job
		WHERE store_key = ?
		AND id = ?`,
		k,
		id,
	)

	var s jobScanner
	if sqlx.TryScan(row, s.fields()...) {
		return s.job(), true, nil
	}

	return j, false, nil
}

// SelectJobs selects every job.
func (driver) SelectJobs(
	ctx context.Context,
	db *sql.DB,
	k string,
) ([]persistence.Job, error) {
	return selectJobs(
		ctx,
		db,
		`SELECT `+jobColumns+`
		FROM job
		WHERE store_key = ?
		ORDER BY created_at, id`,
		k,
	)
}

// SelectJobsByProcessInstance selects the jobs of a process instance.
func (driver) SelectJobsByProcessInstance(
	ctx context.Context,
	db *sql.DB,
	k, id string,
) ([]persistence.Job, error) {
	return selectJobs(
		ctx,
		db,
		`SELECT `+jobColumns+`
		FROM job
		WHERE store_key = ?
		AND process_instance_id = ?
		ORDER BY created_at, id`,
		k,
		id,
	)
}

// SelectAcquirableJobs selects up to n jobs that are acquirable at the given
// time, in acquisition order.
func (driver) SelectAcquirableJobs(
	ctx context.Context,
	db *sql.DB,
	k string,
	now time.Time,
	n int,
) ([]persistence.Job, error) {
	t := sqlx.MarshalTime(now)

	return selectJobs(
		ctx,
		db,
		`SELECT `+jobColumns+`
		FROM job
		WHERE store_key = ?
		AND due_date <= ?
		AND suspended = 0
		AND retries > 0
		AND (lock_owner = '' OR lock_expires_at <= ?)
		ORDER BY priority DESC, due_date, created_at, id
		LIMIT ?`,
		k,
		t,
		t,
		n,
	)
}

func selectJobs(
	ctx context.Context,
	db *sql.DB,
	query string,
	args ...interface{},
) (jobs []persistence.Job, err error) {
	defer sqlx.Recover(&err)

	sqlx.Each(
		ctx,
		db,
		func(row sqlx.Scanner) {
			var s jobScanner
			sqlx.Must(row.Scan(s.fields()...))
			jobs = append(jobs, s.job())
		},
		query,
		args...,
	)

	return jobs, nil
}

const jobColumns = `
	id,
	type,
	due_date,
	execution_id,
	process_instance_id,
	definition_id,
	activity_id,
	payload,
	retries,
	lock_owner,
	lock_expires_at,
	exclusive,
	priority,
	suspended,
	exception_message,
	created_at,
	revision`

// jobScanner holds the scan destinations for jobColumns.
type jobScanner struct {
	j                                 persistence.Job
	dueDate, lockExpiresAt, createdAt int64
}

func (s *jobScanner) fields() []interface{} {
	return []interface{}{
		&s.j.ID,
		&s.j.Type,
		&s.dueDate,
		&s.j.ExecutionID,
		&s.j.ProcessInstanceID,
		&s.j.DefinitionID,
		&s.j.ActivityID,
		&s.j.Payload,
		&s.j.Retries,
		&s.j.LockOwner,
		&s.lockExpiresAt,
		&s.j.Exclusive,
		&s.j.Priority,
		&s.j.Suspended,
		&s.j.ExceptionMessage,
		&s.createdAt,
		&s.j.Revision,
	}
}

func (s *jobScanner) job() persistence.Job {
	j := s.j
	j.DueDate = sqlx.UnmarshalTime(s.dueDate)
	j.LockExpiresAt = sqlx.UnmarshalTime(s.lockExpiresAt)
	j.CreatedAt = sqlx.UnmarshalTime(s.createdAt)
	return j
}

// createJobSchema creates the schema elements for jobs.
func createJobSchema(ctx context.Context, db sqlx.DB) {
	sqlx.Exec(
		ctx,
		db,
		`CREATE TABLE IF NOT EXISTS job (
			store_key           TEXT NOT NULL,
			id                  TEXT NOT NULL,
			type                TEXT NOT NULL,
			due_date            INTEGER NOT NULL,
			execution_id        TEXT NOT NULL,
			process_instance_id TEXT NOT NULL,
			definition_id       TEXT NOT NULL,
			activity_id         TEXT NOT NULL,
			payload             BLOB,
			retries             INTEGER NOT NULL,
			lock_owner          TEXT NOT NULL,
			lock_expires_at     INTEGER NOT NULL,
			exclusive           INTEGER NOT NULL,
			priority            INTEGER NOT NULL,
			suspended           INTEGER NOT NULL,
			exception_message   TEXT NOT NULL,
			created_at          INTEGER NOT NULL,
			revision            INTEGER NOT NULL DEFAULT 1,

			PRIMARY KEY (store_key, id)
		)`,
	)

	sqlx.Exec(
		ctx,
		db,
		`CREATE INDEX IF NOT EXISTS idx_job_instance ON job (
			store_key,
			process_instance_id
		)`,
	)

	sqlx.Exec(
		ctx,
		db,
		`CREATE INDEX IF NOT EXISTS idx_job_acquisition ON job (
			store_key,
			priority DESC,
			due_date
		)`,
	)
}

// dropJobSchema drops the schema elements for jobs.
func dropJobSchema(ctx context.Context, db sqlx.DB) {
	sqlx.Exec(ctx, db, `DROP TABLE IF EXISTS job`)
}
