package postgres

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
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`INSERT INTO operaton.job (
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
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
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
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`UPDATE operaton.job SET
			revision = revision + 1,
			type = $1,
			due_date = $2,
			execution_id = $3,
			process_instance_id = $4,
			definition_id = $5,
			activity_id = $6,
			payload = $7,
			retries = $8,
			lock_owner = $9,
			lock_expires_at = $10,
			exclusive = $11,
			priority = $12,
			suspended = $13,
			exception_message = $14,
			created_at = $15
		WHERE store_key = $16
		AND id = $17
		AND revision = $18`,
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
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`DELETE FROM operaton.job
		WHERE store_key = $1
		AND id = $2
		AND revision = $3`,
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
	defer convertContextErrors(ctx, &err)
	defer sqlx.Recover(&err)

	row := db.QueryRowContext(
		ctx,
		`SELECT `+jobColumns+`
		FROM operaton.job
		WHERE store_key = $1
		AND id = $2`,
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
		FROM operaton.job
		WHERE store_key = $1
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
		FROM operaton.job
		WHERE store_key = $1
		AND process_instance_id = $2
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
		FROM operaton.job
		WHERE store_key = $1
		AND due_date <= $2
		AND suspended = FALSE
		AND retries > 0
		AND (lock_owner = '' OR lock_expires_at <= $3)
		ORDER BY priority DESC, due_date, created_at, id
		LIMIT $4`,
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
	defer convertContextErrors(ctx, &err)
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
		`CREATE TABLE IF NOT EXISTS operaton.job (
			store_key           TEXT NOT NULL,
			id                  TEXT NOT NULL,
			type                TEXT NOT NULL,
			due_date            BIGINT NOT NULL,
			execution_id        TEXT NOT NULL,
			process_instance_id TEXT NOT NULL,
			definition_id       TEXT NOT NULL,
			activity_id         TEXT NOT NULL,
			payload             BYTEA,
			retries             BIGINT NOT NULL,
			lock_owner          TEXT NOT NULL,
			lock_expires_at     BIGINT NOT NULL,
			exclusive           BOOLEAN NOT NULL,
			priority            BIGINT NOT NULL,
			suspended           BOOLEAN NOT NULL,
			exception_message   TEXT NOT NULL,
			created_at          BIGINT NOT NULL,
			revision            BIGINT NOT NULL DEFAULT 1,

			PRIMARY KEY (store_key, id)
		)`,
	)

	sqlx.Exec(
		ctx,
		db,
		`CREATE INDEX IF NOT EXISTS idx_job_instance ON operaton.job (
			store_key,
			process_instance_id
		)`,
	)

	sqlx.Exec(
		ctx,
		db,
		`CREATE INDEX IF NOT EXISTS idx_job_acquisition ON operaton.job (
			store_key,
			priority DESC,
			due_date
		)`,
	)
}
