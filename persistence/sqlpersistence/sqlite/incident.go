package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/operaton/operaton-sub059/internal/x/sqlx"
	"github.com/operaton/operaton-sub059/persistence"
)

// InsertIncident inserts an incident.
//
// It returns false if the row already exists.
func (driver) InsertIncident(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	i persistence.Incident,
) (_ bool, err error) {
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`INSERT INTO incident (
			store_key,
			id,
			job_id,
			process_instance_id,
			execution_id,
			activity_id,
			message,
			created_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?
		) ON CONFLICT (store_key, id) DO NOTHING`,
		k,
		i.ID,
		i.JobID,
		i.ProcessInstanceID,
		i.ExecutionID,
		i.ActivityID,
		i.Message,
		sqlx.MarshalTime(i.CreatedAt),
	), nil
}

// UpdateIncident updates an incident.
//
// It returns false if the row does not exist or i.Revision is not current.
func (driver) UpdateIncident(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	i persistence.Incident,
) (_ bool, err error) {
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`UPDATE incident SET
			revision = revision + 1,
			job_id = ?,
			process_instance_id = ?,
			execution_id = ?,
			activity_id = ?,
			message = ?,
			created_at = ?
		WHERE store_key = ?
		AND id = ?
		AND revision = ?`,
		i.JobID,
		i.ProcessInstanceID,
		i.ExecutionID,
		i.ActivityID,
		i.Message,
		sqlx.MarshalTime(i.CreatedAt),
		k,
		i.ID,
		i.Revision,
	), nil
}

// DeleteIncident deletes an incident.
//
// It returns false if the row does not exist or i.Revision is not current.
func (driver) DeleteIncident(
	ctx context.Context,
	tx *sql.Tx,
	k string,
	i persistence.Incident,
) (_ bool, err error) {
	defer sqlx.Recover(&err)

	return sqlx.TryExecRow(
		ctx,
		tx,
		`DELETE FROM incident
		WHERE store_key = ?
		AND id = ?
		AND revision = ?`,
		k,
		i.ID,
		i.Revision,
	), nil
}

// SelectIncidents selects incidents.
//
// If column is non-empty only incidents where column is equal to value are
// selected.
func (driver) SelectIncidents(
	ctx context.Context,
	db *sql.DB,
	k string,
	column, value string,
) (is []persistence.Incident, err error) {
	defer sqlx.Recover(&err)

	query := `SELECT
			id,
			job_id,
			process_instance_id,
			execution_id,
			activity_id,
			message,
			created_at,
			revision
		FROM incident
		WHERE store_key = ?`
	args := []interface{}{k}

	switch column {
	case "":
	case "process_instance_id", "job_id":
		query += ` AND ` + column + ` = ?`
		args = append(args, value)
	default:
		panic(fmt.Sprintf("unsupported incident column '%s'", column))
	}

	sqlx.Each(
		ctx,
		db,
		func(s sqlx.Scanner) {
			var (
				i         persistence.Incident
				createdAt int64
			)

			sqlx.Must(s.Scan(
				&i.ID,
				&i.JobID,
				&i.ProcessInstanceID,
				&i.ExecutionID,
				&i.ActivityID,
				&i.Message,
				&createdAt,
				&i.Revision,
			))

			i.CreatedAt = sqlx.UnmarshalTime(createdAt)
			is = append(is, i)
		},
		query+` ORDER BY created_at, id`,
		args...,
	)

	return is, nil
}

// createIncidentSchema creates the schema elements for incidents.
func createIncidentSchema(ctx context.Context, db sqlx.DB) {
	sqlx.Exec(
		ctx,
		db,
		`CREATE TABLE IF NOT EXISTS incident (
			store_key           TEXT NOT NULL,
			id                  TEXT NOT NULL,
			job_id              TEXT NOT NULL,
			process_instance_id TEXT NOT NULL,
			execution_id        TEXT NOT NULL,
			activity_id         TEXT NOT NULL,
			message             TEXT NOT NULL,
			created_at          INTEGER NOT NULL,
			revision            INTEGER NOT NULL DEFAULT 1,

			PRIMARY KEY (store_key, id)
		)`,
	)

	sqlx.Exec(
		ctx,
		db,
		`CREATE INDEX IF NOT EXISTS idx_incident_job ON incident (
			store_key,
			job_id
		)`,
	)
}

// dropIncidentSchema drops the schema elements for incidents.
func dropIncidentSchema(ctx context.Context, db sqlx.DB) {
	sqlx.Exec(ctx, db, `DROP TABLE IF EXISTS incident`)
}
