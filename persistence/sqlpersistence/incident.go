package sqlpersistence

import (
	"context"
	"database/sql"

	"github.com/operaton/operaton-sub059/persistence"
)

// IncidentDriver is the subset of the Driver interface that is concerned with
// incidents.
type IncidentDriver interface {
	// InsertIncident inserts an incident.
	//
	// It returns false if the row already exists.
	InsertIncident(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		i persistence.Incident,
	) (bool, error)

	// UpdateIncident updates an incident.
	//
	// It returns false if the row does not exist or i.Revision is not current.
	UpdateIncident(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		i persistence.Incident,
	) (bool, error)

	// DeleteIncident deletes an incident.
	//
	// It returns false if the row does not exist or i.Revision is not current.
	DeleteIncident(
		ctx context.Context,
		tx *sql.Tx,
		k string,
		i persistence.Incident,
	) (bool, error)

	// SelectIncidents selects incidents.
	//
	// If column is non-empty only incidents where column is equal to value are
	// selected. column must be one of "process_instance_id" or "job_id".
	SelectIncidents(
		ctx context.Context,
		db *sql.DB,
		k string,
		column, value string,
	) ([]persistence.Incident, error)
}

// LoadIncidents loads every incident.
func (ds *dataStore) LoadIncidents(ctx context.Context) ([]persistence.Incident, error) {
	return ds.loadIncidents(ctx, "", "")
}

// LoadIncidentsByProcessInstance loads the incidents of a process instance.
func (ds *dataStore) LoadIncidentsByProcessInstance(
	ctx context.Context,
	id string,
) ([]persistence.Incident, error) {
	return ds.loadIncidents(ctx, "process_instance_id", id)
}

// LoadIncidentsByJob loads the incidents raised by a job.
func (ds *dataStore) LoadIncidentsByJob(
	ctx context.Context,
	id string,
) ([]persistence.Incident, error) {
	return ds.loadIncidents(ctx, "job_id", id)
}

func (ds *dataStore) loadIncidents(
	ctx context.Context,
	column, value string,
) ([]persistence.Incident, error) {
	is, err := ds.driver.SelectIncidents(ctx, ds.db, ds.key, column, value)
	persistence.SortIncidents(is)
	return is, err
}

// VisitSaveIncident applies the changes in a "SaveIncident" operation to the
// database.
func (c *committer) VisitSaveIncident(
	ctx context.Context,
	op persistence.SaveIncident,
) error {
	fn := c.driver.InsertIncident
	if op.Incident.Revision > 0 {
		fn = c.driver.UpdateIncident
	}

	ok, err := fn(ctx, c.tx, c.key, op.Incident)
	return guard(ok, err, op)
}

// VisitRemoveIncident applies the changes in a "RemoveIncident" operation to
// the database.
func (c *committer) VisitRemoveIncident(
	ctx context.Context,
	op persistence.RemoveIncident,
) error {
	ok, err := c.driver.DeleteIncident(ctx, c.tx, c.key, op.Incident)
	return guard(ok, err, op)
}
