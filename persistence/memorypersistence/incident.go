package memorypersistence

import (
	"context"

	"github.com/operaton/operaton-sub059/persistence"
)

// LoadIncidents loads every incident.
func (ds *dataStore) LoadIncidents(_ context.Context) ([]persistence.Incident, error) {
	return ds.loadIncidents(idIndex+"_prefix", "")
}

// LoadIncidentsByProcessInstance loads the incidents of a process instance.
func (ds *dataStore) LoadIncidentsByProcessInstance(
	_ context.Context,
	id string,
) ([]persistence.Incident, error) {
	return ds.loadIncidents(instanceIndex, id)
}

// LoadIncidentsByJob loads the incidents of a job.
func (ds *dataStore) LoadIncidentsByJob(
	_ context.Context,
	id string,
) ([]persistence.Incident, error) {
	return ds.loadIncidents(jobIndex, id)
}

func (ds *dataStore) loadIncidents(index string, args ...interface{}) ([]persistence.Incident, error) {
	txn := ds.db.Txn(false)

	var incidents []persistence.Incident
	for _, raw := range all(txn, incidentTable, index, args...) {
		incidents = append(incidents, *raw.(*persistence.Incident))
	}

	persistence.SortIncidents(incidents)

	return incidents, nil
}

// VisitSaveIncident applies the changes in a "SaveIncident" operation to the
// database.
func (c *committer) VisitSaveIncident(
	_ context.Context,
	op persistence.SaveIncident,
) error {
	var rev uint64
	if raw := first(c.txn, incidentTable, op.Incident.ID); raw != nil {
		rev = raw.(*persistence.Incident).Revision
	}

	if op.Incident.Revision != rev {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	i := op.Incident
	i.Revision++
	insert(c.txn, incidentTable, &i)

	return nil
}

// VisitRemoveIncident applies the changes in a "RemoveIncident" operation to
// the database.
func (c *committer) VisitRemoveIncident(
	_ context.Context,
	op persistence.RemoveIncident,
) error {
	raw := first(c.txn, incidentTable, op.Incident.ID)

	if raw == nil || raw.(*persistence.Incident).Revision != op.Incident.Revision {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	remove(c.txn, incidentTable, raw)

	return nil
}
