package boltpersistence

import (
	"context"

	"github.com/operaton/operaton-sub059/internal/x/bboltx"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/boltpersistence/internal/pb"
	"go.etcd.io/bbolt"
)

var (
	// incidentBucketKey is the key for the bucket containing incidents.
	//
	// The keys are incident IDs. The values are pb.Incident values
	// marshaled using Protocol Buffers.
	incidentBucketKey = []byte("incident")
)

// LoadIncidents loads every incident.
func (ds *dataStore) LoadIncidents(ctx context.Context) ([]persistence.Incident, error) {
	return ds.loadIncidents(func(persistence.Incident) bool { return true })
}

// LoadIncidentsByProcessInstance loads the incidents of a process instance.
func (ds *dataStore) LoadIncidentsByProcessInstance(
	ctx context.Context,
	id string,
) ([]persistence.Incident, error) {
	return ds.loadIncidents(func(i persistence.Incident) bool {
		return i.ProcessInstanceID == id
	})
}

// LoadIncidentsByJob loads the incidents of a job.
func (ds *dataStore) LoadIncidentsByJob(
	ctx context.Context,
	id string,
) ([]persistence.Incident, error) {
	return ds.loadIncidents(func(i persistence.Incident) bool {
		return i.JobID == id
	})
}

func (ds *dataStore) loadIncidents(pred func(persistence.Incident) bool) (incidents []persistence.Incident, err error) {
	err = ds.view(func(root *bbolt.Bucket) {
		rec := &pb.Incident{}
		each(root, rec, func() {
			i := unmarshalIncident(rec)

			if pred(i) {
				incidents = append(incidents, i)
			}
		}, incidentBucketKey)
	})

	persistence.SortIncidents(incidents)

	return incidents, err
}

// VisitSaveIncident applies the changes in a "SaveIncident" operation to the
// database.
func (c *committer) VisitSaveIncident(
	ctx context.Context,
	op persistence.SaveIncident,
) error {
	existing := &pb.Incident{}
	get(c.root, existing, incidentBucketKey, []byte(op.Incident.ID))

	if op.Incident.Revision != existing.GetRevision() {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	i := op.Incident
	i.Revision++
	put(c.root, marshalIncident(i), incidentBucketKey, []byte(i.ID))

	return nil
}

// VisitRemoveIncident applies the changes in a "RemoveIncident" operation to
// the database.
func (c *committer) VisitRemoveIncident(
	ctx context.Context,
	op persistence.RemoveIncident,
) error {
	existing := &pb.Incident{}
	ok := get(c.root, existing, incidentBucketKey, []byte(op.Incident.ID))

	if !ok || op.Incident.Revision != existing.GetRevision() {
		return persistence.ConflictError{
			Cause: op,
		}
	}

	bboltx.DeletePath(c.root, incidentBucketKey, []byte(op.Incident.ID))

	return nil
}
