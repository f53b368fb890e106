package persistence

import (
	"context"
	"time"
)

// Incident records a job that has exhausted its retries.
type Incident struct {
	ID                string
	JobID             string
	ProcessInstanceID string
	ExecutionID       string
	ActivityID        string
	Message           string
	CreatedAt         time.Time

	// Revision is the incident's current version, used to enforce optimistic
	// concurrency control.
	Revision uint64
}

// IncidentRepository is an interface for reading persisted incidents.
type IncidentRepository interface {
	// LoadIncidents loads every incident, ordered by creation time.
	LoadIncidents(ctx context.Context) ([]Incident, error)

	// LoadIncidentsByProcessInstance loads the incidents of a process instance,
	// ordered by creation time.
	LoadIncidentsByProcessInstance(ctx context.Context, id string) ([]Incident, error)

	// LoadIncidentsByJob loads the incidents of a job, ordered by creation
	// time.
	LoadIncidentsByJob(ctx context.Context, id string) ([]Incident, error)
}

// SaveIncident is an Operation that creates or updates an incident.
type SaveIncident struct {
	// Incident is the incident to persist.
	//
	// Incident.Revision must be the revision of the incident as currently
	// persisted, otherwise an optimistic concurrency conflict occurs and the
	// entire batch of operations is rejected.
	Incident Incident
}

// AcceptVisitor calls v.VisitSaveIncident().
func (op SaveIncident) AcceptVisitor(ctx context.Context, v OperationVisitor) error {
	return v.VisitSaveIncident(ctx, op)
}

func (op SaveIncident) entityKey() entityKey {
	return entityKey{"incident", op.Incident.ID}
}

// RemoveIncident is an Operation that removes an incident.
type RemoveIncident struct {
	// Incident is the incident to remove.
	//
	// Incident.Revision must be the revision of the incident as currently
	// persisted, otherwise an optimistic concurrency conflict occurs and the
	// entire batch of operations is rejected.
	Incident Incident
}

// AcceptVisitor calls v.VisitRemoveIncident().
func (op RemoveIncident) AcceptVisitor(ctx context.Context, v OperationVisitor) error {
	return v.VisitRemoveIncident(ctx, op)
}

func (op RemoveIncident) entityKey() entityKey {
	return entityKey{"incident", op.Incident.ID}
}
