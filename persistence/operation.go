package persistence

import (
	"context"
)

// Operation is a persistence operation that can be performed as part of an
// atomic batch.
type Operation interface {
	// AcceptVisitor calls the appropriate visit method on the given visitor.
	AcceptVisitor(context.Context, OperationVisitor) error

	entityKey() entityKey
}

// OperationVisitor visits persistence operations.
type OperationVisitor interface {
	VisitSaveExecution(context.Context, SaveExecution) error
	VisitRemoveExecution(context.Context, RemoveExecution) error
	VisitSaveVariable(context.Context, SaveVariable) error
	VisitRemoveVariable(context.Context, RemoveVariable) error
	VisitSaveJob(context.Context, SaveJob) error
	VisitRemoveJob(context.Context, RemoveJob) error
	VisitSaveIncident(context.Context, SaveIncident) error
	VisitRemoveIncident(context.Context, RemoveIncident) error
}
