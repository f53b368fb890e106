package persistence

import (
	"context"
)

// Execution is the persisted state of a single execution.
type Execution struct {
	ID                string
	ProcessInstanceID string

	// ParentID is the ID of the parent execution, or empty for the root.
	ParentID string

	DefinitionID string
	ActivityID   string

	IsConcurrent bool
	IsScope      bool
	IsActive     bool
	IsEnded      bool

	// Revision is the execution's current version, used to enforce optimistic
	// concurrency control.
	Revision uint64
}

// ExecutionRepository is an interface for reading persisted executions.
type ExecutionRepository interface {
	// LoadExecution loads the execution with the given ID.
	//
	// ok is false if the execution does not exist.
	LoadExecution(ctx context.Context, id string) (x Execution, ok bool, err error)

	// LoadExecutionsByProcessInstance loads all executions of a process
	// instance, ordered by ID.
	LoadExecutionsByProcessInstance(ctx context.Context, id string) ([]Execution, error)
}

// SaveExecution is an Operation that creates or updates an execution.
type SaveExecution struct {
	// Execution is the execution to persist.
	//
	// Execution.Revision must be the revision of the execution as currently
	// persisted, otherwise an optimistic concurrency conflict occurs and the
	// entire batch of operations is rejected.
	Execution Execution
}

// AcceptVisitor calls v.VisitSaveExecution().
func (op SaveExecution) AcceptVisitor(ctx context.Context, v OperationVisitor) error {
	return v.VisitSaveExecution(ctx, op)
}

func (op SaveExecution) entityKey() entityKey {
	return entityKey{"execution", op.Execution.ID}
}

// RemoveExecution is an Operation that removes an execution.
//
// The execution's variables are NOT removed, they must be removed using
// RemoveVariable operations.
type RemoveExecution struct {
	// Execution is the execution to remove.
	//
	// Execution.Revision must be the revision of the execution as currently
	// persisted, otherwise an optimistic concurrency conflict occurs and the
	// entire batch of operations is rejected.
	Execution Execution
}

// AcceptVisitor calls v.VisitRemoveExecution().
func (op RemoveExecution) AcceptVisitor(ctx context.Context, v OperationVisitor) error {
	return v.VisitRemoveExecution(ctx, op)
}

func (op RemoveExecution) entityKey() entityKey {
	return entityKey{"execution", op.Execution.ID}
}
