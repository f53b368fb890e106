package persistence

import (
	"context"
)

// Variable is a persisted variable, owned by a single execution.
type Variable struct {
	ExecutionID       string
	ProcessInstanceID string
	Name              string

	// Type is the name of the variable's value type.
	Type string

	// MediaType is the media type of Data for object values.
	MediaType string

	Data []byte

	// Revision is the variable's current version, used to enforce optimistic
	// concurrency control.
	Revision uint64
}

// VariableRepository is an interface for reading persisted variables.
type VariableRepository interface {
	// LoadVariablesByProcessInstance loads all variables of a process instance,
	// ordered by execution ID then name.
	LoadVariablesByProcessInstance(ctx context.Context, id string) ([]Variable, error)
}

// SaveVariable is an Operation that creates or updates a variable.
type SaveVariable struct {
	// Variable is the variable to persist.
	//
	// Variable.Revision must be the revision of the variable as currently
	// persisted, otherwise an optimistic concurrency conflict occurs and the
	// entire batch of operations is rejected.
	Variable Variable
}

// AcceptVisitor calls v.VisitSaveVariable().
func (op SaveVariable) AcceptVisitor(ctx context.Context, v OperationVisitor) error {
	return v.VisitSaveVariable(ctx, op)
}

func (op SaveVariable) entityKey() entityKey {
	return entityKey{"variable", op.Variable.ExecutionID + "/" + op.Variable.Name}
}

// RemoveVariable is an Operation that removes a variable.
type RemoveVariable struct {
	// Variable is the variable to remove.
	//
	// Variable.Revision must be the revision of the variable as currently
	// persisted, otherwise an optimistic concurrency conflict occurs and the
	// entire batch of operations is rejected.
	Variable Variable
}

// AcceptVisitor calls v.VisitRemoveVariable().
func (op RemoveVariable) AcceptVisitor(ctx context.Context, v OperationVisitor) error {
	return v.VisitRemoveVariable(ctx, op)
}

func (op RemoveVariable) entityKey() entityKey {
	return entityKey{"variable", op.Variable.ExecutionID + "/" + op.Variable.Name}
}
