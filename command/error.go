package command

import (
	"errors"
	"fmt"

	"github.com/operaton/operaton-sub059/persistence"
)

// OptimisticLockingError indicates that a command could not be committed
// because another command modified the same state after it was loaded.
type OptimisticLockingError struct {
	Conflict persistence.ConflictError
}

func (e OptimisticLockingError) Error() string {
	return fmt.Sprintf("optimistic locking failure: %s", e.Conflict)
}

func (e OptimisticLockingError) Unwrap() error {
	return e.Conflict
}

// IsOptimisticLockingFailure returns true if err is, or wraps, an
// OptimisticLockingError.
func IsOptimisticLockingFailure(err error) bool {
	var e OptimisticLockingError
	return errors.As(err, &e)
}
