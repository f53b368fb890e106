package command

import (
	"context"
	"errors"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/dogmatiq/marshalkit"
	"github.com/google/uuid"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/process"
	"github.com/sethvargo/go-retry"
)

// DefaultJobRetries is the default number of attempts made to execute a job.
const DefaultJobRetries = 3

// DefaultConflictRetries is the default number of times a command is retried
// by ExecuteWithRetry() after an optimistic locking failure.
const DefaultConflictRetries = 3

// DefaultConflictBackoff is the default delay before the first retry of a
// command that failed because of an optimistic locking failure.
const DefaultConflictBackoff = 10 * time.Millisecond

// Func is the body of a command.
type Func func(ctx context.Context, c *Context) error

// Executor runs commands against a data store.
type Executor struct {
	// DataStore is the data store that commands read from and write to.
	DataStore persistence.DataStore

	// Definitions is the set of deployed process definitions.
	Definitions *process.Registry

	// Marshaler is used to serialize object variables.
	Marshaler marshalkit.ValueMarshaler

	// Logger is the target for log messages about commands.
	Logger logging.Logger

	// Now returns the current time. If it is nil, time.Now() is used.
	Now func() time.Time

	// NewID returns new unique identifiers. If it is nil, random UUIDs are
	// used.
	NewID func() string

	// JobRetries is the number of attempts made to execute new jobs. If it is
	// non-positive, DefaultJobRetries is used.
	JobRetries int

	// ConflictRetries is the number of times ExecuteWithRetry() retries a
	// command after an optimistic locking failure.
	ConflictRetries uint64

	// ConflictBackoff is the delay before the first retry of a command that
	// failed because of an optimistic locking failure. The delay doubles with
	// each subsequent retry.
	ConflictBackoff time.Duration
}

// Execute runs fn within a new command context and persists its changes.
//
// If another command has modified any of the loaded state since it was loaded,
// nothing is persisted and an OptimisticLockingError is returned. If fn
// returns an error nothing is persisted.
func (e *Executor) Execute(ctx context.Context, fn Func) error {
	c := newContext(e)

	if err := fn(ctx, c); err != nil {
		return err
	}

	batch, err := c.flush(ctx)
	if err != nil {
		return err
	}

	if len(batch) == 0 {
		return nil
	}

	err = e.DataStore.Persist(ctx, batch)

	var conflict persistence.ConflictError
	if errors.As(err, &conflict) {
		return OptimisticLockingError{conflict}
	}

	return err
}

// ExecuteWithRetry runs fn as per Execute(), retrying it from the start if it
// fails with an optimistic locking failure.
//
// Each attempt loads its state afresh. If every attempt fails the last
// OptimisticLockingError is returned.
func (e *Executor) ExecuteWithRetry(ctx context.Context, fn Func) error {
	backoff := e.ConflictBackoff
	if backoff <= 0 {
		backoff = DefaultConflictBackoff
	}

	attempt := 0

	return retry.Do(
		ctx,
		retry.WithMaxRetries(
			e.ConflictRetries,
			retry.WithJitterPercent(20, retry.NewExponential(backoff)),
		),
		func(ctx context.Context) error {
			attempt++

			err := e.Execute(ctx, fn)
			if IsOptimisticLockingFailure(err) {
				logging.Debug(
					e.Logger,
					"command attempt #%d failed, retrying: %s",
					attempt,
					err,
				)
				return retry.RetryableError(err)
			}

			return err
		},
	)
}

func (e *Executor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Executor) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

func (e *Executor) jobRetries() int {
	if e.JobRetries > 0 {
		return e.JobRetries
	}
	return DefaultJobRetries
}
