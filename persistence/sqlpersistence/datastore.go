package sqlpersistence

import (
	"context"
	"database/sql"
	"sync"

	"github.com/operaton/operaton-sub059/persistence"
)

// dataStore is an implementation of persistence.DataStore for SQL databases.
type dataStore struct {
	db     *sql.DB
	driver Driver
	key    string

	closeM  sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	release func() error
}

// newDataStore returns a new data-store.
func newDataStore(
	db *sql.DB,
	d Driver,
	k string,
	r func() error,
) *dataStore {
	ctx, cancel := context.WithCancel(context.Background())

	return &dataStore{
		db:      db,
		driver:  d,
		key:     k,
		ctx:     ctx,
		cancel:  cancel,
		release: r,
	}
}

// Persist commits a batch of operations atomically.
//
// If any one of the operations causes an optimistic concurrency conflict
// the entire batch is aborted and a ConflictError is returned.
func (ds *dataStore) Persist(
	ctx context.Context,
	b persistence.Batch,
) error {
	b.MustValidate()

	return ds.withDB(
		ctx,
		func(ctx context.Context, db *sql.DB) error {
			tx, err := ds.driver.Begin(ctx, db)
			if err != nil {
				return err
			}
			defer tx.Rollback() // nolint:errcheck

			c := &committer{
				tx:     tx,
				driver: ds.driver,
				key:    ds.key,
			}

			for _, op := range b {
				if err := op.AcceptVisitor(ctx, c); err != nil {
					return err
				}
			}

			return tx.Commit()
		},
	)
}

// Close closes the data store.
//
// Closing a data-store causes any future calls to Persist() to return
// ErrDataStoreClosed. Any in-flight calls to Persist() are canceled.
func (ds *dataStore) Close() error {
	ds.closeM.Lock()
	defer ds.closeM.Unlock()

	if ds.ctx.Err() != nil {
		return persistence.ErrDataStoreClosed
	}

	ds.cancel()

	return ds.release()
}

// withDB calls fn with the database that should be used by this data-store.
//
// It returns an error if the data-store is already closed. The context passed
// to fn is canceled if the data-store is closed during execution.
func (ds *dataStore) withDB(
	ctx context.Context,
	fn func(ctx context.Context, db *sql.DB) error,
) error {
	if ds.ctx.Err() != nil {
		return persistence.ErrDataStoreClosed
	}

	// Create a new context that inherits from the provided context, and wire it
	// up to be canceled when the data store is closed.
	fnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-ds.ctx.Done():
			cancel()
		case <-fnCtx.Done():
		}
	}()

	err := fn(fnCtx, ds.db)

	// If the error was a context cancelation but the provided context was NOT
	// canceled then we assume that it was the data-store closing that
	// triggered the error.
	if err == context.Canceled && ctx.Err() == nil && ds.ctx.Err() != nil {
		return persistence.ErrDataStoreClosed
	}

	return err
}

// committer is an implementation of persistence.OperationVisitor that
// applies operations to the database.
type committer struct {
	tx     *sql.Tx
	driver Driver
	key    string
}

// guard returns a ConflictError caused by op if ok is false.
func guard(ok bool, err error, op persistence.Operation) error {
	if ok || err != nil {
		return err
	}

	return persistence.ConflictError{
		Cause: op,
	}
}
