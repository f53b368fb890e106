package bboltx

import (
	"go.etcd.io/bbolt"
)

// View runs fn in a read-only transaction.
//
// Panics raised by Must() within fn propagate to the caller, which is expected
// to use Recover().
func View(db *bbolt.DB, fn func(tx *bbolt.Tx)) {
	Must(db.View(func(tx *bbolt.Tx) error {
		fn(tx)
		return nil
	}))
}

// Update runs fn in a read-write transaction.
//
// The transaction is rolled back if fn returns a non-nil error or panics.
func Update(db *bbolt.DB, fn func(tx *bbolt.Tx) error) error {
	tx, err := db.Begin(true)
	Must(err)
	defer tx.Rollback() // nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}

	Must(tx.Commit())

	return nil
}
