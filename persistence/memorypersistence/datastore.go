package memorypersistence

import (
	"context"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"
	"github.com/operaton/operaton-sub059/persistence"
)

// dataStore is an implementation of persistence.DataStore for the in-memory
// persistence provider.
type dataStore struct {
	db     *memdb.MemDB
	closed uint32 // atomic
}

// Persist commits a batch of operations atomically.
//
// If any one of the operations causes an optimistic concurrency conflict
// the entire batch is aborted and a ConflictError is returned.
func (ds *dataStore) Persist(ctx context.Context, b persistence.Batch) error {
	b.MustValidate()

	if atomic.LoadUint32(&ds.closed) != 0 {
		return persistence.ErrDataStoreClosed
	}

	txn := ds.db.Txn(true)
	defer txn.Abort()

	c := &committer{txn: txn}

	for _, op := range b {
		if err := op.AcceptVisitor(ctx, c); err != nil {
			return err
		}
	}

	txn.Commit()

	return nil
}

// Close closes the data store.
func (ds *dataStore) Close() error {
	if !atomic.CompareAndSwapUint32(&ds.closed, 0, 1) {
		return persistence.ErrDataStoreClosed
	}

	return nil
}

// committer is an implementation of persistence.OperationVisitor that applies
// operations to a write transaction.
type committer struct {
	txn *memdb.Txn
}

// first returns the object with the given ID in table, or nil.
func first(txn *memdb.Txn, table string, args ...interface{}) interface{} {
	raw, err := txn.First(table, idIndex, args...)
	if err != nil {
		panic(err)
	}
	return raw
}

// all returns the objects in table that match an index.
func all(txn *memdb.Txn, table, index string, args ...interface{}) []interface{} {
	it, err := txn.Get(table, index, args...)
	if err != nil {
		panic(err)
	}

	var r []interface{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		r = append(r, raw)
	}

	return r
}

// scan returns every object in table.
func scan(txn *memdb.Txn, table string) []interface{} {
	return all(txn, table, idIndex+"_prefix", "")
}

// insert inserts an object into table.
func insert(txn *memdb.Txn, table string, obj interface{}) {
	if err := txn.Insert(table, obj); err != nil {
		panic(err)
	}
}

// remove deletes an object from table.
func remove(txn *memdb.Txn, table string, obj interface{}) {
	if err := txn.Delete(table, obj); err != nil {
		panic(err)
	}
}
