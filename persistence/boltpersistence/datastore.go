package boltpersistence

import (
	"context"
	"sync"

	"github.com/operaton/operaton-sub059/internal/x/bboltx"
	"github.com/operaton/operaton-sub059/persistence"
	"go.etcd.io/bbolt"
	"google.golang.org/protobuf/proto"
)

// dataStore is an implementation of persistence.DataStore for BoltDB.
//
// All data for a key is stored beneath a root bucket named by that key.
type dataStore struct {
	db  *bbolt.DB
	key []byte

	m       sync.RWMutex
	release func() error
}

// Persist commits a batch of operations atomically.
//
// If any one of the operations causes an optimistic concurrency conflict
// the entire batch is aborted and a ConflictError is returned.
func (ds *dataStore) Persist(
	ctx context.Context,
	b persistence.Batch,
) (err error) {
	b.MustValidate()

	defer bboltx.Recover(&err)

	ds.m.RLock()
	defer ds.m.RUnlock()

	if ds.release == nil {
		return persistence.ErrDataStoreClosed
	}

	return bboltx.Update(
		ds.db,
		func(tx *bbolt.Tx) error {
			c := &committer{
				root: bboltx.CreateBucketIfNotExists(tx, ds.key),
			}

			for _, op := range b {
				if err := op.AcceptVisitor(ctx, c); err != nil {
					return err
				}
			}

			return nil
		},
	)
}

// Close closes the data store.
//
// Closing a data-store causes any future calls to Persist() to return
// ErrDataStoreClosed.
func (ds *dataStore) Close() error {
	ds.m.Lock()
	defer ds.m.Unlock()

	if ds.release == nil {
		return persistence.ErrDataStoreClosed
	}

	r := ds.release
	ds.release = nil

	return r()
}

// view runs fn in a read-only transaction. root is nil if nothing has been
// persisted for the data-store's key.
func (ds *dataStore) view(fn func(root *bbolt.Bucket)) (err error) {
	defer bboltx.Recover(&err)

	bboltx.View(
		ds.db,
		func(tx *bbolt.Tx) {
			fn(tx.Bucket(ds.key))
		},
	)

	return nil
}

// committer is an implementation of persistence.OperationVisitor that
// applies operations to the database.
type committer struct {
	root *bbolt.Bucket
}

// get unmarshals the record stored at path into m. It returns false if there
// is no such record.
func get(root *bbolt.Bucket, m proto.Message, path ...[]byte) bool {
	if root == nil {
		return false
	}

	data := bboltx.GetPath(root, path...)
	if data == nil {
		return false
	}

	bboltx.Must(proto.Unmarshal(data, m))

	return true
}

// put marshals m and stores it at path.
func put(root *bbolt.Bucket, m proto.Message, path ...[]byte) {
	data, err := proto.Marshal(m)
	bboltx.Must(err)

	bboltx.PutPath(root, data, path...)
}

// each calls fn with every record in the bucket at path, after unmarshaling
// it into m.
func each(root *bbolt.Bucket, m proto.Message, fn func(), path ...[]byte) {
	if root == nil {
		return
	}

	bboltx.ForEach(
		root,
		func(_, data []byte) {
			proto.Reset(m)
			bboltx.Must(proto.Unmarshal(data, m))
			fn()
		},
		path...,
	)
}
