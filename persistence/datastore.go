package persistence

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/multierr"
)

// ErrDataStoreClosed is returned when performing any persistence operation on a
// closed data-store.
var ErrDataStoreClosed = errors.New("data store is closed")

// DataStore is an interface used by the engine to persist and retrieve
// process state.
type DataStore interface {
	ExecutionRepository
	VariableRepository
	JobRepository
	IncidentRepository
	Persister

	// Close closes the data store.
	//
	// Closing a data-store causes any future calls to Persist() to return
	// ErrDataStoreClosed.
	//
	// The behavior of read operations on a closed data-store is undefined.
	Close() error
}

// DataStoreSet is a collection of data-stores opened from the same provider.
type DataStoreSet struct {
	Provider Provider

	m      sync.Mutex
	stores map[string]DataStore
}

// Get returns the data store for the given key.
//
// If the set already contains a data-store for the given key it is returned.
// Otherwise it is opened and added to the set. The caller is NOT responsible
// for closing the data store.
func (s *DataStoreSet) Get(ctx context.Context, k string) (DataStore, error) {
	s.m.Lock()
	defer s.m.Unlock()

	if ds, ok := s.stores[k]; ok {
		return ds, nil
	}

	ds, err := s.Provider.Open(ctx, k)
	if err != nil {
		return nil, err
	}

	if s.stores == nil {
		s.stores = map[string]DataStore{}
	}

	s.stores[k] = ds

	return ds, nil
}

// Close closes all datastores in the set.
func (s *DataStoreSet) Close() error {
	s.m.Lock()
	defer s.m.Unlock()

	stores := s.stores
	s.stores = nil

	var err error
	for _, ds := range stores {
		err = multierr.Append(
			err,
			ds.Close(),
		)
	}

	return err
}
