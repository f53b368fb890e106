package persistence

import (
	"context"
)

// Provider is an interface used by the engine to obtain data stores.
type Provider interface {
	// Open returns a data-store for a specific engine cluster.
	//
	// k is an identity key shared by every engine node that operates on the
	// same process instances. Data stores are NOT opened exclusively, each
	// node opens its own data store over the same shared data.
	Open(ctx context.Context, k string) (DataStore, error)
}
