package persistence

import (
	"fmt"
)

// Batch is a set of operations that are committed to the data store atomically
// using a Persister.
type Batch []Operation

// MustValidate panics if the batch contains any operations that operate on the
// same entity.
func (b Batch) MustValidate() {
	seen := make(map[entityKey]struct{}, len(b))

	for _, op := range b {
		k := op.entityKey()

		if _, ok := seen[k]; ok {
			panic(fmt.Sprintf(
				"batch contains multiple operations for the same entity (%s)",
				k,
			))
		}

		seen[k] = struct{}{}
	}
}

// entityKey identifies the entity affected by an operation.
type entityKey struct {
	kind string
	id   string
}

func (k entityKey) String() string {
	return k.kind + " " + k.id
}
