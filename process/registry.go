package process

import (
	"sort"
	"sync"
)

// Registry is a set of deployed definitions.
//
// It is safe for concurrent use.
type Registry struct {
	m    sync.RWMutex
	defs map[string]*Definition
}

// Deploy adds definitions to the registry.
//
// A definition with the same ID as one that is already deployed replaces it,
// and is assigned the next version number.
func (r *Registry) Deploy(defs ...*Definition) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.defs == nil {
		r.defs = map[string]*Definition{}
	}

	for _, d := range defs {
		if prev, ok := r.defs[d.ID]; ok {
			if prev == d {
				continue
			}
			d.Version = prev.Version + 1
		} else if d.Version == 0 {
			d.Version = 1
		}

		r.defs[d.ID] = d
	}
}

// Get returns the definition with the given ID.
func (r *Registry) Get(id string) (*Definition, bool) {
	r.m.RLock()
	defer r.m.RUnlock()

	d, ok := r.defs[id]
	return d, ok
}

// IDs returns the IDs of all deployed definitions, in sorted order.
func (r *Registry) IDs() []string {
	r.m.RLock()
	defer r.m.RUnlock()

	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
