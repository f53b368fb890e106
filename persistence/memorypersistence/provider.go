package memorypersistence

import (
	"context"
	"sync"

	"github.com/hashicorp/go-memdb"
	"github.com/operaton/operaton-sub059/persistence"
)

// Provider is an implementation of persistence.Provider that stores process
// state in memory.
//
// Every data-store opened with the same key shares the same data, which allows
// several engine nodes within one process to cooperate.
type Provider struct {
	m         sync.Mutex
	databases map[string]*memdb.MemDB
}

// Open returns a data-store for a specific engine cluster.
func (p *Provider) Open(_ context.Context, k string) (persistence.DataStore, error) {
	p.m.Lock()
	defer p.m.Unlock()

	if p.databases == nil {
		p.databases = map[string]*memdb.MemDB{}
	}

	db, ok := p.databases[k]
	if !ok {
		var err error
		db, err = memdb.NewMemDB(schema)
		if err != nil {
			return nil, err
		}

		p.databases[k] = db
	}

	return &dataStore{db: db}, nil
}
