package boltpersistence

import (
	"context"
	"os"
	"sync"

	"github.com/operaton/operaton-sub059/internal/x/bboltx"
	"github.com/operaton/operaton-sub059/persistence"
	"go.etcd.io/bbolt"
)

// Provider is an implementation of persistence.Provider for BoltDB that uses an
// existing open database.
type Provider struct {
	provider

	// DB is the BoltDB database to use.
	DB *bbolt.DB
}

// Open returns a data-store for a specific engine cluster.
//
// Every data-store opened with the same key shares the same data.
func (p *Provider) Open(ctx context.Context, k string) (persistence.DataStore, error) {
	return p.open(
		ctx,
		k,
		func() (*bbolt.DB, error) {
			return p.DB, nil
		},
		func(*bbolt.DB) error {
			// Don't actually close the database, since we didn't open it.
			return nil
		},
	)
}

// FileProvider is an implementation of persistence.Provider for BoltDB that
// opens a BoltDB database file.
type FileProvider struct {
	provider

	// Path is the path to the BoltDB database to open or create.
	Path string

	// Mode is the file mode for the created file.
	// If it is zero, 0600 (owner read/write only) is used.
	Mode os.FileMode

	// Options is the BoltDB options for the database.
	// If it is nil, bbolt.DefaultOptions is used.
	Options *bbolt.Options
}

// Open returns a data-store for a specific engine cluster.
//
// The database file is opened by the first call to Open() and closed when the
// last data-store is closed.
func (p *FileProvider) Open(ctx context.Context, k string) (persistence.DataStore, error) {
	return p.open(
		ctx,
		k,
		func() (*bbolt.DB, error) {
			return bboltx.Open(ctx, p.Path, p.Mode, p.Options)
		},
		func(db *bbolt.DB) error {
			return db.Close()
		},
	)
}

// provider is the common implementation of Provider and FileProvider.
type provider struct {
	m     sync.Mutex
	db    *bbolt.DB
	close func(db *bbolt.DB) error
	refs  int
}

// open returns a data-store for a specific key.
func (p *provider) open(
	_ context.Context,
	k string,
	open func() (*bbolt.DB, error),
	close func(db *bbolt.DB) error,
) (persistence.DataStore, error) {
	p.m.Lock()
	defer p.m.Unlock()

	if p.db == nil {
		db, err := open()
		if err != nil {
			return nil, err
		}

		p.db = db
		p.close = close
	}

	p.refs++

	return &dataStore{
		db:      p.db,
		key:     []byte(k),
		release: p.release,
	}, nil
}

// release marks a previously-opened data-store as closed, closing the database
// once no data-stores remain open.
func (p *provider) release() error {
	p.m.Lock()
	defer p.m.Unlock()

	p.refs--
	if p.refs > 0 {
		return nil
	}

	db := p.db
	close := p.close

	p.db = nil
	p.close = nil

	return close(db)
}
