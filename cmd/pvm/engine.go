package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	operaton "github.com/operaton/operaton-sub059"
	"github.com/operaton/operaton-sub059/internal/x/loggingx"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/boltpersistence"
	"github.com/operaton/operaton-sub059/persistence/sqlpersistence"
	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/process/processyaml"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v4/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// newProvider returns the persistence provider selected by the configuration.
func newProvider() (persistence.Provider, error) {
	switch n := viper.GetString("sql-driver"); n {
	case "":
		return &boltpersistence.FileProvider{
			Path: viper.GetString("bolt-path"),
		}, nil
	case "sqlite", "pgx":
		dsn := viper.GetString("sql-dsn")
		if dsn == "" {
			return nil, errors.New("--sql-dsn is required when --sql-driver is set")
		}

		return &sqlpersistence.DSNProvider{
			DriverName: n,
			DSN:        dsn,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported SQL driver '%s'", n)
	}
}

// loadDefinitions loads the definitions in the configured directory.
//
// A missing directory is treated as empty.
func loadDefinitions() ([]*process.Definition, error) {
	defs, err := processyaml.ParseDir(viper.GetString("definitions"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return defs, err
}

// withEngine calls fn with an engine built from the configuration.
func withEngine(
	ctx context.Context,
	fn func(context.Context, *operaton.Engine, *zap.Logger) error,
	options ...operaton.EngineOption,
) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	p, err := newProvider()
	if err != nil {
		return err
	}

	defs, err := loadDefinitions()
	if err != nil {
		return err
	}

	options = append(
		[]operaton.EngineOption{
			operaton.WithPersistence(p),
			operaton.WithClusterKey(viper.GetString("cluster-key")),
			operaton.WithNodeID(viper.GetString("node-id")),
			operaton.WithLogger(loggingx.Zap(logger)),
			operaton.WithJobExecutor(false),
		},
		options...,
	)

	e := operaton.New(options...)
	defer e.Close()

	e.Deploy(defs...)

	return fn(ctx, e, logger)
}
