package sqlpersistence_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/internal/providertest"
	. "github.com/operaton/operaton-sub059/persistence/sqlpersistence"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"
)

var _ = Describe("type Provider", func() {
	providertest.Declare(
		func(ctx context.Context, in providertest.In) providertest.Out {
			return providertest.Out{
				NewProvider: func() (persistence.Provider, func()) {
					db, _, close := openTemp(context.Background())

					return &Provider{
						DB: db,
					}, close
				},
			}
		},
		nil,
	)
})

var _ = Describe("type DSNProvider", func() {
	providertest.Declare(
		func(ctx context.Context, in providertest.In) providertest.Out {
			return providertest.Out{
				NewProvider: func() (persistence.Provider, func()) {
					db, dsn, close := openTemp(context.Background())
					db.Close()

					return &DSNProvider{
						DriverName: "sqlite",
						DSN:        dsn,
					}, close
				},
			}
		},
		nil,
	)

	Describe("func Open()", func() {
		It("returns an error if the DB can not be opened", func() {
			provider := &DSNProvider{
				DriverName: "<nonsense-driver>",
				DSN:        "<nonsense-dsn>",
			}

			ds, err := provider.Open(context.Background(), providertest.DefaultKey)
			if ds != nil {
				ds.Close()
			}
			Expect(err).Should(HaveOccurred())
		})
	})

	Context("var DefaultMaxIdleConns", func() {
		It("is not zero", func() {
			Expect(DefaultMaxIdleConns).To(BeNumerically(">", 0))
		})
	})

	Context("var DefaultMaxOpenConns", func() {
		It("is larger than DefaultMaxIdleConns", func() {
			Expect(DefaultMaxOpenConns).To(BeNumerically(">", DefaultMaxIdleConns))
		})
	})

	Context("var DefaultMaxConnLifetime", func() {
		It("is not zero", func() {
			Expect(DefaultMaxConnLifetime).To(BeNumerically(">", 0))
		})
	})
})

var _ = Describe("type provider", func() {
	Describe("func open()", func() {
		It("does not hold a connection after selecting a driver", func() {
			db, _, close := openTemp(context.Background())
			defer close()

			provider := &Provider{
				DB: db,
			}

			ds, err := provider.Open(context.Background(), providertest.DefaultKey)
			Expect(err).ShouldNot(HaveOccurred())
			defer ds.Close()

			Expect(db.Stats().InUse).To(Equal(0))

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err = ds.Persist(
				ctx,
				persistence.Batch{
					persistence.SaveJob{
						Job: persistence.Job{ID: "<job>"},
					},
				},
			)
			Expect(err).ShouldNot(HaveOccurred())
		})

		It("returns an error if a compatible driver can not be found", func() {
			db, _, close := openTemp(context.Background())
			defer close()
			db.Close()

			provider := &Provider{
				DB: db,
			}

			ds, err := provider.Open(context.Background(), providertest.DefaultKey)
			if ds != nil {
				ds.Close()
			}

			expect := "could not find a driver that is compatible with *sqlite.Driver"
			for _, e := range multierr.Errors(err) {
				if e.Error() == expect {
					return
				}
			}

			Expect(err).To(MatchError(expect))
		})
	})
})

var _ = Describe("func CreateSchema()", func() {
	It("does not return an error if the schema already exists", func() {
		ctx := context.Background()
		db, _, close := openTemp(ctx)
		defer close()

		err := CreateSchema(ctx, db)
		Expect(err).ShouldNot(HaveOccurred())
	})
})

var _ = Describe("func DropSchema()", func() {
	It("does not return an error if the schema does not exist", func() {
		ctx := context.Background()
		db, _, close := openTemp(ctx)
		defer close()

		err := DropSchema(ctx, db)
		Expect(err).ShouldNot(HaveOccurred())

		err = DropSchema(ctx, db)
		Expect(err).ShouldNot(HaveOccurred())
	})
})

// openTemp opens a new SQLite database in a temporary directory and creates
// the schema.
func openTemp(ctx context.Context) (*sql.DB, string, func()) {
	dir, err := os.MkdirTemp("", "sqlpersistence-")
	Expect(err).ShouldNot(HaveOccurred())

	dsn := "file:" + filepath.Join(dir, "test.db") + "?_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	Expect(err).ShouldNot(HaveOccurred())
	db.SetMaxOpenConns(1)

	err = CreateSchema(ctx, db)
	Expect(err).ShouldNot(HaveOccurred())

	return db, dsn, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}
