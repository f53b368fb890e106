package sqlite_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/internal/providertest"
	"github.com/operaton/operaton-sub059/persistence/sqlpersistence"
	. "github.com/operaton/operaton-sub059/persistence/sqlpersistence/sqlite"
	_ "modernc.org/sqlite"
)

var _ = Describe("type driver", func() {
	providertest.Declare(
		func(ctx context.Context, in providertest.In) providertest.Out {
			return providertest.Out{
				NewProvider: func() (persistence.Provider, func()) {
					dir, err := os.MkdirTemp("", "sqlite-")
					Expect(err).ShouldNot(HaveOccurred())

					db, err := sql.Open("sqlite", filepath.Join(dir, "test.db"))
					Expect(err).ShouldNot(HaveOccurred())
					db.SetMaxOpenConns(1)

					err = Driver.CreateSchema(context.Background(), db)
					Expect(err).ShouldNot(HaveOccurred())

					return &sqlpersistence.Provider{
							DB:     db,
							Driver: Driver,
						}, func() {
							err := Driver.DropSchema(context.Background(), db)
							Expect(err).ShouldNot(HaveOccurred())

							db.Close()
							os.RemoveAll(dir)
						}
				},
			}
		},
		nil,
	)

	Describe("func IsCompatibleWith()", func() {
		It("returns nil for a SQLite database", func() {
			db, err := sql.Open("sqlite", ":memory:")
			Expect(err).ShouldNot(HaveOccurred())
			defer db.Close()

			err = Driver.IsCompatibleWith(context.Background(), db)
			Expect(err).ShouldNot(HaveOccurred())
		})

		It("releases its connection", func() {
			db, err := sql.Open("sqlite", ":memory:")
			Expect(err).ShouldNot(HaveOccurred())
			defer db.Close()

			err = Driver.IsCompatibleWith(context.Background(), db)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(db.Stats().InUse).To(Equal(0))
		})
	})
})
