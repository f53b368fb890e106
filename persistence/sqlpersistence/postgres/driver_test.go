package postgres_test

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v4/stdlib"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/internal/providertest"
	"github.com/operaton/operaton-sub059/persistence/sqlpersistence"
	. "github.com/operaton/operaton-sub059/persistence/sqlpersistence/postgres"
	_ "modernc.org/sqlite"
)

// dsnEnvVar is the environment variable that holds the DSN of the PostgreSQL
// server used by the tests.
const dsnEnvVar = "OPERATON_TEST_POSTGRES_DSN"

// openDB opens the PostgreSQL database named by dsnEnvVar, skipping the
// current spec if it is not set.
func openDB() *sql.DB {
	dsn := os.Getenv(dsnEnvVar)
	if dsn == "" {
		Skip(dsnEnvVar + " is not set")
	}

	db, err := sql.Open("pgx", dsn)
	Expect(err).ShouldNot(HaveOccurred())

	return db
}

var _ = Describe("type driver", func() {
	Context("with a PostgreSQL server", func() {
		BeforeEach(func() {
			if os.Getenv(dsnEnvVar) == "" {
				Skip(dsnEnvVar + " is not set")
			}
		})

		providertest.Declare(
			func(ctx context.Context, in providertest.In) providertest.Out {
				return providertest.Out{
					NewProvider: func() (persistence.Provider, func()) {
						db := openDB()

						err := Driver.DropSchema(context.Background(), db)
						Expect(err).ShouldNot(HaveOccurred())

						err = Driver.CreateSchema(context.Background(), db)
						Expect(err).ShouldNot(HaveOccurred())

						return &sqlpersistence.Provider{
								DB:     db,
								Driver: Driver,
							}, func() {
								err := Driver.DropSchema(context.Background(), db)
								Expect(err).ShouldNot(HaveOccurred())

								db.Close()
							}
					},
				}
			},
			nil,
		)

		Describe("func IsCompatibleWith()", func() {
			It("returns nil and releases its connection", func() {
				db := openDB()
				defer db.Close()

				err := Driver.IsCompatibleWith(context.Background(), db)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(db.Stats().InUse).To(Equal(0))
			})
		})

		Describe("func CreateSchema()", func() {
			It("does not return an error if the schema already exists", func() {
				db := openDB()
				defer db.Close()
				defer Driver.DropSchema(context.Background(), db) // nolint:errcheck

				err := Driver.CreateSchema(context.Background(), db)
				Expect(err).ShouldNot(HaveOccurred())

				err = Driver.CreateSchema(context.Background(), db)
				Expect(err).ShouldNot(HaveOccurred())
			})
		})
	})

	Describe("func IsCompatibleWith()", func() {
		It("returns an error for a SQLite database and releases its connection", func() {
			db, err := sql.Open("sqlite", ":memory:")
			Expect(err).ShouldNot(HaveOccurred())
			defer db.Close()

			err = Driver.IsCompatibleWith(context.Background(), db)
			Expect(err).Should(HaveOccurred())
			Expect(db.Stats().InUse).To(Equal(0))
		})
	})
})
