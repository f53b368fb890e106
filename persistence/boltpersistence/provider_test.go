package boltpersistence_test

import (
	"context"
	"os"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/persistence"
	. "github.com/operaton/operaton-sub059/persistence/boltpersistence"
	"github.com/operaton/operaton-sub059/persistence/boltpersistence/internal/pb"
	"github.com/operaton/operaton-sub059/persistence/internal/providertest"
	"go.etcd.io/bbolt"
	"google.golang.org/protobuf/proto"
)

var _ = Describe("type Provider", func() {
	providertest.Declare(
		func(ctx context.Context, in providertest.In) providertest.Out {
			return providertest.Out{
				NewProvider: func() (persistence.Provider, func()) {
					db, close := openTemp()

					return &Provider{
						DB: db,
					}, close
				},
			}
		},
		nil,
	)
})

var _ = Describe("stored records", func() {
	It("marshals jobs using Protocol Buffers", func() {
		db, close := openTemp()
		defer close()

		ds, err := (&Provider{DB: db}).Open(context.Background(), "<key>")
		Expect(err).ShouldNot(HaveOccurred())
		defer ds.Close()

		createdAt := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)

		err = ds.Persist(
			context.Background(),
			persistence.Batch{
				persistence.SaveJob{
					Job: persistence.Job{
						ID:        "<job>",
						Type:      "timer",
						Payload:   []byte("<payload>"),
						Retries:   3,
						CreatedAt: createdAt,
					},
				},
			},
		)
		Expect(err).ShouldNot(HaveOccurred())

		rec := &pb.Job{}
		err = db.View(func(tx *bbolt.Tx) error {
			data := tx.Bucket([]byte("<key>")).Bucket([]byte("job")).Get([]byte("<job>"))
			return proto.Unmarshal(data, rec)
		})
		Expect(err).ShouldNot(HaveOccurred())

		Expect(rec.GetId()).To(Equal("<job>"))
		Expect(rec.GetType()).To(Equal("timer"))
		Expect(rec.GetPayload()).To(Equal([]byte("<payload>")))
		Expect(rec.GetRetries()).To(BeEquivalentTo(3))
		Expect(rec.GetCreatedAt()).To(Equal(createdAt.UnixNano()))
		Expect(rec.GetDueDate()).To(BeZero())
		Expect(rec.GetRevision()).To(BeEquivalentTo(1))
	})

	It("preserves zero times", func() {
		db, close := openTemp()
		defer close()

		ds, err := (&Provider{DB: db}).Open(context.Background(), "<key>")
		Expect(err).ShouldNot(HaveOccurred())
		defer ds.Close()

		err = ds.Persist(
			context.Background(),
			persistence.Batch{
				persistence.SaveJob{
					Job: persistence.Job{ID: "<job>"},
				},
			},
		)
		Expect(err).ShouldNot(HaveOccurred())

		j, ok, err := ds.LoadJob(context.Background(), "<job>")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(j.DueDate.IsZero()).To(BeTrue())
		Expect(j.LockExpiresAt.IsZero()).To(BeTrue())
		Expect(j.CreatedAt.IsZero()).To(BeTrue())
	})
})

var _ = Describe("type FileProvider", func() {
	providertest.Declare(
		func(ctx context.Context, in providertest.In) providertest.Out {
			return providertest.Out{
				NewProvider: func() (persistence.Provider, func()) {
					file, remove := tempFile()

					return &FileProvider{
						Path: file,
					}, remove
				},
			}
		},
		nil,
	)

	Describe("func Open()", func() {
		It("returns an error if the DB can not be opened", func() {
			db, close := openTemp()
			defer close()

			provider := &FileProvider{
				Path: db.Path(), // use the same file as the (open) DB.
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			ds, err := provider.Open(ctx, "<key>")
			if ds != nil {
				ds.Close()
			}
			Expect(err).To(Equal(context.DeadlineExceeded))
		})

		It("keeps the file open until the last data-store is closed", func() {
			file, remove := tempFile()
			defer remove()

			provider := &FileProvider{
				Path: file,
			}

			ds1, err := provider.Open(context.Background(), "<key>")
			Expect(err).ShouldNot(HaveOccurred())

			ds2, err := provider.Open(context.Background(), "<key>")
			Expect(err).ShouldNot(HaveOccurred())
			defer ds2.Close()

			Expect(ds1.Close()).To(Succeed())

			err = ds2.Persist(
				context.Background(),
				persistence.Batch{
					persistence.SaveJob{
						Job: persistence.Job{ID: "<job>"},
					},
				},
			)
			Expect(err).ShouldNot(HaveOccurred())
		})
	})
})

// openTemp opens a BoltDB database using a temporary file.
//
// The returned function must be used to close the database, instead of
// DB.Close().
func openTemp() (*bbolt.DB, func()) {
	filename, remove := tempFile()

	db, err := bbolt.Open(filename, 0600, nil)
	if err != nil {
		panic(err)
	}

	return db, func() {
		db.Close()
		remove()
	}
}

// tempFile returns the name of a temporary file to be used for a BoltDB
// database.
//
// It returns a function that deletes the temporary file.
func tempFile() (string, func()) {
	f, err := os.CreateTemp("", "*.boltdb")
	if err != nil {
		panic(err)
	}

	if err := f.Close(); err != nil {
		panic(err)
	}

	file := f.Name()

	if err := os.Remove(file); err != nil {
		panic(err)
	}

	var once sync.Once
	return file, func() {
		once.Do(func() {
			os.Remove(file)
		})
	}
}
