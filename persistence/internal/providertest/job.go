package providertest

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/internal/x/gomegax"
	"github.com/operaton/operaton-sub059/persistence"
)

// declareJobTests declares a functional test-suite for persistence operations
// and queries related to jobs.
func declareJobTests(tc *TestContext) {
	ginkgo.Context("jobs", func() {
		var (
			dataStore persistence.DataStore
			now       time.Time
			job       persistence.Job
		)

		ginkgo.BeforeEach(func() {
			var tearDown func()
			dataStore, tearDown = tc.SetupDataStore()
			ginkgo.DeferCleanup(tearDown)

			now = time.Now().Truncate(time.Millisecond)

			job = persistence.Job{
				ID:                "<job>",
				Type:              "async-continuation",
				ExecutionID:       "<root>",
				ProcessInstanceID: "<root>",
				DefinitionID:      "<definition>",
				ActivityID:        "<activity>",
				Payload:           []byte("<payload>"),
				Retries:           3,
				Exclusive:         true,
				Priority:          5,
				CreatedAt:         now,
			}
		})

		ginkgo.Describe("type persistence.SaveJob", func() {
			ginkgo.It("saves a new job with a revision of 1", func() {
				persist(tc.Context, dataStore, persistence.SaveJob{Job: job})

				job.Revision = 1
				gomega.Expect(loadJob(tc.Context, dataStore, "<job>")).To(gomegax.EqualX(job))
			})

			ginkgo.It("persists lock and failure information", func() {
				persist(tc.Context, dataStore, persistence.SaveJob{Job: job})

				job.Revision = 1
				job.LockOwner = "<node>"
				job.LockExpiresAt = now.Add(time.Minute)
				job.DueDate = now.Add(time.Hour)
				job.Retries = 2
				job.ExceptionMessage = "<error>"
				job.Suspended = true
				persist(tc.Context, dataStore, persistence.SaveJob{Job: job})

				job.Revision = 2
				gomega.Expect(loadJob(tc.Context, dataStore, "<job>")).To(gomegax.EqualX(job))
			})

			ginkgo.It("does not save the job when an OCC conflict occurs", func() {
				persist(tc.Context, dataStore, persistence.SaveJob{Job: job})

				stale := job
				stale.LockOwner = "<node>"
				op := persistence.SaveJob{Job: stale}

				err := dataStore.Persist(tc.Context, persistence.Batch{op})
				gomega.Expect(err).To(gomega.Equal(persistence.ConflictError{Cause: op}))

				j := loadJob(tc.Context, dataStore, "<job>")
				gomega.Expect(j.LockOwner).To(gomega.BeEmpty())
			})
		})

		ginkgo.Describe("type persistence.RemoveJob", func() {
			ginkgo.BeforeEach(func() {
				persist(tc.Context, dataStore, persistence.SaveJob{Job: job})
				job.Revision = 1
			})

			ginkgo.It("removes the job", func() {
				persist(tc.Context, dataStore, persistence.RemoveJob{Job: job})

				_, ok, err := dataStore.LoadJob(tc.Context, "<job>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeFalse())
			})

			ginkgo.It("does not remove the job when an OCC conflict occurs", func() {
				job.Revision = 7
				op := persistence.RemoveJob{Job: job}

				err := dataStore.Persist(tc.Context, persistence.Batch{op})
				gomega.Expect(err).To(gomega.Equal(persistence.ConflictError{Cause: op}))

				loadJob(tc.Context, dataStore, "<job>")
			})
		})

		ginkgo.Describe("func LoadJobsByProcessInstance()", func() {
			ginkgo.It("returns the jobs of the instance in creation order", func() {
				a := job
				a.ID = "<job-a>"
				a.CreatedAt = now.Add(2 * time.Second)

				b := job
				b.ID = "<job-b>"
				b.CreatedAt = now.Add(1 * time.Second)

				c := job
				c.ID = "<job-c>"
				c.ProcessInstanceID = "<other>"

				persist(
					tc.Context,
					dataStore,
					persistence.SaveJob{Job: a},
					persistence.SaveJob{Job: b},
					persistence.SaveJob{Job: c},
				)

				jobs, err := dataStore.LoadJobsByProcessInstance(tc.Context, "<root>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(jobIDs(jobs)).To(gomega.Equal([]string{"<job-b>", "<job-a>"}))

				jobs, err = dataStore.LoadJobs(tc.Context)
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(jobIDs(jobs)).To(gomega.Equal([]string{"<job-c>", "<job-b>", "<job-a>"}))
			})
		})

		ginkgo.Describe("func LoadAcquirableJobs()", func() {
			ginkgo.BeforeEach(func() {
				var jobs []persistence.Operation

				add := func(id string, fn func(j *persistence.Job)) {
					j := job
					j.ID = id
					fn(&j)
					jobs = append(jobs, persistence.SaveJob{Job: j})
				}

				add("<due-now>", func(j *persistence.Job) {})
				add("<due-past>", func(j *persistence.Job) { j.DueDate = now.Add(-time.Minute) })
				add("<high-priority>", func(j *persistence.Job) { j.Priority = 10; j.DueDate = now })
				add("<future>", func(j *persistence.Job) { j.DueDate = now.Add(time.Hour) })
				add("<no-retries>", func(j *persistence.Job) { j.Retries = 0 })
				add("<suspended>", func(j *persistence.Job) { j.Suspended = true })
				add("<locked>", func(j *persistence.Job) {
					j.LockOwner = "<node>"
					j.LockExpiresAt = now.Add(time.Minute)
				})
				add("<lock-expired>", func(j *persistence.Job) {
					j.LockOwner = "<node>"
					j.LockExpiresAt = now.Add(-time.Minute)
					j.DueDate = now.Add(-time.Second)
				})

				persist(tc.Context, dataStore, jobs...)
			})

			ginkgo.It("returns due, unlocked jobs ordered by priority then due date", func() {
				jobs, err := dataStore.LoadAcquirableJobs(tc.Context, now, 10)
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(jobIDs(jobs)).To(gomega.Equal([]string{
					"<high-priority>",
					"<due-now>", // a zero due date sorts first
					"<due-past>",
					"<lock-expired>",
				}))
			})

			ginkgo.It("limits the number of jobs returned", func() {
				jobs, err := dataStore.LoadAcquirableJobs(tc.Context, now, 2)
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(jobIDs(jobs)).To(gomega.Equal([]string{
					"<high-priority>",
					"<due-now>",
				}))
			})
		})
	})
}
