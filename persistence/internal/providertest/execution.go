package providertest

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/internal/x/gomegax"
	"github.com/operaton/operaton-sub059/persistence"
)

// declareExecutionTests declares a functional test-suite for persistence
// operations and queries related to executions.
func declareExecutionTests(tc *TestContext) {
	ginkgo.Context("executions", func() {
		var (
			dataStore persistence.DataStore
			root      persistence.Execution
		)

		ginkgo.BeforeEach(func() {
			var tearDown func()
			dataStore, tearDown = tc.SetupDataStore()
			ginkgo.DeferCleanup(tearDown)

			root = persistence.Execution{
				ID:                "<root>",
				ProcessInstanceID: "<root>",
				DefinitionID:      "<definition>",
				ActivityID:        "<activity>",
				IsScope:           true,
				IsActive:          true,
			}
		})

		ginkgo.Describe("type persistence.SaveExecution", func() {
			ginkgo.When("the execution does not exist", func() {
				ginkgo.It("saves the execution with a revision of 1", func() {
					persist(tc.Context, dataStore, persistence.SaveExecution{Execution: root})

					x := loadExecution(tc.Context, dataStore, "<root>")

					root.Revision = 1
					gomega.Expect(x).To(gomegax.EqualX(root))
				})

				ginkgo.It("does not save the execution when an OCC conflict occurs", func() {
					root.Revision = 123
					op := persistence.SaveExecution{Execution: root}

					err := dataStore.Persist(tc.Context, persistence.Batch{op})
					gomega.Expect(err).To(gomega.Equal(
						persistence.ConflictError{
							Cause: op,
						},
					))

					_, ok, err := dataStore.LoadExecution(tc.Context, "<root>")
					gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
					gomega.Expect(ok).To(gomega.BeFalse())
				})
			})

			ginkgo.When("the execution exists", func() {
				ginkgo.BeforeEach(func() {
					persist(tc.Context, dataStore, persistence.SaveExecution{Execution: root})
					root.Revision = 1
				})

				ginkgo.It("increments the revision even if nothing has changed", func() {
					persist(tc.Context, dataStore, persistence.SaveExecution{Execution: root})

					x := loadExecution(tc.Context, dataStore, "<root>")
					gomega.Expect(x.Revision).To(gomega.BeEquivalentTo(2))
				})

				ginkgo.It("updates the execution", func() {
					root.ActivityID = "<other>"
					root.IsActive = false
					root.IsEnded = true
					persist(tc.Context, dataStore, persistence.SaveExecution{Execution: root})

					x := loadExecution(tc.Context, dataStore, "<root>")
					gomega.Expect(x.ActivityID).To(gomega.Equal("<other>"))
					gomega.Expect(x.IsActive).To(gomega.BeFalse())
					gomega.Expect(x.IsEnded).To(gomega.BeTrue())
				})

				ginkgo.DescribeTable(
					"it does not save the execution when an OCC conflict occurs",
					func(conflictingRevision int) {
						persist(tc.Context, dataStore, persistence.SaveExecution{Execution: root})

						stale := root
						stale.ActivityID = "<stale>"
						stale.Revision = uint64(conflictingRevision)

						err := dataStore.Persist(
							tc.Context,
							persistence.Batch{persistence.SaveExecution{Execution: stale}},
						)
						gomega.Expect(err).To(gomega.BeAssignableToTypeOf(persistence.ConflictError{}))

						x := loadExecution(tc.Context, dataStore, "<root>")
						gomega.Expect(x.ActivityID).To(gomega.Equal("<activity>"))
						gomega.Expect(x.Revision).To(gomega.BeEquivalentTo(2))
					},
					ginkgo.Entry("zero", 0),
					ginkgo.Entry("too low", 1),
					ginkgo.Entry("too high", 100),
				)
			})
		})

		ginkgo.Describe("type persistence.RemoveExecution", func() {
			ginkgo.BeforeEach(func() {
				persist(tc.Context, dataStore, persistence.SaveExecution{Execution: root})
				root.Revision = 1
			})

			ginkgo.It("removes the execution", func() {
				persist(tc.Context, dataStore, persistence.RemoveExecution{Execution: root})

				_, ok, err := dataStore.LoadExecution(tc.Context, "<root>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeFalse())
			})

			ginkgo.It("does not remove the execution when an OCC conflict occurs", func() {
				root.Revision = 2
				op := persistence.RemoveExecution{Execution: root}

				err := dataStore.Persist(tc.Context, persistence.Batch{op})
				gomega.Expect(err).To(gomega.Equal(persistence.ConflictError{Cause: op}))

				loadExecution(tc.Context, dataStore, "<root>")
			})

			ginkgo.It("returns a conflict if the execution does not exist", func() {
				op := persistence.RemoveExecution{
					Execution: persistence.Execution{ID: "<unknown>", ProcessInstanceID: "<root>"},
				}

				err := dataStore.Persist(tc.Context, persistence.Batch{op})
				gomega.Expect(err).To(gomega.Equal(persistence.ConflictError{Cause: op}))
			})
		})

		ginkgo.Describe("func LoadExecutionsByProcessInstance()", func() {
			ginkgo.It("returns the executions of the instance ordered by ID", func() {
				persist(
					tc.Context,
					dataStore,
					persistence.SaveExecution{Execution: root},
					persistence.SaveExecution{
						Execution: persistence.Execution{
							ID:                "<root-b>",
							ParentID:          "<root>",
							ProcessInstanceID: "<root>",
							IsConcurrent:      true,
						},
					},
					persistence.SaveExecution{
						Execution: persistence.Execution{
							ID:                "<root-a>",
							ParentID:          "<root>",
							ProcessInstanceID: "<root>",
							IsConcurrent:      true,
						},
					},
					persistence.SaveExecution{
						Execution: persistence.Execution{
							ID:                "<other>",
							ProcessInstanceID: "<other>",
						},
					},
				)

				xs, err := dataStore.LoadExecutionsByProcessInstance(tc.Context, "<root>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())

				var ids []string
				for _, x := range xs {
					ids = append(ids, x.ID)
				}
				gomega.Expect(ids).To(gomega.Equal([]string{"<root-a>", "<root-b>", "<root>"}))
				gomega.Expect(xs[0].ParentID).To(gomega.Equal("<root>"))
				gomega.Expect(xs[0].IsConcurrent).To(gomega.BeTrue())
			})

			ginkgo.It("returns an empty result if the instance does not exist", func() {
				xs, err := dataStore.LoadExecutionsByProcessInstance(tc.Context, "<unknown>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(xs).To(gomega.BeEmpty())
			})
		})
	})
}
