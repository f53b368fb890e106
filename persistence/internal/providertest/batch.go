package providertest

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/persistence"
)

// declareBatchTests declares tests for the atomicity of batches that contain
// several kinds of operation.
func declareBatchTests(tc *TestContext) {
	ginkgo.Context("batches", func() {
		var dataStore persistence.DataStore

		ginkgo.BeforeEach(func() {
			var tearDown func()
			dataStore, tearDown = tc.SetupDataStore()
			ginkgo.DeferCleanup(tearDown)

			persist(
				tc.Context,
				dataStore,
				persistence.SaveExecution{
					Execution: persistence.Execution{
						ID:                "<root>",
						ProcessInstanceID: "<root>",
						ActivityID:        "<activity-1>",
					},
				},
			)
		})

		ginkgo.It("does not apply any operation if one of them conflicts", func() {
			conflicting := persistence.SaveExecution{
				Execution: persistence.Execution{
					ID:                "<root>",
					ProcessInstanceID: "<root>",
					ActivityID:        "<activity-2>",
					Revision:          0, // stale
				},
			}

			err := dataStore.Persist(
				tc.Context,
				persistence.Batch{
					persistence.SaveJob{
						Job: persistence.Job{
							ID:                "<job>",
							ProcessInstanceID: "<root>",
						},
					},
					persistence.SaveVariable{
						Variable: persistence.Variable{
							ExecutionID:       "<root>",
							ProcessInstanceID: "<root>",
							Name:              "<name>",
							Type:              "string",
						},
					},
					conflicting,
				},
			)
			gomega.Expect(err).To(gomega.Equal(
				persistence.ConflictError{
					Cause: conflicting,
				},
			))

			_, ok, err := dataStore.LoadJob(tc.Context, "<job>")
			gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeFalse())

			vars, err := dataStore.LoadVariablesByProcessInstance(tc.Context, "<root>")
			gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
			gomega.Expect(vars).To(gomega.BeEmpty())

			x := loadExecution(tc.Context, dataStore, "<root>")
			gomega.Expect(x.ActivityID).To(gomega.Equal("<activity-1>"))
			gomega.Expect(x.Revision).To(gomega.BeEquivalentTo(1))
		})

		ginkgo.It("leaves a record saved at revision r at revision r+1 after a conflicting write", func() {
			persist(
				tc.Context,
				dataStore,
				persistence.SaveExecution{
					Execution: persistence.Execution{
						ID:                "<root>",
						ProcessInstanceID: "<root>",
						ActivityID:        "<activity-2>",
						Revision:          1,
					},
				},
			)

			// A second writer that also loaded revision 1.
			err := dataStore.Persist(
				tc.Context,
				persistence.Batch{
					persistence.SaveExecution{
						Execution: persistence.Execution{
							ID:                "<root>",
							ProcessInstanceID: "<root>",
							ActivityID:        "<activity-3>",
							Revision:          1,
						},
					},
				},
			)
			gomega.Expect(err).To(gomega.BeAssignableToTypeOf(persistence.ConflictError{}))

			x := loadExecution(tc.Context, dataStore, "<root>")
			gomega.Expect(x.ActivityID).To(gomega.Equal("<activity-2>"))
			gomega.Expect(x.Revision).To(gomega.BeEquivalentTo(2))
		})
	})
}
