package providertest

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/internal/x/gomegax"
	"github.com/operaton/operaton-sub059/persistence"
)

// declareVariableTests declares a functional test-suite for persistence
// operations and queries related to variables.
func declareVariableTests(tc *TestContext) {
	ginkgo.Context("variables", func() {
		var (
			dataStore persistence.DataStore
			v         persistence.Variable
		)

		ginkgo.BeforeEach(func() {
			var tearDown func()
			dataStore, tearDown = tc.SetupDataStore()
			ginkgo.DeferCleanup(tearDown)

			v = persistence.Variable{
				ExecutionID:       "<root>",
				ProcessInstanceID: "<root>",
				Name:              "<name>",
				Type:              "object",
				MediaType:         "application/json",
				Data:              []byte(`{"a":1}`),
			}
		})

		load := func() []persistence.Variable {
			vs, err := dataStore.LoadVariablesByProcessInstance(tc.Context, "<root>")
			gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
			return vs
		}

		ginkgo.Describe("type persistence.SaveVariable", func() {
			ginkgo.It("saves a new variable with a revision of 1", func() {
				persist(tc.Context, dataStore, persistence.SaveVariable{Variable: v})

				v.Revision = 1
				gomega.Expect(load()).To(gomegax.EqualX([]persistence.Variable{v}))
			})

			ginkgo.It("updates an existing variable", func() {
				persist(tc.Context, dataStore, persistence.SaveVariable{Variable: v})

				v.Revision = 1
				v.Type = "string"
				v.MediaType = ""
				v.Data = []byte("<value>")
				persist(tc.Context, dataStore, persistence.SaveVariable{Variable: v})

				v.Revision = 2
				gomega.Expect(load()).To(gomegax.EqualX([]persistence.Variable{v}))
			})

			ginkgo.It("does not save the variable when an OCC conflict occurs", func() {
				persist(tc.Context, dataStore, persistence.SaveVariable{Variable: v})

				op := persistence.SaveVariable{Variable: v} // revision 0 is stale
				err := dataStore.Persist(tc.Context, persistence.Batch{op})
				gomega.Expect(err).To(gomega.Equal(persistence.ConflictError{Cause: op}))

				gomega.Expect(load()[0].Revision).To(gomega.BeEquivalentTo(1))
			})

			ginkgo.It("distinguishes variables with the same name in different executions", func() {
				w := v
				w.ExecutionID = "<child>"

				persist(
					tc.Context,
					dataStore,
					persistence.SaveVariable{Variable: v},
					persistence.SaveVariable{Variable: w},
				)

				vs := load()
				gomega.Expect(vs).To(gomega.HaveLen(2))
				gomega.Expect(vs[0].ExecutionID).To(gomega.Equal("<child>"))
				gomega.Expect(vs[1].ExecutionID).To(gomega.Equal("<root>"))
			})
		})

		ginkgo.Describe("type persistence.RemoveVariable", func() {
			ginkgo.BeforeEach(func() {
				persist(tc.Context, dataStore, persistence.SaveVariable{Variable: v})
				v.Revision = 1
			})

			ginkgo.It("removes the variable", func() {
				persist(tc.Context, dataStore, persistence.RemoveVariable{Variable: v})
				gomega.Expect(load()).To(gomega.BeEmpty())
			})

			ginkgo.It("does not remove the variable when an OCC conflict occurs", func() {
				v.Revision = 0
				op := persistence.RemoveVariable{Variable: v}

				err := dataStore.Persist(tc.Context, persistence.Batch{op})
				gomega.Expect(err).To(gomega.Equal(persistence.ConflictError{Cause: op}))
				gomega.Expect(load()).To(gomega.HaveLen(1))
			})
		})
	})
}
