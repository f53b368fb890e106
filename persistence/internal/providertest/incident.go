package providertest

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/internal/x/gomegax"
	"github.com/operaton/operaton-sub059/persistence"
)

// declareIncidentTests declares a functional test-suite for persistence
// operations and queries related to incidents.
func declareIncidentTests(tc *TestContext) {
	ginkgo.Context("incidents", func() {
		var (
			dataStore persistence.DataStore
			incident  persistence.Incident
		)

		ginkgo.BeforeEach(func() {
			var tearDown func()
			dataStore, tearDown = tc.SetupDataStore()
			ginkgo.DeferCleanup(tearDown)

			incident = persistence.Incident{
				ID:                "<incident>",
				JobID:             "<job>",
				ProcessInstanceID: "<root>",
				ExecutionID:       "<root>",
				ActivityID:        "<activity>",
				Message:           "<message>",
				CreatedAt:         time.Now().Truncate(time.Millisecond),
			}
		})

		ginkgo.Describe("type persistence.SaveIncident", func() {
			ginkgo.It("saves a new incident with a revision of 1", func() {
				persist(tc.Context, dataStore, persistence.SaveIncident{Incident: incident})

				incidents, err := dataStore.LoadIncidentsByProcessInstance(tc.Context, "<root>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())

				incident.Revision = 1
				gomega.Expect(incidents).To(gomegax.EqualX([]persistence.Incident{incident}))
			})

			ginkgo.It("does not save a duplicate incident", func() {
				persist(tc.Context, dataStore, persistence.SaveIncident{Incident: incident})

				op := persistence.SaveIncident{Incident: incident}
				err := dataStore.Persist(tc.Context, persistence.Batch{op})
				gomega.Expect(err).To(gomega.Equal(persistence.ConflictError{Cause: op}))
			})
		})

		ginkgo.Describe("type persistence.RemoveIncident", func() {
			ginkgo.It("removes the incident", func() {
				persist(tc.Context, dataStore, persistence.SaveIncident{Incident: incident})

				incident.Revision = 1
				persist(tc.Context, dataStore, persistence.RemoveIncident{Incident: incident})

				incidents, err := dataStore.LoadIncidents(tc.Context)
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(incidents).To(gomega.BeEmpty())
			})
		})

		ginkgo.Describe("func LoadIncidentsByJob()", func() {
			ginkgo.It("returns only the incidents of the given job", func() {
				other := incident
				other.ID = "<other-incident>"
				other.JobID = "<other-job>"

				persist(
					tc.Context,
					dataStore,
					persistence.SaveIncident{Incident: incident},
					persistence.SaveIncident{Incident: other},
				)

				incidents, err := dataStore.LoadIncidentsByJob(tc.Context, "<job>")
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(incidents).To(gomega.HaveLen(1))
				gomega.Expect(incidents[0].ID).To(gomega.Equal("<incident>"))

				incidents, err = dataStore.LoadIncidents(tc.Context)
				gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
				gomega.Expect(incidents).To(gomega.HaveLen(2))
			})
		})
	})
}
