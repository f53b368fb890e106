package persistence_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/operaton/operaton-sub059/persistence"
)

var _ = Describe("type Batch", func() {
	Describe("func MustValidate()", func() {
		It("panics if the batch contains multiple operations on the same entity", func() {
			batch := Batch{
				SaveJob{
					Job: Job{ID: "<job>"},
				},
				RemoveJob{
					Job: Job{ID: "<job>"},
				},
			}

			Expect(func() {
				batch.MustValidate()
			}).To(PanicWith(
				"batch contains multiple operations for the same entity (job <job>)",
			))
		})

		It("does not panic if the batch contains no operations for the same entity", func() {
			batch := Batch{
				SaveExecution{
					Execution: Execution{ID: "<id>"},
				},
				SaveJob{
					Job: Job{ID: "<id>"}, // same ID, different entity kind
				},
				SaveVariable{
					Variable: Variable{ExecutionID: "<id>", Name: "a"},
				},
				SaveVariable{
					Variable: Variable{ExecutionID: "<id>", Name: "b"},
				},
				SaveIncident{
					Incident: Incident{ID: "<id>"},
				},
			}

			Expect(func() {
				batch.MustValidate()
			}).NotTo(Panic())
		})
	})
})
