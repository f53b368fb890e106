package jobexecutor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/operaton/operaton-sub059/jobexecutor"
	"github.com/prometheus/client_golang/prometheus"
)

func newRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// sample returns the sum of the values of every series of the named metric.
func sample(reg *prometheus.Registry, name string) float64 {
	families, err := reg.Gather()
	Expect(err).ShouldNot(HaveOccurred())

	var v float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}

		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				v += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				v += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				v += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}

	return v
}

func gauge(reg *prometheus.Registry, name string) float64 {
	return sample(reg, name)
}

var _ = Describe("func NewMetrics()", func() {
	It("registers the collectors with the registry", func() {
		reg := newRegistry()
		NewMetrics(reg)

		families, err := reg.Gather()
		Expect(err).ShouldNot(HaveOccurred())

		var names []string
		for _, f := range families {
			names = append(names, f.GetName())
		}

		// Vectors without any series are not gathered.
		Expect(names).To(ContainElements(
			"pvm_jobs_acquired_total",
			"pvm_job_acquisition_conflicts_total",
			"pvm_job_units_rejected_total",
			"pvm_incidents_created_total",
			"pvm_job_pool_queued_units",
			"pvm_job_pool_busy_workers",
			"pvm_job_pool_workers",
		))
	})

	It("panics if the collectors are already registered", func() {
		reg := newRegistry()
		NewMetrics(reg)

		Expect(func() {
			NewMetrics(reg)
		}).To(Panic())
	})
})
