package jobexecutor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is a set of Prometheus collectors that describe the job executor.
//
// A nil *Metrics discards every measurement.
type Metrics struct {
	acquired  prometheus.Counter
	conflicts prometheus.Counter
	rejected  prometheus.Counter
	executed  *prometheus.CounterVec
	failed    *prometheus.CounterVec
	incidents prometheus.Counter
	duration  *prometheus.HistogramVec
	queued    prometheus.Gauge
	busy      prometheus.Gauge
	workers   prometheus.Gauge
}

// NewMetrics returns job executor metrics registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		acquired: f.NewCounter(
			prometheus.CounterOpts{
				Name: "pvm_jobs_acquired_total",
				Help: "Total number of jobs locked by the acquirer",
			},
		),
		conflicts: f.NewCounter(
			prometheus.CounterOpts{
				Name: "pvm_job_acquisition_conflicts_total",
				Help: "Total number of job units skipped because another node changed them first",
			},
		),
		rejected: f.NewCounter(
			prometheus.CounterOpts{
				Name: "pvm_job_units_rejected_total",
				Help: "Total number of job units rejected by a saturated worker pool",
			},
		),
		executed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pvm_jobs_executed_total",
				Help: "Total number of jobs executed successfully",
			},
			[]string{"type"},
		),
		failed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pvm_jobs_failed_total",
				Help: "Total number of failed job execution attempts",
			},
			[]string{"type"},
		),
		incidents: f.NewCounter(
			prometheus.CounterOpts{
				Name: "pvm_incidents_created_total",
				Help: "Total number of incidents created for jobs without retries",
			},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pvm_job_execution_duration_seconds",
				Help:    "Job execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),
		queued: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "pvm_job_pool_queued_units",
				Help: "Current number of units waiting for a worker",
			},
		),
		busy: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "pvm_job_pool_busy_workers",
				Help: "Current number of workers executing a unit",
			},
		),
		workers: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "pvm_job_pool_workers",
				Help: "Current number of running workers",
			},
		),
	}
}

func (m *Metrics) jobAcquired() {
	if m != nil {
		m.acquired.Inc()
	}
}

func (m *Metrics) acquisitionConflict() {
	if m != nil {
		m.conflicts.Inc()
	}
}

func (m *Metrics) unitRejected() {
	if m != nil {
		m.rejected.Inc()
	}
}

func (m *Metrics) jobExecuted(t string, d time.Duration) {
	if m != nil {
		m.executed.WithLabelValues(t).Inc()
		m.duration.WithLabelValues(t).Observe(d.Seconds())
	}
}

func (m *Metrics) jobFailed(t string, d time.Duration) {
	if m != nil {
		m.failed.WithLabelValues(t).Inc()
		m.duration.WithLabelValues(t).Observe(d.Seconds())
	}
}

func (m *Metrics) incidentCreated() {
	if m != nil {
		m.incidents.Inc()
	}
}

func (m *Metrics) pool(queued, busy, workers int) {
	if m != nil {
		m.queued.Set(float64(queued))
		m.busy.Set(float64(busy))
		m.workers.Set(float64(workers))
	}
}
