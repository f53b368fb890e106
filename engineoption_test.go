package operaton

import (
	"time"

	"github.com/dogmatiq/dodeca/logging"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/jobexecutor"
	"github.com/operaton/operaton-sub059/persistence/memorypersistence"
	"github.com/operaton/operaton-sub059/retry"
	"github.com/prometheus/client_golang/prometheus"
)

type objectValue struct {
	Name string
}

var _ = Describe("func resolveEngineOptions()", func() {
	It("uses the defaults when no options are given", func() {
		opts := resolveEngineOptions()

		Expect(opts.PersistenceProvider).To(Equal(DefaultPersistenceProvider))
		Expect(opts.ClusterKey).To(Equal(DefaultClusterKey))
		Expect(opts.JobExecutorDisabled).To(BeFalse())
		Expect(opts.PollInterval).To(Equal(DefaultPollInterval))
		Expect(opts.MaxJobsPerAcquisition).To(Equal(DefaultMaxJobsPerAcquisition))
		Expect(opts.CoreWorkers).To(Equal(DefaultCoreWorkers))
		Expect(opts.MaxWorkers).To(Equal(DefaultMaxWorkers))
		Expect(*opts.QueueSize).To(Equal(DefaultQueueSize))
		Expect(opts.LockDuration).To(Equal(DefaultLockDuration))
		Expect(opts.MaxRetries).To(Equal(DefaultMaxRetries))
		Expect(opts.RetryPolicy).To(Equal(DefaultRetryPolicy))
		Expect(*opts.ConflictRetries).To(Equal(DefaultConflictRetries))
		Expect(opts.NodeID).NotTo(BeEmpty())
		Expect(opts.Observers).To(BeEmpty())
		Expect(opts.Metrics).To(BeNil())
		Expect(opts.Marshaler).To(BeNil())
		Expect(opts.Logger).To(BeIdenticalTo(DefaultLogger))
	})

	It("generates a distinct node ID for each engine", func() {
		a := resolveEngineOptions()
		b := resolveEngineOptions()
		Expect(a.NodeID).NotTo(Equal(b.NodeID))
	})
})

var _ = Describe("func WithPersistence()", func() {
	It("sets the persistence provider", func() {
		p := &memorypersistence.Provider{}
		opts := resolveEngineOptions(WithPersistence(p))
		Expect(opts.PersistenceProvider).To(BeIdenticalTo(p))
	})
})

var _ = Describe("func WithClusterKey()", func() {
	It("sets the cluster key", func() {
		opts := resolveEngineOptions(WithClusterKey("<key>"))
		Expect(opts.ClusterKey).To(Equal("<key>"))
	})
})

var _ = Describe("func WithJobExecutor()", func() {
	It("disables the job executor", func() {
		opts := resolveEngineOptions(WithJobExecutor(false))
		Expect(opts.JobExecutorDisabled).To(BeTrue())
	})
})

var _ = Describe("func WithPollInterval()", func() {
	It("sets the poll interval", func() {
		opts := resolveEngineOptions(WithPollInterval(10 * time.Minute))
		Expect(opts.PollInterval).To(Equal(10 * time.Minute))
	})

	It("panics if the interval is negative", func() {
		Expect(func() {
			WithPollInterval(-1)
		}).To(Panic())
	})
})

var _ = Describe("func WithMaxJobsPerAcquisition()", func() {
	It("sets the acquisition limit", func() {
		opts := resolveEngineOptions(WithMaxJobsPerAcquisition(7))
		Expect(opts.MaxJobsPerAcquisition).To(Equal(7))
	})
})

var _ = Describe("func WithWorkerPool()", func() {
	It("sets the number of workers", func() {
		opts := resolveEngineOptions(WithWorkerPool(2, 4))
		Expect(opts.CoreWorkers).To(Equal(2))
		Expect(opts.MaxWorkers).To(Equal(4))
	})

	It("panics if max is less than core", func() {
		Expect(func() {
			WithWorkerPool(4, 2)
		}).To(Panic())
	})
})

var _ = Describe("func WithQueueSize()", func() {
	It("allows a queue size of zero", func() {
		opts := resolveEngineOptions(WithQueueSize(0))
		Expect(*opts.QueueSize).To(Equal(0))
	})
})

var _ = Describe("func WithLockDuration()", func() {
	It("sets the lock duration", func() {
		opts := resolveEngineOptions(WithLockDuration(time.Minute))
		Expect(opts.LockDuration).To(Equal(time.Minute))
	})
})

var _ = Describe("func WithMaxRetries()", func() {
	It("sets the number of attempts", func() {
		opts := resolveEngineOptions(WithMaxRetries(5))
		Expect(opts.MaxRetries).To(Equal(5))
	})
})

var _ = Describe("func WithRetryPolicy()", func() {
	It("sets the retry policy", func() {
		opts := resolveEngineOptions(WithRetryPolicy(retry.Immediate))
		Expect(opts.RetryPolicy).To(Equal(retry.Immediate))
	})
})

var _ = Describe("func WithConflictRetries()", func() {
	It("allows zero retries", func() {
		opts := resolveEngineOptions(WithConflictRetries(0))
		Expect(*opts.ConflictRetries).To(BeZero())
	})
})

var _ = Describe("func WithNodeID()", func() {
	It("sets the node ID", func() {
		opts := resolveEngineOptions(WithNodeID("<node>"))
		Expect(opts.NodeID).To(Equal("<node>"))
	})
})

var _ = Describe("func WithObserver()", func() {
	It("adds each observer", func() {
		opts := resolveEngineOptions(
			WithObserver(jobexecutor.NoopObserver{}),
			WithObserver(jobexecutor.NoopObserver{}),
		)
		Expect(opts.Observers).To(HaveLen(2))
	})
})

var _ = Describe("func WithMetrics()", func() {
	It("sets the registerer", func() {
		reg := prometheus.NewRegistry()
		opts := resolveEngineOptions(WithMetrics(reg))
		Expect(opts.Metrics).To(BeIdenticalTo(reg))
	})
})

var _ = Describe("func WithObjectTypes()", func() {
	It("builds a marshaler for the types", func() {
		opts := resolveEngineOptions(WithObjectTypes(objectValue{}))
		Expect(opts.Marshaler).NotTo(BeNil())

		p, err := opts.Marshaler.Marshal(objectValue{"<name>"})
		Expect(err).ShouldNot(HaveOccurred())

		v, err := opts.Marshaler.Unmarshal(p)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).To(Equal(objectValue{"<name>"}))
	})
})

var _ = Describe("func WithLogger()", func() {
	It("sets the logger", func() {
		l := logging.DebugLogger
		opts := resolveEngineOptions(WithLogger(l))
		Expect(opts.Logger).To(BeIdenticalTo(l))
	})
})

var _ = Describe("func WithClock()", func() {
	It("sets the time source", func() {
		t := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		opts := resolveEngineOptions(WithClock(func() time.Time { return t }))
		Expect(opts.Now()).To(Equal(t))
	})
})
