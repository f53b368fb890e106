package jobexecutor_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/operaton/operaton-sub059/jobexecutor"
	"github.com/operaton/operaton-sub059/persistence"
)

var _ = Describe("type Pool", func() {
	var (
		ctx     context.Context
		cancel  context.CancelFunc
		pool    *Pool
		release chan struct{}
		handled chan *Unit
		result  chan error
	)

	unit := func(pid, id string, priority int64) *Unit {
		return &Unit{
			ProcessInstanceID: pid,
			Jobs: []persistence.Job{
				{ID: id, ProcessInstanceID: pid, Priority: priority},
			},
		}
	}

	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		DeferCleanup(cancel)

		release = make(chan struct{})
		handled = make(chan *Unit, 100)

		pool = &Pool{
			Handler: UnitHandlerFunc(func(ctx context.Context, u *Unit) {
				handled <- u
				select {
				case <-release:
				case <-ctx.Done():
				}
			}),
			CoreWorkers: 1,
			MaxWorkers:  2,
			QueueSize:   1,
			KeepAlive:   10 * time.Millisecond,
		}
	})

	run := func() {
		result = make(chan error, 1)
		go func() {
			result <- pool.Run(ctx)
		}()
		Eventually(pool.Capacity).Should(Equal(3))
	}

	Describe("func Submit()", func() {
		It("returns false if the pool is not running", func() {
			Expect(pool.Submit(unit("<pid>", "<job>", 0))).To(BeFalse())
			Expect(pool.Capacity()).To(Equal(0))
		})

		It("executes submitted units", func() {
			run()
			close(release)

			Expect(pool.Submit(unit("<pid>", "<job>", 0))).To(BeTrue())
			Eventually(handled).Should(Receive(HaveField("Jobs", HaveLen(1))))
		})

		It("starts workers beyond the core workers up to the maximum", func() {
			run()

			Expect(pool.Submit(unit("<pid-1>", "<job-1>", 0))).To(BeTrue())
			Expect(pool.Submit(unit("<pid-2>", "<job-2>", 0))).To(BeTrue())

			Eventually(handled).Should(Receive())
			Eventually(handled).Should(Receive())

			Eventually(pool.Capacity).Should(Equal(1))
			close(release)
		})

		It("rejects units when every worker is busy and the queue is full", func() {
			run()

			Expect(pool.Submit(unit("<pid-1>", "<job-1>", 0))).To(BeTrue())
			Expect(pool.Submit(unit("<pid-2>", "<job-2>", 0))).To(BeTrue())
			Eventually(handled).Should(Receive())
			Eventually(handled).Should(Receive())

			Expect(pool.Submit(unit("<pid-3>", "<job-3>", 0))).To(BeTrue())
			Expect(pool.Capacity()).To(Equal(0))
			Expect(pool.Submit(unit("<pid-4>", "<job-4>", 0))).To(BeFalse())

			close(release)
			Eventually(handled).Should(Receive(HaveField("ProcessInstanceID", "<pid-3>")))
		})

		It("executes queued units in priority order", func() {
			pool.MaxWorkers = 1
			pool.QueueSize = 2
			run()

			Expect(pool.Submit(unit("<pid-1>", "<job-1>", 0))).To(BeTrue())
			Eventually(handled).Should(Receive())

			Expect(pool.Submit(unit("<pid-2>", "<low>", 1))).To(BeTrue())
			Expect(pool.Submit(unit("<pid-3>", "<high>", 10))).To(BeTrue())

			release <- struct{}{}
			Eventually(handled).Should(Receive(HaveField("ProcessInstanceID", "<pid-3>")))
			release <- struct{}{}
			Eventually(handled).Should(Receive(HaveField("ProcessInstanceID", "<pid-2>")))
			close(release)
		})
	})

	It("never executes units of the same process instance concurrently", func() {
		var (
			m       sync.Mutex
			running = map[string]bool{}
			overlap atomic.Bool
			count   atomic.Int32
		)

		pool.MaxWorkers = 4
		pool.QueueSize = 10
		pool.Handler = UnitHandlerFunc(func(ctx context.Context, u *Unit) {
			m.Lock()
			if running[u.ProcessInstanceID] {
				overlap.Store(true)
			}
			running[u.ProcessInstanceID] = true
			m.Unlock()

			time.Sleep(5 * time.Millisecond)

			m.Lock()
			running[u.ProcessInstanceID] = false
			m.Unlock()

			count.Add(1)
		})

		result = make(chan error, 1)
		go func() {
			result <- pool.Run(ctx)
		}()
		Eventually(pool.Capacity).Should(BeNumerically(">", 0))

		submitted := 0
		for i := 0; i < 8; i++ {
			pid := "<pid-a>"
			if i%2 == 1 {
				pid = "<pid-b>"
			}

			Eventually(func() bool {
				return pool.Submit(unit(pid, "<job>", 0))
			}).Should(BeTrue())
			submitted++
		}

		Eventually(count.Load).Should(BeNumerically("==", submitted))
		Expect(overlap.Load()).To(BeFalse())
	})

	Describe("func Run()", func() {
		It("returns when ctx is canceled", func() {
			run()
			cancel()
			Eventually(result).Should(Receive(Equal(context.Canceled)))
		})

		It("returns an error if the pool is already running", func() {
			run()
			err := pool.Run(ctx)
			Expect(err).To(MatchError("the worker pool is already running"))
		})

		It("stops workers beyond the core workers once they are idle", func() {
			reg := newRegistry()
			pool.Metrics = NewMetrics(reg)
			run()
			close(release)

			Expect(pool.Submit(unit("<pid-1>", "<job-1>", 0))).To(BeTrue())
			Expect(pool.Submit(unit("<pid-2>", "<job-2>", 0))).To(BeTrue())

			Eventually(func() float64 {
				return gauge(reg, "pvm_job_pool_workers")
			}).Should(Equal(1.0))
		})
	})
})
