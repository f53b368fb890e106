package jobexecutor_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/command"
	. "github.com/operaton/operaton-sub059/jobexecutor"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/process/behavior"
	"github.com/prometheus/client_golang/prometheus"
)

// hookedDataStore is a data store that calls a function after querying for
// acquirable jobs.
type hookedDataStore struct {
	persistence.DataStore
	afterQuery func([]persistence.Job)
}

func (ds *hookedDataStore) LoadAcquirableJobs(
	ctx context.Context,
	now time.Time,
	n int,
) ([]persistence.Job, error) {
	jobs, err := ds.DataStore.LoadAcquirableJobs(ctx, now, n)
	if err == nil && ds.afterQuery != nil {
		ds.afterQuery(jobs)
	}
	return jobs, err
}

var _ = Describe("type Acquirer", func() {
	var (
		ctx      context.Context
		cancel   context.CancelFunc
		clk      *clock
		commands *command.Executor
		hooked   *hookedDataStore
		reg      *prometheus.Registry
		observer *recorder
		units    chan *Unit
		pool     *Pool
		acquirer *Acquirer
	)

	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		DeferCleanup(cancel)

		clk = &clock{now: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

		task := process.NewBuilder("<task>", "")
		task.Activity("start", behavior.None{})
		task.Activity("task", behavior.None{}).AsyncBefore()
		task.Activity("end", behavior.End{})
		task.Transition("t1", "start", "task")
		task.Transition("t2", "task", "end")

		fork := process.NewBuilder("<fork>", "")
		fork.Activity("start", behavior.None{})
		fork.Activity("fork", behavior.Fork{})
		fork.Activity("a", behavior.None{}).AsyncBefore()
		fork.Activity("b", behavior.None{}).AsyncBefore()
		fork.Activity("join", behavior.Join{})
		fork.Activity("end", behavior.End{})
		fork.Transition("t1", "start", "fork")
		fork.Transition("t2", "fork", "a")
		fork.Transition("t3", "fork", "b")
		fork.Transition("t4", "a", "join")
		fork.Transition("t5", "b", "join")
		fork.Transition("t6", "join", "end")

		shared := process.NewBuilder("<shared>", "")
		shared.Activity("start", behavior.None{})
		shared.Activity("fork", behavior.Fork{})
		shared.Activity("a", behavior.Wait{}).AsyncBefore().NotExclusive()
		shared.Activity("b", behavior.Wait{}).AsyncBefore().NotExclusive()
		shared.Transition("t1", "start", "fork")
		shared.Transition("t2", "fork", "a")
		shared.Transition("t3", "fork", "b")

		commands = newCommands(ctx, clk, task.MustBuild(), fork.MustBuild(), shared.MustBuild())
		hooked = &hookedDataStore{DataStore: commands.DataStore}
		commands.DataStore = hooked

		reg = newRegistry()
		metrics := NewMetrics(reg)
		observer = &recorder{}
		received := make(chan *Unit, 100)
		units = received

		pool = &Pool{
			Handler: UnitHandlerFunc(func(_ context.Context, u *Unit) {
				received <- u
			}),
			CoreWorkers: 1,
			MaxWorkers:  4,
			QueueSize:   4,
			Metrics:     metrics,
		}

		acquirer = &Acquirer{
			Commands:              commands,
			Pool:                  pool,
			NodeID:                "<node>",
			MaxJobsPerAcquisition: 10,
			LockDuration:          time.Minute,
			Observer:              observer,
			Metrics:               metrics,
		}
	})

	runPool := func() {
		p := pool
		poolCtx, stop := context.WithCancel(ctx)
		done := make(chan struct{})

		go func() {
			defer GinkgoRecover()
			defer close(done)
			p.Run(poolCtx)
		}()

		DeferCleanup(func() {
			stop()
			<-done
		})

		Eventually(p.Capacity).Should(BeNumerically(">", 0))
	}

	Describe("func Acquire()", func() {
		It("does nothing if the pool has no capacity", func() {
			startInstance(ctx, commands, "<task>", nil)

			n, full, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(0))
			Expect(full).To(BeFalse())
		})

		It("locks due jobs and submits them to the pool", func() {
			runPool()
			pid := startInstance(ctx, commands, "<task>", nil)

			n, full, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(1))
			Expect(full).To(BeFalse())

			var u *Unit
			Eventually(units).Should(Receive(&u))
			Expect(u.ProcessInstanceID).To(Equal(pid))
			Expect(u.Owner).To(Equal("<node>"))
			Expect(u.Jobs).To(HaveLen(1))

			jobs := jobsOf(ctx, commands, pid)
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].LockOwner).To(Equal("<node>"))
			Expect(jobs[0].LockExpiresAt).To(BeTemporally("==", clk.Now().Add(time.Minute)))
			Expect(jobs[0].Revision).To(Equal(u.Jobs[0].Revision))

			Expect(observer.acquired).To(ConsistOf(jobs[0].ID))
			Expect(sample(reg, "pvm_jobs_acquired_total")).To(Equal(1.0))
		})

		It("does not acquire jobs that are already locked", func() {
			runPool()
			startInstance(ctx, commands, "<task>", nil)

			_, _, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())

			n, _, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(0))
		})

		It("acquires jobs again once their locks expire", func() {
			runPool()
			startInstance(ctx, commands, "<task>", nil)

			_, _, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())

			clk.Advance(2 * time.Minute)

			n, _, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(1))
		})

		It("does not acquire jobs that are not yet due", func() {
			runPool()
			pid := startInstance(ctx, commands, "<task>", nil)

			err := commands.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				jobs, err := c.Jobs(ctx, pid)
				if err != nil {
					return err
				}
				jobs[0].DueDate = clk.Now().Add(time.Hour)
				return nil
			})
			Expect(err).ShouldNot(HaveOccurred())

			n, _, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(0))
		})

		It("limits the number of jobs acquired in one cycle", func() {
			runPool()
			for i := 0; i < 3; i++ {
				startInstance(ctx, commands, "<task>", nil)
			}

			acquirer.MaxJobsPerAcquisition = 2

			n, full, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(2))
			Expect(full).To(BeTrue())

			n, full, err = acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(1))
			Expect(full).To(BeFalse())
		})

		It("acquires the exclusive jobs of an instance as a single unit", func() {
			runPool()
			pid := startInstance(ctx, commands, "<fork>", nil)

			before, _, err := commands.DataStore.LoadExecution(ctx, pid)
			Expect(err).ShouldNot(HaveOccurred())

			n, _, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(2))

			var u *Unit
			Eventually(units).Should(Receive(&u))
			Expect(u.Exclusive).To(BeTrue())
			Expect(u.Jobs).To(HaveLen(2))
			Consistently(units).ShouldNot(Receive())

			after, _, err := commands.DataStore.LoadExecution(ctx, pid)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(after.Revision).To(Equal(before.Revision + 1))
		})

		It("acquires non-exclusive jobs as separate units", func() {
			runPool()
			startInstance(ctx, commands, "<shared>", nil)

			n, _, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(2))

			Eventually(units).Should(Receive(HaveField("Exclusive", BeFalse())))
			Eventually(units).Should(Receive(HaveField("Exclusive", BeFalse())))
		})

		It("skips an exclusive unit while another exclusive job of the instance is locked", func() {
			runPool()
			pid := startInstance(ctx, commands, "<fork>", nil)

			err := commands.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				jobs, err := c.Jobs(ctx, pid)
				if err != nil {
					return err
				}
				jobs[0].LockOwner = "<other-node>"
				jobs[0].LockExpiresAt = clk.Now().Add(time.Minute)
				return nil
			})
			Expect(err).ShouldNot(HaveOccurred())

			n, _, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(0))
			Expect(sample(reg, "pvm_job_acquisition_conflicts_total")).To(Equal(1.0))
		})

		It("skips jobs that another node locks after they are queried", func() {
			runPool()
			pid := startInstance(ctx, commands, "<task>", nil)

			hooked.afterQuery = func([]persistence.Job) {
				hooked.afterQuery = nil

				err := commands.Execute(ctx, func(ctx context.Context, c *command.Context) error {
					jobs, err := c.Jobs(ctx, pid)
					if err != nil {
						return err
					}
					jobs[0].LockOwner = "<other-node>"
					jobs[0].LockExpiresAt = clk.Now().Add(time.Minute)
					return nil
				})
				Expect(err).ShouldNot(HaveOccurred())
			}

			n, _, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(0))

			jobs := jobsOf(ctx, commands, pid)
			Expect(jobs[0].LockOwner).To(Equal("<other-node>"))
			Expect(sample(reg, "pvm_job_acquisition_conflicts_total")).To(Equal(1.0))
		})

		It("releases the locks if the pool rejects the unit", func() {
			block := make(chan struct{})
			DeferCleanup(func() { close(block) })

			pool.MaxWorkers = 1
			pool.QueueSize = 0
			pool.Handler = UnitHandlerFunc(func(ctx context.Context, _ *Unit) {
				select {
				case <-block:
				case <-ctx.Done():
				}
			})
			runPool()

			pid := startInstance(ctx, commands, "<task>", nil)

			hooked.afterQuery = func([]persistence.Job) {
				Expect(pool.Submit(&Unit{
					ProcessInstanceID: "<busy>",
					Jobs:              []persistence.Job{{ID: "<busy>"}},
				})).To(BeTrue())
			}

			n, _, err := acquirer.Acquire(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(n).To(Equal(0))

			jobs := jobsOf(ctx, commands, pid)
			Expect(jobs[0].LockOwner).To(BeEmpty())
			Expect(jobs[0].LockExpiresAt.IsZero()).To(BeTrue())
			Expect(sample(reg, "pvm_job_units_rejected_total")).To(Equal(1.0))
		})
	})

	Describe("func Run()", func() {
		It("executes due jobs until ctx is canceled", func() {
			handler := &Handler{
				Commands: commands,
				Observer: observer,
			}
			pool.Handler = handler
			acquirer.PollInterval = 5 * time.Millisecond

			runPool()

			result := make(chan error, 1)
			go func() {
				result <- acquirer.Run(ctx)
			}()

			pid := startInstance(ctx, commands, "<fork>", nil)

			Eventually(func() bool {
				return isEnded(ctx, commands, pid)
			}).Should(BeTrue())
			Expect(observer.Executed()).To(HaveLen(2))

			cancel()
			Eventually(result).Should(Receive(Equal(context.Canceled)))
		})
	})
})
