package jobexecutor_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/command"
	. "github.com/operaton/operaton-sub059/jobexecutor"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/process/behavior"
	"github.com/operaton/operaton-sub059/pvm"
	"github.com/operaton/operaton-sub059/retry"
)

var _ = Describe("type Handler", func() {
	var (
		ctx      context.Context
		clk      *clock
		commands *command.Executor
		observer *recorder
		handler  *Handler
		failWith error
		pid      string
		jobID    string
	)

	BeforeEach(func() {
		ctx = context.Background()
		clk = &clock{now: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
		failWith = nil

		b := process.NewBuilder("<def>", "")
		b.Activity("start", behavior.None{})
		b.Activity("task", behavior.None{}).
			AsyncBefore().
			OnStart(func(context.Context, string, process.Scope) error {
				return failWith
			})
		b.Activity("end", behavior.End{})
		b.Transition("t1", "start", "task")
		b.Transition("t2", "task", "end")

		commands = newCommands(ctx, clk, b.MustBuild())
		observer = &recorder{}

		handler = &Handler{
			Commands:    commands,
			RetryPolicy: retry.FixedDelay{Delay: time.Minute},
			Observer:    observer,
		}

		pid = startInstance(ctx, commands, "<def>", nil)

		jobs := jobsOf(ctx, commands, pid)
		Expect(jobs).To(HaveLen(1))
		jobID = jobs[0].ID
	})

	load := func() persistence.Job {
		j, ok, err := commands.DataStore.LoadJob(ctx, jobID)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		return j
	}

	incidents := func() []persistence.Incident {
		i, err := commands.DataStore.LoadIncidentsByJob(ctx, jobID)
		Expect(err).ShouldNot(HaveOccurred())
		return i
	}

	Describe("func Execute()", func() {
		It("resumes the execution and removes the job", func() {
			err := handler.Execute(ctx, jobID, "")
			Expect(err).ShouldNot(HaveOccurred())

			Expect(jobsOf(ctx, commands, pid)).To(BeEmpty())
			Expect(isEnded(ctx, commands, pid)).To(BeTrue())
			Expect(observer.Executed()).To(ConsistOf(jobID))
		})

		It("does nothing if the job no longer exists", func() {
			err := handler.Execute(ctx, jobID, "")
			Expect(err).ShouldNot(HaveOccurred())

			err = handler.Execute(ctx, jobID, "")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(observer.Executed()).To(HaveLen(1))
		})

		It("does nothing if the job is locked by another node", func() {
			err := commands.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				j, err := c.Job(ctx, jobID)
				if err != nil {
					return err
				}
				j.LockOwner = "<other-node>"
				j.LockExpiresAt = clk.Now().Add(time.Minute)
				return nil
			})
			Expect(err).ShouldNot(HaveOccurred())

			err = handler.Execute(ctx, jobID, "<this-node>")
			Expect(err).ShouldNot(HaveOccurred())

			Expect(load().LockOwner).To(Equal("<other-node>"))
			Expect(isEnded(ctx, commands, pid)).To(BeFalse())
		})

		When("the job fails", func() {
			BeforeEach(func() {
				failWith = errors.New("<error>")
			})

			It("returns the error", func() {
				err := handler.Execute(ctx, jobID, "")
				Expect(err).To(MatchError(ContainSubstring("<error>")))
			})

			It("decrements the retries and reschedules the job", func() {
				handler.Execute(ctx, jobID, "")

				j := load()
				Expect(j.Retries).To(Equal(command.DefaultJobRetries - 1))
				Expect(j.ExceptionMessage).To(ContainSubstring("<error>"))
				Expect(j.LockOwner).To(BeEmpty())
				Expect(j.LockExpiresAt.IsZero()).To(BeTrue())
				Expect(j.DueDate).To(BeTemporally("==", clk.Now().Add(time.Minute)))

				Expect(incidents()).To(BeEmpty())
				Expect(isEnded(ctx, commands, pid)).To(BeFalse())
			})

			It("persists none of the changes made by the failed attempt", func() {
				handler.Execute(ctx, jobID, "")

				xs, err := commands.DataStore.LoadExecutionsByProcessInstance(ctx, pid)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(xs).To(HaveLen(1))
				Expect(xs[0].ActivityID).To(Equal("task"))
				Expect(xs[0].IsActive).To(BeFalse())
			})

			It("records exactly one incident when the retries are exhausted", func() {
				for i := 0; i < command.DefaultJobRetries+2; i++ {
					handler.Execute(ctx, jobID, "")
				}

				j := load()
				Expect(j.Retries).To(Equal(0))
				Expect(j.LockOwner).To(BeEmpty())
				Expect(j.IsAcquirable(clk.Now().Add(time.Hour))).To(BeFalse())

				recorded := incidents()
				Expect(recorded).To(HaveLen(1))
				Expect(recorded[0].ProcessInstanceID).To(Equal(pid))
				Expect(recorded[0].ActivityID).To(Equal("task"))
				Expect(recorded[0].Message).To(ContainSubstring("<error>"))

				Expect(observer.incidents).To(HaveLen(1))
				Expect(observer.failed).To(HaveLen(command.DefaultJobRetries + 2))
			})

			It("uses the number of failed attempts to compute the next due date", func() {
				policy := &recordingPolicy{}
				handler.RetryPolicy = policy

				handler.Execute(ctx, jobID, "")
				handler.Execute(ctx, jobID, "")

				Expect(policy.failures).To(Equal([]int{0, 1}))
			})
		})

		When("the job fails with a fatal error", func() {
			BeforeEach(func() {
				failWith = pvm.ProcessError{
					ExecutionID: "<execution>",
					ActivityID:  "task",
					Cause:       errors.New("<fatal>"),
				}
			})

			It("records an incident without retrying", func() {
				err := handler.Execute(ctx, jobID, "")
				Expect(pvm.IsFatal(err)).To(BeTrue())

				Expect(load().Retries).To(Equal(0))
				Expect(incidents()).To(HaveLen(1))
			})
		})
	})

	Describe("func Handle()", func() {
		It("executes each job in the unit", func() {
			handler.Handle(ctx, &Unit{
				ProcessInstanceID: pid,
				Jobs:              []persistence.Job{load()},
			})

			Expect(observer.Executed()).To(ConsistOf(jobID))
		})

		It("stops when ctx is canceled", func() {
			ctx, cancel := context.WithCancel(ctx)
			cancel()

			handler.Handle(ctx, &Unit{
				ProcessInstanceID: pid,
				Jobs:              []persistence.Job{load()},
			})

			Expect(observer.Executed()).To(BeEmpty())
		})
	})
})

// recordingPolicy is a retry.Policy that records the failure counts it is
// given.
type recordingPolicy struct {
	failures []int
}

func (p *recordingPolicy) NextRetry(now time.Time, failures int, _ error) time.Time {
	p.failures = append(p.failures, failures)
	return now
}
