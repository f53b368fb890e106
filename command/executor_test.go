package command_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/command"
	"github.com/operaton/operaton-sub059/execution"
	. "github.com/operaton/operaton-sub059/internal/x/gomegax"
	"github.com/operaton/operaton-sub059/job"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/memorypersistence"
	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/process/behavior"
	"github.com/operaton/operaton-sub059/pvm"
	"github.com/operaton/operaton-sub059/variable"
)

var _ = Describe("type Executor", func() {
	var (
		ctx       context.Context
		dataStore persistence.DataStore
		executor  *command.Executor
		now       time.Time
		ids       int
	)

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		ids = 0

		var err error
		dataStore, err = (&memorypersistence.Provider{}).Open(ctx, "<cluster>")
		Expect(err).ShouldNot(HaveOccurred())
		DeferCleanup(dataStore.Close)

		b := process.NewBuilder("<def>", "")
		b.Activity("start", behavior.None{})
		b.Activity("fork", behavior.Fork{})
		b.Activity("a", behavior.Wait{})
		b.Activity("b", behavior.None{}).AsyncBefore()
		b.Activity("join", behavior.Join{})
		b.Activity("end", behavior.End{})
		b.Transition("t1", "start", "fork")
		b.Transition("t2", "fork", "a")
		b.Transition("t3", "fork", "b")
		b.Transition("t4", "a", "join")
		b.Transition("t5", "b", "join")
		b.Transition("t6", "join", "end")

		registry := &process.Registry{}
		registry.Deploy(b.MustBuild())

		executor = &command.Executor{
			DataStore:       dataStore,
			Definitions:     registry,
			Now:             func() time.Time { return now },
			NewID:           func() string { ids++; return fmt.Sprintf("<id-%02d>", ids) },
			ConflictRetries: 2,
			ConflictBackoff: time.Millisecond,
		}
	})

	// start starts an instance of <def> and returns its ID.
	start := func(vars variable.Map) string {
		var id string

		err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
			tree, err := c.NewInstance("<def>")
			if err != nil {
				return err
			}

			pc, err := c.Interpreter(tree)
			if err != nil {
				return err
			}

			id = tree.ProcessInstanceID()
			return pvm.Start(ctx, pc, tree, vars)
		})
		Expect(err).ShouldNot(HaveOccurred())

		return id
	}

	load := func(id string) *execution.Tree {
		var tree *execution.Tree

		err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
			var err error
			tree, err = c.Instance(ctx, id)
			return err
		})
		Expect(err).ShouldNot(HaveOccurred())

		return tree
	}

	Describe("func Execute()", func() {
		It("persists the executions, variables and jobs of a new instance", func() {
			id := start(variable.Map{"amount": variable.Integer(100)})

			xs, err := dataStore.LoadExecutionsByProcessInstance(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(xs).To(HaveLen(3))
			for _, x := range xs {
				Expect(x.Revision).To(BeNumerically("==", 1))
				Expect(x.DefinitionID).To(Equal("<def>"))
			}

			vars, err := dataStore.LoadVariablesByProcessInstance(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(vars).To(EqualX([]persistence.Variable{
				{
					ExecutionID:       id,
					ProcessInstanceID: id,
					Name:              "amount",
					Type:              "integer",
					Data:              []byte("100"),
					Revision:          1,
				},
			}))

			jobs, err := dataStore.LoadJobsByProcessInstance(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Type).To(Equal(job.AsyncContinuation))
			Expect(jobs[0].ActivityID).To(Equal("b"))
			Expect(jobs[0].Retries).To(Equal(command.DefaultJobRetries))
			Expect(jobs[0].CreatedAt).To(BeTemporally("==", now))

			c, err := job.DecodePayload(nil, jobs[0].Payload)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(c.Kind).To(Equal(job.OnTransition))
			Expect(c.ExecutionID).To(Equal(jobs[0].ExecutionID))
		})

		It("rebuilds the tree as it was persisted", func() {
			id := start(variable.Map{"amount": variable.Integer(100)})

			tree := load(id)
			Expect(tree.Len()).To(Equal(3))
			Expect(tree.DefinitionID).To(Equal("<def>"))
			Expect(tree.Root().Children).To(HaveLen(2))

			v, ok := tree.Variable(id, "amount")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(variable.Integer(100)))
		})

		It("persists nothing if the command fails", func() {
			cause := errors.New("<error>")

			err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				if _, err := c.NewInstance("<def>"); err != nil {
					return err
				}
				return cause
			})
			Expect(err).To(Equal(cause))

			xs, err := dataStore.LoadExecutionsByProcessInstance(ctx, "<id-01>")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(xs).To(BeEmpty())
		})

		It("only writes records that have changed", func() {
			id := start(nil)

			err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				_, err := c.Instance(ctx, id)
				return err
			})
			Expect(err).ShouldNot(HaveOccurred())

			x, _, err := dataStore.LoadExecution(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(x.Revision).To(BeNumerically("==", 1))
		})

		It("saves the root execution whenever the instance changes", func() {
			id := start(nil)

			err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				tree, err := c.Instance(ctx, id)
				if err != nil {
					return err
				}

				child := tree.Children(tree.Root())[0]
				return tree.SetVariableLocal(ctx, child.ID, "v", variable.Boolean(true))
			})
			Expect(err).ShouldNot(HaveOccurred())

			x, _, err := dataStore.LoadExecution(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(x.Revision).To(BeNumerically("==", 2))
		})

		It("saves the root execution of a touched instance", func() {
			id := start(nil)

			err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				return c.Touch(ctx, id)
			})
			Expect(err).ShouldNot(HaveOccurred())

			x, _, err := dataStore.LoadExecution(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(x.Revision).To(BeNumerically("==", 2))
		})

		It("removes executions, variables and jobs that no longer exist", func() {
			id := start(variable.Map{"amount": variable.Integer(100)})

			err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				tree, err := c.Instance(ctx, id)
				if err != nil {
					return err
				}

				pc, err := c.Interpreter(tree)
				if err != nil {
					return err
				}

				for _, x := range tree.Children(tree.Root()) {
					if x.ActivityID == "a" {
						return pvm.Signal(ctx, pc, tree, x.ID, "", nil)
					}
				}

				return errors.New("no execution is waiting at 'a'")
			})
			Expect(err).ShouldNot(HaveOccurred())

			tree := load(id)
			Expect(tree.Len()).To(Equal(3))

			err = executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				tree, err := c.Instance(ctx, id)
				if err != nil {
					return err
				}

				if _, err := tree.RemoveVariable(ctx, id, "amount"); err != nil {
					return err
				}

				jobs, err := c.Jobs(ctx, id)
				if err != nil {
					return err
				}
				Expect(jobs).To(HaveLen(1))

				j := jobs[0]
				p, err := job.DecodePayload(nil, j.Payload)
				if err != nil {
					return err
				}

				if err := c.RemoveJob(ctx, j.ID); err != nil {
					return err
				}

				pc, err := c.Interpreter(tree)
				if err != nil {
					return err
				}

				return pvm.Resume(ctx, pc, tree, p)
			})
			Expect(err).ShouldNot(HaveOccurred())

			xs, err := dataStore.LoadExecutionsByProcessInstance(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(xs).To(HaveLen(1))
			Expect(xs[0].IsEnded).To(BeTrue())

			vars, err := dataStore.LoadVariablesByProcessInstance(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(vars).To(BeEmpty())

			jobs, err := dataStore.LoadJobsByProcessInstance(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(jobs).To(BeEmpty())
		})

		It("returns an optimistic locking failure if another command modified the instance", func() {
			id := start(nil)

			loaded := make(chan struct{})
			committed := make(chan struct{})
			result := make(chan error, 1)

			go func() {
				defer GinkgoRecover()

				result <- executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
					tree, err := c.Instance(ctx, id)
					if err != nil {
						return err
					}

					close(loaded)
					<-committed

					return tree.SetVariable(ctx, id, "writer", variable.String("first"))
				})
			}()

			<-loaded

			err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				tree, err := c.Instance(ctx, id)
				if err != nil {
					return err
				}
				return tree.SetVariable(ctx, id, "writer", variable.String("second"))
			})
			Expect(err).ShouldNot(HaveOccurred())
			close(committed)

			err = <-result
			Expect(command.IsOptimisticLockingFailure(err)).To(BeTrue())

			var ole command.OptimisticLockingError
			Expect(errors.As(err, &ole)).To(BeTrue())
			Expect(ole.Conflict.Cause).To(BeAssignableToTypeOf(persistence.SaveExecution{}))

			x, _, err := dataStore.LoadExecution(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(x.Revision).To(BeNumerically("==", 2))

			v, _ := load(id).Variable(id, "writer")
			Expect(v).To(Equal(variable.String("second")))
		})

		It("returns an error if the definition is not deployed", func() {
			err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				_, err := c.NewInstance("<unknown>")
				return err
			})
			Expect(err).To(Equal(pvm.NotFoundError{Kind: "process definition", ID: "<unknown>"}))
		})

		It("returns an error if the instance does not exist", func() {
			err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				_, err := c.Instance(ctx, "<unknown>")
				return err
			})
			Expect(err).To(Equal(persistence.NotFoundError{Kind: "process instance", ID: "<unknown>"}))
		})

		It("finds the instance of an execution", func() {
			id := start(nil)

			err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
				tree, err := c.Instance(ctx, id)
				if err != nil {
					return err
				}

				child := tree.Children(tree.Root())[0]

				found, err := c.InstanceOf(ctx, child.ID)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(found).To(BeIdenticalTo(tree))

				_, err = c.InstanceOf(ctx, "<unknown>")
				Expect(err).To(Equal(persistence.NotFoundError{Kind: "execution", ID: "<unknown>"}))

				return nil
			})
			Expect(err).ShouldNot(HaveOccurred())
		})
	})

	Describe("func ExecuteWithRetry()", func() {
		It("retries the command after an optimistic locking failure", func() {
			id := start(nil)
			attempts := 0

			err := executor.ExecuteWithRetry(ctx, func(ctx context.Context, c *command.Context) error {
				attempts++

				tree, err := c.Instance(ctx, id)
				if err != nil {
					return err
				}

				if attempts == 1 {
					// Modify the instance behind this command's back.
					err := executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
						return c.Touch(ctx, id)
					})
					Expect(err).ShouldNot(HaveOccurred())
				}

				return tree.SetVariable(ctx, id, "attempts", variable.Integer(int64(attempts)))
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(attempts).To(Equal(2))

			x, _, err := dataStore.LoadExecution(ctx, id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(x.Revision).To(BeNumerically("==", 3))
		})

		It("returns the optimistic locking failure when the retries are exhausted", func() {
			id := start(nil)
			attempts := 0

			err := executor.ExecuteWithRetry(ctx, func(ctx context.Context, c *command.Context) error {
				attempts++

				if err := c.Touch(ctx, id); err != nil {
					return err
				}

				return executor.Execute(ctx, func(ctx context.Context, c *command.Context) error {
					return c.Touch(ctx, id)
				})
			})
			Expect(command.IsOptimisticLockingFailure(err)).To(BeTrue())
			Expect(attempts).To(Equal(3))
		})

		It("does not retry other errors", func() {
			attempts := 0
			cause := errors.New("<error>")

			err := executor.ExecuteWithRetry(ctx, func(ctx context.Context, c *command.Context) error {
				attempts++
				return cause
			})
			Expect(err).To(Equal(cause))
			Expect(attempts).To(Equal(1))
		})
	})
})
