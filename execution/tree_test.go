package execution_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/operaton/operaton-sub059/execution"
	"github.com/operaton/operaton-sub059/variable"
)

var _ = Describe("type Tree", func() {
	var (
		ctx    context.Context
		tree   *Tree
		root   *Execution
		events []variable.Event
	)

	BeforeEach(func() {
		ctx = context.Background()
		events = nil

		tree = NewTree("<root>", "<def>")
		tree.Listeners = variable.Listeners{
			func(_ context.Context, ev variable.Event) error {
				events = append(events, ev)
				return nil
			},
		}

		root = tree.Root()
		root.ActivityID = "<activity>"
	})

	Describe("func NewTree()", func() {
		It("contains an active root scope", func() {
			Expect(tree.ProcessInstanceID()).To(Equal("<root>"))
			Expect(tree.DefinitionID).To(Equal("<def>"))
			Expect(tree.Len()).To(Equal(1))
			Expect(root.IsRoot()).To(BeTrue())
			Expect(root.IsScope).To(BeTrue())
			Expect(root.IsActive).To(BeTrue())
		})
	})

	Describe("func NewChild()", func() {
		It("adds an active child at the parent's activity", func() {
			c := tree.NewChild(root, "<child>")

			Expect(c.ParentID).To(Equal("<root>"))
			Expect(c.ActivityID).To(Equal("<activity>"))
			Expect(c.IsActive).To(BeTrue())
			Expect(root.Children).To(Equal([]string{"<child>"}))

			p, ok := tree.Parent(c)
			Expect(ok).To(BeTrue())
			Expect(p).To(BeIdenticalTo(root))
			Expect(tree.Children(root)).To(Equal([]*Execution{c}))
		})

		It("panics if the ID is already used", func() {
			Expect(func() {
				tree.NewChild(root, "<root>")
			}).To(Panic())
		})
	})

	Describe("func Remove()", func() {
		It("removes the execution and its descendants", func() {
			a := tree.NewChild(root, "<a>")
			tree.NewChild(a, "<a1>")
			tree.NewChild(root, "<b>")

			Expect(tree.Remove("<a>")).To(Equal([]string{"<a>", "<a1>"}))
			Expect(root.Children).To(Equal([]string{"<b>"}))
			Expect(tree.Len()).To(Equal(2))

			_, ok := tree.Get("<a1>")
			Expect(ok).To(BeFalse())
		})

		It("returns nil if the execution does not exist", func() {
			Expect(tree.Remove("<unknown>")).To(BeNil())
		})

		It("panics if asked to remove the root", func() {
			Expect(func() {
				tree.Remove("<root>")
			}).To(Panic())
		})
	})

	Describe("func RemoveChildren()", func() {
		It("removes every descendant", func() {
			a := tree.NewChild(root, "<a>")
			tree.NewChild(a, "<a1>")
			tree.NewChild(root, "<b>")

			Expect(tree.RemoveChildren(root)).To(ConsistOf("<a>", "<a1>", "<b>"))
			Expect(tree.Len()).To(Equal(1))
			Expect(root.Children).To(BeEmpty())
		})
	})

	Describe("func Rebuild()", func() {
		It("reconstructs child relationships", func() {
			a := tree.NewChild(root, "<a>")
			tree.NewChild(a, "<a1>")

			xs := []*Execution{}
			for _, x := range tree.Clone().Executions() {
				xs = append(xs, x)
			}

			r, err := Rebuild("<def>", xs)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(r.ProcessInstanceID()).To(Equal("<root>"))
			Expect(r.Root().Children).To(Equal([]string{"<a>"}))
			Expect(r.Descendants("<root>")).To(Equal([]string{"<a>", "<a1>"}))
		})

		DescribeTable(
			"it returns an error if the executions do not form a tree",
			func(expect string, xs ...*Execution) {
				_, err := Rebuild("<def>", xs)
				Expect(err).To(MatchError(expect))
			},
			Entry(
				"no root",
				"tree does not contain a root execution",
				&Execution{ID: "<a>", ParentID: "<b>"},
			),
			Entry(
				"two roots",
				"executions '<a>' and '<b>' are both roots",
				&Execution{ID: "<a>"},
				&Execution{ID: "<b>"},
			),
			Entry(
				"duplicate",
				"execution '<a>' appears more than once",
				&Execution{ID: "<a>"},
				&Execution{ID: "<a>"},
			),
			Entry(
				"unknown parent",
				"execution '<b>' refers to unknown parent '<c>'",
				&Execution{ID: "<a>"},
				&Execution{ID: "<b>", ParentID: "<c>"},
			),
		)
	})

	Describe("func Clone()", func() {
		It("returns an independent copy", func() {
			Expect(tree.SetVariable(ctx, "<root>", "v", variable.Integer(1))).To(Succeed())

			c := tree.Clone()
			Expect(c.SetVariable(ctx, "<root>", "v", variable.Integer(2))).To(Succeed())
			c.NewChild(c.Root(), "<child>")

			v, _ := tree.Variable("<root>", "v")
			Expect(v).To(Equal(variable.Integer(1)))
			Expect(tree.Len()).To(Equal(1))
		})
	})

	Describe("variables", func() {
		var scope, branch *Execution

		BeforeEach(func() {
			root.IsActive = false

			scope = tree.NewChild(root, "<scope>")
			scope.IsScope = true

			branch = tree.NewChild(scope, "<branch>")
			branch.IsConcurrent = true

			Expect(tree.SetVariable(ctx, "<root>", "declared", variable.String("root"))).To(Succeed())
			events = nil
		})

		It("creates undeclared variables locally", func() {
			Expect(tree.SetVariable(ctx, "<scope>", "local", variable.Integer(1))).To(Succeed())

			Expect(scope.Variables).To(HaveKey("local"))
			Expect(root.Variables).NotTo(HaveKey("local"))
			Expect(events).To(Equal([]variable.Event{
				{
					Type:        variable.Created,
					ExecutionID: "<scope>",
					Name:        "local",
					Value:       variable.Integer(1),
				},
			}))
		})

		It("writes through to the scope that declares the variable without shadowing it", func() {
			Expect(tree.SetVariable(ctx, "<scope>", "declared", variable.String("scope"))).To(Succeed())

			Expect(scope.Variables).NotTo(HaveKey("declared"))
			Expect(root.Variables["declared"]).To(Equal(variable.String("scope")))
			Expect(events).To(Equal([]variable.Event{
				{
					Type:        variable.Updated,
					ExecutionID: "<root>",
					Name:        "declared",
					Previous:    variable.String("root"),
					Value:       variable.String("scope"),
				},
			}))
		})

		It("shadows declared variables when set locally", func() {
			Expect(tree.SetVariableLocal(ctx, "<scope>", "declared", variable.String("scope"))).To(Succeed())

			v, _ := tree.Variable("<scope>", "declared")
			Expect(v).To(Equal(variable.String("scope")))

			v, _ = tree.Variable("<root>", "declared")
			Expect(v).To(Equal(variable.String("root")))

			Expect(tree.Variables("<branch>")).To(HaveLen(1))
		})

		It("delegates the variables of concurrent executions to their parent", func() {
			Expect(branch.OwnsVariables()).To(BeFalse())
			Expect(tree.Owner(branch)).To(BeIdenticalTo(scope))

			Expect(tree.SetVariableLocal(ctx, "<branch>", "x", variable.Boolean(true))).To(Succeed())
			Expect(branch.Variables).To(BeEmpty())
			Expect(scope.Variables).To(HaveKey("x"))

			_, ok := tree.VariableLocal("<branch>", "x")
			Expect(ok).To(BeTrue())

			_, ok = tree.VariableLocal("<branch>", "declared")
			Expect(ok).To(BeFalse())
		})

		It("removes variables from the declaring scope", func() {
			ok, err := tree.RemoveVariable(ctx, "<branch>", "declared")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(root.Variables).NotTo(HaveKey("declared"))
			Expect(events[0].Type).To(Equal(variable.Deleted))

			ok, err = tree.RemoveVariable(ctx, "<branch>", "declared")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("sets multiple variables in name order", func() {
			Expect(tree.SetVariables(ctx, "<scope>", variable.Map{
				"b": variable.Integer(2),
				"a": variable.Integer(1),
			})).To(Succeed())

			Expect(events).To(HaveLen(2))
			Expect(events[0].Name).To(Equal("a"))
			Expect(events[1].Name).To(Equal("b"))
		})

		It("returns listener errors", func() {
			tree.Listeners = append(tree.Listeners, func(context.Context, variable.Event) error {
				return errors.New("<error>")
			})

			err := tree.SetVariable(ctx, "<scope>", "v", variable.Null())
			Expect(err).To(MatchError("<error>"))
		})

		It("returns an error if the execution does not exist", func() {
			err := tree.SetVariable(ctx, "<unknown>", "v", variable.Null())
			Expect(err).To(MatchError("execution '<unknown>' does not exist"))
		})

		It("lists the active executions", func() {
			Expect(tree.Active()).To(Equal([]string{"<branch>", "<scope>"}))
		})
	})
})
