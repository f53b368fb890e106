package process_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/operaton/operaton-sub059/process"
)

// behavior is a minimal Behavior used to build definitions.
type behavior Kind

func (b behavior) Kind() Kind                                     { return Kind(b) }
func (behavior) Execute(context.Context, ActivityExecution) error { return nil }

var _ = Describe("type Builder", func() {
	Describe("func Build()", func() {
		It("resolves transitions, scopes and boundary activities", func() {
			b := NewBuilder("<def>", "<name>")
			b.Activity("start", behavior(PassThrough))
			b.Activity("sub", behavior(SubProcess)).Named("<sub>")
			b.Activity("inner", behavior(WaitState)).In("sub")
			b.Activity("timeout", behavior(BoundaryTimer)).AttachedTo("sub")
			b.Activity("end", behavior(End))
			b.Transition("t1", "start", "sub")
			b.Transition("t2", "sub", "end").Default()
			b.Transition("t3", "timeout", "end")

			d, err := b.Build()
			Expect(err).ShouldNot(HaveOccurred())

			Expect(d.ID).To(Equal("<def>"))
			Expect(d.Name).To(Equal("<name>"))
			Expect(d.Initial).To(Equal("start"))

			sub := d.MustActivity("sub")
			Expect(sub.Name).To(Equal("<sub>"))
			Expect(sub.IsScope).To(BeTrue())
			Expect(sub.Initial).To(Equal("inner"))
			Expect(sub.Children).To(Equal([]string{"inner"}))
			Expect(sub.Attached).To(Equal([]string{"timeout"}))
			Expect(sub.Default).To(Equal("t2"))
			Expect(sub.Exclusive).To(BeTrue())

			timeout := d.MustActivity("timeout")
			Expect(timeout.FlowScope).To(Equal(""))
			Expect(timeout.Kind()).To(Equal(BoundaryTimer))

			t, ok := d.Transition("t1")
			Expect(ok).To(BeTrue())
			Expect(d.MustActivity("start").Outgoing).To(ConsistOf(t))
			Expect(sub.Incoming).To(ConsistOf(t))

			Expect(d.ScopeChain("inner")).To(Equal([]string{"sub", ""}))
			Expect(d.ScopeChain("end")).To(Equal([]string{""}))

			var ids []string
			for _, a := range d.Activities() {
				ids = append(ids, a.ID)
			}
			Expect(ids).To(Equal([]string{"start", "sub", "inner", "timeout", "end"}))
		})

		It("uses the activity marked as initial", func() {
			b := NewBuilder("<def>", "")
			b.Activity("a", behavior(WaitState))
			b.Activity("b", behavior(WaitState)).Initial()

			d, err := b.Build()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(d.Initial).To(Equal("b"))
		})

		It("applies activity options", func() {
			b := NewBuilder("<def>", "")
			b.Activity("a", behavior(WaitState)).
				AsyncBefore().
				AsyncAfter().
				NotExclusive().
				Priority(-5)

			d := b.MustBuild()
			a := d.MustActivity("a")
			Expect(a.AsyncBefore).To(BeTrue())
			Expect(a.AsyncAfter).To(BeTrue())
			Expect(a.Exclusive).To(BeFalse())
			Expect(a.Priority).To(BeEquivalentTo(-5))
		})

		DescribeTable(
			"it returns an error if the definition is invalid",
			func(expect string, build func(b *Builder)) {
				b := NewBuilder("<def>", "")
				build(b)

				_, err := b.Build()
				Expect(err).To(MatchError(ContainSubstring(expect)))
			},
			Entry(
				"no activities",
				"process definition '<def>' does not contain any activities",
				func(b *Builder) {},
			),
			Entry(
				"duplicate activity",
				"activity ID 'a' is used more than once",
				func(b *Builder) {
					b.Activity("a", behavior(WaitState))
					b.Activity("a", behavior(WaitState))
				},
			),
			Entry(
				"missing behavior",
				"activity 'a' does not have a behavior",
				func(b *Builder) {
					b.Activity("a", nil)
				},
			),
			Entry(
				"unknown transition source",
				"transition 't1' refers to unknown source activity 'x'",
				func(b *Builder) {
					b.Activity("a", behavior(WaitState))
					b.Transition("t1", "x", "a")
				},
			),
			Entry(
				"unknown transition destination",
				"transition 't1' refers to unknown destination activity 'x'",
				func(b *Builder) {
					b.Activity("a", behavior(WaitState))
					b.Transition("t1", "a", "x")
				},
			),
			Entry(
				"unknown scope",
				"activity 'a' refers to unknown scope 'x'",
				func(b *Builder) {
					b.Activity("a", behavior(WaitState)).In("x")
				},
			),
			Entry(
				"unattached boundary",
				"boundary activity 'a' is not attached to an activity",
				func(b *Builder) {
					b.Activity("a", behavior(BoundaryTimer))
				},
			),
			Entry(
				"multiple initial activities",
				"process definition '<def>' has more than one initial activity",
				func(b *Builder) {
					b.Activity("a", behavior(WaitState))
					b.Activity("b", behavior(WaitState))
				},
			),
			Entry(
				"multiple defaults",
				"activity 'a' has more than one default transition",
				func(b *Builder) {
					b.Activity("a", behavior(ExclusiveGateway))
					b.Activity("b", behavior(WaitState))
					b.Activity("c", behavior(WaitState))
					b.Transition("t1", "a", "b").Default()
					b.Transition("t2", "a", "c").Default()
				},
			),
		)
	})

	Describe("func MustBuild()", func() {
		It("panics if the definition is invalid", func() {
			Expect(func() {
				NewBuilder("", "").MustBuild()
			}).To(Panic())
		})
	})
})

var _ = Describe("type Registry", func() {
	It("assigns increasing versions to redeployed definitions", func() {
		var r Registry

		b := NewBuilder("<def>", "")
		b.Activity("a", behavior(WaitState))
		v1 := b.MustBuild()

		b = NewBuilder("<def>", "")
		b.Activity("a", behavior(WaitState))
		v2 := b.MustBuild()

		r.Deploy(v1)
		r.Deploy(v1)
		Expect(v1.Version).To(Equal(1))

		r.Deploy(v2)
		Expect(v2.Version).To(Equal(2))

		d, ok := r.Get("<def>")
		Expect(ok).To(BeTrue())
		Expect(d).To(BeIdenticalTo(v2))
		Expect(r.IDs()).To(Equal([]string{"<def>"}))
	})
})

var _ = Describe("type Kind", func() {
	It("has a human-readable name", func() {
		Expect(ExclusiveGateway.String()).To(Equal("exclusive-gateway"))
		Expect(Kind(100).String()).To(Equal("kind(100)"))
	})
})
