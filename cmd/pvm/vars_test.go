package main

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/variable"
)

var _ = Describe("func parseVariables()", func() {
	It("returns nil when there are no pairs", func() {
		m, err := parseVariables(nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(m).To(BeNil())
	})

	DescribeTable(
		"it infers the type of each value",
		func(pair string, expect variable.Value) {
			m, err := parseVariables([]string{pair})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(variable.Equal(m["v"], expect)).To(BeTrue(), "%s != %s", m["v"], expect)
		},
		Entry("integer", "v=42", variable.Integer(42)),
		Entry("double", "v=2.5", variable.Double(2.5)),
		Entry("boolean", "v=true", variable.Boolean(true)),
		Entry("string", "v=hello", variable.String("hello")),
		Entry("quoted string", `v="42"`, variable.String("42")),
		Entry("empty", "v=", variable.Null()),
		Entry("value containing '='", "v=a=b", variable.String("a=b")),
		Entry("sequence", "v=[1, 2]", variable.String("[1, 2]")),
	)

	DescribeTable(
		"it returns an error if a pair is malformed",
		func(pair string) {
			_, err := parseVariables([]string{pair})
			Expect(err).Should(HaveOccurred())
		},
		Entry("missing separator", "v"),
		Entry("missing name", "=1"),
		Entry("invalid YAML", "v=[1,"),
	)
})
