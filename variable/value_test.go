package variable_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/variable"
)

var _ = Describe("type Value", func() {
	Describe("func Of()", func() {
		DescribeTable(
			"it infers the type of native values",
			func(x interface{}, expect variable.Type) {
				Expect(variable.Of(x).Type()).To(Equal(expect))
			},
			Entry("nil", nil, variable.NullType),
			Entry("bool", true, variable.BooleanType),
			Entry("int", 1, variable.IntegerType),
			Entry("int32", int32(1), variable.IntegerType),
			Entry("float64", 1.5, variable.DoubleType),
			Entry("string", "x", variable.StringType),
			Entry("[]byte", []byte("x"), variable.BytesType),
			Entry("time.Time", time.Now(), variable.DateType),
			Entry("json.RawMessage", json.RawMessage(`{}`), variable.JSONType),
			Entry("struct", struct{ A int }{1}, variable.ObjectType),
		)

		It("returns Value arguments unchanged", func() {
			v := variable.String("x")
			Expect(variable.Equal(variable.Of(v), v)).To(BeTrue())
		})
	})

	Describe("func AsDouble()", func() {
		It("converts integers", func() {
			f, ok := variable.Integer(3).AsDouble()
			Expect(ok).To(BeTrue())
			Expect(f).To(Equal(3.0))
		})

		It("returns false for non-numeric values", func() {
			_, ok := variable.String("3").AsDouble()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("func Bytes()", func() {
		It("copies the slice", func() {
			b := []byte("abc")
			v := variable.Bytes(b)
			b[0] = 'x'
			Expect(v.Interface()).To(Equal([]byte("abc")))
		})
	})

	Describe("func JSON()", func() {
		It("panics if the document is invalid", func() {
			Expect(func() {
				variable.JSON([]byte(`{`))
			}).To(Panic())
		})
	})

	Describe("func Equal()", func() {
		It("returns false for values of different types", func() {
			Expect(variable.Equal(variable.Integer(1), variable.Double(1))).To(BeFalse())
		})

		It("compares dates by instant", func() {
			t := time.Now()
			Expect(variable.Equal(variable.Date(t), variable.Date(t.UTC()))).To(BeTrue())
		})

		It("compares objects deeply", func() {
			Expect(variable.Equal(
				variable.Object(map[string]int{"a": 1}),
				variable.Object(map[string]int{"a": 1}),
			)).To(BeTrue())
		})
	})
})

var _ = Describe("type Map", func() {
	It("round-trips native values", func() {
		m := variable.MapOf(map[string]interface{}{
			"a": "x",
			"b": int64(2),
		})

		Expect(m.Native()).To(Equal(map[string]interface{}{
			"a": "x",
			"b": int64(2),
		}))
	})
})
