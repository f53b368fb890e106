package variable_test

import (
	"reflect"
	"time"

	"github.com/dogmatiq/marshalkit/codec"
	"github.com/dogmatiq/marshalkit/codec/json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/operaton/operaton-sub059/variable"
)

type order struct {
	ID    string
	Total int
}

var _ = Describe("func Serialize()", func() {
	var marshaler *codec.Marshaler

	BeforeEach(func() {
		var err error
		marshaler, err = codec.NewMarshaler(
			[]reflect.Type{reflect.TypeOf(order{})},
			[]codec.Codec{&json.Codec{}},
		)
		Expect(err).ShouldNot(HaveOccurred())
	})

	DescribeTable(
		"it produces data that Deserialize() accepts",
		func(v variable.Value) {
			s, err := variable.Serialize(marshaler, v)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(s.Type).To(Equal(v.Type().String()))

			r, err := variable.Deserialize(marshaler, s)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(variable.Equal(r, v)).To(BeTrue(), "%s != %s", r, v)
		},
		Entry("null", variable.Null()),
		Entry("boolean", variable.Boolean(true)),
		Entry("integer", variable.Integer(-42)),
		Entry("double", variable.Double(0.1)),
		Entry("string", variable.String("hello")),
		Entry("bytes", variable.Bytes([]byte{0, 1, 2})),
		Entry("date", variable.Date(time.Date(2020, 1, 2, 3, 4, 5, 6, time.UTC))),
		Entry("json", variable.JSON([]byte(`{"a":[1,2]}`))),
		Entry("object", variable.Object(order{"o1", 10})),
	)

	It("populates the media type of object values", func() {
		s, err := variable.Serialize(marshaler, variable.Object(order{}))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(s.MediaType).NotTo(BeEmpty())
	})

	It("returns an error if an object is serialized without a marshaler", func() {
		_, err := variable.Serialize(nil, variable.Object(order{}))
		Expect(err).Should(HaveOccurred())
	})

	It("returns an error if the stored type is unrecognized", func() {
		_, err := variable.Deserialize(nil, variable.Serialized{Type: "<unknown>"})
		Expect(err).To(MatchError("unrecognized variable type '<unknown>'"))
	})
})
