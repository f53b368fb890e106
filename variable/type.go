package variable

import "fmt"

// Type is the type of a variable value.
type Type int

const (
	// NullType is the type of the null value.
	NullType Type = iota

	// BooleanType is the type of boolean values.
	BooleanType

	// IntegerType is the type of signed 64-bit integer values.
	IntegerType

	// DoubleType is the type of 64-bit floating point values.
	DoubleType

	// StringType is the type of string values.
	StringType

	// BytesType is the type of binary values.
	BytesType

	// DateType is the type of time values.
	DateType

	// JSONType is the type of raw JSON documents.
	JSONType

	// ObjectType is the type of arbitrary Go values that are serialized using
	// a marshaler.
	ObjectType
)

var typeNames = [...]string{
	NullType:    "null",
	BooleanType: "boolean",
	IntegerType: "integer",
	DoubleType:  "double",
	StringType:  "string",
	BytesType:   "bytes",
	DateType:    "date",
	JSONType:    "json",
	ObjectType:  "object",
}

// String returns the name of the type.
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}

	return fmt.Sprintf("unknown(%d)", int(t))
}

// ParseType returns the type with the given name.
func ParseType(n string) (Type, error) {
	for t, name := range typeNames {
		if name == n {
			return Type(t), nil
		}
	}

	return 0, fmt.Errorf("unrecognized variable type '%s'", n)
}
