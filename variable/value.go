package variable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// Value is a typed variable value.
//
// The zero value is the null value.
type Value struct {
	t Type
	v interface{}
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Boolean returns a boolean value.
func Boolean(b bool) Value {
	return Value{BooleanType, b}
}

// Integer returns an integer value.
func Integer(i int64) Value {
	return Value{IntegerType, i}
}

// Double returns a floating-point value.
func Double(f float64) Value {
	return Value{DoubleType, f}
}

// String returns a string value.
func String(s string) Value {
	return Value{StringType, s}
}

// Bytes returns a binary value. The slice is copied.
func Bytes(b []byte) Value {
	return Value{BytesType, append([]byte(nil), b...)}
}

// Date returns a time value.
func Date(t time.Time) Value {
	return Value{DateType, t}
}

// JSON returns a raw JSON value.
//
// It panics if data is not valid JSON.
func JSON(data []byte) Value {
	if !json.Valid(data) {
		panic("invalid JSON document")
	}

	return Value{JSONType, json.RawMessage(append([]byte(nil), data...))}
}

// Object returns a value containing an arbitrary Go value. Object values are
// serialized using a marshalkit.ValueMarshaler when they are persisted.
func Object(v interface{}) Value {
	if v == nil {
		return Null()
	}

	return Value{ObjectType, v}
}

// Of returns a value for the Go value x, inferring its type.
//
// Values that do not map to one of the scalar types are stored as objects.
func Of(x interface{}) Value {
	switch x := x.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case bool:
		return Boolean(x)
	case int:
		return Integer(int64(x))
	case int8:
		return Integer(int64(x))
	case int16:
		return Integer(int64(x))
	case int32:
		return Integer(int64(x))
	case int64:
		return Integer(x)
	case uint8:
		return Integer(int64(x))
	case uint16:
		return Integer(int64(x))
	case uint32:
		return Integer(int64(x))
	case float32:
		return Double(float64(x))
	case float64:
		return Double(x)
	case string:
		return String(x)
	case []byte:
		return Bytes(x)
	case time.Time:
		return Date(x)
	case json.RawMessage:
		return JSON(x)
	default:
		return Object(x)
	}
}

// Type returns the type of the value.
func (v Value) Type() Type {
	return v.t
}

// IsNull returns true if v is the null value.
func (v Value) IsNull() bool {
	return v.t == NullType
}

// Interface returns the underlying Go value.
func (v Value) Interface() interface{} {
	return v.v
}

// AsBoolean returns the value as a bool. ok is false if v is not a boolean.
func (v Value) AsBoolean() (b bool, ok bool) {
	b, ok = v.v.(bool)
	return b, ok && v.t == BooleanType
}

// AsInteger returns the value as an int64. ok is false if v is not an integer.
func (v Value) AsInteger() (i int64, ok bool) {
	i, ok = v.v.(int64)
	return i, ok && v.t == IntegerType
}

// AsDouble returns the value as a float64. Integers are converted.
func (v Value) AsDouble() (float64, bool) {
	switch x := v.v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

// AsString returns the value as a string. ok is false if v is not a string.
func (v Value) AsString() (s string, ok bool) {
	s, ok = v.v.(string)
	return s, ok && v.t == StringType
}

// AsDate returns the value as a time. ok is false if v is not a date.
func (v Value) AsDate() (t time.Time, ok bool) {
	t, ok = v.v.(time.Time)
	return t, ok
}

// String returns a human-readable representation of the value.
func (v Value) String() string {
	switch v.t {
	case NullType:
		return "null"
	case BytesType:
		return fmt.Sprintf("bytes(%d)", len(v.v.([]byte)))
	case DateType:
		return v.v.(time.Time).Format(time.RFC3339Nano)
	case JSONType:
		return string(v.v.(json.RawMessage))
	case StringType:
		return fmt.Sprintf("%q", v.v)
	default:
		return fmt.Sprintf("%v", v.v)
	}
}

// Equal returns true if a and b have the same type and the same content.
func Equal(a, b Value) bool {
	if a.t != b.t {
		return false
	}

	switch a.t {
	case NullType:
		return true
	case BytesType:
		return bytes.Equal(a.v.([]byte), b.v.([]byte))
	case JSONType:
		return bytes.Equal(a.v.(json.RawMessage), b.v.(json.RawMessage))
	case DateType:
		return a.v.(time.Time).Equal(b.v.(time.Time))
	case ObjectType:
		return reflect.DeepEqual(a.v, b.v)
	default:
		return a.v == b.v
	}
}

// Map is a set of named values.
type Map map[string]Value

// MapOf returns a Map built from native Go values.
func MapOf(m map[string]interface{}) Map {
	if m == nil {
		return nil
	}

	r := make(Map, len(m))
	for k, v := range m {
		r[k] = Of(v)
	}

	return r
}

// Native returns the values in m as native Go values.
func (m Map) Native() map[string]interface{} {
	r := make(map[string]interface{}, len(m))
	for k, v := range m {
		r[k] = v.Interface()
	}

	return r
}
