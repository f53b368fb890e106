package variable

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dogmatiq/marshalkit"
)

// Serialized is the binary representation of a Value.
type Serialized struct {
	// Type is the name of the value's type.
	Type string

	// MediaType is the media type of Data. It is only populated for object
	// values.
	MediaType string

	// Data is the binary representation of the value.
	Data []byte
}

// Serialize returns the binary representation of v.
//
// m is used to marshal object values. It may be nil if v is not an object.
func Serialize(m marshalkit.ValueMarshaler, v Value) (Serialized, error) {
	s := Serialized{Type: v.t.String()}

	switch v.t {
	case NullType:
	case BooleanType:
		s.Data = strconv.AppendBool(nil, v.v.(bool))
	case IntegerType:
		s.Data = strconv.AppendInt(nil, v.v.(int64), 10)
	case DoubleType:
		s.Data = strconv.AppendFloat(nil, v.v.(float64), 'g', -1, 64)
	case StringType:
		s.Data = []byte(v.v.(string))
	case BytesType:
		s.Data = v.v.([]byte)
	case DateType:
		s.Data = v.v.(time.Time).AppendFormat(nil, time.RFC3339Nano)
	case JSONType:
		s.Data = v.v.(json.RawMessage)
	case ObjectType:
		if m == nil {
			return Serialized{}, fmt.Errorf("can not serialize %T value, no marshaler configured", v.v)
		}

		p, err := m.Marshal(v.v)
		if err != nil {
			return Serialized{}, err
		}

		s.MediaType = p.MediaType
		s.Data = p.Data
	}

	return s, nil
}

// Deserialize returns the value represented by s.
//
// m is used to unmarshal object values. It may be nil if s is not an object.
func Deserialize(m marshalkit.ValueMarshaler, s Serialized) (Value, error) {
	t, err := ParseType(s.Type)
	if err != nil {
		return Value{}, err
	}

	switch t {
	case NullType:
		return Null(), nil
	case BooleanType:
		b, err := strconv.ParseBool(string(s.Data))
		return Boolean(b), err
	case IntegerType:
		i, err := strconv.ParseInt(string(s.Data), 10, 64)
		return Integer(i), err
	case DoubleType:
		f, err := strconv.ParseFloat(string(s.Data), 64)
		return Double(f), err
	case StringType:
		return String(string(s.Data)), nil
	case BytesType:
		return Bytes(s.Data), nil
	case DateType:
		d, err := time.Parse(time.RFC3339Nano, string(s.Data))
		return Date(d), err
	case JSONType:
		if !json.Valid(s.Data) {
			return Value{}, fmt.Errorf("stored JSON variable is not valid JSON")
		}
		return JSON(s.Data), nil
	default:
		if m == nil {
			return Value{}, fmt.Errorf("can not deserialize %s value, no marshaler configured", s.MediaType)
		}

		v, err := m.Unmarshal(marshalkit.Packet{
			MediaType: s.MediaType,
			Data:      s.Data,
		})
		if err != nil {
			return Value{}, err
		}

		return Object(v), nil
	}
}
