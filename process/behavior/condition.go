package behavior

import (
	"fmt"
	"strings"

	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/variable"
)

// Holds evaluates c against s. A nil condition always holds.
func Holds(c process.Condition, s process.Scope) (bool, error) {
	if c == nil {
		return true, nil
	}

	return c(s)
}

// Always is a condition that always holds.
func Always(process.Scope) (bool, error) {
	return true, nil
}

// IsTrue returns a condition that holds when the named variable is the boolean
// true.
func IsTrue(name string) process.Condition {
	return func(s process.Scope) (bool, error) {
		v, ok := s.Variable(name)
		if !ok {
			return false, nil
		}

		b, ok := v.AsBoolean()
		if !ok {
			return false, fmt.Errorf("variable '%s' is %s, not boolean", name, v.Type())
		}

		return b, nil
	}
}

// Not negates a condition.
func Not(c process.Condition) process.Condition {
	return func(s process.Scope) (bool, error) {
		ok, err := Holds(c, s)
		return !ok, err
	}
}

// And returns a condition that holds when all of cs hold.
func And(cs ...process.Condition) process.Condition {
	return func(s process.Scope) (bool, error) {
		for _, c := range cs {
			if ok, err := Holds(c, s); !ok || err != nil {
				return false, err
			}
		}
		return true, nil
	}
}

// Or returns a condition that holds when any of cs hold.
func Or(cs ...process.Condition) process.Condition {
	return func(s process.Scope) (bool, error) {
		for _, c := range cs {
			if ok, err := Holds(c, s); ok || err != nil {
				return ok, err
			}
		}
		return false, nil
	}
}

// Operator is a comparison operator.
type Operator string

// Comparison operators.
const (
	Eq Operator = "=="
	Ne Operator = "!="
	Lt Operator = "<"
	Le Operator = "<="
	Gt Operator = ">"
	Ge Operator = ">="
)

// Compare returns a condition that compares the named variable to a literal
// value.
//
// Numbers are compared numerically, strings lexically. Only Eq and Ne are
// supported for other types. A missing variable never satisfies the
// condition, except for Ne.
func Compare(name string, op Operator, lit variable.Value) process.Condition {
	return func(s process.Scope) (bool, error) {
		v, ok := s.Variable(name)
		if !ok {
			return op == Ne, nil
		}

		c, ordered, err := compare(v, lit)
		if err != nil {
			return false, fmt.Errorf("variable '%s': %w", name, err)
		}

		switch op {
		case Eq:
			return c == 0, nil
		case Ne:
			return c != 0, nil
		}

		if !ordered {
			return false, fmt.Errorf("variable '%s': operator %s is not supported for %s values", name, op, v.Type())
		}

		switch op {
		case Lt:
			return c < 0, nil
		case Le:
			return c <= 0, nil
		case Gt:
			return c > 0, nil
		case Ge:
			return c >= 0, nil
		default:
			return false, fmt.Errorf("unrecognized operator '%s'", op)
		}
	}
}

// compare returns -1, 0 or 1. ordered is false if the values have no
// ordering, in which case c is 0 only if they are equal.
func compare(a, b variable.Value) (c int, ordered bool, err error) {
	if x, ok := a.AsDouble(); ok {
		y, ok := b.AsDouble()
		if !ok {
			return 1, false, nil
		}

		switch {
		case x < y:
			return -1, true, nil
		case x > y:
			return 1, true, nil
		default:
			return 0, true, nil
		}
	}

	if x, ok := a.AsString(); ok {
		y, ok := b.AsString()
		if !ok {
			return 1, false, nil
		}

		return strings.Compare(x, y), true, nil
	}

	if x, ok := a.AsDate(); ok {
		y, ok := b.AsDate()
		if !ok {
			return 1, false, nil
		}

		return x.Compare(y), true, nil
	}

	if variable.Equal(a, b) {
		return 0, false, nil
	}

	return 1, false, nil
}
