// Package multi is the multiple-value core: tuples, the scope chain,
// the elementwise mapper, and the destructuring binders.
package multi

import (
	"fmt"
	"strings"
)

// Value is any runtime value.
type Value = interface{}

// Tuple is the ordered outputs of one multi-valued evaluation. It is
// distinct from a slice.
type Tuple struct {
	Values []Value
}

// NewTuple returns a new Tuple.
func NewTuple(values ...Value) Tuple {
	return Tuple{
		Values: values,
	}
}

// Len returns the number of values in the tuple.
func (t Tuple) Len() int {
	return len(t.Values)
}

// At returns the i-th value. Positions the producing call did not fill
// read as Absent.
func (t Tuple) At(i int) (Value, bool) {
	if i < 0 || i >= len(t.Values) {
		return Absent, false
	}
	return t.Values[i], true
}

// First returns the single-value view of the tuple.
func (t Tuple) First() Value {
	if len(t.Values) == 0 {
		return Absent
	}
	return t.Values[0]
}

// Lift coerces a plain value to a one-element Tuple. A Tuple passes
// through unchanged.
func Lift(v Value) Tuple {
	if t, ok := v.(Tuple); ok {
		return t
	}
	return NewTuple(v)
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Values))
	for i, v := range t.Values {
		parts[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
