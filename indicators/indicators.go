// Package indicators provides technical analysis indicators over price series.
//
// Every function is pure and batch oriented: it takes a series of length L
// and returns a series of length L. Entries inside an indicator's warm-up
// period are undefined (Value.OK is false). Short inputs and non-positive
// periods produce an all-undefined result instead of an error.
package indicators

import "strconv"

// Value is an optional indicator reading.
type Value struct {
	V  float64
	OK bool
}

// Some wraps a defined reading.
func Some(v float64) Value { return Value{V: v, OK: true} }

func (v Value) String() string {
	if !v.OK {
		return "n/a"
	}
	return strconv.FormatFloat(v.V, 'f', 4, 64)
}

// Or returns the reading, or def when undefined.
func (v Value) Or(def float64) float64 {
	if !v.OK {
		return def
	}
	return v.V
}

// Last returns the final entry of vs, undefined when vs is empty.
func Last(vs []Value) Value {
	if len(vs) == 0 {
		return Value{}
	}
	return vs[len(vs)-1]
}

// Warmup counts the leading undefined entries of vs.
func Warmup(vs []Value) int {
	for i, v := range vs {
		if v.OK {
			return i
		}
	}
	return len(vs)
}
