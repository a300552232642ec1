package types

import "github.com/moznion/go-optional"

// Value is an indicator value that may be undefined.
type Value = optional.Option[float64]

// Defined wraps v as a defined value.
func Defined(v float64) Value {
	return optional.Some(v)
}

// Undefined returns the undefined value.
func Undefined() Value {
	return optional.None[float64]()
}

// Combine applies fn when both operands are defined and is undefined otherwise.
func Combine(a, b Value, fn func(x, y float64) float64) Value {
	if a.IsNone() || b.IsNone() {
		return Undefined()
	}

	return Defined(fn(a.Unwrap(), b.Unwrap()))
}

// Compare applies the predicate when both operands are defined and is false otherwise.
func Compare(a, b Value, pred func(x, y float64) bool) bool {
	if a.IsNone() || b.IsNone() {
		return false
	}

	return pred(a.Unwrap(), b.Unwrap())
}

// Less reports a < b, false when either side is undefined.
func Less(a, b Value) bool {
	return Compare(a, b, func(x, y float64) bool { return x < y })
}

// Greater reports a > b, false when either side is undefined.
func Greater(a, b Value) bool {
	return Compare(a, b, func(x, y float64) bool { return x > y })
}

// LessOrEqual reports a <= b, false when either side is undefined.
func LessOrEqual(a, b Value) bool {
	return Compare(a, b, func(x, y float64) bool { return x <= y })
}
