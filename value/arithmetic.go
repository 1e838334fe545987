// SPDX-License-Identifier: MIT

package value

import "errors"

// ErrNotSupported marks an operation that is undefined for a value type
// (e.g. division of intervals).
var ErrNotSupported = errors.New("value: operation not supported for value type")

// Arithmetic is the minimal ring-like descriptor every entry type provides.
// All methods are pure; implementations must be safe for concurrent use.
type Arithmetic[V any] interface {
	// Zero returns the additive identity.
	Zero() V
	// One returns the multiplicative identity.
	One() V
	// Add returns a + b.
	Add(a, b V) V
	// Sub returns a - b.
	Sub(a, b V) V
	// Mul returns a * b.
	Mul(a, b V) V
	// Neg returns -a.
	Neg(a V) V
	// Equal reports exact equality of a and b.
	Equal(a, b V) bool
	// IsZero reports whether a equals Zero().
	IsZero(a V) bool
	// IsOne reports whether a is one under the type's comparator
	// (Float64 may apply a tolerance here, Equal never does).
	IsOne(a V) bool
	// AppendBinary appends a canonical byte encoding of a, used for hashing.
	// Values that are Equal must encode identically.
	AppendBinary(dst []byte, a V) []byte
	// Format renders a for diagnostics and String() output.
	Format(a V) string
	// Name identifies the value type in error messages.
	Name() string
}

// Divider is implemented by descriptors whose type has a well-defined quotient.
type Divider[V any] interface {
	// Div returns a / b. Callers guarantee !IsZero(b).
	Div(a, b V) V
}

// Orderer is implemented by totally ordered value types.
type Orderer[V any] interface {
	// Less reports a < b.
	Less(a, b V) bool
}

// ConstantChecker is implemented by descriptors whose values may be symbolic.
// Types without it are treated as always constant.
type ConstantChecker[V any] interface {
	IsConstant(a V) bool
}

// Capabilities summarises the optional interfaces a descriptor implements.
type Capabilities struct {
	Division bool
	Ordering bool
	Symbolic bool
}

// Supports reports the optional capabilities of ops.
func Supports[V any](ops Arithmetic[V]) Capabilities {
	_, div := ops.(Divider[V])
	_, ord := ops.(Orderer[V])
	_, sym := ops.(ConstantChecker[V])

	return Capabilities{Division: div, Ordering: ord, Symbolic: sym}
}

// AsDivider returns the Divider view of ops or ErrNotSupported.
func AsDivider[V any](ops Arithmetic[V]) (Divider[V], error) {
	d, ok := ops.(Divider[V])
	if !ok {
		return nil, ErrNotSupported
	}

	return d, nil
}

// IsConstant reports whether a is a constant under ops. Descriptors without
// ConstantChecker hold only constants.
func IsConstant[V any](ops Arithmetic[V], a V) bool {
	if c, ok := ops.(ConstantChecker[V]); ok {
		return c.IsConstant(a)
	}

	return true
}

// Sum folds Add over xs starting from Zero().
func Sum[V any](ops Arithmetic[V], xs []V) V {
	acc := ops.Zero()
	for _, x := range xs {
		acc = ops.Add(acc, x)
	}

	return acc
}
