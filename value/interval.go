// SPDX-License-Identifier: MIT

package value

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Interval is a closed real interval [Lo, Hi] with Lo <= Hi.
type Interval struct {
	Lo, Hi float64
}

// Point returns the degenerate interval [x, x].
func Point(x float64) Interval { return Interval{Lo: x, Hi: x} }

// NewInterval returns [lo, hi], swapping the bounds when given in reverse.
func NewInterval(lo, hi float64) Interval {
	if lo > hi {
		lo, hi = hi, lo
	}

	return Interval{Lo: lo, Hi: hi}
}

// Width returns Hi - Lo.
func (iv Interval) Width() float64 { return iv.Hi - iv.Lo }

// Contains reports whether x lies in iv.
func (iv Interval) Contains(x float64) bool { return iv.Lo <= x && x <= iv.Hi }

// Intervals is the descriptor for Interval entries. It implements neither
// Divider nor Orderer.
type Intervals struct{}

var (
	_ Arithmetic[Interval]      = Intervals{}
	_ ConstantChecker[Interval] = Intervals{}
)

func (Intervals) Zero() Interval { return Interval{} }
func (Intervals) One() Interval  { return Point(1) }

func (Intervals) Add(a, b Interval) Interval {
	return Interval{Lo: a.Lo + b.Lo, Hi: a.Hi + b.Hi}
}

func (Intervals) Sub(a, b Interval) Interval {
	return Interval{Lo: a.Lo - b.Hi, Hi: a.Hi - b.Lo}
}

// Mul takes the hull of the four endpoint products.
func (Intervals) Mul(a, b Interval) Interval {
	p1, p2, p3, p4 := a.Lo*b.Lo, a.Lo*b.Hi, a.Hi*b.Lo, a.Hi*b.Hi

	return Interval{
		Lo: math.Min(math.Min(p1, p2), math.Min(p3, p4)),
		Hi: math.Max(math.Max(p1, p2), math.Max(p3, p4)),
	}
}

func (Intervals) Neg(a Interval) Interval    { return Interval{Lo: -a.Hi, Hi: -a.Lo} }
func (Intervals) Equal(a, b Interval) bool   { return a.Lo == b.Lo && a.Hi == b.Hi }
func (Intervals) IsZero(a Interval) bool     { return a.Lo == 0 && a.Hi == 0 }
func (Intervals) IsOne(a Interval) bool      { return a.Lo == 1 && a.Hi == 1 }
func (Intervals) IsConstant(a Interval) bool { return a.Lo == a.Hi }
func (Intervals) Name() string               { return "interval" }

func (Intervals) AppendBinary(dst []byte, a Interval) []byte {
	lo, hi := a.Lo, a.Hi
	if lo == 0 {
		lo = 0
	}
	if hi == 0 {
		hi = 0
	}
	dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(lo))

	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(hi))
}

func (Intervals) Format(a Interval) string {
	if a.Lo == a.Hi {
		return fmt.Sprintf("%g", a.Lo)
	}

	return fmt.Sprintf("[%g, %g]", a.Lo, a.Hi)
}
