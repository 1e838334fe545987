// SPDX-License-Identifier: MIT

package value

import (
	"encoding/binary"
	"math"
	"strconv"
)

// DefaultOneTolerance is the tolerance Float64 uses in IsOne when none is given.
const DefaultOneTolerance = 1e-9

// Float64 is the descriptor for float64 entries.
// Eps is the absolute tolerance applied by IsOne only; a zero Eps makes IsOne exact.
type Float64 struct {
	Eps float64
}

var (
	_ Arithmetic[float64] = Float64{}
	_ Divider[float64]    = Float64{}
	_ Orderer[float64]    = Float64{}
)

// NewFloat64 returns a Float64 descriptor with DefaultOneTolerance.
func NewFloat64() Float64 { return Float64{Eps: DefaultOneTolerance} }

func (Float64) Zero() float64            { return 0 }
func (Float64) One() float64             { return 1 }
func (Float64) Add(a, b float64) float64 { return a + b }
func (Float64) Sub(a, b float64) float64 { return a - b }
func (Float64) Mul(a, b float64) float64 { return a * b }
func (Float64) Neg(a float64) float64    { return -a }
func (Float64) Div(a, b float64) float64 { return a / b }
func (Float64) Less(a, b float64) bool   { return a < b }
func (Float64) Equal(a, b float64) bool  { return a == b }
func (Float64) IsZero(a float64) bool    { return a == 0 }
func (Float64) Name() string             { return "float64" }

// IsOne reports |a-1| <= Eps.
func (f Float64) IsOne(a float64) bool {
	if f.Eps == 0 {
		return a == 1
	}

	return math.Abs(a-1) <= f.Eps
}

// AppendBinary writes the IEEE bits of a; -0 is folded onto +0 so that Equal values hash alike.
func (Float64) AppendBinary(dst []byte, a float64) []byte {
	if a == 0 {
		a = 0
	}

	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(a))
}

// Format uses the shortest representation that round-trips.
func (Float64) Format(a float64) string {
	return strconv.FormatFloat(a, 'g', -1, 64)
}
