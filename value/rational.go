// SPDX-License-Identifier: MIT

package value

import "math/big"

// Rational is the descriptor for exact *big.Rat entries.
// A nil *big.Rat is read as zero. Results are always freshly allocated.
type Rational struct{}

var (
	_ Arithmetic[*big.Rat] = Rational{}
	_ Divider[*big.Rat]    = Rational{}
	_ Orderer[*big.Rat]    = Rational{}
)

// zeroRat and oneRat are read-only.
var (
	zeroRat = new(big.Rat)
	oneRat  = big.NewRat(1, 1)
)

func rat(a *big.Rat) *big.Rat {
	if a == nil {
		return zeroRat
	}

	return a
}

// NewRat returns the rational a/b. It panics when b == 0, like big.NewRat.
func NewRat(a, b int64) *big.Rat { return big.NewRat(a, b) }

func (Rational) Zero() *big.Rat { return new(big.Rat) }
func (Rational) One() *big.Rat  { return big.NewRat(1, 1) }

func (Rational) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(rat(a), rat(b)) }
func (Rational) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(rat(a), rat(b)) }
func (Rational) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(rat(a), rat(b)) }
func (Rational) Neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(rat(a)) }

// Div returns a / b; b must be non-zero.
func (Rational) Div(a, b *big.Rat) *big.Rat { return new(big.Rat).Quo(rat(a), rat(b)) }

func (Rational) Less(a, b *big.Rat) bool  { return rat(a).Cmp(rat(b)) < 0 }
func (Rational) Equal(a, b *big.Rat) bool { return rat(a).Cmp(rat(b)) == 0 }
func (Rational) IsZero(a *big.Rat) bool   { return rat(a).Sign() == 0 }
func (Rational) IsOne(a *big.Rat) bool    { return rat(a).Cmp(oneRat) == 0 }
func (Rational) Name() string             { return "rational" }

// AppendBinary encodes the normalised "num/den" form; big.Rat keeps fractions reduced.
func (Rational) AppendBinary(dst []byte, a *big.Rat) []byte {
	return append(dst, rat(a).String()...)
}

// Format renders a as num/den, or num alone for integers.
func (Rational) Format(a *big.Rat) string {
	return rat(a).RatString()
}
