package unit

import (
	"fmt"
	"math"
	"strconv"
)

// MaxDenominator bounds the denominator considered when snapping a float
// power to a rational. Floats that are not within tolerance of a rational
// with a denominator at or below this bound stay floats. Exact rational
// arithmetic is never re-snapped, so fractions like 250/1331 survive as
// long as they were produced exactly.
const MaxDenominator = 100

// rationalTol is the relative tolerance used when deciding whether a float
// is close enough to a bounded-denominator rational.
const rationalTol = 1e-10

// ExponentKind discriminates the closed set of exponent representations.
type ExponentKind uint8

const (
	KindInt ExponentKind = iota
	KindRational
	KindFloat
)

// Exponent is an exact unit power: an integer, a rational in lowest terms,
// or a float fallback when no bounded-denominator rational reproduces the
// value. Construct via NewInt, NewRational or Normalize; the zero value is
// the integer 0.
type Exponent struct {
	kind ExponentKind
	num  int64 // integer value, or rational numerator
	den  int64 // rational denominator, always >= 2
	f    float64
}

// NewInt returns the integer exponent n.
func NewInt(n int64) Exponent {
	return Exponent{kind: KindInt, num: n}
}

// NewRational returns the exact rational num/den reduced to lowest terms.
// A denominator of 1 after reduction yields an integer exponent, so
// caller-supplied exact rationals are preserved verbatim and never routed
// through the float snapper.
func NewRational(num, den int64) (Exponent, error) {
	if den == 0 {
		return Exponent{}, fmt.Errorf("%w: rational exponent with zero denominator", ErrInvalidConstruction)
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs64(num), den); g > 1 {
		num /= g
		den /= g
	}
	if den == 1 {
		return NewInt(num), nil
	}
	return Exponent{kind: KindRational, num: num, den: den}, nil
}

// Normalize canonicalizes a real power: exact integers (including negative
// zero and values within tolerance of an integer) become KindInt, values
// within tolerance of a rational with denominator <= MaxDenominator become
// KindRational, everything else stays a float. Normalize is idempotent.
func Normalize(x float64) Exponent {
	if x == 0 {
		return NewInt(0)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Exponent{kind: KindFloat, f: x}
	}
	if r := math.Round(x); math.Abs(x-r) <= rationalTol*math.Max(1, math.Abs(x)) {
		if r >= -1<<62 && r <= 1<<62 {
			return NewInt(int64(r))
		}
		return Exponent{kind: KindFloat, f: x}
	}
	if num, den, ok := bestRational(x, MaxDenominator); ok {
		e, err := NewRational(num, den)
		if err == nil {
			return e
		}
	}
	return Exponent{kind: KindFloat, f: x}
}

// bestRational finds the continued-fraction convergent of x with the
// largest denominator not exceeding maxDen, and reports whether it
// reproduces x within rationalTol.
func bestRational(x float64, maxDen int64) (int64, int64, bool) {
	var (
		p0, p1 int64 = 1, 0 // numerators p_{i-2}, p_{i-1}
		q0, q1 int64 = 0, 1 // denominators
	)
	b := x
	for i := 0; i < 64; i++ {
		fa := math.Floor(b)
		if fa > float64(1<<62) || fa < -float64(1<<62) {
			break
		}
		a := int64(fa)
		p := a*p0 + p1
		q := a*q0 + q1
		if q > maxDen || q <= 0 {
			break
		}
		p1, p0 = p0, p
		q1, q0 = q0, q
		frac := b - fa
		if frac <= 1e-15 {
			break
		}
		b = 1 / frac
	}
	if q0 < 1 {
		return 0, 0, false
	}
	approx := float64(p0) / float64(q0)
	if math.Abs(x-approx) <= rationalTol*math.Max(1, math.Abs(x)) {
		return p0, q0, true
	}
	return 0, 0, false
}

// Kind reports the representation in use.
func (e Exponent) Kind() ExponentKind { return e.kind }

// Num returns the integer value or rational numerator. Zero for floats.
func (e Exponent) Num() int64 { return e.num }

// Den returns the rational denominator, or 1 for integers.
func (e Exponent) Den() int64 {
	if e.kind == KindRational {
		return e.den
	}
	return 1
}

// Float64 returns the numeric value of the exponent.
func (e Exponent) Float64() float64 {
	switch e.kind {
	case KindInt:
		return float64(e.num)
	case KindRational:
		return float64(e.num) / float64(e.den)
	default:
		return e.f
	}
}

// IsZero reports whether the exponent is exactly zero.
func (e Exponent) IsZero() bool {
	switch e.kind {
	case KindFloat:
		return e.f == 0
	default:
		return e.num == 0
	}
}

// IsOne reports whether the exponent is exactly the integer one.
func (e Exponent) IsOne() bool {
	return e.kind == KindInt && e.num == 1
}

// IsExact reports whether the exponent is an integer or exact rational.
func (e Exponent) IsExact() bool { return e.kind != KindFloat }

// Add returns the exact sum of two exponents. Integer and rational
// operands combine exactly; any float operand degrades the sum to a float
// which is then renormalized, so 1/2 + 1/2 comes back as the integer 1.
func (e Exponent) Add(o Exponent) Exponent {
	if e.kind == KindFloat || o.kind == KindFloat {
		return Normalize(e.Float64() + o.Float64())
	}
	num := e.num*o.Den() + o.num*e.Den()
	den := e.Den() * o.Den()
	r, err := NewRational(num, den)
	if err != nil {
		return Normalize(e.Float64() + o.Float64())
	}
	return r
}

// Sub returns e - o with the same exactness rules as Add.
func (e Exponent) Sub(o Exponent) Exponent { return e.Add(o.Neg()) }

// Mul returns the exact product of two exponents. A float operand
// degrades the product to a float which is renormalized, snapping results
// like 2 * 0.5 back to the integer 1.
func (e Exponent) Mul(o Exponent) Exponent {
	if e.kind == KindFloat || o.kind == KindFloat {
		return Normalize(e.Float64() * o.Float64())
	}
	r, err := NewRational(e.num*o.num, e.Den()*o.Den())
	if err != nil {
		return Normalize(e.Float64() * o.Float64())
	}
	return r
}

// Div returns e / o. Exact operands divide exactly; division by an exact
// zero yields a float Inf rather than panicking.
func (e Exponent) Div(o Exponent) Exponent {
	if e.kind == KindFloat || o.kind == KindFloat || o.IsZero() {
		return Normalize(e.Float64() / o.Float64())
	}
	r, err := NewRational(e.num*o.Den(), e.Den()*o.num)
	if err != nil {
		return Normalize(e.Float64() / o.Float64())
	}
	return r
}

// Neg returns the exponent with its sign flipped, preserving exactness.
func (e Exponent) Neg() Exponent {
	switch e.kind {
	case KindFloat:
		return Exponent{kind: KindFloat, f: -e.f}
	case KindRational:
		return Exponent{kind: KindRational, num: -e.num, den: e.den}
	default:
		return NewInt(-e.num)
	}
}

// Equal reports numeric equality across representations, so the rational
// 1/2 equals the float 0.5.
func (e Exponent) Equal(o Exponent) bool {
	if e.kind != KindFloat && o.kind != KindFloat {
		return e.num == o.num && e.Den() == o.Den()
	}
	return e.Float64() == o.Float64()
}

func (e Exponent) String() string {
	switch e.kind {
	case KindInt:
		return strconv.FormatInt(e.num, 10)
	case KindRational:
		return fmt.Sprintf("%d/%d", e.num, e.den)
	default:
		return strconv.FormatFloat(e.f, 'g', -1, 64)
	}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
