package unit

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Mul returns a * b. Non-composite operands are treated as single-base
// composites; shared bases merge by adding exponents and zero results are
// dropped, so m/s * s is exactly m.
func Mul(a, b Unit) (Unit, error) {
	if err := checkOperand(a); err != nil {
		return nil, err
	}
	if err := checkOperand(b); err != nil {
		return nil, err
	}
	return NewComposite(1, []Unit{a, b}, []Exponent{NewInt(1), NewInt(1)})
}

// Div returns a / b, equivalent to a * b^-1.
func Div(a, b Unit) (Unit, error) {
	if err := checkOperand(a); err != nil {
		return nil, err
	}
	if err := checkOperand(b); err != nil {
		return nil, err
	}
	return NewComposite(1, []Unit{a, b}, []Exponent{NewInt(1), NewInt(-1)})
}

// Pow raises u to the real power p. The power is normalized first, so
// (u^p)^(1/p) snaps back to u's exact exponents even though 1/p is only a
// float approximation of the reciprocal.
func Pow(u Unit, p float64) (Unit, error) {
	return PowExp(u, Normalize(p))
}

// PowExp raises u to an exact exponent, preserving caller-supplied
// rationals verbatim.
func PowExp(u Unit, p Exponent) (Unit, error) {
	if err := checkOperand(u); err != nil {
		return nil, err
	}
	if p.IsZero() {
		return One, nil
	}
	return NewComposite(1, []Unit{u}, []Exponent{p})
}

// Reciprocal returns u^-1.
func Reciprocal(u Unit) (Unit, error) {
	return PowExp(u, NewInt(-1))
}

func checkOperand(u Unit) error {
	if u == nil {
		return fmt.Errorf("%w: nil unit operand", ErrInvalidConstruction)
	}
	if v, ok := u.(*Unrecognized); ok {
		return fmt.Errorf("%w: %q", ErrUnrecognized, v.name)
	}
	return nil
}

// powScale raises a scale to an exponent, switching to complex arithmetic
// for negative real scales under non-integral powers.
func powScale(s complex128, p Exponent) (complex128, error) {
	if p.IsZero() {
		return 1, nil
	}
	if p.IsOne() || s == 1 {
		if p.IsOne() {
			return s, nil
		}
		return 1, nil
	}
	var out complex128
	pf := p.Float64()
	if imag(s) == 0 {
		re := real(s)
		if re > 0 || isIntegral(p) {
			out = complex(math.Pow(re, pf), 0)
		} else {
			out = cmplx.Pow(s, complex(pf, 0))
		}
	} else {
		out = cmplx.Pow(s, complex(pf, 0))
	}
	if cmplx.IsNaN(out) || cmplx.IsInf(out) {
		return 0, fmt.Errorf("%w: scale %v under power %s", ErrInvalidConstruction, s, p)
	}
	return out, nil
}

func isIntegral(p Exponent) bool {
	return p.Kind() == KindInt || (p.Kind() == KindFloat && p.Float64() == math.Trunc(p.Float64()))
}
