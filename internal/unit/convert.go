package unit

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Converter maps a numeric value expressed in one unit to the same
// physical quantity expressed in another.
type Converter func(float64) float64

// Slice applies the converter to every element, returning a new slice.
func (c Converter) Slice(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = c(v)
	}
	return out
}

// Equivalency declares a transform between two dimensionally distinct
// units. Forward maps a value in From to a value in To; Backward maps the
// other way. A nil Backward reuses Forward in both directions, the usual
// case for reciprocal relations like spectral wavelength/frequency. A nil
// Forward makes the pair a pure dimensional bridge.
type Equivalency struct {
	From     Unit
	To       Unit
	Forward  func(float64) float64
	Backward func(float64) float64
}

type orientation struct {
	from Unit
	to   Unit
	fn   func(float64) float64
}

func (e Equivalency) orientations() []orientation {
	back := e.Backward
	if back == nil {
		back = e.Forward
	}
	return []orientation{
		{from: e.From, to: e.To, fn: e.Forward},
		{from: e.To, to: e.From, fn: back},
	}
}

// GetConverter builds a Converter from one unit to another. Units sharing
// a decomposition convert by pure scale ratio. Otherwise each supplied
// equivalency is tried as a bridge, with linear rescales on both sides of
// its transform. Dimensionally unreachable pairs are an error naming both
// physical types.
func GetConverter(from, to Unit, eqs ...Equivalency) (Converter, error) {
	if err := checkOperand(from); err != nil {
		return nil, err
	}
	if err := checkOperand(to); err != nil {
		return nil, err
	}

	df, err := decompose(from)
	if err != nil {
		return nil, err
	}
	dt, err := decompose(to)
	if err != nil {
		return nil, err
	}

	if sameDimensions(df, dt) {
		return linearConverter(df.scale, dt.scale)
	}

	for _, eq := range eqs {
		for _, o := range eq.orientations() {
			da, err := decompose(o.from)
			if err != nil {
				continue
			}
			db, err := decompose(o.to)
			if err != nil {
				continue
			}
			if !sameDimensions(df, da) || !sameDimensions(db, dt) {
				continue
			}
			k1, err := linearConverter(df.scale, da.scale)
			if err != nil {
				continue
			}
			k2, err := linearConverter(db.scale, dt.scale)
			if err != nil {
				continue
			}
			fn := o.fn
			if fn == nil {
				return func(v float64) float64 { return k2(k1(v)) }, nil
			}
			return func(v float64) float64 { return k2(fn(k1(v))) }, nil
		}
	}

	return nil, fmt.Errorf("%w: %q (%s) and %q (%s)",
		ErrIncompatible, from.String(), PhysicalType(from), to.String(), PhysicalType(to))
}

// To converts a single value from one unit to another.
func To(value float64, from, to Unit, eqs ...Equivalency) (float64, error) {
	c, err := GetConverter(from, to, eqs...)
	if err != nil {
		return 0, err
	}
	return c(value), nil
}

// IsEquivalent reports whether a converter exists between the two units,
// optionally through the supplied equivalencies.
func IsEquivalent(a, b Unit, eqs ...Equivalency) bool {
	_, err := GetConverter(a, b, eqs...)
	return err == nil
}

// linearConverter turns two decomposition scales into a real multiplier.
// Residual imaginary parts mean the quantity cannot round-trip through a
// real-valued converter.
func linearConverter(from, to complex128) (Converter, error) {
	ratio := from / to
	if to == 0 || cmplx.IsNaN(ratio) || cmplx.IsInf(ratio) {
		return nil, fmt.Errorf("%w: degenerate scale ratio", ErrIncompatible)
	}
	if math.Abs(imag(ratio)) > scaleEps*cmplx.Abs(ratio) {
		return nil, fmt.Errorf("%w: conversion factor %v is not real", ErrIncompatible, ratio)
	}
	r := real(ratio)
	return func(v float64) float64 { return v * r }, nil
}
