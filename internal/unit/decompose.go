package unit

import (
	"fmt"
	"sort"
)

// decomposition is the flat canonical expansion of a unit: a single scale
// over irreducible bases sorted by exponent descending, then name.
type decomposition struct {
	scale  complex128
	bases  []*Irreducible
	powers []Exponent
}

func decompose(u Unit) (decomposition, error) {
	var (
		scale  complex128 = 1
		order  []*Irreducible
		merged = make(map[*Irreducible]int)
		powers []Exponent
	)

	var walk func(Unit, Exponent) error
	walk = func(u Unit, p Exponent) error {
		switch v := u.(type) {
		case *Irreducible:
			if i, ok := merged[v]; ok {
				powers[i] = powers[i].Add(p)
				return nil
			}
			merged[v] = len(order)
			order = append(order, v)
			powers = append(powers, p)
			return nil
		case *Named:
			return walk(v.represents, p)
		case *Composite:
			s, err := powScale(v.scale, p)
			if err != nil {
				return err
			}
			scale *= s
			for i, b := range v.bases {
				if err := walk(b, v.powers[i].Mul(p)); err != nil {
					return err
				}
			}
			return nil
		case *Unrecognized:
			return fmt.Errorf("%w: %q", ErrUnrecognized, v.name)
		default:
			return fmt.Errorf("%w: unsupported unit variant %T", ErrInvalidConstruction, u)
		}
	}
	if u == nil {
		return decomposition{}, fmt.Errorf("%w: nil unit", ErrInvalidConstruction)
	}
	if err := walk(u, NewInt(1)); err != nil {
		return decomposition{}, err
	}

	d := decomposition{scale: scale}
	for i, b := range order {
		if powers[i].IsZero() {
			continue
		}
		d.bases = append(d.bases, b)
		d.powers = append(d.powers, powers[i])
	}
	sortDecomposition(&d)
	return d, nil
}

// sortDecomposition orders bases by exponent descending, then by name, so
// physically identical units decompose to the identical sequence no matter
// how they were constructed. This is also why (m^2/s^2)^-1/2 comes out as
// s/m rather than m^-1 s.
func sortDecomposition(d *decomposition) {
	idx := make([]int, len(d.bases))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := d.powers[idx[a]].Float64(), d.powers[idx[b]].Float64()
		if pa != pb {
			return pa > pb
		}
		return d.bases[idx[a]].Name() < d.bases[idx[b]].Name()
	})
	bases := make([]*Irreducible, len(idx))
	powers := make([]Exponent, len(idx))
	for i, j := range idx {
		bases[i] = d.bases[j]
		powers[i] = d.powers[j]
	}
	d.bases = bases
	d.powers = powers
}

// Decompose reduces a unit to its canonical expansion over irreducible
// bases with a single combined scale. The result is itself a unit, so
// decomposing twice is a no-op; a unit that reduces to a single base with
// scale 1 comes back as that base itself.
func Decompose(u Unit) (Unit, error) {
	d, err := decompose(u)
	if err != nil {
		return nil, err
	}
	return d.compose()
}

func (d decomposition) compose() (Unit, error) {
	bases := make([]Unit, len(d.bases))
	for i, b := range d.bases {
		bases[i] = b
	}
	return NewComposite(d.scale, bases, d.powers)
}

// DecomposeInto re-expresses a unit over a restricted target catalog, such
// as the CGS bases. Every supplied target must itself reduce to a single
// irreducible at power one (a pure rescale like "100 s" qualifies); the
// first target covering each dimension wins. A dimension of u with no
// covering target is an incompatibility: every catalog handed here is
// expected to span all dimensions in use.
func DecomposeInto(u Unit, targets []Unit) (Unit, error) {
	d, err := decompose(u)
	if err != nil {
		return nil, err
	}
	type cover struct {
		unit  Unit
		scale complex128
	}
	covers := make(map[*Irreducible]cover)
	for _, t := range targets {
		dt, err := decompose(t)
		if err != nil {
			continue
		}
		if len(dt.bases) != 1 || !dt.powers[0].IsOne() {
			continue
		}
		if _, ok := covers[dt.bases[0]]; !ok {
			covers[dt.bases[0]] = cover{unit: t, scale: dt.scale}
		}
	}

	scale := d.scale
	bases := make([]Unit, len(d.bases))
	for i, b := range d.bases {
		c, ok := covers[b]
		if !ok {
			return nil, fmt.Errorf("%w: dimension %q is not covered by the target bases", ErrIncompatible, b.Name())
		}
		bases[i] = c.unit
		s, err := powScale(c.scale, d.powers[i].Neg())
		if err != nil {
			return nil, err
		}
		scale *= s
	}
	return NewComposite(scale, bases, d.powers)
}
