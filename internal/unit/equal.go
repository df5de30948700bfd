package unit

import (
	"hash/fnv"
	"math/cmplx"
	"strconv"
)

// equalityTol is the relative tolerance on the decomposed scale used by
// Equal and, quantized, by Hash. It plays no role in conversion, which is
// exact up to float arithmetic.
const equalityTol = 1e-9

// Equal reports whether two units are physically identical: their
// decompositions agree on bases and exact exponents, and their scales
// agree within a fixed relative tolerance. Unrecognized units compare by
// name only and never equal a recognized unit.
func Equal(a, b Unit) bool {
	if a == nil || b == nil {
		return a == b
	}
	ua, aUnrec := a.(*Unrecognized)
	ub, bUnrec := b.(*Unrecognized)
	if aUnrec || bUnrec {
		return aUnrec && bUnrec && ua.name == ub.name
	}
	da, err := decompose(a)
	if err != nil {
		return false
	}
	db, err := decompose(b)
	if err != nil {
		return false
	}
	if !sameDimensions(da, db) {
		return false
	}
	return scaleClose(da.scale, db.scale)
}

// sameDimensions reports whether two decompositions agree on bases and
// exponents, ignoring scale. Bases compare by name: decomposed bases are
// always irreducibles, and an irreducible is its dimension.
func sameDimensions(a, b decomposition) bool {
	if len(a.bases) != len(b.bases) {
		return false
	}
	for i := range a.bases {
		if a.bases[i].Name() != b.bases[i].Name() {
			return false
		}
		if !a.powers[i].Equal(b.powers[i]) {
			return false
		}
	}
	return true
}

func scaleClose(a, b complex128) bool {
	diff := cmplx.Abs(a - b)
	limit := cmplx.Abs(a)
	if m := cmplx.Abs(b); m > limit {
		limit = m
	}
	return diff <= equalityTol*limit
}

// Hash returns a value consistent with Equal: equal units hash equally.
// It is computed over the canonical decomposition with the scale quantized
// to nine significant digits, so differently-derived but physically
// identical units land in the same bucket.
func Hash(u Unit) uint64 {
	h := fnv.New64a()
	if v, ok := u.(*Unrecognized); ok {
		_, _ = h.Write([]byte("unrecognized\x00"))
		_, _ = h.Write([]byte(v.name))
		return h.Sum64()
	}
	d, err := decompose(u)
	if err != nil {
		_, _ = h.Write([]byte(u.String()))
		return h.Sum64()
	}
	_, _ = h.Write([]byte(strconv.FormatFloat(real(d.scale), 'e', 9, 64)))
	if imag(d.scale) != 0 {
		_, _ = h.Write([]byte(strconv.FormatFloat(imag(d.scale), 'e', 9, 64)))
	}
	for i, b := range d.bases {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(b.Name()))
		_, _ = h.Write([]byte{'^'})
		_, _ = h.Write([]byte(strconv.FormatFloat(d.powers[i].Float64(), 'e', 12, 64)))
	}
	return h.Sum64()
}
