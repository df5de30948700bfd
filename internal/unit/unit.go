package unit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// scaleEps is the relative threshold below which the real or imaginary
// part of a complex scale collapses to zero during sanitization.
const scaleEps = 1e-12

// Unit is the closed set of unit variants: *Irreducible, *Named,
// *Composite and *Unrecognized. The algebra lives in package functions
// (Mul, Div, Pow, Decompose, Equal, ...) that switch exhaustively over
// these four types, so a missed variant is a compile-visible bug rather
// than a silently wrong virtual dispatch.
type Unit interface {
	// Name returns the primary name, or the empty string for anonymous
	// composites.
	Name() string
	// Names returns all registered names, primary first.
	Names() []string
	String() string

	sealed()
}

var uidCounter atomic.Uint64

func nextUID() uint64 { return uidCounter.Add(1) }

// Irreducible is a base dimension that cannot be expressed in terms of
// other units. Decomposition always reduces it to itself with scale 1.
type Irreducible struct {
	uid   uint64
	names []string
	short []string
	long  []string
}

// NewIrreducible defines a base unit with short names (primary first) and
// optional long names. The unit is not registered anywhere; pass it to a
// Context or Catalog explicitly.
func NewIrreducible(short []string, long ...string) (*Irreducible, error) {
	names, s, l, err := checkNames(short, long)
	if err != nil {
		return nil, err
	}
	return &Irreducible{uid: nextUID(), names: names, short: s, long: l}, nil
}

func (u *Irreducible) Name() string         { return u.names[0] }
func (u *Irreducible) Names() []string      { return append([]string(nil), u.names...) }
func (u *Irreducible) ShortNames() []string { return append([]string(nil), u.short...) }
func (u *Irreducible) LongNames() []string  { return append([]string(nil), u.long...) }
func (u *Irreducible) String() string       { return u.names[0] }
func (u *Irreducible) sealed()              {}

// Named is a unit defined in terms of another unit, such as km (a prefix
// form of m) or N (kg m / s^2). Prefix forms behave identically in the
// algebra but are excluded from default composition candidate sets.
type Named struct {
	uid        uint64
	names      []string
	short      []string
	long       []string
	represents Unit
	prefix     bool
}

// NewNamed defines a unit equal to represents, with short names (primary
// first) and optional long names.
func NewNamed(short []string, represents Unit, long ...string) (*Named, error) {
	names, s, l, err := checkNames(short, long)
	if err != nil {
		return nil, err
	}
	if represents == nil {
		return nil, fmt.Errorf("%w: named unit %q has no definition", ErrInvalidConstruction, names[0])
	}
	if _, ok := represents.(*Unrecognized); ok {
		return nil, fmt.Errorf("%w: named unit %q defined by an unrecognized unit", ErrInvalidConstruction, names[0])
	}
	return &Named{uid: nextUID(), names: names, short: s, long: l, represents: represents}, nil
}

// New is the single-name convenience for NewNamed, the moral equivalent
// of a def_unit call.
func New(name string, represents Unit) (*Named, error) {
	return NewNamed([]string{name}, represents)
}

// NewPrefixUnit defines a prefixed form (kilo-, milli-, ...) of another
// named unit. It is excluded from default composition candidate sets and
// from the registry's non-prefix view.
func NewPrefixUnit(short []string, represents Unit, long ...string) (*Named, error) {
	n, err := NewNamed(short, represents, long...)
	if err != nil {
		return nil, err
	}
	n.prefix = true
	return n, nil
}

func (u *Named) Name() string         { return u.names[0] }
func (u *Named) Names() []string      { return append([]string(nil), u.names...) }
func (u *Named) ShortNames() []string { return append([]string(nil), u.short...) }
func (u *Named) LongNames() []string  { return append([]string(nil), u.long...) }

// Represents returns the unit this name is defined as.
func (u *Named) Represents() Unit { return u.represents }

// IsPrefix reports whether this is a prefixed form of another unit.
func (u *Named) IsPrefix() bool { return u.prefix }

func (u *Named) String() string { return u.names[0] }
func (u *Named) sealed()        {}

// Composite is a scale times a product of bases raised against exact
// powers. Values are immutable and interned: equal construction paths
// return the same pointer.
type Composite struct {
	uid    uint64
	scale  complex128
	bases  []Unit
	powers []Exponent
	key    string
}

// Scale returns the numeric multiplier. The imaginary part is zero except
// for units derived through fractional powers of negative scales.
func (u *Composite) Scale() complex128 { return u.scale }

// Bases returns the base units, each appearing exactly once.
func (u *Composite) Bases() []Unit { return append([]Unit(nil), u.bases...) }

// Powers returns the exponent for each base; no entry is zero.
func (u *Composite) Powers() []Exponent { return append([]Exponent(nil), u.powers...) }

func (u *Composite) Name() string    { return "" }
func (u *Composite) Names() []string { return nil }

func (u *Composite) String() string {
	var num, den []string
	for i, b := range u.bases {
		p := u.powers[i]
		if p.Float64() > 0 {
			num = append(num, formatPower(b, p))
		} else {
			den = append(den, formatPower(b, p.Neg()))
		}
	}
	s := strings.Join(num, " ")
	switch len(den) {
	case 0:
	case 1:
		s += " / " + den[0]
	default:
		s += " / (" + strings.Join(den, " ") + ")"
	}
	s = strings.TrimSpace(s)
	if u.scale != 1 {
		if s == "" {
			return formatScale(u.scale)
		}
		return formatScale(u.scale) + " " + s
	}
	return s
}

func (u *Composite) sealed() {}

// Unrecognized is an opaque unit identified only by its name. It has no
// physical meaning: it equals only another Unrecognized with the same
// name, and every algebraic or conversion operation on it fails.
type Unrecognized struct {
	name string
}

// NewUnrecognized wraps a name the parser could not resolve.
func NewUnrecognized(name string) *Unrecognized {
	return &Unrecognized{name: name}
}

func (u *Unrecognized) Name() string    { return u.name }
func (u *Unrecognized) Names() []string { return []string{u.name} }
func (u *Unrecognized) String() string  { return u.name }
func (u *Unrecognized) sealed()         {}

// One is the dimensionless unscaled unit, the identity of the algebra.
var One Unit

func init() {
	one, err := NewComposite(1, nil, nil)
	if err != nil {
		panic(err)
	}
	One = one
}

// canonicalUnits interns composites by their canonical key so that
// algebraically equal construction paths yield pointer-identical values.
// Entries are never removed; concurrent construction of the same derived
// unit converges on a single instance.
var canonicalUnits = struct {
	mu sync.Mutex
	m  map[string]*Composite
}{m: make(map[string]*Composite)}

// NewComposite builds a unit scale * prod(bases[i]^powers[i]). Duplicate
// bases are merged by adding exponents, zero powers are dropped, nested
// composites are flattened, and the scale is sanitized (near-real or
// near-imaginary complex values collapse; zero is rejected). A result of
// scale 1 with a single base at power 1 is that base itself.
func NewComposite(scale complex128, bases []Unit, powers []Exponent) (Unit, error) {
	scale, outBases, outPowers, err := mergeTerms(scale, bases, powers)
	if err != nil {
		return nil, err
	}

	// Canonical identity collapse.
	if scale == 1 && len(outBases) == 1 && outPowers[0].IsOne() {
		return outBases[0], nil
	}
	return internComposite(scale, outBases, outPowers), nil
}

// mergeTerms flattens nested composites, merges duplicate bases by adding
// exponents, drops zero powers and sanitizes the scale. The returned bases
// are only irreducible or named units.
func mergeTerms(scale complex128, bases []Unit, powers []Exponent) (complex128, []Unit, []Exponent, error) {
	if len(bases) != len(powers) {
		return 0, nil, nil, fmt.Errorf("%w: %d bases with %d powers", ErrInvalidConstruction, len(bases), len(powers))
	}
	scale, err := sanitizeScale(scale)
	if err != nil {
		return 0, nil, nil, err
	}

	merged := make([]Unit, 0, len(bases))
	exps := make([]Exponent, 0, len(powers))
	index := make(map[uint64]int, len(bases))

	var add func(b Unit, p Exponent) error
	add = func(b Unit, p Exponent) error {
		switch v := b.(type) {
		case *Irreducible, *Named:
			id := unitID(b)
			if i, ok := index[id]; ok {
				exps[i] = exps[i].Add(p)
				return nil
			}
			index[id] = len(merged)
			merged = append(merged, b)
			exps = append(exps, p)
			return nil
		case *Composite:
			s, err := powScale(v.scale, p)
			if err != nil {
				return err
			}
			scale *= s
			for i, inner := range v.bases {
				if err := add(inner, v.powers[i].Mul(p)); err != nil {
					return err
				}
			}
			return nil
		case *Unrecognized:
			return fmt.Errorf("%w: %q", ErrUnrecognized, v.name)
		default:
			return fmt.Errorf("%w: unsupported unit variant %T", ErrInvalidConstruction, b)
		}
	}
	for i, b := range bases {
		if b == nil {
			return 0, nil, nil, fmt.Errorf("%w: nil base", ErrInvalidConstruction)
		}
		if err := add(b, powers[i]); err != nil {
			return 0, nil, nil, err
		}
	}

	outBases := make([]Unit, 0, len(merged))
	outPowers := make([]Exponent, 0, len(exps))
	for i, b := range merged {
		if exps[i].IsZero() {
			continue
		}
		outBases = append(outBases, b)
		outPowers = append(outPowers, exps[i])
	}

	scale, err = sanitizeScale(scale)
	if err != nil {
		return 0, nil, nil, err
	}
	return scale, outBases, outPowers, nil
}

// internComposite returns the process-wide singleton for the given
// (already merged) terms, allocating it on first use. The table is
// append-only so two goroutines simplifying the same derived unit
// converge on one instance.
func internComposite(scale complex128, bases []Unit, powers []Exponent) *Composite {
	key := compositeKey(scale, bases, powers)
	canonicalUnits.mu.Lock()
	defer canonicalUnits.mu.Unlock()
	if existing, ok := canonicalUnits.m[key]; ok {
		return existing
	}
	c := &Composite{
		uid:    nextUID(),
		scale:  scale,
		bases:  bases,
		powers: powers,
		key:    key,
	}
	canonicalUnits.m[key] = c
	return c
}

// Scaled returns factor * u, the way "10 m" builds a unit ten times the
// size of a meter.
func Scaled(factor complex128, u Unit) (Unit, error) {
	return NewComposite(factor, []Unit{u}, []Exponent{NewInt(1)})
}

func sanitizeScale(s complex128) (complex128, error) {
	re, im := real(s), imag(s)
	if im != 0 && math.Abs(im) <= scaleEps*math.Abs(re) {
		im = 0
	} else if re != 0 && math.Abs(re) <= scaleEps*math.Abs(im) {
		re = 0
	}
	if re == 0 && im == 0 {
		return 0, ErrZeroScale
	}
	if math.IsNaN(re) || math.IsNaN(im) {
		return 0, fmt.Errorf("%w: scale is NaN", ErrInvalidConstruction)
	}
	return complex(re, im), nil
}

// unitID returns the interning identity of a non-composite base.
func unitID(u Unit) uint64 {
	switch v := u.(type) {
	case *Irreducible:
		return v.uid
	case *Named:
		return v.uid
	case *Composite:
		return v.uid
	default:
		return 0
	}
}

func compositeKey(scale complex128, bases []Unit, powers []Exponent) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatFloat(real(scale), 'g', -1, 64))
	if imag(scale) != 0 {
		sb.WriteByte('i')
		sb.WriteString(strconv.FormatFloat(imag(scale), 'g', -1, 64))
	}
	for i, b := range bases {
		sb.WriteByte('|')
		sb.WriteString(strconv.FormatUint(unitID(b), 36))
		sb.WriteByte('^')
		sb.WriteString(powers[i].String())
	}
	return sb.String()
}

func formatPower(b Unit, p Exponent) string {
	if p.IsOne() {
		return b.Name()
	}
	if p.Kind() == KindRational {
		return fmt.Sprintf("%s^(%s)", b.Name(), p)
	}
	return fmt.Sprintf("%s^%s", b.Name(), p)
}

func formatScale(s complex128) string {
	if imag(s) == 0 {
		return strconv.FormatFloat(real(s), 'g', -1, 64)
	}
	return strconv.FormatComplex(s, 'g', -1, 128)
}

func checkNames(short, long []string) (names, s, l []string, err error) {
	seen := make(map[string]bool)
	for _, n := range short {
		if strings.TrimSpace(n) == "" {
			return nil, nil, nil, fmt.Errorf("%w: blank unit name", ErrInvalidConstruction)
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
		s = append(s, n)
	}
	if len(s) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: unit requires at least one name", ErrInvalidConstruction)
	}
	for _, n := range long {
		if strings.TrimSpace(n) == "" {
			return nil, nil, nil, fmt.Errorf("%w: blank unit name", ErrInvalidConstruction)
		}
		l = append(l, n)
		if seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names, s, l, nil
}
