package unit

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// composeMaxNodes caps the number of search states explored, keeping
// pathological candidate sets bounded. Exploration order is deterministic,
// so truncation is too.
const composeMaxNodes = 20000

type composeConfig struct {
	candidates    []Unit
	candidatesSet bool
	ctx           *Context
	eqs           []Equivalency
	prefix        bool
	prefixSet     bool
}

// ComposeOption configures a composition search.
type ComposeOption func(*composeConfig)

// WithCandidates supplies an explicit candidate catalog. An explicitly
// empty catalog is a composition failure: the identity candidate only
// exists implicitly through the unit's own bases.
func WithCandidates(units ...Unit) ComposeOption {
	return func(c *composeConfig) {
		c.candidates = units
		c.candidatesSet = true
	}
}

// WithContext draws the candidate catalog from the registry's active
// level. Prefixed forms are excluded unless WithPrefixUnits overrides.
func WithContext(ctx *Context) ComposeOption {
	return func(c *composeConfig) { c.ctx = ctx }
}

// WithEquivalencies adds declared transforms whose far sides become extra
// dimension-compatible substitution targets.
func WithEquivalencies(eqs ...Equivalency) ComposeOption {
	return func(c *composeConfig) { c.eqs = append(c.eqs, eqs...) }
}

// WithPrefixUnits controls whether prefixed forms (kilo-, milli-, ...)
// are eligible as first-class candidates. The default is inferred: an
// explicit candidate list includes them, a registry catalog does not.
func WithPrefixUnits(include bool) ComposeOption {
	return func(c *composeConfig) {
		c.prefix = include
		c.prefixSet = true
	}
}

// Compose searches the candidate catalog for representations that are
// decomposition-equivalent to u, ranked by naturalness: fewest distinct
// candidate units, all-integer powers before fractional, a verbatim match
// of u's own bases first among ties, then scale closest to 1. Ties beyond
// that follow catalog order. The result is never empty: an unrepresentable
// unit or an empty candidate set is an error.
func Compose(u Unit, opts ...ComposeOption) ([]*Composite, error) {
	var cfg composeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, ok := u.(*Unrecognized); ok {
		return nil, fmt.Errorf("%w: %q", ErrUnrecognized, u.Name())
	}

	target, err := decompose(u)
	if err != nil {
		return nil, err
	}

	includePrefix := cfg.candidatesSet
	if cfg.prefixSet {
		includePrefix = cfg.prefix
	}

	var raw []Unit
	switch {
	case cfg.candidatesSet:
		raw = cfg.candidates
	case cfg.ctx != nil:
		if includePrefix {
			raw = cfg.ctx.Current().AllUnits()
		} else {
			raw = cfg.ctx.Current().NonPrefixUnits()
		}
	default:
		return nil, fmt.Errorf("%w: no candidate catalog supplied", ErrCompose)
	}

	cands := gatherCandidates(raw, includePrefix)
	if len(cands) == 0 {
		return nil, fmt.Errorf("%w: empty candidate set", ErrCompose)
	}

	results := searchTarget(target, cands, basisIDs(u))

	// Each equivalency's far side is one more dimension-compatible
	// substitution: re-run the search against it, carrying over the
	// residual linear factor from this side.
	for _, eq := range cfg.eqs {
		for _, orient := range eq.orientations() {
			da, err := decompose(orient.from)
			if err != nil {
				continue
			}
			db, err := decompose(orient.to)
			if err != nil {
				continue
			}
			if !sameDimensions(target, da) || sameDimensions(da, db) {
				continue
			}
			alt := db
			alt.scale = db.scale * target.scale / da.scale
			results = append(results, searchTarget(alt, cands, nil)...)
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no candidate combination reproduces %q", ErrCompose, u.String())
	}
	return dedupeComposites(results), nil
}

// ToSystem recomposes u against a unit system's catalog, ordering results
// so that spellings built entirely from the system's own named units come
// first. The first result is the system's preferred form.
func ToSystem(u Unit, system []Unit) ([]*Composite, error) {
	results, err := Compose(u, WithCandidates(system...))
	if err != nil {
		return nil, err
	}
	member := make(map[uint64]bool, len(system))
	for _, s := range system {
		if s != nil {
			member[unitID(s)] = true
		}
	}
	foreign := func(c *Composite) int {
		n := 0
		for _, b := range c.bases {
			if !member[unitID(b)] {
				n++
			}
		}
		return n
	}
	sort.SliceStable(results, func(i, j int) bool {
		return foreign(results[i]) < foreign(results[j])
	})
	return results, nil
}

type candidate struct {
	unit Unit
	dec  decomposition
}

func gatherCandidates(raw []Unit, includePrefix bool) []candidate {
	seen := make(map[uint64]bool)
	var out []candidate
	for _, c := range raw {
		if c == nil {
			continue
		}
		if _, ok := c.(*Unrecognized); ok {
			continue
		}
		if n, ok := c.(*Named); ok && n.prefix && !includePrefix {
			continue
		}
		id := unitID(c)
		if seen[id] {
			continue
		}
		seen[id] = true
		d, err := decompose(c)
		if err != nil || len(d.bases) == 0 {
			continue
		}
		out = append(out, candidate{unit: c, dec: d})
	}
	return out
}

// searchTarget runs the bounded combination search for one decomposition
// target and builds ranked composites from the surviving combinations.
func searchTarget(target decomposition, cands []candidate, verbatim map[uint64]bool) []*Composite {
	maxDepth := len(target.bases) + 2
	nodes := 0
	combos := searchCombos(target, cands, maxDepth, &nodes)

	var results []*Composite
	for _, combo := range combos {
		c, err := buildResult(target, combo)
		if err != nil {
			continue
		}
		results = append(results, c)
	}
	results = dedupeComposites(results)
	rankResults(results, verbatim)
	return results
}

// comboTerm is one candidate raised to an exact power.
type comboTerm struct {
	cand  candidate
	power Exponent
}

// searchCombos eliminates the target's leading base at every step: it
// picks the pivot dimension, tries every candidate whose decomposition
// contains it at the exact exponent ratio, and recurses on the residual.
// A candidate may be chosen more than once; repeated picks merge when the
// result is built.
func searchCombos(target decomposition, cands []candidate, depth int, nodes *int) [][]comboTerm {
	if len(target.bases) == 0 {
		return [][]comboTerm{{}}
	}
	if depth <= 0 || *nodes >= composeMaxNodes {
		return nil
	}
	*nodes++

	pivot := target.bases[0]
	pivotPow := target.powers[0]

	var out [][]comboTerm
	for _, c := range cands {
		cp, ok := findPower(c.dec, pivot)
		if !ok {
			continue
		}
		p := pivotPow.Div(cp)
		if !p.IsExact() || p.IsZero() {
			continue
		}
		residual, ok := subtractScaled(target, c.dec, p)
		if !ok {
			continue
		}
		if len(residual.bases) >= len(target.bases)+depth {
			continue
		}
		for _, sub := range searchCombos(residual, cands, depth-1, nodes) {
			combo := append([]comboTerm{{cand: c, power: p}}, sub...)
			out = append(out, combo)
		}
	}
	return out
}

func findPower(d decomposition, base *Irreducible) (Exponent, bool) {
	for i, b := range d.bases {
		if b == base {
			return d.powers[i], true
		}
	}
	return Exponent{}, false
}

// subtractScaled returns target minus sub^p on the exponents, ignoring
// scale. It reports false if an exponent degrades to a float, which would
// escape the exact search space.
func subtractScaled(target, sub decomposition, p Exponent) (decomposition, bool) {
	type entry struct {
		base *Irreducible
		pow  Exponent
	}
	var entries []entry
	index := make(map[*Irreducible]int)
	for i, b := range target.bases {
		index[b] = len(entries)
		entries = append(entries, entry{base: b, pow: target.powers[i]})
	}
	for i, b := range sub.bases {
		delta := sub.powers[i].Mul(p)
		if j, ok := index[b]; ok {
			entries[j].pow = entries[j].pow.Sub(delta)
		} else {
			index[b] = len(entries)
			entries = append(entries, entry{base: b, pow: delta.Neg()})
		}
	}
	var out decomposition
	for _, e := range entries {
		if e.pow.IsZero() {
			continue
		}
		if !e.pow.IsExact() {
			return decomposition{}, false
		}
		out.bases = append(out.bases, e.base)
		out.powers = append(out.powers, e.pow)
	}
	out.scale = 1
	sortDecomposition(&out)
	return out, true
}

// buildResult merges a combination's repeated candidates, computes the
// residual scale that makes the composite exactly reproduce the target,
// and interns the result without canonical collapse so callers always see
// the chosen bases, even for single-base identity answers.
func buildResult(target decomposition, combo []comboTerm) (*Composite, error) {
	merged := make(map[uint64]int)
	var (
		units  []Unit
		powers []Exponent
		scale  complex128 = 1
	)
	for _, term := range combo {
		id := unitID(term.cand.unit)
		if i, ok := merged[id]; ok {
			powers[i] = powers[i].Add(term.power)
		} else {
			merged[id] = len(units)
			units = append(units, term.cand.unit)
			powers = append(powers, term.power)
		}
		s, err := powScale(term.cand.dec.scale, term.power)
		if err != nil {
			return nil, err
		}
		scale *= s
	}

	var outUnits []Unit
	var outPowers []Exponent
	for i, u := range units {
		if powers[i].IsZero() {
			continue
		}
		outUnits = append(outUnits, u)
		outPowers = append(outPowers, powers[i])
	}
	sortResultTerms(outUnits, outPowers)

	resScale, err := sanitizeScale(target.scale / scale)
	if err != nil {
		return nil, err
	}
	return internComposite(resScale, outUnits, outPowers), nil
}

func sortResultTerms(units []Unit, powers []Exponent) {
	idx := make([]int, len(units))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := powers[idx[a]].Float64(), powers[idx[b]].Float64()
		if pa != pb {
			return pa > pb
		}
		return units[idx[a]].Name() < units[idx[b]].Name()
	})
	u2 := make([]Unit, len(idx))
	p2 := make([]Exponent, len(idx))
	for i, j := range idx {
		u2[i] = units[j]
		p2[i] = powers[j]
	}
	copy(units, u2)
	copy(powers, p2)
}

// basisIDs returns the identity set of a unit's as-constructed bases, used
// for the verbatim-match ranking criterion.
func basisIDs(u Unit) map[uint64]bool {
	out := make(map[uint64]bool)
	switch v := u.(type) {
	case *Composite:
		for _, b := range v.bases {
			out[unitID(b)] = true
		}
	case *Irreducible, *Named:
		out[unitID(u)] = true
	}
	return out
}

func rankResults(results []*Composite, verbatim map[uint64]bool) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if len(a.bases) != len(b.bases) {
			return len(a.bases) < len(b.bases)
		}
		ai, bi := allIntegerPowers(a), allIntegerPowers(b)
		if ai != bi {
			return ai
		}
		if verbatim != nil {
			av, bv := matchesBasis(a, verbatim), matchesBasis(b, verbatim)
			if av != bv {
				return av
			}
		}
		return scaleDistance(a.scale) < scaleDistance(b.scale)
	})
}

func allIntegerPowers(c *Composite) bool {
	for _, p := range c.powers {
		if p.Kind() != KindInt {
			return false
		}
	}
	return true
}

func matchesBasis(c *Composite, verbatim map[uint64]bool) bool {
	if len(c.bases) != len(verbatim) {
		return false
	}
	for _, b := range c.bases {
		if !verbatim[unitID(b)] {
			return false
		}
	}
	return true
}

func scaleDistance(s complex128) float64 {
	m := cmplx.Abs(s)
	if m == 0 {
		return math.Inf(1)
	}
	return math.Abs(math.Log10(m))
}

func dedupeComposites(in []*Composite) []*Composite {
	seen := make(map[*Composite]bool, len(in))
	out := in[:0]
	for _, c := range in {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
