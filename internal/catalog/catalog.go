// Package catalog defines the built-in unit systems (SI, CGS, imperial,
// astronomical), the SI and binary prefix tables, and the standard
// equivalencies. All definitions are constructed once at package init and
// exposed through a shared default registry context.
package catalog

import (
	"sort"
	"sync"

	"github.com/tbuckley/quanta/internal/unit"
)

var (
	registered []unit.Unit
	nameIndex  = make(map[string]unit.Unit)

	siSystem  []unit.Unit
	cgsSystem []unit.Unit

	defaultOnce sync.Once
	defaultCtx  *unit.Context
)

func init() {
	buildSI()
	buildCGS()
	buildImperial()
	buildAstro()
}

// Default returns the shared registry context holding every built-in
// unit. Callers that need isolated scope stacks should use NewContext.
func Default() *unit.Context {
	defaultOnce.Do(func() {
		defaultCtx = must(unit.NewContext(registered...))
	})
	return defaultCtx
}

// NewContext returns a fresh registry context over the built-in units,
// independent of the shared default.
func NewContext() (*unit.Context, error) {
	return unit.NewContext(registered...)
}

// AllUnits returns every built-in unit, prefixed forms included, in
// registration order.
func AllUnits() []unit.Unit {
	return append([]unit.Unit(nil), registered...)
}

// Lookup resolves a built-in unit by any of its names.
func Lookup(name string) (unit.Unit, bool) {
	u, ok := nameIndex[name]
	return u, ok
}

// Names returns every registered name in sorted order.
func Names() []string {
	out := make([]string, 0, len(nameIndex))
	for n := range nameIndex {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Bases returns the SI irreducible units.
func Bases() []unit.Unit {
	return []unit.Unit{Meter, Kilogram, Second, Ampere, Kelvin, Mole, Candela, Radian, Bit}
}

// CGSBases returns the conventional CGS base set.
func CGSBases() []unit.Unit {
	return []unit.Unit{Centimeter, Gram, Second, Radian}
}

// SIUnits returns the named units of the SI system.
func SIUnits() []unit.Unit { return append([]unit.Unit(nil), siSystem...) }

// CGSUnits returns the named units of the CGS system.
func CGSUnits() []unit.Unit { return append([]unit.Unit(nil), cgsSystem...) }

// SI returns u's preferred spelling in SI units.
func SI(u unit.Unit) (unit.Unit, error) {
	results, err := unit.ToSystem(u, siSystem)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// CGS returns u's preferred spelling in CGS units.
func CGS(u unit.Unit) (unit.Unit, error) {
	results, err := unit.ToSystem(u, cgsSystem)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// register adds a unit to the package registry, indexing every name.
// Definitions are package-internal, so a name collision here is a
// programming error.
func register[U unit.Unit](u U) U {
	for _, n := range u.Names() {
		if _, dup := nameIndex[n]; dup {
			panic("catalog: duplicate unit name " + n)
		}
		nameIndex[n] = u
	}
	registered = append(registered, u)
	return u
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func irr(short []string, long ...string) *unit.Irreducible {
	return register(must(unit.NewIrreducible(short, long...)))
}

func named(short []string, represents unit.Unit, long ...string) *unit.Named {
	return register(must(unit.NewNamed(short, represents, long...)))
}
