package catalog

import "github.com/tbuckley/quanta/internal/unit"

// Prefix scales a unit by a fixed decimal or binary factor.
type Prefix struct {
	Symbol string
	Name   string
	Factor float64
}

// SIPrefixes is the full decimal prefix table, largest first.
var SIPrefixes = []Prefix{
	{"Q", "quetta", 1e30},
	{"R", "ronna", 1e27},
	{"Y", "yotta", 1e24},
	{"Z", "zetta", 1e21},
	{"E", "exa", 1e18},
	{"P", "peta", 1e15},
	{"T", "tera", 1e12},
	{"G", "giga", 1e9},
	{"M", "mega", 1e6},
	{"k", "kilo", 1e3},
	{"h", "hecto", 1e2},
	{"da", "deka", 1e1},
	{"d", "deci", 1e-1},
	{"c", "centi", 1e-2},
	{"m", "milli", 1e-3},
	{"u", "micro", 1e-6},
	{"n", "nano", 1e-9},
	{"p", "pico", 1e-12},
	{"f", "femto", 1e-15},
	{"a", "atto", 1e-18},
	{"z", "zepto", 1e-21},
	{"y", "yocto", 1e-24},
	{"r", "ronto", 1e-27},
	{"q", "quecto", 1e-30},
}

// BinaryPrefixes are the IEC power-of-1024 prefixes used with bit and byte.
var BinaryPrefixes = []Prefix{
	{"Ki", "kibi", 1 << 10},
	{"Mi", "mebi", 1 << 20},
	{"Gi", "gibi", 1 << 30},
	{"Ti", "tebi", 1 << 40},
	{"Pi", "pebi", 1 << 50},
	{"Ei", "exbi", 1 << 60},
}

// shortLongNamer is satisfied by Irreducible and Named, the two variants
// prefixes apply to.
type shortLongNamer interface {
	unit.Unit
	ShortNames() []string
	LongNames() []string
}

// applyPrefixes registers a prefixed form of u for each prefix. Generated
// names that collide with an already-registered name are dropped; if the
// primary symbol itself collides (kilogram against the kg base, for
// example) the whole prefixed form is skipped.
func applyPrefixes(u shortLongNamer, prefixes []Prefix) {
	for _, p := range prefixes {
		var short, long []string
		for _, n := range u.ShortNames() {
			if s := p.Symbol + n; nameIndex[s] == nil {
				short = append(short, s)
			}
		}
		for _, n := range u.LongNames() {
			if l := p.Name + n; nameIndex[l] == nil {
				long = append(long, l)
			}
		}
		if len(short) == 0 || short[0] != p.Symbol+u.Name() {
			continue
		}
		rep := must(unit.Scaled(complex(p.Factor, 0), u))
		register(must(unit.NewPrefixUnit(short, rep, long...)))
	}
}
