package unit

import (
	"sort"
	"strings"
)

// physicalTypes maps dimension signatures to conventional names. The
// signature is built from the decomposed irreducible base names, so any
// catalog that names its bases m, kg, s, A, K, mol, cd, rad, bit and
// deg_C gets the standard vocabulary for free.
var physicalTypes = map[string]string{
	"":                    "dimensionless",
	"m":                   "length",
	"m^2":                 "area",
	"m^3":                 "volume",
	"s":                   "time",
	"kg":                  "mass",
	"A":                   "electric current",
	"K":                   "temperature",
	"deg_C":               "temperature",
	"mol":                 "amount of substance",
	"cd":                  "luminous intensity",
	"rad":                 "angle",
	"rad^2":               "solid angle",
	"bit":                 "data quantity",
	"bit s^-1":            "bandwidth",
	"s^-1":                "frequency",
	"m^-1":                "wavenumber",
	"m s^-1":              "speed",
	"m s^-2":              "acceleration",
	"rad s^-1":            "angular speed",
	"rad s^-2":            "angular acceleration",
	"kg m^-3":             "mass density",
	"kg m s^-1":           "momentum",
	"kg m s^-2":           "force",
	"kg m^2 s^-2":         "energy",
	"kg m^2 s^-3":         "power",
	"kg m^-1 s^-2":        "pressure",
	"kg m^2 s^-1":         "angular momentum",
	"kg s^-2":             "surface tension",
	"A s":                 "electric charge",
	"A^-1 kg m^2 s^-3":    "electric potential",
	"A^-2 kg m^2 s^-3":    "electrical resistance",
	"A^2 kg^-1 m^-2 s^4":  "electrical capacitance",
	"A^-1 kg m^2 s^-2":    "magnetic flux",
	"A^-1 kg s^-2":        "magnetic flux density",
	"cd rad^2":            "luminous flux",
	"cd m^-2 rad^2":       "luminous emittance",
	"kg^-1 m^3 s^-2":      "gravitational parameter over mass",
	"m^2 s^-1":            "kinematic viscosity",
	"kg m^-1 s^-1":        "dynamic viscosity",
	"mol m^-3":            "molar concentration",
	"m^3 s^-1":            "volumetric flow rate",
}

// PhysicalType names the dimension a unit's decomposition corresponds to
// (length, time, dimensionless, ...). Signatures without a table entry
// report the raw signature string; unrecognized units report "unknown".
func PhysicalType(u Unit) string {
	if _, ok := u.(*Unrecognized); ok {
		return "unknown"
	}
	d, err := decompose(u)
	if err != nil {
		return "unknown"
	}
	sig := signature(d)
	if name, ok := physicalTypes[sig]; ok {
		return name
	}
	return sig
}

// signature formats a decomposition's dimensional fingerprint: base names
// with exponents, sorted by name so the string is construction-order
// independent.
func signature(d decomposition) string {
	type pair struct {
		name string
		p    Exponent
	}
	pairs := make([]pair, len(d.bases))
	for i, b := range d.bases {
		pairs[i] = pair{name: b.Name(), p: d.powers[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].name < pairs[j].name })
	parts := make([]string, len(pairs))
	for i, pr := range pairs {
		if pr.p.IsOne() {
			parts[i] = pr.name
		} else {
			parts[i] = pr.name + "^" + pr.p.String()
		}
	}
	return strings.Join(parts, " ")
}
