package catalog

import "github.com/tbuckley/quanta/internal/unit"

// SI base units. Celsius carries its own dimension: degree intervals and
// absolute kelvins only interconvert through the Temperature equivalency.
var (
	Meter    *unit.Irreducible
	Kilogram *unit.Irreducible
	Second   *unit.Irreducible
	Ampere   *unit.Irreducible
	Kelvin   *unit.Irreducible
	Mole     *unit.Irreducible
	Candela  *unit.Irreducible
	Radian   *unit.Irreducible
	Bit      *unit.Irreducible
	Celsius  *unit.Irreducible
)

// Derived and accepted SI units.
var (
	Gram      *unit.Named
	Hertz     *unit.Named
	Newton    *unit.Named
	Pascal    *unit.Named
	Joule     *unit.Named
	Watt      *unit.Named
	Coulomb   *unit.Named
	Volt      *unit.Named
	Ohm       *unit.Named
	Siemens   *unit.Named
	Farad     *unit.Named
	Weber     *unit.Named
	Tesla     *unit.Named
	Henry     *unit.Named
	Steradian *unit.Named
	Lumen     *unit.Named
	Lux       *unit.Named
	Becquerel *unit.Named
	Liter     *unit.Named
	Tonne     *unit.Named
	EV        *unit.Named
	Minute    *unit.Named
	Hour      *unit.Named
	Day       *unit.Named
	Year      *unit.Named
	Degree    *unit.Named
	Arcmin    *unit.Named
	Arcsec    *unit.Named
	Mas       *unit.Named
	Byte      *unit.Named
	Percent   *unit.Named

	Centimeter unit.Unit
)

func buildSI() {
	Meter = irr([]string{"m"}, "meter")
	Kilogram = irr([]string{"kg"}, "kilogram")
	Second = irr([]string{"s"}, "second")
	Ampere = irr([]string{"A"}, "ampere", "amp")
	Kelvin = irr([]string{"K"}, "Kelvin")
	Mole = irr([]string{"mol"}, "mole")
	Candela = irr([]string{"cd"}, "candela")
	Radian = irr([]string{"rad"}, "radian")
	Bit = irr([]string{"bit", "b"})
	Celsius = irr([]string{"deg_C"}, "Celsius")

	Gram = named([]string{"g"}, must(unit.Scaled(1e-3, Kilogram)), "gram")
	Hertz = named([]string{"Hz"}, must(unit.Reciprocal(Second)), "Hertz", "hertz")
	Newton = named([]string{"N"},
		must(unit.Div(must(unit.Mul(Kilogram, Meter)), must(unit.Pow(Second, 2)))), "Newton", "newton")
	Pascal = named([]string{"Pa"}, must(unit.Div(Newton, must(unit.Pow(Meter, 2)))), "Pascal", "pascal")
	Joule = named([]string{"J"}, must(unit.Mul(Newton, Meter)), "Joule", "joule")
	Watt = named([]string{"W"}, must(unit.Div(Joule, Second)), "Watt", "watt")
	Coulomb = named([]string{"C"}, must(unit.Mul(Ampere, Second)), "coulomb")
	Volt = named([]string{"V"}, must(unit.Div(Watt, Ampere)), "Volt", "volt")
	Ohm = named([]string{"Ohm", "ohm"}, must(unit.Div(Volt, Ampere)))
	Siemens = named([]string{"S"}, must(unit.Div(Ampere, Volt)), "Siemens", "siemens")
	Farad = named([]string{"F"}, must(unit.Div(Coulomb, Volt)), "Farad", "farad")
	Weber = named([]string{"Wb"}, must(unit.Mul(Volt, Second)), "Weber", "weber")
	Tesla = named([]string{"T"}, must(unit.Div(Weber, must(unit.Pow(Meter, 2)))), "Tesla", "tesla")
	Henry = named([]string{"H"}, must(unit.Div(Weber, Ampere)), "Henry", "henry")
	Steradian = named([]string{"sr"}, must(unit.Pow(Radian, 2)), "steradian")
	Lumen = named([]string{"lm"}, must(unit.Mul(Candela, Steradian)), "lumen")
	Lux = named([]string{"lx"}, must(unit.Div(Lumen, must(unit.Pow(Meter, 2)))), "lux")
	Becquerel = named([]string{"Bq"}, must(unit.Reciprocal(Second)), "becquerel")
	Liter = named([]string{"l", "L"}, must(unit.Scaled(1e-3, must(unit.Pow(Meter, 3)))), "liter")
	Tonne = named([]string{"t"}, must(unit.Scaled(1e3, Kilogram)), "tonne")
	EV = named([]string{"eV"}, must(unit.Scaled(1.602176634e-19, Joule)), "electronvolt")

	Minute = named([]string{"min"}, must(unit.Scaled(60, Second)), "minute")
	Hour = named([]string{"h"}, must(unit.Scaled(3600, Second)), "hour")
	Day = named([]string{"d"}, must(unit.Scaled(86400, Second)), "day")
	Year = named([]string{"yr"}, must(unit.Scaled(365.25*86400, Second)), "year")

	Degree = named([]string{"deg"}, must(unit.Scaled(piOver180, Radian)), "degree")
	Arcmin = named([]string{"arcmin"}, must(unit.Scaled(1.0/60, Degree)), "arcminute")
	Arcsec = named([]string{"arcsec"}, must(unit.Scaled(1.0/60, Arcmin)), "arcsecond")
	Mas = named([]string{"mas"}, must(unit.Scaled(1e-3, Arcsec)), "milliarcsecond")

	Byte = named([]string{"byte", "B"}, must(unit.Scaled(8, Bit)))
	Percent = named([]string{"%"}, must(unit.Scaled(0.01, unit.One)), "percent")

	for _, u := range []shortLongNamer{
		Meter, Second, Ampere, Kelvin, Mole, Radian,
		Gram, Hertz, Newton, Pascal, Joule, Watt, Coulomb, Volt, Ohm,
		Siemens, Farad, Weber, Tesla, Henry, Lumen, Lux, Becquerel,
		Liter, EV,
	} {
		applyPrefixes(u, SIPrefixes)
	}
	for _, u := range []shortLongNamer{Bit, Byte} {
		applyPrefixes(u, magnifyingPrefixes())
		applyPrefixes(u, BinaryPrefixes)
	}

	cm, _ := Lookup("cm")
	Centimeter = cm

	siSystem = []unit.Unit{
		Meter, Kilogram, Second, Ampere, Kelvin, Mole, Candela, Radian,
		Hertz, Newton, Pascal, Joule, Watt, Coulomb, Volt, Ohm, Siemens,
		Farad, Weber, Tesla, Henry, Steradian, Lumen, Lux, Becquerel,
	}
}

const piOver180 = 3.14159265358979323846 / 180

// magnifyingPrefixes filters the decimal table to factors above one;
// sub-unity bits and bytes are not a thing.
func magnifyingPrefixes() []Prefix {
	var out []Prefix
	for _, p := range SIPrefixes {
		if p.Factor > 1 {
			out = append(out, p)
		}
	}
	return out
}
