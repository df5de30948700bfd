package catalog

import "github.com/tbuckley/quanta/internal/unit"

// Astronomical units and nominal solar values.
var (
	AU        *unit.Named
	Parsec    *unit.Named
	Lightyear *unit.Named
	SolMass   *unit.Named
	SolRad    *unit.Named
	SolLum    *unit.Named
	Jansky    *unit.Named
)

func buildAstro() {
	AU = named([]string{"AU", "au"}, must(unit.Scaled(1.495978707e11, Meter)), "astronomical_unit")
	Parsec = named([]string{"pc"}, must(unit.Scaled(3.0856775814913673e16, Meter)), "parsec")
	Lightyear = named([]string{"lyr"}, must(unit.Scaled(9460730472580800, Meter)), "lightyear")
	SolMass = named([]string{"solMass"}, must(unit.Scaled(1.98840987e30, Kilogram)), "M_sun")
	SolRad = named([]string{"solRad"}, must(unit.Scaled(6.957e8, Meter)), "R_sun")
	SolLum = named([]string{"solLum"}, must(unit.Scaled(3.828e26, Watt)), "L_sun")
	Jansky = named([]string{"Jy"},
		must(unit.Scaled(1e-26, must(unit.Div(Watt, must(unit.Mul(must(unit.Pow(Meter, 2)), Hertz)))))),
		"Jansky", "jansky")

	applyPrefixes(Parsec, SIPrefixes)
	applyPrefixes(Jansky, SIPrefixes)
}
