package catalog

import "github.com/tbuckley/quanta/internal/unit"

// CGS units. Centimeter itself comes from the SI prefix machinery; the
// named CGS derived units are defined against it so their decompositions
// carry the expected 10^-n scales.
var (
	Dyne   *unit.Named
	Erg    *unit.Named
	Barye  *unit.Named
	Gal    *unit.Named
	Poise  *unit.Named
	Stokes *unit.Named
	Gauss  *unit.Named
	StatC  *unit.Named
)

func buildCGS() {
	Dyne = named([]string{"dyn"}, must(unit.Scaled(1e-5, Newton)), "dyne")
	Erg = named([]string{"erg"}, must(unit.Scaled(1e-7, Joule)))
	Barye = named([]string{"Ba"}, must(unit.Scaled(0.1, Pascal)), "barye")
	Gal = named([]string{"Gal"}, must(unit.Div(Centimeter, must(unit.Pow(Second, 2)))), "gal")
	Poise = named([]string{"P"}, must(unit.Scaled(0.1, must(unit.Mul(Pascal, Second)))), "poise")
	Stokes = named([]string{"St"}, must(unit.Scaled(1e-4, must(unit.Div(must(unit.Pow(Meter, 2)), Second)))), "stokes")
	Gauss = named([]string{"G"}, must(unit.Scaled(1e-4, Tesla)), "gauss")
	StatC = named([]string{"statC"}, must(unit.Scaled(0.1/lightSpeed, Coulomb)), "statcoulomb", "esu")

	cgsSystem = []unit.Unit{
		Centimeter, Gram, Second, Radian,
		Dyne, Erg, Barye, Gal, Poise, Stokes, Gauss, StatC,
	}
}
