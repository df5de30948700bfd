package catalog

import "github.com/tbuckley/quanta/internal/unit"

// Imperial and US customary units, defined by their exact legal SI values.
var (
	Inch  *unit.Named
	Foot  *unit.Named
	Yard  *unit.Named
	Mile  *unit.Named
	Pound *unit.Named
	Ounce *unit.Named
	Ton   *unit.Named
)

func buildImperial() {
	Inch = named([]string{"inch", "in"}, must(unit.Scaled(0.0254, Meter)))
	Foot = named([]string{"ft"}, must(unit.Scaled(12, Inch)), "foot")
	Yard = named([]string{"yd"}, must(unit.Scaled(3, Foot)), "yard")
	Mile = named([]string{"mi"}, must(unit.Scaled(5280, Foot)), "mile")
	Pound = named([]string{"lb"}, must(unit.Scaled(0.45359237, Kilogram)), "pound")
	Ounce = named([]string{"oz"}, must(unit.Scaled(1.0/16, Pound)), "ounce")
	Ton = named([]string{"ton"}, must(unit.Scaled(2000, Pound)))
}
