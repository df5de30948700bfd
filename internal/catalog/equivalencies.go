package catalog

import "github.com/tbuckley/quanta/internal/unit"

const (
	lightSpeed = 299792458.0    // m/s
	planck     = 6.62607015e-34 // J s
)

// Temperature bridges Celsius intervals to absolute kelvins. Celsius is
// its own dimension, so plain converters between deg_C and K fail without
// this equivalency.
func Temperature() []unit.Equivalency {
	return []unit.Equivalency{{
		From:     Celsius,
		To:       Kelvin,
		Forward:  func(v float64) float64 { return v + 273.15 },
		Backward: func(v float64) float64 { return v - 273.15 },
	}}
}

// Spectral relates wavelength, frequency, and photon energy. The
// wavelength/frequency and wavelength/energy transforms are reciprocal,
// so one function serves both directions.
func Spectral() []unit.Equivalency {
	return []unit.Equivalency{
		{
			From:    Meter,
			To:      Hertz,
			Forward: func(v float64) float64 { return lightSpeed / v },
		},
		{
			From:     Hertz,
			To:       Joule,
			Forward:  func(v float64) float64 { return planck * v },
			Backward: func(v float64) float64 { return v / planck },
		},
		{
			From:    Meter,
			To:      Joule,
			Forward: func(v float64) float64 { return planck * lightSpeed / v },
		},
	}
}

// Parallax relates a parallax angle in arcseconds to distance in parsecs
// by simple reciprocity.
func Parallax() []unit.Equivalency {
	return []unit.Equivalency{{
		From:    Arcsec,
		To:      Parsec,
		Forward: func(v float64) float64 { return 1 / v },
	}}
}
