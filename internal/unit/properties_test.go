package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestProp_PowRoundTripRestoresUnit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		num := rapid.IntRange(-6, 6).Filter(func(n int) bool { return n != 0 }).Draw(rt, "num")
		den := rapid.IntRange(1, 6).Draw(rt, "den")

		x, err := NewIrreducible([]string{"x"})
		require.NoError(rt, err)

		p := float64(num) / float64(den)
		up, err := Pow(x, p)
		require.NoError(rt, err)
		down, err := Pow(up, 1/p)
		require.NoError(rt, err)

		if down != Unit(x) {
			rt.Fatalf("(x^%v)^(1/%v) = %s, want x back", p, p, down)
		}
	})
}

func TestProp_EqualImpliesEqualHash(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		scale := rapid.Float64Range(0.001, 1000).Draw(rt, "scale")
		p := rapid.IntRange(-4, 4).Filter(func(n int) bool { return n != 0 }).Draw(rt, "p")
		q := rapid.IntRange(-4, 4).Filter(func(n int) bool { return n != 0 }).Draw(rt, "q")

		x, err := NewIrreducible([]string{"x"})
		require.NoError(rt, err)
		y, err := NewIrreducible([]string{"y"})
		require.NoError(rt, err)

		// The same unit assembled in both base orders.
		a, err := NewComposite(complex(scale, 0), []Unit{x, y}, []Exponent{NewInt(int64(p)), NewInt(int64(q))})
		require.NoError(rt, err)
		b, err := NewComposite(complex(scale, 0), []Unit{y, x}, []Exponent{NewInt(int64(q)), NewInt(int64(p))})
		require.NoError(rt, err)

		if !Equal(a, b) {
			rt.Fatalf("construction order changed identity: %s vs %s", a, b)
		}
		if Hash(a) != Hash(b) {
			rt.Fatalf("equal units hash differently: %s vs %s", a, b)
		}
	})
}

func TestProp_NormalizeIsIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		x := rapid.Float64Range(-1000, 1000).Draw(rt, "x")
		e := Normalize(x)
		again := Normalize(e.Float64())
		if !e.Equal(again) || e.Kind() != again.Kind() {
			rt.Fatalf("Normalize(%v) unstable: %s (%d) then %s (%d)", x, e, e.Kind(), again, again.Kind())
		}
	})
}

func TestProp_ConversionRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := rapid.Float64Range(0.01, 1e6).Draw(rt, "k")
		j := rapid.Float64Range(0.01, 1e6).Draw(rt, "j")
		v := rapid.Float64Range(-1e6, 1e6).Draw(rt, "v")

		x, err := NewIrreducible([]string{"x"})
		require.NoError(rt, err)
		a, err := Scaled(complex(k, 0), x)
		require.NoError(rt, err)
		b, err := Scaled(complex(j, 0), x)
		require.NoError(rt, err)

		there, err := To(v, a, b)
		require.NoError(rt, err)
		back, err := To(there, b, a)
		require.NoError(rt, err)

		assert.InDelta(rt, v, back, 1e-9*(1+absFloat(v)))
	})
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
