package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// base is a test shorthand for a fresh irreducible dimension.
func base(t *testing.T, names ...string) *Irreducible {
	t.Helper()
	u, err := NewIrreducible(names)
	require.NoError(t, err)
	return u
}

// mustUnit unwraps a constructor result, panicking on error so it can
// wrap multi-valued calls inline in test expressions.
func mustUnit(u Unit, err error) Unit {
	if err != nil {
		panic(err)
	}
	return u
}

func TestNewIrreducible_Names(t *testing.T) {
	u, err := NewIrreducible([]string{"m"}, "meter", "metre")
	require.NoError(t, err)
	assert.Equal(t, "m", u.Name())
	assert.Equal(t, []string{"m", "meter", "metre"}, u.Names())
	assert.Equal(t, []string{"m"}, u.ShortNames())
	assert.Equal(t, []string{"meter", "metre"}, u.LongNames())
	assert.Equal(t, "m", u.String())
}

func TestNewIrreducible_Invalid(t *testing.T) {
	_, err := NewIrreducible(nil)
	assert.ErrorIs(t, err, ErrInvalidConstruction)

	_, err = NewIrreducible([]string{"  "})
	assert.ErrorIs(t, err, ErrInvalidConstruction)
}

func TestNewNamed(t *testing.T) {
	m := base(t, "m")
	km, err := NewNamed([]string{"km"}, mustUnit(Scaled(1000, m)))
	require.NoError(t, err)
	assert.Equal(t, "km", km.Name())
	assert.False(t, km.IsPrefix())
	assert.True(t, Equal(km.Represents(), mustUnit(Scaled(1000, m))))

	_, err = NewNamed([]string{"x"}, nil)
	assert.ErrorIs(t, err, ErrInvalidConstruction)

	_, err = NewNamed([]string{"x"}, NewUnrecognized("furlng"))
	assert.ErrorIs(t, err, ErrInvalidConstruction)
}

func TestNewPrefixUnit(t *testing.T) {
	m := base(t, "m")
	km, err := NewPrefixUnit([]string{"km"}, mustUnit(Scaled(1000, m)), "kilometer")
	require.NoError(t, err)
	assert.True(t, km.IsPrefix())
	assert.Equal(t, []string{"km", "kilometer"}, km.Names())
}

func TestNewComposite_CanonicalCollapse(t *testing.T) {
	m := base(t, "m")
	got, err := NewComposite(1, []Unit{m}, []Exponent{NewInt(1)})
	require.NoError(t, err)
	assert.Same(t, m, got, "scale-1 single base at power 1 must be the base itself")
}

func TestNewComposite_MergesDuplicateBases(t *testing.T) {
	m := base(t, "m")
	got, err := NewComposite(1, []Unit{m, m}, []Exponent{NewInt(1), NewInt(2)})
	require.NoError(t, err)
	c, ok := got.(*Composite)
	require.True(t, ok)
	require.Len(t, c.Bases(), 1)
	assert.Same(t, m, c.Bases()[0])
	assert.True(t, c.Powers()[0].Equal(NewInt(3)))
}

func TestNewComposite_CancellationYieldsOne(t *testing.T) {
	m := base(t, "m")
	got, err := NewComposite(1, []Unit{m, m}, []Exponent{NewInt(1), NewInt(-1)})
	require.NoError(t, err)
	assert.Same(t, One, got)
}

func TestNewComposite_Interning(t *testing.T) {
	m, s := base(t, "m"), base(t, "s")
	a := mustUnit(Mul(m, s))
	b := mustUnit(Mul(m, s))
	assert.Same(t, a, b, "identical construction paths must intern to one instance")

	// A different scale is a different instance.
	c := mustUnit(Scaled(2, a))
	assert.NotSame(t, a, c)
}

func TestNewComposite_Errors(t *testing.T) {
	m := base(t, "m")

	_, err := NewComposite(1, []Unit{m}, nil)
	assert.ErrorIs(t, err, ErrInvalidConstruction)

	_, err = NewComposite(0, []Unit{m}, []Exponent{NewInt(1)})
	assert.ErrorIs(t, err, ErrZeroScale)

	_, err = NewComposite(1, []Unit{nil}, []Exponent{NewInt(1)})
	assert.ErrorIs(t, err, ErrInvalidConstruction)

	_, err = NewComposite(1, []Unit{NewUnrecognized("blob")}, []Exponent{NewInt(1)})
	assert.ErrorIs(t, err, ErrUnrecognized)
}

func TestNewComposite_FlattensNested(t *testing.T) {
	m, s := base(t, "m"), base(t, "s")
	speed := mustUnit(Div(m, s))
	sq, err := NewComposite(4, []Unit{speed}, []Exponent{NewInt(2)})
	require.NoError(t, err)
	c, ok := sq.(*Composite)
	require.True(t, ok)
	assert.Equal(t, complex128(4), c.Scale())
	require.Len(t, c.Bases(), 2)
	assert.Same(t, m, c.Bases()[0])
	assert.True(t, c.Powers()[0].Equal(NewInt(2)))
	assert.Same(t, s, c.Bases()[1])
	assert.True(t, c.Powers()[1].Equal(NewInt(-2)))
}

func TestScaled(t *testing.T) {
	m := base(t, "m")
	km := mustUnit(Scaled(1000, m))
	c, ok := km.(*Composite)
	require.True(t, ok)
	assert.Equal(t, complex(1000, 0), c.Scale())

	_, err := Scaled(0, m)
	assert.ErrorIs(t, err, ErrZeroScale)
}

func TestComposite_String(t *testing.T) {
	m, s, kg := base(t, "m"), base(t, "s"), base(t, "kg")

	tests := []struct {
		name string
		u    Unit
		want string
	}{
		{
			name: "single quotient",
			u:    mustUnit(Div(m, s)),
			want: "m / s",
		},
		{
			name: "force dimensions",
			u:    mustUnit(NewComposite(1, []Unit{kg, m, s}, []Exponent{NewInt(1), NewInt(1), NewInt(-2)})),
			want: "kg m / s^2",
		},
		{
			name: "multiple denominators parenthesized",
			u:    mustUnit(NewComposite(1, []Unit{m, s, kg}, []Exponent{NewInt(1), NewInt(-1), NewInt(-1)})),
			want: "m / (s kg)",
		},
		{
			name: "scale prefix",
			u:    mustUnit(Scaled(1000, m)),
			want: "1000 m",
		},
		{
			name: "rational power parenthesized",
			u:    mustUnit(PowExp(m, mustRational(t, 1, 2))),
			want: "m^(1/2)",
		},
		{
			name: "bare scale",
			u:    mustUnit(Scaled(0.01, One)),
			want: "0.01",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.String())
		})
	}
}

func TestUnrecognized(t *testing.T) {
	u := NewUnrecognized("frob")
	assert.Equal(t, "frob", u.Name())
	assert.Equal(t, []string{"frob"}, u.Names())
	assert.Equal(t, "frob", u.String())
}

func TestOne(t *testing.T) {
	c, ok := One.(*Composite)
	require.True(t, ok)
	assert.Equal(t, complex128(1), c.Scale())
	assert.Empty(t, c.Bases())
	assert.Equal(t, "dimensionless", PhysicalType(One))
}
