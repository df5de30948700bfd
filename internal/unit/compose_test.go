package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// composeFixture is the handful of mechanics dimensions most compose
// tests need.
type composeFixture struct {
	kg, m, s *Irreducible
	newton   *Named
}

func newComposeFixture(t *testing.T) composeFixture {
	t.Helper()
	kg, m, s := base(t, "kg"), base(t, "m"), base(t, "s")
	n, err := NewNamed([]string{"N"},
		mustUnit(Div(mustUnit(Mul(kg, m)), mustUnit(Pow(s, 2)))))
	require.NoError(t, err)
	return composeFixture{kg: kg, m: m, s: s, newton: n}
}

func baseNames(c *Composite) []string {
	names := make([]string, len(c.Bases()))
	for i, b := range c.Bases() {
		names[i] = b.Name()
	}
	return names
}

func TestCompose_CandidateReuseMergesPowers(t *testing.T) {
	f := newComposeFixture(t)

	// kg s^2 / m needs the newton candidate plus four factors of s and
	// two inverse meters.
	target := mustUnit(Div(
		mustUnit(Mul(f.kg, mustUnit(Pow(f.s, 2)))),
		f.m))

	results, err := Compose(target, WithCandidates(f.newton, f.s, f.m))
	require.NoError(t, err)
	require.NotEmpty(t, results)

	best := results[0]
	assert.Equal(t, []string{"s", "N", "m"}, baseNames(best))
	assert.True(t, best.Powers()[0].Equal(NewInt(4)))
	assert.True(t, best.Powers()[1].Equal(NewInt(1)))
	assert.True(t, best.Powers()[2].Equal(NewInt(-2)))
	assert.Equal(t, complex128(1), best.Scale())
	assert.True(t, Equal(best, target), "every result must reproduce the target exactly")
}

func TestCompose_RoundTripOverOwnBases(t *testing.T) {
	f := newComposeFixture(t)
	results, err := Compose(f.newton, WithCandidates(f.kg, f.m, f.s))
	require.NoError(t, err)
	require.NotEmpty(t, results)

	best := results[0]
	assert.Equal(t, []string{"kg", "m", "s"}, baseNames(best))
	assert.True(t, best.Powers()[2].Equal(NewInt(-2)))
	assert.True(t, Equal(best, f.newton))
}

// Identity answers still come back as composites carrying the chosen
// base, never collapsed away.
func TestCompose_IdentityKeepsChosenBase(t *testing.T) {
	f := newComposeFixture(t)
	results, err := Compose(f.m, WithCandidates(f.m, f.s))
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Len(t, results[0].Bases(), 1)
	assert.Same(t, f.m, results[0].Bases()[0])
	assert.True(t, results[0].Powers()[0].IsOne())
}

func TestCompose_ExplicitEmptyCandidatesFails(t *testing.T) {
	f := newComposeFixture(t)
	_, err := Compose(f.m, WithCandidates())
	assert.ErrorIs(t, err, ErrCompose)
}

func TestCompose_NoCatalogFails(t *testing.T) {
	f := newComposeFixture(t)
	_, err := Compose(f.m)
	assert.ErrorIs(t, err, ErrCompose)
}

func TestCompose_UnrepresentableFails(t *testing.T) {
	f := newComposeFixture(t)
	_, err := Compose(f.kg, WithCandidates(f.m, f.s))
	assert.ErrorIs(t, err, ErrCompose)
}

func TestCompose_Unrecognized(t *testing.T) {
	_, err := Compose(NewUnrecognized("frob"), WithCandidates(base(t, "m")))
	assert.ErrorIs(t, err, ErrUnrecognized)
}

func TestCompose_RanksIntegerPowersFirst(t *testing.T) {
	m := base(t, "m")
	area, err := NewNamed([]string{"ar"}, mustUnit(Pow(m, 2)))
	require.NoError(t, err)

	results, err := Compose(mustUnit(Pow(m, 3)), WithCandidates(m, area))
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// m^3 and ar^(3/2) both work; the all-integer spelling ranks first.
	assert.Equal(t, []string{"m"}, baseNames(results[0]))
	assert.True(t, results[0].Powers()[0].Equal(NewInt(3)))

	var sawFractional bool
	for _, r := range results {
		if len(r.Bases()) == 1 && r.Bases()[0] == Unit(area) {
			assert.True(t, r.Powers()[0].Equal(mustRational(t, 3, 2)))
			sawFractional = true
		}
	}
	assert.True(t, sawFractional, "the fractional spelling should still be offered")
}

func TestCompose_ContextExcludesPrefixesByDefault(t *testing.T) {
	m := base(t, "m")
	km, err := NewPrefixUnit([]string{"km"}, mustUnit(Scaled(1000, m)))
	require.NoError(t, err)
	ctx, err := NewContext(m, km)
	require.NoError(t, err)

	target := mustUnit(Scaled(1000, m))

	results, err := Compose(target, WithContext(ctx))
	require.NoError(t, err)
	for _, r := range results {
		for _, b := range r.Bases() {
			assert.NotSame(t, km, b, "prefixed forms are not default candidates")
		}
	}

	results, err = Compose(target, WithContext(ctx), WithPrefixUnits(true))
	require.NoError(t, err)
	var sawKm bool
	for _, r := range results {
		if len(r.Bases()) == 1 && r.Bases()[0] == Unit(km) {
			assert.Equal(t, complex128(1), r.Scale())
			sawKm = true
		}
	}
	assert.True(t, sawKm, "WithPrefixUnits must admit the km candidate")
}

func TestCompose_EquivalencyAddsAlternates(t *testing.T) {
	m, s := base(t, "m"), base(t, "s")
	hz, err := NewNamed([]string{"Hz"}, mustUnit(Reciprocal(s)))
	require.NoError(t, err)

	spectral := Equivalency{
		From:    m,
		To:      hz,
		Forward: func(v float64) float64 { return 299792458.0 / v },
	}

	// No candidate covers length, so only the equivalency's far side
	// produces results.
	results, err := Compose(m, WithCandidates(hz, s), WithEquivalencies(spectral))
	require.NoError(t, err)
	require.NotEmpty(t, results)

	var sawHz bool
	for _, r := range results {
		for _, b := range r.Bases() {
			if b == Unit(hz) {
				sawHz = true
			}
		}
	}
	assert.True(t, sawHz)
}

func TestCompose_ScaledTargetCarriesResidual(t *testing.T) {
	f := newComposeFixture(t)
	dyn := mustUnit(Scaled(1e-5, f.newton))

	results, err := Compose(dyn, WithCandidates(f.newton))
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Len(t, results[0].Bases(), 1)
	assert.Same(t, Unit(f.newton), results[0].Bases()[0])
	assert.InEpsilon(t, 1e-5, real(results[0].Scale()), 1e-12)
}

func TestToSystem_PrefersSystemSpellings(t *testing.T) {
	f := newComposeFixture(t)
	system := []Unit{f.newton, f.m, f.s}

	// Energy: N m is entirely inside the system.
	energy := mustUnit(Mul(f.newton, f.m))
	results, err := ToSystem(energy, system)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	member := map[string]bool{"N": true, "m": true, "s": true}
	for _, b := range results[0].Bases() {
		assert.True(t, member[b.Name()], "preferred spelling must use system units, got %s", b.Name())
	}
	assert.True(t, Equal(results[0], energy))
}
