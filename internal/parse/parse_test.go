package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbuckley/quanta/internal/catalog"
	"github.com/tbuckley/quanta/internal/parse"
	"github.com/tbuckley/quanta/internal/unit"
)

func newResolver(t *testing.T, opts ...parse.Option) *parse.Resolver {
	t.Helper()
	return parse.New(catalog.Default().Current(), opts...)
}

func TestParse_Expressions(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		name  string
		input string
		want  unit.Unit
	}{
		{name: "bare name", input: "m", want: catalog.Meter},
		{name: "long name", input: "meter", want: catalog.Meter},
		{name: "registered prefix form", input: "km", want: mustParse(t, r, "1000 m")},
		{name: "explicit product", input: "kg * m", want: mustMul(t, catalog.Kilogram, catalog.Meter)},
		{name: "juxtaposition product", input: "kg m", want: mustMul(t, catalog.Kilogram, catalog.Meter)},
		{name: "quotient", input: "m / s", want: mustDiv(t, catalog.Meter, catalog.Second)},
		{name: "chain of quotients", input: "m / s / s", want: mustParse(t, r, "m s^-2")},
		{name: "caret power", input: "m^2", want: mustPow(t, catalog.Meter, 2)},
		{name: "double-star power", input: "m**2", want: mustPow(t, catalog.Meter, 2)},
		{name: "negative power", input: "s^-1", want: catalog.Hertz},
		{name: "float power", input: "m^0.5", want: mustPow(t, catalog.Meter, 0.5)},
		{name: "parenthesized rational power", input: "m^(1/2)", want: mustPow(t, catalog.Meter, 0.5)},
		{name: "leading scale", input: "10 m / s", want: mustScaled(t, 10, mustDiv(t, catalog.Meter, catalog.Second))},
		{name: "scientific scale", input: "1e3 m", want: mustScaled(t, 1000, catalog.Meter)},
		{name: "joule spelled out", input: "kg m^2 s^-2", want: catalog.Joule},
		{name: "percent", input: "%", want: catalog.Percent},
		{name: "scaled percent", input: "5 %", want: mustScaled(t, 0.05, unit.One)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, unit.Equal(got, tt.want), "parsed %q to %s, want %s", tt.input, got, tt.want)
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "blank", input: "   "},
		{name: "trailing operator", input: "m /"},
		{name: "dangling power", input: "m ^"},
		{name: "unclosed paren exponent", input: "m^(1/2"},
		{name: "stray character", input: "m # s"},
		{name: "operator first", input: "* m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Parse(tt.input)
			assert.ErrorIs(t, err, parse.ErrSyntax)
		})
	}
}

func TestResolve_StrictUnknown(t *testing.T) {
	r := newResolver(t)
	_, err := r.Resolve("flibbet")
	assert.ErrorIs(t, err, unit.ErrUnknownUnit)
}

func TestResolve_StrictSuggests(t *testing.T) {
	r := newResolver(t)
	_, err := r.Resolve("watts")
	require.ErrorIs(t, err, unit.ErrUnknownUnit)
	assert.ErrorContains(t, err, "did you mean")
	assert.ErrorContains(t, err, "watt")
}

func TestResolve_WarnPolicy(t *testing.T) {
	var warned []string
	r := newResolver(t,
		parse.WithPolicy(parse.Warn),
		parse.WithWarnFunc(func(msg string) { warned = append(warned, msg) }))

	got, err := r.Resolve("flibbet")
	require.NoError(t, err)
	_, ok := got.(*unit.Unrecognized)
	assert.True(t, ok)
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0], "flibbet")
}

func TestResolve_SilentPolicy(t *testing.T) {
	r := newResolver(t, parse.WithPolicy(parse.Silent))
	got, err := r.Resolve("flibbet")
	require.NoError(t, err)
	_, ok := got.(*unit.Unrecognized)
	assert.True(t, ok)
}

// A known prefix in front of a registered name synthesizes a prefixed
// unit even when the catalog never registered that combination.
func TestResolve_SyntheticPrefix(t *testing.T) {
	r := newResolver(t)

	// The catalog does not prefix minutes.
	_, registered := catalog.Lookup("kmin")
	require.False(t, registered)

	got, err := r.Resolve("kmin")
	require.NoError(t, err)
	named, ok := got.(*unit.Named)
	require.True(t, ok)
	assert.True(t, named.IsPrefix())

	want, err := unit.Scaled(60000, catalog.Second)
	require.NoError(t, err)
	assert.True(t, unit.Equal(got, want))

	// Repeated resolution returns the cached identity.
	again, err := r.Resolve("kmin")
	require.NoError(t, err)
	assert.Same(t, got, again)
}

func TestResolve_BinaryPrefixSplit(t *testing.T) {
	r := newResolver(t)
	got, err := r.Resolve("Kimin")
	require.NoError(t, err)
	want, err := unit.Scaled(1024*60, catalog.Second)
	require.NoError(t, err)
	assert.True(t, unit.Equal(got, want))
}

func TestSuggest(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		name     string
		query    string
		contains string
	}{
		{name: "case-insensitive hit", query: "HZ", contains: "Hz"},
		{name: "single deletion", query: "watts", contains: "watt"},
		{name: "single substitution", query: "kq", contains: "kg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, r.Suggest(tt.query), tt.contains)
		})
	}
	assert.Empty(t, r.Suggest("zzqqzzqq"))
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    parse.Policy
		wantErr bool
	}{
		{in: "strict", want: parse.Strict},
		{in: "", want: parse.Strict},
		{in: "WARN", want: parse.Warn},
		{in: " silent ", want: parse.Silent},
		{in: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parse.ParsePolicy(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, parse.ErrSyntax, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParse_UnknownInsideExpression(t *testing.T) {
	r := newResolver(t)
	_, err := r.Parse("10 flibbet / s")
	assert.ErrorIs(t, err, unit.ErrUnknownUnit)
}

func mustParse(t *testing.T, r *parse.Resolver, input string) unit.Unit {
	t.Helper()
	u, err := r.Parse(input)
	require.NoError(t, err)
	return u
}

func mustMul(t *testing.T, a, b unit.Unit) unit.Unit {
	t.Helper()
	u, err := unit.Mul(a, b)
	require.NoError(t, err)
	return u
}

func mustDiv(t *testing.T, a, b unit.Unit) unit.Unit {
	t.Helper()
	u, err := unit.Div(a, b)
	require.NoError(t, err)
	return u
}

func mustPow(t *testing.T, u unit.Unit, p float64) unit.Unit {
	t.Helper()
	out, err := unit.Pow(u, p)
	require.NoError(t, err)
	return out
}

func mustScaled(t *testing.T, factor float64, u unit.Unit) unit.Unit {
	t.Helper()
	out, err := unit.Scaled(complex(factor, 0), u)
	require.NoError(t, err)
	return out
}
