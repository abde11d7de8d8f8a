package symcalc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zephyrtronium/symcalc/sym"
)

func TestDispatchComplete(t *testing.T) {
	for f := Function(0); f < numFunctions; f++ {
		d := dispatch[f]
		assert.NotNil(t, d.eval, "%s has no implementation", f)
		assert.GreaterOrEqual(t, d.min, 1, f.String())
		assert.GreaterOrEqual(t, d.max, d.min, f.String())
	}
	assert.Len(t, Functions, int(numFunctions))
}

func TestBackendNamesKnown(t *testing.T) {
	known := map[string]bool{}
	for _, name := range sym.Funcs() {
		known[name] = true
	}
	for f := Function(0); f < numFunctions; f++ {
		switch f {
		case FuncDiff, FuncIntegrate, FuncRandom, FuncPow, FuncRoot:
			continue
		}
		assert.True(t, known[backendName(f)], "backend has no %s for %s", backendName(f), f)
	}
}

func newTestEvaluator() *evaluator {
	return &evaluator{
		backend: sym.NewContext(),
		rand:    rand.New(rand.NewSource(1)),
		log:     zap.NewNop().Sugar(),
	}
}

func TestEvaluatorRewrites(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"pow", "{30}(x+1,2)", "((x+1)**(2))"},
		{"root", "{19}(x,n+1)", "((x)**(1/(n+1)))"},
		{"ln", "{37}(x)", "(log(x))"},
		{"log", "{26}(x)", "(log(x, 10))"},
		{"log base", "{26}(x,2)", "(log(x, 2))"},
		{"ceil", "{17}(x)", "(ceiling(x))"},
		{"arcsin", "{7}(x)", "(asin(x))"},
		{"nested", "{31}({32}(x))", "(sin((cos(x))))"},
		{"two calls", "{31}(x)*{32}(y)", "(sin(x))*(cos(y))"},
		{"mod", "{29}(a,b)", "(Mod(a, b))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := newTestEvaluator().resolve(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestEvaluatorConstants(t *testing.T) {
	ev := newTestEvaluator()
	got, err := ev.resolve("{0}(1,x)+{0}(1,y)")
	require.NoError(t, err)
	assert.Equal(t, "(x + C₀)+(y + C₁)", got)
	assert.Equal(t, 2, ev.consts)
}

func TestGroupDigits(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "1,234"},
		{"1234567.123456", "1,234,567.123456"},
		{"-1000*x + 20000", "-1,000*x + 20,000"},
		{"C₁₂", "C₁₂"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, groupDigits(c.in, ","), "from %q", c.in)
	}
	assert.Equal(t, `\frac{1{,}000}{3}`, groupDigits(`\frac{1000}{3}`, "{,}"))
}

func TestPowersOfTen(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1e-30", "1*10^-30"},
		{"2.5e+21*x", "2.5*10^21*x"},
		{"-1.25e7 + E", "-1.25*10^7 + E"},
		{"exp(2) + sec(x)", "exp(2) + sec(x)"},
		{"x^2 + 3", "x^2 + 3"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, powersOfTen(c.in), "from %q", c.in)
	}
}

func TestUserNames(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"log(x)", "ln(x)"},
		{"asinh(x) + asin(x)", "arcsinh(x) + arcsin(x)"},
		{"Abs(x) + ceiling(x)", "abs(x) + ceil(x)"},
		{"Mod(x, 2)", "mod(x, 2)"},
		{"2*pi*I", "2*π*i"},
		{"E + GoldenRatio + EulerGamma", "e + φ + γ"},
		{"exp(x)", "exp(x)"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, userNames.Replace(c.in), "from %q", c.in)
	}
}
