package symcalc_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/symcalc"
	"github.com/zephyrtronium/symcalc/sym"
)

func ph(f symcalc.Function) string {
	return fmt.Sprintf("{%d}", int(f))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		bad  rune
	}{
		{"empty", "", 0},
		{"simple", "2x+3", 0},
		{"constants", "iπ+eφγ", 0},
		{"whitespace", "2 x\t+\n3", 0},
		{"functions", "sin(x)+integrate(x^2, x)", 0},
		{"dollar", "2x$", '$'},
		{"brace", "{1}(x)", '{'},
		{"accent", "é", 'é'},
		{"semicolon", "a;b", ';'},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := symcalc.Validate(c.src)
			if c.bad == 0 {
				assert.NoError(t, err)
				return
			}
			var u *symcalc.UnknownSymbolError
			require.True(t, errors.As(err, &u), "wrong error %v", err)
			assert.Equal(t, c.bad, u.Symbol)
			assert.Equal(t, symcalc.UnknownSymbol, symcalc.KindOf(err))
		})
	}
}

func TestRemoveWhitespace(t *testing.T) {
	assert.Equal(t, "2x+3", symcalc.RemoveWhitespace(" 2 x\t+\n3 "))
	assert.Equal(t, "", symcalc.RemoveWhitespace(" \t\n"))
}

func TestTokenizeFunctions(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"none", "2x+1", "2x+1"},
		{"sin", "sin(x)", ph(symcalc.FuncSin) + "(x)"},
		{"arcsin", "arcsin(x)", ph(symcalc.FuncArcsin) + "(x)"},
		{"sinh", "sinh(x)+sin(x)", ph(symcalc.FuncSinh) + "(x)+" + ph(symcalc.FuncSin) + "(x)"},
		{"nested", "ln(exp(x))", ph(symcalc.FuncLn) + "(" + ph(symcalc.FuncExp) + "(x))"},
		{"adjacent", "2sin(x)cos(x)", "2" + ph(symcalc.FuncSin) + "(x)" + ph(symcalc.FuncCos) + "(x)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, symcalc.TokenizeFunctions(c.src))
		})
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	for i, name := range symcalc.Functions {
		src := name + "(x)"
		tok := symcalc.TokenizeFunctions(src)
		assert.Equal(t, ph(symcalc.Function(i))+"(x)", tok, "tokenizing %s", name)
		assert.Equal(t, src, symcalc.DetokenizeFunctions(tok))
	}
}

func TestFunctionsLongestFirst(t *testing.T) {
	for i := 1; i < len(symcalc.Functions); i++ {
		assert.GreaterOrEqual(t, len(symcalc.Functions[i-1]), len(symcalc.Functions[i]), "%s before %s", symcalc.Functions[i-1], symcalc.Functions[i])
	}
	for i, name := range symcalc.Functions {
		f, ok := symcalc.LookupFunction(name)
		require.True(t, ok)
		assert.Equal(t, symcalc.Function(i), f)
		assert.Equal(t, name, f.String())
	}
}

func TestInsertImplicitMultiplication(t *testing.T) {
	sin := ph(symcalc.FuncSin)
	cases := []struct {
		src  string
		want string
	}{
		{"", ""},
		{"2x", "2*x"},
		{"(x)(y)", "(x)*(y)"},
		{"2.5x", "2.5*x"},
		{"xy", "x*y"},
		{"2(x+1)", "2*(x+1)"},
		{"x(y)", "x*(y)"},
		{"(x)y", "(x)*y"},
		{"x2", "x*2"},
		{"(x)2", "(x)*2"},
		{"123.45", "123.45"},
		{"2π", "2*π"},
		{"πx", "π*x"},
		{"x+y", "x+y"},
		{"2" + sin + "(x)", "2*" + sin + "(x)"},
		{"x" + sin + "(x)", "x*" + sin + "(x)"},
		{sin + "(x)y", sin + "(x)*y"},
		{sin + "(x)" + sin + "(y)", sin + "(x)*" + sin + "(y)"},
		{"x^2y", "x^2*y"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, symcalc.InsertImplicitMultiplication(c.src), "from %q", c.src)
	}
}

func TestDecimalsToRationals(t *testing.T) {
	tag := func(lit string) (string, error) { return "r" + lit, nil }
	cases := []struct {
		src  string
		want string
	}{
		{"", ""},
		{"1+2", "1+2"},
		{"2.5*x", "(r2.5)*x"},
		{".5", "(r.5)"},
		{"5.", "(r5.)"},
		{"1.5+1.5", "(r1.5)+(r1.5)"},
		{ph(symcalc.FuncSin) + "(0.5)", ph(symcalc.FuncSin) + "((r0.5))"},
	}
	for _, c := range cases {
		got, err := symcalc.DecimalsToRationals(c.src, tag)
		require.NoError(t, err, c.src)
		assert.Equal(t, c.want, got, "from %q", c.src)
	}
	for _, bad := range []string{".", "2*.", "1.2.3", "x+.."} {
		_, err := symcalc.DecimalsToRationals(bad, tag)
		assert.Equal(t, symcalc.MalformedInput, symcalc.KindOf(err), "from %q: %v", bad, err)
	}
}

func TestDecimalsToRationalsBackend(t *testing.T) {
	ctx := sym.NewContext()
	rat := func(lit string) (string, error) {
		r, err := ctx.Rational(lit)
		if err != nil {
			return "", err
		}
		return r.String(), nil
	}
	got, err := symcalc.DecimalsToRationals("2.5*x+.25+3.", rat)
	require.NoError(t, err)
	assert.Equal(t, "(5/2)*x+(1/4)+(3)", got)
}

func TestExtractFunctionCall(t *testing.T) {
	f0, f1 := ph(symcalc.FuncIntegrate), ph(symcalc.FuncArcsinh)
	cases := []struct {
		name   string
		src    string
		fn     symcalc.Function
		params []string
		start  int
		end    int
	}{
		{
			name:   "nested",
			src:    f0 + "(1," + f1 + "(2,3))",
			fn:     symcalc.FuncIntegrate,
			params: []string{"1", f1 + "(2,3)"},
			start:  0,
			end:    len(f0+"(1,"+f1+"(2,3))") - 1,
		},
		{
			name:   "offset",
			src:    "2*" + f1 + "(x)+1",
			fn:     symcalc.FuncArcsinh,
			params: []string{"x"},
			start:  2,
			end:    2 + len(f1) + 2,
		},
		{
			name:   "brackets",
			src:    f0 + "((a,b),(c))",
			fn:     symcalc.FuncIntegrate,
			params: []string{"(a,b)", "(c)"},
			start:  0,
			end:    len(f0) + 10,
		},
		{
			name:   "empty",
			src:    f1 + "()",
			fn:     symcalc.FuncArcsinh,
			params: []string{""},
			start:  0,
			end:    len(f1) + 1,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			call, ok, err := symcalc.ExtractFunctionCall(c.src)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, c.fn, call.Func)
			assert.Equal(t, c.params, call.Params)
			assert.Equal(t, c.start, call.Start)
			assert.Equal(t, c.end, call.End)
			assert.Equal(t, byte(')'), c.src[call.End])
		})
	}
}

func TestExtractFunctionCallNone(t *testing.T) {
	_, ok, err := symcalc.ExtractFunctionCall("2*(x+1)")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestExtractFunctionCallMalformed(t *testing.T) {
	sin := ph(symcalc.FuncSin)
	for _, src := range []string{sin, sin + "x", sin + "(x", sin + "((x)", "1+" + sin} {
		_, ok, err := symcalc.ExtractFunctionCall(src)
		assert.True(t, ok, src)
		var c *symcalc.CallError
		require.True(t, errors.As(err, &c), "%q: %v", src, err)
		assert.Equal(t, symcalc.FuncSin, c.Func)
		assert.Equal(t, -1, c.Len)
		assert.Equal(t, symcalc.MalformedFunctionCall, symcalc.KindOf(err))
	}
}

func TestSplice(t *testing.T) {
	sin := ph(symcalc.FuncSin)
	src := "2*" + sin + "(x)+1"
	call, ok, err := symcalc.ExtractFunctionCall(src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2*(sin(x))+1", symcalc.Splice(src, call.Start, call.End, "sin(x)"))
	assert.Equal(t, "(a+b)", symcalc.Splice("x", 0, 0, "a+b"))
	assert.Equal(t, "1(2)", symcalc.Splice("123", 1, 2, "2"))
}

func TestDetokenizeLeavesText(t *testing.T) {
	assert.Equal(t, "2*x", symcalc.DetokenizeFunctions("2*x"))
	assert.Equal(t, "{x}", symcalc.DetokenizeFunctions("{x}"))
	assert.Equal(t, "{999}", symcalc.DetokenizeFunctions("{999}"))
	assert.True(t, strings.HasPrefix(symcalc.DetokenizeFunctions(ph(symcalc.FuncLn)+"(x)"), "ln("))
}
