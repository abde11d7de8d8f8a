package symcalc_test

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	crdb "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/symcalc"
)

func solve(t *testing.T, s *symcalc.Solver, expr string, terms map[string]string) *symcalc.Solution {
	t.Helper()
	sol, err := s.Solve(symcalc.Request{Expression: expr, Terms: terms})
	require.NoError(t, err, "solving %q", expr)
	return sol
}

func TestSolve(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		terms  map[string]string
		exact  string
		approx string
	}{
		{"linear", "2x+3", map[string]string{"x": ""}, "2*x + 3", "2*x + 3"},
		{"implicit", "2x + 3x", nil, "5*x", "5*x"},
		{"undefined", "1y", nil, "y", "y"},
		{"diff", "diff(x^2,x)", nil, "2*x", "2*x"},
		{"diff nested", "diff(sin(x^2), x)", nil, "2*x*cos(x^2)", ""},
		{"integrate", "integrate(x,x)", nil, "x^2/2 + C₀", ""},
		{"integrate twice", "integrate(x,x)+integrate(1,y)", nil, "x^2/2 + y + C₀ + C₁", ""},
		{"pi", "π", nil, "π", "3.14159265358979323846264338328"},
		{"terms", "a^2", map[string]string{"a": "2b", "b": "3"}, "36", "36"},
		{"decimal", "2.5x", nil, "5*x/2", "2.5*x"},
		{"fraction", "1/3", nil, "1/3", "0.333333333333333333333333333333"},
		{"pow", "pow(2,10)", nil, "1024", "1024"},
		{"pow precedence", "pow(x+1,2)", nil, "(x + 1)^2", ""},
		{"root", "root(8,3)", nil, "2", "2"},
		{"sqrt", "sqrt(-4)", nil, "2*i", ""},
		{"imaginary", "i*i", nil, "-1", "-1"},
		{"log base 10", "log(1000)", nil, "3", "3"},
		{"log base", "log(8,2)", nil, "3", "3"},
		{"ln power", "ln(x^2)", nil, "2*ln(x)", "2*ln(x)"},
		{"exp stays", "exp(2)", nil, "exp(2)", "exp(2)"},
		{"e power", "e^x", nil, "exp(x)", "exp(x)"},
		{"sin", "sin(1)", nil, "sin(1)", "0.84147098480789650665250232163"},
		{"sin pi", "sin(π)", nil, "0", "0"},
		{"sin half pi", "sin(π/2)", nil, "1", "1"},
		{"tiny", "10^-30", nil, "1/1000000000000000000000000000000", "1*10^-30"},
		{"abs", "abs(-3)", nil, "3", "3"},
		{"floor", "floor(7/2)", nil, "3", "3"},
		{"ceil", "ceil(7/2)", nil, "4", "4"},
		{"mod", "mod(7,3)", nil, "1", "1"},
		{"sign", "sign(-5)", nil, "-1", "-1"},
		{"arcsin", "arcsin(x)", nil, "arcsin(x)", "arcsin(x)"},
		{"arccosh", "arccosh(x)", nil, "arccosh(x)", "arccosh(x)"},
		{"random fixed", "random(3,3)", nil, "3", "3"},
		{"random integer bounds", "random(2/1, 2.0)", nil, "2", "2"},
	}
	s := symcalc.NewSolver(symcalc.WithSeed(1))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sol := solve(t, s, c.src, c.terms)
			assert.True(t, sol.HasExact)
			assert.False(t, sol.UsesConstantLiteral)
			assert.Equal(t, c.exact, sol.Exact)
			assert.Equal(t, c.exact, sol.ExactCopy)
			if c.approx != "" {
				assert.Equal(t, c.approx, sol.Approximate)
			}
			assert.Equal(t, c.src, sol.Input)
		})
	}
}

func TestSolveLiteralConstant(t *testing.T) {
	s := symcalc.NewSolver()
	sol, err := s.Solve(symcalc.Request{Expression: "2π", Literal: map[string]bool{"π": true}})
	require.NoError(t, err)
	assert.False(t, sol.HasExact)
	assert.True(t, sol.UsesConstantLiteral)
	assert.Empty(t, sol.Exact)
	assert.Equal(t, "6.28318530717958647692528676656", sol.Approximate)

	// Literal choices for constants that are not used do not matter.
	sol, err = s.Solve(symcalc.Request{Expression: "2x", Literal: map[string]bool{"π": true}})
	require.NoError(t, err)
	assert.True(t, sol.HasExact)
	assert.Equal(t, "2*x", sol.Exact)

	// i has no literal value.
	sol, err = s.Solve(symcalc.Request{Expression: "i", Literal: map[string]bool{"i": true}})
	require.NoError(t, err)
	assert.True(t, sol.HasExact)
	assert.Equal(t, "i", sol.Exact)
}

func TestConstantLiterals(t *testing.T) {
	for _, c := range symcalc.Constants {
		if c.Literal == "" {
			assert.Equal(t, 'i', c.Symbol)
			continue
		}
		dot := strings.IndexByte(c.Literal, '.')
		require.Positive(t, dot, "%c", c.Symbol)
		assert.Len(t, c.Literal[dot+1:], 100, "%c", c.Symbol)
		// The literal agrees with the backend's own value.
		s := symcalc.NewSolver(symcalc.WithDigits(90))
		exact, err := s.Solve(symcalc.Request{Expression: string(c.Symbol)})
		require.NoError(t, err)
		lit, err := s.Solve(symcalc.Request{Expression: string(c.Symbol), Literal: map[string]bool{string(c.Symbol): true}})
		require.NoError(t, err)
		assert.Equal(t, exact.Approximate, lit.Approximate, "%c", c.Symbol)
	}
}

func TestSolveErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		terms map[string]string
		kind  symcalc.Kind
	}{
		{"unknown symbol", "2x$", nil, symcalc.UnknownSymbol},
		{"unknown symbol in term", "a", map[string]string{"a": "#"}, symcalc.UnknownSymbol},
		{"circular", "a", map[string]string{"a": "b", "b": "a"}, symcalc.CircularDefinition},
		{"diff number", "diff(x^2, 2)", nil, symcalc.InvalidDifferentiationVariable},
		{"diff expression", "diff(x^2, x+y)", nil, symcalc.InvalidDifferentiationVariable},
		{"diff defined variable", "diff(x^2, x)", map[string]string{"x": "5"}, symcalc.InvalidDifferentiationVariable},
		{"diff constant", "diff(x^2, π)", nil, symcalc.InvalidDifferentiationVariable},
		{"integrate expression", "integrate(x, 2x)", nil, symcalc.InvalidIntegrationVariable},
		{"random fraction", "random(1, 2.5)", nil, symcalc.NonIntegerRandomBound},
		{"random symbol", "random(x, 2)", nil, symcalc.NonIntegerRandomBound},
		{"unclosed", "sin(x", nil, symcalc.MalformedFunctionCall},
		{"no arguments", "sin", nil, symcalc.MalformedFunctionCall},
		{"too many", "sin(x, y)", nil, symcalc.MalformedFunctionCall},
		{"too few", "diff(x)", nil, symcalc.MalformedFunctionCall},
		{"empty call", "exp()", nil, symcalc.MalformedFunctionCall},
		{"lone point", "2+.", nil, symcalc.MalformedInput},
		{"two points", "1.2.3", nil, symcalc.MalformedInput},
		{"empty", "  ", nil, symcalc.MalformedInput},
		{"division by zero", "1/0", nil, symcalc.BackendFailure},
		{"syntax", "2+*3", nil, symcalc.BackendFailure},
		{"unbalanced", "(x", nil, symcalc.BackendFailure},
	}
	s := symcalc.NewSolver(symcalc.WithSeed(1))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sol, err := s.Solve(symcalc.Request{Expression: c.src, Terms: c.terms})
			require.Error(t, err)
			assert.Nil(t, sol)
			assert.Equal(t, c.kind, symcalc.KindOf(err), "got %v", err)
			var e symcalc.Error
			assert.True(t, errors.As(err, &e))
		})
	}
}

func TestSolveErrorMessages(t *testing.T) {
	s := symcalc.NewSolver()
	cases := []struct {
		src  string
		want string
	}{
		{"2x$", `unknown symbol '$'`},
		{"random(1, 2.5)", `random: upper bound must be an integer, not "5/2"`},
		{"diff(x^2, 2)", `diff: second parameter must be a single variable, not "2"`},
		{"sin(x, y)", `cannot call sin with 2 parameters`},
		{"sin x", `sin must be followed by a parenthesized argument list`},
		{"1/0", `simplify: division by zero`},
	}
	for _, c := range cases {
		_, err := s.Solve(symcalc.Request{Expression: c.src})
		require.Error(t, err, c.src)
		assert.Equal(t, c.want, err.Error(), c.src)
	}
}

func TestSolveHints(t *testing.T) {
	s := symcalc.NewSolver()
	_, err := s.Solve(symcalc.Request{Expression: "diff(x, 2)"})
	require.Error(t, err)
	assert.NotEmpty(t, crdb.GetAllHints(err))
}

func TestIntegrationConstantsPerSolve(t *testing.T) {
	s := symcalc.NewSolver()
	for i := 0; i < 3; i++ {
		sol := solve(t, s, "integrate(2x, x)", nil)
		assert.Equal(t, "x^2 + C₀", sol.Exact)
	}
	sol := solve(t, s, "integrate(integrate(1, x), x)", nil)
	assert.Equal(t, "x^2/2 + x*C₀ + C₁", sol.Exact)
}

func TestIntegrationConstant(t *testing.T) {
	assert.Equal(t, "C₀", symcalc.IntegrationConstant(0))
	assert.Equal(t, "C₉", symcalc.IntegrationConstant(9))
	assert.Equal(t, "C₁₂", symcalc.IntegrationConstant(12))
}

func TestRandom(t *testing.T) {
	s := symcalc.NewSolver()
	for i := 0; i < 50; i++ {
		sol := solve(t, s, "random(5, 1)", nil)
		n, err := strconv.Atoi(sol.Exact)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 5)
	}
	sol := solve(t, s, "random(-3, -3)", nil)
	assert.Equal(t, "-3", sol.Exact)
}

func TestRandomSeeded(t *testing.T) {
	a := symcalc.NewSolver(symcalc.WithSeed(42))
	b := symcalc.NewSolver(symcalc.WithSeed(42))
	const expr = "random(1, 1000000000000) + random(1, 1000000000000)"
	assert.Equal(t, solve(t, a, expr, nil).Exact, solve(t, b, expr, nil).Exact)
}

func TestSolveFormats(t *testing.T) {
	s := symcalc.NewSolver()
	sol, err := s.Solve(symcalc.Request{
		Expression: "integrate(x,x)",
		Display:    symcalc.LaTeX,
		Copy:       symcalc.Text,
	})
	require.NoError(t, err)
	assert.Equal(t, `\frac{x^{2}}{2} + C_{0}`, sol.Exact)
	assert.Equal(t, "x^2/2 + C₀", sol.ExactCopy)
	assert.Nil(t, sol.ExactImage)

	sol, err = s.Solve(symcalc.Request{
		Expression: "2π",
		Display:    symcalc.Image,
		Copy:       symcalc.LaTeX,
		DPI:        150,
	})
	require.NoError(t, err)
	assert.Equal(t, `2 \pi`, sol.Exact)
	require.NotNil(t, sol.ExactImage)
	assert.Equal(t, sol.Exact, sol.ExactImage.LaTeX)
	assert.Equal(t, 150, sol.ExactImage.DPI)
	require.NotNil(t, sol.ApproximateImage)
}

func TestSolveCommaGrouping(t *testing.T) {
	s := symcalc.NewSolver()
	sol, err := s.Solve(symcalc.Request{Expression: "1234567x + 0.5", CommaGrouping: true})
	require.NoError(t, err)
	assert.Equal(t, "1,234,567*x + 1/2", sol.Exact)
	assert.Equal(t, "1,234,567*x + 0.5", sol.Approximate)

	sol, err = s.Solve(symcalc.Request{Expression: "1234567/2", CommaGrouping: true, Display: symcalc.LaTeX})
	require.NoError(t, err)
	assert.Equal(t, `\frac{1{,}234{,}567}{2}`, sol.Exact)
}

func TestSolveConcurrent(t *testing.T) {
	s := symcalc.NewSolver()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				sol, err := s.Solve(symcalc.Request{Expression: "integrate(x,x) + diff(x^3, x)"})
				if assert.NoError(t, err) {
					assert.Equal(t, "7*x^2/2 + C₀", sol.Exact)
				}
			}
		}()
	}
	wg.Wait()
}
