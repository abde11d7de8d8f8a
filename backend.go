package symcalc

import "github.com/zephyrtronium/symcalc/sym"

// Backend is the symbolic math capability the solver relies on. Expressions
// cross the interface as sym.Expr values, whose String methods produce text
// that Simplify accepts again.
type Backend interface {
	// Simplify parses an expression written with + - * / ** and brackets,
	// named functions, and named symbols, and returns its simplified form.
	Simplify(expr string) (sym.Expr, error)
	// Diff differentiates f with respect to the symbol x.
	Diff(f, x sym.Expr) (sym.Expr, error)
	// Integrate finds an antiderivative of f with respect to the symbol x.
	Integrate(f, x sym.Expr) (sym.Expr, error)
	// EvalNumeric converts numbers in e to decimals, leaving symbols and
	// exp calls symbolic.
	EvalNumeric(e sym.Expr) (sym.Expr, error)
	// ExpandLog splits logarithms of products and powers.
	ExpandLog(e sym.Expr, force bool) (sym.Expr, error)
	// LaTeX formats e as LaTeX math.
	LaTeX(e sym.Expr) string
	// Rational converts a decimal literal to an exact fraction.
	Rational(decimal string) (sym.Expr, error)
}

var _ Backend = (*sym.Context)(nil)
