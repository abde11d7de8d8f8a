package sym

import (
	"math/big"
	"strings"
)

// DefaultDigits is the number of significant digits numeric evaluation uses
// when no Digits option is given.
const DefaultDigits = 30

// Context holds settings for symbolic computation. A Context is immutable
// once created, so it is safe to use concurrently.
type Context struct {
	digits int
	prec   uint
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type digitsopt int

func (digitsopt) ctxOption() {}

// Digits sets the number of significant digits of numeric evaluation.
func Digits(n int) ContextOption {
	return digitsopt(n)
}

// NewContext creates a new context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{digits: DefaultDigits}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context with options applied.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := *ctx
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case digitsopt:
			if opt < 1 {
				panic("sym: digits must be positive")
			}
			n.digits = int(opt)
		default:
			panic("sym: unknown option type")
		}
	}
	n.prec = digitsPrec(n.digits)
	return &n
}

// Digits returns the number of significant digits of numeric evaluation.
func (ctx *Context) Digits() int {
	return ctx.digits
}

// Parse parses an expression into canonical form. Integer literals are exact;
// decimal literals are approximate at the context's precision.
func (ctx *Context) Parse(src string) (e Expr, err error) {
	defer catch(&err)
	n, err := parse(src)
	if err != nil {
		return nil, err
	}
	return ctx.build(n), nil
}

// Simplify parses an expression and returns its canonical form.
func (ctx *Context) Simplify(src string) (Expr, error) {
	return ctx.Parse(src)
}

// Diff differentiates f with respect to the symbol x.
func (ctx *Context) Diff(f, x Expr) (r Expr, err error) {
	defer catch(&err)
	s, ok := x.(*Sym)
	if !ok {
		return nil, &UnsupportedError{Op: "differentiate", X: f, Var: x.String()}
	}
	return diff(f, s.name), nil
}

// Integrate finds an antiderivative of f with respect to the symbol x. The
// result has no constant of integration.
func (ctx *Context) Integrate(f, x Expr) (r Expr, err error) {
	defer catch(&err)
	s, ok := x.(*Sym)
	if !ok {
		return nil, &UnsupportedError{Op: "integrate", X: f, Var: x.String()}
	}
	r, ok = integrate(f, s.name)
	if !ok {
		return nil, &UnsupportedError{Op: "integrate", X: f, Var: s.name}
	}
	return r, nil
}

// ExpandLog splits logarithms of products and powers. With force, the split
// is done without regard to the signs of the operands.
func (ctx *Context) ExpandLog(e Expr, force bool) (r Expr, err error) {
	defer catch(&err)
	return expandLog(e, force), nil
}

// EvalNumeric replaces every exact number in e with a decimal at the
// context's precision and folds what can be folded. Named real constants
// like pi become decimals too. Free symbols stay symbolic, and exp is never
// evaluated, though its argument is.
func (ctx *Context) EvalNumeric(e Expr) (r Expr, err error) {
	defer catch(&err)
	return ctx.evalf(e), nil
}

func (ctx *Context) evalf(e Expr) Expr {
	switch v := e.(type) {
	case *Num:
		return &Float{f: toFloat(v, ctx.prec)}
	case *Sym:
		if f, ok := numericConsts[v.name]; ok {
			return &Float{f: f(ctx.prec)}
		}
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = ctx.evalf(t)
		}
		return add(ts...)
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = ctx.evalf(f)
		}
		return mul(fs...)
	case *Pow:
		return pow(ctx.evalf(v.base), ctx.evalf(v.exp))
	case *Call:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = ctx.evalf(a)
		}
		if v.fn == "exp" {
			return &Call{fn: "exp", args: args}
		}
		if r, ok := ctx.wide(v); ok {
			return r
		}
		return apply(v.fn, args...)
	}
	return e
}

// wide evaluates a call whose exact arguments have integer parts too large to
// survive rounding to the context precision, as with sin(10^100). Those
// arguments are converted with their integer bits on top of the precision.
// The result is false unless the call evaluates to a Float.
func (ctx *Context) wide(c *Call) (Expr, bool) {
	var extra uint
	for _, a := range c.args {
		if n, ok := a.(*Num); ok {
			if k := n.r.Num().BitLen() - n.r.Denom().BitLen(); k > 0 {
				extra = max(extra, uint(k))
			}
		}
	}
	if extra == 0 {
		return nil, false
	}
	args := make([]Expr, len(c.args))
	for i, a := range c.args {
		if n, ok := a.(*Num); ok {
			args[i] = &Float{f: toFloat(n, ctx.prec+extra)}
			continue
		}
		args[i] = ctx.evalf(a)
	}
	f, ok := apply(c.fn, args...).(*Float)
	if !ok {
		return nil, false
	}
	return &Float{f: new(big.Float).SetPrec(ctx.prec).Set(f.f)}, true
}

// Rational converts decimal text like "2.5" to an exact rational number.
func (ctx *Context) Rational(lit string) (Expr, error) {
	s := lit
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, &LexError{Text: lit, Kind: "number", Col: 1}
	}
	return &Num{r: r}, nil
}

// LaTeX formats e as LaTeX math.
func (ctx *Context) LaTeX(e Expr) string {
	return LaTeX(e)
}

// number converts literal text to a Num or Float.
func (ctx *Context) number(s string) Expr {
	if !strings.ContainsAny(s, ".eE") {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			panic("sym: invalid number: " + s)
		}
		return &Num{r: r}
	}
	f, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil {
		panic("sym: invalid number: " + s + " (" + err.Error() + ")")
	}
	if f.IsInf() {
		panic(&DomainError{X: &Sym{name: s}, Func: "number"})
	}
	return &Float{f: f}
}

// build converts a syntax tree to a canonical expression.
func (ctx *Context) build(n *node) Expr {
	switch n.kind {
	case nodeNum:
		return ctx.number(n.name)
	case nodeName:
		return &Sym{name: n.name}
	case nodeCall:
		args := n.args()
		v := make([]Expr, len(args))
		for i, a := range args {
			v[i] = ctx.build(a)
		}
		return apply(n.name, v...)
	case nodeNeg:
		return neg(ctx.build(n.left))
	case nodeAdd:
		return add(ctx.build(n.left), ctx.build(n.right))
	case nodeSub:
		return add(ctx.build(n.left), neg(ctx.build(n.right)))
	case nodeMul:
		return mul(ctx.build(n.left), ctx.build(n.right))
	case nodeDiv:
		return mul(ctx.build(n.left), pow(ctx.build(n.right), minusOne))
	case nodePow:
		return pow(ctx.build(n.left), ctx.build(n.right))
	case nodeNop:
		return ctx.build(n.left)
	default:
		panic("sym: invalid AST node " + n.kind.String())
	}
}
