package sym

import (
	"errors"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// funcDef describes a function known to the backend.
type funcDef struct {
	// name is the canonical spelling of the function.
	name string
	// min and max bound the number of arguments.
	min, max int
	// eval evaluates the function on one Float argument. It may be nil.
	eval monadic
}

func (f *funcDef) canCall(n int) bool {
	return f.min <= n && n <= f.max
}

// monadic evaluates a function of one variable. f must set out to its result,
// to the precision of out. If f is called on an argument outside its domain,
// it should panic with big.ErrNaN or return a non-finite result.
type monadic func(out, in *big.Float) *big.Float

// call evaluates m on x, reporting false if x is outside the domain.
func (m monadic) call(x *Float) (r Expr, ok bool) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		err, _ := p.(error)
		if errors.As(err, &big.ErrNaN{}) {
			r, ok = nil, false
			return
		}
		panic(p)
	}()
	out := new(big.Float).SetPrec(x.f.Prec())
	m(out, new(big.Float).Copy(x.f))
	if out.IsInf() {
		return nil, false
	}
	return &Float{f: out}, true
}

func bigLog(out, in *big.Float) *big.Float {
	if in.Sign() <= 0 {
		panic(big.ErrNaN{})
	}
	return bigfloat.Log(out, in)
}

// numericConsts evaluates named constants to the given precision. The
// imaginary unit has no real value and is absent.
var numericConsts = map[string]func(prec uint) *big.Float{
	symPi: func(prec uint) *big.Float {
		return bigfloat.Pi(new(big.Float).SetPrec(prec))
	},
	symE: func(prec uint) *big.Float {
		one := new(big.Float).SetPrec(prec).SetInt64(1)
		return bigfloat.Exp(new(big.Float).SetPrec(prec), one)
	},
	"GoldenRatio": func(prec uint) *big.Float {
		r := new(big.Float).SetPrec(prec).SetInt64(5)
		r.Sqrt(r)
		r.Add(r, big.NewFloat(1))
		return r.Quo(r, big.NewFloat(2))
	},
	"EulerGamma": func(prec uint) *big.Float {
		r, _, _ := new(big.Float).SetPrec(prec).Parse(eulerGamma, 10)
		return r
	},
}

const eulerGamma = "0.57721566490153286060651209008240243104215933593992359880576723488486772677766467093694706329174674951463"

var funcTable = []*funcDef{
	{name: "exp", min: 1, max: 1},
	{name: "log", min: 1, max: 2, eval: bigLog},
	{name: "sqrt", min: 1, max: 1},
	{name: "Abs", min: 1, max: 1},
	{name: "Mod", min: 2, max: 2},
	{name: "floor", min: 1, max: 1},
	{name: "ceiling", min: 1, max: 1},
	{name: "sign", min: 1, max: 1},

	{name: "sin", min: 1, max: 1, eval: bigSin},
	{name: "cos", min: 1, max: 1, eval: bigCos},
	{name: "tan", min: 1, max: 1, eval: bigTan},
	{name: "cot", min: 1, max: 1, eval: bigCot},
	{name: "sec", min: 1, max: 1, eval: bigSec},
	{name: "csc", min: 1, max: 1, eval: bigCsc},
	{name: "asin", min: 1, max: 1, eval: bigAsin},
	{name: "acos", min: 1, max: 1, eval: bigAcos},
	{name: "atan", min: 1, max: 1, eval: bigAtan},
	{name: "acot", min: 1, max: 1, eval: bigAcot},
	{name: "asec", min: 1, max: 1, eval: ofRecip(bigAcos)},
	{name: "acsc", min: 1, max: 1, eval: ofRecip(bigAsin)},

	{name: "sinh", min: 1, max: 1, eval: bigSinh},
	{name: "cosh", min: 1, max: 1, eval: bigCosh},
	{name: "tanh", min: 1, max: 1, eval: bigTanh},
	{name: "coth", min: 1, max: 1, eval: bigCoth},
	{name: "sech", min: 1, max: 1, eval: bigSech},
	{name: "csch", min: 1, max: 1, eval: bigCsch},
	{name: "asinh", min: 1, max: 1, eval: bigAsinh},
	{name: "acosh", min: 1, max: 1, eval: bigAcosh},
	{name: "atanh", min: 1, max: 1, eval: bigAtanh},
	{name: "acoth", min: 1, max: 1, eval: ofRecip(bigAtanh)},
	{name: "asech", min: 1, max: 1, eval: ofRecip(bigAcosh)},
	{name: "acsch", min: 1, max: 1, eval: ofRecip(bigAsinh)},
}

var funcs = func() map[string]*funcDef {
	m := make(map[string]*funcDef, len(funcTable))
	for _, f := range funcTable {
		m[f.name] = f
	}
	return m
}()

// lookupFunc returns the definition of a function name, or nil if the name is
// not a function.
func lookupFunc(name string) *funcDef {
	return funcs[name]
}

// Funcs returns the names of the functions the backend parses.
func Funcs() []string {
	v := make([]string, len(funcTable))
	for i, f := range funcTable {
		v[i] = f.name
	}
	return v
}

// zeroAt maps functions to the argument value at which they are exactly zero,
// and oneAt to the argument where they are exactly one.
var (
	zeroAt = map[string]Expr{
		"sin": zero, "tan": zero, "asin": zero, "atan": zero,
		"sinh": zero, "tanh": zero, "asinh": zero, "atanh": zero,
		"acos": one, "acosh": one, "log": one, "asec": one, "asech": one,
	}
	oneAt = map[string]Expr{
		"cos": zero, "sec": zero, "cosh": zero, "sech": zero,
	}
)

// apply returns the canonical form of a function applied to args.
func apply(name string, args ...Expr) Expr {
	fn := lookupFunc(name)
	if fn == nil || !fn.canCall(len(args)) {
		panic(&UnsupportedError{Op: "call", X: &Call{fn: name, args: args}})
	}
	x := args[0]
	switch name {
	case "sqrt":
		return pow(x, half)
	case "exp":
		if c, ok := x.(*Call); ok && c.fn == "log" {
			return c.args[0]
		}
		if isZero(x) {
			return one
		}
		// Never evaluated numerically.
		return &Call{fn: name, args: args}
	case "log":
		if len(args) == 2 {
			return logBase(x, args[1])
		}
		if s, ok := x.(*Sym); ok && s.name == symE {
			return one
		}
		if isZero(x) {
			panic(&DomainError{X: x, Arg: 1, Func: "log"})
		}
	case "Abs":
		return abs(x)
	case "Mod":
		return mod(x, args[1])
	case "floor", "ceiling":
		if r := round(name, x); r != nil {
			return r
		}
		return &Call{fn: name, args: args}
	case "sign":
		if isNumber(x) {
			return Integer(int64(sign(x)))
		}
		return &Call{fn: name, args: args}
	}
	if v, ok := zeroAt[name]; ok && Equal(v, x) {
		return zero
	}
	if v, ok := oneAt[name]; ok && Equal(v, x) {
		return one
	}
	if r := piValue(name, x); r != nil {
		return r
	}
	if f, ok := x.(*Float); ok && fn.eval != nil {
		if r, ok := fn.eval.call(f); ok {
			return r
		}
	}
	return &Call{fn: name, args: args}
}

// piMultiple returns k when x is k*pi for a rational k.
func piMultiple(x Expr) (*big.Rat, bool) {
	switch v := x.(type) {
	case *Sym:
		if v.name == symPi {
			return big.NewRat(1, 1), true
		}
	case *Mul:
		if len(v.factors) != 2 {
			break
		}
		c, ok := v.factors[0].(*Num)
		s, sok := v.factors[1].(*Sym)
		if ok && sok && s.name == symPi {
			return c.r, true
		}
	}
	return nil, false
}

// sinTwelfths returns sin(nπ/12) for 0 <= n < 24, or nil where the value has
// no short radical form.
func sinTwelfths(n int) Expr {
	if n >= 12 {
		if r := sinTwelfths(n - 12); r != nil {
			return neg(r)
		}
		return nil
	}
	if n > 6 {
		n = 12 - n
	}
	switch n {
	case 0:
		return zero
	case 2:
		return half
	case 3:
		return mul(half, pow(two, half))
	case 4:
		return mul(half, pow(Integer(3), half))
	case 6:
		return one
	}
	return nil
}

// piValue evaluates a circular function exactly at multiples of π/6 and π/4.
// The result is nil elsewhere and at poles.
func piValue(name string, x Expr) Expr {
	k, ok := piMultiple(x)
	if !ok {
		return nil
	}
	t := new(big.Rat).Mul(k, big.NewRat(12, 1))
	if !t.IsInt() {
		return nil
	}
	n := int(new(big.Int).Mod(t.Num(), big.NewInt(24)).Int64())
	s, c := sinTwelfths(n), sinTwelfths((n+6)%24)
	if s == nil || c == nil {
		return nil
	}
	switch name {
	case "sin":
		return s
	case "cos":
		return c
	case "tan", "sec":
		if isZero(c) {
			return nil
		}
		if name == "sec" {
			return pow(c, minusOne)
		}
		return mul(s, pow(c, minusOne))
	case "cot", "csc":
		if isZero(s) {
			return nil
		}
		if name == "csc" {
			return pow(s, minusOne)
		}
		return mul(c, pow(s, minusOne))
	}
	return nil
}

// logBase returns log(x, b) as log(x)/log(b), or exactly when x is an integer
// power of b.
func logBase(x, b Expr) Expr {
	if bx, ok := x.(*Num); ok && bx.r.IsInt() && bx.r.Sign() > 0 {
		if bb, ok := b.(*Num); ok && bb.r.IsInt() && bb.r.Num().Cmp(big.NewInt(1)) > 0 {
			n, base := bx.r.Num(), bb.r.Num()
			k := int64(0)
			acc := big.NewInt(1)
			for acc.Cmp(n) < 0 {
				acc.Mul(acc, base)
				k++
			}
			if acc.Cmp(n) == 0 {
				return Integer(k)
			}
		}
	}
	return mul(apply("log", x), pow(apply("log", b), minusOne))
}

func abs(x Expr) Expr {
	switch v := x.(type) {
	case *Num, *Float:
		return absNum(v)
	case *Call:
		if v.fn == "Abs" {
			return v
		}
	case *Mul:
		if c, r := splitCoeff(v); !isOne(c) {
			return mul(absNum(c), abs(r))
		}
	}
	return &Call{fn: "Abs", args: []Expr{x}}
}

// round computes floor or ceiling of a number. The result is nil for
// non-numbers.
func round(name string, x Expr) Expr {
	switch v := x.(type) {
	case *Num:
		q, m := new(big.Int).DivMod(v.r.Num(), v.r.Denom(), new(big.Int))
		if name == "ceiling" && m.Sign() != 0 {
			q.Add(q, big.NewInt(1))
		}
		return &Num{r: new(big.Rat).SetInt(q)}
	case *Float:
		if v.f.IsInf() {
			return nil
		}
		r, _ := v.f.Rat(nil)
		return round(name, &Num{r: r})
	}
	return nil
}

// mod computes a - b*floor(a/b).
func mod(a, b Expr) Expr {
	if isZero(b) {
		divzero(b)
	}
	if isNumber(a) && isNumber(b) {
		q := mul(a, pow(b, minusOne))
		return add(a, neg(mul(b, round("floor", q))))
	}
	return &Call{fn: "Mod", args: []Expr{a, b}}
}
