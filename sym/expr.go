package sym

import (
	"math"
	"math/big"
)

// Expr is a symbolic expression. Every Expr produced by this package is in
// canonical form, so two equal expressions have equal String results. Exprs
// are immutable.
type Expr interface {
	// String formats the expression in the backend's syntax. The result
	// parses back to an equal expression.
	String() string

	expr()
}

// Num is an exact rational number.
type Num struct {
	r *big.Rat
}

// Float is an approximate real number. Its precision in bits determines how
// many digits it prints.
type Float struct {
	f *big.Float
}

// Sym is a free symbol.
type Sym struct {
	name string
}

// Add is a sum of two or more terms, none of which is an Add.
type Add struct {
	terms []Expr
}

// Mul is a product of two or more factors, none of which is a Mul. A numeric
// coefficient, if any, is the first factor.
type Mul struct {
	factors []Expr
}

// Pow is an exponentiation.
type Pow struct {
	base, exp Expr
}

// Call is an application of a named function.
type Call struct {
	fn   string
	args []Expr
}

func (*Num) expr()   {}
func (*Float) expr() {}
func (*Sym) expr()   {}
func (*Add) expr()   {}
func (*Mul) expr()   {}
func (*Pow) expr()   {}
func (*Call) expr()  {}

// Rat returns a copy of the number's value.
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.r) }

// Float returns a copy of the number's value.
func (f *Float) Float() *big.Float { return new(big.Float).Copy(f.f) }

// Name returns the symbol's name.
func (s *Sym) Name() string { return s.name }

// Terms returns the terms of the sum.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

// Factors returns the factors of the product.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

// Base returns the base of the exponentiation.
func (p *Pow) Base() Expr { return p.base }

// Exp returns the exponent of the exponentiation.
func (p *Pow) Exp() Expr { return p.exp }

// Func returns the name of the called function.
func (c *Call) Func() string { return c.fn }

// Args returns the arguments of the call.
func (c *Call) Args() []Expr { return append([]Expr(nil), c.args...) }

// Symbol returns the symbol with the given name.
func Symbol(name string) *Sym {
	return &Sym{name: name}
}

// Integer returns an exact integer.
func Integer(n int64) *Num {
	return &Num{r: new(big.Rat).SetInt64(n)}
}

var (
	zero      = Integer(0)
	one       = Integer(1)
	two       = Integer(2)
	minusOne  = Integer(-1)
	half      = &Num{r: big.NewRat(1, 2)}
	minusHalf = &Num{r: big.NewRat(-1, 2)}
)

// Names of symbols with fixed meanings.
const (
	symE  = "E"
	symI  = "I"
	symPi = "pi"
)

// guardBits is the number of bits of precision beyond the requested digits
// that Floats carry and never print.
const guardBits = 10

// digitsPrec returns the precision in bits of Floats printing d digits.
func digitsPrec(d int) uint {
	return uint(math.Ceil(float64(d)*math.Log2(10))) + guardBits
}

// precDigits returns the number of significant digits a Float with the given
// precision prints.
func precDigits(prec uint) int {
	if prec <= guardBits {
		return 1
	}
	d := int(float64(prec-guardBits) * math.Log10(2))
	if d < 1 {
		d = 1
	}
	return d
}

func isNumber(e Expr) bool {
	switch e.(type) {
	case *Num, *Float:
		return true
	}
	return false
}

func isZero(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.r.Sign() == 0
	case *Float:
		return v.f.Sign() == 0
	}
	return false
}

func isOne(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.r.IsInt() && v.r.Num().IsInt64() && v.r.Num().Int64() == 1
	case *Float:
		return v.f.Cmp(big.NewFloat(1)) == 0
	}
	return false
}

// isInt reports whether e is an exact integer.
func isInt(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.r.IsInt()
}

// sign returns the sign of a number, or 0 for non-numbers.
func sign(e Expr) int {
	switch v := e.(type) {
	case *Num:
		return v.r.Sign()
	case *Float:
		return v.f.Sign()
	}
	return 0
}

// isNegative reports whether e is a number or product with a negative
// coefficient.
func isNegative(e Expr) bool {
	switch v := e.(type) {
	case *Num, *Float:
		return sign(v) < 0
	case *Mul:
		return sign(v.factors[0]) < 0
	}
	return false
}

// precOf returns the lowest precision among the Floats in xs, or 0 if there
// are none.
func precOf(xs ...Expr) uint {
	var p uint
	for _, x := range xs {
		if f, ok := x.(*Float); ok {
			if p == 0 || f.f.Prec() < p {
				p = f.f.Prec()
			}
		}
	}
	return p
}

// toFloat converts a number to a new big.Float with the given precision.
func toFloat(e Expr, prec uint) *big.Float {
	switch v := e.(type) {
	case *Num:
		return new(big.Float).SetPrec(prec).SetRat(v.r)
	case *Float:
		return new(big.Float).SetPrec(prec).Set(v.f)
	}
	panic("sym: toFloat of non-number " + e.String())
}

func addNum(a, b Expr) Expr {
	if x, ok := a.(*Num); ok {
		if y, ok := b.(*Num); ok {
			return &Num{r: new(big.Rat).Add(x.r, y.r)}
		}
	}
	p := precOf(a, b)
	return &Float{f: new(big.Float).SetPrec(p).Add(toFloat(a, p), toFloat(b, p))}
}

func mulNum(a, b Expr) Expr {
	if x, ok := a.(*Num); ok {
		if y, ok := b.(*Num); ok {
			return &Num{r: new(big.Rat).Mul(x.r, y.r)}
		}
	}
	p := precOf(a, b)
	return &Float{f: new(big.Float).SetPrec(p).Mul(toFloat(a, p), toFloat(b, p))}
}

func absNum(a Expr) Expr {
	if sign(a) < 0 {
		return mulNum(minusOne, a)
	}
	return a
}

// neg returns -e in canonical form.
func neg(e Expr) Expr {
	return mul(minusOne, e)
}

// has reports whether e contains the symbol x.
func has(e Expr, x string) bool {
	switch v := e.(type) {
	case *Sym:
		return v.name == x
	case *Add:
		for _, t := range v.terms {
			if has(t, x) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if has(f, x) {
				return true
			}
		}
	case *Pow:
		return has(v.base, x) || has(v.exp, x)
	case *Call:
		for _, a := range v.args {
			if has(a, x) {
				return true
			}
		}
	}
	return false
}

// FreeSymbols returns the names of the symbols in e, in order of first
// appearance.
func FreeSymbols(e Expr) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch v := e.(type) {
		case *Sym:
			if !seen[v.name] {
				seen[v.name] = true
				names = append(names, v.name)
			}
		case *Add:
			for _, t := range v.terms {
				walk(t)
			}
		case *Mul:
			for _, f := range v.factors {
				walk(f)
			}
		case *Pow:
			walk(v.base)
			walk(v.exp)
		case *Call:
			for _, a := range v.args {
				walk(a)
			}
		}
	}
	walk(e)
	return names
}

// Equal reports whether two expressions are equal in canonical form.
func Equal(a, b Expr) bool {
	return a.String() == b.String()
}
