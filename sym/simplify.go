package sym

import (
	"math"
	"math/big"
	"sort"
	"strings"
	"unicode"

	"github.com/zephyrtronium/bigfloat"
)

// maxIntPow is the largest exact integer exponent folded into a number.
const maxIntPow = 1 << 12

// maxPowBits bounds the size in bits of a folded power. Exact powers with
// larger results, and Float powers with larger binary exponents, stay
// symbolic.
const maxPowBits = 1 << 16

// add returns the canonical sum of ts. Nested sums are flattened, numbers
// are folded, and like terms are collected by coefficient.
func add(ts ...Expr) Expr {
	var flat []Expr
	for _, t := range ts {
		if a, ok := t.(*Add); ok {
			flat = append(flat, a.terms...)
			continue
		}
		flat = append(flat, t)
	}
	type group struct {
		coeff Expr
		rest  Expr
	}
	var (
		sum    Expr = zero
		groups []*group
		index  = make(map[string]*group)
	)
	for _, t := range flat {
		if isNumber(t) {
			sum = addNum(sum, t)
			continue
		}
		c, r := splitCoeff(t)
		k := r.String()
		if g := index[k]; g != nil {
			g.coeff = addNum(g.coeff, c)
			continue
		}
		g := &group{coeff: c, rest: r}
		index[k] = g
		groups = append(groups, g)
	}
	out := make([]Expr, 0, len(groups)+1)
	for _, g := range groups {
		if isZero(g.coeff) {
			continue
		}
		t := mul(g.coeff, g.rest)
		if a, ok := t.(*Add); ok {
			out = append(out, a.terms...)
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return termLess(out[i], out[j]) })
	if !isZero(sum) {
		out = append(out, sum)
	}
	switch len(out) {
	case 0:
		return sum
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

// splitCoeff separates a non-numeric term into its numeric coefficient and
// the remaining product.
func splitCoeff(t Expr) (coeff, rest Expr) {
	m, ok := t.(*Mul)
	if !ok || !isNumber(m.factors[0]) {
		return one, t
	}
	if len(m.factors) == 2 {
		return m.factors[0], m.factors[1]
	}
	return m.factors[0], &Mul{factors: m.factors[1:]}
}

// asPow separates a factor into base and exponent.
func asPow(f Expr) (base, exp Expr) {
	if p, ok := f.(*Pow); ok {
		return p.base, p.exp
	}
	return f, one
}

// mul returns the canonical product of fs. Nested products are flattened,
// numbers are folded into one coefficient, and powers of equal bases are
// combined. A numeric coefficient distributes over a lone sum.
func mul(fs ...Expr) Expr {
	var flat []Expr
	for _, f := range fs {
		if m, ok := f.(*Mul); ok {
			flat = append(flat, m.factors...)
			continue
		}
		flat = append(flat, f)
	}
	type group struct {
		base, exp Expr
	}
	var (
		coeff  Expr = one
		groups []*group
		index  = make(map[string]*group)
	)
	for _, f := range flat {
		if isNumber(f) {
			coeff = mulNum(coeff, f)
			continue
		}
		b, e := asPow(f)
		k := b.String()
		if g := index[k]; g != nil {
			g.exp = add(g.exp, e)
			continue
		}
		g := &group{base: b, exp: e}
		index[k] = g
		groups = append(groups, g)
	}
	if isZero(coeff) {
		return coeff
	}
	var out []Expr
	again := false
	for _, g := range groups {
		p := pow(g.base, g.exp)
		switch p := p.(type) {
		case *Num, *Float:
			coeff = mulNum(coeff, p)
		case *Mul:
			out = append(out, p.factors...)
			again = true
		default:
			out = append(out, p)
		}
	}
	if again {
		return mul(append([]Expr{coeff}, out...)...)
	}
	if isZero(coeff) || len(out) == 0 {
		return coeff
	}
	sort.SliceStable(out, func(i, j int) bool { return factorLess(out[i], out[j]) })
	if len(out) == 1 {
		if isOne(coeff) {
			return out[0]
		}
		if a, ok := out[0].(*Add); ok {
			ts := make([]Expr, len(a.terms))
			for i, t := range a.terms {
				ts[i] = mul(coeff, t)
			}
			return add(ts...)
		}
	}
	if isOne(coeff) {
		return &Mul{factors: out}
	}
	return &Mul{factors: append([]Expr{coeff}, out...)}
}

// pow returns the canonical form of b^e.
func pow(b, e Expr) Expr {
	switch {
	case isZero(e):
		return one
	case isOne(e):
		return b
	case isNumber(b) && isNumber(e):
		return powNum(b, e)
	case isOne(b):
		return b
	case isZero(b):
		if sign(e) < 0 {
			divzero(b)
		}
		return &Pow{base: b, exp: e}
	}
	switch v := b.(type) {
	case *Sym:
		switch v.name {
		case symE:
			return apply("exp", e)
		case symI:
			if isInt(e) {
				return powI(e.(*Num))
			}
		}
	case *Pow:
		if isInt(e) {
			return pow(v.base, mul(v.exp, e))
		}
	case *Mul:
		if isInt(e) {
			fs := make([]Expr, len(v.factors))
			for i, f := range v.factors {
				fs[i] = pow(f, e)
			}
			return mul(fs...)
		}
	case *Call:
		if v.fn == "exp" && isNumber(e) {
			return apply("exp", mul(e, v.args[0]))
		}
	}
	return &Pow{base: b, exp: e}
}

// powI computes I^n.
func powI(n *Num) Expr {
	k := new(big.Int).Mod(n.r.Num(), big.NewInt(4)).Int64()
	switch k {
	case 0:
		return one
	case 1:
		return Symbol(symI)
	case 2:
		return minusOne
	default:
		return &Mul{factors: []Expr{minusOne, Symbol(symI)}}
	}
}

// powNum computes a power of numbers, exactly where possible.
func powNum(b, e Expr) Expr {
	x, xok := b.(*Num)
	y, yok := e.(*Num)
	if xok && yok {
		return powRat(x, y)
	}
	p := precOf(b, e)
	bf, ef := toFloat(b, p), toFloat(e, p)
	if !floatPowFits(bf, ef) {
		return &Pow{base: b, exp: e}
	}
	switch bf.Sign() {
	case 0:
		if ef.Sign() < 0 {
			divzero(b)
		}
		return &Float{f: new(big.Float).SetPrec(p)}
	case 1:
		return &Float{f: bigfloat.Pow(new(big.Float).SetPrec(p), bf, ef)}
	}
	if !ef.IsInt() {
		// Complex result; leave it alone.
		return &Pow{base: b, exp: e}
	}
	r := bigfloat.Pow(new(big.Float).SetPrec(p), new(big.Float).Neg(bf), ef)
	n, _ := ef.Int(nil)
	if n.Bit(0) == 1 {
		r.Neg(r)
	}
	return &Float{f: r}
}

// floatPowFits reports whether b^e has a binary exponent within maxPowBits.
func floatPowFits(b, e *big.Float) bool {
	if b.Sign() == 0 || b.IsInf() || e.IsInf() {
		return !e.IsInf()
	}
	m := new(big.Float)
	x := b.MantExp(m)
	mf, _ := m.Float64()
	ef, _ := e.Float64()
	bits := (float64(x) + math.Log2(math.Abs(mf))) * ef
	return math.Abs(bits) <= maxPowBits
}

// powRat computes an exact power of rationals.
func powRat(b, e *Num) Expr {
	if b.r.Sign() == 0 {
		if e.r.Sign() < 0 {
			divzero(b)
		}
		return zero
	}
	if e.r.IsInt() {
		n := e.r.Num()
		if !n.IsInt64() || n.Int64() > maxIntPow || n.Int64() < -maxIntPow {
			return &Pow{base: b, exp: e}
		}
		k := n.Int64()
		neg := k < 0
		if neg {
			k = -k
		}
		if int64(b.r.Num().BitLen()+b.r.Denom().BitLen())*k > maxPowBits {
			return &Pow{base: b, exp: e}
		}
		num := new(big.Int).Exp(b.r.Num(), big.NewInt(k), nil)
		den := new(big.Int).Exp(b.r.Denom(), big.NewInt(k), nil)
		r := new(big.Rat).SetFrac(num, den)
		if neg {
			r.Inv(r)
		}
		return &Num{r: r}
	}
	p, q := e.r.Num(), e.r.Denom()
	if !q.IsInt64() || q.Int64() > maxIntPow {
		return &Pow{base: b, exp: e}
	}
	if b.r.Sign() < 0 {
		if q.Int64() == 2 {
			// (-b)^(p/2) = I^p * b^(p/2)
			return mul(pow(Symbol(symI), &Num{r: new(big.Rat).SetInt(p)}), pow(&Num{r: new(big.Rat).Neg(b.r)}, e))
		}
		return &Pow{base: b, exp: e}
	}
	if rn, ok := iroot(b.r.Num(), q.Int64()); ok {
		if rd, ok := iroot(b.r.Denom(), q.Int64()); ok {
			return pow(&Num{r: new(big.Rat).SetFrac(rn, rd)}, &Num{r: new(big.Rat).SetInt(p)})
		}
	}
	if p.CmpAbs(q) > 0 {
		// b^(p/q) = b^k * b^(r/q) with |r| < q.
		k, r := new(big.Int).QuoRem(p, q, new(big.Int))
		return mul(pow(b, &Num{r: new(big.Rat).SetInt(k)}), pow(b, &Num{r: new(big.Rat).SetFrac(r, q)}))
	}
	return &Pow{base: b, exp: e}
}

// iroot returns the exact q-th root of a non-negative integer.
func iroot(n *big.Int, q int64) (*big.Int, bool) {
	if n.Sign() == 0 || n.Cmp(big.NewInt(1)) == 0 {
		return new(big.Int).Set(n), true
	}
	if q == 2 {
		r := new(big.Int).Sqrt(n)
		return r, new(big.Int).Mul(r, r).Cmp(n) == 0
	}
	// Binary search over [1, 2^(bits/q + 1)].
	lo := big.NewInt(1)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen())/uint(q)+1)
	bq := big.NewInt(q)
	for lo.Cmp(hi) <= 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Rsh(mid, 1)
		c := new(big.Int).Exp(mid, bq, nil).Cmp(n)
		switch {
		case c == 0:
			return mid, true
		case c < 0:
			lo = mid.Add(mid, big.NewInt(1))
		default:
			hi = mid.Sub(mid, big.NewInt(1))
		}
	}
	return nil, false
}

// degree is the polynomial degree of a term, used to order sums.
func degree(e Expr) float64 {
	switch v := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if n, ok := v.exp.(*Num); ok {
			f, _ := n.r.Float64()
			return degree(v.base) * f
		}
		return degree(v.base)
	case *Mul:
		var d float64
		for _, f := range v.factors {
			d += degree(f)
		}
		return d
	}
	return 0
}

// sortKey is the text used to break ties in canonical order. Lowercase sorts
// before uppercase so that constants like C₀ trail ordinary variables.
func sortKey(e Expr) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, e.String())
}

// termLess orders non-numeric terms of a sum: higher degree first.
func termLess(a, b Expr) bool {
	da, db := degree(a), degree(b)
	if da != db {
		return da > db
	}
	_, ra := splitCoeff(a)
	_, rb := splitCoeff(b)
	return sortKey(ra) < sortKey(rb)
}

// factorRank groups factors of a product: numeric radicals, then symbols,
// then sums, then function calls.
func factorRank(f Expr) int {
	b, _ := asPow(f)
	switch b.(type) {
	case *Num, *Float:
		return 0
	case *Sym:
		return 1
	case *Add:
		return 2
	case *Call:
		return 3
	}
	return 4
}

// factorLess orders non-numeric factors of a product.
func factorLess(a, b Expr) bool {
	ra, rb := factorRank(a), factorRank(b)
	if ra != rb {
		return ra < rb
	}
	ba, ea := asPow(a)
	bb, eb := asPow(b)
	if ka, kb := sortKey(ba), sortKey(bb); ka != kb {
		return ka < kb
	}
	return ea.String() < eb.String()
}

// Simplify rebuilds e through the canonical constructors.
func simplify(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = simplify(t)
		}
		return add(ts...)
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = simplify(f)
		}
		return mul(fs...)
	case *Pow:
		return pow(simplify(v.base), simplify(v.exp))
	case *Call:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = simplify(a)
		}
		return apply(v.fn, args...)
	}
	return e
}

// expand distributes products over sums and expands small integer powers of
// sums.
func expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = expand(t)
		}
		return add(ts...)
	case *Mul:
		acc := []Expr{one}
		for _, f := range v.factors {
			f = expand(f)
			var next []Expr
			for _, a := range acc {
				if s, ok := f.(*Add); ok {
					for _, t := range s.terms {
						next = append(next, mul(a, t))
					}
					continue
				}
				next = append(next, mul(a, f))
			}
			acc = next
		}
		return add(acc...)
	case *Pow:
		b := expand(v.base)
		if _, ok := b.(*Add); ok && isInt(v.exp) {
			n := v.exp.(*Num).r.Num()
			if n.IsInt64() && n.Int64() > 1 && n.Int64() <= 16 {
				fs := make([]Expr, n.Int64())
				for i := range fs {
					fs[i] = b
				}
				return expand(&Mul{factors: fs})
			}
		}
		return pow(b, expand(v.exp))
	}
	return e
}
