package sym

// maxPartsDepth bounds repeated integration by parts.
const maxPartsDepth = 8

// antiderivatives maps a function f to F(u) such that F' = f, for use with
// linear arguments.
var antiderivatives = map[string]func(u Expr) Expr{
	"exp":  func(u Expr) Expr { return apply("exp", u) },
	"log":  func(u Expr) Expr { return add(mul(u, apply("log", u)), neg(u)) },
	"sin":  func(u Expr) Expr { return neg(apply("cos", u)) },
	"cos":  func(u Expr) Expr { return apply("sin", u) },
	"tan":  func(u Expr) Expr { return neg(apply("log", apply("cos", u))) },
	"cot":  func(u Expr) Expr { return apply("log", apply("sin", u)) },
	"sec":  func(u Expr) Expr { return apply("log", add(apply("sec", u), apply("tan", u))) },
	"csc":  func(u Expr) Expr { return neg(apply("log", add(apply("csc", u), apply("cot", u)))) },
	"sinh": func(u Expr) Expr { return apply("cosh", u) },
	"cosh": func(u Expr) Expr { return apply("sinh", u) },
	"tanh": func(u Expr) Expr { return apply("log", apply("cosh", u)) },
	"coth": func(u Expr) Expr { return apply("log", apply("sinh", u)) },
	"asin": func(u Expr) Expr {
		return add(mul(u, apply("asin", u)), apply("sqrt", add(one, neg(pow(u, two)))))
	},
	"acos": func(u Expr) Expr {
		return add(mul(u, apply("acos", u)), neg(apply("sqrt", add(one, neg(pow(u, two))))))
	},
	"atan": func(u Expr) Expr {
		return add(mul(u, apply("atan", u)), neg(mul(half, apply("log", add(pow(u, two), one)))))
	},
	"asinh": func(u Expr) Expr {
		return add(mul(u, apply("asinh", u)), neg(apply("sqrt", add(pow(u, two), one))))
	},
	"atanh": func(u Expr) Expr {
		return add(mul(u, apply("atanh", u)), mul(half, apply("log", add(one, neg(pow(u, two))))))
	},
}

// linear returns the slope of u in x if u is linear in x.
func linear(u Expr, x string) (Expr, bool) {
	d := diff(u, x)
	if has(d, x) || isZero(d) {
		return nil, false
	}
	return d, true
}

// integrate finds an antiderivative of e with respect to x without a constant
// of integration. The result is false if no rule applies.
func integrate(e Expr, x string) (Expr, bool) {
	return integrateDepth(e, x, 0)
}

func integrateDepth(e Expr, x string, depth int) (Expr, bool) {
	if !has(e, x) {
		return mul(e, Symbol(x)), true
	}
	switch v := e.(type) {
	case *Sym:
		// x -> x^2/2
		return mul(half, pow(v, two)), true
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			r, ok := integrateDepth(t, x, depth)
			if !ok {
				return nil, false
			}
			ts[i] = r
		}
		return add(ts...), true
	case *Mul:
		return integrateMul(v, x, depth)
	case *Pow:
		switch {
		case !has(v.exp, x):
			a, ok := linear(v.base, x)
			if !ok {
				break
			}
			if Equal(v.exp, minusOne) {
				// (ax+b)^-1 -> log(ax+b)/a
				return mul(apply("log", v.base), pow(a, minusOne)), true
			}
			n1 := add(v.exp, one)
			return mul(pow(v.base, n1), pow(mul(a, n1), minusOne)), true
		case !has(v.base, x):
			a, ok := linear(v.exp, x)
			if !ok {
				break
			}
			// c^(ax+b) -> c^(ax+b) / (a log c)
			return mul(v, pow(mul(a, apply("log", v.base)), minusOne)), true
		}
	case *Call:
		if len(v.args) != 1 {
			break
		}
		F := antiderivatives[v.fn]
		if F == nil {
			break
		}
		a, ok := linear(v.args[0], x)
		if !ok {
			break
		}
		return mul(F(v.args[0]), pow(a, minusOne)), true
	}
	if ex := expand(e); !Equal(ex, e) {
		return integrateDepth(ex, x, depth)
	}
	return nil, false
}

func integrateMul(m *Mul, x string, depth int) (Expr, bool) {
	var consts, deps []Expr
	for _, f := range m.factors {
		if has(f, x) {
			deps = append(deps, f)
		} else {
			consts = append(consts, f)
		}
	}
	if len(consts) > 0 {
		r, ok := integrateDepth(mul(deps...), x, depth)
		if !ok {
			return nil, false
		}
		return mul(append(consts, r)...), true
	}
	if ex := expand(m); !Equal(ex, m) {
		return integrateDepth(ex, x, depth)
	}
	if depth >= maxPartsDepth {
		return nil, false
	}
	// Integration by parts with u a positive integer power of x:
	// ∫ u dv = u v - ∫ u' v
	for i, f := range m.factors {
		if !isMonomial(f, x) {
			continue
		}
		rest := make([]Expr, 0, len(m.factors)-1)
		rest = append(rest, m.factors[:i]...)
		rest = append(rest, m.factors[i+1:]...)
		dv := mul(rest...)
		v, ok := integrateDepth(dv, x, depth+1)
		if !ok {
			continue
		}
		w, ok := integrateDepth(mul(diff(f, x), v), x, depth+1)
		if !ok {
			continue
		}
		return add(mul(f, v), neg(w)), true
	}
	return nil, false
}

// isMonomial reports whether f is x or x raised to a positive integer.
func isMonomial(f Expr, x string) bool {
	if s, ok := f.(*Sym); ok {
		return s.name == x
	}
	p, ok := f.(*Pow)
	if !ok {
		return false
	}
	s, ok := p.base.(*Sym)
	return ok && s.name == x && isInt(p.exp) && sign(p.exp) > 0
}
