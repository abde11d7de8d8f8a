package sym

// derivatives maps a function to its derivative at u.
var derivatives = map[string]func(u Expr) Expr{
	"exp": func(u Expr) Expr { return apply("exp", u) },
	"log": func(u Expr) Expr { return pow(u, minusOne) },
	"sin": func(u Expr) Expr { return apply("cos", u) },
	"cos": func(u Expr) Expr { return neg(apply("sin", u)) },
	"tan": func(u Expr) Expr { return add(one, pow(apply("tan", u), two)) },
	"cot": func(u Expr) Expr { return neg(add(one, pow(apply("cot", u), two))) },
	"sec": func(u Expr) Expr { return mul(apply("sec", u), apply("tan", u)) },
	"csc": func(u Expr) Expr { return neg(mul(apply("csc", u), apply("cot", u))) },
	"asin": func(u Expr) Expr {
		return pow(add(one, neg(pow(u, two))), minusHalf)
	},
	"acos": func(u Expr) Expr {
		return neg(pow(add(one, neg(pow(u, two))), minusHalf))
	},
	"atan": func(u Expr) Expr { return pow(add(one, pow(u, two)), minusOne) },
	"acot": func(u Expr) Expr { return neg(pow(add(one, pow(u, two)), minusOne)) },
	"asec": func(u Expr) Expr {
		return pow(mul(pow(u, two), apply("sqrt", add(one, neg(pow(u, Integer(-2)))))), minusOne)
	},
	"acsc": func(u Expr) Expr {
		return neg(pow(mul(pow(u, two), apply("sqrt", add(one, neg(pow(u, Integer(-2)))))), minusOne))
	},
	"sinh": func(u Expr) Expr { return apply("cosh", u) },
	"cosh": func(u Expr) Expr { return apply("sinh", u) },
	"tanh": func(u Expr) Expr { return add(one, neg(pow(apply("tanh", u), two))) },
	"coth": func(u Expr) Expr { return add(one, neg(pow(apply("coth", u), two))) },
	"sech": func(u Expr) Expr { return neg(mul(apply("sech", u), apply("tanh", u))) },
	"csch": func(u Expr) Expr { return neg(mul(apply("csch", u), apply("coth", u))) },
	"asinh": func(u Expr) Expr {
		return pow(apply("sqrt", add(pow(u, two), one)), minusOne)
	},
	"acosh": func(u Expr) Expr {
		return pow(apply("sqrt", add(pow(u, two), minusOne)), minusOne)
	},
	"atanh": func(u Expr) Expr { return pow(add(one, neg(pow(u, two))), minusOne) },
	"acoth": func(u Expr) Expr { return pow(add(one, neg(pow(u, two))), minusOne) },
	"asech": func(u Expr) Expr {
		return neg(pow(mul(u, apply("sqrt", add(one, neg(pow(u, two))))), minusOne))
	},
	"acsch": func(u Expr) Expr {
		return neg(pow(mul(pow(u, two), apply("sqrt", add(one, pow(u, Integer(-2))))), minusOne))
	},
	"Abs":     func(u Expr) Expr { return apply("sign", u) },
	"sign":    func(Expr) Expr { return zero },
	"floor":   func(Expr) Expr { return zero },
	"ceiling": func(Expr) Expr { return zero },
}

// diff differentiates e with respect to the symbol x.
func diff(e Expr, x string) Expr {
	if !has(e, x) {
		return zero
	}
	switch v := e.(type) {
	case *Sym:
		// has(e, x) means v is x.
		return one
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = diff(t, x)
		}
		return add(ts...)
	case *Mul:
		// Product rule: sum over i of f_i' * prod_{j != i} f_j.
		ts := make([]Expr, 0, len(v.factors))
		for i, f := range v.factors {
			d := diff(f, x)
			if isZero(d) {
				continue
			}
			fs := make([]Expr, 0, len(v.factors))
			fs = append(fs, d)
			fs = append(fs, v.factors[:i]...)
			fs = append(fs, v.factors[i+1:]...)
			ts = append(ts, mul(fs...))
		}
		return add(ts...)
	case *Pow:
		switch {
		case !has(v.exp, x):
			// d/dx u^n = n u^(n-1) u'
			return mul(v.exp, pow(v.base, add(v.exp, minusOne)), diff(v.base, x))
		case !has(v.base, x):
			// d/dx a^u = a^u ln(a) u'
			return mul(v, apply("log", v.base), diff(v.exp, x))
		default:
			// d/dx u^w = u^w (w' ln(u) + w u'/u)
			return mul(v, add(
				mul(diff(v.exp, x), apply("log", v.base)),
				mul(v.exp, diff(v.base, x), pow(v.base, minusOne)),
			))
		}
	case *Call:
		if v.fn == "Mod" {
			// Mod(a, b) = a - b floor(a/b)
			a, b := v.args[0], v.args[1]
			return add(diff(a, x), neg(mul(diff(b, x), apply("floor", mul(a, pow(b, minusOne))))))
		}
		d := derivatives[v.fn]
		if d == nil || len(v.args) != 1 {
			panic(&UnsupportedError{Op: "differentiate", X: v, Var: x})
		}
		u := v.args[0]
		return mul(d(u), diff(u, x))
	}
	panic(&UnsupportedError{Op: "differentiate", X: e, Var: x})
}
