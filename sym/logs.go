package sym

// expandLog rewrites logarithms of products and powers into sums of
// logarithms. Without force, only logarithms of positive numbers are split.
func expandLog(e Expr, force bool) Expr {
	switch v := e.(type) {
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = expandLog(t, force)
		}
		return add(ts...)
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = expandLog(f, force)
		}
		return mul(fs...)
	case *Pow:
		return pow(expandLog(v.base, force), expandLog(v.exp, force))
	case *Call:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = expandLog(a, force)
		}
		if v.fn == "log" && len(args) == 1 {
			return logOf(args[0], force)
		}
		if v.fn == "exp" {
			// Keep exp unevaluated, as the constructor would.
			return &Call{fn: "exp", args: args}
		}
		return apply(v.fn, args...)
	}
	return e
}

// logOf expands log(u).
func logOf(u Expr, force bool) Expr {
	switch v := u.(type) {
	case *Mul:
		if sign(v.factors[0]) < 0 {
			break
		}
		if !force && !allPositive(v.factors) {
			break
		}
		ts := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			ts[i] = logOf(f, force)
		}
		return add(ts...)
	case *Pow:
		if !force && sign(v.base) <= 0 {
			break
		}
		return mul(v.exp, logOf(v.base, force))
	case *Call:
		if v.fn == "exp" && force {
			return v.args[0]
		}
	}
	return apply("log", u)
}

func allPositive(fs []Expr) bool {
	for _, f := range fs {
		if sign(f) <= 0 {
			return false
		}
	}
	return true
}
