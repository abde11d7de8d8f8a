package sym

import (
	"strings"
)

func (n *Num) String() string {
	return n.r.RatString()
}

func (f *Float) String() string {
	return f.f.Text('g', precDigits(f.f.Prec()))
}

func (s *Sym) String() string {
	return s.name
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		switch {
		case i == 0:
			b.WriteString(t.String())
		case isNegative(t):
			b.WriteString(" - ")
			b.WriteString(neg(t).String())
		default:
			b.WriteString(" + ")
			b.WriteString(t.String())
		}
	}
	return b.String()
}

func (m *Mul) String() string {
	num, den, negative := fraction(m)
	s := strings.Join(num, "*")
	if len(den) > 0 {
		d := strings.Join(den, "*")
		if len(den) > 1 {
			d = "(" + d + ")"
		}
		s += "/" + d
	}
	if negative {
		s = "-" + s
	}
	return s
}

// fraction splits a product into numerator and denominator factor texts.
func fraction(m *Mul) (num, den []string, negative bool) {
	for _, f := range m.factors {
		switch v := f.(type) {
		case *Num:
			if v.r.Sign() < 0 {
				negative = true
			}
			if p := v.r.Num(); p.CmpAbs(one.r.Num()) != 0 {
				num = append(num, strings.TrimPrefix(p.String(), "-"))
			}
			if q := v.r.Denom(); !q.IsInt64() || q.Int64() != 1 {
				den = append(den, q.String())
			}
		case *Float:
			if v.f.Sign() < 0 {
				negative = true
			}
			if a := absNum(v); !isOne(a) {
				num = append(num, a.String())
			}
		case *Pow:
			if isNegative(v.exp) {
				den = append(den, factorString(pow(v.base, neg(v.exp))))
				continue
			}
			num = append(num, factorString(v))
		default:
			num = append(num, factorString(v))
		}
	}
	if len(num) == 0 {
		num = []string{"1"}
	}
	return num, den, negative
}

// factorString formats a factor of a product, parenthesized if it is a sum.
func factorString(e Expr) string {
	if _, ok := e.(*Add); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func (p *Pow) String() string {
	if isNegative(p.exp) {
		return "1/" + powDenString(pow(p.base, neg(p.exp)))
	}
	if n, ok := p.exp.(*Num); ok && n.r.Cmp(half.r) == 0 {
		return "sqrt(" + p.base.String() + ")"
	}
	return atomString(p.base) + "**" + atomString(p.exp)
}

func powDenString(e Expr) string {
	switch e.(type) {
	case *Add, *Mul:
		return "(" + e.String() + ")"
	}
	return e.String()
}

// atomString formats an operand of **, parenthesized unless it is a symbol,
// a call, or a non-negative integer.
func atomString(e Expr) string {
	switch v := e.(type) {
	case *Sym, *Call:
		return e.String()
	case *Num:
		if v.r.IsInt() && v.r.Sign() >= 0 {
			return e.String()
		}
	case *Float:
		if v.f.Sign() >= 0 {
			return e.String()
		}
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.r.Cmp(half.r) == 0 {
			// sqrt(x)
			return e.String()
		}
	}
	return "(" + e.String() + ")"
}

func (c *Call) String() string {
	var b strings.Builder
	b.WriteString(c.fn)
	b.WriteByte('(')
	for i, a := range c.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}
