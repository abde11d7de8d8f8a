package sym

import (
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"
)

var latexSymbols = map[string]string{
	symPi:         `\pi`,
	symE:          `e`,
	symI:          `i`,
	"GoldenRatio": `\phi`,
	"EulerGamma":  `\gamma`,
}

var latexFuncs = map[string]string{
	"sin": `\sin`, "cos": `\cos`, "tan": `\tan`, "cot": `\cot`, "sec": `\sec`, "csc": `\csc`,
	"asin": `\arcsin`, "acos": `\arccos`, "atan": `\arctan`,
	"sinh": `\sinh`, "cosh": `\cosh`, "tanh": `\tanh`, "coth": `\coth`,
	"log": `\ln`,
}

// LaTeX formats e as LaTeX math.
func LaTeX(e Expr) string {
	var b strings.Builder
	latex(&b, e)
	return b.String()
}

func latex(b *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *Num:
		if v.r.IsInt() {
			b.WriteString(v.r.Num().String())
			return
		}
		if v.r.Sign() < 0 {
			b.WriteByte('-')
		}
		b.WriteString(`\frac{`)
		b.WriteString(strings.TrimPrefix(v.r.Num().String(), "-"))
		b.WriteString("}{")
		b.WriteString(v.r.Denom().String())
		b.WriteByte('}')
	case *Float:
		s := v.String()
		if k := strings.IndexByte(s, 'e'); k >= 0 {
			exp := strings.TrimPrefix(s[k+1:], "+")
			s = s[:k] + ` \cdot 10^{` + exp + "}"
		}
		b.WriteString(s)
	case *Sym:
		b.WriteString(latexName(v.name))
	case *Add:
		for i, t := range v.terms {
			switch {
			case i == 0:
				latex(b, t)
			case isNegative(t):
				b.WriteString(" - ")
				latex(b, neg(t))
			default:
				b.WriteString(" + ")
				latex(b, t)
			}
		}
	case *Mul:
		latexMul(b, v)
	case *Pow:
		latexPow(b, v)
	case *Call:
		latexCall(b, v)
	default:
		panic("sym: unknown expression type")
	}
}

// latexName formats a symbol name. A trailing subscript in either the C_0 or
// the C₀ spelling becomes a LaTeX subscript.
func latexName(name string) string {
	if s, ok := latexSymbols[name]; ok {
		return s
	}
	if k := strings.IndexByte(name, '_'); k > 0 {
		return latexName(name[:k]) + "_{" + name[k+1:] + "}"
	}
	var base, sub strings.Builder
	for _, r := range name {
		if r >= '₀' && r <= '₉' {
			sub.WriteRune('0' + (r - '₀'))
			continue
		}
		base.WriteRune(r)
	}
	s := base.String()
	if utf8.RuneCountInString(s) > 1 && !strings.ContainsFunc(s, unicode.IsDigit) {
		s = `\mathrm{` + s + "}"
	}
	if sub.Len() > 0 {
		s += "_{" + sub.String() + "}"
	}
	return s
}

func latexMul(b *strings.Builder, m *Mul) {
	var num, den []Expr
	negative := false
	for _, f := range m.factors {
		switch v := f.(type) {
		case *Num:
			if v.r.Sign() < 0 {
				negative = true
			}
			if p := v.r.Num(); p.CmpAbs(one.r.Num()) != 0 {
				num = append(num, absNum(&Num{r: new(big.Rat).SetInt(p)}))
			}
			if q := v.r.Denom(); !q.IsInt64() || q.Int64() != 1 {
				den = append(den, &Num{r: new(big.Rat).SetInt(q)})
			}
		case *Float:
			if v.f.Sign() < 0 {
				negative = true
			}
			if a := absNum(v); !isOne(a) {
				num = append(num, a)
			}
		case *Pow:
			if isNegative(v.exp) {
				den = append(den, pow(v.base, neg(v.exp)))
				continue
			}
			num = append(num, v)
		default:
			num = append(num, v)
		}
	}
	if negative {
		b.WriteByte('-')
	}
	if len(den) == 0 {
		latexFactors(b, num)
		return
	}
	b.WriteString(`\frac{`)
	if len(num) == 0 {
		b.WriteByte('1')
	} else {
		latexFactors(b, num)
	}
	b.WriteString("}{")
	latexFactors(b, den)
	b.WriteByte('}')
}

func latexFactors(b *strings.Builder, fs []Expr) {
	for i, f := range fs {
		if i > 0 {
			if isNumber(f) {
				b.WriteString(` \cdot `)
			} else {
				b.WriteByte(' ')
			}
		}
		if _, ok := f.(*Add); ok {
			b.WriteString(`\left(`)
			latex(b, f)
			b.WriteString(`\right)`)
			continue
		}
		latex(b, f)
	}
}

func latexPow(b *strings.Builder, p *Pow) {
	if isNegative(p.exp) {
		b.WriteString(`\frac{1}{`)
		latex(b, pow(p.base, neg(p.exp)))
		b.WriteByte('}')
		return
	}
	if n, ok := p.exp.(*Num); ok && n.r.Num().IsInt64() && n.r.Num().Int64() == 1 {
		b.WriteString(`\sqrt`)
		if d := n.r.Denom(); d.Int64() != 2 {
			b.WriteString("[" + d.String() + "]")
		}
		b.WriteByte('{')
		latex(b, p.base)
		b.WriteByte('}')
		return
	}
	switch v := p.base.(type) {
	case *Sym:
		latex(b, v)
	case *Num:
		if v.r.IsInt() && v.r.Sign() > 0 {
			latex(b, v)
			break
		}
		latexParen(b, v)
	default:
		latexParen(b, v)
	}
	b.WriteString("^{")
	latex(b, p.exp)
	b.WriteByte('}')
}

func latexParen(b *strings.Builder, e Expr) {
	b.WriteString(`\left(`)
	latex(b, e)
	b.WriteString(`\right)`)
}

func latexCall(b *strings.Builder, c *Call) {
	switch c.fn {
	case "exp":
		b.WriteString("e^{")
		latex(b, c.args[0])
		b.WriteByte('}')
		return
	case "Abs":
		b.WriteString(`\left|`)
		latex(b, c.args[0])
		b.WriteString(`\right|`)
		return
	case "floor":
		b.WriteString(`\left\lfloor{`)
		latex(b, c.args[0])
		b.WriteString(`}\right\rfloor`)
		return
	case "ceiling":
		b.WriteString(`\left\lceil{`)
		latex(b, c.args[0])
		b.WriteString(`}\right\rceil`)
		return
	case "Mod":
		latexParen(b, c.args[0])
		b.WriteString(` \bmod `)
		latexParen(b, c.args[1])
		return
	}
	if s, ok := latexFuncs[c.fn]; ok {
		b.WriteString(s)
	} else {
		b.WriteString(`\operatorname{` + userFuncName(c.fn) + "}")
	}
	b.WriteString(`{\left(`)
	for i, a := range c.args {
		if i > 0 {
			b.WriteString(", ")
		}
		latex(b, a)
	}
	b.WriteString(` \right)}`)
}

// userFuncName spells inverse functions the way they are written by hand.
func userFuncName(fn string) string {
	if strings.HasPrefix(fn, "a") && len(fn) > 3 {
		return "arc" + fn[1:]
	}
	return fn
}
