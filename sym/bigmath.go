package sym

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Elementary functions on big.Float. Each computes with workBits of
// precision beyond its result and rounds once at the end.

const workBits = 32

// maxReduceBits bounds the binary exponent of a trigonometric argument.
// Larger arguments would need π to more bits than is reasonable.
const maxReduceBits = 1 << 14

func nan() {
	panic(big.ErrNaN{})
}

// binExp returns the binary exponent of x, so that |x| < 2^binExp(x).
func binExp(x *big.Float) int {
	if x.Sign() == 0 || x.IsInf() {
		return 0
	}
	return x.MantExp(nil)
}

func fnew(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

func fint(prec uint, n int64) *big.Float {
	return fnew(prec).SetInt64(n)
}

func fpi(prec uint) *big.Float {
	return bigfloat.Pi(fnew(prec))
}

// fquo sets out to a/b, rejecting division by zero.
func fquo(out, a, b *big.Float) *big.Float {
	if b.Sign() == 0 {
		nan()
	}
	return out.Quo(a, b)
}

// sinCos computes sin x and cos x to prec bits.
func sinCos(x *big.Float, prec uint) (sin, cos *big.Float) {
	e := binExp(x)
	if x.IsInf() || e > maxReduceBits {
		nan()
	}
	wp := prec + workBits + uint(max(e, 0))
	t := fnew(wp).Set(x)
	// Reduce to r = x - nπ/2 with |r| < π/2.
	hp := fpi(wp)
	hp.SetMantExp(hp, -1)
	n, _ := fnew(wp).Quo(t, hp).Int(nil)
	r := fnew(wp).SetInt(n)
	r.Mul(r, hp)
	r.Sub(t, r)
	r.SetPrec(prec + workBits)
	sin, cos = taylorSinCos(r)
	switch new(big.Int).Mod(n, big.NewInt(4)).Int64() {
	case 1:
		sin, cos = cos, sin.Neg(sin)
	case 2:
		sin, cos = sin.Neg(sin), cos.Neg(cos)
	case 3:
		sin, cos = cos.Neg(cos), sin
	}
	return sin, cos
}

// taylorSinCos sums the Maclaurin series of sin and cos at r, |r| < 2.
func taylorSinCos(r *big.Float) (sin, cos *big.Float) {
	prec := r.Prec()
	r2 := fnew(prec).Mul(r, r)
	sin, cos = fnew(prec).Set(r), fint(prec, 1)
	ts, tc := fnew(prec).Set(r), fint(prec, 1)
	d := fnew(prec)
	for k := int64(1); tc.Sign() != 0 && binExp(tc) > -int(prec); k++ {
		tc.Mul(tc, r2)
		tc.Quo(tc, d.SetInt64((2*k-1)*(2*k)))
		tc.Neg(tc)
		ts.Mul(ts, r2)
		ts.Quo(ts, d.SetInt64(2*k*(2*k+1)))
		ts.Neg(ts)
		cos.Add(cos, tc)
		sin.Add(sin, ts)
	}
	return sin, cos
}

func bigSin(out, in *big.Float) *big.Float {
	s, _ := sinCos(in, out.Prec())
	return out.Set(s)
}

func bigCos(out, in *big.Float) *big.Float {
	_, c := sinCos(in, out.Prec())
	return out.Set(c)
}

func bigTan(out, in *big.Float) *big.Float {
	s, c := sinCos(in, out.Prec())
	return fquo(out, s, c)
}

func bigCot(out, in *big.Float) *big.Float {
	s, c := sinCos(in, out.Prec())
	return fquo(out, c, s)
}

func bigSec(out, in *big.Float) *big.Float {
	_, c := sinCos(in, out.Prec())
	return fquo(out, fint(out.Prec(), 1), c)
}

func bigCsc(out, in *big.Float) *big.Float {
	s, _ := sinCos(in, out.Prec())
	return fquo(out, fint(out.Prec(), 1), s)
}

// atan computes arctan x to prec bits.
func atan(x *big.Float, prec uint) *big.Float {
	wp := prec + workBits
	t := fnew(wp).Abs(x)
	inv := t.Cmp(big.NewFloat(1)) > 0
	if inv {
		t.Quo(fint(wp, 1), t)
	}
	// arctan t = 2 arctan(t / (1 + sqrt(1 + t²))) until t is small.
	h := 0
	d := fnew(wp)
	for t.Sign() != 0 && binExp(t) > -8 {
		d.Mul(t, t)
		d.Add(d, big.NewFloat(1))
		d.Sqrt(d)
		d.Add(d, big.NewFloat(1))
		t.Quo(t, d)
		h++
	}
	sum := fnew(wp).Set(t)
	t2 := fnew(wp).Mul(t, t)
	for k := int64(3); t.Sign() != 0; k += 2 {
		t.Mul(t, t2)
		t.Neg(t)
		d.Quo(t, d.SetInt64(k))
		if d.Sign() == 0 || binExp(d) < binExp(sum)-int(wp) {
			break
		}
		sum.Add(sum, d)
	}
	sum.SetMantExp(sum, h)
	if inv {
		hp := fpi(wp)
		hp.SetMantExp(hp, -1)
		sum.Sub(hp, sum)
	}
	if x.Sign() < 0 {
		sum.Neg(sum)
	}
	return sum
}

func bigAtan(out, in *big.Float) *big.Float {
	return out.Set(atan(in, out.Prec()))
}

func bigAcot(out, in *big.Float) *big.Float {
	if in.Sign() == 0 {
		hp := fpi(out.Prec() + workBits)
		return out.SetMantExp(hp, -1)
	}
	return out.Set(atan(fquo(fnew(out.Prec()+workBits), fint(1, 1), in), out.Prec()))
}

// bigAsin uses arcsin x = arctan(x / sqrt((1-x)(1+x))).
func bigAsin(out, in *big.Float) *big.Float {
	wp := out.Prec() + workBits
	unit := fint(wp, 1)
	switch fnew(wp).Abs(in).Cmp(unit) {
	case 1:
		nan()
	case 0:
		hp := fpi(wp)
		hp.SetMantExp(hp, -1)
		if in.Sign() < 0 {
			hp.Neg(hp)
		}
		return out.Set(hp)
	}
	a := fnew(wp).Sub(unit, in)
	b := fnew(wp).Add(unit, in)
	a.Mul(a, b)
	a.Sqrt(a)
	return out.Set(atan(a.Quo(in, a), wp))
}

// bigAcos uses arccos x = 2 arctan(sqrt((1-x)/(1+x))).
func bigAcos(out, in *big.Float) *big.Float {
	wp := out.Prec() + workBits
	unit := fint(wp, 1)
	if fnew(wp).Abs(in).Cmp(unit) > 0 {
		nan()
	}
	a := fnew(wp).Sub(unit, in)
	b := fnew(wp).Add(unit, in)
	if b.Sign() == 0 {
		return out.Set(fpi(wp))
	}
	a.Quo(a, b)
	a.Sqrt(a)
	r := atan(a, wp)
	return out.SetMantExp(r, 1)
}

// ofRecip evaluates m at 1/x. Zero is outside the domain.
func ofRecip(m monadic) monadic {
	return func(out, in *big.Float) *big.Float {
		r := fquo(fnew(out.Prec()+workBits), fint(1, 1), in)
		return m(out, r)
	}
}

// sinhCosh computes sinh x and cosh x to prec bits.
func sinhCosh(x *big.Float, prec uint) (sinh, cosh *big.Float) {
	e := binExp(x)
	if e < -int(prec) {
		// Tiny arguments: sinh x = x and cosh x = 1 to prec bits.
		return fnew(prec).Set(x), fint(prec, 1)
	}
	wp := prec + workBits
	if e < 0 {
		// sinh cancels about -e bits.
		wp += uint(-e)
	}
	t := fnew(wp).Abs(x)
	ex := bigfloat.Exp(fnew(wp), t)
	inv := fquo(fnew(wp), fint(wp, 1), ex)
	sinh = fnew(wp).Sub(ex, inv)
	cosh = fnew(wp).Add(ex, inv)
	sinh.SetMantExp(sinh, -1)
	cosh.SetMantExp(cosh, -1)
	if x.Sign() < 0 {
		sinh.Neg(sinh)
	}
	return sinh, cosh
}

// saturates reports whether tanh x is ±1 to prec bits.
func saturates(x *big.Float, prec uint) bool {
	return new(big.Float).Abs(x).Cmp(big.NewFloat(float64(prec))) > 0
}

func bigSinh(out, in *big.Float) *big.Float {
	s, _ := sinhCosh(in, out.Prec())
	return out.Set(s)
}

func bigCosh(out, in *big.Float) *big.Float {
	_, c := sinhCosh(in, out.Prec())
	return out.Set(c)
}

func bigTanh(out, in *big.Float) *big.Float {
	if saturates(in, out.Prec()) {
		return out.SetInt64(int64(in.Sign()))
	}
	s, c := sinhCosh(in, out.Prec())
	return fquo(out, s, c)
}

func bigCoth(out, in *big.Float) *big.Float {
	if saturates(in, out.Prec()) {
		return out.SetInt64(int64(in.Sign()))
	}
	s, c := sinhCosh(in, out.Prec())
	return fquo(out, c, s)
}

func bigSech(out, in *big.Float) *big.Float {
	_, c := sinhCosh(in, out.Prec())
	return fquo(out, fint(out.Prec(), 1), c)
}

func bigCsch(out, in *big.Float) *big.Float {
	s, _ := sinhCosh(in, out.Prec())
	return fquo(out, fint(out.Prec(), 1), s)
}

// bigAsinh uses arcsinh x = log(|x| + sqrt(x² + 1)) with the sign of x.
func bigAsinh(out, in *big.Float) *big.Float {
	e := binExp(in)
	if e < -int(out.Prec()) {
		return out.Set(in)
	}
	wp := out.Prec() + workBits
	if e < 0 {
		wp += uint(-e)
	}
	a := fnew(wp).Abs(in)
	r := fnew(wp).Mul(a, a)
	r.Add(r, big.NewFloat(1))
	r.Sqrt(r)
	r.Add(r, a)
	bigfloat.Log(r, r)
	if in.Sign() < 0 {
		r.Neg(r)
	}
	return out.Set(r)
}

// bigAcosh uses arccosh x = log(x + sqrt((x-1)(x+1))) for x >= 1.
func bigAcosh(out, in *big.Float) *big.Float {
	wp := out.Prec() + workBits
	unit := fint(wp, 1)
	if in.Cmp(unit) < 0 {
		nan()
	}
	a := fnew(wp).Sub(in, unit)
	b := fnew(wp).Add(in, unit)
	a.Mul(a, b)
	a.Sqrt(a)
	a.Add(a, in)
	return out.Set(bigfloat.Log(a, a))
}

// bigAtanh uses arctanh x = log((1+x)/(1-x))/2 for |x| < 1.
func bigAtanh(out, in *big.Float) *big.Float {
	e := binExp(in)
	if e < -int(out.Prec()) {
		return out.Set(in)
	}
	wp := out.Prec() + workBits
	if e < 0 {
		wp += uint(-e)
	}
	unit := fint(wp, 1)
	if fnew(wp).Abs(in).Cmp(unit) >= 0 {
		nan()
	}
	a := fnew(wp).Add(unit, in)
	b := fnew(wp).Sub(unit, in)
	a.Quo(a, b)
	bigfloat.Log(a, a)
	return out.SetMantExp(a, -1)
}
