package sym

import (
	"errors"
	"testing"
)

func TestDiff(t *testing.T) {
	cases := []struct {
		src  string
		x    string
		want string
	}{
		{"x**3", "x", "3*x**2"},
		{"sin(x)", "x", "cos(x)"},
		{"y", "x", "0"},
		{"5", "x", "0"},
		{"x", "x", "1"},
		{"log(x)", "x", "1/x"},
		{"exp(x)", "x", "exp(x)"},
	}
	ctx := NewContext()
	for _, c := range cases {
		c := c
		t.Run(c.src, func(t *testing.T) {
			f, err := ctx.Simplify(c.src)
			if err != nil {
				t.Fatal(err)
			}
			d, err := ctx.Diff(f, Symbol(c.x))
			if err != nil {
				t.Fatal(err)
			}
			if got := d.String(); got != c.want {
				t.Errorf("d/d%s %s: want %q, got %q", c.x, c.src, c.want, got)
			}
		})
	}
}

func TestIntegrate(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x", "x**2/2"},
		{"1", "x"},
		{"cos(x)", "sin(x)"},
		{"exp(x)", "exp(x)"},
		{"1/x", "log(x)"},
	}
	ctx := NewContext()
	for _, c := range cases {
		c := c
		t.Run(c.src, func(t *testing.T) {
			f, err := ctx.Simplify(c.src)
			if err != nil {
				t.Fatal(err)
			}
			r, err := ctx.Integrate(f, Symbol("x"))
			if err != nil {
				t.Fatal(err)
			}
			if got := r.String(); got != c.want {
				t.Errorf("integral of %s: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func TestIntegrateByParts(t *testing.T) {
	ctx := NewContext()
	f, err := ctx.Simplify("x*exp(x)")
	if err != nil {
		t.Fatal(err)
	}
	r, err := ctx.Integrate(f, Symbol("x"))
	if err != nil {
		t.Fatal(err)
	}
	d, err := ctx.Diff(r, Symbol("x"))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(expand(d), expand(f)) {
		t.Errorf("d/dx %s = %s, not %s", r, d, f)
	}
}

func TestIntegrateUnsupported(t *testing.T) {
	ctx := NewContext()
	f, err := ctx.Simplify("exp(x**2)")
	if err != nil {
		t.Fatal(err)
	}
	_, err = ctx.Integrate(f, Symbol("x"))
	var u *UnsupportedError
	if !errors.As(err, &u) {
		t.Fatalf("wrong error %#v", err)
	}
	if u.Var != "x" {
		t.Errorf("wrong variable %q", u.Var)
	}
}

func TestCalculusNeedsSymbol(t *testing.T) {
	ctx := NewContext()
	f := Symbol("x")
	if _, err := ctx.Diff(f, Integer(2)); err == nil {
		t.Error("no error differentiating by a number")
	}
	if _, err := ctx.Integrate(f, Integer(2)); err == nil {
		t.Error("no error integrating by a number")
	}
}
