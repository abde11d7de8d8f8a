package symcalc

import (
	"math/big"
	"math/rand"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/zephyrtronium/symcalc/sym"
)

// evaluator resolves function calls in one tokenized expression. Each Solve
// gets its own.
type evaluator struct {
	backend Backend
	rand    *rand.Rand
	log     *zap.SugaredLogger
	// consts is the number of integration constants minted so far.
	consts int
}

// impl evaluates a function on resolved parameters, producing backend text.
type impl struct {
	min, max int
	eval     func(ev *evaluator, f Function, params []string) (string, error)
}

var dispatch = [numFunctions]impl{
	FuncIntegrate: {2, 2, (*evaluator).integrate},
	FuncDiff:      {2, 2, (*evaluator).diff},
	FuncRandom:    {2, 2, (*evaluator).random},
	FuncLog:       {1, 2, (*evaluator).log10},
	FuncPow:       {2, 2, (*evaluator).pow},
	FuncRoot:      {2, 2, (*evaluator).root},
	FuncMod:       {2, 2, (*evaluator).wrap},

	FuncLn:    {1, 1, (*evaluator).wrap},
	FuncExp:   {1, 1, (*evaluator).wrap},
	FuncSqrt:  {1, 1, (*evaluator).wrap},
	FuncAbs:   {1, 1, (*evaluator).wrap},
	FuncFloor: {1, 1, (*evaluator).wrap},
	FuncCeil:  {1, 1, (*evaluator).wrap},
	FuncSign:  {1, 1, (*evaluator).wrap},

	FuncSin:     {1, 1, (*evaluator).wrap},
	FuncCos:     {1, 1, (*evaluator).wrap},
	FuncTan:     {1, 1, (*evaluator).wrap},
	FuncCot:     {1, 1, (*evaluator).wrap},
	FuncSec:     {1, 1, (*evaluator).wrap},
	FuncCsc:     {1, 1, (*evaluator).wrap},
	FuncArcsin:  {1, 1, (*evaluator).wrap},
	FuncArccos:  {1, 1, (*evaluator).wrap},
	FuncArctan:  {1, 1, (*evaluator).wrap},
	FuncArccot:  {1, 1, (*evaluator).wrap},
	FuncArcsec:  {1, 1, (*evaluator).wrap},
	FuncArccsc:  {1, 1, (*evaluator).wrap},
	FuncSinh:    {1, 1, (*evaluator).wrap},
	FuncCosh:    {1, 1, (*evaluator).wrap},
	FuncTanh:    {1, 1, (*evaluator).wrap},
	FuncCoth:    {1, 1, (*evaluator).wrap},
	FuncSech:    {1, 1, (*evaluator).wrap},
	FuncCsch:    {1, 1, (*evaluator).wrap},
	FuncArcsinh: {1, 1, (*evaluator).wrap},
	FuncArccosh: {1, 1, (*evaluator).wrap},
	FuncArctanh: {1, 1, (*evaluator).wrap},
	FuncArccoth: {1, 1, (*evaluator).wrap},
	FuncArcsech: {1, 1, (*evaluator).wrap},
	FuncArccsch: {1, 1, (*evaluator).wrap},
}

// Arity returns the minimum and maximum number of parameters of f.
func (f Function) Arity() (min, max int) {
	d := &dispatch[f]
	return d.min, d.max
}

// backendNames holds the backend spellings of functions whose names differ.
var backendNames = map[Function]string{
	FuncLn:      "log",
	FuncAbs:     "Abs",
	FuncMod:     "Mod",
	FuncCeil:    "ceiling",
	FuncArcsin:  "asin",
	FuncArccos:  "acos",
	FuncArctan:  "atan",
	FuncArccot:  "acot",
	FuncArcsec:  "asec",
	FuncArccsc:  "acsc",
	FuncArcsinh: "asinh",
	FuncArccosh: "acosh",
	FuncArctanh: "atanh",
	FuncArccoth: "acoth",
	FuncArcsech: "asech",
	FuncArccsch: "acsch",
}

func backendName(f Function) string {
	if s, ok := backendNames[f]; ok {
		return s
	}
	return f.String()
}

// resolve evaluates function calls in s, leftmost first, until none remain.
func (ev *evaluator) resolve(s string) (string, error) {
	for {
		c, ok, err := ExtractFunctionCall(s)
		if err != nil {
			return "", err
		}
		if !ok {
			return s, nil
		}
		r, err := ev.call(c)
		if err != nil {
			return "", err
		}
		s = Splice(s, c.Start, c.End, r)
	}
}

// call evaluates a single extracted call. Parameters are resolved first.
func (ev *evaluator) call(c Call) (string, error) {
	params := c.Params
	if len(params) == 1 && params[0] == "" {
		params = nil
	}
	d := &dispatch[c.Func]
	if len(params) < d.min || len(params) > d.max {
		return "", &CallError{Func: c.Func, Len: len(params)}
	}
	resolved := make([]string, len(params))
	for i, p := range params {
		r, err := ev.resolve(p)
		if err != nil {
			return "", err
		}
		resolved[i] = r
	}
	r, err := d.eval(ev, c.Func, resolved)
	if err != nil {
		return "", err
	}
	ev.log.Debugw("resolved call", "func", c.Func.String(), "params", resolved, "result", r)
	return r, nil
}

func (ev *evaluator) wrap(f Function, params []string) (string, error) {
	return backendName(f) + "(" + strings.Join(params, ", ") + ")", nil
}

func (ev *evaluator) log10(f Function, params []string) (string, error) {
	if len(params) == 1 {
		params = append(params, "10")
	}
	return "log(" + params[0] + ", " + params[1] + ")", nil
}

func (ev *evaluator) pow(f Function, params []string) (string, error) {
	return "(" + params[0] + ")**(" + params[1] + ")", nil
}

func (ev *evaluator) root(f Function, params []string) (string, error) {
	return "(" + params[0] + ")**(1/(" + params[1] + "))", nil
}

// variable simplifies s and checks that it is a single accepted variable.
func (ev *evaluator) variable(f Function, s string) (sym.Expr, error) {
	x, err := ev.backend.Simplify(s)
	if err != nil {
		return nil, &VariableError{Func: f, Got: s}
	}
	v, ok := x.(*sym.Sym)
	if !ok {
		return nil, &VariableError{Func: f, Got: x.String()}
	}
	name := v.Name()
	if len(name) != 1 || !IsVariable(rune(name[0])) {
		return nil, &VariableError{Func: f, Got: name}
	}
	return x, nil
}

func (ev *evaluator) diff(f Function, params []string) (string, error) {
	x, err := ev.variable(f, params[1])
	if err != nil {
		return "", err
	}
	e, err := ev.backend.Simplify(params[0])
	if err != nil {
		return "", backendErr("simplify", err)
	}
	r, err := ev.backend.Diff(e, x)
	if err != nil {
		return "", backendErr("differentiate", err)
	}
	return r.String(), nil
}

func (ev *evaluator) integrate(f Function, params []string) (string, error) {
	x, err := ev.variable(f, params[1])
	if err != nil {
		return "", err
	}
	e, err := ev.backend.Simplify(params[0])
	if err != nil {
		return "", backendErr("simplify", err)
	}
	r, err := ev.backend.Integrate(e, x)
	if err != nil {
		return "", backendErr("integrate", err)
	}
	return r.String() + " + " + ev.constant(), nil
}

// constant mints the next constant of integration, C₀, C₁, and so on.
func (ev *evaluator) constant() string {
	c := IntegrationConstant(ev.consts)
	ev.consts++
	return c
}

// IntegrationConstant returns the name of the nth constant of integration,
// written with subscript digits.
func IntegrationConstant(n int) string {
	const subscripts = "₀₁₂₃₄₅₆₇₈₉"
	var b strings.Builder
	b.WriteByte('C')
	for _, d := range strconv.Itoa(n) {
		i := int(d - '0')
		b.WriteString(subscripts[i*len("₀") : (i+1)*len("₀")])
	}
	return b.String()
}

func (ev *evaluator) random(f Function, params []string) (string, error) {
	var bounds [2]*big.Int
	for i, p := range params {
		e, err := ev.backend.Simplify(p)
		if err != nil {
			return "", backendErr("simplify", err)
		}
		n, ok := integer(e)
		if !ok {
			return "", &RandomBoundError{Arg: i + 1, Got: e.String()}
		}
		bounds[i] = n
	}
	lo, hi := bounds[0], bounds[1]
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, big.NewInt(1))
	r := new(big.Int).Rand(ev.rand, span)
	return r.Add(r, lo).String(), nil
}

// integer returns the value of e if it is an integer.
func integer(e sym.Expr) (*big.Int, bool) {
	switch v := e.(type) {
	case *sym.Num:
		r := v.Rat()
		if !r.IsInt() {
			return nil, false
		}
		return new(big.Int).Set(r.Num()), true
	case *sym.Float:
		f := v.Float()
		if !f.IsInt() {
			return nil, false
		}
		n, _ := f.Int(nil)
		return n, true
	}
	return nil, false
}
