package symcalc

import (
	"sort"
	"strings"
)

// Variables contains the runes accepted as single-letter variable names. The
// letters e and i, in either case, are reserved for constants.
const Variables = "abcdfghjklmnopqrstuvwxyzABCDFGHJKLMNOPQRSTUVWXYZ"

// Digits and the decimal point make up number literals.
const Digits = "0123456789"

// Operators contains the runes accepted between operands, including brackets
// and the function argument separator.
const Operators = "+-*/^(),"

// Constant is a named mathematical constant.
type Constant struct {
	// Symbol is the rune the user types.
	Symbol rune
	// Name is the backend's name for the constant.
	Name string
	// Literal is the constant's value to 100 decimal places. It is empty
	// for constants that have no real decimal value.
	Literal string
	// Description names the constant for listings.
	Description string
}

// Constants lists the accepted constants in substitution order. No
// constant's backend name contains the symbol of a constant substituted
// after it.
var Constants = []Constant{
	{
		Symbol:      'i',
		Name:        "I",
		Description: "imaginary unit",
	},
	{
		Symbol:      'e',
		Name:        "E",
		Literal:     "2.7182818284590452353602874713526624977572470936999595749669676277240766303535475945713821785251664274",
		Description: "Euler's number",
	},
	{
		Symbol:      'π',
		Name:        "pi",
		Literal:     "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679",
		Description: "ratio of a circle's circumference to its diameter",
	},
	{
		Symbol:      'φ',
		Name:        "GoldenRatio",
		Literal:     "1.6180339887498948482045868343656381177203091798057628621354486227052604628189024497072072041893911374",
		Description: "golden ratio",
	},
	{
		Symbol:      'γ',
		Name:        "EulerGamma",
		Literal:     "0.5772156649015328606065120900824024310421593359399235988057672348848677267776646709369470632917467495",
		Description: "Euler–Mascheroni constant",
	},
}

// LookupConstant returns the constant with the given symbol.
func LookupConstant(r rune) (Constant, bool) {
	for _, c := range Constants {
		if c.Symbol == r {
			return c, true
		}
	}
	return Constant{}, false
}

// IsVariable reports whether r is an accepted variable name.
func IsVariable(r rune) bool {
	return strings.ContainsRune(Variables, r)
}

// IsConstant reports whether r is an accepted constant symbol.
func IsConstant(r rune) bool {
	_, ok := LookupConstant(r)
	return ok
}

// accepted reports whether r may appear in raw input.
func accepted(r rune) bool {
	switch {
	case IsVariable(r), IsConstant(r):
		return true
	case strings.ContainsRune(Digits, r), r == '.':
		return true
	case strings.ContainsRune(Operators, r):
		return true
	}
	return false
}

// Function identifies a function by its index in Functions.
type Function int

// Functions lists the accepted function names, longest first so that
// tokenizing never matches a name inside a longer one.
var Functions = []string{
	"integrate",
	"arcsinh", "arccosh", "arctanh", "arccoth", "arcsech", "arccsch",
	"arcsin", "arccos", "arctan", "arccot", "arcsec", "arccsc", "random",
	"floor",
	"diff", "sqrt", "ceil", "sign", "root",
	"sinh", "cosh", "tanh", "coth", "sech", "csch",
	"log", "exp", "abs", "mod", "pow",
	"sin", "cos", "tan", "cot", "sec", "csc",
	"ln",
}

// Function values. The order matches Functions.
const (
	FuncIntegrate Function = iota
	FuncArcsinh
	FuncArccosh
	FuncArctanh
	FuncArccoth
	FuncArcsech
	FuncArccsch
	FuncArcsin
	FuncArccos
	FuncArctan
	FuncArccot
	FuncArcsec
	FuncArccsc
	FuncRandom
	FuncFloor
	FuncDiff
	FuncSqrt
	FuncCeil
	FuncSign
	FuncRoot
	FuncSinh
	FuncCosh
	FuncTanh
	FuncCoth
	FuncSech
	FuncCsch
	FuncLog
	FuncExp
	FuncAbs
	FuncMod
	FuncPow
	FuncSin
	FuncCos
	FuncTan
	FuncCot
	FuncSec
	FuncCsc
	FuncLn

	numFunctions
)

func (f Function) String() string {
	if f < 0 || f >= numFunctions {
		return "Function(?)"
	}
	return Functions[f]
}

// LookupFunction returns the function with the given name.
func LookupFunction(name string) (Function, bool) {
	for i, s := range Functions {
		if s == name {
			return Function(i), true
		}
	}
	return -1, false
}

// renames maps backend spellings to the spellings shown to users. Constant
// names are added from Constants.
var renames = map[string]string{
	"log":     "ln",
	"Abs":     "abs",
	"Mod":     "mod",
	"ceiling": "ceil",
	"asin":    "arcsin",
	"acos":    "arccos",
	"atan":    "arctan",
	"acot":    "arccot",
	"asec":    "arcsec",
	"acsc":    "arccsc",
	"asinh":   "arcsinh",
	"acosh":   "arccosh",
	"atanh":   "arctanh",
	"acoth":   "arccoth",
	"asech":   "arcsech",
	"acsch":   "arccsch",
}

// userNames rewrites backend names to user names, longest name first.
var userNames = func() *strings.Replacer {
	m := make(map[string]string, len(renames)+len(Constants))
	for k, v := range renames {
		m[k] = v
	}
	for _, c := range Constants {
		m[c.Name] = string(c.Symbol)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return strings.NewReplacer(pairs...)
}()
