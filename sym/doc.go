// Package sym implements the symbolic algebra behind symcalc.
//
// Expressions are parsed from conventional infix text, where "**" and "^"
// both mean exponentiation, and are kept in a canonical form: sums and
// products are flattened and sorted, numbers are folded exactly as
// rationals, and like terms are collected. Decimal literals parse to
// approximate values at a Context's precision, so "1/2" is exact but "0.5"
// is not.
//
// On top of that form, a Context differentiates, integrates by rule,
// expands logarithms, evaluates numerically with arbitrary precision, and
// prints LaTeX.
package sym
