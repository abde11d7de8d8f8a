// Package symcalc implements a calculator for free-form math expressions
// with exact and approximate answers.
//
// Expressions are written the way you'd write them in your notes. "2x" and
// "2(x+1)" are multiplications, "x^2" is a power, and functions like sin,
// integrate, and random take bracketed argument lists. Variables are single
// letters other than e and i; the constants are i, e, π, φ, and γ. Terms let
// you define variables in terms of other variables.
//
// Solving runs a string rewriting pipeline. Function names become
// placeholders, term definitions and implicit multiplications are expanded,
// decimals become exact fractions, and function calls are evaluated from the
// innermost out by the symbolic backend in package sym. The flattened result
// is simplified for the exact answer and numerically evaluated for the
// approximate one.
package symcalc
