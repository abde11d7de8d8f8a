package symcalc

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// Kind classifies the errors Solve returns.
type Kind int

const (
	// UnknownSymbol is a character outside every accepted alphabet.
	UnknownSymbol Kind = iota + 1
	// CircularDefinition is a term whose definition refers to itself.
	CircularDefinition
	// InvalidDifferentiationVariable is a diff call whose second parameter
	// is not a single variable.
	InvalidDifferentiationVariable
	// InvalidIntegrationVariable is an integrate call whose second parameter
	// is not a single variable.
	InvalidIntegrationVariable
	// NonIntegerRandomBound is a random call with a non-integer bound.
	NonIntegerRandomBound
	// MalformedFunctionCall is a function name without a balanced argument
	// list, or with the wrong number of arguments.
	MalformedFunctionCall
	// MalformedInput is text that cannot be a number or expression, such as
	// a lone decimal point.
	MalformedInput
	// BackendFailure is a failure inside the symbolic backend.
	BackendFailure
)

var kindNames = [...]string{
	UnknownSymbol:                  "unknown symbol",
	CircularDefinition:             "circular definition",
	InvalidDifferentiationVariable: "invalid differentiation variable",
	InvalidIntegrationVariable:     "invalid integration variable",
	NonIntegerRandomBound:          "non-integer random bound",
	MalformedFunctionCall:          "malformed function call",
	MalformedInput:                 "malformed input",
	BackendFailure:                 "backend error",
}

func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Error is an error from solving an expression. Every error Solve returns
// is or wraps an Error.
type Error interface {
	error
	// Kind returns the class of the error.
	Kind() Kind
}

// KindOf returns the kind of the Error in err's chain, or 0 if there is none.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return 0
}

// UnknownSymbolError is a character in the input that is not a variable,
// constant, digit, or operator.
type UnknownSymbolError struct {
	// Symbol is the rejected character.
	Symbol rune
	// Term is the term whose definition contained the character, or the
	// empty string for the expression itself.
	Term string
}

func (err *UnknownSymbolError) Error() string {
	s := "unknown symbol " + strconv.QuoteRune(err.Symbol)
	if err.Term != "" {
		s += " in definition of " + err.Term
	}
	return s
}

func (err *UnknownSymbolError) Kind() Kind { return UnknownSymbol }

// CircularDefinitionError is a term whose definition depends on itself.
type CircularDefinitionError struct {
	// Term is the name of the circular term.
	Term string
}

func (err *CircularDefinitionError) Error() string {
	return err.Term + " is circularly defined"
}

func (err *CircularDefinitionError) Kind() Kind { return CircularDefinition }

// VariableError is a diff or integrate call whose variable parameter is not
// a single accepted variable.
type VariableError struct {
	// Func is the function, FuncDiff or FuncIntegrate.
	Func Function
	// Got is the simplified parameter.
	Got string
}

func (err *VariableError) Error() string {
	return err.Func.String() + ": second parameter must be a single variable, not " + strconv.Quote(err.Got)
}

func (err *VariableError) Kind() Kind {
	if err.Func == FuncIntegrate {
		return InvalidIntegrationVariable
	}
	return InvalidDifferentiationVariable
}

// RandomBoundError is a random call with a bound that does not simplify to
// an integer.
type RandomBoundError struct {
	// Arg is the 1-based index of the bound.
	Arg int
	// Got is the simplified bound.
	Got string
}

func (err *RandomBoundError) Error() string {
	which := "lower"
	if err.Arg == 2 {
		which = "upper"
	}
	return "random: " + which + " bound must be an integer, not " + strconv.Quote(err.Got)
}

func (err *RandomBoundError) Kind() Kind { return NonIntegerRandomBound }

// CallError is a malformed function call.
type CallError struct {
	// Func is the called function.
	Func Function
	// Len is the number of parameters found, or -1 if the argument list is
	// missing or unbalanced.
	Len int
}

func (err *CallError) Error() string {
	if err.Len < 0 {
		return err.Func.String() + " must be followed by a parenthesized argument list"
	}
	return "cannot call " + err.Func.String() + " with " + strconv.Itoa(err.Len) + " parameters"
}

func (err *CallError) Kind() Kind { return MalformedFunctionCall }

// MalformedInputError is input text that cannot be read, such as a decimal
// point with no digits.
type MalformedInputError struct {
	// Text is the offending text.
	Text string
}

func (err *MalformedInputError) Error() string {
	return "malformed input " + strconv.Quote(err.Text)
}

func (err *MalformedInputError) Kind() Kind { return MalformedInput }

// BackendError is a failure inside the symbolic backend.
type BackendError struct {
	// Op is the backend operation that failed.
	Op string
	// Err is the backend's error.
	Err error
}

func (err *BackendError) Error() string {
	return err.Op + ": " + err.Err.Error()
}

func (err *BackendError) Unwrap() error { return err.Err }

func (err *BackendError) Kind() Kind { return BackendFailure }

var (
	_ Error = (*UnknownSymbolError)(nil)
	_ Error = (*CircularDefinitionError)(nil)
	_ Error = (*VariableError)(nil)
	_ Error = (*RandomBoundError)(nil)
	_ Error = (*CallError)(nil)
	_ Error = (*MalformedInputError)(nil)
	_ Error = (*BackendError)(nil)
)

// backendErr wraps a backend failure.
func backendErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}

// withHint attaches advice for the user to err where some applies.
func withHint(err error) error {
	switch KindOf(err) {
	case UnknownSymbol:
		return errors.WithHint(err, "variables are single letters other than e and i; constants are i, e, π, φ, γ")
	case CircularDefinition:
		return errors.WithHint(err, "a term may not depend on itself through other terms")
	case InvalidDifferentiationVariable, InvalidIntegrationVariable:
		return errors.WithHint(err, "write e.g. diff(x^2, x); the variable must not be defined as a term")
	case MalformedFunctionCall:
		return errors.WithHint(err, "check that every function is followed by balanced parentheses")
	}
	return err
}
