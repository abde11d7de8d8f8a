package sym

import (
	"fmt"
	"math/big"
	"strconv"
)

// InputError is an error caused by malformed input text. Pos reports the
// 1-based rune column of the offending token.
type InputError interface {
	error
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)

func errpos(col int, msg string) string {
	return "col " + strconv.Itoa(col) + ": " + msg
}

// OperatorError reports an operator where an operand was expected, or an
// operator the parser does not know.
type OperatorError struct {
	Col      int
	Operator string
	// Unary is set when the operator appeared in operand position.
	Unary bool
}

func (err *OperatorError) Error() string {
	if err.Unary {
		return errpos(err.Col, fmt.Sprintf("%q cannot start an operand", err.Operator))
	}
	return errpos(err.Col, fmt.Sprintf("unknown operator %q", err.Operator))
}

func (err *OperatorError) Pos() int { return err.Col }

// BracketError reports an unbalanced bracket. Left is empty for a stray close
// bracket, and Right is empty for an open bracket that is never closed.
type BracketError struct {
	Col         int
	Left, Right string
}

func (err *BracketError) Error() string {
	switch {
	case err.Left == "":
		return errpos(err.Col, "unmatched "+err.Right)
	case err.Right == "":
		return errpos(err.Col, "unclosed "+err.Left)
	}
	return errpos(err.Col, err.Left+" closed by "+err.Right)
}

func (err *BracketError) Pos() int { return err.Col }

// SeparatorError reports an argument separator outside a call.
type SeparatorError struct {
	Col int
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, fmt.Sprintf("%q outside an argument list", err.Sep))
}

func (err *SeparatorError) Pos() int { return err.Col }

// CallError reports a call with the wrong number of arguments.
type CallError struct {
	Col  int
	Func string
	Len  int
}

func (err *CallError) Error() string {
	return errpos(err.Col, fmt.Sprintf("%s does not take %d arguments", err.Func, err.Len))
}

func (err *CallError) Pos() int { return err.Col }

// EmptyExpressionError reports a missing operand. End is the token found
// instead, or empty at the end of input.
type EmptyExpressionError struct {
	Col int
	End string
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return errpos(err.Col, fmt.Sprintf("expected an operand before %q", err.End))
	case err.Col <= 1:
		return errpos(err.Col, "empty expression")
	}
	return errpos(err.Col, "expression ends early")
}

func (err *EmptyExpressionError) Pos() int { return err.Col }

// DomainError is an error for an operation applied outside its domain, most
// often division by zero. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X Expr
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	if err.Func == "/" {
		return "division by zero"
	}
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}

// UnsupportedError is an error for an operation the backend does not know how
// to perform, such as an integral with no elementary rule.
type UnsupportedError struct {
	// Op is the operation, e.g. "integrate".
	Op string
	// X is the expression the operation was applied to.
	X Expr
	// Var is the variable of the operation, if any.
	Var string
}

func (err *UnsupportedError) Error() string {
	r := "cannot " + err.Op + " " + err.X.String()
	if err.Var != "" {
		r += " with respect to " + err.Var
	}
	return r
}

// catch recovers a panic with a DomainError or UnsupportedError into *err.
// Panics with any other value continue.
func catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	switch e := r.(type) {
	case *DomainError:
		*err = e
	case *UnsupportedError:
		*err = e
	case big.ErrNaN:
		*err = e
	default:
		panic(r)
	}
}

// divzero panics with the error for division by zero.
func divzero(x Expr) {
	panic(&DomainError{X: x, Func: "/"})
}
