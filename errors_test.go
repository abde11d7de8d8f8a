package symcalc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zephyrtronium/symcalc"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  symcalc.Error
		kind symcalc.Kind
		msg  string
	}{
		{&symcalc.UnknownSymbolError{Symbol: '#'}, symcalc.UnknownSymbol, `unknown symbol '#'`},
		{&symcalc.CircularDefinitionError{Term: "a"}, symcalc.CircularDefinition, `a is circularly defined`},
		{&symcalc.VariableError{Func: symcalc.FuncDiff, Got: "2"}, symcalc.InvalidDifferentiationVariable, `diff: second parameter must be a single variable, not "2"`},
		{&symcalc.VariableError{Func: symcalc.FuncIntegrate, Got: "x + y"}, symcalc.InvalidIntegrationVariable, `integrate: second parameter must be a single variable, not "x + y"`},
		{&symcalc.RandomBoundError{Arg: 1, Got: "1/2"}, symcalc.NonIntegerRandomBound, `random: lower bound must be an integer, not "1/2"`},
		{&symcalc.CallError{Func: symcalc.FuncMod, Len: 1}, symcalc.MalformedFunctionCall, `cannot call mod with 1 parameters`},
		{&symcalc.CallError{Func: symcalc.FuncMod, Len: -1}, symcalc.MalformedFunctionCall, `mod must be followed by a parenthesized argument list`},
		{&symcalc.MalformedInputError{Text: "."}, symcalc.MalformedInput, `malformed input "."`},
		{&symcalc.BackendError{Op: "simplify", Err: errors.New("oops")}, symcalc.BackendFailure, `simplify: oops`},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, c.err.Kind())
		assert.Equal(t, c.msg, c.err.Error())
		assert.NotEqual(t, "", c.kind.String())
	}
}

func TestKindOf(t *testing.T) {
	inner := errors.New("inner")
	err := error(&symcalc.BackendError{Op: "integrate", Err: inner})
	assert.Equal(t, symcalc.BackendFailure, symcalc.KindOf(err))
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, symcalc.Kind(0), symcalc.KindOf(inner))
	assert.Equal(t, symcalc.Kind(0), symcalc.KindOf(nil))
	assert.Equal(t, "Kind(99)", symcalc.Kind(99).String())
}
