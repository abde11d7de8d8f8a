package symcalc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/symcalc"
)

func TestResolveTerms(t *testing.T) {
	cases := []struct {
		name  string
		terms map[string]string
		want  map[string]string
	}{
		{
			name:  "empty",
			terms: nil,
			want:  map[string]string{},
		},
		{
			name:  "blank",
			terms: map[string]string{"x": ""},
			want:  map[string]string{"x": "x"},
		},
		{
			name:  "self",
			terms: map[string]string{"a": "a"},
			want:  map[string]string{"a": "a"},
		},
		{
			name:  "parenthesized self",
			terms: map[string]string{"a": "(a)"},
			want:  map[string]string{"a": "a"},
		},
		{
			name:  "chain",
			terms: map[string]string{"a": "b", "b": "5"},
			want:  map[string]string{"a": "5", "b": "5"},
		},
		{
			name:  "long chain",
			terms: map[string]string{"a": "b", "b": "c", "c": "d", "d": "7"},
			want:  map[string]string{"a": "7", "b": "7", "c": "7", "d": "7"},
		},
		{
			name:  "parenthesized",
			terms: map[string]string{"a": "2b", "b": "x+1"},
			want:  map[string]string{"a": "2(x+1)", "b": "x+1"},
		},
		{
			name:  "self-standing reference",
			terms: map[string]string{"a": "b+1", "b": ""},
			want:  map[string]string{"a": "b+1", "b": "b"},
		},
		{
			name:  "whitespace",
			terms: map[string]string{"a": " 2 b ", "b": " 3 "},
			want:  map[string]string{"a": "2(3)", "b": "3"},
		},
		{
			name:  "constant key ignored",
			terms: map[string]string{"π": "3", "a": "π"},
			want:  map[string]string{"a": "π"},
		},
		{
			name:  "functions tokenized",
			terms: map[string]string{"f": "sin(x)"},
			want:  map[string]string{"f": ph(symcalc.FuncSin) + "(x)"},
		},
		{
			name:  "case sensitive",
			terms: map[string]string{"a": "A", "A": "2"},
			want:  map[string]string{"a": "2", "A": "2"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := symcalc.ResolveTerms(c.terms)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestResolveTermsForward(t *testing.T) {
	got, err := symcalc.ResolveTerms(map[string]string{"a": "b+c", "b": "2", "c": "b"})
	require.NoError(t, err)
	assert.Equal(t, "2", got["c"])
	assert.NotContains(t, got["a"], "b")
	assert.NotContains(t, got["a"], "c")
}

func TestResolveTermsCircular(t *testing.T) {
	cases := []struct {
		name  string
		terms map[string]string
	}{
		{"pair", map[string]string{"a": "b", "b": "a"}},
		{"direct", map[string]string{"a": "a+1"}},
		{"triangle", map[string]string{"a": "b", "b": "c", "c": "a"}},
		{"indirect", map[string]string{"a": "2b", "b": "a+1"}},
		{"with bystander", map[string]string{"a": "b", "b": "a", "x": "5"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := symcalc.ResolveTerms(c.terms)
			var e *symcalc.CircularDefinitionError
			require.True(t, errors.As(err, &e), "wrong error %v", err)
			assert.Contains(t, c.terms, e.Term)
			assert.NotEqual(t, "x", e.Term)
			assert.Equal(t, symcalc.CircularDefinition, symcalc.KindOf(err))
		})
	}
}

func TestResolveTermsBadNames(t *testing.T) {
	_, err := symcalc.ResolveTerms(map[string]string{"$": "1"})
	var u *symcalc.UnknownSymbolError
	require.True(t, errors.As(err, &u), "wrong error %v", err)
	assert.Equal(t, '$', u.Symbol)

	_, err = symcalc.ResolveTerms(map[string]string{"ab": "1"})
	assert.Equal(t, symcalc.MalformedInput, symcalc.KindOf(err))

	_, err = symcalc.ResolveTerms(map[string]string{"a": "2$"})
	require.True(t, errors.As(err, &u), "wrong error %v", err)
	assert.Equal(t, '$', u.Symbol)
	assert.Equal(t, "a", u.Term)
	assert.Equal(t, `unknown symbol '$' in definition of a`, u.Error())
}
