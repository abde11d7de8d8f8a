package symcalc

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ResolveTerms substitutes term definitions into each other until no
// defined term's value mentions another defined term. A blank definition
// means the term stands for itself. Function names in the resolved values
// are tokenized.
//
// Keys must be single variable or constant symbols. Constants are accepted
// but cannot be redefined, so their entries are dropped.
func ResolveTerms(terms map[string]string) (map[string]string, error) {
	cur := make(map[string]string, len(terms))
	orig := make(map[string]string, len(terms))
	for name, def := range terms {
		r, n := utf8.DecodeRuneInString(name)
		if n == 0 || n != len(name) {
			return nil, &MalformedInputError{Text: name}
		}
		if IsConstant(r) {
			continue
		}
		if !IsVariable(r) {
			return nil, &UnknownSymbolError{Symbol: r, Term: name}
		}
		if err := Validate(def); err != nil {
			err.(*UnknownSymbolError).Term = name
			return nil, err
		}
		def = RemoveWhitespace(def)
		orig[name] = def
		if def == "" || def == "("+name+")" {
			def = name
		}
		cur[name] = TokenizeFunctions(def)
	}
	names := make([]string, 0, len(cur))
	for name := range cur {
		names = append(names, name)
	}
	sort.Strings(names)

	converged := false
	for pass := 0; pass <= len(names); pass++ {
		next, changed := substitutePass(cur, names)
		if !changed {
			converged = true
			break
		}
		cur = next
	}
	for _, name := range names {
		def := orig[name]
		if def == "" || def == name || def == "("+name+")" {
			continue
		}
		if strings.Contains(cur[name], name) {
			return nil, &CircularDefinitionError{Term: name}
		}
	}
	if !converged {
		// Values that keep growing without mentioning themselves are
		// still part of a cycle.
		next, _ := substitutePass(cur, names)
		for _, name := range names {
			if next[name] != cur[name] {
				return nil, &CircularDefinitionError{Term: name}
			}
		}
	}
	return cur, nil
}

// substitutePass computes one round of substitution from the snapshot cur
// without modifying it.
func substitutePass(cur map[string]string, names []string) (map[string]string, bool) {
	next := make(map[string]string, len(cur))
	changed := false
	for _, name := range names {
		v := cur[name]
		if v == name {
			next[name] = v
			continue
		}
		for _, other := range names {
			if other == name || cur[other] == other || !strings.Contains(v, other) {
				continue
			}
			if v == other {
				v = cur[other]
				continue
			}
			v = strings.ReplaceAll(v, other, "("+cur[other]+")")
		}
		if v != cur[name] {
			changed = true
		}
		next[name] = v
	}
	return next, changed
}
