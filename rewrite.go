package symcalc

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Placeholders stand in for function names while the expression is
// rewritten. A placeholder is the function's index between braces, e.g. {31}
// for sin. Braces are not accepted input, so user text never contains one.
const (
	placeholderOpen  = '{'
	placeholderClose = '}'
)

func placeholder(f Function) string {
	return string(placeholderOpen) + strconv.Itoa(int(f)) + string(placeholderClose)
}

// placeholderAt parses a placeholder starting at byte offset i of s. end is
// the offset just past the closing brace.
func placeholderAt(s string, i int) (f Function, end int, ok bool) {
	if i >= len(s) || s[i] != placeholderOpen {
		return 0, 0, false
	}
	j := i + 1
	for j < len(s) && '0' <= s[j] && s[j] <= '9' {
		j++
	}
	if j == i+1 || j >= len(s) || s[j] != placeholderClose {
		return 0, 0, false
	}
	n, err := strconv.Atoi(s[i+1 : j])
	if err != nil || n >= int(numFunctions) {
		return 0, 0, false
	}
	return Function(n), j + 1, true
}

// Validate checks that every character of raw input is a variable,
// constant, digit, decimal point, operator, or whitespace.
func Validate(s string) error {
	for _, r := range s {
		if unicode.IsSpace(r) || accepted(r) {
			continue
		}
		return &UnknownSymbolError{Symbol: r}
	}
	return nil
}

// RemoveWhitespace removes all whitespace from s.
func RemoveWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// TokenizeFunctions replaces every function name in s with its placeholder.
// Longer names are replaced first.
func TokenizeFunctions(s string) string {
	for i, name := range Functions {
		if strings.Contains(s, name) {
			s = strings.ReplaceAll(s, name, placeholder(Function(i)))
		}
	}
	return s
}

// DetokenizeFunctions replaces every placeholder in s with its function name.
func DetokenizeFunctions(s string) string {
	if !strings.ContainsRune(s, placeholderOpen) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if f, end, ok := placeholderAt(s, i); ok {
			b.WriteString(Functions[f])
			i = end
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// endsValue reports whether r can end an operand.
func endsValue(r rune) bool {
	return IsVariable(r) || IsConstant(r) || isDigit(r) || r == ')' || r == '.'
}

// startsValue reports whether r can start an operand that is not a number.
func startsValue(r rune) bool {
	return IsVariable(r) || IsConstant(r) || r == '(' || r == placeholderOpen
}

// InsertImplicitMultiplication inserts * between adjacent operands, as in
// 2x, x(y+1), (a)(b), and 2sin(x). A number directly after a variable,
// constant, or closing bracket is also a new operand, so x2 means x*2.
func InsertImplicitMultiplication(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/2)
	prev := utf8.RuneError
	for _, r := range s {
		if prev != utf8.RuneError {
			number := isDigit(r) || r == '.'
			switch {
			case endsValue(prev) && startsValue(r):
				b.WriteByte('*')
			case number && (IsVariable(prev) || IsConstant(prev) || prev == ')'):
				b.WriteByte('*')
			}
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// DecimalsToRationals replaces each decimal literal in s with the
// parenthesized exact rational that rational returns for it. Integers and
// placeholders are left alone. A literal with no digits or with several
// decimal points is a MalformedInputError.
func DecimalsToRationals(s string, rational func(decimal string) (string, error)) (string, error) {
	if !strings.ContainsRune(s, '.') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if _, end, ok := placeholderAt(s, i); ok {
			b.WriteString(s[i:end])
			i = end
			continue
		}
		c := s[i]
		if !isDigit(rune(c)) && c != '.' {
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(s) && (isDigit(rune(s[j])) || s[j] == '.') {
			j++
		}
		lit := s[i:j]
		i = j
		switch strings.Count(lit, ".") {
		case 0:
			b.WriteString(lit)
			continue
		case 1:
			if lit != "." {
				break
			}
			fallthrough
		default:
			return "", &MalformedInputError{Text: lit}
		}
		r, err := rational(lit)
		if err != nil {
			return "", err
		}
		b.WriteByte('(')
		b.WriteString(r)
		b.WriteByte(')')
	}
	return b.String(), nil
}

// Call is a function call found in a tokenized expression.
type Call struct {
	// Func is the called function.
	Func Function
	// Params are the top-level comma-separated parameters, still tokenized.
	Params []string
	// Start is the byte offset of the placeholder.
	Start int
	// End is the byte offset of the closing bracket of the argument list.
	End int
}

// ExtractFunctionCall finds the first placeholder in s and splits its
// bracketed argument list. The result is false if s has no placeholder.
func ExtractFunctionCall(s string) (Call, bool, error) {
	start := -1
	var (
		fn   Function
		open int
	)
	for i := strings.IndexRune(s, placeholderOpen); i >= 0; {
		if f, end, ok := placeholderAt(s, i); ok {
			start, fn, open = i, f, end
			break
		}
		k := strings.IndexRune(s[i+1:], placeholderOpen)
		if k < 0 {
			break
		}
		i += k + 1
	}
	if start < 0 {
		return Call{}, false, nil
	}
	if open >= len(s) || s[open] != '(' {
		return Call{}, true, &CallError{Func: fn, Len: -1}
	}
	var params []string
	depth := 0
	last := open + 1
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				params = append(params, s[last:i])
				return Call{Func: fn, Params: params, Start: start, End: i}, true, nil
			}
		case ',':
			if depth == 1 {
				params = append(params, s[last:i])
				last = i + 1
			}
		}
	}
	return Call{}, true, &CallError{Func: fn, Len: -1}
}

// Splice replaces the text of s from start through end, inclusive, with the
// parenthesized replacement.
func Splice(s string, start, end int, replacement string) string {
	return s[:start] + "(" + replacement + ")" + s[end+1:]
}
