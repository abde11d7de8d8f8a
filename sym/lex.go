package sym

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type token struct {
	kind tokenKind
	text string
	// col is the 1-based rune column where the token starts.
	col int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.col)
}

type tokenKind int8

const (
	tokenEOF   tokenKind = iota
	tokenNum             // integer or decimal literal
	tokenIdent           // symbol or function name
	tokenOp              // + - * / ^ ** × ÷
	tokenOpen            // ( [ {
	tokenClose           // ) ] }
	tokenSep             // ,
)

var tokenNames = [...]string{
	tokenEOF:   "EOF",
	tokenNum:   "Num",
	tokenIdent: "Ident",
	tokenOp:    "Op",
	tokenOpen:  "Open",
	tokenClose: "Close",
	tokenSep:   "Sep",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

const (
	operatorRunes = "+-*/^×÷"
	openRunes     = "([{"
	closeRunes    = ")]}"
)

// scanner splits an expression into tokens.
type scanner struct {
	src string
	// off is the byte offset and col the rune column of the next rune.
	off, col int
}

// tokenize scans all of src. The last token is always EOF.
func tokenize(src string) ([]token, error) {
	s := scanner{src: src, col: 1}
	var toks []token
	for {
		t, err := s.scan()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.kind == tokenEOF {
			return toks, nil
		}
	}
}

func (s *scanner) peek() (rune, int) {
	if s.off >= len(s.src) {
		return -1, 0
	}
	return utf8.DecodeRuneInString(s.src[s.off:])
}

func (s *scanner) advance(size int) {
	s.off += size
	s.col++
}

func (s *scanner) scan() (token, error) {
	r, n := s.peek()
	for unicode.IsSpace(r) {
		s.advance(n)
		r, n = s.peek()
	}
	start, col := s.off, s.col
	t := token{col: col}
	switch {
	case r < 0:
		t.kind = tokenEOF
		return t, nil
	case '0' <= r && r <= '9', r == '.':
		if err := s.number(); err != nil {
			return t, err
		}
		t.kind = tokenNum
	case r == '_', unicode.IsLetter(r):
		s.ident()
		t.kind = tokenIdent
	case r == ',':
		s.advance(n)
		t.kind = tokenSep
	case strings.ContainsRune(operatorRunes, r):
		s.advance(n)
		if r == '*' && strings.HasPrefix(s.src[s.off:], "*") {
			s.advance(1)
		}
		t.kind = tokenOp
	case strings.ContainsRune(openRunes, r):
		s.advance(n)
		t.kind = tokenOpen
	case strings.ContainsRune(closeRunes, r):
		s.advance(n)
		t.kind = tokenClose
	default:
		return t, &LexError{Text: string(r), Col: col}
	}
	t.text = s.src[start:s.off]
	return t, nil
}

// number scans a decimal literal with an optional exponent, e.g. 1.5e-3.
func (s *scanner) number() error {
	start, col := s.off, s.col
	digits, dot := false, false
	for {
		r, n := s.peek()
		switch {
		case '0' <= r && r <= '9':
			digits = true
		case r == '.' && !dot:
			dot = true
		case r == '.':
			s.advance(n)
			return &LexError{Text: s.src[start:s.off], Kind: "number", Col: col}
		default:
			if !digits {
				return &LexError{Text: s.src[start:s.off], Kind: "number", Col: col}
			}
			if r == 'e' || r == 'E' {
				return s.exponent(start, col)
			}
			// Anything else ends the number, so 2x is two tokens.
			return nil
		}
		s.advance(n)
	}
}

// exponent scans the exponent part of a number. The scanner is at the e.
func (s *scanner) exponent(start, col int) error {
	s.advance(1)
	if r, _ := s.peek(); r == '+' || r == '-' {
		s.advance(1)
	}
	digits := false
	for r, _ := s.peek(); '0' <= r && r <= '9'; r, _ = s.peek() {
		digits = true
		s.advance(1)
	}
	if !digits {
		return &LexError{Text: s.src[start:s.off], Kind: "number", Col: col}
	}
	return nil
}

// ident scans a name. Digits, including subscript digits, may follow the
// first rune, so C₀ and x_1 are single names.
func (s *scanner) ident() {
	for {
		r, n := s.peek()
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return
		}
		s.advance(n)
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the text of the invalid token as far as it was scanned.
	Text string
	// Kind is the kind of token being scanned, "number" or empty if no kind
	// was decided.
	Kind string
	// Col is the rune column where the token starts.
	Col int
}

func (err *LexError) Error() string {
	what := "invalid token"
	if err.Kind != "" {
		what = "invalid " + err.Kind
	}
	return errpos(err.Col, what+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int { return err.Col }
