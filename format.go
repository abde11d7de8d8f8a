package symcalc

import (
	"image/color"
	"regexp"
	"strings"

	"github.com/zephyrtronium/symcalc/sym"
)

// Format selects how an answer is presented.
type Format int

const (
	// Text is plain text with ^ for powers and user-facing names.
	Text Format = iota
	// LaTeX is LaTeX math source.
	LaTeX
	// Image is LaTeX source together with a RenderRequest for an external
	// renderer.
	Image
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case LaTeX:
		return "latex"
	case Image:
		return "image"
	}
	return "Format(?)"
}

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, bool) {
	for _, f := range []Format{Text, LaTeX, Image} {
		if strings.EqualFold(s, f.String()) {
			return f, true
		}
	}
	return 0, false
}

// RenderRequest asks an external renderer to typeset LaTeX source.
type RenderRequest struct {
	LaTeX string
	Color color.RGBA
	DPI   int
}

// formatter converts backend results to display strings.
type formatter struct {
	backend Backend
	comma   bool
}

// format renders e in the given format. Image produces the same text as
// LaTeX; the caller builds the RenderRequest.
func (f *formatter) format(e sym.Expr, to Format) (string, error) {
	if to == Text {
		return f.text(e), nil
	}
	return f.latex(e)
}

func (f *formatter) text(e sym.Expr) string {
	s := strings.ReplaceAll(e.String(), "**", "^")
	s = powersOfTen(s)
	s = userNames.Replace(s)
	if f.comma {
		s = groupDigits(s, ",")
	}
	return s
}

func (f *formatter) latex(e sym.Expr) (string, error) {
	s := latexSubscripts.Replace(e.String())
	r, err := f.backend.Simplify(s)
	if err != nil {
		return "", backendErr("simplify", err)
	}
	s = f.backend.LaTeX(r)
	if f.comma {
		s = groupDigits(s, "{,}")
	}
	return s, nil
}

// sciExp matches a decimal in exponent notation, like 1.5e-30.
var sciExp = regexp.MustCompile(`\b(\d+(?:\.\d+)?)e\+?(-?\d+)\b`)

// powersOfTen rewrites exponent notation as a product with a power of ten,
// so that 1e-30 reads as 1*10^-30 rather than involving the constant e.
func powersOfTen(s string) string {
	return sciExp.ReplaceAllString(s, "${1}*10^${2}")
}

// latexSubscripts rewrites subscript digits to the backend's _N form.
var latexSubscripts = strings.NewReplacer(
	"₀", "_0", "₁", "_1", "₂", "_2", "₃", "_3", "₄", "_4",
	"₅", "_5", "₆", "_6", "₇", "_7", "₈", "_8", "₉", "_9",
)

// groupDigits inserts sep between groups of three digits in the integer
// part of each number in s.
func groupDigits(s, sep string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if !isDigit(rune(s[i])) {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && isDigit(rune(s[j])) {
			j++
		}
		run := s[i:j]
		if i > 0 && s[i-1] == '.' {
			b.WriteString(run)
			i = j
			continue
		}
		for k, c := range run {
			if k > 0 && (len(run)-k)%3 == 0 {
				b.WriteString(sep)
			}
			b.WriteRune(c)
		}
		i = j
	}
	return b.String()
}
