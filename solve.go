package symcalc

import (
	"image/color"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zephyrtronium/symcalc/sym"
)

// Solver solves expressions. A Solver is immutable once created, so it is
// safe to use concurrently.
type Solver struct {
	backend Backend
	log     *zap.SugaredLogger
	seed    *int64
	digits  int
}

// SolverOption is an option used when creating a solver.
type SolverOption interface {
	solverOption()
}

type (
	backendopt struct{ b Backend }
	loggeropt  struct{ l *zap.SugaredLogger }
	seedopt    int64
	digitsopt  int
)

func (backendopt) solverOption() {}
func (loggeropt) solverOption()  {}
func (seedopt) solverOption()    {}
func (digitsopt) solverOption()  {}

// WithBackend sets the symbolic backend. The default is a sym.Context with
// the precision set by WithDigits.
func WithBackend(b Backend) SolverOption {
	return backendopt{b}
}

// WithLogger sets the logger for pipeline tracing. The default discards logs.
func WithLogger(l *zap.SugaredLogger) SolverOption {
	return loggeropt{l}
}

// WithSeed makes random produce the same sequence of values on every solve.
// Without it, each solve is seeded from the clock.
func WithSeed(seed int64) SolverOption {
	return seedopt(seed)
}

// WithDigits sets the number of significant digits of approximate answers.
// It has no effect when WithBackend is also given.
func WithDigits(n int) SolverOption {
	return digitsopt(n)
}

// NewSolver creates a solver.
func NewSolver(opts ...SolverOption) *Solver {
	s := Solver{log: zap.NewNop().Sugar(), digits: sym.DefaultDigits}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case backendopt:
			s.backend = opt.b
		case loggeropt:
			if opt.l != nil {
				s.log = opt.l
			}
		case seedopt:
			seed := int64(opt)
			s.seed = &seed
		case digitsopt:
			if opt < 1 {
				panic("symcalc: digits must be positive")
			}
			s.digits = int(opt)
		default:
			panic("symcalc: unknown option type")
		}
	}
	if s.backend == nil {
		s.backend = sym.NewContext(sym.Digits(s.digits))
	}
	return &s
}

// Request is an expression to solve along with presentation choices.
type Request struct {
	// Expression is the user's input.
	Expression string
	// Terms maps variable names to definitions. Undefined variables and
	// blank definitions stand for themselves.
	Terms map[string]string
	// Literal holds the constant symbols, e.g. "π", whose decimal value
	// is substituted instead of the symbol. A solve that uses any such
	// constant has no exact answer.
	Literal map[string]bool
	// Display and Copy are the formats of the displayed and copied answers.
	Display, Copy Format
	// CommaGrouping inserts separators between groups of three digits.
	CommaGrouping bool
	// Color and DPI are passed along in render requests for Image formats.
	Color color.RGBA
	DPI   int
}

// Solution is a solved expression.
type Solution struct {
	// Input is the original expression.
	Input string
	// HasExact is false when the exact answer is unavailable because a
	// constant's literal value was used.
	HasExact bool
	// Exact and Approximate are the answers in the display format.
	Exact, Approximate string
	// ExactCopy and ApproximateCopy are the answers in the copy format.
	ExactCopy, ApproximateCopy string
	// ExactImage and ApproximateImage are render requests for the answers
	// when either format is Image.
	ExactImage, ApproximateImage *RenderRequest
	// UsesConstantLiteral reports whether a constant's literal value was
	// substituted.
	UsesConstantLiteral bool
}

// Solve evaluates an expression. On error, no Solution is returned. Errors
// are or wrap an Error.
func (s *Solver) Solve(req Request) (*Solution, error) {
	id := uuid.New()
	log := s.log.With("solve", id.String())
	log.Debugw("solving", "expression", req.Expression, "terms", len(req.Terms))
	sol, err := s.solve(req, log)
	if err != nil {
		log.Debugw("solve failed", "error", err, "kind", KindOf(err).String())
		return nil, withHint(err)
	}
	log.Debugw("solved", "exact", sol.Exact, "approximate", sol.Approximate)
	return sol, nil
}

func (s *Solver) solve(req Request, log *zap.SugaredLogger) (*Solution, error) {
	if err := Validate(req.Expression); err != nil {
		return nil, err
	}
	terms, err := ResolveTerms(req.Terms)
	if err != nil {
		return nil, err
	}
	expr := TokenizeFunctions(RemoveWhitespace(req.Expression))
	expr = substituteTerms(expr, terms)
	expr = InsertImplicitMultiplication(expr)
	expr, err = DecimalsToRationals(expr, func(lit string) (string, error) {
		r, err := s.backend.Rational(lit)
		if err != nil {
			return "", backendErr("rational", err)
		}
		return r.String(), nil
	})
	if err != nil {
		return nil, err
	}
	expr, literal := substituteConstants(expr, req.Literal)
	log.Debugw("rewritten", "expression", DetokenizeFunctions(expr))

	ev := evaluator{backend: s.backend, rand: s.rand(), log: log}
	flat, err := ev.resolve(expr)
	if err != nil {
		return nil, err
	}
	if flat == "" {
		return nil, &MalformedInputError{Text: req.Expression}
	}
	log.Debugw("flattened", "expression", flat)

	simple, err := s.backend.Simplify(flat)
	if err != nil {
		return nil, backendErr("simplify", err)
	}
	sol := Solution{Input: req.Expression, UsesConstantLiteral: literal, HasExact: !literal}
	var exact sym.Expr
	if sol.HasExact {
		exact, err = s.backend.ExpandLog(simple, true)
		if err != nil {
			return nil, backendErr("expand log", err)
		}
	}
	approx, err := s.backend.EvalNumeric(simple)
	if err != nil {
		return nil, backendErr("evaluate", err)
	}
	approx, err = s.backend.ExpandLog(approx, true)
	if err != nil {
		return nil, backendErr("expand log", err)
	}

	f := formatter{backend: s.backend, comma: req.CommaGrouping}
	render := func(e sym.Expr) (display, cp string, img *RenderRequest, err error) {
		if e == nil {
			return "", "", nil, nil
		}
		if display, err = f.format(e, req.Display); err != nil {
			return "", "", nil, err
		}
		if cp, err = f.format(e, req.Copy); err != nil {
			return "", "", nil, err
		}
		switch {
		case req.Display == Image:
			img = &RenderRequest{LaTeX: display, Color: req.Color, DPI: req.DPI}
		case req.Copy == Image:
			img = &RenderRequest{LaTeX: cp, Color: req.Color, DPI: req.DPI}
		}
		return display, cp, img, nil
	}
	sol.Exact, sol.ExactCopy, sol.ExactImage, err = render(exact)
	if err != nil {
		return nil, errors.Wrap(err, "formatting exact answer")
	}
	sol.Approximate, sol.ApproximateCopy, sol.ApproximateImage, err = render(approx)
	if err != nil {
		return nil, errors.Wrap(err, "formatting approximate answer")
	}
	return &sol, nil
}

func (s *Solver) rand() *rand.Rand {
	if s.seed != nil {
		return rand.New(rand.NewSource(*s.seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// substituteTerms replaces each defined variable in s with its
// parenthesized value.
func substituteTerms(s string, terms map[string]string) string {
	names := make([]string, 0, len(terms))
	for name, v := range terms {
		if v != name {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return s
	}
	sort.Strings(names)
	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, name, "("+terms[name]+")")
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// substituteConstants replaces constant symbols with backend names, or with
// parenthesized decimal values for those marked literal. It reports whether
// any literal value was used.
func substituteConstants(s string, literal map[string]bool) (string, bool) {
	used := false
	for _, c := range Constants {
		r := string(c.Symbol)
		if !strings.Contains(s, r) {
			continue
		}
		if literal[r] && c.Literal != "" {
			used = true
			s = strings.ReplaceAll(s, r, "("+c.Literal+")")
			continue
		}
		s = strings.ReplaceAll(s, r, c.Name)
	}
	return s, used
}
