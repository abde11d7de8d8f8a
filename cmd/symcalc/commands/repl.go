package commands

import (
	"fmt"
	"io"
	"maps"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symcalc"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Solve expressions interactively",
	Long: `Start an interactive session. Each line is solved as an expression.
Lines starting with a colon are session commands; type :help to list them.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	replCmd.Flags().StringVar(&termsFile, "terms-file", "", "YAML file of initial term definitions")
}

// session holds the terms defined during a REPL session.
type session struct {
	terms map[string]string
	out   io.Writer
}

func runREPL(cmd *cobra.Command, args []string) error {
	terms, err := collectTerms(termsFile, nil)
	if err != nil {
		return err
	}
	rl, err := readline.New("symcalc> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	s := &session{terms: terms, out: rl.Stdout()}
	color.Cyan("symcalc %s\n", Version)
	color.Cyan("Type :help for session commands, :quit to leave\n\n")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			// EOF
			fmt.Fprintln(s.out)
			return nil
		}
		if quit := s.exec(strings.TrimSpace(line)); quit {
			return nil
		}
	}
}

// exec runs one line of input and reports whether the session should end.
func (s *session) exec(line string) bool {
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ":") {
		s.solve(line)
		return false
	}
	word, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)
	switch word {
	case "quit", "q", "exit":
		return true
	case "help", "h":
		fmt.Fprint(s.out, replHelp)
	case "let":
		name, def, err := parseTerm(rest)
		if err == nil {
			err = s.let(name, def)
		}
		if err != nil {
			printError(s.out, err)
		}
	case "unset":
		delete(s.terms, rest)
	case "terms":
		names := make([]string, 0, len(s.terms))
		for k := range s.terms {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(s.out, "%s = %s\n", k, s.terms[k])
		}
	case "clear":
		s.terms = map[string]string{}
	default:
		fmt.Fprintf(s.out, "%s unknown command :%s\n", color.RedString("✗"), word)
	}
	return false
}

// let defines a term. The definition is rejected, leaving the session's
// terms unchanged, if the terms would no longer resolve.
func (s *session) let(name, def string) error {
	next := maps.Clone(s.terms)
	if next == nil {
		next = map[string]string{}
	}
	next[name] = def
	if _, err := symcalc.ResolveTerms(next); err != nil {
		return err
	}
	s.terms = next
	return nil
}

func (s *session) solve(expr string) {
	req, err := buildRequest(expr, s.terms)
	if err == nil {
		sol, serr := solver.Solve(req)
		if serr == nil {
			printSolution(s.out, sol)
			return
		}
		err = serr
	}
	// Terms are left as they were.
	printError(s.out, err)
}

const replHelp = `  <expression>        solve an expression
  :let name=def       define a term
  :unset name         remove a term
  :terms              list defined terms
  :clear              remove all terms
  :quit               leave
`
