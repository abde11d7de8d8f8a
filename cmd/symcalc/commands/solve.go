package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symcalc"
)

var (
	termArgs  []string
	termsFile string
	literals  []string
	format    string
	comma     bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <expression>...",
	Short: "Solve an expression",
	Long: `Solve an expression and print its exact and approximate answers.

Arguments are joined with spaces, so quoting is optional for simple input.`,
	Example: `  symcalc solve 'diff(x^2, x)'
  symcalc solve --literal π '2π'
  symcalc solve --terms-file terms.yaml 'a + b'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringArrayVarP(&termArgs, "term", "t", nil, "define a term as name=definition (repeatable)")
	solveCmd.Flags().StringVar(&termsFile, "terms-file", "", "YAML file mapping variable names to definitions")
	solveCmd.Flags().StringSliceVar(&literals, "literal", nil, "constants to substitute by decimal value, e.g. π,e")
	solveCmd.Flags().StringVarP(&format, "format", "f", "", "answer format: text, latex, or image (default from config)")
	solveCmd.Flags().BoolVar(&comma, "comma", false, "group digits with commas")
}

func runSolve(cmd *cobra.Command, args []string) error {
	terms, err := collectTerms(termsFile, termArgs)
	if err != nil {
		return err
	}
	req, err := buildRequest(strings.Join(args, " "), terms)
	if err != nil {
		return err
	}
	sol, err := solver.Solve(req)
	if err != nil {
		return err
	}
	printSolution(cmd.OutOrStdout(), sol)
	return nil
}

// buildRequest applies command line overrides to the configured request.
func buildRequest(expr string, terms map[string]string) (symcalc.Request, error) {
	req := cfg.Request(expr, terms)
	for _, c := range literals {
		req.Literal[c] = true
	}
	if format != "" {
		f, ok := symcalc.ParseFormat(format)
		if !ok {
			return req, errors.Newf("unknown format %q", format)
		}
		req.Display = f
	}
	if comma {
		req.CommaGrouping = true
	}
	return req, nil
}

func printSolution(w io.Writer, sol *symcalc.Solution) {
	label := color.New(color.FgCyan).SprintFunc()
	if sol.HasExact {
		fmt.Fprintf(w, "%s %s\n", label("exact:"), sol.Exact)
	} else {
		fmt.Fprintf(w, "%s %s\n", label("exact:"), color.YellowString("unavailable (a constant's literal value was used)"))
	}
	fmt.Fprintf(w, "%s %s\n", label("approximate:"), sol.Approximate)
	r := sol.ExactImage
	if r == nil {
		r = sol.ApproximateImage
	}
	if r != nil {
		fmt.Fprintf(w, "%s %d dpi, colour #%02x%02x%02x\n", label("render:"), r.DPI, r.Color.R, r.Color.G, r.Color.B)
	}
}
