// Package commands implements the symcalc command line.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symcalc"
	"github.com/zephyrtronium/symcalc/internal/config"
	"github.com/zephyrtronium/symcalc/internal/logger"
)

// Version is the version reported by the MCP server.
var Version = "dev"

var (
	configPath string
	jsonLog    bool

	// cfg and solver are set up before any subcommand runs.
	cfg    *config.Config
	solver *symcalc.Solver
)

var rootCmd = &cobra.Command{
	Use:   "symcalc",
	Short: "Calculator for free-form math with exact and approximate answers",
	Long: `symcalc solves math written the way you'd write it in your notes.

Multiplication may be implicit, variables are single letters other than e and i,
and the constants i, e, π, φ, γ are built in. Functions include diff, integrate,
the trigonometric and hyperbolic families, log, root, and random.

Examples:
  symcalc solve '2x + 3x'
  symcalc solve 'integrate(x sin(x), x)'
  symcalc solve -t a=2b -t b=3 'a^2'
  symcalc repl`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonLog || cfg.Log.JSON, verbosity); err != nil {
			return errors.Wrap(err, "initializing logger")
		}
		logger.Logger.Infow("configuration loaded", "digits", cfg.Solver.Digits, "format", cfg.Display.Format)
		opts := append(cfg.SolverOptions(), symcalc.WithLogger(logger.Logger))
		solver = symcalc.NewSolver(opts...)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file (default: ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "write logs as JSON")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (-v, -vv)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command, printing any error with its hints.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
	for _, h := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "hint: %s\n", h)
	}
}
