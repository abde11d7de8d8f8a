// Package config loads symcalc settings from TOML files and SYMCALC_*
// environment variables.
package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/symcalc"
)

// Config is the complete symcalc configuration.
type Config struct {
	Solver  SolverConfig  `mapstructure:"solver" toml:"solver"`
	Display DisplayConfig `mapstructure:"display" toml:"display"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// SolverConfig controls evaluation.
type SolverConfig struct {
	// Digits is the number of significant digits of approximate answers.
	Digits int `mapstructure:"digits" toml:"digits"`
	// Seed seeds random. Zero means a fresh seed for each solve.
	Seed int64 `mapstructure:"seed" toml:"seed"`
	// LiteralConstants lists constant symbols to substitute by value.
	LiteralConstants []string `mapstructure:"literal_constants" toml:"literal_constants"`
}

// DisplayConfig controls answer formatting.
type DisplayConfig struct {
	Format        string `mapstructure:"format" toml:"format"`
	CopyFormat    string `mapstructure:"copy_format" toml:"copy_format"`
	CommaGrouping bool   `mapstructure:"comma_grouping" toml:"comma_grouping"`
	// Color is the render colour as #rrggbb.
	Color string `mapstructure:"color" toml:"color"`
	DPI   int    `mapstructure:"dpi" toml:"dpi"`
}

// LogConfig controls logging.
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json"`
}

// FileName is the name of the configuration file searched for when no
// path is given.
const FileName = "symcalc.toml"

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("solver.digits", 30)
	v.SetDefault("solver.seed", 0)
	v.SetDefault("solver.literal_constants", []string{})

	v.SetDefault("display.format", "text")
	v.SetDefault("display.copy_format", "text")
	v.SetDefault("display.comma_grouping", false)
	v.SetDefault("display.color", "#000000")
	v.SetDefault("display.dpi", 300)

	v.SetDefault("log.json", false)
}

// New creates a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SYMCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads configuration from path, or from symcalc.toml in the working
// directory or the user config directory when path is empty. A missing
// file is not an error unless path names it.
func Load(path string) (*Config, error) {
	v := New()
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	} else if found := findConfig(); found != "" {
		v.SetConfigFile(found)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", found)
		}
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates the configuration held by v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfig() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "symcalc", FileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Solver.Digits < 1 {
		return errors.Newf("solver.digits must be positive, not %d", c.Solver.Digits)
	}
	for _, s := range c.Solver.LiteralConstants {
		r := []rune(s)
		if len(r) != 1 || !symcalc.IsConstant(r[0]) {
			return errors.WithHint(errors.Newf("solver.literal_constants: %q is not a constant", s), "constants are i, e, π, φ, γ")
		}
	}
	if _, ok := symcalc.ParseFormat(c.Display.Format); !ok {
		return errors.Newf("display.format: unknown format %q", c.Display.Format)
	}
	if _, ok := symcalc.ParseFormat(c.Display.CopyFormat); !ok {
		return errors.Newf("display.copy_format: unknown format %q", c.Display.CopyFormat)
	}
	if _, err := ParseColor(c.Display.Color); err != nil {
		return errors.Wrap(err, "display.color")
	}
	if c.Display.DPI < 1 {
		return errors.Newf("display.dpi must be positive, not %d", c.Display.DPI)
	}
	return nil
}

// SolverOptions returns the solver options the configuration describes.
func (c *Config) SolverOptions() []symcalc.SolverOption {
	opts := []symcalc.SolverOption{symcalc.WithDigits(c.Solver.Digits)}
	if c.Solver.Seed != 0 {
		opts = append(opts, symcalc.WithSeed(c.Solver.Seed))
	}
	return opts
}

// Request returns a request carrying the configured presentation settings
// for expr and terms. The configuration must be valid.
func (c *Config) Request(expr string, terms map[string]string) symcalc.Request {
	display, _ := symcalc.ParseFormat(c.Display.Format)
	cp, _ := symcalc.ParseFormat(c.Display.CopyFormat)
	col, _ := ParseColor(c.Display.Color)
	lit := make(map[string]bool, len(c.Solver.LiteralConstants))
	for _, s := range c.Solver.LiteralConstants {
		lit[s] = true
	}
	return symcalc.Request{
		Expression:    expr,
		Terms:         terms,
		Literal:       lit,
		Display:       display,
		Copy:          cp,
		CommaGrouping: c.Display.CommaGrouping,
		Color:         col,
		DPI:           c.Display.DPI,
	}
}

// ParseColor parses a #rrggbb colour.
func ParseColor(s string) (color.RGBA, error) {
	h, ok := strings.CutPrefix(s, "#")
	if !ok || len(h) != 6 {
		return color.RGBA{}, errors.Newf("colour %q is not of the form #rrggbb", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "colour %q", s)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling config")
	}
	return b, nil
}
