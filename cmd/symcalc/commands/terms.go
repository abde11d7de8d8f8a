package commands

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// loadTermsFile reads term definitions from a YAML mapping of variable
// names to definitions.
func loadTermsFile(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading terms file")
	}
	var terms map[string]string
	if err := yaml.Unmarshal(b, &terms); err != nil {
		return nil, errors.Wrapf(err, "parsing terms file %s", path)
	}
	return terms, nil
}

// parseTerm splits a name=definition argument.
func parseTerm(s string) (name, def string, err error) {
	name, def, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", errors.WithHint(errors.Newf("invalid term %q", s), "write terms as name=definition, e.g. a=2b")
	}
	return name, strings.TrimSpace(def), nil
}

// collectTerms merges a terms file with name=definition arguments, the
// arguments taking precedence.
func collectTerms(file string, args []string) (map[string]string, error) {
	terms := map[string]string{}
	if file != "" {
		t, err := loadTermsFile(file)
		if err != nil {
			return nil, err
		}
		for k, v := range t {
			terms[k] = v
		}
	}
	for _, a := range args {
		name, def, err := parseTerm(a)
		if err != nil {
			return nil, err
		}
		terms[name] = def
	}
	return terms, nil
}
