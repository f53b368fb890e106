package main

import (
	"fmt"
	"strings"

	"github.com/operaton/operaton-sub059/variable"
	"gopkg.in/yaml.v3"
)

// parseVariables parses name=value pairs given on the command line.
//
// Values are interpreted as YAML scalars, so numbers and booleans keep their
// type. Quote a value to force it to be a string.
func parseVariables(pairs []string) (variable.Map, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	m := variable.Map{}

	for _, p := range pairs {
		n, raw, ok := strings.Cut(p, "=")
		if !ok || n == "" {
			return nil, fmt.Errorf("variable '%s' must be of the form name=value", p)
		}

		var v any
		if raw != "" {
			if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
				return nil, fmt.Errorf("variable '%s': %w", n, err)
			}
		}

		switch v.(type) {
		case nil, bool, int, float64, string:
			m[n] = variable.Of(v)
		default:
			m[n] = variable.String(raw)
		}
	}

	return m, nil
}
