package host

import (
	"fmt"
	"regexp"
	"strings"
)

// variablePattern matches $name, ${name}, ${name:format} and [[name]].
var variablePattern = regexp.MustCompile(`\$\{(\w+)(?::[^}]*)?\}|\[\[(\w+)\]\]|\$(\w+)`)

// Variables are dashboard template variables.
type Variables map[string]string

// ParseVariables parses name=value pairs.
func ParseVariables(pairs []string) (Variables, error) {
	vars := make(Variables, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q (expected name=value)", pair)
		}
		vars[name] = value
	}
	return vars, nil
}

// Replace substitutes known variables in s. Unknown variables are kept as is.
func (v Variables) Replace(s string) string {
	return variablePattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := variablePattern.FindStringSubmatch(match)
		for _, name := range groups[1:] {
			if name == "" {
				continue
			}
			if value, ok := v[name]; ok {
				return value
			}
		}
		return match
	})
}
