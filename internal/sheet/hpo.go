package sheet

import (
	"fmt"
	"strings"
)

// ParseHPO splits a comma separated list of "prefix:code" phenotype terms.
// Terms are grouped by prefix with codes in input order. Entries that are
// not exactly one non-empty prefix and one non-empty code are returned as
// problems instead of terms.
func ParseHPO(value string) (map[string][]string, []string) {
	terms := make(map[string][]string)
	var problems []string

	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		prefix, code, ok := strings.Cut(entry, ":")
		if !ok || prefix == "" || code == "" || strings.Contains(code, ":") {
			problems = append(problems, fmt.Sprintf("HPO term %q is not of the form prefix:code.", entry))
			continue
		}
		terms[prefix] = append(terms[prefix], code)
	}
	return terms, problems
}
