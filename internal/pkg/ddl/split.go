// Package ddl prepares schema files for execution.
package ddl

import "strings"

// Split turns a schema file into individual statements. Full-line "--"
// comments and blank lines are dropped, statements are separated by ";".
// Statements therefore must not embed semicolons in string literals.
func Split(content string) []string {
	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}
