package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Statements allowed to start a report query.
var allowedCommands = map[string]bool{
	"SELECT": true,
	"WITH":   true,
	"TABLE":  true,
	"VALUES": true,
}

// Keywords that modify data or schema. They are rejected anywhere in the
// query outside of string literals and quoted identifiers.
var forbiddenCommands = []string{
	"DELETE", "DROP", "TRUNCATE", "INSERT", "UPDATE", "ALTER", "CREATE",
	"GRANT", "REVOKE", "EXECUTE", "EXEC", "CALL", "MERGE", "COPY",
	"VACUUM", "REINDEX", "CLUSTER", "LOCK", "DO",
}

var forbiddenPattern = regexp.MustCompile(`\b(` + strings.Join(forbiddenCommands, "|") + `)\b`)

var whitespace = regexp.MustCompile(`\s+`)

// ValidateQuery checks that a sheet query is a single read-only statement.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query cannot be empty")
	}

	masked := maskQuery(query)

	statements := splitStatements(masked)
	if len(statements) == 0 {
		return fmt.Errorf("query contains only comments")
	}
	if len(statements) > 1 {
		return fmt.Errorf("only a single SQL statement is allowed, found %d", len(statements))
	}

	normalized := strings.ToUpper(whitespace.ReplaceAllString(statements[0], " "))

	first := strings.TrimLeft(normalized, "( ")
	if idx := strings.IndexAny(first, " (;"); idx >= 0 {
		first = first[:idx]
	}
	if !allowedCommands[first] {
		if forbiddenPattern.MatchString(first) {
			return fmt.Errorf("forbidden SQL command detected: %s (read-only mode)", first)
		}
		return fmt.Errorf("unsupported SQL command: %s (only SELECT, WITH, TABLE and VALUES are allowed)", first)
	}

	if m := forbiddenPattern.FindString(normalized); m != "" {
		return fmt.Errorf("forbidden SQL command detected: %s (read-only mode)", m)
	}

	return nil
}

// maskQuery drops comments and blanks out the contents of string literals
// and quoted identifiers, keeping their quotes. Keywords found in the result
// are real SQL keywords.
func maskQuery(query string) string {
	var b strings.Builder
	b.Grow(len(query))

	const (
		code = iota
		lineComment
		blockComment
		quoted
	)

	state := code
	var quote byte
	depth := 0

	for i := 0; i < len(query); i++ {
		c := query[i]
		next := byte(0)
		if i+1 < len(query) {
			next = query[i+1]
		}

		switch state {
		case code:
			switch {
			case c == '-' && next == '-':
				state = lineComment
				i++
			case c == '/' && next == '*':
				state = blockComment
				depth = 1
				i++
				b.WriteByte(' ')
			case c == '\'' || c == '"':
				state = quoted
				quote = c
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}

		case lineComment:
			if c == '\n' {
				state = code
				b.WriteByte('\n')
			}

		case blockComment:
			switch {
			case c == '/' && next == '*':
				depth++
				i++
			case c == '*' && next == '/':
				depth--
				i++
				if depth == 0 {
					state = code
				}
			}

		case quoted:
			switch {
			case c == quote && next == quote:
				b.WriteString("  ")
				i++
			case c == quote:
				state = code
				b.WriteByte(c)
			default:
				b.WriteByte(' ')
			}
		}
	}

	return b.String()
}

// splitStatements splits masked SQL on semicolons and drops empty statements.
func splitStatements(masked string) []string {
	var statements []string
	for _, part := range strings.Split(masked, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
