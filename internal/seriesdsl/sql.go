package seriesdsl

import (
	"fmt"
	"strings"
)

// Sqlf formats SQL with automatic dedenting and blank line removal.
// The SQL shape is visible in the format string.
func Sqlf(format string, args ...any) string {
	s := fmt.Sprintf(format, args...)
	lines := strings.Split(s, "\n")

	// Find minimum indentation (ignoring empty lines)
	minIndent := 1000
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if indent < minIndent {
			minIndent = indent
		}
	}

	// Remove common indent and empty lines
	var result []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) >= minIndent {
			result = append(result, line[minIndent:])
		} else {
			result = append(result, strings.TrimLeft(line, " \t"))
		}
	}

	return strings.Join(result, "\n")
}

// Optf returns formatted string if condition is true, empty string otherwise.
// Useful for optional SQL clauses.
func Optf(cond bool, format string, args ...any) string {
	if !cond {
		return ""
	}
	return fmt.Sprintf(format, args...)
}

// IndentLines adds the given indent prefix to each line of input.
func IndentLines(input, indent string) string {
	if input == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(input), "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// Ident sanitizes an identifier for use in SQL.
// Replaces non-alphanumeric characters with underscores.
func Ident(name string) string {
	var result strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}
	return result.String()
}

// SQLer is an interface for types that can render a complete query.
type SQLer interface {
	SQL() string
}

// TableExpr is a typed FROM-clause source.
type TableExpr interface {
	TableSQL() string
	TableAlias() string
}

// FuncTable places a function call in the FROM clause, the natural home of
// a set-returning function: "generate_series(...) AS a".
type FuncTable struct {
	Call  Expr
	Alias string
}

// TableSQL renders the function source.
func (f FuncTable) TableSQL() string {
	if f.Alias == "" {
		return f.Call.SQL()
	}
	return f.Call.SQL() + " AS " + f.Alias
}

// TableAlias implements TableExpr.
func (f FuncTable) TableAlias() string {
	return f.Alias
}

// Subquery wraps a query as a FROM-clause source: "(query) AS alias".
type Subquery struct {
	Query SQLer
	Alias string
}

// TableSQL renders the subquery source.
func (s Subquery) TableSQL() string {
	return "(\n" + IndentLines(s.Query.SQL(), "    ") + "\n) AS " + s.Alias
}

// TableAlias implements TableExpr.
func (s Subquery) TableAlias() string {
	return s.Alias
}

// SelectStmt represents a SELECT query. Only the clauses the series
// templates use are modeled: projection, one source and an OFFSET.
type SelectStmt struct {
	Columns []Expr
	From    TableExpr
	Offset  int
}

// SQL renders the SELECT statement. Clauses are joined line by line
// rather than through Sqlf: a FROM subquery spans multiple lines, which
// would defeat Sqlf's common-indent detection.
func (s SelectStmt) SQL() string {
	parts := []string{"SELECT " + s.columnsSQL()}
	if s.From != nil {
		parts = append(parts, "FROM "+s.From.TableSQL())
	}
	if s.Offset > 0 {
		parts = append(parts, "OFFSET "+Int(s.Offset).SQL())
	}
	return strings.Join(parts, "\n")
}

func (s SelectStmt) columnsSQL() string {
	if len(s.Columns) == 0 {
		return "1"
	}
	parts := make([]string, len(s.Columns))
	for i, e := range s.Columns {
		parts[i] = e.SQL()
	}
	return strings.Join(parts, ", ")
}
