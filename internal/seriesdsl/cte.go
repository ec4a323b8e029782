package seriesdsl

import "strings"

// CTEDef represents a single Common Table Expression definition.
// Used within WithCTE to define named subqueries.
type CTEDef struct {
	Name  string // CTE name (e.g. "series", "source")
	Query SQLer  // The CTE query body
}

// SQL renders the CTE definition as "name AS (query)".
func (c CTEDef) SQL() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteString(" AS (\n")
	sb.WriteString(IndentLines(c.Query.SQL(), "    "))
	sb.WriteString("\n)")
	return sb.String()
}

// WithCTE represents a WITH clause wrapping a final query.
//
// Example:
//
//	WithCTE{
//	    CTEs:  []CTEDef{{Name: "series", Query: base}, {Name: "source", Query: src}},
//	    Query: finalSelect,
//	}
//
// Renders:
//
//	WITH series AS (
//	    <base>
//	),
//	source AS (
//	    <src>
//	)
//	<final query>
type WithCTE struct {
	CTEs  []CTEDef
	Query SQLer
}

// SQL renders the complete WITH clause and final query.
func (w WithCTE) SQL() string {
	if len(w.CTEs) == 0 {
		return w.Query.SQL()
	}

	var sb strings.Builder
	sb.WriteString("WITH ")

	cteParts := make([]string, len(w.CTEs))
	for i, cte := range w.CTEs {
		cteParts[i] = cte.SQL()
	}
	sb.WriteString(strings.Join(cteParts, ",\n"))
	sb.WriteString("\n")
	sb.WriteString(w.Query.SQL())

	return sb.String()
}
