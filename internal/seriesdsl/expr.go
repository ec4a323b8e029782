// Package seriesdsl provides a small typed SQL DSL for assembling
// generate_series queries. It models the handful of constructs the series
// templates need rather than generic SQL syntax.
package seriesdsl

import (
	"fmt"
	"strings"
)

// Expr is the interface that all SQL expression types implement.
type Expr interface {
	SQL() string
}

// Raw is an escape hatch for arbitrary SQL expressions.
type Raw string

// SQL renders the raw SQL as-is.
func (r Raw) SQL() string {
	return string(r)
}

// Lit represents a literal string value (auto-quoted with single quotes).
type Lit string

// SQL renders the literal with single quotes.
func (l Lit) SQL() string {
	// Escape single quotes by doubling them
	escaped := strings.ReplaceAll(string(l), "'", "''")
	return "'" + escaped + "'"
}

// Int represents an integer literal.
type Int int

// SQL renders the integer.
func (i Int) SQL() string {
	return fmt.Sprintf("%d", i)
}

// Col represents a table column reference (e.g. series.term).
type Col struct {
	Table  string
	Column string
}

// SQL renders the column reference.
func (c Col) SQL() string {
	if c.Table == "" {
		return c.Column
	}
	return c.Table + "." + c.Column
}

// Bind represents a query placeholder. It renders "?"; the builder keeps
// the matching argument list in placeholder order.
type Bind struct{}

// SQL renders the placeholder.
func (Bind) SQL() string {
	return "?"
}

// TypedBind represents a placeholder with a server-side cast, e.g.
// "?::date". Server-side binding needs the cast where a SQL literal would
// carry a type prefix.
type TypedBind struct {
	Type string
}

// SQL renders the cast placeholder.
func (t TypedBind) SQL() string {
	return "?::" + t.Type
}

// Cast wraps an expression with a cast (expr::type).
type Cast struct {
	Expr Expr
	Type string
}

// SQL renders the cast.
func (c Cast) SQL() string {
	return c.Expr.SQL() + "::" + c.Type
}

// Func represents a SQL function call.
type Func struct {
	Name string
	Args []Expr
}

// SQL renders the function call.
func (f Func) SQL() string {
	args := make([]string, len(f.Args))
	for i, arg := range f.Args {
		args[i] = arg.SQL()
	}
	return f.Name + "(" + strings.Join(args, ", ") + ")"
}

// Alias wraps an expression with an alias (expr AS alias).
type Alias struct {
	Expr Expr
	Name string
}

// SQL renders the aliased expression.
func (a Alias) SQL() string {
	return a.Expr.SQL() + " AS " + a.Name
}

// Add represents addition (+).
type Add struct {
	Left  Expr
	Right Expr
}

// SQL renders the addition.
func (a Add) SQL() string {
	return a.Left.SQL() + " + " + a.Right.SQL()
}

// RowNumber represents the bare row_number window call used for synthetic
// id columns.
type RowNumber struct{}

// SQL renders the window call.
func (RowNumber) SQL() string {
	return "row_number() OVER ()"
}

// Lag represents lag(expr) over the whole result set, used to pair each
// series element with its predecessor when bucketing into ranges.
type Lag struct {
	Expr Expr
}

// SQL renders the window call.
func (l Lag) SQL() string {
	return "lag(" + l.Expr.SQL() + ") OVER ()"
}

// SelectAs creates an aliased expression (expr AS alias).
// Shorthand for Alias{Expr: expr, Name: alias}.
func SelectAs(expr Expr, alias string) Alias {
	return Alias{Expr: expr, Name: alias}
}
