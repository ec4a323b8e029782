// Package sqlgen assembles the SQL for each series output kind. Given a
// validated parameter set it produces the query text plus the bind
// arguments in placeholder order. The templates mirror the canonical
// generate_series idioms: plain kinds select the function directly, the
// discrete range kinds construct ranges of a fixed span, and the date and
// timestamptz range kinds bucket consecutive series elements with a lag
// window.
package sqlgen

import (
	"fmt"

	dsl "github.com/pgseries/pgseries/internal/seriesdsl"
)

// Kind identifies a SQL template family.
type Kind int

// Template kinds. Int and BigInt share the untyped template (PostgreSQL
// infers the integer width from the arguments); their range counterparts
// differ in the range constructor.
const (
	KindInt Kind = iota
	KindBigInt
	KindNumeric
	KindDate
	KindTimestamptz
	KindIntRange
	KindBigIntRange
	KindNumericRange
	KindDateRange
	KindTimestamptzRange
)

// Sqlizer renders a subquery with ? placeholders. Satisfied by any
// squirrel builder or Sqlizer value.
type Sqlizer interface {
	ToSql() (string, []any, error)
}

// Params is the validated input for one series query. Start, Stop, Step
// and Span are bind values typed for the kind (int64, string for decimals
// and intervals, time.Time for dates and timestamps).
type Params struct {
	Kind  Kind
	Start any
	Stop  any
	Step  any
	Span  any

	IncludeID bool
	Bounds    string

	// Digits and Scale, when non-zero, cast numeric terms to
	// numeric(Digits, Scale).
	Digits int
	Scale  int

	// At most one cartesian product source.
	Subquery       Sqlizer
	SubqueryColumn string
	Values         any
}

// Build renders the complete series query with ? placeholders and the
// matching argument list.
func Build(p Params) (string, []any, error) {
	query, args := baseQuery(p)
	if p.IncludeID {
		query = withRowNumber(query)
	}

	switch {
	case p.Subquery != nil:
		subSQL, subArgs, err := p.Subquery.ToSql()
		if err != nil {
			return "", nil, fmt.Errorf("rendering cross-join subquery: %w", err)
		}
		src := dsl.IndentLines(subSQL, "")
		column := dsl.Ident(p.SubqueryColumn)
		return crossProduct(query, src, dsl.Col{Table: "source", Column: column}, p.IncludeID), append(args, subArgs...), nil

	case p.Values != nil:
		src := dsl.SelectStmt{
			Columns: []dsl.Expr{dsl.SelectAs(dsl.Func{Name: "unnest", Args: []dsl.Expr{dsl.Bind{}}}, "value")},
		}.SQL()
		return crossProduct(query, src, dsl.Col{Table: "source", Column: "value"}, p.IncludeID), append(args, p.Values), nil
	}

	return query, args, nil
}

// baseQuery renders the kind's template without the id column or any
// cartesian product wrapping. Returns the SQL and bind args in order.
func baseQuery(p Params) (string, []any) {
	switch p.Kind {
	case KindNumeric:
		var term dsl.Expr = seriesCall("numeric")
		if p.Digits > 0 {
			term = dsl.Cast{Expr: term, Type: fmt.Sprintf("numeric(%d, %d)", p.Digits, p.Scale)}
		}
		return dsl.SelectStmt{
			Columns: []dsl.Expr{dsl.SelectAs(term, "term")},
		}.SQL(), []any{p.Start, p.Stop, p.Step}

	case KindDate:
		return dsl.SelectStmt{
			Columns: []dsl.Expr{dsl.SelectAs(dsl.Cast{Expr: intervalSeriesCall("date"), Type: "date"}, "term")},
		}.SQL(), []any{p.Start, p.Stop, p.Step}

	case KindTimestamptz:
		return dsl.SelectStmt{
			Columns: []dsl.Expr{dsl.SelectAs(dsl.Cast{Expr: intervalSeriesCall("timestamptz"), Type: "timestamptz"}, "term")},
		}.SQL(), []any{p.Start, p.Stop, p.Step}

	case KindIntRange, KindBigIntRange:
		// Integer params arrive as int8; the series elements are cast so the
		// range constructor resolves against exact argument types.
		ctor, ctype := "int4range", "int4"
		if p.Kind == KindBigIntRange {
			ctor, ctype = "int8range", "int8"
		}
		return spanRangeQuery(ctor, dsl.TypedBind{Type: ctype}, seriesCall(ctype), p.Bounds),
			[]any{p.Span, p.Start, p.Stop, p.Step}

	case KindNumericRange:
		return spanRangeQuery("numrange", dsl.TypedBind{Type: "numeric"}, seriesCall("numeric"), p.Bounds),
			[]any{p.Span, p.Start, p.Stop, p.Step}

	case KindDateRange:
		// The series is materialized in a subquery so the date cast applies
		// before the lag pairing. OFFSET 1 drops the first row, whose lag
		// lower bound would be NULL (an open-ended range).
		inner := dsl.SelectStmt{
			Columns: []dsl.Expr{dsl.SelectAs(dsl.Cast{Expr: intervalSeriesCall("date"), Type: "date"}, "n")},
		}
		elem := dsl.Col{Table: "a", Column: "n"}
		return dsl.SelectStmt{
			Columns: []dsl.Expr{dsl.SelectAs(rangeCtor("daterange", dsl.Lag{Expr: elem}, elem, p.Bounds), "term")},
			From:    dsl.Subquery{Query: inner, Alias: "a"},
			Offset:  1,
		}.SQL(), []any{p.Start, p.Stop, p.Step}

	case KindTimestamptzRange:
		elem := dsl.Raw("a")
		return dsl.SelectStmt{
			Columns: []dsl.Expr{dsl.SelectAs(rangeCtor("tstzrange", dsl.Lag{Expr: elem}, elem, p.Bounds), "term")},
			From:    dsl.FuncTable{Call: intervalSeriesCall("timestamptz"), Alias: "a"},
			Offset:  1,
		}.SQL(), []any{p.Start, p.Stop, p.Step}

	default: // KindInt, KindBigInt
		return dsl.SelectStmt{
			Columns: []dsl.Expr{dsl.SelectAs(seriesCall(""), "term")},
		}.SQL(), []any{p.Start, p.Stop, p.Step}
	}
}

// seriesCall builds generate_series(?, ?, ?), casting every argument when
// castType is non-empty. Decimal parameters are bound as text, so the
// numeric kinds cast server-side.
func seriesCall(castType string) dsl.Func {
	bind := func() dsl.Expr {
		if castType == "" {
			return dsl.Bind{}
		}
		return dsl.TypedBind{Type: castType}
	}
	return dsl.Func{Name: "generate_series", Args: []dsl.Expr{bind(), bind(), bind()}}
}

// intervalSeriesCall builds generate_series for the date and timestamptz
// kinds: typed start and stop with an interval step.
func intervalSeriesCall(castType string) dsl.Func {
	return dsl.Func{Name: "generate_series", Args: []dsl.Expr{
		dsl.TypedBind{Type: castType},
		dsl.TypedBind{Type: castType},
		dsl.TypedBind{Type: "interval"},
	}}
}

// rangeCtor builds a range constructor call with explicit bounds flags.
// Bounds are validated against a fixed whitelist before they get here, so
// inlining the literal is safe.
func rangeCtor(name string, lower, upper dsl.Expr, bounds string) dsl.Func {
	return dsl.Func{Name: name, Args: []dsl.Expr{lower, upper, dsl.Lit(bounds)}}
}

// spanRangeQuery renders the fixed-span range template:
// SELECT ctor(a, a + span, bounds) AS term FROM generate_series(...) AS a.
// The span placeholder precedes the series placeholders, so callers bind
// span first.
func spanRangeQuery(ctor string, span dsl.Expr, call dsl.Func, bounds string) string {
	term := rangeCtor(ctor, dsl.Raw("a"), dsl.Add{Left: dsl.Raw("a"), Right: span}, bounds)
	return dsl.SelectStmt{
		Columns: []dsl.Expr{dsl.SelectAs(term, "term")},
		From:    dsl.FuncTable{Call: call, Alias: "a"},
	}.SQL()
}

// withRowNumber wraps a series query with a synthetic id column.
func withRowNumber(query string) string {
	return dsl.SelectStmt{
		Columns: []dsl.Expr{
			dsl.SelectAs(dsl.RowNumber{}, "id"),
			dsl.Col{Column: "term"},
		},
		From: dsl.Subquery{Query: dsl.Raw(query), Alias: "seriesquery"},
	}.SQL()
}

// crossProduct wraps the series and a source of values in CTEs and selects
// their cartesian product. The source column lands in the projection as
// "value"; the synthetic id column is carried through when present.
func crossProduct(series, source string, valueCol dsl.Col, includeID bool) string {
	final := dsl.Raw(dsl.Sqlf(`
		SELECT %s%s, %s
		FROM series, source`,
		dsl.Optf(includeID, "series.id, "),
		dsl.Col{Table: "series", Column: "term"}.SQL(),
		dsl.SelectAs(valueCol, "value").SQL(),
	))
	return dsl.WithCTE{
		CTEs: []dsl.CTEDef{
			{Name: "series", Query: dsl.Raw(series)},
			{Name: "source", Query: dsl.Raw(source)},
		},
		Query: final,
	}.SQL()
}
