// Package pgseries exposes PostgreSQL's generate_series set-returning
// function as composable, parameterized query sources.
//
// # What it does
//
// A Series describes a sequence of integers, numerics, dates or timestamps
// (or range buckets over them) and renders the SQL that makes PostgreSQL
// produce the rows. No sequence generation happens in Go: the library
// validates the parameters and builds the query text; PostgreSQL does the
// rest.
//
//	s := pgseries.Ints(0, 9)
//	sql, args, err := s.SQL()
//	// SELECT generate_series($1, $2, $3) AS term
//
// # Output kinds
//
// Nine SQL shapes are supported: int, bigint, numeric, date and timestamptz
// series, plus int4range, int8range, numrange, daterange and tstzrange
// bucketed variants. The kind follows from the constructor used (Ints,
// BigInts, Numerics, Dates, Timestamps); AsRange or Span promotes a series
// to its range counterpart.
//
//	buckets := pgseries.Dates(start, stop, pgseries.IntervalStep("1 week"), pgseries.AsRange())
//	// SELECT daterange(lag(a.n) OVER (), a.n, '[)') AS term FROM (...) AS a OFFSET 1
//
// # Composing with other queries
//
// Series implements squirrel's Sqlizer interface, so a series can be
// spliced into a larger query wherever a row source is expected. The
// Select helper returns a squirrel SelectBuilder over the series:
//
//	q := s.Select("series", "series.term").
//	    Where(sq.Gt{"series.term": 4})
//
// A cartesian product against caller rows (the classic "one row per day per
// account" shape) is requested with CrossJoin (a subquery of keys) or
// CrossJoinValues (an in-memory slice, shipped as an array parameter and
// unnested server-side):
//
//	accounts := sq.Select("id").From("accounts").Where(sq.Eq{"active": true})
//	s := pgseries.Dates(start, stop,
//	    pgseries.IntervalStep("1 day"),
//	    pgseries.CrossJoin(accounts, "id"))
//
// # Execution
//
// The seriespgx subpackage collects series rows through pgx. SQL returns
// $n placeholders ready for pgx; ToSql returns ? placeholders for squirrel
// composition.
package pgseries

// Kind identifies the SQL shape of the generated series.
type Kind int

// Supported output kinds. The five plain kinds produce one value per row
// in a column named "term"; the five range kinds produce a range value per
// row instead.
const (
	KindUnset Kind = iota
	Int
	BigInt
	Numeric
	Date
	Timestamptz
	IntRange
	BigIntRange
	NumericRange
	DateRange
	TimestamptzRange
)

// String returns the kind's name as used in error messages and the CLI.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case BigInt:
		return "bigint"
	case Numeric:
		return "numeric"
	case Date:
		return "date"
	case Timestamptz:
		return "timestamptz"
	case IntRange:
		return "int4range"
	case BigIntRange:
		return "int8range"
	case NumericRange:
		return "numrange"
	case DateRange:
		return "daterange"
	case TimestamptzRange:
		return "tstzrange"
	default:
		return "unset"
	}
}

// IsRange reports whether the kind produces range values.
func (k Kind) IsRange() bool {
	switch k {
	case IntRange, BigIntRange, NumericRange, DateRange, TimestamptzRange:
		return true
	default:
		return false
	}
}

// rangeOf maps a plain kind to its range counterpart. Range kinds map to
// themselves.
func rangeOf(k Kind) Kind {
	switch k {
	case Int:
		return IntRange
	case BigInt:
		return BigIntRange
	case Numeric:
		return NumericRange
	case Date:
		return DateRange
	case Timestamptz:
		return TimestamptzRange
	default:
		return k
	}
}

// Bounds selects range bound inclusivity for the range kinds, using
// PostgreSQL's flag syntax.
type Bounds string

// Valid bounds values. DefaultBounds matches PostgreSQL's canonical form
// for discrete ranges.
const (
	BoundsIncInc Bounds = "[]"
	BoundsIncExc Bounds = "[)"
	BoundsExcInc Bounds = "(]"
	BoundsExcExc Bounds = "()"

	DefaultBounds = BoundsIncExc
)

// valid reports whether b is one of the four PostgreSQL bound forms.
func (b Bounds) valid() bool {
	switch b {
	case BoundsIncInc, BoundsIncExc, BoundsExcInc, BoundsExcExc:
		return true
	default:
		return false
	}
}
