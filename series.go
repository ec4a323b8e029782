package pgseries

import (
	"fmt"
	"reflect"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/pgseries/pgseries/internal/sqlgen"
)

// Series describes one generate_series query. Values are immutable after
// construction; invalid parameters are recorded and surfaced from Err,
// ToSql and SQL rather than panicking.
//
// Series implements squirrel's Sqlizer interface (ToSql with ?
// placeholders), so it can be embedded in larger squirrel queries. SQL
// renders $n placeholders for direct pgx execution.
type Series struct {
	kind Kind

	start any
	stop  any
	step  any
	span  any

	promote      bool
	includeID    bool
	bounds       Bounds
	digits       int
	scale        int
	precisionSet bool

	sub    sq.Sqlizer
	subCol string
	values any
	srcSet bool

	err error
}

// Option configures a Series during construction.
type Option func(*Series)

// Step sets an integer step. Valid for the int, bigint and numeric kinds;
// defaults to 1 when omitted.
func Step(n int64) Option {
	return func(s *Series) { s.step = n }
}

// NumericStep sets a decimal step for numeric series.
func NumericStep(d decimal.Decimal) Option {
	return func(s *Series) { s.step = d }
}

// IntervalStep sets the step for date and timestamptz series as a
// PostgreSQL interval string such as "1 day" or "3 weeks". Required for
// those kinds; there is no sensible default bucket width.
func IntervalStep(interval string) Option {
	return func(s *Series) { s.step = interval }
}

// Span promotes the series to its range kind and sets the width of each
// range. Only the int, bigint and numeric range constructors take a width;
// date and timestamptz ranges derive their buckets from the step.
func Span(n int64) Option {
	return func(s *Series) {
		s.span = n
		s.promote = true
	}
}

// NumericSpan promotes a numeric series to numrange with a decimal width.
func NumericSpan(d decimal.Decimal) Option {
	return func(s *Series) {
		s.span = d
		s.promote = true
	}
}

// AsRange promotes the series to its range kind without setting a span.
// Int, bigint and numeric ranges then default the span to the step.
func AsRange() Option {
	return func(s *Series) { s.promote = true }
}

// WithID adds a "row_number() over () AS id" column to the projection.
func WithID() Option {
	return func(s *Series) { s.includeID = true }
}

// WithBounds sets range bound inclusivity for the range kinds. Defaults
// to "[)".
func WithBounds(b Bounds) Option {
	return func(s *Series) { s.bounds = b }
}

// Precision casts the generated numeric terms to numeric(digits, scale).
func Precision(digits, scale int) Option {
	return func(s *Series) {
		s.digits = digits
		s.scale = scale
		s.precisionSet = true
	}
}

// CrossJoin adds a cartesian product between the series and a caller
// subquery of keys, producing one series row per key. keyColumn names the
// subquery column carried into the projection as "value"; it defaults to
// "id".
func CrossJoin(sub sq.Sqlizer, keyColumn string) Option {
	return func(s *Series) {
		s.sub = sub
		if keyColumn == "" {
			keyColumn = "id"
		}
		s.subCol = keyColumn
	}
}

// CrossJoinValues adds a cartesian product between the series and an
// in-memory slice. The slice travels as a single array parameter and is
// unnested server-side into a "value" column.
func CrossJoinValues(values any) Option {
	return func(s *Series) {
		s.values = values
		s.srcSet = true
	}
}

// Ints returns an int series from start to stop inclusive.
func Ints(start, stop int64, opts ...Option) *Series {
	return newSeries(Int, start, stop, opts)
}

// BigInts returns a bigint series from start to stop inclusive.
func BigInts(start, stop int64, opts ...Option) *Series {
	return newSeries(BigInt, start, stop, opts)
}

// Numerics returns a numeric series from start to stop inclusive.
func Numerics(start, stop decimal.Decimal, opts ...Option) *Series {
	return newSeries(Numeric, start, stop, opts)
}

// Dates returns a date series from start to stop inclusive. An
// IntervalStep is required.
func Dates(start, stop time.Time, opts ...Option) *Series {
	return newSeries(Date, start, stop, opts)
}

// Timestamps returns a timestamptz series from start to stop inclusive.
// An IntervalStep is required.
func Timestamps(start, stop time.Time, opts ...Option) *Series {
	return newSeries(Timestamptz, start, stop, opts)
}

func newSeries(kind Kind, start, stop any, opts []Option) *Series {
	s := &Series{
		kind:   kind,
		start:  start,
		stop:   stop,
		bounds: DefaultBounds,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.promote {
		s.kind = rangeOf(s.kind)
	}
	s.err = s.validate()
	return s
}

// Err returns the parameter validation error, if any. A Series with a
// non-nil Err renders no SQL. A zero-valued Series has no usable output
// kind and reports ErrUnsupportedKind.
func (s *Series) Err() error {
	if s.kind == KindUnset {
		return ErrUnsupportedKind
	}
	return s.err
}

// OutputKind returns the effective kind after range promotion.
func (s *Series) OutputKind() Kind {
	return s.kind
}

// ToSql renders the series query with ? placeholders, implementing
// squirrel.Sqlizer. The bind arguments cover start, stop, step, span and
// any cartesian product source, in placeholder order.
func (s *Series) ToSql() (string, []any, error) {
	if err := s.Err(); err != nil {
		return "", nil, err
	}
	return sqlgen.Build(s.params())
}

// SQL renders the series query with $n placeholders for direct pgx
// execution.
func (s *Series) SQL() (string, []any, error) {
	raw, args, err := s.ToSql()
	if err != nil {
		return "", nil, err
	}
	positional, err := sq.Dollar.ReplacePlaceholders(raw)
	if err != nil {
		return "", nil, fmt.Errorf("rebinding placeholders: %w", err)
	}
	return positional, args, nil
}

// Select returns a squirrel SelectBuilder reading from the series under
// the given alias. With no columns, "<alias>.term" is selected. The
// builder uses $n placeholders so it can be executed directly with pgx.
func (s *Series) Select(alias string, columns ...string) sq.SelectBuilder {
	if len(columns) == 0 {
		columns = []string{alias + ".term"}
	}
	return sq.Select(columns...).
		JoinClause(sq.ConcatExpr("FROM (", s, ") AS "+alias)).
		PlaceholderFormat(sq.Dollar)
}

// validate checks the parameter set against the kind and fills in the
// defaulted step and span. Mirrors the SQL constraints: PostgreSQL would
// reject or loop on most of these, so they are caught client-side.
func (s *Series) validate() error {
	if !s.bounds.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidBounds, s.bounds)
	}

	var err error
	switch s.kind {
	case Int, BigInt, IntRange, BigIntRange:
		err = s.validateInts()
	case Numeric, NumericRange:
		err = s.validateNumerics()
	case Date, Timestamptz, DateRange, TimestamptzRange:
		err = s.validateIntervals()
	default:
		return ErrUnsupportedKind
	}
	if err != nil {
		return err
	}

	if s.precisionSet {
		if s.kind != Numeric && s.kind != NumericRange {
			return fmt.Errorf("%w: only numeric series take a precision", ErrInvalidPrecision)
		}
		if s.digits <= 0 || s.scale < 0 || s.scale > s.digits {
			return fmt.Errorf("%w: numeric(%d,%d)", ErrInvalidPrecision, s.digits, s.scale)
		}
	}

	if s.sub != nil && s.srcSet {
		return ErrConflictingSource
	}
	if s.srcSet {
		v := reflect.ValueOf(s.values)
		if !v.IsValid() || v.Kind() != reflect.Slice || v.Len() == 0 {
			return fmt.Errorf("%w: cross-join values must be a non-empty slice", ErrEmptySource)
		}
	}

	return nil
}

func (s *Series) validateInts() error {
	start := s.start.(int64)
	stop := s.stop.(int64)
	if start > stop {
		return fmt.Errorf("%w: %d > %d", ErrInvalidRange, start, stop)
	}

	if s.step == nil {
		s.step = int64(1)
	}
	step, ok := s.step.(int64)
	if !ok {
		return fmt.Errorf("%w: %s series take an integer step, got %T", ErrInvalidStep, s.kind, s.step)
	}
	if step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidStep, step)
	}

	if s.kind == IntRange || s.kind == BigIntRange {
		if s.span == nil {
			s.span = step
		}
		span, ok := s.span.(int64)
		if !ok {
			return fmt.Errorf("%w: %s series take an integer span, got %T", ErrInvalidSpan, s.kind, s.span)
		}
		if span <= 0 {
			return fmt.Errorf("%w: span must be positive, got %d", ErrInvalidSpan, span)
		}
	}

	return nil
}

func (s *Series) validateNumerics() error {
	start := s.start.(decimal.Decimal)
	stop := s.stop.(decimal.Decimal)
	if start.GreaterThan(stop) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, stop)
	}

	if s.step == nil {
		s.step = decimal.NewFromInt(1)
	}
	step, err := toDecimal(s.step)
	if err != nil {
		return fmt.Errorf("%w: numeric series take a numeric step, got %T", ErrInvalidStep, s.step)
	}
	if step.Sign() <= 0 {
		return fmt.Errorf("%w: step must be positive, got %s", ErrInvalidStep, step)
	}
	s.step = step

	if s.kind == NumericRange {
		if s.span == nil {
			s.span = step
		}
		span, err := toDecimal(s.span)
		if err != nil {
			return fmt.Errorf("%w: numeric series take a numeric span, got %T", ErrInvalidSpan, s.span)
		}
		if span.Sign() <= 0 {
			return fmt.Errorf("%w: span must be positive, got %s", ErrInvalidSpan, span)
		}
		s.span = span
	}

	return nil
}

func (s *Series) validateIntervals() error {
	start := s.start.(time.Time)
	stop := s.stop.(time.Time)
	if start.After(stop) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, stop)
	}

	if s.step == nil {
		return fmt.Errorf("%w: %s series require an interval step", ErrInvalidStep, s.kind)
	}
	step, ok := s.step.(string)
	if !ok {
		return fmt.Errorf("%w: %s series take an interval step, got %T", ErrInvalidStep, s.kind, s.step)
	}
	// Span carries no width for the bucketed range kinds; the step defines
	// the buckets, so a span here is accepted and unused.
	return validateInterval(step)
}

// toDecimal widens int64 steps and spans for the numeric kinds.
func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case int64:
		return decimal.NewFromInt(n), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("not a numeric value: %T", v)
	}
}

// params maps the validated series onto the template builder's input.
// Decimal parameters are bound as strings under a ::numeric cast so the
// query works with any driver.
func (s *Series) params() sqlgen.Params {
	return sqlgen.Params{
		Kind:           builderKind(s.kind),
		Start:          bindValue(s.start),
		Stop:           bindValue(s.stop),
		Step:           bindValue(s.step),
		Span:           bindValue(s.span),
		IncludeID:      s.includeID,
		Bounds:         string(s.bounds),
		Digits:         s.digits,
		Scale:          s.scale,
		Subquery:       s.sub,
		SubqueryColumn: s.subCol,
		Values:         s.values,
	}
}

func bindValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.String()
	}
	return v
}

func builderKind(k Kind) sqlgen.Kind {
	switch k {
	case Int:
		return sqlgen.KindInt
	case BigInt:
		return sqlgen.KindBigInt
	case Numeric:
		return sqlgen.KindNumeric
	case Date:
		return sqlgen.KindDate
	case Timestamptz:
		return sqlgen.KindTimestamptz
	case IntRange:
		return sqlgen.KindIntRange
	case BigIntRange:
		return sqlgen.KindBigIntRange
	case NumericRange:
		return sqlgen.KindNumericRange
	case DateRange:
		return sqlgen.KindDateRange
	case TimestamptzRange:
		return sqlgen.KindTimestamptzRange
	default:
		return sqlgen.KindInt
	}
}
