package pgseries

import "errors"

// Sentinel errors for invalid series parameters. Construction never
// panics: a Series built from bad parameters carries the error and
// surfaces it from Err, ToSql and SQL. All parameter errors wrap one of
// these sentinels, so callers can branch with errors.Is or the Is*Err
// helpers.
var (
	// ErrUnsupportedKind is returned when a series has no usable output
	// kind, e.g. a zero-valued Series or an impossible promotion.
	ErrUnsupportedKind = errors.New("pgseries: unsupported output kind")

	// ErrInvalidRange is returned when start is greater than stop.
	ErrInvalidRange = errors.New("pgseries: start must not exceed stop")

	// ErrInvalidStep is returned when the step is missing, zero, negative,
	// or of the wrong type for the series kind (date and timestamptz
	// series take an interval string, the numeric kinds take a number).
	ErrInvalidStep = errors.New("pgseries: invalid step")

	// ErrInvalidIntervalUnit is returned when an interval step names a
	// unit PostgreSQL does not understand.
	ErrInvalidIntervalUnit = errors.New("pgseries: invalid interval unit")

	// ErrInvalidSpan is returned when a span is given for a kind that
	// cannot use one, or the span type does not match the series kind.
	ErrInvalidSpan = errors.New("pgseries: invalid span")

	// ErrInvalidBounds is returned when the bounds flags are not one of
	// "[]", "[)", "(]" or "()".
	ErrInvalidBounds = errors.New("pgseries: invalid range bounds")

	// ErrInvalidPrecision is returned when Precision is used on a
	// non-numeric series or with out-of-order digits and scale.
	ErrInvalidPrecision = errors.New("pgseries: invalid numeric precision")

	// ErrConflictingSource is returned when both a cross-join subquery and
	// cross-join values are supplied. A series takes at most one source.
	ErrConflictingSource = errors.New("pgseries: conflicting cartesian product sources")

	// ErrEmptySource is returned when CrossJoinValues is given a nil,
	// empty or non-slice value.
	ErrEmptySource = errors.New("pgseries: empty cartesian product source")
)

// IsUnsupportedKindErr returns true if err is or wraps ErrUnsupportedKind.
func IsUnsupportedKindErr(err error) bool {
	return errors.Is(err, ErrUnsupportedKind)
}

// IsInvalidRangeErr returns true if err is or wraps ErrInvalidRange.
func IsInvalidRangeErr(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}

// IsInvalidStepErr returns true if err is or wraps ErrInvalidStep.
func IsInvalidStepErr(err error) bool {
	return errors.Is(err, ErrInvalidStep)
}

// IsInvalidIntervalUnitErr returns true if err is or wraps ErrInvalidIntervalUnit.
func IsInvalidIntervalUnitErr(err error) bool {
	return errors.Is(err, ErrInvalidIntervalUnit)
}

// IsInvalidSpanErr returns true if err is or wraps ErrInvalidSpan.
func IsInvalidSpanErr(err error) bool {
	return errors.Is(err, ErrInvalidSpan)
}

// IsInvalidBoundsErr returns true if err is or wraps ErrInvalidBounds.
func IsInvalidBoundsErr(err error) bool {
	return errors.Is(err, ErrInvalidBounds)
}

// IsInvalidPrecisionErr returns true if err is or wraps ErrInvalidPrecision.
func IsInvalidPrecisionErr(err error) bool {
	return errors.Is(err, ErrInvalidPrecision)
}

// IsConflictingSourceErr returns true if err is or wraps ErrConflictingSource.
func IsConflictingSourceErr(err error) bool {
	return errors.Is(err, ErrConflictingSource)
}

// IsEmptySourceErr returns true if err is or wraps ErrEmptySource.
func IsEmptySourceErr(err error) bool {
	return errors.Is(err, ErrEmptySource)
}
