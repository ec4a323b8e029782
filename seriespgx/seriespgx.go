// Package seriespgx executes pgseries queries through pgx and collects the
// rows into Go values. The helpers cover the common projections: a bare
// term column, an id/term pair, and the term/value pair produced by
// cartesian product series.
package seriespgx

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pgseries/pgseries"
)

// Querier executes queries against PostgreSQL.
// Implemented by *pgx.Conn, pgx.Tx and *pgxpool.Pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Collect runs the series and scans the single term column into T.
// Use CollectWithID for series built with WithID and CollectProduct for
// series with a cartesian product source.
func Collect[T any](ctx context.Context, q Querier, s *pgseries.Series) ([]T, error) {
	rows, err := querySeries(ctx, q, s)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[T])
}

// IDRow is one row of a series built with WithID.
type IDRow[T any] struct {
	ID   int64 `db:"id"`
	Term T     `db:"term"`
}

// CollectWithID runs the series and scans id/term rows.
func CollectWithID[T any](ctx context.Context, q Querier, s *pgseries.Series) ([]IDRow[T], error) {
	rows, err := querySeries(ctx, q, s)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[IDRow[T]])
}

// ProductRow is one row of a cartesian product series: a term paired with
// one value from the cross-join source.
type ProductRow[T, V any] struct {
	Term  T `db:"term"`
	Value V `db:"value"`
}

// CollectProduct runs a cartesian product series and scans term/value rows.
func CollectProduct[T, V any](ctx context.Context, q Querier, s *pgseries.Series) ([]ProductRow[T, V], error) {
	rows, err := querySeries(ctx, q, s)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[ProductRow[T, V]])
}

// Ints collects an integer series.
func Ints(ctx context.Context, q Querier, s *pgseries.Series) ([]int64, error) {
	return Collect[int64](ctx, q, s)
}

// Dates collects a date series.
func Dates(ctx context.Context, q Querier, s *pgseries.Series) ([]time.Time, error) {
	return Collect[time.Time](ctx, q, s)
}

// Timestamps collects a timestamptz series.
func Timestamps(ctx context.Context, q Querier, s *pgseries.Series) ([]time.Time, error) {
	return Collect[time.Time](ctx, q, s)
}

// Numerics collects a numeric series as decimals.
func Numerics(ctx context.Context, q Querier, s *pgseries.Series) ([]decimal.Decimal, error) {
	nums, err := Collect[pgtype.Numeric](ctx, q, s)
	if err != nil {
		return nil, err
	}
	out := make([]decimal.Decimal, len(nums))
	for i, n := range nums {
		d, err := numericToDecimal(n)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// IntRanges collects an int4range series.
func IntRanges(ctx context.Context, q Querier, s *pgseries.Series) ([]pgtype.Range[pgtype.Int4], error) {
	return Collect[pgtype.Range[pgtype.Int4]](ctx, q, s)
}

// BigIntRanges collects an int8range series.
func BigIntRanges(ctx context.Context, q Querier, s *pgseries.Series) ([]pgtype.Range[pgtype.Int8], error) {
	return Collect[pgtype.Range[pgtype.Int8]](ctx, q, s)
}

// NumericRanges collects a numrange series.
func NumericRanges(ctx context.Context, q Querier, s *pgseries.Series) ([]pgtype.Range[pgtype.Numeric], error) {
	return Collect[pgtype.Range[pgtype.Numeric]](ctx, q, s)
}

// DateRanges collects a daterange series.
func DateRanges(ctx context.Context, q Querier, s *pgseries.Series) ([]pgtype.Range[pgtype.Date], error) {
	return Collect[pgtype.Range[pgtype.Date]](ctx, q, s)
}

// TimestamptzRanges collects a tstzrange series.
func TimestamptzRanges(ctx context.Context, q Querier, s *pgseries.Series) ([]pgtype.Range[pgtype.Timestamptz], error) {
	return Collect[pgtype.Range[pgtype.Timestamptz]](ctx, q, s)
}

func querySeries(ctx context.Context, q Querier, s *pgseries.Series) (pgx.Rows, error) {
	sql, args, err := s.SQL()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying series: %w", err)
	}
	return rows, nil
}

// numericToDecimal converts a scanned pgtype.Numeric to a decimal.
func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Decimal{}, fmt.Errorf("series produced a non-finite numeric value")
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}
