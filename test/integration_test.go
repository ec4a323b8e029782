package test

import (
	"context"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgseries/pgseries"
	"github.com/pgseries/pgseries/seriespgx"
	"github.com/pgseries/pgseries/test/testutil"
)

func skipShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

func TestInts_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	got, err := seriespgx.Ints(ctx, conn, pgseries.Ints(1, 10))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, got)

	// Step skips values; stop is inclusive only when hit exactly
	got, err = seriespgx.Ints(ctx, conn, pgseries.Ints(1, 10, pgseries.Step(3)))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4, 7, 10}, got)

	// Single-element series
	got, err = seriespgx.Ints(ctx, conn, pgseries.Ints(5, 5))
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, got)
}

func TestBigInts_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	start := int64(9_000_000_000)
	got, err := seriespgx.Ints(ctx, conn, pgseries.BigInts(start, start+2))
	require.NoError(t, err)
	assert.Equal(t, []int64{start, start + 1, start + 2}, got)
}

func TestNumerics_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	s := pgseries.Numerics(
		decimal.RequireFromString("0.5"),
		decimal.RequireFromString("2.5"),
		pgseries.NumericStep(decimal.RequireFromString("0.5")),
	)
	got, err := seriespgx.Numerics(ctx, conn, s)
	require.NoError(t, err)

	want := []string{"0.5", "1", "1.5", "2", "2.5"}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.True(t, got[i].Equal(decimal.RequireFromString(w)), "index %d: got %s want %s", i, got[i], w)
	}
}

func TestNumerics_Precision(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	s := pgseries.Numerics(
		decimal.RequireFromString("0"),
		decimal.RequireFromString("1"),
		pgseries.NumericStep(decimal.RequireFromString("0.333333")),
		pgseries.Precision(10, 2),
	)
	got, err := seriespgx.Numerics(ctx, conn, s)
	require.NoError(t, err)

	// numeric(10, 2) rounds each term to two decimal places
	want := []string{"0", "0.33", "0.67", "1"}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.True(t, got[i].Equal(decimal.RequireFromString(w)), "index %d: got %s want %s", i, got[i], w)
	}
}

func TestDates_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	stop := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	got, err := seriespgx.Dates(ctx, conn, pgseries.Dates(start, stop, pgseries.IntervalStep("1 day")))
	require.NoError(t, err)
	require.Len(t, got, 31)
	assert.Equal(t, start, got[0].UTC())
	assert.Equal(t, stop, got[30].UTC())

	// Weekly step
	got, err = seriespgx.Dates(ctx, conn, pgseries.Dates(start, stop, pgseries.IntervalStep("1 week")))
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC), got[4].UTC())
}

func TestTimestamps_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	stop := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	got, err := seriespgx.Timestamps(ctx, conn, pgseries.Timestamps(start, stop, pgseries.IntervalStep("6 hours")))
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, want := range []time.Time{
		start,
		start.Add(6 * time.Hour),
		start.Add(12 * time.Hour),
		start.Add(18 * time.Hour),
		stop,
	} {
		assert.True(t, got[i].Equal(want), "index %d: got %s want %s", i, got[i], want)
	}
}

func TestIntRanges_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	s := pgseries.Ints(0, 10, pgseries.Step(2), pgseries.Span(2))
	got, err := seriespgx.IntRanges(ctx, conn, s)
	require.NoError(t, err)
	require.Len(t, got, 6)

	for i, r := range got {
		require.True(t, r.Valid)
		assert.Equal(t, int32(i*2), r.Lower.Int32)
		assert.Equal(t, int32(i*2+2), r.Upper.Int32)
		assert.Equal(t, pgtype.Inclusive, r.LowerType)
		assert.Equal(t, pgtype.Exclusive, r.UpperType)
	}
}

func TestBigIntRanges_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	s := pgseries.BigInts(0, 9, pgseries.Step(5), pgseries.AsRange())
	got, err := seriespgx.BigIntRanges(ctx, conn, s)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(0), got[0].Lower.Int64)
	assert.Equal(t, int64(5), got[0].Upper.Int64)
	assert.Equal(t, int64(5), got[1].Lower.Int64)
	assert.Equal(t, int64(10), got[1].Upper.Int64)
}

func TestNumericRanges_Bounds(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	s := pgseries.Numerics(
		decimal.RequireFromString("0"),
		decimal.RequireFromString("5"),
		pgseries.NumericStep(decimal.RequireFromString("2.5")),
		pgseries.AsRange(),
		pgseries.WithBounds(pgseries.BoundsIncInc),
	)
	got, err := seriespgx.NumericRanges(ctx, conn, s)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// numrange keeps [] bounds as given (no discrete canonicalization)
	assert.Equal(t, pgtype.Inclusive, got[0].LowerType)
	assert.Equal(t, pgtype.Inclusive, got[0].UpperType)
}

func TestDateRanges_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	stop := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	s := pgseries.Dates(start, stop, pgseries.IntervalStep("1 week"), pgseries.AsRange())
	got, err := seriespgx.DateRanges(ctx, conn, s)
	require.NoError(t, err)

	// Five series points produce four consecutive buckets
	require.Len(t, got, 4)
	assert.Equal(t, start, got[0].Lower.Time.UTC())
	assert.Equal(t, start.AddDate(0, 0, 7), got[0].Upper.Time.UTC())
	assert.Equal(t, start.AddDate(0, 0, 21), got[3].Lower.Time.UTC())
	assert.Equal(t, start.AddDate(0, 0, 28), got[3].Upper.Time.UTC())

	// Buckets tile without gaps
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1].Upper.Time, got[i].Lower.Time)
	}
}

func TestTimestamptzRanges_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	stop := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	s := pgseries.Timestamps(start, stop, pgseries.IntervalStep("8 hours"), pgseries.AsRange())
	got, err := seriespgx.TimestamptzRanges(ctx, conn, s)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Lower.Time.Equal(start))
	assert.True(t, got[2].Upper.Time.Equal(stop))
}

func TestWithID_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	got, err := seriespgx.CollectWithID[int64](ctx, conn, pgseries.Ints(10, 14, pgseries.WithID()))
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, row := range got {
		assert.Equal(t, int64(i+1), row.ID)
		assert.Equal(t, int64(10+i), row.Term)
	}
}

func TestCrossJoinValues_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	s := pgseries.Ints(1, 3, pgseries.CrossJoinValues([]int64{100, 200}))
	got, err := seriespgx.CollectProduct[int64, int64](ctx, conn, s)
	require.NoError(t, err)

	// Every term paired with every value
	require.Len(t, got, 6)
	counts := map[int64]int{}
	for _, row := range got {
		assert.Contains(t, []int64{1, 2, 3}, row.Term)
		counts[row.Value]++
	}
	assert.Equal(t, map[int64]int{100: 3, 200: 3}, counts)
}

func TestCrossJoinSubquery_Integration(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	_, err := conn.Exec(ctx, `CREATE TABLE accounts (id bigint PRIMARY KEY, active boolean NOT NULL)`)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, `INSERT INTO accounts VALUES (1, true), (2, false), (3, true)`)
	require.NoError(t, err)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	stop := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)

	accounts := sq.Select("id").From("accounts").Where(sq.Eq{"active": true})
	s := pgseries.Dates(start, stop,
		pgseries.IntervalStep("1 day"),
		pgseries.CrossJoin(accounts, "id"),
	)

	got, err := seriespgx.CollectProduct[time.Time, int64](ctx, conn, s)
	require.NoError(t, err)

	// 3 days x 2 active accounts
	require.Len(t, got, 6)
	perAccount := map[int64]int{}
	for _, row := range got {
		perAccount[row.Value]++
	}
	assert.Equal(t, map[int64]int{1: 3, 3: 3}, perAccount)
}

func TestSelect_Composition(t *testing.T) {
	skipShort(t)

	conn := testutil.Conn(t)
	ctx := context.Background()

	query, args, err := pgseries.Ints(1, 100).
		Select("series", "series.term").
		Where(sq.Gt{"series.term": 95}).
		OrderBy("series.term").
		ToSql()
	require.NoError(t, err)

	rows, err := conn.Query(ctx, query, args...)
	require.NoError(t, err)
	defer rows.Close()

	var got []int64
	for rows.Next() {
		var n int64
		require.NoError(t, rows.Scan(&n))
		got = append(got, n)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int64{96, 97, 98, 99, 100}, got)
}
