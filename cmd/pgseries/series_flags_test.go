package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgseries/pgseries"
)

func TestSeriesFlags_Build(t *testing.T) {
	tests := []struct {
		name     string
		flags    seriesFlags
		wantKind pgseries.Kind
	}{
		{
			name:     "int",
			flags:    seriesFlags{kind: "int", start: "0", stop: "9"},
			wantKind: pgseries.Int,
		},
		{
			name:     "bigint with step",
			flags:    seriesFlags{kind: "bigint", start: "0", stop: "100", step: "10"},
			wantKind: pgseries.BigInt,
		},
		{
			name:     "numeric with decimal span",
			flags:    seriesFlags{kind: "numeric", start: "0", stop: "10", step: "2.5", span: "2.5"},
			wantKind: pgseries.NumericRange,
		},
		{
			name:     "date with interval step",
			flags:    seriesFlags{kind: "date", start: "2024-01-01", stop: "2024-01-31", step: "1 day"},
			wantKind: pgseries.Date,
		},
		{
			name:     "timestamptz promoted to range",
			flags:    seriesFlags{kind: "timestamptz", start: "2024-01-01T00:00:00Z", stop: "2024-01-02T00:00:00Z", step: "6 hours", asRng: true},
			wantKind: pgseries.TimestamptzRange,
		},
		{
			name:     "range flag promotes int",
			flags:    seriesFlags{kind: "int", start: "0", stop: "9", asRng: true},
			wantKind: pgseries.IntRange,
		},
		{
			name:     "span promotes date",
			flags:    seriesFlags{kind: "date", start: "2024-01-01", stop: "2024-01-31", step: "1 week", span: "2"},
			wantKind: pgseries.DateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.flags.build()
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, s.OutputKind())
		})
	}
}

func TestSeriesFlags_BuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		flags   seriesFlags
		wantMsg string
	}{
		{
			name:    "unknown kind",
			flags:   seriesFlags{kind: "float", start: "0", stop: "9"},
			wantMsg: "unknown kind",
		},
		{
			name:    "non-integer start",
			flags:   seriesFlags{kind: "int", start: "abc", stop: "9"},
			wantMsg: "parsing --start",
		},
		{
			name:    "non-decimal step",
			flags:   seriesFlags{kind: "numeric", start: "0", stop: "9", step: "fast"},
			wantMsg: "parsing --step",
		},
		{
			name:    "bad date",
			flags:   seriesFlags{kind: "date", start: "January 1st", stop: "2024-01-31", step: "1 day"},
			wantMsg: "parsing --start",
		},
		{
			name:    "series validation surfaces",
			flags:   seriesFlags{kind: "int", start: "9", stop: "0"},
			wantMsg: "start must not exceed stop",
		},
		{
			name:    "missing interval step",
			flags:   seriesFlags{kind: "timestamptz", start: "2024-01-01", stop: "2024-01-02"},
			wantMsg: "require an interval step",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = parseTime("2024-03-15T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 12, 30, 0, 0, time.UTC), got)

	_, err = parseTime("yesterday")
	require.Error(t, err)
}
