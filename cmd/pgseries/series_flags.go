package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pgseries/pgseries"
)

const (
	dateLayout = "2006-01-02"
)

// seriesFlags holds the flag values shared by the sql and run commands.
// Start, stop, step and span arrive as strings and are parsed according
// to the kind.
type seriesFlags struct {
	kind   string
	start  string
	stop   string
	step   string
	span   string
	asRng  bool
	withID bool
	bounds string
	digits int
	scale  int
}

// register attaches the series parameter flags to cmd.
func (f *seriesFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", "int", "series kind: int, bigint, numeric, date, timestamptz")
	cmd.Flags().StringVar(&f.start, "start", "", "first value of the series (inclusive)")
	cmd.Flags().StringVar(&f.stop, "stop", "", "last value of the series (inclusive)")
	cmd.Flags().StringVar(&f.step, "step", "", "step between values; an interval like \"1 day\" for date and timestamptz kinds")
	cmd.Flags().StringVar(&f.span, "span", "", "range width; promotes the series to its range kind")
	cmd.Flags().BoolVar(&f.asRng, "range", false, "produce range values instead of plain values")
	cmd.Flags().BoolVar(&f.withID, "id", false, "add a row_number() id column")
	cmd.Flags().StringVar(&f.bounds, "bounds", "", "range bound flags: [], [), (] or ()")
	cmd.Flags().IntVar(&f.digits, "digits", 0, "numeric precision digits (numeric kinds only)")
	cmd.Flags().IntVar(&f.scale, "scale", 0, "numeric precision scale (numeric kinds only)")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("stop")
}

// build parses the flag values into a Series. Parse errors and series
// parameter errors both surface as ParamError.
func (f *seriesFlags) build() (*pgseries.Series, error) {
	opts := f.commonOptions()

	var s *pgseries.Series
	switch f.kind {
	case "int", "bigint":
		start, err := strconv.ParseInt(f.start, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing --start: %w", err)
		}
		stop, err := strconv.ParseInt(f.stop, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing --stop: %w", err)
		}
		if f.step != "" {
			step, err := strconv.ParseInt(f.step, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing --step: %w", err)
			}
			opts = append(opts, pgseries.Step(step))
		}
		if f.span != "" {
			span, err := strconv.ParseInt(f.span, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing --span: %w", err)
			}
			opts = append(opts, pgseries.Span(span))
		}
		if f.kind == "int" {
			s = pgseries.Ints(start, stop, opts...)
		} else {
			s = pgseries.BigInts(start, stop, opts...)
		}

	case "numeric":
		start, err := decimal.NewFromString(f.start)
		if err != nil {
			return nil, fmt.Errorf("parsing --start: %w", err)
		}
		stop, err := decimal.NewFromString(f.stop)
		if err != nil {
			return nil, fmt.Errorf("parsing --stop: %w", err)
		}
		if f.step != "" {
			step, err := decimal.NewFromString(f.step)
			if err != nil {
				return nil, fmt.Errorf("parsing --step: %w", err)
			}
			opts = append(opts, pgseries.NumericStep(step))
		}
		if f.span != "" {
			span, err := decimal.NewFromString(f.span)
			if err != nil {
				return nil, fmt.Errorf("parsing --span: %w", err)
			}
			opts = append(opts, pgseries.NumericSpan(span))
		}
		s = pgseries.Numerics(start, stop, opts...)

	case "date", "timestamptz":
		start, err := parseTime(f.start)
		if err != nil {
			return nil, fmt.Errorf("parsing --start: %w", err)
		}
		stop, err := parseTime(f.stop)
		if err != nil {
			return nil, fmt.Errorf("parsing --stop: %w", err)
		}
		if f.step != "" {
			opts = append(opts, pgseries.IntervalStep(f.step))
		}
		// Date and timestamptz ranges take their buckets from the step, so a
		// span here only promotes the kind.
		if f.span != "" {
			opts = append(opts, pgseries.AsRange())
		}
		if f.kind == "date" {
			s = pgseries.Dates(start, stop, opts...)
		} else {
			s = pgseries.Timestamps(start, stop, opts...)
		}

	default:
		return nil, fmt.Errorf("unknown kind %q (want int, bigint, numeric, date or timestamptz)", f.kind)
	}

	if err := s.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// commonOptions collects the kind-independent options.
func (f *seriesFlags) commonOptions() []pgseries.Option {
	var opts []pgseries.Option
	if f.asRng {
		opts = append(opts, pgseries.AsRange())
	}
	if f.withID {
		opts = append(opts, pgseries.WithID())
	}
	if f.bounds != "" {
		opts = append(opts, pgseries.WithBounds(pgseries.Bounds(f.bounds)))
	}
	if f.digits != 0 || f.scale != 0 {
		opts = append(opts, pgseries.Precision(f.digits, f.scale))
	}
	return opts
}

// parseTime accepts a bare date or an RFC 3339 timestamp.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
