package pgseries

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// intervalUnits lists the interval unit names PostgreSQL accepts in an
// interval literal. Step strings for date and timestamptz series must use
// one of these.
var intervalUnits = map[string]struct{}{
	"century":      {},
	"centuries":    {},
	"day":          {},
	"days":         {},
	"decade":       {},
	"decades":      {},
	"hour":         {},
	"hours":        {},
	"microsecond":  {},
	"microseconds": {},
	"millennium":   {},
	"millennia":    {},
	"millenniums":  {},
	"millisecond":  {},
	"milliseconds": {},
	"minute":       {},
	"minutes":      {},
	"month":        {},
	"months":       {},
	"second":       {},
	"seconds":      {},
	"week":         {},
	"weeks":        {},
	"year":         {},
	"years":        {},
}

// validateInterval checks that s has the form "<quantity> <unit>", with a
// positive quantity and a recognized unit. The string itself is bound as a
// query parameter, so validation here is about catching mistakes early
// rather than about safety.
func validateInterval(s string) error {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return fmt.Errorf("%w: %q is not of the form \"<quantity> <unit>\"", ErrInvalidStep, s)
	}

	qty, err := decimal.NewFromString(fields[0])
	if err != nil {
		return fmt.Errorf("%w: %q has non-numeric quantity %q", ErrInvalidStep, s, fields[0])
	}
	if qty.Sign() <= 0 {
		return fmt.Errorf("%w: %q must have a positive quantity", ErrInvalidStep, s)
	}

	unit := strings.ToLower(fields[1])
	if _, ok := intervalUnits[unit]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidIntervalUnit, fields[1])
	}

	return nil
}
