// Package period interprets calendar-month parameters for reporting queries.
//
// A month is always given as "YYYY-MM" and always interpreted in the business
// timezone the shop operates in, then converted to a half-open UTC range for
// SQL filtering. Every monthly aggregation goes through this package so the
// boundary policy cannot drift between queries.
package period

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
)

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// MonthRange parses a strict "YYYY-MM" string and returns the UTC instants
// [start, end) covering that calendar month in loc. Formats like "2025-5"
// are rejected, not coerced.
func MonthRange(month string, loc *time.Location) (start, end time.Time, err error) {
	if !monthRe.MatchString(month) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be YYYY-MM, got %q", apperrors.ErrValidation, month)
	}

	t, perr := time.ParseInLocation("2006-01", month, loc)
	if perr != nil {
		// Matches the regex but is not a real month, e.g. "2025-13".
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid month %q", apperrors.ErrValidation, month)
	}

	start = t.UTC()
	end = t.AddDate(0, 1, 0).UTC()
	return start, end, nil
}

// IsValidFormat reports whether month is shaped like "YYYY-MM". It does not
// check that the month number is a real month; MonthRange does.
func IsValidFormat(month string) bool {
	return monthRe.MatchString(month)
}

// Format renders t as "YYYY-MM" in loc.
func Format(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01")
}
