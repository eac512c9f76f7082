package period

import (
	"testing"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestMonthRange_Seoul(t *testing.T) {
	seoul := mustLoc(t, "Asia/Seoul")

	start, end, err := MonthRange("2025-05", seoul)
	require.NoError(t, err)

	// KST midnight is 15:00 UTC of the previous day.
	assert.Equal(t, time.Date(2025, 4, 30, 15, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 5, 31, 15, 0, 0, 0, time.UTC), end)
}

func TestMonthRange_UTC(t *testing.T) {
	start, end, err := MonthRange("2024-02", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	// Leap year: range ends on March 1st.
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthRange_RejectsBadFormats(t *testing.T) {
	for _, month := range []string{"2025-5", "2025", "25-05", "2025/05", "2025-05-01", ""} {
		_, _, err := MonthRange(month, time.UTC)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "month %q should be rejected", month)
	}
}

func TestMonthRange_RejectsImpossibleMonth(t *testing.T) {
	_, _, err := MonthRange("2025-13", time.UTC)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFormat(t *testing.T) {
	seoul := mustLoc(t, "Asia/Seoul")

	// 2025-05-31 23:30 KST is 2025-05-31 14:30 UTC; stays in May locally.
	ts := time.Date(2025, 5, 31, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-05", Format(ts, seoul))

	// 15:00 UTC has crossed into June 1st KST.
	ts = time.Date(2025, 5, 31, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06", Format(ts, seoul))
}
