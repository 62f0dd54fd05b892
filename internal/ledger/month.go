package ledger

import (
	"time"

	"aperture/internal/core"
)

const monthLayout = "2006-01"

// MonthKey returns the canonical "YYYY-MM" key for a point in time.
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// monthStart parses a month key into the first day of that month.
// Callers are responsible for handing in canonical keys; a malformed
// key falls back to the zero time.
func monthStart(month string) time.Time {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ShiftMonth moves a month key by delta months.
func ShiftMonth(month string, delta int) string {
	start := monthStart(month)
	if start.IsZero() {
		return month
	}
	return start.AddDate(0, delta, 0).Format(monthLayout)
}

// DefaultSelectedDate is the cursor position after the displayed month
// changes: today when the month is the current wall-clock month,
// otherwise the 1st.
func DefaultSelectedDate(month string, today time.Time) core.Date {
	if MonthKey(today) == month {
		return core.NewDate(today)
	}
	return core.Date(month + "-01")
}

// MonthLabel renders a month key for the header, e.g. "2026年03月".
func MonthLabel(month string) string {
	start := monthStart(month)
	if start.IsZero() {
		return month
	}
	return start.Format("2006年01月")
}
