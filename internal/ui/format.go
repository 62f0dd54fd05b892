package ui

import (
	"strings"

	"github.com/shopspring/decimal"

	"aperture/internal/core"
)

var weekdayNames = []string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// formatMoney renders an amount with thousand separators, dropping a
// zero fraction: 50000 -> "50,000", 12.5 -> "12.5".
func formatMoney(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// weekdayName returns the Chinese weekday for a date, empty when the
// date does not parse.
func weekdayName(d core.Date) string {
	t, err := d.Time()
	if err != nil {
		return ""
	}
	return weekdayNames[int(t.Weekday())]
}

// dayNumber returns the day-of-month for a date, empty when malformed.
func dayNumber(d core.Date) string {
	t, err := d.Time()
	if err != nil {
		return ""
	}
	return strings.TrimLeft(t.Format("02"), "0")
}
