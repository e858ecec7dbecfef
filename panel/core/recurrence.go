package core

import (
	"fmt"
	"math"
	"time"
)

// NextDue computes when a task is due again given its last completion.
// Month arithmetic clamps to the end of the target month instead of
// normalizing overflow, so Jan 31 + 1 month is Feb 29 on a leap year,
// never Mar 2.
func NextDue(last time.Time, value int, unit IntervalType) (time.Time, error) {
	switch unit {
	case IntervalDays:
		return last.AddDate(0, 0, value), nil
	case IntervalWeeks:
		return last.AddDate(0, 0, value*7), nil
	case IntervalMonths:
		return addMonthsClamped(last, value), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedIntervalType, unit)
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + months
	ny := y + total/12
	nm := time.Month(total%12 + 1)
	if total < 0 && total%12 != 0 {
		ny--
		nm += 12
	}
	if last := daysIn(ny, nm); d > last {
		d = last
	}
	h, min, sec := t.Clock()
	return time.Date(ny, nm, d, h, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsDue reports whether a task's next due date has arrived. The comparison
// is calendar-day granular and inclusive: due today means due now.
func IsDue(next, now time.Time) bool {
	return !Midnight(next).After(Midnight(now))
}

// UnitLabel renders an interval unit for display, singular when the count
// is exactly one.
func UnitLabel(value int, unit IntervalType) string {
	s := string(unit)
	if value == 1 {
		return s[:len(s)-1]
	}
	return s
}

// Magnitude converts an interval into an approximate day count used as a
// sort key. Months count as 30 days; the approximation is deliberate and
// only ever used for ordering. Unknown units sort last.
func Magnitude(value int, unit IntervalType) int {
	switch unit {
	case IntervalDays:
		return value
	case IntervalWeeks:
		return value * 7
	case IntervalMonths:
		return value * 30
	default:
		return math.MaxInt
	}
}
