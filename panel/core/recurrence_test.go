package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNextDueDays(t *testing.T) {
	t.Parallel()

	got, err := NextDue(day(2024, time.March, 1), 10, IntervalDays)
	if err != nil {
		t.Fatalf("NextDue returned error: %v", err)
	}
	if want := day(2024, time.March, 11); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextDueWeeks(t *testing.T) {
	t.Parallel()

	got, err := NextDue(day(2024, time.March, 1), 2, IntervalWeeks)
	if err != nil {
		t.Fatalf("NextDue returned error: %v", err)
	}
	if want := day(2024, time.March, 15); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextDueMonthsClampsToMonthEnd(t *testing.T) {
	t.Parallel()

	got, err := NextDue(day(2024, time.January, 31), 1, IntervalMonths)
	if err != nil {
		t.Fatalf("NextDue returned error: %v", err)
	}
	if want := day(2024, time.February, 29); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextDueMonthsClampsOutsideLeapYear(t *testing.T) {
	t.Parallel()

	got, err := NextDue(day(2023, time.January, 31), 1, IntervalMonths)
	if err != nil {
		t.Fatalf("NextDue returned error: %v", err)
	}
	if want := day(2023, time.February, 28); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextDueMonthsAcrossYearBoundary(t *testing.T) {
	t.Parallel()

	got, err := NextDue(day(2024, time.November, 30), 3, IntervalMonths)
	if err != nil {
		t.Fatalf("NextDue returned error: %v", err)
	}
	if want := day(2025, time.February, 28); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextDueMonthsPlainDayStays(t *testing.T) {
	t.Parallel()

	got, err := NextDue(day(2024, time.April, 15), 6, IntervalMonths)
	if err != nil {
		t.Fatalf("NextDue returned error: %v", err)
	}
	if want := day(2024, time.October, 15); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextDueUnknownUnit(t *testing.T) {
	t.Parallel()

	_, err := NextDue(day(2024, time.April, 15), 1, IntervalType("eons"))
	if !errors.Is(err, ErrUnsupportedIntervalType) {
		t.Fatalf("expected ErrUnsupportedIntervalType, got %v", err)
	}
}

func TestIsDueInclusiveOnTheDay(t *testing.T) {
	t.Parallel()

	next := day(2024, time.May, 10)

	if !IsDue(next, day(2024, time.May, 10)) {
		t.Fatalf("expected due on the day itself")
	}
	if !IsDue(next, time.Date(2024, time.May, 10, 7, 30, 0, 0, time.Local)) {
		t.Fatalf("expected due regardless of time of day")
	}
	if IsDue(next, day(2024, time.May, 9)) {
		t.Fatalf("expected not due the day before")
	}
	if !IsDue(next, day(2024, time.May, 11)) {
		t.Fatalf("expected still due after the day")
	}
}

func TestUnitLabelSingular(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value int
		unit  IntervalType
		want  string
	}{
		{1, IntervalDays, "day"},
		{2, IntervalDays, "days"},
		{1, IntervalWeeks, "week"},
		{3, IntervalWeeks, "weeks"},
		{1, IntervalMonths, "month"},
		{12, IntervalMonths, "months"},
	}
	for _, tc := range cases {
		if got := UnitLabel(tc.value, tc.unit); got != tc.want {
			t.Errorf("UnitLabel(%d, %s) = %q, want %q", tc.value, tc.unit, got, tc.want)
		}
	}
}

func TestMagnitude(t *testing.T) {
	t.Parallel()

	if got := Magnitude(5, IntervalDays); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := Magnitude(2, IntervalWeeks); got != 14 {
		t.Fatalf("expected 14, got %d", got)
	}
	if got := Magnitude(2, IntervalMonths); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
	if got := Magnitude(1, IntervalType("eons")); got != math.MaxInt {
		t.Fatalf("expected unknown units to sort last, got %d", got)
	}
}
