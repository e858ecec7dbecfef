package core

import (
	"errors"
	"testing"
	"time"
)

func sampleSnapshot() Snapshot {
	tag := "garage"
	return Snapshot{
		Tasks: []Task{
			{
				ID: "t1", Title: "wash car", IntervalValue: 2, IntervalType: IntervalWeeks,
				LastPerformed: day(2024, time.May, 1), TagID: &tag, Icon: DefaultIcon,
			},
			{
				ID: "t2", Title: "flip mattress", IntervalValue: 3, IntervalType: IntervalMonths,
				LastPerformed: day(2024, time.January, 31), Icon: DefaultIcon,
			},
			{
				ID: "t3", Title: "water plants", IntervalValue: 1, IntervalType: IntervalDays,
				LastPerformed: day(2024, time.May, 9), Icon: DefaultIcon,
			},
		},
		Tags:   []Tag{{ID: "garage", Name: "Garage"}},
		Labels: []Label{{ID: "lbl-1", Name: "Bedroom"}},
		Registry: map[string][]string{
			"t2": {"lbl-1"},
		},
		Config: Config{Title: "Home Maintenance", Version: "1.0.0"},
	}
}

func TestProjectOrdersByNextDue(t *testing.T) {
	t.Parallel()

	rows, err := Project(sampleSnapshot(), day(2024, time.May, 10), SortByNextDue)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// t3 due May 10, t2 due Apr 30, t1 due May 15.
	if rows[0].Task.ID != "t2" || rows[1].Task.ID != "t3" || rows[2].Task.ID != "t1" {
		t.Fatalf("unexpected order: %s %s %s", rows[0].Task.ID, rows[1].Task.ID, rows[2].Task.ID)
	}
}

func TestProjectDueFlags(t *testing.T) {
	t.Parallel()

	rows, err := Project(sampleSnapshot(), day(2024, time.May, 10), SortByNextDue)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	due := map[string]bool{}
	for _, row := range rows {
		due[row.Task.ID] = row.Due
	}
	if !due["t2"] {
		t.Fatalf("expected overdue task flagged")
	}
	if !due["t3"] {
		t.Fatalf("expected task due today flagged")
	}
	if due["t1"] {
		t.Fatalf("expected future task not flagged")
	}
}

func TestProjectClampedMonthDueDate(t *testing.T) {
	t.Parallel()

	rows, err := Project(sampleSnapshot(), day(2024, time.May, 10), SortByNextDue)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	for _, row := range rows {
		if row.Task.ID != "t2" {
			continue
		}
		// Jan 31 + 3 months clamps to Apr 30.
		if want := day(2024, time.April, 30); !row.NextDue.Equal(want) {
			t.Fatalf("expected %v, got %v", want, row.NextDue)
		}
		return
	}
	t.Fatalf("t2 missing from projection")
}

func TestProjectResolvesTagAndLabels(t *testing.T) {
	t.Parallel()

	rows, err := Project(sampleSnapshot(), day(2024, time.May, 10), SortByTitle)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	byID := map[string]Row{}
	for _, row := range rows {
		byID[row.Task.ID] = row
	}

	if byID["t1"].TagName != "Garage" || byID["t1"].TagIcon != TagIcon {
		t.Fatalf("expected resolved tag, got %+v", byID["t1"])
	}
	if byID["t3"].TagIcon != "" {
		t.Fatalf("expected no tag icon for untagged task")
	}
	if len(byID["t2"].Labels) != 1 || byID["t2"].Labels[0] != "Bedroom" {
		t.Fatalf("expected resolved label names, got %v", byID["t2"].Labels)
	}
}

func TestProjectUnknownTagFallsBackToID(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot()
	missing := "no-such-tag"
	snap.Tasks[0].TagID = &missing

	rows, err := Project(snap, day(2024, time.May, 10), SortByTitle)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	for _, row := range rows {
		if row.Task.ID == "t1" && row.TagName != missing {
			t.Fatalf("expected raw id for unknown tag, got %q", row.TagName)
		}
	}
}

func TestProjectIntervalLabels(t *testing.T) {
	t.Parallel()

	rows, err := Project(sampleSnapshot(), day(2024, time.May, 10), SortByTitle)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	want := map[string]string{
		"t1": "2 weeks",
		"t2": "3 months",
		"t3": "1 day",
	}
	for _, row := range rows {
		if got := row.IntervalLabel; got != want[row.Task.ID] {
			t.Errorf("task %s: expected %q, got %q", row.Task.ID, want[row.Task.ID], got)
		}
	}
}

func TestProjectSortByInterval(t *testing.T) {
	t.Parallel()

	rows, err := Project(sampleSnapshot(), day(2024, time.May, 10), SortByInterval)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	// 1 day < 2 weeks (14) < 3 months (90).
	if rows[0].Task.ID != "t3" || rows[1].Task.ID != "t1" || rows[2].Task.ID != "t2" {
		t.Fatalf("unexpected order: %s %s %s", rows[0].Task.ID, rows[1].Task.ID, rows[2].Task.ID)
	}
}

func TestProjectUnsupportedUnitPoisonsProjection(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot()
	snap.Tasks[1].IntervalType = IntervalType("eons")

	_, err := Project(snap, day(2024, time.May, 10), SortByNextDue)
	if !errors.Is(err, ErrUnsupportedIntervalType) {
		t.Fatalf("expected ErrUnsupportedIntervalType, got %v", err)
	}
}
