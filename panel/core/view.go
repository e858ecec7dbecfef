package core

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TagIcon marks tag-bound tasks in list views.
const TagIcon = "mdi:tag"

// Row is one display-ready task: due state computed, interval rendered,
// label ids resolved to names.
type Row struct {
	Task Task

	NextDue       time.Time
	Due           bool
	IntervalLabel string
	Magnitude     int
	TagName       string
	TagIcon       string
	Labels        []string
}

// SortMode selects the ordering of a projection.
type SortMode int

const (
	SortByNextDue SortMode = iota
	SortByTitle
	SortByInterval
)

// Project turns a snapshot into display rows ordered by the given mode,
// next-due first by default. A task with an unsupported interval unit
// poisons the whole projection; partial views lie.
func Project(snap Snapshot, now time.Time, mode SortMode) ([]Row, error) {
	rows := make([]Row, 0, len(snap.Tasks))

	tagNames := make(map[string]string, len(snap.Tags))
	for _, t := range snap.Tags {
		tagNames[t.ID] = t.Name
	}
	labelNames := make(map[string]string, len(snap.Labels))
	for _, l := range snap.Labels {
		labelNames[l.ID] = l.Name
	}

	for _, task := range snap.Tasks {
		next, err := NextDue(task.LastPerformed, task.IntervalValue, task.IntervalType)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", task.ID, err)
		}

		row := Row{
			Task:          task,
			NextDue:       next,
			Due:           IsDue(next, now),
			IntervalLabel: fmt.Sprintf("%d %s", task.IntervalValue, UnitLabel(task.IntervalValue, task.IntervalType)),
			Magnitude:     Magnitude(task.IntervalValue, task.IntervalType),
		}
		if task.TagID != nil && *task.TagID != "" {
			row.TagIcon = TagIcon
			if name, ok := tagNames[*task.TagID]; ok && name != "" {
				row.TagName = name
			} else {
				row.TagName = *task.TagID
			}
		}
		for _, id := range snap.Registry[task.ID] {
			if name, ok := labelNames[id]; ok && name != "" {
				row.Labels = append(row.Labels, name)
			} else {
				row.Labels = append(row.Labels, id)
			}
		}
		rows = append(rows, row)
	}

	less := func(i, j int) bool { return rows[i].NextDue.Before(rows[j].NextDue) }
	switch mode {
	case SortByTitle:
		less = func(i, j int) bool {
			return strings.ToLower(rows[i].Task.Title) < strings.ToLower(rows[j].Task.Title)
		}
	case SortByInterval:
		less = func(i, j int) bool { return rows[i].Magnitude < rows[j].Magnitude }
	}
	sort.SliceStable(rows, less)
	return rows, nil
}
