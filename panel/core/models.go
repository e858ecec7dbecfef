package core

import "time"

// IntervalType is the closed set of repeat units a task may use.
type IntervalType string

const (
	IntervalDays   IntervalType = "days"
	IntervalWeeks  IntervalType = "weeks"
	IntervalMonths IntervalType = "months"
)

// IntervalTypes lists the valid units in display order.
var IntervalTypes = []IntervalType{IntervalDays, IntervalWeeks, IntervalMonths}

func (t IntervalType) Valid() bool {
	switch t {
	case IntervalDays, IntervalWeeks, IntervalMonths:
		return true
	default:
		return false
	}
}

// DefaultIcon is used for tasks saved without an explicit icon.
const DefaultIcon = "mdi:calendar-check"

type Task struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	IntervalValue int          `json:"interval_value"`
	IntervalType  IntervalType `json:"interval_type"`
	LastPerformed time.Time    `json:"last_performed"`
	TagID         *string      `json:"tag_id,omitempty"`
	Icon          string       `json:"icon,omitempty"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Label struct {
	ID    string  `json:"label_id"`
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// RegistryEntry joins a task id to its assigned label ids.
type RegistryEntry struct {
	UniqueID string   `json:"unique_id"`
	Labels   []string `json:"labels"`
}

// Config is the integration-level display options of the authority.
type Config struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// TaskDraft is the input of a create intent. A zero LastPerformed defaults
// to today at local midnight before the intent is sent.
type TaskDraft struct {
	Title         string       `json:"title"`
	IntervalValue int          `json:"interval_value"`
	IntervalType  IntervalType `json:"interval_type"`
	LastPerformed time.Time    `json:"last_performed"`
	TagID         *string      `json:"tag_id,omitempty"`
	Icon          string       `json:"icon,omitempty"`
	Labels        []string     `json:"labels,omitempty"`
}

// TaskPatch carries only the fields an update intent wants to change.
// Nil pointers are left untouched remotely. TagID set to the empty string
// clears the tag; an empty Labels slice clears every label assignment —
// both distinct from the nil (absent) case.
type TaskPatch struct {
	Title         *string       `json:"title,omitempty"`
	IntervalValue *int          `json:"interval_value,omitempty"`
	IntervalType  *IntervalType `json:"interval_type,omitempty"`
	LastPerformed *time.Time    `json:"last_performed,omitempty"`
	TagID         *string       `json:"tag_id,omitempty"`
	Icon          *string       `json:"icon,omitempty"`
	Labels        *[]string     `json:"labels,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.IntervalValue == nil && p.IntervalType == nil &&
		p.LastPerformed == nil && p.TagID == nil && p.Icon == nil && p.Labels == nil
}

// Midnight truncates a timestamp to local midnight of the same calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
