package core

import "time"

// IntervalType is the closed set of repeat units a task may use.
type IntervalType string

const (
	IntervalDays   IntervalType = "days"
	IntervalWeeks  IntervalType = "weeks"
	IntervalMonths IntervalType = "months"
)

func (t IntervalType) Valid() bool {
	switch t {
	case IntervalDays, IntervalWeeks, IntervalMonths:
		return true
	default:
		return false
	}
}

// DefaultIcon is assigned to tasks created or saved without one.
const DefaultIcon = "mdi:calendar-check"

// Version is reported by the config endpoint and shown in the panel header.
const Version = "1.0.0"

type Task struct {
	ID            string       `db:"id" json:"id"`
	Title         string       `db:"title" json:"title"`
	IntervalValue int          `db:"interval_value" json:"interval_value"`
	IntervalType  IntervalType `db:"interval_type" json:"interval_type"`
	LastPerformed time.Time    `db:"last_performed" json:"last_performed"`
	TagID         *string      `db:"tag_id" json:"tag_id,omitempty"` // Nil when no tag is bound
	Icon          string       `db:"icon" json:"icon,omitempty"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
}

type Tag struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name,omitempty"`
}

type Label struct {
	ID    string  `db:"label_id" json:"label_id"`
	Name  string  `db:"name" json:"name"`
	Color *string `db:"color" json:"color,omitempty"`
	Icon  *string `db:"icon" json:"icon,omitempty"`
}

// RegistryEntry is one row of the task -> label join, keyed by task id.
type RegistryEntry struct {
	UniqueID string   `json:"unique_id"`
	Labels   []string `json:"labels"`
}

// Config carries the integration-level display options served to clients.
type Config struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Midnight truncates a timestamp to local midnight of the same calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
