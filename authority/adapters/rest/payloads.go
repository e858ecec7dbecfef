package rest

import "time"

type CreateTagIn struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type CreateLabelIn struct {
	ID    string  `json:"label_id,omitempty"`
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

type CreateTaskIn struct {
	Title         string     `json:"title"`
	IntervalValue int        `json:"interval_value"`
	IntervalType  string     `json:"interval_type"`
	LastPerformed *time.Time `json:"last_performed,omitempty"` // omitted means today
	TagID         *string    `json:"tag_id,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	Labels        []string   `json:"labels,omitempty"`
}

// PatchTaskIn is a merge-patch. Omitted fields stay untouched; tag_id set to
// the empty string clears the tag, labels set to [] clears every label join.
type PatchTaskIn struct {
	Title         *string    `json:"title,omitempty"`
	IntervalValue *int       `json:"interval_value,omitempty"`
	IntervalType  *string    `json:"interval_type,omitempty"`
	LastPerformed *time.Time `json:"last_performed,omitempty"`
	TagID         *string    `json:"tag_id,omitempty"`
	Icon          *string    `json:"icon,omitempty"`
	Labels        *[]string  `json:"labels,omitempty"`
}

type CompleteTaskIn struct {
	PerformedDate *time.Time `json:"performed_date,omitempty"` // omitted means now
}
