package core

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DB is the storage port the service talks to.
type DB interface {
	Ping(ctx context.Context) error

	// tags
	CreateTag(ctx context.Context, tag Tag) (Tag, error)
	ListTags(ctx context.Context) ([]Tag, error)

	// labels
	CreateLabel(ctx context.Context, label Label) (Label, error)
	ListLabels(ctx context.Context) ([]Label, error)

	// tasks
	CreateTask(ctx context.Context, t Task, labels []string) (Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	ListTasks(ctx context.Context) ([]Task, error)
	ListTasksByTag(ctx context.Context, tagID string) ([]Task, error)
	UpdateTask(ctx context.Context, t Task, labels *[]string) (Task, error)
	DeleteTask(ctx context.Context, id string) error

	// task -> label joins
	ListTaskLabels(ctx context.Context) (map[string][]string, error)
}

type Service struct {
	db  DB
	cfg Config

	now func() time.Time
}

func NewService(db DB, cfg Config) *Service {
	return &Service{
		db:  db,
		cfg: cfg,
		now: time.Now,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Config returns the display options served to panel clients.
func (s *Service) Config() Config {
	return s.cfg
}

// Tags

func (s *Service) CreateTag(ctx context.Context, tag Tag) (Tag, error) {
	tag.ID = strings.TrimSpace(tag.ID)
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	return s.db.CreateTag(ctx, tag)
}

func (s *Service) ListTags(ctx context.Context) ([]Tag, error) {
	return s.db.ListTags(ctx)
}

// ScanTag marks every task bound to the given tag as performed today.
// It mirrors a physical tag scan: one scan completes all chores on that tag.
func (s *Service) ScanTag(ctx context.Context, tagID string) ([]Task, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return nil, ErrTagInvalidArgs
	}

	tasks, err := s.db.ListTasksByTag(ctx, tagID)
	if err != nil {
		return nil, err
	}

	today := Midnight(s.now())
	completed := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		t.LastPerformed = today
		updated, err := s.db.UpdateTask(ctx, t, nil)
		if err != nil {
			return completed, err
		}
		completed = append(completed, updated)
	}
	return completed, nil
}

// Labels

func (s *Service) CreateLabel(ctx context.Context, label Label) (Label, error) {
	label.ID = strings.TrimSpace(label.ID)
	label.Name = strings.TrimSpace(label.Name)
	if label.Name == "" {
		return Label{}, ErrLabelInvalidArgs
	}
	if label.ID == "" {
		label.ID = uuid.NewString()
	}
	return s.db.CreateLabel(ctx, label)
}

func (s *Service) ListLabels(ctx context.Context) ([]Label, error) {
	return s.db.ListLabels(ctx)
}

// Registry returns the task -> label joins, one entry per task that has
// at least one label, ordered by task id.
func (s *Service) Registry(ctx context.Context) ([]RegistryEntry, error) {
	joins, err := s.db.ListTaskLabels(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RegistryEntry, 0, len(joins))
	for taskID, labels := range joins {
		out = append(out, RegistryEntry{UniqueID: taskID, Labels: labels})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UniqueID < out[j].UniqueID })
	return out, nil
}

// Tasks

// TaskDraft is the input of a create intent. A zero LastPerformed means
// "performed today". Tag and label references are weak: they are stored
// as given and resolved at display time, never checked for existence.
type TaskDraft struct {
	Title         string
	IntervalValue int
	IntervalType  IntervalType
	LastPerformed time.Time
	TagID         *string
	Icon          string
	Labels        []string
}

// TaskPatch is a merge-patch: nil pointers leave the field untouched.
// TagID set to the empty string clears the tag; an empty Labels slice
// clears every label join.
type TaskPatch struct {
	Title         *string
	IntervalValue *int
	IntervalType  *IntervalType
	LastPerformed *time.Time
	TagID         *string
	Icon          *string
	Labels        *[]string
}

func (p TaskPatch) empty() bool {
	return p.Title == nil && p.IntervalValue == nil && p.IntervalType == nil &&
		p.LastPerformed == nil && p.TagID == nil && p.Icon == nil && p.Labels == nil
}

func (s *Service) CreateTask(ctx context.Context, d TaskDraft) (Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" || d.IntervalValue < 1 || !d.IntervalType.Valid() {
		return Task{}, ErrTaskInvalidArgs
	}

	last := d.LastPerformed
	if last.IsZero() {
		last = s.now()
	}

	icon := strings.TrimSpace(d.Icon)
	if icon == "" {
		icon = DefaultIcon
	}

	var tagID *string
	if d.TagID != nil {
		if v := strings.TrimSpace(*d.TagID); v != "" {
			tagID = &v
		}
	}

	t := Task{
		ID:            uuid.NewString(),
		Title:         title,
		IntervalValue: d.IntervalValue,
		IntervalType:  d.IntervalType,
		LastPerformed: Midnight(last),
		TagID:         tagID,
		Icon:          icon,
	}
	return s.db.CreateTask(ctx, t, d.Labels)
}

func (s *Service) GetTask(ctx context.Context, id string) (Task, error) {
	if strings.TrimSpace(id) == "" {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.GetTask(ctx, id)
}

func (s *Service) ListTasks(ctx context.Context) ([]Task, error) {
	return s.db.ListTasks(ctx)
}

func (s *Service) PatchTask(ctx context.Context, id string, p TaskPatch) (Task, error) {
	if strings.TrimSpace(id) == "" || p.empty() {
		return Task{}, ErrTaskInvalidArgs
	}

	cur, err := s.db.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.Title = title
	}

	if p.IntervalValue != nil {
		if *p.IntervalValue < 1 {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.IntervalValue = *p.IntervalValue
	}

	if p.IntervalType != nil {
		if !p.IntervalType.Valid() {
			return Task{}, ErrTaskInvalidArgs
		}
		cur.IntervalType = *p.IntervalType
	}

	if p.LastPerformed != nil {
		cur.LastPerformed = Midnight(*p.LastPerformed)
	}

	if p.TagID != nil {
		if v := strings.TrimSpace(*p.TagID); v == "" {
			cur.TagID = nil
		} else {
			cur.TagID = &v
		}
	}

	if p.Icon != nil {
		icon := strings.TrimSpace(*p.Icon)
		if icon == "" {
			icon = DefaultIcon
		}
		cur.Icon = icon
	}

	return s.db.UpdateTask(ctx, cur, p.Labels)
}

// CompleteTask stamps the task as performed. A nil performed time means now;
// either way the stored date is normalized to local midnight.
func (s *Service) CompleteTask(ctx context.Context, id string, performed *time.Time) (Task, error) {
	if strings.TrimSpace(id) == "" {
		return Task{}, ErrTaskInvalidArgs
	}

	cur, err := s.db.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}

	when := s.now()
	if performed != nil {
		when = *performed
	}
	cur.LastPerformed = Midnight(when)

	return s.db.UpdateTask(ctx, cur, nil)
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrTaskInvalidArgs
	}
	return s.db.DeleteTask(ctx, id)
}
