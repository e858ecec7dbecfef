package core

import (
	"context"
	"fmt"
	"time"
)

// SessionState is the phase of an edit session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateEditing
	StateSaving
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// WorkingCopy is the editable projection of one task. Labels ride along
// even though the authority stores them in a separate registry.
type WorkingCopy struct {
	ID            string
	Title         string
	IntervalValue int
	IntervalType  IntervalType
	LastPerformed time.Time
	TagID         string
	Icon          string
	Labels        []string
}

// Session drives the edit lifecycle of a single task: open with a fresh
// fetch, mutate the working copy, then save a minimal patch or cancel.
// Only one task is ever in flight; opening a new one discards the old.
type Session struct {
	store *Store

	state SessionState
	seed  WorkingCopy
	work  WorkingCopy
}

func NewSession(store *Store) *Session {
	return &Session{store: store}
}

func (s *Session) State() SessionState { return s.state }

// Open fetches the task fresh from the authority and starts editing it.
// Any session already in progress is discarded, saved or not.
func (s *Session) Open(ctx context.Context, id string) error {
	task, err := s.store.authority.GetTask(ctx, id)
	if err != nil {
		s.state = StateIdle
		return fmt.Errorf("%w: task %s: %w", ErrFetchFailed, id, err)
	}

	tagID := ""
	if task.TagID != nil {
		tagID = *task.TagID
	}
	wc := WorkingCopy{
		ID:            task.ID,
		Title:         task.Title,
		IntervalValue: task.IntervalValue,
		IntervalType:  task.IntervalType,
		LastPerformed: task.LastPerformed,
		TagID:         tagID,
		Icon:          task.Icon,
		Labels:        append([]string(nil), s.store.Snapshot().Registry[task.ID]...),
	}

	s.seed = wc
	s.work = wc
	s.work.Labels = append([]string(nil), wc.Labels...)
	s.state = StateEditing
	return nil
}

// Working returns the current working copy.
func (s *Session) Working() WorkingCopy { return s.work }

// SetWorking replaces the working copy. Ignored unless editing.
func (s *Session) SetWorking(wc WorkingCopy) {
	if s.state != StateEditing {
		return
	}
	wc.ID = s.seed.ID
	s.work = wc
}

// Save diffs the working copy against the seed and sends only the changed
// fields. A clean working copy closes the session without any network
// traffic. On failure the session stays open for another attempt.
func (s *Session) Save(ctx context.Context) error {
	if s.state != StateEditing {
		return ErrNoSession
	}
	if err := validateFields(s.work.Title, s.work.IntervalValue, s.work.IntervalType); err != nil {
		return err
	}

	patch := s.diff()
	if patch.Empty() {
		s.state = StateIdle
		return nil
	}

	s.state = StateSaving
	if err := s.store.Update(ctx, s.seed.ID, patch); err != nil {
		s.state = StateEditing
		return err
	}
	s.state = StateIdle
	return nil
}

// Cancel abandons the working copy. Ignored unless editing.
func (s *Session) Cancel() {
	if s.state != StateEditing {
		return
	}
	s.state = StateIdle
	s.work = WorkingCopy{}
	s.seed = WorkingCopy{}
}

func (s *Session) diff() TaskPatch {
	var p TaskPatch
	if s.work.Title != s.seed.Title {
		v := s.work.Title
		p.Title = &v
	}
	if s.work.IntervalValue != s.seed.IntervalValue {
		v := s.work.IntervalValue
		p.IntervalValue = &v
	}
	if s.work.IntervalType != s.seed.IntervalType {
		v := s.work.IntervalType
		p.IntervalType = &v
	}
	if !s.work.LastPerformed.Equal(s.seed.LastPerformed) {
		v := Midnight(s.work.LastPerformed)
		p.LastPerformed = &v
	}
	if s.work.TagID != s.seed.TagID {
		v := s.work.TagID
		p.TagID = &v
	}
	if s.work.Icon != s.seed.Icon {
		v := s.work.Icon
		p.Icon = &v
	}
	if !sameStrings(s.work.Labels, s.seed.Labels) {
		v := append([]string(nil), s.work.Labels...)
		p.Labels = &v
	}
	return p
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
