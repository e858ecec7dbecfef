package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Snapshot is one immutable view of everything the authority knows. A
// Store swaps whole snapshots; callers never observe a half-applied
// reload.
type Snapshot struct {
	Tasks    []Task
	Tags     []Tag
	Labels   []Label
	Registry map[string][]string
	Config   Config
}

// TaskByID looks a task up in the snapshot.
func (s Snapshot) TaskByID(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Store holds the panel's local copy of remote state and pushes every
// mutation through the authority before reloading. It never applies a
// change optimistically.
type Store struct {
	authority Authority
	now       func() time.Time

	mu   sync.RWMutex
	snap Snapshot
}

func NewStore(authority Authority) *Store {
	return &Store{
		authority: authority,
		now:       time.Now,
		snap:      Snapshot{Registry: map[string][]string{}},
	}
}

// Snapshot returns the current local view. The returned value shares
// backing slices with the store; treat it as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Reload pulls the full remote state and swaps it in atomically. On any
// fetch failure the previous snapshot is kept intact.
func (s *Store) Reload(ctx context.Context) error {
	tasks, err := s.authority.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("%w: tasks: %w", ErrFetchFailed, err)
	}
	tags, err := s.authority.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("%w: tags: %w", ErrFetchFailed, err)
	}
	labels, err := s.authority.ListLabels(ctx)
	if err != nil {
		return fmt.Errorf("%w: labels: %w", ErrFetchFailed, err)
	}
	entries, err := s.authority.ListRegistryEntries(ctx)
	if err != nil {
		return fmt.Errorf("%w: registry: %w", ErrFetchFailed, err)
	}
	cfg, err := s.authority.GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("%w: config: %w", ErrFetchFailed, err)
	}

	registry := make(map[string][]string, len(entries))
	for _, e := range entries {
		registry[e.UniqueID] = e.Labels
	}

	s.mu.Lock()
	s.snap = Snapshot{
		Tasks:    tasks,
		Tags:     tags,
		Labels:   labels,
		Registry: registry,
		Config:   cfg,
	}
	s.mu.Unlock()
	return nil
}

// Create validates a draft, fills defaults, and sends the create intent.
// Invalid drafts are rejected before any network traffic.
func (s *Store) Create(ctx context.Context, draft TaskDraft) error {
	draft.Title = strings.TrimSpace(draft.Title)
	if err := validateFields(draft.Title, draft.IntervalValue, draft.IntervalType); err != nil {
		return err
	}
	if draft.LastPerformed.IsZero() {
		draft.LastPerformed = Midnight(s.now())
	} else {
		draft.LastPerformed = Midnight(draft.LastPerformed)
	}
	if draft.Icon == "" {
		draft.Icon = DefaultIcon
	}

	if err := s.authority.CreateTask(ctx, draft); err != nil {
		return fmt.Errorf("%w: create: %w", ErrMutationFailed, err)
	}
	return s.Reload(ctx)
}

// Complete stamps a task as performed now.
func (s *Store) Complete(ctx context.Context, id string) error {
	if err := s.authority.CompleteTask(ctx, id); err != nil {
		return fmt.Errorf("%w: complete: %w", ErrMutationFailed, err)
	}
	return s.Reload(ctx)
}

// Update sends a merge patch for one task. An empty patch is a local
// no-op.
func (s *Store) Update(ctx context.Context, id string, patch TaskPatch) error {
	if patch.Empty() {
		return nil
	}
	if err := validatePatch(patch); err != nil {
		return err
	}
	if err := s.authority.UpdateTask(ctx, id, patch); err != nil {
		return fmt.Errorf("%w: update: %w", ErrMutationFailed, err)
	}
	return s.Reload(ctx)
}

// Remove deletes a task, but only once the caller confirms the intent.
// An unconfirmed remove does nothing and touches no state.
func (s *Store) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}
	if err := s.authority.RemoveTask(ctx, id); err != nil {
		return fmt.Errorf("%w: remove: %w", ErrMutationFailed, err)
	}
	return s.Reload(ctx)
}

func validateFields(title string, value int, unit IntervalType) error {
	if title == "" {
		return fmt.Errorf("%w: title must not be blank", ErrValidation)
	}
	if value < 1 {
		return fmt.Errorf("%w: interval value must be at least 1", ErrValidation)
	}
	if !unit.Valid() {
		return fmt.Errorf("%w: interval type %q", ErrValidation, unit)
	}
	return nil
}

func validatePatch(p TaskPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be blank", ErrValidation)
	}
	if p.IntervalValue != nil && *p.IntervalValue < 1 {
		return fmt.Errorf("%w: interval value must be at least 1", ErrValidation)
	}
	if p.IntervalType != nil && !p.IntervalType.Valid() {
		return fmt.Errorf("%w: interval type %q", ErrValidation, *p.IntervalType)
	}
	return nil
}
