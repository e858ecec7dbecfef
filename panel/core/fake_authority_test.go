package core

import (
	"context"
	"sort"
	"sync"
)

// fakeAuthority is an in-memory remote that counts every call, so tests
// can assert which intents hit the network.
type fakeAuthority struct {
	mu sync.Mutex

	tasks    map[string]Task
	tags     []Tag
	labels   []Label
	registry map[string][]string
	config   Config

	calls     map[string]int
	fail      map[string]error
	lastPatch TaskPatch
}

func newFakeAuthority() *fakeAuthority {
	return &fakeAuthority{
		tasks:    make(map[string]Task),
		registry: make(map[string][]string),
		config:   Config{Title: "Home Maintenance", Version: "1.0.0"},
		calls:    make(map[string]int),
		fail:     make(map[string]error),
	}
}

func (f *fakeAuthority) count(op string) error {
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeAuthority) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAuthority) failWith(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeAuthority) putTask(t Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[t.ID] = t
}

func (f *fakeAuthority) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count("ping")
}

func (f *fakeAuthority) ListTags(context.Context) ([]Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.count("list_tags"); err != nil {
		return nil, err
	}
	return append([]Tag(nil), f.tags...), nil
}

func (f *fakeAuthority) ListTasks(context.Context) ([]Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.count("list_tasks"); err != nil {
		return nil, err
	}
	out := make([]Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAuthority) GetTask(_ context.Context, id string) (Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.count("get_task"); err != nil {
		return Task{}, err
	}
	t, ok := f.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (f *fakeAuthority) CreateTask(_ context.Context, draft TaskDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.count("create_task"); err != nil {
		return err
	}
	id := "task-" + draft.Title
	f.tasks[id] = Task{
		ID:            id,
		Title:         draft.Title,
		IntervalValue: draft.IntervalValue,
		IntervalType:  draft.IntervalType,
		LastPerformed: draft.LastPerformed,
		TagID:         draft.TagID,
		Icon:          draft.Icon,
	}
	if len(draft.Labels) > 0 {
		f.registry[id] = append([]string(nil), draft.Labels...)
	}
	return nil
}

func (f *fakeAuthority) CompleteTask(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.count("complete_task"); err != nil {
		return err
	}
	t, ok := f.tasks[id]
	if !ok {
		return ErrNotFound
	}
	t.LastPerformed = Midnight(t.LastPerformed.AddDate(10, 0, 0))
	f.tasks[id] = t
	return nil
}

func (f *fakeAuthority) UpdateTask(_ context.Context, id string, patch TaskPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.count("update_task"); err != nil {
		return err
	}
	t, ok := f.tasks[id]
	if !ok {
		return ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.IntervalValue != nil {
		t.IntervalValue = *patch.IntervalValue
	}
	if patch.IntervalType != nil {
		t.IntervalType = *patch.IntervalType
	}
	if patch.LastPerformed != nil {
		t.LastPerformed = *patch.LastPerformed
	}
	if patch.TagID != nil {
		if *patch.TagID == "" {
			t.TagID = nil
		} else {
			v := *patch.TagID
			t.TagID = &v
		}
	}
	if patch.Icon != nil {
		t.Icon = *patch.Icon
	}
	if patch.Labels != nil {
		if len(*patch.Labels) == 0 {
			delete(f.registry, id)
		} else {
			f.registry[id] = append([]string(nil), *patch.Labels...)
		}
	}
	f.tasks[id] = t
	f.lastPatch = patch
	return nil
}

func (f *fakeAuthority) RemoveTask(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.count("remove_task"); err != nil {
		return err
	}
	if _, ok := f.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(f.tasks, id)
	delete(f.registry, id)
	return nil
}

func (f *fakeAuthority) GetConfig(context.Context) (Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.count("get_config"); err != nil {
		return Config{}, err
	}
	return f.config, nil
}

func (f *fakeAuthority) ListRegistryEntries(context.Context) ([]RegistryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.count("list_registry"); err != nil {
		return nil, err
	}
	out := make([]RegistryEntry, 0, len(f.registry))
	for id, labels := range f.registry {
		out = append(out, RegistryEntry{UniqueID: id, Labels: append([]string(nil), labels...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UniqueID < out[j].UniqueID })
	return out, nil
}

func (f *fakeAuthority) ListLabels(context.Context) ([]Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.count("list_labels"); err != nil {
		return nil, err
	}
	return append([]Label(nil), f.labels...), nil
}

var _ Authority = (*fakeAuthority)(nil)
