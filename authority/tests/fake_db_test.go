package tests

import (
	"context"
	"sort"
	"sync"

	"github.com/jsandbrook/home-maintenance/authority/core"
)

type fakeDB struct {
	mu sync.RWMutex

	tags   map[string]core.Tag
	labels map[string]core.Label
	tasks  map[string]core.Task
	joins  map[string][]string
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		tags:   make(map[string]core.Tag),
		labels: make(map[string]core.Label),
		tasks:  make(map[string]core.Task),
		joins:  make(map[string][]string),
	}
}

func cloneTask(t core.Task) core.Task {
	out := t
	if t.TagID != nil {
		v := *t.TagID
		out.TagID = &v
	}
	return out
}

func (db *fakeDB) Ping(context.Context) error {
	return nil
}

func (db *fakeDB) CreateTag(_ context.Context, tag core.Tag) (core.Tag, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tags[tag.ID]; ok {
		return core.Tag{}, core.ErrTagAlreadyExists
	}
	db.tags[tag.ID] = tag
	return tag, nil
}

func (db *fakeDB) ListTags(context.Context) ([]core.Tag, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Tag, 0, len(db.tags))
	for _, tag := range db.tags {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeDB) CreateLabel(_ context.Context, label core.Label) (core.Label, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.labels[label.ID]; ok {
		return core.Label{}, core.ErrLabelAlreadyExists
	}
	db.labels[label.ID] = label
	return label, nil
}

func (db *fakeDB) ListLabels(context.Context) ([]core.Label, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Label, 0, len(db.labels))
	for _, label := range db.labels {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeDB) CreateTask(_ context.Context, t core.Task, labels []string) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tasks[t.ID]; ok {
		return core.Task{}, core.ErrTaskInvalidArgs
	}
	db.tasks[t.ID] = cloneTask(t)
	if len(labels) > 0 {
		db.joins[t.ID] = append([]string(nil), labels...)
	}
	return cloneTask(t), nil
}

func (db *fakeDB) GetTask(_ context.Context, id string) (core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (db *fakeDB) ListTasks(context.Context) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0, len(db.tasks))
	for _, t := range db.tasks {
		out = append(out, cloneTask(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeDB) ListTasksByTag(_ context.Context, tagID string) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0)
	for _, t := range db.tasks {
		if t.TagID != nil && *t.TagID == tagID {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeDB) UpdateTask(_ context.Context, t core.Task, labels *[]string) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tasks[t.ID]; !ok {
		return core.Task{}, core.ErrTaskNotFound
	}

	db.tasks[t.ID] = cloneTask(t)
	if labels != nil {
		if len(*labels) == 0 {
			delete(db.joins, t.ID)
		} else {
			db.joins[t.ID] = append([]string(nil), *labels...)
		}
	}
	return cloneTask(t), nil
}

func (db *fakeDB) DeleteTask(_ context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tasks[id]; !ok {
		return core.ErrTaskNotFound
	}
	delete(db.tasks, id)
	delete(db.joins, id)
	return nil
}

func (db *fakeDB) ListTaskLabels(context.Context) (map[string][]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make(map[string][]string, len(db.joins))
	for id, labels := range db.joins {
		out[id] = append([]string(nil), labels...)
	}
	return out, nil
}
