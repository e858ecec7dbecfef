package core

import "context"

// Authority is the remote system of record for tasks, tags, and labels.
// Mutations return no payload: callers are expected to reload.
type Authority interface {
	Ping(ctx context.Context) error

	ListTags(ctx context.Context) ([]Tag, error)
	ListTasks(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	CreateTask(ctx context.Context, draft TaskDraft) error
	CompleteTask(ctx context.Context, id string) error
	UpdateTask(ctx context.Context, id string, patch TaskPatch) error
	RemoveTask(ctx context.Context, id string) error
	GetConfig(ctx context.Context) (Config, error)
	ListRegistryEntries(ctx context.Context) ([]RegistryEntry, error)
	ListLabels(ctx context.Context) ([]Label, error)
}
