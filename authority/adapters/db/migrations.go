package db

import (
	_ "embed"
	"fmt"
)

//go:embed migrations/01_create_tags.up.sql
var createTagsUp string

//go:embed migrations/02_create_labels.up.sql
var createLabelsUp string

//go:embed migrations/03_create_tasks.up.sql
var createTasksUp string

//go:embed migrations/04_create_task_labels.up.sql
var createTaskLabelsUp string

// Migrate applies the schema. Statements are idempotent and written in the
// dialect subset shared by SQLite and PostgreSQL.
func (db *DB) Migrate() error {
	db.log.Debug("running authority migrations")

	steps := []struct {
		name string
		sql  string
	}{
		{"tags", createTagsUp},
		{"labels", createLabelsUp},
		{"tasks", createTasksUp},
		{"task_labels", createTaskLabelsUp},
	}
	for _, step := range steps {
		if _, err := db.conn.Exec(step.sql); err != nil {
			return fmt.Errorf("apply %s migration: %w", step.name, err)
		}
	}

	db.log.Debug("authority migrations finished")
	return nil
}
