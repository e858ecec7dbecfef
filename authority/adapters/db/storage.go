package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	sqlite "modernc.org/sqlite"

	"github.com/jsandbrook/home-maintenance/authority/core"
)

type DB struct {
	log  *slog.Logger
	conn *sqlx.DB
}

// New opens the configured backend. driver is "sqlite" (embedded, default)
// or "pgx" (PostgreSQL); address is a file path for sqlite and a DSN for pgx.
func New(log *slog.Logger, driver, address string) (*DB, error) {
	switch driver {
	case "sqlite":
		address = sqliteDSN(address)
	case "pgx":
	default:
		return nil, fmt.Errorf("unknown db driver %q", driver)
	}

	conn, err := sqlx.Connect(driver, address)
	if err != nil {
		log.Error("connection problem", "driver", driver, "address", address, "error", err)
		return nil, err
	}
	if driver == "sqlite" {
		// modernc.org/sqlite serializes writes; a single connection avoids
		// SQLITE_BUSY under concurrent handlers.
		conn.SetMaxOpenConns(1)
	}
	return &DB{log: log, conn: conn}, nil
}

// sqliteDSN builds a file: DSN that creates the database on first open.
func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	u := url.URL{Scheme: "file", Path: path}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Tags

func (db *DB) CreateTag(ctx context.Context, tag core.Tag) (core.Tag, error) {
	const q = `INSERT INTO tags(id, name) VALUES ($1, $2)`

	if _, err := db.conn.ExecContext(ctx, q, tag.ID, tag.Name); err != nil {
		if isUniqueViolation(err) {
			return core.Tag{}, core.ErrTagAlreadyExists
		}
		return core.Tag{}, fmt.Errorf("insert tag: %w", err)
	}
	return tag, nil
}

func (db *DB) ListTags(ctx context.Context) ([]core.Tag, error) {
	const q = `SELECT id, name FROM tags ORDER BY lower(name), id`

	out := []core.Tag{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return out, nil
}

// Labels

func (db *DB) CreateLabel(ctx context.Context, label core.Label) (core.Label, error) {
	const q = `INSERT INTO labels(label_id, name, color, icon) VALUES ($1, $2, $3, $4)`

	if _, err := db.conn.ExecContext(ctx, q, label.ID, label.Name, label.Color, label.Icon); err != nil {
		if isUniqueViolation(err) {
			return core.Label{}, core.ErrLabelAlreadyExists
		}
		return core.Label{}, fmt.Errorf("insert label: %w", err)
	}
	return label, nil
}

func (db *DB) ListLabels(ctx context.Context) ([]core.Label, error) {
	const q = `SELECT label_id, name, color, icon FROM labels ORDER BY lower(name)`

	out := []core.Label{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	return out, nil
}

// Tasks

const taskColumns = `id, title, interval_value, interval_type, last_performed, tag_id, icon, created_at, updated_at`

func (db *DB) CreateTask(ctx context.Context, t core.Task, labels []string) (core.Task, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return core.Task{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT INTO tasks(id, title, interval_value, interval_type, last_performed, tag_id, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	now := time.Now()
	if _, err := tx.ExecContext(ctx, q,
		t.ID, t.Title, t.IntervalValue, t.IntervalType, t.LastPerformed, t.TagID, t.Icon, now,
	); err != nil {
		if isCheckViolation(err) || isUniqueViolation(err) {
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		return core.Task{}, fmt.Errorf("insert task: %w", err)
	}

	if err := replaceTaskLabels(ctx, tx, t.ID, labels); err != nil {
		return core.Task{}, err
	}

	var out core.Task
	if err := tx.GetContext(ctx, &out, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, t.ID); err != nil {
		return core.Task{}, fmt.Errorf("read back task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Task{}, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

func (db *DB) GetTask(ctx context.Context, id string) (core.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var t core.Task
	if err := db.conn.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (db *DB) ListTasks(ctx context.Context) ([]core.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks ORDER BY lower(title), id`

	out := []core.Task{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (db *DB) ListTasksByTag(ctx context.Context, tagID string) ([]core.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE tag_id = $1 ORDER BY lower(title), id`

	out := []core.Task{}
	if err := db.conn.SelectContext(ctx, &out, q, tagID); err != nil {
		return nil, fmt.Errorf("list tasks by tag: %w", err)
	}
	return out, nil
}

// UpdateTask writes the full task row. A nil labels pointer leaves the
// label joins alone; a non-nil pointer (empty slice included) replaces them.
func (db *DB) UpdateTask(ctx context.Context, t core.Task, labels *[]string) (core.Task, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return core.Task{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		UPDATE tasks
		SET title = $2,
		    interval_value = $3,
		    interval_type = $4,
		    last_performed = $5,
		    tag_id = $6,
		    icon = $7,
		    updated_at = $8
		WHERE id = $1
	`

	res, err := tx.ExecContext(ctx, q,
		t.ID, t.Title, t.IntervalValue, t.IntervalType, t.LastPerformed, t.TagID, t.Icon, time.Now(),
	)
	if err != nil {
		if isCheckViolation(err) {
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		return core.Task{}, fmt.Errorf("update task: %w", err)
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return core.Task{}, core.ErrTaskNotFound
	}

	if labels != nil {
		if err := replaceTaskLabels(ctx, tx, t.ID, *labels); err != nil {
			return core.Task{}, err
		}
	}

	var out core.Task
	if err := tx.GetContext(ctx, &out, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, t.ID); err != nil {
		return core.Task{}, fmt.Errorf("read back task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Task{}, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

func (db *DB) DeleteTask(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

func (db *DB) ListTaskLabels(ctx context.Context) (map[string][]string, error) {
	const q = `SELECT task_id, label_id FROM task_labels ORDER BY task_id, label_id`

	rows, err := db.conn.QueryxContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list task labels: %w", err)
	}
	defer rows.Close()

	out := map[string][]string{}
	for rows.Next() {
		var taskID, labelID string
		if err := rows.Scan(&taskID, &labelID); err != nil {
			return nil, fmt.Errorf("scan task label: %w", err)
		}
		out[taskID] = append(out[taskID], labelID)
	}
	return out, rows.Err()
}

func replaceTaskLabels(ctx context.Context, tx *sqlx.Tx, taskID string, labels []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_labels WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("clear task labels: %w", err)
	}
	for _, labelID := range labels {
		labelID = strings.TrimSpace(labelID)
		if labelID == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_labels(task_id, label_id) VALUES ($1, $2)`, taskID, labelID,
		); err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("insert task label: %w", err)
		}
	}
	return nil
}

// constraint helpers, covering both backends

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code() == 1555 || sqErr.Code() == 2067 // primary key / unique
	}
	return false
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code() == 275 // SQLITE_CONSTRAINT_CHECK
	}
	return false
}
