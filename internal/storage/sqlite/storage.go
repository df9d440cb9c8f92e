// Package sqlite provides a SQLite-backed task store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/catbot/internal/storage/record"
	"github.com/cristianoliveira/catbot/internal/task"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tasks (
	position    INTEGER PRIMARY KEY,
	id          TEXT NOT NULL UNIQUE,
	kind        TEXT NOT NULL CHECK (kind IN ('todo', 'deadline', 'event')),
	done        INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL,
	by_at       TEXT NOT NULL DEFAULT '',
	from_at     TEXT NOT NULL DEFAULT '',
	to_at       TEXT NOT NULL DEFAULT ''
);`

// SQLiteStorage keeps the list in a single table ordered by position.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (and creates if needed) the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return storage, nil
}

func (s *SQLiteStorage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) Load() ([]task.Task, error) {
	return s.LoadContext(context.Background())
}

// LoadContext reads every task in list order.
func (s *SQLiteStorage) LoadContext(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, done, description, by_at, from_at, to_at FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: query tasks: %w", err)
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		var r record.Record
		if err := rows.Scan(&r.ID, &r.Kind, &r.Done, &r.Description, &r.By, &r.From, &r.To); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan task: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: iterate tasks: %w", err)
	}
	return record.ToTasks(records)
}

func (s *SQLiteStorage) Save(tasks []task.Task) error {
	return s.SaveContext(context.Background(), tasks)
}

// SaveContext replaces the table contents in one transaction.
func (s *SQLiteStorage) SaveContext(ctx context.Context, tasks []task.Task) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite storage: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("sqlite storage: clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tasks (position, id, kind, done, description, by_at, from_at, to_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite storage: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range record.FromTasks(tasks) {
		if _, err = stmt.ExecContext(ctx, i, r.ID, r.Kind, r.Done, r.Description, r.By, r.From, r.To); err != nil {
			return fmt.Errorf("sqlite storage: insert task %s: %w", r.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite storage: commit: %w", err)
	}
	return nil
}
