package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"todohub/internal/modules/todos/domain"
	todosout "todohub/internal/modules/todos/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteSnapshotCache projects the last confirmed collection into a local
// sqlite file. Position column preserves server order across a restart.
type SQLiteSnapshotCache struct {
	db *sql.DB
}

func NewSQLiteSnapshotCache(dbPath string) (todosout.SnapshotCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteSnapshotCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

func (c *SQLiteSnapshotCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS todos (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  completed INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  position INTEGER NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (c *SQLiteSnapshotCache) Load(ctx context.Context) ([]domain.Todo, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, title, completed, created_at FROM todos ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []domain.Todo
	for rows.Next() {
		var item domain.Todo
		var completed int
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Title, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		item.Completed = completed != 0
		if ts, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			item.CreatedAt = ts
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}
	return items, nil
}

func (c *SQLiteSnapshotCache) Replace(ctx context.Context, items []domain.Todo) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM todos`); err != nil {
		return fmt.Errorf("reset snapshot: %w", err)
	}
	const stmt = `INSERT INTO todos (id, title, completed, created_at, position) VALUES (?, ?, ?, ?, ?)`
	for i, item := range items {
		completed := 0
		if item.Completed {
			completed = 1
		}
		if _, err := tx.ExecContext(ctx, stmt, item.ID, item.Title, completed, item.CreatedAt.Format(time.RFC3339), i); err != nil {
			return fmt.Errorf("insert snapshot row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (c *SQLiteSnapshotCache) Close() error {
	return c.db.Close()
}
