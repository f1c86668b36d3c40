package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"

	"livingclock/internal/core/tasks"
)

const (
	taskDBFileName = "tasks.db"

	taskSchema = `
CREATE TABLE IF NOT EXISTS tasks (
    position  INTEGER PRIMARY KEY,
    id        TEXT NOT NULL,
    text      TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0
);
`
)

// TaskDB stores the to-do list in a SQLite database. Every Save replaces the
// whole table in one transaction so readers never see a partial list.
type TaskDB struct {
	db *sql.DB
}

// OpenTaskDB opens or creates tasks.db inside dir and initializes the schema.
func OpenTaskDB(dir string) (*TaskDB, error) {
	return openTaskDB(filepath.Join(dir, taskDBFileName))
}

func openTaskDB(dbPath string) (*TaskDB, error) {
	if err := ensureDir(filepath.Dir(dbPath)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open task database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping task database: %w", err)
	}

	if _, err := db.Exec(taskSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize task schema: %w", err)
	}

	return &TaskDB{db: db}, nil
}

// Close releases the database handle.
func (store *TaskDB) Close() error {
	return store.db.Close()
}

// Load reads every item ordered by position.
func (store *TaskDB) Load() ([]tasks.Item, error) {
	rows, err := store.db.Query("SELECT id, text, completed FROM tasks ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	items := []tasks.Item{}
	for rows.Next() {
		var item tasks.Item
		if err := rows.Scan(&item.ID, &item.Text, &item.Completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return items, nil
}

// Save replaces the stored list.
func (store *TaskDB) Save(items []tasks.Item) error {
	tx, err := store.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO tasks (position, id, text, completed) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare task insert: %w", err)
	}
	defer stmt.Close()

	for position, item := range items {
		if _, err := stmt.Exec(position, item.ID, item.Text, item.Completed); err != nil {
			return fmt.Errorf("insert task %q: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tasks: %w", err)
	}
	return nil
}
