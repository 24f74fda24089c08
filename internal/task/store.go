// Package task is the registry of focus tasks. Schedule entries hold weak
// references into it by id; the schedule side only ever reads labels.
package task

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focuscal/internal/model"
	_ "modernc.org/sqlite"
)

// UnlinkedLabel is rendered when an entry references a task that no longer
// exists. A dangling reference is never an error.
const UnlinkedLabel = "(no linked task)"

// Store manages SQLite persistence for the task registry.
type Store struct {
	db *sql.DB
}

func defaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(dataHome, "focuscal")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "tasks.db"), nil
}

// NewStore opens (or creates) the SQLite database and ensures the schema
// exists.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		var err error
		dbPath, err = defaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("determine db path: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT    NOT NULL,
		description TEXT,
		status      TEXT    NOT NULL DEFAULT 'pending',
		created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
		due_date    TEXT
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if err := migrateTargetExecutable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate target_executable: %w", err)
	}

	return &Store{db: db}, nil
}

func migrateTargetExecutable(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(tasks)")
	if err != nil {
		return err
	}
	defer rows.Close()

	hasColumn := false
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dfltValue sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return err
		}
		if name == "target_executable" {
			hasColumn = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !hasColumn {
		_, err := db.Exec("ALTER TABLE tasks ADD COLUMN target_executable TEXT")
		return err
	}
	return nil
}

func scanTask(scanner interface{ Scan(...any) error }) (model.Task, error) {
	var t model.Task
	var createdStr string
	var description, dueDate, target sql.NullString
	if err := scanner.Scan(&t.ID, &t.Name, &description, &t.Status, &createdStr, &dueDate, &target); err != nil {
		return model.Task{}, err
	}
	t.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdStr)
	if description.Valid {
		d := description.String
		t.Description = &d
	}
	if dueDate.Valid {
		d := dueDate.String
		t.DueDate = &d
	}
	if target.Valid {
		e := target.String
		t.TargetExecutable = &e
	}
	return t, nil
}

const taskColumns = "id, name, description, status, created_at, due_date, target_executable"

// Add inserts a new task and returns it.
func (s *Store) Add(name string, description *string) (model.Task, error) {
	var res sql.Result
	var err error
	if description != nil {
		res, err = s.db.Exec("INSERT INTO tasks (name, description) VALUES (?, ?)", name, *description)
	} else {
		res, err = s.db.Exec("INSERT INTO tasks (name) VALUES (?)", name)
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetByID(int(id))
}

// List returns all tasks ordered by creation date ascending.
func (s *Store) List() ([]model.Task, error) {
	rows, err := s.db.Query("SELECT " + taskColumns + " FROM tasks ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetByID retrieves a single task by its ID.
func (s *Store) GetByID(id int) (model.Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if err != nil {
		return model.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// LabelFor resolves a schedule entry's task reference to a display label.
// nil means the entry is not linked; a reference to a vanished task yields
// UnlinkedLabel rather than an error.
func (s *Store) LabelFor(taskID *int) string {
	if taskID == nil {
		return ""
	}
	row := s.db.QueryRow("SELECT name FROM tasks WHERE id = ?", *taskID)
	var name string
	if err := row.Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UnlinkedLabel
		}
		return UnlinkedLabel
	}
	return name
}

// SetStatus moves a task through its lifecycle (pending/active/done).
func (s *Store) SetStatus(id int, status string) error {
	_, err := s.db.Exec("UPDATE tasks SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("set status of task %d: %w", id, err)
	}
	return nil
}

// SetDueDate sets or clears the due date for a task. Pass nil to clear.
func (s *Store) SetDueDate(id int, dueDate *string) error {
	var err error
	if dueDate != nil {
		_, err = s.db.Exec("UPDATE tasks SET due_date = ? WHERE id = ?", *dueDate, id)
	} else {
		_, err = s.db.Exec("UPDATE tasks SET due_date = NULL WHERE id = ?", id)
	}
	if err != nil {
		return fmt.Errorf("set due date of task %d: %w", id, err)
	}
	return nil
}

// Delete removes a task by ID. Schedule entries pointing at it keep their
// reference and render as unlinked.
func (s *Store) Delete(id int) error {
	_, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
