package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	category TEXT NOT NULL,
	deadline TEXT,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	source TEXT NOT NULL,
	created_at TEXT NOT NULL,
	contact_name TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT '',
	pdf_ready INTEGER NOT NULL DEFAULT 0,
	deleted_at TEXT
);
CREATE TABLE IF NOT EXISTS profile (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS notification_settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS pending_notifications (
	identifier TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	meta TEXT NOT NULL,
	sound INTEGER NOT NULL DEFAULT 1,
	category TEXT NOT NULL DEFAULT '',
	fire_at TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetNotificationSettings(); err != nil {
		defaults := models.NotificationSettings{
			MorningEnabled:   constants.DefaultMorningEnabled,
			DayBeforeEnabled: constants.DefaultDayBeforeEnabled,
			EveningEnabled:   constants.DefaultEveningEnabled,
			OverdueEnabled:   constants.DefaultOverdueEnabled,
			SmartEnabled:     constants.DefaultSmartEnabled,
			City:             constants.DefaultCity,
			Timezone:         constants.DefaultTimezone,
		}
		if err := s.SaveNotificationSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'foyer init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// --- Tasks ---

func (s *SQLiteStore) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

const taskColumns = `id, title, category, deadline, description, status, source, created_at,
	contact_name, contact_email, pdf_ready, deleted_at`

func scanTask(scan func(dest ...any) error) (models.Task, error) {
	var t models.Task
	var category, status, source, createdAt string
	var deadline, deletedAt sql.NullString

	err := scan(
		&t.ID, &t.Title, &category, &deadline, &t.Description, &status, &source, &createdAt,
		&t.ContactName, &t.ContactEmail, &t.PdfReady, &deletedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	t.Category = constants.TaskCategory(category)
	t.Status = constants.TaskStatus(status)
	t.Source = constants.TaskSource(source)

	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = parsed
	}
	if deadline.Valid && deadline.String != "" {
		if parsed, err := time.Parse(time.RFC3339, deadline.String); err == nil {
			t.Deadline = &parsed
		}
	}
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.String
	}

	return t, nil
}

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND deleted_at IS NULL`, id)

	task, err := scanTask(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, fmt.Errorf("task with id %s not found", id)
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	var deadline sql.NullString
	if task.Deadline != nil {
		deadline = sql.NullString{String: task.Deadline.Format(time.RFC3339), Valid: true}
	}
	var deletedAt sql.NullString
	if task.DeletedAt != nil {
		deletedAt = sql.NullString{String: *task.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO tasks (
			id, title, category, deadline, description, status, source, created_at,
			contact_name, contact_email, pdf_ready, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Category, deadline, task.Description, task.Status, task.Source,
		task.CreatedAt.Format(time.RFC3339), task.ContactName, task.ContactEmail, task.PdfReady, deletedAt,
	)
	return err
}

func (s *SQLiteStore) SetTaskDeadline(id string, deadline time.Time) error {
	res, err := s.db.Exec(
		`UPDATE tasks SET deadline = ? WHERE id = ? AND deleted_at IS NULL`,
		deadline.Format(time.RFC3339), id,
	)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (s *SQLiteStore) SetTaskStatus(id string, status constants.TaskStatus) error {
	res, err := s.db.Exec(
		`UPDATE tasks SET status = ? WHERE id = ? AND deleted_at IS NULL`,
		status, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (s *SQLiteStore) DeleteTask(id string) error {
	// Soft delete: set deleted_at timestamp instead of removing the record
	var deletedAt sql.NullString
	err := s.db.QueryRow(`SELECT deleted_at FROM tasks WHERE id = ?`, id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("task with id %s not found", id)
		}
		return fmt.Errorf("failed to check task existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("task with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`UPDATE tasks SET deleted_at = ? WHERE id = ?`, now, id)
	return err
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task with id %s not found", id)
	}
	return nil
}

// --- Profile ---

func (s *SQLiteStore) GetProfile() (models.Profile, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM profile WHERE id = 1`).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Profile{}, nil
		}
		return models.Profile{}, err
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return models.Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

func (s *SQLiteStore) SaveProfile(profile models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO profile (id, data) VALUES (1, ?)`, string(data))
	return err
}

// --- Notification settings ---

func (s *SQLiteStore) GetNotificationSettings() (models.NotificationSettings, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM notification_settings WHERE id = 1`).Scan(&data)
	if err != nil {
		return models.NotificationSettings{}, err
	}

	var settings models.NotificationSettings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return models.NotificationSettings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

func (s *SQLiteStore) SaveNotificationSettings(settings models.NotificationSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO notification_settings (id, data) VALUES (1, ?)`, string(data))
	return err
}

// --- Pending notifications ---

func (s *SQLiteStore) AddPendingNotification(p models.PendingNotification) error {
	meta, err := json.Marshal(p.Meta)
	if err != nil {
		return fmt.Errorf("failed to encode notification meta: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO pending_notifications (
			identifier, title, body, meta, sound, category, fire_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Identifier, p.Title, p.Body, string(meta), p.Sound, p.Category,
		p.FireAt.Format(time.RFC3339), p.CreatedAt.Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) DeletePendingNotification(identifier string) error {
	_, err := s.db.Exec(`DELETE FROM pending_notifications WHERE identifier = ?`, identifier)
	return err
}

func (s *SQLiteStore) DeleteAllPendingNotifications() error {
	_, err := s.db.Exec(`DELETE FROM pending_notifications`)
	return err
}

func (s *SQLiteStore) GetPendingNotifications() ([]models.PendingNotification, error) {
	rows, err := s.db.Query(`
		SELECT identifier, title, body, meta, sound, category, fire_at, created_at
		FROM pending_notifications`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []models.PendingNotification
	for rows.Next() {
		var p models.PendingNotification
		var meta, fireAt, createdAt string
		if err := rows.Scan(&p.Identifier, &p.Title, &p.Body, &meta, &p.Sound, &p.Category, &fireAt, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(meta), &p.Meta); err != nil {
			return nil, fmt.Errorf("failed to decode notification meta for %s: %w", p.Identifier, err)
		}
		if parsed, err := time.Parse(time.RFC3339, fireAt); err == nil {
			p.FireAt = parsed
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			p.CreatedAt = parsed
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}
