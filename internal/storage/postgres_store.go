package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
)

// PostgresStore backs the Provider with a shared Postgres database, so
// several household devices can work against the same task list.
// Credentials must come from the OS keyring, the environment, or
// .pgpass; never embedded in the connection string.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	category TEXT NOT NULL,
	deadline TIMESTAMPTZ,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	source TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	contact_name TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT '',
	pdf_ready BOOLEAN NOT NULL DEFAULT FALSE,
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
	sound BOOLEAN NOT NULL DEFAULT TRUE,
	category TEXT NOT NULL DEFAULT '',
	fire_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}

// --- Tasks ---

func (s *PostgresStore) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

func scanPgTask(scan func(dest ...any) error) (models.Task, error) {
	var t models.Task
	var category, status, source string
	var deadline sql.NullTime
	var deletedAt sql.NullString

	err := scan(
		&t.ID, &t.Title, &category, &deadline, &t.Description, &status, &source, &t.CreatedAt,
		&t.ContactName, &t.ContactEmail, &t.PdfReady, &deletedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	t.Category = constants.TaskCategory(category)
	t.Status = constants.TaskStatus(status)
	t.Source = constants.TaskSource(source)

	if deadline.Valid {
		d := deadline.Time
		t.Deadline = &d
	}
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.String
	}

	return t, nil
}

func (s *PostgresStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND deleted_at IS NULL`, id)

	task, err := scanPgTask(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, fmt.Errorf("task with id %s not found", id)
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *PostgresStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanPgTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *PostgresStore) UpdateTask(task models.Task) error {
	var deadline sql.NullTime
	if task.Deadline != nil {
		deadline = sql.NullTime{Time: *task.Deadline, Valid: true}
	}
	var deletedAt sql.NullString
	if task.DeletedAt != nil {
		deletedAt = sql.NullString{String: *task.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO tasks (
			id, title, category, deadline, description, status, source, created_at,
			contact_name, contact_email, pdf_ready, deleted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			deadline = EXCLUDED.deadline,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			source = EXCLUDED.source,
			created_at = EXCLUDED.created_at,
			contact_name = EXCLUDED.contact_name,
			contact_email = EXCLUDED.contact_email,
			pdf_ready = EXCLUDED.pdf_ready,
			deleted_at = EXCLUDED.deleted_at`,
		task.ID, task.Title, task.Category, deadline, task.Description, task.Status, task.Source,
		task.CreatedAt, task.ContactName, task.ContactEmail, task.PdfReady, deletedAt,
	)
	return err
}

func (s *PostgresStore) SetTaskDeadline(id string, deadline time.Time) error {
	res, err := s.db.Exec(
		`UPDATE tasks SET deadline = $1 WHERE id = $2 AND deleted_at IS NULL`,
		deadline, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (s *PostgresStore) SetTaskStatus(id string, status constants.TaskStatus) error {
	res, err := s.db.Exec(
		`UPDATE tasks SET status = $1 WHERE id = $2 AND deleted_at IS NULL`,
		status, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (s *PostgresStore) DeleteTask(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow(`SELECT deleted_at FROM tasks WHERE id = $1`, id).Scan(&deletedAt)
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
	_, err = s.db.Exec(`UPDATE tasks SET deleted_at = $1 WHERE id = $2`, now, id)
	return err
}

// --- Profile ---

func (s *PostgresStore) GetProfile() (models.Profile, error) {
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

func (s *PostgresStore) SaveProfile(profile models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO profile (id, data) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, string(data))
	return err
}

// --- Notification settings ---

func (s *PostgresStore) GetNotificationSettings() (models.NotificationSettings, error) {
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

func (s *PostgresStore) SaveNotificationSettings(settings models.NotificationSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO notification_settings (id, data) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, string(data))
	return err
}

// --- Pending notifications ---

func (s *PostgresStore) AddPendingNotification(p models.PendingNotification) error {
	meta, err := json.Marshal(p.Meta)
	if err != nil {
		return fmt.Errorf("failed to encode notification meta: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO pending_notifications (
			identifier, title, body, meta, sound, category, fire_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (identifier) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			meta = EXCLUDED.meta,
			sound = EXCLUDED.sound,
			category = EXCLUDED.category,
			fire_at = EXCLUDED.fire_at,
			created_at = EXCLUDED.created_at`,
		p.Identifier, p.Title, p.Body, string(meta), p.Sound, p.Category, p.FireAt, p.CreatedAt,
	)
	return err
}

func (s *PostgresStore) DeletePendingNotification(identifier string) error {
	_, err := s.db.Exec(`DELETE FROM pending_notifications WHERE identifier = $1`, identifier)
	return err
}

func (s *PostgresStore) DeleteAllPendingNotifications() error {
	_, err := s.db.Exec(`DELETE FROM pending_notifications`)
	return err
}

func (s *PostgresStore) GetPendingNotifications() ([]models.PendingNotification, error) {
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
		var meta string
		if err := rows.Scan(&p.Identifier, &p.Title, &p.Body, &meta, &p.Sound, &p.Category, &p.FireAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(meta), &p.Meta); err != nil {
			return nil, fmt.Errorf("failed to decode notification meta for %s: %w", p.Identifier, err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}
