package storage

import (
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	// SetTaskDeadline and SetTaskStatus mutate a task knowing only its
	// id. The action handler relies on this on cold start: no task list
	// has been loaded when the OS invokes it.
	SetTaskDeadline(id string, deadline time.Time) error
	SetTaskStatus(id string, status constants.TaskStatus) error
	DeleteTask(id string) error

	// Profile
	GetProfile() (models.Profile, error)
	SaveProfile(models.Profile) error

	// Notification settings (per-device toggles)
	GetNotificationSettings() (models.NotificationSettings, error)
	SaveNotificationSettings(models.NotificationSettings) error

	// Pending notifications (the spool behind the durable transport)
	AddPendingNotification(models.PendingNotification) error
	DeletePendingNotification(identifier string) error
	DeleteAllPendingNotifications() error
	GetPendingNotifications() ([]models.PendingNotification, error)

	// Utils
	GetConfigPath() string
}
