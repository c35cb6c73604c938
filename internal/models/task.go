package models

import (
	"fmt"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
)

type Task struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Category     constants.TaskCategory `json:"category"`
	Deadline     *time.Time             `json:"deadline,omitempty"` // frequently date-only at local midnight
	Description  string                 `json:"description,omitempty"`
	Status       constants.TaskStatus   `json:"status"`
	Source       constants.TaskSource   `json:"source"`
	CreatedAt    time.Time              `json:"created_at"`
	ContactName  string                 `json:"contact_name,omitempty"`
	ContactEmail string                 `json:"contact_email,omitempty"`
	PdfReady     bool                   `json:"pdf_ready"`
	DeletedAt    *string                `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}

	switch t.Category {
	case constants.CategorySchool, constants.CategoryHealth, constants.CategoryAdmin,
		constants.CategoryActivities, constants.CategoryHome, constants.CategoryOther:
	case "":
		return fmt.Errorf("task category cannot be empty")
	default:
		return fmt.Errorf("invalid task category: %s", t.Category)
	}

	switch t.Status {
	case constants.StatusTodo, constants.StatusInProgress, constants.StatusDone:
	default:
		return fmt.Errorf("invalid task status: %s", t.Status)
	}

	switch t.Source {
	case constants.SourceManual, constants.SourceEmail, constants.SourceProfile, constants.SourcePhoto:
	default:
		return fmt.Errorf("invalid task source: %s", t.Source)
	}

	return nil
}

// IsDone returns true when the task has been completed
func (t *Task) IsDone() bool {
	return t.Status == constants.StatusDone
}

// HasDeadline returns true when the task carries a deadline
func (t *Task) HasDeadline() bool {
	return t.Deadline != nil
}
