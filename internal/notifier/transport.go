// Package notifier owns the notification transport boundary: the
// capability interface the trigger scheduler talks to, plus the
// concrete implementations (durable spool, in-memory).
package notifier

import (
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
)

// Content is the displayable payload of a scheduled notification.
// Data must be self-sufficient: it is the only state available to the
// action handler on a cold start.
type Content struct {
	Title    string
	Body     string
	Data     models.NotificationMeta
	Sound    bool
	Category string
}

// Scheduled pairs an identifier with its content and fire time.
type Scheduled struct {
	Identifier string
	Content    Content
	FireAt     time.Time
}

// Transport is the platform notification capability. Implementations
// are selected once at process start. Cancellation applies only to
// not-yet-fired items; a notification mid-delivery during CancelAll is
// an accepted race at this layer.
type Transport interface {
	ScheduleOnce(identifier string, content Content, fireAfterSeconds int) error
	CancelAll() error
	ListScheduled() ([]Scheduled, error)
}

// Button is one action button of a notification category.
type Button struct {
	Identifier string
	Label      string
}

// TaskActionButtons returns the buttons of the task-actions category,
// registered once at process start. None is destructive at the platform
// level; deletion is confirmed by the action handler, not the button.
func TaskActionButtons() []Button {
	return []Button{
		{Identifier: constants.ActionDelayOneDay, Label: "Demain"},
		{Identifier: constants.ActionDelayThreeDay, Label: "Dans 3 jours"},
		{Identifier: constants.ActionDeleteTask, Label: "Supprimer"},
	}
}
