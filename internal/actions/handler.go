// Package actions interprets a notification-response event into
// idempotent task mutations. It runs in the OS-invoked callback
// context, possibly in a freshly started process: everything it needs
// must come from the notification payload itself.
package actions

import (
	"fmt"
	"strings"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/logger"
	"github.com/foyerapp/foyer/internal/models"
	"github.com/foyerapp/foyer/internal/utils"
)

// TaskStore is the mutation surface the handler needs. Both store
// backends satisfy it, and both work knowing only a task id.
type TaskStore interface {
	DeleteTask(id string) error
	SetTaskDeadline(id string, deadline time.Time) error
}

// ResponseEvent is the opaque event delivered by the notification
// transport when the user interacts with a notification.
type ResponseEvent struct {
	ActionIdentifier string                  `json:"action_identifier"`
	Meta             models.NotificationMeta `json:"meta"`
}

// Outcome describes what the handler did with an event.
type Outcome struct {
	Handled  bool
	Action   string
	TaskID   string
	DeepLink *models.DeepLink // navigation is the caller's job
}

type Handler struct {
	store TaskStore
	now   func() time.Time
}

func New(store TaskStore) *Handler {
	return &Handler{store: store, now: time.Now}
}

// SetClock overrides the handler's clock. Test seam.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

// Handle interprets a response event. Malformed metadata and unknown
// action identifiers are safe no-ops. Store errors are returned so the
// caller can surface them to the user; swallowing them silently is a
// past regression this code must not reintroduce.
func (h *Handler) Handle(event ResponseEvent) (Outcome, error) {
	if event.Meta.Type == "" {
		logger.Debug("Notification response without a type, ignoring")
		return Outcome{Handled: false}, nil
	}

	// A plain tap carries no mutation; hand the deep link back for
	// navigation.
	if event.ActionIdentifier == "" || event.ActionIdentifier == constants.PlainTapIdentifier {
		return Outcome{Handled: true, Action: "open", DeepLink: event.Meta.DeepLink}, nil
	}

	switch matchAction(event.ActionIdentifier) {
	case constants.ActionDeleteTask:
		return h.deleteTask(event.Meta)
	case constants.ActionDelayOneDay:
		return h.delayTask(event.Meta, 1)
	case constants.ActionDelayThreeDay:
		return h.delayTask(event.Meta, 3)
	default:
		logger.Warn("Unknown notification action identifier", "identifier", event.ActionIdentifier)
		return Outcome{Handled: false}, nil
	}
}

// matchAction resolves an action identifier to one of the known
// actions: exact match first, substring second. Some platforms decorate
// registered identifiers with app-specific prefixes; the tolerant
// fallback keeps buttons working in that case. Whether the decoration
// is a genuine platform quirk is unconfirmed — see DESIGN.md.
func matchAction(identifier string) string {
	known := []string{
		constants.ActionDeleteTask,
		constants.ActionDelayOneDay,
		constants.ActionDelayThreeDay,
	}
	for _, k := range known {
		if identifier == k {
			return k
		}
	}

	upper := strings.ToUpper(identifier)
	switch {
	case strings.Contains(upper, "DELETE"):
		return constants.ActionDeleteTask
	case strings.Contains(upper, "DELAY_TASK_1") || strings.Contains(upper, "DELAY_1"):
		return constants.ActionDelayOneDay
	case strings.Contains(upper, "DELAY_TASK_3") || strings.Contains(upper, "DELAY_3"):
		return constants.ActionDelayThreeDay
	default:
		return ""
	}
}

func (h *Handler) deleteTask(meta models.NotificationMeta) (Outcome, error) {
	if meta.TaskID == "" {
		return Outcome{Handled: false}, fmt.Errorf("delete action without a task id")
	}
	if err := h.store.DeleteTask(meta.TaskID); err != nil {
		return Outcome{Handled: false}, fmt.Errorf("failed to delete task %s: %w", meta.TaskID, err)
	}
	logger.Info("Task deleted from notification action", "task", meta.TaskID)
	return Outcome{Handled: true, Action: "delete", TaskID: meta.TaskID}, nil
}

// delayTask moves the deadline to startOfToday + days. Deliberately
// anchored to today rather than the previous deadline: however overdue
// the task was, the result is no longer overdue.
func (h *Handler) delayTask(meta models.NotificationMeta, days int) (Outcome, error) {
	if meta.TaskID == "" {
		return Outcome{Handled: false}, fmt.Errorf("delay action without a task id")
	}

	newDeadline := utils.AddDays(h.now(), days)
	if err := h.store.SetTaskDeadline(meta.TaskID, newDeadline); err != nil {
		return Outcome{Handled: false}, fmt.Errorf("failed to delay task %s: %w", meta.TaskID, err)
	}
	logger.Info("Task delayed from notification action", "task", meta.TaskID, "days", days)
	return Outcome{Handled: true, Action: fmt.Sprintf("delay+%d", days), TaskID: meta.TaskID}, nil
}
