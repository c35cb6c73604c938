package notifier

import (
	"fmt"
	"sort"
	"time"

	"github.com/foyerapp/foyer/internal/logger"
	"github.com/foyerapp/foyer/internal/models"
)

// SpoolStore is the persistence the durable transport needs. The
// storage Provider satisfies it.
type SpoolStore interface {
	AddPendingNotification(models.PendingNotification) error
	DeletePendingNotification(identifier string) error
	DeleteAllPendingNotifications() error
	GetPendingNotifications() ([]models.PendingNotification, error)
}

// SpoolTransport persists scheduled notifications in the store. A
// separate delivery pass (cron-invoked `foyer notify`) fires the due
// ones through the tray agent, so scheduling survives process exits.
type SpoolTransport struct {
	store SpoolStore
	now   func() time.Time
}

func NewSpoolTransport(store SpoolStore) *SpoolTransport {
	return &SpoolTransport{store: store, now: time.Now}
}

func (t *SpoolTransport) ScheduleOnce(identifier string, content Content, fireAfterSeconds int) error {
	if identifier == "" {
		return fmt.Errorf("notification identifier cannot be empty")
	}
	if fireAfterSeconds < 1 {
		fireAfterSeconds = 1
	}

	now := t.now()
	pending := models.PendingNotification{
		Identifier: identifier,
		Title:      content.Title,
		Body:       content.Body,
		Meta:       content.Data,
		Sound:      content.Sound,
		Category:   content.Category,
		FireAt:     now.Add(time.Duration(fireAfterSeconds) * time.Second),
		CreatedAt:  now,
	}
	return t.store.AddPendingNotification(pending)
}

func (t *SpoolTransport) CancelAll() error {
	return t.store.DeleteAllPendingNotifications()
}

func (t *SpoolTransport) ListScheduled() ([]Scheduled, error) {
	pending, err := t.store.GetPendingNotifications()
	if err != nil {
		return nil, err
	}
	scheduled := make([]Scheduled, 0, len(pending))
	for _, p := range pending {
		scheduled = append(scheduled, Scheduled{
			Identifier: p.Identifier,
			Content: Content{
				Title:    p.Title,
				Body:     p.Body,
				Data:     p.Meta,
				Sound:    p.Sound,
				Category: p.Category,
			},
			FireAt: p.FireAt,
		})
	}
	return scheduled, nil
}

// Sender delivers a single notification to the user's screen.
type Sender interface {
	Send(title, body string) error
}

// Deliverer drains due notifications from the spool through a Sender.
type Deliverer struct {
	store  SpoolStore
	sender Sender
}

func NewDeliverer(store SpoolStore, sender Sender) *Deliverer {
	return &Deliverer{store: store, sender: sender}
}

// DeliverDue sends every spooled notification whose fire time has
// passed, oldest first, and removes it from the spool. A send failure
// leaves the item spooled for the next pass.
func (d *Deliverer) DeliverDue(now time.Time) (int, error) {
	pending, err := d.store.GetPendingNotifications()
	if err != nil {
		return 0, fmt.Errorf("failed to list pending notifications: %w", err)
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].FireAt.Before(pending[j].FireAt)
	})

	delivered := 0
	for _, p := range pending {
		if p.FireAt.After(now) {
			continue
		}
		if err := d.sender.Send(p.Title, p.Body); err != nil {
			logger.Warn("Notification delivery failed", "identifier", p.Identifier, "error", err)
			continue
		}
		if err := d.store.DeletePendingNotification(p.Identifier); err != nil {
			return delivered, fmt.Errorf("failed to dequeue %s: %w", p.Identifier, err)
		}
		delivered++
	}
	return delivered, nil
}
