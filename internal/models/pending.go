package models

import "time"

// PendingNotification is a scheduled, not-yet-fired notification as
// persisted by the spool transport. Identifier is the deterministic
// dedup key (kind-date[-taskID]).
type PendingNotification struct {
	Identifier string           `json:"identifier"`
	Title      string           `json:"title"`
	Body       string           `json:"body"`
	Meta       NotificationMeta `json:"meta"`
	Sound      bool             `json:"sound"`
	Category   string           `json:"category,omitempty"`
	FireAt     time.Time        `json:"fire_at"`
	CreatedAt  time.Time        `json:"created_at"`
}
