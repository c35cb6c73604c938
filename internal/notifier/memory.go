package notifier

import (
	"fmt"
	"time"
)

// MemoryTransport keeps the scheduled set in memory. Used by tests and
// by dry-run commands.
type MemoryTransport struct {
	scheduled []Scheduled
	now       func() time.Time
}

func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{now: time.Now}
}

// SetClock overrides the transport's clock. Test seam.
func (t *MemoryTransport) SetClock(now func() time.Time) {
	t.now = now
}

func (t *MemoryTransport) ScheduleOnce(identifier string, content Content, fireAfterSeconds int) error {
	if identifier == "" {
		return fmt.Errorf("notification identifier cannot be empty")
	}
	if fireAfterSeconds < 1 {
		fireAfterSeconds = 1
	}
	t.scheduled = append(t.scheduled, Scheduled{
		Identifier: identifier,
		Content:    content,
		FireAt:     t.now().Add(time.Duration(fireAfterSeconds) * time.Second),
	})
	return nil
}

func (t *MemoryTransport) CancelAll() error {
	t.scheduled = nil
	return nil
}

func (t *MemoryTransport) ListScheduled() ([]Scheduled, error) {
	out := make([]Scheduled, len(t.scheduled))
	copy(out, t.scheduled)
	return out, nil
}
