package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/foyerapp/foyer/internal/models"
	"github.com/foyerapp/foyer/internal/notifier"
	"github.com/foyerapp/foyer/internal/storage"
	"github.com/foyerapp/foyer/internal/trigger"
	"github.com/foyerapp/foyer/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Transport notifier.Transport
	Scheduler *trigger.Scheduler
	Weather   trigger.WeatherProvider
	Quotes    trigger.QuoteProvider
}

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	BulletStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	OverdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	DoneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
)

// Reschedule rebuilds the full scheduled-notification set from fresh
// state. Invoked after every task or profile mutation, toggle change,
// and on explicit request.
func (c *Context) Reschedule() error {
	settings, err := c.Store.GetNotificationSettings()
	if err != nil {
		return fmt.Errorf("failed to get notification settings: %w", err)
	}

	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}

	schedCtx, err := trigger.BuildContext(c.Store, c.Weather, c.Quotes, settings, now)
	if err != nil {
		return err
	}

	return c.Scheduler.Reschedule(schedCtx, settings)
}

// FormatDeadline renders a task deadline for list output.
func FormatDeadline(t *models.Task, now time.Time) string {
	if t.Deadline == nil {
		return "—"
	}
	days := utils.WholeDaysBetween(now, *t.Deadline)
	switch {
	case days < 0:
		return OverdueStyle.Render(fmt.Sprintf("%s (en retard)", utils.DateKey(*t.Deadline)))
	case days == 0:
		return "aujourd'hui"
	case days == 1:
		return "demain"
	default:
		return utils.DateKey(*t.Deadline)
	}
}
