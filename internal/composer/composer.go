// Package composer builds the human-readable notification bodies.
// Every function is deterministic from its explicit inputs; nothing in
// here reads the clock or does I/O.
package composer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
	"github.com/foyerapp/foyer/internal/utils"
)

// Message is a composed notification before it is bound to an
// identifier and a fire time.
type Message struct {
	Title string
	Body  string
}

// Morning builds the daily digest: greeting, optional weather line,
// then the day's tasks with an overdue addendum.
func Morning(profile models.Profile, weather *models.WeatherSummary, due, overdue []models.Task) Message {
	var b strings.Builder

	if profile.FirstName != "" {
		fmt.Fprintf(&b, "Bonjour %s,\n", profile.FirstName)
	} else {
		b.WriteString("Bonjour,\n")
	}

	if weather != nil {
		fmt.Fprintf(&b, "%d°C — %s\n", int(math.Round(weather.TemperatureC)), weather.Outfit)
	}

	b.WriteString("\n")

	switch {
	case len(due) > 0:
		b.WriteString("Aujourd'hui :\n")
		writeTaskList(&b, due, constants.MaxListedTasks)
		if n := len(overdue); n > 0 {
			fmt.Fprintf(&b, "Et %d %s en retard.\n", n, pluralize(n, "tâche", "tâches"))
		}
	case len(overdue) > 0:
		fmt.Fprintf(&b, "⚠️ %d %s en retard :\n", len(overdue), pluralize(len(overdue), "tâche", "tâches"))
		writeTaskList(&b, overdue, constants.MaxListedTasks)
	default:
		b.WriteString("Rien de prévu aujourd'hui.\n")
	}

	b.WriteString("\nBonne journée !")

	return Message{Title: "Votre journée", Body: b.String()}
}

// DayBefore builds the J-1 heads-up for tomorrow's tasks. Phrasing is
// tiered by count; with zero tasks the notification is silent and ok is
// false.
func DayBefore(tomorrow []models.Task) (Message, bool) {
	switch n := len(tomorrow); {
	case n == 0:
		return Message{}, false
	case n == 1:
		return Message{
			Title: "Demain",
			Body:  fmt.Sprintf("Demain : %s", tomorrow[0].Title),
		}, true
	case n <= constants.MaxListedTasks:
		var b strings.Builder
		b.WriteString("Demain :\n")
		writeTaskList(&b, tomorrow, constants.MaxListedTasks)
		return Message{Title: "Demain", Body: strings.TrimRight(b.String(), "\n")}, true
	default:
		return Message{
			Title: "Demain",
			Body:  fmt.Sprintf("Demain : %s et %d autres tâches", tomorrow[0].Title, n-1),
		}, true
	}
}

// Evening builds the evening notification. Quote text only, no task
// data; ok is false when no quote is available.
func Evening(quote *models.Quote) (Message, bool) {
	if quote == nil || quote.Text == "" {
		return Message{}, false
	}
	return Message{Title: "Bonne soirée", Body: quote.Text}, true
}

// Overdue builds the per-task overdue notification. Days late is the
// whole-day difference between the effective date and the deadline's
// calendar date.
func Overdue(task models.Task, effectiveDate time.Time) Message {
	days := 0
	if task.Deadline != nil {
		days = utils.WholeDaysBetween(*task.Deadline, effectiveDate)
	}
	return Message{
		Title: "Tâche en retard",
		Body:  fmt.Sprintf("« %s » — %d %s de retard", task.Title, days, pluralize(days, "jour", "jours")),
	}
}

// OverdueSummary covers the overdue tasks beyond the per-task cap.
func OverdueSummary(remainder int) Message {
	return Message{
		Title: "Tâches en retard",
		Body:  fmt.Sprintf("%d %s en retard.", remainder, pluralize(remainder, "autre tâche", "autres tâches")),
	}
}

// RainChildren builds the school-run rain warning.
func RainChildren(weather models.WeatherSummary, profile models.Profile) Message {
	body := "Il pleut ce matin, pensez aux manteaux et aux bottes pour les enfants."
	if weather.Outfit != "" {
		body = fmt.Sprintf("Il pleut ce matin — %s Pensez aux manteaux pour les enfants.", weather.Outfit)
	}
	return Message{Title: "Pluie ce matin", Body: body}
}

// Weekend builds the Saturday digest from the rule engine's selection.
// ok is false when the selection is empty; no notification is emitted.
func Weekend(selection []models.Task) (Message, bool) {
	if len(selection) == 0 {
		return Message{}, false
	}
	var b strings.Builder
	b.WriteString("Ce week-end, quelques petites choses faciles à cocher :\n")
	writeTaskList(&b, selection, constants.MaxWeekendTasks)
	return Message{Title: "Votre week-end", Body: strings.TrimRight(b.String(), "\n")}, true
}

// Urgent builds the immediate heads-up for a freshly ingested task with
// a close deadline.
func Urgent(task models.Task) Message {
	when := ""
	if task.Deadline != nil {
		when = fmt.Sprintf(" (échéance le %s)", task.Deadline.Format("02/01"))
	}
	return Message{
		Title: "Tâche urgente",
		Body:  fmt.Sprintf("« %s » arrive à échéance%s.", task.Title, when),
	}
}

// NearDeadline builds the immediate reminder for a task due tomorrow or sooner.
func NearDeadline(task models.Task) Message {
	return Message{
		Title: "Échéance proche",
		Body:  fmt.Sprintf("« %s » est à rendre très bientôt.", task.Title),
	}
}

func writeTaskList(b *strings.Builder, tasks []models.Task, max int) {
	for i, t := range tasks {
		if i >= max {
			break
		}
		fmt.Fprintf(b, "• %s\n", t.Title)
	}
}

func pluralize(n int, singular, plural string) string {
	if n > 1 {
		return plural
	}
	return singular
}
