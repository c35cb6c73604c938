package trigger

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
	"github.com/foyerapp/foyer/internal/notifier"
)

func allOn() models.NotificationSettings {
	return models.NotificationSettings{
		MorningEnabled:   true,
		DayBeforeEnabled: true,
		EveningEnabled:   true,
		OverdueEnabled:   true,
		SmartEnabled:     true,
		City:             constants.DefaultCity,
		Timezone:         "UTC",
	}
}

func overdueTask(id string, deadline time.Time) models.Task {
	return models.Task{
		ID:       id,
		Title:    "Tâche " + id,
		Status:   constants.StatusTodo,
		Source:   constants.SourceManual,
		Deadline: &deadline,
	}
}

func identifiers(t *testing.T, transport *notifier.MemoryTransport) []string {
	t.Helper()
	scheduled, err := transport.ListScheduled()
	if err != nil {
		t.Fatalf("ListScheduled() error = %v", err)
	}
	var out []string
	for _, s := range scheduled {
		out = append(out, s.Identifier)
	}
	sort.Strings(out)
	return out
}

// countPrefix counts identifiers of the given kind. The segment after
// the kind is always a date, which keeps "overdue" from matching
// "overdue-summary" identifiers.
func countPrefix(ids []string, kind constants.NotificationKind) int {
	n := 0
	for _, id := range ids {
		rest, ok := strings.CutPrefix(id, string(kind)+"-")
		if ok && len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
			n++
		}
	}
	return n
}

func TestEffectiveDate(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "one minute before trigger stays today",
			now:  time.Date(2025, 3, 2, 7, 29, 0, 0, time.UTC),
			want: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "exact trigger minute rolls to tomorrow",
			now:  time.Date(2025, 3, 2, 7, 30, 0, 0, time.UTC),
			want: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "one minute after trigger rolls to tomorrow",
			now:  time.Date(2025, 3, 2, 7, 31, 0, 0, time.UTC),
			want: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EffectiveDate(tt.now, constants.MorningTriggerTime)
			if err != nil {
				t.Fatalf("EffectiveDate() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("EffectiveDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectiveDateIndependentPerKind(t *testing.T) {
	// 08:00 is past the morning trigger but before the overdue one: the
	// same now must resolve to different dates for the two kinds.
	now := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)

	morning, err := EffectiveDate(now, constants.MorningTriggerTime)
	if err != nil {
		t.Fatalf("EffectiveDate(morning) error = %v", err)
	}
	overdue, err := EffectiveDate(now, constants.OverdueTriggerTime)
	if err != nil {
		t.Fatalf("EffectiveDate(overdue) error = %v", err)
	}

	if morning.Day() != 3 {
		t.Errorf("morning effective date = %v, want tomorrow", morning)
	}
	if overdue.Day() != 2 {
		t.Errorf("overdue effective date = %v, want today", overdue)
	}
}

func TestIdentifier(t *testing.T) {
	date := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	if got := Identifier(constants.KindMorning, date, ""); got != "morning-2025-03-02" {
		t.Errorf("Identifier() = %q, want %q", got, "morning-2025-03-02")
	}
	if got := Identifier(constants.KindOverdue, date, "abc"); got != "overdue-2025-03-02-abc" {
		t.Errorf("Identifier() = %q, want %q", got, "overdue-2025-03-02-abc")
	}
}

func TestRescheduleIsDeterministic(t *testing.T) {
	now := time.Date(2025, 3, 2, 6, 0, 0, 0, time.UTC)
	ctx := models.SchedulerContext{
		Tasks: []models.Task{
			overdueTask("late", time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)),
			overdueTask("today", time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)),
			overdueTask("tomorrow", time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)),
		},
		Profile: models.Profile{FirstName: "Claire"},
		Now:     now,
	}

	transport := notifier.NewMemoryTransport()
	scheduler := New(transport)

	if err := scheduler.Reschedule(ctx, allOn()); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}
	first := identifiers(t, transport)

	if err := scheduler.Reschedule(ctx, allOn()); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}
	second := identifiers(t, transport)

	if len(first) == 0 {
		t.Fatal("Reschedule() scheduled nothing")
	}
	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Errorf("identifier sets differ between reschedules:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestRescheduleOverdueCapWithSummary(t *testing.T) {
	now := time.Date(2025, 3, 2, 6, 0, 0, 0, time.UTC)
	var tasks []models.Task
	for i := 0; i < 7; i++ {
		tasks = append(tasks, overdueTask(
			fmt.Sprintf("t%d", i),
			time.Date(2025, 2, 10+i, 0, 0, 0, 0, time.UTC)))
	}
	ctx := models.SchedulerContext{Tasks: tasks, Now: now}

	transport := notifier.NewMemoryTransport()
	if err := New(transport).Reschedule(ctx, allOn()); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	ids := identifiers(t, transport)
	if got := countPrefix(ids, constants.KindOverdue); got != constants.MaxOverdueNotifs {
		t.Errorf("scheduled %d overdue notifications, want %d", got, constants.MaxOverdueNotifs)
	}
	if got := countPrefix(ids, constants.KindOverdueMore); got != 1 {
		t.Errorf("scheduled %d overdue summaries, want 1", got)
	}

	// The cap keeps the oldest deadlines; t5 and t6 fold into the summary.
	for _, id := range ids {
		if strings.HasSuffix(id, "-t5") || strings.HasSuffix(id, "-t6") {
			t.Errorf("newest overdue task scheduled individually: %s", id)
		}
	}
}

func TestRescheduleHonorsToggles(t *testing.T) {
	now := time.Date(2025, 3, 2, 6, 0, 0, 0, time.UTC)
	ctx := models.SchedulerContext{
		Tasks: []models.Task{overdueTask("late", time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC))},
		Now:   now,
	}

	settings := allOn()
	settings.OverdueEnabled = false
	settings.MorningEnabled = false

	transport := notifier.NewMemoryTransport()
	if err := New(transport).Reschedule(ctx, settings); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	ids := identifiers(t, transport)
	if countPrefix(ids, constants.KindOverdue) != 0 {
		t.Error("overdue notification scheduled while toggle is off")
	}
	if countPrefix(ids, constants.KindMorning) != 0 {
		t.Error("morning notification scheduled while toggle is off")
	}
}

func TestRainChildrenSuppressedByMorning(t *testing.T) {
	now := time.Date(2025, 3, 2, 6, 0, 0, 0, time.UTC)
	rainy := &models.WeatherSummary{IsRaining: true, TemperatureC: 9}
	profile := models.Profile{Children: []models.Child{{Name: "Léa"}}}
	ctx := models.SchedulerContext{Profile: profile, Weather: rainy, Now: now}

	tests := []struct {
		name           string
		morningEnabled bool
		wantRain       int
	}{
		{name: "morning on absorbs the rain warning", morningEnabled: true, wantRain: 0},
		{name: "morning off emits the rain warning", morningEnabled: false, wantRain: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := allOn()
			settings.MorningEnabled = tt.morningEnabled

			transport := notifier.NewMemoryTransport()
			if err := New(transport).Reschedule(ctx, settings); err != nil {
				t.Fatalf("Reschedule() error = %v", err)
			}
			if got := countPrefix(identifiers(t, transport), constants.KindRainChildren); got != tt.wantRain {
				t.Errorf("rain-children notifications = %d, want %d", got, tt.wantRain)
			}
		})
	}
}

func TestWeekendSchedulesNextSaturday(t *testing.T) {
	// Wednesday: the weekend digest lands on Saturday the 8th.
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	ctx := models.SchedulerContext{
		Tasks: []models.Task{{
			ID:     "simple",
			Title:  "Trier les photos",
			Status: constants.StatusTodo,
			Source: constants.SourceManual,
		}},
		Now: now,
	}

	transport := notifier.NewMemoryTransport()
	if err := New(transport).Reschedule(ctx, allOn()); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	want := "weekend-2025-03-08"
	for _, id := range identifiers(t, transport) {
		if strings.HasPrefix(id, "weekend-") && id != want {
			t.Errorf("weekend identifier = %q, want %q", id, want)
		}
	}
	if countPrefix(identifiers(t, transport), constants.KindWeekend) != 1 {
		t.Error("expected exactly one weekend digest")
	}
}

func TestWeekendSaturdayAfterTriggerRollsAWeek(t *testing.T) {
	// Saturday 10:00 is past the 09:30 trigger: next occurrence is the
	// following Saturday.
	now := time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)

	day, err := nextSaturday(now, constants.WeekendTriggerTime)
	if err != nil {
		t.Fatalf("nextSaturday() error = %v", err)
	}
	want := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Errorf("nextSaturday() = %v, want %v", day, want)
	}
}

func TestTriggerUrgentTask(t *testing.T) {
	now := time.Date(2025, 3, 2, 14, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	urgent := models.Task{
		ID:       "u1",
		Title:    "Répondre à l'école",
		Status:   constants.StatusTodo,
		Source:   constants.SourceEmail,
		Deadline: &deadline,
	}

	tests := []struct {
		name     string
		task     models.Task
		smart    bool
		wantSent bool
	}{
		{name: "urgent with smart on", task: urgent, smart: true, wantSent: true},
		{name: "smart off suppresses", task: urgent, smart: false, wantSent: false},
		{
			name: "manual source never urgent",
			task: func() models.Task {
				t := urgent
				t.Source = constants.SourceManual
				return t
			}(),
			smart:    true,
			wantSent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := allOn()
			settings.SmartEnabled = tt.smart

			transport := notifier.NewMemoryTransport()
			if err := New(transport).TriggerUrgentTask(tt.task, settings, now); err != nil {
				t.Fatalf("TriggerUrgentTask() error = %v", err)
			}
			got := countPrefix(identifiers(t, transport), constants.KindUrgent) == 1
			if got != tt.wantSent {
				t.Errorf("urgent notification sent = %v, want %v", got, tt.wantSent)
			}
		})
	}
}
