// Package trigger converts fixed wall-clock schedules into concrete
// one-shot notifications with freshly composed content. Every
// reschedule cancels the whole scheduled set and rebuilds it; triggers
// are never repeating because content must be recomputed each day.
package trigger

import (
	"fmt"
	"sort"
	"time"

	"github.com/foyerapp/foyer/internal/composer"
	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/logger"
	"github.com/foyerapp/foyer/internal/models"
	"github.com/foyerapp/foyer/internal/notifier"
	"github.com/foyerapp/foyer/internal/rules"
	"github.com/foyerapp/foyer/internal/utils"
)

type Scheduler struct {
	transport notifier.Transport
}

func New(transport notifier.Transport) *Scheduler {
	return &Scheduler{transport: transport}
}

// Identifier builds the deterministic dedup key for a notification:
// kind-YYYY-MM-DD, with the task id appended for per-task kinds. Two
// reschedules from the same context and the same now produce identical
// identifier sets.
func Identifier(kind constants.NotificationKind, effectiveDate time.Time, taskID string) string {
	id := fmt.Sprintf("%s-%s", kind, utils.DateKey(effectiveDate))
	if taskID != "" {
		id += "-" + taskID
	}
	return id
}

// EffectiveDate returns the calendar date on which a kind's next firing
// occurs. If now is at or past the kind's trigger time today, the next
// firing is tomorrow. The correction is independent per kind: a single
// now can be pre-trigger for one kind and post-trigger for another.
func EffectiveDate(now time.Time, clock string) (time.Time, error) {
	today := utils.StartOfDay(now)
	triggerAt, err := utils.At(today, clock)
	if err != nil {
		return time.Time{}, err
	}
	if !now.Before(triggerAt) {
		return utils.AddDays(now, 1), nil
	}
	return today, nil
}

// nextSaturday returns the next Saturday whose trigger time has not yet
// passed, which may be today.
func nextSaturday(now time.Time, clock string) (time.Time, error) {
	day := utils.StartOfDay(now)
	for day.Weekday() != time.Saturday {
		day = utils.AddDays(day, 1)
	}
	triggerAt, err := utils.At(day, clock)
	if err != nil {
		return time.Time{}, err
	}
	if !now.Before(triggerAt) {
		day = utils.AddDays(day, 7)
	}
	return day, nil
}

// delayUntil returns the whole seconds from now until the given date's
// trigger time, clamped to the minimum positive delay.
func delayUntil(now, effectiveDate time.Time, clock string) (int, error) {
	fireAt, err := utils.At(effectiveDate, clock)
	if err != nil {
		return 0, err
	}
	delay := int(fireAt.Sub(now).Seconds())
	if delay < constants.MinScheduleDelaySec {
		delay = constants.MinScheduleDelaySec
	}
	return delay, nil
}

// Reschedule cancels every previously scheduled notification and
// rebuilds the full set from the given context. Not atomic with respect
// to the transport: a notification mid-delivery during the cancel is an
// accepted race (no cross-process lock exists at this layer).
func (s *Scheduler) Reschedule(ctx models.SchedulerContext, settings models.NotificationSettings) error {
	if err := s.transport.CancelAll(); err != nil {
		return fmt.Errorf("failed to cancel scheduled notifications: %w", err)
	}

	open := rules.ExcludeDone(ctx.Tasks)

	if settings.MorningEnabled {
		if err := s.scheduleMorning(ctx, open); err != nil {
			return err
		}
	}
	if settings.DayBeforeEnabled {
		if err := s.scheduleDayBefore(ctx, open); err != nil {
			return err
		}
	}
	if settings.EveningEnabled {
		if err := s.scheduleEvening(ctx); err != nil {
			return err
		}
	}
	if settings.OverdueEnabled {
		if err := s.scheduleOverdue(ctx, open); err != nil {
			return err
		}
	}
	if settings.SmartEnabled {
		if err := s.scheduleRainChildren(ctx, settings); err != nil {
			return err
		}
		if err := s.scheduleWeekend(ctx, open); err != nil {
			return err
		}
	}

	return nil
}

func (s *Scheduler) scheduleMorning(ctx models.SchedulerContext, open []models.Task) error {
	effDate, err := EffectiveDate(ctx.Now, constants.MorningTriggerTime)
	if err != nil {
		return err
	}

	due := rules.TasksDueToday(open, effDate)
	overdue := rules.OverdueTasks(open, effDate)
	msg := composer.Morning(ctx.Profile, ctx.Weather, due, overdue)

	delay, err := delayUntil(ctx.Now, effDate, constants.MorningTriggerTime)
	if err != nil {
		return err
	}
	return s.transport.ScheduleOnce(
		Identifier(constants.KindMorning, effDate, ""),
		notifier.Content{
			Title: msg.Title,
			Body:  msg.Body,
			Data: models.NotificationMeta{
				Type:     constants.KindMorning,
				DeepLink: &models.DeepLink{Route: constants.RouteTasks},
			},
			Sound: true,
		},
		delay,
	)
}

func (s *Scheduler) scheduleDayBefore(ctx models.SchedulerContext, open []models.Task) error {
	effDate, err := EffectiveDate(ctx.Now, constants.DayBeforeTriggerTime)
	if err != nil {
		return err
	}

	tomorrow := rules.TasksDueTomorrow(open, effDate)
	msg, ok := composer.DayBefore(tomorrow)
	if !ok {
		// Nothing due tomorrow: stay silent rather than sending noise.
		return nil
	}

	delay, err := delayUntil(ctx.Now, effDate, constants.DayBeforeTriggerTime)
	if err != nil {
		return err
	}
	return s.transport.ScheduleOnce(
		Identifier(constants.KindDayBefore, effDate, ""),
		notifier.Content{
			Title: msg.Title,
			Body:  msg.Body,
			Data: models.NotificationMeta{
				Type:     constants.KindDayBefore,
				DeepLink: &models.DeepLink{Route: constants.RouteTasks},
			},
			Sound: true,
		},
		delay,
	)
}

func (s *Scheduler) scheduleEvening(ctx models.SchedulerContext) error {
	msg, ok := composer.Evening(ctx.EveningQuote)
	if !ok {
		logger.Debug("No evening quote available, skipping evening notification")
		return nil
	}

	effDate, err := EffectiveDate(ctx.Now, constants.EveningTriggerTime)
	if err != nil {
		return err
	}
	delay, err := delayUntil(ctx.Now, effDate, constants.EveningTriggerTime)
	if err != nil {
		return err
	}
	return s.transport.ScheduleOnce(
		Identifier(constants.KindEvening, effDate, ""),
		notifier.Content{
			Title: msg.Title,
			Body:  msg.Body,
			Data:  models.NotificationMeta{Type: constants.KindEvening},
			Sound: false,
		},
		delay,
	)
}

func (s *Scheduler) scheduleOverdue(ctx models.SchedulerContext, open []models.Task) error {
	effDate, err := EffectiveDate(ctx.Now, constants.OverdueTriggerTime)
	if err != nil {
		return err
	}
	delay, err := delayUntil(ctx.Now, effDate, constants.OverdueTriggerTime)
	if err != nil {
		return err
	}

	overdue := rules.OverdueTasks(open, effDate)
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].Deadline.Before(*overdue[j].Deadline)
	})

	for i, task := range overdue {
		if i >= constants.MaxOverdueNotifs {
			break
		}
		msg := composer.Overdue(task, effDate)
		err := s.transport.ScheduleOnce(
			Identifier(constants.KindOverdue, effDate, task.ID),
			notifier.Content{
				Title: msg.Title,
				Body:  msg.Body,
				Data: models.NotificationMeta{
					Type:   constants.KindOverdue,
					TaskID: task.ID,
					DeepLink: &models.DeepLink{
						Route:  constants.RouteTaskDetail,
						Params: map[string]string{"id": task.ID},
					},
				},
				Sound:    true,
				Category: constants.TaskActionsCategory,
			},
			delay,
		)
		if err != nil {
			return err
		}
	}

	if remainder := len(overdue) - constants.MaxOverdueNotifs; remainder > 0 {
		msg := composer.OverdueSummary(remainder)
		return s.transport.ScheduleOnce(
			Identifier(constants.KindOverdueMore, effDate, ""),
			notifier.Content{
				Title: msg.Title,
				Body:  msg.Body,
				Data: models.NotificationMeta{
					Type:     constants.KindOverdueMore,
					DeepLink: &models.DeepLink{Route: constants.RouteTasks},
				},
				Sound: true,
			},
			delay,
		)
	}
	return nil
}

// scheduleRainChildren emits the school-run rain warning, but only when
// the morning notification is disabled: when morning is on it already
// carries the weather line, and sending both would be spam.
func (s *Scheduler) scheduleRainChildren(ctx models.SchedulerContext, settings models.NotificationSettings) error {
	if settings.MorningEnabled {
		return nil
	}
	if ctx.Weather == nil || !rules.IsRainy(*ctx.Weather) {
		return nil
	}
	if !rules.HasSchoolAgeChild(ctx.Profile) {
		return nil
	}

	effDate, err := EffectiveDate(ctx.Now, constants.RainChildrenTriggerTime)
	if err != nil {
		return err
	}
	delay, err := delayUntil(ctx.Now, effDate, constants.RainChildrenTriggerTime)
	if err != nil {
		return err
	}

	msg := composer.RainChildren(*ctx.Weather, ctx.Profile)
	return s.transport.ScheduleOnce(
		Identifier(constants.KindRainChildren, effDate, ""),
		notifier.Content{
			Title: msg.Title,
			Body:  msg.Body,
			Data:  models.NotificationMeta{Type: constants.KindRainChildren},
			Sound: true,
		},
		delay,
	)
}

func (s *Scheduler) scheduleWeekend(ctx models.SchedulerContext, open []models.Task) error {
	effDate, err := nextSaturday(ctx.Now, constants.WeekendTriggerTime)
	if err != nil {
		return err
	}

	selection := rules.WeekendSimpleTasks(open, ctx.Now, rules.PdfReadyIDs(ctx.Tasks))
	msg, ok := composer.Weekend(selection)
	if !ok {
		return nil
	}

	delay, err := delayUntil(ctx.Now, effDate, constants.WeekendTriggerTime)
	if err != nil {
		return err
	}
	return s.transport.ScheduleOnce(
		Identifier(constants.KindWeekend, effDate, ""),
		notifier.Content{
			Title: msg.Title,
			Body:  msg.Body,
			Data: models.NotificationMeta{
				Type:     constants.KindWeekend,
				DeepLink: &models.DeepLink{Route: constants.RouteTasks},
			},
			Sound: false,
		},
		delay,
	)
}

// TriggerUrgentTask fires an almost-immediate heads-up for a freshly
// ingested task. Bypasses the full reschedule; gated by the smart
// toggle and the urgency predicate.
func (s *Scheduler) TriggerUrgentTask(task models.Task, settings models.NotificationSettings, now time.Time) error {
	if !settings.SmartEnabled {
		return nil
	}
	if !rules.IsUrgentTask(task, now) {
		return nil
	}

	msg := composer.Urgent(task)
	return s.transport.ScheduleOnce(
		Identifier(constants.KindUrgent, utils.StartOfDay(now), task.ID),
		notifier.Content{
			Title: msg.Title,
			Body:  msg.Body,
			Data: models.NotificationMeta{
				Type:   constants.KindUrgent,
				TaskID: task.ID,
				DeepLink: &models.DeepLink{
					Route:  constants.RouteTaskDetail,
					Params: map[string]string{"id": task.ID},
				},
			},
			Sound:    true,
			Category: constants.TaskActionsCategory,
		},
		constants.ImmediateDelaySec,
	)
}

// TriggerNearDeadlineTask fires an almost-immediate reminder for an
// ingested task due tomorrow or sooner.
func (s *Scheduler) TriggerNearDeadlineTask(task models.Task, settings models.NotificationSettings, now time.Time) error {
	if !settings.SmartEnabled {
		return nil
	}
	if !rules.IsNearDeadlineTask(task, now) {
		return nil
	}

	msg := composer.NearDeadline(task)
	return s.transport.ScheduleOnce(
		Identifier(constants.KindNearDeadline, utils.StartOfDay(now), task.ID),
		notifier.Content{
			Title: msg.Title,
			Body:  msg.Body,
			Data: models.NotificationMeta{
				Type:   constants.KindNearDeadline,
				TaskID: task.ID,
				DeepLink: &models.DeepLink{
					Route:  constants.RouteTaskDetail,
					Params: map[string]string{"id": task.ID},
				},
			},
			Sound:    true,
			Category: constants.TaskActionsCategory,
		},
		constants.ImmediateDelaySec,
	)
}
