package rules

import (
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
	"github.com/foyerapp/foyer/internal/utils"
)

// SimpleWeather is the coarse weather class used by notification rules
type SimpleWeather string

const (
	WeatherSnow   SimpleWeather = "snow"
	WeatherRain   SimpleWeather = "rain"
	WeatherCloudy SimpleWeather = "cloudy"
	WeatherSunny  SimpleWeather = "sunny"
)

// TasksDueToday returns the tasks whose deadline falls on ref's
// calendar date. Comparison ignores time-of-day: a deadline at 23:00
// and one at midnight are both "today". Completion status is NOT
// filtered here; classification stays orthogonal to completion.
func TasksDueToday(tasks []models.Task, ref time.Time) []models.Task {
	return tasksDueOn(tasks, utils.StartOfDay(ref))
}

// TasksDueTomorrow returns the tasks whose deadline falls on the
// calendar date after ref's.
func TasksDueTomorrow(tasks []models.Task, ref time.Time) []models.Task {
	return tasksDueOn(tasks, utils.AddDays(ref, 1))
}

func tasksDueOn(tasks []models.Task, day time.Time) []models.Task {
	var due []models.Task
	for _, t := range tasks {
		if t.Deadline != nil && utils.SameCalendarDate(day, *t.Deadline) {
			due = append(due, t)
		}
	}
	return due
}

// OverdueTasks returns the tasks whose deadline's calendar date is
// strictly before ref's date. Excluding done tasks is the caller's
// responsibility.
func OverdueTasks(tasks []models.Task, ref time.Time) []models.Task {
	today := utils.StartOfDay(ref)
	var overdue []models.Task
	for _, t := range tasks {
		if t.Deadline == nil {
			continue
		}
		if utils.StartOfDay(t.Deadline.In(ref.Location())).Before(today) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}

// ExcludeDone filters out completed tasks.
func ExcludeDone(tasks []models.Task) []models.Task {
	var open []models.Task
	for _, t := range tasks {
		if !t.IsDone() {
			open = append(open, t)
		}
	}
	return open
}

// IsUrgentTask reports whether a task warrants an immediate heads-up.
// Urgency is reserved for content ingested without direct user intent
// (email or photo); a manually entered task is never urgent no matter
// how close its deadline. The deadline must fall on or before
// now+2 days, inclusive of today and of exactly now+2.
func IsUrgentTask(task models.Task, now time.Time) bool {
	if task.Source != constants.SourceEmail && task.Source != constants.SourcePhoto {
		return false
	}
	if task.Deadline == nil {
		return false
	}
	horizon := utils.AddDays(now, constants.UrgentWindowDays)
	deadlineDay := utils.StartOfDay(task.Deadline.In(now.Location()))
	return !deadlineDay.After(horizon)
}

// IsNearDeadlineTask reports whether an ingested task's deadline is
// tomorrow or closer.
func IsNearDeadlineTask(task models.Task, now time.Time) bool {
	if task.Source != constants.SourceEmail && task.Source != constants.SourcePhoto {
		return false
	}
	if task.Deadline == nil {
		return false
	}
	horizon := utils.AddDays(now, constants.NearDeadlineDays)
	deadlineDay := utils.StartOfDay(task.Deadline.In(now.Location()))
	return !deadlineDay.After(horizon)
}

// HasSchoolAgeChild reports whether the profile has at least one child.
// Deliberately a presence check rather than real age math; see DESIGN.md.
func HasSchoolAgeChild(profile models.Profile) bool {
	return profile.HasChildren()
}

// MapWeatherToSimple collapses a weather summary into a coarse class.
// Priority: snow, then rain, then a textual cloud hint in the outfit
// line, then sunny as the default.
func MapWeatherToSimple(weather models.WeatherSummary) SimpleWeather {
	if weather.IsSnowing {
		return WeatherSnow
	}
	if weather.IsRaining {
		return WeatherRain
	}
	if containsFold(weather.Outfit, "nuage") {
		return WeatherCloudy
	}
	return WeatherSunny
}

// IsRainy reports whether the simple weather class is rain.
func IsRainy(weather models.WeatherSummary) bool {
	return MapWeatherToSimple(weather) == WeatherRain
}
