package trigger

import (
	"fmt"
	"sync"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/logger"
	"github.com/foyerapp/foyer/internal/models"
)

// ContextReader is the slice of the store the context builder needs.
type ContextReader interface {
	GetAllTasks() ([]models.Task, error)
	GetProfile() (models.Profile, error)
}

// WeatherProvider supplies an optional weather summary for a city.
type WeatherProvider interface {
	Get(city string) (models.WeatherSummary, error)
}

// QuoteProvider supplies the quote for a given kind and date.
type QuoteProvider interface {
	Get(kind constants.QuoteKind, date time.Time) (models.Quote, error)
}

// BuildContext assembles the point-in-time snapshot for a reschedule.
// The four reads fan out concurrently. A failed weather or quote fetch
// only drops that section of the content; a failed task or profile
// fetch aborts the build, because no schedule can safely be computed
// without them.
func BuildContext(store ContextReader, weather WeatherProvider, quotes QuoteProvider, settings models.NotificationSettings, now time.Time) (models.SchedulerContext, error) {
	var (
		wg         sync.WaitGroup
		tasks      []models.Task
		tasksErr   error
		profile    models.Profile
		profileErr error
		summary    *models.WeatherSummary
		quote      *models.Quote
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		tasks, tasksErr = store.GetAllTasks()
	}()
	go func() {
		defer wg.Done()
		profile, profileErr = store.GetProfile()
	}()

	if weather != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := weather.Get(settings.City)
			if err != nil {
				logger.Warn("Weather fetch failed, composing without weather", "city", settings.City, "error", err)
				return
			}
			summary = &w
		}()
	}

	if quotes != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := quotes.Get(constants.QuoteEvening, now)
			if err != nil {
				logger.Warn("Quote fetch failed, skipping evening content", "error", err)
				return
			}
			quote = &q
		}()
	}

	wg.Wait()

	if tasksErr != nil {
		return models.SchedulerContext{}, fmt.Errorf("failed to load tasks: %w", tasksErr)
	}
	if profileErr != nil {
		return models.SchedulerContext{}, fmt.Errorf("failed to load profile: %w", profileErr)
	}

	return models.SchedulerContext{
		Tasks:        tasks,
		Profile:      profile,
		Weather:      summary,
		EveningQuote: quote,
		Now:          now,
	}, nil
}
