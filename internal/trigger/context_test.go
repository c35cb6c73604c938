package trigger

import (
	"errors"
	"testing"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
)

type fakeReader struct {
	tasks      []models.Task
	tasksErr   error
	profile    models.Profile
	profileErr error
}

func (r *fakeReader) GetAllTasks() ([]models.Task, error) { return r.tasks, r.tasksErr }
func (r *fakeReader) GetProfile() (models.Profile, error) { return r.profile, r.profileErr }

type fakeWeather struct {
	summary models.WeatherSummary
	err     error
}

func (w *fakeWeather) Get(city string) (models.WeatherSummary, error) {
	return w.summary, w.err
}

type fakeQuotes struct {
	quote models.Quote
	err   error
}

func (q *fakeQuotes) Get(kind constants.QuoteKind, date time.Time) (models.Quote, error) {
	return q.quote, q.err
}

func TestBuildContext(t *testing.T) {
	now := time.Date(2025, 3, 2, 6, 0, 0, 0, time.UTC)
	settings := models.NotificationSettings{City: "Paris", Timezone: "UTC"}

	reader := &fakeReader{
		tasks:   []models.Task{{ID: "t1", Title: "Payer la cantine", Status: constants.StatusTodo}},
		profile: models.Profile{FirstName: "Claire"},
	}
	weather := &fakeWeather{summary: models.WeatherSummary{TemperatureC: 12}}
	quotes := &fakeQuotes{quote: models.Quote{Kind: constants.QuoteEvening, Text: "Demain est un autre jour."}}

	ctx, err := BuildContext(reader, weather, quotes, settings, now)
	if err != nil {
		t.Fatalf("BuildContext() error = %v", err)
	}
	if len(ctx.Tasks) != 1 || ctx.Profile.FirstName != "Claire" {
		t.Errorf("BuildContext() = %+v", ctx)
	}
	if ctx.Weather == nil || ctx.Weather.TemperatureC != 12 {
		t.Errorf("weather = %+v, want 12°C summary", ctx.Weather)
	}
	if ctx.EveningQuote == nil || ctx.EveningQuote.Text == "" {
		t.Errorf("evening quote = %+v, want populated", ctx.EveningQuote)
	}
	if !ctx.Now.Equal(now) {
		t.Errorf("now = %v, want %v", ctx.Now, now)
	}
}

func TestBuildContextDegradesOnWeatherAndQuoteFailure(t *testing.T) {
	now := time.Date(2025, 3, 2, 6, 0, 0, 0, time.UTC)
	reader := &fakeReader{profile: models.Profile{FirstName: "Claire"}}
	weather := &fakeWeather{err: errors.New("api down")}
	quotes := &fakeQuotes{err: errors.New("no quotes")}

	ctx, err := BuildContext(reader, weather, quotes, models.NotificationSettings{}, now)
	if err != nil {
		t.Fatalf("BuildContext() error = %v, want degraded success", err)
	}
	if ctx.Weather != nil {
		t.Error("weather should be absent after a failed fetch")
	}
	if ctx.EveningQuote != nil {
		t.Error("quote should be absent after a failed fetch")
	}
}

func TestBuildContextAbortsOnTaskFailure(t *testing.T) {
	now := time.Date(2025, 3, 2, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		reader *fakeReader
	}{
		{name: "task fetch failure", reader: &fakeReader{tasksErr: errors.New("db locked")}},
		{name: "profile fetch failure", reader: &fakeReader{profileErr: errors.New("db locked")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildContext(tt.reader, nil, nil, models.NotificationSettings{}, now); err == nil {
				t.Error("BuildContext() error = nil, want abort")
			}
		})
	}
}
