package models

import (
	"time"

	"github.com/foyerapp/foyer/internal/constants"
)

type WeatherSummary struct {
	TemperatureC float64 `json:"temperature_c"`
	IsRaining    bool    `json:"is_raining"`
	IsSnowing    bool    `json:"is_snowing"`
	Outfit       string  `json:"outfit"`
	WindKmh      float64 `json:"wind_kmh,omitempty"`
}

type Quote struct {
	Kind constants.QuoteKind `json:"kind"`
	Text string              `json:"text"`
}

// SchedulerContext is the point-in-time snapshot handed to the trigger
// scheduler. Weather and the evening quote are optional; their absence
// degrades the composed bodies but never blocks scheduling.
type SchedulerContext struct {
	Tasks        []Task          `json:"tasks"`
	Profile      Profile         `json:"profile"`
	Weather      *WeatherSummary `json:"weather,omitempty"`
	EveningQuote *Quote          `json:"evening_quote,omitempty"`
	Now          time.Time       `json:"now"`
}

type DeepLink struct {
	Route  string            `json:"route"`
	Params map[string]string `json:"params,omitempty"`
}

// NotificationMeta is the only state carried inside a scheduled
// notification's payload. It must be self-sufficient: the action
// handler may read it back in a freshly started process with no other
// context loaded.
type NotificationMeta struct {
	Type     constants.NotificationKind `json:"type"`
	DeepLink *DeepLink                  `json:"deep_link,omitempty"`
	TaskID   string                     `json:"task_id,omitempty"`
}

// NotificationSettings holds the per-device notification toggles plus
// the context needed to localize content. Read at the start of every
// reschedule; a disabled kind is skipped, never scheduled empty.
type NotificationSettings struct {
	MorningEnabled   bool   `json:"morning_enabled"`
	DayBeforeEnabled bool   `json:"day_before_enabled"`
	EveningEnabled   bool   `json:"evening_enabled"`
	OverdueEnabled   bool   `json:"overdue_enabled"`
	SmartEnabled     bool   `json:"smart_enabled"`
	City             string `json:"city"`
	Timezone         string `json:"timezone"` // IANA timezone name or "Local"
}
