// Package weather fetches a daily summary from the Open-Meteo API.
// Weather is optional context: callers must treat failures here as
// degradation, never as a reason to abort scheduling.
package weather

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/foyerapp/foyer/internal/models"
)

const (
	geocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	forecastURL  = "https://api.open-meteo.com/v1/forecast"
)

type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodingResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Rain        float64 `json:"rain"`
		Snowfall    float64 `json:"snowfall"`
		CloudCover  float64 `json:"cloud_cover"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// Get resolves the city to coordinates and fetches the current
// conditions as a WeatherSummary.
func (c *Client) Get(city string) (models.WeatherSummary, error) {
	lat, lon, err := c.geocode(city)
	if err != nil {
		return models.WeatherSummary{}, err
	}

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", lat))
	query.Set("longitude", fmt.Sprintf("%.4f", lon))
	query.Set("current", "temperature_2m,rain,snowfall,cloud_cover,wind_speed_10m")

	var forecast forecastResponse
	if err := c.getJSON(forecastURL+"?"+query.Encode(), &forecast); err != nil {
		return models.WeatherSummary{}, fmt.Errorf("forecast fetch failed: %w", err)
	}

	summary := models.WeatherSummary{
		TemperatureC: forecast.Current.Temperature,
		IsRaining:    forecast.Current.Rain > 0,
		IsSnowing:    forecast.Current.Snowfall > 0,
		WindKmh:      forecast.Current.WindSpeed,
	}
	summary.Outfit = outfitFor(summary, forecast.Current.CloudCover)
	return summary, nil
}

func (c *Client) geocode(city string) (float64, float64, error) {
	query := url.Values{}
	query.Set("name", city)
	query.Set("count", "1")

	var geo geocodingResponse
	if err := c.getJSON(geocodingURL+"?"+query.Encode(), &geo); err != nil {
		return 0, 0, fmt.Errorf("geocoding failed for %q: %w", city, err)
	}
	if len(geo.Results) == 0 {
		return 0, 0, fmt.Errorf("unknown city %q", city)
	}
	return geo.Results[0].Latitude, geo.Results[0].Longitude, nil
}

func (c *Client) getJSON(url string, out interface{}) error {
	res, err := c.http.Get(url)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// outfitFor derives the one-line clothing hint shown in the morning
// notification.
func outfitFor(w models.WeatherSummary, cloudCover float64) string {
	var parts []string

	switch {
	case w.TemperatureC <= 5:
		parts = append(parts, "prévoyez un gros manteau")
	case w.TemperatureC <= 12:
		parts = append(parts, "prévoyez une veste chaude")
	case w.TemperatureC <= 18:
		parts = append(parts, "un pull suffit")
	default:
		parts = append(parts, "tenue légère")
	}

	switch {
	case w.IsSnowing:
		parts = append(parts, "il neige")
	case w.IsRaining:
		parts = append(parts, "n'oubliez pas le parapluie")
	case cloudCover >= 70:
		parts = append(parts, "ciel chargé de nuages")
	}

	return strings.Join(parts, ", ") + "."
}
