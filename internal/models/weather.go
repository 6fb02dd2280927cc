package models

import (
	"fmt"
	"math"
)

// Weather is the current-conditions block returned by /weather-recommend.
type Weather struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
}

// Summary renders a one line description such as "London: 12°C, light rain (feels like 10°C, 80% humidity)".
func (w Weather) Summary() string {
	return fmt.Sprintf("%s: %d°C, %s (feels like %d°C, %d%% humidity)",
		w.City, int(math.Round(w.Temperature)), w.Description, int(math.Round(w.FeelsLike)), w.Humidity)
}

// WeatherRecommendations pairs current weather with a mood and matching songs.
type WeatherRecommendations struct {
	Weather Weather `json:"weather"`
	Mood    string  `json:"mood"`
	Songs   []Song  `json:"recommendations"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks coordinates are within range.
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", c.Longitude)
	}
	return nil
}
