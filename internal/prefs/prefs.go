// Package prefs stores per-user delivery preferences: the location content
// is tailored to and the notification thresholds that trigger alerts.
package prefs

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("prefs: not found")
	ErrConflict     = errors.New("prefs: already exists")
	ErrInvalidInput = errors.New("prefs: invalid input")
)

// Parameter is one tunable threshold with a user-set importance rank from
// 0 (ignore) to 10 (utmost importance).
type Parameter struct {
	Importance int      `json:"importance"`
	Name       string   `json:"parameter_name"`
	Value      *float64 `json:"parameter_value,omitempty"`
	Values     []string `json:"parameter_array_value,omitempty"`
}

// Parameters holds one user's preferred location and threshold settings.
type Parameters struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	PreferredLat float64              `json:"preferred_lat"`
	PreferredLon float64              `json:"preferred_lon"`
	Thresholds   map[string]Parameter `json:"thresholds"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// Patch carries the optional fields of an update. Nil fields keep their
// stored values; thresholds merge by name.
type Patch struct {
	PreferredLat *float64             `json:"preferred_lat"`
	PreferredLon *float64             `json:"preferred_lon"`
	Thresholds   map[string]Parameter `json:"thresholds,omitempty"`
}

// Store describes the persistence operations the preferences service needs.
type Store interface {
	Create(ctx context.Context, p *Parameters) error
	FindByUserID(ctx context.Context, userID string) (*Parameters, error)
	Update(ctx context.Context, p *Parameters) error
}

const (
	defaultPreferredLat = -36.15
	defaultPreferredLon = 95.98
)

func floatPtr(v float64) *float64 { return &v }

// DefaultParameters are the settings a fresh account starts with.
func DefaultParameters(userID string) *Parameters {
	return &Parameters{
		UserID:       userID,
		PreferredLat: defaultPreferredLat,
		PreferredLon: defaultPreferredLon,
		Thresholds: map[string]Parameter{
			"uv_index_threshold":    {Importance: 5, Name: "uv_index_threshold", Value: floatPtr(6.0)},
			"aqi_threshold":         {Importance: 5, Name: "aqi_threshold", Value: floatPtr(100.0)},
			"wind_speed_threshold":  {Importance: 3, Name: "wind_speed_threshold", Value: floatPtr(10.0)},
			"rain_chance_threshold": {Importance: 7, Name: "rain_chance_threshold", Value: floatPtr(0.5)},
			"pm10_threshold":        {Importance: 4, Name: "pm10_threshold", Value: floatPtr(50.0)},
			"pm2_5_threshold":       {Importance: 4, Name: "pm2_5_threshold", Value: floatPtr(35.0)},
			"allergens":             {Importance: 5, Name: "allergens", Values: []string{}},
		},
	}
}
