package domain

import (
	"math"
	"time"
)

const (
	DifficultyEasy     = "easy"
	DifficultyModerate = "moderate"
	DifficultyHard     = "hard"
)

// Hike is the relational projection of an imported trace. The filename is the
// idempotency key; DocumentRef points at the trace document and stays NULL
// until the document write is patched back.
type Hike struct {
	ID                 int64     `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Description        string    `json:"description" db:"description"`
	StartLatitude      float64   `json:"start_latitude" db:"start_latitude"`
	StartLongitude     float64   `json:"start_longitude" db:"start_longitude"`
	DistanceKm         int       `json:"distance_km" db:"distance_km"`
	ElevationGainM     int       `json:"elevation_gain_m" db:"elevation_gain_m"`
	EstimatedDurationH int       `json:"estimated_duration_h" db:"estimated_duration_h"`
	Difficulty         string    `json:"difficulty" db:"difficulty"`
	Filename           string    `json:"filename" db:"filename"`
	DocumentRef        *string   `json:"document_ref,omitempty" db:"document_ref"`
	SourceID           int64     `json:"source_id" db:"source_id"`
	CityID             int64     `json:"city_id" db:"city_id"`
	Verified           bool      `json:"verified" db:"verified"`
	ImportedAt         time.Time `json:"imported_at" db:"imported_at"`
}

// ClassifyDifficulty applies the fixed thresholds: easy below 8 km and 200 m
// of gain, hard above 15 km and 500 m, moderate in between.
func ClassifyDifficulty(distanceKm, elevationGainM int) string {
	if distanceKm < 8 && elevationGainM < 200 {
		return DifficultyEasy
	}
	if distanceKm < 15 || elevationGainM < 500 {
		return DifficultyModerate
	}
	return DifficultyHard
}

// EstimateDurationHours is a Naismith-style estimate: one hour per 4 km plus
// one hour per 600 m of climb, rounded to the nearest hour.
func EstimateDurationHours(distanceKm, elevationGainM int) int {
	h := float64(distanceKm)/4.0 + float64(elevationGainM)/600.0
	return int(math.Round(h))
}
