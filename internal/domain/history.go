package domain

import "time"

// SentinelSpotID marks a city whose scrape run was attempted but yielded
// nothing. Its presence in scrape_history keeps the reconciliation job from
// retrying the city forever; it is distinct from "never attempted".
const SentinelSpotID int64 = -1

// ScrapeHistory rows record that a spot was scraped for a city. One row per
// (spot_id, city_id); a row with SentinelSpotID covers an empty run.
type ScrapeHistory struct {
	ID        int64     `json:"id" db:"id"`
	SpotID    int64     `json:"spot_id" db:"spot_id"`
	CityID    int64     `json:"city_id" db:"city_id"`
	ScrapedAt time.Time `json:"scraped_at" db:"scraped_at"`
}

// POIHistory rows record that a POI was attached to a city by one of the POI
// sources. One row per (poi_id, city_id).
type POIHistory struct {
	ID        int64     `json:"id" db:"id"`
	POIID     int64     `json:"poi_id" db:"poi_id"`
	CityID    int64     `json:"city_id" db:"city_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
