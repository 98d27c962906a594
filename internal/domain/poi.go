package domain

// POI is a point of interest from one of the two POI sources. ExternalID is
// the source identifier (OSM id or Wikidata entity URI) and the dedup key
// within that source.
type POI struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Latitude    float64 `json:"latitude" db:"latitude"`
	Longitude   float64 `json:"longitude" db:"longitude"`
	ImageURL    string  `json:"image_url" db:"image_url"`
	URL         string  `json:"url" db:"url"`
	ExternalID  string  `json:"external_id" db:"external_id"`
	SourceID    int64   `json:"source_id" db:"source_id"`
	Verified    bool    `json:"verified" db:"verified"`
}

// POIRecord is a normalized entity produced by a POI source client before it
// is persisted.
type POIRecord struct {
	ExternalID  string
	Name        string
	Description string
	Category    string
	Latitude    float64
	Longitude   float64
	ImageURL    string
	URL         string
	Verified    bool
}
