package domain

// Spot is an overnight place discovered by the slow-scrape source. ExternalID
// is the scrape-site identifier and the dedup key within the source.
type Spot struct {
	ID          int64    `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description string   `json:"description" db:"description"`
	Type        string   `json:"type" db:"type"`
	Latitude    float64  `json:"latitude" db:"latitude"`
	Longitude   float64  `json:"longitude" db:"longitude"`
	ExternalID  string   `json:"external_id" db:"external_id"`
	Rating      *float64 `json:"rating,omitempty" db:"rating"`
	URL         string   `json:"url" db:"url"`
	SourceID    int64    `json:"source_id" db:"source_id"`
	Verified    bool     `json:"verified" db:"verified"`
}

// SpotRecord is the raw result of scraping one detail page.
type SpotRecord struct {
	ExternalID  string
	Name        string
	Description string
	Type        string
	Latitude    float64
	Longitude   float64
	Rating      *float64
	URL         string
	Services    []string
}

type Service struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Category *string `json:"category,omitempty" db:"category"`
}
