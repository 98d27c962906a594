package domain

// City is unique by name. Rows are created on first encounter (from a trace
// start point or from enrichment) and never deleted.
type City struct {
	ID         int64   `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	Latitude   float64 `json:"latitude" db:"latitude"`
	Longitude  float64 `json:"longitude" db:"longitude"`
	Department *string `json:"department,omitempty" db:"department"`
	Region     *string `json:"region,omitempty" db:"region"`
	Country    *string `json:"country,omitempty" db:"country"`
}

// AdminArea is the administrative metadata resolved for a city on creation.
type AdminArea struct {
	Department string
	Region     string
	Country    string
}
