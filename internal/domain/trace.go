package domain

// NormalizedTrace is the immutable result of transforming one trace file.
type NormalizedTrace struct {
	Name               string
	Description        string
	Filename           string
	Author             string
	City               string
	StartLatitude      float64
	StartLongitude     float64
	DistanceKm         int
	ElevationGainM     int
	EstimatedDurationH int
	Difficulty         string
	Points             []Point
	Waypoints          []Waypoint
	Raw                []byte
}

// TraceDocument is the document-store projection of a trace: the full point
// sequence plus the raw payload, back-referenced to its hike row.
type TraceDocument struct {
	ID        string     `json:"id"`
	HikeID    int64      `json:"hike_id"`
	Filename  string     `json:"filename"`
	Name      string     `json:"name"`
	Points    []Point    `json:"points"`
	Waypoints []Waypoint `json:"waypoints"`
	Raw       string     `json:"raw"`
}
