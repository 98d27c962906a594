package domain

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
	Ele float64 `json:"ele" db:"ele"`
}

type Waypoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Ele  float64 `json:"ele"`
	Desc string  `json:"desc,omitempty"`
}
