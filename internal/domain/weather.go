package domain

import "time"

// DailyForecast is one forecast day for a city. (city_id, date) is unique.
type DailyForecast struct {
	ID              int64     `json:"id" db:"id"`
	CityID          int64     `json:"city_id" db:"city_id"`
	Date            time.Time `json:"date" db:"date"`
	TempMaxC        float64   `json:"temp_max_c" db:"temp_max_c"`
	TempMinC        float64   `json:"temp_min_c" db:"temp_min_c"`
	PrecipitationMm float64   `json:"precipitation_mm" db:"precipitation_mm"`
	WindMaxKmh      float64   `json:"wind_max_kmh" db:"wind_max_kmh"`
	WeatherCode     int       `json:"weather_code" db:"weather_code"`
	SolarEnergySum  float64   `json:"solar_energy_sum" db:"solar_energy_sum"`
}

// PictoForCode maps an Open-Meteo weather code to a display icon name.
func PictoForCode(code int) string {
	switch code {
	case 0, 1:
		return "sun"
	case 2:
		return "partly_cloudy"
	case 3:
		return "cloud"
	case 45, 48:
		return "fog"
	case 51, 53, 55, 61, 63, 65, 80, 81, 82:
		return "rain"
	case 71, 73, 75, 77, 85, 86:
		return "snow"
	case 95, 96, 99:
		return "storm"
	default:
		return "unavailable"
	}
}
