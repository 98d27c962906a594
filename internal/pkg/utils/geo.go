package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Distance3D returns the distance in kilometers between two points taking the
// elevation delta (meters) into account.
func Distance3D(lat1, lon1, ele1, lat2, lon2, ele2 float64) float64 {
	flat := HaversineDistance(lat1, lon1, lat2, lon2)
	dEleKm := (ele2 - ele1) / 1000.0
	return math.Sqrt(flat*flat + dEleKm*dEleKm)
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// BoundingBoxAround returns a square bounding box of roughly radiusKm around a
// point. 1 degree of latitude is close to 111 km; longitude is not corrected
// for latitude, which is good enough for the 5-6 km boxes the POI queries use.
func BoundingBoxAround(lat, lon, radiusKm float64) (south, west, north, east float64) {
	radiusDeg := radiusKm / 111.0
	return lat - radiusDeg, lon - radiusDeg, lat + radiusDeg, lon + radiusDeg
}
