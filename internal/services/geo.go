package services

import (
	"math"

	"petcare-route-service/internal/domain"
)

const (
	earthRadiusMiles = 3959.0

	// Travel-time proxy used when no live directions are available:
	// 120 seconds per mile, roughly a 30 mph average.
	secondsPerMile = 120.0

	metersPerMile = 1609.344
)

// HaversineMiles computes the great-circle distance in miles between two
// coordinates. Pure function; symmetric, zero for identical points.
func HaversineMiles(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// EstimateTravelSeconds converts a distance in miles to a travel-time
// estimate in seconds. Last-resort fallback when a live directions
// lookup also fails.
func EstimateTravelSeconds(distanceMiles float64) float64 {
	return distanceMiles * secondsPerMile
}

// MetersToMiles converts a directions-provider distance to miles.
func MetersToMiles(meters float64) float64 {
	return meters / metersPerMile
}
