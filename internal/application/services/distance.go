package services

import (
	"math"

	"github.com/bluehands/branchfinder/internal/domain/entities"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distance
const EarthRadiusKm = 6371.0

// DistanceKm returns the haversine distance between a and b in kilometers.
// The result is absent when either coordinate is nil or not finite.
func DistanceKm(a, b *entities.Coordinate) (float64, bool) {
	if a == nil || b == nil || !a.IsFinite() || !b.IsFinite() {
		return 0, false
	}

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h a hair past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h)), true
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
