// Package geo provides great-circle distance math for proximity search.
// All functions are pure; the service layer applies them to candidate rows
// fetched from the place catalog.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for all distance calculations.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometers between two
// points given in decimal degrees, using the spherical law of cosines:
//
//	acos(sin φ1 · sin φ2 + cos φ1 · cos φ2 · cos Δλ) · R
//
// The acos argument is clamped to [-1, 1] so identical points return exactly
// 0 instead of NaN from floating-point drift.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	Δλ := (lon2 - lon1) * math.Pi / 180

	c := math.Sin(φ1)*math.Sin(φ2) + math.Cos(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c) * EarthRadiusKm
}

// BoundingBox returns a coarse latitude/longitude box that fully contains the
// circle of radiusKm around the given point. Repos use it as a cheap SQL
// prefilter; the exact DistanceKm check runs in Go afterwards.
//
// Near the poles the longitude span degenerates, so the box falls back to the
// full [-180, 180] range there. Boxes never wrap the antimeridian — a box
// that would cross it also widens to the full longitude range.
func BoundingBox(lat, lon, radiusKm float64) (minLat, maxLat, minLon, maxLon float64) {
	latDelta := radiusKm / EarthRadiusKm * 180 / math.Pi
	minLat = lat - latDelta
	maxLat = lat + latDelta
	if minLat < -90 {
		minLat = -90
	}
	if maxLat > 90 {
		maxLat = 90
	}

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 1e-9 {
		return minLat, maxLat, -180, 180
	}
	lonDelta := latDelta / cosLat
	minLon = lon - lonDelta
	maxLon = lon + lonDelta
	if minLon < -180 || maxLon > 180 {
		return minLat, maxLat, -180, 180
	}
	return minLat, maxLat, minLon, maxLon
}
