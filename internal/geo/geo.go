// Package geo provides the distance models used for station-epicenter
// calculations: a planar degree approximation for short baselines and a
// Vincenty inverse geodesic solver for ellipsoidally correct results.
package geo

import "math"

// kmPerDegree is the flat-earth scale factor used by the planar model.
const kmPerDegree = 111.11

// Point is a WGS-84 latitude/longitude coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PlanarKm returns the Euclidean distance between two coordinate pairs,
// treating degrees as a flat grid scaled by 111.11 km/degree.
//
// This is an approximation intended for short regional baselines. It is not
// geodesically correct: it ignores ellipsoidal shape and the convergence of
// meridians. Use Inverse when accuracy matters.
func PlanarKm(a, b Point) float64 {
	dLat := a.Lat - b.Lat
	dLon := a.Lon - b.Lon
	return math.Sqrt(dLat*dLat+dLon*dLon) * kmPerDegree
}
