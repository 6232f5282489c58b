// Package geo provides the spherical-Earth geometry used by the plotter.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used for the spherical model.
// The spherical approximation flattens the geoid; good enough for
// map-overlay circles, not for geodetic work.
const earthRadiusKm = 6378.8

// circleSegments is the fixed number of bearing samples per circle outline.
const circleSegments = 36

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Circle approximates a circle of radiusMeters around a center point as a
// closed polygon of 36 vertices, one per 10 degrees of bearing starting due
// north. Vertices follow increasing bearing so the polygon never
// self-intersects when filled. Longitudes are normalized into (-180, 180].
func Circle(centerLat, centerLng, radiusMeters float64) []Point {
	d := (radiusMeters / 1000.0) / earthRadiusKm
	lat := centerLat * math.Pi / 180.0
	lng := centerLng * math.Pi / 180.0

	outline := make([]Point, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		bearing := float64(i*10) * math.Pi / 180.0

		// Destination latitude by the spherical law of cosines.
		y := math.Asin(math.Sin(lat)*math.Cos(d) + math.Cos(lat)*math.Sin(d)*math.Cos(bearing))
		dlng := math.Atan2(
			math.Sin(bearing)*math.Sin(d)*math.Cos(lat),
			math.Cos(d)-math.Sin(lat)*math.Sin(y))

		// Modulo-then-shift keeps the longitude within a single wrap of the
		// antimeridian.
		x := floorMod(lng-dlng+math.Pi, 2.0*math.Pi) - math.Pi

		outline = append(outline, Point{
			Lat: y * 180.0 / math.Pi,
			Lng: x * 180.0 / math.Pi,
		})
	}
	return outline
}

// floorMod is the floored modulo: the result always takes the sign of the
// divisor, unlike math.Mod which truncates toward zero.
func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}
