package geospatial

import "math"

const earthRadiusMeters = 6371000.0

// Haversine calculates the great-circle distance in meters between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// FixedPointDistance is Haversine over E7 fixed-point coordinates
// (degrees scaled by 1e7).
func FixedPointDistance(lat1, lon1, lat2, lon2 int32) float64 {
	const f = 1e7
	return Haversine(
		float64(lat1)/f, float64(lon1)/f,
		float64(lat2)/f, float64(lon2)/f,
	)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
