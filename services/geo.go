package services

import (
	"math"
)

const earthRadiusMeters = 6371000.0

// CheckInRadiusMeters is how close a device has to be to a spot before a
// check-in counts.
const CheckInRadiusMeters = 20.0

// DistanceMeters returns the great-circle (haversine) distance between two
// lat/lng coordinates, in meters.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinCheckInRadius reports whether the device position is close enough to
// the spot to complete it.
func WithinCheckInRadius(deviceLat, deviceLng, spotLat, spotLng float64) bool {
	return DistanceMeters(deviceLat, deviceLng, spotLat, spotLng) <= CheckInRadiusMeters
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
