package utils

import (
	"fmt"
)

// StreetViewURL builds a Google Street View Static API image URL for a spot,
// using the heading/pitch stored on the catalog row.
func StreetViewURL(lat, lng float64, heading, pitch int, apiKey string) string {
	return fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/streetview?size=600x400&scale=2&location=%f,%f&heading=%d&pitch=%d&key=%s",
		lat, lng, heading, pitch, apiKey,
	)
}
