package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceMeters_SamePointIsZero(t *testing.T) {
	require.Zero(t, DistanceMeters(41.403629, 2.174356, 41.403629, 2.174356))
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := DistanceMeters(41.403629, 2.174356, 41.380896, 2.122820)
	b := DistanceMeters(41.380896, 2.122820, 41.403629, 2.174356)
	require.InDelta(t, a, b, 1e-9)
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	// Sagrada Familia to Camp Nou is roughly 4.9 km.
	d := DistanceMeters(41.403629, 2.174356, 41.380896, 2.122820)
	require.InDelta(t, 4930, d, 100)
}

func TestDistanceMeters_ShortRange(t *testing.T) {
	// ~0.0001 degrees of latitude is about 11 meters.
	d := DistanceMeters(41.4036, 2.1743, 41.4037, 2.1743)
	require.InDelta(t, 11.1, d, 0.5)
}

func TestWithinCheckInRadius(t *testing.T) {
	spotLat, spotLng := 41.403629, 2.174356

	require.True(t, WithinCheckInRadius(spotLat, spotLng, spotLat, spotLng))
	require.True(t, WithinCheckInRadius(spotLat+0.0001, spotLng, spotLat, spotLng))
	require.False(t, WithinCheckInRadius(spotLat+0.001, spotLng, spotLat, spotLng))
}
