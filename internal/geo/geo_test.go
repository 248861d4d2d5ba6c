package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakbayan/tourism-portal/internal/geo"
)

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	assert.Zero(t, geo.DistanceKm(13.75, 121.05, 13.75, 121.05))
}

func TestDistanceKm_KnownPair(t *testing.T) {
	// Manila (14.5995, 120.9842) to Cebu (10.3157, 123.8854) is ~570 km.
	d := geo.DistanceKm(14.5995, 120.9842, 10.3157, 123.8854)
	assert.InDelta(t, 570, d, 15)
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := geo.DistanceKm(14.5995, 120.9842, 10.3157, 123.8854)
	b := geo.DistanceKm(10.3157, 123.8854, 14.5995, 120.9842)
	assert.InDelta(t, a, b, 1e-9)
}

func TestParseCoordinates(t *testing.T) {
	require.NoError(t, geo.ParseCoordinates(0, 0))
	assert.Error(t, geo.ParseCoordinates(91, 0))
	assert.Error(t, geo.ParseCoordinates(0, -181))
}
