package geo_test

import (
	"math"
	"testing"

	"lintang/campusnav/pkg/datastructure"
	"lintang/campusnav/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanarDistance(t *testing.T) {
	a := datastructure.NewCoordinate(0, 0)
	b := datastructure.NewCoordinate(3, 4)
	assert.InDelta(t, 5.0, geo.PlanarDistance(a, b), 1e-12)
	assert.InDelta(t, 5.0, geo.PlanarDistance(b, a), 1e-12)
	assert.Equal(t, 0.0, geo.PlanarDistance(a, a))
}

func TestHaversineDistance(t *testing.T) {
	t.Run("one degree of latitude", func(t *testing.T) {
		a := datastructure.NewCoordinate(110, -7)
		b := datastructure.NewCoordinate(110, -6)
		assert.InDelta(t, geo.EarthRadiusM*math.Pi/180, geo.HaversineDistance(a, b), 1e-6)
	})

	t.Run("longitude shrinks with latitude", func(t *testing.T) {
		equator := geo.HaversineDistance(datastructure.NewCoordinate(0, 0), datastructure.NewCoordinate(0.001, 0))
		campus := geo.HaversineDistance(datastructure.NewCoordinate(110, -60), datastructure.NewCoordinate(110.001, -60))
		assert.InDelta(t, equator/2, campus, 0.01)
	})
}

func TestPathLength(t *testing.T) {
	path := []datastructure.Coordinate{
		datastructure.NewCoordinate(110.0, -7.0),
		datastructure.NewCoordinate(110.001, -7.0),
		datastructure.NewCoordinate(110.001, -7.001),
	}
	want := geo.HaversineDistance(path[0], path[1]) + geo.HaversineDistance(path[1], path[2])
	assert.InDelta(t, want, geo.PathLength(path), 1e-9)
	assert.InDelta(t, 0.002, geo.PlanarPathLength(path), 1e-12)

	assert.Equal(t, 0.0, geo.PathLength(nil))
	assert.Equal(t, 0.0, geo.PathLength(path[:1]))
}

func TestProjectPointToSegment(t *testing.T) {
	a := datastructure.NewCoordinate(0, 0)
	b := datastructure.NewCoordinate(2, 0)

	tests := []struct {
		name string
		p    datastructure.Coordinate
		want datastructure.Coordinate
	}{
		{"interior", datastructure.NewCoordinate(1, 1), datastructure.NewCoordinate(1, 0)},
		{"on segment", datastructure.NewCoordinate(0.5, 0), datastructure.NewCoordinate(0.5, 0)},
		{"before a clamps to a", datastructure.NewCoordinate(-1, 1), a},
		{"past b clamps to b", datastructure.NewCoordinate(5, -1), b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := geo.ProjectPointToSegment(tt.p, a, b)
			assert.InDelta(t, tt.want.Lon, got.Lon, 1e-12)
			assert.InDelta(t, tt.want.Lat, got.Lat, 1e-12)
		})
	}

	t.Run("zero length segment projects onto a", func(t *testing.T) {
		got := geo.ProjectPointToSegment(datastructure.NewCoordinate(3, 3), a, a)
		assert.Equal(t, a, got)
	})
}

func TestAverage(t *testing.T) {
	_, ok := geo.Average(nil)
	assert.False(t, ok)

	avg, ok := geo.Average([]datastructure.Coordinate{
		datastructure.NewCoordinate(0, 0),
		datastructure.NewCoordinate(2, 0),
		datastructure.NewCoordinate(2, 2),
		datastructure.NewCoordinate(0, 2),
	})
	require.True(t, ok)
	assert.InDelta(t, 1.0, avg.Lon, 1e-12)
	assert.InDelta(t, 1.0, avg.Lat, 1e-12)
}
