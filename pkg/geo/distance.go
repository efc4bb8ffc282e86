package geo

import (
	"math"

	"lintang/campusnav/pkg/datastructure"

	"github.com/golang/geo/s2"
)

const EarthRadiusM = 6371000.0

// euclid distance over raw degrees. only a cheap proxy, not meters.
func PlanarDistance(from, to datastructure.Coordinate) float64 {
	lonDif := from.Lon - to.Lon
	latDif := from.Lat - to.Lat
	return math.Sqrt(lonDif*lonDif + latDif*latDif)
}

// HaversineDistance returns the great-circle distance in meters.
func HaversineDistance(from, to datastructure.Coordinate) float64 {
	a := s2.LatLngFromDegrees(from.Lat, from.Lon)
	b := s2.LatLngFromDegrees(to.Lat, to.Lon)
	return a.Distance(b).Radians() * EarthRadiusM
}

// PathLength sums the haversine distance of consecutive coordinates, in meters.
func PathLength(path []datastructure.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += HaversineDistance(path[i-1], path[i])
	}
	return total
}

// PlanarPathLength sums the planar distance of consecutive coordinates.
func PlanarPathLength(path []datastructure.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += PlanarDistance(path[i-1], path[i])
	}
	return total
}

// Average is the arithmetic mean of the coordinates. ok is false for an empty slice.
func Average(coords []datastructure.Coordinate) (datastructure.Coordinate, bool) {
	if len(coords) == 0 {
		return datastructure.Coordinate{}, false
	}
	sumLon, sumLat := 0.0, 0.0
	for _, c := range coords {
		sumLon += c.Lon
		sumLat += c.Lat
	}
	n := float64(len(coords))
	return datastructure.NewCoordinate(sumLon/n, sumLat/n), true
}
