// Package estimator converts a walking path into a real-world distance, a walking
// time and the labels shown next to the route.
//
// Routing optimizes planar degree distances; the numbers here are Haversine
// meters, so they are accurate even where the planar proxy is not.
package estimator

import (
	"fmt"
	"math"

	"lintang/campusnav/pkg/datastructure"
	"lintang/campusnav/pkg/geo"
)

// WalkingSpeed in meters per second.
const WalkingSpeed = 1.4

type Estimate struct {
	DistanceMeters float64 `json:"distance_meters"`
	TimeSeconds    int64   `json:"time_seconds"`
	DistanceLabel  string  `json:"distance_label"`
	TimeLabel      string  `json:"time_label"`
}

// EstimatePath measures a path. An empty or single-point path is 0 m.
func EstimatePath(path []datastructure.Coordinate) Estimate {
	return fromDistance(geo.PathLength(path))
}

// EstimateRoute measures the routed path when found, otherwise the straight line
// between origin and dest. It also returns the polyline to draw, which is
// [origin, dest] for the fallback.
func EstimateRoute(origin, dest datastructure.Coordinate, path []datastructure.Coordinate, found bool) ([]datastructure.Coordinate, Estimate) {
	if found && len(path) > 0 {
		return path, EstimatePath(path)
	}
	line := []datastructure.Coordinate{origin, dest}
	return line, fromDistance(geo.HaversineDistance(origin, dest))
}

func fromDistance(meters float64) Estimate {
	seconds := int64(math.Round(meters / WalkingSpeed))
	return Estimate{
		DistanceMeters: meters,
		TimeSeconds:    seconds,
		DistanceLabel:  FormatDistance(meters),
		TimeLabel:      FormatTime(seconds),
	}
}

// FormatDistance under 1000 m (after rounding) shows whole meters, otherwise km with one decimal.
func FormatDistance(meters float64) string {
	if whole := int64(math.Round(meters)); whole < 1000 {
		return fmt.Sprintf("%d m", whole)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatTime under 60 s shows seconds, otherwise whole minutes.
func FormatTime(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%d sec", seconds)
	}
	return fmt.Sprintf("%d min", int64(math.Round(float64(seconds)/60)))
}
