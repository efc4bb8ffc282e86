package geo

import "lintang/campusnav/pkg/datastructure"

// ProjectPointToSegment returns the point on segment [a,b] nearest to p.
// The projection parameter t is clamped to [0,1], so the result never
// extrapolates past an endpoint. A zero-length segment projects onto a.
func ProjectPointToSegment(p, a, b datastructure.Coordinate) datastructure.Coordinate {
	abLon := b.Lon - a.Lon
	abLat := b.Lat - a.Lat
	apLon := p.Lon - a.Lon
	apLat := p.Lat - a.Lat

	lenSq := abLon*abLon + abLat*abLat
	if lenSq == 0 {
		return a
	}

	t := (apLon*abLon + apLat*abLat) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return datastructure.NewCoordinate(a.Lon+abLon*t, a.Lat+abLat*t)
}
