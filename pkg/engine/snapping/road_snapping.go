package snapping

import (
	"math"

	"lintang/campusnav/pkg/datastructure"
	"lintang/campusnav/pkg/geo"
)

// ~22 m at campus latitudes
const DefaultSnapTolerance = 0.0002

// points this close to an edge are already on it; projecting them again only adds rounding error
const onRoadEpsilon = 1e-12

type Graph interface {
	GetNumNodes() int
	GetNode(nodeIDx int32) datastructure.Node
	GetOutEdges(nodeIDx int32) []datastructure.Edge
}

type RoadSnapper struct {
	g         Graph
	tolerance float64
}

func NewRoadSnapper(g Graph, tolerance float64) *RoadSnapper {
	if tolerance <= 0 {
		tolerance = DefaultSnapTolerance
	}
	return &RoadSnapper{g: g, tolerance: tolerance}
}

// Snap projects c onto the nearest edge. c comes back unchanged when no edge is
// within the tolerance.
func (rs *RoadSnapper) Snap(c datastructure.Coordinate) datastructure.Coordinate {
	snapped, _, _ := rs.SnapWithDistance(c)
	return snapped
}

// SnapWithDistance is Snap plus the planar distance to the nearest edge
// (+Inf when the graph has no edges) and whether the point moved onto a road.
func (rs *RoadSnapper) SnapWithDistance(c datastructure.Coordinate) (datastructure.Coordinate, float64, bool) {
	if !c.IsValid() {
		return c, math.Inf(1), false
	}

	best := math.Inf(1)
	snappedPoint := c
	for i := 0; i < rs.g.GetNumNodes(); i++ {
		a := rs.g.GetNode(int32(i)).Coord
		for _, e := range rs.g.GetOutEdges(int32(i)) {
			b := rs.g.GetNode(e.To).Coord
			projection := geo.ProjectPointToSegment(c, a, b)
			dist := geo.PlanarDistance(c, projection)
			if dist <= onRoadEpsilon {
				return c, dist, true
			}
			if dist < best {
				best = dist
				snappedPoint = projection
			}
		}
	}

	if best < rs.tolerance {
		return snappedPoint, best, true
	}
	return c, best, false
}
