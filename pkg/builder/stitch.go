package builder

import (
	"sort"

	"lintang/campusnav/pkg/geo"

	"github.com/dhconnelly/rtreego"
)

// half side length of the box each node occupies in the rtree
const nodeTol = 1e-9

type nodeRect struct {
	location rtreego.Point
	id       int32
}

func (n *nodeRect) Bounds() rtreego.Rect {
	return n.location.ToRect(nodeTol)
}

// stitch connects every pair of distinct nodes whose planar distance is below
// threshold. The rtree only narrows candidates; the distance check is exact, so
// the edge set equals a full all-pairs comparison. Returns the number of node
// pairs that gained an edge.
func (b *graphBuilder) stitch(threshold float64) int {
	if threshold <= 0 || len(b.nodes) < 2 {
		return 0
	}

	tree := rtreego.NewTree(2, 25, 50) // 2 dimension, 25 min entries, 50 max entries
	for _, n := range b.nodes {
		tree.Insert(&nodeRect{
			location: rtreego.Point{n.Coord.Lon, n.Coord.Lat},
			id:       n.ID,
		})
	}

	count := 0
	for _, n := range b.nodes {
		window := rtreego.Point{n.Coord.Lon, n.Coord.Lat}.ToRect(threshold)

		near := []int32{}
		for _, obj := range tree.SearchIntersect(window) {
			other := obj.(*nodeRect).id
			if other <= n.ID {
				continue
			}
			if geo.PlanarDistance(n.Coord, b.nodes[other].Coord) < threshold {
				near = append(near, other)
			}
		}
		sort.Slice(near, func(i, j int) bool {
			return near[i] < near[j]
		})

		for _, other := range near {
			dist := geo.PlanarDistance(n.Coord, b.nodes[other].Coord)
			added := b.addEdge(n.ID, other, dist, true)
			if b.addEdge(other, n.ID, dist, true) || added {
				count++
			}
		}
	}
	return count
}
