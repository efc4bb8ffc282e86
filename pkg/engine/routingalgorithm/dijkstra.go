package routingalgorithm

import (
	"math"

	"lintang/campusnav/pkg/datastructure"
	"lintang/campusnav/pkg/geo"
	"lintang/campusnav/pkg/util"
)

type Graph interface {
	GetNumNodes() int
	GetNode(nodeIDx int32) datastructure.Node
	GetOutEdges(nodeIDx int32) []datastructure.Edge
}

type RouteAlgorithm struct {
	g Graph
}

func NewRouteAlgorithm(g Graph) *RouteAlgorithm {
	return &RouteAlgorithm{g: g}
}

// NearestNode linear scan over every node by planar distance. The first node with
// a strictly smaller distance wins ties. ok is false for an empty graph or a
// non-finite coordinate.
func (rt *RouteAlgorithm) NearestNode(c datastructure.Coordinate) (int32, bool) {
	if !c.IsValid() {
		return -1, false
	}

	best := math.Inf(1)
	nearest := int32(-1)
	for i := 0; i < rt.g.GetNumNodes(); i++ {
		n := rt.g.GetNode(int32(i))
		dist := geo.PlanarDistance(c, n.Coord)
		if dist < best {
			best = dist
			nearest = n.ID
		}
	}
	return nearest, nearest != -1
}

// ShortestPath resolves both coordinates to their nearest nodes and runs Dijkstra
// between them. It returns the raw node coordinates along the path and the planar
// path length. found is false when either end cannot be resolved or the nodes
// are in different components.
func (rt *RouteAlgorithm) ShortestPath(start, end datastructure.Coordinate) ([]datastructure.Coordinate, float64, bool) {
	from, ok := rt.NearestNode(start)
	if !ok {
		return nil, 0, false
	}
	to, ok := rt.NearestNode(end)
	if !ok {
		return nil, 0, false
	}

	nodePath, dist, found := rt.ShortestPathDijkstra(from, to)
	if !found {
		return nil, 0, false
	}

	path := make([]datastructure.Coordinate, len(nodePath))
	for i, id := range nodePath {
		path[i] = rt.g.GetNode(id).Coord
	}
	return path, dist, true
}

// ShortestPathDijkstra node-to-node Dijkstra with early exit on the destination.
// Neighbors are re-inserted on every improvement; entries whose rank is above the
// node's settled distance are stale and skipped.
func (rt *RouteAlgorithm) ShortestPathDijkstra(from, to int32) ([]int32, float64, bool) {
	numNodes := rt.g.GetNumNodes()
	if from < 0 || to < 0 || int(from) >= numNodes || int(to) >= numNodes {
		return nil, 0, false
	}

	dist := make([]float64, numNodes)
	prev := make([]int32, numNodes)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[from] = 0

	pq := NewMinHeap[int32]()
	pq.Insert(PriorityQueueNode[int32]{Rank: 0, Item: from})

	for pq.Size() > 0 {
		node, _ := pq.ExtractMin()
		curr := node.Item
		if node.Rank > dist[curr] {
			continue
		}

		if curr == to {
			path := []int32{}
			for at := to; at != -1; at = prev[at] {
				path = append(path, at)
			}
			util.ReverseG(path)
			return path, dist[to], true
		}

		for _, e := range rt.g.GetOutEdges(curr) {
			newDist := dist[curr] + e.Weight
			if newDist < dist[e.To] {
				dist[e.To] = newDist
				prev[e.To] = curr
				pq.Insert(PriorityQueueNode[int32]{Rank: newDist, Item: e.To})
			}
		}
	}

	return nil, 0, false
}
