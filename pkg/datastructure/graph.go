package datastructure

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"
)

type Node struct {
	Coord Coordinate
	Key   NodeKey
	ID    int32
}

// Edge is one directed adjacency entry. Weight is the planar distance between the
// raw endpoint coordinates, in degrees.
type Edge struct {
	Weight   float64
	From     int32
	To       int32
	Stitched bool
}

// Graph is the walking network. Nodes live in an arena indexed by their dense ID;
// nodeIdx maps quantized keys to IDs. A Graph is never mutated after NewGraph
// returns, so it can be shared between goroutines.
type Graph struct {
	nodes    []Node
	outEdges [][]Edge
	nodeIdx  map[NodeKey]int32
	numEdges int
}

// NewGraph takes ownership of nodes and outEdges. outEdges[i] holds the outgoing
// edges of nodes[i], and nodes[i].ID must equal i.
func NewGraph(nodes []Node, outEdges [][]Edge) *Graph {
	g := &Graph{
		nodes:    nodes,
		outEdges: outEdges,
		nodeIdx:  make(map[NodeKey]int32, len(nodes)),
	}
	for _, n := range nodes {
		g.nodeIdx[n.Key] = n.ID
	}
	for _, edges := range outEdges {
		g.numEdges += len(edges)
	}
	return g
}

func (g *Graph) GetNumNodes() int {
	return len(g.nodes)
}

// GetNumEdges counts directed edges, so every road segment counts twice.
func (g *Graph) GetNumEdges() int {
	return g.numEdges
}

func (g *Graph) GetNode(nodeIDx int32) Node {
	return g.nodes[nodeIDx]
}

func (g *Graph) GetOutEdges(nodeIDx int32) []Edge {
	return g.outEdges[nodeIDx]
}

func (g *Graph) GetNodeIDx(key NodeKey) (int32, bool) {
	id, ok := g.nodeIdx[key]
	return id, ok
}

// GetEdge returns the edge from -> to if one exists.
func (g *Graph) GetEdge(from, to int32) (Edge, bool) {
	for _, e := range g.outEdges[from] {
		if e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

// ToGeoJSON exports every node as a Point and every directed edge as a two-point
// LineString. Useful for eyeballing stitching on a map.
func (g *Graph) ToGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, n := range g.nodes {
		nf := geojson.NewFeature(orb.Point{n.Coord.Lon, n.Coord.Lat})
		nf.Properties["type"] = "node"
		nf.Properties["id"] = n.ID
		fc.Append(nf)

		for _, e := range g.outEdges[n.ID] {
			to := g.nodes[e.To].Coord
			ef := geojson.NewFeature(orb.LineString{
				{n.Coord.Lon, n.Coord.Lat},
				{to.Lon, to.Lat},
			})
			ef.Properties["type"] = "edge"
			ef.Properties["weight"] = e.Weight
			ef.Properties["stitched"] = e.Stitched
			fc.Append(ef)
		}
	}
	return fc
}

// RenderPath encodes a path as a Google encoded polyline (lat,lon order).
func RenderPath(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
