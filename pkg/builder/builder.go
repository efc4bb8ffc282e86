// Package builder turns campus road and walkway line strings into the walking graph.
//
// Every consecutive vertex pair of a line string becomes a bidirectional edge
// weighted by the planar distance of its raw endpoints. Endpoints are merged
// into one node when they quantize to the same 6-digit key. After all lines are
// in, nodes closer than the stitch threshold are connected with stitched edges,
// which models intersections the source data does not share explicitly.
package builder

import (
	"lintang/campusnav/pkg/campus"
	"lintang/campusnav/pkg/datastructure"
	"lintang/campusnav/pkg/geo"

	"go.uber.org/zap"
)

const (
	// ~5 m at campus latitudes, in the same degree units as edge weights
	DefaultStitchThreshold = 0.00005
)

type options struct {
	stitchThreshold float64
	roadTypes       map[string]bool
	log             *zap.Logger
}

type Option func(*options)

func WithStitchThreshold(threshold float64) Option {
	return func(o *options) {
		o.stitchThreshold = threshold
	}
}

// WithRoadTypes replaces the feature types that feed the graph.
func WithRoadTypes(types ...string) Option {
	return func(o *options) {
		o.roadTypes = make(map[string]bool, len(types))
		for _, t := range types {
			o.roadTypes[t] = true
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

type graphBuilder struct {
	nodes    []datastructure.Node
	outEdges [][]datastructure.Edge
	nodeIdx  map[datastructure.NodeKey]int32
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{
		nodes:    make([]datastructure.Node, 0),
		outEdges: make([][]datastructure.Edge, 0),
		nodeIdx:  make(map[datastructure.NodeKey]int32),
	}
}

// Build creates the walking graph. Features that are not road/walkway line strings
// are ignored; with none left the graph is empty.
func Build(features []campus.Feature, opts ...Option) *datastructure.Graph {
	o := options{
		stitchThreshold: DefaultStitchThreshold,
		roadTypes: map[string]bool{
			campus.TypeRoad:    true,
			campus.TypeWalkway: true,
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	b := newGraphBuilder()
	lines, skipped := 0, 0
	for _, f := range features {
		if !o.roadTypes[f.Type] {
			continue
		}
		coords, ok := f.LineCoordinates()
		if !ok {
			continue
		}
		lines++

		for i := 0; i < len(coords)-1; i++ {
			p1 := coords[i]
			p2 := coords[i+1]
			if !p1.IsValid() || !p2.IsValid() {
				skipped++
				continue
			}

			from := b.addNode(p1)
			to := b.addNode(p2)
			if from == to {
				// both endpoints round to the same key
				continue
			}

			weight := geo.PlanarDistance(p1, p2)
			b.addEdge(from, to, weight, false)
			b.addEdge(to, from, weight, false)
		}
	}

	stitched := b.stitch(o.stitchThreshold)

	g := datastructure.NewGraph(b.nodes, b.outEdges)
	if skipped > 0 {
		o.log.Warn("skipped road segments with invalid coordinates", zap.Int("segments", skipped))
	}
	o.log.Info("walking graph built",
		zap.Int("lines", lines),
		zap.Int("nodes", g.GetNumNodes()),
		zap.Int("edges", g.GetNumEdges()),
		zap.Int("stitched", stitched),
	)
	return g
}

// addNode returns the ID for c's key, creating the node with c as its raw
// coordinate on first sight.
func (b *graphBuilder) addNode(c datastructure.Coordinate) int32 {
	key := datastructure.KeyOf(c)
	if id, ok := b.nodeIdx[key]; ok {
		return id
	}
	id := int32(len(b.nodes))
	b.nodes = append(b.nodes, datastructure.Node{
		Coord: c,
		Key:   key,
		ID:    id,
	})
	b.outEdges = append(b.outEdges, []datastructure.Edge{})
	b.nodeIdx[key] = id
	return id
}

// addEdge appends from -> to unless that ordered pair already has an edge.
func (b *graphBuilder) addEdge(from, to int32, weight float64, stitched bool) bool {
	for _, e := range b.outEdges[from] {
		if e.To == to {
			return false
		}
	}
	b.outEdges[from] = append(b.outEdges[from], datastructure.Edge{
		Weight:   weight,
		From:     from,
		To:       to,
		Stitched: stitched,
	})
	return true
}
