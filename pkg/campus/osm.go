package campus

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

// highway values a pedestrian-only way can have. every other highway value is a road.
var walkwayHighway = map[string]bool{
	"footway":    true,
	"path":       true,
	"pedestrian": true,
	"steps":      true,
	"corridor":   true,
	"cycleway":   true,
	"bridleway":  true,
}

// tags that make a named node worth showing as a place
var poiTags = []string{"amenity", "building", "shop", "tourism", "leisure", "office"}

func LoadOSMFile(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open osm file: %w", err)
	}
	defer f.Close()
	return LoadOSM(ctx, f)
}

func LoadOSMPBFFile(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open osm pbf file: %w", err)
	}
	defer f.Close()
	return LoadOSMPBF(ctx, f)
}

// LoadOSM reads an OSM XML extract. Highway ways become road/walkway line strings,
// closed building ways become polygons, and named nodes become points.
func LoadOSM(ctx context.Context, r io.Reader) (*Dataset, error) {
	return loadOSM(osmxml.New(ctx, r))
}

// LoadOSMPBF is LoadOSM for .osm.pbf extracts.
func LoadOSMPBF(ctx context.Context, r io.Reader) (*Dataset, error) {
	return loadOSM(osmpbf.New(ctx, r, runtime.GOMAXPROCS(0)))
}

func loadOSM(scanner osm.Scanner) (*Dataset, error) {
	defer scanner.Close()

	nodeMap := make(map[osm.NodeID]*osm.Node)
	nodes := []*osm.Node{}
	ways := []*osm.Way{}
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			nodeMap[o.ID] = o
			nodes = append(nodes, o)
		case *osm.Way:
			ways = append(ways, o)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan osm: %w", err)
	}

	features := []Feature{}
	for _, n := range nodes {
		name := n.Tags.Find("name")
		if name == "" {
			continue
		}
		features = append(features, Feature{
			Name:        name,
			Type:        nodeType(n.Tags),
			Description: n.Tags.Find("description"),
			Geometry:    orb.Point{n.Lon, n.Lat},
		})
	}

	for _, w := range ways {
		pts := orb.LineString{}
		for _, wn := range w.Nodes {
			n, ok := nodeMap[wn.ID]
			if !ok {
				continue
			}
			pts = append(pts, orb.Point{n.Lon, n.Lat})
		}
		if len(pts) < 2 {
			continue
		}

		name := w.Tags.Find("name")
		if highway := w.Tags.Find("highway"); highway != "" {
			tipe := TypeRoad
			if walkwayHighway[highway] {
				tipe = TypeWalkway
			}
			features = append(features, Feature{
				Name:     name,
				Type:     tipe,
				Geometry: pts,
			})
			continue
		}

		closed := len(w.Nodes) > 3 && w.Nodes[0].ID == w.Nodes[len(w.Nodes)-1].ID
		if w.Tags.Find("building") != "" && closed {
			features = append(features, Feature{
				Name:        name,
				Type:        "building",
				Description: w.Tags.Find("description"),
				Geometry:    orb.Polygon{orb.Ring(pts)},
			})
		}
	}

	return NewDataset(features), nil
}

func nodeType(tags osm.Tags) string {
	for _, k := range poiTags {
		if v := tags.Find(k); v != "" {
			if k == "building" {
				return "building"
			}
			return v
		}
	}
	return "poi"
}

// LoadFile loads a dataset in the given format: "geojson", "osm" or "pbf".
func LoadFile(ctx context.Context, path, format string) (*Dataset, error) {
	switch format {
	case "osm":
		return LoadOSMFile(ctx, path)
	case "pbf":
		return LoadOSMPBFFile(ctx, path)
	case "geojson", "":
		return LoadGeoJSONFile(path)
	default:
		return nil, fmt.Errorf("unknown dataset format %q", format)
	}
}
