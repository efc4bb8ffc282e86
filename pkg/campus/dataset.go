package campus

import (
	"fmt"
	"io"
	"os"
	"strings"

	"lintang/campusnav/pkg/datastructure"
	"lintang/campusnav/pkg/geo"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	TypeRoad    = "road"
	TypeWalkway = "walkway"
)

// Feature is one named campus feature. Type comes from the "type" property,
// falling back to "category".
type Feature struct {
	Name        string
	Type        string
	Description string
	Geometry    orb.Geometry
}

// Dataset is the campus map. It is loaded once and never modified.
type Dataset struct {
	Features []Feature
}

func NewDataset(features []Feature) *Dataset {
	return &Dataset{Features: features}
}

func LoadGeoJSONFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open dataset file: %w", err)
	}
	defer f.Close()
	return LoadGeoJSON(f)
}

func LoadGeoJSON(r io.Reader) (*Dataset, error) {
	bb, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read dataset: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(bb)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset geojson: %w", err)
	}

	features := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		tipe := f.Properties.MustString("type", "")
		if tipe == "" {
			tipe = f.Properties.MustString("category", "")
		}
		features = append(features, Feature{
			Name:        f.Properties.MustString("name", ""),
			Type:        tipe,
			Description: f.Properties.MustString("description", ""),
			Geometry:    f.Geometry,
		})
	}
	return NewDataset(features), nil
}

// LineCoordinates returns the vertices of a LineString feature. ok is false for
// any other geometry.
func (f Feature) LineCoordinates() ([]datastructure.Coordinate, bool) {
	ls, ok := f.Geometry.(orb.LineString)
	if !ok {
		return nil, false
	}
	return toCoordinates(ls), true
}

// Representative reduces a feature to one coordinate: a point is itself, a line
// is the average of its vertices, a polygon the average of its outer ring.
func (f Feature) Representative() (datastructure.Coordinate, bool) {
	switch g := f.Geometry.(type) {
	case orb.Point:
		return datastructure.NewCoordinate(g[0], g[1]), true
	case orb.LineString:
		return geo.Average(toCoordinates(g))
	case orb.MultiPoint:
		return geo.Average(toCoordinates(g))
	case orb.Polygon:
		if len(g) == 0 {
			return datastructure.Coordinate{}, false
		}
		return geo.Average(toCoordinates(g[0]))
	case orb.MultiLineString:
		coords := []datastructure.Coordinate{}
		for _, ls := range g {
			coords = append(coords, toCoordinates(ls)...)
		}
		return geo.Average(coords)
	case nil:
		return datastructure.Coordinate{}, false
	default:
		c := g.Bound().Center()
		return datastructure.NewCoordinate(c[0], c[1]), true
	}
}

func toCoordinates[T ~[]orb.Point](pts T) []datastructure.Coordinate {
	coords := make([]datastructure.Coordinate, len(pts))
	for i, p := range pts {
		coords[i] = datastructure.NewCoordinate(p[0], p[1])
	}
	return coords
}

// Find returns the first feature with exactly this name.
func (d *Dataset) Find(name string) (Feature, bool) {
	for _, f := range d.Features {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// Search does a case-insensitive substring match over feature names. Queries of
// one character or less match nothing.
func (d *Dataset) Search(query string) []Feature {
	res := []Feature{}
	if len(query) <= 1 {
		return res
	}
	q := strings.ToLower(query)
	for _, f := range d.Features {
		if f.Name != "" && strings.Contains(strings.ToLower(f.Name), q) {
			res = append(res, f)
		}
	}
	return res
}

// Places returns every named feature that has a representative coordinate.
func (d *Dataset) Places() []datastructure.Place {
	places := []datastructure.Place{}
	for _, f := range d.Features {
		if f.Name == "" {
			continue
		}
		p, ok := f.ToPlace()
		if !ok {
			continue
		}
		places = append(places, p)
	}
	return places
}

func (f Feature) ToPlace() (datastructure.Place, bool) {
	c, ok := f.Representative()
	if !ok {
		return datastructure.Place{}, false
	}
	return datastructure.Place{
		Name:        f.Name,
		Type:        f.Type,
		Description: f.Description,
		Coord:       c,
	}, true
}
