package campus_test

import (
	"context"
	"strings"
	"testing"

	"lintang/campusnav/pkg/campus"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campusGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Main Walk", "type": "walkway"},
     "geometry": {"type": "LineString", "coordinates": [[110.0, -7.0], [110.001, -7.0]]}},
    {"type": "Feature", "properties": {"name": "Ring Road", "category": "road"},
     "geometry": {"type": "LineString", "coordinates": [[110.001, -7.0], [110.001, -7.002]]}},
    {"type": "Feature", "properties": {"name": "Central Library", "type": "building", "description": "open 8-22"},
     "geometry": {"type": "Polygon", "coordinates": [[[110.0, -7.001], [110.0004, -7.001], [110.0004, -7.0014], [110.0, -7.0014], [110.0, -7.001]]]}},
    {"type": "Feature", "properties": {"name": "Library Cafe", "type": "food"},
     "geometry": {"type": "Point", "coordinates": [110.0006, -7.0003]}},
    {"type": "Feature", "properties": {"type": "walkway"},
     "geometry": {"type": "LineString", "coordinates": [[110.0, -7.0], [110.0, -7.001]]}}
  ]
}`

func loadCampus(t *testing.T) *campus.Dataset {
	t.Helper()
	ds, err := campus.LoadGeoJSON(strings.NewReader(campusGeoJSON))
	require.NoError(t, err)
	return ds
}

func TestLoadGeoJSON(t *testing.T) {
	ds := loadCampus(t)
	require.Len(t, ds.Features, 5)

	assert.Equal(t, "Main Walk", ds.Features[0].Name)
	assert.Equal(t, campus.TypeWalkway, ds.Features[0].Type)
	assert.Equal(t, campus.TypeRoad, ds.Features[1].Type, "type falls back to category")
	assert.Equal(t, "open 8-22", ds.Features[2].Description)

	coords, ok := ds.Features[0].LineCoordinates()
	require.True(t, ok)
	assert.Len(t, coords, 2)

	_, ok = ds.Features[3].LineCoordinates()
	assert.False(t, ok)

	_, err := campus.LoadGeoJSON(strings.NewReader(`{"type": "nope"`))
	assert.Error(t, err)
}

func TestRepresentative(t *testing.T) {
	tests := []struct {
		name    string
		geom    orb.Geometry
		wantLon float64
		wantLat float64
		ok      bool
	}{
		{"point", orb.Point{110.0006, -7.0003}, 110.0006, -7.0003, true},
		{"line averages its vertices", orb.LineString{{110.0, -7.0}, {110.002, -7.002}}, 110.001, -7.001, true},
		{"polygon averages its outer ring", orb.Polygon{{{0, 0}, {2, 0}, {2, 2}, {0, 2}}}, 1, 1, true},
		{"empty polygon", orb.Polygon{}, 0, 0, false},
		{"no geometry", nil, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := campus.Feature{Geometry: tt.geom}.Representative()
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.wantLon, c.Lon, 1e-9)
				assert.InDelta(t, tt.wantLat, c.Lat, 1e-9)
			}
		})
	}
}

func TestSearchAndFind(t *testing.T) {
	ds := loadCampus(t)

	names := func(fs []campus.Feature) []string {
		res := []string{}
		for _, f := range fs {
			res = append(res, f.Name)
		}
		return res
	}

	assert.Equal(t, []string{"Central Library", "Library Cafe"}, names(ds.Search("library")))
	assert.Equal(t, []string{"Central Library", "Library Cafe"}, names(ds.Search("LIBR")))
	assert.Empty(t, ds.Search("l"), "single character queries match nothing")
	assert.Empty(t, ds.Search(""))
	assert.Empty(t, ds.Search("gym"))

	f, ok := ds.Find("Library Cafe")
	require.True(t, ok)
	assert.Equal(t, "food", f.Type)

	_, ok = ds.Find("library cafe")
	assert.False(t, ok, "find is exact")
}

func TestPlaces(t *testing.T) {
	places := loadCampus(t).Places()
	require.Len(t, places, 4, "the unnamed walkway is not a place")

	lib := places[2]
	assert.Equal(t, "Central Library", lib.Name)
	assert.InDelta(t, 110.00016, lib.Coord.Lon, 1e-9)
	assert.InDelta(t, -7.00116, lib.Coord.Lat, 1e-9)
}

const campusOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="-7.0" lon="110.0"/>
  <node id="2" lat="-7.001" lon="110.0"/>
  <node id="3" lat="-7.0" lon="110.001">
    <tag k="name" v="Library"/>
    <tag k="amenity" v="library"/>
  </node>
  <node id="4" lat="-7.002" lon="110.002"/>
  <node id="5" lat="-7.002" lon="110.003"/>
  <node id="6" lat="-7.003" lon="110.003"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="11">
    <nd ref="1"/>
    <nd ref="3"/>
    <tag k="highway" v="service"/>
    <tag k="name" v="Ring Road"/>
  </way>
  <way id="12">
    <nd ref="4"/>
    <nd ref="5"/>
    <nd ref="6"/>
    <nd ref="4"/>
    <tag k="building" v="yes"/>
    <tag k="name" v="Hall"/>
  </way>
</osm>`

func TestLoadOSM(t *testing.T) {
	ds, err := campus.LoadOSM(context.Background(), strings.NewReader(campusOSM))
	require.NoError(t, err)
	require.Len(t, ds.Features, 4)

	byName := map[string]campus.Feature{}
	for _, f := range ds.Features {
		byName[f.Name] = f
	}

	assert.Equal(t, "library", byName["Library"].Type)
	assert.IsType(t, orb.Point{}, byName["Library"].Geometry)

	assert.Equal(t, campus.TypeRoad, byName["Ring Road"].Type)
	assert.Equal(t, campus.TypeWalkway, byName[""].Type)

	hall := byName["Hall"]
	assert.Equal(t, "building", hall.Type)
	assert.IsType(t, orb.Polygon{}, hall.Geometry)
}

func TestLoadFile(t *testing.T) {
	_, err := campus.LoadFile(context.Background(), "campus.shp", "shapefile")
	assert.Error(t, err)

	_, err = campus.LoadFile(context.Background(), "does-not-exist.geojson", "geojson")
	assert.Error(t, err)
}
