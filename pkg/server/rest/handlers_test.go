package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lintang/campusnav/pkg/builder"
	"lintang/campusnav/pkg/campus"
	"lintang/campusnav/pkg/engine/routingalgorithm"
	"lintang/campusnav/pkg/engine/snapping"
	"lintang/campusnav/pkg/kv"
	"lintang/campusnav/pkg/server/rest"
	"lintang/campusnav/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, features []campus.Feature) *chi.Mux {
	t.Helper()
	return newRouterWithRegistry(t, features, prometheus.NewRegistry())
}

func newRouterWithRegistry(t *testing.T, features []campus.Feature, reg *prometheus.Registry) *chi.Mux {
	t.Helper()
	ds := campus.NewDataset(features)
	g := builder.Build(ds.Features)

	db, err := kv.OpenKVDB("", zap.NewNop(), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.CreatePlaceKV(ds.Places()))

	svc := service.NewNavigationService(g, routingalgorithm.NewRouteAlgorithm(g),
		snapping.NewRoadSnapper(g, snapping.DefaultSnapTolerance), ds, db, zap.NewNop())

	m := rest.NewMetrics(reg)
	r := chi.NewRouter()
	r.Use(rest.ZapLogger(zap.NewNop()))
	r.Use(rest.PromeHttpMiddleware(m))
	rest.NavigatorRouter(r, svc, m)
	return r
}

func campusFeatures() []campus.Feature {
	return []campus.Feature{
		{Name: "Main Walk", Type: campus.TypeWalkway, Geometry: orb.LineString{{110.0, -7.0}, {110.001, -7.0}, {110.002, -7.0}}},
		{Name: "Island Path", Type: campus.TypeWalkway, Geometry: orb.LineString{{110.01, -7.0}, {110.011, -7.0}}},
		{Name: "Library", Type: "building", Geometry: orb.Point{110.002, -7.0001}},
	}
}

func do(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func TestShortestPathHandler(t *testing.T) {
	r := newRouter(t, campusFeatures())

	t.Run("found", func(t *testing.T) {
		rec, resp := do(t, r, http.MethodPost, "/api/navigations/shortest-path",
			`{"src_lat": -7.0, "src_lon": 110.0, "dst_lat": -7.0, "dst_lon": 110.002}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, resp["found"])
		assert.Equal(t, "221 m", resp["distance_label"])
		assert.Equal(t, "3 min", resp["time_label"])
		assert.Len(t, resp["route"], 3)
	})

	t.Run("no graph path still answers with the straight line", func(t *testing.T) {
		rec, resp := do(t, r, http.MethodPost, "/api/navigations/shortest-path",
			`{"src_lat": -7.0, "src_lon": 110.0, "dst_lat": -7.0, "dst_lon": 110.011}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, resp["found"])
		assert.Len(t, resp["route"], 2)
	})

	t.Run("out of range latitude", func(t *testing.T) {
		rec, resp := do(t, r, http.MethodPost, "/api/navigations/shortest-path",
			`{"src_lat": -97.0, "src_lon": 110.0, "dst_lat": -7.0, "dst_lon": 110.002}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, resp["validation"])
	})

	t.Run("missing fields", func(t *testing.T) {
		rec, _ := do(t, r, http.MethodPost, "/api/navigations/shortest-path", `{"src_lat": -7.0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouteToPlaceHandler(t *testing.T) {
	r := newRouter(t, campusFeatures())

	rec, resp := do(t, r, http.MethodPost, "/api/navigations/route-to-place",
		`{"src_lat": -7.0, "src_lon": 110.0, "place": "Library"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["found"])
	assert.Equal(t, "Library", resp["place"].(map[string]interface{})["name"])

	rec, _ = do(t, r, http.MethodPost, "/api/navigations/route-to-place",
		`{"src_lat": -7.0, "src_lon": 110.0, "place": "Gym"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSnapHandlers(t *testing.T) {
	r := newRouter(t, campusFeatures())

	rec, resp := do(t, r, http.MethodPost, "/api/navigations/snap", `{"lat": -7.0001, "lon": 110.0005}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["snapped"])

	rec, resp = do(t, r, http.MethodPost, "/api/navigations/snap", `{"lat": -7.01, "lon": 110.0005}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["snapped"])
	assert.Nil(t, resp["distance_degrees"])

	rec, resp = do(t, r, http.MethodPost, "/api/navigations/snap-trace",
		`{"coordinates": [{"lat": -7.0001, "lon": 110.0001}, {"lat": -7.01, "lon": 110.0005}]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	coords := resp["coordinates"].([]interface{})
	require.Len(t, coords, 2)
	assert.Equal(t, true, coords[0].(map[string]interface{})["snapped"])
	assert.Equal(t, false, coords[1].(map[string]interface{})["snapped"])

	rec, _ = do(t, r, http.MethodPost, "/api/navigations/snap-trace", `{"coordinates": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNearestNodeHandler(t *testing.T) {
	rec, resp := do(t, newRouter(t, campusFeatures()), http.MethodPost, "/api/navigations/nearest-node",
		`{"lat": -7.0001, "lon": 110.0012}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp["id"])

	rec, _ = do(t, newRouter(t, nil), http.MethodPost, "/api/navigations/nearest-node",
		`{"lat": -7.0001, "lon": 110.0012}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlacesHandlers(t *testing.T) {
	r := newRouter(t, campusFeatures())

	rec, resp := do(t, r, http.MethodGet, "/api/navigations/places?q=libr", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp["places"], 1)

	rec, resp = do(t, r, http.MethodGet, "/api/navigations/places/nearby?lat=-7.0&lon=110.0&radius=0.5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp["places"], 2)

	rec, _ = do(t, r, http.MethodGet, "/api/navigations/places/nearby?lat=abc&lon=110.0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, http.MethodGet, "/api/navigations/places/nearby?lat=-7.0&lon=110.0&radius=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGraphHandler(t *testing.T) {
	rec, resp := do(t, newRouter(t, campusFeatures()), http.MethodGet, "/api/navigations/graph", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "FeatureCollection", resp["type"])
	assert.Len(t, resp["features"], 11)
}

func TestZeroCoordinatesAreValid(t *testing.T) {
	r := newRouter(t, []campus.Feature{
		{Name: "North Walk", Type: campus.TypeWalkway, Geometry: orb.LineString{{0, 0.001}, {0, 0}}},
		{Name: "East Walk", Type: campus.TypeWalkway, Geometry: orb.LineString{{0, 0}, {0.001, 0}}},
		{Name: "Gate", Type: "building", Geometry: orb.Point{0, 0}},
	})

	rec, resp := do(t, r, http.MethodPost, "/api/navigations/shortest-path",
		`{"src_lat": 0.001, "src_lon": 0, "dst_lat": 0, "dst_lon": 0.001}`)
	require.Equal(t, http.StatusOK, rec.Code, resp)
	assert.Equal(t, true, resp["found"])
	assert.Len(t, resp["route"], 3)

	rec, resp = do(t, r, http.MethodPost, "/api/navigations/route-to-place",
		`{"src_lat": 0, "src_lon": 0.001, "place": "Gate"}`)
	assert.Equal(t, http.StatusOK, rec.Code, resp)

	rec, resp = do(t, r, http.MethodPost, "/api/navigations/snap", `{"lat": 0, "lon": 0.0005}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["snapped"])

	rec, _ = do(t, r, http.MethodPost, "/api/navigations/snap-trace", `{"coordinates": [{"lat": 0, "lon": 0}]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(t, r, http.MethodPost, "/api/navigations/nearest-node", `{"lat": 0, "lon": 0}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp["id"])

	rec, _ = do(t, r, http.MethodGet, "/api/navigations/places/nearby?lat=0&lon=0", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("absent coordinates are still rejected", func(t *testing.T) {
		rec, _ := do(t, r, http.MethodPost, "/api/navigations/snap", `{"lat": 0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec, _ = do(t, r, http.MethodGet, "/api/navigations/places/nearby?lon=0", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHttpMetricsUseRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRouterWithRegistry(t, campusFeatures(), reg)

	for _, q := range []string{"libr", "main", "path"} {
		rec, _ := do(t, r, http.MethodGet, "/api/navigations/places?q="+q, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	for _, target := range []string{"/no/such/page", "/another/missing/page"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	paths := map[string]bool{}
	for _, mf := range families {
		if mf.GetName() != "campusnav_total_requests" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "path" {
					paths[l.GetValue()] = true
				}
			}
		}
	}
	assert.Equal(t, map[string]bool{"/api/navigations/places": true, "unmatched": true}, paths)
}
