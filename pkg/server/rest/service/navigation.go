package service

import (
	"context"
	"runtime"
	"strings"

	"lintang/campusnav/pkg/campus"
	"lintang/campusnav/pkg/concurrent"
	"lintang/campusnav/pkg/datastructure"
	"lintang/campusnav/pkg/engine/estimator"
	"lintang/campusnav/pkg/server"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type Graph interface {
	GetNode(nodeIDx int32) datastructure.Node
	GetNumNodes() int
	GetNumEdges() int
	ToGeoJSON() *geojson.FeatureCollection
}

type RoutingAlgorithm interface {
	NearestNode(c datastructure.Coordinate) (int32, bool)
	ShortestPath(start, end datastructure.Coordinate) ([]datastructure.Coordinate, float64, bool)
}

type Snapper interface {
	SnapWithDistance(c datastructure.Coordinate) (datastructure.Coordinate, float64, bool)
}

type PlaceCatalog interface {
	Find(name string) (campus.Feature, bool)
	Search(query string) []campus.Feature
}

type KVDB interface {
	GetNearbyPlaces(lat, lon, radiusKm float64) ([]datastructure.PlaceDistance, error)
}

type NavigationService struct {
	graph   Graph
	routing RoutingAlgorithm
	snapper Snapper
	places  PlaceCatalog
	KV      KVDB
	log     *zap.Logger
}

func NewNavigationService(g Graph, routing RoutingAlgorithm, snapper Snapper, places PlaceCatalog, kv KVDB, log *zap.Logger) *NavigationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NavigationService{graph: g, routing: routing, snapper: snapper, places: places, KV: kv, log: log}
}

type RouteResult struct {
	Path     []datastructure.Coordinate
	Polyline string
	Found    bool
	Estimate estimator.Estimate
}

// Route finds the walking path between origin and dest. When the graph has no
// path the result is the straight line between them with Found false.
func (uc *NavigationService) Route(ctx context.Context, origin, dest datastructure.Coordinate) (RouteResult, error) {
	if !origin.IsValid() || !dest.IsValid() {
		return RouteResult{}, server.WrapErrorf(nil, server.ErrBadParamInput, "origin and destination must be finite coordinates")
	}

	path, _, found := uc.routing.ShortestPath(origin, dest)
	drawn, est := estimator.EstimateRoute(origin, dest, path, found)
	if !found {
		uc.log.Debug("no graph path, using straight line",
			zap.Float64("src_lat", origin.Lat), zap.Float64("src_lon", origin.Lon),
			zap.Float64("dst_lat", dest.Lat), zap.Float64("dst_lon", dest.Lon))
	}

	return RouteResult{
		Path:     drawn,
		Polyline: datastructure.RenderPath(drawn),
		Found:    found,
		Estimate: est,
	}, nil
}

// RouteToPlace routes from origin to the representative coordinate of the named feature.
func (uc *NavigationService) RouteToPlace(ctx context.Context, origin datastructure.Coordinate, name string) (datastructure.Place, RouteResult, error) {
	feature, ok := uc.places.Find(strings.TrimSpace(name))
	if !ok {
		return datastructure.Place{}, RouteResult{}, server.WrapErrorf(nil, server.ErrNotFound, "place %q not found", name)
	}
	place, ok := feature.ToPlace()
	if !ok {
		return datastructure.Place{}, RouteResult{}, server.WrapErrorf(nil, server.ErrNotFound, "place %q has no location", name)
	}

	res, err := uc.Route(ctx, origin, place.Coord)
	if err != nil {
		return datastructure.Place{}, RouteResult{}, err
	}
	return place, res, nil
}

type SnapResult struct {
	Index    int
	Coord    datastructure.Coordinate
	Distance float64
	Snapped  bool
}

// Snap moves c onto the nearest road within the snap tolerance.
func (uc *NavigationService) Snap(ctx context.Context, c datastructure.Coordinate) (SnapResult, error) {
	if !c.IsValid() {
		return SnapResult{}, server.WrapErrorf(nil, server.ErrBadParamInput, "coordinate must be finite")
	}
	snapped, dist, ok := uc.snapper.SnapWithDistance(c)
	return SnapResult{Coord: snapped, Distance: dist, Snapped: ok}, nil
}

// SnapTrace snaps every fix of a GPS trace. Results keep the input order.
func (uc *NavigationService) SnapTrace(ctx context.Context, coords []datastructure.Coordinate) ([]SnapResult, error) {
	for _, c := range coords {
		if !c.IsValid() {
			return nil, server.WrapErrorf(nil, server.ErrBadParamInput, "trace contains a non-finite coordinate")
		}
	}

	workers := concurrent.NewWorkerPool[concurrent.SnapJobItem, SnapResult](runtime.NumCPU(), len(coords))
	for i, c := range coords {
		workers.AddJob(concurrent.SnapJobItem{Index: i, Coord: c})
	}
	workers.Close()
	workers.Start(uc.snapJob)
	workers.Wait()

	results := make([]SnapResult, len(coords))
	for res := range workers.CollectResults() {
		results[res.Index] = res
	}

	if err := ctx.Err(); err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "snap trace cancelled")
	}
	return results, nil
}

func (uc *NavigationService) snapJob(job concurrent.SnapJobItem) SnapResult {
	snapped, dist, ok := uc.snapper.SnapWithDistance(job.Coord)
	return SnapResult{Index: job.Index, Coord: snapped, Distance: dist, Snapped: ok}
}

// NearestNode returns the graph node closest to c.
func (uc *NavigationService) NearestNode(ctx context.Context, c datastructure.Coordinate) (datastructure.Node, error) {
	if !c.IsValid() {
		return datastructure.Node{}, server.WrapErrorf(nil, server.ErrBadParamInput, "coordinate must be finite")
	}
	id, ok := uc.routing.NearestNode(c)
	if !ok {
		return datastructure.Node{}, server.WrapErrorf(server.ErrNoRoute, server.ErrNotFound, "the walking graph is empty")
	}
	return uc.graph.GetNode(id), nil
}

func (uc *NavigationService) SearchPlaces(ctx context.Context, query string) []datastructure.Place {
	places := []datastructure.Place{}
	for _, f := range uc.places.Search(query) {
		if p, ok := f.ToPlace(); ok {
			places = append(places, p)
		}
	}
	return places
}

func (uc *NavigationService) NearbyPlaces(ctx context.Context, c datastructure.Coordinate, radiusKm float64) ([]datastructure.PlaceDistance, error) {
	if !c.IsValid() || radiusKm <= 0 {
		return nil, server.WrapErrorf(nil, server.ErrBadParamInput, "need a finite coordinate and a positive radius")
	}
	places, err := uc.KV.GetNearbyPlaces(c.Lat, c.Lon, radiusKm)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, server.MessageInternalServerError)
	}
	return places, nil
}

func (uc *NavigationService) GraphGeoJSON(ctx context.Context) *geojson.FeatureCollection {
	return uc.graph.ToGeoJSON()
}
