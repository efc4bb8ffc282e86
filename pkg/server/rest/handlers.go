package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"lintang/campusnav/pkg/datastructure"
	"lintang/campusnav/pkg/server"
	"lintang/campusnav/pkg/server/rest/service"
	"lintang/campusnav/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/paulmach/orb/geojson"
)

const defaultNearbyRadiusKm = 0.5

type NavigationService interface {
	Route(ctx context.Context, origin, dest datastructure.Coordinate) (service.RouteResult, error)
	RouteToPlace(ctx context.Context, origin datastructure.Coordinate, name string) (datastructure.Place, service.RouteResult, error)
	Snap(ctx context.Context, c datastructure.Coordinate) (service.SnapResult, error)
	SnapTrace(ctx context.Context, coords []datastructure.Coordinate) ([]service.SnapResult, error)
	NearestNode(ctx context.Context, c datastructure.Coordinate) (datastructure.Node, error)
	SearchPlaces(ctx context.Context, query string) []datastructure.Place
	NearbyPlaces(ctx context.Context, c datastructure.Coordinate, radiusKm float64) ([]datastructure.PlaceDistance, error)
	GraphGeoJSON(ctx context.Context) *geojson.FeatureCollection
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *metrics) {
	handler := &NavigationHandler{svc, m}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
			r.Post("/route-to-place", handler.routeToPlace)
			r.Post("/snap", handler.snap)
			r.Post("/snap-trace", handler.snapTrace)
			r.Post("/nearest-node", handler.nearestNode)
			r.Get("/places", handler.searchPlaces)
			r.Get("/places/nearby", handler.nearbyPlaces)
			r.Get("/graph", handler.graph)
			r.Get("/hello", handler.Hello)
		})
	})
}

// validateRequest returns a renderer for the validation failure, or nil when data is valid.
func validateRequest(data interface{}) render.Renderer {
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		return ErrValidation(err, vv)
	}
	return nil
}

// SortestPathRequest model info
//
//	@Description	request body for a walking route between two coordinates on campus
type SortestPathRequest struct {
	SrcLat *float64 `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon *float64 `json:"src_lon" validate:"required,lt=180,gt=-180"`
	DstLat *float64 `json:"dst_lat" validate:"required,lt=90,gt=-90"`
	DstLon *float64 `json:"dst_lon" validate:"required,lt=180,gt=-180"`
}

// Bind leaves presence checks to validateRequest; 0 is a valid latitude or longitude.
func (s *SortestPathRequest) Bind(r *http.Request) error {
	return nil
}

// ShortestPathResponse	model info
//
//	@Description	walking route with its distance and walking time
type ShortestPathResponse struct {
	Path          string                     `json:"path"`
	Dist          float64                    `json:"distance"`
	DistanceLabel string                     `json:"distance_label"`
	ETA           float64                    `json:"ETA"`
	TimeLabel     string                     `json:"time_label"`
	Found         bool                       `json:"found"`
	Route         []datastructure.Coordinate `json:"route"`
	Alg           string                     `json:"algorithm"`
}

func NewShortestPathResponse(res service.RouteResult) *ShortestPathResponse {
	alg := "Dijkstra"
	if !res.Found {
		alg = "straight line"
	}
	return &ShortestPathResponse{
		Path:          res.Polyline,
		Dist:          util.RoundFloat(res.Estimate.DistanceMeters, 2),
		DistanceLabel: res.Estimate.DistanceLabel,
		ETA:           float64(res.Estimate.TimeSeconds),
		TimeLabel:     res.Estimate.TimeLabel,
		Found:         res.Found,
		Route:         res.Path,
		Alg:           alg,
	}
}

// shortestPath
//
//	@Summary		walking route between 2 coordinates on campus.
//	@Description	walking route between 2 coordinates on campus. Falls back to the straight line when the walkway graph has no path (found=false).
//	@Tags			navigations
//	@Param			body	body	SortestPathRequest	true	"request body walking route between 2 coordinates"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	data := &SortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := validateRequest(*data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	res, err := h.svc.Route(r.Context(), datastructure.NewCoordinate(*data.SrcLon, *data.SrcLat),
		datastructure.NewCoordinate(*data.DstLon, *data.DstLat))
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.RouteQueryCount.WithLabelValues(strconv.FormatBool(res.Found)).Inc()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewShortestPathResponse(res))
}

// RouteToPlaceRequest model info
//
//	@Description	request body for a walking route from a coordinate to a named campus place
type RouteToPlaceRequest struct {
	SrcLat *float64 `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon *float64 `json:"src_lon" validate:"required,lt=180,gt=-180"`
	Place  string   `json:"place" validate:"required,max=200"`
}

func (s *RouteToPlaceRequest) Bind(r *http.Request) error {
	if s.Place == "" {
		return errors.New("invalid request")
	}
	return nil
}

// RouteToPlaceResponse model info
//
//	@Description	walking route to a named campus place
type RouteToPlaceResponse struct {
	Place datastructure.Place `json:"place"`
	*ShortestPathResponse
}

// routeToPlace
//
//	@Summary		walking route to a named campus place.
//	@Description	resolves the place name to its representative coordinate, then routes to it.
//	@Tags			navigations
//	@Param			body	body	RouteToPlaceRequest	true	"request body walking route to a place"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/route-to-place [post]
//	@Success		200	{object}	RouteToPlaceResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) routeToPlace(w http.ResponseWriter, r *http.Request) {
	data := &RouteToPlaceRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := validateRequest(*data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	place, res, err := h.svc.RouteToPlace(r.Context(), datastructure.NewCoordinate(*data.SrcLon, *data.SrcLat), data.Place)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.RouteQueryCount.WithLabelValues(strconv.FormatBool(res.Found)).Inc()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &RouteToPlaceResponse{Place: place, ShortestPathResponse: NewShortestPathResponse(res)})
}

// Coord model info
//
//	@Description	a single coordinate
type Coord struct {
	Lat *float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon *float64 `json:"lon" validate:"required,lt=180,gt=-180"`
}

func (c *Coord) Bind(r *http.Request) error {
	return nil
}

func (c Coord) coordinate() datastructure.Coordinate {
	return datastructure.NewCoordinate(*c.Lon, *c.Lat)
}

// SnapResponse model info
//
//	@Description	coordinate moved onto the nearest walkway, or unchanged when off-road
type SnapResponse struct {
	Coordinate datastructure.Coordinate `json:"coordinate"`
	Snapped    bool                     `json:"snapped"`
	Distance   *float64                 `json:"distance_degrees,omitempty"`
}

func NewSnapResponse(res service.SnapResult) SnapResponse {
	resp := SnapResponse{Coordinate: res.Coord, Snapped: res.Snapped}
	if res.Snapped {
		d := res.Distance
		resp.Distance = &d
	}
	return resp
}

// snap
//
//	@Summary		snap a position fix onto the nearest walkway.
//	@Description	projects the coordinate onto the nearest edge of the walkway graph when it is within the snap tolerance.
//	@Tags			navigations
//	@Param			body	body	Coord	true	"request body coordinate to snap"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/snap [post]
//	@Success		200	{object}	SnapResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) snap(w http.ResponseWriter, r *http.Request) {
	data := &Coord{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := validateRequest(*data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	res, err := h.svc.Snap(r.Context(), data.coordinate())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.SnapQueryCount.WithLabelValues(strconv.FormatBool(res.Snapped)).Inc()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewSnapResponse(res))
}

// SnapTraceRequest model info
//
//	@Description	request body for snapping a GPS trace
type SnapTraceRequest struct {
	Coordinates []Coord `json:"coordinates" validate:"required,min=1,max=10000,dive"`
}

func (s *SnapTraceRequest) Bind(r *http.Request) error {
	if len(s.Coordinates) == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// SnapTraceResponse model info
//
//	@Description	snapped GPS trace in input order
type SnapTraceResponse struct {
	Coordinates []SnapResponse `json:"coordinates"`
	Path        string         `json:"path"`
}

// snapTrace
//
//	@Summary		snap every fix of a GPS trace onto the walkways.
//	@Description	snaps each coordinate independently and returns them in input order, plus the encoded polyline of the snapped trace.
//	@Tags			navigations
//	@Param			body	body	SnapTraceRequest	true	"request body GPS trace"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/snap-trace [post]
//	@Success		200	{object}	SnapTraceResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) snapTrace(w http.ResponseWriter, r *http.Request) {
	data := &SnapTraceRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := validateRequest(*data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	coords := make([]datastructure.Coordinate, len(data.Coordinates))
	for i, c := range data.Coordinates {
		coords[i] = c.coordinate()
	}

	results, err := h.svc.SnapTrace(r.Context(), coords)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	resp := &SnapTraceResponse{Coordinates: make([]SnapResponse, len(results))}
	snappedPath := make([]datastructure.Coordinate, len(results))
	for i, res := range results {
		h.promeMetrics.SnapQueryCount.WithLabelValues(strconv.FormatBool(res.Snapped)).Inc()
		resp.Coordinates[i] = NewSnapResponse(res)
		snappedPath[i] = res.Coord
	}
	resp.Path = datastructure.RenderPath(snappedPath)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// NearestNodeResponse model info
//
//	@Description	the walkway graph node closest to the query coordinate
type NearestNodeResponse struct {
	ID         int32                    `json:"id"`
	Coordinate datastructure.Coordinate `json:"coordinate"`
}

// nearestNode
//
//	@Summary		nearest walkway graph node.
//	@Description	the graph node with the smallest planar distance to the coordinate.
//	@Tags			navigations
//	@Param			body	body	Coord	true	"request body query coordinate"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/nearest-node [post]
//	@Success		200	{object}	NearestNodeResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) nearestNode(w http.ResponseWriter, r *http.Request) {
	data := &Coord{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := validateRequest(*data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	node, err := h.svc.NearestNode(r.Context(), data.coordinate())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &NearestNodeResponse{ID: node.ID, Coordinate: node.Coord})
}

// PlacesResponse model info
//
//	@Description	campus places matching a query
type PlacesResponse struct {
	Places []datastructure.Place `json:"places"`
}

// searchPlaces
//
//	@Summary		search campus places by name.
//	@Description	case-insensitive substring match over place names. Queries of one character or less return nothing.
//	@Tags			navigations
//	@Param			q	query	string	true	"name query"
//	@Produce		application/json
//	@Router			/navigations/places [get]
//	@Success		200	{object}	PlacesResponse
func (h *NavigationHandler) searchPlaces(w http.ResponseWriter, r *http.Request) {
	places := h.svc.SearchPlaces(r.Context(), r.URL.Query().Get("q"))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &PlacesResponse{Places: places})
}

// NearbyPlacesRequest model info
//
//	@Description	query parameters for places around a coordinate
type NearbyPlacesRequest struct {
	Lat    *float64 `validate:"required,lt=90,gt=-90"`
	Lon    *float64 `validate:"required,lt=180,gt=-180"`
	Radius float64  `validate:"gt=0,lte=10"`
}

// NearbyPlacesResponse model info
//
//	@Description	places within the radius, nearest first
type NearbyPlacesResponse struct {
	Places []datastructure.PlaceDistance `json:"places"`
}

func parseFloatQuery(r *http.Request, key string, def float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}

// parseOptionalFloatQuery returns nil when key is absent so validation can tell it apart from 0.
func parseOptionalFloatQuery(r *http.Request, key string) (*float64, error) {
	if r.URL.Query().Get(key) == "" {
		return nil, nil
	}
	v, err := parseFloatQuery(r, key, 0)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// nearbyPlaces
//
//	@Summary		campus places near a coordinate.
//	@Description	places within radius kilometers (default 0.5), sorted by great-circle distance.
//	@Tags			navigations
//	@Param			lat		query	number	true	"latitude"
//	@Param			lon		query	number	true	"longitude"
//	@Param			radius	query	number	false	"radius in km"
//	@Produce		application/json
//	@Router			/navigations/places/nearby [get]
//	@Success		200	{object}	NearbyPlacesResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) nearbyPlaces(w http.ResponseWriter, r *http.Request) {
	data := NearbyPlacesRequest{}
	var err error
	if data.Lat, err = parseOptionalFloatQuery(r, "lat"); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if data.Lon, err = parseOptionalFloatQuery(r, "lon"); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if data.Radius, err = parseFloatQuery(r, "radius", defaultNearbyRadiusKm); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := validateRequest(data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	places, err := h.svc.NearbyPlaces(r.Context(), datastructure.NewCoordinate(*data.Lon, *data.Lat), data.Radius)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &NearbyPlacesResponse{Places: places})
}

// graph
//
//	@Summary		walkway graph as GeoJSON.
//	@Description	every node as a Point and every directed edge as a LineString, for debugging the stitched network.
//	@Tags			navigations
//	@Produce		application/json
//	@Router			/navigations/graph [get]
//	@Success		200
func (h *NavigationHandler) graph(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.svc.GraphGeoJSON(r.Context()))
}

func (h *NavigationHandler) Hello(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"message": "hello from campusnav"})
}

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 422,
		StatusText:     "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	switch getStatusCode(err) {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusConflict:
		statusText = "Resource conflict."
	case http.StatusBadRequest:
		statusText = "Bad request."
	default:
		statusText = "Error."
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: getStatusCode(err),
		StatusText:     statusText,
		ErrorText:      err.Error(),
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}
	switch ierr.Code() {
	case server.ErrInternalServerError:
		return http.StatusInternalServerError
	case server.ErrNotFound:
		return http.StatusNotFound
	case server.ErrConflict:
		return http.StatusConflict
	case server.ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
