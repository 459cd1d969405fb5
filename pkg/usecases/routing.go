package usecases

import (
	"context"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/engine/routing"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/ondravit/VeloPath/pkg/util"
	"go.uber.org/zap"
)

// legCacheKey. q is rounded to 3 decimals, finer slider steps share a cached leg.
type legCacheKey struct {
	from, to  datastructure.Index
	quality   float64
	algorithm string
}

type RoutingService struct {
	log       *zap.Logger
	engine    RoutingEngine
	validator *requestValidator
	legCache  *lru.Cache[legCacheKey, *routing.Path]
}

// NewRoutingService. cacheSize <= 0 disables the leg cache.
func NewRoutingService(log *zap.Logger, engine RoutingEngine, cacheSize int) (*RoutingService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rs := &RoutingService{
		log:       log,
		engine:    engine,
		validator: newRequestValidator(),
	}
	if cacheSize > 0 {
		// github.com/hashicorp/golang-lru/v2 is thread-safe
		cache, err := lru.New[legCacheKey, *routing.Path](cacheSize)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrInternalServerError, "failed to create leg cache")
		}
		rs.legCache = cache
	}
	return rs, nil
}

func normalizeQuality(q float64) (float64, error) {
	if math.IsNaN(q) {
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "quality balance is NaN")
	}
	return util.RoundFloat(util.Clamp(q, 0, 1), 3), nil
}

// Route. route from the vertex nearest to start to the vertex nearest to end.
// q is clamped to [0,1], 0 is shortest distance and 1 prefers the best surface.
// an empty graph or unreachable end gives an empty result and a nil error.
func (rs *RoutingService) Route(ctx context.Context, start, end geo.Coordinate, q float64) ([]geo.Coordinate, error) {
	return rs.RouteWaypoints(ctx, []geo.Coordinate{start, end}, q)
}

// RouteWaypoints. routes every consecutive pair of points and joins the legs without repeating
// the junction point. if any leg has no route the whole result is empty.
func (rs *RoutingService) RouteWaypoints(ctx context.Context, points []geo.Coordinate, q float64) ([]geo.Coordinate, error) {
	if len(points) < 2 {
		return []geo.Coordinate{}, util.WrapErrorf(nil, util.ErrBadParamInput, "at least 2 points are required, got %d", len(points))
	}
	quality, err := normalizeQuality(q)
	if err != nil {
		return []geo.Coordinate{}, err
	}

	plan, err := rs.route(ctx, points, quality)
	if err != nil || !plan.found {
		return []geo.Coordinate{}, err
	}
	return rs.engine.GetGraph().GetCoordinates(plan.nodes), nil
}

// RouteDetailed. validated waypoint routing with distance, cost, polyline and per-leg summaries.
func (rs *RoutingService) RouteDetailed(ctx context.Context, request RouteRequest) (*RouteResult, error) {
	if err := rs.validator.Struct(request); err != nil {
		return nil, err
	}

	points := make([]geo.Coordinate, len(request.Waypoints))
	for i, w := range request.Waypoints {
		points[i] = w.Coordinate()
	}
	quality, err := normalizeQuality(request.Quality)
	if err != nil {
		return nil, err
	}

	plan, err := rs.route(ctx, points, quality)
	if err != nil {
		return nil, err
	}

	graph := rs.engine.GetGraph()
	result := &RouteResult{
		Found:       plan.found,
		Coordinates: []geo.Coordinate{},
		Legs:        []LegSummary{},
		Waypoints:   make([]SnappedWaypoint, 0, len(points)),
	}
	for i, u := range plan.snapped {
		if u == datastructure.INVALID_VERTEX_ID {
			continue
		}
		snapped := graph.GetCoordinate(u)
		result.Waypoints = append(result.Waypoints, SnappedWaypoint{
			Input:   points[i],
			Snapped: snapped,
			Offset:  points[i].DistanceTo(snapped),
		})
	}
	if !plan.found {
		return result, nil
	}

	result.Coordinates = graph.GetCoordinates(plan.nodes)
	result.Polyline = geo.PolylineFromCoords(result.Coordinates)
	for i, leg := range plan.legs {
		nodes := leg.GetNodes()
		summary := LegSummary{
			From:     points[i],
			To:       points[i+1],
			Distance: routing.PathLength(graph, nodes),
			Cost:     leg.GetCost(),
			Points:   len(nodes),
		}
		result.Distance += summary.Distance
		result.Cost += summary.Cost
		result.Legs = append(result.Legs, summary)
	}
	return result, nil
}

// InspectRoad. the road edge under c, with its condition. false on a graph without edges.
func (rs *RoutingService) InspectRoad(c geo.Coordinate) (RoadInfo, bool) {
	m, ok := rs.engine.NearestEdge(c)
	if !ok {
		return RoadInfo{}, false
	}
	return RoadInfo{
		SegmentID:  m.Edge.GetSegmentId(),
		Condition:  m.Edge.GetCondition().String(),
		Projection: m.Projection,
		Distance:   m.Distance,
		Length:     m.Edge.GetLength(),
	}, true
}
