package usecases

import (
	"context"
	"math"
	"testing"

	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/engine"
	"github.com/ondravit/VeloPath/pkg/engine/routing"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/ondravit/VeloPath/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func road(id int64, condition pkg.RoadCondition, coords ...geo.Coordinate) datastructure.RoadSegment {
	return datastructure.NewRoadSegment(id, "", coords, condition)
}

func newService(t *testing.T, segments []datastructure.RoadSegment, algorithm string, cacheSize int) *RoutingService {
	cfg := engine.DefaultConfig()
	cfg.Algorithm = algorithm
	rs, err := NewRoutingService(zap.NewNop(), engine.NewEngine(segments, cfg, zap.NewNop()), cacheSize)
	require.NoError(t, err)
	return rs
}

// a short emergency road and a longer excellent detour between (50,14) and (50,14.01),
// continuing north from the end.
func villageRoads() []datastructure.RoadSegment {
	return []datastructure.RoadSegment{
		road(1, pkg.EMERGENCY, geo.NewCoordinate(50, 14), geo.NewCoordinate(50, 14.01)),
		road(2, pkg.EXCELLENT, geo.NewCoordinate(50, 14), geo.NewCoordinate(50.0045, 14.005), geo.NewCoordinate(50, 14.01)),
		road(3, pkg.GOOD, geo.NewCoordinate(50, 14.01), geo.NewCoordinate(50.01, 14.01)),
	}
}

func assertCoordinate(t *testing.T, want, got geo.Coordinate) {
	t.Helper()
	assert.InDelta(t, want.Lat, got.Lat, 1e-4)
	assert.InDelta(t, want.Lon, got.Lon, 1e-4)
}

func TestRouteLShape(t *testing.T) {
	segments := []datastructure.RoadSegment{
		road(1, pkg.EXCELLENT, geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 1)),
		road(2, pkg.EXCELLENT, geo.NewCoordinate(0, 1), geo.NewCoordinate(1, 1)),
	}

	for _, algorithm := range []string{routing.DIJKSTRA, routing.ASTAR} {
		rs := newService(t, segments, algorithm, 16)
		coords, err := rs.Route(context.Background(), geo.NewCoordinate(0, 0), geo.NewCoordinate(1, 1), 0.5)
		require.NoError(t, err)
		require.Len(t, coords, 3)
		assertCoordinate(t, geo.NewCoordinate(0, 0), coords[0])
		assertCoordinate(t, geo.NewCoordinate(0, 1), coords[1])
		assertCoordinate(t, geo.NewCoordinate(1, 1), coords[2])
	}
}

func TestRouteEmptyAndDisconnected(t *testing.T) {
	rs := newService(t, nil, routing.ASTAR, 16)
	coords, err := rs.Route(context.Background(), geo.NewCoordinate(50, 14), geo.NewCoordinate(50.01, 14), 0.5)
	require.NoError(t, err)
	assert.Empty(t, coords)

	rs = newService(t, []datastructure.RoadSegment{
		road(1, pkg.GOOD, geo.NewCoordinate(50, 14), geo.NewCoordinate(50.01, 14)),
		road(2, pkg.GOOD, geo.NewCoordinate(50.02, 14), geo.NewCoordinate(50.03, 14)),
	}, routing.DIJKSTRA, 16)
	coords, err = rs.Route(context.Background(), geo.NewCoordinate(50, 14), geo.NewCoordinate(50.03, 14), 0.5)
	require.NoError(t, err)
	assert.Empty(t, coords)

	// cached negative result
	coords, err = rs.Route(context.Background(), geo.NewCoordinate(50, 14), geo.NewCoordinate(50.03, 14), 0.5)
	require.NoError(t, err)
	assert.Empty(t, coords)
}

func TestRouteIgnoresDegenerateStub(t *testing.T) {
	// a one point stub 22 m from the road start must not capture the nearest lookup
	stub := geo.NewCoordinate(50.0002, 14)
	rs := newService(t, []datastructure.RoadSegment{
		road(1, pkg.GOOD, geo.NewCoordinate(50, 14), geo.NewCoordinate(50.01, 14)),
		road(2, pkg.GOOD, stub, stub),
	}, routing.ASTAR, 16)

	coords, err := rs.Route(context.Background(), stub, geo.NewCoordinate(50.01, 14), 0.5)
	require.NoError(t, err)
	require.Len(t, coords, 2)
	assertCoordinate(t, geo.NewCoordinate(50, 14), coords[0])
	assertCoordinate(t, geo.NewCoordinate(50.01, 14), coords[1])
}

func TestRouteMergedSegments(t *testing.T) {
	// second road starts 2 meters away from the end of the first one
	segments := []datastructure.RoadSegment{
		road(1, pkg.GOOD, geo.NewCoordinate(50, 14), geo.NewCoordinate(50, 14.001)),
		road(2, pkg.GOOD, geo.NewCoordinate(50+2.0/111320.0, 14.001), geo.NewCoordinate(50, 14.002)),
	}
	rs := newService(t, segments, routing.ASTAR, 0)

	coords, err := rs.Route(context.Background(), geo.NewCoordinate(50, 14), geo.NewCoordinate(50, 14.002), 0)
	require.NoError(t, err)
	assert.Len(t, coords, 3)
}

func TestQualityBalance(t *testing.T) {
	rs := newService(t, villageRoads(), routing.ASTAR, 16)
	start, end := geo.NewCoordinate(50, 14), geo.NewCoordinate(50, 14.01)

	short, err := rs.Route(context.Background(), start, end, 0)
	require.NoError(t, err)
	smooth, err := rs.Route(context.Background(), start, end, 1)
	require.NoError(t, err)

	assert.Len(t, short, 2)
	assert.Len(t, smooth, 3)
	assert.LessOrEqual(t, geo.PolylineLength(short), geo.PolylineLength(smooth))

	// out of range is clamped
	clamped, err := rs.Route(context.Background(), start, end, 5)
	require.NoError(t, err)
	assert.Equal(t, smooth, clamped)

	_, err = rs.Route(context.Background(), start, end, math.NaN())
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
}

func TestRouteWaypoints(t *testing.T) {
	rs := newService(t, villageRoads(), routing.DIJKSTRA, 16)

	coords, err := rs.RouteWaypoints(context.Background(), []geo.Coordinate{
		geo.NewCoordinate(50, 14),
		geo.NewCoordinate(50, 14.01),
		geo.NewCoordinate(50.01, 14.01),
	}, 0)
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assertCoordinate(t, geo.NewCoordinate(50, 14.01), coords[1])
	for i := 1; i < len(coords); i++ {
		assert.NotEqual(t, coords[i-1], coords[i], "repeated junction at %d", i)
	}

	_, err = rs.RouteWaypoints(context.Background(), []geo.Coordinate{geo.NewCoordinate(50, 14)}, 0)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
}

func TestRouteWaypointsFailingLeg(t *testing.T) {
	segments := append(villageRoads(), road(9, pkg.GOOD, geo.NewCoordinate(51, 15), geo.NewCoordinate(51.01, 15)))
	rs := newService(t, segments, routing.ASTAR, 16)

	coords, err := rs.RouteWaypoints(context.Background(), []geo.Coordinate{
		geo.NewCoordinate(50, 14),
		geo.NewCoordinate(50, 14.01),
		geo.NewCoordinate(51, 15),
	}, 0.5)
	require.NoError(t, err)
	assert.Empty(t, coords)
}

func TestRouteDetailed(t *testing.T) {
	rs := newService(t, villageRoads(), routing.ASTAR, 16)

	result, err := rs.RouteDetailed(context.Background(), RouteRequest{
		Waypoints: []Waypoint{{Lat: 50.0001, Lon: 14}, {Lat: 50, Lon: 14.01}, {Lat: 50.01, Lon: 14.01}},
		Quality:   1,
	})
	require.NoError(t, err)
	require.True(t, result.Found)

	assert.Len(t, result.Legs, 2)
	assert.Len(t, result.Waypoints, 3)
	assert.InDelta(t, 11.7, result.Waypoints[0].Offset, 1)
	assert.InDelta(t, geo.PolylineLength(result.Coordinates), result.Distance, 1e-6)
	assert.InDelta(t, result.Legs[0].Cost+result.Legs[1].Cost, result.Cost, 1e-9)
	assert.Equal(t, 3, result.Legs[0].Points)

	decoded, err := geo.CoordsFromPolyline(result.Polyline)
	require.NoError(t, err)
	require.Len(t, decoded, len(result.Coordinates))
	assertCoordinate(t, result.Coordinates[1], decoded[1])
}

func TestRouteDetailedValidation(t *testing.T) {
	rs := newService(t, villageRoads(), routing.ASTAR, 16)

	testCases := []struct {
		name    string
		request RouteRequest
	}{
		{
			name:    "single waypoint",
			request: RouteRequest{Waypoints: []Waypoint{{Lat: 50, Lon: 14}}, Quality: 0.5},
		},
		{
			name:    "latitude out of range",
			request: RouteRequest{Waypoints: []Waypoint{{Lat: 95, Lon: 14}, {Lat: 50, Lon: 14}}, Quality: 0.5},
		},
		{
			name:    "quality out of range",
			request: RouteRequest{Waypoints: []Waypoint{{Lat: 50, Lon: 14}, {Lat: 50, Lon: 14.01}}, Quality: 1.5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rs.RouteDetailed(context.Background(), tc.request)
			require.Error(t, err)
			assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
			assert.Contains(t, err.Error(), "validation error")
		})
	}
}

func TestRouteCanceled(t *testing.T) {
	rs := newService(t, villageRoads(), routing.ASTAR, 16)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rs.Route(ctx, geo.NewCoordinate(50, 14), geo.NewCoordinate(50.01, 14.01), 0.3)
	require.Error(t, err)
	assert.Equal(t, util.ErrCanceled, util.ErrorCode(err))
}

func TestInspectRoad(t *testing.T) {
	rs := newService(t, villageRoads(), routing.ASTAR, 16)

	info, ok := rs.InspectRoad(geo.NewCoordinate(49.9998, 14.003))
	require.True(t, ok)
	assert.Equal(t, int64(1), info.SegmentID)
	assert.Equal(t, "emergency", info.Condition)
	assert.InDelta(t, 22.2, info.Distance, 1)

	_, ok = newService(t, nil, routing.ASTAR, 0).InspectRoad(geo.NewCoordinate(50, 14))
	assert.False(t, ok)
}

func TestJoinLegs(t *testing.T) {
	legs := []*routing.Path{
		routing.NewPath([]datastructure.Index{0, 1, 2}, 2, 0),
		routing.NewPath([]datastructure.Index{2}, 0, 0),
		routing.NewPath([]datastructure.Index{2, 3}, 1, 0),
	}
	assert.Equal(t, []datastructure.Index{0, 1, 2, 3}, joinLegs(legs))
}
