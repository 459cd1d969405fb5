package routing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/costfunction"
	da "github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/ondravit/VeloPath/pkg/graphbuilder"
	"github.com/ondravit/VeloPath/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func road(id int64, condition pkg.RoadCondition, coords ...geo.Coordinate) da.RoadSegment {
	return da.NewRoadSegment(id, "", coords, condition)
}

func vertexAt(t *testing.T, graph *da.Graph, lat, lon float64) da.Index {
	u, ok := graph.FindVertex(geo.NewCoordinate(lat, lon))
	require.True(t, ok, "no vertex at %v,%v", lat, lon)
	return u
}

func routers(graph *da.Graph, cf costfunction.CostFunction) []Router {
	return []Router{NewRouter(DIJKSTRA, graph, cf), NewRouter(ASTAR, graph, cf)}
}

func TestLShapedRoad(t *testing.T) {
	graph := graphbuilder.BuildGraph([]da.RoadSegment{
		road(1, pkg.EXCELLENT, geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 1)),
		road(2, pkg.EXCELLENT, geo.NewCoordinate(0, 1), geo.NewCoordinate(1, 1)),
	}, 8)
	cf := costfunction.NewConditionCostFunction(costfunction.DefaultMultiplier)

	s := vertexAt(t, graph, 0, 0)
	corner := vertexAt(t, graph, 0, 1)
	goal := vertexAt(t, graph, 1, 1)

	for _, r := range routers(graph, cf) {
		t.Run(r.Name(), func(t *testing.T) {
			path, err := r.ShortestPath(context.Background(), s, goal)
			require.NoError(t, err)
			assert.Equal(t, []da.Index{s, corner, goal}, path.GetNodes())

			coords := graph.GetCoordinates(path.GetNodes())
			assert.InDelta(t, 1.0, coords[1].Lon, 1e-4)
			assert.InDelta(t, 1.0, coords[2].Lat, 1e-4)
			legs := coords[0].DistanceTo(coords[1]) + coords[1].DistanceTo(coords[2])
			assert.InDelta(t, legs, path.GetCost(), 1e-6)
			assert.InDelta(t, PathCost(graph, path.GetNodes(), cf), path.GetCost(), 1e-6)
		})
	}
}

func TestSameStartAndGoal(t *testing.T) {
	graph := graphbuilder.BuildGraph([]da.RoadSegment{
		road(1, pkg.GOOD, geo.NewCoordinate(50, 14), geo.NewCoordinate(50.01, 14)),
	}, 8)
	cf := costfunction.NewConditionCostFunction(costfunction.DefaultMultiplier)
	s := vertexAt(t, graph, 50, 14)

	for _, r := range routers(graph, cf) {
		path, err := r.ShortestPath(context.Background(), s, s)
		require.NoError(t, err)
		assert.Equal(t, []da.Index{s}, path.GetNodes())
		assert.Equal(t, 0.0, path.GetCost())
	}
}

func TestDisconnected(t *testing.T) {
	graph := graphbuilder.BuildGraph([]da.RoadSegment{
		road(1, pkg.GOOD, geo.NewCoordinate(50, 14), geo.NewCoordinate(50.01, 14)),
		road(2, pkg.GOOD, geo.NewCoordinate(51, 15), geo.NewCoordinate(51.01, 15)),
	}, 8)
	cf := costfunction.NewConditionCostFunction(costfunction.DefaultMultiplier)

	for _, r := range routers(graph, cf) {
		path, err := r.ShortestPath(context.Background(), vertexAt(t, graph, 50, 14), vertexAt(t, graph, 51.01, 15))
		require.NoError(t, err)
		assert.True(t, path.IsEmpty())
		assert.Equal(t, 0.0, path.GetCost())
	}
}

func TestInvalidVertex(t *testing.T) {
	graph := graphbuilder.BuildGraph(nil, 8)
	cf := costfunction.NewDistanceCostFunction()

	for _, r := range routers(graph, cf) {
		_, err := r.ShortestPath(context.Background(), 0, 1)
		require.Error(t, err)
		assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
	}
}

func TestQualityAvoidsBadRoad(t *testing.T) {
	// direct road is in emergency condition, the detour is excellent but ~70% longer
	graph := graphbuilder.BuildGraph([]da.RoadSegment{
		road(1, pkg.EMERGENCY, geo.NewCoordinate(50, 14), geo.NewCoordinate(50, 14.01)),
		road(2, pkg.EXCELLENT, geo.NewCoordinate(50, 14), geo.NewCoordinate(50.0045, 14.005), geo.NewCoordinate(50, 14.01)),
	}, 8)
	s := vertexAt(t, graph, 50, 14)
	goal := vertexAt(t, graph, 50, 14.01)

	distanceOnly := costfunction.NewBlendedCost(0, pkg.DEFAULT_SENSITIVITY, costfunction.DefaultMultiplier)
	qualityOnly := costfunction.NewBlendedCost(1, pkg.DEFAULT_SENSITIVITY, costfunction.DefaultMultiplier)

	for _, algorithm := range []string{DIJKSTRA, ASTAR} {
		short, err := NewRouter(algorithm, graph, distanceOnly).ShortestPath(context.Background(), s, goal)
		require.NoError(t, err)
		smooth, err := NewRouter(algorithm, graph, qualityOnly).ShortestPath(context.Background(), s, goal)
		require.NoError(t, err)

		assert.Len(t, short.GetNodes(), 2)
		assert.Len(t, smooth.GetNodes(), 3)
		assert.LessOrEqual(t, PathLength(graph, short.GetNodes()), PathLength(graph, smooth.GetNodes()))
	}
}

func randomGrid(rng *rand.Rand, rows, cols int, keep float64) []da.RoadSegment {
	segments := make([]da.RoadSegment, 0, rows*cols*2)
	point := func(r, c int) geo.Coordinate {
		return geo.NewCoordinate(50+float64(r)*0.002, 14+float64(c)*0.003)
	}
	id := int64(0)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols && rng.Float64() < keep {
				segments = append(segments, road(id, pkg.Conditions[rng.Intn(len(pkg.Conditions))], point(r, c), point(r, c+1)))
				id++
			}
			if r+1 < rows && rng.Float64() < keep {
				segments = append(segments, road(id, pkg.Conditions[rng.Intn(len(pkg.Conditions))], point(r, c), point(r+1, c)))
				id++
			}
			if r+1 < rows && c+1 < cols && rng.Float64() < keep/3 {
				segments = append(segments, road(id, pkg.Conditions[rng.Intn(len(pkg.Conditions))], point(r, c), point(r+1, c+1)))
				id++
			}
		}
	}
	return segments
}

func TestDijkstraAndAstarAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 5; round++ {
		graph := graphbuilder.BuildGraph(randomGrid(rng, 15, 15, 0.75), 8)
		require.False(t, graph.IsEmpty())

		for _, q := range []float64{0, 0.5, 1} {
			cf := costfunction.NewBlendedCost(q, pkg.DEFAULT_SENSITIVITY, costfunction.LegacyMultiplier)
			dijkstra := NewDijkstra(graph, cf)
			astar := NewAstar(graph, cf)

			t.Run(fmt.Sprintf("round %d q %.1f", round, q), func(t *testing.T) {
				for i := 0; i < 40; i++ {
					s := da.Index(rng.Intn(graph.NumberOfVertices()))
					goal := da.Index(rng.Intn(graph.NumberOfVertices()))

					dp, err := dijkstra.ShortestPath(context.Background(), s, goal)
					require.NoError(t, err)
					ap, err := astar.ShortestPath(context.Background(), s, goal)
					require.NoError(t, err)

					require.Equal(t, dp.IsEmpty(), ap.IsEmpty())
					assert.InDelta(t, dp.GetCost(), ap.GetCost(), 1e-6)
					if !dp.IsEmpty() {
						assert.Equal(t, s, ap.GetNodes()[0])
						assert.Equal(t, goal, ap.GetNodes()[len(ap.GetNodes())-1])
						assert.InDelta(t, ap.GetCost(), PathCost(graph, ap.GetNodes(), cf), 1e-6)
					}
				}
			})
		}
	}
}

func TestCanceledSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	graph := graphbuilder.BuildGraph(randomGrid(rng, 10, 10, 1), 8)
	cf := costfunction.NewDistanceCostFunction()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, r := range routers(graph, cf) {
		_, err := r.ShortestPath(ctx, 0, da.Index(graph.NumberOfVertices()-1))
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, util.ErrCanceled, util.ErrorCode(err))
	}
}
