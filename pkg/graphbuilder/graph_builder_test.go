package graphbuilder

import (
	"testing"

	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/costfunction"
	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func segment(id int64, condition pkg.RoadCondition, coords ...geo.Coordinate) datastructure.RoadSegment {
	return datastructure.NewRoadSegment(id, "", coords, condition)
}

func TestBuildGraphIsSymmetric(t *testing.T) {
	segments := []datastructure.RoadSegment{
		segment(1, pkg.GOOD, geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 1), geo.NewCoordinate(1, 1)),
		segment(2, pkg.EMERGENCY, geo.NewCoordinate(1, 1), geo.NewCoordinate(2, 1)),
	}
	graph := NewGraphBuilder(pkg.DEFAULT_MERGE_TOLERANCE_M, zap.NewNop()).Build(segments)

	require.Equal(t, 4, graph.NumberOfVertices())
	require.Equal(t, 6, graph.NumberOfEdges())

	graph.ForEdges(func(e *datastructure.Edge) {
		assert.NotEqual(t, e.GetTail(), e.GetHead(), "self loop")
		back, ok := graph.FindEdge(e.GetHead(), e.GetTail())
		require.True(t, ok, "missing reverse of %d->%d", e.GetTail(), e.GetHead())
		assert.Equal(t, e.GetLength(), back.GetLength())
		assert.Equal(t, e.GetCondition(), back.GetCondition())
	})
}

func TestBuildGraphCSRLayout(t *testing.T) {
	segments := []datastructure.RoadSegment{
		segment(1, pkg.GOOD, geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 1)),
		segment(2, pkg.GOOD, geo.NewCoordinate(0, 0), geo.NewCoordinate(1, 0)),
	}
	graph := BuildGraph(segments, pkg.DEFAULT_MERGE_TOLERANCE_M)

	origin, ok := graph.FindVertex(geo.NewCoordinate(0, 0))
	require.True(t, ok)
	assert.Equal(t, datastructure.Index(2), graph.GetOutDegree(origin))

	for e := 0; e < graph.NumberOfEdges(); e++ {
		assert.Equal(t, datastructure.Index(e), graph.GetOutEdge(datastructure.Index(e)).GetEdgeId())
	}
	graph.ForOutEdgesOf(origin, func(e *datastructure.Edge) {
		assert.Equal(t, origin, e.GetTail())
	})
}

func TestBuildGraphMergesNearbyPoints(t *testing.T) {
	// second segment starts 2 meters north of where the first ends
	end := geo.NewCoordinate(50.0, 14.001)
	nearEnd := geo.NewCoordinate(50.0+2.0/111320.0, 14.001)

	segments := []datastructure.RoadSegment{
		segment(1, pkg.GOOD, geo.NewCoordinate(50.0, 14.0), end),
		segment(2, pkg.GOOD, nearEnd, geo.NewCoordinate(50.0, 14.002)),
	}

	graph := BuildGraph(segments, 8)
	assert.Equal(t, 3, graph.NumberOfVertices())

	u, ok := graph.FindVertex(end)
	require.True(t, ok)
	v, ok := graph.FindVertex(nearEnd)
	require.True(t, ok)
	assert.Equal(t, u, v)
}

func TestBuildGraphSkipsDegenerateInput(t *testing.T) {
	a := geo.NewCoordinate(50.0, 14.0)
	b := geo.NewCoordinate(50.01, 14.0)

	segments := []datastructure.RoadSegment{
		segment(1, pkg.GOOD),
		segment(2, pkg.GOOD, a),
		segment(3, pkg.GOOD, a, a, b),
	}
	graph := BuildGraph(segments, 8)

	assert.Equal(t, 2, graph.NumberOfVertices())
	assert.Equal(t, 2, graph.NumberOfEdges())
	graph.ForEdges(func(e *datastructure.Edge) {
		assert.Greater(t, e.GetLength(), 0.0)
	})
}

func TestBuildGraphEmpty(t *testing.T) {
	graph := BuildGraph(nil, 8)
	assert.True(t, graph.IsEmpty())
	assert.Equal(t, 0, graph.NumberOfEdges())
}

func TestBuildReturnsConditionCost(t *testing.T) {
	segments := []datastructure.RoadSegment{
		segment(1, pkg.UNSATISFACTORY, geo.NewCoordinate(50.0, 14.0), geo.NewCoordinate(50.01, 14.0)),
	}
	graph, cf := Build(segments, 8, costfunction.LegacyMultiplier)

	e := graph.GetOutEdge(0)
	assert.InDelta(t, e.GetLength()*2.0, cf.GetWeight(e), 1e-9)
	assert.Equal(t, int64(1), e.GetSegmentId())
}

func TestBuildGraphLabelsComponents(t *testing.T) {
	segments := []datastructure.RoadSegment{
		segment(1, pkg.GOOD, geo.NewCoordinate(50.0, 14.0), geo.NewCoordinate(50.0, 14.01), geo.NewCoordinate(50.01, 14.01)),
		segment(2, pkg.GOOD, geo.NewCoordinate(51.0, 15.0), geo.NewCoordinate(51.0, 15.01)),
	}
	graph := BuildGraph(segments, 8)
	require.Equal(t, 2, graph.NumberOfComponents())

	a, _ := graph.FindVertex(geo.NewCoordinate(50.0, 14.0))
	b, _ := graph.FindVertex(geo.NewCoordinate(50.01, 14.01))
	c, _ := graph.FindVertex(geo.NewCoordinate(51.0, 15.0))
	assert.True(t, graph.SameComponent(a, b))
	assert.False(t, graph.SameComponent(a, c))
	assert.Equal(t, datastructure.Index(0), graph.GetComponent(a))
}

func TestBuildGraphHasNoIsolatedVertices(t *testing.T) {
	stub := geo.NewCoordinate(50.0002, 14.0)
	segments := []datastructure.RoadSegment{
		segment(1, pkg.GOOD, geo.NewCoordinate(50.0, 14.0), geo.NewCoordinate(50.01, 14.0)),
		segment(2, pkg.GOOD, stub, stub),
	}
	graph := BuildGraph(segments, 8)

	assert.Equal(t, 2, graph.NumberOfVertices())
	assert.Equal(t, 1, graph.NumberOfComponents())
	_, ok := graph.FindVertex(stub)
	assert.False(t, ok)
	for u := 0; u < graph.NumberOfVertices(); u++ {
		assert.Greater(t, graph.GetOutDegree(datastructure.Index(u)), datastructure.Index(0))
	}
}
