package spatialindex

import (
	"math"

	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// EdgeMatch. road edge closest to a query point
type EdgeMatch struct {
	Edge       *datastructure.Edge
	Projection geo.Coordinate // closest point of the edge
	Distance   float64        // meters from the query point to Projection
}

// EdgeIndex r-tree over edge bounding boxes. only one direction of each road is stored.
type EdgeIndex struct {
	tr    *rtree.RTreeG[datastructure.Index]
	graph *datastructure.Graph
}

func NewEdgeIndex(graph *datastructure.Graph, log *zap.Logger) *EdgeIndex {
	if log == nil {
		log = zap.NewNop()
	}
	var tr rtree.RTreeG[datastructure.Index]
	ei := &EdgeIndex{tr: &tr, graph: graph}

	graph.ForEdges(func(e *datastructure.Edge) {
		if e.GetTail() > e.GetHead() {
			return
		}
		min, max := ei.edgeBox(e)
		ei.tr.Insert(min, max, e.GetEdgeId())
	})
	log.Info("edge spatial index built.", zap.Int("edges", ei.tr.Len()))
	return ei
}

func (ei *EdgeIndex) edgeBox(e *datastructure.Edge) ([2]float64, [2]float64) {
	tailLat, tailLon := ei.graph.GetVertexCoordinates(e.GetTail())
	headLat, headLon := ei.graph.GetVertexCoordinates(e.GetHead())
	return [2]float64{math.Min(tailLon, headLon), math.Min(tailLat, headLat)},
		[2]float64{math.Max(tailLon, headLon), math.Max(tailLat, headLat)}
}

func (ei *EdgeIndex) match(c geo.Coordinate, e *datastructure.Edge) EdgeMatch {
	dist, projection := geo.PointLinePerpendicularDistance(ei.graph.GetCoordinate(e.GetTail()),
		ei.graph.GetCoordinate(e.GetHead()), c)
	return EdgeMatch{Edge: e, Projection: projection, Distance: dist}
}

// NearestEdge. the edge with the smallest perpendicular distance to c, false when the graph has no edges.
func (ei *EdgeIndex) NearestEdge(c geo.Coordinate) (EdgeMatch, bool) {
	if ei.tr.Len() == 0 {
		return EdgeMatch{}, false
	}

	for radius := initialRadiusM; radius <= maxSearchRadiusM; radius *= 2 {
		best := EdgeMatch{Distance: math.Inf(1)}
		for _, w := range searchWindows(c, radius) {
			ei.tr.Search(w.min, w.max, func(min, max [2]float64, id datastructure.Index) bool {
				m := ei.match(c, ei.graph.GetOutEdge(id))
				if m.Distance < best.Distance {
					best = m
				}
				return true
			})
		}
		if best.Edge != nil && best.Distance <= radius {
			return best, true
		}
	}

	best := EdgeMatch{Distance: math.Inf(1)}
	ei.graph.ForEdges(func(e *datastructure.Edge) {
		if e.GetTail() > e.GetHead() {
			return
		}
		if m := ei.match(c, e); m.Distance < best.Distance {
			best = m
		}
	})
	return best, best.Edge != nil
}
