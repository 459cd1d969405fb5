package spatialindex

import (
	"math"

	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree nearest-vertex index. every vertex is a point leaf.
type Rtree struct {
	tr     *rtree.RTreeG[datastructure.Index]
	linear *LinearIndex
	graph  *datastructure.Graph
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. insert every vertex of graph
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("Building R-tree spatial index...", zap.Int("vertices", graph.NumberOfVertices()))
	rt.graph = graph
	rt.linear = NewLinearIndex(graph)
	for u := 0; u < graph.NumberOfVertices(); u++ {
		lat, lon := graph.GetVertexCoordinates(datastructure.Index(u))
		p := [2]float64{lon, lat}
		rt.tr.Insert(p, p, datastructure.Index(u))
	}
	log.Info("R-tree spatial index built.")
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// Nearest. searches windows of growing radius until one holds a vertex within that radius.
// the window contains the whole radius circle, so that vertex is the global nearest.
// ties go to the lower vertex index, same as LinearIndex.
func (rt *Rtree) Nearest(c geo.Coordinate) (datastructure.Index, bool) {
	if rt.graph == nil || rt.tr.Len() == 0 {
		return datastructure.INVALID_VERTEX_ID, false
	}

	for radius := initialRadiusM; radius <= maxSearchRadiusM; radius *= 2 {
		best := datastructure.INVALID_VERTEX_ID
		bestDist := math.Inf(1)
		for _, w := range searchWindows(c, radius) {
			rt.tr.Search(w.min, w.max, func(min, max [2]float64, u datastructure.Index) bool {
				d := c.DistanceTo(rt.graph.GetCoordinate(u))
				if d < bestDist || (d == bestDist && u < best) {
					bestDist = d
					best = u
				}
				return true
			})
		}
		if best != datastructure.INVALID_VERTEX_ID && bestDist <= radius {
			return best, true
		}
	}

	return rt.linear.Nearest(c)
}
