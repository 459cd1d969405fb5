package spatialindex

import (
	"math"

	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/ondravit/VeloPath/pkg/util"
	"go.uber.org/zap"
)

// NodeIndex finds the graph vertex closest (haversine) to a coordinate.
type NodeIndex interface {
	Nearest(c geo.Coordinate) (datastructure.Index, bool)
}

const (
	LINEAR_INDEX = "linear"
	RTREE_INDEX  = "rtree"
)

// NewNodeIndex. kind "linear" scans all vertices, anything else builds an r-tree.
func NewNodeIndex(kind string, graph *datastructure.Graph, log *zap.Logger) NodeIndex {
	if kind == LINEAR_INDEX {
		return NewLinearIndex(graph)
	}
	rt := NewRtree()
	rt.Build(graph, log)
	return rt
}

type LinearIndex struct {
	graph *datastructure.Graph
}

func NewLinearIndex(graph *datastructure.Graph) *LinearIndex {
	return &LinearIndex{graph: graph}
}

// Nearest. O(n) scan, the first vertex with the minimum distance wins. false on an empty graph.
func (li *LinearIndex) Nearest(c geo.Coordinate) (datastructure.Index, bool) {
	best := datastructure.INVALID_VERTEX_ID
	bestDist := math.Inf(1)
	for u := 0; u < li.graph.NumberOfVertices(); u++ {
		d := c.DistanceTo(li.graph.GetCoordinate(datastructure.Index(u)))
		if d < bestDist {
			bestDist = d
			best = datastructure.Index(u)
		}
	}
	return best, best != datastructure.INVALID_VERTEX_ID
}

const (
	windowSlack      = 1.01
	maxWindowLatAbs  = 89.9
	initialRadiusM   = 50.0
	maxSearchRadiusM = 2.5e7 // more than half of the earth circumference
)

type window struct {
	min, max [2]float64 // lon, lat
}

// searchWindows. lon/lat boxes that together contain the circle of radiusMeters around c.
// a window crossing the antimeridian is split in two.
func searchWindows(c geo.Coordinate, radiusMeters float64) []window {
	latDelta := radiusMeters / geo.MetersPerDegreeSphere * windowSlack
	minLat := util.Clamp(c.Lat-latDelta, -90, 90)
	maxLat := util.Clamp(c.Lat+latDelta, -90, 90)

	farLat := math.Max(math.Abs(minLat), math.Abs(maxLat))
	if farLat >= maxWindowLatAbs || latDelta >= 90 {
		return []window{{min: [2]float64{-180, minLat}, max: [2]float64{180, maxLat}}}
	}

	lonDelta := latDelta / math.Cos(util.DegreeToRadians(farLat))
	if lonDelta >= 180 {
		return []window{{min: [2]float64{-180, minLat}, max: [2]float64{180, maxLat}}}
	}

	minLon, maxLon := c.Lon-lonDelta, c.Lon+lonDelta
	windows := []window{{min: [2]float64{math.Max(minLon, -180), minLat}, max: [2]float64{math.Min(maxLon, 180), maxLat}}}
	if minLon < -180 {
		windows = append(windows, window{min: [2]float64{minLon + 360, minLat}, max: [2]float64{180, maxLat}})
	}
	if maxLon > 180 {
		windows = append(windows, window{min: [2]float64{-180, minLat}, max: [2]float64{maxLon - 360, maxLat}})
	}
	return windows
}
