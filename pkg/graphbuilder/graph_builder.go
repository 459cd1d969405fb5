package graphbuilder

import (
	"github.com/ondravit/VeloPath/pkg/costfunction"
	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/geo"
	"go.uber.org/zap"
)

// GraphBuilder turns raw road segments into an undirected (symmetric) routing graph.
// polyline points that fall into the same snap cell of mergeTolerance meters become one vertex.
type GraphBuilder struct {
	mergeTolerance float64
	log            *zap.Logger

	snapIndex map[datastructure.SnapKey]datastructure.Index
	vertices  []*datastructure.Vertex
	outEdges  [][]*datastructure.Edge

	skippedSegments  int
	zeroLengthEdges  int
	numDirectedEdges int
}

func NewGraphBuilder(mergeTolerance float64, log *zap.Logger) *GraphBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &GraphBuilder{
		mergeTolerance: mergeTolerance,
		log:            log,
	}
}

// Build. builds the graph from segments. the builder can be reused, every call starts from scratch.
func (gb *GraphBuilder) Build(segments []datastructure.RoadSegment) *datastructure.Graph {
	gb.reset(len(segments))

	for _, segment := range segments {
		coords := segment.GetCoordinates()
		if len(coords) < 2 {
			gb.skippedSegments++
			continue
		}

		for i := 0; i+1 < len(coords); i++ {
			// vertices are created only for pairs that become edges, so every vertex has out degree > 0
			keyU, cu := gb.canonical(coords[i])
			keyV, cv := gb.canonical(coords[i+1])
			if keyU == keyV {
				gb.zeroLengthEdges++
				continue
			}

			dist := cu.DistanceTo(cv)
			if dist == 0 {
				gb.zeroLengthEdges++
				continue
			}

			u := gb.resolveVertex(keyU, cu)
			v := gb.resolveVertex(keyV, cv)
			gb.addEdge(u, v, dist, segment)
			gb.addEdge(v, u, dist, segment)
		}
	}

	graph := gb.flatten()

	gb.log.Info("road graph built",
		zap.Int("segments", len(segments)),
		zap.Int("skipped_segments", gb.skippedSegments),
		zap.Int("dropped_zero_length", gb.zeroLengthEdges),
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("components", graph.NumberOfComponents()),
		zap.Float64("merge_tolerance_m", gb.mergeTolerance),
	)
	return graph
}

func (gb *GraphBuilder) reset(numSegments int) {
	gb.snapIndex = make(map[datastructure.SnapKey]datastructure.Index, numSegments*2)
	gb.vertices = make([]*datastructure.Vertex, 0, numSegments*2)
	gb.outEdges = make([][]*datastructure.Edge, 0, numSegments*2)
	gb.skippedSegments = 0
	gb.zeroLengthEdges = 0
	gb.numDirectedEdges = 0
}

// canonical. snap cell of c and the coordinate of the vertex that owns (or will own) it
func (gb *GraphBuilder) canonical(c geo.Coordinate) (datastructure.SnapKey, geo.Coordinate) {
	key := datastructure.NewSnapKey(c, gb.mergeTolerance)
	if u, ok := gb.snapIndex[key]; ok {
		return key, gb.vertices[u].GetCoordinate()
	}
	return key, geo.Snap(c, gb.mergeTolerance)
}

// resolveVertex. vertex of snap cell key, created on first sight with coordinate snapped
func (gb *GraphBuilder) resolveVertex(key datastructure.SnapKey, snapped geo.Coordinate) datastructure.Index {
	if u, ok := gb.snapIndex[key]; ok {
		return u
	}

	u := datastructure.Index(len(gb.vertices))
	gb.vertices = append(gb.vertices, datastructure.NewVertex(snapped.Lat, snapped.Lon, u))
	gb.outEdges = append(gb.outEdges, nil)
	gb.snapIndex[key] = u
	return u
}

func (gb *GraphBuilder) addEdge(u, v datastructure.Index, dist float64, segment datastructure.RoadSegment) {
	gb.outEdges[u] = append(gb.outEdges[u], datastructure.NewEdge(datastructure.INVALID_EDGE_ID, u, v, dist,
		segment.GetCondition(), segment.GetID()))
	gb.numDirectedEdges++
}

// flatten. lay the adjacency lists out in csr order. edge ids are the positions in the flat array.
func (gb *GraphBuilder) flatten() *datastructure.Graph {
	n := len(gb.vertices)
	vertices := make([]*datastructure.Vertex, n+1)
	flatEdges := make([]*datastructure.Edge, 0, gb.numDirectedEdges)

	for u := 0; u < n; u++ {
		vertices[u] = gb.vertices[u]
		vertices[u].SetFirstOut(datastructure.Index(len(flatEdges)))
		for _, e := range gb.outEdges[u] {
			e.SetEdgeId(datastructure.Index(len(flatEdges)))
			flatEdges = append(flatEdges, e)
		}
	}

	// sentinel
	vertices[n] = datastructure.NewVertex(0, 0, datastructure.Index(n))
	vertices[n].SetFirstOut(datastructure.Index(len(flatEdges)))

	return datastructure.NewGraph(vertices, flatEdges, gb.snapIndex, gb.mergeTolerance)
}

// BuildGraph. builds the road graph without logging.
func BuildGraph(segments []datastructure.RoadSegment, mergeTolerance float64) *datastructure.Graph {
	return NewGraphBuilder(mergeTolerance, nil).Build(segments)
}

// Build. builds the road graph together with the condition cost function for multiplier.
// a nil multiplier means costfunction.DefaultMultiplier.
func Build(segments []datastructure.RoadSegment, mergeTolerance float64,
	multiplier costfunction.ConditionMultiplier) (*datastructure.Graph, costfunction.CostFunction) {
	if multiplier == nil {
		multiplier = costfunction.DefaultMultiplier
	}
	return BuildGraph(segments, mergeTolerance), costfunction.NewConditionCostFunction(multiplier)
}
