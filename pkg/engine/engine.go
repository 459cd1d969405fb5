package engine

import (
	"github.com/ondravit/VeloPath/pkg/costfunction"
	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/engine/routing"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/ondravit/VeloPath/pkg/graphbuilder"
	"github.com/ondravit/VeloPath/pkg/spatialindex"
	"go.uber.org/zap"
)

// Engine holds the immutable routing state of one road dataset: graph, spatial indexes and config.
type Engine struct {
	graph     *datastructure.Graph
	nodeIndex spatialindex.NodeIndex
	edgeIndex *spatialindex.EdgeIndex
	cfg       Config
	log       *zap.Logger
}

func NewEngine(segments []datastructure.RoadSegment, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Starting routing engine...",
		zap.Int("segments", len(segments)),
		zap.String("algorithm", cfg.Algorithm),
		zap.String("nearest_index", cfg.NearestIndex),
	)

	graph := graphbuilder.NewGraphBuilder(cfg.MergeTolerance, logger).Build(segments)
	return NewEngineFromGraph(graph, cfg, logger)
}

func NewEngineFromGraph(graph *datastructure.Graph, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.Sanitize(logger)
	minLat, minLon := graph.GetBoundingBox().GetMinCoord()
	maxLat, maxLon := graph.GetBoundingBox().GetMaxCoord()
	logger.Info("road graph loaded",
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("components", graph.NumberOfComponents()),
		zap.Float64("merge_tolerance_m", graph.GetMergeTolerance()),
		zap.Float64s("bounding_box", []float64{minLat, minLon, maxLat, maxLon}),
	)
	return &Engine{
		graph:     graph,
		nodeIndex: spatialindex.NewNodeIndex(cfg.NearestIndex, graph, logger),
		edgeIndex: spatialindex.NewEdgeIndex(graph, logger),
		cfg:       cfg,
		log:       logger,
	}
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

func (e *Engine) GetConfig() Config {
	return e.cfg
}

func (e *Engine) Nearest(c geo.Coordinate) (datastructure.Index, bool) {
	return e.nodeIndex.Nearest(c)
}

func (e *Engine) NearestEdge(c geo.Coordinate) (spatialindex.EdgeMatch, bool) {
	return e.edgeIndex.NearestEdge(c)
}

// NewRouter. router of the configured algorithm over this graph with cost function cf
func (e *Engine) NewRouter(cf costfunction.CostFunction) routing.Router {
	return routing.NewRouter(e.cfg.Algorithm, e.graph, cf)
}

// NewCostFunction. blended condition cost for quality balance q
func (e *Engine) NewCostFunction(q float64) costfunction.CostFunction {
	return costfunction.NewBlendedCost(q, e.cfg.Sensitivity, e.cfg.Multiplier())
}
