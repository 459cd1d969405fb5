package usecases

import (
	"github.com/ondravit/VeloPath/pkg/costfunction"
	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/engine/routing"
	"github.com/ondravit/VeloPath/pkg/geo"
	"github.com/ondravit/VeloPath/pkg/spatialindex"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	Nearest(c geo.Coordinate) (datastructure.Index, bool)
	NearestEdge(c geo.Coordinate) (spatialindex.EdgeMatch, bool)
	NewRouter(cf costfunction.CostFunction) routing.Router
	NewCostFunction(q float64) costfunction.CostFunction
}
