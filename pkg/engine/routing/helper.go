package routing

import (
	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/costfunction"
	da "github.com/ondravit/VeloPath/pkg/datastructure"
)

// NewRouter. "dijkstra" or "astar" (default) search over graph with cost function cf
func NewRouter(algorithm string, graph *da.Graph, cf costfunction.CostFunction) Router {
	switch algorithm {
	case DIJKSTRA:
		return NewDijkstra(graph, cf)
	default:
		return NewAstar(graph, cf)
	}
}

// PathCost. sum of edge costs along nodes. INF_WEIGHT when two consecutive nodes are not adjacent.
// when several parallel edges exist the cheapest is used, same as the searches do.
func PathCost(graph *da.Graph, nodes []da.Index, cf costfunction.CostFunction) float64 {
	cost := 0.0
	for i := 1; i < len(nodes); i++ {
		best := pkg.INF_WEIGHT
		graph.ForOutEdgesOf(nodes[i-1], func(e *da.Edge) {
			if e.GetHead() == nodes[i] {
				best = min(best, cf.GetWeight(e))
			}
		})
		if best == pkg.INF_WEIGHT {
			return pkg.INF_WEIGHT
		}
		cost += best
	}
	return cost
}

// PathLength. length of the node path in meters
func PathLength(graph *da.Graph, nodes []da.Index) float64 {
	return PathCost(graph, nodes, costfunction.NewDistanceCostFunction())
}
