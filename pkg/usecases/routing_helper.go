package usecases

import (
	"context"

	"github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/engine/routing"
	"github.com/ondravit/VeloPath/pkg/geo"
	"go.uber.org/zap"
)

type routePlan struct {
	found   bool
	snapped []datastructure.Index // nearest vertex of each point, INVALID_VERTEX_ID when unresolved
	legs    []*routing.Path
	nodes   []datastructure.Index // all legs joined, junctions once
}

func (rs *RoutingService) route(ctx context.Context, points []geo.Coordinate, quality float64) (routePlan, error) {
	plan := routePlan{
		snapped: make([]datastructure.Index, len(points)),
	}

	resolved := true
	for i, p := range points {
		u, ok := rs.engine.Nearest(p)
		if !ok {
			u = datastructure.INVALID_VERTEX_ID
			resolved = false
		}
		plan.snapped[i] = u
	}
	if !resolved {
		rs.log.Debug("waypoint could not be resolved to a graph vertex", zap.Int("waypoints", len(points)))
		return plan, nil
	}

	graph := rs.engine.GetGraph()
	for i := 0; i+1 < len(points); i++ {
		if !graph.SameComponent(plan.snapped[i], plan.snapped[i+1]) {
			rs.log.Debug("waypoints lie in different components",
				zap.Int("leg", i),
				zap.Uint32("from_component", uint32(graph.GetComponent(plan.snapped[i]))),
				zap.Uint32("to_component", uint32(graph.GetComponent(plan.snapped[i+1]))),
			)
			return plan, nil
		}
	}

	router := rs.engine.NewRouter(rs.engine.NewCostFunction(quality))
	for i := 0; i+1 < len(points); i++ {
		s, t := plan.snapped[i], plan.snapped[i+1]

		key := legCacheKey{from: s, to: t, quality: quality, algorithm: router.Name()}
		if rs.legCache != nil {
			if leg, ok := rs.legCache.Get(key); ok {
				if leg.IsEmpty() {
					return routePlan{snapped: plan.snapped}, nil
				}
				plan.legs = append(plan.legs, leg)
				continue
			}
		}

		leg, err := router.ShortestPath(ctx, s, t)
		if err != nil {
			return routePlan{snapped: plan.snapped}, err
		}
		if rs.legCache != nil {
			rs.legCache.Add(key, leg)
		}

		rs.log.Debug("leg routed",
			zap.Uint32("from", uint32(s)),
			zap.Uint32("to", uint32(t)),
			zap.Float64("quality", quality),
			zap.Int("settled", leg.GetSettled()),
			zap.Bool("found", !leg.IsEmpty()),
		)
		if leg.IsEmpty() {
			return routePlan{snapped: plan.snapped}, nil
		}
		plan.legs = append(plan.legs, leg)
	}

	plan.found = true
	plan.nodes = joinLegs(plan.legs)
	return plan, nil
}

// joinLegs. concatenates leg node sequences, dropping the first node of every leg after the first
// since it equals the last node of the previous leg.
func joinLegs(legs []*routing.Path) []datastructure.Index {
	nodes := make([]datastructure.Index, 0)
	for i, leg := range legs {
		legNodes := leg.GetNodes()
		if i > 0 && len(nodes) > 0 && len(legNodes) > 0 && nodes[len(nodes)-1] == legNodes[0] {
			legNodes = legNodes[1:]
		}
		nodes = append(nodes, legNodes...)
	}
	return nodes
}
