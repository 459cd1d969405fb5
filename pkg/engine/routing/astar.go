package routing

import (
	"context"

	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/costfunction"
	da "github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/util"
)

// Astar goal-directed search. h(v) = haversine(v, t) * cf.MinMultiplier(), a lower bound
// of the remaining cost because no edge is cheaper per meter and no path is shorter than the great circle.
type Astar struct {
	graph *da.Graph
	cf    costfunction.CostFunction
}

func NewAstar(graph *da.Graph, cf costfunction.CostFunction) *Astar {
	return &Astar{
		graph: graph,
		cf:    cf,
	}
}

func (as *Astar) Name() string {
	return ASTAR
}

func (as *Astar) heuristic(v, t da.Index) float64 {
	return as.graph.GetHaversineDistanceFromUtoV(v, t) * as.cf.MinMultiplier()
}

func (as *Astar) ShortestPath(ctx context.Context, s, t da.Index) (*Path, error) {
	if err := checkEndpoints(as.graph, s, t); err != nil {
		return nil, err
	}
	if s == t {
		return NewPath([]da.Index{s}, 0, 0), nil
	}

	info := newSearchInfo(as.graph.NumberOfVertices())
	pq := da.NewFourAryHeap[da.Index]()
	pq.Preallocate(min(len(info), MAX_HEAP_PREALLOCATE))

	info[s].dist = 0
	info[s].heapNode = da.NewPriorityQueueNode(as.heuristic(s, t), s)
	pq.Insert(info[s].heapNode)

	numSettledNodes := 0
	for !pq.IsEmpty() {
		if numSettledNodes%CANCEL_CHECK_INTERVAL == 0 && util.StopConcurrentOperation(ctx) {
			return nil, util.WrapErrorf(ctx.Err(), util.ErrCanceled, "a* search from %d to %d canceled", s, t)
		}

		queryKey, _ := pq.ExtractMin()
		uId := queryKey.GetItem()
		info[uId].scanned = true
		numSettledNodes++

		if uId == t {
			break
		}

		as.graph.ForOutEdgesOf(uId, func(e *da.Edge) {
			vId := e.GetHead()

			// g(u) + w(u,v)
			newDist := info[uId].dist + as.cf.GetWeight(e)
			if newDist >= pkg.INF_WEIGHT || newDist >= info[vId].dist {
				return
			}

			info[vId].dist = newDist
			info[vId].parent = uId
			f := newDist + as.heuristic(vId, t)

			if info[vId].heapNode != nil && pq.Contains(info[vId].heapNode) {
				pq.DecreaseKey(info[vId].heapNode, f)
				return
			}

			// first visit, or a closed vertex reached by a strictly cheaper path: (re)open it
			info[vId].scanned = false
			info[vId].heapNode = da.NewPriorityQueueNode(f, vId)
			pq.Insert(info[vId].heapNode)
		})
	}

	if !info[t].scanned {
		return emptyPath(numSettledNodes), nil
	}

	nodes := retrievePath(info, s, t)
	if len(nodes) == 0 {
		return emptyPath(numSettledNodes), nil
	}
	return NewPath(nodes, info[t].dist, numSettledNodes), nil
}
