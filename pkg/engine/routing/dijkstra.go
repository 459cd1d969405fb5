package routing

import (
	"context"

	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/costfunction"
	da "github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/util"
)

// Dijkstra single-pair dijkstra on the road graph, stops once t is settled.
// stateless between queries, so one instance can serve concurrent searches.
type Dijkstra struct {
	graph *da.Graph
	cf    costfunction.CostFunction
}

func NewDijkstra(graph *da.Graph, cf costfunction.CostFunction) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		cf:    cf,
	}
}

func (us *Dijkstra) Name() string {
	return DIJKSTRA
}

func (us *Dijkstra) ShortestPath(ctx context.Context, s, t da.Index) (*Path, error) {
	if err := checkEndpoints(us.graph, s, t); err != nil {
		return nil, err
	}
	if s == t {
		return NewPath([]da.Index{s}, 0, 0), nil
	}

	info := newSearchInfo(us.graph.NumberOfVertices())
	pq := da.NewFourAryHeap[da.Index]()
	pq.Preallocate(min(len(info), MAX_HEAP_PREALLOCATE))

	info[s].dist = 0
	info[s].heapNode = da.NewPriorityQueueNode(0, s)
	pq.Insert(info[s].heapNode)

	numSettledNodes := 0
	for !pq.IsEmpty() {
		if numSettledNodes%CANCEL_CHECK_INTERVAL == 0 && util.StopConcurrentOperation(ctx) {
			return nil, util.WrapErrorf(ctx.Err(), util.ErrCanceled, "dijkstra search from %d to %d canceled", s, t)
		}

		queryKey, _ := pq.ExtractMin()
		uId := queryKey.GetItem()
		info[uId].scanned = true
		numSettledNodes++

		if uId == t {
			break
		}

		// traverse outEdges of u
		us.graph.ForOutEdgesOf(uId, func(e *da.Edge) {
			vId := e.GetHead()
			if info[vId].scanned {
				return
			}

			newDist := info[uId].dist + us.cf.GetWeight(e)
			if newDist >= pkg.INF_WEIGHT || newDist >= info[vId].dist {
				// not better
				return
			}

			info[vId].dist = newDist
			info[vId].parent = uId
			if info[vId].heapNode != nil && pq.Contains(info[vId].heapNode) {
				pq.DecreaseKey(info[vId].heapNode, newDist)
				return
			}
			info[vId].heapNode = da.NewPriorityQueueNode(newDist, vId)
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

func checkEndpoints(graph *da.Graph, s, t da.Index) error {
	if !graph.HasVertex(s) || !graph.HasVertex(t) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "vertex %d or %d is not in the graph (%d vertices)",
			s, t, graph.NumberOfVertices())
	}
	return nil
}
