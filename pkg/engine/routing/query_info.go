package routing

import (
	"github.com/ondravit/VeloPath/pkg"
	da "github.com/ondravit/VeloPath/pkg/datastructure"
	"github.com/ondravit/VeloPath/pkg/util"
)

type VertexInfo struct {
	dist     float64
	parent   da.Index
	scanned  bool // popped from the queue, dist is final for dijkstra
	heapNode *da.PriorityQueueNode[da.Index]
}

func (vi *VertexInfo) GetDist() float64 {
	return vi.dist
}

func (vi *VertexInfo) GetParent() da.Index {
	return vi.parent
}

func (vi *VertexInfo) IsScanned() bool {
	return vi.scanned
}

func (vi *VertexInfo) IsLabelled() bool {
	return vi.dist < pkg.INF_WEIGHT
}

func newSearchInfo(n int) []VertexInfo {
	info := make([]VertexInfo, n)
	for i := range info {
		info[i] = VertexInfo{
			dist:   pkg.INF_WEIGHT,
			parent: da.INVALID_VERTEX_ID,
		}
	}
	return info
}

// retrievePath. follows parents from t back to s. empty when the chain does not start at s.
func retrievePath(info []VertexInfo, s, t da.Index) []da.Index {
	nodes := make([]da.Index, 0, 16)
	for cur := t; cur != da.INVALID_VERTEX_ID; cur = info[cur].parent {
		nodes = append(nodes, cur)
		if len(nodes) > len(info) {
			return []da.Index{}
		}
	}
	if nodes[len(nodes)-1] != s {
		return []da.Index{}
	}
	return util.ReverseG(nodes)
}
