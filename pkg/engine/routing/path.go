package routing

import (
	da "github.com/ondravit/VeloPath/pkg/datastructure"
)

type Path struct {
	nodes   []da.Index
	cost    float64
	settled int
}

func NewPath(nodes []da.Index, cost float64, settled int) *Path {
	return &Path{
		nodes:   nodes,
		cost:    cost,
		settled: settled,
	}
}

func emptyPath(settled int) *Path {
	return NewPath([]da.Index{}, 0, settled)
}

func (p *Path) GetNodes() []da.Index {
	return p.nodes
}

// GetCost. total cost under the search cost function, 0 for an empty path
func (p *Path) GetCost() float64 {
	return p.cost
}

// GetSettled. number of vertices popped from the queue
func (p *Path) GetSettled() int {
	return p.settled
}

func (p *Path) IsEmpty() bool {
	return len(p.nodes) == 0
}
