package datastructure

// computeComponents labels every vertex with the id of its connected component.
// edges are stored in both directions so a single forward dfs pass finds every component.
// component ids are assigned in order of their lowest vertex id.
func (g *Graph) computeComponents() {
	n := g.NumberOfVertices()
	g.components = make([]Index, n)
	for u := range g.components {
		g.components[u] = INVALID_VERTEX_ID
	}

	g.numComponents = 0
	stack := make([]Index, 0, 64)
	for s := Index(0); int(s) < n; s++ {
		if g.components[s] != INVALID_VERTEX_ID {
			continue
		}
		comp := Index(g.numComponents)
		g.numComponents++

		g.components[s] = comp
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			g.ForOutEdgesOf(u, func(e *Edge) {
				if g.components[e.head] == INVALID_VERTEX_ID {
					g.components[e.head] = comp
					stack = append(stack, e.head)
				}
			})
		}
	}
}

func (g *Graph) NumberOfComponents() int {
	return g.numComponents
}

func (g *Graph) GetComponent(u Index) Index {
	return g.components[u]
}

// SameComponent. true if some path connects u and v
func (g *Graph) SameComponent(u, v Index) bool {
	return g.components[u] == g.components[v]
}
