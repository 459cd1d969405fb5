package datastructure

import (
	"math"

	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/geo"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
)

type Vertex struct {
	lat      float64
	lon      float64
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	id       Index
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

func (v *Vertex) SetFirstOut(firstOut Index) {
	v.firstOut = firstOut
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetFirstOut() Index {
	return v.firstOut
}

func (v *Vertex) GetCoordinate() geo.Coordinate {
	return geo.NewCoordinate(v.lat, v.lon)
}

// Edge is a directed arc tail->head. every road connection is stored as two opposing edges
// with the same length and condition.
type Edge struct {
	edgeId    Index
	tail      Index
	head      Index
	dist      float64 // meter
	condition pkg.RoadCondition
	segmentId int64 // id of the road segment the edge was built from
}

func NewEdge(edgeId, tail, head Index, dist float64, condition pkg.RoadCondition, segmentId int64) *Edge {
	return &Edge{
		edgeId:    edgeId,
		tail:      tail,
		head:      head,
		dist:      dist,
		condition: condition,
		segmentId: segmentId,
	}
}

func (e *Edge) GetEdgeId() Index {
	return e.edgeId
}

func (e *Edge) SetEdgeId(edgeId Index) {
	e.edgeId = edgeId
}

func (e *Edge) GetTail() Index {
	return e.tail
}

func (e *Edge) GetHead() Index {
	return e.head
}

func (e *Edge) GetLength() float64 {
	return e.dist
}

func (e *Edge) GetCondition() pkg.RoadCondition {
	return e.condition
}

func (e *Edge) GetSegmentId() int64 {
	return e.segmentId
}

// road graph. static (i.e. can't add new edges), safe for concurrent reads.
// out edges of vertex u are outEdges[vertices[u].firstOut : vertices[u+1].firstOut],
// vertices has one extra sentinel vertex at the end.
type Graph struct {
	vertices       []*Vertex
	outEdges       []*Edge
	snapIndex      map[SnapKey]Index
	mergeTolerance float64

	boundingBox *BoundingBox

	components    []Index // connected component id per vertex
	numComponents int
}

func NewGraph(vertices []*Vertex, outEdges []*Edge, snapIndex map[SnapKey]Index, mergeTolerance float64) *Graph {
	g := &Graph{
		vertices:       vertices,
		outEdges:       outEdges,
		snapIndex:      snapIndex,
		mergeTolerance: mergeTolerance,
	}
	g.boundingBox = g.computeBoundingBox()
	g.computeComponents()
	return g
}

func (g *Graph) NumberOfVertices() int {
	if len(g.vertices) == 0 {
		return 0
	}
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) IsEmpty() bool {
	return g.NumberOfVertices() == 0
}

func (g *Graph) HasVertex(u Index) bool {
	return int(u) < g.NumberOfVertices()
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.vertices[u+1].firstOut - g.vertices[u].firstOut
}

func (g *Graph) GetOutEdge(e Index) *Edge {
	return g.outEdges[e]
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	return g.vertices[u].lat, g.vertices[u].lon
}

func (g *Graph) GetCoordinate(u Index) geo.Coordinate {
	return g.vertices[u].GetCoordinate()
}

func (g *Graph) GetMergeTolerance() float64 {
	return g.mergeTolerance
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}

// ForOutEdgesOf. iterate all outgoing edges of vertex u
func (g *Graph) ForOutEdgesOf(u Index, handle func(e *Edge)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(g.outEdges[e])
	}
}

// ForEdges. iterate all directed edges of the graph
func (g *Graph) ForEdges(handle func(e *Edge)) {
	for _, e := range g.outEdges {
		handle(e)
	}
}

// FindEdge. first edge u->v
func (g *Graph) FindEdge(u, v Index) (*Edge, bool) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		if g.outEdges[e].head == v {
			return g.outEdges[e], true
		}
	}
	return nil, false
}

// FindVertex. vertex whose snap cell contains c, if any
func (g *Graph) FindVertex(c geo.Coordinate) (Index, bool) {
	u, ok := g.snapIndex[NewSnapKey(c, g.mergeTolerance)]
	return u, ok
}

func (g *Graph) GetHaversineDistanceFromUtoV(u, v Index) float64 {
	return g.GetCoordinate(u).DistanceTo(g.GetCoordinate(v))
}

func (g *Graph) GetCoordinates(path []Index) []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(path))
	for _, u := range path {
		coords = append(coords, g.GetCoordinate(u))
	}
	return coords
}

func (g *Graph) computeBoundingBox() *BoundingBox {
	n := g.NumberOfVertices()
	if n == 0 {
		return NewBoundingBox(0, 0, 0, 0)
	}
	bb := NewBoundingBox(g.vertices[0].lat, g.vertices[0].lon, g.vertices[0].lat, g.vertices[0].lon)
	for u := 1; u < n; u++ {
		bb.Extend(g.vertices[u].lat, g.vertices[u].lon)
	}
	return bb
}
