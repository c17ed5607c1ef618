// Package roadnet precomputes the road-network travel-time matrix that the
// skyline search treats as an opaque input (C10). A Graph is a set of
// vertices (road network nodes) and weighted undirected edges between them;
// store and shopper/customer locations are snapped to their nearest vertex
// before any shortest-path query.
package roadnet

import (
	"container/heap"
	"math"
)

// VertexID identifies a road-network vertex.
type VertexID uint64

// Point is a planar coordinate.
type Point struct {
	X float64
	Y float64
}

type edge struct {
	to   VertexID
	dist float64
}

// Graph is an undirected, weighted road network.
type Graph struct {
	vertices map[VertexID]Point
	adj      map[VertexID][]edge
}

// NewGraph builds a Graph from a vertex set and a set of edges given as
// (from, to) vertex pairs; edge weight is the Euclidean distance between
// the two vertices' positions, mirroring the road-network construction this
// is grounded on.
func NewGraph(vertices map[VertexID]Point, edges [][2]VertexID) *Graph {
	g := &Graph{
		vertices: make(map[VertexID]Point, len(vertices)),
		adj:      make(map[VertexID][]edge, len(vertices)),
	}
	for id, p := range vertices {
		g.vertices[id] = p
	}
	for _, e := range edges {
		from, to := e[0], e[1]
		fp, fok := g.vertices[from]
		tp, tok := g.vertices[to]
		if !fok || !tok {
			continue
		}
		d := euclid(fp, tp)
		g.adj[from] = append(g.adj[from], edge{to: to, dist: d})
		g.adj[to] = append(g.adj[to], edge{to: from, dist: d})
	}
	return g
}

func euclid(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Nearest returns the vertex closest to p by straight-line distance, and the
// distance to it. Returns ok=false for an empty graph.
func (g *Graph) Nearest(p Point) (id VertexID, dist float64, ok bool) {
	best := math.Inf(1)
	found := false
	for vid, vp := range g.vertices {
		d := euclid(vp, p)
		if !found || d < best {
			best, id, found = d, vid, true
		}
	}
	return id, best, found
}

type heapNode struct {
	vertex VertexID
	dist   float64
	index  int
}

type nodeHeap []*heapNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any) {
	n := x.(*heapNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra between two vertices and returns the shortest
// path distance, or ok=false if no path exists.
func (g *Graph) ShortestPath(from, to VertexID) (dist float64, ok bool) {
	if from == to {
		return 0, true
	}

	dist64 := map[VertexID]float64{from: 0}
	visited := map[VertexID]bool{}

	pq := &nodeHeap{}
	heap.Init(pq)
	heap.Push(pq, &heapNode{vertex: from, dist: 0})

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*heapNode)
		if cur.vertex == to {
			return cur.dist, true
		}
		if visited[cur.vertex] {
			continue
		}
		visited[cur.vertex] = true

		for _, e := range g.adj[cur.vertex] {
			if visited[e.to] {
				continue
			}
			nd := dist64[cur.vertex] + e.dist
			if prev, seen := dist64[e.to]; !seen || nd < prev {
				dist64[e.to] = nd
				heap.Push(pq, &heapNode{vertex: e.to, dist: nd})
			}
		}
	}
	return 0, false
}

// LocationDistance computes the road-network distance between two arbitrary
// points: snap each to its nearest vertex, run Dijkstra between the two
// vertices, and add both snap distances (spec §3's travel-time matrix input,
// the same composition road_network.rs's location_distance uses).
func (g *Graph) LocationDistance(from, to Point) (float64, bool) {
	fromVertex, fromSnap, ok := g.Nearest(from)
	if !ok {
		return 0, false
	}
	toVertex, toSnap, ok := g.Nearest(to)
	if !ok {
		return 0, false
	}
	network, ok := g.ShortestPath(fromVertex, toVertex)
	if !ok {
		return 0, false
	}
	return fromSnap + network + toSnap, true
}

// NamedPoint pairs a caller-defined key with a planar point, used to label
// the rows/columns of a BuildTravelMatrix output.
type NamedPoint[K comparable] struct {
	Key   K
	Point Point
}

// BuildTravelMatrix computes the all-pairs road-network distance between a
// set of named points (typically store locations), keyed the same way as
// skyline.TravelMatrix: one entry for each ordering of a pair. Pairs with no path are
// omitted, which skyline.TravelMatrix.Between then treats as +Inf.
func BuildTravelMatrix[K comparable](g *Graph, points []NamedPoint[K]) map[[2]K]float64 {
	out := make(map[[2]K]float64, len(points)*len(points))
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d, ok := g.LocationDistance(points[i].Point, points[j].Point)
			if !ok {
				continue
			}
			out[[2]K{points[i].Key, points[j].Key}] = d
			out[[2]K{points[j].Key, points[i].Key}] = d
		}
	}
	return out
}
