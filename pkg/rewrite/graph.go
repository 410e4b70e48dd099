package rewrite

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Graph is an undirected vertex-weighted graph. Vertices are numbered in
// insertion order; removed vertices keep their number.
type Graph struct {
	weights  []int
	adj      []mapset.Set[int]
	removed  []bool
	live     int
	numEdges int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddVertex adds a vertex and returns its number.
func (g *Graph) AddVertex(weight int) int {
	g.weights = append(g.weights, weight)
	g.adj = append(g.adj, mapset.NewThreadUnsafeSet[int]())
	g.removed = append(g.removed, false)
	g.live++
	return len(g.weights) - 1
}

// AddEdge connects a and b. Self loops and repeated edges are ignored.
func (g *Graph) AddEdge(a, b int) {
	if a == b || g.adj[a].Contains(b) {
		return
	}
	g.adj[a].Add(b)
	g.adj[b].Add(a)
	g.numEdges++
}

// HasEdge reports whether a and b are adjacent.
func (g *Graph) HasEdge(a, b int) bool {
	return g.adj[a].Contains(b)
}

// RemoveVertex deletes v and its edges. Removing a vertex twice is a no-op.
func (g *Graph) RemoveVertex(v int) {
	if g.removed[v] {
		return
	}
	g.adj[v].Each(func(u int) bool {
		g.adj[u].Remove(v)
		g.numEdges--
		return false
	})
	g.adj[v].Clear()
	g.removed[v] = true
	g.live--
}

// Removed reports whether v has been removed.
func (g *Graph) Removed(v int) bool { return g.removed[v] }

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return g.adj[v].Cardinality() }

// Weight returns the weight of v.
func (g *Graph) Weight(v int) int { return g.weights[v] }

// Neighbors returns the neighbors of v in ascending order.
func (g *Graph) Neighbors(v int) []int {
	ns := g.adj[v].ToSlice()
	slices.Sort(ns)
	return ns
}

// NumVertices returns the number of vertices not removed.
func (g *Graph) NumVertices() int { return g.live }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return g.numEdges }

// Clone returns an independent copy of g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		weights:  slices.Clone(g.weights),
		adj:      make([]mapset.Set[int], len(g.adj)),
		removed:  slices.Clone(g.removed),
		live:     g.live,
		numEdges: g.numEdges,
	}
	for i, s := range g.adj {
		c.adj[i] = s.Clone()
	}
	return c
}

// SelectGWMin returns an independent set chosen by the GWMIN heuristic:
// repeatedly take the vertex with the largest weight/(degree+1), preferring
// higher degree and then lower number on ties, and remove it together with
// its neighbors. g is not modified.
func SelectGWMin(g *Graph) []int {
	work := g.Clone()
	var out []int
	for work.NumVertices() > 0 {
		best := -1
		for v := range work.weights {
			if work.removed[v] {
				continue
			}
			if best == -1 || work.better(v, best) {
				best = v
			}
		}
		out = append(out, best)
		for _, u := range work.Neighbors(best) {
			work.RemoveVertex(u)
		}
		work.RemoveVertex(best)
	}
	return out
}

// better reports whether v ranks above u for GWMIN. The ratio comparison
// is done in integers: w(v)/(d(v)+1) > w(u)/(d(u)+1).
func (g *Graph) better(v, u int) bool {
	dv, du := g.Degree(v), g.Degree(u)
	lhs := g.weights[v] * (du + 1)
	rhs := g.weights[u] * (dv + 1)
	if lhs != rhs {
		return lhs > rhs
	}
	return dv > du
}

// SelectMaximal returns a maximal independent set by scanning vertices in
// number order and keeping each one no kept vertex is adjacent to.
func SelectMaximal(g *Graph) []int {
	excluded := make([]bool, len(g.weights))
	var out []int
	for v := range g.weights {
		if g.removed[v] || excluded[v] {
			continue
		}
		out = append(out, v)
		g.adj[v].Each(func(u int) bool {
			excluded[u] = true
			return false
		})
	}
	return out
}
