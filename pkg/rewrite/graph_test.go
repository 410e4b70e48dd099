package rewrite

import (
	"slices"
	"testing"
)

func TestGraph(t *testing.T) {
	g := NewGraph()
	a, b, c := g.AddVertex(3), g.AddVertex(2), g.AddVertex(2)
	g.AddEdge(a, b)
	g.AddEdge(b, a)
	g.AddEdge(a, a)
	g.AddEdge(b, c)

	if g.NumVertices() != 3 || g.NumEdges() != 2 {
		t.Fatalf("graph = %d vertices, %d edges; want 3, 2", g.NumVertices(), g.NumEdges())
	}
	if g.Degree(b) != 2 {
		t.Errorf("Degree(b) = %d, want 2", g.Degree(b))
	}
	if got := g.Neighbors(b); !slices.Equal(got, []int{a, c}) {
		t.Errorf("Neighbors(b) = %v, want [%d %d]", got, a, c)
	}

	g.RemoveVertex(b)
	g.RemoveVertex(b)
	if g.NumVertices() != 2 || g.NumEdges() != 0 {
		t.Errorf("after RemoveVertex: %d vertices, %d edges; want 2, 0", g.NumVertices(), g.NumEdges())
	}
	if g.HasEdge(a, b) || !g.Removed(b) {
		t.Error("RemoveVertex left b connected")
	}
}

func TestSelectors(t *testing.T) {
	// a path 0 - 1 - 2 - 3 with a heavy middle vertex.
	build := func() *Graph {
		g := NewGraph()
		for _, w := range []int{1, 5, 1, 1} {
			g.AddVertex(w)
		}
		g.AddEdge(0, 1)
		g.AddEdge(1, 2)
		g.AddEdge(2, 3)
		return g
	}

	tests := []struct {
		name string
		sel  func(*Graph) []int
		want []int
	}{
		{"gwmin", SelectGWMin, []int{1, 3}},
		{"maximal", SelectMaximal, []int{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build()
			got := tt.sel(g)
			if !slices.Equal(got, tt.want) {
				t.Errorf("selection = %v, want %v", got, tt.want)
			}
			if g.NumVertices() != 4 {
				t.Error("selector modified the graph")
			}
			for i, u := range got {
				for _, v := range got[i+1:] {
					if g.HasEdge(u, v) {
						t.Errorf("selected %d and %d are adjacent", u, v)
					}
				}
			}
		})
	}
}

func TestSelectAtMostOneOfConflicting(t *testing.T) {
	g := NewGraph()
	g.AddVertex(1)
	g.AddVertex(1)
	g.AddEdge(0, 1)
	for _, sel := range []func(*Graph) []int{SelectGWMin, SelectMaximal} {
		if got := sel(g); len(got) != 1 {
			t.Errorf("selected %v from two conflicting candidates", got)
		}
	}
}

func TestGWMinTieBreak(t *testing.T) {
	// Equal ratios: 2/(1+1) and 1/(0+1). The higher degree wins.
	g := NewGraph()
	g.AddVertex(1) // isolated
	g.AddVertex(2)
	g.AddVertex(0)
	g.AddEdge(1, 2)
	if got := SelectGWMin(g); got[0] != 1 {
		t.Errorf("SelectGWMin() = %v, want vertex 1 first", got)
	}
}
