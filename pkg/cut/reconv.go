package cut

import (
	"cmp"
	"slices"

	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/nodemap"
)

// DefaultReconvSize is the default leaf bound for [Reconv].
const DefaultReconvSize = 10

// Reconv computes a reconvergence-driven cut of at most maxSize leaves
// around pivots. The leaf order is not significant.
//
// The cut starts as the pivot set. Each step stable-sorts the cut by
// expansion cost, the number of unvisited non-constant fan-ins minus one,
// and expands the cheapest leaf that is not a combinational input or the
// constant, replacing it with its unvisited fan-ins. Growth stops when every
// leaf is an input or when the next expansion would exceed maxSize.
//
// Reconv panics if pivots is empty.
func Reconv(ntk *network.Network, pivots []network.Node, maxSize int) []network.Node {
	if len(pivots) == 0 {
		panic("cut: Reconv needs at least one pivot")
	}

	visited := nodemap.NewSparse[struct{}](ntk)
	cut := slices.Clone(pivots)
	for _, p := range pivots {
		visited.Set(p, struct{}{})
	}

	cost := func(n network.Node) int {
		c := -1
		for _, f := range ntk.Fanins(n) {
			if child := f.Node(); !ntk.IsConstant(child) && !visited.Has(child) {
				c++
			}
		}
		return c
	}

	type entry struct {
		n    network.Node
		cost int
	}
	var entries []entry

	for {
		entries = entries[:0]
		for _, n := range cut {
			entries = append(entries, entry{n, cost(n)})
		}
		slices.SortStableFunc(entries, func(a, b entry) int { return cmp.Compare(a.cost, b.cost) })

		i := slices.IndexFunc(entries, func(e entry) bool {
			return !ntk.IsCI(e.n) && !ntk.IsConstant(e.n)
		})
		if i < 0 || len(cut)+entries[i].cost > maxSize {
			break
		}

		n := entries[i].n
		cut = cut[:0]
		for j, e := range entries {
			if j != i {
				cut = append(cut, e.n)
			}
		}
		for _, f := range ntk.Fanins(n) {
			child := f.Node()
			if ntk.IsConstant(child) || visited.Has(child) {
				continue
			}
			visited.Set(child, struct{}{})
			cut = append(cut, child)
		}
	}
	return cut
}
