package cut

import (
	"cmp"
	"slices"

	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// KFeasible enumerates priority cuts bottom-up. Every live node gets at
// most CutLimit cuts of at most CutSize leaves, smallest first, and a gate's
// last cut is always its trivial cut. The constant's only cut has no leaves
// and inputs only have their trivial cut.
type KFeasible struct {
	Params Params
}

// NewKFeasible returns an enumerator with ps. Zero fields take the values
// of [DefaultParams].
func NewKFeasible(ps Params) *KFeasible {
	def := DefaultParams()
	if ps.CutSize <= 0 {
		ps.CutSize = def.CutSize
	}
	if ps.CutLimit <= 0 {
		ps.CutLimit = def.CutLimit
	}
	return &KFeasible{Params: ps}
}

// Enumerate implements [Enumerator].
func (e *KFeasible) Enumerate(ntk *network.Network) *Table {
	t := NewTable(ntk.Size())
	for _, n := range ntk.Topo() {
		switch {
		case ntk.IsConstant(n):
			t.sets[n] = []*Cut{newCut(nil, truth.Const(0, false))}
		case ntk.IsCI(n):
			t.sets[n] = []*Cut{newCut([]network.Node{n}, truth.Nth(1, 0))}
		default:
			t.sets[n] = e.merge(ntk, t, n)
		}
	}
	return t
}

func (e *KFeasible) merge(ntk *network.Network, t *Table, n network.Node) []*Cut {
	fanins := ntk.Fanins(n)
	fn := ntk.Function(n)
	var (
		out    []*Cut
		picked = make([]*Cut, len(fanins))
	)

	var product func(i int, leaves []network.Node)
	product = func(i int, leaves []network.Node) {
		if i == len(fanins) {
			c := e.compose(fanins, picked, leaves, fn)
			out = addDominant(out, c)
			return
		}
		for _, c := range t.sets[fanins[i].Node()] {
			merged, ok := unite(leaves, c.Leaves, e.Params.CutSize)
			if !ok {
				continue
			}
			picked[i] = c
			product(i+1, merged)
		}
	}
	product(0, nil)

	slices.SortStableFunc(out, func(a, b *Cut) int { return cmp.Compare(len(a.Leaves), len(b.Leaves)) })
	if limit := e.Params.CutLimit - 1; len(out) > limit {
		out = out[:max(limit, 0)]
	}
	return append(out, newCut([]network.Node{n}, truth.Nth(1, 0)))
}

// compose computes the gate function over the merged leaves from the
// functions of the chosen fan-in cuts.
func (e *KFeasible) compose(fanins []network.Signal, picked []*Cut, leaves []network.Node, fn truth.Table) *Cut {
	k := len(leaves)
	children := make([]truth.Table, len(fanins))
	for i, c := range picked {
		positions := make([]int, len(c.Leaves))
		for j, l := range c.Leaves {
			positions[j], _ = slices.BinarySearch(leaves, l)
		}
		children[i] = c.Func.Expand(k, positions).NotIf(fanins[i].IsComplemented())
	}
	f := truth.Compose(fn, children)

	if e.Params.MinimizeTruthTable {
		if support := f.Support(); len(support) < k {
			shrunk := make([]network.Node, len(support))
			for i, v := range support {
				shrunk[i] = leaves[v]
			}
			return newCut(shrunk, f.Shrink(support))
		}
	}
	return newCut(leaves, f)
}

// unite merges two ascending leaf lists, failing once the union exceeds
// limit.
func unite(a, b []network.Node, limit int) ([]network.Node, bool) {
	out := make([]network.Node, 0, min(len(a)+len(b), limit))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var next network.Node
		switch {
		case j == len(b) || (i < len(a) && a[i] < b[j]):
			next = a[i]
			i++
		case i == len(a) || b[j] < a[i]:
			next = b[j]
			j++
		default:
			next = a[i]
			i++
			j++
		}
		if len(out) == limit {
			return nil, false
		}
		out = append(out, next)
	}
	return out, true
}

// addDominant inserts c unless an existing cut dominates it, and drops the
// cuts c dominates.
func addDominant(set []*Cut, c *Cut) []*Cut {
	for _, o := range set {
		if o.dominates(c) {
			return set
		}
	}
	set = slices.DeleteFunc(set, func(o *Cut) bool { return c.dominates(o) })
	return append(set, c)
}
