package cut

import (
	"slices"

	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// Data is the per-cut record filled in by rewriting. Gain is -1 until a
// profitable candidate has been found.
type Data struct {
	Gain           int
	Replacement    network.Signal
	HasReplacement bool
}

// Cut is one cut of a node.
type Cut struct {
	// Leaves in ascending node order.
	Leaves []network.Node
	// Func is the root's function over Leaves, leaf i being variable i.
	Func truth.Table
	Data Data
}

// Size returns the number of leaves.
func (c *Cut) Size() int { return len(c.Leaves) }

// IsTrivial reports whether c is the cut consisting of root alone.
func (c *Cut) IsTrivial(root network.Node) bool {
	return len(c.Leaves) == 1 && c.Leaves[0] == root
}

// dominates reports whether c's leaves are a subset of o's.
func (c *Cut) dominates(o *Cut) bool {
	if len(c.Leaves) > len(o.Leaves) {
		return false
	}
	j := 0
	for _, l := range c.Leaves {
		for j < len(o.Leaves) && o.Leaves[j] < l {
			j++
		}
		if j == len(o.Leaves) || o.Leaves[j] != l {
			return false
		}
	}
	return true
}

func newCut(leaves []network.Node, fn truth.Table) *Cut {
	return &Cut{Leaves: leaves, Func: fn, Data: Data{Gain: -1}}
}

// Table holds the cut sets of a network, indexed by node. Nodes created
// after enumeration, and dangling nodes, have no cuts.
type Table struct {
	sets [][]*Cut
}

// NewTable returns an empty table for size nodes.
func NewTable(size int) *Table {
	return &Table{sets: make([][]*Cut, size)}
}

// NodesSize returns the number of nodes the table was built for.
func (t *Table) NodesSize() int { return len(t.sets) }

// Cuts returns the cuts of n. The returned cuts may be modified in place.
func (t *Table) Cuts(n network.Node) []*Cut {
	if int(n) >= len(t.sets) {
		return nil
	}
	return t.sets[n]
}

// SetCuts replaces the cuts of n.
func (t *Table) SetCuts(n network.Node, cuts []*Cut) {
	t.sets[n] = cuts
}

// Add appends a cut over leaves with function fn to n's set. Leaves are
// sorted ascending and fn is permuted to match.
func (t *Table) Add(n network.Node, leaves []network.Node, fn truth.Table) *Cut {
	leaves = slices.Clone(leaves)
	if !slices.IsSorted(leaves) {
		order := make([]int, len(leaves))
		for i := range order {
			order[i] = i
		}
		slices.SortFunc(order, func(a, b int) int { return int(leaves[a]) - int(leaves[b]) })
		positions := make([]int, len(leaves))
		for newPos, oldPos := range order {
			positions[oldPos] = newPos
		}
		fn = fn.Expand(len(leaves), positions)
		slices.Sort(leaves)
	}
	c := newCut(leaves, fn)
	t.sets[n] = append(t.sets[n], c)
	return c
}

// TotalCuts returns the number of cuts over all nodes.
func (t *Table) TotalCuts() int {
	total := 0
	for _, s := range t.sets {
		total += len(s)
	}
	return total
}

// Enumerator computes a cut table for a network.
type Enumerator interface {
	Enumerate(ntk *network.Network) *Table
}

// EnumeratorFunc adapts a function to [Enumerator].
type EnumeratorFunc func(ntk *network.Network) *Table

// Enumerate calls f(ntk).
func (f EnumeratorFunc) Enumerate(ntk *network.Network) *Table { return f(ntk) }

// Params configures [KFeasible].
type Params struct {
	// CutSize bounds the number of leaves per cut.
	CutSize int
	// CutLimit bounds the number of cuts kept per node, trivial cut included.
	CutLimit int
	// MinimizeTruthTable drops leaves the cut function does not depend on.
	MinimizeTruthTable bool
}

// DefaultParams returns the enumeration defaults used by rewriting.
func DefaultParams() Params {
	return Params{CutSize: 4, CutLimit: 12}
}
