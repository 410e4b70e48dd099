package cut

import (
	"fmt"
	"slices"

	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/nodemap"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// View is the cone of a root node bounded by a set of leaves.
//
// A View holds a non-owning reference to its network, which must not be
// modified while the view is in use.
type View struct {
	ntk    *network.Network
	root   network.Node
	leaves []network.Node
	gates  []network.Node
	index  *nodemap.Sparse[int]
	open   bool
}

// NewView collects the gates between root and leaves. Combinational inputs
// that are not leaves also bound the cone; this happens for cuts whose
// leaves were reduced to the support of their function. [View.Open] reports
// it.
func NewView(ntk *network.Network, leaves []network.Node, root network.Node) *View {
	v := &View{
		ntk:    ntk,
		root:   root,
		leaves: slices.Clone(leaves),
		index:  nodemap.NewSparse[int](ntk),
	}
	for i, l := range leaves {
		v.index.Set(l, i)
	}
	v.collect()
	return v
}

func (v *View) collect() {
	type frame struct {
		n    network.Node
		next int
	}
	seen := nodemap.NewSparse[struct{}](v.ntk)
	skip := func(n network.Node) bool {
		return v.index.Has(n) || v.ntk.IsConstant(n) || seen.Has(n)
	}
	if v.ntk.IsCI(v.root) && !v.index.Has(v.root) {
		v.open = true
		return
	}
	if skip(v.root) {
		return
	}

	seen.Set(v.root, struct{}{})
	stack := []frame{{n: v.root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		fanins := v.ntk.Fanins(top.n)
		if top.next < len(fanins) {
			c := fanins[top.next].Node()
			top.next++
			if skip(c) {
				continue
			}
			seen.Set(c, struct{}{})
			if v.ntk.IsCI(c) {
				v.open = true
				continue
			}
			stack = append(stack, frame{n: c})
			continue
		}
		v.gates = append(v.gates, top.n)
		stack = stack[:len(stack)-1]
	}
}

// Root returns the root node.
func (v *View) Root() network.Node { return v.root }

// Leaves returns the leaves in the order given to [NewView].
func (v *View) Leaves() []network.Node { return v.leaves }

// Gates returns the gates of the cone in topological order, root last.
// Leaves and the constant are excluded. A root that is itself a leaf has no
// gates.
func (v *View) Gates() []network.Node { return v.gates }

// Open reports whether the cone reached a combinational input that is not
// a leaf.
func (v *View) Open() bool { return v.open }

// Size returns the number of gates.
func (v *View) Size() int { return len(v.gates) }

// Contains reports whether n is a gate of the view.
func (v *View) Contains(n network.Node) bool {
	return slices.Contains(v.gates, n)
}

// Function returns the root's function over the leaves, leaf i being
// variable i. It panics if the view is open.
func (v *View) Function() truth.Table {
	if v.open {
		panic(fmt.Sprintf("cut: leaves %v do not cut root %d", v.leaves, v.root))
	}
	k := len(v.leaves)
	if i, ok := v.index.Get(v.root); ok {
		return truth.Nth(k, i)
	}
	if v.ntk.IsConstant(v.root) {
		return truth.Const(k, false)
	}

	sims := nodemap.NewSparse[truth.Table](v.ntk)
	value := func(s network.Signal) truth.Table {
		n := s.Node()
		var t truth.Table
		switch {
		case v.index.Has(n):
			t = truth.Nth(k, v.index.At(n))
		case v.ntk.IsConstant(n):
			t = truth.Const(k, false)
		default:
			t = sims.At(n)
		}
		return t.NotIf(s.IsComplemented())
	}

	var children []truth.Table
	for _, g := range v.gates {
		children = children[:0]
		for _, f := range v.ntk.Fanins(g) {
			children = append(children, value(f))
		}
		sims.Set(g, truth.Compose(v.ntk.Function(g), children))
	}
	return sims.At(v.root)
}
