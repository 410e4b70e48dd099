// Package mffc computes maximum fan-out-free cones with reference counting.
//
// A [Refs] holds one counter per node, initialised from the network's
// fan-out sizes. [Refs.Deref] removes a node's references to its fan-ins and
// follows every fan-in whose counter drops to zero, summing a [CostFunc]
// over the nodes it passes: the result is the cost of everything that would
// die with the node. [Refs.Ref] is the exact inverse. Both run in time
// proportional to the cone they visit.
//
// Counters live in a node map owned by the Refs value, so several cost
// computations over one network never share scratch state. Nodes created
// after construction start at zero references.
package mffc

import (
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/nodemap"
)

// CostFunc returns the non-negative cost of a node.
type CostFunc func(ntk *network.Network, n network.Node) uint32

// UnitCost charges 1 per node.
func UnitCost(*network.Network, network.Node) uint32 { return 1 }

// FaninCost charges the number of fan-ins, a rough area proxy for networks
// with gates of mixed arity.
func FaninCost(ntk *network.Network, n network.Node) uint32 {
	return uint32(ntk.FaninSize(n))
}

// Refs tracks reference counts for cone computations.
type Refs struct {
	ntk   *network.Network
	cost  CostFunc
	refs  *nodemap.Dense[uint32]
	stack []network.Node
}

// NewRefs returns counters initialised to the fan-out of every node. A nil
// cost defaults to [UnitCost].
func NewRefs(ntk *network.Network, cost CostFunc) *Refs {
	if cost == nil {
		cost = UnitCost
	}
	r := &Refs{ntk: ntk, cost: cost, refs: nodemap.NewDense[uint32](ntk)}
	r.Reset()
	return r
}

// Reset reinitialises every counter to the node's current fan-out.
func (r *Refs) Reset() {
	r.refs.Reset(0)
	for n := range r.ntk.Nodes() {
		r.refs.Set(n, r.ntk.FanoutSize(n))
	}
}

// Count returns the current counter of n.
func (r *Refs) Count(n network.Node) uint32 {
	r.grow()
	return r.refs.At(n)
}

func (r *Refs) grow() {
	if r.refs.Len() < r.ntk.Size() {
		r.refs.Resize(0)
	}
}

func (r *Refs) terminal(n network.Node) bool {
	return r.ntk.IsConstant(n) || r.ntk.IsCI(n)
}

// Deref releases the fan-ins of n and, recursively, of every fan-in whose
// counter reaches zero. It returns the total cost of the released nodes,
// including n. Constants and combinational inputs cost nothing and stop the
// traversal.
func (r *Refs) Deref(n network.Node) uint32 {
	r.grow()
	if r.terminal(n) {
		return 0
	}
	var total uint32
	r.stack = append(r.stack[:0], n)
	for len(r.stack) > 0 {
		m := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		total += r.cost(r.ntk, m)
		for _, f := range r.ntk.Fanins(m) {
			c := f.Node()
			v := r.refs.Ptr(c)
			*v--
			if *v == 0 && !r.terminal(c) {
				r.stack = append(r.stack, c)
			}
		}
	}
	return total
}

// Ref is the inverse of [Refs.Deref]: it re-acquires the fan-ins of n and
// recurses into every fan-in whose counter was zero.
func (r *Refs) Ref(n network.Node) uint32 {
	v, _ := r.RefContains(n, n)
	return v
}

// RefContains behaves like [Refs.Ref] and additionally reports whether
// target is n itself or a fan-in of any node the traversal visits.
func (r *Refs) RefContains(n, target network.Node) (uint32, bool) {
	r.grow()
	if r.terminal(n) {
		return 0, false
	}
	var total uint32
	contains := false
	r.stack = append(r.stack[:0], n)
	for len(r.stack) > 0 {
		m := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		total += r.cost(r.ntk, m)
		contains = contains || m == target
		for _, f := range r.ntk.Fanins(m) {
			c := f.Node()
			contains = contains || c == target
			v := r.refs.Ptr(c)
			old := *v
			*v++
			if old == 0 && !r.terminal(c) {
				r.stack = append(r.stack, c)
			}
		}
	}
	return total, contains
}

// Size returns the MFFC cost of n and leaves the counters unchanged.
func (r *Refs) Size(n network.Node) uint32 {
	v := r.Deref(n)
	r.Ref(n)
	return v
}

// Cone returns the nodes of the MFFC of n under the network's fan-out
// counts, n first. Constants and combinational inputs are never included.
func Cone(ntk *network.Network, n network.Node) []network.Node {
	r := NewRefs(ntk, nil)
	if r.terminal(n) {
		return nil
	}
	cone := []network.Node{n}
	for i := 0; i < len(cone); i++ {
		for _, f := range ntk.Fanins(cone[i]) {
			c := f.Node()
			v := r.refs.Ptr(c)
			*v--
			if *v == 0 && !r.terminal(c) {
				cone = append(cone, c)
			}
		}
	}
	return cone
}
