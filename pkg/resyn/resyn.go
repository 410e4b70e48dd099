// Package resyn rebuilds networks from truth tables.
//
// An [Oracle] turns a function over a list of leaf signals into one or more
// candidate signals in a destination. Oracles are shared by two consumers:
// [Run], which rebuilds a whole network node by node and keeps the first
// candidate for each node, and the cut rewriting engine, which scores every
// candidate it is offered.
//
// Oracles that can exploit a don't-care mask implement [DontCareOracle] as
// well. Callers check for the capability once with [SupportsDontCares].
package resyn

import (
	"fmt"

	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/nodemap"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// Destination is a network that can receive a rebuilt design.
type Destination[S any] interface {
	Constant(v bool) S
	CreatePI() S
	CreatePO(s S) int
	CreateNot(s S) S
}

// RegisterDestination is implemented by destinations that keep registers.
type RegisterDestination[S any] interface {
	CreateRO() S
	CreateRI(s S) int
}

// Oracle produces signals computing fn over leaves in dst. Variable i of fn
// is leaves[i]. Each candidate is passed to emit; the oracle stops as soon
// as emit returns false. An oracle may emit nothing.
type Oracle[D, S any] interface {
	Resynthesize(dst D, fn truth.Table, leaves []S, emit func(S) bool)
}

// DontCareOracle is an [Oracle] that also accepts a don't-care mask over
// the same variables as fn. Candidates need only agree with fn where dc is
// clear.
type DontCareOracle[D, S any] interface {
	Oracle[D, S]
	ResynthesizeDC(dst D, fn, dc truth.Table, leaves []S, emit func(S) bool)
}

// SupportsDontCares returns o as a [DontCareOracle] if it is one.
func SupportsDontCares[D, S any](o Oracle[D, S]) (DontCareOracle[D, S], bool) {
	dco, ok := o.(DontCareOracle[D, S])
	return dco, ok
}

// OracleFunc adapts a function to [Oracle].
type OracleFunc[D, S any] func(dst D, fn truth.Table, leaves []S, emit func(S) bool)

// Resynthesize calls f.
func (f OracleFunc[D, S]) Resynthesize(dst D, fn truth.Table, leaves []S, emit func(S) bool) {
	f(dst, fn, leaves, emit)
}

// Run rebuilds src into dst and returns dst. Inputs and outputs are created
// in source order, registers included when dst is a [RegisterDestination].
// Gates are visited in topological order and each takes the first signal the
// oracle emits for its function. Dangling gates are not rebuilt.
//
// Run panics if the oracle emits nothing for a gate, or if src has
// registers and dst cannot hold them.
func Run[D Destination[S], S any](src *network.Network, dst D, oracle Oracle[D, S]) D {
	regs, hasRegs := any(dst).(RegisterDestination[S])
	if (src.NumROs() > 0 || src.NumRIs() > 0) && !hasRegs {
		panic(fmt.Sprintf("resyn: source has registers but destination %T cannot hold them", dst))
	}

	mapped := nodemap.NewSparse[S](src)
	mapped.Set(0, dst.Constant(false))
	for _, pi := range src.PIs() {
		mapped.Set(pi, dst.CreatePI())
	}
	for _, ro := range src.ROs() {
		mapped.Set(ro, regs.CreateRO())
	}

	resolve := func(f network.Signal) S {
		s := mapped.At(f.Node())
		if f.IsComplemented() {
			s = dst.CreateNot(s)
		}
		return s
	}

	var children []S
	for _, n := range src.Topo() {
		if !src.IsGate(n) {
			continue
		}
		children = children[:0]
		for _, f := range src.Fanins(n) {
			children = append(children, resolve(f))
		}
		found := false
		oracle.Resynthesize(dst, src.Function(n), children, func(s S) bool {
			mapped.Set(n, s)
			found = true
			return false
		})
		if !found {
			panic(fmt.Sprintf("resyn: oracle produced no signal for node %d (%v)", n, src.Function(n)))
		}
	}

	for _, po := range src.POs() {
		dst.CreatePO(resolve(po))
	}
	for _, ri := range src.RIs() {
		regs.CreateRI(resolve(ri))
	}
	return dst
}
