package resyn

import (
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// trivial emits a constant or a possibly complemented leaf when fn has at
// most one support variable. It reports whether fn was trivial.
func trivial(ntk *network.Network, fn truth.Table, leaves []network.Signal, emit func(network.Signal) bool) bool {
	support := fn.Support()
	switch len(support) {
	case 0:
		emit(ntk.Constant(fn.Bit(0)))
		return true
	case 1:
		v := support[0]
		// f = x_v or f = !x_v; the bit at x_v = 0 tells which.
		emit(leaves[v].NotIf(fn.Bit(0)))
		return true
	}
	return false
}

func pick(leaves []network.Signal, support []int) []network.Signal {
	out := make([]network.Signal, len(support))
	for i, v := range support {
		out[i] = leaves[v]
	}
	return out
}

// =============================================================================
// LUT
// =============================================================================

// LUT realizes a function as a single node over its support. Constants and
// projections are returned as existing signals.
type LUT struct{}

// Resynthesize implements [Oracle].
func (LUT) Resynthesize(ntk *network.Network, fn truth.Table, leaves []network.Signal, emit func(network.Signal) bool) {
	if trivial(ntk, fn, leaves, emit) {
		return
	}
	support := fn.Support()
	emit(ntk.CreateNode(pick(leaves, support), fn.Shrink(support)))
}

// ResynthesizeDC implements [DontCareOracle]. Variables are dropped greedily,
// lowest first, whenever the don't-cares allow the function to ignore them.
func (l LUT) ResynthesizeDC(ntk *network.Network, fn, dc truth.Table, leaves []network.Signal, emit func(network.Signal) bool) {
	f, care := fn, dc.Not()
	for i := range fn.NumVars() {
		if !f.DependsOn(i) {
			continue
		}
		c0, c1 := f.Cofactor0(i), f.Cofactor1(i)
		care0, care1 := care.Cofactor0(i), care.Cofactor1(i)
		if !care0.And(care1).And(c0.Xor(c1)).IsZero() {
			continue
		}
		f = c0.And(care0).Or(c1.And(care0.Not()))
		care = care0.Or(care1)
	}
	l.Resynthesize(ntk, f, leaves, emit)
}

// =============================================================================
// Majority
// =============================================================================

// Majority recognizes functions that a single majority-of-three gate
// computes under input and output complementation. Two-input AND and OR
// functions are built as a majority with a constant input.
type Majority struct{}

// Resynthesize implements [Oracle].
func (Majority) Resynthesize(ntk *network.Network, fn truth.Table, leaves []network.Signal, emit func(network.Signal) bool) {
	if trivial(ntk, fn, leaves, emit) {
		return
	}
	support := fn.Support()
	if len(support) > 3 {
		return
	}
	f := fn.Shrink(support)
	xs := pick(leaves, support)
	if len(xs) == 2 {
		if m, ok := matchAnd(f); ok {
			emit(ntk.CreateMaj(xs[0].NotIf(m.in[0]), xs[1].NotIf(m.in[1]), ntk.Constant(false)).NotIf(m.out))
		}
		return
	}
	if m, ok := matchMaj(f); ok {
		emit(ntk.CreateMaj(xs[0].NotIf(m.in[0]), xs[1].NotIf(m.in[1]), xs[2].NotIf(m.in[2])).NotIf(m.out))
	}
}

type majMatch struct {
	in  [3]bool
	out bool
}

var majTable = truth.FromBits(3, 0xe8)

// matchMaj finds input and output polarities under which f is maj(x0, x1, x2).
func matchMaj(f truth.Table) (majMatch, bool) {
	for mask := range 8 {
		var m majMatch
		vars := make([]truth.Table, 3)
		for i := range 3 {
			m.in[i] = mask&(1<<i) != 0
			vars[i] = truth.Nth(3, i).NotIf(m.in[i])
		}
		g := truth.Compose(majTable, vars)
		switch {
		case g.Equal(f):
			return m, true
		case g.Not().Equal(f):
			m.out = true
			return m, true
		}
	}
	return majMatch{}, false
}

// matchAnd finds polarities under which f is maj(x0, x1, 0), the AND of
// its two inputs.
func matchAnd(f truth.Table) (majMatch, bool) {
	for mask := range 8 {
		m := majMatch{in: [3]bool{mask&1 != 0, mask&2 != 0, false}, out: mask&4 != 0}
		g := truth.Nth(2, 0).NotIf(m.in[0]).And(truth.Nth(2, 1).NotIf(m.in[1])).NotIf(m.out)
		if g.Equal(f) {
			return m, true
		}
	}
	return majMatch{}, false
}

// =============================================================================
// Shannon
// =============================================================================

// Shannon decomposes a function into two-input AND gates with complemented
// edges by recursive cofactoring. It emits two candidates: one splitting on
// the lowest support variable first, one on the highest.
type Shannon struct{}

// Resynthesize implements [Oracle].
func (Shannon) Resynthesize(ntk *network.Network, fn truth.Table, leaves []network.Signal, emit func(network.Signal) bool) {
	if trivial(ntk, fn, leaves, emit) {
		return
	}
	support := fn.Support()
	first := support[0]
	if !emit(decompose(ntk, fn, leaves, first)) {
		return
	}
	if last := support[len(support)-1]; last != first {
		emit(decompose(ntk, fn, leaves, last))
	}
}

// decompose builds fn = x_v ? f1 : f0 and recurses on the lowest support
// variable of each cofactor.
func decompose(ntk *network.Network, fn truth.Table, leaves []network.Signal, v int) network.Signal {
	support := fn.Support()
	switch len(support) {
	case 0:
		return ntk.Constant(fn.Bit(0))
	case 1:
		return leaves[support[0]].NotIf(fn.Bit(0))
	}
	f0, f1 := fn.Cofactor0(v), fn.Cofactor1(v)
	x := leaves[v]
	rec := func(f truth.Table) network.Signal {
		s := f.Support()
		if len(s) == 0 {
			return ntk.Constant(f.Bit(0))
		}
		return decompose(ntk, f, leaves, s[0])
	}
	switch {
	case f0.IsZero():
		return andOf(ntk, x, rec(f1))
	case f1.IsZero():
		return andOf(ntk, x.Not(), rec(f0))
	case f0.IsOne():
		return andOf(ntk, x, rec(f1).Not()).Not()
	case f1.IsOne():
		return andOf(ntk, x.Not(), rec(f0).Not()).Not()
	}
	hi := andOf(ntk, x, rec(f1))
	lo := andOf(ntk, x.Not(), rec(f0))
	return andOf(ntk, hi.Not(), lo.Not()).Not()
}

// andOf folds constant operands before creating an AND gate.
func andOf(ntk *network.Network, a, b network.Signal) network.Signal {
	f, t := ntk.Constant(false), ntk.Constant(true)
	switch {
	case a == f || b == f || a == b.Not():
		return f
	case a == t || a == b:
		return b
	case b == t:
		return a
	}
	return ntk.CreateAnd(a, b)
}

// =============================================================================
// Chain
// =============================================================================

// Chain offers the candidates of several oracles in order. It stops as soon
// as emit returns false.
type Chain []Oracle[*network.Network, network.Signal]

// Resynthesize implements [Oracle].
func (c Chain) Resynthesize(ntk *network.Network, fn truth.Table, leaves []network.Signal, emit func(network.Signal) bool) {
	stopped := false
	forward := func(s network.Signal) bool {
		if !emit(s) {
			stopped = true
		}
		return !stopped
	}
	for _, o := range c {
		o.Resynthesize(ntk, fn, leaves, forward)
		if stopped {
			return
		}
	}
}

// ResynthesizeDC implements [DontCareOracle]. Members without don't-care
// support receive the plain function.
func (c Chain) ResynthesizeDC(ntk *network.Network, fn, dc truth.Table, leaves []network.Signal, emit func(network.Signal) bool) {
	stopped := false
	forward := func(s network.Signal) bool {
		if !emit(s) {
			stopped = true
		}
		return !stopped
	}
	for _, o := range c {
		if dco, ok := SupportsDontCares(o); ok {
			dco.ResynthesizeDC(ntk, fn, dc, leaves, forward)
		} else {
			o.Resynthesize(ntk, fn, leaves, forward)
		}
		if stopped {
			return
		}
	}
}
