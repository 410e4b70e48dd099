// Package dontcare computes satisfiability don't-cares: assignments to a set
// of nodes that no input assignment can produce.
package dontcare

import (
	"fmt"

	"github.com/dalzilio/rudd"

	"github.com/matzehuels/cutrewrite/pkg/cut"
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/nodemap"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// DefaultWindowInputs bounds the window used by [Satisfiability].
const DefaultWindowInputs = 16

// Satisfiability returns a table over leaves, leaf i being variable i, whose
// set bits are the leaf assignments that cannot occur. The leaves are
// evaluated over a reconvergence-driven window of at most maxInputs inputs,
// so the result is a subset of the global don't-cares.
func Satisfiability(ntk *network.Network, leaves []network.Node, maxInputs int) (truth.Table, error) {
	if len(leaves) > truth.MaxVars {
		return truth.Table{}, fmt.Errorf("dontcare: %d leaves exceed %d variables", len(leaves), truth.MaxVars)
	}
	window := cut.Reconv(ntk, leaves, maxInputs)

	bdd, err := rudd.New(len(window), rudd.Nodesize(10000), rudd.Cachesize(5000))
	if err != nil {
		return truth.Table{}, fmt.Errorf("dontcare: init bdd: %w", err)
	}

	e := &evaluator{ntk: ntk, bdd: bdd, funcs: nodemap.NewSparse[rudd.Node](ntk)}
	e.funcs.Set(0, bdd.False())
	for i, n := range window {
		e.funcs.Set(n, bdd.Ithvar(i))
	}

	lits := make([]rudd.Node, len(leaves))
	for i, l := range leaves {
		lits[i] = e.node(l)
	}

	k := len(leaves)
	dc := truth.New(k)
	terms := make([]rudd.Node, k)
	for m := range dc.NumBits() {
		for j, f := range lits {
			if m&(1<<j) != 0 {
				terms[j] = f
			} else {
				terms[j] = bdd.Not(f)
			}
		}
		conj := bdd.True()
		if k > 0 {
			conj = bdd.And(terms...)
		}
		if bdd.Equal(conj, bdd.False()) {
			dc.SetBit(m, true)
		}
	}
	if msg := bdd.Error(); msg != "" {
		return truth.Table{}, fmt.Errorf("dontcare: %s", msg)
	}
	return dc, nil
}

type evaluator struct {
	ntk   *network.Network
	bdd   *rudd.BDD
	funcs *nodemap.Sparse[rudd.Node]
}

// node returns the function of n over the window inputs. Nodes are visited
// in post-order with an explicit stack.
func (e *evaluator) node(n network.Node) rudd.Node {
	if f, ok := e.funcs.Get(n); ok {
		return f
	}
	type frame struct {
		n    network.Node
		next int
	}
	stack := []frame{{n: n}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		fanins := e.ntk.Fanins(top.n)
		if top.next < len(fanins) {
			c := fanins[top.next].Node()
			top.next++
			if !e.funcs.Has(c) {
				stack = append(stack, frame{n: c})
			}
			continue
		}
		children := make([]rudd.Node, len(fanins))
		for i, f := range fanins {
			children[i] = e.funcs.At(f.Node())
			if f.IsComplemented() {
				children[i] = e.bdd.Not(children[i])
			}
		}
		e.funcs.Set(top.n, e.shannon(e.ntk.Function(top.n), children, 0))
		stack = stack[:len(stack)-1]
	}
	return e.funcs.At(n)
}

// shannon builds fn over children by expanding on variables i and up.
func (e *evaluator) shannon(fn truth.Table, children []rudd.Node, i int) rudd.Node {
	switch {
	case fn.IsZero():
		return e.bdd.False()
	case fn.IsOne():
		return e.bdd.True()
	case !fn.DependsOn(i):
		return e.shannon(fn, children, i+1)
	}
	hi := e.shannon(fn.Cofactor1(i), children, i+1)
	lo := e.shannon(fn.Cofactor0(i), children, i+1)
	return e.bdd.Ite(children[i], hi, lo)
}
