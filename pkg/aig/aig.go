package aig

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// Circuit is an and-inverter graph with ordered inputs and outputs.
type Circuit struct {
	c    *logic.C
	pis  []z.Lit
	ros  []z.Lit
	pos  []z.Lit
	ris  []z.Lit
	base int
}

// New returns an empty circuit.
func New() *Circuit {
	c := logic.NewC()
	return &Circuit{c: c, base: c.Len()}
}

// Logic returns the underlying gini circuit.
func (a *Circuit) Logic() *logic.C { return a.c }

// Constant returns the literal for v.
func (a *Circuit) Constant(v bool) z.Lit {
	if v {
		return a.c.T
	}
	return a.c.F
}

// CreatePI adds a primary input.
func (a *Circuit) CreatePI() z.Lit {
	m := a.c.Lit()
	a.pis = append(a.pis, m)
	return m
}

// CreateRO adds a register output. It is a free input of the circuit.
func (a *Circuit) CreateRO() z.Lit {
	m := a.c.Lit()
	a.ros = append(a.ros, m)
	return m
}

// CreatePO adds a primary output and returns its index.
func (a *Circuit) CreatePO(m z.Lit) int {
	a.pos = append(a.pos, m)
	return len(a.pos) - 1
}

// CreateRI adds a register input and returns its index.
func (a *Circuit) CreateRI(m z.Lit) int {
	a.ris = append(a.ris, m)
	return len(a.ris) - 1
}

// CreateNot complements m.
func (a *Circuit) CreateNot(m z.Lit) z.Lit { return m.Not() }

// CreateAnd returns a literal for m1 & m2.
func (a *Circuit) CreateAnd(m1, m2 z.Lit) z.Lit { return a.c.And(m1, m2) }

// CreateIte returns a literal for cond ? then : els.
func (a *Circuit) CreateIte(cond, then, els z.Lit) z.Lit { return a.c.Choice(cond, then, els) }

// PIs returns the primary input literals.
func (a *Circuit) PIs() []z.Lit { return a.pis }

// POs returns the primary output literals.
func (a *Circuit) POs() []z.Lit { return a.pos }

// CIs returns primary inputs followed by register outputs.
func (a *Circuit) CIs() []z.Lit { return append(append([]z.Lit(nil), a.pis...), a.ros...) }

// COs returns primary outputs followed by register inputs.
func (a *Circuit) COs() []z.Lit { return append(append([]z.Lit(nil), a.pos...), a.ris...) }

// NumAnds returns the number of AND nodes, including unreachable ones.
func (a *Circuit) NumAnds() int {
	return a.c.Len() - a.base - len(a.pis) - len(a.ros)
}

// Import copies the combinational logic of ntk into a, driving its
// combinational inputs with cis, and returns the literals of its
// combinational outputs. Nothing is registered as an input or output of a.
func (a *Circuit) Import(ntk *network.Network, cis []z.Lit) []z.Lit {
	if len(cis) != ntk.NumCIs() {
		panic("aig: Import needs one literal per combinational input")
	}
	lits := make([]z.Lit, ntk.Size())
	lits[0] = a.c.F
	for i, n := range ntk.CIs() {
		lits[n] = cis[i]
	}
	lit := func(s network.Signal) z.Lit {
		m := lits[s.Node()]
		if s.IsComplemented() {
			m = m.Not()
		}
		return m
	}

	var children []z.Lit
	for _, n := range ntk.Topo() {
		if !ntk.IsGate(n) {
			continue
		}
		children = children[:0]
		for _, f := range ntk.Fanins(n) {
			children = append(children, lit(f))
		}
		lits[n] = a.decompose(ntk.Function(n), children, len(children)-1)
	}

	outs := make([]z.Lit, 0, ntk.NumCOs())
	for _, co := range ntk.COs() {
		outs = append(outs, lit(co))
	}
	return outs
}

// decompose builds fn over leaves by splitting on the highest variable
// first. Variables above v are known not to occur in fn.
func (a *Circuit) decompose(fn truth.Table, leaves []z.Lit, v int) z.Lit {
	switch {
	case fn.IsZero():
		return a.c.F
	case fn.IsOne():
		return a.c.T
	}
	for !fn.DependsOn(v) {
		v--
	}
	lo := a.decompose(fn.Cofactor0(v), leaves, v-1)
	hi := a.decompose(fn.Cofactor1(v), leaves, v-1)
	return a.c.Choice(leaves[v], hi, lo)
}

// Shannon is a resynthesis oracle into a [Circuit]. It emits a single
// multiplexer tree obtained by cofactoring on the highest variable first.
type Shannon struct{}

// Resynthesize implements [resyn.Oracle].
func (Shannon) Resynthesize(dst *Circuit, fn truth.Table, leaves []z.Lit, emit func(z.Lit) bool) {
	if len(leaves) == 0 {
		emit(dst.Constant(fn.Bit(0)))
		return
	}
	emit(dst.decompose(fn, leaves, len(leaves)-1))
}
