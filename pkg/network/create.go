package network

import (
	"fmt"

	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// Common gate functions.
var (
	FuncAnd = truth.FromBits(2, 0x8)
	FuncOr  = truth.FromBits(2, 0xe)
	FuncXor = truth.FromBits(2, 0x6)
	FuncMaj = truth.Maj3()
	// FuncIte is if x0 then x1 else x2.
	FuncIte = truth.FromBits(3, 0xd8)
)

// CreatePI appends a primary input and returns its signal. All primary
// inputs must be created before the first register output.
func (ntk *Network) CreatePI() Signal {
	if ntk.NumROs() > 0 {
		panic("network: CreatePI after CreateRO")
	}
	return ntk.createCI(kindPI)
}

// CreateRO appends a register output, a combinational input that follows
// all primary inputs.
func (ntk *Network) CreateRO() Signal {
	return ntk.createCI(kindRO)
}

func (ntk *Network) createCI(k kind) Signal {
	n := Node(len(ntk.nodes))
	ntk.nodes = append(ntk.nodes, node{kind: k, literal: literalFalse})
	ntk.cis = append(ntk.cis, n)
	if k == kindPI {
		ntk.numPIs++
	}
	return MakeSignal(n, false)
}

// CreatePO registers s as a primary output and returns the output index.
// All primary outputs must be created before the first register input.
func (ntk *Network) CreatePO(s Signal) int {
	if ntk.NumRIs() > 0 {
		panic("network: CreatePO after CreateRI")
	}
	ntk.createCO(s)
	ntk.numPOs++
	return ntk.numPOs - 1
}

// CreateRI registers s as a register input and returns its register index.
func (ntk *Network) CreateRI(s Signal) int {
	ntk.createCO(s)
	return ntk.NumRIs() - 1
}

func (ntk *Network) createCO(s Signal) {
	ntk.check(s.Node())
	ntk.nodes[s.Node()].fanout++
	ntk.cos = append(ntk.cos, s)
}

// CreateNot returns the complement of s. No node is created.
func (ntk *Network) CreateNot(s Signal) Signal { return s.Not() }

// CreateBuf returns s unchanged.
func (ntk *Network) CreateBuf(s Signal) Signal { return s }

// CreateNode returns a gate computing fn over children. If a gate with the
// same children and function already exists it is returned instead, and no
// fan-out counters change. fn must have exactly len(children) variables.
func (ntk *Network) CreateNode(children []Signal, fn truth.Table) Signal {
	if len(children) == 0 {
		panic("network: CreateNode needs at least one child")
	}
	if fn.NumVars() != len(children) {
		panic(fmt.Sprintf("network: function has %d variables, got %d children", fn.NumVars(), len(children)))
	}
	for _, c := range children {
		ntk.check(c.Node())
	}
	return ntk.createNode(children, ntk.funcs.insert(fn))
}

func (ntk *Network) createNode(children []Signal, literal uint32) Signal {
	key := ntk.hashKey(children, literal)
	if n, ok := ntk.strashLookup(key, children, literal); ok {
		return MakeSignal(n, false)
	}

	n := Node(len(ntk.nodes))
	ntk.nodes = append(ntk.nodes, node{
		fanins:  append([]Signal(nil), children...),
		literal: literal,
		kind:    kindGate,
	})
	ntk.strash[key] = append(ntk.strash[key], n)

	for _, c := range children {
		ntk.nodes[c.Node()].fanout++
	}
	return MakeSignal(n, false)
}

// Clone creates a gate in ntk with the function of node n in src, over
// children already mapped into ntk.
func (ntk *Network) Clone(src *Network, n Node, children []Signal) Signal {
	return ntk.CreateNode(children, src.Function(n))
}

// CreateAnd returns a two-input AND gate.
func (ntk *Network) CreateAnd(a, b Signal) Signal {
	return ntk.CreateNode([]Signal{a, b}, FuncAnd)
}

// CreateOr returns a two-input OR gate.
func (ntk *Network) CreateOr(a, b Signal) Signal {
	return ntk.CreateNode([]Signal{a, b}, FuncOr)
}

// CreateXor returns a two-input XOR gate.
func (ntk *Network) CreateXor(a, b Signal) Signal {
	return ntk.CreateNode([]Signal{a, b}, FuncXor)
}

// CreateNand returns the complement of an AND gate.
func (ntk *Network) CreateNand(a, b Signal) Signal { return ntk.CreateAnd(a, b).Not() }

// CreateNor returns the complement of an OR gate.
func (ntk *Network) CreateNor(a, b Signal) Signal { return ntk.CreateOr(a, b).Not() }

// CreateXnor returns the complement of an XOR gate.
func (ntk *Network) CreateXnor(a, b Signal) Signal { return ntk.CreateXor(a, b).Not() }

// CreateMaj returns a majority-of-three gate.
func (ntk *Network) CreateMaj(a, b, c Signal) Signal {
	return ntk.CreateNode([]Signal{a, b, c}, FuncMaj)
}

// CreateIte returns an if-then-else gate.
func (ntk *Network) CreateIte(cond, then, els Signal) Signal {
	return ntk.CreateNode([]Signal{cond, then, els}, FuncIte)
}

// CreateNary folds signals with a two-input gate constructor. An empty list
// yields the constant empty.
func (ntk *Network) CreateNary(fs []Signal, op func(a, b Signal) Signal, empty Signal) Signal {
	if len(fs) == 0 {
		return empty
	}
	acc := fs[0]
	for _, f := range fs[1:] {
		acc = op(acc, f)
	}
	return acc
}
