package network

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/cutrewrite/pkg/truth"
)

var (
	// ErrInvalidFanin is returned by [Network.Validate] when a gate or
	// output references a node that does not exist.
	ErrInvalidFanin = errors.New("fanin references unknown node")

	// ErrFanoutMismatch is returned by [Network.Validate] when a node's
	// fan-out counter differs from the number of references to it.
	ErrFanoutMismatch = errors.New("fanout count mismatch")

	// ErrNetworkHasCycle is returned by [Network.Validate] when the gates
	// reachable from the outputs do not form a DAG. Cycles are detected using
	// depth-first search with white/gray/black coloring.
	ErrNetworkHasCycle = errors.New("network contains a cycle")
)

// literalFalse is the function of the constant node and of inputs.
const literalFalse uint32 = 0

type kind uint8

const (
	kindConst kind = iota
	kindPI
	kindRO
	kindGate
)

type node struct {
	fanins  []Signal
	literal uint32
	fanout  uint32
	kind    kind
}

// funcCache deduplicates gate functions into integer literals.
type funcCache struct {
	tables []truth.Table
	index  map[string]uint32
}

func newFuncCache() *funcCache {
	c := &funcCache{index: make(map[string]uint32)}
	c.insert(truth.Const(0, false))
	return c
}

func (c *funcCache) insert(tt truth.Table) uint32 {
	key := tt.Key()
	if lit, ok := c.index[key]; ok {
		return lit
	}
	lit := uint32(len(c.tables))
	c.tables = append(c.tables, tt.Clone())
	c.index[key] = lit
	return lit
}

// Network is a structurally hashed logic network with complemented edges.
type Network struct {
	nodes  []node
	cis    []Node
	numPIs int
	cos    []Signal
	numPOs int
	funcs  *funcCache
	strash map[uint64][]Node
	keybuf []byte
}

// New returns a network containing only the constant node.
func New() *Network {
	ntk := &Network{
		funcs:  newFuncCache(),
		strash: make(map[uint64][]Node),
	}
	ntk.nodes = append(ntk.nodes, node{kind: kindConst, literal: literalFalse})
	return ntk
}

func (ntk *Network) check(n Node) {
	if int(n) >= len(ntk.nodes) {
		panic(fmt.Sprintf("network: node %d out of range (size %d)", n, len(ntk.nodes)))
	}
}

// =============================================================================
// Structural Hashing
// =============================================================================

func (ntk *Network) hashKey(fanins []Signal, literal uint32) uint64 {
	buf := binary.LittleEndian.AppendUint32(ntk.keybuf[:0], literal)
	for _, f := range fanins {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(f))
	}
	ntk.keybuf = buf
	return xxhash.Sum64(buf)
}

func (ntk *Network) strashLookup(key uint64, fanins []Signal, literal uint32) (Node, bool) {
	for _, n := range ntk.strash[key] {
		nd := &ntk.nodes[n]
		if nd.literal == literal && slices.Equal(nd.fanins, fanins) {
			return n, true
		}
	}
	return 0, false
}

// strashInsert hashes n unless an equivalent node is already hashed.
func (ntk *Network) strashInsert(n Node) {
	nd := &ntk.nodes[n]
	key := ntk.hashKey(nd.fanins, nd.literal)
	if _, ok := ntk.strashLookup(key, nd.fanins, nd.literal); ok {
		return
	}
	ntk.strash[key] = append(ntk.strash[key], n)
}

func (ntk *Network) strashRemove(n Node) {
	nd := &ntk.nodes[n]
	key := ntk.hashKey(nd.fanins, nd.literal)
	bucket := ntk.strash[key]
	if i := slices.Index(bucket, n); i >= 0 {
		bucket = slices.Delete(bucket, i, i+1)
		if len(bucket) == 0 {
			delete(ntk.strash, key)
		} else {
			ntk.strash[key] = bucket
		}
	}
}

// =============================================================================
// Queries
// =============================================================================

// Size returns the number of nodes in storage, including dangling ones.
func (ntk *Network) Size() int { return len(ntk.nodes) }

// NumCIs returns the number of combinational inputs (PIs and ROs).
func (ntk *Network) NumCIs() int { return len(ntk.cis) }

// NumPIs returns the number of primary inputs.
func (ntk *Network) NumPIs() int { return ntk.numPIs }

// NumROs returns the number of register outputs.
func (ntk *Network) NumROs() int { return len(ntk.cis) - ntk.numPIs }

// NumCOs returns the number of combinational outputs (POs and RIs).
func (ntk *Network) NumCOs() int { return len(ntk.cos) }

// NumPOs returns the number of primary outputs.
func (ntk *Network) NumPOs() int { return ntk.numPOs }

// NumRIs returns the number of register inputs.
func (ntk *Network) NumRIs() int { return len(ntk.cos) - ntk.numPOs }

// NumGates returns the number of gate nodes, including dangling ones.
func (ntk *Network) NumGates() int { return len(ntk.nodes) - 1 - len(ntk.cis) }

// NumFunctions returns the number of distinct functions in the cache.
func (ntk *Network) NumFunctions() int { return len(ntk.funcs.tables) }

// IsConstant reports whether n is the constant node.
func (ntk *Network) IsConstant(n Node) bool {
	ntk.check(n)
	return n == 0
}

// IsCI reports whether n is a combinational input.
func (ntk *Network) IsCI(n Node) bool {
	ntk.check(n)
	k := ntk.nodes[n].kind
	return k == kindPI || k == kindRO
}

// IsPI reports whether n is a primary input.
func (ntk *Network) IsPI(n Node) bool {
	ntk.check(n)
	return ntk.nodes[n].kind == kindPI
}

// IsRO reports whether n is a register output.
func (ntk *Network) IsRO(n Node) bool {
	ntk.check(n)
	return ntk.nodes[n].kind == kindRO
}

// IsGate reports whether n is a gate.
func (ntk *Network) IsGate(n Node) bool {
	ntk.check(n)
	return ntk.nodes[n].kind == kindGate
}

// Fanins returns the fan-in signals of n. The slice is owned by the network
// and must not be modified.
func (ntk *Network) Fanins(n Node) []Signal {
	ntk.check(n)
	return ntk.nodes[n].fanins
}

// FaninSize returns the number of fan-ins of n.
func (ntk *Network) FaninSize(n Node) int {
	ntk.check(n)
	return len(ntk.nodes[n].fanins)
}

// FanoutSize returns the number of live references to n.
func (ntk *Network) FanoutSize(n Node) uint32 {
	ntk.check(n)
	return ntk.nodes[n].fanout
}

// Function returns the truth table of n over its fan-ins. Inputs have the
// zero-variable constant false function.
func (ntk *Network) Function(n Node) truth.Table {
	ntk.check(n)
	return ntk.funcs.tables[ntk.nodes[n].literal]
}

// Literal returns the function-cache literal of n.
func (ntk *Network) Literal(n Node) uint32 {
	ntk.check(n)
	return ntk.nodes[n].literal
}

// Constant returns the signal for the constant v: node 0, complemented for
// true.
func (ntk *Network) Constant(v bool) Signal {
	return MakeSignal(0, v)
}

// CI returns the i-th combinational input.
func (ntk *Network) CI(i int) Node { return ntk.cis[i] }

// PI returns the i-th primary input.
func (ntk *Network) PI(i int) Node {
	if i >= ntk.numPIs {
		panic(fmt.Sprintf("network: PI %d out of range", i))
	}
	return ntk.cis[i]
}

// RO returns the i-th register output.
func (ntk *Network) RO(i int) Node { return ntk.cis[ntk.numPIs+i] }

// CO returns the i-th combinational output.
func (ntk *Network) CO(i int) Signal { return ntk.cos[i] }

// PO returns the i-th primary output.
func (ntk *Network) PO(i int) Signal {
	if i >= ntk.numPOs {
		panic(fmt.Sprintf("network: PO %d out of range", i))
	}
	return ntk.cos[i]
}

// RI returns the i-th register input.
func (ntk *Network) RI(i int) Signal { return ntk.cos[ntk.numPOs+i] }

// CIs returns a copy of the combinational inputs, PIs first.
func (ntk *Network) CIs() []Node { return slices.Clone(ntk.cis) }

// PIs returns a copy of the primary inputs.
func (ntk *Network) PIs() []Node { return slices.Clone(ntk.cis[:ntk.numPIs]) }

// ROs returns a copy of the register outputs.
func (ntk *Network) ROs() []Node { return slices.Clone(ntk.cis[ntk.numPIs:]) }

// COs returns a copy of the combinational outputs, POs first.
func (ntk *Network) COs() []Signal { return slices.Clone(ntk.cos) }

// POs returns a copy of the primary outputs.
func (ntk *Network) POs() []Signal { return slices.Clone(ntk.cos[:ntk.numPOs]) }

// RIs returns a copy of the register inputs.
func (ntk *Network) RIs() []Signal { return slices.Clone(ntk.cos[ntk.numPOs:]) }

// Nodes iterates over every node in storage in index order.
func (ntk *Network) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for i := range ntk.nodes {
			if !yield(Node(i)) {
				return
			}
		}
	}
}

// Gates iterates over every gate in storage in index order, including
// dangling gates. The range is fixed when iteration starts, so gates created
// during iteration are not visited.
func (ntk *Network) Gates() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		size := len(ntk.nodes)
		for i := 0; i < size; i++ {
			if ntk.nodes[i].kind != kindGate {
				continue
			}
			if !yield(Node(i)) {
				return
			}
		}
	}
}
