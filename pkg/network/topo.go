package network

import (
	"fmt"

	"github.com/matzehuels/cutrewrite/pkg/truth"
)

// Topo returns the live nodes in topological order: the constant, the
// combinational inputs in order, then every gate reachable from a
// combinational output, fan-ins before fan-outs. Dangling gates are not
// included. The traversal is an iterative depth-first search, so the cost
// is proportional to the number of live nodes.
//
// Index order is not topological once [Network.Substitute] has run, so
// rebuilding algorithms must use Topo.
func (ntk *Network) Topo() []Node {
	const (
		unvisited = iota
		onStack
		done
	)

	state := make([]uint8, len(ntk.nodes))
	order := make([]Node, 0, 1+len(ntk.cis))
	order = append(order, 0)
	state[0] = done
	for _, ci := range ntk.cis {
		state[ci] = done
		order = append(order, ci)
	}

	type frame struct {
		n    Node
		next int
	}
	var stack []frame

	for _, co := range ntk.cos {
		root := co.Node()
		if state[root] != unvisited {
			continue
		}
		state[root] = onStack
		stack = append(stack, frame{n: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			fanins := ntk.nodes[top.n].fanins
			if top.next < len(fanins) {
				c := fanins[top.next].Node()
				top.next++
				if state[c] == unvisited {
					state[c] = onStack
					stack = append(stack, frame{n: c})
				}
				continue
			}
			state[top.n] = done
			order = append(order, top.n)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}

// Simulate computes the truth table of every live node over the
// combinational inputs. The result is indexed by node; dangling nodes hold
// the zero Table. It panics if the network has more than [truth.MaxVars]
// combinational inputs.
func (ntk *Network) Simulate() []truth.Table {
	n := len(ntk.cis)
	sims := make([]truth.Table, len(ntk.nodes))
	sims[0] = truth.Const(n, false)
	for i, ci := range ntk.cis {
		sims[ci] = truth.Nth(n, i)
	}

	var children []truth.Table
	for _, g := range ntk.Topo() {
		if !ntk.IsGate(g) {
			continue
		}
		children = children[:0]
		for _, f := range ntk.nodes[g].fanins {
			children = append(children, sims[f.Node()].NotIf(f.IsComplemented()))
		}
		sims[g] = truth.Compose(ntk.Function(g), children)
	}
	return sims
}

// SimulateOutputs returns the function of every combinational output over
// the combinational inputs.
func (ntk *Network) SimulateOutputs() []truth.Table {
	sims := ntk.Simulate()
	out := make([]truth.Table, len(ntk.cos))
	for i, co := range ntk.cos {
		out[i] = sims[co.Node()].NotIf(co.IsComplemented())
	}
	return out
}

// Validate checks structural integrity: every reference points to an
// existing node, fan-out counters match the number of references, and the
// network is acyclic.
//
// Returns ErrInvalidFanin, ErrFanoutMismatch or ErrNetworkHasCycle wrapped
// with the offending node.
func (ntk *Network) Validate() error {
	refs := make([]uint32, len(ntk.nodes))
	for i, nd := range ntk.nodes {
		for _, f := range nd.fanins {
			if int(f.Node()) >= len(ntk.nodes) {
				return fmt.Errorf("%w: node %d references %d", ErrInvalidFanin, i, f.Node())
			}
			refs[f.Node()]++
		}
	}
	for i, co := range ntk.cos {
		if int(co.Node()) >= len(ntk.nodes) {
			return fmt.Errorf("%w: output %d references %d", ErrInvalidFanin, i, co.Node())
		}
		refs[co.Node()]++
	}
	for i, nd := range ntk.nodes {
		if nd.fanout != refs[i] {
			return fmt.Errorf("%w: node %d has fanout %d, %d references", ErrFanoutMismatch, i, nd.fanout, refs[i])
		}
	}
	return ntk.detectCycles()
}

func (ntk *Network) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]uint8, len(ntk.nodes))
	var cycleAt Node
	var hasCycle bool

	var dfs func(n Node)
	dfs = func(n Node) {
		color[n] = gray
		for _, f := range ntk.nodes[n].fanins {
			switch color[f.Node()] {
			case white:
				dfs(f.Node())
			case gray:
				hasCycle, cycleAt = true, f.Node()
			}
			if hasCycle {
				return
			}
		}
		color[n] = black
	}

	for i := range ntk.nodes {
		if color[i] == white {
			dfs(Node(i))
			if hasCycle {
				return fmt.Errorf("%w: through node %d", ErrNetworkHasCycle, cycleAt)
			}
		}
	}
	return nil
}
