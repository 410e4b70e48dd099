package network

// Substitute redirects every reference to old, from gate fan-ins and
// combinational outputs, to repl. Each redirected reference keeps its own
// complement bit on top of repl's. repl gains one fan-out per redirected
// reference and old's fan-out is set to zero, leaving it dangling.
//
// Rewritten gates are rehashed. If a rewritten gate becomes structurally
// identical to an existing one, both stay in storage and the older one
// remains the hash representative.
//
// The cost is proportional to the total fan-in of the network. The caller
// must ensure repl does not depend on old, and that no other traversal of
// the network is in progress.
func (ntk *Network) Substitute(old Node, repl Signal) {
	ntk.check(old)
	ntk.check(repl.Node())
	if repl.Node() == old {
		panic("network: Substitute with itself")
	}

	r := repl.Node()
	for i := range ntk.nodes {
		nd := &ntk.nodes[i]
		if nd.kind != kindGate {
			continue
		}
		touched := false
		for j, f := range nd.fanins {
			if f.Node() != old {
				continue
			}
			if !touched {
				ntk.strashRemove(Node(i))
				touched = true
			}
			nd.fanins[j] = repl.NotIf(f.IsComplemented())
			ntk.nodes[r].fanout++
		}
		if touched {
			ntk.strashInsert(Node(i))
		}
	}

	for i, f := range ntk.cos {
		if f.Node() == old {
			ntk.cos[i] = repl.NotIf(f.IsComplemented())
			ntk.nodes[r].fanout++
		}
	}

	ntk.nodes[old].fanout = 0
}
