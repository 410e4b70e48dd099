// Package network implements a structurally hashed logic network.
//
// A [Network] stores gates of arbitrary arity. Each gate references an
// ordered list of fan-in [Signal]s and a function literal pointing into a
// shared truth-table cache, so two gates with the same children and the same
// function are the same node. Signals carry a complement bit, which makes
// inverters free: [Network.CreateNot] never allocates a node.
//
// # Nodes and Signals
//
// [Node] is a stable integer identity. Node 0 is the constant node: signal 0
// is constant false and signal 1, its complement, is constant true. Inputs
// and gates follow in creation order. [Signal] packs a node and a polarity:
//
//	s := network.MakeSignal(n, true) // complemented reference to n
//	s.Node()                         // n
//	s.IsComplemented()               // true
//
// # Fan-out
//
// Every node keeps a fan-out counter equal to the number of references from
// gate fan-ins and combinational outputs. Counters only go up during
// construction; [Network.Substitute] moves references from one node to
// another and zeroes the old node's counter, leaving it dangling. Dangling
// nodes stay in storage until the network is rebuilt.
//
// # Registers
//
// Sequential designs keep registers as opaque leaves: a register output (RO)
// is a combinational input created after all primary inputs, and a register
// input (RI) is a combinational output registered after all primary outputs.
//
// # Contracts
//
// Invalid node indices, empty fan-in lists and arity mismatches are caller
// bugs and panic. No method is safe for concurrent use, and Substitute must
// not run while another traversal of the same network is in progress.
package network
