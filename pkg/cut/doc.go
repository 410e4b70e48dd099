// Package cut provides cuts over a logic network: reconvergence-driven cut
// extraction, windowed cut views, and k-feasible cut enumeration.
//
// # Cuts
//
// A cut of a root node is a set of leaves such that every path from the
// root towards the inputs passes through a leaf or ends in the constant.
// [Cut] stores the leaves in ascending order together with the root's
// function over them and an auxiliary [Data] record that rewriting
// algorithms fill in.
//
// # Reconvergence-driven Cuts
//
// [Reconv] grows a bounded leaf set around one or more pivots. It always
// expands the leaf that adds the fewest new nodes, so paths that reconverge
// inside the visited region are absorbed for free.
//
// # Enumeration
//
// An [Enumerator] computes a [Table] of cuts for every live node. The
// package ships [KFeasible], a bottom-up priority-cut enumerator; callers
// may supply any other implementation.
//
// # Views
//
// [View] restricts a network to the cone between a root and a set of
// leaves. Its gates are the nodes a rewrite of that cut would touch.
package cut
