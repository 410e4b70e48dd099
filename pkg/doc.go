// Package pkg provides the libraries behind cutrewrite, a cut-rewriting
// optimizer for k-LUT logic networks.
//
// # Overview
//
// A k-LUT network is a DAG of gates, each carrying a truth table over its
// fan-ins. Cut rewriting shrinks such a network by enumerating small cuts,
// asking a resynthesis oracle for cheaper implementations of each cut
// function, and committing a non-conflicting subset of the profitable
// replacements. The pkg directory is organized into three areas:
//
//  1. Core logic: [truth], [network], [nodemap], [mffc], [cut], [resyn],
//     [rewrite], [cleanup], [dontcare]
//  2. Formats and verification: [io], [io/bench], [io/dot], [aig]
//  3. Infrastructure: [pipeline], [cache], [errors], [observability],
//     [buildinfo]
//
// # Architecture
//
// The typical data flow through a pass:
//
//	BENCH / JSON file
//	         ↓
//	    [io/bench] package (parse into a network plus names)
//	         ↓
//	    [cut] package (k-feasible cuts with truth tables)
//	         ↓
//	    [resyn] package (candidate replacements per cut)
//	         ↓
//	    [rewrite] package (gain scoring, conflict graph, GWMIN selection)
//	         ↓
//	    [cleanup] package (drop dangling logic)
//	         ↓
//	    [aig] package (SAT-based equivalence check)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/cutrewrite/pkg/cleanup"
//	    "github.com/matzehuels/cutrewrite/pkg/io/bench"
//	    "github.com/matzehuels/cutrewrite/pkg/resyn"
//	    "github.com/matzehuels/cutrewrite/pkg/rewrite"
//	)
//
//	d, _ := bench.ReadFile("adder.bench")
//	ntk := cleanup.Dangling(d.Network)
//	st := rewrite.Run(ntk, resyn.Chain{resyn.Majority{}, resyn.LUT{}}, rewrite.DefaultParams())
//	ntk = cleanup.Dangling(ntk)
//	_ = bench.WriteFile("adder.opt.bench", d.WithNetwork(ntk))
//
// [pipeline.Runner] wraps the same steps with caching, tracing and
// verification and is what the CLI uses.
//
// # Main Packages
//
// [network] - The k-LUT network: a constant node, combinational inputs,
// gates and combinational outputs. Signals are nodes with a complement
// flag. Structural hashing merges identical gates and [network.Network.Substitute]
// rewires every use of a node.
//
// [cut] - k-feasible cut enumeration, reconvergence-driven cuts and cone
// views between a set of leaves and a root.
//
// [mffc] - Reference counting for maximum fan-out-free cones, used to score
// the nodes a replacement frees.
//
// [resyn] - Resynthesis oracles (LUT, majority, Shannon and chains of them)
// and a generic driver that rebuilds a whole network into another
// representation.
//
// [rewrite] - One rewriting pass. Replacements whose cones overlap are
// resolved on a conflict graph with an approximate maximum-weight
// independent set.
//
// [pipeline] - Multi-pass optimization with result caching and optional
// equivalence checking.
//
// [truth]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/truth
// [network]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/network
// [nodemap]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/nodemap
// [mffc]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/mffc
// [cut]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/cut
// [resyn]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/resyn
// [rewrite]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/rewrite
// [cleanup]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/cleanup
// [dontcare]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/dontcare
// [io]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/io
// [io/bench]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/io/bench
// [io/dot]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/io/dot
// [aig]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/aig
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cutrewrite/pkg/buildinfo
package pkg
