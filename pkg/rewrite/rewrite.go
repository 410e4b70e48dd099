// Package rewrite implements cut rewriting.
//
// A pass enumerates cuts, asks a resynthesis oracle for replacements of
// every cut with more than two leaves, and scores each candidate by the
// number of nodes it saves: the cost of the node's maximum fan-out-free cone
// minus the cost the candidate would add. The best candidate of each cut is
// recorded on the cut. Cuts whose cones overlap cannot be rewritten together,
// so profitable cuts become vertices of a conflict graph and an independent
// set of them is committed with [network.Network.Substitute].
//
// Rewriting happens in place and leaves the replaced logic, as well as every
// rejected candidate, dangling. Run [cleanup.Dangling] afterwards for a
// compact network.
package rewrite

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cutrewrite/pkg/cut"
	"github.com/matzehuels/cutrewrite/pkg/dontcare"
	"github.com/matzehuels/cutrewrite/pkg/mffc"
	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/nodemap"
	"github.com/matzehuels/cutrewrite/pkg/resyn"
)

// Oracle is a resynthesis oracle over networks.
type Oracle = resyn.Oracle[*network.Network, network.Signal]

// Run performs one rewriting pass over every node of ntk.
func Run(ntk *network.Network, oracle Oracle, ps Params) Stats {
	nodes := make([]network.Node, ntk.Size())
	for i := range nodes {
		nodes[i] = network.Node(i)
	}
	return newEngine(ntk, oracle, ps).run(nodes)
}

// RunNodes performs one rewriting pass that only looks for replacements of
// the given nodes. Cuts of other nodes are still enumerated.
func RunNodes(ntk *network.Network, nodes []network.Node, oracle Oracle, ps Params) Stats {
	nodes = slices.Clone(nodes)
	slices.Sort(nodes)
	return newEngine(ntk, oracle, ps).run(slices.Compact(nodes))
}

type engine struct {
	ntk    *network.Network
	oracle Oracle
	dco    resyn.DontCareOracle[*network.Network, network.Signal]
	ps     Params
	log    *log.Logger
	refs   *mffc.Refs
	st     Stats
}

func newEngine(ntk *network.Network, oracle Oracle, ps Params) *engine {
	ps.SetDefaults()
	e := &engine{ntk: ntk, oracle: oracle, ps: ps, log: ps.Logger}
	if ps.UseDontCares {
		if dco, ok := resyn.SupportsDontCares(oracle); ok {
			e.dco = dco
		} else {
			e.log.Debug("oracle ignores don't-cares")
		}
	}
	return e
}

// vertex locates the cut behind a conflict graph vertex.
type vertex struct {
	root network.Node
	cut  *cut.Cut
}

func (e *engine) run(nodes []network.Node) Stats {
	start := time.Now()

	cuts := e.ps.Enumerator.Enumerate(e.ntk)
	e.st.TimeCuts = time.Since(start)
	e.st.Cuts = cuts.TotalCuts()

	e.refs = mffc.NewRefs(e.ntk, e.ps.Cost)
	size := e.ntk.Size()
	for _, n := range nodes {
		if int(n) >= size {
			continue
		}
		e.evaluate(n, cuts)
	}

	misStart := time.Now()
	g, vertices := e.conflictGraph(cuts, size)
	if e.ps.VeryVerbose {
		e.log.Info("replacement dependency graph", "vertices", g.NumVertices(), "edges", g.NumEdges())
	}
	var selected []int
	switch e.ps.Strategy {
	case Greedy:
		selected = SelectMaximal(g)
	default:
		selected = SelectGWMin(g)
	}
	e.st.TimeMIS = time.Since(misStart)
	e.st.Vertices, e.st.Edges, e.st.Selected = g.NumVertices(), g.NumEdges(), len(selected)
	if e.ps.VeryVerbose {
		e.log.Info("independent set", "size", len(selected))
	}

	for _, v := range selected {
		e.commit(vertices[v])
	}

	e.st.TimeTotal = time.Since(start)
	if e.ps.Verbose {
		e.st.Report(e.log)
	}
	return e.st
}

// evaluate records the best replacement of every cut of n.
func (e *engine) evaluate(n network.Node, cuts *cut.Table) {
	if e.ntk.IsConstant(n) || e.ntk.IsCI(n) {
		return
	}
	set := cuts.Cuts(n)
	if len(set) == 0 || e.refs.Size(n) == 1 {
		return
	}

	for _, c := range set {
		if c.Size() <= 2 {
			continue
		}
		leaves := make([]network.Signal, c.Size())
		for i, l := range c.Leaves {
			leaves[i] = network.MakeSignal(l, false)
		}

		value := int(e.refs.Deref(n))
		best := -1
		emit := func(f network.Signal) bool {
			e.st.Candidates++
			v, contains := e.refs.RefContains(f.Node(), n)
			e.refs.Deref(f.Node())

			gain := -1
			if !contains {
				gain = value - int(v)
			}
			if gain > 0 || (e.ps.AllowZeroGain && gain == 0) {
				if best == -1 || gain > best {
					best = gain
					c.Data = cut.Data{Gain: gain, Replacement: f, HasReplacement: true}
				}
			}
			return true
		}

		t := time.Now()
		e.resynthesize(c, leaves, emit)
		e.st.TimeRewriting += time.Since(t)

		if best > 0 {
			e.st.TotalGain += best
		}
		e.refs.Ref(n)
	}
}

func (e *engine) resynthesize(c *cut.Cut, leaves []network.Signal, emit func(network.Signal) bool) {
	if e.dco != nil {
		dc, err := dontcare.Satisfiability(e.ntk, c.Leaves, dontcare.DefaultWindowInputs)
		if err == nil {
			e.dco.ResynthesizeDC(e.ntk, c.Func, dc, leaves, emit)
			return
		}
		e.log.Debug("don't-care computation failed", "leaves", c.Leaves, "err", err)
	}
	e.oracle.Resynthesize(e.ntk, c.Func, leaves, emit)
}

// conflictGraph builds one vertex per profitable cut and connects cuts
// whose cones share a gate.
func (e *engine) conflictGraph(cuts *cut.Table, size int) (*Graph, []vertex) {
	g := NewGraph()
	var vertices []vertex
	users := nodemap.NewSparse[[]int](e.ntk)
	threshold := e.ps.gainThreshold()

	for i := range size {
		n := network.Node(i)
		if e.ntk.IsConstant(n) || e.ntk.IsCI(n) {
			continue
		}
		set := cuts.Cuts(n)
		if len(set) == 0 || e.refs.Size(n) == 1 {
			continue
		}
		for _, c := range set {
			if c.Size() <= 2 || c.Data.Gain < threshold {
				continue
			}
			v := g.AddVertex(c.Data.Gain)
			vertices = append(vertices, vertex{root: n, cut: c})
			for _, gate := range cut.NewView(e.ntk, c.Leaves, n).Gates() {
				users.Set(gate, append(users.At(gate), v))
			}
		}
	}

	for i := range size {
		vs := users.At(network.Node(i))
		for j := 1; j < len(vs); j++ {
			for k := range j {
				g.AddEdge(vs[k], vs[j])
			}
		}
	}
	return g, vertices
}

func (e *engine) commit(v vertex) {
	d := v.cut.Data
	if !d.HasReplacement {
		return
	}
	r := d.Replacement
	if e.ntk.IsConstant(r.Node()) || r.Node() == v.root {
		return
	}
	if e.ps.VeryVerbose {
		e.log.Info("substitute", "node", v.root, "leaves", v.cut.Leaves, "replacement", r, "gain", d.Gain)
	}
	e.ntk.Substitute(v.root, r)
	e.st.Substituted++
	e.st.CommittedGain += d.Gain
}
