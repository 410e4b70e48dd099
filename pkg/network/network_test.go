package network

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/cutrewrite/pkg/truth"
)

func TestNew(t *testing.T) {
	ntk := New()
	if ntk.Size() != 1 {
		t.Errorf("Size() = %d, want 1", ntk.Size())
	}
	if !ntk.IsConstant(0) {
		t.Error("node 0 should be the constant")
	}
	if ntk.Constant(false) != 0 || ntk.Constant(true) != 1 {
		t.Errorf("Constant() = %v, %v, want signals 0 and 1", ntk.Constant(false), ntk.Constant(true))
	}
	if a := ntk.CreatePI(); a.Node() != 1 || ntk.IsConstant(1) {
		t.Errorf("first input = %v, want node 1", a)
	}
	if err := ntk.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestStructuralHashing(t *testing.T) {
	ntk := New()
	a, b := ntk.CreatePI(), ntk.CreatePI()

	f1 := ntk.CreateAnd(a, b)
	_ = ntk.CreateOr(a, b)
	f2 := ntk.CreateAnd(a, b)

	if f1 != f2 {
		t.Errorf("CreateAnd twice = %v, %v, want same signal", f1, f2)
	}
	if ntk.NumGates() != 2 {
		t.Errorf("NumGates() = %d, want 2", ntk.NumGates())
	}
	// a and b are each referenced by the AND and the OR.
	for _, s := range []Signal{a, b} {
		if got := ntk.FanoutSize(s.Node()); got != 2 {
			t.Errorf("FanoutSize(%v) = %d, want 2", s, got)
		}
	}

	// Polarity is part of the key.
	f3 := ntk.CreateAnd(a.Not(), b)
	if f3 == f1 {
		t.Error("complemented fanin should produce a different gate")
	}

	// Function is part of the key but equal functions share a literal.
	lits := ntk.NumFunctions()
	x := ntk.CreateNode([]Signal{a, b}, truth.FromBits(2, 0x6))
	y := ntk.CreateXor(a, b)
	if x != y {
		t.Errorf("CreateNode(xor) = %v, CreateXor = %v, want same", x, y)
	}
	if ntk.NumFunctions() != lits+1 {
		t.Errorf("NumFunctions() = %d, want %d", ntk.NumFunctions(), lits+1)
	}
}

func TestFanoutRepeatedChild(t *testing.T) {
	ntk := New()
	a := ntk.CreatePI()
	g := ntk.CreateAnd(a, a)
	ntk.CreatePO(g)
	ntk.CreatePO(g.Not())

	if got := ntk.FanoutSize(a.Node()); got != 2 {
		t.Errorf("FanoutSize(a) = %d, want 2", got)
	}
	if got := ntk.FanoutSize(g.Node()); got != 2 {
		t.Errorf("FanoutSize(g) = %d, want 2", got)
	}
	if err := ntk.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRegisters(t *testing.T) {
	ntk := New()
	a := ntk.CreatePI()
	q := ntk.CreateRO()
	g := ntk.CreateXor(a, q)
	ntk.CreatePO(g)
	ntk.CreateRI(g.Not())

	if ntk.NumPIs() != 1 || ntk.NumROs() != 1 || ntk.NumCIs() != 2 {
		t.Errorf("inputs = %d PIs, %d ROs, want 1 and 1", ntk.NumPIs(), ntk.NumROs())
	}
	if ntk.NumPOs() != 1 || ntk.NumRIs() != 1 {
		t.Errorf("outputs = %d POs, %d RIs, want 1 and 1", ntk.NumPOs(), ntk.NumRIs())
	}
	if !ntk.IsRO(q.Node()) || !ntk.IsCI(q.Node()) || ntk.IsPI(q.Node()) {
		t.Error("register output classified incorrectly")
	}
	if ntk.RI(0) != g.Not() {
		t.Errorf("RI(0) = %v, want %v", ntk.RI(0), g.Not())
	}

	assertPanics(t, "CreatePI after CreateRO", func() { ntk.CreatePI() })
	assertPanics(t, "CreatePO after CreateRI", func() { ntk.CreatePO(a) })
}

func TestContractViolations(t *testing.T) {
	ntk := New()
	a := ntk.CreatePI()
	assertPanics(t, "empty children", func() { ntk.CreateNode(nil, truth.New(0)) })
	assertPanics(t, "arity mismatch", func() { ntk.CreateNode([]Signal{a}, FuncAnd) })
	assertPanics(t, "unknown node", func() { ntk.FanoutSize(99) })
	assertPanics(t, "self substitution", func() { ntk.Substitute(a.Node(), a) })
}

func TestSubstitute(t *testing.T) {
	ntk := New()
	a, b, c := ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI()
	g1 := ntk.CreateAnd(a, b)
	g2 := ntk.CreateAnd(g1.Not(), c)
	ntk.CreatePO(g2)
	ntk.CreatePO(g1)

	repl := ntk.CreateOr(a, b).Not() // a NOR b, created after g2
	before := ntk.FanoutSize(repl.Node())
	ntk.Substitute(g1.Node(), repl)

	if got := ntk.FanoutSize(g1.Node()); got != 0 {
		t.Errorf("FanoutSize(old) = %d, want 0", got)
	}
	if got := ntk.FanoutSize(repl.Node()); got != before+2 {
		t.Errorf("FanoutSize(repl) = %d, want %d", got, before+2)
	}
	if got := ntk.Fanins(g2.Node())[0]; got != repl.Not() {
		t.Errorf("fanin = %v, want %v", got, repl.Not())
	}
	if got := ntk.PO(1); got != repl {
		t.Errorf("PO(1) = %v, want %v", got, repl)
	}
	if err := ntk.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	// The rewritten gate is findable under its new structure.
	if again := ntk.CreateAnd(repl.Not(), c); again != g2 {
		t.Errorf("CreateAnd after rehash = %v, want %v", again, g2)
	}

	// Index order is no longer topological; Topo must still be.
	pos := make(map[Node]int)
	for i, n := range ntk.Topo() {
		pos[n] = i
	}
	if pos[repl.Node()] > pos[g2.Node()] {
		t.Error("Topo() placed replacement after its fanout")
	}
	if _, ok := pos[g1.Node()]; ok {
		t.Error("Topo() contains the dangling node")
	}
}

func TestTopo(t *testing.T) {
	ntk := New()
	a, b := ntk.CreatePI(), ntk.CreatePI()
	dead := ntk.CreateXor(a, b)
	g := ntk.CreateAnd(a, b)
	ntk.CreatePO(g)

	got := ntk.Topo()
	want := []Node{0, a.Node(), b.Node(), g.Node()}
	if !slices.Equal(got, want) {
		t.Errorf("Topo() = %v, want %v", got, want)
	}
	if slices.Contains(got, dead.Node()) {
		t.Error("Topo() should skip dangling gates")
	}
}

func TestSimulate(t *testing.T) {
	ntk := New()
	a, b, c := ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI()
	ntk.CreatePO(ntk.CreateMaj(a, b, c))
	ntk.CreatePO(ntk.CreateIte(a, b, c.Not()))
	ntk.CreatePO(ntk.Constant(true))

	x0, x1, x2 := truth.Nth(3, 0), truth.Nth(3, 1), truth.Nth(3, 2)
	want := []truth.Table{
		x0.And(x1).Or(x0.And(x2)).Or(x1.And(x2)),
		x0.And(x1).Or(x0.Not().And(x2.Not())),
		truth.Const(3, true),
	}
	got := ntk.SimulateOutputs()
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("output %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestValidateDetectsCycle(t *testing.T) {
	ntk := New()
	a, b := ntk.CreatePI(), ntk.CreatePI()
	g1 := ntk.CreateAnd(a, b)
	g2 := ntk.CreateOr(g1, b)
	ntk.CreatePO(g2)
	// Replacing a with g2 closes the loop g1 -> g2 -> g1.
	ntk.Substitute(a.Node(), g2)

	if err := ntk.Validate(); !errors.Is(err, ErrNetworkHasCycle) {
		t.Errorf("Validate() = %v, want ErrNetworkHasCycle", err)
	}
}

func TestSignal(t *testing.T) {
	s := MakeSignal(5, true)
	if s.Node() != 5 || !s.IsComplemented() {
		t.Errorf("MakeSignal(5, true) = %v", s)
	}
	if s.Not().IsComplemented() || s.Not().Node() != 5 {
		t.Errorf("Not() = %v", s.Not())
	}
	if s.NotIf(false) != s {
		t.Error("NotIf(false) should be identity")
	}
	if s.String() != "!5" {
		t.Errorf("String() = %q, want !5", s.String())
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
