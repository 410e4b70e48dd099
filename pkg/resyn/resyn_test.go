package resyn

import (
	"testing"

	"github.com/matzehuels/cutrewrite/pkg/network"
	"github.com/matzehuels/cutrewrite/pkg/truth"
)

func sample() *network.Network {
	ntk := network.New()
	a, b, c, d := ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI()
	x := ntk.CreateMaj(a, b.Not(), c)
	y := ntk.CreateXor(x, d)
	z := ntk.CreateIte(a, y, c.Not())
	ntk.CreatePO(z)
	ntk.CreatePO(x.Not())
	ntk.CreatePO(ntk.Constant(true))
	return ntk
}

func equalOutputs(t *testing.T, got, want *network.Network) {
	t.Helper()
	g, w := got.SimulateOutputs(), want.SimulateOutputs()
	if len(g) != len(w) {
		t.Fatalf("%d outputs, want %d", len(g), len(w))
	}
	for i := range g {
		if !g[i].Equal(w[i]) {
			t.Errorf("output %d = %v, want %v", i, g[i], w[i])
		}
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		oracle Oracle[*network.Network, network.Signal]
	}{
		{"lut", LUT{}},
		{"shannon", Shannon{}},
		{"chain", Chain{Majority{}, Shannon{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sample()
			dst := Run[*network.Network, network.Signal](src, network.New(), tt.oracle)
			if dst.NumPIs() != src.NumPIs() || dst.NumPOs() != src.NumPOs() {
				t.Fatalf("I/O = %d/%d, want %d/%d", dst.NumPIs(), dst.NumPOs(), src.NumPIs(), src.NumPOs())
			}
			equalOutputs(t, dst, src)
		})
	}
}

func TestRunShannonBuildsAnds(t *testing.T) {
	dst := Run[*network.Network, network.Signal](sample(), network.New(), Shannon{})
	for g := range dst.Gates() {
		if !dst.Function(g).Equal(network.FuncAnd) {
			t.Errorf("gate %d has function %v, want AND", g, dst.Function(g))
		}
	}
}

func TestRunRegisters(t *testing.T) {
	src := network.New()
	a := src.CreatePI()
	q := src.CreateRO()
	g := src.CreateAnd(a, q)
	src.CreatePO(g)
	src.CreateRI(g.Not())

	dst := Run[*network.Network, network.Signal](src, network.New(), LUT{})
	if dst.NumROs() != 1 || dst.NumRIs() != 1 {
		t.Fatalf("registers = %d/%d, want 1/1", dst.NumROs(), dst.NumRIs())
	}
	if !dst.RI(0).IsComplemented() {
		t.Error("RI polarity lost")
	}
	equalOutputs(t, dst, src)
}

func TestRunSkipsDangling(t *testing.T) {
	src := sample()
	a, b := network.MakeSignal(src.PI(0), false), network.MakeSignal(src.PI(1), false)
	src.CreateAnd(a.Not(), b.Not())
	dst := Run[*network.Network, network.Signal](src, network.New(), LUT{})
	if dst.NumGates() != 3 {
		t.Errorf("NumGates() = %d, want 3", dst.NumGates())
	}
}

func TestRunPanicsWithoutCandidate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Run() did not panic for a silent oracle")
		}
	}()
	silent := OracleFunc[*network.Network, network.Signal](func(*network.Network, truth.Table, []network.Signal, func(network.Signal) bool) {})
	Run[*network.Network, network.Signal](sample(), network.New(), silent)
}

func TestMajority(t *testing.T) {
	tests := []struct {
		name  string
		fn    truth.Table
		found bool
	}{
		{"maj", truth.FromBits(3, 0xe8), true},
		{"complemented maj", truth.FromBits(3, 0x17), true},
		{"maj with inverted input", truth.FromBits(3, 0xd4), true},
		{"and", truth.FromBits(3, 0x88), true},
		{"or", truth.FromBits(3, 0xee), true},
		{"xor3", truth.FromBits(3, 0x96), false},
		{"projection", truth.FromBits(3, 0xaa), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ntk := network.New()
			leaves := []network.Signal{ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI()}
			var got []network.Signal
			Majority{}.Resynthesize(ntk, tt.fn, leaves, func(s network.Signal) bool {
				got = append(got, s)
				return true
			})
			if (len(got) > 0) != tt.found {
				t.Fatalf("found = %v, want %v", len(got) > 0, tt.found)
			}
			if !tt.found {
				return
			}
			ntk.CreatePO(got[0])
			if out := ntk.SimulateOutputs()[0]; !out.Equal(tt.fn) {
				t.Errorf("candidate computes %v, want %v", out, tt.fn)
			}
		})
	}
}

func TestMajorityReusesExisting(t *testing.T) {
	ntk := network.New()
	a, b, c := ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI()
	m := ntk.CreateMaj(a, b, c)
	var got network.Signal
	Majority{}.Resynthesize(ntk, network.FuncMaj, []network.Signal{a, b, c}, func(s network.Signal) bool {
		got = s
		return false
	})
	if got != m {
		t.Errorf("Resynthesize() = %v, want existing %v", got, m)
	}
}

func TestTrivialFunctions(t *testing.T) {
	ntk := network.New()
	a, b := ntk.CreatePI(), ntk.CreatePI()
	leaves := []network.Signal{a, b}
	tests := []struct {
		name string
		fn   truth.Table
		want network.Signal
	}{
		{"false", truth.Const(2, false), ntk.Constant(false)},
		{"true", truth.Const(2, true), ntk.Constant(true)},
		{"b", truth.Nth(2, 1), b},
		{"not a", truth.Nth(2, 0).Not(), a.Not()},
	}
	for _, tt := range tests {
		for _, o := range []Oracle[*network.Network, network.Signal]{LUT{}, Majority{}, Shannon{}} {
			var got network.Signal
			o.Resynthesize(ntk, tt.fn, leaves, func(s network.Signal) bool {
				got = s
				return false
			})
			if got != tt.want {
				t.Errorf("%T(%s) = %v, want %v", o, tt.name, got, tt.want)
			}
		}
	}
	if ntk.NumGates() != 0 {
		t.Errorf("trivial functions created %d gates", ntk.NumGates())
	}
}

func TestLUTDontCares(t *testing.T) {
	ntk := network.New()
	a, b := ntk.CreatePI(), ntk.CreatePI()
	// f = a & b, but a=1, b=0 never occurs: f may become a.
	fn := network.FuncAnd
	dc := truth.FromBits(2, 0x2)

	dco, ok := SupportsDontCares[*network.Network, network.Signal](LUT{})
	if !ok {
		t.Fatal("LUT does not support don't-cares")
	}
	var got network.Signal
	dco.ResynthesizeDC(ntk, fn, dc, []network.Signal{a, b}, func(s network.Signal) bool {
		got = s
		return false
	})
	if got != a {
		t.Errorf("ResynthesizeDC() = %v, want %v", got, a)
	}
	if _, ok := SupportsDontCares[*network.Network, network.Signal](Majority{}); ok {
		t.Error("Majority reports don't-care support")
	}
}

func TestShannonEmitsAlternatives(t *testing.T) {
	ntk := network.New()
	leaves := []network.Signal{ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI()}
	fn := truth.FromBits(3, 0xd8)
	var got []network.Signal
	Shannon{}.Resynthesize(ntk, fn, leaves, func(s network.Signal) bool {
		got = append(got, s)
		return true
	})
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	for _, s := range got {
		ntk.CreatePO(s)
	}
	for i, out := range ntk.SimulateOutputs() {
		if !out.Equal(fn) {
			t.Errorf("candidate %d computes %v, want %v", i, out, fn)
		}
	}
}

func TestChainStops(t *testing.T) {
	ntk := network.New()
	leaves := []network.Signal{ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI()}
	calls := 0
	counting := OracleFunc[*network.Network, network.Signal](func(*network.Network, truth.Table, []network.Signal, func(network.Signal) bool) {
		calls++
	})
	Chain{Majority{}, counting}.Resynthesize(ntk, network.FuncMaj, leaves, func(network.Signal) bool { return false })
	if calls != 0 {
		t.Errorf("chain called the next oracle %d times after a stop", calls)
	}
	Chain{Majority{}, counting}.Resynthesize(ntk, network.FuncMaj, leaves, func(network.Signal) bool { return true })
	if calls != 1 {
		t.Errorf("chain called the next oracle %d times, want 1", calls)
	}
}
