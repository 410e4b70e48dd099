package mffc

import (
	"slices"
	"testing"

	"github.com/matzehuels/cutrewrite/pkg/network"
)

// chain builds g2 = and(and(a, b), c) with optional extra output on g1.
func chain(shareInner bool) (*network.Network, network.Signal, network.Signal) {
	ntk := network.New()
	a, b, c := ntk.CreatePI(), ntk.CreatePI(), ntk.CreatePI()
	g1 := ntk.CreateAnd(a, b)
	g2 := ntk.CreateAnd(g1, c)
	ntk.CreatePO(g2)
	if shareInner {
		ntk.CreatePO(g1)
	}
	return ntk, g1, g2
}

func TestSize(t *testing.T) {
	tests := []struct {
		name   string
		shared bool
		want   uint32
	}{
		{"private cone", false, 2},
		{"shared inner gate", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ntk, _, g2 := chain(tt.shared)
			r := NewRefs(ntk, nil)
			if got := r.Size(g2.Node()); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
			for n := range ntk.Nodes() {
				if r.Count(n) != ntk.FanoutSize(n) {
					t.Errorf("Count(%d) = %d after Size, want %d", n, r.Count(n), ntk.FanoutSize(n))
				}
			}
		})
	}
}

func TestDerefRef(t *testing.T) {
	ntk, g1, g2 := chain(false)
	r := NewRefs(ntk, nil)

	if got := r.Deref(g2.Node()); got != 2 {
		t.Fatalf("Deref() = %d, want 2", got)
	}
	if r.Count(g1.Node()) != 0 {
		t.Errorf("Count(g1) = %d after Deref, want 0", r.Count(g1.Node()))
	}
	if got := r.Ref(g2.Node()); got != 2 {
		t.Errorf("Ref() = %d, want 2", got)
	}
	if r.Count(g1.Node()) != 1 {
		t.Errorf("Count(g1) = %d after Ref, want 1", r.Count(g1.Node()))
	}
}

func TestTerminals(t *testing.T) {
	ntk := network.New()
	a := ntk.CreatePI()
	q := ntk.CreateRO()
	r := NewRefs(ntk, nil)
	for _, n := range []network.Node{0, a.Node(), q.Node()} {
		if got := r.Deref(n); got != 0 {
			t.Errorf("Deref(%d) = %d, want 0", n, got)
		}
	}
}

func TestRefContains(t *testing.T) {
	ntk, g1, g2 := chain(false)
	r := NewRefs(ntk, nil)
	r.Deref(g2.Node())

	// A new gate built on top of g2 contains it.
	c := network.MakeSignal(ntk.PI(2), false)
	cand := ntk.CreateOr(g2, c)
	v, contains := r.RefContains(cand.Node(), g2.Node())
	if !contains {
		t.Error("RefContains() did not find g2 as a fanin")
	}
	if v != 1 {
		t.Errorf("RefContains() cost = %d, want 1", v)
	}
	r.Deref(cand.Node())

	// A gate over the inputs does not.
	a, b := network.MakeSignal(ntk.PI(0), false), network.MakeSignal(ntk.PI(1), false)
	other := ntk.CreateOr(a, b)
	if _, contains := r.RefContains(other.Node(), g2.Node()); contains {
		t.Error("RefContains() reported a false containment")
	}
	r.Deref(other.Node())

	// Reusing g1 revives it: cost 2 for the new gate plus g1.
	reuse := ntk.CreateXor(g1, c)
	if v, _ := r.RefContains(reuse.Node(), g2.Node()); v != 2 {
		t.Errorf("RefContains() cost = %d, want 2", v)
	}
	r.Deref(reuse.Node())
	r.Ref(g2.Node())
	if r.Count(g1.Node()) != 1 {
		t.Errorf("Count(g1) = %d, want 1", r.Count(g1.Node()))
	}
}

func TestCostFunc(t *testing.T) {
	ntk, _, g2 := chain(false)
	r := NewRefs(ntk, FaninCost)
	if got := r.Size(g2.Node()); got != 4 {
		t.Errorf("Size() with FaninCost = %d, want 4", got)
	}
}

func TestCone(t *testing.T) {
	ntk, g1, g2 := chain(false)
	got := Cone(ntk, g2.Node())
	want := []network.Node{g2.Node(), g1.Node()}
	if !slices.Equal(got, want) {
		t.Errorf("Cone() = %v, want %v", got, want)
	}
	if Cone(ntk, ntk.PI(0)) != nil {
		t.Error("Cone() of an input should be empty")
	}
}
