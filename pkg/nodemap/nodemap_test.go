package nodemap

import (
	"testing"

	"github.com/matzehuels/cutrewrite/pkg/network"
)

func TestDense(t *testing.T) {
	ntk := network.New()
	a := ntk.CreatePI()
	m := NewDenseWithDefault(ntk, -1)

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	m.Set(a.Node(), 7)
	if got := m.AtSignal(a.Not()); got != 7 {
		t.Errorf("AtSignal(!a) = %d, want 7", got)
	}
	*m.Ptr(0) += 2
	if got := m.At(0); got != 1 {
		t.Errorf("At(0) = %d, want 1", got)
	}

	b := ntk.CreatePI()
	m.Resize(5)
	if m.Len() != 4 {
		t.Fatalf("Len() after Resize = %d, want 4", m.Len())
	}
	if m.At(a.Node()) != 7 || m.At(b.Node()) != 5 {
		t.Errorf("Resize should keep old entries and default new ones, got %d and %d", m.At(a.Node()), m.At(b.Node()))
	}

	m.Reset(0)
	for n := range ntk.Nodes() {
		if m.At(n) != 0 {
			t.Errorf("At(%d) after Reset = %d, want 0", n, m.At(n))
		}
	}
}

func TestDenseOutOfRange(t *testing.T) {
	ntk := network.New()
	m := NewDense[int](ntk)
	ntk.CreatePI()
	defer func() {
		if recover() == nil {
			t.Error("At past the end should panic")
		}
	}()
	m.At(2)
}

func TestSparse(t *testing.T) {
	ntk := network.New()
	a := ntk.CreatePI()
	m := NewSparse[string](ntk)

	if m.Has(a.Node()) {
		t.Error("Has() on empty map = true")
	}
	m.SetSignal(a.Not(), "a")
	if !m.Has(a.Node()) || !m.HasSignal(a) {
		t.Error("Has() after SetSignal = false")
	}
	if v, ok := m.Get(a.Node()); !ok || v != "a" {
		t.Errorf("Get() = %q, %v", v, ok)
	}
	if m.At(0) != "" {
		t.Error("At() on missing entry should return zero value")
	}
	m.Delete(a.Node())
	if m.Len() != 0 {
		t.Errorf("Len() after Delete = %d", m.Len())
	}
	m.Set(0, "zero")
	m.Reset()
	if m.Has(0) {
		t.Error("Reset() should remove entries")
	}
}
