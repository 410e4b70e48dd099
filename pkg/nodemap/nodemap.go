// Package nodemap attaches transient data to the nodes of a network without
// touching the network itself.
//
// Two storage strategies are provided. [Dense] is a slice sized to the
// network at construction; it must be grown with [Dense.Resize] or cleared
// with [Dense.Reset] when the network gains nodes. [Sparse] records only the
// entries that were written and can answer [Sparse.Has].
//
// Maps hold a non-owning reference to their network, which must outlive
// them. Several maps may coexist over one network because none of them
// mutate it.
package nodemap

import "github.com/matzehuels/cutrewrite/pkg/network"

// Dense is a node-indexed slice.
type Dense[T any] struct {
	ntk  *network.Network
	data []T
}

// NewDense returns a dense map with one zero entry per node.
func NewDense[T any](ntk *network.Network) *Dense[T] {
	return &Dense[T]{ntk: ntk, data: make([]T, ntk.Size())}
}

// NewDenseWithDefault returns a dense map with every entry set to def.
func NewDenseWithDefault[T any](ntk *network.Network, def T) *Dense[T] {
	m := &Dense[T]{ntk: ntk}
	m.Reset(def)
	return m
}

// Network returns the network the map is attached to.
func (m *Dense[T]) Network() *network.Network { return m.ntk }

// Len returns the number of entries.
func (m *Dense[T]) Len() int { return len(m.data) }

// At returns the entry for n. Out-of-range nodes panic.
func (m *Dense[T]) At(n network.Node) T { return m.data[n] }

// Ptr returns a pointer to the entry for n.
func (m *Dense[T]) Ptr(n network.Node) *T { return &m.data[n] }

// Set stores v for n.
func (m *Dense[T]) Set(n network.Node, v T) { m.data[n] = v }

// AtSignal returns the entry for the node s points to.
func (m *Dense[T]) AtSignal(s network.Signal) T { return m.data[s.Node()] }

// SetSignal stores v for the node s points to.
func (m *Dense[T]) SetSignal(s network.Signal, v T) { m.data[s.Node()] = v }

// Reset resizes the map to the current network size and sets every entry
// to def.
func (m *Dense[T]) Reset(def T) {
	size := m.ntk.Size()
	if cap(m.data) >= size {
		m.data = m.data[:size]
	} else {
		m.data = make([]T, size)
	}
	for i := range m.data {
		m.data[i] = def
	}
}

// Resize grows the map to the current network size. Existing entries are
// kept and new entries are set to def.
func (m *Dense[T]) Resize(def T) {
	for len(m.data) < m.ntk.Size() {
		m.data = append(m.data, def)
	}
}

// Sparse is a node-indexed hash map.
type Sparse[T any] struct {
	ntk  *network.Network
	data map[network.Node]T
}

// NewSparse returns an empty sparse map.
func NewSparse[T any](ntk *network.Network) *Sparse[T] {
	return &Sparse[T]{ntk: ntk, data: make(map[network.Node]T)}
}

// Network returns the network the map is attached to.
func (m *Sparse[T]) Network() *network.Network { return m.ntk }

// Len returns the number of recorded entries.
func (m *Sparse[T]) Len() int { return len(m.data) }

// Has reports whether an entry exists for n.
func (m *Sparse[T]) Has(n network.Node) bool {
	_, ok := m.data[n]
	return ok
}

// HasSignal reports whether an entry exists for the node s points to.
func (m *Sparse[T]) HasSignal(s network.Signal) bool { return m.Has(s.Node()) }

// At returns the entry for n, or the zero value if none exists.
func (m *Sparse[T]) At(n network.Node) T { return m.data[n] }

// Get returns the entry for n and whether it exists.
func (m *Sparse[T]) Get(n network.Node) (T, bool) {
	v, ok := m.data[n]
	return v, ok
}

// Set stores v for n.
func (m *Sparse[T]) Set(n network.Node, v T) { m.data[n] = v }

// AtSignal returns the entry for the node s points to.
func (m *Sparse[T]) AtSignal(s network.Signal) T { return m.data[s.Node()] }

// SetSignal stores v for the node s points to.
func (m *Sparse[T]) SetSignal(s network.Signal, v T) { m.data[s.Node()] = v }

// Delete removes the entry for n.
func (m *Sparse[T]) Delete(n network.Node) { delete(m.data, n) }

// Reset removes every entry.
func (m *Sparse[T]) Reset() { clear(m.data) }
