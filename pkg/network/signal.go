package network

import "fmt"

// Node identifies a node in a network.
type Node uint32

// Signal is a reference to a node with a complement bit.
type Signal uint32

// MakeSignal returns a signal pointing to n, complemented if c is true.
func MakeSignal(n Node, c bool) Signal {
	s := Signal(n) << 1
	if c {
		s |= 1
	}
	return s
}

// Node returns the node the signal points to.
func (s Signal) Node() Node { return Node(s >> 1) }

// IsComplemented reports whether the signal is inverted.
func (s Signal) IsComplemented() bool { return s&1 == 1 }

// Not returns the inverted signal.
func (s Signal) Not() Signal { return s ^ 1 }

// NotIf returns the inverted signal when c is true.
func (s Signal) NotIf(c bool) Signal {
	if c {
		return s ^ 1
	}
	return s
}

// String implements fmt.Stringer.
func (s Signal) String() string {
	if s.IsComplemented() {
		return fmt.Sprintf("!%d", s.Node())
	}
	return fmt.Sprintf("%d", s.Node())
}
