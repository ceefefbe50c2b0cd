// Package arena implements the grow-only node vector that backs a tree:
// a dense slice of fixed-size node records addressed by 32-bit index,
// never shrinking, doubling in capacity when full.
package arena

// Nil is the sentinel index meaning "no child." The node at Nil is the
// zero value and must never be mutated.
const Nil uint32 = 0

// InitialCapacity is the node count an Arena is created with.
const InitialCapacity = 256

// Node is a fixed-width ternary search tree node. Low, High and Equal are
// indices into the owning Arena, or Nil.
type Node struct {
	Splitchar byte
	Flag      bool
	Low       uint32
	High      uint32
	Equal     uint32
}

// Arena is a dense, grow-only vector of Nodes indexed from 1; index 0 is
// the immutable nil sentinel. Arena never shrinks except via Reset.
type Arena struct {
	nodes []Node
}

// New returns an Arena with its sentinel and root reserved: index 0 is
// the nil sentinel, index 1 is the root.
func New() *Arena {
	a := &Arena{nodes: make([]Node, 2, InitialCapacity)}
	return a
}

// Len returns the current node count, including the sentinel and root.
func (a *Arena) Len() uint32 {
	return uint32(len(a.nodes))
}

// Cap returns the current backing capacity.
func (a *Arena) Cap() uint32 {
	return uint32(cap(a.nodes))
}

// At resolves an index to a pointer into the current backing slice. The
// returned pointer must not be retained across any call that might grow
// the arena (ReserveOne); re-resolve via At afterward.
func (a *Arena) At(i uint32) *Node {
	return &a.nodes[i]
}

// ReserveOne allocates one fresh node, growing the backing slice first
// if it is full, and returns its index.
func (a *Arena) ReserveOne() uint32 {
	a.growIfNeeded()
	idx := uint32(len(a.nodes))
	a.nodes = append(a.nodes, Node{})
	return idx
}

// growIfNeeded doubles the backing capacity when the next ReserveOne
// would overflow it. Growth bulk-copies the live nodes into a fresh,
// larger slice; no index is invalidated, only any retained *Node.
func (a *Arena) growIfNeeded() {
	if len(a.nodes) < cap(a.nodes) {
		return
	}
	grown := make([]Node, len(a.nodes), cap(a.nodes)*2)
	copy(grown, a.nodes)
	a.nodes = grown
}

// Reset empties the arena back to just the sentinel and root, as Clear
// and Optimize require: node_count becomes 1 (root reserved, no content
// nodes), the backing capacity is not shrunk.
func (a *Arena) Reset() {
	for i := range a.nodes {
		a.nodes[i] = Node{}
	}
	a.nodes = a.nodes[:2]
}
