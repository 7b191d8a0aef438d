// Package scene provides a minimal headless transform hierarchy.
//
// A Node carries a local position and orientation relative to its parent.
// World transforms are composed on demand, so reparenting a node while
// keeping it visually in place is a matter of recomputing its local
// transform against the new parent (see Node.Attach).
package scene

// Node is a transform node in a scene hierarchy.
type Node struct {
	Name     string
	Position Vec3 // Local position relative to the parent
	Rotation Quat // Local orientation relative to the parent

	parent   *Node
	children []*Node
	disposed bool
}

// NewNode creates a detached node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Rotation: Identity()}
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Disposed reports whether Dispose has been called on the node.
func (n *Node) Disposed() bool {
	return n.disposed
}

// Add makes child a child of n, keeping its local transform.
// The child is removed from its previous parent first.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It is a no-op if child is not a child of n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Attach reparents child under n while preserving its world transform:
// the child's new local transform is inverse(n.world) × child.world.
func (n *Node) Attach(child *Node) {
	if child == nil || child == n {
		return
	}
	worldPos := child.WorldPosition()
	worldRot := child.WorldRotation()

	n.Add(child)

	child.Position = n.WorldToLocal(worldPos)
	child.Rotation = n.WorldRotation().Conj().Mul(worldRot).Normalize()
}

// WorldRotation returns the node's orientation in world space.
func (n *Node) WorldRotation() Quat {
	q := n.Rotation
	for p := n.parent; p != nil; p = p.parent {
		q = p.Rotation.Mul(q)
	}
	return q
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() Vec3 {
	return n.LocalToWorld(Vec3{})
}

// LocalToWorld converts a point in n's local space to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	for cur := n; cur != nil; cur = cur.parent {
		p = cur.Rotation.Rotate(p).Add(cur.Position)
	}
	return p
}

// WorldToLocal converts a world-space point into n's local space.
func (n *Node) WorldToLocal(p Vec3) Vec3 {
	return n.WorldRotation().Conj().Rotate(p.Sub(n.WorldPosition()))
}

// Dispose detaches the node from its parent and disposes its whole subtree.
func (n *Node) Dispose() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
	for _, c := range n.children {
		c.parent = nil
		c.Dispose()
	}
	n.children = nil
	n.disposed = true
}

// Walk calls fn for n and every descendant in depth-first order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
