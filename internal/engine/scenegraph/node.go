// Package scenegraph provides the minimal node tree the renderer walks.
// Nodes carry transforms and optional meshes; materials and geometry own
// their GPU resources and are released through Dispose.
package scenegraph

import (
	"github.com/voxspace/roomwalk/pkg/math"
)

// Node is a scene graph node. A Node with a nil Mesh is a pure group.
type Node struct {
	Name      string
	Position  math.Vec3
	RotationY float32 // radians around the Y axis
	ScaleF    float32 // uniform scale, 0 treated as 1

	Visible bool

	// AutoUpdate controls whether UpdateWorld recomputes this subtree's
	// world matrices from Position/RotationY/ScaleF. The frame loop turns
	// it off on the root when device poses supply matrices directly.
	AutoUpdate bool

	Mesh *Mesh

	World math.Mat4

	parent   *Node
	children []*Node
}

// NewNode creates an empty group node.
func NewNode(name string) *Node {
	return &Node{
		Name:       name,
		ScaleF:     1,
		Visible:    true,
		AutoUpdate: true,
		World:      math.Identity(),
	}
}

// NewMeshNode creates a node carrying a mesh.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	return n
}

// Add attaches child to n. A child already attached elsewhere is
// detached from its old parent first.
func (n *Node) Add(child *Node) {
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

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// Traverse visits n and every descendant in depth-first order.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// TraverseVisible visits n and every descendant in depth-first order,
// pruning any subtree whose root is not Visible. Hiding a group hides
// everything under it.
func (n *Node) TraverseVisible(fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.TraverseVisible(fn)
	}
}

// Find returns the first descendant (or n itself) with the given name,
// or nil if no such node exists.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Traverse(func(node *Node) {
		if found == nil && node.Name == name {
			found = node
		}
	})
	return found
}

// local computes the node's local transform from its position, rotation,
// and scale.
func (n *Node) local() math.Mat4 {
	s := n.ScaleF
	if s == 0 {
		s = 1
	}
	m := math.Translate(n.Position.X, n.Position.Y, n.Position.Z)
	if n.RotationY != 0 {
		m = m.Mul(math.RotateY(n.RotationY))
	}
	if s != 1 {
		m = m.Mul(math.Mat4{
			s, 0, 0, 0,
			0, s, 0, 0,
			0, 0, s, 0,
			0, 0, 0, 1,
		})
	}
	return m
}

// UpdateWorld recomputes world matrices for the subtree rooted at n.
// Subtrees with AutoUpdate disabled keep whatever World was last set on
// them (e.g. directly from a device pose).
func (n *Node) UpdateWorld(parent math.Mat4) {
	if !n.AutoUpdate {
		return
	}
	n.World = parent.Mul(n.local())
	for _, c := range n.children {
		c.UpdateWorld(n.World)
	}
}

// WorldAABB returns the node's mesh bounds transformed to world space.
// ok is false for nodes without a mesh.
func (n *Node) WorldAABB() (lower, upper math.Vec3, ok bool) {
	if n.Mesh == nil {
		return math.Vec3{}, math.Vec3{}, false
	}
	b := n.Mesh.Geometry.Bounds
	lo := n.World.TransformPoint(b.Lower)
	hi := n.World.TransformPoint(b.Upper)
	box := math.NewBox3(lo, hi)
	return box.Lower, box.Upper, true
}
