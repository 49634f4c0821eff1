package scene

import "image/draw"

// Drawable is visual content attached to a Node. Implementations draw
// themselves into the destination image using the node's world transform
// and the scene camera. The software renderer calls Draw for every
// visible node; GPU backends may ignore Drawable entirely.
type Drawable interface {
	Draw(dst draw.Image, world Mat4, cam *Camera)
}

// Node is a positioned, transformable object in the scene graph.
//
// The node's world transform is overwritten wholesale by pose updates;
// the scene layer never composes or validates it. Nodes are owned by the
// host scene; adapters hold non-owning references.
//
// No synchronization: nodes are mutated only from the single render/UI
// goroutine that drives frame processing.
type Node struct {
	world    Mat4
	visible  bool
	children []*Node
	drawable Drawable
}

// NewNode returns a node with an identity world transform, invisible.
func NewNode() *Node {
	return &Node{world: Identity()}
}

// SetWorldTransform overwrites the node's world transform.
func (n *Node) SetWorldTransform(m Mat4) { n.world = m }

// WorldTransform returns the node's current world transform.
func (n *Node) WorldTransform() Mat4 { return n.world }

// SetVisible sets the node's visibility flag.
func (n *Node) SetVisible(v bool) { n.visible = v }

// Visible reports whether the node is currently visible.
func (n *Node) Visible() bool { return n.visible }

// AddChild appends a child node. Children are drawn after their parent
// and share its visibility gate in the software renderer.
func (n *Node) AddChild(c *Node) {
	if c == nil || c == n {
		return
	}
	n.children = append(n.children, c)
}

// Children returns the node's children in insertion order.
// The returned slice is the node's own storage; do not mutate it.
func (n *Node) Children() []*Node { return n.children }

// SetDrawable attaches visual content to the node. Pass nil to detach.
func (n *Node) SetDrawable(d Drawable) { n.drawable = d }

// Drawable returns the node's attached visual content, or nil.
func (n *Node) Drawable() Drawable { return n.drawable }
