// Package scene provides the retained scene graph the marker adapter
// routes pose updates into: nodes with world transforms and visibility,
// a camera with a frozen projection, and a video background layer.
package scene

// Handedness identifies the coordinate convention of a scene.
type Handedness uint8

const (
	// RightHanded is the convention used for AR content: +X right,
	// +Y up, the camera looking down -Z. Pose matrices from the
	// tracking controller are expressed in this convention.
	RightHanded Handedness = iota

	// LeftHanded is provided for hosts whose engine defaults to a
	// left-handed convention and converts poses itself.
	LeftHanded
)

// String returns a human-readable name for the handedness.
func (h Handedness) String() string {
	switch h {
	case RightHanded:
		return "RightHanded"
	case LeftHanded:
		return "LeftHanded"
	default:
		return "Unknown"
	}
}

// Scene is the root of a content graph. The AR adapter builds one scene
// for overlay content; the video background is a separate layer drawn
// beneath it.
type Scene struct {
	handedness Handedness
	nodes      []*Node
}

// NewScene returns an empty right-handed scene.
func NewScene() *Scene {
	return &Scene{handedness: RightHanded}
}

// Handedness returns the scene's coordinate convention.
func (s *Scene) Handedness() Handedness { return s.handedness }

// Add inserts a top-level node into the scene. Nil nodes are ignored.
func (s *Scene) Add(n *Node) {
	if n == nil {
		return
	}
	s.nodes = append(s.nodes, n)
}

// Nodes returns the top-level nodes in insertion order.
// The returned slice is the scene's own storage; do not mutate it.
func (s *Scene) Nodes() []*Node { return s.nodes }

// Walk visits every node in the scene depth-first, parents before
// children, in insertion order.
func (s *Scene) Walk(fn func(*Node)) {
	for _, n := range s.nodes {
		walkNode(n, fn)
	}
}

func walkNode(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		walkNode(c, fn)
	}
}
