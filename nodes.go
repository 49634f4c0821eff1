package arscene

import "github.com/rm8x/arscene/scene"

// MarkerNode is a scene node bound to one tracked marker. It embeds the
// scene node the host populates with visual content and inserts into
// the overlay scene; the adapter keeps a reference in its registry to
// route pose updates.
type MarkerNode struct {
	*scene.Node

	handle int
}

// TrackingHandle returns the controller's tracking handle for this
// marker, as returned by the AddXxxMarker call that created it.
func (n *MarkerNode) TrackingHandle() int { return n.handle }

// MultiMarkerNode is a scene node bound to a multi-marker set. Besides
// the parent node, which receives the set's fused pose, it owns an
// ordered list of sub-nodes updated independently by sub-marker events.
type MultiMarkerNode struct {
	*scene.Node

	handle int
	subs   []*scene.Node
}

// TrackingHandle returns the controller's tracking handle for the set.
func (n *MultiMarkerNode) TrackingHandle() int { return n.handle }

// AddSub appends a sub-node slot for the next component marker and
// attaches it as a child of the parent node. Sub-node order must match
// the component order of the multi-marker configuration.
func (n *MultiMarkerNode) AddSub(sub *scene.Node) {
	if sub == nil {
		return
	}
	n.subs = append(n.subs, sub)
	n.Node.AddChild(sub)
}

// Sub returns the sub-node at the given component index, or nil when no
// slot exists there.
func (n *MultiMarkerNode) Sub(index int) *scene.Node {
	if index < 0 || index >= len(n.subs) {
		return nil
	}
	return n.subs[index]
}

// SubCount returns the number of registered sub-node slots.
func (n *MultiMarkerNode) SubCount() int { return len(n.subs) }
