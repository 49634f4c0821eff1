package arscene

import (
	"testing"

	"github.com/rm8x/arscene/scene"
)

func TestMultiMarkerNodeSubs(t *testing.T) {
	n := &MultiMarkerNode{Node: scene.NewNode()}

	a := scene.NewNode()
	b := scene.NewNode()
	n.AddSub(a)
	n.AddSub(b)
	n.AddSub(nil)

	if got := n.SubCount(); got != 2 {
		t.Fatalf("SubCount() = %d, want 2", got)
	}
	if n.Sub(0) != a || n.Sub(1) != b {
		t.Error("subs not in registration order")
	}
	if n.Sub(-1) != nil || n.Sub(2) != nil {
		t.Error("out-of-range Sub should return nil")
	}

	// Sub-nodes are also scene children of the parent.
	if got := len(n.Children()); got != 2 {
		t.Errorf("children count = %d, want 2", got)
	}
}
