package arscene

import "github.com/rm8x/arscene/scene"

// Mat4 is a column-major 4x4 pose matrix as reported by the tracking
// controller. It is an alias for the scene package's matrix type so
// event payloads assign directly into nodes.
type Mat4 = scene.Mat4

// NoID marks an absent marker id in an event payload. A square marker
// carries a pattern id, a matrix (barcode) id, or both; the missing one
// is NoID and never matches a registry key.
const NoID = -1

// MarkerInfo identifies a detected square marker.
type MarkerInfo struct {
	// IDPattern is the trained-pattern id, or NoID.
	IDPattern int

	// IDMatrix is the matrix-code (barcode) id, or NoID.
	IDMatrix int
}

// MarkerEvent reports a detected pattern or barcode marker together
// with its pose.
type MarkerEvent struct {
	Marker    MarkerInfo
	Transform Mat4
}

// NFTMarkerEvent reports a detected natural-feature-tracked marker.
type NFTMarkerEvent struct {
	// ID is the NFT marker id assigned when the dataset was loaded.
	ID        int
	Transform Mat4
}

// MultiMarkerEvent reports the fused pose of a multi-marker set.
type MultiMarkerEvent struct {
	// ID is the multi-marker set id.
	ID        int
	Transform Mat4
}

// MultiMarkerSubEvent reports one component marker of a multi-marker
// set, addressed by its index within the set.
type MultiMarkerSubEvent struct {
	// MultiID is the owning multi-marker set id.
	MultiID int

	// Index is the component's position in the set's ordered list.
	Index int

	// Visible is the tracking library's visibility indicator for the
	// component. Negative means "not currently matched"; the exact
	// values are an upstream convention the adapter does not
	// interpret beyond the sign.
	Visible int

	Transform Mat4
}

// EventSink receives marker detection events. The tracking controller
// dispatches to the sink synchronously while processing a frame, in the
// order the underlying library reports detections.
//
// The event set is closed: these four methods cover every detection
// kind the controller emits.
type EventSink interface {
	OnMarker(MarkerEvent)
	OnNFTMarker(NFTMarkerEvent)
	OnMultiMarker(MultiMarkerEvent)
	OnMultiMarkerSub(MultiMarkerSubEvent)
}
