package arscene

import "github.com/rm8x/arscene/capture"

// Tracker is the marker-tracking controller collaborator. Detection,
// pose estimation, and camera calibration live behind this interface;
// the adapter never computes or validates poses itself.
//
// Implementations are not required to be safe for concurrent use: the
// adapter drives a tracker from the single render/UI goroutine.
type Tracker interface {
	// CameraProjection returns the projection matrix derived from the
	// controller's camera calibration. The adapter freezes its camera
	// to this value at construction time.
	CameraProjection() Mat4

	// AddPatternMarker registers a trained pattern marker with the
	// given physical width and returns the controller's tracking
	// handle for it.
	AddPatternMarker(id int, width float64) (int, error)

	// AddBarcodeMarker registers a matrix-code marker.
	AddBarcodeMarker(id int, width float64) (int, error)

	// AddNFTMarker registers a natural-feature-tracked marker.
	AddNFTMarker(id int, width float64) (int, error)

	// AddMultiMarker registers a multi-marker set and returns its
	// tracking handle.
	AddMultiMarker(id int) (int, error)

	// ProcessFrame evaluates one video frame and synchronously
	// dispatches a detection event to sink for every marker found.
	// ProcessFrame must not retain frame or sink.
	ProcessFrame(frame *capture.Frame, sink EventSink) error
}

// VideoSourcer is an optional interface for trackers that own their
// capture pipeline. When the host does not supply a source with
// WithVideoSource, New falls back to the tracker's own.
type VideoSourcer interface {
	VideoSource() capture.VideoSource
}
