// Package capture provides video frame acquisition for the AR adapter.
//
// A VideoSource hands out the current frame on demand; the adapter pulls
// one frame per Process call and forwards it to the tracking controller.
// Two sources ship with the package: ImageSource for in-memory images
// (tests, file playback) and GstSource for live cameras and network
// streams via GStreamer.
package capture

import (
	"errors"
	"image"
)

// Capture errors.
var (
	// ErrSourceClosed is returned when requesting frames from a
	// closed source.
	ErrSourceClosed = errors.New("capture: source closed")

	// ErrNoFrame is returned when no frame is currently available.
	ErrNoFrame = errors.New("capture: no frame available")

	// ErrNilImage is returned when constructing a source from a nil
	// or empty image.
	ErrNilImage = errors.New("capture: image is nil or empty")

	// ErrSizeMismatch is returned when swapping in an image whose
	// bounds differ from the source's fixed size.
	ErrSizeMismatch = errors.New("capture: image size does not match source size")
)

// Orientation describes the physical orientation of a video source.
type Orientation uint8

const (
	// Landscape means frame width >= height.
	Landscape Orientation = iota

	// Portrait means frame height > width; the background layer is
	// rotated 90 degrees to compensate.
	Portrait
)

// String returns a human-readable name for the orientation.
func (o Orientation) String() string {
	switch o {
	case Landscape:
		return "Landscape"
	case Portrait:
		return "Portrait"
	default:
		return "Unknown"
	}
}

// Frame is one video frame with its orientation metadata.
//
// The image may be backed by source-owned storage that is reused for the
// next frame; callers that need the pixels beyond the current processing
// call must copy them.
type Frame struct {
	Image       image.Image
	Orientation Orientation
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	if f == nil || f.Image == nil {
		return 0
	}
	return f.Image.Bounds().Dx()
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	if f == nil || f.Image == nil {
		return 0
	}
	return f.Image.Bounds().Dy()
}

// VideoSource supplies live video frames with known dimensions and
// orientation. Implementations are driven from the single render/UI
// goroutine and need no internal locking unless they bridge to another
// thread (as the GStreamer source does).
type VideoSource interface {
	// Frame returns the current frame. The returned frame is valid
	// until the next Frame call on the same source.
	Frame() (*Frame, error)

	// Size returns the pixel dimensions of frames from this source.
	Size() (width, height int)

	// Orientation returns the source's physical orientation.
	Orientation() Orientation

	// Close releases the source. Frame returns ErrSourceClosed after
	// Close.
	Close() error
}

// orientationOf derives orientation from pixel dimensions.
func orientationOf(width, height int) Orientation {
	if height > width {
		return Portrait
	}
	return Landscape
}
