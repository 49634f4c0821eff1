package scene

import (
	"math"

	"github.com/rm8x/arscene/capture"
)

// BackgroundLayer binds a streaming video source behind the AR content
// scene. The layer holds the source reference and a fixed rotation; the
// renderer pulls frames from the source each time it draws.
type BackgroundLayer struct {
	source   capture.VideoSource
	rotation float64
}

// NewBackgroundLayer creates a background layer streaming from src.
func NewBackgroundLayer(src capture.VideoSource) *BackgroundLayer {
	return &BackgroundLayer{source: src}
}

// Source returns the layer's video source.
func (l *BackgroundLayer) Source() capture.VideoSource { return l.source }

// SetRotation sets the layer rotation in radians. Portrait-oriented
// sources are compensated with a 90 degree rotation at bootstrap.
func (l *BackgroundLayer) SetRotation(rad float64) { l.rotation = rad }

// Rotation returns the layer rotation in radians.
func (l *BackgroundLayer) Rotation() float64 { return l.rotation }

// Rotated reports whether the layer is rotated a quarter turn in either
// direction, which swaps the layer's effective width and height.
func (l *BackgroundLayer) Rotated() bool {
	r := math.Mod(math.Abs(l.rotation), math.Pi)
	return math.Abs(r-math.Pi/2) < 1e-9
}

// Size returns the layer's effective pixel dimensions: the source frame
// size, swapped when the layer is rotated a quarter turn.
func (l *BackgroundLayer) Size() (width, height int) {
	w, h := l.source.Size()
	if l.Rotated() {
		return h, w
	}
	return w, h
}
