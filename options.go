package arscene

import "github.com/rm8x/arscene/capture"

// Option configures an Adapter during creation.
//
// Example:
//
//	// Tracker-owned capture, default behavior
//	ar, err := arscene.New(tracker)
//
//	// Explicit capture source
//	ar, err := arscene.New(tracker, arscene.WithVideoSource(src))
type Option func(*adapterOptions)

// adapterOptions holds optional configuration for Adapter creation.
type adapterOptions struct {
	video          capture.VideoSource
	forcePortrait  bool
	forceLandscape bool
}

// defaultOptions returns the default adapter options.
func defaultOptions() adapterOptions {
	return adapterOptions{}
}

// WithVideoSource sets the video source the adapter pulls frames from.
// Without this option New uses the tracker's own capture pipeline when
// the tracker implements VideoSourcer.
func WithVideoSource(src capture.VideoSource) Option {
	return func(o *adapterOptions) {
		o.video = src
	}
}

// WithPortraitRotation forces the background layer's quarter-turn
// compensation regardless of what the source reports. Use this when
// device orientation metadata is wrong or missing.
func WithPortraitRotation(enabled bool) Option {
	return func(o *adapterOptions) {
		o.forcePortrait = enabled
		o.forceLandscape = !enabled
	}
}
