package capture

import "image"

// ImageSource is a VideoSource backed by an in-memory image. It serves
// tests, still-image tracking, and file playback where the host decodes
// frames itself and swaps them in with SetImage.
type ImageSource struct {
	img    image.Image
	width  int
	height int
	closed bool
}

// NewImageSource creates a source from the given image. The source's
// size and orientation are fixed by the first image; SetImage swaps the
// content for subsequent frames.
func NewImageSource(img image.Image) (*ImageSource, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNilImage
	}
	b := img.Bounds()
	return &ImageSource{
		img:    img,
		width:  b.Dx(),
		height: b.Dy(),
	}, nil
}

// SetImage replaces the current frame content. Images with bounds
// different from the source's fixed size are rejected so the adapter's
// surface dimensions stay valid.
func (s *ImageSource) SetImage(img image.Image) error {
	if s.closed {
		return ErrSourceClosed
	}
	if img == nil || img.Bounds().Empty() {
		return ErrNilImage
	}
	b := img.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return ErrSizeMismatch
	}
	s.img = img
	return nil
}

// Frame returns the current frame.
func (s *ImageSource) Frame() (*Frame, error) {
	if s.closed {
		return nil, ErrSourceClosed
	}
	return &Frame{
		Image:       s.img,
		Orientation: s.Orientation(),
	}, nil
}

// Size returns the fixed pixel dimensions of the source.
func (s *ImageSource) Size() (width, height int) { return s.width, s.height }

// Orientation derives the orientation from the fixed dimensions.
func (s *ImageSource) Orientation() Orientation {
	return orientationOf(s.width, s.height)
}

// Close marks the source closed.
func (s *ImageSource) Close() error {
	s.closed = true
	return nil
}
