// Copyright 2026 The arscene Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/rm8x/arscene/scene"
)

// Software renderer errors.
var (
	// ErrInvalidSize is returned when constructing a renderer with
	// non-positive dimensions.
	ErrInvalidSize = errors.New("render: invalid renderer size")

	// ErrNoBackground is returned when rendering without a
	// background layer.
	ErrNoBackground = errors.New("render: background layer is nil")
)

// SoftwareRenderer composites AR frames on the CPU into an RGBA image:
// the current video frame is scaled (and rotated for portrait sources)
// to fill the output, then every visible node's drawable is painted on
// top in scene order.
type SoftwareRenderer struct {
	dst *image.RGBA

	// interp scales and rotates video frames into the output.
	interp xdraw.Interpolator
}

// NewSoftwareRenderer creates a CPU renderer with the given output size,
// normally the adapter's surface dimensions.
func NewSoftwareRenderer(width, height int) (*SoftwareRenderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &SoftwareRenderer{
		dst:    image.NewRGBA(image.Rect(0, 0, width, height)),
		interp: xdraw.ApproxBiLinear,
	}, nil
}

// Image returns the renderer's output image. The image is overwritten
// by every Render call.
func (r *SoftwareRenderer) Image() *image.RGBA { return r.dst }

// Render draws the video background and then the visible scene nodes.
func (r *SoftwareRenderer) Render(background *scene.BackgroundLayer, content *scene.Scene, cam *scene.Camera) error {
	if background == nil {
		return ErrNoBackground
	}

	frame, err := background.Source().Frame()
	if err != nil {
		return fmt.Errorf("render: acquire video frame: %w", err)
	}

	r.drawBackground(frame.Image, background.Rotated())

	if content != nil {
		for _, n := range content.Nodes() {
			r.drawNode(n, cam)
		}
	}
	return nil
}

// Flush is a no-op: software rendering is synchronous.
func (r *SoftwareRenderer) Flush() error { return nil }

// drawBackground fills the output with the video frame, rotating a
// quarter turn when the layer compensates for a portrait source.
func (r *SoftwareRenderer) drawBackground(src image.Image, rotated bool) {
	sb := src.Bounds()
	db := r.dst.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	dw, dh := float64(db.Dx()), float64(db.Dy())

	if !rotated {
		r.interp.Scale(r.dst, db, src, sb, xdraw.Src, nil)
		return
	}

	// Quarter-turn fill: source x maps to output y, source y maps to
	// output x reversed.
	m := f64.Aff3{
		0, -dw / sh, dw,
		dh / sw, 0, 0,
	}
	r.interp.Transform(r.dst, m, src, sb, xdraw.Src, nil)
}

// drawNode paints a node's drawable and recurses into its children.
// An invisible node hides its whole subtree, matching scene-graph
// semantics; sub-marker children still keep their own flags.
func (r *SoftwareRenderer) drawNode(n *scene.Node, cam *scene.Camera) {
	if n == nil || !n.Visible() {
		return
	}
	if d := n.Drawable(); d != nil {
		d.Draw(r.dst, n.WorldTransform(), cam)
	}
	for _, c := range n.Children() {
		r.drawNode(c, cam)
	}
}
