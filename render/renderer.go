// Copyright 2026 The arscene Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/rm8x/arscene/scene"
)

// Renderer draws one composed AR frame: the video background first,
// then every visible node of the content scene through the camera's
// frozen projection.
//
// Renderers are stateless between Render calls apart from their output
// storage, allowing the same renderer to draw successive frames of the
// same adapter.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should be
// used from the single render/UI goroutine driving the adapter.
type Renderer interface {
	// Render draws the background layer and the scene.
	//
	// The scene is not modified by this operation. Returns an error
	// if frame acquisition or drawing fails.
	Render(background *scene.BackgroundLayer, content *scene.Scene, cam *scene.Camera) error

	// Flush ensures all pending rendering operations are complete.
	//
	// For CPU renderers this is a no-op as operations are
	// synchronous. For GPU renderers this may submit command buffers
	// and wait for completion.
	Flush() error
}
