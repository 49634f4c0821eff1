// Copyright 2026 The arscene Authors
// SPDX-License-Identifier: MIT

// Package wgpu presents the adapter's video background on the GPU.
//
// The BackgroundPresenter uploads each video frame into a GPU texture
// and exposes a fullscreen blit pipeline the host binds in its own
// render pass, drawing the video beneath the AR content. The presenter
// shares the host's hal.Device and hal.Queue; it never creates its own
// GPU instance.
package wgpu
