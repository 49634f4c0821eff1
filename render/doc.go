// Copyright 2026 The arscene Authors
// SPDX-License-Identifier: MIT

// Package render draws composed AR frames: the live video background
// beneath the overlay scene.
//
// # Key Principle
//
// The adapter RECEIVES a GPU device from the host application when GPU
// presentation is wanted, it does NOT create its own. Hosts without a
// GPU use the CPU compositor.
//
// # Core Interfaces
//
//   - Renderer: draws one background layer + scene + camera per frame
//   - DeviceHandle: GPU device access supplied by the host
//   - Texture/TextureView: GPU texture contracts for video frames
//
// # Implementations
//
//   - SoftwareRenderer (this package): CPU compositing via x/image
//   - backend/wgpu.BackgroundPresenter: GPU texture upload + blit
package render
