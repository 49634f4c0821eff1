// Copyright 2026 The arscene Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	stddraw "image/draw"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/rm8x/arscene/capture"
	"github.com/rm8x/arscene/render"
)

//go:embed shaders/background.wgsl
var backgroundShaderWGSL string

// Presenter errors.
var (
	// ErrNilDevice is returned when constructing a presenter without
	// a device or queue.
	ErrNilDevice = errors.New("wgpu: device and queue are required")

	// ErrNoHALProvider is returned when a device provider does not
	// expose HAL handles.
	ErrNoHALProvider = errors.New("wgpu: provider does not expose HAL types")

	// ErrPresenterDestroyed is returned when uploading to a destroyed
	// presenter.
	ErrPresenterDestroyed = errors.New("wgpu: presenter has been destroyed")
)

// paramsSize is the byte size of the blit uniform buffer:
// two vec2<f32> rows of the UV rotation, 16 bytes.
const paramsSize = 16

// BackgroundPresenter owns the GPU resources for the video background:
// a texture re-uploaded every frame, a sampler, and a fullscreen blit
// pipeline. The host binds Pipeline and BindGroup in its render pass
// and issues Draw(3, 1, 0, 0) before drawing AR content on top.
type BackgroundPresenter struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler

	texture    hal.Texture
	view       hal.TextureView
	paramsBuf  hal.Buffer
	bindGroup  hal.BindGroup
	descriptor render.TextureDescriptor

	// scratch converts non-RGBA frames before upload.
	scratch *image.RGBA

	destroyed bool
}

// New creates a presenter on the given device and queue for frames of
// the given size. The target format is the host surface's color format.
func New(device hal.Device, queue hal.Queue, width, height uint32, format gputypes.TextureFormat) (*BackgroundPresenter, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("wgpu: invalid video size %dx%d", width, height)
	}

	p := &BackgroundPresenter{
		device:     device,
		queue:      queue,
		descriptor: render.VideoTextureDescriptor(width, height),
	}
	if err := p.init(format); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// NewFromProvider creates a presenter from a host device provider. The
// provider must expose HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue, the convention gpucontext hosts follow.
func NewFromProvider(provider render.DeviceHandle, width, height uint32, format gputypes.TextureFormat) (*BackgroundPresenter, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return New(device, queue, width, height, format)
}

// init compiles the blit shader and creates all GPU objects.
func (p *BackgroundPresenter) init(format gputypes.TextureFormat) error {
	// Compile WGSL to SPIR-V.
	spirvBytes, err := naga.Compile(backgroundShaderWGSL)
	if err != nil {
		return fmt.Errorf("wgpu: compile background shader: %w", err)
	}
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "background_blit_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create shader module: %w", err)
	}
	p.shader = shader

	// Binding 0: video texture, binding 1: sampler, binding 2: params.
	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "background_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "background_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "background_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create sampler: %w", err)
	}
	p.sampler = sampler

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "background_blit_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create blit pipeline: %w", err)
	}
	p.pipeline = pipeline

	if err := p.createFrameResources(); err != nil {
		return err
	}
	return p.SetRotation(0)
}

// createFrameResources creates the video texture, its view, the params
// buffer, and the bind group tying them together.
func (p *BackgroundPresenter) createFrameResources() error {
	desc := p.descriptor
	texture, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: desc.MipLevelCount,
		SampleCount:   desc.SampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create video texture: %w", err)
	}
	p.texture = texture

	view, err := p.device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label: desc.Label + " (view)",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create video texture view: %w", err)
	}
	p.view = view

	paramsBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "background_params",
		Size:  paramsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create params buffer: %w", err)
	}
	p.paramsBuf = paramsBuf

	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "background_bind",
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: p.view.NativeHandle(),
			}},
			{Binding: 1, Resource: gputypes.SamplerBinding{
				Sampler: p.sampler.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.BufferBinding{
				Buffer: p.paramsBuf.NativeHandle(), Offset: 0, Size: paramsSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}
	p.bindGroup = bindGroup
	return nil
}

// SetRotation uploads the UV rotation compensating for the source
// orientation (the background layer's rotation, in radians).
func (p *BackgroundPresenter) SetRotation(rad float64) error {
	if p.destroyed {
		return ErrPresenterDestroyed
	}
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	// Column-major 2x2 padded into two vec2 rows.
	data := make([]byte, 0, paramsSize)
	for _, v := range [4]float32{cos, sin, -sin, cos} {
		bits := math.Float32bits(v)
		data = append(data, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	p.queue.WriteBuffer(p.paramsBuf, 0, data)
	return nil
}

// Upload copies one video frame into the GPU texture. Non-RGBA frames
// are converted through a scratch image first.
func (p *BackgroundPresenter) Upload(frame *capture.Frame) error {
	if p.destroyed {
		return ErrPresenterDestroyed
	}
	if frame == nil || frame.Image == nil {
		return capture.ErrNoFrame
	}

	pix := p.framePixels(frame.Image)

	dst := &hal.ImageCopyTexture{
		Texture:  p.texture,
		MipLevel: 0,
		Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
		Aspect:   gputypes.TextureAspectAll,
	}
	layout := &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  4 * p.descriptor.Width,
		RowsPerImage: p.descriptor.Height,
	}
	size := &hal.Extent3D{
		Width:              p.descriptor.Width,
		Height:             p.descriptor.Height,
		DepthOrArrayLayers: 1,
	}
	p.queue.WriteTexture(dst, pix, layout, size)
	return nil
}

// framePixels returns the frame's pixels as tightly packed RGBA bytes.
func (p *BackgroundPresenter) framePixels(img image.Image) []byte {
	w := int(p.descriptor.Width)
	h := int(p.descriptor.Height)

	if rgba, ok := img.(*image.RGBA); ok {
		b := rgba.Bounds()
		if b.Dx() == w && b.Dy() == h && rgba.Stride == 4*w {
			return rgba.Pix
		}
	}

	if p.scratch == nil {
		p.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	stddraw.Draw(p.scratch, p.scratch.Bounds(), img, img.Bounds().Min, stddraw.Src)
	return p.scratch.Pix
}

// Pipeline returns the blit pipeline for the host's render pass.
func (p *BackgroundPresenter) Pipeline() hal.RenderPipeline { return p.pipeline }

// BindGroup returns the bind group (texture, sampler, params) for
// group 0.
func (p *BackgroundPresenter) BindGroup() hal.BindGroup { return p.bindGroup }

// Texture returns the video texture through the render package's
// texture contract.
func (p *BackgroundPresenter) Texture() render.Texture {
	return &videoTexture{presenter: p}
}

// Destroy releases all GPU resources. Safe to call multiple times.
func (p *BackgroundPresenter) Destroy() {
	if p.destroyed || p.device == nil {
		return
	}
	p.destroyed = true
	if p.paramsBuf != nil {
		p.device.DestroyBuffer(p.paramsBuf)
		p.paramsBuf = nil
	}
	if p.view != nil {
		p.device.DestroyTextureView(p.view)
		p.view = nil
	}
	if p.texture != nil {
		p.device.DestroyTexture(p.texture)
		p.texture = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// videoTexture adapts the presenter's texture to render.Texture.
type videoTexture struct {
	presenter *BackgroundPresenter
}

func (t *videoTexture) Width() uint32                   { return t.presenter.descriptor.Width }
func (t *videoTexture) Height() uint32                  { return t.presenter.descriptor.Height }
func (t *videoTexture) Format() gputypes.TextureFormat  { return t.presenter.descriptor.Format }
func (t *videoTexture) Destroy()                        { t.presenter.Destroy() }
func (t *videoTexture) CreateView() (render.TextureView, error) {
	if t.presenter.destroyed {
		return nil, ErrPresenterDestroyed
	}
	return &videoTextureView{}, nil
}

// videoTextureView satisfies render.TextureView. The underlying hal
// view lives as long as the presenter; Destroy is a no-op.
type videoTextureView struct{}

func (*videoTextureView) Destroy() {}

// Ensure the adapter types satisfy the render contracts.
var _ render.Texture = (*videoTexture)(nil)
