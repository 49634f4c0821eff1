package render

import (
	"reflect"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestVideoTextureDescriptor(t *testing.T) {
	desc := VideoTextureDescriptor(640, 480)

	if desc.Width != 640 || desc.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", desc.Width, desc.Height)
	}
	if desc.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8Unorm", desc.Format)
	}
	if desc.MipLevelCount != 1 {
		t.Errorf("mip levels = %d, want 1", desc.MipLevelCount)
	}
	if desc.SampleCount != 1 {
		t.Errorf("sample count = %d, want 1", desc.SampleCount)
	}
	if desc.Usage&TextureUsageCopyDst == 0 {
		t.Error("descriptor must allow CopyDst (frames are re-uploaded)")
	}
	if desc.Usage&TextureUsageTextureBinding == 0 {
		t.Error("descriptor must allow TextureBinding (sampled by the blit)")
	}
	if desc.Usage&TextureUsageRenderAttachment != 0 {
		t.Error("video texture is never a render attachment")
	}
}

func TestTextureUsageFlagsDistinct(t *testing.T) {
	flags := []TextureUsage{
		TextureUsageCopySrc,
		TextureUsageCopyDst,
		TextureUsageTextureBinding,
		TextureUsageRenderAttachment,
	}
	var combined TextureUsage
	for i, f := range flags {
		if combined&f != 0 {
			t.Errorf("flag %d overlaps previous flags", i)
		}
		combined |= f
	}
}

func TestNullDeviceHandle(t *testing.T) {
	// The compile-time assertion in device.go already pins the full
	// DeviceProvider method set; this exercises the nil behavior.
	var h NullDeviceHandle
	if h.Device() != nil || h.Queue() != nil || h.Adapter() != nil {
		t.Error("null handle must return nil device, queue, and adapter")
	}
	if h.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Errorf("surface format = %v, want Undefined", h.SurfaceFormat())
	}
	if got := h.AdapterInfo(); !reflect.DeepEqual(got, gpucontext.AdapterInfo{}) {
		t.Errorf("adapter info = %+v, want zero value", got)
	}
}
