package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/rm8x/arscene/capture"
	"github.com/rm8x/arscene/scene"
)

func solidSource(t *testing.T, w, h int, c color.RGBA) *capture.ImageSource {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	src, err := capture.NewImageSource(img)
	if err != nil {
		t.Fatalf("NewImageSource: %v", err)
	}
	return src
}

// markDrawable records draw calls and stamps one pixel.
type markDrawable struct {
	calls int
	log   *[]string
	name  string
}

func (d *markDrawable) Draw(dst draw.Image, world scene.Mat4, cam *scene.Camera) {
	d.calls++
	if d.log != nil {
		*d.log = append(*d.log, d.name)
	}
	x, y, _ := world.TransformPoint(0, 0, 0)
	dst.Set(int(x), int(y), color.RGBA{R: 0xFF, A: 0xFF})
}

func TestNewSoftwareRendererInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSoftwareRenderer(tt.w, tt.h); !errors.Is(err, ErrInvalidSize) {
				t.Errorf("err = %v, want ErrInvalidSize", err)
			}
		})
	}
}

func TestRenderNilBackground(t *testing.T) {
	r, err := NewSoftwareRenderer(16, 16)
	if err != nil {
		t.Fatalf("NewSoftwareRenderer: %v", err)
	}
	if err := r.Render(nil, scene.NewScene(), nil); !errors.Is(err, ErrNoBackground) {
		t.Errorf("err = %v, want ErrNoBackground", err)
	}
}

func TestRenderBackgroundFillsOutput(t *testing.T) {
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	bg := scene.NewBackgroundLayer(solidSource(t, 32, 24, blue))

	r, err := NewSoftwareRenderer(64, 48)
	if err != nil {
		t.Fatalf("NewSoftwareRenderer: %v", err)
	}
	if err := r.Render(bg, nil, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, p := range []image.Point{{0, 0}, {32, 24}, {63, 47}} {
		if got := r.Image().RGBAAt(p.X, p.Y); got != blue {
			t.Errorf("pixel %v = %v, want %v", p, got, blue)
		}
	}
}

func TestRenderRotatedBackground(t *testing.T) {
	// Portrait source: top half red, bottom half green. After the
	// quarter turn the red half lands on the right of the output.
	red := color.RGBA{R: 0xFF, A: 0xFF}
	green := color.RGBA{G: 0xFF, A: 0xFF}
	img := image.NewRGBA(image.Rect(0, 0, 48, 64))
	draw.Draw(img, image.Rect(0, 0, 48, 32), image.NewUniform(red), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 32, 48, 64), image.NewUniform(green), image.Point{}, draw.Src)
	src, err := capture.NewImageSource(img)
	if err != nil {
		t.Fatalf("NewImageSource: %v", err)
	}

	bg := scene.NewBackgroundLayer(src)
	bg.SetRotation(math.Pi / 2)

	r, err := NewSoftwareRenderer(64, 48)
	if err != nil {
		t.Fatalf("NewSoftwareRenderer: %v", err)
	}
	if err := r.Render(bg, nil, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got := r.Image().RGBAAt(60, 24); got != red {
		t.Errorf("right side = %v, want %v (source top)", got, red)
	}
	if got := r.Image().RGBAAt(3, 24); got != green {
		t.Errorf("left side = %v, want %v (source bottom)", got, green)
	}
}

func TestRenderSkipsInvisibleNodes(t *testing.T) {
	bg := scene.NewBackgroundLayer(solidSource(t, 16, 16, color.RGBA{A: 0xFF}))
	content := scene.NewScene()

	visible := scene.NewNode()
	visible.SetVisible(true)
	visible.SetWorldTransform(scene.Translate(4, 4, 0))
	dVisible := &markDrawable{}
	visible.SetDrawable(dVisible)

	hidden := scene.NewNode()
	dHidden := &markDrawable{}
	hidden.SetDrawable(dHidden)

	content.Add(visible)
	content.Add(hidden)

	r, err := NewSoftwareRenderer(16, 16)
	if err != nil {
		t.Fatalf("NewSoftwareRenderer: %v", err)
	}
	if err := r.Render(bg, content, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if dVisible.calls != 1 {
		t.Errorf("visible drawable calls = %d, want 1", dVisible.calls)
	}
	if dHidden.calls != 0 {
		t.Errorf("hidden drawable calls = %d, want 0", dHidden.calls)
	}
}

func TestRenderInvisibleParentHidesSubtree(t *testing.T) {
	bg := scene.NewBackgroundLayer(solidSource(t, 16, 16, color.RGBA{A: 0xFF}))
	content := scene.NewScene()

	parent := scene.NewNode()
	child := scene.NewNode()
	child.SetVisible(true)
	dChild := &markDrawable{}
	child.SetDrawable(dChild)
	parent.AddChild(child)
	content.Add(parent)

	r, err := NewSoftwareRenderer(16, 16)
	if err != nil {
		t.Fatalf("NewSoftwareRenderer: %v", err)
	}
	if err := r.Render(bg, content, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if dChild.calls != 0 {
		t.Errorf("child of invisible parent drawn %d times, want 0", dChild.calls)
	}
}

func TestRenderDrawOrder(t *testing.T) {
	bg := scene.NewBackgroundLayer(solidSource(t, 16, 16, color.RGBA{A: 0xFF}))
	content := scene.NewScene()
	var log []string

	parent := scene.NewNode()
	parent.SetVisible(true)
	parent.SetDrawable(&markDrawable{log: &log, name: "parent"})
	child := scene.NewNode()
	child.SetVisible(true)
	child.SetDrawable(&markDrawable{log: &log, name: "child"})
	parent.AddChild(child)

	second := scene.NewNode()
	second.SetVisible(true)
	second.SetDrawable(&markDrawable{log: &log, name: "second"})

	content.Add(parent)
	content.Add(second)

	r, err := NewSoftwareRenderer(16, 16)
	if err != nil {
		t.Fatalf("NewSoftwareRenderer: %v", err)
	}
	if err := r.Render(bg, content, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []string{"parent", "child", "second"}
	if len(log) != len(want) {
		t.Fatalf("draw log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("draw log = %v, want %v", log, want)
		}
	}
}

func TestFlushIsNoOp(t *testing.T) {
	r, err := NewSoftwareRenderer(8, 8)
	if err != nil {
		t.Fatalf("NewSoftwareRenderer: %v", err)
	}
	if err := r.Flush(); err != nil {
		t.Errorf("Flush: %v", err)
	}
}
