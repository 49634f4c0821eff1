package arscene

import (
	"errors"
	"fmt"
	"math"

	"github.com/rm8x/arscene/capture"
	"github.com/rm8x/arscene/render"
	"github.com/rm8x/arscene/scene"
)

// Adapter errors.
var (
	// ErrNilTracker is returned by New when no tracker is supplied.
	ErrNilTracker = errors.New("arscene: tracker is nil")

	// ErrNoVideoSource is returned by New when neither an option nor
	// the tracker provides a video source.
	ErrNoVideoSource = errors.New("arscene: no video source")

	// ErrInvalidVideoSize is returned by New when the video source
	// reports non-positive dimensions.
	ErrInvalidVideoSize = errors.New("arscene: video source has invalid size")
)

// DefaultMarkerWidth is the physical marker width used when a factory
// is called with a non-positive width.
const DefaultMarkerWidth = 1.0

// Adapter binds a Tracker to a scene graph. It owns the marker
// registries, the overlay scene, the background layer, and the camera
// with its frozen projection. One adapter serves one tracker instance;
// multiple adapters can coexist since no state is shared between them.
//
// Adapter implements EventSink; the tracker dispatches detection events
// into it synchronously during Process.
type Adapter struct {
	tracker Tracker
	video   capture.VideoSource

	cam        *scene.Camera
	content    *scene.Scene
	background *scene.BackgroundLayer

	surfaceW int
	surfaceH int

	pattern map[int]*MarkerNode
	barcode map[int]*MarkerNode
	nft     map[int]*MarkerNode
	multi   map[int]*MultiMarkerNode
}

// New constructs an adapter for the given tracker.
//
// The camera projection is frozen to tracker.CameraProjection() and
// never recomputed. The surface size is taken from the video source's
// pixel dimensions; a portrait source rotates the background layer a
// quarter turn. Event routing is installed here, once — the marker
// factories have no lazy setup.
func New(tracker Tracker, opts ...Option) (*Adapter, error) {
	if tracker == nil {
		return nil, ErrNilTracker
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	video := o.video
	if video == nil {
		if vs, ok := tracker.(VideoSourcer); ok {
			video = vs.VideoSource()
		}
	}
	if video == nil {
		return nil, ErrNoVideoSource
	}

	w, h := video.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidVideoSize, w, h)
	}

	background := scene.NewBackgroundLayer(video)
	portrait := video.Orientation() == capture.Portrait
	if o.forcePortrait {
		portrait = true
	}
	if o.forceLandscape {
		portrait = false
	}
	if portrait {
		background.SetRotation(math.Pi / 2)
	}

	a := &Adapter{
		tracker:    tracker,
		video:      video,
		cam:        scene.NewCamera(tracker.CameraProjection()),
		content:    scene.NewScene(),
		background: background,
		surfaceW:   w,
		surfaceH:   h,
		pattern:    make(map[int]*MarkerNode),
		barcode:    make(map[int]*MarkerNode),
		nft:        make(map[int]*MarkerNode),
		multi:      make(map[int]*MultiMarkerNode),
	}

	Logger().Debug("arscene: adapter created",
		"surface", fmt.Sprintf("%dx%d", w, h),
		"portrait", portrait,
	)
	return a, nil
}

// Scene returns the overlay scene the host inserts marker content into.
func (a *Adapter) Scene() *scene.Scene { return a.content }

// Camera returns the camera with the frozen projection.
func (a *Adapter) Camera() *scene.Camera { return a.cam }

// Background returns the video background layer.
func (a *Adapter) Background() *scene.BackgroundLayer { return a.background }

// Video returns the adapter's video source.
func (a *Adapter) Video() capture.VideoSource { return a.video }

// SurfaceSize returns the rendering surface dimensions, taken from the
// video source at construction time.
func (a *Adapter) SurfaceSize() (width, height int) { return a.surfaceW, a.surfaceH }

// NewPatternMarkerNode registers a trained pattern marker and returns
// its scene node for the host to populate and insert into the scene.
//
// A non-positive width falls back to DefaultMarkerWidth. Registering an
// id that already has a node replaces the old entry silently; the old
// node stops receiving pose updates but stays wherever the host put it.
func (a *Adapter) NewPatternMarkerNode(id int, width float64) (*MarkerNode, error) {
	if width <= 0 {
		width = DefaultMarkerWidth
	}
	handle, err := a.tracker.AddPatternMarker(id, width)
	if err != nil {
		return nil, fmt.Errorf("arscene: add pattern marker %d: %w", id, err)
	}
	n := &MarkerNode{Node: scene.NewNode(), handle: handle}
	a.pattern[id] = n
	return n, nil
}

// NewBarcodeMarkerNode registers a matrix-code marker. Same contract as
// NewPatternMarkerNode, keyed by the marker's matrix id.
func (a *Adapter) NewBarcodeMarkerNode(id int, width float64) (*MarkerNode, error) {
	if width <= 0 {
		width = DefaultMarkerWidth
	}
	handle, err := a.tracker.AddBarcodeMarker(id, width)
	if err != nil {
		return nil, fmt.Errorf("arscene: add barcode marker %d: %w", id, err)
	}
	n := &MarkerNode{Node: scene.NewNode(), handle: handle}
	a.barcode[id] = n
	return n, nil
}

// NewNFTMarkerNode registers a natural-feature-tracked marker. Same
// contract as NewPatternMarkerNode.
func (a *Adapter) NewNFTMarkerNode(id int, width float64) (*MarkerNode, error) {
	if width <= 0 {
		width = DefaultMarkerWidth
	}
	handle, err := a.tracker.AddNFTMarker(id, width)
	if err != nil {
		return nil, fmt.Errorf("arscene: add NFT marker %d: %w", id, err)
	}
	n := &MarkerNode{Node: scene.NewNode(), handle: handle}
	a.nft[id] = n
	return n, nil
}

// NewMultiMarkerNode registers a multi-marker set and returns its
// parent node with an empty sub-node list. The host appends one
// sub-node per component marker with AddSub, in component order.
func (a *Adapter) NewMultiMarkerNode(id int) (*MultiMarkerNode, error) {
	handle, err := a.tracker.AddMultiMarker(id)
	if err != nil {
		return nil, fmt.Errorf("arscene: add multi marker %d: %w", id, err)
	}
	n := &MultiMarkerNode{Node: scene.NewNode(), handle: handle}
	a.multi[id] = n
	return n, nil
}

// Process runs one tracking step: every registered node and sub-node is
// hidden, then the current video frame goes to the tracker, whose
// synchronous detection events re-show exactly the markers matched in
// this frame.
//
// The clear-then-set ordering is the adapter's one guarantee; it is
// what keeps a stale pose from surviving into a frame with no
// detection.
func (a *Adapter) Process() error {
	for _, n := range a.pattern {
		n.SetVisible(false)
	}
	for _, n := range a.barcode {
		n.SetVisible(false)
	}
	for _, n := range a.nft {
		n.SetVisible(false)
	}
	for _, m := range a.multi {
		m.SetVisible(false)
		for _, sub := range m.subs {
			sub.SetVisible(false)
		}
	}

	frame, err := a.video.Frame()
	if err != nil {
		return fmt.Errorf("arscene: acquire frame: %w", err)
	}
	if err := a.tracker.ProcessFrame(frame, a); err != nil {
		return fmt.Errorf("arscene: process frame: %w", err)
	}
	return nil
}

// RenderOn draws the current composition on the given renderer: the
// video background beneath the overlay scene. The adapter adds no
// transformation of its own.
func (a *Adapter) RenderOn(r render.Renderer) error {
	return r.Render(a.background, a.content, a.cam)
}

// OnMarker routes a pattern/barcode detection. The event is matched
// against the pattern registry by pattern id and against the barcode
// registry by matrix id, independently; an id with no registered node
// is ignored.
func (a *Adapter) OnMarker(ev MarkerEvent) {
	if n, ok := a.pattern[ev.Marker.IDPattern]; ok {
		n.SetWorldTransform(ev.Transform)
		n.SetVisible(true)
	}
	if n, ok := a.barcode[ev.Marker.IDMatrix]; ok {
		n.SetWorldTransform(ev.Transform)
		n.SetVisible(true)
	}
}

// OnNFTMarker routes an NFT detection.
func (a *Adapter) OnNFTMarker(ev NFTMarkerEvent) {
	n, ok := a.nft[ev.ID]
	if !ok {
		return
	}
	n.SetWorldTransform(ev.Transform)
	n.SetVisible(true)
}

// OnMultiMarker routes a multi-marker set detection to the parent node
// only; sub-nodes are driven by OnMultiMarkerSub.
func (a *Adapter) OnMultiMarker(ev MultiMarkerEvent) {
	n, ok := a.multi[ev.ID]
	if !ok {
		return
	}
	n.SetWorldTransform(ev.Transform)
	n.SetVisible(true)
}

// OnMultiMarkerSub routes one component of a multi-marker set. The
// transform is assigned whenever the slot exists; visibility follows
// the sign of the event's indicator (negative means the component is
// not currently matched).
func (a *Adapter) OnMultiMarkerSub(ev MultiMarkerSubEvent) {
	m, ok := a.multi[ev.MultiID]
	if !ok {
		return
	}
	sub := m.Sub(ev.Index)
	if sub == nil {
		return
	}
	sub.SetWorldTransform(ev.Transform)
	sub.SetVisible(ev.Visible >= 0)
}

// Adapter receives tracker events directly.
var _ EventSink = (*Adapter)(nil)
