package capture

import (
	"fmt"
	"image"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
)

// GstConfig configures a GStreamer video source.
type GstConfig struct {
	// Device is the capture device path (e.g. /dev/video0). Ignored
	// when RTSPURL is set.
	Device string

	// RTSPURL selects a network stream instead of a local device.
	RTSPURL string

	// Width and Height are the output frame dimensions. The pipeline
	// scales whatever the device delivers to this size.
	Width  int
	Height int

	// FPS caps the frame rate. Zero means 30.
	FPS int
}

// DefaultGstConfig returns a GstConfig with sensible default values.
func DefaultGstConfig() GstConfig {
	return GstConfig{
		Device: "/dev/video0",
		Width:  640,
		Height: 480,
		FPS:    30,
	}
}

// GstSource captures live video through a GStreamer pipeline ending in
// an appsink configured to keep only the latest frame:
//
//	v4l2src → videoconvert → videoscale → videorate → capsfilter → appsink
//
// For RTSP sources the head of the pipeline is
//
//	rtspsrc → rtph264depay → avdec_h264
//
// with the source's dynamic pad linked when it appears. Frame pulls the
// most recent sample, copies it out (GStreamer reuses the buffer), and
// converts it to an RGBA frame.
type GstSource struct {
	pipeline *gst.Pipeline
	sink     *app.Sink

	width  int
	height int

	// rgba is reused across Frame calls; frames handed out alias it.
	rgba   *image.RGBA
	closed bool
}

// NewGstSource builds and starts a capture pipeline for the given
// configuration.
func NewGstSource(cfg GstConfig) (*GstSource, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("capture: invalid frame size %dx%d", cfg.Width, cfg.Height)
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = 30
	}

	// Safe to call multiple times.
	gst.Init(nil)

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return nil, fmt.Errorf("capture: create pipeline: %w", err)
	}

	head, dynamic, err := buildSourceHead(cfg)
	if err != nil {
		return nil, err
	}

	converter, err := gst.NewElement("videoconvert")
	if err != nil {
		return nil, fmt.Errorf("capture: create videoconvert: %w", err)
	}
	converter.SetProperty("n-threads", 0) // auto-detect cores

	scaler, err := gst.NewElement("videoscale")
	if err != nil {
		return nil, fmt.Errorf("capture: create videoscale: %w", err)
	}

	videorate, err := gst.NewElement("videorate")
	if err != nil {
		return nil, fmt.Errorf("capture: create videorate: %w", err)
	}
	videorate.SetProperty("drop-only", true)
	videorate.SetProperty("skip-to-first", true)

	capsfilter, err := gst.NewElement("capsfilter")
	if err != nil {
		return nil, fmt.Errorf("capture: create capsfilter: %w", err)
	}
	capsStr := fmt.Sprintf("video/x-raw,format=RGBA,width=%d,height=%d,framerate=%d/1",
		cfg.Width, cfg.Height, fps)
	capsfilter.SetProperty("caps", gst.NewCapsFromString(capsStr))

	appsink, err := app.NewAppSink()
	if err != nil {
		return nil, fmt.Errorf("capture: create appsink: %w", err)
	}
	appsink.SetProperty("sync", false)    // real-time, no clock sync
	appsink.SetProperty("max-buffers", 1) // keep only the latest frame
	appsink.SetProperty("drop", true)

	elements := append(head, converter, scaler, videorate, capsfilter, appsink.Element)
	pipeline.AddMany(elements...)

	// A dynamic head (rtspsrc) links its first element when the pad
	// appears; everything downstream links statically.
	staticStart := 0
	if dynamic {
		staticStart = 1
	}
	if err := gst.ElementLinkMany(append(head[staticStart:], converter, scaler, videorate, capsfilter, appsink.Element)...); err != nil {
		return nil, fmt.Errorf("capture: link pipeline: %w", err)
	}
	if dynamic {
		src, next := head[0], head[1]
		src.Connect("pad-added", func(_ *gst.Element, pad *gst.Pad) {
			sinkPad := next.GetStaticPad("sink")
			if sinkPad == nil || sinkPad.IsLinked() {
				return
			}
			if ret := pad.Link(sinkPad); ret != gst.PadLinkOK {
				Logger().Warn("capture: failed to link dynamic pad", "result", ret)
			}
		})
	}

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		return nil, fmt.Errorf("capture: start pipeline: %w", err)
	}

	Logger().Debug("capture: gstreamer pipeline started",
		"caps", capsStr,
		"rtsp", cfg.RTSPURL != "",
	)

	return &GstSource{
		pipeline: pipeline,
		sink:     appsink,
		width:    cfg.Width,
		height:   cfg.Height,
		rgba:     image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
	}, nil
}

// buildSourceHead creates the source-side elements. The second return
// value reports whether the head starts with a dynamic-pad element.
func buildSourceHead(cfg GstConfig) ([]*gst.Element, bool, error) {
	if cfg.RTSPURL != "" {
		rtspsrc, err := gst.NewElement("rtspsrc")
		if err != nil {
			return nil, false, fmt.Errorf("capture: create rtspsrc: %w", err)
		}
		rtspsrc.SetProperty("location", cfg.RTSPURL)
		rtspsrc.SetProperty("protocols", 4) // TCP only
		rtspsrc.SetProperty("latency", 200)

		depay, err := gst.NewElement("rtph264depay")
		if err != nil {
			return nil, false, fmt.Errorf("capture: create rtph264depay: %w", err)
		}

		decoder, err := gst.NewElement("avdec_h264")
		if err != nil {
			return nil, false, fmt.Errorf("capture: create avdec_h264: %w", err)
		}
		decoder.SetProperty("max-threads", 0)

		return []*gst.Element{rtspsrc, depay, decoder}, true, nil
	}

	device := cfg.Device
	if device == "" {
		device = "/dev/video0"
	}
	v4l2src, err := gst.NewElement("v4l2src")
	if err != nil {
		return nil, false, fmt.Errorf("capture: create v4l2src: %w", err)
	}
	v4l2src.SetProperty("device", device)
	return []*gst.Element{v4l2src}, false, nil
}

// Frame pulls the most recent sample from the appsink. It blocks until
// a frame is available or the pipeline stops.
func (s *GstSource) Frame() (*Frame, error) {
	if s.closed {
		return nil, ErrSourceClosed
	}

	sample := s.sink.PullSample()
	if sample == nil {
		if s.sink.IsEOS() {
			return nil, ErrSourceClosed
		}
		return nil, ErrNoFrame
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		Logger().Warn("capture: sample without buffer, skipping frame")
		return nil, ErrNoFrame
	}

	mapInfo := buffer.Map(gst.MapRead)
	data := mapInfo.Bytes()
	if len(data) < len(s.rgba.Pix) {
		buffer.Unmap()
		Logger().Warn("capture: short buffer", "got", len(data), "want", len(s.rgba.Pix))
		return nil, ErrNoFrame
	}
	// Copy out: GStreamer reuses the buffer after Unmap.
	copy(s.rgba.Pix, data[:len(s.rgba.Pix)])
	buffer.Unmap()

	return &Frame{
		Image:       s.rgba,
		Orientation: s.Orientation(),
	}, nil
}

// Size returns the configured output frame dimensions.
func (s *GstSource) Size() (width, height int) { return s.width, s.height }

// Orientation derives the orientation from the output dimensions.
func (s *GstSource) Orientation() Orientation {
	return orientationOf(s.width, s.height)
}

// Close stops the pipeline. Frame returns ErrSourceClosed afterwards.
func (s *GstSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.pipeline.SetState(gst.StateNull); err != nil {
		return fmt.Errorf("capture: stop pipeline: %w", err)
	}
	return nil
}
