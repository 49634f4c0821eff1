// Package arscene adapts an ARToolKit-style marker-tracking controller
// to a retained 3D scene graph.
//
// # Overview
//
// The adapter builds a video-background layer and an overlay scene
// sharing one camera projection frozen to the controller's calibration,
// then routes marker detection events into scene-node world transforms
// and visibility flags. Pose estimation, calibration, and detection
// belong to the external controller; the adapter only glues it to the
// scene graph.
//
// # Quick Start
//
//	src, _ := capture.NewGstSource(capture.DefaultGstConfig())
//	ar, err := arscene.New(tracker, arscene.WithVideoSource(src))
//	if err != nil {
//		// ...
//	}
//
//	cube, _ := ar.NewPatternMarkerNode(5, 1)
//	cube.SetDrawable(myCube)
//	ar.Scene().Add(cube.Node)
//
//	// Once per animation frame:
//	ar.Process()
//	ar.RenderOn(renderer)
//
// # Per-frame contract
//
// Process hides every registered node, then hands the current video
// frame to the controller, which synchronously re-fires detection
// events for the markers it sees. Exactly the nodes matched in this
// frame end the call visible; nothing carries over from the previous
// frame.
//
// # Concurrency
//
// The adapter is single-threaded and cooperative with the host's render
// loop: call Process once per animation frame from the render/UI
// goroutine. All event callbacks run synchronously inside that call.
package arscene
