// Package tinsel is an interactive 3D holiday scene for [Ebitengine]: a
// particle Christmas tree steered by webcam hand gestures, with a photo
// booth that snapshots the camera feed onto a polaroid card floating in the
// scene.
//
// The core of the package is the particle choreography: several hundred
// animated objects, each with three immutable target positions (scattered
// cloud, tree silhouette, greeting-text glyph), continuously interpolated
// toward whichever formation the current scene mode selects. Modes switch on
// classified hand gestures (open palm scatters, a fist forms the tree, a
// thumbs-up spells the greeting), while a pinch held for a few frames zooms
// a random photo and an L-shape held against a progress ring triggers the
// photo countdown.
//
// # Quick start
//
//	scene, err := tinsel.NewScene(tinsel.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene.FinishLoading()
//	tinsel.Run(scene, tinsel.RunConfig{Title: "Photo Booth", Width: 960, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call [Scene.Infer],
// [Scene.Update], and [Scene.Draw] per frame.
//
// # Collaborators
//
// The camera feed and the hand-landmark inference engine are external
// collaborators behind the [FrameSource] and [HandTracker] interfaces. The
// webcam sub-module provides a gocv-backed FrameSource; any engine that
// produces MediaPipe-style 21-point normalized landmarks can drive the
// [Classifier]. When neither is available the scene still runs: call
// [Scene.DisableGestures] and it settles into the tree formation, with
// [Scene.TakePhoto] as the manual trigger.
//
// # Signals
//
// UIs observe the scene through [Scene.Signals] (mode, capture phase,
// countdown, gesture, hold progress, status) or by attaching an [EventStore]
// for push-style updates; the ecs sub-module bridges events to [Donburi].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package tinsel
