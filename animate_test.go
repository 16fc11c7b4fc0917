package tinsel

import (
	"math"
	"testing"
)

const frameDt = 1.0 / 60

// runFrames advances the scene by n 60 Hz frames.
func runFrames(s *Scene, n int) {
	for i := 0; i < n; i++ {
		s.Update(frameDt)
	}
}

func TestAnimateConvergesToTree(t *testing.T) {
	s, err := NewScene(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.FinishLoading()
	runFrames(s, 900)

	for i, p := range s.Registry().All() {
		if !vecNear(p.Node.Position, p.Tree, 1e-4) {
			t.Fatalf("particle %d at %v, want tree target %v", i, p.Node.Position, p.Tree)
		}
	}
}

func TestAnimateFollowsModeChange(t *testing.T) {
	s, err := NewScene(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.FinishLoading()
	runFrames(s, 120)

	hand, _ := SyntheticHand("open_palm", 0.5)
	s.Observe(hand)
	runFrames(s, 900)

	for i, p := range s.Registry().All() {
		if !vecNear(p.Node.Position, p.Scatter, 1e-4) {
			t.Fatalf("particle %d at %v, want scatter target %v", i, p.Node.Position, p.Scatter)
		}
	}
}

func TestGroupYawFollowsWrist(t *testing.T) {
	s, err := NewScene(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.FinishLoading()

	hand, _ := SyntheticHand("fist", 0.2)
	s.Observe(hand)
	s.Update(1.0)

	want := (0.5 - 0.2) * s.cfg.RotationGain
	if math.Abs(s.group.Yaw-want) > 1e-9 {
		t.Errorf("yaw = %f after 1s, want %f", s.group.Yaw, want)
	}
}

func TestRotationPersistsWhenHandLost(t *testing.T) {
	s, err := NewScene(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.FinishLoading()

	hand, _ := SyntheticHand("fist", 0.2)
	s.Observe(hand)
	s.Observe(nil) // hand lost; the last spin speed carries on
	before := s.group.Yaw
	s.Update(1.0)
	if s.group.Yaw == before {
		t.Error("rotation stopped the moment the hand was lost")
	}
}

func TestTextModeDampsRotation(t *testing.T) {
	s, err := NewScene(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.FinishLoading()

	hand, _ := SyntheticHand("thumbs_up", 0.2)
	s.Observe(hand)
	if s.director.Mode() != ModeText {
		t.Fatalf("mode = %v, want text", s.director.Mode())
	}
	s.Update(1.0)

	full := (0.5 - 0.2) * s.cfg.RotationGain
	want := full * s.cfg.TextRotationDamp
	if math.Abs(s.group.Yaw-want) > 1e-9 {
		t.Errorf("yaw = %f in text mode, want damped %f", s.group.Yaw, want)
	}
}

func TestZoomLockPullsPhotoToAnchor(t *testing.T) {
	s, err := NewScene(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.FinishLoading()
	photo := addTestPhoto(s.Registry())

	pinch, _ := SyntheticHand("pinch", 0.5)
	for i := 0; i <= s.cfg.PinchHoldFrames; i++ {
		s.Observe(pinch)
	}
	if s.director.Zoomed() != photo {
		t.Fatal("zoom lock not engaged")
	}

	runFrames(s, 900)
	want := s.group.WorldToLocal(s.cfg.ZoomPoint)
	if !vecNear(photo.Node.Position, want, 1e-4) {
		t.Errorf("zoomed card at %v, want anchor %v", photo.Node.Position, want)
	}
	if math.Abs(photo.Node.Scale-s.cfg.ZoomScale) > 1e-4 {
		t.Errorf("zoomed scale = %f, want %f", photo.Node.Scale, s.cfg.ZoomScale)
	}
}

func TestPhotoRelaxesAfterZoomRelease(t *testing.T) {
	s, err := NewScene(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.FinishLoading()
	photo := addTestPhoto(s.Registry())
	photo.treeYaw = 0.8

	pinch, _ := SyntheticHand("pinch", 0.5)
	for i := 0; i <= s.cfg.PinchHoldFrames; i++ {
		s.Observe(pinch)
	}
	runFrames(s, 300)
	if photo.Node.Scale < 1.5 {
		t.Fatalf("scale = %f while zoomed, want near %f", photo.Node.Scale, s.cfg.ZoomScale)
	}

	// a mode gesture releases the lock; the card settles back on the tree
	fist, _ := SyntheticHand("fist", 0.5)
	s.Observe(fist)
	if s.director.Zoomed() != nil {
		t.Fatal("zoom survived mode change")
	}
	runFrames(s, 900)
	if math.Abs(photo.Node.Scale-1) > 1e-4 {
		t.Errorf("scale = %f after release, want 1", photo.Node.Scale)
	}
	if math.Abs(wrapAngle(photo.Node.Rotation[1]-photo.treeYaw)) > 1e-3 {
		t.Errorf("yaw = %f after release, want treeYaw %f", photo.Node.Rotation[1], photo.treeYaw)
	}
	if !vecNear(photo.Node.Position, photo.Tree, 1e-3) {
		t.Errorf("card at %v, want tree target %v", photo.Node.Position, photo.Tree)
	}
}

func TestPreviewLockPinsCardToWorldAnchor(t *testing.T) {
	cfg := testConfig()
	cfg.PhotoSize = 32
	s, err := NewScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.SetFrameSource(&fakeFrames{})
	s.FinishLoading()

	if !s.TakePhoto() {
		t.Fatal("manual capture rejected")
	}
	// past the countdown, into developing
	runFrames(s, 3*60+10)
	preview := s.capture.Preview()
	if preview == nil {
		t.Fatalf("no preview particle (phase %v)", s.capture.Phase())
	}

	// spin the group underneath; the card must hold its world anchor
	s.group.Yaw = 0.9
	s.Update(frameDt)
	world := s.group.LocalToWorld(preview.Node.Position)
	if !vecNear(world, s.cfg.PreviewPoint, 1e-9) {
		t.Errorf("preview card at world %v, want %v", world, s.cfg.PreviewPoint)
	}
	face := s.group.FacingCamera()
	if preview.Node.Rotation != face {
		t.Errorf("preview rotation = %v, want %v", preview.Node.Rotation, face)
	}
}

func TestLightTwinkleStaysBounded(t *testing.T) {
	s, err := NewScene(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.FinishLoading()

	var light *Particle
	for _, p := range s.Registry().All() {
		if p.Kind == KindLight {
			light = p
			break
		}
	}
	if light == nil {
		t.Fatal("no light particle in scene")
	}

	for i := 0; i < 600; i++ {
		s.Update(frameDt)
		if light.Node.Emissive < 0.2-1e-9 || light.Node.Emissive > 1.0+1e-9 {
			t.Fatalf("emissive = %f, want within [0.2, 1.0]", light.Node.Emissive)
		}
		if light.Node.Scale < 0.75-1e-9 || light.Node.Scale > 1.25+1e-9 {
			t.Fatalf("scale = %f, want within [0.75, 1.25]", light.Node.Scale)
		}
	}
}

func TestFrameRateScalingConverges(t *testing.T) {
	// A 20 Hz host takes bigger interpolation steps but still settles on the
	// same targets.
	s, err := NewScene(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.FinishLoading()
	for i := 0; i < 400; i++ {
		s.Update(1.0 / 20)
	}
	for i, p := range s.Registry().All() {
		if !vecNear(p.Node.Position, p.Tree, 1e-4) {
			t.Fatalf("particle %d at %v, want tree target %v", i, p.Node.Position, p.Tree)
		}
	}
}
