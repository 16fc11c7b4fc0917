package tinsel

import (
	"testing"

	"github.com/google/uuid"
)

// addTestPhoto registers a bare photo particle, bypassing the capture
// pipeline.
func addTestPhoto(reg *Registry) *Particle {
	p := &Particle{
		Node:  newNode("photo_test"),
		Kind:  KindPhoto,
		Photo: &PhotoData{ID: uuid.New()},
	}
	reg.Add(p)
	return p
}

func newTestDirector() (*Director, *Config) {
	cfg := testConfig()
	return NewDirector(&cfg), &cfg
}

func TestDirectorStartsLoading(t *testing.T) {
	d, _ := newTestDirector()
	if d.Mode() != ModeLoading {
		t.Errorf("initial mode = %v, want loading", d.Mode())
	}
}

func TestDirectorModeGestures(t *testing.T) {
	d, _ := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(1)

	cases := []struct {
		sym  Symbol
		want Mode
	}{
		{SymbolOpenPalm, ModeScatter},
		{SymbolFist, ModeTree},
		{SymbolThumbsUp, ModeText},
		{SymbolOpenPalm, ModeScatter},
	}
	for _, tc := range cases {
		d.Apply(tc.sym, reg, rng)
		if d.Mode() != tc.want {
			t.Errorf("after %v: mode = %v, want %v", tc.sym, d.Mode(), tc.want)
		}
	}
}

func TestDirectorModeGestureIdempotent(t *testing.T) {
	d, _ := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(1)

	for i := 0; i < 10; i++ {
		d.Apply(SymbolFist, reg, rng)
	}
	if d.Mode() != ModeTree {
		t.Errorf("mode = %v, want tree", d.Mode())
	}
}

func TestPinchHoldEngagesZoom(t *testing.T) {
	d, cfg := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(2)
	photo := addTestPhoto(reg)
	d.SetMode(ModeTree)

	for i := 0; i < cfg.PinchHoldFrames; i++ {
		d.Apply(SymbolPinch, reg, rng)
		if d.Zoomed() != nil {
			t.Fatalf("zoom engaged on frame %d, want only after %d", i+1, cfg.PinchHoldFrames)
		}
	}
	d.Apply(SymbolPinch, reg, rng)
	if d.Zoomed() != photo {
		t.Fatal("zoom not engaged after hold threshold")
	}
}

func TestPinchHoldWithoutPhotos(t *testing.T) {
	d, cfg := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(3)
	d.SetMode(ModeTree)

	// With no photos the counter keeps climbing past the threshold without
	// locking anything, and a photo arriving later locks on the next frame.
	for i := 0; i < cfg.PinchHoldFrames*3; i++ {
		d.Apply(SymbolPinch, reg, rng)
	}
	if d.Zoomed() != nil {
		t.Fatal("zoomed a photo that does not exist")
	}
	photo := addTestPhoto(reg)
	d.Apply(SymbolPinch, reg, rng)
	if d.Zoomed() != photo {
		t.Error("zoom did not engage once a photo existed")
	}
}

func TestZoomDoesNotRetarget(t *testing.T) {
	d, cfg := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(4)
	first := addTestPhoto(reg)
	addTestPhoto(reg)
	d.SetMode(ModeTree)

	for i := 0; i <= cfg.PinchHoldFrames; i++ {
		d.Apply(SymbolPinch, reg, rng)
	}
	locked := d.Zoomed()
	if locked == nil {
		t.Fatal("zoom not engaged")
	}
	// Continuing the pinch must not re-roll the locked photo.
	for i := 0; i < 30; i++ {
		d.Apply(SymbolPinch, reg, rng)
		if d.Zoomed() != locked {
			t.Fatal("zoom retargeted while held")
		}
	}
	_ = first
}

func TestHoldCountersResetOnGestureBreak(t *testing.T) {
	d, cfg := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(5)
	addTestPhoto(reg)
	d.SetMode(ModeTree)

	// One frame short, a single break, then one frame short again: the
	// threshold is never crossed.
	for i := 0; i < cfg.PinchHoldFrames; i++ {
		d.Apply(SymbolPinch, reg, rng)
	}
	d.Apply(SymbolNone, reg, rng)
	for i := 0; i < cfg.PinchHoldFrames; i++ {
		d.Apply(SymbolPinch, reg, rng)
	}
	if d.Zoomed() != nil {
		t.Error("zoom engaged despite hold break")
	}
}

func TestLShapeHoldFiresOnce(t *testing.T) {
	d, cfg := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(6)
	d.SetMode(ModeTree)

	fired := 0
	d.OnCapture = func() { fired++ }

	for i := 0; i < cfg.LShapeHoldFrames; i++ {
		d.Apply(SymbolLShape, reg, rng)
		if fired != 0 {
			t.Fatalf("capture fired on frame %d, want only after %d", i+1, cfg.LShapeHoldFrames)
		}
	}
	d.Apply(SymbolLShape, reg, rng)
	if fired != 1 {
		t.Fatalf("fired = %d after crossing threshold, want 1", fired)
	}
	// Holding longer must not retrigger.
	for i := 0; i < cfg.LShapeHoldFrames*2; i++ {
		d.Apply(SymbolLShape, reg, rng)
	}
	if fired != 1 {
		t.Errorf("fired = %d while held, want 1", fired)
	}
}

func TestLShapeRearmsAfterBreak(t *testing.T) {
	d, cfg := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(7)
	d.SetMode(ModeTree)

	fired := 0
	d.OnCapture = func() { fired++ }

	hold := func() {
		for i := 0; i <= cfg.LShapeHoldFrames; i++ {
			d.Apply(SymbolLShape, reg, rng)
		}
	}
	hold()
	d.Apply(SymbolNone, reg, rng)
	hold()
	if fired != 2 {
		t.Errorf("fired = %d after two separate holds, want 2", fired)
	}
}

func TestPinchAndLShapeCountersExclusive(t *testing.T) {
	d, cfg := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(8)
	addTestPhoto(reg)
	d.SetMode(ModeTree)

	fired := 0
	d.OnCapture = func() { fired++ }

	// Alternating the two hold gestures resets the other's counter each
	// frame, so neither threshold is ever reached.
	for i := 0; i < (cfg.PinchHoldFrames+cfg.LShapeHoldFrames)*4; i++ {
		if i%2 == 0 {
			d.Apply(SymbolPinch, reg, rng)
		} else {
			d.Apply(SymbolLShape, reg, rng)
		}
	}
	if d.Zoomed() != nil {
		t.Error("zoom engaged from alternating gestures")
	}
	if fired != 0 {
		t.Errorf("fired = %d from alternating gestures, want 0", fired)
	}
}

func TestSetModeClearsZoomAndHolds(t *testing.T) {
	d, cfg := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(9)
	addTestPhoto(reg)
	d.SetMode(ModeTree)

	for i := 0; i <= cfg.PinchHoldFrames; i++ {
		d.Apply(SymbolPinch, reg, rng)
	}
	if d.Zoomed() == nil {
		t.Fatal("zoom not engaged")
	}
	d.Apply(SymbolFist, reg, rng)
	if d.Zoomed() != nil {
		t.Error("zoom survived a mode change")
	}
	if d.HoldProgress() != 0 {
		t.Errorf("HoldProgress = %f after mode change, want 0", d.HoldProgress())
	}
}

func TestHoldProgress(t *testing.T) {
	d, cfg := newTestDirector()
	reg := NewRegistry(0)
	rng := testRNG(10)
	d.SetMode(ModeTree)

	if d.HoldProgress() != 0 {
		t.Errorf("initial HoldProgress = %f, want 0", d.HoldProgress())
	}
	for i := 0; i < cfg.LShapeHoldFrames/2; i++ {
		d.Apply(SymbolLShape, reg, rng)
	}
	p := d.HoldProgress()
	if p <= 0 || p >= 100 {
		t.Errorf("mid-hold HoldProgress = %f, want within (0, 100)", p)
	}
	for i := 0; i < cfg.LShapeHoldFrames*2; i++ {
		d.Apply(SymbolLShape, reg, rng)
	}
	if d.HoldProgress() != 100 {
		t.Errorf("over-hold HoldProgress = %f, want clamped to 100", d.HoldProgress())
	}
}
