package tinsel

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestScatterPointsWithinShell(t *testing.T) {
	rng := testRNG(3)
	pts := scatterPoints(rng, 500, 4.5, 8.0)
	if len(pts) != 500 {
		t.Fatalf("len = %d, want 500", len(pts))
	}
	for i, p := range pts {
		r := p.Len()
		if r < 4.5-1e-9 || r > 8.0+1e-9 {
			t.Fatalf("point %d radius = %f, want within [4.5, 8.0]", i, r)
		}
	}
}

func TestScatterPointsCoverBothHemispheres(t *testing.T) {
	rng := testRNG(4)
	pts := scatterPoints(rng, 500, 4.5, 8.0)
	var above, below int
	for _, p := range pts {
		if p.Y() > 0 {
			above++
		} else {
			below++
		}
	}
	// Uniform angular sampling should not pile up on one pole.
	if above < 150 || below < 150 {
		t.Errorf("hemisphere split %d/%d, want roughly even", above, below)
	}
}

func TestTreePointsApexPinned(t *testing.T) {
	cfg := testConfig()
	rng := testRNG(5)
	pts := treePoints(rng, 50, &cfg)
	want := mgl64.Vec3{0, cfg.TreeHeight / 2, 0}
	if pts[0] != want {
		t.Errorf("point 0 = %v, want apex %v", pts[0], want)
	}
}

func TestTreePointsWithinCone(t *testing.T) {
	cfg := testConfig()
	rng := testRNG(6)
	pts := treePoints(rng, 400, &cfg)
	h := cfg.TreeHeight
	for i, p := range pts[1:] {
		if p.Y() < -h/2-1e-9 || p.Y() > h/2+1e-9 {
			t.Fatalf("point %d y = %f, want within [%f, %f]", i+1, p.Y(), -h/2, h/2)
		}
		// radius at this height, plus the core offset allowance
		f := (p.Y() + h/2) / h
		maxR := cfg.TreeCoreOffset + cfg.TreeRadius*(1-f)
		r := math.Hypot(p.X(), p.Z())
		if r > maxR+1e-9 {
			t.Fatalf("point %d radius = %f at f=%f, want <= %f", i+1, r, f, maxR)
		}
	}
}

func TestTreeSurfaceSampleBounds(t *testing.T) {
	cfg := testConfig()
	rng := testRNG(7)
	for i := 0; i < 200; i++ {
		p, yaw := treeSurfaceSample(rng, &cfg)
		h := cfg.TreeHeight
		f := (p.Y() + h/2) / h
		if f < 0.15-1e-9 || f > 0.80+1e-9 {
			t.Fatalf("sample %d height fraction = %f, want within [0.15, 0.80]", i, f)
		}
		// the outward yaw must point away from the trunk at the sample's azimuth
		phi := math.Atan2(p.Z(), p.X())
		if math.Abs(wrapAngle(yaw-(math.Pi/2-phi))) > 1e-9 {
			t.Fatalf("sample %d yaw = %f, want %f", i, yaw, math.Pi/2-phi)
		}
	}
}

func TestShuffleVec3IsPermutation(t *testing.T) {
	rng := testRNG(8)
	pts := make([]mgl64.Vec3, 64)
	for i := range pts {
		pts[i] = mgl64.Vec3{float64(i), 0, 0}
	}
	shuffled := append([]mgl64.Vec3(nil), pts...)
	shuffleVec3(rng, shuffled)

	seen := make(map[float64]bool, len(shuffled))
	for _, p := range shuffled {
		seen[p.X()] = true
	}
	if len(seen) != len(pts) {
		t.Fatalf("shuffle lost points: %d unique, want %d", len(seen), len(pts))
	}
	moved := 0
	for i := range pts {
		if pts[i] != shuffled[i] {
			moved++
		}
	}
	if moved == 0 {
		t.Error("shuffle left every point in place")
	}
}

func TestGlyphAllocatorExhaustion(t *testing.T) {
	rng := testRNG(9)
	pts := []mgl64.Vec3{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	a := newGlyphAllocator(rng, pts)

	if a.Remaining() != 3 {
		t.Fatalf("Remaining = %d, want 3", a.Remaining())
	}
	seen := make(map[float64]bool)
	for i := 0; i < 3; i++ {
		seen[a.Next().X()] = true
	}
	if len(seen) != 3 {
		t.Errorf("allocator repeated a point: %d unique, want 3", len(seen))
	}
	if a.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", a.Remaining())
	}
	// exhausted: every further call returns the origin
	for i := 0; i < 3; i++ {
		if got := a.Next(); got != (mgl64.Vec3{}) {
			t.Fatalf("Next past exhaustion = %v, want origin", got)
		}
	}
}

func TestGlyphAllocatorOrderVariesBySeed(t *testing.T) {
	pts := func() []mgl64.Vec3 {
		out := make([]mgl64.Vec3, 32)
		for i := range out {
			out[i] = mgl64.Vec3{float64(i), 0, 0}
		}
		return out
	}
	a := newGlyphAllocator(testRNG(1), pts())
	b := newGlyphAllocator(testRNG(2), pts())

	same := true
	for i := 0; i < 32; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	if same {
		t.Error("two seeds produced identical allocation order")
	}
}

func TestGlyphPointsProducesText(t *testing.T) {
	cfg := testConfig()
	rng := testRNG(10)
	pts, err := glyphPoints(rng, "HI", &cfg)
	if err != nil {
		t.Fatalf("glyphPoints: %v", err)
	}
	if len(pts) == 0 {
		t.Fatal("no glyph points for non-empty message")
	}
	for i, p := range pts {
		if math.Abs(p.Z()) > cfg.GlyphDepthJitter/2+1e-9 {
			t.Fatalf("point %d z = %f, want within ±%f", i, p.Z(), cfg.GlyphDepthJitter/2)
		}
	}
	// the bitmap is centered before scaling, so the cloud straddles x=0
	var left, right bool
	for _, p := range pts {
		if p.X() < 0 {
			left = true
		}
		if p.X() > 0 {
			right = true
		}
	}
	if !left || !right {
		t.Error("glyph points not centered around x=0")
	}
}

func TestGlyphPointsEmptyMessage(t *testing.T) {
	cfg := testConfig()
	pts, err := glyphPoints(testRNG(11), "", &cfg)
	if err != nil {
		t.Fatalf("glyphPoints: %v", err)
	}
	if pts != nil {
		t.Errorf("points for empty message = %v, want nil", pts)
	}
}
