package tinsel

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// scatterPoints samples n points uniformly on a spherical shell between the
// inner and outer radii. Polar angle comes from arccos of a uniform variable
// in [-1, 1], which keeps the angular distribution uniform instead of
// clustering at the poles.
func scatterPoints(rng *rand.Rand, n int, inner, outer float64) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, n)
	for i := range pts {
		r := inner + rng.Float64()*(outer-inner)
		theta := math.Acos(2*rng.Float64() - 1)
		phi := rng.Float64() * 2 * math.Pi
		sinT := math.Sin(theta)
		pts[i] = mgl64.Vec3{
			r * sinT * math.Cos(phi),
			r * math.Cos(theta),
			r * sinT * math.Sin(phi),
		}
	}
	return pts
}

// treePoints samples n points inside a cone with its apex up at y=height/2
// and its base at y=-height/2. Height uses a power-law bias so more points
// land near the base; radius uses square-root (area-uniform) disk sampling
// plus a small outward offset so nothing sits exactly on the trunk axis.
// Index 0 is pinned to the apex for the star topper.
func treePoints(rng *rand.Rand, n int, cfg *Config) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, n)
	h := cfg.TreeHeight
	if n > 0 {
		pts[0] = mgl64.Vec3{0, h / 2, 0}
	}
	for i := 1; i < n; i++ {
		pts[i] = treeSample(rng, cfg)
	}
	return pts
}

// treeSample draws one point inside the tree cone. Also used by the capture
// pipeline to place new photo cards.
func treeSample(rng *rand.Rand, cfg *Config) mgl64.Vec3 {
	h := cfg.TreeHeight
	// fraction of height measured from the base; bias toward the base.
	f := math.Pow(rng.Float64(), cfg.TreeHeightBias)
	y := -h/2 + f*h
	// cone radius shrinks linearly toward the apex
	maxR := cfg.TreeRadius * (1 - f)
	r := cfg.TreeCoreOffset + math.Sqrt(rng.Float64())*maxR
	phi := rng.Float64() * 2 * math.Pi
	return mgl64.Vec3{r * math.Cos(phi), y, r * math.Sin(phi)}
}

// treeSurfaceSample draws a point on the cone's outer surface along with the
// outward-facing yaw at that point. Photo cards hang on the surface facing
// out rather than being buried inside the cone.
func treeSurfaceSample(rng *rand.Rand, cfg *Config) (mgl64.Vec3, float64) {
	h := cfg.TreeHeight
	// keep cards off the apex and the very bottom edge
	f := 0.15 + rng.Float64()*0.65
	y := -h/2 + f*h
	r := cfg.TreeRadius * (1 - f)
	if r < cfg.TreeCoreOffset {
		r = cfg.TreeCoreOffset
	}
	phi := rng.Float64() * 2 * math.Pi
	p := mgl64.Vec3{r * math.Cos(phi), y, r * math.Sin(phi)}
	// outward yaw: a card at azimuth phi faces away from the trunk
	return p, math.Pi/2 - phi
}

// shuffleVec3 is an in-place Fisher–Yates shuffle.
func shuffleVec3(rng *rand.Rand, pts []mgl64.Vec3) {
	for i := len(pts) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// glyphAllocator hands out shuffled glyph points one per particle via a
// monotonically advancing index, so particle→pixel assignment is randomized
// rather than scan-order and the text materializes from noise instead of
// sweeping left to right. When the points run out, Next returns the origin.
type glyphAllocator struct {
	points []mgl64.Vec3
	next   int
}

// newGlyphAllocator shuffles pts and returns an allocator over them.
func newGlyphAllocator(rng *rand.Rand, pts []mgl64.Vec3) *glyphAllocator {
	shuffleVec3(rng, pts)
	return &glyphAllocator{points: pts}
}

// Next returns the next unused glyph point, or the origin when exhausted.
func (a *glyphAllocator) Next() mgl64.Vec3 {
	if a.next >= len(a.points) {
		return mgl64.Vec3{}
	}
	p := a.points[a.next]
	a.next++
	return p
}

// Remaining reports how many glyph points are still unassigned.
func (a *glyphAllocator) Remaining() int {
	return len(a.points) - a.next
}
