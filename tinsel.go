package tinsel

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied 8-bit color for submission to ebiten.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R*c.A, 0, 1) * 255),
		G: uint8(clamp(c.G*c.A, 0, 1) * 255),
		B: uint8(clamp(c.B*c.A, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// Range is a general-purpose min/max range.
// Used for per-particle spin rates, twinkle speeds, and snowfall velocities.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Mode selects which target set every particle moves toward.
// A single current value is read each frame by the animation loop and
// written only by the Director.
type Mode uint8

const (
	ModeLoading Mode = iota // pre-interactive bootstrap state
	ModeScatter             // loose spherical cloud
	ModeTree                // cone silhouette
	ModeText                // greeting-text glyph
)

// String returns the mode name for signals and debug output.
func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeScatter:
		return "scatter"
	case ModeTree:
		return "tree"
	case ModeText:
		return "text"
	default:
		return "unknown"
	}
}

// Phase is the capture sub-state-machine's current step. Phases advance
// strictly in declaration order and return to PhaseIdle after a cooldown.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhaseFlash
	PhaseDeveloping
	PhaseFlying
)

// String returns the phase name for signals and debug output.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseFlash:
		return "flash"
	case PhaseDeveloping:
		return "developing"
	case PhaseFlying:
		return "flying"
	default:
		return "unknown"
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpVec3 linearly interpolates each component of a toward b by t.
func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		lerp(a[0], b[0], t),
		lerp(a[1], b[1], t),
		lerp(a[2], b[2], t),
	}
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// wrapAngle normalizes an angle to (-π, π] so per-axis rotation lerps take
// the short way around.
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// lerpAngle interpolates angle a toward b by t along the shorter arc.
func lerpAngle(a, b, t float64) float64 {
	return a + wrapAngle(b-a)*t
}
