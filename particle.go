package tinsel

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/tanema/gween"
)

// Kind distinguishes particle behavior in the animation loop.
type Kind uint8

const (
	KindOrnament Kind = iota
	KindStarOrnament
	KindLight
	KindPhoto
)

// Particle is one animated scene object: a renderable node plus its three
// mode-specific target positions and constant per-particle animation
// parameters. Targets are assigned once at creation and never mutated; only
// the node's live transform changes per frame.
type Particle struct {
	Node *Node
	Kind Kind

	// Steady-state targets, one per interactive mode.
	Tree    mgl64.Vec3
	Scatter mgl64.Vec3
	Text    mgl64.Vec3

	// Spin is the constant per-axis rotation rate in radians per second.
	Spin mgl64.Vec3

	// treeYaw orients photo cards outward on the cone surface; zero for
	// round sprites, whose yaw doesn't read visually.
	treeYaw float64

	// Twinkle parameters; only meaningful for KindLight.
	TwinklePhase float64
	TwinkleSpeed float64

	// Photo holds photo-only state; non-nil iff Kind == KindPhoto.
	Photo *PhotoData
}

// PhotoData is the kind-specific state of a photo particle.
type PhotoData struct {
	// ID identifies the photo in signals and events.
	ID uuid.UUID
	// CapturedAt is the scene time the frame was grabbed.
	CapturedAt float64
	// preview holds the card at the camera anchor until the capture
	// machine releases it in PhaseFlying.
	preview bool
	// pop animates the scale pop-in when the card is released.
	pop *gween.Tween
}

// IsPhoto reports whether p is a photo particle.
func (p *Particle) IsPhoto() bool {
	return p.Kind == KindPhoto
}

// targetFor returns the particle's settle position for the given mode.
// ModeLoading shares the scatter cloud so particles drift while assets load.
func (p *Particle) targetFor(m Mode) mgl64.Vec3 {
	switch m {
	case ModeTree:
		return p.Tree
	case ModeText:
		return p.Text
	default:
		return p.Scatter
	}
}

// Registry owns every particle in the scene. Non-photo particles are created
// once at construction and live for the scene's lifetime; photos are
// appended by the capture pipeline and, unless a PhotoCap is set, never
// removed. Single writer, single reader, one logical thread.
type Registry struct {
	particles []*Particle
	photos    []*Particle
}

// NewRegistry returns an empty registry with capacity for n fixed particles.
func NewRegistry(n int) *Registry {
	return &Registry{particles: make([]*Particle, 0, n)}
}

// Add appends a particle. Photo particles are also tracked in the photo
// sublist used by the pinch-to-zoom picker.
func (r *Registry) Add(p *Particle) {
	r.particles = append(r.particles, p)
	if p.IsPhoto() {
		r.photos = append(r.photos, p)
	}
}

// All returns the live particle slice. Callers must not hold it across an
// Add.
func (r *Registry) All() []*Particle {
	return r.particles
}

// Photos returns the photo particles in capture order.
func (r *Registry) Photos() []*Particle {
	return r.photos
}

// Len returns the total particle count.
func (r *Registry) Len() int {
	return len(r.particles)
}

// RandomPhoto returns a uniformly random photo particle, or nil when none
// exist.
func (r *Registry) RandomPhoto(rng *rand.Rand) *Particle {
	if len(r.photos) == 0 {
		return nil
	}
	return r.photos[rng.IntN(len(r.photos))]
}

// EvictOldest removes photo particles beyond cap, oldest first, disposing
// their nodes. A cap of zero or less means unbounded. Returns the evicted
// particles.
func (r *Registry) EvictOldest(cap int) []*Particle {
	if cap <= 0 || len(r.photos) <= cap {
		return nil
	}
	evicted := r.photos[:len(r.photos)-cap]
	r.photos = append([]*Particle(nil), r.photos[len(r.photos)-cap:]...)
	for _, p := range evicted {
		p.Node.Dispose()
	}
	// compact the main slice in place
	kept := r.particles[:0]
	for _, p := range r.particles {
		if !p.Node.IsDisposed() {
			kept = append(kept, p)
		}
	}
	r.particles = kept
	return evicted
}
