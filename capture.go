package tinsel

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	xdraw "golang.org/x/image/draw"
)

// ErrNoFrame is returned by the photo pipeline when the frame source has no
// readable frame. The capture sequence continues; no particle is produced.
var ErrNoFrame = fmt.Errorf("tinsel: no camera frame available")

// photoCounter numbers photo nodes for debug output.
var photoCounter int

// Capture runs the photo-taking sequence: a strictly linear phase machine
// advanced by fire-once scheduler tasks, so teardown cancels every pending
// phase transition. One sequence at a time; re-triggering is rejected while
// any phase other than PhaseIdle is active or within the trigger cooldown.
type Capture struct {
	cfg    *Config
	sched  *scheduler
	group  *Group
	reg    *Registry
	rng    *rand.Rand
	frames FrameSource

	// glyphNext supplies the next free glyph point for a new photo's text
	// target.
	glyphNext func() mgl64.Vec3

	phase       Phase
	countdown   int
	lastTrigger float64
	lastDone    float64
	tasks       []*Task

	// preview is the in-flight photo particle, camera-locked until
	// PhaseFlying releases it.
	preview *Particle

	// lastImage is the most recent captured frame, shown by the 2D
	// developing overlay.
	lastImage *ebiten.Image

	flash      *gween.Tween
	flashAlpha float64

	// OnPhase fires on every phase transition. OnPhoto fires when a new
	// photo particle has been registered.
	OnPhase func(Phase)
	OnPhoto func(*Particle)

	debugf func(format string, args ...any)
}

// newCapture wires the capture machine to its collaborators.
func newCapture(cfg *Config, sched *scheduler, group *Group, reg *Registry, rng *rand.Rand, glyphNext func() mgl64.Vec3) *Capture {
	return &Capture{
		cfg:         cfg,
		sched:       sched,
		group:       group,
		reg:         reg,
		rng:         rng,
		glyphNext:   glyphNext,
		lastTrigger: math.Inf(-1),
		lastDone:    math.Inf(-1),
	}
}

// Phase returns the current capture phase.
func (c *Capture) Phase() Phase {
	return c.phase
}

// Countdown returns the current countdown value; meaningful during
// PhaseCountdown, zero otherwise.
func (c *Capture) Countdown() int {
	return c.countdown
}

// Preview returns the camera-locked in-flight photo particle, or nil.
func (c *Capture) Preview() *Particle {
	return c.preview
}

// LastImage returns the most recently captured frame for the developing
// overlay, or nil before the first capture.
func (c *Capture) LastImage() *ebiten.Image {
	return c.lastImage
}

// FlashAlpha returns the full-screen flash opacity in [0, 1].
func (c *Capture) FlashAlpha() float64 {
	return c.flashAlpha
}

// Suspended reports whether gesture detection should skip this frame: a
// capture is in progress, or the detection-side cooldown since the last
// completed capture has not elapsed.
func (c *Capture) Suspended() bool {
	if c.phase != PhaseIdle {
		return true
	}
	return c.sched.Now()-c.lastDone < c.cfg.DetectCooldown
}

// Trigger starts a capture sequence. It is rejected (returning false) unless
// the machine is idle and the trigger-side cooldown since the previous
// accepted trigger has elapsed.
func (c *Capture) Trigger() bool {
	now := c.sched.Now()
	if c.phase != PhaseIdle {
		return false
	}
	if now-c.lastTrigger < c.cfg.TriggerCooldown {
		return false
	}
	c.lastTrigger = now
	c.setPhase(PhaseCountdown)
	c.countdown = c.cfg.CountdownSeconds
	for i := 1; i <= c.cfg.CountdownSeconds; i++ {
		remaining := c.cfg.CountdownSeconds - i
		if remaining > 0 {
			c.schedule(float64(i), func() { c.countdown = remaining })
		} else {
			c.schedule(float64(i), c.shoot)
		}
	}
	return true
}

// shoot fires at countdown zero: grab the frame, build the photo particle,
// and run the flash→developing→flying→idle tail.
func (c *Capture) shoot() {
	c.countdown = 0

	p, err := c.buildPhoto()
	if err != nil {
		// Missing camera frame or scene group: the sequence still plays
		// out, it just produces no particle.
		c.debug("capture: no photo: %v", err)
	} else {
		c.preview = p
		c.reg.Add(p)
		if evicted := c.reg.EvictOldest(c.cfg.PhotoCap); evicted != nil {
			c.debug("capture: evicted %d photo(s) over cap", len(evicted))
		}
		if c.OnPhoto != nil {
			c.OnPhoto(p)
		}
	}

	c.setPhase(PhaseFlash)
	c.flash = gween.New(1, 0, float32(c.cfg.FlashDuration), ease.OutQuad)
	c.flashAlpha = 1

	c.schedule(c.cfg.FlashDuration, func() { c.setPhase(PhaseDeveloping) })
	c.schedule(c.cfg.DevelopDuration, c.fly)
	c.schedule(c.cfg.DevelopDuration+c.cfg.FlyDuration, c.finish)
}

// fly releases the preview lock: the card becomes visible in-scene, pops in,
// and normal per-mode targeting takes over.
func (c *Capture) fly() {
	if p := c.preview; p != nil {
		p.Node.Visible = true
		p.Photo.preview = false
		p.Photo.pop = gween.New(0.05, 1, float32(c.cfg.FlyDuration), ease.OutBack)
		c.preview = nil
	}
	c.setPhase(PhaseFlying)
}

// finish returns the machine to idle and starts the detection-side cooldown.
func (c *Capture) finish() {
	c.lastDone = c.sched.Now()
	c.tasks = c.tasks[:0]
	c.setPhase(PhaseIdle)
}

// Update advances the flash fade. Called once per frame by the scene.
func (c *Capture) Update(dt float64) {
	if c.flash != nil {
		v, done := c.flash.Update(float32(dt))
		c.flashAlpha = float64(v)
		if done {
			c.flash = nil
			c.flashAlpha = 0
		}
	}
}

// cancel aborts any in-flight sequence. Scheduled tasks are cancelled, not
// merely flag-guarded, so nothing fires after teardown.
func (c *Capture) cancel() {
	for _, t := range c.tasks {
		t.Cancel()
	}
	c.tasks = c.tasks[:0]
	c.preview = nil
	c.flash = nil
	c.flashAlpha = 0
	c.phase = PhaseIdle
}

// schedule registers a capture-owned task so cancel can revoke it.
func (c *Capture) schedule(d float64, fn func()) {
	c.tasks = append(c.tasks, c.sched.After(d, fn))
}

// setPhase transitions the machine and notifies the listener.
func (c *Capture) setPhase(p Phase) {
	c.phase = p
	if c.OnPhase != nil {
		c.OnPhase(p)
	}
}

func (c *Capture) debug(format string, args ...any) {
	if c.debugf != nil {
		c.debugf(format, args...)
	}
}

// buildPhoto grabs the current camera frame, composites it onto a polaroid
// card texture, assigns the three mode targets, and returns the new photo
// particle with its preview lock held.
func (c *Capture) buildPhoto() (*Particle, error) {
	if c.group == nil {
		return nil, fmt.Errorf("tinsel: capture without scene group")
	}
	if c.frames == nil || !c.frames.Ready() {
		return nil, ErrNoFrame
	}
	frame, err := c.frames.Frame()
	if err != nil {
		return nil, fmt.Errorf("tinsel: grab frame: %w", err)
	}

	square := cropSquare(frame, c.cfg.PhotoSize)
	card := composeCard(square)
	c.lastImage = ebiten.NewImageFromImage(square)

	photoCounter++
	node := newNode(fmt.Sprintf("photo_%d", photoCounter))
	node.Texture = card
	node.Visible = false
	node.Scale = 1
	node.Size = c.cfg.CardHeight

	treePos, treeYaw := treeSurfaceSample(c.rng, c.cfg)
	scatter := scatterPoints(c.rng, 1, c.cfg.ScatterInner, c.cfg.ScatterOuter)[0]

	p := &Particle{
		Node:    node,
		Kind:    KindPhoto,
		Tree:    treePos,
		Scatter: scatter,
		Text:    c.glyphNext(),
		treeYaw: treeYaw,
		Spin:    mgl64.Vec3{}, // photos don't tumble; they settle facing out
		Photo: &PhotoData{
			ID:         uuid.New(),
			CapturedAt: c.sched.Now(),
			preview:    true,
		},
	}
	return p, nil
}

// cropSquare extracts the center square of src and scales it to size×size.
func cropSquare(src image.Image, size int) *image.RGBA {
	b := src.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, image.Rect(x0, y0, x0+side, y0+side), xdraw.Over, nil)
	return dst
}

// composeCard draws the captured square onto a white instant-photo card with
// a thin border and the classic wide bottom margin.
func composeCard(photo *image.RGBA) *ebiten.Image {
	size := photo.Bounds().Dx()
	border := size / 16
	bottom := size / 5
	card := ebiten.NewImage(size+2*border, size+border+bottom)
	card.Fill(ColorWhite.toRGBA())

	img := ebiten.NewImageFromImage(photo)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(border), float64(border))
	card.DrawImage(img, op)
	return card
}
