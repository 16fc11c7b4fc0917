package tinsel

import (
	"fmt"
	"image"
	"io"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// FrameSource is a live video frame provider: a readable "ready" predicate
// plus a frame grab. The webcam sub-module supplies a gocv-backed
// implementation; tests use an in-memory fake.
type FrameSource interface {
	// Ready reports whether a frame can currently be read.
	Ready() bool
	// Frame returns the current video frame.
	Frame() (image.Image, error)
}

// HandTracker is the black-box hand-landmark inference engine: given a video
// frame and a monotonic timestamp it returns zero or one hand's landmarks.
// A nil result with nil error means no hand was detected.
type HandTracker interface {
	Detect(frame image.Image, timestamp float64) (*Landmarks, error)
	Close() error
}

// EventKind identifies a kind of scene event.
type EventKind uint8

const (
	EventModeChanged    EventKind = iota // scene mode switched
	EventGestureChanged                  // classified gesture symbol changed
	EventPhaseChanged                    // capture phase advanced
	EventPhotoAdded                      // a new photo particle was registered
	EventStatus                          // transient status message updated
)

// SceneEvent carries scene state changes for UI observation. Events are
// read-only signals; the only input back into the core is TakePhoto.
type SceneEvent struct {
	Kind      EventKind
	Mode      Mode
	Gesture   Symbol
	Phase     Phase
	Countdown int
	PhotoID   string
	Status    string
}

// EventStore is the interface for optional ECS or UI integration. When set
// on a Scene, state-change events are forwarded to it.
type EventStore interface {
	EmitEvent(event SceneEvent)
}

// Signals is a read-only snapshot of everything a UI overlay needs.
type Signals struct {
	Mode         Mode
	Phase        Phase
	Countdown    int
	Gesture      Symbol
	HoldProgress float64 // 0–100
	Status       string
	ZoomedPhoto  string // uuid of the zoomed photo, or ""
	Photos       int
}

// Scene owns the particle registry, the mode and capture state machines,
// the snowfall system, and the virtual-time scheduler. Two cooperating
// per-frame tasks drive it on one logical thread: the render task calls
// Update (which writes particle transforms) and the inference task calls
// Infer/Observe (which writes the mode and hold counters). Field ownership
// is partitioned accordingly; there are no locks.
type Scene struct {
	cfg Config
	rng *rand.Rand

	group      *Group
	reg        *Registry
	glyphs     *glyphAllocator
	classifier *Classifier
	director   *Director
	capture    *Capture
	snow       *Snowfall
	sched      *scheduler

	frames  FrameSource
	tracker HandTracker
	store   EventStore

	rotSpeed    float64
	lastGesture Symbol
	elapsed     float64

	mounted          bool
	gesturesDisabled bool
	status           string
	debug            bool

	// sprites is the reused projection buffer for Draw.
	sprites []renderSprite

	scriptRunner *ScriptRunner
}

// NewScene builds the full particle scene: three formations sized to the
// configured particle count, one node per particle, and all state machines
// in their initial states (ModeLoading, PhaseIdle).
func NewScene(cfg Config) (*Scene, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s := &Scene{
		cfg:     cfg,
		rng:     rng,
		group:   &Group{},
		reg:     NewRegistry(cfg.total()),
		sched:   &scheduler{},
		mounted: true,
	}
	s.classifier = NewClassifier(&s.cfg)
	s.director = NewDirector(&s.cfg)

	gp, err := glyphPoints(rng, cfg.Message, &s.cfg)
	if err != nil {
		return nil, fmt.Errorf("tinsel: text formation: %w", err)
	}
	s.glyphs = newGlyphAllocator(rng, gp)

	s.buildParticles()
	s.snow = NewSnowfall(&s.cfg, rng)

	s.capture = newCapture(&s.cfg, s.sched, s.group, s.reg, rng, s.glyphs.Next)
	s.capture.debugf = s.debugLogf
	s.capture.OnPhase = func(p Phase) {
		s.emit(SceneEvent{Kind: EventPhaseChanged, Phase: p, Countdown: s.capture.Countdown()})
	}
	s.capture.OnPhoto = func(p *Particle) {
		s.emit(SceneEvent{Kind: EventPhotoAdded, PhotoID: p.Photo.ID.String()})
	}
	s.director.OnCapture = func() { s.capture.Trigger() }

	return s, nil
}

// buildParticles creates the fixed particle population: one star topper at
// the cone apex, the remaining stars, ornaments, and lights, each with its
// three immutable targets and constant animation parameters.
func (s *Scene) buildParticles() {
	cfg := &s.cfg
	n := cfg.total()
	scatter := scatterPoints(s.rng, n, cfg.ScatterInner, cfg.ScatterOuter)
	tree := treePoints(s.rng, n, cfg)

	ornamentColors := []Color{
		{0.86, 0.16, 0.18, 1}, // red
		{0.92, 0.72, 0.18, 1}, // gold
		{0.22, 0.46, 0.85, 1}, // blue
		{0.16, 0.62, 0.34, 1}, // green
		{0.88, 0.88, 0.92, 1}, // silver
	}

	spin := Range{Min: -1.2, Max: 1.2}
	for i := 0; i < n; i++ {
		var kind Kind
		switch {
		case i < cfg.StarOrnaments:
			kind = KindStarOrnament
		case i < cfg.StarOrnaments+cfg.Ornaments:
			kind = KindOrnament
		default:
			kind = KindLight
		}

		node := newNode(fmt.Sprintf("%s_%d", kindName(kind), i))
		node.Position = scatter[i]
		p := &Particle{
			Node:    node,
			Kind:    kind,
			Tree:    tree[i],
			Scatter: scatter[i],
			Text:    s.glyphs.Next(),
			Spin: mgl64.Vec3{
				spin.Random(s.rng),
				spin.Random(s.rng),
				spin.Random(s.rng),
			},
		}

		switch kind {
		case KindStarOrnament:
			node.Color = Color{1, 0.92, 0.5, 1}
			node.Size = 0.075
			node.Emissive = 0.4
		case KindOrnament:
			node.Color = ornamentColors[s.rng.IntN(len(ornamentColors))]
			node.Size = 0.06
		case KindLight:
			node.Color = Color{1, 0.85, 0.55, 1}
			node.Size = 0.035
			node.Emissive = 0.8
			p.TwinklePhase = s.rng.Float64() * 2 * math.Pi
			p.TwinkleSpeed = cfg.TwinkleSpeed.Random(s.rng)
			p.Spin = mgl64.Vec3{}
		}
		s.reg.Add(p)
	}
}

// kindName returns a lowercase kind label for node names and debug output.
func kindName(k Kind) string {
	switch k {
	case KindStarOrnament:
		return "star"
	case KindOrnament:
		return "ornament"
	case KindLight:
		return "light"
	case KindPhoto:
		return "photo"
	default:
		return "particle"
	}
}

// SetFrameSource attaches the camera feed used by the capture pipeline.
func (s *Scene) SetFrameSource(f FrameSource) {
	s.frames = f
	s.capture.frames = f
}

// SetTracker attaches the hand-landmark inference engine used by Infer.
func (s *Scene) SetTracker(t HandTracker) {
	s.tracker = t
}

// SetStore attaches an event sink for UI or ECS integration.
func (s *Scene) SetStore(store EventStore) {
	s.store = store
}

// SetDebug toggles stderr diagnostics.
func (s *Scene) SetDebug(enabled bool) {
	s.debug = enabled
}

// FinishLoading leaves the pre-interactive loading state. The scene forms
// the tree, the steady-state default, and gestures take over from there.
func (s *Scene) FinishLoading() {
	if s.director.Mode() == ModeLoading {
		s.setMode(ModeTree)
	}
}

// DisableGestures permanently disables gesture-driven control for this
// session (camera denied, tracker failed to initialize). The scene shows the
// reason and falls back to the tree formation after a short delay. There is
// no retry.
func (s *Scene) DisableGestures(reason string) {
	s.gesturesDisabled = true
	s.setStatus(reason)
	s.sched.After(s.cfg.FallbackDelay, func() {
		s.setMode(ModeTree)
	})
}

// GesturesDisabled reports whether gesture control is off for the session.
func (s *Scene) GesturesDisabled() bool {
	return s.gesturesDisabled
}

// TakePhoto manually triggers a capture, with the same effect as the L-shape
// hold completing. Subject to the capture machine's idle and cooldown
// checks; returns whether the trigger was accepted.
func (s *Scene) TakePhoto() bool {
	if !s.mounted {
		return false
	}
	return s.capture.Trigger()
}

// Infer runs one inference-task frame: grab the current video frame, call
// the tracker, and feed the result to Observe. Tracker errors and panics are
// logged and treated as "no hand detected", never fatal to the loop.
func (s *Scene) Infer(timestamp float64) {
	if !s.mounted || s.tracker == nil {
		return
	}
	if s.gesturesDisabled || s.capture.Suspended() {
		return
	}
	var hand *Landmarks
	func() {
		defer func() {
			if r := recover(); r != nil {
				s.debugLogf("tracker panic: %v", r)
				hand = nil
			}
		}()
		frame := image.Image(nil)
		if s.frames != nil && s.frames.Ready() {
			f, err := s.frames.Frame()
			if err != nil {
				s.debugLogf("frame grab: %v", err)
			} else {
				frame = f
			}
		}
		h, err := s.tracker.Detect(frame, timestamp)
		if err != nil {
			s.debugLogf("tracker: %v", err)
			h = nil
		}
		hand = h
	}()
	s.Observe(hand)
}

// Observe consumes one frame's hand landmarks (nil = no hand detected). The
// frame is skipped entirely while a capture is in progress or cooling down,
// and during the pre-interactive loading state.
func (s *Scene) Observe(hand *Landmarks) {
	if !s.mounted || s.gesturesDisabled {
		return
	}
	if s.director.Mode() == ModeLoading {
		return
	}
	if s.capture.Suspended() {
		return
	}

	if hand != nil {
		s.rotSpeed = s.classifier.RotationSpeed(hand)
	}

	sym := s.classifier.Classify(hand)
	if sym != s.lastGesture {
		s.lastGesture = sym
		s.emit(SceneEvent{Kind: EventGestureChanged, Gesture: sym})
	}

	before := s.director.Mode()
	s.director.Apply(sym, s.reg, s.rng)
	if after := s.director.Mode(); after != before {
		s.emit(SceneEvent{Kind: EventModeChanged, Mode: after})
	}
}

// Update runs one render-task frame: advance the scheduler (which drives the
// capture phases), the flash fade, the particle interpolation, and the snow.
func (s *Scene) Update(dt float64) {
	if !s.mounted || dt <= 0 {
		return
	}
	if s.scriptRunner != nil {
		s.scriptRunner.step(s)
	}
	s.elapsed += dt
	s.sched.Advance(dt)
	s.capture.Update(dt)
	s.animate(dt)
	s.snow.Update(dt, s.rng)
}

// Signals returns a snapshot of the scene's observable state for display.
func (s *Scene) Signals() Signals {
	sig := Signals{
		Mode:         s.director.Mode(),
		Phase:        s.capture.Phase(),
		Countdown:    s.capture.Countdown(),
		Gesture:      s.lastGesture,
		HoldProgress: s.director.HoldProgress(),
		Status:       s.status,
		Photos:       len(s.reg.Photos()),
	}
	if z := s.director.Zoomed(); z != nil {
		sig.ZoomedPhoto = z.Photo.ID.String()
	}
	return sig
}

// LastPhotoImage returns the most recently captured frame for 2D overlays
// (the "developing" instant-photo effect), or nil before the first capture.
func (s *Scene) LastPhotoImage() *ebiten.Image {
	return s.capture.LastImage()
}

// Registry exposes the particle registry for rendering and tests.
func (s *Scene) Registry() *Registry {
	return s.reg
}

// Group exposes the rotating particle group.
func (s *Scene) Group() *Group {
	return s.group
}

// Teardown cancels every pending scheduled task, aborts any in-flight
// capture, disposes all nodes, and closes the frame source and tracker.
// After Teardown, Update, Observe, and TakePhoto are no-ops.
func (s *Scene) Teardown() {
	if !s.mounted {
		return
	}
	s.mounted = false
	s.capture.cancel()
	s.sched.CancelAll()
	for _, p := range s.reg.All() {
		p.Node.Dispose()
	}
	if c, ok := s.frames.(io.Closer); ok && c != nil {
		_ = c.Close()
	}
	if s.tracker != nil {
		_ = s.tracker.Close()
	}
}

// setMode routes a director mode change through the event stream.
func (s *Scene) setMode(m Mode) {
	if s.director.Mode() == m {
		return
	}
	s.director.SetMode(m)
	s.emit(SceneEvent{Kind: EventModeChanged, Mode: m})
}

// setStatus updates the transient status message.
func (s *Scene) setStatus(msg string) {
	s.status = msg
	s.emit(SceneEvent{Kind: EventStatus, Status: msg})
}

// emit forwards an event to the attached store, if any.
func (s *Scene) emit(e SceneEvent) {
	if s.store != nil {
		s.store.EmitEvent(e)
	}
}
