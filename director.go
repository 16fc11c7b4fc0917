package tinsel

import "math/rand/v2"

// Director owns the scene mode and the two hold counters. It consumes one
// gesture symbol per frame from the classifier and is the only writer of the
// mode value the animation loop reads. Hold counters accumulate consecutive
// frames of the same gesture and reset to zero the instant the gesture
// changes; they gate the two irreversible actions (capture countdown, photo
// zoom lock).
type Director struct {
	cfg *Config

	mode Mode

	pinchHold int
	lHold     int
	lFired    bool

	zoomed *Particle

	// OnCapture fires once when the L-shape hold crosses its threshold.
	// The capture machine's own idle/cooldown check still applies.
	OnCapture func()
}

// NewDirector returns a Director in ModeLoading.
func NewDirector(cfg *Config) *Director {
	return &Director{cfg: cfg, mode: ModeLoading}
}

// Mode returns the current scene mode.
func (d *Director) Mode() Mode {
	return d.mode
}

// Zoomed returns the photo particle currently locked in zoomed view, or nil.
func (d *Director) Zoomed() *Particle {
	return d.zoomed
}

// ClearZoom releases the zoomed-photo lock.
func (d *Director) ClearZoom() {
	d.zoomed = nil
}

// HoldProgress returns the L-shape hold progress in [0, 100].
func (d *Director) HoldProgress() float64 {
	if d.cfg.LShapeHoldFrames <= 0 {
		return 0
	}
	return clamp(float64(d.lHold)/float64(d.cfg.LShapeHoldFrames)*100, 0, 100)
}

// SetMode switches the scene mode, resetting both hold counters and clearing
// any zoomed-photo lock. Re-entering the current mode is a no-op beyond the
// resets (which are already at zero after the first transition).
func (d *Director) SetMode(m Mode) {
	d.resetHolds()
	d.zoomed = nil
	d.mode = m
}

// resetHolds zeroes both hold counters and re-arms the L-shape edge trigger.
func (d *Director) resetHolds() {
	d.pinchHold = 0
	d.lHold = 0
	d.lFired = false
}

// Apply consumes one frame's gesture symbol. Mode gestures switch the scene
// mode; PINCH and L_SHAPE accumulate their hold counters; anything else
// resets both counters.
func (d *Director) Apply(sym Symbol, reg *Registry, rng *rand.Rand) {
	switch sym {
	case SymbolOpenPalm:
		d.SetMode(ModeScatter)
	case SymbolFist:
		d.SetMode(ModeTree)
	case SymbolThumbsUp:
		d.SetMode(ModeText)
	case SymbolPinch:
		d.lHold = 0
		d.lFired = false
		d.pinchHold++
		// The counter keeps climbing past the threshold; the lock engages
		// once, only while no photo is already zoomed and photos exist.
		if d.pinchHold > d.cfg.PinchHoldFrames && d.zoomed == nil {
			if p := reg.RandomPhoto(rng); p != nil {
				d.zoomed = p
			}
		}
	case SymbolLShape:
		d.pinchHold = 0
		d.lHold++
		if d.lHold > d.cfg.LShapeHoldFrames && !d.lFired {
			d.lFired = true
			if d.OnCapture != nil {
				d.OnCapture()
			}
		}
	default:
		d.resetHolds()
	}
}
