package tinsel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hand landmark indices following the MediaPipe hand-landmarker convention:
// 21 points per hand, x and y normalized to [0, 1] in image space (y grows
// downward), z relative to the wrist.
const (
	LandmarkWrist     = 0
	LandmarkThumbCMC  = 1
	LandmarkThumbMCP  = 2
	LandmarkThumbIP   = 3
	LandmarkThumbTip  = 4
	LandmarkIndexMCP  = 5
	LandmarkIndexPIP  = 6
	LandmarkIndexDIP  = 7
	LandmarkIndexTip  = 8
	LandmarkMiddleMCP = 9
	LandmarkMiddlePIP = 10
	LandmarkMiddleDIP = 11
	LandmarkMiddleTip = 12
	LandmarkRingMCP   = 13
	LandmarkRingPIP   = 14
	LandmarkRingDIP   = 15
	LandmarkRingTip   = 16
	LandmarkPinkyMCP  = 17
	LandmarkPinkyPIP  = 18
	LandmarkPinkyDIP  = 19
	LandmarkPinkyTip  = 20
	NumLandmarks      = 21
)

// Landmarks is one hand's landmark set for a single frame.
type Landmarks [NumLandmarks]mgl64.Vec3

// Symbol is the discrete classification of one frame's hand landmarks.
type Symbol uint8

const (
	SymbolNone Symbol = iota
	SymbolPinch
	SymbolFist
	SymbolOpenPalm
	SymbolLShape
	SymbolThumbsUp
)

// String returns the symbol name for signals and debug output.
func (s Symbol) String() string {
	switch s {
	case SymbolNone:
		return "none"
	case SymbolPinch:
		return "pinch"
	case SymbolFist:
		return "fist"
	case SymbolOpenPalm:
		return "open_palm"
	case SymbolLShape:
		return "l_shape"
	case SymbolThumbsUp:
		return "thumbs_up"
	default:
		return "unknown"
	}
}

// dist returns the Euclidean distance between two landmarks.
func (l *Landmarks) dist(a, b int) float64 {
	d := l[a].Sub(l[b])
	return math.Sqrt(d.Dot(d))
}

// extended reports whether the finger with the given tip and MCP landmarks
// is extended: its tip-to-wrist distance must exceed ratio times its
// MCP-to-wrist distance. The ratio test is scale-invariant across hand sizes
// and distances from the camera.
func (l *Landmarks) extended(tip, mcp int, ratio float64) bool {
	return l.dist(tip, LandmarkWrist) > ratio*l.dist(mcp, LandmarkWrist)
}

// thumbExtended applies the extension ratio to the thumb, measured against
// the thumb IP joint rather than an MCP.
func (l *Landmarks) thumbExtended(ratio float64) bool {
	return l.dist(LandmarkThumbTip, LandmarkWrist) > ratio*l.dist(LandmarkThumbIP, LandmarkWrist)
}

// fingerTips pairs each non-thumb fingertip with its MCP joint.
var fingerTips = [4][2]int{
	{LandmarkIndexTip, LandmarkIndexMCP},
	{LandmarkMiddleTip, LandmarkMiddleMCP},
	{LandmarkRingTip, LandmarkRingMCP},
	{LandmarkPinkyTip, LandmarkPinkyMCP},
}

// allFingersExtended reports whether all four non-thumb fingers pass the
// extension ratio.
func (l *Landmarks) allFingersExtended(ratio float64) bool {
	for _, f := range fingerTips {
		if !l.extended(f[0], f[1], ratio) {
			return false
		}
	}
	return true
}

// allFingersCurled reports whether all four non-thumb fingers fail the
// extension ratio.
func (l *Landmarks) allFingersCurled(ratio float64) bool {
	for _, f := range fingerTips {
		if l.extended(f[0], f[1], ratio) {
			return false
		}
	}
	return true
}

// Classifier turns raw landmark frames into gesture symbols. Classification
// is an ordered rule list with first-match-wins semantics, so precedence is
// absolute. The FIST rule re-checks finger curl without requiring any thumb
// state and so also catches shapes that fail the strict thumbs-up test.
type Classifier struct {
	cfg   *Config
	rules []rule
}

// rule is one predicate→symbol entry in the ordered classification list.
type rule struct {
	symbol Symbol
	match  func(*Landmarks) bool
}

// NewClassifier builds the fixed rule list against cfg's thresholds.
func NewClassifier(cfg *Config) *Classifier {
	c := &Classifier{cfg: cfg}
	c.rules = []rule{
		// PINCH: thumb and index tips nearly touching while middle, ring,
		// and pinky stay extended.
		{SymbolPinch, func(l *Landmarks) bool {
			if l.dist(LandmarkThumbTip, LandmarkIndexTip) >= cfg.PinchDistance {
				return false
			}
			return l.extended(LandmarkMiddleTip, LandmarkMiddleMCP, cfg.ExtendRatio) &&
				l.extended(LandmarkRingTip, LandmarkRingMCP, cfg.ExtendRatio) &&
				l.extended(LandmarkPinkyTip, LandmarkPinkyMCP, cfg.ExtendRatio)
		}},
		// THUMBS_UP: thumb extended under the strict ratio, all fingers
		// curled, thumb tip above both its IP and MCP joints. Image y grows
		// downward, so "above" is numerically smaller.
		{SymbolThumbsUp, func(l *Landmarks) bool {
			return l.thumbExtended(cfg.ThumbExtendRatio) &&
				l.allFingersCurled(cfg.ExtendRatio) &&
				l[LandmarkThumbTip].Y() < l[LandmarkThumbIP].Y() &&
				l[LandmarkThumbTip].Y() < l[LandmarkThumbMCP].Y()
		}},
		// FIST: all fingers curled, thumb state irrelevant.
		{SymbolFist, func(l *Landmarks) bool {
			return l.allFingersCurled(cfg.ExtendRatio)
		}},
		// OPEN_PALM: all fingers extended.
		{SymbolOpenPalm, func(l *Landmarks) bool {
			return l.allFingersExtended(cfg.ExtendRatio)
		}},
		// L_SHAPE: thumb extended under the looser legacy ratio, index
		// extended, pinky not.
		{SymbolLShape, func(l *Landmarks) bool {
			return l.thumbExtended(cfg.ThumbLegacyRatio) &&
				l.extended(LandmarkIndexTip, LandmarkIndexMCP, cfg.ExtendRatio) &&
				!l.extended(LandmarkPinkyTip, LandmarkPinkyMCP, cfg.ExtendRatio)
		}},
	}
	return c
}

// Classify returns the first matching symbol for the frame, or SymbolNone.
// A nil landmark set (no hand detected) is SymbolNone.
func (c *Classifier) Classify(l *Landmarks) Symbol {
	if l == nil {
		return SymbolNone
	}
	for _, r := range c.rules {
		if r.match(l) {
			return r.symbol
		}
	}
	return SymbolNone
}

// RotationSpeed derives the continuous scene-rotation signal from the wrist's
// horizontal position: centered hand means no spin, hand at either edge
// spins the scene toward it. Independent of the discrete gesture.
func (c *Classifier) RotationSpeed(l *Landmarks) float64 {
	if l == nil {
		return 0
	}
	return (0.5 - l[LandmarkWrist].X()) * c.cfg.RotationGain
}
