package tinsel

import "github.com/go-gl/mathgl/mgl64"

// Config controls scene composition, gesture thresholds, and capture
// timings. Construct with DefaultConfig and override fields as needed;
// tests shrink counts and durations for speed.
type Config struct {
	// Particle counts per kind. The formation generators produce exactly
	// Ornaments+StarOrnaments+Lights points per target set.
	Ornaments      int
	StarOrnaments  int
	Lights         int

	// Seed selects the random stream for formations and per-particle
	// parameters. Zero means a per-scene unpredictable seed.
	Seed uint64

	// Scatter formation: a spherical shell between the two radii.
	ScatterInner float64
	ScatterOuter float64

	// Tree formation: a cone with apex up.
	TreeHeight     float64
	TreeRadius     float64
	TreeHeightBias float64 // exponent biasing samples toward the base
	TreeCoreOffset float64 // minimum radial offset off the trunk axis

	// Text formation.
	Message          string
	GlyphFontSize    float64 // rasterization size in pixels
	GlyphStep        int     // sample every GlyphStep-th pixel
	GlyphScale       float64 // pixel-to-world scale
	GlyphDepthJitter float64 // random z thickness

	// Gesture classification thresholds (normalized landmark space).
	PinchDistance    float64 // thumb-to-index tip distance
	ExtendRatio      float64 // fingertip/MCP wrist-distance ratio
	ThumbExtendRatio float64 // stricter thumb ratio for thumbs-up
	ThumbLegacyRatio float64 // looser thumb ratio feeding L-shape

	// Continuous rotation signal: yaw speed = (0.5 - wristX) * RotationGain.
	RotationGain     float64
	TextRotationDamp float64 // rotation multiplier while in ModeText

	// Hold thresholds in consecutive qualifying frames.
	PinchHoldFrames  int
	LShapeHoldFrames int

	// Per-frame interpolation factors (applied at the reference 60 Hz rate;
	// scaled by actual frame time).
	MoveLerp       float64 // particle position toward mode target
	ZoomLerp       float64 // zoomed photo toward the zoom anchor
	PhotoRelax     float64 // photo scale back toward 1 when unlocked
	ZoomScale      float64 // zoomed photo target scale

	// World-space anchors for the two photo lock states.
	PreviewPoint mgl64.Vec3
	ZoomPoint    mgl64.Vec3

	// Capture timings in seconds.
	CountdownSeconds int
	FlashDuration    float64
	DevelopDuration  float64 // flash start to fly start
	FlyDuration      float64
	TriggerCooldown  float64 // minimum spacing between capture triggers
	DetectCooldown   float64 // gesture suspension after a completed capture
	FallbackDelay    float64 // delay before the gesture-disabled TREE fallback

	// Photo pipeline.
	PhotoSize  int     // square capture resolution in pixels
	PhotoCap   int     // max photo particles kept; 0 = unbounded
	CardHeight float64 // world-space height of a photo card

	// Snowfall.
	Snowflakes  int
	SnowTop     float64
	SnowFloor   float64
	SnowSpread  float64
	SnowFall    Range // per-flake fall speed
	SnowSwayAmp float64

	// Light twinkle.
	TwinkleSpeed Range
}

// DefaultConfig returns a Config with the scene's stock tuning.
func DefaultConfig() Config {
	return Config{
		Ornaments:     520,
		StarOrnaments: 60,
		Lights:        240,

		ScatterInner: 4.5,
		ScatterOuter: 8.0,

		TreeHeight:     5.2,
		TreeRadius:     1.9,
		TreeHeightBias: 0.9,
		TreeCoreOffset: 0.18,

		Message:          "MERRY CHRISTMAS",
		GlyphFontSize:    56,
		GlyphStep:        2,
		GlyphScale:       0.045,
		GlyphDepthJitter: 0.25,

		PinchDistance:    0.06,
		ExtendRatio:      1.1,
		ThumbExtendRatio: 1.2,
		ThumbLegacyRatio: 1.05,

		RotationGain:     0.9,
		TextRotationDamp: 0.3,

		PinchHoldFrames:  15,
		LShapeHoldFrames: 30,

		MoveLerp:   0.05,
		ZoomLerp:   0.12,
		PhotoRelax: 0.1,
		ZoomScale:  2.2,

		PreviewPoint: mgl64.Vec3{0, 0.4, 5.2},
		ZoomPoint:    mgl64.Vec3{0, 0.3, 4.4},

		CountdownSeconds: 3,
		FlashDuration:    0.15,
		DevelopDuration:  4.5,
		FlyDuration:      1.0,
		TriggerCooldown:  4.0,
		DetectCooldown:   2.0,
		FallbackDelay:    2.5,

		PhotoSize:  512,
		PhotoCap:   0,
		CardHeight: 1.1,

		Snowflakes:  400,
		SnowTop:     7.0,
		SnowFloor:   -4.0,
		SnowSpread:  10.0,
		SnowFall:    Range{Min: 0.4, Max: 1.3},
		SnowSwayAmp: 0.35,

		TwinkleSpeed: Range{Min: 1.5, Max: 3.5},
	}
}

// total returns the fixed (non-photo) particle count.
func (c *Config) total() int {
	return c.Ornaments + c.StarOrnaments + c.Lights
}
