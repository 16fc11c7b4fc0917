package tinsel

import (
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
)

// flake holds per-flake simulation state. Unexported; managed by Snowfall.
type flake struct {
	pos       mgl64.Vec3
	fall      float64 // constant downward speed
	swayPhase float64 // accumulating sine phase
	swaySpeed float64
	swayAmp   float64
	size      float64
}

// Snowfall is the cosmetic falling-dust system. Each flake falls at its own
// constant speed, sways horizontally on a sine of its accumulating phase
// (amplitude modulated by a slow perlin wind field), and wraps back to the
// top when it drops below the floor. It never interacts with the gesture or
// mode systems.
type Snowfall struct {
	cfg    *Config
	flakes []flake
	wind   *perlin.Perlin
	t      float64
}

// NewSnowfall creates and scatters the configured number of flakes.
func NewSnowfall(cfg *Config, rng *rand.Rand) *Snowfall {
	sf := &Snowfall{
		cfg:    cfg,
		flakes: make([]flake, cfg.Snowflakes),
		wind:   perlin.NewPerlin(2, 2, 3, int64(rng.Uint64())),
	}
	for i := range sf.flakes {
		f := &sf.flakes[i]
		sf.respawn(f, rng)
		// initial fill: anywhere in the column, not just at the top
		f.pos[1] = cfg.SnowFloor + rng.Float64()*(cfg.SnowTop-cfg.SnowFloor)
	}
	return sf
}

// respawn places a flake at a fresh spot along the top of the volume.
func (sf *Snowfall) respawn(f *flake, rng *rand.Rand) {
	spread := sf.cfg.SnowSpread
	f.pos = mgl64.Vec3{
		(rng.Float64() - 0.5) * spread,
		sf.cfg.SnowTop,
		(rng.Float64() - 0.5) * spread,
	}
	f.fall = sf.cfg.SnowFall.Random(rng)
	f.swayPhase = rng.Float64() * 2 * math.Pi
	f.swaySpeed = 0.5 + rng.Float64()*1.5
	f.swayAmp = sf.cfg.SnowSwayAmp * (0.5 + rng.Float64())
	f.size = 0.015 + rng.Float64()*0.03
}

// Update advances every flake by dt seconds.
func (sf *Snowfall) Update(dt float64, rng *rand.Rand) {
	sf.t += dt
	// one slow gust value per frame is enough; flakes vary via phase
	gust := 0.6 + 0.4*sf.wind.Noise1D(sf.t*0.08)
	for i := range sf.flakes {
		f := &sf.flakes[i]
		f.swayPhase += f.swaySpeed * dt
		f.pos[0] += math.Sin(f.swayPhase) * f.swayAmp * gust * dt
		f.pos[1] -= f.fall * dt
		if f.pos[1] < sf.cfg.SnowFloor {
			sf.respawn(f, rng)
		}
	}
}
