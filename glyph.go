package tinsel

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// glyphPoints rasterizes msg into an offscreen bitmap, scans it for opaque
// pixels, and maps each qualifying pixel to a 3D point: pixel coordinates
// centered and scaled by cfg.GlyphScale, with a small random z jitter for
// thickness. The returned points are in scan order; callers shuffle them via
// newGlyphAllocator.
func glyphPoints(rng *rand.Rand, msg string, cfg *Config) ([]mgl64.Vec3, error) {
	if msg == "" {
		return nil, nil
	}

	tt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    cfg.GlyphFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: build face: %w", err)
	}
	defer face.Close()

	width := font.MeasureString(face, msg).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return nil, nil
	}

	img := image.NewAlpha(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(msg)

	step := cfg.GlyphStep
	if step < 1 {
		step = 1
	}

	var pts []mgl64.Vec3
	for py := 0; py < height; py += step {
		for px := 0; px < width; px += step {
			if img.AlphaAt(px, py).A < 128 {
				continue
			}
			pts = append(pts, mgl64.Vec3{
				(float64(px) - float64(width)/2) * cfg.GlyphScale,
				(float64(height)/2 - float64(py)) * cfg.GlyphScale,
				(rng.Float64() - 0.5) * cfg.GlyphDepthJitter,
			})
		}
	}
	return pts, nil
}
