package tinsel

import (
	"image/color"
	"math"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Fixed camera: on the +Z axis looking at the origin. The scene rotates via
// the group yaw instead of the camera moving.
const (
	cameraZ   = 9.0
	cameraY   = 0.5
	nearClip  = 0.25
	focalCoef = 0.95 // focal length as a fraction of the viewport height
)

// renderSprite is one projected draw command.
type renderSprite struct {
	particle *Particle // nil for snowflakes
	x, y     float64   // screen position
	persp    float64   // perspective scale factor
	depth    float64   // view-space distance, for painter's sort
	size     float64   // world-space radius (snow only)
}

// Draw projects the particle group and the snowfall to the screen and draws
// them back to front, then the capture flash overlay. The host calls this
// once per display frame after Update.
func (s *Scene) Draw(screen *ebiten.Image) {
	if !s.mounted {
		return
	}
	var stats debugStats
	start := time.Now()

	bounds := screen.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	focal := h * focalCoef
	q := s.group.Quat()

	sprites := s.sprites[:0]
	for _, p := range s.reg.All() {
		n := p.Node
		if n.IsDisposed() || !n.Visible {
			continue
		}
		world := q.Rotate(n.Position)
		if spr, ok := project(world, w, h, focal); ok {
			spr.particle = p
			sprites = append(sprites, spr)
		}
	}
	for i := range s.snow.flakes {
		f := &s.snow.flakes[i]
		if spr, ok := project(f.pos, w, h, focal); ok {
			spr.size = f.size
			sprites = append(sprites, spr)
		}
	}
	stats.projectTime = time.Since(start)

	start = time.Now()
	sort.Slice(sprites, func(i, j int) bool { return sprites[i].depth > sprites[j].depth })
	stats.sortTime = time.Since(start)

	start = time.Now()
	for i := range sprites {
		s.drawSprite(screen, &sprites[i])
	}
	s.sprites = sprites

	if a := s.capture.FlashAlpha(); a > 0 {
		flash := Color{1, 1, 1, a}
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), flash.toRGBA(), false)
	}
	stats.drawTime = time.Since(start)
	stats.sprites = len(sprites)
	s.debugLog(stats)
}

// project maps a world-space point to a screen sprite. Points behind the
// near plane are culled.
func project(world mgl64.Vec3, w, h, focal float64) (renderSprite, bool) {
	vz := cameraZ - world.Z()
	if vz < nearClip {
		return renderSprite{}, false
	}
	return renderSprite{
		x:     w/2 + focal*world.X()/vz,
		y:     h/2 - focal*(world.Y()-cameraY)/vz,
		persp: focal / vz,
		depth: vz,
	}, true
}

// drawSprite renders one projected sprite by particle kind; nil particles
// are snowflakes.
func (s *Scene) drawSprite(screen *ebiten.Image, spr *renderSprite) {
	p := spr.particle
	if p == nil {
		r := float32(spr.size * spr.persp)
		vector.DrawFilledCircle(screen, float32(spr.x), float32(spr.y), r, snowColor, false)
		return
	}

	n := p.Node
	switch p.Kind {
	case KindPhoto:
		s.drawCard(screen, spr)
	case KindLight:
		r := n.Size * n.Scale * spr.persp
		// soft additive glow under the core dot
		glow := Color{n.Color.R, n.Color.G, n.Color.B, 0.25 * n.Emissive}
		vector.DrawFilledCircle(screen, float32(spr.x), float32(spr.y), float32(r*2.6), glow.toRGBA(), false)
		core := n.Color
		core.A = clamp(0.55+0.45*n.Emissive, 0, 1)
		vector.DrawFilledCircle(screen, float32(spr.x), float32(spr.y), float32(r), core.toRGBA(), false)
	default:
		r := n.Size * n.Scale * spr.persp
		vector.DrawFilledCircle(screen, float32(spr.x), float32(spr.y), float32(r), n.Color.toRGBA(), false)
		if p.Kind == KindStarOrnament {
			hi := Color{1, 1, 0.85, 0.5}
			vector.DrawFilledCircle(screen, float32(spr.x), float32(spr.y), float32(r*0.45), hi.toRGBA(), false)
		}
	}
}

// drawCard renders a photo card as a billboard: height from the card's
// world size, width foreshortened by the card's yaw relative to the camera.
func (s *Scene) drawCard(screen *ebiten.Image, spr *renderSprite) {
	n := spr.particle.Node
	if n.Texture == nil {
		return
	}
	tb := n.Texture.Bounds()
	texW := float64(tb.Dx())
	texH := float64(tb.Dy())

	worldH := n.Size * n.Scale
	pxH := worldH * spr.persp
	scale := pxH / texH

	worldYaw := n.Rotation.Y() + s.group.Yaw
	foreshorten := math.Abs(math.Cos(worldYaw))
	if foreshorten < 0.08 {
		foreshorten = 0.08
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Translate(-texW/2, -texH/2)
	op.GeoM.Scale(scale*foreshorten, scale)
	op.GeoM.Rotate(n.Rotation.Z())
	op.GeoM.Translate(spr.x, spr.y)
	screen.DrawImage(n.Texture, op)
}

var snowColor = color.RGBA{R: 235, G: 240, B: 250, A: 210}
