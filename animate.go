package tinsel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// animate is the per-frame particle update. For each particle, in priority
// order: the camera-locked capture preview, the zoomed photo, then normal
// mode targeting. Kind-specific behavior (photo scale relax, light twinkle)
// hangs off a single switch over the particle kind.
func (s *Scene) animate(dt float64) {
	// Interpolation factors are tuned for 60 Hz; scale them by the actual
	// frame time so slower hosts converge at the same rate.
	k := clamp(dt*60, 0, 3)
	moveT := clamp(s.cfg.MoveLerp*k, 0, 1)
	zoomT := clamp(s.cfg.ZoomLerp*k, 0, 1)
	relaxT := clamp(s.cfg.PhotoRelax*k, 0, 1)

	mode := s.director.Mode()
	preview := s.capture.Preview()
	zoomed := s.director.Zoomed()

	// Ambient rotation: wrist-driven yaw, damped (not zeroed) in text mode
	// so the glyphs stay legible.
	speed := s.rotSpeed
	if mode == ModeText {
		speed *= s.cfg.TextRotationDamp
	}
	s.group.Yaw += speed * dt

	for _, p := range s.reg.All() {
		n := p.Node
		if n.IsDisposed() {
			continue
		}

		switch {
		case p == preview:
			// Preview lock: pinned to a fixed world anchor in front of the
			// camera, facing it, while the group rotates underneath.
			n.Position = s.group.WorldToLocal(s.cfg.PreviewPoint)
			n.Rotation = s.group.FacingCamera()

		case p == zoomed:
			// Zoom lock: float toward the inspect anchor and the camera's
			// orientation, growing to the zoom scale.
			face := s.group.FacingCamera()
			n.Position = lerpVec3(n.Position, s.group.WorldToLocal(s.cfg.ZoomPoint), zoomT)
			n.Rotation = mgl64.Vec3{
				lerpAngle(n.Rotation[0], face[0], zoomT),
				lerpAngle(n.Rotation[1], face[1], zoomT),
				lerpAngle(n.Rotation[2], face[2], zoomT),
			}
			n.Scale = lerp(n.Scale, s.cfg.ZoomScale, zoomT)

		default:
			n.Position = lerpVec3(n.Position, p.targetFor(mode), moveT)
			n.Rotation = n.Rotation.Add(p.Spin.Mul(dt))
		}

		switch p.Kind {
		case KindPhoto:
			if p != preview && p != zoomed {
				// Undo the zoom pop and settle facing outward on the tree.
				n.Scale = lerp(n.Scale, 1, relaxT)
				n.Rotation[1] = lerpAngle(n.Rotation[1], p.treeYaw, moveT)
				if p.Photo.pop != nil {
					v, done := p.Photo.pop.Update(float32(dt))
					n.Scale = float64(v)
					if done {
						p.Photo.pop = nil
					}
				}
			}
		case KindLight:
			// Desynchronized flicker: every light runs its own speed and
			// phase through the shared clock.
			tw := math.Sin(s.elapsed*p.TwinkleSpeed + p.TwinklePhase)
			n.Emissive = 0.6 + 0.4*tw
			n.Scale = 1 + 0.25*tw
		}
	}
}
