package tinsel

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is a plain counter; tinsel is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the renderable handle one particle drives. A single flat struct is
// used for all particle kinds to avoid interface dispatch on the hot path.
// Position and Rotation are in group-local space; the owning Group applies
// the ambient scene yaw.
type Node struct {
	ID   uint32
	Name string

	Position mgl64.Vec3
	Rotation mgl64.Vec3 // euler XYZ, radians
	Scale    float64    // uniform

	Color    Color
	Emissive float64 // additive glow strength, used by lights
	Size     float64 // base world-space radius for round sprites

	// Texture is the photo card image for photo nodes; nil otherwise.
	Texture *ebiten.Image

	Visible  bool
	disposed bool
}

// newNode creates a Node with unit scale and default tint.
func newNode(name string) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		Scale:   1,
		Color:   ColorWhite,
		Size:    0.05,
		Visible: true,
	}
}

// Dispose marks the node unusable. Disposed nodes are skipped by the
// renderer and released by the registry.
func (n *Node) Dispose() {
	n.disposed = true
	n.Texture = nil
}

// IsDisposed reports whether Dispose has been called.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// Group is the rotating parent of every particle node. Only yaw (rotation
// about the world Y axis) is animated; the preview and zoom locks need the
// world↔local conversions below because the group keeps turning underneath
// locked particles.
type Group struct {
	Yaw float64
}

// Quat returns the group's current orientation.
func (g *Group) Quat() mgl64.Quat {
	return mgl64.QuatRotate(g.Yaw, mgl64.Vec3{0, 1, 0})
}

// LocalToWorld transforms a group-local point into world space.
func (g *Group) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return g.Quat().Rotate(p)
}

// WorldToLocal transforms a world-space point into the group's local space.
// Used by the photo locks to pin a node at a fixed world anchor while the
// group rotates underneath it.
func (g *Group) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return g.Quat().Inverse().Rotate(p)
}

// FacingCamera returns the local euler rotation that keeps a node facing the
// fixed +Z camera regardless of the group's current yaw.
func (g *Group) FacingCamera() mgl64.Vec3 {
	return mgl64.Vec3{0, -g.Yaw, 0}
}
