// Package platformer is the simulation core shared by the adventure and
// marathon games: kinematic bodies, collision resolution against static
// geometry, enemy patrols, pickups, particles, the follow camera and the
// per-tick session state machine.
//
// Nothing here renders, plays sound or reads devices. A Session consumes an
// intent snapshot per tick and reports what happened through core.Observer.
package platformer

import "github.com/vovakirdan/tui-platformer/internal/core"

// Body is the kinematic record shared by every entity: top-left position,
// size and velocity, all in world units. Y grows downward.
type Body struct {
	Pos  core.Vec2
	Size core.Vec2
	Vel  core.Vec2
}

// Box returns the body's bounding box.
func (b *Body) Box() core.Box {
	return core.NewBox(b.Pos, b.Size)
}

// Integrate moves the body by its velocity scaled by dt.
func (b *Body) Integrate(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// PlatformKind distinguishes solid ground from thin floating platforms.
// Both collide the same way; the kind only affects drawing.
type PlatformKind int

const (
	Ground PlatformKind = iota
	Floating
)

func (k PlatformKind) String() string {
	if k == Floating {
		return "platform"
	}
	return "ground"
}

// Platform is a piece of immutable level geometry.
type Platform struct {
	Box  core.Box
	Kind PlatformKind
}
