package platformer

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// MoveMode selects how horizontal input turns into velocity.
type MoveMode int

const (
	// MoveInstant sets the velocity to full speed while a direction is held.
	MoveInstant MoveMode = iota
	// MoveAccelerate ramps toward full speed and glides on release.
	MoveAccelerate
)

// Motion holds the movement tuning for one game mode. Velocities are in
// world units per nominal frame; dt scales every term.
type Motion struct {
	Mode         MoveMode
	MoveSpeed    float64 // full speed, also the clamp in accelerate mode
	Acceleration float64 // per-frame gain in accelerate mode
	Friction     float64 // per-frame multiplier while no direction is held
	Gravity      float64
	JumpVelocity float64 // negative is up
	JumpCut      float64 // gravity multiplier while rising with jump released; <= 1 disables
	MaxFallSpeed float64
}

// stopSpeed is the horizontal speed below which friction snaps to rest.
const stopSpeed = 0.01

// Horizontal applies input direction (-1, 0, +1) to the body's x velocity.
func (m Motion) Horizontal(b *Body, dir, dt float64) {
	switch {
	case dir != 0 && m.Mode == MoveInstant:
		b.Vel.X = dir * m.MoveSpeed
	case dir != 0:
		b.Vel.X += m.Acceleration * dir * dt
		b.Vel.X = core.ClampF(b.Vel.X, -m.MoveSpeed, m.MoveSpeed)
	default:
		b.Vel.X *= math.Pow(m.Friction, dt)
		if math.Abs(b.Vel.X) < stopSpeed {
			b.Vel.X = 0
		}
	}
}

// Fall accumulates gravity into the body's y velocity. Releasing jump while
// rising multiplies gravity by JumpCut, which shortens the jump.
func (m Motion) Fall(b *Body, jumpHeld bool, dt float64) {
	g := m.Gravity
	if b.Vel.Y < 0 && !jumpHeld && m.JumpCut > 1 {
		g *= m.JumpCut
	}
	b.Vel.Y += g * dt
	if b.Vel.Y > m.MaxFallSpeed {
		b.Vel.Y = m.MaxFallSpeed
	}
}
