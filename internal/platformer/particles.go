package platformer

import (
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Particle is a short-lived visual fragment. Life starts at 1 and the
// particle is dropped once it reaches 0.
type Particle struct {
	Body
	Color core.Color
	Life  float64
}

// Particles owns the particles of one session.
type Particles struct {
	items   []Particle
	rng     *rand.Rand
	decay   float64 // life lost per nominal frame
	gravity float64
}

// NewParticles creates an empty particle set with its own RNG.
func NewParticles(seed int64, decay, gravity float64) *Particles {
	return &Particles{
		rng:     rand.New(rand.NewSource(seed)),
		decay:   decay,
		gravity: gravity,
	}
}

// Burst spawns n particles at a point, scattered with up to spread units
// per frame in each direction.
func (ps *Particles) Burst(at core.Vec2, n int, color core.Color, spread float64) {
	for i := 0; i < n; i++ {
		size := 4 + ps.rng.Float64()*4
		ps.items = append(ps.items, Particle{
			Body: Body{
				Pos:  at,
				Size: core.V(size, size),
				Vel: core.V(
					(ps.rng.Float64()-0.5)*spread,
					(ps.rng.Float64()-0.5)*spread,
				),
			},
			Color: color,
			Life:  1,
		})
	}
}

// Update advances every particle, then drops the expired ones in a single
// compaction pass after iteration.
func (ps *Particles) Update(dt float64) {
	for i := range ps.items {
		p := &ps.items[i]
		p.Vel.Y += ps.gravity * dt
		p.Integrate(dt)
		p.Life -= ps.decay * dt
	}

	live := ps.items[:0]
	for _, p := range ps.items {
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	ps.items = live
}

// Len returns the number of live particles.
func (ps *Particles) Len() int {
	return len(ps.items)
}

// All returns the live particles. The slice is only valid until the next
// Update or Burst and must not be modified.
func (ps *Particles) All() []Particle {
	return ps.items
}
