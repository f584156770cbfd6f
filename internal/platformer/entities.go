package platformer

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Player is the controllable body.
type Player struct {
	Body
	FacingRight  bool
	Grounded     bool // recomputed every tick by the resolver
	Lives        int  // unused in single-life modes
	Invulnerable int  // ticks of protection left
	Attacking    bool
	AttackTimer  int // ticks left on the current attack
}

// AttackBox returns the hitbox extending reach units from the leading edge.
func (p *Player) AttackBox(reach float64) core.Box {
	box := p.Box()
	if p.FacingRight {
		return core.Box{X: box.Right(), Y: box.Y, W: reach, H: box.H}
	}
	return core.Box{X: box.X - reach, Y: box.Y, W: reach, H: box.H}
}

// EnemyKind is the enemy variant. Both kinds patrol the same way.
type EnemyKind int

const (
	EnemyGrunt EnemyKind = iota
	EnemyBrute
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyGrunt:
		return "grunt"
	case EnemyBrute:
		return "brute"
	default:
		return fmt.Sprintf("EnemyKind(%d)", int(k))
	}
}

// ParseEnemyKind parses the names produced by String.
func ParseEnemyKind(s string) (EnemyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grunt", "":
		return EnemyGrunt, nil
	case "brute":
		return EnemyBrute, nil
	default:
		return 0, fmt.Errorf("unknown enemy kind %q", s)
	}
}

// Enemy patrols horizontally around StartX.
type Enemy struct {
	Body
	Kind        EnemyKind
	StartX      float64
	PatrolRange float64
	Dir         float64 // -1 or +1
	Dead        bool
}

// Bounds returns the patrol interval for the enemy's x position.
func (e *Enemy) Bounds() (lo, hi float64) {
	return e.StartX - e.PatrolRange, e.StartX + e.PatrolRange
}

// Patrol advances the enemy along its route.
func (e *Enemy) Patrol(speed, dt float64) {
	e.Pos.X += speed * e.Dir * dt
	e.keepInRange()
}

// keepInRange clamps x into the patrol interval and turns around at a bound.
func (e *Enemy) keepInRange() {
	lo, hi := e.Bounds()
	switch {
	case e.Pos.X <= lo:
		e.Pos.X = lo
		e.Dir = 1
	case e.Pos.X >= hi:
		e.Pos.X = hi
		e.Dir = -1
	}
}

// bounceOffWall turns the enemy away from whatever blocked it.
func (e *Enemy) bounceOffWall(c Contact) {
	switch {
	case c.WallRight:
		e.Dir = -1
	case c.WallLeft:
		e.Dir = 1
	}
}

// IsStomp reports whether a player overlapping the enemy is landing on it:
// moving down with its bottom edge above the enemy's vertical midpoint.
func IsStomp(player, enemy Body) bool {
	return player.Vel.Y > 0 && player.Pos.Y+player.Size.Y < enemy.Pos.Y+enemy.Size.Y/2
}

// Collectible is a one-shot pickup.
type Collectible struct {
	Box       core.Box
	Collected bool
}

// Collect marks the pickup as taken if the player box overlaps it and it
// was still available. It reports whether this call took it.
func (c *Collectible) Collect(player core.Box) bool {
	if c.Collected || !c.Box.Intersects(player) {
		return false
	}
	c.Collected = true
	return true
}
