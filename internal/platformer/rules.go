package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Rules is the complete tuning of a game mode. A session copies its rules
// at construction; changing the value afterwards has no effect on it.
type Rules struct {
	Motion   Motion
	Resolver Resolver // nil means ResolveMTV

	PlayerSize core.Vec2
	EnemySize  core.Vec2
	EnemySpeed float64
	// EnemyGravity makes enemies fall and rest on platforms. Without it they
	// hover at their spawn height.
	EnemyGravity bool

	// Lives is the number of lives at spawn. Zero means a single life: any
	// hit or fall ends the session without a LivesChanged event.
	Lives             int
	InvulnerableTicks int
	AttackTicks       int     // zero disables attacking
	AttackReach       float64 // hitbox width in front of the player

	StompBounce   float64 // y velocity given to the player on a stomp, negative is up
	StompReward   int
	CollectReward int

	// FallLimit is the y below which the player is considered lost.
	FallLimit float64

	Viewport        core.Vec2
	CameraLead      float64
	CameraSmoothing float64

	ParticleDecay float64
	// TrackDistance enables the furthest-x counter and its events.
	TrackDistance bool
}

func (r Rules) validate() error {
	switch {
	case !r.PlayerSize.Finite() || r.PlayerSize.X <= 0 || r.PlayerSize.Y <= 0:
		return invalid("BAD_RULES", "player size must be positive, got %+v", r.PlayerSize)
	case !r.EnemySize.Finite() || r.EnemySize.X <= 0 || r.EnemySize.Y <= 0:
		return invalid("BAD_RULES", "enemy size must be positive, got %+v", r.EnemySize)
	case !(r.Motion.MoveSpeed > 0):
		return invalid("BAD_RULES", "move speed must be positive, got %v", r.Motion.MoveSpeed)
	case !(r.Motion.Gravity > 0):
		return invalid("BAD_RULES", "gravity must be positive, got %v", r.Motion.Gravity)
	case !(r.Motion.JumpVelocity < 0):
		return invalid("BAD_RULES", "jump velocity must point up, got %v", r.Motion.JumpVelocity)
	case !(r.Motion.MaxFallSpeed > 0):
		return invalid("BAD_RULES", "max fall speed must be positive, got %v", r.Motion.MaxFallSpeed)
	case r.Motion.Mode == MoveAccelerate && !(r.Motion.Acceleration > 0):
		return invalid("BAD_RULES", "acceleration must be positive, got %v", r.Motion.Acceleration)
	case !(r.Motion.Friction >= 0 && r.Motion.Friction <= 1):
		return invalid("BAD_RULES", "friction must lie in [0, 1], got %v", r.Motion.Friction)
	case r.EnemySpeed < 0:
		return invalid("BAD_RULES", "enemy speed must not be negative, got %v", r.EnemySpeed)
	case r.Lives < 0 || r.InvulnerableTicks < 0 || r.AttackTicks < 0:
		return invalid("BAD_RULES", "lives and tick counters must not be negative")
	case !(r.Viewport.X > 0):
		return invalid("BAD_RULES", "viewport width must be positive, got %v", r.Viewport.X)
	case !(r.CameraLead >= 0 && r.CameraLead <= 1):
		return invalid("BAD_RULES", "camera lead must lie in [0, 1], got %v", r.CameraLead)
	case !(r.CameraSmoothing > 0 && r.CameraSmoothing <= 1):
		return invalid("BAD_RULES", "camera smoothing must lie in (0, 1], got %v", r.CameraSmoothing)
	case !(r.ParticleDecay > 0):
		return invalid("BAD_RULES", "particle decay must be positive, got %v", r.ParticleDecay)
	}
	return nil
}

func (r Rules) resolver() Resolver {
	if r.Resolver == nil {
		return ResolveMTV
	}
	return r.Resolver
}
