package config

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
)

// Rules converts the adventure tuning into simulation rules.
func (c AdventureConfig) Rules() (platformer.Rules, error) {
	return buildRules(c.Physics, c.Player, c.Enemies, c.Scoring, c.Camera, c.World, false)
}

// Rules converts the marathon tuning into simulation rules. The marathon
// always tracks distance.
func (c MarathonConfig) Rules() (platformer.Rules, error) {
	return buildRules(c.Physics, c.Player, c.Enemies, c.Scoring, c.Camera, c.World, true)
}

func buildRules(p PhysicsConfig, pl PlayerConfig, e EnemyConfig, s ScoringConfig, c CameraConfig, w WorldConfig, trackDistance bool) (platformer.Rules, error) {
	mode, err := parseMovement(p.Movement)
	if err != nil {
		return platformer.Rules{}, err
	}
	resolver, err := parseResolver(p.Resolver)
	if err != nil {
		return platformer.Rules{}, err
	}

	fallLimit := w.FallLimit
	if fallLimit == 0 {
		fallLimit = w.ViewportHeight
	}

	return platformer.Rules{
		Motion: platformer.Motion{
			Mode:         mode,
			MoveSpeed:    p.MoveSpeed,
			Acceleration: p.Acceleration,
			Friction:     p.Friction,
			Gravity:      p.Gravity,
			JumpVelocity: p.JumpVelocity,
			JumpCut:      p.JumpCut,
			MaxFallSpeed: p.MaxFallSpeed,
		},
		Resolver:          resolver,
		PlayerSize:        core.V(pl.Width, pl.Height),
		EnemySize:         core.V(e.Width, e.Height),
		EnemySpeed:        e.Speed,
		EnemyGravity:      e.Gravity,
		Lives:             pl.Lives,
		InvulnerableTicks: pl.InvulnerableTicks,
		AttackTicks:       pl.AttackTicks,
		AttackReach:       pl.AttackReach,
		StompBounce:       pl.StompBounce,
		StompReward:       s.Stomp,
		CollectReward:     s.Collect,
		FallLimit:         fallLimit,
		Viewport:          core.V(w.ViewportWidth, w.ViewportHeight),
		CameraLead:        c.Lead,
		CameraSmoothing:   c.Smoothing,
		ParticleDecay:     w.ParticleDecay,
		TrackDistance:     trackDistance,
	}, nil
}

func parseMovement(s string) (platformer.MoveMode, error) {
	switch s {
	case "", "instant":
		return platformer.MoveInstant, nil
	case "accelerate":
		return platformer.MoveAccelerate, nil
	default:
		return 0, fmt.Errorf("config: unknown movement %q (want instant or accelerate)", s)
	}
}

func parseResolver(s string) (platformer.Resolver, error) {
	switch s {
	case "", "mtv":
		return platformer.ResolveMTV, nil
	case "vertical":
		return platformer.ResolveVertical, nil
	default:
		return nil, fmt.Errorf("config: unknown resolver %q (want mtv or vertical)", s)
	}
}
