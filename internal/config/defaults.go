package config

import (
	_ "embed"
)

//go:embed defaults/adventure.yaml
var defaultAdventureYAML []byte

//go:embed defaults/marathon.yaml
var defaultMarathonYAML []byte

// DefaultAdventureConfig returns the default adventure configuration.
func DefaultAdventureConfig() AdventureConfig {
	return AdventureConfig{
		Physics: PhysicsConfig{
			Movement:     "instant",
			MoveSpeed:    5,
			Friction:     0.8,
			Gravity:      0.8,
			JumpVelocity: -14,
			MaxFallSpeed: 16,
			Resolver:     "mtv",
		},
		Player: PlayerConfig{
			Width:             40,
			Height:            60,
			Lives:             3,
			InvulnerableTicks: 60,
			AttackTicks:       20,
			AttackReach:       60,
			StompBounce:       -8,
		},
		Enemies: EnemyConfig{
			Width:   40,
			Height:  50,
			Speed:   2,
			Gravity: true,
		},
		Scoring: ScoringConfig{
			Stomp:   100,
			Collect: 50,
		},
		Camera: CameraConfig{
			Lead:      1.0 / 3,
			Smoothing: 0.1,
		},
		World: WorldConfig{
			ViewportWidth:  1200,
			ViewportHeight: 660,
			FallLimit:      1000,
			ParticleDecay:  0.02,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultMarathonConfig returns the default marathon configuration.
func DefaultMarathonConfig() MarathonConfig {
	return MarathonConfig{
		Physics: PhysicsConfig{
			Movement:     "accelerate",
			MoveSpeed:    9,
			Acceleration: 0.8,
			Friction:     0.88,
			Gravity:      1.2,
			JumpVelocity: -24,
			JumpCut:      2.5,
			MaxFallSpeed: 16,
			Resolver:     "mtv",
		},
		Player: PlayerConfig{
			Width:       64,
			Height:      68,
			StompBounce: -8,
		},
		Enemies: EnemyConfig{
			Width:  48,
			Height: 60,
			Speed:  2,
		},
		Scoring: ScoringConfig{
			Stomp:   100,
			Collect: 50,
		},
		Camera: CameraConfig{
			Lead:      1.0 / 3,
			Smoothing: 0.1,
		},
		World: WorldConfig{
			ViewportWidth:  1024,
			ViewportHeight: 512,
			ParticleDecay:  0.02,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 3600,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
	}
}
