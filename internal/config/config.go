// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer games.
package config

// AdventureConfig contains all configuration for the adventure game.
type AdventureConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Camera     CameraConfig     `yaml:"camera"`
	World      WorldConfig      `yaml:"world"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MarathonConfig contains all configuration for the marathon game.
type MarathonConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Camera     CameraConfig     `yaml:"camera"`
	World      WorldConfig      `yaml:"world"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines movement parameters. Velocities are in world units
// per nominal 60 Hz frame.
type PhysicsConfig struct {
	Movement     string  `yaml:"movement"` // "instant" or "accelerate"
	MoveSpeed    float64 `yaml:"move_speed"`
	Acceleration float64 `yaml:"acceleration"`
	Friction     float64 `yaml:"friction"`
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	JumpCut      float64 `yaml:"jump_cut"` // gravity multiplier when jump is released mid-rise
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	Resolver     string  `yaml:"resolver"` // "mtv" or "vertical"
}

// PlayerConfig defines the player body and combat parameters.
type PlayerConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	Lives             int     `yaml:"lives"` // 0 means a single life
	InvulnerableTicks int     `yaml:"invulnerable_ticks"`
	AttackTicks       int     `yaml:"attack_ticks"` // 0 disables attacking
	AttackReach       float64 `yaml:"attack_reach"`
	StompBounce       float64 `yaml:"stomp_bounce"`
}

// EnemyConfig defines enemy parameters.
type EnemyConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"`
	Gravity bool    `yaml:"gravity"`
}

// ScoringConfig defines score rewards.
type ScoringConfig struct {
	Stomp   int `yaml:"stomp"`
	Collect int `yaml:"collect"`
}

// CameraConfig defines the follow camera.
type CameraConfig struct {
	Lead      float64 `yaml:"lead"`      // fraction of the viewport left of the player
	Smoothing float64 `yaml:"smoothing"` // fraction of the gap closed per frame
}

// WorldConfig defines the viewport and world limits.
type WorldConfig struct {
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
	FallLimit      float64 `yaml:"fall_limit"` // 0 means the viewport height
	ParticleDecay  float64 `yaml:"particle_decay"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset parses a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
