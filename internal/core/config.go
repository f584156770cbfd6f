package core

import "math"

// Frame-time bounds for the normalized dt passed to Step. A dt of 1.0 is one
// nominal 60 Hz frame.
const (
	NominalTickRate = 60
	MinDT           = 0.05
	MaxDT           = 2.0
)

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frames per second (default 60)
	Seed     int64 // RNG seed for particles
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: NominalTickRate,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// NominalDT returns the dt for one frame at the configured tick rate.
func (c RuntimeConfig) NominalDT() float64 {
	if c.TickRate <= 0 {
		return 1
	}
	return ClampDT(float64(NominalTickRate) / float64(c.TickRate))
}

// ClampDT maps any frame-time ratio into [MinDT, MaxDT]. NaN and
// infinities, which come from degenerate timestamps, become one nominal frame.
func ClampDT(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 1
	}
	return ClampF(dt, MinDT, MaxDT)
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Session ended by losing
	Won      bool // Session ended by reaching the goal
	Paused   bool // Paused by the player
}

// Finished reports whether the session reached a terminal phase.
func (s GameState) Finished() bool {
	return s.GameOver || s.Won
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event // Lifecycle events emitted during the tick, in order
}
