package platformer

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Camera is the horizontal scroll offset. It eases toward a target that
// keeps the player Lead of the viewport from the left edge and never shows
// anything outside [0, LevelLength].
type Camera struct {
	X           float64
	Lead        float64 // fraction of the viewport left of the player, e.g. 1/3
	Smoothing   float64 // fraction of the gap closed per nominal frame
	ViewportW   float64
	LevelLength float64
}

// Target returns the unclamped offset the camera is easing toward.
func (c *Camera) Target(playerX float64) float64 {
	return playerX - c.ViewportW*c.Lead
}

// Limit returns the largest valid offset.
func (c *Camera) Limit() float64 {
	return math.Max(0, c.LevelLength-c.ViewportW)
}

// Follow eases toward the player and clamps the result.
func (c *Camera) Follow(playerX, dt float64) {
	k := core.ClampF(c.Smoothing*dt, 0, 1)
	c.X += (c.Target(playerX) - c.X) * k
	c.clamp()
}

// Snap jumps straight to the clamped target.
func (c *Camera) Snap(playerX float64) {
	c.X = c.Target(playerX)
	c.clamp()
}

func (c *Camera) clamp() {
	if math.IsNaN(c.X) {
		c.X = 0
	}
	c.X = core.ClampF(c.X, 0, c.Limit())
}
