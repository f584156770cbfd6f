// Package loop schedules simulation frames outside of any UI toolkit: a
// frame clock that normalizes wall time into dt, generation tokens that
// turn stale frame callbacks into no-ops, and a headless driver.
package loop

import (
	"sync/atomic"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// NominalFrame is the duration of one dt = 1 frame.
const NominalFrame = time.Second / core.NominalTickRate

// Clock converts frame timestamps into dt, the elapsed time as a fraction
// of a nominal frame, clamped to [core.MinDT, core.MaxDT].
type Clock struct {
	last    time.Time
	started bool
}

// Advance records now and returns the dt since the previous call. The
// first call after construction or Reset returns 1.
func (c *Clock) Advance(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 1
	}
	elapsed := now.Sub(c.last)
	c.last = now
	return core.ClampDT(float64(elapsed) / float64(NominalFrame))
}

// Reset forgets the previous timestamp, e.g. after a pause.
func (c *Clock) Reset() {
	c.started = false
}

// Generation hands out tokens that identify one run of a frame loop.
// Advancing the generation invalidates every token issued before.
type Generation struct {
	n atomic.Uint64
}

// Next starts a new generation and returns its token.
func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

// Current returns the live token.
func (g *Generation) Current() uint64 {
	return g.n.Load()
}

// Valid reports whether token belongs to the live generation.
func (g *Generation) Valid(token uint64) bool {
	return token == g.n.Load()
}
