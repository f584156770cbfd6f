package render

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
)

const (
	bobAmplitude  = 5   // world units
	bobRate       = 0.1 // radians per tick
	flashPeriod   = 6   // ticks per blink while invulnerable
	flagPoleCells = 4
)

// BobOffset is the vertical display offset of collectible i at tick.
// It only affects drawing; the pickup box never moves.
func BobOffset(i, tick int) float64 {
	return math.Sin(float64(tick)*bobRate+float64(i)) * bobAmplitude
}

// Blinking reports whether an invulnerable player is hidden this tick.
func Blinking(p platformer.Player, tick int) bool {
	return p.Invulnerable > 0 && (tick/flashPeriod)%2 == 0
}

// DrawWorld draws the session's level and entities through proj. Dead
// enemies and collected pickups are skipped.
func DrawWorld(dst *core.Screen, proj Projector, s *platformer.Session, sprites *SpriteSet) {
	proj.CameraX = s.CameraX()
	lvl := s.Level()
	tick := s.Tick()

	for _, p := range lvl.Platforms {
		drawPlatform(dst, proj, p)
	}
	drawGoal(dst, proj, lvl, sprites)

	for i, c := range s.Collectibles() {
		if c.Collected {
			continue
		}
		box := c.Box
		box.Y += BobOffset(i, tick)
		r := proj.Rect(box)
		if proj.Visible(r, dst) {
			sprites.Draw(dst, r, SpriteCoin, 'o', core.ColorBrightYellow)
		}
	}

	for _, e := range s.Enemies() {
		if e.Dead {
			continue
		}
		r := proj.Rect(e.Box())
		if !proj.Visible(r, dst) {
			continue
		}
		if e.Kind == platformer.EnemyBrute {
			sprites.Draw(dst, r, SpriteBrute, '▓', core.ColorMagenta)
		} else {
			sprites.Draw(dst, r, SpriteGrunt, '▓', core.ColorBrightRed)
		}
	}

	for _, pt := range s.Particles() {
		x, y := proj.Point(pt.Pos)
		if y >= proj.Top {
			dst.SetCell(x, y, particleRune(pt.Life), pt.Color)
		}
	}

	player := s.Player()
	if !Blinking(player, tick) {
		r := proj.Rect(player.Box())
		name := SpritePlayerRight
		if !player.FacingRight {
			name = SpritePlayerLeft
		}
		sprites.Draw(dst, r, name, '█', core.ColorBrightCyan)
		if player.Attacking {
			drawAttack(dst, proj, player, s.Rules().AttackReach)
		}
	}
}

func drawPlatform(dst *core.Screen, proj Projector, p platformer.Platform) {
	r := proj.Rect(p.Box)
	if !proj.Visible(r, dst) {
		return
	}
	if p.Kind == platformer.Floating {
		dst.DrawRect(r, '▀', core.ColorOrange)
		return
	}
	dst.DrawRect(r, '█', core.ColorBrown)
	dst.DrawHLine(r.X, r.Y, r.W, '▀', core.ColorGreen)
}

func drawGoal(dst *core.Screen, proj Projector, lvl *platformer.Level, sprites *SpriteSet) {
	if lvl.Goal.Kind == platformer.GoalRect {
		r := proj.Rect(lvl.Goal.Box)
		if proj.Visible(r, dst) {
			sprites.Draw(dst, r, SpriteGoal, '▒', core.ColorBrightGreen)
		}
		return
	}

	// The flag stands on the highest ground under it.
	base := lvl.Height
	for _, p := range lvl.Platforms {
		if p.Kind == platformer.Ground && p.Box.X <= lvl.Goal.FlagX && lvl.Goal.FlagX < p.Box.Right() {
			base = math.Min(base, p.Box.Y)
		}
	}
	x, bottom := proj.Point(core.V(lvl.Goal.FlagX, base))
	top := bottom - flagPoleCells
	if top < proj.Top {
		top = proj.Top
	}
	dst.DrawVLine(x, top, bottom-top, '│', core.ColorWhite)
	dst.SetCell(x+1, top, '▶', core.ColorBrightRed)
}

func drawAttack(dst *core.Screen, proj Projector, p platformer.Player, reach float64) {
	r := proj.Rect(p.AttackBox(reach))
	ch := '»'
	if !p.FacingRight {
		ch = '«'
	}
	dst.DrawHLine(r.X, r.Y+r.H/2, r.W, ch, core.ColorBrightWhite)
}

func particleRune(life float64) rune {
	switch {
	case life > 0.66:
		return '*'
	case life > 0.33:
		return '+'
	default:
		return '·'
	}
}
