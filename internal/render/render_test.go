package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
)

func testSession(t *testing.T) *platformer.Session {
	t.Helper()
	level := &platformer.Level{
		ID:        "render",
		Length:    1200,
		Height:    600,
		Spawn:     core.V(100, 440),
		Platforms: []platformer.Platform{{Box: core.Box{X: 0, Y: 500, W: 1200, H: 100}, Kind: platformer.Ground}},
		Enemies: []platformer.EnemySpawn{
			{Kind: platformer.EnemyGrunt, Pos: core.V(600, 450), PatrolRange: 50},
		},
		Collectibles: []core.Box{{X: 300, Y: 400, W: 30, H: 30}},
		Goal:         platformer.Goal{Kind: platformer.GoalFlag, FlagX: 1100},
	}
	rules := platformer.Rules{
		Motion: platformer.Motion{
			MoveSpeed:    5,
			Friction:     0.8,
			Gravity:      0.8,
			JumpVelocity: -14,
			MaxFallSpeed: 16,
		},
		PlayerSize:        core.V(40, 60),
		EnemySize:         core.V(40, 50),
		EnemySpeed:        2,
		Lives:             3,
		InvulnerableTicks: 60,
		FallLimit:         1000,
		Viewport:          core.V(1200, 660),
		CameraLead:        1.0 / 3,
		CameraSmoothing:   0.1,
		ParticleDecay:     0.02,
	}
	s, err := platformer.NewSession(level, rules, 1, nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func TestProjector(t *testing.T) {
	p := NewProjector(core.V(1200, 660), 80, 24, HUDRows)

	if got := p.CellSize(); got != core.V(15, 30) {
		t.Fatalf("CellSize() = %v, expected (15, 30)", got)
	}

	tests := []struct {
		name   string
		camera float64
		box    core.Box
		want   core.Rect
	}{
		{"player", 0, core.Box{X: 100, Y: 440, W: 40, H: 60}, core.NewRect(6, 16, 4, 3)},
		{"scrolled", 90, core.Box{X: 100, Y: 440, W: 40, H: 60}, core.NewRect(0, 16, 4, 3)},
		{"tiny box keeps one cell", 0, core.Box{X: 16, Y: 31, W: 1, H: 1}, core.NewRect(1, 3, 1, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p.CameraX = tc.camera
			if got := p.Rect(tc.box); got != tc.want {
				t.Errorf("Rect(%v) = %+v, expected %+v", tc.box, got, tc.want)
			}
		})
	}

	dst := core.NewScreen(80, 24)
	p.CameraX = 0
	if p.Visible(core.NewRect(0, 0, 80, 2), dst) {
		t.Error("HUD rows should not count as visible play area")
	}
	if !p.Visible(core.NewRect(79, 23, 5, 5), dst) {
		t.Error("rect overlapping the bottom-right corner should be visible")
	}
	if p.Visible(core.NewRect(80, 5, 3, 3), dst) {
		t.Error("rect right of the screen should not be visible")
	}
}

func TestDefaultSprites(t *testing.T) {
	set := DefaultSprites()
	if set == nil {
		t.Fatal("built-in sprite sheet failed to parse")
	}
	for _, name := range []string{SpritePlayerRight, SpritePlayerLeft, SpriteGrunt, SpriteBrute, SpriteCoin, SpriteGoal} {
		if _, ok := set.Lookup(name); !ok {
			t.Errorf("missing sprite %q", name)
		}
	}
	if got := len(set.Names()); got != 6 {
		t.Errorf("Names() has %d entries, expected 6", got)
	}
}

func TestParseSpritesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "player: [1, 2"},
		{"no rows", "player:\n  color: red\n"},
		{"bad color", "player:\n  color: chartreuse\n  rows: [\"x\"]\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseSprites([]byte(tc.doc)); err == nil {
				t.Error("ParseSprites() succeeded, expected an error")
			}
		})
	}
}

func TestSpriteDrawFallsBack(t *testing.T) {
	set, err := ParseSprites([]byte("box:\n  color: red\n  rows: [\"ab\", \"cd\"]\n"))
	if err != nil {
		t.Fatal(err)
	}

	dst := core.NewScreen(10, 5)
	if !set.Draw(dst, core.NewRect(0, 0, 4, 3), "box", '#', core.ColorGray) {
		t.Error("sprite that fits was not drawn")
	}
	// Bottom-aligned, centred: x0 = 1, y0 = 1.
	if dst.Get(1, 1) != 'a' || dst.Get(2, 2) != 'd' {
		t.Errorf("sprite misplaced:\n%s", dst.String())
	}

	dst.Clear()
	if set.Draw(dst, core.NewRect(0, 0, 1, 1), "box", '#', core.ColorGray) {
		t.Error("oversized sprite should fall back")
	}
	if dst.GetCell(0, 0) != (core.Cell{Rune: '#', Color: core.ColorGray}) {
		t.Errorf("fallback cell = %+v", dst.GetCell(0, 0))
	}

	var missing *SpriteSet
	dst.Clear()
	if missing.Draw(dst, core.NewRect(2, 2, 2, 1), "box", '%', core.ColorRed) {
		t.Error("nil set should always fall back")
	}
	if dst.Get(3, 2) != '%' {
		t.Errorf("nil set fallback not drawn:\n%s", dst.String())
	}
}

func TestHUDHelpers(t *testing.T) {
	if got := Hearts(2, 3); got != "♥♥♡" {
		t.Errorf("Hearts(2, 3) = %q", got)
	}
	if got := Hearts(-1, 2); got != "♡♡" {
		t.Errorf("Hearts(-1, 2) = %q", got)
	}

	bars := []struct {
		frac float64
		want string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1.5, "████"},
	}
	for _, b := range bars {
		if got := ProgressBar(b.frac, 4); got != b.want {
			t.Errorf("ProgressBar(%v, 4) = %q, expected %q", b.frac, got, b.want)
		}
	}
	if ProgressBar(0.5, 0) != "" {
		t.Error("zero-width bar should be empty")
	}

	stars := []struct{ dist, want int }{{0, 0}, {99, 0}, {100, 1}, {5736, 57}, {-10, 0}}
	for _, s := range stars {
		if got := Stars(s.dist); got != s.want {
			t.Errorf("Stars(%d) = %d, expected %d", s.dist, got, s.want)
		}
	}

	if got := Distance(1200, 5800); got != "1200/5800" {
		t.Errorf("Distance() = %q", got)
	}
}

func TestDrawMessage(t *testing.T) {
	dst := core.NewScreen(40, 11)
	DrawMessage(dst, "GAME OVER", "Press R")
	if !strings.Contains(dst.Row(4), "GAME OVER") {
		t.Errorf("title row = %q", dst.Row(4))
	}
	if !strings.Contains(dst.Row(6), "Press R") {
		t.Errorf("subtitle row = %q", dst.Row(6))
	}
}

func TestBobAndBlink(t *testing.T) {
	if BobOffset(0, 0) != 0 {
		t.Errorf("BobOffset(0, 0) = %v, expected 0", BobOffset(0, 0))
	}
	for tick := 0; tick < 200; tick++ {
		if off := BobOffset(3, tick); off < -bobAmplitude || off > bobAmplitude {
			t.Fatalf("BobOffset out of range at tick %d: %v", tick, off)
		}
	}

	p := platformer.Player{Invulnerable: 10}
	if !Blinking(p, 0) || Blinking(p, flashPeriod) {
		t.Error("invulnerable player should blink every flash period")
	}
	p.Invulnerable = 0
	if Blinking(p, 0) {
		t.Error("vulnerable player should never blink")
	}
}

func TestDrawWorld(t *testing.T) {
	s := testSession(t)
	dst := core.NewScreen(80, 24)
	proj := NewProjector(s.Rules().Viewport, dst.Width(), dst.Height(), HUDRows)

	DrawWorld(dst, proj, s, DefaultSprites())

	checks := []struct {
		name string
		x, y int
		want rune
	}{
		{"player head", 7, 17, 'O'},
		{"player body", 7, 18, '|'},
		{"grunt", 41, 17, 'Ö'},
		{"coin", 20, 16, '◉'},
		{"flag", 74, 14, '▶'},
		{"ground top", 0, 18, '▀'},
		{"ground fill", 0, 19, '█'},
	}
	for _, c := range checks {
		if got := dst.Get(c.x, c.y); got != c.want {
			t.Errorf("%s at (%d,%d) = %q, expected %q\n%s", c.name, c.x, c.y, got, c.want, dst.String())
		}
	}
	for y := 0; y < HUDRows; y++ {
		if strings.TrimSpace(dst.Row(y)) != "" {
			t.Errorf("world drawn into HUD row %d: %q", y, dst.Row(y))
		}
	}

	dst.Clear()
	DrawWorld(dst, proj, s, nil)
	if got := dst.Get(7, 17); got != '█' {
		t.Errorf("procedural player cell = %q, expected '█'", got)
	}
}
