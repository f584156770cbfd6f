// Package adventure implements the lives-based platformer: run right across
// a tile-grid level, stomp or slash enemies, collect coins and pass the flag.
package adventure

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/render"
)

// ID is the registry and score-storage identifier.
const ID = "adventure"

// Game wraps a platformer session with the adventure tuning and HUD.
type Game struct {
	configPath string
	levelPath  string
	preset     config.DifficultyPreset

	cfg        config.AdventureConfig
	level      *levels.Def
	session    *platformer.Session
	events     core.Recorder
	difficulty *config.DifficultyManager
	sprites    *render.SpriteSet
	logger     *log.Logger
	paused     bool
}

// New creates an adventure game. Call Reset before stepping it.
func New() *Game {
	return &Game{sprites: render.DefaultSprites(), logger: log.New(io.Discard)}
}

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Adventure" }

// SetLogger sets where recoverable problems are reported. Nil is ignored.
func (g *Game) SetLogger(logger *log.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// SetConfigPath sets a custom config file; empty uses the search order.
func (g *Game) SetConfigPath(path string) { g.configPath = path }

// SetLevelPath sets a custom level file; empty uses the built-in level.
func (g *Game) SetLevelPath(path string) { g.levelPath = path }

// SetDifficultyPreset selects easy, normal, hard or fixed. Empty keeps the
// config file's own difficulty.
func (g *Game) SetDifficultyPreset(preset string) error {
	if preset == "" {
		g.preset = ""
		return nil
	}
	p, ok := config.ParsePreset(preset)
	if !ok {
		return fmt.Errorf("adventure: unknown difficulty %q", preset)
	}
	g.preset = p
	return nil
}

// SetSprites replaces the sprite sheet. Nil draws everything procedurally.
func (g *Game) SetSprites(s *render.SpriteSet) { g.sprites = s }

// Reset loads config and level and builds a new session waiting in the
// start phase.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, err := config.LoadAdventure(g.configPath)
	if err != nil {
		return fmt.Errorf("adventure: %w", err)
	}
	if g.preset != "" {
		config.ApplyAdventurePreset(&cfg, g.preset)
	}
	rules, err := cfg.Rules()
	if err != nil {
		return fmt.Errorf("adventure: %w", err)
	}

	def, err := levels.Resolve(levels.Adventure, g.levelPath)
	if err != nil {
		return fmt.Errorf("adventure: %w", err)
	}
	if err := levels.Validate(def, rules.PlayerSize); err != nil {
		return fmt.Errorf("adventure: level %s: %w", def.Level.ID, err)
	}

	g.events.Drain()
	session, err := platformer.NewSession(def.Level, rules, runtime.Seed, &g.events)
	if err != nil {
		return fmt.Errorf("adventure: %w", err)
	}

	g.cfg = cfg
	g.level = def
	g.session = session
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.paused = false
	return nil
}

// Step advances the game by dt nominal frames.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	switch phase := g.session.Phase(); {
	case phase == platformer.PhaseStart:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.session.Start()
		}
		return g.result()
	case phase.Terminal():
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.restart()
		}
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	speed := g.difficulty.Speed(g.cfg.Enemies.Speed, g.session.Score(), g.session.Tick())
	g.session.SetEnemySpeed(speed)
	g.session.Step(core.IntentsFrom(in), dt)
	return g.result()
}

func (g *Game) restart() {
	next, err := g.session.Restart()
	if err != nil {
		g.logger.Warn("restart failed, keeping the finished run", "game", ID, "error", err)
		return
	}
	g.events.Drain()
	g.session = next
	g.paused = false
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events.Drain()}
}

// Render draws the world, HUD and any phase overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		render.DrawMessage(dst, "ADVENTURE", "No level loaded")
		return
	}

	rules := g.session.Rules()
	proj := render.NewProjector(rules.Viewport, dst.Width(), dst.Height(), render.HUDRows)
	render.DrawWorld(dst, proj, g.session, g.sprites)

	left := fmt.Sprintf("Score: %d", g.session.Score())
	right := "Lives " + render.Hearts(g.session.Lives(), rules.Lives)
	render.DrawStatus(dst, left, right)

	switch g.session.Phase() {
	case platformer.PhaseStart:
		title := g.level.Level.Name
		if title == "" {
			title = "ADVENTURE"
		}
		render.DrawMessage(dst, title, "Arrows move, Space jumps, X attacks | Enter to start")
	case platformer.PhaseWon:
		render.DrawMessage(dst, "LEVEL CLEAR!", fmt.Sprintf("Score: %d  |  Press R to play again", g.session.Score()))
	case platformer.PhaseGameOver:
		render.DrawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.session.Score()))
	default:
		if g.paused {
			render.DrawMessage(dst, "PAUSED", "Press P to resume")
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	phase := g.session.Phase()
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: phase == platformer.PhaseGameOver,
		Won:      phase == platformer.PhaseWon,
		Paused:   g.paused,
	}
}

// Session exposes the running session for headless drivers and tests.
func (g *Game) Session() *platformer.Session { return g.session }
