// Package marathon implements the single-life distance run: one long level,
// momentum-based movement and a goal at the far end. The furthest distance
// ever reached is kept as a personal record.
package marathon

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

const (
	// ID is the registry and score-storage identifier.
	ID = "marathon"
	// BestDistanceKey is where the best distance is stored.
	BestDistanceKey = "marathon.best_distance"
)

const progressWidth = 20

// Game wraps a platformer session with the marathon tuning and HUD.
type Game struct {
	configPath string
	levelPath  string
	preset     config.DifficultyPreset

	cfg        config.MarathonConfig
	level      *levels.Def
	session    *platformer.Session
	events     core.Recorder
	difficulty *config.DifficultyManager
	sprites    *render.SpriteSet
	logger     *log.Logger
	best       int
	paused     bool
}

// New creates a marathon game. Call Reset before stepping it.
func New() *Game {
	return &Game{sprites: render.DefaultSprites(), logger: log.New(io.Discard)}
}

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Marathon" }

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
		return fmt.Errorf("marathon: unknown difficulty %q", preset)
	}
	g.preset = p
	return nil
}

// SetSprites replaces the sprite sheet. Nil draws everything procedurally.
func (g *Game) SetSprites(s *render.SpriteSet) { g.sprites = s }

// RecordKey implements registry.RecordKeeper.
func (g *Game) RecordKey() string { return BestDistanceKey }

// SetRecord implements registry.RecordKeeper. Negative values count as 0.
func (g *Game) SetRecord(value int) { g.best = core.Max(value, 0) }

// Record implements registry.RecordKeeper: the distance of this run.
func (g *Game) Record() int {
	if g.session == nil {
		return 0
	}
	return g.session.Distance()
}

// Best returns the larger of the stored record and the current run.
func (g *Game) Best() int {
	return core.Max(g.best, g.Record())
}

// Reset loads config and level and builds a new session waiting in the
// start phase. The stored record is kept.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, err := config.LoadMarathon(g.configPath)
	if err != nil {
		return fmt.Errorf("marathon: %w", err)
	}
	if g.preset != "" {
		config.ApplyMarathonPreset(&cfg, g.preset)
	}
	rules, err := cfg.Rules()
	if err != nil {
		return fmt.Errorf("marathon: %w", err)
	}

	def, err := levels.Resolve(levels.Marathon, g.levelPath)
	if err != nil {
		return fmt.Errorf("marathon: %w", err)
	}
	if err := levels.Validate(def, rules.PlayerSize); err != nil {
		return fmt.Errorf("marathon: level %s: %w", def.Level.ID, err)
	}

	g.events.Drain()
	session, err := platformer.NewSession(def.Level, rules, runtime.Seed, &g.events)
	if err != nil {
		return fmt.Errorf("marathon: %w", err)
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
	// The finished run still counts toward the displayed record.
	g.best = g.Best()
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

// goalX is the x position the run is measured against.
func (g *Game) goalX() float64 {
	goal := g.session.Level().Goal
	if goal.Kind == platformer.GoalFlag {
		return goal.FlagX
	}
	return goal.Box.X
}

// progress is the fraction of the way to the goal.
func (g *Game) progress() float64 {
	goal := g.goalX()
	if goal <= 0 {
		return 0
	}
	return float64(g.session.Distance()) / goal
}

// Render draws the world, HUD and any phase overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		render.DrawMessage(dst, "MARATHON", "No level loaded")
		return
	}

	proj := render.NewProjector(g.session.Rules().Viewport, dst.Width(), dst.Height(), render.HUDRows)
	render.DrawWorld(dst, proj, g.session, g.sprites)

	dist := g.session.Distance()
	left := fmt.Sprintf("Score: %d  ★ %d  %s %s",
		g.session.Score(),
		render.Stars(dist),
		render.ProgressBar(g.progress(), progressWidth),
		render.Distance(dist, g.goalX()),
	)
	right := fmt.Sprintf("Best: %d", g.Best())
	render.DrawStatus(dst, left, right)

	switch g.session.Phase() {
	case platformer.PhaseStart:
		title := g.level.Level.Name
		if title == "" {
			title = "MARATHON"
		}
		render.DrawMessage(dst, title, "Arrows run, hold Space to jump higher | Enter to start")
	case platformer.PhaseWon:
		render.DrawMessage(dst, "FINISH!", fmt.Sprintf("Distance: %d  |  Press R to run again", dist))
	case platformer.PhaseGameOver:
		render.DrawMessage(dst, "GAME OVER", fmt.Sprintf("Distance: %d  Best: %d  |  Press R to restart", dist, g.Best()))
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
