package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/loop"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Options holds the optional collaborators of a game screen.
type Options struct {
	// Logger receives host diagnostics. Nil discards them.
	Logger *log.Logger
	// Audio plays sound cues. Nil runs silent.
	Audio *audio.Player
	// WatchPaths are level files or directories; a change reloads the game.
	WatchPaths []string
	// ScreenshotDir is where ctrl+s writes. Empty uses ~/.platformer/screenshots.
	ScreenshotDir string
}

// levelChangedMsg reports that a watched level file changed on disk.
type levelChangedMsg struct{ Path string }

// watchErrMsg carries a watcher failure.
type watchErrMsg struct{ Err error }

// Model is the Bubble Tea model for running a platformer game.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	store   *storage.Store
	config  core.RuntimeConfig
	keys    *KeyMapper
	tracker *KeyTracker
	clock   *loop.Clock
	gen     *loop.Generation
	token   uint64
	logger  *log.Logger
	audio   *audio.Player
	events  core.Observer
	watcher *levels.Watcher
	shotDir string

	state    core.GameState
	finished bool // whether the finished run has been recorded
	quitting bool
}

// NewModel creates a model for a game that has already been Reset.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if lg, ok := game.(registry.Loggable); ok {
		lg.SetLogger(logger)
	}
	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = filepath.Join(os.Getenv("HOME"), ".platformer", "screenshots")
	}

	gen := &loop.Generation{}
	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		config:  cfg,
		keys:    NewKeyMapper(),
		tracker: NewKeyTracker(),
		clock:   &loop.Clock{},
		gen:     gen,
		token:   gen.Next(),
		logger:  logger,
		audio:   opts.Audio,
		events:  hostObserver(game, logger, opts.Audio),
		shotDir: shotDir,
		state:   game.State(),
	}
}

// Init starts the tick loop and, when watching, the level listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate, m.token), waitForLevel(m.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case levelChangedMsg:
		m.reload(msg.Path)
		return m, waitForLevel(m.watcher)

	case watchErrMsg:
		m.logger.Warn("level watcher", "error", msg.Err)
		return m, waitForLevel(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "m":
		if m.audio != nil {
			m.audio.SetMuted(!m.audio.Muted())
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit || action == core.ActionBack {
		return m.stop()
	}
	m.tracker.Press(action, now)
	return m, nil
}

// stop invalidates pending ticks and leaves the program.
func (m Model) stop() (tea.Model, tea.Cmd) {
	m.gen.Next()
	m.quitting = true
	return m, tea.Quit
}

// handleTick runs one simulation frame.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.gen.Valid(msg.Gen) {
		return m, nil
	}

	dt := m.clock.Advance(msg.At)
	result := m.game.Step(m.tracker.Frame(msg.At), dt)
	for _, e := range result.Events {
		m.events.Notify(e)
	}
	m.settle(result.State)

	return m, tickCmd(m.config.TickRate, msg.Gen)
}

// hostObserver fans session events out to the log and, when present, the
// audio player.
func hostObserver(game registry.Game, logger *log.Logger, player *audio.Player) core.Observer {
	obs := core.Multi{core.Callbacks{
		OnGameOver: func(score int) {
			logger.Info("game over", "game", game.ID(), "score", score)
		},
		OnWin: func(score int) {
			logger.Info("level cleared", "game", game.ID(), "score", score)
		},
		OnLivesChanged: func(lives int) {
			logger.Debug("life lost", "lives", lives)
		},
	}}
	if player != nil {
		obs = append(obs, player)
	}
	return obs
}

// settle records a run the first frame it finishes. A restarted game
// arms the recording again.
func (m *Model) settle(state core.GameState) {
	if state.Finished() && !m.finished {
		m.recordRun(state)
	}
	m.finished = state.Finished()
	m.state = state
}

func (m *Model) recordRun(state core.GameState) {
	if m.store == nil {
		return
	}
	if state.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), state.Score, state.Won); err != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}

	rk, ok := m.game.(registry.RecordKeeper)
	if !ok {
		return
	}
	best, err := m.store.RecordDistance(rk.RecordKey(), rk.Record())
	if err != nil {
		m.logger.Warn("could not save record", "key", rk.RecordKey(), "error", err)
		return
	}
	rk.SetRecord(best)
}

// reload rebuilds the game after its level file changed. A broken file
// keeps the current session running.
func (m *Model) reload(path string) {
	if err := m.game.Reset(m.config); err != nil {
		m.logger.Warn("level reload failed", "path", path, "error", err)
		return
	}
	m.logger.Info("level reloaded", "path", path)
	m.tracker.Release()
	m.clock.Reset()
	m.finished = false
	m.state = m.game.State()
}

// waitForLevel blocks on the watcher and converts its next report to a message.
func waitForLevel(w *levels.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return levelChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{Err: err}
		}
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen, render.HUDRows)
}

// Run resets the game and plays it until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := game.Reset(cfg); err != nil {
		return err
	}
	LoadRecord(game, store, opts.Logger)

	model := NewModel(game, store, cfg, opts)
	if len(opts.WatchPaths) > 0 {
		w, err := levels.Watch(opts.WatchPaths...)
		if err != nil {
			model.logger.Warn("could not watch levels", "error", err)
		} else {
			defer w.Close()
			model.watcher = w
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// LoadRecord hands the stored personal record to games that show one.
func LoadRecord(game registry.Game, store *storage.Store, logger *log.Logger) {
	rk, ok := game.(registry.RecordKeeper)
	if !ok || store == nil {
		return
	}
	best, err := store.BestDistance(rk.RecordKey())
	if err != nil {
		if logger != nil {
			logger.Warn("could not load record", "key", rk.RecordKey(), "error", err)
		}
		return
	}
	rk.SetRecord(best)
}
