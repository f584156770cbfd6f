// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Game is the core interface that every platformer mode implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, audio and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "adventure").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh session from the game's level and tuning.
	// Called once at start and again on restart. A malformed level or
	// config is reported here and leaves the game unplayable.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one frame of dt nominal ticks.
	// Input is abstracted to platform-level actions (Jump, Pause, etc.).
	// Returns the state after the tick and the events it produced.
	Step(in core.InputFrame, dt float64) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, finished, paused).
	State() core.GameState
}

// RecordKeeper is implemented by games that show a persisted personal
// record. The host loads the record before play and stores it afterwards.
type RecordKeeper interface {
	// RecordKey is the storage key of the record.
	RecordKey() string
	// SetRecord tells the game the stored value.
	SetRecord(value int)
	// Record returns the value achieved in the current session.
	Record() int
}

// Configurable is implemented by games that accept host settings before
// the first Reset. Empty strings select the defaults.
type Configurable interface {
	SetConfigPath(path string)
	SetDifficultyPreset(preset string) error
	SetLevelPath(path string)
}

// Loggable is implemented by games that report problems they can recover
// from, such as a failed restart. Hosts pass their logger before play.
type Loggable interface {
	SetLogger(logger *log.Logger)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
