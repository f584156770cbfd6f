// Package levels loads level definitions from YAML. Built-in levels are
// embedded in the binary; custom ones are read from disk and can be watched
// for changes.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
)

//go:embed defaults/*.yaml
var builtinFS embed.FS

// Mode names the game a level is written for.
type Mode string

const (
	Adventure Mode = "adventure"
	Marathon  Mode = "marathon"
)

// ValidationError is returned for malformed level data.
type ValidationError = platformer.ValidationError

// Def is a parsed level together with the mode it targets.
type Def struct {
	Mode  Mode
	Level *platformer.Level
	Path  string // empty for built-in levels
}

// Load reads and parses a level file.
func Load(path string) (*Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading %s: %w", path, err)
	}
	if !IsLevelFile(path) {
		return nil, fmt.Errorf("levels: unsupported extension %q", filepath.Ext(path))
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing %s: %w", path, err)
	}
	def.Path = path
	if def.Level.ID == "" {
		def.Level.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// Default returns the built-in level for a mode.
func Default(mode Mode) (*Def, error) {
	data, err := builtinFS.ReadFile("defaults/" + string(mode) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("levels: no built-in level for mode %q", mode)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: built-in %s: %w", mode, err)
	}
	return def, nil
}

// Builtin lists the modes that have a built-in level, sorted.
func Builtin() []Mode {
	entries, err := builtinFS.ReadDir("defaults")
	if err != nil {
		return nil
	}
	var modes []Mode
	for _, e := range entries {
		if IsLevelFile(e.Name()) {
			modes = append(modes, Mode(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))))
		}
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}

// Resolve returns the level at path, or the built-in one for mode when path
// is empty. The level must target mode.
func Resolve(mode Mode, path string) (*Def, error) {
	var (
		def *Def
		err error
	)
	if path == "" {
		def, err = Default(mode)
	} else {
		def, err = Load(path)
	}
	if err != nil {
		return nil, err
	}
	if def.Mode != mode {
		return nil, fmt.Errorf("levels: %s is a %s level, expected %s", def.Level.ID, def.Mode, mode)
	}
	return def, nil
}

// Validate checks the level for the given player size. Beyond the
// simulation's own checks, a level must place at least one enemy.
func Validate(def *Def, playerSize core.Vec2) error {
	if def == nil || def.Level == nil {
		return errors.New("levels: nil level")
	}
	if def.Mode != Adventure && def.Mode != Marathon {
		return ValidationError{Code: "UNKNOWN_MODE", Message: fmt.Sprintf("unknown mode %q", def.Mode)}
	}
	if err := def.Level.Validate(playerSize); err != nil {
		return err
	}
	if len(def.Level.Enemies) == 0 {
		return ValidationError{Code: "NO_ENEMIES", Message: "level has no enemies"}
	}
	return nil
}

// IsLevelFile reports whether the path has a level file extension.
func IsLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
