package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAdventure loads adventure configuration.
// Search order: customPath -> ~/.platformer/configs/adventure.yaml -> ./configs/adventure.yaml -> embedded default
func LoadAdventure(customPath string) (AdventureConfig, error) {
	return load("adventure.yaml", customPath, defaultAdventureYAML, DefaultAdventureConfig)
}

// LoadMarathon loads marathon configuration.
// Search order: customPath -> ~/.platformer/configs/marathon.yaml -> ./configs/marathon.yaml -> embedded default
func LoadMarathon(customPath string) (MarathonConfig, error) {
	return load("marathon.yaml", customPath, defaultMarathonYAML, DefaultMarathonConfig)
}

// load implements the search order shared by every game. Values missing
// from a file keep their hard-coded defaults. Only an explicit customPath
// can fail; every other source falls through to the next one.
func load[T any](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := decode(userCfgPath, defaults); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := decode(filepath.Join("configs", filename), defaults); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := defaults()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decode[T any](path string, defaults func() T) (T, bool) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaults(), false
	}
	return cfg, true
}

// BaseDir returns ~/.platformer, or empty if home is unavailable.
func BaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	base := BaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "configs", filename)
}

// applyProgression switches difficulty progression on or off for a preset.
func applyProgression(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
	} else {
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ApplyAdventurePreset modifies the config based on a difficulty preset.
func ApplyAdventurePreset(cfg *AdventureConfig, preset DifficultyPreset) {
	applyProgression(&cfg.Difficulty, preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Player.InvulnerableTicks = 90
		cfg.Enemies.Speed = 1.5
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Player.InvulnerableTicks = 45
		cfg.Enemies.Speed = 3
	}
}

// ApplyMarathonPreset modifies the config based on a difficulty preset.
func ApplyMarathonPreset(cfg *MarathonConfig, preset DifficultyPreset) {
	applyProgression(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Enemies.Speed = 1.5
		cfg.Physics.MaxFallSpeed = 14
	case DifficultyHard:
		cfg.Enemies.Speed = 3
		cfg.Difficulty.Scaling.SpeedMultiplier = 2
	}
}
