package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [file...]",
	Short: "List built-in levels or validate level files",
	Long: `Without arguments, list the built-in levels. With files, parse and
validate each one against its mode's player size and report problems.

Examples:
  platformer levels
  platformer levels ./castle.yaml ./sprint.yaml`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagConfig, "config", "", "Config YAML whose player size is used for validation")
}

func runLevels(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		listLevels()
		return nil
	}

	failed := 0
	for _, path := range args {
		def, err := levels.Load(path)
		if err == nil {
			err = validateLevel(def)
		}
		if err != nil {
			failed++
			var ve levels.ValidationError
			if errors.As(err, &ve) {
				fmt.Printf("FAIL  %s  [%s] %s\n", path, ve.Code, ve.Message)
			} else {
				fmt.Printf("FAIL  %s  %v\n", path, err)
			}
			continue
		}
		fmt.Printf("OK    %s  %s\n", path, describeLevel(def))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d level files are invalid", failed, len(args))
	}
	return nil
}

func listLevels() {
	fmt.Println("Built-in levels:")
	fmt.Println()
	for _, mode := range levels.Builtin() {
		def, err := levels.Default(mode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %-10s  error: %v\n", mode, err)
			continue
		}
		fmt.Printf("  %-10s  %s\n", mode, describeLevel(def))
	}
}

// validateLevel checks a level with the player size of its mode's config.
func validateLevel(def *levels.Def) error {
	size, err := playerSize(def.Mode)
	if err != nil {
		return err
	}
	return levels.Validate(def, size)
}

func playerSize(mode levels.Mode) (core.Vec2, error) {
	switch mode {
	case levels.Adventure:
		cfg, err := config.LoadAdventure(flagConfig)
		if err != nil {
			return core.Vec2{}, err
		}
		return core.V(cfg.Player.Width, cfg.Player.Height), nil
	case levels.Marathon:
		cfg, err := config.LoadMarathon(flagConfig)
		if err != nil {
			return core.Vec2{}, err
		}
		return core.V(cfg.Player.Width, cfg.Player.Height), nil
	}
	return core.Vec2{}, levels.ValidationError{Code: "UNKNOWN_MODE", Message: fmt.Sprintf("unknown mode %q", mode)}
}

func describeLevel(def *levels.Def) string {
	l := def.Level
	return fmt.Sprintf("%s (%q) length %.0f, %d platforms, %d enemies, %d collectibles",
		l.ID, l.Name, l.Length, len(l.Platforms), len(l.Enemies), len(l.Collectibles))
}
