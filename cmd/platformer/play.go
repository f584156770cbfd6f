package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagWatch      bool
	flagMute       bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump (hold for a higher jump)
  X/J              - Attack (adventure)
  Enter            - Start / play again
  P                - Pause
  R                - Restart after the run ends
  M                - Toggle sound
  Ctrl+S           - Save a text screenshot
  Esc/Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Enemies start slow, speed up with score and time
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  platformer play adventure
  platformer play marathon --difficulty hard
  platformer play adventure --level ./castle.yaml --watch
  platformer play marathon --config ./my-marathon.yaml --mute`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd, simCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
	for _, cmd := range []*cobra.Command{playCmd, simCmd} {
		cmd.Flags().StringVar(&flagLevel, "level", "", "Path to a custom level YAML")
	}
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
		cmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0..1)")
	}
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level and config when their files change")
}

// createGame instantiates a game and applies the command-line settings.
func createGame(gameID string) (registry.Game, error) {
	if !registry.Exists(gameID) {
		return nil, fmt.Errorf("unknown game %q (run 'platformer list' to see available games)", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	if c, ok := game.(registry.Configurable); ok {
		c.SetConfigPath(flagConfig)
		c.SetLevelPath(flagLevel)
		if err := c.SetDifficultyPreset(flagDifficulty); err != nil {
			return nil, err
		}
	}
	return game, nil
}

// openAudio starts the speaker. Without a sound device the game runs silent.
func openAudio(logger *log.Logger) *audio.Player {
	player := audio.NewPlayer(flagVolume)
	player.SetMuted(flagMute)
	if flagMute {
		return player
	}
	if err := player.Initialize(); err != nil {
		logger.Warn("audio unavailable, running silent", "error", err)
	}
	return player
}

// openStore opens the scores database; games still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closeLog := openFileLogger()
	defer closeLog()

	game, err := createGame(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	player := openAudio(logger)

	opts := tui.Options{Logger: logger, Audio: player}
	if flagWatch {
		for _, p := range []string{flagLevel, flagConfig} {
			if p != "" {
				opts.WatchPaths = append(opts.WatchPaths, p)
			}
		}
		if len(opts.WatchPaths) == 0 {
			fmt.Fprintln(os.Stderr, "Warning: --watch needs --level or --config; nothing to watch")
		}
	}

	logger.Info("starting game", "game", game.ID(), "level", flagLevel, "difficulty", flagDifficulty)
	runErr := tui.Run(game, store, runtimeConfig(), opts)

	player.Cleanup()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game stopped", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
