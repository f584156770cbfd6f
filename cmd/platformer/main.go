// platformer runs the terminal platformer games.
//
// Usage:
//
//	platformer list              - List available games
//	platformer play <game>       - Play a game
//	platformer menu              - Start menu to pick games interactively
//	platformer scores <game>     - Show high scores for a game
//	platformer sim <game>        - Run a game headless from scripted input
//	platformer levels [file...]  - List built-in levels or validate level files
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible particles
//	--db <path>     - Set database path (default: ~/.platformer/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	// Import games to register them
	_ "github.com/vovakirdan/tui-platformer/internal/games/adventure"
	_ "github.com/vovakirdan/tui-platformer/internal/games/marathon"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Terminal platformer - run, jump and stomp in your terminal",
	Long: `A pair of side-scrolling platformer games for the terminal.

Games:
  adventure - Three lives, stomp or slash enemies, reach the flag
  marathon  - One life, run as far as you can toward the goal

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View high scores
  sim      - Run a game headless from scripted input
  levels   - List or validate level files

Examples:
  platformer play adventure
  platformer play marathon --difficulty hard
  platformer sim adventure --input "right x120, right+jump x20, right"
  platformer levels ./my-level.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.NominalTickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(levelsCmd)
}

// runtimeConfig builds the runtime config from the global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
