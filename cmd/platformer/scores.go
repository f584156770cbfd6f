package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game, along with run
totals and, for marathon, the best distance reached.

Examples:
  platformer scores adventure
  platformer scores marathon --limit 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'platformer play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Result", "Date")
		fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "------", "----")
		for i, entry := range scores {
			result := "lost"
			if entry.Won {
				result = "cleared"
			}
			fmt.Printf("  %-4d  %-10d  %-8s  %s\n", i+1, entry.Score, result, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
		if stats, err := store.GetGameStats(gameID); err == nil {
			fmt.Printf("Runs: %d  Cleared: %d  Best: %d  Average: %.0f\n",
				stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore)
		}
	}

	if rk, ok := game.(registry.RecordKeeper); ok {
		if best, err := store.BestDistance(rk.RecordKey()); err == nil {
			fmt.Printf("Best distance: %d\n", best)
		}
	}
}
