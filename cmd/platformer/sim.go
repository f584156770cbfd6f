package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/loop"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var (
	flagFrames   int
	flagInput    string
	flagRealtime bool
	flagVerbose  bool
	flagScreen   bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless from scripted input",
	Long: `Run a game without a terminal UI, feeding it a scripted input
sequence, and log its lifecycle events.

A script is a comma-separated list of steps. Each step holds its intents,
joined with '+', for a number of frames. The last step may omit the count
to repeat until the run ends.

With --input - the intents are read from stdin instead, one line per
change ("right", "right+jump", "idle"), and frames run in real time.

Intents: left, right, jump, attack, idle

Examples:
  platformer sim adventure
  platformer sim adventure --input "right x90, right+jump x25, right"
  platformer sim marathon --frames 3600 --difficulty hard --screen
  platformer sim adventure --level ./castle.yaml --realtime
  my-bot | platformer sim marathon --input -`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 1800, "Maximum number of frames to run (0 = until the run ends)")
	simCmd.Flags().StringVar(&flagInput, "input", "right", "Input script, or - to read intents from stdin")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace frames at --fps instead of running flat out")
	simCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Also log sounds and distance updates")
	simCmd.Flags().BoolVar(&flagScreen, "screen", false, "Print the final frame as text")
}

func runSim(_ *cobra.Command, args []string) error {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)

	var script *loop.Script
	if flagInput != "-" {
		var err error
		if script, err = loop.ParseScript(flagInput); err != nil {
			return err
		}
	}

	game, err := createGame(args[0])
	if err != nil {
		return err
	}
	if lg, ok := game.(registry.Loggable); ok {
		lg.SetLogger(logger)
	}
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if err := game.Reset(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var source loop.Source = script
	realtime := flagRealtime
	if script == nil {
		var latch core.InputLatch
		go feedIntents(ctx, os.Stdin, &latch, logger)
		source = loop.Latch(&latch)
		realtime = true
	}

	var last loop.Frame
	driver := loop.NewDriver(game, source, loop.Options{
		FPS:              flagFPS,
		Realtime:         realtime,
		MaxFrames:        flagFrames,
		AutoStart:        true,
		StopWhenFinished: true,
		OnFrame: func(f loop.Frame) {
			for _, e := range f.Result.Events {
				logEvent(logger, f.Index, e)
			}
			last = f
		},
	})

	logger.Info("simulating", "game", game.ID(), "input", flagInput, "frames", flagFrames)
	if err := driver.Start(ctx); err != nil {
		return err
	}
	<-driver.Done()
	driver.Stop()

	state := last.Result.State
	outcome := "running"
	switch {
	case state.Won:
		outcome = "won"
	case state.GameOver:
		outcome = "game over"
	}
	logger.Info("finished", "frames", driver.Frames(), "outcome", outcome, "score", state.Score)

	if flagScreen {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		game.Render(screen)
		fmt.Println(screen.String())
	}
	return nil
}

// logEvent writes one lifecycle event. Frequent events go to debug.
func logEvent(logger *log.Logger, frame int, e core.Event) {
	switch ev := e.(type) {
	case core.ScoreChanged:
		logger.Info("score", "frame", frame, "score", ev.Score)
	case core.LivesChanged:
		logger.Info("life lost", "frame", frame, "lives", ev.Lives)
	case core.DistanceChanged:
		logger.Debug("distance", "frame", frame, "distance", ev.Distance)
	case core.GameOver:
		logger.Info("game over", "frame", frame, "score", ev.FinalScore)
	case core.Won:
		logger.Info("won", "frame", frame, "score", ev.FinalScore)
	case core.Sound:
		logger.Debug("sound", "frame", frame, "cue", ev.Cue)
	}
}

// feedIntents publishes each line of r as the current intents until r ends
// or ctx is done, then releases every key.
func feedIntents(ctx context.Context, r io.Reader, latch *core.InputLatch, logger *log.Logger) {
	defer latch.Publish(core.Intents{})

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		in, err := loop.ParseIntents(line)
		if err != nil {
			logger.Warn("ignoring input", "line", line, "error", err)
			continue
		}
		latch.Publish(in)
	}
	if err := sc.Err(); err != nil {
		logger.Warn("input closed", "error", err)
	}
}
