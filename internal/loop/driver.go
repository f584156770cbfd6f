package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// ErrRunning is returned by Start when the driver is already running.
var ErrRunning = errors.New("loop: driver already running")

// Frame describes one completed tick.
type Frame struct {
	Index  int
	DT     float64
	Result core.StepResult
}

// Options configures a Driver.
type Options struct {
	// FPS is the frame rate. Zero means core.NominalTickRate.
	FPS int
	// Realtime paces frames with a ticker and measures dt from wall time.
	// Otherwise frames run back to back with the nominal dt.
	Realtime bool
	// MaxFrames stops the run after this many frames. Zero means no limit.
	MaxFrames int
	// AutoStart presses Confirm on the first frame to leave the start phase.
	AutoStart bool
	// StopWhenFinished ends the run on the first won or lost frame.
	StopWhenFinished bool
	// OnFrame is called after every frame on the driver goroutine. It must
	// not call back into the driver.
	OnFrame func(Frame)
}

// Driver steps a game from a Source on its own goroutine.
type Driver struct {
	game   registry.Game
	source Source
	opts   Options
	gen    Generation

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	frames int
}

// NewDriver creates a stopped driver. The game must already be Reset.
func NewDriver(game registry.Game, source Source, opts Options) *Driver {
	if opts.FPS <= 0 {
		opts.FPS = core.NominalTickRate
	}
	return &Driver{game: game, source: source, opts: opts}
}

// Start launches the frame loop. It runs until ctx is done, Stop is called
// or a frame limit is reached.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.done != nil {
		select {
		case <-d.done:
		default:
			return ErrRunning
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.frames = 0
	token := d.gen.Next()
	go d.run(ctx, token, d.done)
	return nil
}

// Stop cancels the loop and waits for it to exit. Any frame already in
// flight is discarded.
func (d *Driver) Stop() {
	d.mu.Lock()
	d.gen.Next()
	cancel, done := d.cancel, d.done
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed when the current run ends.
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// Frames returns the number of frames delivered by the current run.
func (d *Driver) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

func (d *Driver) run(ctx context.Context, token uint64, done chan struct{}) {
	defer close(done)

	interval := time.Second / time.Duration(d.opts.FPS)
	nominal := core.RuntimeConfig{TickRate: d.opts.FPS}.NominalDT()

	var ticker *time.Ticker
	var clock Clock
	if d.opts.Realtime {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
		clock.Advance(time.Now())
	}

	for i := 0; d.opts.MaxFrames == 0 || i < d.opts.MaxFrames; i++ {
		dt := nominal
		if ticker != nil {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				dt = clock.Advance(now)
			}
		} else if ctx.Err() != nil {
			return
		}

		if !d.frame(token, i, dt) {
			return
		}
	}
}

// frame runs one tick. It reports false when the loop should end.
func (d *Driver) frame(token uint64, i int, dt float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.gen.Valid(token) {
		return false
	}

	in := d.source.Intents(i).Frame()
	if i == 0 && d.opts.AutoStart {
		in.Set(core.ActionConfirm)
	}
	res := d.game.Step(in, dt)
	d.frames++

	if d.opts.OnFrame != nil {
		d.opts.OnFrame(Frame{Index: i, DT: dt, Result: res})
	}
	return !(d.opts.StopWhenFinished && res.State.Finished())
}
