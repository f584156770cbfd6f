package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// floorGain is the level a tone decays to by the end of its duration.
const floorGain = 0.01

// attackTime softens the first samples of every tone to avoid clicks.
const attackTime = 4 * time.Millisecond

// note is one tone of a cue.
type note struct {
	freq     float64
	wave     Wave
	duration time.Duration
	gain     float64
}

// cueNotes lists the tones of each cue, played one after another.
var cueNotes = map[core.SoundCue][]note{
	core.CueJump:       {{400, WaveSine, 300 * time.Millisecond, 0.1}},
	core.CueAttack:     {{150, WaveSaw, 100 * time.Millisecond, 0.05}},
	core.CueCoin:       {{1200, WaveSquare, 100 * time.Millisecond, 0.05}, {1800, WaveSquare, 200 * time.Millisecond, 0.05}},
	core.CueHit:        {{100, WaveSaw, 300 * time.Millisecond, 0.2}},
	core.CueEnemyDeath: {{200, WaveSquare, 100 * time.Millisecond, 0.1}},
	core.CueWin: {
		{523.25, WaveSquare, 120 * time.Millisecond, 0.08},
		{659.25, WaveSquare, 120 * time.Millisecond, 0.08},
		{783.99, WaveSquare, 120 * time.Millisecond, 0.08},
		{1046.50, WaveSquare, 300 * time.Millisecond, 0.08},
	},
	core.CueGameOver: {
		{392.00, WaveSaw, 180 * time.Millisecond, 0.12},
		{311.13, WaveSaw, 180 * time.Millisecond, 0.12},
		{261.63, WaveSaw, 400 * time.Millisecond, 0.12},
	},
}

// CueDuration returns how long a cue plays.
func CueDuration(cue core.SoundCue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[cue] {
		d += n.duration
	}
	return d
}

// oscillator generates a raw periodic wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator returns a streamer producing duration worth of the wave.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(duration),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay shapes a stream with a short linear attack followed by an
// exponential fall to floorGain at the end of the stream.
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

// NewDecay wraps s so that it fades out over duration.
func NewDecay(s beep.Streamer, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{
		streamer: s,
		attack:   rate.N(attackTime),
		total:    rate.N(duration),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	if d.position >= d.total {
		return 0, false
	}
	if remaining := d.total - d.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := math.Pow(floorGain, float64(d.position)/float64(d.total))
		if d.position < d.attack {
			gain *= float64(d.position) / float64(d.attack)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales s linearly by vol; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone renders a single note.
func tone(n note, rate beep.SampleRate) beep.Streamer {
	var src beep.Streamer
	if n.wave == WaveSine {
		// Pure sines come from beep's generator when the rate allows it.
		if sine, err := generators.SineTone(rate, n.freq); err == nil {
			src = beep.Take(rate.N(n.duration), sine)
		}
	}
	if src == nil {
		src = NewOscillator(n.freq, n.duration, n.wave, rate)
	}
	return newVolume(NewDecay(src, n.duration, rate), n.gain)
}

// Cue builds a fresh streamer for cue scaled by volume, or nil for an
// unknown cue.
func Cue(cue core.SoundCue, rate beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = tone(n, rate)
	}
	if len(parts) == 1 {
		return newVolume(parts[0], volume)
	}
	return newVolume(beep.Seq(parts...), volume)
}
