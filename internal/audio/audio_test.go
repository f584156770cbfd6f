package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

var allCues = []core.SoundCue{
	core.CueJump,
	core.CueAttack,
	core.CueCoin,
	core.CueHit,
	core.CueEnemyDeath,
	core.CueWin,
	core.CueGameOver,
}

// drain streams s to completion, failing on out-of-range samples.
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if buf[j][0] < -1 || buf[j][0] > 1 || buf[j][1] < -1 || buf[j][1] > 1 {
				t.Fatalf("sample %d out of range: %v", total+j, buf[j])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never drained")
	return total
}

func TestCueLengths(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, cue := range allCues {
		t.Run(cue.String(), func(t *testing.T) {
			s := Cue(cue, rate, 1)
			if s == nil {
				t.Fatal("Cue() returned nil")
			}
			want := 0
			for _, n := range cueNotes[cue] {
				want += rate.N(n.duration)
			}
			if got := drain(t, s); got != want {
				t.Errorf("streamed %d samples, expected %d", got, want)
			}
			if s.Err() != nil {
				t.Errorf("Err() = %v", s.Err())
			}
		})
	}
}

func TestCueDuration(t *testing.T) {
	if got := CueDuration(core.CueCoin); got != 300*time.Millisecond {
		t.Errorf("coin duration = %v, expected 300ms", got)
	}
	if got := CueDuration(core.SoundCue(99)); got != 0 {
		t.Errorf("unknown cue duration = %v, expected 0", got)
	}
	if Cue(core.SoundCue(99), sampleRate, 1) != nil {
		t.Error("Cue() for an unknown cue should be nil")
	}
}

func TestOscillatorSquareValues(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, rate)

	samples := make([][2]float64, 50)
	n, ok := osc.Stream(samples)
	if !ok || n != 50 {
		t.Fatalf("Stream() = %d, %v; expected 50, true", n, ok)
	}
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1 && v != 1 {
			t.Errorf("square sample %d = %f", i, v)
		}
	}
}

func TestDecayFadesOut(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate)
	d := NewDecay(osc, time.Second, rate)

	samples := make([][2]float64, 1000)
	n, _ := d.Stream(samples)
	if n != 1000 {
		t.Fatalf("streamed %d samples, expected 1000", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, expected silence at attack start", samples[0][0])
	}
	if samples[500][0] <= samples[999][0] {
		t.Errorf("gain did not fall: mid=%f end=%f", samples[500][0], samples[999][0])
	}
	if samples[999][0] > 0.02 {
		t.Errorf("end gain = %f, expected close to %f", samples[999][0], floorGain)
	}
	if n, ok := d.Stream(samples); n != 0 || ok {
		t.Errorf("drained decay streamed %d, %v", n, ok)
	}
}

func TestPlayerUninitializedIsSilent(t *testing.T) {
	p := NewPlayer(0.5)
	p.Play(core.CueJump)
	p.Notify(core.Sound{Cue: core.CueWin})
	if p.mixer.Len() != 0 {
		t.Errorf("uninitialized player queued %d streamers", p.mixer.Len())
	}
	p.Cleanup()
}

func TestPlayerQueuesAndMutes(t *testing.T) {
	p := NewPlayer(0.5)
	p.initialized = true

	p.Notify(core.Sound{Cue: core.CueCoin})
	p.Notify(core.ScoreChanged{Score: 50})
	if p.mixer.Len() != 1 {
		t.Fatalf("mixer holds %d streamers, expected 1", p.mixer.Len())
	}

	p.SetMuted(true)
	if !p.Muted() {
		t.Fatal("Muted() = false after SetMuted(true)")
	}
	p.Play(core.CueHit)
	if p.mixer.Len() != 1 {
		t.Errorf("muted player queued a sound: %d", p.mixer.Len())
	}
}
