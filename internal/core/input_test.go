package core

import (
	"math"
	"sync"
	"testing"
)

func TestIntentsRoundTrip(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionJump)
	f.Set(ActionPause)

	in := IntentsFrom(f)
	want := Intents{MoveRight: true, Jump: true}
	if in != want {
		t.Fatalf("IntentsFrom() = %+v, expected %+v", in, want)
	}

	back := in.Frame()
	if !back.Has(ActionRight) || !back.Has(ActionJump) || back.Has(ActionPause) {
		t.Errorf("Frame() = %v, expected only Right and Jump", back.Actions)
	}
}

func TestIntentsDirection(t *testing.T) {
	tests := []struct {
		name string
		in   Intents
		want float64
	}{
		{"none", Intents{}, 0},
		{"left", Intents{MoveLeft: true}, -1},
		{"right", Intents{MoveRight: true}, 1},
		{"both cancel", Intents{MoveLeft: true, MoveRight: true}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Direction(); got != tc.want {
				t.Errorf("Direction() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	c := f.Clone()
	f.Clear()

	if !c.Has(ActionLeft) {
		t.Error("clone lost action after original was cleared")
	}
	if f.Has(ActionLeft) {
		t.Error("Clear did not reset the original")
	}
}

func TestInputLatchConcurrentPublish(t *testing.T) {
	var latch InputLatch
	var wg sync.WaitGroup

	a := Intents{MoveLeft: true, Jump: true}
	b := Intents{MoveRight: true, Attack: true}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				latch.Publish(a)
			} else {
				latch.Publish(b)
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		got := latch.Snapshot()
		if got != a && got != b && got != (Intents{}) {
			t.Fatalf("torn snapshot %+v", got)
		}
	}
	wg.Wait()
}

func TestClampDT(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{0, MinDT},
		{-3, MinDT},
		{5, MaxDT},
		{math.NaN(), 1},
		{math.Inf(1), 1},
	}
	for _, tc := range tests {
		if got := ClampDT(tc.in); got != tc.want {
			t.Errorf("ClampDT(%v) = %v, expected %v", tc.in, got, tc.want)
		}
	}

	cfg := RuntimeConfig{TickRate: 30}
	if got := cfg.NominalDT(); got != 2 {
		t.Errorf("NominalDT at 30 fps = %v, expected 2", got)
	}
}

func TestCallbacksDispatch(t *testing.T) {
	var score, lives, won = -1, -1, -1
	cb := Callbacks{
		OnScoreChanged: func(s int) { score = s },
		OnLivesChanged: func(l int) { lives = l },
		OnWin:          func(s int) { won = s },
	}

	var rec Recorder
	obs := Multi{cb, &rec}
	obs.Notify(ScoreChanged{Score: 150})
	obs.Notify(LivesChanged{Lives: 2})
	obs.Notify(Won{FinalScore: 150})
	obs.Notify(GameOver{FinalScore: 1}) // no handler, must not panic

	if score != 150 || lives != 2 || won != 150 {
		t.Errorf("callbacks got score=%d lives=%d won=%d", score, lives, won)
	}
	if n := len(rec.Drain()); n != 4 {
		t.Errorf("recorder buffered %d events, expected 4", n)
	}
	if n := len(rec.Drain()); n != 0 {
		t.Errorf("second drain returned %d events, expected 0", n)
	}
}
