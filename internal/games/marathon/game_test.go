package marathon

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func newGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := New()
	if err := g.Reset(core.DefaultConfig()); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	return g
}

func TestRegisteredAsRecordKeeper(t *testing.T) {
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatal(err)
	}
	rk, ok := g.(registry.RecordKeeper)
	if !ok {
		t.Fatal("marathon should keep a record")
	}
	if rk.RecordKey() != "marathon.best_distance" {
		t.Errorf("RecordKey() = %q", rk.RecordKey())
	}
	if _, ok := g.(registry.Loggable); !ok {
		t.Error("marathon should accept the host logger")
	}
}

func TestDefaultCourse(t *testing.T) {
	g := newGame(t)
	s := g.Session()

	if s.Level().ID != "city-run" {
		t.Errorf("level = %q, expected city-run", s.Level().ID)
	}
	if s.Phase() != platformer.PhaseStart {
		t.Errorf("phase = %v, expected start", s.Phase())
	}
	if s.Distance() != 100 {
		t.Errorf("initial distance = %d, expected the spawn x 100", s.Distance())
	}
	if g.goalX() != 5800 {
		t.Errorf("goal x = %v, expected 5800", g.goalX())
	}
}

func TestRunTracksDistanceAndRecord(t *testing.T) {
	g := newGame(t)
	g.SetRecord(1000)

	g.Step(frame(core.ActionConfirm), 1)
	var last int
	for i := 0; i < 20; i++ {
		for _, e := range g.Step(frame(core.ActionRight), 1).Events {
			if ev, ok := e.(core.DistanceChanged); ok {
				if ev.Distance <= last {
					t.Fatalf("distance events not increasing: %d after %d", ev.Distance, last)
				}
				last = ev.Distance
			}
		}
	}
	if g.Record() != g.Session().Distance() || g.Record() <= 100 {
		t.Errorf("Record() = %d, distance = %d", g.Record(), g.Session().Distance())
	}
	if last != g.Record() {
		t.Errorf("last DistanceChanged = %d, expected %d", last, g.Record())
	}
	if g.Best() != 1000 {
		t.Errorf("Best() = %d, expected the stored 1000", g.Best())
	}

	g.SetRecord(-5)
	if g.Best() != g.Record() {
		t.Errorf("Best() = %d, expected the current run %d", g.Best(), g.Record())
	}
}

func TestHardPresetSpeedsEnemies(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New()
	if err := g.SetDifficultyPreset("hard"); err != nil {
		t.Fatal(err)
	}
	if err := g.Reset(core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if g.cfg.Enemies.Speed != 3 {
		t.Errorf("hard enemy speed = %v, expected 3", g.cfg.Enemies.Speed)
	}

	g.Step(frame(core.ActionConfirm), 1)
	g.Step(frame(), 1)
	if got := g.Session().Rules().EnemySpeed; got <= 3 {
		t.Errorf("session enemy speed = %v, expected the difficulty ramp above 3", got)
	}
}

func TestRenderHUD(t *testing.T) {
	g := newGame(t)
	g.SetRecord(2500)
	dst := core.NewScreen(100, 30)

	g.Render(dst)
	hud := dst.Row(0)
	for _, want := range []string{"Score: 0", "★ 1", "100/5800", "Best: 2500"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q is missing %q", hud, want)
		}
	}
	if !strings.Contains(dst.String(), "City Run") {
		t.Error("start overlay missing the course name")
	}
}
