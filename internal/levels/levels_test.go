package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
)

var (
	adventurePlayer = core.V(40, 60)
	marathonPlayer  = core.V(64, 68)
)

func countKind(ps []platformer.Platform, kind platformer.PlatformKind) int {
	n := 0
	for _, p := range ps {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

func TestDefaultAdventure(t *testing.T) {
	def, err := Default(Adventure)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if err := Validate(def, adventurePlayer); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	lvl := def.Level
	if lvl.Length != 4800 || lvl.Height != 660 {
		t.Errorf("size = %vx%v, expected 4800x660", lvl.Length, lvl.Height)
	}
	if lvl.Spawn != core.V(120, 540) {
		t.Errorf("spawn = %+v, expected (120, 540)", lvl.Spawn)
	}
	if lvl.Goal.Kind != platformer.GoalFlag || lvl.Goal.FlagX != 4680 {
		t.Errorf("goal = %+v, expected flag at 4680", lvl.Goal)
	}
	if n := countKind(lvl.Platforms, platformer.Ground); n != 4 {
		t.Errorf("ground segments = %d, expected 4 after merging", n)
	}
	if n := countKind(lvl.Platforms, platformer.Floating); n != 14 {
		t.Errorf("floating platforms = %d, expected 14 after merging", n)
	}
	if got, want := lvl.Platforms[0].Box, (core.Box{X: 0, Y: 600, W: 1140, H: 60}); got != want {
		t.Errorf("first ground = %+v, expected %+v", got, want)
	}
	if len(lvl.Enemies) != 6 {
		t.Errorf("enemies = %d, expected 6", len(lvl.Enemies))
	}
	if len(lvl.Collectibles) != 12 {
		t.Errorf("collectibles = %d, expected 12", len(lvl.Collectibles))
	}
	for _, e := range lvl.Enemies {
		if e.PatrolRange != 100 {
			t.Errorf("enemy patrol range = %v, expected 100", e.PatrolRange)
		}
	}
}

func TestDefaultMarathon(t *testing.T) {
	def, err := Default(Marathon)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if err := Validate(def, marathonPlayer); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	lvl := def.Level
	if lvl.Length != 6000 {
		t.Errorf("length = %v, expected 6000", lvl.Length)
	}
	want := core.Box{X: 5800, Y: 300, W: 64, H: 80}
	if lvl.Goal.Kind != platformer.GoalRect || lvl.Goal.Box != want {
		t.Errorf("goal = %+v, expected rect %+v", lvl.Goal, want)
	}
	if n := countKind(lvl.Platforms, platformer.Ground); n != 4 {
		t.Errorf("ground segments = %d, expected 4", n)
	}
	if n := countKind(lvl.Platforms, platformer.Floating); n != 8 {
		t.Errorf("floating platforms = %d, expected 8", n)
	}
	if len(lvl.Enemies) != 7 || len(lvl.Collectibles) != 10 {
		t.Errorf("enemies=%d collectibles=%d, expected 7 and 10", len(lvl.Enemies), len(lvl.Collectibles))
	}
	if lvl.Enemies[1].Kind != platformer.EnemyBrute || lvl.Enemies[1].PatrolRange != 150 {
		t.Errorf("second enemy = %+v, expected a brute with range 150", lvl.Enemies[1])
	}
	if c := lvl.Collectibles[0]; c.W != 30 || c.H != 30 {
		t.Errorf("collectible size = %vx%v, expected default 30x30", c.W, c.H)
	}
}

func TestBuiltin(t *testing.T) {
	modes := Builtin()
	if len(modes) != 2 || modes[0] != Adventure || modes[1] != Marathon {
		t.Errorf("Builtin() = %v, expected [adventure marathon]", modes)
	}
}

func TestGridMerge(t *testing.T) {
	g := NewGrid([]string{
		"##  ",
		"##  #",
		"=== ",
	})
	if g.Width() != 5 || g.Height() != 3 {
		t.Fatalf("grid = %dx%d, expected 5x3", g.Width(), g.Height())
	}
	if g.At(4, 0) != TileEmpty || g.At(-1, 0) != TileEmpty {
		t.Error("padding and out-of-range tiles should be empty")
	}

	ground := g.Merge(TileGround, 10, 10)
	want := []core.Box{
		{X: 0, Y: 0, W: 20, H: 20},
		{X: 40, Y: 10, W: 10, H: 10},
	}
	if len(ground) != len(want) {
		t.Fatalf("Merge('#') = %+v, expected %+v", ground, want)
	}
	for i := range want {
		if ground[i] != want[i] {
			t.Errorf("box %d = %+v, expected %+v", i, ground[i], want[i])
		}
	}

	plats := g.Merge(TilePlatform, 10, 2)
	if len(plats) != 1 || plats[0] != (core.Box{X: 0, Y: 20, W: 30, H: 2}) {
		t.Errorf("Merge('=') = %+v, expected one 30x2 box at y=20", plats)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code string
	}{
		{"unknown tile", "grid:\n  - \"P X F\"\n  - \"#####\"\n", "UNKNOWN_TILE"},
		{"grid without spawn", "grid:\n  - \"  G F\"\n  - \"#####\"\n", "NO_SPAWN"},
		{"grid without flag", "grid:\n  - \"P G  \"\n  - \"#####\"\n", "NO_GOAL"},
		{"two spawns", "grid:\n  - \"PPG F\"\n  - \"#####\"\n", "MULTIPLE_SPAWNS"},
		{"explicit without goal", "length: 100\nspawn: {x: 0, y: 0}\n", "NO_GOAL"},
		{"explicit without spawn", "length: 100\ngoal: {x: 50, y: 0, w: 5, h: 5}\n", "NO_SPAWN"},
		{"unknown enemy kind", "length: 100\nspawn: {x: 0, y: 0}\ngoal: {x: 50, y: 0, w: 5, h: 5}\nenemies:\n  - {kind: dragon, x: 10, y: 0}\n", "UNKNOWN_KIND"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			verr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("Parse() error = %v, expected ValidationError", err)
			}
			if verr.Code != tc.code {
				t.Errorf("code = %s, expected %s", verr.Code, tc.code)
			}
		})
	}

	if _, err := Parse([]byte("grid: [")); err == nil {
		t.Error("Parse() accepted malformed YAML")
	}
}

func TestValidateNoEnemies(t *testing.T) {
	def, err := Parse([]byte("grid:\n  - \"P   F \"\n  - \"######\"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if def.Mode != Adventure {
		t.Errorf("mode = %s, expected adventure for a grid level", def.Mode)
	}
	err = Validate(def, adventurePlayer)
	verr, ok := err.(ValidationError)
	if !ok || verr.Code != "NO_ENEMIES" {
		t.Errorf("Validate() error = %v, expected NO_ENEMIES", err)
	}
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.yaml")
	doc := "mode: marathon\nlength: 2000\nspawn: {x: 100, y: 332}\ngoal: {x: 1800, y: 300, w: 64, h: 80}\n" +
		"ground:\n  - {x: 0, y: 400, w: 2000, h: 112}\nenemies:\n  - {kind: grunt, x: 600, y: 340, range: 100}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if def.Level.ID != "short" || def.Path != path {
		t.Errorf("id=%q path=%q, expected id from the file name", def.Level.ID, def.Path)
	}
	if err := Validate(def, marathonPlayer); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	if _, err := Resolve(Marathon, path); err != nil {
		t.Errorf("Resolve(marathon) error = %v", err)
	}
	if _, err := Resolve(Adventure, path); err == nil {
		t.Error("Resolve(adventure) accepted a marathon level")
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestWatcherReportsLevelWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := Watch(dir)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(path, []byte("id: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event for %q, expected %q", got, path)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the level file")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := Watch(t.TempDir())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events still open after Close")
	}
}
