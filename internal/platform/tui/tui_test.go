package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/loop"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// fakeGame finishes after a fixed number of steps and keeps a distance record.
type fakeGame struct {
	steps    int
	finishAt int
	record   int
	stored   int
	resets   int
	last     core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) error {
	g.resets++
	g.steps = 0
	return nil
}

func (g *fakeGame) Step(in core.InputFrame, dt float64) core.StepResult {
	g.steps++
	g.last = in
	g.record += 10
	res := core.StepResult{State: g.State()}
	if g.steps == g.finishAt {
		res.Events = append(res.Events, core.GameOver{FinalScore: g.steps})
	}
	return res
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake game")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.steps, GameOver: g.finishAt > 0 && g.steps >= g.finishAt}
}

func (g *fakeGame) RecordKey() string   { return "fake.record" }
func (g *fakeGame) SetRecord(value int) { g.stored = value }
func (g *fakeGame) Record() int         { return g.record }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"right", core.ActionRight, false},
		{"d", core.ActionRight, false},
		{" ", core.ActionJump, false},
		{"w", core.ActionJump, false},
		{"x", core.ActionAttack, false},
		{"j", core.ActionAttack, false},
		{"enter", core.ActionConfirm, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"esc", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"z", core.ActionNone, false},
	}
	for _, tc := range tests {
		action, quit := km.MapKey(keyMsg(tc.key))
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.key, action, quit, tc.action, tc.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  string
		want MenuAction
	}{
		{"k", MenuActionUp},
		{"j", MenuActionDown},
		{"enter", MenuActionSelect},
		{"esc", MenuActionBack},
		{"tab", MenuActionScoreboard},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(tc.key)); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.key, got, tc.want)
		}
	}
}

func TestKeyTrackerHold(t *testing.T) {
	k := NewKeyTracker()
	t0 := time.Unix(100, 0)
	ms := func(n int) time.Time { return t0.Add(time.Duration(n) * time.Millisecond) }

	k.Press(core.ActionRight, t0)
	if !k.Frame(ms(400)).Has(core.ActionRight) {
		t.Error("a single press should hold through the repeat delay")
	}
	if k.Frame(ms(460)).Has(core.ActionRight) {
		t.Error("key still held after the repeat delay passed")
	}

	// Auto-repeat keeps the key down with the shorter window.
	k.Press(core.ActionLeft, ms(1000))
	k.Press(core.ActionLeft, ms(1030))
	if !k.Frame(ms(1200)).Has(core.ActionLeft) {
		t.Error("repeating key should be held")
	}
	if k.Frame(ms(1220)).Has(core.ActionLeft) {
		t.Error("repeating key should release once repeats stop")
	}
}

func TestKeyTrackerOneShotAndOpposites(t *testing.T) {
	k := NewKeyTracker()
	now := time.Unix(100, 0)

	k.Press(core.ActionPause, now)
	k.Press(core.ActionNone, now)
	f := k.Frame(now)
	if !f.Has(core.ActionPause) || f.Has(core.ActionNone) {
		t.Errorf("first frame = %v, expected Pause only", f.Actions)
	}
	if k.Frame(now).Has(core.ActionPause) {
		t.Error("one-shot action fired twice")
	}

	k.Press(core.ActionLeft, now)
	k.Press(core.ActionRight, now)
	f = k.Frame(now)
	if f.Has(core.ActionLeft) || !f.Has(core.ActionRight) {
		t.Errorf("frame = %v, expected Right to release Left", f.Actions)
	}

	k.Press(core.ActionJump, now)
	k.Release()
	if f := k.Frame(now); len(f.Actions) != 0 {
		t.Errorf("frame after Release = %v", f.Actions)
	}
}

var ansiCSI = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColor(0, 0, "HUD", core.ColorYellow)
	s.SetCell(1, 2, '▀', core.ColorBrown)
	s.SetCell(2, 2, '▀', core.ColorSky)
	s.SetCell(3, 2, '?', core.Color(200))

	out := ansiCSI.ReplaceAllString(RenderScreen(s, 1), "")
	want := "HUD   \n      \n ▀▀?  "
	if out != want {
		t.Errorf("RenderScreen() = %q, expected %q", out, want)
	}
	if _, ok := palette[core.ColorBrown]; !ok {
		t.Error("brown has no palette entry")
	}
}

func newTestModel(t *testing.T, game *fakeGame) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := core.DefaultConfig()
	return NewModel(game, store, cfg, Options{ScreenshotDir: t.TempDir()}), store
}

func tick(t *testing.T, m Model, gen uint64, at time.Time) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(TickMsg{Gen: gen, At: at})
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelRecordsFinishedRunOnce(t *testing.T) {
	game := &fakeGame{finishAt: 3}
	m, store := newTestModel(t, game)

	at := time.Unix(500, 0)
	for i := 0; i < 6; i++ {
		var cmd tea.Cmd
		m, cmd = tick(t, m, m.token, at.Add(time.Duration(i)*loop.NominalFrame))
		if cmd == nil {
			t.Fatalf("tick %d did not schedule the next one", i)
		}
	}

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 3 || scores[0].Won {
		t.Fatalf("scores = %+v, expected one lost run of 3", scores)
	}
	best, err := store.BestDistance("fake.record")
	if err != nil {
		t.Fatal(err)
	}
	if best != 30 || game.stored != 30 {
		t.Errorf("record stored = %d, game told %d, expected 30", best, game.stored)
	}
	if !m.finished || !m.state.GameOver {
		t.Error("model should remember the finished state")
	}
}

func TestModelLogsLifecycleEvents(t *testing.T) {
	var buf bytes.Buffer
	game := &fakeGame{finishAt: 2}
	m := NewModel(game, nil, core.DefaultConfig(), Options{Logger: log.New(&buf), ScreenshotDir: t.TempDir()})

	at := time.Unix(700, 0)
	for i := 0; i < 4; i++ {
		m, _ = tick(t, m, m.token, at.Add(time.Duration(i)*loop.NominalFrame))
	}

	out := buf.String()
	if n := strings.Count(out, "game over"); n != 1 {
		t.Errorf("logged game over %d times, expected once:\n%s", n, out)
	}
	if !strings.Contains(out, "score=2") {
		t.Errorf("log should carry the final score:\n%s", out)
	}
}

func TestModelDropsStaleTicks(t *testing.T) {
	game := &fakeGame{}
	m, _ := newTestModel(t, game)
	token := m.token

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if cmd == nil || !m.quitting {
		t.Fatal("q should quit")
	}

	m, cmd = tick(t, m, token, time.Unix(1, 0))
	if cmd != nil || game.steps != 0 {
		t.Errorf("stale tick ran: steps = %d", game.steps)
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelForwardsHeldKeys(t *testing.T) {
	game := &fakeGame{}
	m, _ := newTestModel(t, game)
	now := time.Now()

	next, _ := m.handleKey(keyMsg("right"), now)
	m = next.(Model)
	next, _ = m.handleKey(keyMsg("p"), now)
	m = next.(Model)

	m, _ = tick(t, m, m.token, now.Add(loop.NominalFrame))
	if !game.last.Has(core.ActionRight) || !game.last.Has(core.ActionPause) {
		t.Fatalf("first frame = %v", game.last.Actions)
	}
	tick(t, m, m.token, now.Add(2*loop.NominalFrame))
	if !game.last.Has(core.ActionRight) || game.last.Has(core.ActionPause) {
		t.Errorf("second frame = %v, expected Right held and Pause consumed", game.last.Actions)
	}
}

func TestModelReloadAndScreenshot(t *testing.T) {
	game := &fakeGame{finishAt: 1}
	m, _ := newTestModel(t, game)

	m, _ = tick(t, m, m.token, time.Unix(1, 0))
	if !m.finished {
		t.Fatal("run should be finished")
	}
	next, cmd := m.Update(levelChangedMsg{Path: "level.yaml"})
	m = next.(Model)
	if cmd != nil {
		t.Error("no watcher, so no follow-up command expected")
	}
	if game.resets != 1 || m.finished {
		t.Errorf("resets = %d finished = %v after reload", game.resets, m.finished)
	}

	m.saveScreenshot()
	files, err := os.ReadDir(m.shotDir)
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshot files = %v, err = %v", files, err)
	}
	data, _ := os.ReadFile(filepath.Join(m.shotDir, files[0].Name()))
	if !strings.HasPrefix(string(data), "fake game") {
		t.Errorf("screenshot = %q", data)
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	m.items = []MenuItem{{GameID: "adventure", Title: "Adventure"}, {GameID: "marathon", Title: "Marathon", Best: "record 900"}}

	next, _ := m.Update(keyMsg("j"))
	m = next.(MenuModel)
	next, _ = m.Update(keyMsg("j"))
	m = next.(MenuModel)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, expected to stop at the last item", m.cursor)
	}
	if !strings.Contains(m.View(), "record 900") {
		t.Error("menu should show the stored record")
	}

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(MenuModel)
	if cmd == nil || m.Selected() == nil || m.Selected().GameID != "marathon" {
		t.Errorf("selected = %+v", m.Selected())
	}
}

func TestScoreboardRows(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, run := range []struct {
		game  string
		score int
		won   bool
	}{{"fake", 300, false}, {"fake", 900, true}, {"other", 50, false}} {
		if _, err := store.SaveScore(run.game, run.score, run.won); err != nil {
			t.Fatal(err)
		}
	}

	games := []registry.GameInfo{{ID: "fake", Title: "Fake"}, {ID: "other", Title: "Other"}, {ID: "unplayed", Title: "Unplayed"}}
	m := newScoreboard(store, games, 100, 40)

	overview := m.overview.Rows()
	want := []table.Row{
		{"Fake", "2", "1", "1", "900", "600", "-"},
		{"Other", "1", "0", "1", "50", "50", "-"},
		{"Unplayed", "0", "0", "0", "0", "0", "-"},
	}
	if !reflect.DeepEqual(overview, want) {
		t.Errorf("overview = %v, expected %v", overview, want)
	}

	runs := m.runs.Rows()
	if len(runs) != 2 {
		t.Fatalf("runs = %v, expected 2", runs)
	}
	if runs[0][1] != "900" || runs[0][2] != "cleared" || runs[1][2] != "lost" {
		t.Errorf("runs = %v, expected the cleared 900 run first", runs)
	}

	next, _ := m.Update(keyMsg("right"))
	m = next.(ScoreboardModel)
	if r, _ := m.selected(); r.info.ID != "other" || len(m.runs.Rows()) != 1 {
		t.Errorf("selected %q with runs %v after moving right", r.info.ID, m.runs.Rows())
	}

	next, _ = m.Update(keyMsg("left"))
	m = next.(ScoreboardModel)
	next, _ = m.Update(keyMsg("left"))
	m = next.(ScoreboardModel)
	if r, _ := m.selected(); r.info.ID != "unplayed" {
		t.Errorf("selected %q, expected the selection to wrap to the last game", r.info.ID)
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("an unplayed game should show the empty message")
	}
}
