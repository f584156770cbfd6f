package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const maxRuns = 50

type scoreboardKeys struct {
	Scroll key.Binding
	Game   key.Binding
	Back   key.Binding
	Quit   key.Binding
	prev   key.Binding
	next   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Game, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll runs")),
		Game:   key.NewBinding(key.WithKeys("left", "right", "tab"), key.WithHelp("←/→", "game")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab")),
		next:   key.NewBinding(key.WithKeys("right", "l", "tab")),
	}
}

// gameRecord is one row of the overview: a game's totals and its best
// distance, or -1 when the game keeps no distance record.
type gameRecord struct {
	info     registry.GameInfo
	stats    storage.GameStats
	distance int
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardModel shows every game's totals on top and the best runs of the
// selected game below.
type ScoreboardModel struct {
	store    *storage.Store
	records  []gameRecord
	overview table.Model
	runs     table.Model
	help     help.Model
	keys     scoreboardKeys
	width    int
	height   int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	return newScoreboard(store, registry.List(), width, height)
}

func newScoreboard(store *storage.Store, games []registry.GameInfo, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.records = loadRecords(store, games)
	m.overview = newBoardTable([]table.Column{
		{Title: "Game", Width: 12},
		{Title: "Runs", Width: 5},
		{Title: "Cleared", Width: 8},
		{Title: "Lost", Width: 5},
		{Title: "Best", Width: 7},
		{Title: "Avg", Width: 7},
		{Title: "Distance", Width: 9},
	}, len(m.records), false)
	m.overview.SetRows(overviewRows(m.records))
	m.runs = newBoardTable([]table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Result", Width: 8},
		{Title: "Date", Width: 14},
	}, m.runsHeight(), true)
	m.loadRuns()
	return m
}

// loadRecords reads the totals of each game. Games that were never played
// get zero totals.
func loadRecords(store *storage.Store, games []registry.GameInfo) []gameRecord {
	stats := map[string]*storage.GameStats{}
	if store != nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			stats = all
		}
	}

	records := make([]gameRecord, 0, len(games))
	for _, g := range games {
		r := gameRecord{info: g, distance: -1}
		if st, ok := stats[g.ID]; ok {
			r.stats = *st
		}
		if store != nil {
			if game, err := registry.Create(g.ID); err == nil {
				if rk, ok := game.(registry.RecordKeeper); ok {
					if d, err := store.BestDistance(rk.RecordKey()); err == nil {
						r.distance = d
					}
				}
			}
		}
		records = append(records, r)
	}
	return records
}

func overviewRows(records []gameRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		distance := "-"
		if r.distance >= 0 {
			distance = strconv.Itoa(r.distance)
		}
		rows[i] = table.Row{
			r.info.Title,
			strconv.Itoa(r.stats.GamesCount),
			strconv.Itoa(r.stats.Wins),
			strconv.Itoa(r.stats.GamesCount - r.stats.Wins),
			strconv.Itoa(r.stats.HighScore),
			fmt.Sprintf("%.0f", r.stats.AvgScore),
			distance,
		}
	}
	return rows
}

func newBoardTable(cols []table.Column, height int, focused bool) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(focused),
		table.WithHeight(max(height, 1)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// runsHeight leaves room for the title, the overview and the help line.
func (m ScoreboardModel) runsHeight() int {
	return m.height - len(m.records) - 12
}

// selected returns the game under the overview cursor.
func (m ScoreboardModel) selected() (gameRecord, bool) {
	i := m.overview.Cursor()
	if i < 0 || i >= len(m.records) {
		return gameRecord{}, false
	}
	return m.records[i], true
}

// loadRuns fills the run list for the selected game, best first.
func (m *ScoreboardModel) loadRuns() {
	var rows []table.Row
	if r, ok := m.selected(); ok && m.store != nil {
		entries, err := m.store.TopScores(r.info.ID, maxRuns)
		if err == nil {
			for i, e := range entries {
				result := "lost"
				if e.Won {
					result = "cleared"
				}
				rows = append(rows, table.Row{
					fmt.Sprintf("#%d", i+1),
					strconv.Itoa(e.Score),
					result,
					e.CreatedAt.Format("Jan 02 15:04"),
				})
			}
		}
	}
	m.runs.SetRows(rows)
	m.runs.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.next):
			m.moveGame(1)
			return m, nil
		case key.Matches(msg, m.keys.prev):
			m.moveGame(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.runs.SetHeight(max(m.runsHeight(), 1))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.runs, cmd = m.runs.Update(msg)
	return m, cmd
}

// moveGame selects the next or previous game, wrapping around.
func (m *ScoreboardModel) moveGame(delta int) {
	n := len(m.records)
	if n == 0 {
		return
	}
	m.overview.SetCursor((m.overview.Cursor() + delta + n) % n)
	m.loadRuns()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render("RECORDS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(boardFrameStyle.Render(m.overview.View()))
	b.WriteString("\n")

	if r, ok := m.selected(); ok {
		b.WriteString(boardTitleStyle.Render("Best runs: " + r.info.Title))
		b.WriteString("\n")
	}
	if len(m.runs.Rows()) == 0 {
		b.WriteString(boardDimStyle.Italic(true).Render("No runs recorded yet."))
	} else {
		b.WriteString(boardFrameStyle.Render(m.runs.View()))
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
