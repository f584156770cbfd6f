package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "a", "h":
		return core.ActionLeft, false
	case "right", "d", "l":
		return core.ActionRight, false
	case " ", "up", "w", "k":
		return core.ActionJump, false
	case "x", "j", "f":
		return core.ActionAttack, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// Terminals only report key presses, so a key counts as held while its
// auto-repeat keeps arriving. The first press waits longer because the
// terminal's repeat delay is longer than its repeat interval.
const holdWindow = 180 * time.Millisecond

var firstHold = map[core.Action]time.Duration{
	core.ActionLeft:   450 * time.Millisecond,
	core.ActionRight:  450 * time.Millisecond,
	core.ActionJump:   450 * time.Millisecond,
	core.ActionAttack: holdWindow,
}

type keyState struct {
	since time.Time // first press of the current hold
	last  time.Time
}

// KeyTracker turns a stream of key presses into per-frame input. Movement,
// jump and attack stay set while held; every other action fires once.
type KeyTracker struct {
	held    map[core.Action]keyState
	pending core.InputFrame
}

// NewKeyTracker creates a tracker with nothing pressed.
func NewKeyTracker() *KeyTracker {
	return &KeyTracker{
		held:    make(map[core.Action]keyState),
		pending: core.NewInputFrame(),
	}
}

// Press records a key press at now.
func (k *KeyTracker) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if _, ok := firstHold[a]; !ok {
		k.pending.Set(a)
		return
	}

	st, ok := k.held[a]
	if !ok || !isDown(a, st, now) {
		st.since = now
	}
	st.last = now
	k.held[a] = st

	// Opposite directions release each other.
	switch a {
	case core.ActionLeft:
		delete(k.held, core.ActionRight)
	case core.ActionRight:
		delete(k.held, core.ActionLeft)
	}
}

// Frame returns the actions active at now and consumes one-shot presses.
func (k *KeyTracker) Frame(now time.Time) core.InputFrame {
	f := k.pending
	k.pending = core.NewInputFrame()
	for a, st := range k.held {
		if isDown(a, st, now) {
			f.Set(a)
		} else {
			delete(k.held, a)
		}
	}
	return f
}

// Release forgets every pressed key.
func (k *KeyTracker) Release() {
	clear(k.held)
	k.pending.Clear()
}

func isDown(a core.Action, st keyState, now time.Time) bool {
	window := holdWindow
	if st.last.Equal(st.since) {
		window = firstHold[a]
	}
	return now.Sub(st.last) < window
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
