package core

import "sync"

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionJump           // Space, W, Up
	ActionAttack         // X, J
	ActionConfirm        // Enter - start a session, confirm in menus
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - restart after win or game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionAttack:
		return "Attack"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions active during one simulation tick.
// Movement actions carry "held" semantics: the platform keeps them set
// for as long as the key is considered down.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Intents is the polled snapshot the simulation reads once per tick.
type Intents struct {
	MoveLeft  bool
	MoveRight bool
	Jump      bool
	Attack    bool
}

// IntentsFrom extracts the gameplay intents from an input frame.
func IntentsFrom(f InputFrame) Intents {
	return Intents{
		MoveLeft:  f.Has(ActionLeft),
		MoveRight: f.Has(ActionRight),
		Jump:      f.Has(ActionJump),
		Attack:    f.Has(ActionAttack),
	}
}

// Frame converts the intents back into an input frame.
func (i Intents) Frame() InputFrame {
	f := NewInputFrame()
	if i.MoveLeft {
		f.Set(ActionLeft)
	}
	if i.MoveRight {
		f.Set(ActionRight)
	}
	if i.Jump {
		f.Set(ActionJump)
	}
	if i.Attack {
		f.Set(ActionAttack)
	}
	return f
}

// Direction returns -1, 0 or +1. Holding both directions cancels out.
func (i Intents) Direction() float64 {
	switch {
	case i.MoveLeft && !i.MoveRight:
		return -1
	case i.MoveRight && !i.MoveLeft:
		return 1
	default:
		return 0
	}
}

// InputLatch publishes intents from an input goroutine to the simulation
// goroutine. Readers always see a whole snapshot.
type InputLatch struct {
	mu  sync.Mutex
	cur Intents
}

// Publish replaces the current snapshot.
func (l *InputLatch) Publish(i Intents) {
	l.mu.Lock()
	l.cur = i
	l.mu.Unlock()
}

// Snapshot returns the current intents.
func (l *InputLatch) Snapshot() Intents {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cur
}
