package core

// Event is a lifecycle notification emitted by a running session.
// The set of event types is closed.
type Event interface {
	event()
}

// ScoreChanged is emitted whenever the score changes.
type ScoreChanged struct {
	Score int
}

func (ScoreChanged) event() {}

// LivesChanged is emitted when the player loses a life (adventure only).
type LivesChanged struct {
	Lives int
}

func (LivesChanged) event() {}

// DistanceChanged is emitted when the furthest x reached grows (marathon only).
type DistanceChanged struct {
	Distance int
}

func (DistanceChanged) event() {}

// GameOver is emitted once when the session is lost.
type GameOver struct {
	FinalScore int
}

func (GameOver) event() {}

// Won is emitted once when the player reaches the goal.
type Won struct {
	FinalScore int
}

func (Won) event() {}

// SoundCue identifies a sound the host should play.
type SoundCue int

const (
	CueJump SoundCue = iota
	CueAttack
	CueCoin
	CueHit
	CueEnemyDeath
	CueWin
	CueGameOver
)

func (c SoundCue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueAttack:
		return "attack"
	case CueCoin:
		return "coin"
	case CueHit:
		return "hit"
	case CueEnemyDeath:
		return "enemy_death"
	case CueWin:
		return "win"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Sound asks the host to play a cue.
type Sound struct {
	Cue SoundCue
}

func (Sound) event() {}

// Observer receives session events synchronously. Implementations must not
// block; the tick that emitted the event waits for Notify to return.
type Observer interface {
	Notify(e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Notify calls f(e).
func (f ObserverFunc) Notify(e Event) { f(e) }

// Callbacks routes events to optional per-kind handlers. Nil handlers are skipped.
type Callbacks struct {
	OnScoreChanged    func(score int)
	OnLivesChanged    func(lives int)
	OnDistanceChanged func(distance int)
	OnGameOver        func(finalScore int)
	OnWin             func(finalScore int)
	OnSound           func(cue SoundCue)
}

// Notify implements Observer.
func (c Callbacks) Notify(e Event) {
	switch ev := e.(type) {
	case ScoreChanged:
		if c.OnScoreChanged != nil {
			c.OnScoreChanged(ev.Score)
		}
	case LivesChanged:
		if c.OnLivesChanged != nil {
			c.OnLivesChanged(ev.Lives)
		}
	case DistanceChanged:
		if c.OnDistanceChanged != nil {
			c.OnDistanceChanged(ev.Distance)
		}
	case GameOver:
		if c.OnGameOver != nil {
			c.OnGameOver(ev.FinalScore)
		}
	case Won:
		if c.OnWin != nil {
			c.OnWin(ev.FinalScore)
		}
	case Sound:
		if c.OnSound != nil {
			c.OnSound(ev.Cue)
		}
	}
}

// Recorder buffers events until drained.
type Recorder struct {
	events []Event
}

// Notify implements Observer.
func (r *Recorder) Notify(e Event) {
	r.events = append(r.events, e)
}

// Drain returns the buffered events and empties the buffer.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}

// Multi fans an event out to several observers in order.
type Multi []Observer

// Notify implements Observer.
func (m Multi) Notify(e Event) {
	for _, o := range m {
		if o != nil {
			o.Notify(e)
		}
	}
}
