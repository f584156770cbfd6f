package platformer

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ValidationError describes why level or rule data was rejected.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func invalid(code, format string, args ...any) error {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GoalKind selects how the win condition is tested.
type GoalKind int

const (
	// GoalRect wins when the player overlaps Goal.Box.
	GoalRect GoalKind = iota
	// GoalFlag wins when the player's x passes Goal.FlagX.
	GoalFlag
)

// Goal is the level's win condition.
type Goal struct {
	Kind  GoalKind
	Box   core.Box
	FlagX float64
}

// Reached reports whether the player box satisfies the goal.
func (g Goal) Reached(player core.Box) bool {
	if g.Kind == GoalFlag {
		return player.X > g.FlagX
	}
	return g.Box.Intersects(player)
}

// EnemySpawn places one enemy at level load.
type EnemySpawn struct {
	Kind        EnemyKind
	Pos         core.Vec2
	PatrolRange float64
}

// Level is the static description a session is built from. It is never
// modified after loading and may be shared by consecutive sessions.
type Level struct {
	ID           string
	Name         string
	Length       float64 // world width
	Height       float64 // world height, used for framing only
	Spawn        core.Vec2
	Platforms    []Platform
	Enemies      []EnemySpawn
	Collectibles []core.Box
	Goal         Goal
}

// Validate checks the level against a player size. The first problem found
// is returned as a ValidationError.
func (l *Level) Validate(playerSize core.Vec2) error {
	if !(l.Length > 0) || !core.V(l.Length, 0).Finite() {
		return invalid("BAD_LENGTH", "level length must be positive, got %v", l.Length)
	}
	if len(l.Platforms) == 0 {
		return invalid("NO_PLATFORMS", "level has no platforms")
	}
	for i, p := range l.Platforms {
		if !p.Box.Valid() {
			return invalid("BAD_PLATFORM", "platform %d has invalid box %+v", i, p.Box)
		}
	}

	spawn := core.NewBox(l.Spawn, playerSize)
	if !spawn.Valid() {
		return invalid("BAD_SPAWN", "spawn %+v with player size %+v is not a valid box", l.Spawn, playerSize)
	}
	if spawn.X < 0 || spawn.Right() > l.Length {
		return invalid("BAD_SPAWN", "spawn x %v is outside the level [0, %v]", l.Spawn.X, l.Length)
	}

	switch l.Goal.Kind {
	case GoalRect:
		if !l.Goal.Box.Valid() {
			return invalid("NO_GOAL", "goal rectangle is missing or invalid")
		}
		if l.Goal.Box.X < 0 || l.Goal.Box.X >= l.Length {
			return invalid("BAD_GOAL", "goal x %v is outside the level", l.Goal.Box.X)
		}
		if l.Goal.Box.Intersects(spawn) {
			return invalid("BAD_GOAL", "player spawns inside the goal")
		}
	case GoalFlag:
		if !(l.Goal.FlagX > l.Spawn.X) || l.Goal.FlagX >= l.Length {
			return invalid("BAD_GOAL", "flag x %v must lie between spawn %v and level end %v",
				l.Goal.FlagX, l.Spawn.X, l.Length)
		}
	default:
		return invalid("NO_GOAL", "unknown goal kind %d", l.Goal.Kind)
	}

	for i, e := range l.Enemies {
		if !e.Pos.Finite() {
			return invalid("BAD_ENEMY", "enemy %d has a non-finite position", i)
		}
		if !(e.PatrolRange >= 0) {
			return invalid("BAD_PATROL", "enemy %d has patrol range %v", i, e.PatrolRange)
		}
		if e.Kind != EnemyGrunt && e.Kind != EnemyBrute {
			return invalid("BAD_ENEMY", "enemy %d has unknown kind %d", i, e.Kind)
		}
	}
	for i, c := range l.Collectibles {
		if !c.Valid() {
			return invalid("BAD_COLLECTIBLE", "collectible %d has invalid box %+v", i, c)
		}
	}
	return nil
}
