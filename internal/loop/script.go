package loop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Source supplies the intents for a frame.
type Source interface {
	Intents(frame int) core.Intents
}

// SourceFunc adapts a function to Source.
type SourceFunc func(frame int) core.Intents

// Intents calls f(frame).
func (f SourceFunc) Intents(frame int) core.Intents { return f(frame) }

// Latch reads whatever an input goroutine last published, ignoring the
// frame number.
func Latch(l *core.InputLatch) Source {
	return SourceFunc(func(int) core.Intents { return l.Snapshot() })
}

// step is one segment of a script.
type step struct {
	intents core.Intents
	frames  int // 0 on the last step means forever
}

// Script is a scripted input sequence such as "right x60, right+jump x10, right".
// Each comma-separated step holds its intents for the given number of frames;
// the last step repeats forever when it has no count.
type Script struct {
	steps []step
}

// ParseScript parses a script. Intents are joined with '+': left, right,
// jump, attack, or idle for none.
func ParseScript(src string) (*Script, error) {
	s := &Script{}
	parts := strings.Split(src, ",")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("loop: empty script step %d", i+1)
		}

		st := step{}
		if name, count, ok := strings.Cut(part, " x"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("loop: bad frame count %q in step %d", count, i+1)
			}
			st.frames = n
			part = strings.TrimSpace(name)
		} else if i < len(parts)-1 {
			return nil, fmt.Errorf("loop: step %d needs a frame count", i+1)
		}

		in, err := ParseIntents(part)
		if err != nil {
			return nil, err
		}
		st.intents = in
		s.steps = append(s.steps, st)
	}
	return s, nil
}

// ParseIntents parses a '+'-joined list of intent names.
func ParseIntents(src string) (core.Intents, error) {
	var in core.Intents
	for _, name := range strings.Split(src, "+") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "left":
			in.MoveLeft = true
		case "right":
			in.MoveRight = true
		case "jump":
			in.Jump = true
		case "attack":
			in.Attack = true
		case "idle", "none":
		default:
			return core.Intents{}, fmt.Errorf("loop: unknown intent %q", name)
		}
	}
	return in, nil
}

// Len returns the number of scripted frames, or -1 if the script never ends.
func (s *Script) Len() int {
	total := 0
	for _, st := range s.steps {
		if st.frames == 0 {
			return -1
		}
		total += st.frames
	}
	return total
}

// Intents implements Source. Frames past a finite script are idle.
func (s *Script) Intents(frame int) core.Intents {
	for _, st := range s.steps {
		if st.frames == 0 {
			return st.intents
		}
		if frame < st.frames {
			return st.intents
		}
		frame -= st.frames
	}
	return core.Intents{}
}
