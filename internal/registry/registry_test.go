package registry

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                                    { return g.id }
func (g *stubGame) Title() string                                 { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) error                { return nil }
func (g *stubGame) Step(core.InputFrame, float64) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                           {}
func (g *stubGame) State() core.GameState                         { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub-b", func() Game { return &stubGame{id: "zz-stub-b"} })
	Register("zz-stub-a", func() Game { return &stubGame{id: "zz-stub-a"} })

	if !Exists("zz-stub-a") || Exists("zz-missing") {
		t.Error("Exists() gave the wrong answer")
	}

	g, err := Create("zz-stub-a")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "zz-stub-a" {
		t.Errorf("Create() built %q", g.ID())
	}
	if _, err := Create("zz-missing"); err == nil {
		t.Error("Create() of an unknown game succeeded")
	}

	a, b := -1, -1
	for i, info := range List() {
		switch info.ID {
		case "zz-stub-a":
			a = i
			if info.Title != "Stub zz-stub-a" {
				t.Errorf("title = %q", info.Title)
			}
		case "zz-stub-b":
			b = i
		}
	}
	if a < 0 || b < 0 || a > b {
		t.Errorf("List() not sorted by ID: a=%d b=%d", a, b)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-stub-dup", func() Game { return &stubGame{id: "zz-stub-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() did not panic")
		}
	}()
	Register("zz-stub-dup", func() Game { return &stubGame{id: "zz-stub-dup"} })
}
