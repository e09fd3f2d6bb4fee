package registry

import (
	"testing"

	"github.com/vovakirdan/memory-chain/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string {
	return g.id
}

func (g *stubGame) Title() string {
	return "Stub " + g.id
}

func (g *stubGame) Reset(core.RuntimeConfig) {}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{}
}

func (g *stubGame) Render(*core.Screen) {}

func (g *stubGame) State() core.GameState {
	return core.GameState{}
}

func TestRegisterListCreate(t *testing.T) {
	Register(GameInfo{ID: "zz-test-b", Order: 901}, func() Game { return &stubGame{id: "zz-test-b"} })
	Register(GameInfo{ID: "zz-test-a", Title: "First", Order: 900}, func() Game { return &stubGame{id: "zz-test-a"} })

	var got []string
	for _, info := range List() {
		if info.ID == "zz-test-a" || info.ID == "zz-test-b" {
			got = append(got, info.ID)
		}
	}
	if len(got) != 2 || got[0] != "zz-test-a" {
		t.Errorf("List() order = %v", got)
	}

	info, ok := Info("zz-test-b")
	if !ok || info.Title != "Stub zz-test-b" {
		t.Errorf("title not taken from the game: %+v", info)
	}

	g, err := Create("zz-test-a")
	if err != nil || g.ID() != "zz-test-a" {
		t.Errorf("Create() = %v, %v", g, err)
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create(missing) should fail")
	}
	if !Exists("zz-test-a") || Exists("missing") {
		t.Error("Exists() wrong")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "zz-dup"}, func() Game { return &stubGame{id: "zz-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register(GameInfo{ID: "zz-dup"}, func() Game { return &stubGame{id: "zz-dup"} })
}
