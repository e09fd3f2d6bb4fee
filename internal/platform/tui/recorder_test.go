package tui

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/memory-chain/internal/difficulty"
	"github.com/vovakirdan/memory-chain/internal/progress"
	"github.com/vovakirdan/memory-chain/internal/session"
	"github.com/vovakirdan/memory-chain/internal/storage"
)

func newTestRecorder(t *testing.T) (*Recorder, *storage.Store, *progress.Profile) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	profile := progress.Load(store, nil)
	r := NewRecorder(store, profile, nil)
	r.now = func() time.Time { return time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC) }
	return r, store, profile
}

func TestRecorderGameEnded(t *testing.T) {
	r, store, profile := newTestRecorder(t)

	notices := r.Apply([]session.Effect{
		session.GameEnded{Mode: difficulty.ModeWords, Outcome: session.OutcomeLost, Score: 340, Level: 7},
	})
	if len(notices) != 1 {
		t.Errorf("expected a new best notice, got %v", notices)
	}

	high, err := store.HighScore("words")
	if err != nil {
		t.Fatalf("HighScore failed: %v", err)
	}
	if high != 340 {
		t.Errorf("HighScore = %d, want 340", high)
	}
	if got := profile.BestScore("words"); got != 340 {
		t.Errorf("profile best = %d, want 340", got)
	}
	if hist := profile.Data().History["2026-06-01"]; len(hist) != 1 || hist[0].Level != 7 {
		t.Errorf("history = %+v", hist)
	}
}

func TestRecorderSkipsAbortedAndZero(t *testing.T) {
	r, store, profile := newTestRecorder(t)

	r.Apply([]session.Effect{
		session.GameEnded{Mode: difficulty.ModeLetters, Outcome: session.OutcomeAborted, Score: 50, Level: 2, Err: "boom"},
		session.GameEnded{Mode: difficulty.ModeLetters, Outcome: session.OutcomeLost, Score: 0, Level: 1},
	})

	scores, err := store.TopScores("letters", 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("expected no saved scores, got %d", len(scores))
	}
	// The zero-score loss still counts toward history and the streak.
	if d := profile.Data(); d.Streak.Count != 1 || len(d.History["2026-06-01"]) != 1 {
		t.Errorf("profile data = %+v", d)
	}
}

func TestRecorderGrantsAchievements(t *testing.T) {
	r, _, profile := newTestRecorder(t)
	ach, ok := session.LookupAchievement(session.AchLevel25)
	if !ok {
		t.Fatal("level-25 achievement missing from catalog")
	}

	notices := r.Apply([]session.Effect{session.AchievementUnlocked{Achievement: ach}})
	if len(notices) != 2 {
		t.Errorf("expected achievement and unlock notices, got %v", notices)
	}
	if !slices.Contains(profile.Achievements(), session.AchLevel25) {
		t.Error("achievement not granted")
	}
	if err := profile.SetTheme("ocean"); err != nil {
		t.Errorf("ocean theme should be unlocked: %v", err)
	}

	// Granting again unlocks nothing new.
	if notices := r.Apply([]session.Effect{session.AchievementUnlocked{Achievement: ach}}); len(notices) != 1 {
		t.Errorf("repeat grant notices = %v", notices)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	if r.Apply([]session.Effect{session.GameEnded{}}) != nil {
		t.Error("nil recorder should ignore effects")
	}
	if r.Profile() != nil {
		t.Error("nil recorder has no profile")
	}
}
