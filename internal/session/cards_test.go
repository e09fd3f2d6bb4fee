package session

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/memory-chain/internal/content"
	"github.com/vovakirdan/memory-chain/internal/difficulty"
)

func findPair(t *testing.T, cards []content.Card) (int, int) {
	t.Helper()
	for i, a := range cards {
		if a.IsMatched {
			continue
		}
		for j := i + 1; j < len(cards); j++ {
			if !cards[j].IsMatched && cards[j].Content == a.Content {
				return i, j
			}
		}
	}
	t.Fatal("no unmatched pair on the board")
	return -1, -1
}

func findMismatch(t *testing.T, cards []content.Card) (int, int) {
	t.Helper()
	for i, a := range cards {
		for j := i + 1; j < len(cards); j++ {
			if !a.IsMatched && !cards[j].IsMatched && cards[j].Content != a.Content {
				return i, j
			}
		}
	}
	t.Fatal("no mismatching cards on the board")
	return -1, -1
}

func flip(s State, env Env, ids ...int) State {
	for _, id := range ids {
		s, _ = Reduce(s, FlipCard{ID: id}, env)
	}
	return s
}

func TestCardBoardDealt(t *testing.T) {
	env := testEnv(seeded(21))
	for _, mode := range []difficulty.Mode{difficulty.ModeCardsLetters, difficulty.ModeCardsWords} {
		s := start(t, env, mode)
		if s.Phase != PhaseAwaitingInput || len(s.Cards) != 8 {
			t.Fatalf("%s: phase %s, %d cards", mode, s.Phase, len(s.Cards))
		}
		counts := map[string]int{}
		for i, c := range s.Cards {
			if c.ID != i {
				t.Errorf("%s: card %d has id %d", mode, i, c.ID)
			}
			counts[c.Content]++
		}
		for face, n := range counts {
			if n != 2 {
				t.Errorf("%s: %q appears %d times", mode, face, n)
			}
		}
		if s.TimeLeft != 0 || len(s.PendingTimers()) != 0 {
			t.Errorf("%s: level 1 board should be untimed", mode)
		}
	}
}

func TestFlipNoOps(t *testing.T) {
	env := testEnv(seeded(22))
	s := start(t, env, difficulty.ModeCardsLetters)
	a, b := findMismatch(t, s.Cards)

	s = flip(s, env, a)
	before := s
	if s = flip(s, env, a); !reflect.DeepEqual(s, before) {
		t.Error("flipping a face-up card changed state")
	}
	if s = flip(s, env, 99); !reflect.DeepEqual(s, before) {
		t.Error("flipping an unknown id changed state")
	}

	s = flip(s, env, b)
	if len(s.Flipped) != 2 {
		t.Fatalf("flipped = %v", s.Flipped)
	}
	third := -1
	for i := range s.Cards {
		if i != a && i != b {
			third = i
			break
		}
	}
	before = s
	if s = flip(s, env, third); !reflect.DeepEqual(s, before) {
		t.Error("third flip while two are face-up changed state")
	}
	if got, _ := Reduce(s, Submit{Text: "x"}, env); !reflect.DeepEqual(got, s) {
		t.Error("submit in a card mode changed state")
	}
}

func TestCardMatch(t *testing.T) {
	env := testEnv(seeded(23))
	s := start(t, env, difficulty.ModeCardsLetters)
	a, b := findPair(t, s.Cards)

	s = flip(s, env, a, b)
	s, _ = Reduce(s, Advance{Millis: 499}, env)
	if s.Cards[a].IsMatched {
		t.Fatal("resolved before the match delay")
	}
	s, effects := Reduce(s, Advance{Millis: 1}, env)
	if !s.Cards[a].IsMatched || !s.Cards[b].IsMatched || len(s.Flipped) != 0 {
		t.Fatalf("pair not matched: %+v %+v", s.Cards[a], s.Cards[b])
	}
	if s.Score != 5 || s.Streak != 1 {
		t.Errorf("score=%d streak=%d, want 5/1", s.Score, s.Streak)
	}
	resolved, ok := hasEffect[CardsResolved](effects)
	if !ok || !resolved.Matched || resolved.Points != 5 {
		t.Errorf("CardsResolved = %+v", resolved)
	}

	// Matched cards cannot be flipped again.
	before := s
	if s = flip(s, env, a); !reflect.DeepEqual(s, before) {
		t.Error("flipping a matched card changed state")
	}
}

func TestCardMismatch(t *testing.T) {
	env := testEnv(seeded(24))
	s := start(t, env, difficulty.ModeCardsLetters)
	a, b := findMismatch(t, s.Cards)

	s = flip(s, env, a, b)
	s, _ = Reduce(s, Advance{Millis: 999}, env)
	if s.Lives != 3 {
		t.Fatal("mismatch resolved before its delay")
	}
	s, effects := Reduce(s, Advance{Millis: 1}, env)
	if s.Lives != 2 || s.Mismatches != 1 || s.Streak != 0 {
		t.Errorf("lives=%d mismatches=%d streak=%d", s.Lives, s.Mismatches, s.Streak)
	}
	if s.Cards[a].IsFlipped || s.Cards[b].IsFlipped || len(s.Flipped) != 0 {
		t.Error("mismatched cards not turned back down")
	}
	if _, ok := hasEffect[LivesChanged](effects); !ok {
		t.Error("no LivesChanged effect")
	}
}

func TestCardBoardClearAdvances(t *testing.T) {
	env := testEnv(seeded(25))
	s := start(t, env, difficulty.ModeCardsWords)

	var effects []Effect
	for s.Level == 1 {
		a, b := findPair(t, s.Cards)
		s = flip(s, env, a, b)
		var step []Effect
		s, step = Reduce(s, Advance{Millis: env.Rules.MatchDelayMs}, env)
		effects = append(effects, step...)
	}

	// Four pairs at level 1, each worth level*5 with no bonus below streak 5.
	if s.Score != 20 || s.Level != 2 {
		t.Errorf("score=%d level=%d, want 20/2", s.Score, s.Level)
	}
	if !s.HasAchievement(AchPerfectBoard) {
		t.Error("perfect-board not granted")
	}
	if s.MatchedCount() != 0 || len(s.Cards) != 2*s.Config.Pairs {
		t.Errorf("new board: %d matched, %d cards for %d pairs", s.MatchedCount(), len(s.Cards), s.Config.Pairs)
	}
	if started, ok := hasEffect[LevelStarted](effects); !ok || started.Level != 2 {
		t.Errorf("LevelStarted = %+v", started)
	}
}

func timedBoard(t *testing.T, env Env, level int) State {
	t.Helper()
	s := awaiting(difficulty.ModeCardsLetters, level, 3)
	s.PowerUps = newInventory(env.Rules)
	s.beginLevel(env, false)
	if s.Phase != PhaseAwaitingInput {
		t.Fatalf("board at level %d: phase %s err %q", level, s.Phase, s.Err)
	}
	return s
}

func TestCountdownTimeout(t *testing.T) {
	env := testEnv(seeded(26))
	s := timedBoard(t, env, 60)
	if s.TimeLeft != 54 {
		t.Fatalf("time left = %d, want 54", s.TimeLeft)
	}

	s, _ = Reduce(s, Advance{Millis: 1_000}, env)
	if s.TimeLeft != 53 {
		t.Errorf("after 1s: %d", s.TimeLeft)
	}

	s, effects := Reduce(s, Advance{Millis: 53_000}, env)
	if !s.GameOver() || s.Outcome != OutcomeTimedOut || s.Level != 60 {
		t.Fatalf("phase %s outcome %s level %d", s.Phase, s.Outcome, s.Level)
	}
	if ended, ok := hasEffect[GameEnded](effects); !ok || ended.Outcome != OutcomeTimedOut {
		t.Errorf("GameEnded = %+v", ended)
	}
}

func TestSlowTimeStretchesCountdown(t *testing.T) {
	env := testEnv(seeded(27))
	s := timedBoard(t, env, 55)
	s, _ = Reduce(s, Advance{Millis: 1_000}, env)
	s, _ = Reduce(s, UsePowerUp{Kind: PowerUpSlowTime}, env)

	// The tick already scheduled lands at 2s; the next one is stretched to 1.5s.
	s, _ = Reduce(s, Advance{Millis: 1_000}, env)
	left := s.TimeLeft
	s, _ = Reduce(s, Advance{Millis: 1_499}, env)
	if s.TimeLeft != left {
		t.Errorf("tick fired before the stretched interval")
	}
	s, _ = Reduce(s, Advance{Millis: 1}, env)
	if s.TimeLeft != left-1 {
		t.Errorf("time left = %d, want %d", s.TimeLeft, left-1)
	}
}

func TestCardRevealPowerUp(t *testing.T) {
	env := testEnv(seeded(28))
	s := start(t, env, difficulty.ModeCardsLetters)
	if s.FaceVisible(0) {
		t.Fatal("face visible before any flip")
	}
	s, _ = Reduce(s, UsePowerUp{Kind: PowerUpReveal}, env)
	for id := range s.Cards {
		if !s.FaceVisible(id) {
			t.Fatalf("card %d hidden during reveal", id)
		}
	}
	s, _ = Reduce(s, Advance{Millis: 2_000}, env)
	if s.FaceVisible(0) {
		t.Error("face still visible after reveal ended")
	}
}
