package session

import (
	"errors"
	"math"
	"strings"

	"github.com/vovakirdan/memory-chain/internal/content"
	"github.com/vovakirdan/memory-chain/internal/difficulty"
)

var errNoSource = errors.New("session: no random source")

// Env carries the collaborators the reducer reads but does not own.
type Env struct {
	Source content.Source
	Rules  Rules
	// Achievements is the persisted achievement set. It is merged into the
	// session on StartGame so granted keys are never granted again.
	Achievements []string
}

// Reduce applies ev to s and returns the next state with the effects it
// caused. Events that are not valid in the current state return s unchanged
// and no effects.
func Reduce(s State, ev Event, env Env) (State, []Effect) {
	next := s.clone()
	var (
		effects []Effect
		applied bool
	)

	switch e := ev.(type) {
	case StartGame:
		effects, applied = next.startGame(env, e.Mode)
	case Submit:
		effects, applied = next.submit(env, e.Text)
	case FlipCard:
		effects, applied = next.flipCard(env, e.ID)
	case UsePowerUp:
		effects, applied = next.usePowerUp(env, e.Kind)
	case ReturnToMenu:
		applied = next.returnToMenu()
	case Advance:
		effects, applied = next.advance(env, e.Millis), true
	case TimerFired:
		if next.current(e.Timer) {
			if e.Timer.DueMs > next.NowMs {
				next.NowMs = e.Timer.DueMs
			}
			effects, applied = next.fire(env, e.Timer), true
		}
	}

	if !applied {
		return s, nil
	}
	return next, effects
}

func (s *State) startGame(env Env, mode difficulty.Mode) ([]Effect, bool) {
	if !mode.Valid() {
		return nil, false
	}
	r := env.Rules
	*s = State{
		Phase:        PhaseAwaitingInput,
		Mode:         mode,
		Level:        1,
		Lives:        r.InitialLives,
		Factor:       difficulty.ClampFactor(r.InitialFactor),
		RevealIndex:  -1,
		PowerUps:     newInventory(r),
		Achievements: mergeAchievements(s.Achievements, env.Achievements),
		NowMs:        s.NowMs,
		Generation:   s.Generation + 1,
	}
	return s.beginLevel(env, false), true
}

func (s *State) returnToMenu() bool {
	if s.Phase == PhaseMenu {
		return false
	}
	*s = State{
		Phase:        PhaseMenu,
		RevealIndex:  -1,
		Factor:       1.0,
		Achievements: s.Achievements,
		NowMs:        s.NowMs,
		Generation:   s.Generation + 1,
	}
	return true
}

// beginLevel computes the level config and deals fresh content.
func (s *State) beginLevel(env Env, retry bool) []Effect {
	cfg, err := env.Rules.Difficulty.Compute(s.Mode, s.Level, s.Factor)
	if err != nil {
		return s.abort(err)
	}
	if env.Source == nil {
		return s.abort(errNoSource)
	}
	s.Config = cfg
	s.cancelAll()

	if s.Mode.IsCards() {
		cards, err := dealBoard(env, s.Mode, s.Level, cfg.Pairs)
		if err != nil {
			return s.abort(err)
		}
		s.Cards = cards
		s.Flipped = nil
		s.Mismatches = 0
		s.Sequence = nil
		s.TimeLeft = cfg.TimeLimitSeconds
		s.Phase = PhaseAwaitingInput
		s.InputOpenedMs = s.NowMs
		if cfg.Timed() {
			s.schedule(LineCountdown, s.stretch(env, 1000))
		}
	} else {
		seq, err := generateSequence(env.Source, cfg)
		if err != nil {
			return s.abort(err)
		}
		s.Sequence = seq
		s.Cards = nil
		s.Phase = PhaseReveal
		s.RevealIndex = 0
		s.schedule(LineReveal, s.stretch(env, int64(cfg.RevealMs)))
	}

	return []Effect{LevelStarted{Mode: s.Mode, Level: s.Level, Retry: retry, Config: cfg}}
}

func generateSequence(src content.Source, cfg difficulty.LevelConfig) ([]string, error) {
	if cfg.Mode == difficulty.ModeWords {
		return content.GenerateWordChain(src, cfg.Count, cfg.Category)
	}
	item, err := content.GenerateSequenceItem(src, cfg.Length, cfg.Pools)
	if err != nil {
		return nil, err
	}
	return []string{item}, nil
}

func dealBoard(env Env, mode difficulty.Mode, level, pairs int) ([]content.Card, error) {
	faceCfg, err := env.Rules.Difficulty.CardContent(mode, level)
	if err != nil {
		return nil, err
	}
	draw := func() (string, error) {
		seq, err := generateSequence(env.Source, faceCfg)
		if err != nil {
			return "", err
		}
		return strings.Join(seq, ""), nil
	}
	return content.DealCards(env.Source, pairs, draw)
}

// revealStep ends the display of the current item.
func (s *State) revealStep(env Env) []Effect {
	if s.Phase != PhaseReveal {
		return nil
	}
	if s.RevealIndex < len(s.Sequence)-1 {
		s.RevealIndex++
		s.schedule(LineReveal, s.stretch(env, int64(s.Config.RevealMs)))
		return nil
	}
	s.RevealIndex = -1
	s.Phase = PhaseAwaitingInput
	s.InputOpenedMs = s.NowMs
	return nil
}

func (s *State) submit(env Env, text string) ([]Effect, bool) {
	if s.Phase != PhaseAwaitingInput || s.Mode.IsCards() {
		return nil, false
	}
	r := env.Rules
	expected := Normalize(s.Mode, s.Expected())
	given := Normalize(s.Mode, text)
	response := s.NowMs - s.InputOpenedMs

	if given == expected {
		speed := SpeedBonus(response, r.SpeedWindowMs, r.SpeedBonusMax)
		points := s.Level*10 + StreakBonus(s.Streak) + speed
		s.Score += points
		s.Streak++
		if response < r.FastAnswerMs {
			s.adapt(r, r.FastStep)
		} else {
			s.adapt(r, r.SlowStep)
		}
		effects := []Effect{AnswerJudged{
			Correct: true, Expected: expected, Given: given,
			Points: points, SpeedBonus: speed, ResponseMs: response,
		}}
		return append(effects, s.levelCleared(env, milestone{})...), true
	}

	s.Streak = 0
	s.adapt(r, -r.MissStep)
	effects := []Effect{AnswerJudged{Expected: expected, Given: given, ResponseMs: response}}
	return append(effects, s.loseLife(env, true)...), true
}

func (s *State) flipCard(env Env, id int) ([]Effect, bool) {
	if s.Phase != PhaseAwaitingInput || !s.Mode.IsCards() {
		return nil, false
	}
	if len(s.Flipped) >= 2 || id < 0 || id >= len(s.Cards) {
		return nil, false
	}
	if c := s.Cards[id]; c.IsFlipped || c.IsMatched {
		return nil, false
	}

	s.Cards[id].IsFlipped = true
	s.Flipped = append(s.Flipped, id)
	if len(s.Flipped) == 2 {
		a, b := s.Cards[s.Flipped[0]], s.Cards[s.Flipped[1]]
		if a.Content == b.Content {
			s.schedule(LineCards, env.Rules.MatchDelayMs)
		} else {
			s.schedule(LineCards, env.Rules.MismatchDelayMs)
		}
	}
	return nil, true
}

func (s *State) resolveCards(env Env) []Effect {
	if s.Phase != PhaseAwaitingInput || len(s.Flipped) != 2 {
		return nil
	}
	r := env.Rules
	first, second := s.Flipped[0], s.Flipped[1]
	s.Flipped = nil
	s.Cards[first].IsFlipped = false
	s.Cards[second].IsFlipped = false

	if s.Cards[first].Content != s.Cards[second].Content {
		s.Streak = 0
		s.Mismatches++
		s.adapt(r, -r.MissStep)
		effects := []Effect{CardsResolved{First: first, Second: second}}
		return append(effects, s.loseLife(env, false)...)
	}

	s.Cards[first].IsMatched = true
	s.Cards[second].IsMatched = true
	points := s.Level*5 + StreakBonus(s.Streak)
	s.Score += points
	s.Streak++

	cleared := s.MatchedCount() == len(s.Cards)
	effects := []Effect{CardsResolved{First: first, Second: second, Matched: true, Points: points, BoardCleared: cleared}}
	if !cleared {
		return append(effects, s.evaluateAchievements(milestone{})...)
	}

	perfect := s.Mismatches == 0
	if perfect {
		s.adapt(r, r.FastStep)
	} else {
		s.adapt(r, r.SlowStep)
	}
	return append(effects, s.levelCleared(env, milestone{boardCleared: true, perfectBoard: perfect})...)
}

func (s *State) countdownTick(env Env) []Effect {
	if s.Phase != PhaseAwaitingInput || s.TimeLeft <= 0 {
		return nil
	}
	s.TimeLeft--
	if s.TimeLeft == 0 {
		return s.finish(OutcomeTimedOut, milestone{})
	}
	s.schedule(LineCountdown, s.stretch(env, 1000))
	return nil
}

// levelCleared advances the level and either wins or deals the next level.
func (s *State) levelCleared(env Env, m milestone) []Effect {
	s.Level++
	if s.Level > env.Rules.MaxLevel {
		return s.finish(OutcomeWon, m)
	}
	effects := s.evaluateAchievements(m)
	return append(effects, s.beginLevel(env, false)...)
}

// loseLife takes a life and either ends the game or continues. Sequence modes
// retry the level with freshly drawn content; card boards carry on as dealt.
func (s *State) loseLife(env Env, redeal bool) []Effect {
	s.Lives--
	effects := []Effect{LivesChanged{Lives: s.Lives, Delta: -1}}
	if s.Lives <= 0 {
		s.Lives = 0
		return append(effects, s.finish(OutcomeLost, milestone{})...)
	}
	if redeal {
		effects = append(effects, s.beginLevel(env, true)...)
	}
	return effects
}

func (s *State) finish(outcome Outcome, m milestone) []Effect {
	s.Outcome = outcome
	s.Phase = PhaseGameOver
	s.RevealIndex = -1
	s.cancelAll()
	effects := s.evaluateAchievements(m)
	return append(effects, GameEnded{Mode: s.Mode, Outcome: outcome, Score: s.Score, Level: s.Level, Err: s.Err})
}

func (s *State) abort(err error) []Effect {
	s.Err = err.Error()
	s.Outcome = OutcomeAborted
	s.Phase = PhaseGameOver
	s.RevealIndex = -1
	s.cancelAll()
	return []Effect{GameEnded{Mode: s.Mode, Outcome: OutcomeAborted, Score: s.Score, Level: s.Level, Err: s.Err}}
}

func (s *State) usePowerUp(env Env, kind PowerUpKind) ([]Effect, bool) {
	if !s.Playing() || !s.PowerUps.Usable(kind, s.NowMs) {
		return nil, false
	}
	// Nothing is hidden while a sequence is still being disclosed.
	if kind == PowerUpReveal && s.Phase == PhaseReveal {
		return nil, false
	}

	rule := env.Rules.PowerUps[kind]
	s.PowerUps[kind].Count--
	s.PowerUps[kind].ReadyAtMs = s.NowMs + rule.CooldownMs

	effects := []Effect{PowerUpUsed{Kind: kind, Remaining: s.PowerUps[kind].Count}}
	switch kind {
	case PowerUpExtraLife:
		if s.Lives < env.Rules.MaxLives {
			s.Lives++
			effects = append(effects, LivesChanged{Lives: s.Lives, Delta: 1})
		}
	case PowerUpSlowTime:
		s.SlowUntilMs = s.NowMs + rule.DurationMs
	case PowerUpReveal:
		s.RevealUntilMs = s.NowMs + rule.DurationMs
	}
	return effects, true
}

func (s *State) adapt(r Rules, delta float64) {
	if !r.Adaptive {
		return
	}
	// Round to hundredths so repeated steps do not drift.
	f := math.Round((s.Factor+delta)*100) / 100
	s.Factor = difficulty.ClampFactor(f)
}
