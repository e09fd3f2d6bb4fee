package session

import "github.com/vovakirdan/memory-chain/internal/difficulty"

// Effect reports something adapters may act on. Effects are returned by
// Reduce in the order they happened.
type Effect interface {
	effect()
}

// LevelStarted is emitted whenever fresh content is dealt, including retries.
type LevelStarted struct {
	Mode   difficulty.Mode
	Level  int
	Retry  bool
	Config difficulty.LevelConfig
}

// AnswerJudged is emitted for each sequence submission.
type AnswerJudged struct {
	Correct    bool
	Expected   string
	Given      string
	Points     int
	SpeedBonus int
	ResponseMs int64
}

// CardsResolved is emitted when a face-up pair is resolved.
type CardsResolved struct {
	First, Second int
	Matched       bool
	Points        int
	BoardCleared  bool
}

// LivesChanged is emitted when lives change during play.
type LivesChanged struct {
	Lives int
	Delta int
}

// PowerUpUsed is emitted when a power-up is spent.
type PowerUpUsed struct {
	Kind      PowerUpKind
	Remaining int
}

// AchievementUnlocked is emitted once per newly granted achievement.
type AchievementUnlocked struct {
	Achievement Achievement
}

// GameEnded is emitted when the session enters PhaseGameOver.
type GameEnded struct {
	Mode    difficulty.Mode
	Outcome Outcome
	Score   int
	Level   int
	Err     string
}

func (LevelStarted) effect()        {}
func (AnswerJudged) effect()        {}
func (CardsResolved) effect()       {}
func (LivesChanged) effect()        {}
func (PowerUpUsed) effect()         {}
func (AchievementUnlocked) effect() {}
func (GameEnded) effect()           {}
