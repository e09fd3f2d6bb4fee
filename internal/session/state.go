package session

import (
	"strings"

	"github.com/vovakirdan/memory-chain/internal/content"
	"github.com/vovakirdan/memory-chain/internal/difficulty"
)

// Phase is the coarse position of a session in its lifecycle.
type Phase int

const (
	PhaseMenu          Phase = iota // no game running
	PhaseReveal                     // sequence items are being disclosed
	PhaseAwaitingInput              // sequence answer or card flips accepted
	PhaseGameOver                   // terminal; only StartGame or ReturnToMenu apply
)

// String returns a lowercase name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseReveal:
		return "reveal"
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome describes how a finished game ended.
type Outcome int

const (
	OutcomeNone     Outcome = iota // game not finished
	OutcomeWon                     // beat the last level
	OutcomeLost                    // ran out of lives
	OutcomeTimedOut                // card countdown reached zero
	OutcomeAborted                 // content could not be generated
)

// String returns a lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// State is a complete, copyable description of a session. Slices are never
// shared between the input and output of Reduce.
type State struct {
	Phase   Phase
	Mode    difficulty.Mode
	Outcome Outcome

	Level  int
	Score  int
	Lives  int
	Streak int
	Factor float64 // performance factor used for the next level config

	Config difficulty.LevelConfig

	// Sequence modes.
	Sequence      []string
	RevealIndex   int   // item on display during PhaseReveal, -1 otherwise
	InputOpenedMs int64 // logical time input was first accepted for this level

	// Card modes.
	Cards      []content.Card
	Flipped    []int // ids face-up and awaiting resolution (0, 1 or 2)
	Mismatches int   // mismatches on the current board
	TimeLeft   int   // countdown seconds; 0 when the board is untimed

	PowerUps      Inventory
	SlowUntilMs   int64
	RevealUntilMs int64

	Achievements []string // sorted

	NowMs      int64
	Generation uint64
	Timers     [timerLineCount]Timer

	Err string // set when the game was aborted
}

// New returns a session resting in the menu.
func New() State {
	return State{Phase: PhaseMenu, RevealIndex: -1, Factor: 1.0}
}

// Playing reports whether a game is running.
func (s State) Playing() bool {
	return s.Phase == PhaseReveal || s.Phase == PhaseAwaitingInput
}

// GameOver reports whether the game has finished.
func (s State) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Won reports whether the finished game was a win.
func (s State) Won() bool {
	return s.Outcome == OutcomeWon
}

// Expected returns the concatenated answer of the current sequence.
func (s State) Expected() string {
	return strings.Join(s.Sequence, "")
}

// SlowActive reports whether slow time is in effect.
func (s State) SlowActive() bool {
	return s.NowMs < s.SlowUntilMs
}

// RevealActive reports whether the reveal power-up is in effect.
func (s State) RevealActive() bool {
	return s.NowMs < s.RevealUntilMs
}

// SequenceVisible reports whether the whole sequence may be shown to the
// player during input.
func (s State) SequenceVisible() bool {
	return s.Phase == PhaseAwaitingInput && !s.Mode.IsCards() && s.RevealActive()
}

// FaceVisible reports whether card id should be drawn face-up.
func (s State) FaceVisible(id int) bool {
	if id < 0 || id >= len(s.Cards) {
		return false
	}
	c := s.Cards[id]
	return c.IsMatched || c.IsFlipped || s.RevealActive()
}

// MatchedCount returns the number of matched cards.
func (s State) MatchedCount() int {
	n := 0
	for _, c := range s.Cards {
		if c.IsMatched {
			n++
		}
	}
	return n
}

// clone returns a deep copy whose slices can be mutated freely.
func (s State) clone() State {
	out := s
	if s.Sequence != nil {
		out.Sequence = append([]string(nil), s.Sequence...)
	}
	if s.Cards != nil {
		out.Cards = append([]content.Card(nil), s.Cards...)
	}
	if s.Flipped != nil {
		out.Flipped = append([]int(nil), s.Flipped...)
	}
	if s.Achievements != nil {
		out.Achievements = append([]string(nil), s.Achievements...)
	}
	return out
}
