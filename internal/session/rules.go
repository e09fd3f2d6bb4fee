// Package session implements the game session as a pure state machine.
//
// A session is a State value advanced by Reduce. Reduce never blocks, never
// reads the wall clock and never logs: time moves only through Advance events,
// randomness comes from the Env's Source, and everything an adapter must react
// to (persistence, sounds, toasts) is returned as Effects.
package session

import "github.com/vovakirdan/memory-chain/internal/difficulty"

// PowerUpRule configures one power-up kind.
type PowerUpRule struct {
	Start      int   // inventory at game start
	CooldownMs int64 // time before the kind can be used again
	DurationMs int64 // how long a timed effect lasts; 0 for instant kinds
}

// Rules holds every tunable the reducer reads.
type Rules struct {
	InitialLives int
	MaxLives     int
	MaxLevel     int // a correct answer past this level wins the game

	// Performance factor adaptation.
	InitialFactor float64
	Adaptive      bool
	FastAnswerMs  int64
	FastStep      float64
	SlowStep      float64
	MissStep      float64

	// Speed bonus for sequence answers.
	SpeedWindowMs int64
	SpeedBonusMax int

	// Card resolution delays.
	MatchDelayMs    int64
	MismatchDelayMs int64

	SlowTimeMultiplier float64
	PowerUps           [PowerUpKindCount]PowerUpRule

	Difficulty difficulty.Model
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	var pu [PowerUpKindCount]PowerUpRule
	pu[PowerUpExtraLife] = PowerUpRule{Start: 1, CooldownMs: 30_000}
	pu[PowerUpSlowTime] = PowerUpRule{Start: 2, CooldownMs: 20_000, DurationMs: 10_000}
	pu[PowerUpReveal] = PowerUpRule{Start: 2, CooldownMs: 25_000, DurationMs: 2_000}

	return Rules{
		InitialLives:       3,
		MaxLives:           5,
		MaxLevel:           difficulty.MaxLevel,
		InitialFactor:      1.0,
		Adaptive:           true,
		FastAnswerMs:       3_000,
		FastStep:           0.10,
		SlowStep:           0.05,
		MissStep:           0.15,
		SpeedWindowMs:      10_000,
		SpeedBonusMax:      50,
		MatchDelayMs:       500,
		MismatchDelayMs:    1_000,
		SlowTimeMultiplier: 1.5,
		PowerUps:           pu,
		Difficulty:         difficulty.Default(),
	}
}
