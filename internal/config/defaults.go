package config

import (
	_ "embed"

	"github.com/vovakirdan/memory-chain/internal/session"
)

//go:embed defaults/memchain.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration, matching the embedded YAML.
func Default() GameplayConfig {
	r := session.DefaultRules()
	return GameplayConfig{
		Session: SessionConfig{
			InitialLives: r.InitialLives,
			MaxLives:     r.MaxLives,
			MaxLevel:     r.MaxLevel,
		},
		Difficulty: DifficultyConfig{
			Adaptive:        r.Adaptive,
			InitialFactor:   r.InitialFactor,
			FastAnswerMs:    r.FastAnswerMs,
			FastStep:        r.FastStep,
			SlowStep:        r.SlowStep,
			MissStep:        r.MissStep,
			TimingFloorMs:   r.Difficulty.TimingFloorMs,
			ContentLevelCap: r.Difficulty.ContentLevelCap,
		},
		Cards: CardsConfig{
			MatchDelayMs:    r.MatchDelayMs,
			MismatchDelayMs: r.MismatchDelayMs,
		},
		Scoring: ScoringConfig{
			SpeedWindowMs: r.SpeedWindowMs,
			SpeedBonusMax: r.SpeedBonusMax,
		},
		PowerUps: PowerUpsConfig{
			SlowTimeMultiplier: r.SlowTimeMultiplier,
			ExtraLife:          fromRule(r.PowerUps[session.PowerUpExtraLife]),
			SlowTime:           fromRule(r.PowerUps[session.PowerUpSlowTime]),
			Reveal:             fromRule(r.PowerUps[session.PowerUpReveal]),
		},
	}
}

func fromRule(r session.PowerUpRule) PowerUpConfig {
	return PowerUpConfig{Start: r.Start, CooldownMs: r.CooldownMs, DurationMs: r.DurationMs}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
