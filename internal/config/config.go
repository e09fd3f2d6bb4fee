// Package config provides YAML/TOML gameplay configuration loading and
// difficulty presets for Memory Chain.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/memory-chain/internal/difficulty"
	"github.com/vovakirdan/memory-chain/internal/session"
)

// ErrInvalid is returned by Validate for nonsensical settings.
var ErrInvalid = errors.New("config: invalid configuration")

// GameplayConfig contains every gameplay tunable.
type GameplayConfig struct {
	Session    SessionConfig    `yaml:"session" toml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Cards      CardsConfig      `yaml:"cards" toml:"cards"`
	Scoring    ScoringConfig    `yaml:"scoring" toml:"scoring"`
	PowerUps   PowerUpsConfig   `yaml:"power_ups" toml:"power_ups"`
}

// SessionConfig defines lives and the final level.
type SessionConfig struct {
	InitialLives int `yaml:"initial_lives" toml:"initial_lives"`
	MaxLives     int `yaml:"max_lives" toml:"max_lives"`
	MaxLevel     int `yaml:"max_level" toml:"max_level"`
}

// DifficultyConfig defines the adaptive performance factor.
type DifficultyConfig struct {
	Adaptive        bool    `yaml:"adaptive" toml:"adaptive"`
	InitialFactor   float64 `yaml:"initial_factor" toml:"initial_factor"`
	FastAnswerMs    int64   `yaml:"fast_answer_ms" toml:"fast_answer_ms"` // answers quicker than this count as fast
	FastStep        float64 `yaml:"fast_step" toml:"fast_step"`
	SlowStep        float64 `yaml:"slow_step" toml:"slow_step"`
	MissStep        float64 `yaml:"miss_step" toml:"miss_step"`
	TimingFloorMs   int     `yaml:"timing_floor_ms" toml:"timing_floor_ms"`
	ContentLevelCap int     `yaml:"content_level_cap" toml:"content_level_cap"` // 0 disables the card content plateau
}

// CardsConfig defines card resolution delays.
type CardsConfig struct {
	MatchDelayMs    int64 `yaml:"match_delay_ms" toml:"match_delay_ms"`
	MismatchDelayMs int64 `yaml:"mismatch_delay_ms" toml:"mismatch_delay_ms"`
}

// ScoringConfig defines the speed bonus of sequence modes.
type ScoringConfig struct {
	SpeedWindowMs int64 `yaml:"speed_window_ms" toml:"speed_window_ms"`
	SpeedBonusMax int   `yaml:"speed_bonus_max" toml:"speed_bonus_max"`
}

// PowerUpsConfig defines each power-up kind.
type PowerUpsConfig struct {
	SlowTimeMultiplier float64       `yaml:"slow_time_multiplier" toml:"slow_time_multiplier"`
	ExtraLife          PowerUpConfig `yaml:"extra_life" toml:"extra_life"`
	SlowTime           PowerUpConfig `yaml:"slow_time" toml:"slow_time"`
	Reveal             PowerUpConfig `yaml:"reveal" toml:"reveal"`
}

// PowerUpConfig defines one power-up kind.
type PowerUpConfig struct {
	Start      int   `yaml:"start" toml:"start"`
	CooldownMs int64 `yaml:"cooldown_ms" toml:"cooldown_ms"`
	DurationMs int64 `yaml:"duration_ms" toml:"duration_ms"`
}

// Validate rejects settings the session cannot run with.
func (c GameplayConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	s := c.Session
	check(s.InitialLives > 0, "session.initial_lives must be positive, got %d", s.InitialLives)
	check(s.MaxLives >= s.InitialLives, "session.max_lives (%d) below initial_lives (%d)", s.MaxLives, s.InitialLives)
	check(s.MaxLevel > 0, "session.max_level must be positive, got %d", s.MaxLevel)

	d := c.Difficulty
	check(d.InitialFactor >= difficulty.MinFactor && d.InitialFactor <= difficulty.MaxFactor,
		"difficulty.initial_factor %.2f outside [%.1f, %.1f]", d.InitialFactor, difficulty.MinFactor, difficulty.MaxFactor)
	check(d.FastStep >= 0 && d.SlowStep >= 0 && d.MissStep >= 0, "difficulty steps must not be negative")
	check(d.FastAnswerMs >= 0, "difficulty.fast_answer_ms must not be negative")
	check(d.TimingFloorMs > 0, "difficulty.timing_floor_ms must be positive, got %d", d.TimingFloorMs)
	check(d.ContentLevelCap >= 0, "difficulty.content_level_cap must not be negative")

	check(c.Cards.MatchDelayMs >= 0 && c.Cards.MismatchDelayMs >= 0, "card delays must not be negative")
	check(c.Scoring.SpeedWindowMs >= 0 && c.Scoring.SpeedBonusMax >= 0, "scoring values must not be negative")

	p := c.PowerUps
	check(p.SlowTimeMultiplier >= 1, "power_ups.slow_time_multiplier must be at least 1, got %.2f", p.SlowTimeMultiplier)
	for name, pu := range map[string]PowerUpConfig{"extra_life": p.ExtraLife, "slow_time": p.SlowTime, "reveal": p.Reveal} {
		check(pu.Start >= 0 && pu.CooldownMs >= 0 && pu.DurationMs >= 0, "power_ups.%s values must not be negative", name)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Rules converts the configuration into the session's rule set.
func (c GameplayConfig) Rules() session.Rules {
	r := session.DefaultRules()
	r.InitialLives = c.Session.InitialLives
	r.MaxLives = c.Session.MaxLives
	r.MaxLevel = c.Session.MaxLevel

	r.Adaptive = c.Difficulty.Adaptive
	r.InitialFactor = c.Difficulty.InitialFactor
	r.FastAnswerMs = c.Difficulty.FastAnswerMs
	r.FastStep = c.Difficulty.FastStep
	r.SlowStep = c.Difficulty.SlowStep
	r.MissStep = c.Difficulty.MissStep
	r.Difficulty = difficulty.Model{
		TimingFloorMs:   c.Difficulty.TimingFloorMs,
		ContentLevelCap: c.Difficulty.ContentLevelCap,
	}

	r.MatchDelayMs = c.Cards.MatchDelayMs
	r.MismatchDelayMs = c.Cards.MismatchDelayMs
	r.SpeedWindowMs = c.Scoring.SpeedWindowMs
	r.SpeedBonusMax = c.Scoring.SpeedBonusMax

	r.SlowTimeMultiplier = c.PowerUps.SlowTimeMultiplier
	r.PowerUps[session.PowerUpExtraLife] = c.PowerUps.ExtraLife.rule()
	r.PowerUps[session.PowerUpSlowTime] = c.PowerUps.SlowTime.rule()
	r.PowerUps[session.PowerUpReveal] = c.PowerUps.Reveal.rule()
	return r
}

func (p PowerUpConfig) rule() session.PowerUpRule {
	return session.PowerUpRule{Start: p.Start, CooldownMs: p.CooldownMs, DurationMs: p.DurationMs}
}
