package difficulty

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/memory-chain/internal/content"
)

// Performance factor bounds and fixed limits.
const (
	MinFactor              = 0.7
	MaxFactor              = 2.0
	DefaultTimingFloorMs   = 500
	DefaultContentLevelCap = 50
	MaxPairs               = 24
	MinPairs               = 2
	MaxLevel               = 100
)

// ErrUnknownMode is returned for modes the model has no rules for.
var ErrUnknownMode = errors.New("difficulty: unknown mode")

// LevelConfig describes how a single level is played. It is derived, never stored.
type LevelConfig struct {
	Mode   Mode
	Level  int
	Factor float64 // performance factor the config was computed with

	Length   int              // characters per item (letters)
	Count    int              // words per chain (words)
	Pools    []content.Pool   // character pools (letters)
	Category content.Category // word category (words)
	RevealMs int              // time each item stays on screen (sequence modes)

	Pairs            int // card pairs (card modes)
	TimeLimitSeconds int // 0 means untimed (card modes)
}

// Timed reports whether the level runs against a countdown.
func (c LevelConfig) Timed() bool {
	return c.TimeLimitSeconds > 0
}

// band is one level range of a sequence mode.
type band struct {
	maxLevel int
	base     int
	divisor  int
	timingMs int
	pools    []content.Pool
	category content.Category
}

var (
	lettersOnly = []content.Pool{content.PoolLetters}
	alnum       = []content.Pool{content.PoolLetters, content.PoolDigits}
	allPools    = []content.Pool{content.PoolLetters, content.PoolDigits, content.PoolSymbols}
)

var letterBands = []band{
	{maxLevel: 10, base: 2, divisor: 5, timingMs: 1500, pools: lettersOnly},
	{maxLevel: 25, base: 3, divisor: 8, timingMs: 1300, pools: alnum},
	{maxLevel: 40, base: 4, divisor: 10, timingMs: 1100, pools: alnum},
	{maxLevel: 60, base: 5, divisor: 12, timingMs: 900, pools: allPools},
	{maxLevel: 80, base: 6, divisor: 15, timingMs: 700, pools: allPools},
	{maxLevel: math.MaxInt, base: 8, divisor: 20, timingMs: 500, pools: allPools},
}

var wordBands = []band{
	{maxLevel: 20, base: 2, divisor: 10, timingMs: 2000, category: content.CategoryShort},
	{maxLevel: 40, base: 3, divisor: 15, timingMs: 1800, category: content.CategoryMedium},
	{maxLevel: 60, base: 4, divisor: 15, timingMs: 1500, category: content.CategoryLong},
	{maxLevel: 80, base: 5, divisor: 20, timingMs: 1200, category: content.CategoryLong},
	{maxLevel: math.MaxInt, base: 6, divisor: 25, timingMs: 1000, category: content.CategoryLong},
}

func bandFor(bands []band, level int) band {
	for _, b := range bands {
		if level <= b.maxLevel {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Model holds the tunables of the difficulty rules.
type Model struct {
	// TimingFloorMs is the shortest reveal time any factor can produce.
	TimingFloorMs int
	// ContentLevelCap is the level at which card face content stops growing.
	ContentLevelCap int
}

// Default returns the model with the standard floor and content cap.
func Default() Model {
	return Model{
		TimingFloorMs:   DefaultTimingFloorMs,
		ContentLevelCap: DefaultContentLevelCap,
	}
}

// ClampFactor restricts a performance factor to [MinFactor, MaxFactor].
// NaN is treated as the neutral factor 1.0.
func ClampFactor(f float64) float64 {
	if math.IsNaN(f) {
		return 1.0
	}
	return math.Max(MinFactor, math.Min(MaxFactor, f))
}

// ComputeConfig is Default().Compute.
func ComputeConfig(mode Mode, level int, factor float64) (LevelConfig, error) {
	return Default().Compute(mode, level, factor)
}

// Compute derives the level configuration. Levels below 1 are treated as 1 and
// the factor is clamped.
func (m Model) Compute(mode Mode, level int, factor float64) (LevelConfig, error) {
	if level < 1 {
		level = 1
	}
	factor = ClampFactor(factor)
	cfg := LevelConfig{Mode: mode, Level: level, Factor: factor}

	switch mode {
	case ModeLetters:
		b := bandFor(letterBands, level)
		cfg.Length = scaleUp(b.base+level/b.divisor, factor)
		cfg.Pools = b.pools
		cfg.RevealMs = m.scaleTiming(b.timingMs, factor)

	case ModeWords:
		b := bandFor(wordBands, level)
		count := scaleUp(b.base+level/b.divisor, factor)
		// Clamp so word chains can never ask for more words than exist.
		if size := content.CategorySize(b.category); count > size {
			count = size
		}
		cfg.Count = count
		cfg.Category = b.category
		cfg.RevealMs = m.scaleTiming(b.timingMs, factor)

	case ModeCardsLetters, ModeCardsWords:
		pairs := int(math.Round(float64(4+level/10) * factor))
		if pairs > MaxPairs {
			pairs = MaxPairs
		}
		if pairs < MinPairs {
			pairs = MinPairs
		}
		cfg.Pairs = pairs
		if level > 50 {
			cfg.TimeLimitSeconds = 60 - level/10
		}

	default:
		return LevelConfig{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	return cfg, nil
}

// CardContent returns the sequence configuration used to draw card faces for
// a card mode at the given level. Content difficulty plateaus at
// ContentLevelCap and ignores the performance factor; the factor already
// scales the number of pairs.
func (m Model) CardContent(mode Mode, level int) (LevelConfig, error) {
	if !mode.IsCards() {
		return LevelConfig{}, fmt.Errorf("%w: %q is not a card mode", ErrUnknownMode, mode)
	}
	if m.ContentLevelCap > 0 && level > m.ContentLevelCap {
		level = m.ContentLevelCap
	}
	return m.Compute(mode.ContentMode(), level, 1.0)
}

func (m Model) scaleTiming(ms int, factor float64) int {
	floor := m.TimingFloorMs
	if floor <= 0 {
		floor = DefaultTimingFloorMs
	}
	scaled := int(math.Round(float64(ms) / factor))
	if scaled < floor {
		return floor
	}
	return scaled
}

func scaleUp(n int, factor float64) int {
	scaled := int(math.Round(float64(n) * factor))
	if scaled < 1 {
		return 1
	}
	return scaled
}
