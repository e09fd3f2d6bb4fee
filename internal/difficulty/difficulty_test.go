package difficulty

import (
	"errors"
	"testing"

	"github.com/vovakirdan/memory-chain/internal/content"
)

func TestSequenceModesMonotonic(t *testing.T) {
	for _, mode := range []Mode{ModeLetters, ModeWords} {
		for _, factor := range []float64{0.7, 1.0, 1.3, 2.0} {
			prev, err := ComputeConfig(mode, 1, factor)
			if err != nil {
				t.Fatalf("%s level 1: %v", mode, err)
			}
			for level := 2; level <= 100; level++ {
				cfg, err := ComputeConfig(mode, level, factor)
				if err != nil {
					t.Fatalf("%s level %d: %v", mode, level, err)
				}
				if size(cfg) < size(prev) {
					t.Errorf("%s factor %.1f: size dropped at level %d (%d -> %d)", mode, factor, level, size(prev), size(cfg))
				}
				if cfg.RevealMs > prev.RevealMs {
					t.Errorf("%s factor %.1f: timing rose at level %d (%d -> %d)", mode, factor, level, prev.RevealMs, cfg.RevealMs)
				}
				prev = cfg
			}
		}
	}
}

func size(c LevelConfig) int {
	if c.Mode == ModeWords {
		return c.Count
	}
	return c.Length
}

func TestLetterBands(t *testing.T) {
	tests := []struct {
		level    int
		length   int
		timingMs int
		pools    int
	}{
		{1, 2, 1500, 1},
		{5, 3, 1500, 1},
		{10, 4, 1500, 1},
		{11, 4, 1300, 2},
		{25, 6, 1300, 2},
		{26, 6, 1100, 2},
		{40, 8, 1100, 2},
		{41, 8, 900, 3},
		{60, 10, 900, 3},
		{61, 10, 700, 3},
		{80, 11, 700, 3},
		{81, 12, 500, 3},
		{100, 13, 500, 3},
	}
	for _, tt := range tests {
		cfg, err := ComputeConfig(ModeLetters, tt.level, 1.0)
		if err != nil {
			t.Fatalf("level %d: %v", tt.level, err)
		}
		if cfg.Length != tt.length || cfg.RevealMs != tt.timingMs || len(cfg.Pools) != tt.pools {
			t.Errorf("level %d: got length=%d timing=%d pools=%d, want %d/%d/%d",
				tt.level, cfg.Length, cfg.RevealMs, len(cfg.Pools), tt.length, tt.timingMs, tt.pools)
		}
	}
}

func TestWordBands(t *testing.T) {
	tests := []struct {
		level    int
		count    int
		timingMs int
		category content.Category
	}{
		{1, 2, 2000, content.CategoryShort},
		{20, 4, 2000, content.CategoryShort},
		{21, 4, 1800, content.CategoryMedium},
		{40, 5, 1800, content.CategoryMedium},
		{41, 6, 1500, content.CategoryLong},
		{60, 8, 1500, content.CategoryLong},
		{61, 8, 1200, content.CategoryLong},
		{81, 9, 1000, content.CategoryLong},
		{100, 10, 1000, content.CategoryLong},
	}
	for _, tt := range tests {
		cfg, err := ComputeConfig(ModeWords, tt.level, 1.0)
		if err != nil {
			t.Fatalf("level %d: %v", tt.level, err)
		}
		if cfg.Count != tt.count || cfg.RevealMs != tt.timingMs || cfg.Category != tt.category {
			t.Errorf("level %d: got count=%d timing=%d category=%s, want %d/%d/%s",
				tt.level, cfg.Count, cfg.RevealMs, cfg.Category, tt.count, tt.timingMs, tt.category)
		}
	}
}

func TestFactorScaling(t *testing.T) {
	cfg, _ := ComputeConfig(ModeLetters, 1, 2.0)
	if cfg.Length != 4 {
		t.Errorf("length at factor 2.0 = %d, want 4", cfg.Length)
	}
	if cfg.RevealMs != 750 {
		t.Errorf("timing at factor 2.0 = %d, want 750", cfg.RevealMs)
	}

	cfg, _ = ComputeConfig(ModeLetters, 100, 2.0)
	if cfg.RevealMs != DefaultTimingFloorMs {
		t.Errorf("timing floor: got %d, want %d", cfg.RevealMs, DefaultTimingFloorMs)
	}

	// Word counts never exceed the category size.
	cfg, _ = ComputeConfig(ModeWords, 100, 2.0)
	if cfg.Count != content.CategorySize(cfg.Category) {
		t.Errorf("word count = %d, want clamp to %d", cfg.Count, content.CategorySize(cfg.Category))
	}
}

func TestClampFactor(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.1, MinFactor},
		{0.7, 0.7},
		{1.25, 1.25},
		{3.0, MaxFactor},
	}
	for _, tt := range tests {
		if got := ClampFactor(tt.in); got != tt.want {
			t.Errorf("ClampFactor(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	a, _ := ComputeConfig(ModeLetters, 30, 9.0)
	b, _ := ComputeConfig(ModeLetters, 30, MaxFactor)
	if a.Length != b.Length || a.RevealMs != b.RevealMs || a.Factor != MaxFactor {
		t.Errorf("out-of-range factor not clamped: %+v vs %+v", a, b)
	}
}

func TestCardPairsAndTimeLimit(t *testing.T) {
	tests := []struct {
		level     int
		factor    float64
		pairs     int
		timeLimit int
	}{
		{1, 1.0, 4, 0},
		{10, 1.0, 5, 0},
		{50, 1.0, 9, 0},
		{51, 1.0, 9, 55},
		{100, 1.0, 14, 50},
		{100, 2.0, 24, 50},
		{1, 0.7, 3, 0},
		{0, 1.0, 4, 0},
	}
	for _, tt := range tests {
		cfg, err := ComputeConfig(ModeCardsLetters, tt.level, tt.factor)
		if err != nil {
			t.Fatalf("level %d: %v", tt.level, err)
		}
		if cfg.Pairs != tt.pairs || cfg.TimeLimitSeconds != tt.timeLimit {
			t.Errorf("level %d factor %.1f: got pairs=%d limit=%d, want %d/%d",
				tt.level, tt.factor, cfg.Pairs, cfg.TimeLimitSeconds, tt.pairs, tt.timeLimit)
		}
		if cfg.Timed() != (tt.timeLimit > 0) {
			t.Errorf("level %d: Timed() = %v", tt.level, cfg.Timed())
		}
	}
}

func TestCardContentPlateau(t *testing.T) {
	m := Default()
	at50, err := m.CardContent(ModeCardsLetters, 50)
	if err != nil {
		t.Fatal(err)
	}
	at90, err := m.CardContent(ModeCardsLetters, 90)
	if err != nil {
		t.Fatal(err)
	}
	if at50.Length != at90.Length || at50.Level != 50 || at90.Level != 50 {
		t.Errorf("content should plateau at level 50: %+v vs %+v", at50, at90)
	}

	words, err := m.CardContent(ModeCardsWords, 5)
	if err != nil {
		t.Fatal(err)
	}
	if words.Mode != ModeWords || words.Count != 2 {
		t.Errorf("cards-words content: %+v", words)
	}

	uncapped := Model{ContentLevelCap: 0}
	at90, _ = uncapped.CardContent(ModeCardsLetters, 90)
	if at90.Level != 90 {
		t.Errorf("uncapped content level = %d, want 90", at90.Level)
	}

	if _, err := m.CardContent(ModeLetters, 3); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("CardContent on sequence mode: err = %v", err)
	}
}

func TestUnknownMode(t *testing.T) {
	if _, err := ComputeConfig(Mode("chess"), 1, 1.0); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
	if Mode("chess").Valid() {
		t.Error("chess should not be a valid mode")
	}
	for _, m := range Modes() {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
}
