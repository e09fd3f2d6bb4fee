package content

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"
)

func TestGenerateSequenceItemUsesPools(t *testing.T) {
	src := rand.New(rand.NewSource(7))

	tests := []struct {
		name  string
		pools []Pool
	}{
		{"letters only", []Pool{PoolLetters}},
		{"letters and digits", []Pool{PoolLetters, PoolDigits}},
		{"all pools", []Pool{PoolLetters, PoolDigits, PoolSymbols}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var allowed strings.Builder
			for _, p := range tc.pools {
				allowed.WriteString(p.Chars())
			}
			for i := 0; i < 50; i++ {
				item, err := GenerateSequenceItem(src, 8, tc.pools)
				if err != nil {
					t.Fatalf("GenerateSequenceItem() error: %v", err)
				}
				if len([]rune(item)) != 8 {
					t.Fatalf("item %q has length %d, want 8", item, len(item))
				}
				for _, r := range item {
					if !strings.ContainsRune(allowed.String(), r) {
						t.Fatalf("item %q contains %q outside pools %v", item, r, tc.pools)
					}
				}
			}
		})
	}
}

func TestGenerateSequenceItemScripted(t *testing.T) {
	// Union of letters+digits has 36 chars: index 0 = 'A', 1 = 'B', 26 = '0'.
	src := NewSequenceSource(0, 1, 29)
	item, err := GenerateSequenceItem(src, 3, []Pool{PoolLetters, PoolDigits})
	if err != nil {
		t.Fatalf("GenerateSequenceItem() error: %v", err)
	}
	if item != "AB3" {
		t.Errorf("item = %q, want %q", item, "AB3")
	}
}

func TestGenerateSequenceItemErrors(t *testing.T) {
	src := NewSequenceSource()
	if _, err := GenerateSequenceItem(src, 0, []Pool{PoolLetters}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero length: err = %v, want ErrConfiguration", err)
	}
	if _, err := GenerateSequenceItem(src, 3, nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("no pools: err = %v, want ErrConfiguration", err)
	}
}

func TestGenerateWordChain(t *testing.T) {
	src := rand.New(rand.NewSource(42))

	chain, err := GenerateWordChain(src, 4, CategoryMedium)
	if err != nil {
		t.Fatalf("GenerateWordChain() error: %v", err)
	}
	if len(chain) != 4 {
		t.Fatalf("len(chain) = %d, want 4", len(chain))
	}

	pool := map[string]bool{}
	for _, w := range Words(CategoryMedium) {
		pool[w] = true
	}
	seen := map[string]bool{}
	for _, w := range chain {
		if !pool[w] {
			t.Errorf("word %q not in medium pool", w)
		}
		if seen[w] {
			t.Errorf("word %q drawn twice", w)
		}
		seen[w] = true
	}
}

func TestGenerateWordChainTooMany(t *testing.T) {
	_, err := GenerateWordChain(NewSequenceSource(), CategorySize(CategoryShort)+1, CategoryShort)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}

	_, err = GenerateWordChain(NewSequenceSource(), 2, Category("huge"))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("unknown category: err = %v, want ErrConfiguration", err)
	}
}

func TestWordsReturnsCopy(t *testing.T) {
	w := Words(CategoryShort)
	w[0] = "Mutated"
	if Words(CategoryShort)[0] == "Mutated" {
		t.Error("Words() must not expose the package word list")
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	for round := 0; round < 20; round++ {
		Shuffle(src, items)
		sorted := append([]int(nil), items...)
		sort.Ints(sorted)
		for i, v := range sorted {
			if v != i {
				t.Fatalf("Shuffle lost or duplicated elements: %v", items)
			}
		}
	}
}

func TestShuffleUnbiased(t *testing.T) {
	// Every element should land in every position with roughly equal frequency.
	src := rand.New(rand.NewSource(99))
	const n, trials = 4, 40000
	var counts [n][n]int

	for i := 0; i < trials; i++ {
		items := []int{0, 1, 2, 3}
		Shuffle(src, items)
		for pos, v := range items {
			counts[v][pos]++
		}
	}

	expected := trials / n
	for v := 0; v < n; v++ {
		for pos := 0; pos < n; pos++ {
			diff := counts[v][pos] - expected
			if diff < 0 {
				diff = -diff
			}
			if diff > expected/10 {
				t.Errorf("value %d at position %d: %d times, expected about %d", v, pos, counts[v][pos], expected)
			}
		}
	}
}

func TestDealCardsInvariant(t *testing.T) {
	src := rand.New(rand.NewSource(2024))

	for pairs := 1; pairs <= 24; pairs++ {
		draw := func() (string, error) {
			return GenerateSequenceItem(src, 3, []Pool{PoolLetters})
		}
		cards, err := DealCards(src, pairs, draw)
		if err != nil {
			t.Fatalf("DealCards(%d) error: %v", pairs, err)
		}
		if len(cards) != 2*pairs {
			t.Fatalf("DealCards(%d) produced %d cards", pairs, len(cards))
		}

		counts := map[string]int{}
		for i, c := range cards {
			if c.ID != i {
				t.Errorf("card at position %d has id %d", i, c.ID)
			}
			if c.IsFlipped || c.IsMatched {
				t.Errorf("card %d dealt face up or matched", i)
			}
			counts[c.Content]++
		}
		for face, n := range counts {
			if n != 2 {
				t.Errorf("face %q appears %d times, want 2", face, n)
			}
		}
	}
}

func TestDealCardsExhaustedFaces(t *testing.T) {
	draw := func() (string, error) { return "SAME", nil }
	_, err := DealCards(NewSequenceSource(), 2, draw)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

func TestSequenceSourceWraps(t *testing.T) {
	src := NewSequenceSource(5, 12)
	if got := src.Intn(10); got != 5 {
		t.Errorf("first draw = %d, want 5", got)
	}
	if got := src.Intn(10); got != 2 {
		t.Errorf("second draw = %d, want 2", got)
	}
	if got := src.Intn(10); got != 5 {
		t.Errorf("wrapped draw = %d, want 5", got)
	}
	if src.Draws() != 3 {
		t.Errorf("Draws() = %d, want 3", src.Draws())
	}
}
