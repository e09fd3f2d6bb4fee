package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration reports a generation request that the pools cannot satisfy,
// such as more words than a category holds.
var ErrConfiguration = errors.New("content: configuration error")

// maxFaceAttempts bounds redraws when a card face collides with an earlier pair.
const maxFaceAttempts = 256

// Shuffle permutes items in place with the Fisher-Yates algorithm.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// GenerateSequenceItem draws length independent characters, uniformly and with
// replacement, from the union of the given pools.
func GenerateSequenceItem(src Source, length int, pools []Pool) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("%w: sequence length %d", ErrConfiguration, length)
	}

	var all strings.Builder
	for _, p := range pools {
		all.WriteString(p.Chars())
	}
	chars := []rune(all.String())
	if len(chars) == 0 {
		return "", fmt.Errorf("%w: no characters in pools %v", ErrConfiguration, pools)
	}

	out := make([]rune, length)
	for i := range out {
		out[i] = chars[src.Intn(len(chars))]
	}
	return string(out), nil
}

// GenerateWordChain shuffles the category's word list and returns the first
// count words. Asking for more words than the category holds is an error;
// callers clamp count beforehand.
func GenerateWordChain(src Source, count int, category Category) ([]string, error) {
	words := Words(category)
	if words == nil {
		return nil, fmt.Errorf("%w: unknown word category %q", ErrConfiguration, category)
	}
	if count < 1 || count > len(words) {
		return nil, fmt.Errorf("%w: %d words requested from %q (has %d)", ErrConfiguration, count, category, len(words))
	}

	Shuffle(src, words)
	return words[:count], nil
}

// Card is one position on a matching board.
type Card struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	IsFlipped bool   `json:"is_flipped"`
	IsMatched bool   `json:"is_matched"`
}

// DealCards builds a board of pairs*2 cards. draw produces one face per pair;
// faces are kept distinct so every content value appears on exactly two cards.
// The flat list is shuffled and ids are assigned by final position.
func DealCards(src Source, pairs int, draw func() (string, error)) ([]Card, error) {
	if pairs < 1 {
		return nil, fmt.Errorf("%w: %d pairs requested", ErrConfiguration, pairs)
	}

	seen := make(map[string]bool, pairs)
	faces := make([]string, 0, pairs*2)
	for len(seen) < pairs {
		face, err := drawDistinct(seen, draw)
		if err != nil {
			return nil, err
		}
		seen[face] = true
		faces = append(faces, face, face)
	}

	Shuffle(src, faces)

	cards := make([]Card, len(faces))
	for i, face := range faces {
		cards[i] = Card{ID: i, Content: face}
	}
	return cards, nil
}

func drawDistinct(seen map[string]bool, draw func() (string, error)) (string, error) {
	for attempt := 0; attempt < maxFaceAttempts; attempt++ {
		face, err := draw()
		if err != nil {
			return "", err
		}
		if !seen[face] {
			return face, nil
		}
	}
	return "", fmt.Errorf("%w: could not draw a distinct card face after %d attempts", ErrConfiguration, maxFaceAttempts)
}
