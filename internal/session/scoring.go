package session

import (
	"strings"
	"unicode"

	"github.com/vovakirdan/memory-chain/internal/difficulty"
)

// StreakBonus returns the bonus for answering with the given streak.
func StreakBonus(streak int) int {
	if streak < 0 {
		return 0
	}
	return streak / 5 * 10
}

// SpeedBonus returns the linear bonus for answering within windowMs.
// Answers at or past the window earn nothing.
func SpeedBonus(responseMs, windowMs int64, maxPoints int) int {
	if windowMs <= 0 || maxPoints <= 0 || responseMs >= windowMs {
		return 0
	}
	if responseMs < 0 {
		responseMs = 0
	}
	return int(int64(maxPoints) * (windowMs - responseMs) / windowMs)
}

// Normalize maps an answer to the form compared against the sequence.
// Letter answers are uppercased and keep their whitespace; word answers are
// lowercased with all whitespace removed.
func Normalize(mode difficulty.Mode, text string) string {
	if mode.ContentMode() == difficulty.ModeWords {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return unicode.ToLower(r)
		}, text)
	}
	return strings.ToUpper(text)
}
