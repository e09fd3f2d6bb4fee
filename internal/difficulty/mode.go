// Package difficulty maps a mode, a level and a performance factor to the
// configuration a level is played with. Everything here is pure arithmetic;
// randomness is applied downstream by the content package.
package difficulty

// Mode identifies a game mode.
type Mode string

const (
	ModeLetters      Mode = "letters"
	ModeWords        Mode = "words"
	ModeCardsLetters Mode = "cards-letters"
	ModeCardsWords   Mode = "cards-words"
)

// Modes returns all modes in menu order.
func Modes() []Mode {
	return []Mode{ModeLetters, ModeWords, ModeCardsLetters, ModeCardsWords}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeLetters, ModeWords, ModeCardsLetters, ModeCardsWords:
		return true
	}
	return false
}

// IsCards reports whether m is a matching-pairs mode.
func (m Mode) IsCards() bool {
	return m == ModeCardsLetters || m == ModeCardsWords
}

// ContentMode returns the sequence mode whose content fills the cards of a
// card mode. Sequence modes return themselves.
func (m Mode) ContentMode() Mode {
	switch m {
	case ModeCardsLetters:
		return ModeLetters
	case ModeCardsWords:
		return ModeWords
	}
	return m
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}
