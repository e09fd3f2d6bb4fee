// Package content generates the randomized material a level is played with:
// character sequences, word chains, and shuffled card boards.
package content

// Pool names a set of characters sequence items are drawn from.
type Pool string

const (
	PoolLetters Pool = "letters"
	PoolDigits  Pool = "digits"
	PoolSymbols Pool = "symbols"
)

var poolChars = map[Pool]string{
	PoolLetters: "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	PoolDigits:  "0123456789",
	PoolSymbols: "!@#$%^&*",
}

// Chars returns the characters of the pool, or "" for an unknown pool.
func (p Pool) Chars() string {
	return poolChars[p]
}

// Category names a fixed word list used by word chains.
type Category string

const (
	CategoryShort  Category = "short"
	CategoryMedium Category = "medium"
	CategoryLong   Category = "long"
)

var wordLists = map[Category][]string{
	CategoryShort:  {"Cat", "Dog", "Sun", "Car", "Bed", "Cup", "Hat", "Key", "Pen", "Box"},
	CategoryMedium: {"Chair", "Phone", "House", "Music", "Water", "Light", "Table", "Plant", "Clock", "Book"},
	CategoryLong:   {"Computer", "Mountain", "Elephant", "Rainbow", "Basketball", "Adventure", "Butterfly", "Chocolate", "Yesterday", "Beautiful"},
}

// Words returns a copy of the category's word list (nil for an unknown category).
func Words(c Category) []string {
	list, ok := wordLists[c]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// CategorySize returns the number of words available in the category.
func CategorySize(c Category) int {
	return len(wordLists[c])
}
