package content

// Source is the random source generators draw from.
// *math/rand.Rand satisfies it; tests use SequenceSource.
type Source interface {
	// Intn returns a value in [0, n). n is always positive.
	Intn(n int) int
}

// SequenceSource replays a fixed list of values, wrapping around at the end.
// Each value is reduced modulo n, so scripts stay valid for any bound.
type SequenceSource struct {
	values []int
	pos    int
}

// NewSequenceSource creates a source that replays values in order.
// An empty script always yields 0.
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{values: values}
}

// Intn returns the next scripted value modulo n.
func (s *SequenceSource) Intn(n int) int {
	if n <= 0 || len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Draws reports how many values have been consumed.
func (s *SequenceSource) Draws() int {
	return s.pos
}
