package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickMillis returns the logical duration of one simulation tick in milliseconds.
// A non-positive tick rate falls back to 60 ticks per second.
func (c RuntimeConfig) TickMillis() int64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	ms := int64(1000 / rate)
	if ms < 1 {
		ms = 1
	}
	return ms
}

// GameState is the summary a game reports to the platform after each tick.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level (1-based)
	Lives    int  // Remaining lives
	GameOver bool // Whether the game has ended
	Won      bool // Whether the game ended in a win
	Paused   bool // Whether input is currently not accepted (reveal, resolution)
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
