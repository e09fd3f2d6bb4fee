package session

import "github.com/vovakirdan/memory-chain/internal/difficulty"

// Event is an input to Reduce.
type Event interface {
	event()
}

// StartGame begins a new game in Mode, discarding any running one.
type StartGame struct {
	Mode difficulty.Mode
}

// Submit is a typed answer in a sequence mode.
type Submit struct {
	Text string
}

// FlipCard turns a card face-up in a card mode.
type FlipCard struct {
	ID int
}

// UsePowerUp spends one power-up.
type UsePowerUp struct {
	Kind PowerUpKind
}

// ReturnToMenu abandons the game. Every pending timer becomes inert.
type ReturnToMenu struct{}

// Advance moves the logical clock forward and fires due timers in order.
type Advance struct {
	Millis int64
}

// TimerFired delivers a timer scheduled outside the reducer. Timers from a
// previous generation or no longer pending are dropped.
type TimerFired struct {
	Timer Timer
}

func (StartGame) event()    {}
func (Submit) event()       {}
func (FlipCard) event()     {}
func (UsePowerUp) event()   {}
func (ReturnToMenu) event() {}
func (Advance) event()      {}
func (TimerFired) event()   {}
