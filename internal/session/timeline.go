package session

import "math"

// TimerLine is an independent timeline. At most one timer is pending per line.
type TimerLine int

const (
	LineReveal    TimerLine = iota // sequence disclosure steps
	LineCards                      // card pair resolution
	LineCountdown                  // card board countdown
	timerLineCount
)

// String returns the line name.
func (l TimerLine) String() string {
	switch l {
	case LineReveal:
		return "reveal"
	case LineCards:
		return "cards"
	case LineCountdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// Timer is a scheduled callback on the logical clock.
type Timer struct {
	Line       TimerLine
	DueMs      int64
	Generation uint64
	Active     bool
}

// PendingTimers returns the active timers ordered by due time.
func (s State) PendingTimers() []Timer {
	var out []Timer
	for _, t := range s.Timers {
		if t.Active {
			out = append(out, t)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].DueMs < out[j-1].DueMs; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (s *State) schedule(line TimerLine, delayMs int64) {
	if delayMs < 0 {
		delayMs = 0
	}
	s.Timers[line] = Timer{
		Line:       line,
		DueMs:      s.NowMs + delayMs,
		Generation: s.Generation,
		Active:     true,
	}
}

func (s *State) cancel(line TimerLine) {
	s.Timers[line] = Timer{}
}

func (s *State) cancelAll() {
	for l := range s.Timers {
		s.Timers[l] = Timer{}
	}
}

// current reports whether t is the live timer of its line.
func (s *State) current(t Timer) bool {
	if t.Line < 0 || t.Line >= timerLineCount {
		return false
	}
	return t.Active && t.Generation == s.Generation && s.Timers[t.Line] == t
}

// nextDue returns the earliest live timer due at or before limit. Ties go to
// the lower line.
func (s *State) nextDue(limit int64) (Timer, bool) {
	var best Timer
	found := false
	for _, t := range s.Timers {
		if !t.Active || t.DueMs > limit || t.Generation != s.Generation {
			continue
		}
		if !found || t.DueMs < best.DueMs {
			best = t
			found = true
		}
	}
	return best, found
}

// advance moves the clock by ms, firing due timers at their due times.
func (s *State) advance(env Env, ms int64) []Effect {
	if ms < 0 {
		ms = 0
	}
	target := s.NowMs + ms
	var effects []Effect
	for {
		t, ok := s.nextDue(target)
		if !ok {
			break
		}
		if t.DueMs > s.NowMs {
			s.NowMs = t.DueMs
		}
		effects = append(effects, s.fire(env, t)...)
	}
	s.NowMs = target
	return effects
}

func (s *State) fire(env Env, t Timer) []Effect {
	s.cancel(t.Line)
	switch t.Line {
	case LineReveal:
		return s.revealStep(env)
	case LineCards:
		return s.resolveCards(env)
	case LineCountdown:
		return s.countdownTick(env)
	}
	return nil
}

// stretch applies slow time to a delay.
func (s *State) stretch(env Env, ms int64) int64 {
	if !s.SlowActive() || env.Rules.SlowTimeMultiplier <= 1 {
		return ms
	}
	return int64(math.Round(float64(ms) * env.Rules.SlowTimeMultiplier))
}
