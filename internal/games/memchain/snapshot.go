package memchain

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Snapshot contains the complete game state for replay and determinism checks.
// Uses primitive types only so snapshots compare with ==.
type Snapshot struct {
	Tick       uint64
	Phase      string
	Outcome    string
	Level      int
	Score      int
	Lives      int
	Streak     int
	FactorPct  int // performance factor in hundredths
	Sequence   string
	Cards      string // "content:flags" per card, flags m=matched f=flipped
	Flipped    string
	TimeLeft   int
	PowerUps   string // count/readyAt per kind
	NowMs      int64
	Generation uint64
	Cursor     int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state

	cards := make([]string, len(s.Cards))
	for i, c := range s.Cards {
		flags := ""
		if c.IsMatched {
			flags += "m"
		}
		if c.IsFlipped {
			flags += "f"
		}
		cards[i] = c.Content + ":" + flags
	}

	flipped := make([]string, len(s.Flipped))
	for i, id := range s.Flipped {
		flipped[i] = strconv.Itoa(id)
	}

	pu := make([]string, len(s.PowerUps))
	for i, slot := range s.PowerUps {
		pu[i] = strconv.Itoa(slot.Count) + "/" + strconv.FormatInt(slot.ReadyAtMs, 10)
	}

	return Snapshot{
		Tick:       g.tick,
		Phase:      s.Phase.String(),
		Outcome:    s.Outcome.String(),
		Level:      s.Level,
		Score:      s.Score,
		Lives:      s.Lives,
		Streak:     s.Streak,
		FactorPct:  int(s.Factor*100 + 0.5),
		Sequence:   strings.Join(s.Sequence, "|"),
		Cards:      strings.Join(cards, ","),
		Flipped:    strings.Join(flipped, ","),
		TimeLeft:   s.TimeLeft,
		PowerUps:   strings.Join(pu, ","),
		NowMs:      s.NowMs,
		Generation: s.Generation,
		Cursor:     g.cursor,
	}
}

// Hash returns a hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.Join([]string{
		strconv.FormatUint(snap.Tick, 10),
		snap.Phase,
		snap.Outcome,
		strconv.Itoa(snap.Level),
		strconv.Itoa(snap.Score),
		strconv.Itoa(snap.Lives),
		strconv.Itoa(snap.Streak),
		strconv.Itoa(snap.FactorPct),
		snap.Sequence,
		snap.Cards,
		snap.Flipped,
		strconv.Itoa(snap.TimeLeft),
		snap.PowerUps,
		strconv.FormatInt(snap.NowMs, 10),
		strconv.FormatUint(snap.Generation, 10),
		strconv.Itoa(snap.Cursor),
	}, "\x00")))
	return h.Sum64()
}
