package memchain

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/memory-chain/internal/core"
	"github.com/vovakirdan/memory-chain/internal/session"
)

// Card designs selectable in the profile.
const (
	DesignClassic = "classic"
	DesignStars   = "stars"
	DesignGems    = "gems"
)

// CardBack returns the glyph that fills a face-down card.
func CardBack(design string) rune {
	switch design {
	case DesignStars:
		return '✦'
	case DesignGems:
		return '◆'
	default:
		return '▒'
	}
}

const (
	headerRows = 3 // title, status, power-ups
	cardH      = 3
	maxCardW   = 16
)

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	s := g.state
	g.renderHeader(dst, s)

	switch {
	case s.GameOver():
		g.renderGameOver(dst, s)
	case g.mode.IsCards():
		g.renderBoard(dst, s)
	default:
		g.renderSequence(dst, s)
	}
}

func (g *Game) renderHeader(dst *core.Screen, s session.State) {
	dst.DrawTextCentered(0, g.Title(), core.ColorAccent)

	x := dst.DrawText(1, 1, fmt.Sprintf("Level %d  Score %d  ", s.Level, s.Score), core.ColorDefault)
	x = dst.DrawText(x, 1, strings.Repeat("♥", s.Lives), core.ColorDanger)
	x = dst.DrawText(x, 1, fmt.Sprintf("  Streak %d", s.Streak), core.ColorDefault)
	if bonus := session.StreakBonus(s.Streak); bonus > 0 {
		x = dst.DrawText(x, 1, fmt.Sprintf(" (+%d)", bonus), core.ColorSuccess)
	}
	if s.TimeLeft > 0 {
		c := core.ColorDefault
		if s.TimeLeft <= 10 {
			c = core.ColorWarning
		}
		dst.DrawText(x, 1, fmt.Sprintf("  Time %ds", s.TimeLeft), c)
	}

	x = 1
	for _, kind := range session.PowerUpKinds() {
		slot := s.PowerUps[kind]
		label := fmt.Sprintf("[%s] %s x%d", powerUpKey(kind), kind, slot.Count)
		c := core.ColorMuted
		if cd := s.PowerUps.Cooldown(kind, s.NowMs); cd > 0 {
			label += fmt.Sprintf(" %ds", (cd+999)/1000)
			c = core.ColorWarning
		} else if slot.Count > 0 {
			c = core.ColorDefault
		}
		x = dst.DrawText(x, 2, label, c) + 2
	}
	if s.SlowActive() {
		dst.DrawText(x, 2, "SLOW", core.ColorSuccess)
	}
}

func powerUpKey(kind session.PowerUpKind) string {
	switch kind {
	case session.PowerUpExtraLife:
		return "^E"
	case session.PowerUpSlowTime:
		return "^T"
	case session.PowerUpReveal:
		return "^R"
	}
	return "?"
}

func (g *Game) renderSequence(dst *core.Screen, s session.State) {
	mid := headerRows + (dst.Height()-headerRows)/2 - 1

	switch s.Phase {
	case session.PhaseReveal:
		if s.RevealIndex < 0 || s.RevealIndex >= len(s.Sequence) {
			return
		}
		item := s.Sequence[s.RevealIndex]
		w := runewidth.StringWidth(item) + 4
		box := core.NewRect((dst.Width()-w)/2, mid-1, w, 3)
		dst.DrawBox(box, core.ColorMuted)
		dst.DrawTextCentered(mid, item, core.ColorAccent)
		if len(s.Sequence) > 1 {
			dst.DrawTextCentered(mid+3, fmt.Sprintf("%d / %d", s.RevealIndex+1, len(s.Sequence)), core.ColorMuted)
		}
	case session.PhaseAwaitingInput:
		if s.SequenceVisible() {
			dst.DrawTextCentered(mid-2, strings.Join(s.Sequence, " "), core.ColorAccent)
		}
		dst.DrawTextCentered(mid, "Type the sequence and press Enter", core.ColorDefault)
	}
}

func (g *Game) renderBoard(dst *core.Screen, s session.State) {
	n := len(s.Cards)
	if n == 0 {
		return
	}
	cols := Columns(n)
	rows := (n + cols - 1) / cols

	cw := (dst.Width() - 2) / cols
	if cw > maxCardW {
		cw = maxCardW
	}
	ch := cardH
	if headerRows+rows*ch > dst.Height() {
		ch = 1
	}
	left := (dst.Width() - cw*cols) / 2
	top := headerRows + (dst.Height()-headerRows-rows*ch)/2

	back := CardBack(g.cardDesign)
	for i, card := range s.Cards {
		r := core.NewRect(left+(i%cols)*cw, top+(i/cols)*ch, cw-1, ch)

		c := core.ColorCardBack
		face := strings.Repeat(string(back), max(1, r.W-2))
		switch {
		case card.IsMatched:
			c = core.ColorSuccess
			face = card.Content
		case s.FaceVisible(i):
			c = core.ColorCardFace
			face = card.Content
		}
		if i == g.cursor {
			c = core.ColorHighlight
		}

		inner := max(1, r.W-2)
		face = runewidth.Truncate(face, inner, "…")
		pad := (inner - runewidth.StringWidth(face)) / 2
		textY := r.Y + ch/2
		if ch >= 3 {
			dst.DrawBox(r, c)
		}
		dst.DrawText(r.X+1+pad, textY, face, c)
	}
}

func (g *Game) renderGameOver(dst *core.Screen, s session.State) {
	mid := headerRows + (dst.Height()-headerRows)/2 - 2

	title, c := "GAME OVER", core.ColorDanger
	switch s.Outcome {
	case session.OutcomeWon:
		title, c = "YOU WIN!", core.ColorSuccess
	case session.OutcomeTimedOut:
		title = "TIME'S UP"
	case session.OutcomeAborted:
		title = "GAME ABORTED"
	}
	dst.DrawTextCentered(mid, title, c)
	dst.DrawTextCentered(mid+2, fmt.Sprintf("Final score %d at level %d", s.Score, s.Level), core.ColorDefault)
	if s.Err != "" {
		dst.DrawTextCentered(mid+3, s.Err, core.ColorMuted)
	}
	dst.DrawTextCentered(mid+5, "r restart  esc menu", core.ColorMuted)
}
