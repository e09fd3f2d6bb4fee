package tui

import (
	"strings"

	"github.com/vovakirdan/memory-chain/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				// Continuation cells of wide glyphs hold no rune.
				if cell.Rune != 0 {
					run.WriteRune(cell.Rune)
				}
				x++
			}
			sb.WriteString(theme.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
