package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-chain/internal/core"
)

// Theme maps the semantic screen colours to terminal styles and carries the
// chrome styles used by the menu, scoreboard and profile screens.
type Theme struct {
	Name   string
	Colors map[core.Color]lipgloss.Style

	Title       lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Border      lipgloss.Color
	Help        lipgloss.Style
}

// palette lists the colour for every role, in core.Color order.
type palette struct {
	def, accent, muted, success, danger, warning, cardBack, cardFace, highlight string
}

func newTheme(name string, p palette) Theme {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Theme{
		Name: name,
		Colors: map[core.Color]lipgloss.Style{
			core.ColorDefault:   fg(p.def),
			core.ColorAccent:    fg(p.accent).Bold(true),
			core.ColorMuted:     fg(p.muted),
			core.ColorSuccess:   fg(p.success),
			core.ColorDanger:    fg(p.danger),
			core.ColorWarning:   fg(p.warning),
			core.ColorCardBack:  fg(p.cardBack),
			core.ColorCardFace:  fg(p.cardFace).Bold(true),
			core.ColorHighlight: fg(p.highlight).Bold(true),
		},
		Title:       fg(p.accent).Bold(true),
		ItemNormal:  fg(p.def),
		ItemActive:  fg(p.highlight).Bold(true),
		Description: fg(p.muted),
		Border:      lipgloss.Color(p.muted),
		Help:        fg(p.muted),
	}
}

var themes = map[string]Theme{
	"classic": newTheme("classic", palette{
		def: "252", accent: "51", muted: "245", success: "46", danger: "196",
		warning: "226", cardBack: "240", cardFace: "255", highlight: "229",
	}),
	"ocean": newTheme("ocean", palette{
		def: "153", accent: "45", muted: "67", success: "79", danger: "168",
		warning: "222", cardBack: "24", cardFace: "195", highlight: "123",
	}),
	"sunset": newTheme("sunset", palette{
		def: "223", accent: "208", muted: "138", success: "142", danger: "160",
		warning: "220", cardBack: "94", cardFace: "230", highlight: "214",
	}),
	"neon": newTheme("neon", palette{
		def: "255", accent: "199", muted: "99", success: "118", danger: "197",
		warning: "227", cardBack: "57", cardFace: "87", highlight: "171",
	}),
}

// ThemeNames returns the known theme names.
func ThemeNames() []string {
	return []string{"classic", "ocean", "sunset", "neon"}
}

// ThemeByName returns the named theme, or classic for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["classic"]
}

// Style returns the style for a screen colour role.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.Colors[c]; ok {
		return s
	}
	return t.Colors[core.ColorDefault]
}
