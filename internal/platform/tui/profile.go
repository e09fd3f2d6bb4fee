package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-chain/internal/games/memchain"
	"github.com/vovakirdan/memory-chain/internal/progress"
	"github.com/vovakirdan/memory-chain/internal/registry"
	"github.com/vovakirdan/memory-chain/internal/session"
)

// ProfileKeyMap defines the key bindings for the profile screen.
type ProfileKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProfileKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ProfileKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Prev, k.Next}, {k.Back, k.Quit}}
}

// DefaultProfileKeyMap returns default key bindings.
func DefaultProfileKeyMap() ProfileKeyMap {
	return ProfileKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Next: key.NewBinding(key.WithKeys("right", "l", "enter"), key.WithHelp("→/l", "next")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

const (
	rowTheme = iota
	rowCardDesign
	rowCount
)

// ProfileModel shows persisted progress and lets the player pick unlocked
// cosmetics.
type ProfileModel struct {
	profile   *progress.Profile
	keys      ProfileKeyMap
	help      help.Model
	theme     Theme
	row       int
	width     int
	quitting  bool
	goingBack bool
}

// NewProfileModel creates a profile screen. profile may be nil.
func NewProfileModel(profile *progress.Profile, width int) ProfileModel {
	m := ProfileModel{
		profile: profile,
		keys:    DefaultProfileKeyMap(),
		help:    help.New(),
		width:   width,
	}
	m.refreshTheme()
	return m
}

func (m *ProfileModel) refreshTheme() {
	m.theme = ThemeByName("")
	if m.profile != nil {
		m.theme = ThemeByName(m.profile.ActiveTheme())
	}
}

// Init initializes the profile model.
func (m ProfileModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the profile screen.
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
		case key.Matches(msg, m.keys.Up):
			m.row = (m.row + rowCount - 1) % rowCount
		case key.Matches(msg, m.keys.Down):
			m.row = (m.row + 1) % rowCount
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

// cycle selects the neighbouring unlocked cosmetic on the current row.
func (m *ProfileModel) cycle(delta int) {
	if m.profile == nil {
		return
	}
	d := m.profile.Data()
	unlocked, active, set := d.Themes, d.ActiveTheme, m.profile.SetTheme
	if m.row == rowCardDesign {
		unlocked, active, set = d.CardDesigns, d.ActiveCardDesign, m.profile.SetCardDesign
	}
	if len(unlocked) == 0 {
		return
	}
	i := slices.Index(unlocked, active)
	next := unlocked[(i+delta+len(unlocked))%len(unlocked)]
	if err := set(next); err == nil {
		m.refreshTheme()
	}
}

// View renders the profile screen.
func (m ProfileModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("PROFILE"), m.width))
	b.WriteString("\n\n")

	if m.profile == nil {
		b.WriteString(centerText(m.theme.Description.Render("Progress is not being saved."), m.width))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
		return b.String()
	}

	d := m.profile.Data()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	var scores strings.Builder
	scores.WriteString(m.theme.Title.Render("Best scores"))
	scores.WriteString("\n")
	for _, info := range registry.List() {
		fmt.Fprintf(&scores, "%-14s %6d\n", info.Title, d.BestScores[info.ID])
	}
	fmt.Fprintf(&scores, "\nDaily streak: %d", d.Streak.Count)
	if d.Streak.Last != "" {
		fmt.Fprintf(&scores, " (last %s)", d.Streak.Last)
	}

	var achievements strings.Builder
	achievements.WriteString(m.theme.Title.Render("Achievements"))
	achievements.WriteString("\n")
	for _, a := range session.Catalog() {
		mark, style := "·", m.theme.Description
		if slices.Contains(d.Achievements, a.Key) {
			mark, style = "✓", m.theme.ItemNormal
		}
		achievements.WriteString(style.Render(mark + " " + a.Title))
		achievements.WriteString("\n")
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		box.Render(scores.String()), "  ", box.Render(strings.TrimRight(achievements.String(), "\n")))
	b.WriteString(panels)
	b.WriteString("\n\n")

	b.WriteString(m.cosmeticRow(rowTheme, "Theme", ThemeNames(), d.Themes, d.ActiveTheme))
	b.WriteString("\n")
	b.WriteString(m.cosmeticRow(rowCardDesign, "Cards", cardDesigns, d.CardDesigns, d.ActiveCardDesign))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

var cardDesigns = []string{memchain.DesignClassic, memchain.DesignStars, memchain.DesignGems}

func (m ProfileModel) cosmeticRow(row int, label string, all, unlocked []string, active string) string {
	cursor := "  "
	if m.row == row {
		cursor = "> "
	}
	parts := make([]string, len(all))
	for i, name := range all {
		switch {
		case name == active:
			parts[i] = m.theme.ItemActive.Render("[" + name + "]")
		case slices.Contains(unlocked, name):
			parts[i] = m.theme.ItemNormal.Render(" " + name + " ")
		default:
			parts[i] = m.theme.Description.Render(" " + name + " (locked) ")
		}
	}
	return fmt.Sprintf("%s%-6s %s", cursor, label+":", strings.Join(parts, " "))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ProfileModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProfileModel) IsQuitting() bool {
	return m.quitting
}
