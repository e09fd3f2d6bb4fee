package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/memory-chain/internal/core"
	"github.com/vovakirdan/memory-chain/internal/session"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Flip      key.Binding
	Submit    key.Binding
	ExtraLife key.Binding
	SlowTime  key.Binding
	Reveal    key.Binding
	Restart   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ExtraLife, k.SlowTime, k.Reveal, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Flip},
		{k.Submit, k.ExtraLife, k.SlowTime, k.Reveal},
		{k.Restart, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
// Power-ups sit on ctrl chords so they never collide with typed answers.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Flip: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "flip"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		ExtraLife: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("^e", "extra life"),
		),
		SlowTime: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("^t", "slow time"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("^r", "reveal"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^c", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKeyToFrame updates an input frame based on a key message.
// typing is true while the player is entering an answer; plain keys then
// belong to the text field and only chords, Enter and Esc are mapped.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, typing, cards bool) bool {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		frame.Set(core.ActionQuit)
		return true
	case key.Matches(msg, k.Back):
		frame.Set(core.ActionBack)
	case key.Matches(msg, k.ExtraLife):
		frame.UsePowerUp(session.PowerUpExtraLife.String())
	case key.Matches(msg, k.SlowTime):
		frame.UsePowerUp(session.PowerUpSlowTime.String())
	case key.Matches(msg, k.Reveal):
		frame.UsePowerUp(session.PowerUpReveal.String())
	case typing:
		// Enter is handled by the text field owner.
	case cards && key.Matches(msg, k.Flip):
		frame.Set(core.ActionFlip)
	case key.Matches(msg, k.Up):
		frame.Set(core.ActionUp)
	case key.Matches(msg, k.Down):
		frame.Set(core.ActionDown)
	case key.Matches(msg, k.Left):
		frame.Set(core.ActionLeft)
	case key.Matches(msg, k.Right):
		frame.Set(core.ActionRight)
	case key.Matches(msg, k.Restart):
		frame.Set(core.ActionRestart)
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionProfile
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "p":
		return MenuActionProfile
	}

	return MenuActionNone
}
