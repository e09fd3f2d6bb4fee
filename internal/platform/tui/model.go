package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/memory-chain/internal/core"
	"github.com/vovakirdan/memory-chain/internal/difficulty"
	"github.com/vovakirdan/memory-chain/internal/registry"
	"github.com/vovakirdan/memory-chain/internal/session"
)

// footerRows is the space below the game screen: answer field and help bar.
const footerRows = 2

// noticeTicks is how long a notice stays on screen.
const noticeTicks = 180

// Optional capabilities of a registered game.
type (
	effectSource interface {
		DrainEffects() []session.Effect
	}
	textEntry interface {
		AcceptsText() bool
	}
	achievementAware interface {
		SetAchievements(keys []string)
	}
	cardDesigner interface {
		SetCardDesign(design string)
	}
)

// GameModel is the Bubble Tea model for one running game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	recorder   *Recorder
	theme      Theme
	config     core.RuntimeConfig
	answer     textinput.Model
	help       help.Model
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	cards      bool
	notice     string
	noticeLeft int
	quitting   bool
	backToMenu bool
	standalone bool // quit the program instead of returning to a menu
}

// NewGameModel creates a model for game. recorder may be nil.
func NewGameModel(game registry.Game, recorder *Recorder, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	answer := textinput.New()
	answer.Prompt = "> "
	answer.Placeholder = "type the sequence"
	answer.CharLimit = 256

	theme := ThemeByName("")
	if p := recorder.Profile(); p != nil {
		theme = ThemeByName(p.ActiveTheme())
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-footerRows)),
		recorder:   recorder,
		theme:      theme,
		config:     cfg,
		answer:     answer,
		help:       help.New(),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		cards:      difficulty.Mode(game.ID()).IsCards(),
	}
}

// prepare hands the persisted profile to the game before a new run.
func (m *GameModel) prepare() {
	p := m.recorder.Profile()
	if p == nil {
		return
	}
	if g, ok := m.game.(achievementAware); ok {
		g.SetAchievements(p.Achievements())
	}
	if g, ok := m.game.(cardDesigner); ok {
		g.SetCardDesign(p.ActiveCardDesign())
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.prepare()
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Layout is computed on every render, so the game keeps running.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-footerRows))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	return m, cmd
}

func (m GameModel) typing() bool {
	g, ok := m.game.(textEntry)
	return ok && g.AcceptsText()
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		if !m.typing() {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	typing := m.typing()
	if typing && msg.Type == tea.KeyEnter {
		m.inputFrame.Submit(m.answer.Value())
		m.answer.Reset()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame, typing, m.cards) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if typing && !m.inputFrame.Has(core.ActionPowerUp) {
		var cmd tea.Cmd
		m.answer, cmd = m.answer.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.prepare()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if src, ok := m.game.(effectSource); ok {
		for _, n := range m.recorder.Apply(src.DrainEffects()) {
			m.notice = n.Text
			m.noticeLeft = noticeTicks
		}
	}
	if m.noticeLeft > 0 {
		m.noticeLeft--
	}

	var cmd tea.Cmd
	switch {
	case m.typing() && !m.answer.Focused():
		cmd = m.answer.Focus()
	case !m.typing() && m.answer.Focused():
		m.answer.Blur()
		m.answer.Reset()
	}

	return m, tea.Batch(cmd, tickCmd(m.config.TickRate))
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".memchain", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen, m.theme))
	b.WriteString("\n")
	switch {
	case m.typing():
		b.WriteString(m.answer.View())
	case m.noticeLeft > 0:
		b.WriteString(m.theme.Title.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the current runtime config (may have been updated by resize).
func (m GameModel) Config() core.RuntimeConfig {
	return m.config
}

// Run plays a single game until the player quits or leaves it.
func Run(game registry.Game, recorder *Recorder, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, recorder, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
