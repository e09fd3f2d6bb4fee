package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-chain/internal/core"
	"github.com/vovakirdan/memory-chain/internal/progress"
	"github.com/vovakirdan/memory-chain/internal/registry"
	"github.com/vovakirdan/memory-chain/internal/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
	screenProfile
)

// SessionModel manages the full flow: menu -> game/scoreboard/profile -> menu.
// It is the top-level model for the menu command and for SSH sessions.
type SessionModel struct {
	store      *storage.Store
	profile    *progress.Profile
	recorder   *Recorder
	config     core.RuntimeConfig
	logger     *log.Logger
	screen     screen
	menu       MenuModel
	gameModel  GameModel
	scoreboard ScoreboardModel
	profileMod ProfileModel
	quitting   bool
}

// NewSessionModel creates a new session model. store and profile may be nil.
func NewSessionModel(store *storage.Store, profile *progress.Profile, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:    store,
		profile:  profile,
		recorder: NewRecorder(store, profile, logger),
		config:   cfg,
		logger:   logger,
		menu:     NewMenuModel(profile, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScoreboard(msg)
	case screenProfile:
		return m.updateProfile(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu rebuilds the menu so best scores and theme are current.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.profile, m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scoreboard = NewScoreboardModel(m.store, m.menu.theme, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()

	case m.menu.WantsProfile():
		m.screen = screenProfile
		m.profileMod = NewProfileModel(m.profile, m.config.ScreenW)
		return m, m.profileMod.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		game, err := registry.Create(id)
		if err != nil {
			// The menu only lists registered modes.
			m.logger.Error("cannot create game", "mode", id, "err", err)
			return m.toMenu()
		}
		m.config = m.menu.Config()
		m.gameModel = NewGameModel(game, m.recorder, m.config)
		m.screen = screenGame
		m.logger.Debug("game started", "mode", id)
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		// Ticks still in flight are ignored by the menu.
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.profileMod.Update(msg)
	if pm, ok := newModel.(ProfileModel); ok {
		m.profileMod = pm
	}
	if m.profileMod.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.profileMod.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	case screenProfile:
		return m.profileMod.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu loop in the local terminal.
func RunSession(store *storage.Store, profile *progress.Profile, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(store, profile, cfg, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
