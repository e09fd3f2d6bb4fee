// Package memchain adapts the Memory Chain session to the platform's Game
// interface. It owns the clock: every Step advances the session by one tick
// of logical time, so replays with the same seed and inputs are identical.
package memchain

import (
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-chain/internal/config"
	"github.com/vovakirdan/memory-chain/internal/core"
	"github.com/vovakirdan/memory-chain/internal/difficulty"
	"github.com/vovakirdan/memory-chain/internal/registry"
	"github.com/vovakirdan/memory-chain/internal/session"
)

var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger games report to.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func currentLogger() *log.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return logger
}

// loadRules reads the configuration the same way for every mode.
func loadRules() session.Rules {
	settingsMu.RLock()
	path, preset, l := configPath, difficultyPreset, logger
	settingsMu.RUnlock()

	cfg, err := config.Load(path)
	if err != nil {
		l.Warn("using default gameplay config", "path", path, "err", err)
		cfg = config.Default()
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	return cfg.Rules()
}

var modeInfo = map[difficulty.Mode]registry.GameInfo{
	difficulty.ModeLetters: {
		Title:       "Letter Chain",
		Description: "Memorize a string of letters, digits and symbols, then type it back",
		Order:       1,
	},
	difficulty.ModeWords: {
		Title:       "Word Chain",
		Description: "Memorize a chain of words shown one at a time",
		Order:       2,
	},
	difficulty.ModeCardsLetters: {
		Title:       "Letter Pairs",
		Description: "Match pairs of letter cards",
		Order:       3,
	},
	difficulty.ModeCardsWords: {
		Title:       "Word Pairs",
		Description: "Match pairs of word cards",
		Order:       4,
	},
}

// Game runs one mode of Memory Chain.
type Game struct {
	mode  difficulty.Mode
	rules session.Rules
	fixed bool // rules were supplied by the caller and are not reloaded

	runtime core.RuntimeConfig
	rng     *rand.Rand
	state   session.State
	tick    uint64
	cursor  int

	achievements []string // persisted achievement set
	cardDesign   string
	pending      []session.Effect
	log          *log.Logger
}

// New creates a game for mode using the loaded configuration.
func New(mode difficulty.Mode) *Game {
	return &Game{mode: mode, state: session.New(), cardDesign: DesignClassic, log: currentLogger()}
}

// NewWithRules creates a game with explicit rules, bypassing config loading.
func NewWithRules(mode difficulty.Mode, rules session.Rules) *Game {
	g := New(mode)
	g.rules = rules
	g.fixed = true
	return g
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return modeInfo[g.mode].Title
}

// SetAchievements supplies the persisted achievement set so the session does
// not grant keys twice across games. Takes effect on the next Reset or restart.
func (g *Game) SetAchievements(keys []string) {
	g.achievements = append([]string(nil), keys...)
}

// SetCardDesign selects the card back drawn by Render.
func (g *Game) SetCardDesign(design string) {
	g.cardDesign = design
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.log = currentLogger().With("mode", g.mode)
	if !g.fixed {
		g.rules = loadRules()
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.cursor = 0
	g.pending = nil
	g.state = session.New()
	g.dispatch(session.StartGame{Mode: g.mode})
}

func (g *Game) env() session.Env {
	return session.Env{Source: g.rng, Rules: g.rules, Achievements: g.achievements}
}

func (g *Game) dispatch(ev session.Event) {
	next, effects := session.Reduce(g.state, ev, g.env())
	g.state = next
	for _, e := range effects {
		g.logEffect(e)
	}
	g.pending = append(g.pending, effects...)
}

func (g *Game) logEffect(e session.Effect) {
	switch e := e.(type) {
	case session.LevelStarted:
		g.log.Debug("level started", "level", e.Level, "retry", e.Retry, "factor", e.Config.Factor)
	case session.AchievementUnlocked:
		g.log.Info("achievement unlocked", "key", e.Achievement.Key)
	case session.GameEnded:
		if e.Outcome == session.OutcomeAborted {
			g.log.Error("game aborted", "level", e.Level, "err", e.Err)
			return
		}
		g.log.Info("game ended", "outcome", e.Outcome, "score", e.Score, "level", e.Level)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.state.GameOver() {
		g.cursor = 0
		g.dispatch(session.StartGame{Mode: g.mode})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPowerUp) {
		if kind, ok := session.ParsePowerUpKind(in.PowerUp); ok {
			g.dispatch(session.UsePowerUp{Kind: kind})
		}
	}

	if g.mode.IsCards() {
		g.moveCursor(in)
		if in.Has(core.ActionFlip) || in.Has(core.ActionSubmit) {
			g.dispatch(session.FlipCard{ID: g.cursor})
		}
	} else if in.Has(core.ActionSubmit) {
		g.dispatch(session.Submit{Text: in.Text})
	}

	g.dispatch(session.Advance{Millis: g.runtime.TickMillis()})
	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	n := len(g.state.Cards)
	if n == 0 {
		return
	}
	cols := Columns(n)
	switch {
	case in.Has(core.ActionLeft):
		g.cursor--
	case in.Has(core.ActionRight):
		g.cursor++
	case in.Has(core.ActionUp):
		if g.cursor-cols >= 0 {
			g.cursor -= cols
		}
	case in.Has(core.ActionDown):
		if g.cursor+cols < n {
			g.cursor += cols
		}
	}
	g.cursor = core.Clamp(g.cursor, 0, n-1)
}

// Columns returns the board width for n cards.
func Columns(n int) int {
	switch {
	case n <= 16:
		return 4
	case n <= 36:
		return 6
	default:
		return 8
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.state
	return core.GameState{
		Score:    s.Score,
		Level:    s.Level,
		Lives:    s.Lives,
		GameOver: s.GameOver(),
		Won:      s.Won(),
		Paused:   s.Phase == session.PhaseReveal || len(s.Flipped) == 2,
	}
}

// Session returns the underlying session state.
func (g *Game) Session() session.State {
	return g.state
}

// Cursor returns the card under the cursor.
func (g *Game) Cursor() int {
	return g.cursor
}

// AcceptsText reports whether typed text would be judged now.
func (g *Game) AcceptsText() bool {
	return !g.mode.IsCards() && g.state.Phase == session.PhaseAwaitingInput
}

// DrainEffects returns and clears the effects produced since the last call.
func (g *Game) DrainEffects() []session.Effect {
	out := g.pending
	g.pending = nil
	return out
}

// Register the modes with the registry
func init() {
	for _, mode := range difficulty.Modes() {
		mode := mode
		info := modeInfo[mode]
		info.ID = string(mode)
		registry.Register(info, func() registry.Game {
			return New(mode)
		})
	}
}
