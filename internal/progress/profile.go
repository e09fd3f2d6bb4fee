package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-chain/internal/difficulty"
	"github.com/vovakirdan/memory-chain/internal/session"
)

// Persisted keys.
const (
	KeyBestScores          = "best_scores"
	KeyAchievements        = "achievements"
	KeyUnlockedThemes      = "unlocked_themes"
	KeyUnlockedCardDesigns = "unlocked_card_designs"
	KeyActiveTheme         = "active_theme"
	KeyActiveCardDesign    = "active_card_design"
	KeyScoreHistory        = "score_history"
	KeyDailyStreak         = "daily_streak"
)

// DefaultCosmetic is the theme and card design everyone starts with.
const DefaultCosmetic = "classic"

// ErrLocked is returned when selecting a cosmetic that has not been unlocked.
var ErrLocked = errors.New("progress: cosmetic not unlocked")

// DailyStreak counts consecutive UTC days with at least one finished game.
type DailyStreak struct {
	Count int    `json:"count"`
	Last  string `json:"last"` // DateKey of the last day played
}

// HistoryEntry is one finished game in the score history.
type HistoryEntry struct {
	Mode  string `json:"mode"`
	Score int    `json:"score"`
	Level int    `json:"level"`
}

// Data is a copy of every persisted aggregate.
type Data struct {
	BestScores       map[string]int            `json:"best_scores"`
	Achievements     []string                  `json:"achievements"`
	Themes           []string                  `json:"unlocked_themes"`
	CardDesigns      []string                  `json:"unlocked_card_designs"`
	ActiveTheme      string                    `json:"active_theme"`
	ActiveCardDesign string                    `json:"active_card_design"`
	History          map[string][]HistoryEntry `json:"score_history"`
	Streak           DailyStreak               `json:"daily_streak"`
}

// Defaults returns the aggregates of a player who has never played.
func Defaults() Data {
	best := make(map[string]int)
	for _, m := range difficulty.Modes() {
		best[string(m)] = 0
	}
	return Data{
		BestScores:       best,
		Achievements:     []string{},
		Themes:           []string{DefaultCosmetic},
		CardDesigns:      []string{DefaultCosmetic},
		ActiveTheme:      DefaultCosmetic,
		ActiveCardDesign: DefaultCosmetic,
		History:          map[string][]HistoryEntry{},
	}
}

func (d Data) clone() Data {
	out := d
	out.BestScores = make(map[string]int, len(d.BestScores))
	for k, v := range d.BestScores {
		out.BestScores[k] = v
	}
	out.Achievements = slices.Clone(d.Achievements)
	out.Themes = slices.Clone(d.Themes)
	out.CardDesigns = slices.Clone(d.CardDesigns)
	out.History = make(map[string][]HistoryEntry, len(d.History))
	for k, v := range d.History {
		out.History[k] = slices.Clone(v)
	}
	return out
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Profile is the read/write view of the persisted aggregates. Every mutation
// is written through to the backend. When the backend fails once, the profile
// logs a warning and keeps working in memory for the rest of its life.
type Profile struct {
	mu     sync.Mutex
	kv     KV
	logger *log.Logger
	data   Data
	failed error
}

// Load reads every aggregate from kv. Missing or unreadable values fall back
// to their defaults. A nil logger discards warnings.
func Load(kv KV, logger *log.Logger) *Profile {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Profile{kv: kv, logger: logger, data: Defaults()}
	if kv == nil {
		p.failed = fmt.Errorf("%w: no backend", ErrUnavailable)
		return p
	}

	p.read(KeyBestScores, &p.data.BestScores)
	p.read(KeyAchievements, &p.data.Achievements)
	p.read(KeyUnlockedThemes, &p.data.Themes)
	p.read(KeyUnlockedCardDesigns, &p.data.CardDesigns)
	p.read(KeyActiveTheme, &p.data.ActiveTheme)
	p.read(KeyActiveCardDesign, &p.data.ActiveCardDesign)
	p.read(KeyScoreHistory, &p.data.History)
	p.read(KeyDailyStreak, &p.data.Streak)
	p.repair()
	return p
}

// read decodes key into dst, leaving dst at its default on any problem.
func (p *Profile) read(key string, dst any) {
	if p.failed != nil {
		return
	}
	raw, ok, err := p.kv.Get(key)
	if err != nil {
		p.degrade(err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		p.logger.Warn("ignoring unreadable profile value", "key", key, "err", err)
	}
}

// repair restores invariants a hand-edited or partial store may break.
func (p *Profile) repair() {
	d := &p.data
	if d.BestScores == nil {
		d.BestScores = Defaults().BestScores
	}
	for _, m := range difficulty.Modes() {
		if _, ok := d.BestScores[string(m)]; !ok {
			d.BestScores[string(m)] = 0
		}
	}
	if d.History == nil {
		d.History = map[string][]HistoryEntry{}
	}
	d.Achievements = normalize(d.Achievements)
	d.Themes = normalize(append(d.Themes, DefaultCosmetic))
	d.CardDesigns = normalize(append(d.CardDesigns, DefaultCosmetic))
	if !slices.Contains(d.Themes, d.ActiveTheme) {
		d.ActiveTheme = DefaultCosmetic
	}
	if !slices.Contains(d.CardDesigns, d.ActiveCardDesign) {
		d.ActiveCardDesign = DefaultCosmetic
	}
}

func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func (p *Profile) degrade(err error) {
	if p.failed != nil {
		return
	}
	p.failed = fmt.Errorf("%w: %v", ErrUnavailable, err)
	p.logger.Warn("profile storage failed, continuing in memory", "err", err)
}

// write persists key; failures switch the profile to memory-only.
func (p *Profile) write(key string, v any) {
	if p.failed != nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		p.logger.Error("cannot encode profile value", "key", key, "err", err)
		return
	}
	if err := p.kv.Set(key, string(raw)); err != nil {
		p.degrade(err)
	}
}

// Err returns an error wrapping ErrUnavailable once the backend has failed.
func (p *Profile) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

// Data returns a copy of all aggregates.
func (p *Profile) Data() Data {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.clone()
}

// BestScore returns the best score recorded for mode.
func (p *Profile) BestScore(mode string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.BestScores[mode]
}

// Achievements returns the granted achievement keys, sorted.
func (p *Profile) Achievements() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.data.Achievements)
}

// ActiveTheme returns the selected theme.
func (p *Profile) ActiveTheme() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.ActiveTheme
}

// ActiveCardDesign returns the selected card design.
func (p *Profile) ActiveCardDesign() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.ActiveCardDesign
}

// RecordGame stores a finished game: best score, history and daily streak.
// It reports whether the score is a new best for the mode.
func (p *Profile) RecordGame(mode string, score, level int, at time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	newBest := score > p.data.BestScores[mode]
	if newBest {
		p.data.BestScores[mode] = score
		p.write(KeyBestScores, p.data.BestScores)
	}

	day := DateKey(at)
	p.data.History[day] = append(p.data.History[day], HistoryEntry{Mode: mode, Score: score, Level: level})
	p.write(KeyScoreHistory, p.data.History)

	p.data.Streak = nextStreak(p.data.Streak, at)
	p.write(KeyDailyStreak, p.data.Streak)

	return newBest
}

func nextStreak(s DailyStreak, at time.Time) DailyStreak {
	today := DateKey(at)
	switch {
	case s.Last == today && s.Count > 0:
		return s
	case s.Last == DateKey(at.UTC().AddDate(0, 0, -1)):
		return DailyStreak{Count: s.Count + 1, Last: today}
	default:
		return DailyStreak{Count: 1, Last: today}
	}
}

// Grant adds an achievement. Granting a key twice is a no-op. It returns the
// cosmetics newly unlocked by this call.
func (p *Profile) Grant(key string) []session.Unlock {
	p.mu.Lock()
	defer p.mu.Unlock()

	if slices.Contains(p.data.Achievements, key) {
		return nil
	}
	p.data.Achievements = normalize(append(p.data.Achievements, key))
	p.write(KeyAchievements, p.data.Achievements)

	a, ok := session.LookupAchievement(key)
	if !ok || a.Unlock == nil {
		return nil
	}
	switch a.Unlock.Kind {
	case session.CosmeticTheme:
		if slices.Contains(p.data.Themes, a.Unlock.Value) {
			return nil
		}
		p.data.Themes = normalize(append(p.data.Themes, a.Unlock.Value))
		p.write(KeyUnlockedThemes, p.data.Themes)
	case session.CosmeticCardDesign:
		if slices.Contains(p.data.CardDesigns, a.Unlock.Value) {
			return nil
		}
		p.data.CardDesigns = normalize(append(p.data.CardDesigns, a.Unlock.Value))
		p.write(KeyUnlockedCardDesigns, p.data.CardDesigns)
	default:
		return nil
	}
	return []session.Unlock{*a.Unlock}
}

// SetTheme selects an unlocked theme.
func (p *Profile) SetTheme(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !slices.Contains(p.data.Themes, name) {
		return fmt.Errorf("%w: theme %q", ErrLocked, name)
	}
	p.data.ActiveTheme = name
	p.write(KeyActiveTheme, name)
	return nil
}

// SetCardDesign selects an unlocked card design.
func (p *Profile) SetCardDesign(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !slices.Contains(p.data.CardDesigns, name) {
		return fmt.Errorf("%w: card design %q", ErrLocked, name)
	}
	p.data.ActiveCardDesign = name
	p.write(KeyActiveCardDesign, name)
	return nil
}
