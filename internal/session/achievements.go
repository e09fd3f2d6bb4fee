package session

import "sort"

// Cosmetic kinds an achievement can unlock.
const (
	CosmeticTheme      = "theme"
	CosmeticCardDesign = "card_design"
)

// Unlock is a cosmetic item granted with an achievement.
type Unlock struct {
	Kind  string // CosmeticTheme or CosmeticCardDesign
	Value string
}

// Achievement describes one catalog entry.
type Achievement struct {
	Key    string
	Title  string
	Unlock *Unlock
}

// Achievement keys.
const (
	AchStreak5      = "streak5"
	AchStreak10     = "streak10"
	AchLevel25      = "level25"
	AchLevel50      = "level50"
	AchLevel100     = "level100"
	AchScore1000    = "score1000"
	AchPerfectBoard = "perfect-board"
	AchFirstWin     = "first-win"
)

var catalog = []Achievement{
	{Key: AchStreak5, Title: "On a Roll: 5 in a row"},
	{Key: AchStreak10, Title: "Unstoppable: 10 in a row", Unlock: &Unlock{CosmeticCardDesign, "stars"}},
	{Key: AchLevel25, Title: "Quarter Century: reach level 25", Unlock: &Unlock{CosmeticTheme, "ocean"}},
	{Key: AchLevel50, Title: "Halfway There: reach level 50", Unlock: &Unlock{CosmeticTheme, "sunset"}},
	{Key: AchLevel100, Title: "Centurion: reach level 100", Unlock: &Unlock{CosmeticTheme, "neon"}},
	{Key: AchScore1000, Title: "High Roller: score 1000 points", Unlock: &Unlock{CosmeticCardDesign, "gems"}},
	{Key: AchPerfectBoard, Title: "Flawless: clear a board without a mismatch"},
	{Key: AchFirstWin, Title: "Champion: beat level 100"},
}

// Catalog returns every achievement in display order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// LookupAchievement returns the catalog entry for key.
func LookupAchievement(key string) (Achievement, bool) {
	for _, a := range catalog {
		if a.Key == key {
			return a, true
		}
	}
	return Achievement{}, false
}

// milestone is the context an achievement check runs in.
type milestone struct {
	boardCleared bool
	perfectBoard bool
}

func (s *State) qualifies(key string, m milestone) bool {
	switch key {
	case AchStreak5:
		return s.Streak >= 5
	case AchStreak10:
		return s.Streak >= 10
	case AchLevel25:
		return s.Level >= 25
	case AchLevel50:
		return s.Level >= 50
	case AchLevel100:
		return s.Level >= 100
	case AchScore1000:
		return s.Score >= 1000
	case AchPerfectBoard:
		return m.boardCleared && m.perfectBoard
	case AchFirstWin:
		return s.Outcome == OutcomeWon
	}
	return false
}

// evaluateAchievements grants every qualifying achievement not yet held.
// Running it twice on the same state grants nothing the second time.
func (s *State) evaluateAchievements(m milestone) []Effect {
	var effects []Effect
	for _, a := range catalog {
		if s.HasAchievement(a.Key) || !s.qualifies(a.Key, m) {
			continue
		}
		s.Achievements = append(s.Achievements, a.Key)
		effects = append(effects, AchievementUnlocked{Achievement: a})
	}
	if len(effects) > 0 {
		sort.Strings(s.Achievements)
	}
	return effects
}

// HasAchievement reports whether key is already in the session's set.
func (s State) HasAchievement(key string) bool {
	i := sort.SearchStrings(s.Achievements, key)
	return i < len(s.Achievements) && s.Achievements[i] == key
}

func mergeAchievements(have []string, more []string) []string {
	set := make(map[string]bool, len(have)+len(more))
	for _, k := range have {
		set[k] = true
	}
	for _, k := range more {
		set[k] = true
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
