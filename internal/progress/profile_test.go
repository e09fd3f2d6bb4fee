package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-chain/internal/session"
)

// failingKV fails every call after the first failAfter successful ones.
type failingKV struct {
	inner     *MemoryKV
	calls     int
	failAfter int
}

func (f *failingKV) Get(key string) (string, bool, error) {
	f.calls++
	if f.calls > f.failAfter {
		return "", false, errors.New("disk on fire")
	}
	return f.inner.Get(key)
}

func (f *failingKV) Set(key, value string) error {
	f.calls++
	if f.calls > f.failAfter {
		return errors.New("disk on fire")
	}
	return f.inner.Set(key, value)
}

func TestDefaults(t *testing.T) {
	p := Load(NewMemoryKV(), nil)
	d := p.Data()

	for _, mode := range []string{"letters", "words", "cards-letters", "cards-words"} {
		if score, ok := d.BestScores[mode]; !ok || score != 0 {
			t.Errorf("best score for %s = %d, %v", mode, score, ok)
		}
	}
	if len(d.Achievements) != 0 {
		t.Errorf("achievements = %v", d.Achievements)
	}
	if d.ActiveTheme != DefaultCosmetic || d.ActiveCardDesign != DefaultCosmetic {
		t.Errorf("active = %s/%s", d.ActiveTheme, d.ActiveCardDesign)
	}
	if len(d.Themes) != 1 || len(d.CardDesigns) != 1 {
		t.Errorf("unlocked = %v / %v", d.Themes, d.CardDesigns)
	}
	if d.Streak.Count != 0 || d.Streak.Last != "" {
		t.Errorf("streak = %+v", d.Streak)
	}
	if p.Err() != nil {
		t.Errorf("Err() = %v", p.Err())
	}
}

func TestRecordGamePersists(t *testing.T) {
	kv := NewMemoryKV()
	p := Load(kv, nil)
	at := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)

	if !p.RecordGame("letters", 120, 5, at) {
		t.Error("first score should be a new best")
	}
	if p.RecordGame("letters", 80, 3, at) {
		t.Error("lower score reported as new best")
	}

	reloaded := Load(kv, nil)
	if got := reloaded.BestScore("letters"); got != 120 {
		t.Errorf("best after reload = %d, want 120", got)
	}
	hist := reloaded.Data().History["2026-03-14"]
	if len(hist) != 2 || hist[0].Score != 120 || hist[1].Level != 3 {
		t.Errorf("history = %+v", hist)
	}
}

func TestDailyStreak(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2026, 5, d, h, 0, 0, 0, time.UTC) }
	tests := []struct {
		name string
		at   []time.Time
		want DailyStreak
	}{
		{"first game", []time.Time{day(1, 10)}, DailyStreak{1, "2026-05-01"}},
		{"same day", []time.Time{day(1, 10), day(1, 23)}, DailyStreak{1, "2026-05-01"}},
		{"consecutive", []time.Time{day(1, 10), day(2, 1), day(3, 12)}, DailyStreak{3, "2026-05-03"}},
		{"gap resets", []time.Time{day(1, 10), day(2, 10), day(5, 10)}, DailyStreak{1, "2026-05-05"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Load(NewMemoryKV(), nil)
			for _, at := range tt.at {
				p.RecordGame("words", 10, 1, at)
			}
			if got := p.Data().Streak; got != tt.want {
				t.Errorf("streak = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	at := time.Date(2026, 1, 2, 3, 0, 0, 0, loc)
	if got := DateKey(at); got != "2026-01-01" {
		t.Errorf("DateKey() = %s, want 2026-01-01", got)
	}
}

func TestGrantIdempotent(t *testing.T) {
	kv := NewMemoryKV()
	p := Load(kv, nil)

	unlocks := p.Grant(session.AchLevel25)
	if len(unlocks) != 1 || unlocks[0].Kind != session.CosmeticTheme || unlocks[0].Value != "ocean" {
		t.Fatalf("unlocks = %+v", unlocks)
	}
	if again := p.Grant(session.AchLevel25); again != nil {
		t.Errorf("second grant unlocked %+v", again)
	}

	reloaded := Load(kv, nil)
	ach := reloaded.Achievements()
	if len(ach) != 1 || ach[0] != session.AchLevel25 {
		t.Errorf("achievements = %v", ach)
	}
	themes := reloaded.Data().Themes
	if len(themes) != 2 {
		t.Errorf("themes = %v", themes)
	}

	if unlocks := p.Grant(session.AchStreak5); unlocks != nil {
		t.Errorf("streak5 unlocks nothing, got %+v", unlocks)
	}
	if unlocks := p.Grant(session.AchScore1000); len(unlocks) != 1 || unlocks[0].Value != "gems" {
		t.Errorf("score1000 unlocks = %+v", unlocks)
	}
}

func TestSetCosmetics(t *testing.T) {
	kv := NewMemoryKV()
	p := Load(kv, nil)

	if err := p.SetTheme("neon"); !errors.Is(err, ErrLocked) {
		t.Errorf("SetTheme(locked) err = %v", err)
	}
	p.Grant(session.AchLevel100)
	if err := p.SetTheme("neon"); err != nil {
		t.Fatalf("SetTheme() = %v", err)
	}
	if err := p.SetCardDesign("stars"); !errors.Is(err, ErrLocked) {
		t.Errorf("SetCardDesign(locked) err = %v", err)
	}
	p.Grant(session.AchStreak10)
	if err := p.SetCardDesign("stars"); err != nil {
		t.Fatalf("SetCardDesign() = %v", err)
	}

	reloaded := Load(kv, nil)
	if reloaded.ActiveTheme() != "neon" || reloaded.ActiveCardDesign() != "stars" {
		t.Errorf("active after reload = %s/%s", reloaded.ActiveTheme(), reloaded.ActiveCardDesign())
	}
}

func TestUnreadableValuesFallBack(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set(KeyBestScores, "{not json")
	kv.Set(KeyActiveTheme, `"sunset"`)
	kv.Set(KeyAchievements, `["streak5","streak5"]`)

	var buf bytes.Buffer
	p := Load(kv, log.New(&buf))

	if p.BestScore("letters") != 0 {
		t.Error("bad best_scores not replaced by defaults")
	}
	if p.ActiveTheme() != DefaultCosmetic {
		t.Errorf("locked active theme kept: %s", p.ActiveTheme())
	}
	if got := p.Achievements(); len(got) != 1 {
		t.Errorf("duplicate achievements kept: %v", got)
	}
	if !strings.Contains(buf.String(), KeyBestScores) {
		t.Errorf("no warning logged for unreadable key: %q", buf.String())
	}
}

func TestBackendFailureDegrades(t *testing.T) {
	kv := &failingKV{inner: NewMemoryKV(), failAfter: 8}
	var buf bytes.Buffer
	p := Load(kv, log.New(&buf))
	if p.Err() != nil {
		t.Fatalf("load failed early: %v", p.Err())
	}

	at := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	p.RecordGame("letters", 50, 2, at)
	p.RecordGame("letters", 70, 3, at)

	if !errors.Is(p.Err(), ErrUnavailable) {
		t.Fatalf("Err() = %v, want ErrUnavailable", p.Err())
	}
	if p.BestScore("letters") != 70 {
		t.Errorf("in-memory best = %d, want 70", p.BestScore("letters"))
	}
	if n := strings.Count(buf.String(), "continuing in memory"); n != 1 {
		t.Errorf("degrade warning logged %d times, want 1", n)
	}

	callsAfterFailure := kv.calls
	p.Grant(session.AchLevel25)
	if kv.calls != callsAfterFailure {
		t.Error("degraded profile still calls the backend")
	}
}

func TestNilBackend(t *testing.T) {
	p := Load(nil, nil)
	if !errors.Is(p.Err(), ErrUnavailable) {
		t.Errorf("Err() = %v", p.Err())
	}
	p.RecordGame("words", 10, 1, time.Now())
	if p.BestScore("words") != 10 {
		t.Error("nil backend profile does not keep scores in memory")
	}
}

func TestPrefixedProfilesAreSeparate(t *testing.T) {
	kv := NewMemoryKV()
	alice := Load(Prefixed(kv, "alice"), nil)
	bob := Load(Prefixed(kv, "bob"), nil)

	alice.RecordGame("letters", 120, 4, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	if got := bob.BestScore("letters"); got != 0 {
		t.Errorf("bob best = %d, want 0", got)
	}
	if _, ok, _ := kv.Get("alice:" + KeyBestScores); !ok {
		t.Error("prefixed key not written")
	}
	if _, ok, _ := kv.Get(KeyBestScores); ok {
		t.Error("unprefixed key written")
	}

	if Prefixed(kv, "") != KV(kv) {
		t.Error("empty prefix should return the backend itself")
	}
}
