package tui

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-chain/internal/progress"
	"github.com/vovakirdan/memory-chain/internal/session"
	"github.com/vovakirdan/memory-chain/internal/storage"
)

// Recorder persists the outcome of games: finished scores go to the score
// table and the profile, unlocked achievements go to the profile.
// Either collaborator may be nil.
type Recorder struct {
	store   *storage.Store
	profile *progress.Profile
	log     *log.Logger
	now     func() time.Time
}

// NewRecorder creates a recorder. A nil logger discards output.
func NewRecorder(store *storage.Store, profile *progress.Profile, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, profile: profile, log: logger, now: time.Now}
}

// Profile returns the profile games are recorded into.
func (r *Recorder) Profile() *progress.Profile {
	if r == nil {
		return nil
	}
	return r.profile
}

// Notice is a short message for the player about something just recorded.
type Notice struct {
	Text string
}

// Apply persists the effects of one tick and returns notices worth showing.
func (r *Recorder) Apply(effects []session.Effect) []Notice {
	if r == nil {
		return nil
	}
	var notices []Notice
	for _, e := range effects {
		switch e := e.(type) {
		case session.AchievementUnlocked:
			notices = append(notices, Notice{Text: "Achievement: " + e.Achievement.Title})
			if r.profile == nil {
				continue
			}
			for _, u := range r.profile.Grant(e.Achievement.Key) {
				r.log.Info("cosmetic unlocked", "kind", u.Kind, "value", u.Value)
				notices = append(notices, Notice{Text: "Unlocked " + strings.ReplaceAll(u.Kind, "_", " ") + " " + u.Value})
			}
		case session.GameEnded:
			notices = append(notices, r.gameEnded(e)...)
		}
	}
	return notices
}

func (r *Recorder) gameEnded(e session.GameEnded) []Notice {
	if e.Outcome == session.OutcomeAborted {
		return nil
	}
	mode := string(e.Mode)
	if r.store != nil && e.Score > 0 {
		if _, err := r.store.SaveScore(mode, e.Score); err != nil {
			r.log.Warn("could not save score", "mode", mode, "err", err)
		}
	}
	if r.profile == nil {
		return nil
	}
	if r.profile.RecordGame(mode, e.Score, e.Level, r.now()) && e.Score > 0 {
		r.log.Info("new best score", "mode", mode, "score", e.Score)
		return []Notice{{Text: "New best score!"}}
	}
	return nil
}
