package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/vovakirdan/memory-chain/internal/games/memchain"
	"github.com/vovakirdan/memory-chain/internal/progress"
	"github.com/vovakirdan/memory-chain/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, nil), store
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]bool
	decode(t, rec, &body)
	if !body["ok"] {
		t.Errorf("body = %v", body)
	}
}

func TestModes(t *testing.T) {
	s, _ := newTestServer(t)
	var modes []modeView
	decode(t, get(t, s, "/modes"), &modes)
	if len(modes) != 4 {
		t.Fatalf("got %d modes, want 4", len(modes))
	}
	if modes[0].ID != "letters" || modes[0].Title == "" {
		t.Errorf("first mode = %+v", modes[0])
	}
}

func TestScores(t *testing.T) {
	s, store := newTestServer(t)
	for _, score := range []int{40, 120, 80} {
		if _, err := store.SaveScore("cards-words", score); err != nil {
			t.Fatalf("SaveScore failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		path   string
		status int
		scores []int
	}{
		{"default limit", "/scores/cards-words", http.StatusOK, []int{120, 80, 40}},
		{"limit", "/scores/cards-words?limit=2", http.StatusOK, []int{120, 80}},
		{"empty mode", "/scores/letters", http.StatusOK, []int{}},
		{"bad limit", "/scores/letters?limit=zero", http.StatusBadRequest, nil},
		{"negative limit", "/scores/letters?limit=-3", http.StatusBadRequest, nil},
		{"unknown mode", "/scores/tetris", http.StatusNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.scores == nil {
				var e map[string]string
				decode(t, rec, &e)
				if e["error"] == "" {
					t.Error("error responses carry an error code")
				}
				return
			}
			var res scoresRes
			decode(t, rec, &res)
			if len(res.Scores) != len(tt.scores) {
				t.Fatalf("got %d scores, want %d", len(res.Scores), len(tt.scores))
			}
			for i, want := range tt.scores {
				if res.Scores[i].Score != want {
					t.Errorf("score[%d] = %d, want %d", i, res.Scores[i].Score, want)
				}
			}
		})
	}
}

func TestStats(t *testing.T) {
	s, store := newTestServer(t)
	store.SaveScore("words", 100)
	store.SaveScore("words", 300)

	var stats map[string]storage.GameStats
	decode(t, get(t, s, "/stats"), &stats)
	ws, ok := stats["words"]
	if !ok {
		t.Fatalf("stats = %v", stats)
	}
	if ws.GamesCount != 2 || ws.HighScore != 300 || ws.AvgScore != 200 {
		t.Errorf("words stats = %+v", ws)
	}
}

func TestProfile(t *testing.T) {
	s, store := newTestServer(t)
	at := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	progress.Load(store, nil).RecordGame("letters", 90, 4, at)
	progress.Load(progress.ForUser(store, "ada"), nil).RecordGame("letters", 250, 9, at)

	var local progress.Data
	decode(t, get(t, s, "/profile"), &local)
	if local.BestScores["letters"] != 90 {
		t.Errorf("local best = %d, want 90", local.BestScores["letters"])
	}

	var ada progress.Data
	decode(t, get(t, s, "/profile?user=ada"), &ada)
	if ada.BestScores["letters"] != 250 {
		t.Errorf("ada best = %d, want 250", ada.BestScores["letters"])
	}
	if ada.ActiveTheme != progress.DefaultCosmetic {
		t.Errorf("ada theme = %q", ada.ActiveTheme)
	}
}

func TestWithoutStore(t *testing.T) {
	s := New(nil, nil)
	if rec := get(t, s, "/stats"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if rec := get(t, s, "/health"); rec.Code != http.StatusOK {
		t.Errorf("health should not need storage, got %d", rec.Code)
	}
}

func TestNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var e map[string]string
	decode(t, rec, &e)
	if e["error"] != "not_found" {
		t.Errorf("body = %v", e)
	}
}
