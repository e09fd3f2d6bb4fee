// Package progress keeps the aggregates that outlive a game session: best
// scores, achievements, cosmetic unlocks, score history and the daily streak.
//
// Values are stored as JSON strings in a key/value backend. The SQLite store
// is the usual backend; MemoryKV serves tests and runs without a database.
package progress

import (
	"errors"
	"sync"
)

// ErrUnavailable reports that the backend failed and the profile is running in memory only.
var ErrUnavailable = errors.New("progress: storage unavailable")

// KV is the persistence collaborator.
type KV interface {
	// Get returns the value under key; ok is false when the key was never written.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// MemoryKV is a KV held in a map.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

// Get implements KV.
func (kv *MemoryKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok, nil
}

// Set implements KV.
func (kv *MemoryKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = value
	return nil
}

// Prefixed namespaces every key of kv under prefix, so several profiles can
// share one backend (one per SSH user).
func Prefixed(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	return prefixKV{kv: kv, prefix: prefix + ":"}
}

type prefixKV struct {
	kv     KV
	prefix string
}

func (p prefixKV) Get(key string) (string, bool, error) {
	return p.kv.Get(p.prefix + key)
}

func (p prefixKV) Set(key, value string) error {
	return p.kv.Set(p.prefix+key, value)
}

// ForUser returns the namespace holding the progress of a remote user.
// An empty user is the local profile.
func ForUser(kv KV, user string) KV {
	if user == "" {
		return kv
	}
	return Prefixed(kv, "user:"+user)
}
