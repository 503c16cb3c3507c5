// Package session persists the operator's auth token. Storage access is
// best-effort by design: a broken or read-only config directory must never
// block the UI, so failures degrade to "no token".
package session

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/ecoblock/ecoblock-admin/internal/config"
)

// Scope controls how long a stored token outlives the process.
type Scope string

const (
	// ScopeDurable persists the token to disk so it survives restarts.
	ScopeDurable Scope = config.TokenScopeDurable
	// ScopeProcess keeps the token in memory only.
	ScopeProcess Scope = config.TokenScopeProcess
)

type sessionFile struct {
	Token string `json:"token"`
}

// Store holds the single process-wide auth token.
type Store struct {
	mu       sync.Mutex
	path     string
	scope    Scope
	devToken string

	loaded bool
	token  string
}

// NewStore creates a token store backed by path. devToken, when non-empty,
// is adopted and persisted on first read if no token is stored.
func NewStore(path string, scope Scope, devToken string) *Store {
	if scope != ScopeProcess {
		scope = ScopeDurable
	}
	return &Store{path: path, scope: scope, devToken: devToken}
}

// Get returns the current token. It never fails: unreadable or malformed
// session files are treated as an absent token.
func (s *Store) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked()

	if s.token == "" && s.devToken != "" {
		s.token = s.devToken
		s.persistLocked()
	}

	return s.token, s.token != ""
}

// Set stores the token. Persistence is best-effort.
func (s *Store) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.token = token
	s.persistLocked()
}

// Clear removes the token. Best-effort: a failed file removal still clears
// the in-memory value.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.token = ""
	if s.scope == ScopeDurable {
		_ = os.Remove(s.path)
	}
}

func (s *Store) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true

	if s.scope != ScopeDurable {
		return
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return
	}
	s.token = f.Token
}

func (s *Store) persistLocked() {
	if s.scope != ScopeDurable {
		return
	}
	if s.token == "" {
		_ = os.Remove(s.path)
		return
	}
	data, err := json.Marshal(sessionFile{Token: s.token})
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, config.FilePermissions)
}
