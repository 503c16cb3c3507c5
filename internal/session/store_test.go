package session

import (
	"os"
	"path/filepath"
	"testing"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".session.json")
}

func TestStore_SetGetClear(t *testing.T) {
	path := sessionPath(t)
	s := NewStore(path, ScopeDurable, "")

	if _, ok := s.Get(); ok {
		t.Error("Expected no token in a fresh store")
	}

	s.Set("tok-123")
	token, ok := s.Get()
	if !ok || token != "tok-123" {
		t.Errorf("Expected tok-123, got %q (ok=%v)", token, ok)
	}

	// A second store reading the same file sees the persisted token
	s2 := NewStore(path, ScopeDurable, "")
	token, ok = s2.Get()
	if !ok || token != "tok-123" {
		t.Errorf("Expected persisted tok-123, got %q (ok=%v)", token, ok)
	}

	s.Clear()
	if _, ok := s.Get(); ok {
		t.Error("Expected no token after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected session file removed after Clear")
	}
}

func TestStore_ProcessScopeDoesNotPersist(t *testing.T) {
	path := sessionPath(t)
	s := NewStore(path, ScopeProcess, "")

	s.Set("ephemeral")
	if token, ok := s.Get(); !ok || token != "ephemeral" {
		t.Errorf("Expected in-memory token, got %q (ok=%v)", token, ok)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Process scope must not write the session file")
	}

	// A new store sees nothing
	if _, ok := NewStore(path, ScopeProcess, "").Get(); ok {
		t.Error("Process-scoped token must not survive the store")
	}
}

func TestStore_DevTokenAdoptedOnFirstRead(t *testing.T) {
	path := sessionPath(t)
	s := NewStore(path, ScopeDurable, "dev-tok")

	token, ok := s.Get()
	if !ok || token != "dev-tok" {
		t.Errorf("Expected adopted dev token, got %q (ok=%v)", token, ok)
	}

	// Adoption persisted the token
	if token, ok := NewStore(path, ScopeDurable, "").Get(); !ok || token != "dev-tok" {
		t.Errorf("Expected persisted dev token, got %q (ok=%v)", token, ok)
	}
}

func TestStore_DevTokenDoesNotOverrideStored(t *testing.T) {
	path := sessionPath(t)
	NewStore(path, ScopeDurable, "").Set("real")

	token, ok := NewStore(path, ScopeDurable, "dev-tok").Get()
	if !ok || token != "real" {
		t.Errorf("Stored token must win over dev token, got %q (ok=%v)", token, ok)
	}
}

func TestStore_StorageFailureDegradesToAbsent(t *testing.T) {
	// Point the store at a directory path so reads and writes fail
	dir := t.TempDir()
	s := NewStore(dir, ScopeDurable, "")

	if _, ok := s.Get(); ok {
		t.Error("Unreadable session storage should yield an absent token")
	}

	// Set/Clear must not panic even though persistence fails
	s.Set("tok")
	if token, ok := s.Get(); !ok || token != "tok" {
		t.Errorf("In-memory token should still be served, got %q (ok=%v)", token, ok)
	}
	s.Clear()
	if _, ok := s.Get(); ok {
		t.Error("Expected no token after Clear")
	}
}

func TestStore_MalformedFileTreatedAsAbsent(t *testing.T) {
	path := sessionPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := NewStore(path, ScopeDurable, "").Get(); ok {
		t.Error("Malformed session file should yield an absent token")
	}
}
