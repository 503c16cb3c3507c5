package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/ecoblock/ecoblock-admin/internal/types"
)

// HistoryState holds the audit log page: entries loaded from the local
// database rendered into a scrollable viewport.
type HistoryState struct {
	mu      sync.RWMutex
	entries []types.HistoryEntry
	view    viewport.Model
	ready   bool
}

func NewHistoryState() *HistoryState {
	return &HistoryState{}
}

// SetEntries replaces the loaded entries.
func (s *HistoryState) SetEntries(entries []types.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}

// Entries returns the loaded entries, newest first.
func (s *HistoryState) Entries() []types.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

// Count returns the number of loaded entries.
func (s *HistoryState) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// UpdateView re-renders the viewport content for the current size.
func (s *HistoryState) UpdateView(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := width - 6
	h := height - 10
	if w < 20 {
		w = 20
	}
	if h < 3 {
		h = 3
	}
	if !s.ready {
		s.view = viewport.New(w, h)
		s.ready = true
	} else {
		s.view.Width = w
		s.view.Height = h
	}
	s.view.SetContent(formatHistoryEntries(s.entries))
}

// Scroll moves the viewport by delta lines.
func (s *HistoryState) Scroll(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	if delta < 0 {
		s.view.LineUp(-delta)
	} else {
		s.view.LineDown(delta)
	}
}

// View renders the viewport.
func (s *HistoryState) View() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return ""
	}
	return s.view.View()
}

// formatHistoryEntries renders audit entries one per line, newest first.
func formatHistoryEntries(entries []types.HistoryEntry) string {
	if len(entries) == 0 {
		return "No recorded calls yet."
	}

	var sb strings.Builder
	for _, e := range entries {
		status := fmt.Sprintf("%d", e.Status)
		if e.Status == 0 {
			status = "ERR"
		}
		line := fmt.Sprintf("%s  %-6s %-40s %4s %6dms", e.Timestamp, e.Method, e.Path, status, e.DurationMs)
		if e.Error != "" {
			line += "  " + e.Error
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
