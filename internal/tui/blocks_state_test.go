package tui

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ecoblock/ecoblock-admin/internal/controller"
	"github.com/ecoblock/ecoblock-admin/internal/types"
)

func loadedBlocksState(t *testing.T, blocks []types.Block) *BlocksState {
	t.Helper()
	s := NewBlocksState(func(ctx context.Context, _ controller.Params) (controller.Page[types.Block], error) {
		return controller.Page[types.Block]{Items: blocks}, nil
	})
	if err := s.List().RefreshCurrent(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	return s
}

func TestBlocksVisibleWithoutFilter(t *testing.T) {
	s := loadedBlocksState(t, []types.Block{
		{ID: "genesis"},
		{ID: "block-aa11"},
		{ID: "block-bb22"},
	})

	visible := s.Visible()
	if len(visible) != 3 {
		t.Errorf("Expected 3 visible blocks, got %d", len(visible))
	}
	if visible[0].ID != "genesis" {
		t.Errorf("Expected snapshot order preserved, got %s first", visible[0].ID)
	}
}

func TestBlocksFuzzyFilter(t *testing.T) {
	s := loadedBlocksState(t, []types.Block{
		{ID: "genesis"},
		{ID: "block-aa11"},
		{ID: "block-bb22"},
	})

	s.search.SetValue("aa11")
	visible := s.Visible()
	if len(visible) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(visible))
	}
	if visible[0].ID != "block-aa11" {
		t.Errorf("Expected block-aa11, got %s", visible[0].ID)
	}
}

func TestBlocksNavigateClamps(t *testing.T) {
	s := loadedBlocksState(t, []types.Block{{ID: "a"}, {ID: "b"}})

	s.Navigate(5)
	if s.Cursor() != 1 {
		t.Errorf("Expected cursor clamped to 1, got %d", s.Cursor())
	}

	s.Navigate(-5)
	if s.Cursor() != 0 {
		t.Errorf("Expected cursor clamped to 0, got %d", s.Cursor())
	}
}

func TestBlocksFilterShrinksCursor(t *testing.T) {
	s := loadedBlocksState(t, []types.Block{
		{ID: "genesis"},
		{ID: "block-aa11"},
		{ID: "block-bb22"},
	})
	s.Navigate(2)

	s.search.SetValue("genesis")
	s.Clamp()
	if s.Cursor() != 0 {
		t.Errorf("Expected cursor clamped after filter, got %d", s.Cursor())
	}

	current := s.Current()
	if current == nil || current.ID != "genesis" {
		t.Errorf("Expected genesis under cursor, got %+v", current)
	}
}

func TestBlocksOpenInspectEmpty(t *testing.T) {
	s := loadedBlocksState(t, nil)
	if s.OpenInspect() {
		t.Error("Expected OpenInspect to refuse with no selection")
	}
}

func TestRenderBlockDetail(t *testing.T) {
	detail := renderBlockDetail(types.Block{
		ID:      "blk-1",
		Parents: []string{"p1", "p2"},
		Data:    json.RawMessage(`{"kind":"sensor","value":42}`),
	})

	if !strings.Contains(detail, "blk-1") {
		t.Error("Expected detail to contain the block id")
	}
	if !strings.Contains(detail, "p1, p2") {
		t.Error("Expected detail to list parents")
	}
	if !strings.Contains(detail, "sensor") {
		t.Error("Expected detail to contain the payload")
	}
}

func TestHighlightJSONFallbacks(t *testing.T) {
	if got := highlightJSON(nil); got != "(no data)" {
		t.Errorf("Expected placeholder for empty payload, got %q", got)
	}
	if got := highlightJSON(json.RawMessage("not json")); got != "not json" {
		t.Errorf("Expected raw passthrough for invalid JSON, got %q", got)
	}
}
