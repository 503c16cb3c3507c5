package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/ecoblock/ecoblock-admin/internal/controller"
	"github.com/ecoblock/ecoblock-admin/internal/i18n"
	"github.com/ecoblock/ecoblock-admin/internal/notify"
	"github.com/ecoblock/ecoblock-admin/internal/types"
)

func pagedBlogsState(t *testing.T, totalPages int) *BlogsState {
	t.Helper()
	center := notify.NewCenter(i18n.New("en"))
	s := NewBlogsState(func(ctx context.Context, p controller.Params) (controller.Page[types.Blog], error) {
		return controller.Page[types.Blog]{
			Items:      []types.Blog{{ID: "b1", Title: "First", Slug: "first"}},
			Page:       p.Page,
			PerPage:    p.PerPage,
			TotalPages: totalPages,
			Total:      int64(totalPages),
		}, nil
	}, center)
	if err := s.List().RefreshCurrent(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	return s
}

func TestBlogsPageParamsClampLow(t *testing.T) {
	s := pagedBlogsState(t, 3)

	if _, ok := s.PageParams(-1); ok {
		t.Error("Expected no previous page from page 1")
	}

	params, ok := s.PageParams(1)
	if !ok {
		t.Fatal("Expected a next page")
	}
	if params.Page != 2 {
		t.Errorf("Expected page 2, got %d", params.Page)
	}
}

func TestBlogsPageParamsClampHigh(t *testing.T) {
	s := pagedBlogsState(t, 1)

	if _, ok := s.PageParams(1); ok {
		t.Error("Expected no page past the last one")
	}
}

func TestBlogsSearchParamsResetToPageOne(t *testing.T) {
	s := pagedBlogsState(t, 5)
	if err := s.List().Refresh(context.Background(), controller.Params{Page: 3, PerPage: blogsPerPage}); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	s.search.SetValue("  solar  ")
	params := s.SearchParams()
	if params.Page != 1 {
		t.Errorf("Expected search to reset to page 1, got %d", params.Page)
	}
	if params.Query != "solar" {
		t.Errorf("Expected trimmed query, got %q", params.Query)
	}
}

func TestBlogsOpenEditorLoadsForm(t *testing.T) {
	s := pagedBlogsState(t, 1)
	s.OpenEditor(&types.Blog{ID: "b1", Title: "First", Slug: "first", Body: "hello"})

	if s.title.Value() != "First" || s.slug.Value() != "first" || s.body.Value() != "hello" {
		t.Errorf("Expected form loaded from post, got %q/%q/%q",
			s.title.Value(), s.slug.Value(), s.body.Value())
	}
	if !s.Editor().Editing() {
		t.Error("Expected an open draft")
	}
}

func TestBlogsSyncDraft(t *testing.T) {
	s := pagedBlogsState(t, 1)
	s.OpenEditor(nil)

	s.title.SetValue("New title")
	s.slug.SetValue("new-title")
	s.body.SetValue("content")
	s.SyncDraft()

	draft, ok := s.Editor().Draft()
	if !ok {
		t.Fatal("Expected an open draft")
	}
	if draft.Title != "New title" || draft.Slug != "new-title" || draft.Body != "content" {
		t.Errorf("Expected draft synced from form, got %+v", draft)
	}
}

func TestBlogsInsertMediaMirrorsBody(t *testing.T) {
	s := pagedBlogsState(t, 1)
	s.OpenEditor(nil)
	s.body.SetValue("intro")

	s.InsertMedia("/uploads/pic.png")

	want := "intro\n![](/uploads/pic.png)"
	if s.body.Value() != want {
		t.Errorf("Expected body %q, got %q", want, s.body.Value())
	}
}

func TestBlogsCloseEditorDiscards(t *testing.T) {
	s := pagedBlogsState(t, 1)
	s.OpenEditor(&types.Blog{ID: "b1", Title: "First"})
	s.CloseEditor()

	if s.Editor().Editing() {
		t.Error("Expected draft discarded")
	}
	if s.title.Value() != "" {
		t.Errorf("Expected form blanked, got %q", s.title.Value())
	}
}

func TestBlogsCycleFieldWraps(t *testing.T) {
	s := pagedBlogsState(t, 1)
	s.OpenEditor(nil)

	s.CycleField(1)
	s.CycleField(1)
	s.CycleField(1)
	if s.FocusedField() != blogFieldTitle {
		t.Errorf("Expected focus back on title, got %d", s.FocusedField())
	}

	s.CycleField(-1)
	if s.FocusedField() != blogFieldBody {
		t.Errorf("Expected reverse wrap to body, got %d", s.FocusedField())
	}
}

func TestBlogsUploadLifecycle(t *testing.T) {
	s := pagedBlogsState(t, 1)
	s.StartUploadPrompt()
	s.uploadPath.SetValue("  /tmp/pic.png ")

	if s.UploadPathValue() != "/tmp/pic.png" {
		t.Errorf("Expected trimmed path, got %q", s.UploadPathValue())
	}

	s.BeginUpload()
	if !s.Uploading() {
		t.Error("Expected uploading state")
	}

	s.SetUploadProgress(42.5)
	if s.UploadPercent() != 42.5 {
		t.Errorf("Expected 42.5, got %v", s.UploadPercent())
	}

	s.FinishUpload()
	if s.Uploading() {
		t.Error("Expected upload finished")
	}
}

func TestBlogsCursorClampAfterShrink(t *testing.T) {
	center := notify.NewCenter(i18n.New("en"))
	items := []types.Blog{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	s := NewBlogsState(func(ctx context.Context, p controller.Params) (controller.Page[types.Blog], error) {
		return controller.Page[types.Blog]{Items: items, Page: 1}, nil
	}, center)
	if err := s.List().RefreshCurrent(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	s.Navigate(2)

	items = items[:1]
	if err := s.List().RefreshCurrent(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	s.Clamp()

	if s.Cursor() != 0 {
		t.Errorf("Expected cursor clamped to 0, got %d", s.Cursor())
	}
	if b := s.Current(); b == nil || b.ID != "1" {
		t.Errorf("Expected remaining post under cursor, got %+v", b)
	}
}

func TestFormatsSearchViewContainsQuery(t *testing.T) {
	s := pagedBlogsState(t, 1)
	s.StartSearch()
	s.search.SetValue("wind")

	if !strings.Contains(s.SearchView(), "wind") {
		t.Error("Expected search view to render the query")
	}
}
