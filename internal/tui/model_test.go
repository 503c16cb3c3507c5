package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/ecoblock/ecoblock-admin/internal/api"
	"github.com/ecoblock/ecoblock-admin/internal/config"
	"github.com/ecoblock/ecoblock-admin/internal/i18n"
	"github.com/ecoblock/ecoblock-admin/internal/notify"
	"github.com/ecoblock/ecoblock-admin/internal/session"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	tr := i18n.New("en")
	center := notify.NewCenter(tr)
	store := session.NewStore(filepath.Join(t.TempDir(), ".session.json"), session.ScopeDurable, "")
	client := api.NewClient(api.Options{
		BaseURL:  "http://127.0.0.1:0",
		Store:    store,
		Notifier: center,
	})
	return New(Deps{
		Settings: config.Defaults(),
		Store:    store,
		Center:   center,
		Client:   client,
		Tr:       tr,
	})
}

func TestMutationDoneSuccessToasts(t *testing.T) {
	m := testModel(t)
	m.Update(mutationDoneMsg{key: "slug_copied"})

	toasts := m.center.Toasts()
	if len(toasts) != 1 {
		t.Fatalf("Expected 1 toast, got %d", len(toasts))
	}
	if toasts[0].Message != "Slug copied to clipboard" {
		t.Errorf("Expected localized success message, got %q", toasts[0].Message)
	}
	if toasts[0].Kind != notify.KindSuccess {
		t.Errorf("Expected success toast, got kind %v", toasts[0].Kind)
	}
}

func TestMutationDoneLocalFailureToasts(t *testing.T) {
	m := testModel(t)
	m.Update(mutationDoneMsg{err: errors.New("clipboard unavailable")})

	toasts := m.center.Toasts()
	if len(toasts) != 1 {
		t.Fatalf("Expected 1 toast, got %d", len(toasts))
	}
	if toasts[0].Message != "clipboard unavailable" {
		t.Errorf("Expected the failure surfaced, got %q", toasts[0].Message)
	}
	if toasts[0].Kind != notify.KindError {
		t.Errorf("Expected error toast, got kind %v", toasts[0].Kind)
	}
}

func TestMutationDoneGatewayFailureAddsNoToast(t *testing.T) {
	m := testModel(t)
	// A keyed failure went through the gateway, which already toasted it
	m.Update(mutationDoneMsg{key: "blog_deleted", err: errors.New("api: 500 server_error")})

	if got := len(m.center.Toasts()); got != 0 {
		t.Errorf("Expected no second toast for gateway failures, got %d", got)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	got := truncate("Énergie éolienne", 9)
	if !utf8.ValidString(got) {
		t.Errorf("Expected valid UTF-8, got %q", got)
	}
	if got != "Énergie …" {
		t.Errorf("Expected rune-based cut, got %q", got)
	}

	if got := truncate("court", 40); got != "court" {
		t.Errorf("Expected short strings untouched, got %q", got)
	}
	if got := truncate("été", 1); got != "é" {
		t.Errorf("Expected single-rune cut, got %q", got)
	}
	if got := truncate("été", 0); got != "" {
		t.Errorf("Expected empty cut, got %q", got)
	}
}
