package i18n

import "testing"

func TestTranslator_KnownCodes(t *testing.T) {
	fr := New("fr")
	if got := fr.T("duplicate_username"); got != "Nom d'utilisateur déjà pris" {
		t.Errorf("Expected French duplicate_username, got %q", got)
	}

	en := New("en")
	if got := en.T("duplicate_username"); got != "Username already taken" {
		t.Errorf("Expected English duplicate_username, got %q", got)
	}
	if got := en.T("server_error"); got != "Server error" {
		t.Errorf("Expected English server_error, got %q", got)
	}
}

func TestTranslator_UnknownCodePassesThrough(t *testing.T) {
	tr := New("en")
	if got := tr.T("quota_exceeded"); got != "quota_exceeded" {
		t.Errorf("Unknown code should pass through unmodified, got %q", got)
	}
}

func TestTranslator_UnknownLocaleFallsBack(t *testing.T) {
	tr := New("de")
	if tr.Locale() != DefaultLocale {
		t.Errorf("Expected fallback to %s, got %s", DefaultLocale, tr.Locale())
	}
	if got := tr.T("server_error"); got != "Erreur serveur" {
		t.Errorf("Expected default-locale string, got %q", got)
	}
}
