package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	s := Defaults()

	if s.APIBase != "http://localhost:3000" {
		t.Errorf("Expected default API base http://localhost:3000, got %s", s.APIBase)
	}
	if s.Locale != "fr" {
		t.Errorf("Expected default locale fr, got %s", s.Locale)
	}
	if s.TokenScope != TokenScopeDurable {
		t.Errorf("Expected durable token scope, got %s", s.TokenScope)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Defaults should validate, got %v", err)
	}
}

func TestSettings_Validate(t *testing.T) {
	s := Defaults()
	s.Locale = "de"
	if err := s.Validate(); err == nil {
		t.Error("Unsupported locale should fail validation")
	}

	s = Defaults()
	s.TokenScope = "forever"
	if err := s.Validate(); err == nil {
		t.Error("Unknown token scope should fail validation")
	}

	s = Defaults()
	s.APIBase = ""
	if err := s.Validate(); err == nil {
		t.Error("Empty API base should fail validation")
	}

	s = Defaults()
	s.RequestTimeoutSeconds = 0
	if err := s.Validate(); err == nil {
		t.Error("Zero timeout should fail validation")
	}
}

func TestLoad_FileAndEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	SettingsFile = filepath.Join(dir, "config.yaml")

	content := "api_base: http://api.internal:4000\nlocale: en\n"
	if err := os.WriteFile(SettingsFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ECOBLOCK_API_BASE", "")
	t.Setenv("ECOBLOCK_LOCALE", "")
	t.Setenv("ECOBLOCK_DEV_TOKEN", "")
	t.Setenv("ECOBLOCK_TOKEN_SCOPE", "")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.APIBase != "http://api.internal:4000" {
		t.Errorf("Expected file API base, got %s", s.APIBase)
	}
	if s.Locale != "en" {
		t.Errorf("Expected locale en from file, got %s", s.Locale)
	}
	// File did not set these, defaults apply
	if s.TokenScope != TokenScopeDurable {
		t.Errorf("Expected default token scope, got %s", s.TokenScope)
	}

	// Environment wins over file
	t.Setenv("ECOBLOCK_LOCALE", "fr")
	t.Setenv("ECOBLOCK_TOKEN_SCOPE", "process")
	s, err = Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Locale != "fr" {
		t.Errorf("Expected env locale fr, got %s", s.Locale)
	}
	if s.TokenScope != TokenScopeProcess {
		t.Errorf("Expected env token scope process, got %s", s.TokenScope)
	}
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	dir := t.TempDir()
	SettingsFile = filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(SettingsFile, []byte("locale: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Malformed settings file should fail Load")
	}
}
