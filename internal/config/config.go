package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.ecoblock-admin)
	ConfigDir string

	// SettingsFile is the YAML settings file
	SettingsFile string

	// SessionFile holds the persisted auth token
	SessionFile string

	// DatabasePath is the SQLite database file for the request audit log
	DatabasePath string
)

// Token persistence scopes (see Settings.TokenScope).
const (
	TokenScopeDurable = "durable"
	TokenScopeProcess = "process"
)

// Settings is the resolved client configuration.
type Settings struct {
	// APIBase is the backend base URL.
	APIBase string `yaml:"api_base"`
	// Locale selects the language for user-facing strings (en or fr).
	Locale string `yaml:"locale"`
	// DevToken, when set, is adopted as the session token on first read
	// if nothing is persisted. Local development escape hatch only.
	DevToken string `yaml:"dev_token"`
	// TokenScope is "durable" (token survives restarts) or "process"
	// (token lives only as long as the process).
	TokenScope string `yaml:"token_scope"`
	// RequestTimeoutSeconds bounds every outbound request.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

// Defaults returns the built-in settings, matching the backend's defaults.
func Defaults() Settings {
	return Settings{
		APIBase:               "http://localhost:3000",
		Locale:                "fr",
		TokenScope:            TokenScopeDurable,
		RequestTimeoutSeconds: 30,
	}
}

// RequestTimeout returns the outbound request timeout as a duration.
func (s Settings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// Validate checks setting values after all overlays are applied.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.APIBase, validation.Required),
		validation.Field(&s.Locale, validation.Required, validation.In("en", "fr")),
		validation.Field(&s.TokenScope, validation.Required, validation.In(TokenScopeDurable, TokenScopeProcess)),
		validation.Field(&s.RequestTimeoutSeconds, validation.Required, validation.Min(1), validation.Max(600)),
	)
}

// Initialize sets up the configuration directory and file paths.
// It creates ~/.ecoblock-admin/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".ecoblock-admin")
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	SessionFile = filepath.Join(ConfigDir, ".session.json")
	DatabasePath = filepath.Join(ConfigDir, "ecoblock-admin.db")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// Load resolves settings in overlay order: defaults, then the YAML settings
// file if present, then environment variables. The result is validated.
func Load() (Settings, error) {
	s := Defaults()

	if SettingsFile != "" {
		if data, err := os.ReadFile(SettingsFile); err == nil {
			if err := yaml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("failed to parse settings file %s: %w", SettingsFile, err)
			}
		}
	}

	applyEnv(&s)

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv("ECOBLOCK_API_BASE"); v != "" {
		s.APIBase = v
	}
	if v := os.Getenv("ECOBLOCK_LOCALE"); v != "" {
		s.Locale = v
	}
	if v := os.Getenv("ECOBLOCK_DEV_TOKEN"); v != "" {
		s.DevToken = v
	}
	if v := os.Getenv("ECOBLOCK_TOKEN_SCOPE"); v != "" {
		s.TokenScope = v
	}
}
