// Package i18n translates backend error codes and UI strings into the
// configured locale. The locale is fixed at construction; there is no
// mutable package-level state.
package i18n

// DefaultLocale is used when the configured locale has no translation table.
const DefaultLocale = "fr"

var translations = map[string]map[string]string{
	"en": {
		"duplicate_username":  "Username already taken",
		"duplicate_email":     "Email already taken",
		"invalid_credentials": "Invalid credentials",
		"missing_token":       "Authentication required",
		"invalid_token":       "Invalid token",
		"config_error":        "Server misconfiguration",
		"server_error":        "Server error",

		"login_success": "Logged in",
		"logged_out":    "Logged out",
		"user_created":  "User created",
		"admin_created": "Admin created",
		"user_promoted": "User promoted to admin",
		"blog_created":  "Post created",
		"blog_updated":  "Post updated",
		"blog_deleted":  "Post deleted",
		"slug_copied":   "Slug copied to clipboard",
		"no_token":      "No token in login response",
	},
	"fr": {
		"duplicate_username":  "Nom d'utilisateur déjà pris",
		"duplicate_email":     "E-mail déjà utilisé",
		"invalid_credentials": "Identifiants invalides",
		"missing_token":       "Authentification requise",
		"invalid_token":       "Jeton invalide",
		"config_error":        "Erreur de configuration serveur",
		"server_error":        "Erreur serveur",

		"login_success": "Connecté",
		"logged_out":    "Déconnecté",
		"user_created":  "Utilisateur créé",
		"admin_created": "Admin créé",
		"user_promoted": "Utilisateur promu admin",
		"blog_created":  "Billet créé",
		"blog_updated":  "Billet mis à jour",
		"blog_deleted":  "Billet supprimé",
		"slug_copied":   "Slug copié dans le presse-papiers",
		"no_token":      "Pas de jeton dans la réponse de connexion",
	},
}

// Translator resolves message keys for one locale.
type Translator struct {
	locale string
}

// New creates a translator for the given locale. Locales without a
// translation table fall back to the default locale.
func New(locale string) *Translator {
	if _, ok := translations[locale]; !ok {
		locale = DefaultLocale
	}
	return &Translator{locale: locale}
}

// Locale returns the active locale.
func (t *Translator) Locale() string {
	return t.locale
}

// T returns the translation for key, or the key itself when no translation
// exists. Unknown backend error codes therefore pass through unmodified.
func (t *Translator) T(key string) string {
	if msg, ok := translations[t.locale][key]; ok {
		return msg
	}
	return key
}
