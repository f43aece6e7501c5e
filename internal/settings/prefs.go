// Package settings holds per-login console preferences and the platform
// business configuration editor.
package settings

import (
	"database/sql"
)

const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// Preferences are cosmetic, per-session console settings. They live in the
// local store keyed by session id and die with the session.
type Preferences struct {
	Theme   string
	Compact bool
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeSystem}
}

func ValidTheme(theme string) bool {
	return theme == ThemeSystem || theme == ThemeLight || theme == ThemeDark
}

// GetPreferences returns the stored preferences for a session, or defaults
// when nothing has been saved yet.
func GetPreferences(db *sql.DB, sessionID string) Preferences {
	prefs := DefaultPreferences()
	err := db.QueryRow(`
		SELECT theme, compact FROM preferences WHERE session_id = $1
	`, sessionID).Scan(&prefs.Theme, &prefs.Compact)
	if err != nil {
		return DefaultPreferences()
	}
	if !ValidTheme(prefs.Theme) {
		prefs.Theme = ThemeSystem
	}
	return prefs
}

// SetPreferences upserts the session's preferences.
func SetPreferences(db *sql.DB, sessionID string, prefs Preferences) error {
	_, err := db.Exec(`
		INSERT INTO preferences (session_id, theme, compact)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET theme = $2, compact = $3
	`, sessionID, prefs.Theme, prefs.Compact)
	return err
}

// ResetPreferences drops the stored row, returning the session to defaults.
func ResetPreferences(db *sql.DB, sessionID string) error {
	_, err := db.Exec("DELETE FROM preferences WHERE session_id = $1", sessionID)
	return err
}
