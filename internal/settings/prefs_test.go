package settings

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"linguadmin/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return db
}

func TestDefaultsWhenUnset(t *testing.T) {
	db := newTestDB(t)

	prefs := GetPreferences(db, "nobody")
	if prefs.Theme != ThemeSystem || prefs.Compact {
		t.Errorf("defaults = %+v, want system theme and compact off", prefs)
	}
}

func TestSetAndGetPreferences(t *testing.T) {
	db := newTestDB(t)

	want := Preferences{Theme: ThemeDark, Compact: true}
	if err := SetPreferences(db, "sess-1", want); err != nil {
		t.Fatalf("saving preferences: %v", err)
	}

	if got := GetPreferences(db, "sess-1"); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestUpsertOverwrites(t *testing.T) {
	db := newTestDB(t)

	if err := SetPreferences(db, "sess-1", Preferences{Theme: ThemeDark, Compact: true}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := SetPreferences(db, "sess-1", Preferences{Theme: ThemeLight}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got := GetPreferences(db, "sess-1")
	if got.Theme != ThemeLight || got.Compact {
		t.Errorf("got %+v after overwrite", got)
	}
}

func TestPreferencesAreScopedPerSession(t *testing.T) {
	db := newTestDB(t)

	if err := SetPreferences(db, "sess-1", Preferences{Theme: ThemeDark}); err != nil {
		t.Fatalf("saving preferences: %v", err)
	}
	if got := GetPreferences(db, "sess-2"); got.Theme != ThemeSystem {
		t.Errorf("session 2 inherited session 1's theme: %+v", got)
	}
}

func TestResetPreferences(t *testing.T) {
	db := newTestDB(t)

	if err := SetPreferences(db, "sess-1", Preferences{Theme: ThemeDark, Compact: true}); err != nil {
		t.Fatalf("saving preferences: %v", err)
	}
	if err := ResetPreferences(db, "sess-1"); err != nil {
		t.Fatalf("resetting preferences: %v", err)
	}
	if got := GetPreferences(db, "sess-1"); got != DefaultPreferences() {
		t.Errorf("got %+v after reset, want defaults", got)
	}
}

func TestValidTheme(t *testing.T) {
	for _, theme := range []string{ThemeSystem, ThemeLight, ThemeDark} {
		if !ValidTheme(theme) {
			t.Errorf("ValidTheme(%q) = false", theme)
		}
	}
	if ValidTheme("solarized") {
		t.Error("unknown theme accepted")
	}
}
