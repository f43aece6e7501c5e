package auth

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"linguadmin/internal/database"
	"linguadmin/internal/models"
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

func TestCreateAndGetSession(t *testing.T) {
	db := newTestDB(t)

	session, err := CreateSession(db, &models.AuthResponse{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	})
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	if session.ID == "" {
		t.Fatal("session id is empty")
	}

	got, err := GetSession(db, session.ID)
	if err != nil {
		t.Fatalf("getting session: %v", err)
	}
	if got.AccessToken != "access-token" || got.RefreshToken != "refresh-token" {
		t.Errorf("tokens = (%q, %q)", got.AccessToken, got.RefreshToken)
	}
}

func TestGetSessionUnknownID(t *testing.T) {
	db := newTestDB(t)
	if _, err := GetSession(db, "nope"); err == nil {
		t.Error("expected error for unknown session id")
	}
}

func TestExpiredSessionNotReturned(t *testing.T) {
	db := newTestDB(t)

	past := time.Now().Add(-time.Hour)
	_, err := db.Exec(`
		INSERT INTO sessions (id, access_token, refresh_token, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`, "stale", "a", "r", past.Add(-time.Hour), past)
	if err != nil {
		t.Fatalf("inserting stale session: %v", err)
	}

	if _, err := GetSession(db, "stale"); err == nil {
		t.Error("expected expired session to be rejected")
	}

	CleanExpiredSessions(db)

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		t.Fatalf("counting sessions: %v", err)
	}
	if count != 0 {
		t.Errorf("expected sweep to remove stale session, %d rows left", count)
	}
}

func TestDeleteSession(t *testing.T) {
	db := newTestDB(t)

	session, err := CreateSession(db, &models.AuthResponse{AccessToken: "a", RefreshToken: "r"})
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	if err := DeleteSession(db, session.ID); err != nil {
		t.Fatalf("deleting session: %v", err)
	}
	if _, err := GetSession(db, session.ID); err == nil {
		t.Error("session still readable after delete")
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := GenerateSessionID()
		if err != nil {
			t.Fatalf("generating session id: %v", err)
		}
		if len(id) != sessionKeyLength*2 {
			t.Fatalf("id length = %d, want %d", len(id), sessionKeyLength*2)
		}
		if seen[id] {
			t.Fatal("duplicate session id generated")
		}
		seen[id] = true
	}
}
