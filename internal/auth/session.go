package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"linguadmin/internal/models"
)

const (
	DefaultSessionTTL = 24 * time.Hour
	sessionKeyLength  = 32
)

func GenerateSessionID() (string, error) {
	bytes := make([]byte, sessionKeyLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func GetSessionTTL() time.Duration {
	if ttlStr := os.Getenv("SESSION_TTL_HOURS"); ttlStr != "" {
		if hours, err := strconv.Atoi(ttlStr); err == nil {
			return time.Duration(hours) * time.Hour
		}
	}
	return DefaultSessionTTL
}

// tokenExpiry reads the exp claim of the backend access token without
// verifying the signature; verification is the backend's job. A zero time
// means the claim was absent or unreadable.
func tokenExpiry(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// CreateSession stores the backend token pair under a fresh session id.
// The session expires when the access token does, falling back to the
// configured TTL when the token carries no usable exp claim.
func CreateSession(db *sql.DB, tokens *models.AuthResponse) (*models.Session, error) {
	sessionID, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := tokenExpiry(tokens.AccessToken)
	if expiresAt.IsZero() || expiresAt.Before(now) {
		expiresAt = now.Add(GetSessionTTL())
	}

	_, err = db.Exec(`
		INSERT INTO sessions (id, access_token, refresh_token, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sessionID, tokens.AccessToken, tokens.RefreshToken, now, expiresAt)
	if err != nil {
		return nil, err
	}

	return &models.Session{
		ID:           sessionID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		CreatedAt:    now,
		ExpiresAt:    expiresAt,
	}, nil
}

func GetSession(db *sql.DB, sessionID string) (*models.Session, error) {
	var session models.Session
	err := db.QueryRow(`
		SELECT id, access_token, refresh_token, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2
	`, sessionID, time.Now()).Scan(
		&session.ID, &session.AccessToken, &session.RefreshToken,
		&session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func DeleteSession(db *sql.DB, sessionID string) error {
	_, err := db.Exec("DELETE FROM sessions WHERE id = $1", sessionID)
	return err
}

func CleanExpiredSessions(db *sql.DB) {
	_, err := db.Exec("DELETE FROM sessions WHERE expires_at <= $1", time.Now())
	if err != nil {
		log.Printf("Error cleaning expired sessions: %v", err)
	}
}

func isSecureCookieEnabled() bool {
	if secureStr := os.Getenv("SESSION_SECURE_COOKIE"); secureStr != "" {
		if secure, err := strconv.ParseBool(secureStr); err == nil {
			return secure
		}
	}
	return os.Getenv("ENV") != "development"
}

func SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookieEnabled(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(GetSessionTTL()),
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookieEnabled(),
		Expires:  time.Unix(0, 0),
	})
}

func GetSessionFromRequest(r *http.Request) string {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		return ""
	}
	return cookie.Value
}
