package auth

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"linguadmin/internal/apiclient"
	"linguadmin/internal/flash"
)

// SessionMiddleware resolves the console session and injects the backend
// bearer token into the request context. Requests without a live session
// are bounced to the sign-in page.
func SessionMiddleware(db *sql.DB) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := GetSessionFromRequest(r)
			if sessionID == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			session, err := GetSession(db, sessionID)
			if err != nil {
				ClearSessionCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := SetSessionContext(r.Context(), session)
			ctx = apiclient.WithToken(ctx, session.AccessToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Expire drops the console session after a backend 401: the stored token
// is no longer usable, so in-flight page state is discarded wholesale.
func Expire(db *sql.DB, w http.ResponseWriter, r *http.Request) {
	if session := GetSessionFromContext(r.Context()); session != nil {
		if err := DeleteSession(db, session.ID); err != nil {
			log.Printf("Error deleting session: %v", err)
		}
	}
	ClearSessionCookie(w)
}

// RedirectAPIError is the shared failure path for backend calls made from
// page handlers: 401 forces re-authentication, anything else turns into a
// toast plus a redirect to the given fallback location (one level up for
// entity-not-found cases).
func RedirectAPIError(db *sql.DB, w http.ResponseWriter, r *http.Request, err error, fallbackMsg, location string) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		Expire(db, w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	log.Printf("Backend call failed (%s %s): %v", r.Method, r.URL.Path, err)
	flash.Error(w, apiclient.Message(err, fallbackMsg))
	http.Redirect(w, r, location, http.StatusSeeOther)
}
