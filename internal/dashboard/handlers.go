package dashboard

import (
	"database/sql"
	"errors"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"linguadmin/internal/apiclient"
	"linguadmin/internal/auth"
	"linguadmin/internal/flash"
	"linguadmin/internal/health"
	"linguadmin/internal/models"
)

var (
	templates   *template.Template
	templatesMu sync.RWMutex
)

func InitTemplates(t *template.Template) {
	templatesMu.Lock()
	defer templatesMu.Unlock()
	templates = t
}

func RegisterHandlers(r *mux.Router, db *sql.DB, client *apiclient.Client, checker *health.Checker) {
	// Registered directly so the root path doesn't shadow /login or /static.
	r.Handle("/", auth.SessionMiddleware(db)(homeHandler(db, client, checker))).Methods("GET")
}

func homeHandler(db *sql.DB, client *apiclient.Client, checker *health.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		toast := flash.Pop(w, r)

		stats, err := client.Stats(r.Context())
		if err != nil {
			if handled := redirectUnauthorized(db, w, r, err); handled {
				return
			}
			// The dashboard still renders with empty cards so the nav and
			// backend status stay usable.
			log.Printf("Error fetching stats: %v", err)
			toast = &flash.Message{Kind: "error", Text: apiclient.Message(err, "Failed to fetch statistics")}
			stats = &models.Stats{}
		}

		data := struct {
			Toast   *flash.Message
			Stats   *models.Stats
			Backend health.Status
			Request *http.Request
		}{
			Toast:   toast,
			Stats:   stats,
			Backend: checker.Status(),
			Request: r,
		}

		templatesMu.RLock()
		t := templates
		templatesMu.RUnlock()
		if t == nil {
			log.Println("Templates not initialized")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if err := t.ExecuteTemplate(w, "dashboard.html", data); err != nil {
			log.Printf("Error rendering dashboard template: %v", err)
			http.Error(w, "Error rendering template", http.StatusInternalServerError)
		}
	}
}

func redirectUnauthorized(db *sql.DB, w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		auth.Expire(db, w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return true
	}
	return false
}
