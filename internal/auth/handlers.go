package auth

import (
	"database/sql"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"linguadmin/internal/apiclient"
	"linguadmin/internal/flash"
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

func RegisterHandlers(r *mux.Router, db *sql.DB, client *apiclient.Client) {
	r.HandleFunc("/login", loginPageHandler(db)).Methods("GET")
	r.HandleFunc("/login", loginHandler(db, client)).Methods("POST")
	r.HandleFunc("/logout", logoutHandler(db)).Methods("POST")
}

func loginPageHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID := GetSessionFromRequest(r); sessionID != "" {
			if _, err := GetSession(db, sessionID); err == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			ClearSessionCookie(w)
		}

		templatesMu.RLock()
		t := templates
		templatesMu.RUnlock()

		if t == nil {
			log.Println("Templates not initialized")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		data := struct {
			Toast   *flash.Message
			Request *http.Request
		}{
			Toast:   flash.Pop(w, r),
			Request: r,
		}

		if err := t.ExecuteTemplate(w, "login.html", data); err != nil {
			log.Printf("Error rendering login template: %v", err)
			http.Error(w, "Error rendering template", http.StatusInternalServerError)
			return
		}
	}
}

func loginHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phoneNumber := r.FormValue("phone_number")
		password := r.FormValue("password")

		if phoneNumber == "" || password == "" {
			flash.Error(w, "Phone number and password are required")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		tokens, err := client.Login(r.Context(), phoneNumber, password)
		if err != nil {
			log.Printf("Login failed: %v", err)
			flash.Error(w, apiclient.Message(err, "Invalid phone number or password"))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		session, err := CreateSession(db, tokens)
		if err != nil {
			log.Printf("Error creating session: %v", err)
			flash.Error(w, "Error creating session")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		SetSessionCookie(w, session.ID)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func logoutHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID := GetSessionFromRequest(r); sessionID != "" {
			if err := DeleteSession(db, sessionID); err != nil {
				log.Printf("Error deleting session: %v", err)
			}
		}
		ClearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
