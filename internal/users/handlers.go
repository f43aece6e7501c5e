package users

import (
	"database/sql"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"linguadmin/internal/apiclient"
	"linguadmin/internal/auth"
	"linguadmin/internal/flash"
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

func RegisterHandlers(r *mux.Router, db *sql.DB, client *apiclient.Client) {
	usersRouter := r.PathPrefix("/users").Subrouter()
	usersRouter.Use(auth.SessionMiddleware(db))
	usersRouter.HandleFunc("", listHandler(db, client)).Methods("GET")
}

// filterUsers keeps users whose name or phone number contains the query,
// case-insensitively.
func filterUsers(list []AnnotatedUser, query string) []AnnotatedUser {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}

	matched := make([]AnnotatedUser, 0, len(list))
	for _, user := range list {
		if strings.Contains(strings.ToLower(user.FullName()), query) ||
			strings.Contains(strings.ToLower(user.PhoneNumber), query) {
			matched = append(matched, user)
		}
	}
	return matched
}

func listHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			wg       sync.WaitGroup
			userList []models.User
			payments []models.Subscription
			usersErr error
			payErr   error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			userList, usersErr = client.Users(r.Context())
		}()
		go func() {
			defer wg.Done()
			payments, payErr = client.Payments(r.Context())
		}()
		wg.Wait()

		if usersErr != nil {
			auth.RedirectAPIError(db, w, r, usersErr, "Failed to fetch users", "/")
			return
		}
		// A 401 on the payment fetch means the stored token is dead.
		if errors.Is(payErr, apiclient.ErrUnauthorized) {
			auth.Expire(db, w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		// Without the payment list everyone just shows as unsubscribed.
		if payErr != nil {
			log.Printf("Error fetching payments for user list: %v", payErr)
			payments = nil
		}

		annotated := Annotate(userList, payments, time.Now())
		query := r.URL.Query().Get("q")
		filtered := filterUsers(annotated, query)

		data := struct {
			Toast   *flash.Message
			Users   []AnnotatedUser
			Total   int
			Query   string
			Request *http.Request
		}{
			Toast:   flash.Pop(w, r),
			Users:   filtered,
			Total:   len(annotated),
			Query:   query,
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
		if err := t.ExecuteTemplate(w, "users.html", data); err != nil {
			log.Printf("Error rendering users template: %v", err)
			http.Error(w, "Error rendering template", http.StatusInternalServerError)
		}
	}
}
