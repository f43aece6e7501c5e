package settings

import (
	"database/sql"
	"html/template"
	"log"
	"net/http"
	"strings"
	"sync"

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
	settingsRouter := r.PathPrefix("/settings").Subrouter()
	settingsRouter.Use(auth.SessionMiddleware(db))

	settingsRouter.HandleFunc("/appearance", appearancePageHandler(db)).Methods("GET")
	settingsRouter.HandleFunc("/appearance", saveAppearanceHandler(db)).Methods("POST")
	settingsRouter.HandleFunc("/appearance/reset", resetAppearanceHandler(db)).Methods("POST")

	settingsRouter.HandleFunc("/business", businessPageHandler(db, client)).Methods("GET")
	settingsRouter.HandleFunc("/business", saveBusinessHandler(db, client)).Methods("POST")
}

func render(w http.ResponseWriter, name string, data interface{}) {
	templatesMu.RLock()
	t := templates
	templatesMu.RUnlock()

	if t == nil {
		log.Println("Templates not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := t.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

func appearancePageHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := auth.GetSessionFromContext(r.Context())

		data := struct {
			Toast   *flash.Message
			Prefs   Preferences
			Request *http.Request
		}{
			Toast:   flash.Pop(w, r),
			Prefs:   GetPreferences(db, session.ID),
			Request: r,
		}
		render(w, "appearance.html", data)
	}
}

func saveAppearanceHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := auth.GetSessionFromContext(r.Context())

		theme := r.FormValue("theme")
		if !ValidTheme(theme) {
			flash.Error(w, "Unknown theme: "+theme)
			http.Redirect(w, r, "/settings/appearance", http.StatusSeeOther)
			return
		}

		prefs := Preferences{
			Theme:   theme,
			Compact: r.FormValue("compact") == "on",
		}
		if err := SetPreferences(db, session.ID, prefs); err != nil {
			log.Printf("Error saving preferences: %v", err)
			flash.Error(w, "Failed to save preferences")
			http.Redirect(w, r, "/settings/appearance", http.StatusSeeOther)
			return
		}

		flash.Success(w, "Preferences saved")
		http.Redirect(w, r, "/settings/appearance", http.StatusSeeOther)
	}
}

func resetAppearanceHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := auth.GetSessionFromContext(r.Context())

		if err := ResetPreferences(db, session.ID); err != nil {
			log.Printf("Error resetting preferences: %v", err)
			flash.Error(w, "Failed to reset preferences")
			http.Redirect(w, r, "/settings/appearance", http.StatusSeeOther)
			return
		}

		flash.Success(w, "Preferences reset to defaults")
		http.Redirect(w, r, "/settings/appearance", http.StatusSeeOther)
	}
}

func businessPageHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		business, err := client.Business(r.Context())
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to fetch business settings", "/")
			return
		}

		data := struct {
			Toast    *flash.Message
			Business *models.BusinessConfig
			Request  *http.Request
		}{
			Toast:    flash.Pop(w, r),
			Business: business,
			Request:  r,
		}
		render(w, "business.html", data)
	}
}

func saveBusinessHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supportEmail := strings.TrimSpace(r.FormValue("support_email"))
		if supportEmail != "" && !strings.Contains(supportEmail, "@") {
			flash.Error(w, "Support email is not a valid address")
			http.Redirect(w, r, "/settings/business", http.StatusSeeOther)
			return
		}

		_, err := client.UpdateBusiness(r.Context(), apiclient.UpdateBusinessRequest{
			TelegramURL:        strings.TrimSpace(r.FormValue("telegram_url")),
			InstagramURL:       strings.TrimSpace(r.FormValue("instagram_url")),
			WebsiteURL:         strings.TrimSpace(r.FormValue("website_url")),
			SupportEmail:       supportEmail,
			RequiredAppVersion: strings.TrimSpace(r.FormValue("required_app_version")),
			CompanyName:        strings.TrimSpace(r.FormValue("company_name")),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to save business settings", "/settings/business")
			return
		}

		flash.Success(w, "Business settings saved")
		http.Redirect(w, r, "/settings/business", http.StatusSeeOther)
	}
}
