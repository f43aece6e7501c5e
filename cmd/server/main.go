package main

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"linguadmin"
	"linguadmin/internal/apiclient"
	"linguadmin/internal/auth"
	"linguadmin/internal/dashboard"
	"linguadmin/internal/database"
	"linguadmin/internal/education"
	"linguadmin/internal/health"
	"linguadmin/internal/settings"
	"linguadmin/internal/subscriptions"
	"linguadmin/internal/users"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

const (
	filePerm          = 0o600
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	serverIdleTimeout = 60 * time.Second
)

func setupLogging() (*os.File, error) {
	logFilePath := os.Getenv("LOG_FILE_PATH")
	if logFilePath == "" {
		logFilePath = "linguadmin.log"
	}

	cleaned := filepath.Clean(logFilePath)
	if !filepath.IsAbs(cleaned) {
		cleaned = filepath.Join(".", cleaned)
	}

	absBase, err := filepath.Abs(".")
	if err != nil {
		return nil, err
	}
	absTarget, err := filepath.Abs(cleaned)
	if err != nil {
		return nil, err
	}
	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(os.PathSeparator)) {
		return nil, fmt.Errorf("invalid log path: %s", logFilePath)
	}

	dir := filepath.Dir(absTarget)
	if mkErr := os.MkdirAll(dir, 0o750); mkErr != nil {
		return nil, mkErr
	}

	logFile, err := os.OpenFile(absTarget, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePerm) // #nosec G304
	if err != nil {
		return nil, err
	}

	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	return logFile, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file:", err)
	}

	logFile, err := setupLogging()
	if err != nil {
		log.Fatal("Failed to set up logging:", err)
	}
	defer func() {
		if closeErr := logFile.Close(); closeErr != nil {
			log.Printf("Failed to close log file: %v", closeErr)
		}
	}()

	log.Println("Logging initialized. Log file:", logFile.Name())

	db, err := database.Connect()
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Printf("Failed to run migrations: %v", err)
		return
	}

	client := apiclient.NewFromEnv()
	log.Printf("Using backend API at %s", client.BaseURL())

	checker := health.NewChecker(client.BaseURL())
	startBackgroundServices(db, checker)

	r := mux.NewRouter()
	registerHandlers(r, db, client, checker)

	setupStaticFiles(r)
	initializeTemplates(parseTemplates(db))

	protected := setupCSRFMiddleware(r)

	startServer(protected)
}

func startBackgroundServices(db *sql.DB, checker *health.Checker) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			auth.CleanExpiredSessions(db)
		}
	}()

	go checker.Start(make(chan struct{}))
}

func registerHandlers(r *mux.Router, db *sql.DB, client *apiclient.Client, checker *health.Checker) {
	auth.RegisterHandlers(r, db, client)
	education.RegisterHandlers(r, db, client)
	users.RegisterHandlers(r, db, client)
	subscriptions.RegisterHandlers(r, db, client)
	settings.RegisterHandlers(r, db, client)
	dashboard.RegisterHandlers(r, db, client, checker)
}

func setupStaticFiles(r *mux.Router) {
	staticFiles, err := fs.Sub(linguadmin.Files, "static")
	if err != nil {
		log.Fatalf("Error accessing static files: %v", err)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles))))
}

func parseTemplates(db *sql.DB) *template.Template {
	funcMap := template.FuncMap{
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
		"csrfField": csrf.TemplateField,
		"csrfToken": csrf.Token,
		"textBefore": func(questionText string) string {
			before, _ := education.SplitQuestionText(questionText)
			return before
		},
		"textAfter": func(questionText string) string {
			_, after := education.SplitQuestionText(questionText)
			return after
		},
		"prefs": func(r *http.Request) settings.Preferences {
			if r == nil {
				return settings.DefaultPreferences()
			}
			cookie, err := r.Cookie("session_id")
			if err != nil {
				return settings.DefaultPreferences()
			}
			return settings.GetPreferences(db, cookie.Value)
		},
	}

	t := template.New("").Funcs(funcMap)
	t, err := t.ParseFS(linguadmin.Files,
		"internal/auth/templates/*.html",
		"internal/dashboard/templates/*.html",
		"internal/education/templates/*.html",
		"internal/users/templates/*.html",
		"internal/subscriptions/templates/*.html",
		"internal/settings/templates/*.html")
	if err != nil {
		log.Fatalf("Error parsing templates: %v", err)
	}
	return t
}

func initializeTemplates(t *template.Template) {
	auth.InitTemplates(t)
	dashboard.InitTemplates(t)
	education.InitTemplates(t)
	users.InitTemplates(t)
	subscriptions.InitTemplates(t)
	settings.InitTemplates(t)
}

func setupCSRFMiddleware(r *mux.Router) http.Handler {
	var key []byte
	if envKey := os.Getenv("CSRF_AUTH_KEY"); envKey != "" {
		key = []byte(envKey)
	} else {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			log.Fatalf("CSRF key generation failed: %v", err)
		}
		log.Printf("WARNING: CSRF_AUTH_KEY not set; using ephemeral key (tokens reset on restart).")
	}
	if len(key) < 32 {
		log.Fatalf("CSRF_AUTH_KEY must be at least 32 bytes; got %d", len(key))
	}

	secure := strings.EqualFold(os.Getenv("CSRF_SECURE"), "true")
	if os.Getenv("CSRF_SECURE") == "" {
		secure = true
	}

	sameSite := csrf.SameSiteLaxMode
	switch strings.ToLower(os.Getenv("CSRF_SAMESITE")) {
	case "strict":
		sameSite = csrf.SameSiteStrictMode
	case "none":
		sameSite = csrf.SameSiteNoneMode
	case "lax", "":
		sameSite = csrf.SameSiteLaxMode
	}

	cookieName := os.Getenv("CSRF_COOKIE_NAME")
	if cookieName == "" {
		cookieName = "_csrf"
	}

	opts := []csrf.Option{
		csrf.CookieName(cookieName),
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.Path("/"),
		csrf.SameSite(sameSite),
		csrf.TrustedOrigins(parseTrustedOrigins()),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
		})),
	}

	protect := csrf.Protect(key, opts...)

	return protect(r)
}

func parseTrustedOrigins() []string {
	raw := os.Getenv("CSRF_TRUSTED_ORIGINS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func startServer(handler http.Handler) {
	port := os.Getenv("PORT")
	if port == "" {
		fmt.Println("PORT environment variable not set. Defaulting to 8080")
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	log.Printf("Starting server on :%s", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed to start:", err)
	}
}
