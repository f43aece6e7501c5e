package education

import (
	"bytes"
	"database/sql"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"

	"linguadmin"
	"linguadmin/internal/apiclient"
	"linguadmin/internal/auth"
	"linguadmin/internal/database"
	"linguadmin/internal/models"
	"linguadmin/internal/settings"
)

// backendRecorder is a fake learning platform backend that records every
// path it serves.
type backendRecorder struct {
	mu     sync.Mutex
	paths  []string
	routes map[string]http.HandlerFunc
}

func newBackendRecorder() *backendRecorder {
	return &backendRecorder{routes: make(map[string]http.HandlerFunc)}
}

func (b *backendRecorder) handle(path string, h http.HandlerFunc) {
	b.routes[path] = h
}

func (b *backendRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.paths = append(b.paths, r.URL.Path)
	b.mu.Unlock()

	if h, ok := b.routes[r.URL.Path]; ok {
		h(w, r)
		return
	}
	http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
}

func (b *backendRecorder) served() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.paths...)
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func setupTest(t *testing.T) (*mux.Router, *sql.DB, *backendRecorder, *http.Cookie) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	session, err := auth.CreateSession(db, &models.AuthResponse{
		AccessToken:  "test-access",
		RefreshToken: "test-refresh",
	})
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	cookie := &http.Cookie{Name: "session_id", Value: session.ID}

	backend := newBackendRecorder()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	funcMap := template.FuncMap{
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
		"csrfField": func(*http.Request) template.HTML { return "" },
		"csrfToken": func(*http.Request) string { return "" },
		"prefs":     func(*http.Request) settings.Preferences { return settings.DefaultPreferences() },
		"textBefore": func(q string) string {
			before, _ := SplitQuestionText(q)
			return before
		},
		"textAfter": func(q string) string {
			_, after := SplitQuestionText(q)
			return after
		},
	}
	tpl, err := template.New("").Funcs(funcMap).ParseFS(linguadmin.Files,
		"internal/dashboard/templates/*.html",
		"internal/education/templates/*.html")
	if err != nil {
		t.Fatalf("parsing templates: %v", err)
	}
	InitTemplates(tpl)

	r := mux.NewRouter()
	RegisterHandlers(r, db, apiclient.New(srv.URL))
	return r, db, backend, cookie
}

func get(t *testing.T, r *mux.Router, cookie *http.Cookie, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWordPackNeverTouchesGrammarEndpoints(t *testing.T) {
	r, _, backend, cookie := setupTest(t)

	backend.handle("/api/education/packs/3",
		jsonHandler(`{"id":3,"title":"Animals","lesson_id":2,"type":"word","word_count":10}`))
	backend.handle("/api/quiz/words",
		jsonHandler(`[{"id":1,"pack_id":3,"ru_text":"кошка","uz_text":"mushuk"}]`))

	w := get(t, r, cookie, "/education/1/2/3")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "mushuk") {
		t.Error("word list not rendered")
	}

	for _, path := range backend.served() {
		if strings.Contains(path, "grammar") {
			t.Errorf("word pack fetched grammar endpoint %s", path)
		}
	}
}

func TestGrammarPackMissingTopicOffersCreate(t *testing.T) {
	r, _, backend, cookie := setupTest(t)

	backend.handle("/api/education/packs/3",
		jsonHandler(`{"id":3,"title":"Past tense","lesson_id":2,"type":"grammar","word_count":5}`))
	backend.handle("/api/quiz/grammars", jsonHandler(`[]`))
	// No /api/grammar/topics route: the recorder answers 404.

	w := get(t, r, cookie, "/education/1/2/3")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "No topic created") {
		t.Error("missing-topic state not rendered")
	}
	if !strings.Contains(body, "/education/topics/add") {
		t.Error("create-topic form not offered")
	}
}

func TestGrammarPackWithTopicLinksEditor(t *testing.T) {
	r, _, backend, cookie := setupTest(t)

	backend.handle("/api/education/packs/3",
		jsonHandler(`{"id":3,"title":"Past tense","lesson_id":2,"type":"grammar","word_count":5}`))
	backend.handle("/api/grammar/topics",
		jsonHandler(`{"id":9,"pack_id":3,"video_url":"https://t.me/x/1","markdown_text":"# Rules"}`))
	backend.handle("/api/quiz/grammars",
		jsonHandler(`[{"id":4,"pack_id":3,"type":"fill","question_text":"I ___ home","options":["go","goes"],"correct_option":0}]`))

	w := get(t, r, cookie, "/education/1/2/3")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "/education/1/2/3/topic") {
		t.Error("topic editor link missing")
	}
	if !strings.Contains(body, "I ___ home") {
		t.Error("grammar question not rendered")
	}
}

func TestModuleFetchFailureRedirectsToList(t *testing.T) {
	r, _, backend, cookie := setupTest(t)

	backend.handle("/api/education/modules/9", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	})

	w := get(t, r, cookie, "/education/9")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/education" {
		t.Errorf("Location = %q, want /education", loc)
	}

	var flashSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" && c.Value != "" {
			flashSet = true
		}
	}
	if !flashSet {
		t.Error("expected flash cookie on failed fetch")
	}
}

func TestLessonFetchFailureRedirectsToModule(t *testing.T) {
	r, _, backend, cookie := setupTest(t)

	backend.handle("/api/education/modules/1",
		jsonHandler(`{"id":1,"title":"Basics","order":1,"lessons":[]}`))
	// Lesson endpoint missing: recorder answers 404.

	w := get(t, r, cookie, "/education/1/2")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/education/1" {
		t.Errorf("Location = %q, want /education/1", loc)
	}
}

func TestUnauthorizedKillsSessionAndRedirects(t *testing.T) {
	r, db, backend, cookie := setupTest(t)

	backend.handle("/api/education/modules/1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
	})

	w := get(t, r, cookie, "/education/1")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	if _, err := auth.GetSession(db, cookie.Value); err == nil {
		t.Error("session should be deleted after backend 401")
	}
}

func TestGrammarFetch401KillsSession(t *testing.T) {
	r, db, backend, cookie := setupTest(t)

	backend.handle("/api/education/packs/3",
		jsonHandler(`{"id":3,"title":"Past tense","lesson_id":2,"type":"grammar","word_count":5}`))
	unauthorized := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
	}
	backend.handle("/api/quiz/grammars", unauthorized)
	backend.handle("/api/grammar/topics", unauthorized)

	w := get(t, r, cookie, "/education/1/2/3")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
	if _, err := auth.GetSession(db, cookie.Value); err == nil {
		t.Error("session should be deleted after backend 401")
	}
}

func TestNoSessionRedirectsToLogin(t *testing.T) {
	r, _, _, _ := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/education", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestOversizedAudioRejectedWithoutBackendCall(t *testing.T) {
	r, _, backend, cookie := setupTest(t)

	body, contentType := multipartAudio(t, "big.mp3", strings.Repeat("x", MaxAudioSize+1))
	req := httptest.NewRequest(http.MethodPost, "/education/words/5/audio", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	for _, path := range backend.served() {
		if strings.Contains(path, "audio") {
			t.Errorf("oversized upload reached backend at %s", path)
		}
	}
}

func multipartAudio(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	for field, value := range map[string]string{"module_id": "1", "lesson_id": "2", "pack_id": "3"} {
		if err := writer.WriteField(field, value); err != nil {
			t.Fatalf("writing field %s: %v", field, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}
