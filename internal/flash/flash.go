// Package flash carries one-shot notification messages across the
// POST-redirect-GET cycle in a short-lived cookie.
package flash

import (
	"net/http"
	"net/url"
	"strings"
)

const cookieName = "flash"

type Message struct {
	Kind string // "success" or "error"
	Text string
}

func Success(w http.ResponseWriter, text string) {
	set(w, "success", text)
}

func Error(w http.ResponseWriter, text string) {
	set(w, "error", text)
}

func set(w http.ResponseWriter, kind, text string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    url.QueryEscape(kind + "|" + text),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending message, if any, and clears it.
func Pop(w http.ResponseWriter, r *http.Request) *Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:   cookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, text, found := strings.Cut(decoded, "|")
	if !found || text == "" {
		return nil
	}
	return &Message{Kind: kind, Text: text}
}
