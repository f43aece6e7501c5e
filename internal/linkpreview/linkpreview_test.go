package linkpreview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchOpenGraphTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Past Tense Explained">
			<meta property="og:site_name" content="Telegram">
			<title>fallback title</title>
		</head><body></body></html>`))
	}))
	defer srv.Close()

	meta, err := Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if meta.Title != "Past Tense Explained" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.SiteName != "Telegram" {
		t.Errorf("SiteName = %q", meta.SiteName)
	}
}

func TestFetchFallsBackToDocumentTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>  Plain Page  </title></head><body></body></html>`))
	}))
	defer srv.Close()

	meta, err := Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if meta.Title != "Plain Page" {
		t.Errorf("Title = %q, want trimmed document title", meta.Title)
	}
}

func TestFetchNoTitleIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head></head><body>nothing</body></html>`))
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected error when no title is present")
	}
}

func TestFetchNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected error on 404")
	}
}
