package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nicholaihel7/hype-intelligence-backend/useragent"
)

// The httptest server speaks plain HTTP, so the utls DialTLSContext path is
// never exercised here; these tests cover request shaping and response
// classification.

func TestHTTPEngine_FetchSuccess(t *testing.T) {
	const page = `<html><head><title>widget - Search</title></head><body><div class="result">Widget $9.99</div></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	e := NewHTTPEngine(useragent.NewPool(nil), 5*time.Second)
	result, err := e.Fetch(context.Background(), &FetchRequest{URL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HTML != page {
		t.Errorf("unexpected HTML: %q", result.HTML)
	}
	if result.Title != "widget - Search" {
		t.Errorf("title = %q, want %q", result.Title, "widget - Search")
	}
	if result.StatusCode != 200 {
		t.Errorf("status = %d, want 200", result.StatusCode)
	}
	if result.EngineName != "http" {
		t.Errorf("engine name = %q, want http", result.EngineName)
	}
}

func TestHTTPEngine_HeaderOverrides(t *testing.T) {
	var gotLang, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.Header.Get("Accept-Language")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>ok page with enough text</body></html>"))
	}))
	defer srv.Close()

	e := NewHTTPEngine(useragent.NewPool([]string{"test-agent/1.0"}), 5*time.Second)
	_, err := e.Fetch(context.Background(), &FetchRequest{
		URL:     srv.URL,
		Headers: map[string]string{"Accept-Language": "tr-TR,tr;q=0.9"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLang != "tr-TR,tr;q=0.9" {
		t.Errorf("Accept-Language = %q, want override", gotLang)
	}
	if gotUA != "test-agent/1.0" {
		t.Errorf("User-Agent = %q, want pool agent", gotUA)
	}
}

func TestHTTPEngine_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewHTTPEngine(nil, 5*time.Second)
	if _, err := e.Fetch(context.Background(), &FetchRequest{URL: srv.URL}); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestHTTPEngine_NonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	e := NewHTTPEngine(nil, 5*time.Second)
	if _, err := e.Fetch(context.Background(), &FetchRequest{URL: srv.URL}); err == nil {
		t.Fatal("expected error for non-HTML content type")
	}
}

func TestHTTPEngine_BlockedResponseEscalates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "cloudflare")
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("<html><title>Attention Required! | Cloudflare</title></html>"))
	}))
	defer srv.Close()

	e := NewHTTPEngine(nil, 5*time.Second)
	_, err := e.Fetch(context.Background(), &FetchRequest{URL: srv.URL})
	if err == nil {
		t.Fatal("expected error for blocked response")
	}
	if !strings.Contains(err.Error(), "Cloudflare") {
		t.Errorf("error should name the blocking vendor, got: %v", err)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"simple", "<html><head><title>Hello</title></head></html>", "Hello"},
		{"whitespace", "<title>  padded  </title>", "padded"},
		{"missing", "<html><body>no title</body></html>", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTitle(tt.html); got != tt.want {
				t.Errorf("extractTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
