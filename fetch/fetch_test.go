package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"wisp/hypertext"
)

func testClient() *Client {
	return New(Options{UserAgent: "wisp-test", TimeoutSeconds: 5}, log.New(io.Discard))
}

func TestFetchTranslatesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><head><title>Greetings</title></head>
			<body><article><p>Hello <a href="/next">there</a></p></article></body></html>`)
	}))
	defer srv.Close()

	page, err := testClient().Fetch(context.Background(), srv.URL+"/dir/index.html")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if page.Title != "Greetings" {
		t.Errorf("Title = %q", page.Title)
	}
	if page.Doc == nil {
		t.Fatal("Doc is nil")
	}

	ring := hypertext.NewFocusRing(page.Doc)
	if ring.Len() != 1 {
		t.Fatalf("links = %d, want 1", ring.Len())
	}
	cur, _ := ring.Current()
	if want := srv.URL + "/next"; cur.URL != want {
		t.Errorf("link resolved to %q, want %q", cur.URL, want)
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		io.WriteString(w, "<html><body><p>ok</p></body></html>")
	}))
	defer srv.Close()

	if _, err := testClient().Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got != "wisp-test" {
		t.Errorf("User-Agent = %q, want %q", got, "wisp-test")
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new/", http.StatusFound)
	})
	mux.HandleFunc("/new/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body><p><a href="page">rel</a></p></body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	page, err := testClient().Fetch(context.Background(), srv.URL+"/old")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if want := srv.URL + "/new/"; page.FinalURL != want {
		t.Errorf("FinalURL = %q, want %q", page.FinalURL, want)
	}

	// Relative links resolve against the landing URL, not the requested one.
	ring := hypertext.NewFocusRing(page.Doc)
	cur, ok := ring.Current()
	if !ok {
		t.Fatal("no link in page")
	}
	if want := srv.URL + "/new/page"; cur.URL != want {
		t.Errorf("link resolved to %q, want %q", cur.URL, want)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient().Fetch(context.Background(), srv.URL+"/missing")
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error %q does not name the status", err)
	}
}

func TestFetchRejectsNonText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	_, err := testClient().Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrNotText) {
		t.Errorf("err = %v, want ErrNotText", err)
	}
}

func TestTextual(t *testing.T) {
	tests := []struct {
		ct   string
		want bool
	}{
		{"text/html; charset=utf-8", true},
		{"text/plain", true},
		{"application/xhtml+xml", true},
		{"application/xml", true},
		{"", true},
		{"image/png", false},
		{"application/pdf", false},
		{"application/octet-stream", false},
	}
	for _, tt := range tests {
		if got := textual(tt.ct); got != tt.want {
			t.Errorf("textual(%q) = %v, want %v", tt.ct, got, tt.want)
		}
	}
}

func TestFetchHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testClient().Fetch(ctx, srv.URL); err == nil {
		t.Error("expected an error from a canceled context")
	}
}
