// Package fetch retrieves pages over HTTP and runs them through the
// extraction and translation pipeline.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"wisp/dom"
	"wisp/hypertext"
)

// ErrNotText marks responses whose Content-Type is not renderable text.
var ErrNotText = errors.New("not a text document")

// Page is a fetched and translated document, ready for layout.
type Page struct {
	URL      string // what was asked for
	FinalURL string // where the server actually landed us
	Title    string
	Doc      *hypertext.Node
}

// Options configures the client.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
}

// Client fetches pages. Safe for use from concurrent fetch commands:
// all state is read-only after New.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *log.Logger
}

// New returns a client with the configured timeout and User-Agent.
func New(opts Options, logger *log.Logger) *Client {
	if opts.TimeoutSeconds <= 0 {
		opts.TimeoutSeconds = 30
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Wisp/1.0 (Terminal Browser)"
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		http:      &http.Client{Timeout: time.Duration(opts.TimeoutSeconds) * time.Second},
		userAgent: opts.UserAgent,
		logger:    logger.With("in", "fetch"),
	}
}

// Fetch retrieves rawURL and translates it into a widget tree. Link
// targets resolve against the final URL, so pages reached through HTTP
// redirects keep working.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	start := time.Now()
	c.logger.Debug("fetching", "url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("fetch failed", "url", rawURL, "err", err)
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.logger.Warn("fetch failed", "url", rawURL, "status", resp.Status)
		return nil, fmt.Errorf("fetching %s: server returned %s", rawURL, resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); !textual(ct) {
		c.logger.Warn("fetch failed", "url", rawURL, "content-type", ct)
		return nil, fmt.Errorf("fetching %s: %w (%s)", rawURL, ErrNotText, ct)
	}

	doc, err := dom.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}

	finalURL := resp.Request.URL
	page := &Page{
		URL:      rawURL,
		FinalURL: finalURL.String(),
		Title:    dom.Title(doc),
		Doc:      hypertext.Translate(dom.Extract(doc), finalURL),
	}
	c.logger.Info("fetched", "url", page.FinalURL, "title", page.Title, "dur", time.Since(start))
	return page, nil
}

// textual reports whether a Content-Type is worth parsing. Servers
// that send nothing get the benefit of the doubt.
func textual(ct string) bool {
	if ct == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	}
	return strings.HasPrefix(mt, "text/") || strings.Contains(mt, "html") || strings.Contains(mt, "xml")
}
