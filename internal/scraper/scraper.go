// Package scraper fetches and extracts text content from company websites.
// The extracted title, headings, and body text feed the article generation
// pipeline as brand context.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxBodyBytes caps how much of a page is read. Pages larger than this are
// truncated, not rejected.
const maxBodyBytes = 5 << 20

// defaultTimeout bounds a single fetch including redirects.
const defaultTimeout = 15 * time.Second

// Errors returned by the scraper.
var (
	ErrEmptyURL    = errors.New("url cannot be empty")
	ErrFetchFailed = errors.New("failed to fetch page")
	ErrNotHTML     = errors.New("response is not an HTML document")
	ErrStatusNotOK = errors.New("unexpected HTTP status")
)

// PageContent is the extracted content of a scraped page.
type PageContent struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Headings []string `json:"headings"`
	Text     string   `json:"text"`
}

// Scraper fetches pages and extracts their text content.
type Scraper struct {
	client *http.Client
	logger *slog.Logger
}

// New creates a Scraper. A nil client uses a default with a 15 second timeout.
func New(client *http.Client, logger *slog.Logger) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scraper{
		client: client,
		logger: logger.With("component", "scraper"),
	}
}

// Scrape fetches the page at url and extracts its title, headings, and body
// text. Non-HTML responses and non-2xx statuses are errors.
func (s *Scraper) Scrape(ctx context.Context, url string) (*PageContent, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	// Some sites reject requests without browser-like headers.
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WarnContext(ctx, "page fetch failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.WarnContext(ctx, "page fetch returned error status",
			"url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "html") {
		return nil, fmt.Errorf("%w: %s", ErrNotHTML, contentType)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotHTML, err)
	}

	content := &PageContent{URL: url}
	extract(doc, content, &strings.Builder{})

	s.logger.DebugContext(ctx, "page scraped",
		"url", url,
		"title", content.Title,
		"headings", len(content.Headings),
		"text_length", len(content.Text))

	return content, nil
}

// extract walks the parsed document collecting the title, heading texts, and
// visible body text. Script and style subtrees are skipped.
func extract(n *html.Node, content *PageContent, text *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "iframe":
			return
		case "title":
			if content.Title == "" {
				content.Title = strings.TrimSpace(nodeText(n))
			}
			return
		case "h1", "h2", "h3":
			if heading := strings.TrimSpace(nodeText(n)); heading != "" {
				content.Headings = append(content.Headings, heading)
			}
		}
	}

	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			if text.Len() > 0 {
				text.WriteByte(' ')
			}
			text.WriteString(t)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extract(c, content, text)
	}

	// The root call owns the builder; flush once the walk is done.
	if n.Type == html.DocumentNode {
		content.Text = text.String()
	}
}

// nodeText returns the concatenated text of a node's subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
