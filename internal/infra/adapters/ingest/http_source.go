package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"newsroom-agents/internal/domain"
	"newsroom-agents/internal/domain/ports/adapter"
)

var _ adapter.SourceFetcher = (*HTTPSource)(nil)

// HTTPSource fetches an article page and extracts its readable content.
// Extraction prefers readability; when that yields nothing usable it falls
// back to concatenating the page's paragraph text.
type HTTPSource struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	timeout      time.Duration
}

func NewHTTPSource(timeout time.Duration, userAgent string, maxBodyBytes int64) *HTTPSource {
	return &HTTPSource{
		client:       &http.Client{Timeout: timeout},
		userAgent:    userAgent,
		maxBodyBytes: maxBodyBytes,
		timeout:      timeout,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, rawURL string) (*adapter.SourceContent, error) {
	pageURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || pageURL.Scheme == "" || pageURL.Host == "" {
		return nil, fmt.Errorf("%w: source url %q", domain.ErrInvalidArgument, rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read source body: %w", err)
	}

	title, text := extract(body, pageURL)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no readable content at %s", pageURL)
	}
	if title == "" {
		title = pageURL.Host
	}
	return &adapter.SourceContent{
		URL:   pageURL.String(),
		Title: title,
		Text:  text,
	}, nil
}

func extract(body []byte, pageURL *url.URL) (title, text string) {
	if article, err := readability.FromReader(strings.NewReader(string(body)), pageURL); err == nil {
		title = strings.TrimSpace(article.Title)
		text = normalize(article.TextContent)
		if text != "" {
			return title, text
		}
	}

	// Readability gave up; scrape the paragraphs directly.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return title, ""
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if p := strings.TrimSpace(sel.Text()); p != "" {
			parts = append(parts, p)
		}
	})
	return title, normalize(strings.Join(parts, "\n\n"))
}

func normalize(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
