// Package scrape fetches job postings from the web and reduces them to
// plain text suitable for the job-description analyzer.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds one HTTP fetch.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies fetches to job boards.
	DefaultUserAgent = "Mozilla/5.0 (compatible; CareerCopilot/1.0)"
	// maxDescriptionLength caps the stored posting text.
	maxDescriptionLength = 5000
)

// Posting is the scraped content of one job posting page.
type Posting struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Error represents a failed scrape.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scrape error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("scrape error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// URL fetches a job posting page and extracts its title and visible text.
// Script and style content is dropped, whitespace collapsed, and the
// description truncated to a fixed cap.
func URL(ctx context.Context, rawURL string) (*Posting, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: DefaultTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	return FromHTML(rawURL, string(body))
}

// FromHTML reduces a fetched page to a Posting.
func FromHTML(rawURL, html string) (*Posting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "Unknown Role"
	}

	text := cleanText(doc.Find("body").Text())
	if len(text) > maxDescriptionLength {
		text = text[:maxDescriptionLength]
	}

	return &Posting{Title: title, Description: text, URL: rawURL}, nil
}

// cleanText collapses runs of whitespace and drops blank lines.
func cleanText(text string) string {
	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		for _, phrase := range strings.Split(line, "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	return strings.Join(chunks, "\n")
}
