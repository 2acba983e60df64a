package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Backend Engineer - TechCorp</title>
  <style>body { color: red; }</style>
</head>
<body>
  <script>window.tracker = "noise";</script>
  <h1>Backend Engineer</h1>
  <p>We are looking for someone who knows Python and PostgreSQL.</p>
  <noscript>Please enable JavaScript.</noscript>
</body>
</html>`

func TestFromHTML(t *testing.T) {
	posting, err := FromHTML("https://jobs.example.com/1", postingHTML)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer - TechCorp", posting.Title)
	assert.Equal(t, "https://jobs.example.com/1", posting.URL)

	assert.Contains(t, posting.Description, "Backend Engineer")
	assert.Contains(t, posting.Description, "Python and PostgreSQL")

	// Script, style, and noscript content never leaks into the text.
	assert.NotContains(t, posting.Description, "tracker")
	assert.NotContains(t, posting.Description, "color: red")
	assert.NotContains(t, posting.Description, "enable JavaScript")
}

func TestFromHTML_MissingTitle(t *testing.T) {
	posting, err := FromHTML("https://jobs.example.com/2", "<html><body><p>content</p></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "Unknown Role", posting.Title)
}

func TestFromHTML_TruncatesLongDescriptions(t *testing.T) {
	long := "<html><body>" + strings.Repeat("word ", 3000) + "</body></html>"
	posting, err := FromHTML("https://jobs.example.com/3", long)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(posting.Description), maxDescriptionLength)
}

func TestFromHTML_CollapsesWhitespace(t *testing.T) {
	posting, err := FromHTML("u", "<html><body><p>a    b</p>\n\n\n<p>c</p></body></html>")
	require.NoError(t, err)
	assert.NotContains(t, posting.Description, "  ")
	assert.NotContains(t, posting.Description, "\n\n")
}

func TestURL(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	posting, err := URL(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "Backend Engineer - TechCorp", posting.Title)
	assert.Equal(t, srv.URL, posting.URL)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "example.com/jobs"} {
		_, err := URL(context.Background(), raw)
		var scrapeErr *Error
		require.ErrorAs(t, err, &scrapeErr, "url=%q", raw)
		assert.Equal(t, "invalid URL", scrapeErr.Message)
	}
}

func TestURL_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := URL(context.Background(), srv.URL)
	var scrapeErr *Error
	require.ErrorAs(t, err, &scrapeErr)
	assert.Contains(t, scrapeErr.Message, "404")
}

func TestNeedsBrowser(t *testing.T) {
	thin := &Posting{Description: "Loading..."}
	assert.True(t, NeedsBrowser(thin))

	full := &Posting{Description: strings.Repeat("detailed posting text ", 40)}
	assert.False(t, NeedsBrowser(full))
}
