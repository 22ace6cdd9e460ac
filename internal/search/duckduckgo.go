package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

const duckDuckGoEndpoint = "https://lite.duckduckgo.com/lite/"

var (
	ddgLinkPattern    = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	ddgLinkPatternAlt = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>([^<]+)</a>`)
	ddgSnippetPattern = regexp.MustCompile(`<td[^>]*class=['"]result-snippet['"][^>]*>([^<]+(?:<[^>]+>[^<]*</[^>]+>)*[^<]*)</td>`)
	anyLinkPattern    = regexp.MustCompile(`<a[^>]+href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
)

var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&#x27;", "'",
	"&nbsp;", " ",
)

// DuckDuckGo scrapes DuckDuckGo's HTML lite interface. No API key needed.
type DuckDuckGo struct {
	client     *http.Client
	endpoint   string
	maxResults int
	baseDelay  time.Duration

	// interval spaces out consecutive queries from this instance
	interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

// NewDuckDuckGo creates a DuckDuckGo searcher with a modest timeout
func NewDuckDuckGo() *DuckDuckGo {
	return NewDuckDuckGoWithClient(&http.Client{Timeout: 15 * time.Second})
}

// NewDuckDuckGoWithClient creates a DuckDuckGo searcher using the supplied HTTP client
func NewDuckDuckGoWithClient(client *http.Client) *DuckDuckGo {
	return &DuckDuckGo{
		client:     client,
		endpoint:   duckDuckGoEndpoint,
		maxResults: defaultMaxResults,
		baseDelay:  time.Second,
		interval:   time.Second,
	}
}

// SetMaxResults caps the number of returned results
func (d *DuckDuckGo) SetMaxResults(n int) {
	d.maxResults = n
}

func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("duckduckgo: query is empty")
	}

	if err := d.wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("q", query)

	resp, err := doWithBackoff(ctx, d.client, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}, d.baseDelay, nil)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return limit(parseLiteHTML(string(body)), d.maxResults), nil
}

// wait enforces the minimum interval between queries
func (d *DuckDuckGo) wait(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if wait := time.Until(d.last.Add(d.interval)); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	d.last = time.Now()
	return nil
}

// parseLiteHTML extracts results from the lite page. The page pairs each
// result-link anchor with a result-snippet cell in document order.
func parseLiteHTML(html string) []Result {
	links := ddgLinkPattern.FindAllStringSubmatch(html, -1)
	if len(links) == 0 {
		links = ddgLinkPatternAlt.FindAllStringSubmatch(html, -1)
	}
	snippets := ddgSnippetPattern.FindAllStringSubmatch(html, -1)

	var results []Result
	for i, m := range links {
		link := strings.TrimSpace(m[1])
		title := cleanHTML(m[2])
		if link == "" || title == "" {
			continue
		}

		snippet := ""
		if i < len(snippets) {
			snippet = cleanHTML(snippets[i][1])
		}

		results = append(results, Result{Title: title, URL: link, Snippet: snippet})
	}

	if len(results) == 0 {
		return parseAnyLinks(html)
	}
	return results
}

// parseAnyLinks is the fallback when the page layout changed: any external
// link with a meaningful title counts as a result
func parseAnyLinks(html string) []Result {
	var results []Result
	seen := make(map[string]bool)

	for _, m := range anyLinkPattern.FindAllStringSubmatch(html, -1) {
		link := strings.TrimSpace(m[1])
		title := cleanHTML(m[2])

		if strings.Contains(link, "duckduckgo.com") ||
			strings.HasPrefix(link, "/") ||
			strings.HasPrefix(link, "#") ||
			strings.HasPrefix(link, "javascript:") {
			continue
		}
		if len(title) < 5 || seen[link] {
			continue
		}
		seen[link] = true

		results = append(results, Result{Title: title, URL: link})
	}

	return results
}

// cleanHTML removes tags and decodes common entities
func cleanHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(htmlEntities.Replace(s))
}
