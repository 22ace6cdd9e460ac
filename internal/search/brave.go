package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave uses the Brave Search API. An API key is required via X-Subscription-Token.
type Brave struct {
	APIKey     string
	client     *http.Client
	endpoint   string
	maxResults int
	baseDelay  time.Duration
}

// NewBrave constructs a Brave search provider
func NewBrave(apiKey string) *Brave {
	return NewBraveWithClient(apiKey, &http.Client{Timeout: 10 * time.Second})
}

// NewBraveWithClient constructs a Brave search provider using the supplied HTTP client
func NewBraveWithClient(apiKey string, client *http.Client) *Brave {
	return &Brave{
		APIKey:     apiKey,
		client:     client,
		endpoint:   braveEndpoint,
		maxResults: defaultMaxResults,
		baseDelay:  time.Second,
	}
}

// SetMaxResults caps the number of returned results
func (b *Brave) SetMaxResults(n int) {
	b.maxResults = n
}

func (b *Brave) Search(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(b.APIKey) == "" {
		return nil, errors.New("brave: API key is missing")
	}

	count := b.maxResults
	if count <= 0 {
		count = defaultMaxResults
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))
	endpoint := b.endpoint + "?" + params.Encode()

	resp, err := doWithBackoff(ctx, b.client, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Subscription-Token", b.APIKey)
		return req, nil
	}, b.baseDelay, braveRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("brave: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave http %d", resp.StatusCode)
	}

	var payload struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("brave: failed to decode response: %w", err)
	}

	results := make([]Result, 0, len(payload.Web.Results))
	for _, r := range payload.Web.Results {
		results = append(results, Result{Title: r.Title, URL: r.URL, Snippet: cleanHTML(r.Description)})
	}

	return limit(results, b.maxResults), nil
}

// braveRetryDelay reads X-RateLimit-Reset, a comma-separated list of reset
// times in seconds (e.g. "1, 1419704"), and waits for the smallest one.
// Without a usable header the exponential delay applies.
func braveRetryDelay(resp *http.Response, attemptDelay time.Duration) time.Duration {
	raw := resp.Header.Get("X-RateLimit-Reset")
	if raw == "" {
		return attemptDelay
	}

	minReset := -1
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			continue
		}
		if minReset < 0 || n < minReset {
			minReset = n
		}
	}
	if minReset <= 0 {
		return attemptDelay
	}
	return time.Duration(minReset) * time.Second
}
