package search

import (
	"context"
	"net/http"
	"time"
)

const (
	userAgent     = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxRetryDelay = 30 * time.Second
	maxAttempts   = 5
)

// retryDelayFunc decides how long to wait after a 429 response.
// attemptDelay is the current exponential delay.
type retryDelayFunc func(resp *http.Response, attemptDelay time.Duration) time.Duration

// doWithBackoff sends the request built by newReq and retries on 429,
// doubling the delay each time up to maxRetryDelay. The caller owns the
// returned response body.
func doWithBackoff(ctx context.Context, client *http.Client, newReq func() (*http.Request, error), baseDelay time.Duration, delayFor retryDelayFunc) (*http.Response, error) {
	delay := baseDelay
	if delay <= 0 {
		delay = time.Second
	}

	for attempt := 1; ; attempt++ {
		req, err := newReq()
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxAttempts {
			return resp, nil
		}

		wait := delay
		if delayFor != nil {
			wait = delayFor(resp, delay)
		}
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		if delay < maxRetryDelay {
			delay *= 2
		}
	}
}
