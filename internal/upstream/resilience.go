package upstream

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// backoff controls retry behaviour for upstream GETs.
type backoff struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errBadStatus   = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// get issues the request through the circuit breaker, retrying transient
// failures (network errors, 429, 5xx) with exponential backoff. Client
// mistakes (4xx other than 429) are returned without retrying: repeating a
// bad request will not fix it.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		result, err := c.circuit.Execute(func() (interface{}, error) {
			resp, execErr := c.httpClient.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			return resp, nil
		})

		if err == nil {
			return result.(*http.Response), nil
		}

		// An open circuit fails fast; retrying locally would defeat it.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= c.backoff.maxRetries {
			return nil, lastErr
		}

		delay := c.backoff.initialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.maxInterval > 0 && delay > c.backoff.maxInterval {
			delay = c.backoff.maxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
