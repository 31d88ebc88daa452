package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy is constructed once and never mutated.
type RetryPolicy struct {
	MaxAttempts int // total attempts, >= 1
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
	}
}

const attemptTimeout = 30 * time.Second

// RetryingFetcher implements Fetcher with bounded exponential backoff.
// After a retryable failure of attempt k (0-indexed) it waits
// 2^k * BaseDelay + jitter, jitter uniform in [0, BaseDelay).
type RetryingFetcher struct {
	client *http.Client
	policy RetryPolicy
	log    *zap.SugaredLogger

	// swapped out in tests
	sleep  func(time.Duration)
	jitter func() time.Duration
}

func NewRetryingFetcher(policy RetryPolicy, log *zap.SugaredLogger) *RetryingFetcher {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	base := policy.BaseDelay
	if base <= 0 {
		base = time.Second
		policy.BaseDelay = base
	}
	return &RetryingFetcher{
		client: &http.Client{Timeout: attemptTimeout},
		policy: policy,
		log:    log,
		sleep:  time.Sleep,
		jitter: func() time.Duration {
			return time.Duration(rand.Int64N(int64(base)))
		},
	}
}

// retryable statuses match the upstream's transient failure classes.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true
	}
	return false
}

func (f *RetryingFetcher) Fetch(ctx context.Context, req FetchRequest, out any) error {
	var lastErr error

	for attempt := 0; attempt < f.policy.MaxAttempts; attempt++ {
		// URL carries the key credential, so it stays out of the logs
		f.log.Debugf("[fetch] attempt %d/%d %s", attempt+1, f.policy.MaxAttempts, req.Method)

		httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		for k, v := range req.Headers {
			httpReq.Header.Set(k, v)
		}

		resp, err := f.client.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("Network error: %v", err)
			f.log.Warnf("[fetch] attempt %d/%d transport error: %v",
				attempt+1, f.policy.MaxAttempts, err)
			if attempt+1 < f.policy.MaxAttempts {
				f.backoff(attempt)
				continue
			}
			break
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("Network error: %v", readErr)
			f.log.Warnf("[fetch] attempt %d/%d read error: %v",
				attempt+1, f.policy.MaxAttempts, readErr)
			if attempt+1 < f.policy.MaxAttempts {
				f.backoff(attempt)
				continue
			}
			break
		}

		if resp.StatusCode == http.StatusOK {
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decode response body: %w", err)
			}
			return nil
		}

		lastErr = fmt.Errorf("API request failed with status %d", resp.StatusCode)
		f.log.Warnf("[fetch] attempt %d/%d status=%d body=%s",
			attempt+1, f.policy.MaxAttempts, resp.StatusCode, short(string(body)))

		if !retryable(resp.StatusCode) {
			// 4xx like 401/403/404 never resolve by waiting
			return lastErr
		}
		if attempt+1 < f.policy.MaxAttempts {
			f.backoff(attempt)
		}
	}

	f.log.Errorf("[fetch] giving up after %d attempts: %v", f.policy.MaxAttempts, lastErr)
	return lastErr
}

func (f *RetryingFetcher) backoff(attempt int) {
	delay := time.Duration(1<<uint(attempt))*f.policy.BaseDelay + f.jitter()
	f.log.Infof("[fetch] backing off %v before attempt %d", delay, attempt+2)
	f.sleep(delay)
}

func short(s string) string {
	if len(s) > 180 {
		return s[:180] + "..."
	}
	return s
}
