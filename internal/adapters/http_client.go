package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"project-updater/internal/shared"
)

const defaultHTTPTimeout = 60 * time.Second
const defaultHTTPRetries = 3
const defaultHTTPRetryDelay = 200 * time.Millisecond
const maxHTTPRetryDelay = 2 * time.Second
const maxErrorBodyBytes = 512

// HTTPConfig configures repository and archive downloads. Zero values
// fall back to the defaults.
type HTTPConfig struct {
	TimeoutSec   int
	Retries      int
	RetryDelayMs int
	User         string
	Token        string
}

type httpRetryConfig struct {
	timeout   time.Duration
	retries   int
	baseDelay time.Duration
	user      string
	token     string
}

func normalizeHTTPConfig(cfg HTTPConfig) httpRetryConfig {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	retryCount := cfg.Retries
	if retryCount <= 0 {
		retryCount = defaultHTTPRetries
	}
	baseDelay := time.Duration(cfg.RetryDelayMs) * time.Millisecond
	if baseDelay <= 0 {
		baseDelay = defaultHTTPRetryDelay
	}
	return httpRetryConfig{
		timeout:   timeout,
		retries:   retryCount,
		baseDelay: baseDelay,
		user:      strings.TrimSpace(cfg.User),
		token:     strings.TrimSpace(cfg.Token),
	}
}

// doRequest issues a GET, retrying network errors, 5xx and 429
// responses. The caller owns the returned body.
func doRequest(ctx context.Context, url string, cfg httpRetryConfig) (*http.Response, error) {
	client := &http.Client{Timeout: cfg.timeout}
	var lastErr error
	for attempt := 0; attempt < cfg.retries; attempt++ {
		if ctx.Err() != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("request canceled").
				WithCause(ctx.Err())
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create request").
				WithCause(err)
		}
		if cfg.token != "" {
			authUser := cfg.user
			if authUser == "" {
				authUser = "token"
			}
			req.SetBasicAuth(authUser, cfg.token)
		}
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("request canceled").
					WithCause(ctx.Err())
			}
			lastErr = err
			if attempt < cfg.retries-1 {
				if err := waitRetry(ctx, httpRetryDelay(attempt, cfg)); err != nil {
					return nil, err
				}
				continue
			}
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("request failed").
				WithCause(err)
		}
		if (resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests) && attempt < cfg.retries-1 {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if err := waitRetry(ctx, httpRetryDelay(attempt, cfg)); err != nil {
				return nil, err
			}
			continue
		}
		return resp, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("request failed")
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("request failed").
		WithCause(lastErr)
}

// waitRetry sleeps between attempts and gives up when ctx is done.
func waitRetry(ctx context.Context, delay time.Duration) error {
	select {
	case <-ctx.Done():
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("request canceled").
			WithCause(ctx.Err())
	case <-time.After(delay):
		return nil
	}
}

func httpRetryDelay(attempt int, cfg httpRetryConfig) time.Duration {
	delay := cfg.baseDelay * time.Duration(1<<attempt)
	if delay > maxHTTPRetryDelay {
		delay = maxHTTPRetryDelay
	}
	jitter := time.Duration(time.Now().UnixNano() % int64(delay/2+1))
	return delay + jitter
}

func isHTTPURL(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// statusError describes a non-2xx response, with the start of the body
// when the server sent one.
func statusError(resp *http.Response, url string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if text := strings.TrimSpace(string(body)); text != "" {
		return shared.HTTPStatusErrorWithBody(resp.StatusCode, url, text)
	}
	return shared.HTTPStatusError(resp.StatusCode, url)
}
