package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apierrors "github.com/credprobe/credprobe/internal/errors"
	"github.com/credprobe/credprobe/internal/metrics"
	cleanhttp "github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "credprobe/1.0"

	// retryMax of 2 yields three attempts total per request.
	retryMax = 2
)

// ClientConfig holds configuration for the GitHub API client.
type ClientConfig struct {
	Token   string
	BaseURL string // defaults to https://api.github.com
	Proxy   string // optional proxy URL; environment proxies apply otherwise
	Timeout time.Duration
}

// Client executes requests against the GitHub REST API with the
// credential attached, honoring the rate-limit protocol and retrying
// transient failures. All higher layers share one Client per run so the
// rate-limit state stays coherent.
type Client struct {
	baseURL    string
	token      string
	httpClient *retryablehttp.Client
	rate       *rateState

	// Injection points for tests; production uses the real clock.
	nowFn   func() time.Time
	sleepFn func(ctx context.Context, d time.Duration) error
}

// NewClient creates a new GitHub API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Token == "" {
		return nil, apierrors.ErrMissingToken
	}

	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.github.com"
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
		log.Debug().Str("baseURL", base).Msg("No protocol specified in base URL, defaulting to HTTPS")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := cleanhttp.DefaultPooledTransport()
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Transport: transport, Timeout: timeout}
	rc.RetryMax = retryMax
	rc.Backoff = retryablehttp.LinearJitterBackoff
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			metrics.RetriesTotal.Inc()
			log.Debug().
				Str("method", req.Method).
				Str("url", req.URL.Path).
				Int("attempt", attempt).
				Msg("Retrying request")
		}
	}

	return &Client{
		baseURL:    base,
		token:      cfg.Token,
		httpClient: rc,
		rate:       newRateState(),
		nowFn:      time.Now,
		sleepFn:    sleepContext,
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Execute performs one request and returns the uniform outcome. A non-2xx
// status is not an error; the returned error covers only malformed
// requests and network-level failures that outlasted the retries.
func (c *Client) Execute(ctx context.Context, method, path string, body any) (*Outcome, error) {
	if wait := c.rate.waitDuration(c.nowFn()); wait > 0 {
		remaining, reset := c.rate.snapshot()
		log.Warn().
			Int("remaining", remaining).
			Time("reset", reset).
			Dur("wait", wait).
			Msg("Rate limit low, pausing until reset")
		metrics.RateLimitWaitsTotal.Inc()
		metrics.RateLimitWaitSeconds.Add(wait.Seconds())
		if err := c.sleepFn(ctx, wait); err != nil {
			return nil, apierrors.NewTransportError("rate_limit_wait", path, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apierrors.NewTransportError("encode_body", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, apierrors.NewTransportError("build_request", path, err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "error").Inc()
		return nil, apierrors.NewTransportError("request", path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "error").Inc()
		return nil, apierrors.NewTransportError("read_body", path, err)
	}

	c.rate.update(resp.Header, c.nowFn())
	metrics.RequestsTotal.WithLabelValues(method, statusClass(resp.StatusCode)).Inc()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("API request completed")

	return &Outcome{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       payload,
	}, nil
}

// Get is shorthand for Execute with GET and no body.
func (c *Client) Get(ctx context.Context, path string) (*Outcome, error) {
	return c.Execute(ctx, http.MethodGet, path, nil)
}

// RateLimit returns the most recently observed remaining count and reset
// time. The zero-value remaining of -1 means no response has been seen.
func (c *Client) RateLimit() (remaining int, reset time.Time) {
	return c.rate.snapshot()
}

func statusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "other"
	}
}
